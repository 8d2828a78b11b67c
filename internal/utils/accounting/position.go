package accounting

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/smapp-dev/stock_manager_app/internal/apperrors"
	"github.com/smapp-dev/stock_manager_app/internal/core/domain"
)

// Position is the replayed state of one (account, stock) pair: quantity held,
// blended average cost per share, and the cost basis of the held shares.
type Position struct {
	Quantity    decimal.Decimal
	AverageCost decimal.Decimal
	TotalCost   decimal.Decimal
}

// IsFlat reports whether the position holds no shares.
func (p Position) IsFlat() bool {
	return p.Quantity.IsZero()
}

// averageCostScale bounds the precision of average-cost division so replayed
// snapshots compare equal regardless of how the history was reached.
const averageCostScale = 8

// Replay folds the complete trade history of one (account, stock) pair into a
// Position using the average-cost method. Transactions are ordered by date
// ascending with the transaction ID as a stable tie-breaker, so same-day
// trades replay deterministically. Buys add quantity*price+fee to the cost
// basis; sells reduce the basis proportionally at the pre-sale average cost
// and leave it untouched by the sale fee. A sell of more shares than held at
// that point in the replay fails with a validation error naming the offending
// transaction.
func Replay(txns []domain.StockTransaction) (Position, error) {
	ordered := make([]domain.StockTransaction, len(txns))
	copy(ordered, txns)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].Date.Before(ordered[j].Date)
		}
		return ordered[i].TransactionID < ordered[j].TransactionID
	})

	quantity := decimal.Zero
	totalCost := decimal.Zero

	for _, txn := range ordered {
		if err := validateTrade(txn); err != nil {
			return Position{}, err
		}

		switch txn.Type {
		case domain.Buy:
			totalCost = totalCost.Add(txn.Quantity.Mul(txn.PricePerShare)).Add(txn.Fee)
			quantity = quantity.Add(txn.Quantity)
		case domain.Sell:
			if txn.Quantity.GreaterThan(quantity) {
				return Position{}, fmt.Errorf(
					"%w: sell quantity %s exceeds held quantity %s as of %s (transaction %s)",
					apperrors.ErrValidation,
					txn.Quantity.String(), quantity.String(),
					txn.Date.Format("2006-01-02"), txn.TransactionID,
				)
			}
			avgCost := totalCost.DivRound(quantity, averageCostScale)
			totalCost = totalCost.Sub(avgCost.Mul(txn.Quantity))
			quantity = quantity.Sub(txn.Quantity)
			if quantity.IsZero() {
				// clear rounding residue so a flat position is exactly flat
				totalCost = decimal.Zero
			}
		default:
			return Position{}, fmt.Errorf("%w: unknown trade type %q for transaction %s",
				apperrors.ErrInternal, txn.Type, txn.TransactionID)
		}
	}

	pos := Position{Quantity: quantity, TotalCost: totalCost}
	if quantity.IsPositive() {
		pos.AverageCost = totalCost.DivRound(quantity, averageCostScale)
	} else {
		pos.AverageCost = decimal.Zero
	}
	return pos, nil
}

func validateTrade(txn domain.StockTransaction) error {
	if !txn.Quantity.IsPositive() || !txn.Quantity.IsInteger() {
		return fmt.Errorf("%w: quantity must be a positive whole number for transaction %s",
			apperrors.ErrValidation, txn.TransactionID)
	}
	if !txn.PricePerShare.IsPositive() {
		return fmt.Errorf("%w: price per share must be positive for transaction %s",
			apperrors.ErrValidation, txn.TransactionID)
	}
	if txn.Fee.IsNegative() {
		return fmt.Errorf("%w: fee must not be negative for transaction %s",
			apperrors.ErrValidation, txn.TransactionID)
	}
	return nil
}

// BalanceChanges accumulates signed cash deltas per account, the shape handed
// to the repository layer so balance updates commit atomically with the
// holding recomputation.
type BalanceChanges map[string]decimal.Decimal

// Add accumulates a signed delta for the given account.
func (b BalanceChanges) Add(accountID string, delta decimal.Decimal) {
	b[accountID] = b[accountID].Add(delta)
}
