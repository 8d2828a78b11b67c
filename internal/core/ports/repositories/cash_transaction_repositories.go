package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smapp-dev/stock_manager_app/internal/core/domain"
)

// CashTransactionFilter narrows cash-transaction listings.
// Nil fields are not applied.
type CashTransactionFilter struct {
	AccountID *string
	StartDate *time.Time
	EndDate   *time.Time
	Type      *domain.CashTransactionType
}

// CashTransactionReader defines read operations for cash transaction data
type CashTransactionReader interface {
	// FindCashTransactionByID retrieves a specific cash transaction by its ID.
	FindCashTransactionByID(ctx context.Context, transactionID string) (*domain.CashTransaction, error)

	// ListCashTransactions retrieves a filtered, paginated list of cash transactions, newest first.
	ListCashTransactions(ctx context.Context, filter CashTransactionFilter, limit int, offset int) ([]domain.CashTransaction, error)
}

// CashTransactionWriter defines write operations for cash transaction data.
// Every mutation applies the supplied account balance deltas in the same
// database transaction as the row change.
type CashTransactionWriter interface {
	// SaveCashTransaction persists a new cash transaction and adjusts account balances atomically.
	SaveCashTransaction(ctx context.Context, txn domain.CashTransaction, balanceChanges map[string]decimal.Decimal) error

	// UpdateCashTransaction overwrites an existing cash transaction and adjusts account balances atomically.
	UpdateCashTransaction(ctx context.Context, txn domain.CashTransaction, balanceChanges map[string]decimal.Decimal) error

	// DeleteCashTransaction removes a cash transaction and adjusts account balances atomically.
	DeleteCashTransaction(ctx context.Context, transactionID string, balanceChanges map[string]decimal.Decimal) error
}

// CashTransactionRepositoryFacade combines all cash-transaction repository interfaces.
type CashTransactionRepositoryFacade interface {
	CashTransactionReader
	CashTransactionWriter
}
