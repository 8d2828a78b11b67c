package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/smapp-dev/stock_manager_app/internal/apperrors"
	"github.com/smapp-dev/stock_manager_app/internal/core/domain"
	portsrepo "github.com/smapp-dev/stock_manager_app/internal/core/ports/repositories"
	"github.com/smapp-dev/stock_manager_app/internal/models"
	"github.com/smapp-dev/stock_manager_app/internal/utils/accounting"
	"github.com/smapp-dev/stock_manager_app/internal/utils/mapping"
)

const stockTransactionColumns = `transaction_id, account_id, stock_id, transaction_type, transaction_date, quantity, price_per_share, fee, currency, exchange_rate, created_at, last_updated_at`

// PgxTradeRepository persists trades and the holdings derived from them.
// Holdings are a materialized view of the trade log: every mutation replays
// the full history of the touched (account, stock) pair inside the same
// transaction and rewrites the holding row from the result.
type PgxTradeRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountTransactionSupport
}

// newPgxTradeRepository creates a new repository for trades and holdings.
func newPgxTradeRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountTransactionSupport) portsrepo.TradeRepositoryFacade {
	return &PgxTradeRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.TradeRepositoryFacade = (*PgxTradeRepository)(nil)

func scanStockTransactionRow(row pgx.Row) (models.StockTransaction, error) {
	var m models.StockTransaction
	err := row.Scan(
		&m.TransactionID,
		&m.AccountID,
		&m.StockID,
		&m.Type,
		&m.Date,
		&m.Quantity,
		&m.PricePerShare,
		&m.Fee,
		&m.Currency,
		&m.ExchangeRate,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

func scanStockHoldingRow(row pgx.Row) (models.StockHolding, error) {
	var m models.StockHolding
	err := row.Scan(
		&m.HoldingID,
		&m.AccountID,
		&m.StockID,
		&m.Quantity,
		&m.AverageCost,
		&m.TotalCost,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

func (r *PgxTradeRepository) lockAccounts(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal) error {
	accountIDs := make([]string, 0, len(balanceChanges))
	for id := range balanceChanges {
		accountIDs = append(accountIDs, id)
	}
	locked, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return err
	}
	for _, id := range accountIDs {
		if _, ok := locked[id]; !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
	}
	return nil
}

// listTradesByPairInTx loads the full trade history of one pair inside the
// given transaction, ordered ascending by (date, transaction id).
func (r *PgxTradeRepository) listTradesByPairInTx(ctx context.Context, tx pgx.Tx, pair domain.PairKey) ([]domain.StockTransaction, error) {
	query := `
		SELECT ` + stockTransactionColumns + `
		FROM stock_transactions
		WHERE account_id = $1 AND stock_id = $2
		ORDER BY transaction_date ASC, transaction_id ASC;
	`
	rows, err := tx.Query(ctx, query, pair.AccountID, pair.StockID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pair history: %w", err)
	}
	defer rows.Close()

	ms := []models.StockTransaction{}
	for rows.Next() {
		m, err := scanStockTransactionRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pair history row: %w", err)
		}
		ms = append(ms, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating pair history rows: %w", rows.Err())
	}

	return mapping.ToDomainStockTransactionSlice(ms), nil
}

// recomputeHoldingInTx replays a pair's history and rewrites its holding row.
// A flat position deletes the row; an oversell anywhere in the history fails
// the enclosing transaction.
func (r *PgxTradeRepository) recomputeHoldingInTx(ctx context.Context, tx pgx.Tx, pair domain.PairKey, now time.Time) error {
	history, err := r.listTradesByPairInTx(ctx, tx, pair)
	if err != nil {
		return err
	}

	position, err := accounting.Replay(history)
	if err != nil {
		return err
	}

	if position.IsFlat() {
		_, err := tx.Exec(ctx, `DELETE FROM stock_holdings WHERE account_id = $1 AND stock_id = $2;`, pair.AccountID, pair.StockID)
		if err != nil {
			return fmt.Errorf("failed to delete flat holding: %w", err)
		}
		return nil
	}

	query := `
		INSERT INTO stock_holdings (holding_id, account_id, stock_id, quantity, average_cost, total_cost, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (account_id, stock_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, average_cost = EXCLUDED.average_cost,
		              total_cost = EXCLUDED.total_cost, last_updated_at = EXCLUDED.last_updated_at;
	`
	_, err = tx.Exec(ctx, query,
		uuid.NewString(),
		pair.AccountID,
		pair.StockID,
		position.Quantity,
		position.AverageCost,
		position.TotalCost,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert holding for account %s stock %s: %w", pair.AccountID, pair.StockID, err)
	}
	return nil
}

// SaveTrade inserts a trade, replays its pair into a fresh holding and applies
// the account balance deltas, all in one transaction.
func (r *PgxTradeRepository) SaveTrade(ctx context.Context, txn domain.StockTransaction, balanceChanges map[string]decimal.Decimal) error {
	m := mapping.ToModelStockTransaction(txn)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.lockAccounts(ctx, tx, balanceChanges); err != nil {
		return err
	}

	query := `
		INSERT INTO stock_transactions (` + stockTransactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, query,
		m.TransactionID,
		m.AccountID,
		m.StockID,
		m.Type,
		m.Date,
		m.Quantity,
		m.PricePerShare,
		m.Fee,
		m.Currency,
		m.ExchangeRate,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: stock transaction %s already exists", apperrors.ErrDuplicate, m.TransactionID)
		}
		return fmt.Errorf("failed to save stock transaction %s: %w", m.TransactionID, err)
	}

	if err := r.recomputeHoldingInTx(ctx, tx, txn.Pair(), m.LastUpdatedAt); err != nil {
		return err
	}
	if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, balanceChanges, m.LastUpdatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindTradeByID retrieves a trade by its ID.
func (r *PgxTradeRepository) FindTradeByID(ctx context.Context, transactionID string) (*domain.StockTransaction, error) {
	query := `SELECT ` + stockTransactionColumns + ` FROM stock_transactions WHERE transaction_id = $1;`

	m, err := scanStockTransactionRow(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find stock transaction %s: %w", transactionID, err)
	}

	txn := mapping.ToDomainStockTransaction(m)
	return &txn, nil
}

// ListTrades retrieves a filtered, paginated list of trades, newest first.
func (r *PgxTradeRepository) ListTrades(ctx context.Context, filter portsrepo.StockTransactionFilter, limit int, offset int) ([]domain.StockTransaction, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT t.transaction_id, t.account_id, t.stock_id, t.transaction_type, t.transaction_date,
		       t.quantity, t.price_per_share, t.fee, t.currency, t.exchange_rate, t.created_at, t.last_updated_at
		FROM stock_transactions t
		JOIN stocks s ON s.stock_id = t.stock_id
		WHERE 1=1`
	args := []any{}
	argn := 0
	next := func(v any) string {
		argn++
		args = append(args, v)
		return fmt.Sprintf("$%d", argn)
	}

	if filter.AccountID != nil {
		query += ` AND t.account_id = ` + next(*filter.AccountID)
	}
	if filter.StartDate != nil {
		query += ` AND t.transaction_date >= ` + next(*filter.StartDate)
	}
	if filter.EndDate != nil {
		query += ` AND t.transaction_date <= ` + next(*filter.EndDate)
	}
	if filter.Type != nil {
		query += ` AND t.transaction_type = ` + next(string(*filter.Type))
	}
	if filter.Symbol != nil {
		query += ` AND s.symbol = ` + next(*filter.Symbol)
	}
	if filter.Market != nil {
		query += ` AND s.market = ` + next(string(*filter.Market))
	}
	query += ` ORDER BY t.transaction_date DESC, t.transaction_id DESC LIMIT ` + next(limit) + ` OFFSET ` + next(offset) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock transactions: %w", err)
	}
	defer rows.Close()

	ms := []models.StockTransaction{}
	for rows.Next() {
		m, err := scanStockTransactionRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock transaction row: %w", err)
		}
		ms = append(ms, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating stock transaction rows: %w", rows.Err())
	}

	return mapping.ToDomainStockTransactionSlice(ms), nil
}

// ListTradesByPair retrieves the complete trade history of one pair ordered
// ascending by (date, transaction id).
func (r *PgxTradeRepository) ListTradesByPair(ctx context.Context, pair domain.PairKey) ([]domain.StockTransaction, error) {
	query := `
		SELECT ` + stockTransactionColumns + `
		FROM stock_transactions
		WHERE account_id = $1 AND stock_id = $2
		ORDER BY transaction_date ASC, transaction_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, pair.AccountID, pair.StockID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pair history: %w", err)
	}
	defer rows.Close()

	ms := []models.StockTransaction{}
	for rows.Next() {
		m, err := scanStockTransactionRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pair history row: %w", err)
		}
		ms = append(ms, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating pair history rows: %w", rows.Err())
	}

	return mapping.ToDomainStockTransactionSlice(ms), nil
}

// UpdateTrade overwrites a trade and replays both the pair it used to belong
// to and the pair it belongs to now, all in one transaction.
func (r *PgxTradeRepository) UpdateTrade(ctx context.Context, txn domain.StockTransaction, oldPair domain.PairKey, balanceChanges map[string]decimal.Decimal) error {
	m := mapping.ToModelStockTransaction(txn)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.lockAccounts(ctx, tx, balanceChanges); err != nil {
		return err
	}

	query := `
		UPDATE stock_transactions
		SET account_id = $2, stock_id = $3, transaction_type = $4, transaction_date = $5,
		    quantity = $6, price_per_share = $7, fee = $8, currency = $9, exchange_rate = $10, last_updated_at = $11
		WHERE transaction_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.AccountID,
		m.StockID,
		m.Type,
		m.Date,
		m.Quantity,
		m.PricePerShare,
		m.Fee,
		m.Currency,
		m.ExchangeRate,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update stock transaction %s: %w", m.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := r.recomputeHoldingInTx(ctx, tx, oldPair, m.LastUpdatedAt); err != nil {
		return err
	}
	newPair := txn.Pair()
	if newPair != oldPair {
		if err := r.recomputeHoldingInTx(ctx, tx, newPair, m.LastUpdatedAt); err != nil {
			return err
		}
	}
	if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, balanceChanges, m.LastUpdatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteTrade removes a trade and replays the pair it belonged to, all in one
// transaction. Removing a buy that later sells depend on fails the replay and
// rolls everything back.
func (r *PgxTradeRepository) DeleteTrade(ctx context.Context, transactionID string, pair domain.PairKey, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.lockAccounts(ctx, tx, balanceChanges); err != nil {
		return err
	}

	now := time.Now()
	tag, err := tx.Exec(ctx, `DELETE FROM stock_transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete stock transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := r.recomputeHoldingInTx(ctx, tx, pair, now); err != nil {
		return err
	}
	if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, balanceChanges, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

const stockHoldingColumns = `holding_id, account_id, stock_id, quantity, average_cost, total_cost, created_at, last_updated_at`

// FindHoldingsByAccount retrieves all holdings of one account.
func (r *PgxTradeRepository) FindHoldingsByAccount(ctx context.Context, accountID string) ([]domain.StockHolding, error) {
	query := `SELECT ` + stockHoldingColumns + ` FROM stock_holdings WHERE account_id = $1 ORDER BY total_cost DESC;`

	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings for account %s: %w", accountID, err)
	}
	defer rows.Close()

	ms := []models.StockHolding{}
	for rows.Next() {
		m, err := scanStockHoldingRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holding row: %w", err)
		}
		ms = append(ms, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating holding rows: %w", rows.Err())
	}

	return mapping.ToDomainStockHoldingSlice(ms), nil
}

// FindHoldingByPair retrieves the holding of one (account, stock) pair.
func (r *PgxTradeRepository) FindHoldingByPair(ctx context.Context, pair domain.PairKey) (*domain.StockHolding, error) {
	query := `SELECT ` + stockHoldingColumns + ` FROM stock_holdings WHERE account_id = $1 AND stock_id = $2;`

	m, err := scanStockHoldingRow(r.Pool.QueryRow(ctx, query, pair.AccountID, pair.StockID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find holding for account %s stock %s: %w", pair.AccountID, pair.StockID, err)
	}

	holding := mapping.ToDomainStockHolding(m)
	return &holding, nil
}

// ListHoldings retrieves every holding in the system.
func (r *PgxTradeRepository) ListHoldings(ctx context.Context) ([]domain.StockHolding, error) {
	query := `SELECT ` + stockHoldingColumns + ` FROM stock_holdings ORDER BY total_cost DESC;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings: %w", err)
	}
	defer rows.Close()

	ms := []models.StockHolding{}
	for rows.Next() {
		m, err := scanStockHoldingRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holding row: %w", err)
		}
		ms = append(ms, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating holding rows: %w", rows.Err())
	}

	return mapping.ToDomainStockHoldingSlice(ms), nil
}
