package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/smapp-dev/stock_manager_app/internal/apperrors"
	"github.com/smapp-dev/stock_manager_app/internal/core/domain"
	portsrepo "github.com/smapp-dev/stock_manager_app/internal/core/ports/repositories"
	"github.com/smapp-dev/stock_manager_app/internal/models"
	"github.com/smapp-dev/stock_manager_app/internal/utils/mapping"
)

const cashTransactionColumns = `transaction_id, account_id, transaction_type, transaction_date, amount, currency, exchange_rate, exchange_fee, description, created_at, last_updated_at`

type PgxCashTransactionRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountTransactionSupport
}

// newPgxCashTransactionRepository creates a new repository for cash movements.
func newPgxCashTransactionRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountTransactionSupport) portsrepo.CashTransactionRepositoryFacade {
	return &PgxCashTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.CashTransactionRepositoryFacade = (*PgxCashTransactionRepository)(nil)

func scanCashTransactionRow(row pgx.Row) (models.CashTransaction, error) {
	var m models.CashTransaction
	err := row.Scan(
		&m.TransactionID,
		&m.AccountID,
		&m.Type,
		&m.Date,
		&m.Amount,
		&m.Currency,
		&m.ExchangeRate,
		&m.ExchangeFee,
		&m.Description,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// lockAccounts locks every account touched by the balance deltas so
// concurrent mutations serialize per account.
func (r *PgxCashTransactionRepository) lockAccounts(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal) error {
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

// SaveCashTransaction inserts a cash movement and applies the account balance
// deltas in one transaction.
func (r *PgxCashTransactionRepository) SaveCashTransaction(ctx context.Context, txn domain.CashTransaction, balanceChanges map[string]decimal.Decimal) error {
	m := mapping.ToModelCashTransaction(txn)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.lockAccounts(ctx, tx, balanceChanges); err != nil {
		return err
	}

	query := `
		INSERT INTO cash_transactions (` + cashTransactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, query,
		m.TransactionID,
		m.AccountID,
		m.Type,
		m.Date,
		m.Amount,
		m.Currency,
		m.ExchangeRate,
		m.ExchangeFee,
		m.Description,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: cash transaction %s already exists", apperrors.ErrDuplicate, m.TransactionID)
		}
		return fmt.Errorf("failed to save cash transaction %s: %w", m.TransactionID, err)
	}

	if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, balanceChanges, m.LastUpdatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindCashTransactionByID retrieves a cash movement by its ID.
func (r *PgxCashTransactionRepository) FindCashTransactionByID(ctx context.Context, transactionID string) (*domain.CashTransaction, error) {
	query := `SELECT ` + cashTransactionColumns + ` FROM cash_transactions WHERE transaction_id = $1;`

	m, err := scanCashTransactionRow(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find cash transaction %s: %w", transactionID, err)
	}

	txn := mapping.ToDomainCashTransaction(m)
	return &txn, nil
}

// ListCashTransactions retrieves a filtered, paginated list, newest first.
func (r *PgxCashTransactionRepository) ListCashTransactions(ctx context.Context, filter portsrepo.CashTransactionFilter, limit int, offset int) ([]domain.CashTransaction, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + cashTransactionColumns + ` FROM cash_transactions WHERE 1=1`
	args := []any{}
	argn := 0
	next := func(v any) string {
		argn++
		args = append(args, v)
		return fmt.Sprintf("$%d", argn)
	}

	if filter.AccountID != nil {
		query += ` AND account_id = ` + next(*filter.AccountID)
	}
	if filter.StartDate != nil {
		query += ` AND transaction_date >= ` + next(*filter.StartDate)
	}
	if filter.EndDate != nil {
		query += ` AND transaction_date <= ` + next(*filter.EndDate)
	}
	if filter.Type != nil {
		query += ` AND transaction_type = ` + next(string(*filter.Type))
	}
	query += ` ORDER BY transaction_date DESC, transaction_id DESC LIMIT ` + next(limit) + ` OFFSET ` + next(offset) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash transactions: %w", err)
	}
	defer rows.Close()

	ms := []models.CashTransaction{}
	for rows.Next() {
		m, err := scanCashTransactionRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cash transaction row: %w", err)
		}
		ms = append(ms, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating cash transaction rows: %w", rows.Err())
	}

	return mapping.ToDomainCashTransactionSlice(ms), nil
}

// UpdateCashTransaction overwrites a cash movement and applies the account
// balance deltas in one transaction.
func (r *PgxCashTransactionRepository) UpdateCashTransaction(ctx context.Context, txn domain.CashTransaction, balanceChanges map[string]decimal.Decimal) error {
	m := mapping.ToModelCashTransaction(txn)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.lockAccounts(ctx, tx, balanceChanges); err != nil {
		return err
	}

	query := `
		UPDATE cash_transactions
		SET account_id = $2, transaction_type = $3, transaction_date = $4, amount = $5,
		    currency = $6, exchange_rate = $7, exchange_fee = $8, description = $9, last_updated_at = $10
		WHERE transaction_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.AccountID,
		m.Type,
		m.Date,
		m.Amount,
		m.Currency,
		m.ExchangeRate,
		m.ExchangeFee,
		m.Description,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update cash transaction %s: %w", m.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, balanceChanges, m.LastUpdatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteCashTransaction removes a cash movement and applies the reversing
// balance deltas in one transaction.
func (r *PgxCashTransactionRepository) DeleteCashTransaction(ctx context.Context, transactionID string, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.lockAccounts(ctx, tx, balanceChanges); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM cash_transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete cash transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, balanceChanges, time.Now()); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}
