package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smapp-dev/stock_manager_app/internal/apperrors"
	"github.com/smapp-dev/stock_manager_app/internal/core/domain"
	portsrepo "github.com/smapp-dev/stock_manager_app/internal/core/ports/repositories"
	"github.com/smapp-dev/stock_manager_app/internal/models"
	"github.com/smapp-dev/stock_manager_app/internal/utils/mapping"
)

const stockColumns = `stock_id, symbol, name, market, created_at, last_updated_at`

type PgxStockRepository struct {
	BaseRepository
}

// newPgxStockRepository creates a new repository for stock reference data.
func newPgxStockRepository(pool *pgxpool.Pool) portsrepo.StockRepositoryFacade {
	return &PgxStockRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.StockRepositoryFacade = (*PgxStockRepository)(nil)

func scanStockRow(row pgx.Row) (models.Stock, error) {
	var m models.Stock
	err := row.Scan(
		&m.StockID,
		&m.Symbol,
		&m.Name,
		&m.Market,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// SaveStock inserts a new stock. The symbol column is unique.
func (r *PgxStockRepository) SaveStock(ctx context.Context, stock domain.Stock) error {
	m := mapping.ToModelStock(stock)

	query := `
		INSERT INTO stocks (` + stockColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.StockID,
		m.Symbol,
		m.Name,
		m.Market,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: stock with symbol %s already exists", apperrors.ErrDuplicate, m.Symbol)
		}
		return fmt.Errorf("failed to save stock %s: %w", m.Symbol, err)
	}
	return nil
}

// FindStockByID retrieves a stock by its ID.
func (r *PgxStockRepository) FindStockByID(ctx context.Context, stockID string) (*domain.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stocks WHERE stock_id = $1;`

	m, err := scanStockRow(r.Pool.QueryRow(ctx, query, stockID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find stock by ID %s: %w", stockID, err)
	}

	stock := mapping.ToDomainStock(m)
	return &stock, nil
}

// FindStockBySymbol retrieves a stock by its symbol.
func (r *PgxStockRepository) FindStockBySymbol(ctx context.Context, symbol string) (*domain.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stocks WHERE symbol = $1;`

	m, err := scanStockRow(r.Pool.QueryRow(ctx, query, symbol))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find stock by symbol %s: %w", symbol, err)
	}

	stock := mapping.ToDomainStock(m)
	return &stock, nil
}

// FindStocksByIDs retrieves multiple stocks by their IDs.
func (r *PgxStockRepository) FindStocksByIDs(ctx context.Context, stockIDs []string) (map[string]domain.Stock, error) {
	if len(stockIDs) == 0 {
		return map[string]domain.Stock{}, nil
	}

	query := `SELECT ` + stockColumns + ` FROM stocks WHERE stock_id = ANY($1);`

	rows, err := r.Pool.Query(ctx, query, stockIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query stocks by IDs: %w", err)
	}
	defer rows.Close()

	stocksMap := make(map[string]domain.Stock)
	for rows.Next() {
		m, err := scanStockRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock row during batch fetch: %w", err)
		}
		stocksMap[m.StockID] = mapping.ToDomainStock(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock rows during batch fetch: %w", err)
	}

	return stocksMap, nil
}

// ListStocks retrieves a paginated list of stocks ordered by symbol.
func (r *PgxStockRepository) ListStocks(ctx context.Context, limit int, offset int) ([]domain.Stock, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + stockColumns + ` FROM stocks ORDER BY symbol LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query stocks: %w", err)
	}
	defer rows.Close()

	ms := []models.Stock{}
	for rows.Next() {
		m, err := scanStockRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock row: %w", err)
		}
		ms = append(ms, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating stock rows: %w", rows.Err())
	}

	return mapping.ToDomainStockSlice(ms), nil
}

// UpdateStock updates a stock's display name and market.
func (r *PgxStockRepository) UpdateStock(ctx context.Context, stock domain.Stock) error {
	m := mapping.ToModelStock(stock)

	query := `
		UPDATE stocks
		SET name = $2, market = $3, last_updated_at = $4
		WHERE stock_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, m.StockID, m.Name, m.Market, m.LastUpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update stock %s: %w", m.StockID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteStock removes a stock. Stocks still referenced by trades or holdings
// are reported as a conflict rather than deleted.
func (r *PgxStockRepository) DeleteStock(ctx context.Context, stockID string) error {
	var refs int
	query := `
		SELECT (SELECT COUNT(*) FROM stock_transactions WHERE stock_id = $1)
		     + (SELECT COUNT(*) FROM stock_holdings WHERE stock_id = $1);
	`
	if err := r.Pool.QueryRow(ctx, query, stockID).Scan(&refs); err != nil {
		return fmt.Errorf("failed to check stock references for %s: %w", stockID, err)
	}
	if refs > 0 {
		return fmt.Errorf("%w: stock %s is still referenced by %d rows", apperrors.ErrConflict, stockID, refs)
	}

	tag, err := r.Pool.Exec(ctx, `DELETE FROM stocks WHERE stock_id = $1;`, stockID)
	if err != nil {
		return fmt.Errorf("failed to delete stock %s: %w", stockID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
