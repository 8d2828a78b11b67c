package repositories

import (
	"context"

	"github.com/smapp-dev/stock_manager_app/internal/core/domain"
)

// StockReader defines read operations for stock reference data
type StockReader interface {
	// FindStockByID retrieves a stock by its unique identifier.
	FindStockByID(ctx context.Context, stockID string) (*domain.Stock, error)

	// FindStockBySymbol retrieves a stock by its (unique) symbol.
	FindStockBySymbol(ctx context.Context, symbol string) (*domain.Stock, error)

	// FindStocksByIDs retrieves multiple stocks by their IDs.
	FindStocksByIDs(ctx context.Context, stockIDs []string) (map[string]domain.Stock, error)

	// ListStocks retrieves a paginated list of stocks ordered by symbol.
	ListStocks(ctx context.Context, limit int, offset int) ([]domain.Stock, error)
}

// StockWriter defines write operations for stock reference data
type StockWriter interface {
	// SaveStock persists a new stock. Fails with a duplicate error if the symbol exists.
	SaveStock(ctx context.Context, stock domain.Stock) error

	// UpdateStock updates a stock's display name and market.
	UpdateStock(ctx context.Context, stock domain.Stock) error

	// DeleteStock removes a stock. It fails with a conflict error while any
	// stock transaction or holding still references it.
	DeleteStock(ctx context.Context, stockID string) error
}

// StockRepositoryFacade combines all stock repository interfaces.
type StockRepositoryFacade interface {
	StockReader
	StockWriter
}
