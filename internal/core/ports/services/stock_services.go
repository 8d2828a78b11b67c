package services

import (
	"context"

	"github.com/smapp-dev/stock_manager_app/internal/core/domain"
	"github.com/smapp-dev/stock_manager_app/internal/dto"
)

// StockReaderSvc defines read operations for the stock master data
type StockReaderSvc interface {
	// GetStockByID retrieves a stock by its unique identifier.
	GetStockByID(ctx context.Context, stockID string) (*domain.Stock, error)

	// GetStockBySymbol retrieves a stock by its ticker symbol.
	GetStockBySymbol(ctx context.Context, symbol string) (*domain.Stock, error)

	// ListStocks retrieves a paginated list of registered stocks.
	ListStocks(ctx context.Context, limit int, offset int) ([]domain.Stock, error)
}

// StockWriterSvc defines write operations for the stock master data
type StockWriterSvc interface {
	// CreateStock registers a new stock. Symbols are unique.
	CreateStock(ctx context.Context, req dto.CreateStockRequest) (*domain.Stock, error)

	// FindOrCreateStock returns the stock for the symbol, registering it on
	// first sight.
	FindOrCreateStock(ctx context.Context, ref dto.StockRef) (*domain.Stock, error)

	// UpdateStock updates a stock's name or market.
	UpdateStock(ctx context.Context, stockID string, req dto.UpdateStockRequest) (*domain.Stock, error)

	// DeleteStock removes a stock. It fails with a conflict error while any
	// trade still references the stock.
	DeleteStock(ctx context.Context, stockID string) error
}

// StockSvcFacade combines all stock master data service interfaces
type StockSvcFacade interface {
	StockReaderSvc
	StockWriterSvc
}
