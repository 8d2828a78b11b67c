package services

import (
	"context"

	"github.com/smapp-dev/stock_manager_app/internal/core/domain"
)

// MarketDataSvcFacade defines the external quote provider operations
type MarketDataSvcFacade interface {
	// SearchStocks searches the provider for symbols matching the query.
	SearchStocks(ctx context.Context, query string) ([]domain.StockSearchResult, error)

	// GetPrice returns the latest price for a symbol on a market. Results are
	// cached for a short period to keep provider traffic low.
	GetPrice(ctx context.Context, symbol string, market domain.MarketCode) (*domain.StockQuote, error)

	// RefreshCache re-fetches the price for every cached symbol.
	RefreshCache(ctx context.Context) error

	// ClearCache drops all cached prices.
	ClearCache(ctx context.Context)
}
