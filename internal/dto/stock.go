package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/smapp-dev/stock_manager_app/internal/core/domain"
)

// StockRef identifies a stock inside a trade request. Unknown symbols are
// registered on the fly, so name and market are required alongside the symbol.
type StockRef struct {
	Symbol string            `json:"symbol" binding:"required,max=20"`
	Name   string            `json:"name" binding:"required,max=200"`
	Market domain.MarketCode `json:"market" binding:"required,oneof=KRX HKS NYS NAS AMS TSE SHS SZS SHI SZI HSX HNX BAY BAQ BAA"`
}

// CreateStockRequest defines the data needed to register a stock.
type CreateStockRequest struct {
	Symbol string            `json:"symbol" binding:"required,max=20"`
	Name   string            `json:"name" binding:"required,max=200"`
	Market domain.MarketCode `json:"market" binding:"required,oneof=KRX HKS NYS NAS AMS TSE SHS SZS SHI SZI HSX HNX BAY BAQ BAA"`
}

// UpdateStockRequest defines the fields allowed for updating a stock.
type UpdateStockRequest struct {
	Name   *string            `json:"name" binding:"omitempty,max=200"`
	Market *domain.MarketCode `json:"market" binding:"omitempty,oneof=KRX HKS NYS NAS AMS TSE SHS SZS SHI SZI HSX HNX BAY BAQ BAA"`
}

// StockResponse defines the data returned for a stock.
type StockResponse struct {
	StockID       string            `json:"stockID"`
	Symbol        string            `json:"symbol"`
	Name          string            `json:"name"`
	Market        domain.MarketCode `json:"market"`
	CreatedAt     time.Time         `json:"createdAt"`
	LastUpdatedAt time.Time         `json:"lastUpdatedAt"`
}

// ToStockResponse converts a domain.Stock to StockResponse.
func ToStockResponse(stock *domain.Stock) StockResponse {
	return StockResponse{
		StockID:       stock.StockID,
		Symbol:        stock.Symbol,
		Name:          stock.Name,
		Market:        stock.Market,
		CreatedAt:     stock.CreatedAt,
		LastUpdatedAt: stock.LastUpdatedAt,
	}
}

// ListStocksParams defines query parameters for listing stocks.
type ListStocksParams struct {
	Limit  int `form:"limit,default=100"`
	Offset int `form:"offset,default=0"`
}

// ListStocksResponse wraps the list of stocks.
type ListStocksResponse struct {
	Stocks []StockResponse `json:"stocks"`
}

// StockSearchResponse defines one hit from a symbol search.
type StockSearchResponse struct {
	Symbol string            `json:"symbol"`
	Name   string            `json:"name"`
	Market domain.MarketCode `json:"market"`
}

// StockPriceResponse defines the current quote for a symbol.
type StockPriceResponse struct {
	Symbol   string          `json:"symbol"`
	Price    decimal.Decimal `json:"price"`
	Currency domain.Currency `json:"currency"`
	AsOf     time.Time       `json:"asOf"`
}
