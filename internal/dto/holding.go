package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/smapp-dev/stock_manager_app/internal/core/domain"
)

// StockHoldingResponse defines the data returned for one open position.
type StockHoldingResponse struct {
	HoldingID     string          `json:"holdingID"`
	AccountID     string          `json:"accountID"`
	StockID       string          `json:"stockID"`
	Symbol        string          `json:"symbol,omitempty"`
	StockName     string          `json:"stockName,omitempty"`
	Market        string          `json:"market,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	AverageCost   decimal.Decimal `json:"averageCost"`
	TotalCost     decimal.Decimal `json:"totalCost"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToStockHoldingResponse converts a domain holding, enriching it with the
// stock details when available.
func ToStockHoldingResponse(h *domain.StockHolding, stock *domain.Stock) StockHoldingResponse {
	resp := StockHoldingResponse{
		HoldingID:     h.HoldingID,
		AccountID:     h.AccountID,
		StockID:       h.StockID,
		Quantity:      h.Quantity,
		AverageCost:   h.AverageCost,
		TotalCost:     h.TotalCost,
		CreatedAt:     h.CreatedAt,
		LastUpdatedAt: h.LastUpdatedAt,
	}
	if stock != nil {
		resp.Symbol = stock.Symbol
		resp.StockName = stock.Name
		resp.Market = string(stock.Market)
	}
	return resp
}

// ListStockHoldingsResponse wraps the list of holdings.
type ListStockHoldingsResponse struct {
	Holdings []StockHoldingResponse `json:"holdings"`
}
