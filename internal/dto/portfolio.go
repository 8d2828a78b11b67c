package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/smapp-dev/stock_manager_app/internal/core/domain"
)

// PortfolioSummaryResponse reports total cash and the valued holdings in KRW.
type PortfolioSummaryResponse struct {
	TotalCash           decimal.Decimal           `json:"totalCash"`
	TotalStockValue     decimal.Decimal           `json:"totalStockValue"`
	TotalPortfolioValue decimal.Decimal           `json:"totalPortfolioValue"`
	Holdings            []domain.HoldingValuation `json:"holdings"`
}

// ToPortfolioSummaryResponse converts a domain.PortfolioSummary.
func ToPortfolioSummaryResponse(s *domain.PortfolioSummary) PortfolioSummaryResponse {
	return PortfolioSummaryResponse{
		TotalCash:           s.TotalCash,
		TotalStockValue:     s.TotalStockValue,
		TotalPortfolioValue: s.TotalPortfolioValue,
		Holdings:            s.Holdings,
	}
}

// CombinedTransactionResponse is one entry of the merged cash and trade feed
// for an account, ordered by date descending.
type CombinedTransactionResponse struct {
	TransactionID string           `json:"transactionID"`
	Kind          string           `json:"kind"` // CASH or STOCK
	Type          string           `json:"type"`
	Date          time.Time        `json:"date"`
	Amount        decimal.Decimal  `json:"amount"`
	Currency      domain.Currency  `json:"currency"`
	Symbol        string           `json:"symbol,omitempty"`
	StockName     string           `json:"stockName,omitempty"`
	Quantity      *decimal.Decimal `json:"quantity,omitempty"`
	PricePerShare *decimal.Decimal `json:"pricePerShare,omitempty"`
	Description   string           `json:"description,omitempty"`
}

// ListCombinedTransactionsParams defines query parameters for the merged feed.
type ListCombinedTransactionsParams struct {
	Limit     int       `form:"limit,default=50"`
	Offset    int       `form:"offset,default=0"`
	StartDate time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate   time.Time `form:"endDate" time_format:"2006-01-02"`
}

// ListCombinedTransactionsResponse wraps the merged feed.
type ListCombinedTransactionsResponse struct {
	Transactions []CombinedTransactionResponse `json:"transactions"`
}
