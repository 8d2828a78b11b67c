package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/smapp-dev/stock_manager_app/internal/core/domain"
)

// CreateStockTransactionRequest defines the data needed to record a trade.
// The stock is referenced by symbol and registered automatically when unknown.
type CreateStockTransactionRequest struct {
	AccountID     string           `json:"accountID" binding:"required,uuid"`
	Stock         StockRef         `json:"stock" binding:"required"`
	Type          domain.TradeType `json:"type" binding:"required,oneof=BUY SELL"`
	Date          time.Time        `json:"date" binding:"required"`
	Quantity      decimal.Decimal  `json:"quantity" binding:"required"`
	PricePerShare decimal.Decimal  `json:"pricePerShare" binding:"required"`
	Fee           decimal.Decimal  `json:"fee"`
	Currency      domain.Currency  `json:"currency" binding:"required,oneof=KRW USD"`
	ExchangeRate  *decimal.Decimal `json:"exchangeRate,omitempty"`
}

// UpdateStockTransactionRequest defines the fields allowed for updating a trade.
type UpdateStockTransactionRequest struct {
	AccountID     *string           `json:"accountID" binding:"omitempty,uuid"`
	Stock         *StockRef         `json:"stock"`
	Type          *domain.TradeType `json:"type" binding:"omitempty,oneof=BUY SELL"`
	Date          *time.Time        `json:"date"`
	Quantity      *decimal.Decimal  `json:"quantity"`
	PricePerShare *decimal.Decimal  `json:"pricePerShare"`
	Fee           *decimal.Decimal  `json:"fee"`
	Currency      *domain.Currency  `json:"currency" binding:"omitempty,oneof=KRW USD"`
	ExchangeRate  *decimal.Decimal  `json:"exchangeRate"`
}

// StockTransactionResponse defines the data returned for a trade.
type StockTransactionResponse struct {
	TransactionID string           `json:"transactionID"`
	AccountID     string           `json:"accountID"`
	StockID       string           `json:"stockID"`
	Symbol        string           `json:"symbol,omitempty"`
	StockName     string           `json:"stockName,omitempty"`
	Market        string           `json:"market,omitempty"`
	Type          domain.TradeType `json:"type"`
	Date          time.Time        `json:"date"`
	Quantity      decimal.Decimal  `json:"quantity"`
	PricePerShare decimal.Decimal  `json:"pricePerShare"`
	Fee           decimal.Decimal  `json:"fee"`
	Currency      domain.Currency  `json:"currency"`
	ExchangeRate  *decimal.Decimal `json:"exchangeRate,omitempty"`
	TotalAmount   decimal.Decimal  `json:"totalAmount"`
	NetAmount     decimal.Decimal  `json:"netAmount"`
	CreatedAt     time.Time        `json:"createdAt"`
	LastUpdatedAt time.Time        `json:"lastUpdatedAt"`
}

// ToStockTransactionResponse converts a domain trade, enriching it with the
// stock details when available.
func ToStockTransactionResponse(txn *domain.StockTransaction, stock *domain.Stock) StockTransactionResponse {
	resp := StockTransactionResponse{
		TransactionID: txn.TransactionID,
		AccountID:     txn.AccountID,
		StockID:       txn.StockID,
		Type:          txn.Type,
		Date:          txn.Date,
		Quantity:      txn.Quantity,
		PricePerShare: txn.PricePerShare,
		Fee:           txn.Fee,
		Currency:      txn.Currency,
		ExchangeRate:  txn.ExchangeRate,
		TotalAmount:   txn.TotalAmount(),
		NetAmount:     txn.NetAmount(),
		CreatedAt:     txn.CreatedAt,
		LastUpdatedAt: txn.LastUpdatedAt,
	}
	if stock != nil {
		resp.Symbol = stock.Symbol
		resp.StockName = stock.Name
		resp.Market = string(stock.Market)
	}
	return resp
}

// ListStockTransactionsParams defines query parameters for listing trades.
type ListStockTransactionsParams struct {
	Limit     int               `form:"limit,default=50"`
	Offset    int               `form:"offset,default=0"`
	StartDate time.Time         `form:"startDate" time_format:"2006-01-02"`
	EndDate   time.Time         `form:"endDate" time_format:"2006-01-02"`
	Type      *domain.TradeType `form:"type" binding:"omitempty,oneof=BUY SELL"`
	Symbol    *string           `form:"symbol"`
}

// ListStockTransactionsResponse wraps the list of trades.
type ListStockTransactionsResponse struct {
	Transactions []StockTransactionResponse `json:"transactions"`
}
