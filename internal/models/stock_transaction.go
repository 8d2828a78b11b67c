package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeType is the stored trade direction.
type TradeType string

// StockTransaction represents one row of the stock_transactions table.
type StockTransaction struct {
	TransactionID string           `db:"transaction_id"`
	AccountID     string           `db:"account_id"`
	StockID       string           `db:"stock_id"`
	Type          TradeType        `db:"transaction_type"`
	Date          time.Time        `db:"transaction_date"`
	Quantity      decimal.Decimal  `db:"quantity"`
	PricePerShare decimal.Decimal  `db:"price_per_share"`
	Fee           decimal.Decimal  `db:"fee"`
	Currency      Currency         `db:"currency"`
	ExchangeRate  *decimal.Decimal `db:"exchange_rate"`
	AuditFields
}
