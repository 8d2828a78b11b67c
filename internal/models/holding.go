package models

import (
	"github.com/shopspring/decimal"
)

// StockHolding represents one row of the stock_holdings table.
// (account_id, stock_id) is unique; rows exist only for non-zero positions.
type StockHolding struct {
	HoldingID   string          `db:"holding_id"`
	AccountID   string          `db:"account_id"`
	StockID     string          `db:"stock_id"`
	Quantity    decimal.Decimal `db:"quantity"`
	AverageCost decimal.Decimal `db:"average_cost"`
	TotalCost   decimal.Decimal `db:"total_cost"`
	AuditFields
}
