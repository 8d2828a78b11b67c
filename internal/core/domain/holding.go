package domain

import (
	"github.com/shopspring/decimal"
)

// StockHolding is the derived position for one (account, stock) pair. It is a
// pure function of the pair's trade history: recomputed on every trade
// mutation, never patched incrementally. At most one holding exists per pair,
// and a pair whose replayed quantity reaches zero has no holding row at all.
type StockHolding struct {
	HoldingID   string          `json:"holdingID"`
	AccountID   string          `json:"accountID"`
	StockID     string          `json:"stockID"`
	Quantity    decimal.Decimal `json:"quantity"`
	AverageCost decimal.Decimal `json:"averageCost"`
	TotalCost   decimal.Decimal `json:"totalCost"`
	AuditFields
}
