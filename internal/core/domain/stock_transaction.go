package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeType distinguishes buy and sell stock transactions.
type TradeType string

const (
	Buy  TradeType = "BUY"
	Sell TradeType = "SELL"
)

// IsValid reports whether t is BUY or SELL.
func (t TradeType) IsValid() bool {
	return t == Buy || t == Sell
}

// StockTransaction is a single trade of one stock in one account.
type StockTransaction struct {
	TransactionID string           `json:"transactionID"`
	AccountID     string           `json:"accountID"`
	StockID       string           `json:"stockID"`
	Type          TradeType        `json:"type"`
	Date          time.Time        `json:"date"`
	Quantity      decimal.Decimal  `json:"quantity"` // positive whole number of shares
	PricePerShare decimal.Decimal  `json:"pricePerShare"`
	Fee           decimal.Decimal  `json:"fee"`
	Currency      Currency         `json:"currency"`
	ExchangeRate  *decimal.Decimal `json:"exchangeRate,omitempty"`
	AuditFields
}

// TotalAmount is the gross trade value: quantity * price per share.
func (t StockTransaction) TotalAmount() decimal.Decimal {
	return t.Quantity.Mul(t.PricePerShare)
}

// NetAmount is the cash-side value of the trade: a buy costs total + fee,
// a sell yields total - fee.
func (t StockTransaction) NetAmount() decimal.Decimal {
	if t.Type == Buy {
		return t.TotalAmount().Add(t.Fee)
	}
	return t.TotalAmount().Sub(t.Fee)
}

// BalanceEffect returns the signed change this trade applies to the owning
// account's cash balance: buys decrease the balance by NetAmount, sells
// increase it by NetAmount.
func (t StockTransaction) BalanceEffect() decimal.Decimal {
	if t.Type == Buy {
		return t.NetAmount().Neg()
	}
	return t.NetAmount()
}

// PairKey identifies the (account, stock) pair a trade belongs to.
type PairKey struct {
	AccountID string
	StockID   string
}

// Pair returns the (account, stock) pair key of the trade.
func (t StockTransaction) Pair() PairKey {
	return PairKey{AccountID: t.AccountID, StockID: t.StockID}
}
