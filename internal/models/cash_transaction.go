package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashTransactionType is the stored kind of cash movement.
type CashTransactionType string

// CashTransaction represents one row of the cash_transactions table.
type CashTransaction struct {
	TransactionID string              `db:"transaction_id"`
	AccountID     string              `db:"account_id"`
	Type          CashTransactionType `db:"transaction_type"`
	Date          time.Time           `db:"transaction_date"`
	Amount        decimal.Decimal     `db:"amount"`
	Currency      Currency            `db:"currency"`
	ExchangeRate  *decimal.Decimal    `db:"exchange_rate"`
	ExchangeFee   *decimal.Decimal    `db:"exchange_fee"`
	Description   string              `db:"description"`
	AuditFields
}
