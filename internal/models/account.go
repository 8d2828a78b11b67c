package models

import (
	"github.com/shopspring/decimal"
)

// AccountType is the brokerage account category as stored.
type AccountType string

// Currency is the settlement currency as stored.
type Currency string

// Account represents one row of the accounts table.
type Account struct {
	AccountID      string          `db:"account_id"`
	OwnerName      string          `db:"owner_name"`
	Broker         string          `db:"broker"`
	AccountNumber  string          `db:"account_number"`
	AccountType    AccountType     `db:"account_type"`
	Currency       Currency        `db:"currency"`
	InitialBalance decimal.Decimal `db:"initial_balance"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	AuditFields
}
