package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashTransactionType is the kind of cash movement on an account.
type CashTransactionType string

const (
	Deposit    CashTransactionType = "DEPOSIT"
	Withdrawal CashTransactionType = "WITHDRAWAL"
	Dividend   CashTransactionType = "DIVIDEND"
	Interest   CashTransactionType = "INTEREST"
)

// IsValid reports whether t is one of the recognised cash transaction types.
func (t CashTransactionType) IsValid() bool {
	switch t {
	case Deposit, Withdrawal, Dividend, Interest:
		return true
	}
	return false
}

// CashTransaction is a single cash movement on exactly one account.
type CashTransaction struct {
	TransactionID string              `json:"transactionID"`
	AccountID     string              `json:"accountID"`
	Type          CashTransactionType `json:"type"`
	Date          time.Time           `json:"date"`
	Amount        decimal.Decimal     `json:"amount"` // always positive; sign comes from Type
	Currency      Currency            `json:"currency"`
	ExchangeRate  *decimal.Decimal    `json:"exchangeRate,omitempty"`
	ExchangeFee   *decimal.Decimal    `json:"exchangeFee,omitempty"`
	Description   string              `json:"description"`
	AuditFields
}

// BalanceEffect returns the signed change this transaction applies to the
// owning account's cash balance. Deposits, dividends and interest increase the
// balance; withdrawals decrease it.
func (t CashTransaction) BalanceEffect() decimal.Decimal {
	if t.Type == Withdrawal {
		return t.Amount.Neg()
	}
	return t.Amount
}
