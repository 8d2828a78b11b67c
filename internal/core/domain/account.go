package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType is the brokerage account category (Korean retail account kinds).
type AccountType string

const (
	Pension AccountType = "PENSION" // tax-advantaged pension savings
	IRP     AccountType = "IRP"     // individual retirement pension
	ISA     AccountType = "ISA"     // individual savings account
	CMA     AccountType = "CMA"     // cash management account
	General AccountType = "GENERAL" // general trading account
	Foreign AccountType = "FOREIGN" // foreign (US) stock account
)

// IsValid reports whether t is one of the recognised account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Pension, IRP, ISA, CMA, General, Foreign:
		return true
	}
	return false
}

// Account represents one brokerage account within the core domain.
// CurrentBalance is persisted cash; every cash transaction and the cash side of
// every stock transaction moves it through the repository layer.
type Account struct {
	AccountID      string          `json:"accountID"`
	OwnerName      string          `json:"ownerName"`
	Broker         string          `json:"broker"`
	AccountNumber  string          `json:"accountNumber"`
	AccountType    AccountType     `json:"accountType"`
	Currency       Currency        `json:"currency"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	AuditFields
}
