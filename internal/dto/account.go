package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/smapp-dev/stock_manager_app/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	OwnerName      string             `json:"ownerName" binding:"required,max=100"`
	Broker         string             `json:"broker" binding:"required,max=100"`
	AccountNumber  string             `json:"accountNumber" binding:"required,max=50"`
	AccountType    domain.AccountType `json:"accountType" binding:"required,oneof=PENSION IRP ISA CMA GENERAL FOREIGN"`
	Currency       domain.Currency    `json:"currency" binding:"required,oneof=KRW USD"`
	InitialBalance decimal.Decimal    `json:"initialBalance"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	OwnerName     *string             `json:"ownerName" binding:"omitempty,max=100"`
	Broker        *string             `json:"broker" binding:"omitempty,max=100"`
	AccountNumber *string             `json:"accountNumber" binding:"omitempty,max=50"`
	AccountType   *domain.AccountType `json:"accountType" binding:"omitempty,oneof=PENSION IRP ISA CMA GENERAL FOREIGN"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID      string             `json:"accountID"`
	OwnerName      string             `json:"ownerName"`
	Broker         string             `json:"broker"`
	AccountNumber  string             `json:"accountNumber"`
	AccountType    domain.AccountType `json:"accountType"`
	Currency       domain.Currency    `json:"currency"`
	InitialBalance decimal.Decimal    `json:"initialBalance"`
	CurrentBalance decimal.Decimal    `json:"currentBalance"`
	CreatedAt      time.Time          `json:"createdAt"`
	LastUpdatedAt  time.Time          `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      acc.AccountID,
		OwnerName:      acc.OwnerName,
		Broker:         acc.Broker,
		AccountNumber:  acc.AccountNumber,
		AccountType:    acc.AccountType,
		Currency:       acc.Currency,
		InitialBalance: acc.InitialBalance,
		CurrentBalance: acc.CurrentBalance,
		CreatedAt:      acc.CreatedAt,
		LastUpdatedAt:  acc.LastUpdatedAt,
	}
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
