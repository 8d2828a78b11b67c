package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/smapp-dev/stock_manager_app/internal/core/domain"
)

// CreateCashTransactionRequest defines the data needed to record a cash movement.
type CreateCashTransactionRequest struct {
	AccountID    string                     `json:"accountID" binding:"required,uuid"`
	Type         domain.CashTransactionType `json:"type" binding:"required,oneof=DEPOSIT WITHDRAWAL DIVIDEND INTEREST"`
	Date         time.Time                  `json:"date" binding:"required"`
	Amount       decimal.Decimal            `json:"amount" binding:"required"`
	Currency     domain.Currency            `json:"currency" binding:"required,oneof=KRW USD"`
	ExchangeRate *decimal.Decimal           `json:"exchangeRate,omitempty"`
	ExchangeFee  *decimal.Decimal           `json:"exchangeFee,omitempty"`
	Description  string                     `json:"description" binding:"max=500"`
}

// UpdateCashTransactionRequest defines the fields allowed for updating a cash movement.
type UpdateCashTransactionRequest struct {
	AccountID    *string                     `json:"accountID" binding:"omitempty,uuid"`
	Type         *domain.CashTransactionType `json:"type" binding:"omitempty,oneof=DEPOSIT WITHDRAWAL DIVIDEND INTEREST"`
	Date         *time.Time                  `json:"date"`
	Amount       *decimal.Decimal            `json:"amount"`
	Currency     *domain.Currency            `json:"currency" binding:"omitempty,oneof=KRW USD"`
	ExchangeRate *decimal.Decimal            `json:"exchangeRate"`
	ExchangeFee  *decimal.Decimal            `json:"exchangeFee"`
	Description  *string                     `json:"description" binding:"omitempty,max=500"`
}

// CashTransactionResponse defines the data returned for a cash movement.
type CashTransactionResponse struct {
	TransactionID string                     `json:"transactionID"`
	AccountID     string                     `json:"accountID"`
	Type          domain.CashTransactionType `json:"type"`
	Date          time.Time                  `json:"date"`
	Amount        decimal.Decimal            `json:"amount"`
	Currency      domain.Currency            `json:"currency"`
	ExchangeRate  *decimal.Decimal           `json:"exchangeRate,omitempty"`
	ExchangeFee   *decimal.Decimal           `json:"exchangeFee,omitempty"`
	Description   string                     `json:"description"`
	CreatedAt     time.Time                  `json:"createdAt"`
	LastUpdatedAt time.Time                  `json:"lastUpdatedAt"`
}

// ToCashTransactionResponse converts a domain.CashTransaction to CashTransactionResponse.
func ToCashTransactionResponse(txn *domain.CashTransaction) CashTransactionResponse {
	return CashTransactionResponse{
		TransactionID: txn.TransactionID,
		AccountID:     txn.AccountID,
		Type:          txn.Type,
		Date:          txn.Date,
		Amount:        txn.Amount,
		Currency:      txn.Currency,
		ExchangeRate:  txn.ExchangeRate,
		ExchangeFee:   txn.ExchangeFee,
		Description:   txn.Description,
		CreatedAt:     txn.CreatedAt,
		LastUpdatedAt: txn.LastUpdatedAt,
	}
}

// ToCashTransactionResponses converts a slice of domain cash transactions.
func ToCashTransactionResponses(txns []domain.CashTransaction) []CashTransactionResponse {
	out := make([]CashTransactionResponse, 0, len(txns))
	for i := range txns {
		out = append(out, ToCashTransactionResponse(&txns[i]))
	}
	return out
}

// ListCashTransactionsParams defines query parameters for listing cash movements.
type ListCashTransactionsParams struct {
	Limit     int                         `form:"limit,default=50"`
	Offset    int                         `form:"offset,default=0"`
	StartDate time.Time                   `form:"startDate" time_format:"2006-01-02"`
	EndDate   time.Time                   `form:"endDate" time_format:"2006-01-02"`
	Type      *domain.CashTransactionType `form:"type" binding:"omitempty,oneof=DEPOSIT WITHDRAWAL DIVIDEND INTEREST"`
}

// ListCashTransactionsResponse wraps the list of cash movements.
type ListCashTransactionsResponse struct {
	Transactions []CashTransactionResponse `json:"transactions"`
}
