package services

import (
	"context"

	"github.com/smapp-dev/stock_manager_app/internal/core/domain"
	"github.com/smapp-dev/stock_manager_app/internal/dto"
)

// CashTransactionReaderSvc defines read operations for cash movements
type CashTransactionReaderSvc interface {
	// GetCashTransactionByID retrieves a specific cash movement.
	GetCashTransactionByID(ctx context.Context, transactionID string) (*domain.CashTransaction, error)

	// ListCashTransactions retrieves a filtered, paginated list of cash
	// movements for an account.
	ListCashTransactions(ctx context.Context, accountID string, params dto.ListCashTransactionsParams) ([]domain.CashTransaction, error)
}

// CashTransactionWriterSvc defines write operations for cash movements.
// Every mutation adjusts the affected account balances atomically.
type CashTransactionWriterSvc interface {
	// CreateCashTransaction records a cash movement and applies its balance effect.
	CreateCashTransaction(ctx context.Context, req dto.CreateCashTransactionRequest) (*domain.CashTransaction, error)

	// UpdateCashTransaction rewrites a cash movement and applies the balance delta.
	UpdateCashTransaction(ctx context.Context, transactionID string, req dto.UpdateCashTransactionRequest) (*domain.CashTransaction, error)

	// DeleteCashTransaction removes a cash movement and reverses its balance effect.
	DeleteCashTransaction(ctx context.Context, transactionID string) error
}

// CashTransactionSvcFacade combines all cash transaction service interfaces
type CashTransactionSvcFacade interface {
	CashTransactionReaderSvc
	CashTransactionWriterSvc
}
