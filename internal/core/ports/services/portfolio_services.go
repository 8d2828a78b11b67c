package services

import (
	"context"

	"github.com/smapp-dev/stock_manager_app/internal/core/domain"
	"github.com/smapp-dev/stock_manager_app/internal/dto"
)

// PortfolioSvcFacade defines the aggregated reporting operations
type PortfolioSvcFacade interface {
	// GetPortfolioSummary values every holding at its latest price and sums
	// cash across all accounts, expressed in KRW. Price lookup failures are
	// reported per holding, never as an overall error.
	GetPortfolioSummary(ctx context.Context) (*domain.PortfolioSummary, error)

	// ListCombinedTransactions merges the cash and trade history of one
	// account into a single feed ordered by date descending.
	ListCombinedTransactions(ctx context.Context, accountID string, params dto.ListCombinedTransactionsParams) ([]dto.CombinedTransactionResponse, error)
}
