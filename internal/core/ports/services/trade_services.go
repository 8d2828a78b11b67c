package services

import (
	"context"

	"github.com/smapp-dev/stock_manager_app/internal/core/domain"
	"github.com/smapp-dev/stock_manager_app/internal/dto"
)

// TradeReaderSvc defines read operations for trades
type TradeReaderSvc interface {
	// GetTradeByID retrieves a specific trade.
	GetTradeByID(ctx context.Context, transactionID string) (*domain.StockTransaction, error)

	// ListTrades retrieves a filtered, paginated list of trades for an account.
	ListTrades(ctx context.Context, accountID string, params dto.ListStockTransactionsParams) ([]domain.StockTransaction, error)
}

// TradeWriterSvc defines write operations for trades. Every mutation replays
// the affected positions and adjusts account balances atomically; a mutation
// that would oversell any position at any point in history is rejected.
type TradeWriterSvc interface {
	// RecordTrade stores a buy or sell and refreshes the holding it touches.
	RecordTrade(ctx context.Context, req dto.CreateStockTransactionRequest) (*domain.StockTransaction, error)

	// UpdateTrade rewrites a trade. When the account or stock changes, both
	// the old and the new positions are refreshed.
	UpdateTrade(ctx context.Context, transactionID string, req dto.UpdateStockTransactionRequest) (*domain.StockTransaction, error)

	// DeleteTrade removes a trade and refreshes the position it belonged to.
	DeleteTrade(ctx context.Context, transactionID string) error
}

// HoldingReaderSvc defines read operations for derived positions
type HoldingReaderSvc interface {
	// GetHoldingsByAccount retrieves the open positions of one account.
	GetHoldingsByAccount(ctx context.Context, accountID string) ([]domain.StockHolding, error)

	// GetHolding retrieves one account's position in a single stock by symbol.
	GetHolding(ctx context.Context, accountID string, symbol string) (*domain.StockHolding, error)

	// ListHoldings retrieves every open position across all accounts.
	ListHoldings(ctx context.Context) ([]domain.StockHolding, error)
}

// TradeSvcFacade combines all trade and holding service interfaces
type TradeSvcFacade interface {
	TradeReaderSvc
	TradeWriterSvc
	HoldingReaderSvc
}
