package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smapp-dev/stock_manager_app/internal/core/domain"
)

// StockTransactionFilter narrows trade listings. Nil fields are not applied.
type StockTransactionFilter struct {
	AccountID *string
	StartDate *time.Time
	EndDate   *time.Time
	Type      *domain.TradeType
	Symbol    *string
	Market    *domain.MarketCode
}

// TradeReader defines read operations for stock transaction data
type TradeReader interface {
	// FindTradeByID retrieves a specific stock transaction by its ID.
	FindTradeByID(ctx context.Context, transactionID string) (*domain.StockTransaction, error)

	// ListTrades retrieves a filtered, paginated list of stock transactions, newest first.
	ListTrades(ctx context.Context, filter StockTransactionFilter, limit int, offset int) ([]domain.StockTransaction, error)

	// ListTradesByPair retrieves the complete trade history of one
	// (account, stock) pair ordered ascending by (date, transaction id).
	ListTradesByPair(ctx context.Context, pair domain.PairKey) ([]domain.StockTransaction, error)
}

// TradeWriter defines the atomic trade mutations. Each call applies the row
// change, replays the affected pair histories into fresh holding snapshots,
// and applies the supplied account balance deltas, all in one database
// transaction; replay failure (oversell) rolls everything back.
type TradeWriter interface {
	// SaveTrade persists a new stock transaction and recomputes its pair's holding.
	SaveTrade(ctx context.Context, txn domain.StockTransaction, balanceChanges map[string]decimal.Decimal) error

	// UpdateTrade overwrites an existing stock transaction and recomputes the
	// holdings of oldPair and of the transaction's (possibly different) new pair.
	UpdateTrade(ctx context.Context, txn domain.StockTransaction, oldPair domain.PairKey, balanceChanges map[string]decimal.Decimal) error

	// DeleteTrade removes a stock transaction and recomputes its pair's holding.
	DeleteTrade(ctx context.Context, transactionID string, pair domain.PairKey, balanceChanges map[string]decimal.Decimal) error
}

// HoldingReader defines read operations for derived holdings
type HoldingReader interface {
	// FindHoldingsByAccount retrieves all holdings of one account.
	FindHoldingsByAccount(ctx context.Context, accountID string) ([]domain.StockHolding, error)

	// FindHoldingByPair retrieves the holding of one (account, stock) pair.
	FindHoldingByPair(ctx context.Context, pair domain.PairKey) (*domain.StockHolding, error)

	// ListHoldings retrieves every holding in the system.
	ListHoldings(ctx context.Context) ([]domain.StockHolding, error)
}

// TradeRepositoryFacade combines all trade and holding repository interfaces.
type TradeRepositoryFacade interface {
	TradeReader
	TradeWriter
	HoldingReader
}
