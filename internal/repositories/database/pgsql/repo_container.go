package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/smapp-dev/stock_manager_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql repository against one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	cashRepo := newPgxCashTransactionRepository(dbPool, accountRepo)
	stockRepo := newPgxStockRepository(dbPool)
	tradeRepo := newPgxTradeRepository(dbPool, accountRepo)

	return portsrepo.RepositoryProvider{
		AccountRepo: accountRepo,
		CashRepo:    cashRepo,
		StockRepo:   stockRepo,
		TradeRepo:   tradeRepo,
	}
}
