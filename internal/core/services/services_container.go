package services

import (
	portsrepo "github.com/smapp-dev/stock_manager_app/internal/core/ports/repositories"
	portssvc "github.com/smapp-dev/stock_manager_app/internal/core/ports/services"
	"github.com/smapp-dev/stock_manager_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, marketData portssvc.MarketDataSvcFacade) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Stock = NewStockService(repos.StockRepo)
	container.CashTransaction = NewCashTransactionService(repos.CashRepo, repos.AccountRepo)

	// Trade service registers unknown symbols through the stock service
	container.Trade = NewTradeService(repos.TradeRepo, repos.AccountRepo, container.Stock)

	container.MarketData = marketData
	container.Portfolio = NewPortfolioService(
		repos.AccountRepo,
		repos.CashRepo,
		repos.TradeRepo,
		repos.StockRepo,
		marketData,
		cfg.USDKRWFallbackRate,
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade         = (*AccountService)(nil)
	_ portssvc.CashTransactionSvcFacade = (*CashTransactionService)(nil)
	_ portssvc.StockSvcFacade           = (*StockService)(nil)
	_ portssvc.TradeSvcFacade           = (*TradeService)(nil)
	_ portssvc.PortfolioSvcFacade       = (*PortfolioService)(nil)
)
