package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/smapp-dev/stock_manager_app/internal/core/domain"
	portsrepo "github.com/smapp-dev/stock_manager_app/internal/core/ports/repositories"
	portssvc "github.com/smapp-dev/stock_manager_app/internal/core/ports/services"
	"github.com/smapp-dev/stock_manager_app/internal/dto"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, now)
	return args.Error(0)
}

// --- Mock CashTransactionRepository ---

type MockCashTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.CashTransactionRepositoryFacade = (*MockCashTransactionRepository)(nil)

func (m *MockCashTransactionRepository) FindCashTransactionByID(ctx context.Context, transactionID string) (*domain.CashTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashTransaction), args.Error(1)
}

func (m *MockCashTransactionRepository) ListCashTransactions(ctx context.Context, filter portsrepo.CashTransactionFilter, limit int, offset int) ([]domain.CashTransaction, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashTransaction), args.Error(1)
}

func (m *MockCashTransactionRepository) SaveCashTransaction(ctx context.Context, txn domain.CashTransaction, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, txn, balanceChanges)
	return args.Error(0)
}

func (m *MockCashTransactionRepository) UpdateCashTransaction(ctx context.Context, txn domain.CashTransaction, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, txn, balanceChanges)
	return args.Error(0)
}

func (m *MockCashTransactionRepository) DeleteCashTransaction(ctx context.Context, transactionID string, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, transactionID, balanceChanges)
	return args.Error(0)
}

// --- Mock StockRepository ---

type MockStockRepository struct {
	mock.Mock
}

var _ portsrepo.StockRepositoryFacade = (*MockStockRepository)(nil)

func (m *MockStockRepository) FindStockByID(ctx context.Context, stockID string) (*domain.Stock, error) {
	args := m.Called(ctx, stockID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stock), args.Error(1)
}

func (m *MockStockRepository) FindStockBySymbol(ctx context.Context, symbol string) (*domain.Stock, error) {
	args := m.Called(ctx, symbol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stock), args.Error(1)
}

func (m *MockStockRepository) FindStocksByIDs(ctx context.Context, stockIDs []string) (map[string]domain.Stock, error) {
	args := m.Called(ctx, stockIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Stock), args.Error(1)
}

func (m *MockStockRepository) ListStocks(ctx context.Context, limit int, offset int) ([]domain.Stock, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Stock), args.Error(1)
}

func (m *MockStockRepository) SaveStock(ctx context.Context, stock domain.Stock) error {
	args := m.Called(ctx, stock)
	return args.Error(0)
}

func (m *MockStockRepository) UpdateStock(ctx context.Context, stock domain.Stock) error {
	args := m.Called(ctx, stock)
	return args.Error(0)
}

func (m *MockStockRepository) DeleteStock(ctx context.Context, stockID string) error {
	args := m.Called(ctx, stockID)
	return args.Error(0)
}

// --- Mock TradeRepository ---

type MockTradeRepository struct {
	mock.Mock
}

var _ portsrepo.TradeRepositoryFacade = (*MockTradeRepository)(nil)

func (m *MockTradeRepository) FindTradeByID(ctx context.Context, transactionID string) (*domain.StockTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockTransaction), args.Error(1)
}

func (m *MockTradeRepository) ListTrades(ctx context.Context, filter portsrepo.StockTransactionFilter, limit int, offset int) ([]domain.StockTransaction, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockTransaction), args.Error(1)
}

func (m *MockTradeRepository) ListTradesByPair(ctx context.Context, pair domain.PairKey) ([]domain.StockTransaction, error) {
	args := m.Called(ctx, pair)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockTransaction), args.Error(1)
}

func (m *MockTradeRepository) SaveTrade(ctx context.Context, txn domain.StockTransaction, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, txn, balanceChanges)
	return args.Error(0)
}

func (m *MockTradeRepository) UpdateTrade(ctx context.Context, txn domain.StockTransaction, oldPair domain.PairKey, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, txn, oldPair, balanceChanges)
	return args.Error(0)
}

func (m *MockTradeRepository) DeleteTrade(ctx context.Context, transactionID string, pair domain.PairKey, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, transactionID, pair, balanceChanges)
	return args.Error(0)
}

func (m *MockTradeRepository) FindHoldingsByAccount(ctx context.Context, accountID string) ([]domain.StockHolding, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockHolding), args.Error(1)
}

func (m *MockTradeRepository) FindHoldingByPair(ctx context.Context, pair domain.PairKey) (*domain.StockHolding, error) {
	args := m.Called(ctx, pair)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockHolding), args.Error(1)
}

func (m *MockTradeRepository) ListHoldings(ctx context.Context) ([]domain.StockHolding, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockHolding), args.Error(1)
}

// --- Mock StockService (as used by TradeService) ---

type MockStockService struct {
	mock.Mock
}

var _ portssvc.StockSvcFacade = (*MockStockService)(nil)

func (m *MockStockService) GetStockByID(ctx context.Context, stockID string) (*domain.Stock, error) {
	args := m.Called(ctx, stockID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stock), args.Error(1)
}

func (m *MockStockService) GetStockBySymbol(ctx context.Context, symbol string) (*domain.Stock, error) {
	args := m.Called(ctx, symbol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stock), args.Error(1)
}

func (m *MockStockService) ListStocks(ctx context.Context, limit int, offset int) ([]domain.Stock, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Stock), args.Error(1)
}

func (m *MockStockService) CreateStock(ctx context.Context, req dto.CreateStockRequest) (*domain.Stock, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stock), args.Error(1)
}

func (m *MockStockService) FindOrCreateStock(ctx context.Context, ref dto.StockRef) (*domain.Stock, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stock), args.Error(1)
}

func (m *MockStockService) UpdateStock(ctx context.Context, stockID string, req dto.UpdateStockRequest) (*domain.Stock, error) {
	args := m.Called(ctx, stockID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stock), args.Error(1)
}

func (m *MockStockService) DeleteStock(ctx context.Context, stockID string) error {
	args := m.Called(ctx, stockID)
	return args.Error(0)
}

// --- Mock MarketDataService ---

type MockMarketDataService struct {
	mock.Mock
}

var _ portssvc.MarketDataSvcFacade = (*MockMarketDataService)(nil)

func (m *MockMarketDataService) SearchStocks(ctx context.Context, query string) ([]domain.StockSearchResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockSearchResult), args.Error(1)
}

func (m *MockMarketDataService) GetPrice(ctx context.Context, symbol string, market domain.MarketCode) (*domain.StockQuote, error) {
	args := m.Called(ctx, symbol, market)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockQuote), args.Error(1)
}

func (m *MockMarketDataService) RefreshCache(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMarketDataService) ClearCache(ctx context.Context) {
	m.Called(ctx)
}
