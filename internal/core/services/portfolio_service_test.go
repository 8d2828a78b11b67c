package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/smapp-dev/stock_manager_app/internal/apperrors"
	"github.com/smapp-dev/stock_manager_app/internal/core/domain"
	"github.com/smapp-dev/stock_manager_app/internal/core/services"
	"github.com/smapp-dev/stock_manager_app/internal/dto"
)

type PortfolioServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockCashRepo    *MockCashTransactionRepository
	mockTradeRepo   *MockTradeRepository
	mockStockRepo   *MockStockRepository
	mockMarketData  *MockMarketDataService
	service         *services.PortfolioService
}

func (suite *PortfolioServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockCashRepo = new(MockCashTransactionRepository)
	suite.mockTradeRepo = new(MockTradeRepository)
	suite.mockStockRepo = new(MockStockRepository)
	suite.mockMarketData = new(MockMarketDataService)
	suite.service = services.NewPortfolioService(
		suite.mockAccountRepo,
		suite.mockCashRepo,
		suite.mockTradeRepo,
		suite.mockStockRepo,
		suite.mockMarketData,
		decimal.NewFromInt(1300),
	)
}

func (suite *PortfolioServiceTestSuite) TestGetPortfolioSummary_ConvertsEverythingToKRW() {
	ctx := context.Background()
	krwStockID := uuid.NewString()
	usdStockID := uuid.NewString()
	accounts := []domain.Account{
		{AccountID: uuid.NewString(), Currency: domain.KRW, CurrentBalance: decimal.NewFromInt(1000000)},
		{AccountID: uuid.NewString(), Currency: domain.USD, CurrentBalance: decimal.NewFromInt(100)},
	}
	holdings := []domain.StockHolding{
		{AccountID: accounts[0].AccountID, StockID: krwStockID, Quantity: decimal.NewFromInt(10), AverageCost: decimal.NewFromInt(70000), TotalCost: decimal.NewFromInt(700000)},
		{AccountID: accounts[1].AccountID, StockID: usdStockID, Quantity: decimal.NewFromInt(2), AverageCost: decimal.NewFromInt(150), TotalCost: decimal.NewFromInt(300)},
	}
	stocks := map[string]domain.Stock{
		krwStockID: {StockID: krwStockID, Symbol: "005930", Name: "Samsung Electronics", Market: domain.MarketKRX},
		usdStockID: {StockID: usdStockID, Symbol: "AAPL", Name: "Apple Inc.", Market: domain.MarketNAS},
	}

	suite.mockAccountRepo.On("ListAccounts", ctx, 1000, 0).Return(accounts, nil).Once()
	suite.mockTradeRepo.On("ListHoldings", ctx).Return(holdings, nil).Once()
	suite.mockStockRepo.On("FindStocksByIDs", ctx, mock.AnythingOfType("[]string")).Return(stocks, nil).Once()
	suite.mockMarketData.On("GetPrice", ctx, "005930", domain.MarketKRX).
		Return(&domain.StockQuote{Symbol: "005930", Price: decimal.NewFromInt(77000), Currency: domain.KRW}, nil).Once()
	suite.mockMarketData.On("GetPrice", ctx, "AAPL", domain.MarketNAS).
		Return(&domain.StockQuote{Symbol: "AAPL", Price: decimal.NewFromInt(200), Currency: domain.USD}, nil).Once()

	summary, err := suite.service.GetPortfolioSummary(ctx)

	suite.Require().NoError(err)
	suite.Require().NotNil(summary)

	// 1,000,000 KRW + 100 USD * 1300.
	suite.True(summary.TotalCash.Equal(decimal.NewFromInt(1130000)), "total cash was %s", summary.TotalCash)
	// 10 * 77,000 KRW + 2 * 200 USD * 1300.
	suite.True(summary.TotalStockValue.Equal(decimal.NewFromInt(1290000)), "total stock value was %s", summary.TotalStockValue)
	suite.True(summary.TotalPortfolioValue.Equal(decimal.NewFromInt(2420000)))

	suite.Require().Len(summary.Holdings, 2)
	// Largest position first.
	suite.Equal("005930", summary.Holdings[0].Symbol)
	suite.Equal("AAPL", summary.Holdings[1].Symbol)

	samsung := summary.Holdings[0]
	suite.True(samsung.ProfitLoss.Equal(decimal.NewFromInt(70000)))
	// 70,000 / 700,000 = 10.00%.
	suite.True(samsung.ProfitLossRate.Equal(decimal.NewFromInt(10)), "rate was %s", samsung.ProfitLossRate)
	suite.False(samsung.PriceMissing)

	suite.mockMarketData.AssertExpectations(suite.T())
}

func (suite *PortfolioServiceTestSuite) TestGetPortfolioSummary_PriceFailureMarksHolding() {
	ctx := context.Background()
	stockID := uuid.NewString()
	holdings := []domain.StockHolding{
		{AccountID: uuid.NewString(), StockID: stockID, Quantity: decimal.NewFromInt(3), AverageCost: decimal.NewFromInt(100), TotalCost: decimal.NewFromInt(300)},
	}
	stocks := map[string]domain.Stock{
		stockID: {StockID: stockID, Symbol: "GME", Name: "GameStop", Market: domain.MarketNYS},
	}

	suite.mockAccountRepo.On("ListAccounts", ctx, 1000, 0).Return([]domain.Account{}, nil).Once()
	suite.mockTradeRepo.On("ListHoldings", ctx).Return(holdings, nil).Once()
	suite.mockStockRepo.On("FindStocksByIDs", ctx, mock.AnythingOfType("[]string")).Return(stocks, nil).Once()
	suite.mockMarketData.On("GetPrice", ctx, "GME", domain.MarketNYS).Return(nil, apperrors.ErrNotFound).Once()

	summary, err := suite.service.GetPortfolioSummary(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(summary.Holdings, 1)
	suite.True(summary.Holdings[0].PriceMissing)
	suite.True(summary.Holdings[0].CurrentValue.IsZero())
	suite.True(summary.TotalStockValue.IsZero())
	suite.mockMarketData.AssertExpectations(suite.T())
}

func (suite *PortfolioServiceTestSuite) TestListCombinedTransactions_MergesNewestFirst() {
	ctx := context.Background()
	accountID := uuid.NewString()
	stockID := uuid.NewString()
	cashTxns := []domain.CashTransaction{
		{TransactionID: "c-2", AccountID: accountID, Type: domain.Deposit, Date: time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(50000), Currency: domain.KRW},
		{TransactionID: "c-1", AccountID: accountID, Type: domain.Withdrawal, Date: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(10000), Currency: domain.KRW},
	}
	trades := []domain.StockTransaction{
		{TransactionID: "t-1", AccountID: accountID, StockID: stockID, Type: domain.Buy, Date: time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC), Quantity: decimal.NewFromInt(2), PricePerShare: decimal.NewFromInt(70000), Fee: decimal.NewFromInt(100), Currency: domain.KRW},
	}
	stocks := map[string]domain.Stock{
		stockID: {StockID: stockID, Symbol: "005930", Name: "Samsung Electronics", Market: domain.MarketKRX},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(&domain.Account{AccountID: accountID}, nil).Once()
	suite.mockCashRepo.On("ListCashTransactions", ctx, mock.Anything, 50, 0).Return(cashTxns, nil).Once()
	suite.mockTradeRepo.On("ListTrades", ctx, mock.Anything, 50, 0).Return(trades, nil).Once()
	suite.mockStockRepo.On("FindStocksByIDs", ctx, mock.AnythingOfType("[]string")).Return(stocks, nil).Once()

	feed, err := suite.service.ListCombinedTransactions(ctx, accountID, dto.ListCombinedTransactionsParams{Limit: 50})

	suite.Require().NoError(err)
	suite.Require().Len(feed, 3)
	suite.Equal("t-1", feed[0].TransactionID)
	suite.Equal("STOCK", feed[0].Kind)
	suite.Equal("005930", feed[0].Symbol)
	// Buys show the cash-side amount including the fee.
	suite.True(feed[0].Amount.Equal(decimal.NewFromInt(140100)))
	suite.Equal("c-2", feed[1].TransactionID)
	suite.Equal("CASH", feed[1].Kind)
	suite.Equal("c-1", feed[2].TransactionID)
	suite.mockCashRepo.AssertExpectations(suite.T())
	suite.mockTradeRepo.AssertExpectations(suite.T())
}

func (suite *PortfolioServiceTestSuite) TestListCombinedTransactions_OffsetWindow() {
	ctx := context.Background()
	accountID := uuid.NewString()
	cashTxns := []domain.CashTransaction{
		{TransactionID: "c-3", AccountID: accountID, Type: domain.Deposit, Date: time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(300), Currency: domain.KRW},
		{TransactionID: "c-2", AccountID: accountID, Type: domain.Deposit, Date: time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(200), Currency: domain.KRW},
		{TransactionID: "c-1", AccountID: accountID, Type: domain.Deposit, Date: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(100), Currency: domain.KRW},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(&domain.Account{AccountID: accountID}, nil).Once()
	// Both sources are asked for limit+offset rows so the merged window is complete.
	suite.mockCashRepo.On("ListCashTransactions", ctx, mock.Anything, 3, 0).Return(cashTxns, nil).Once()
	suite.mockTradeRepo.On("ListTrades", ctx, mock.Anything, 3, 0).Return([]domain.StockTransaction{}, nil).Once()
	suite.mockStockRepo.On("FindStocksByIDs", ctx, mock.AnythingOfType("[]string")).Return(map[string]domain.Stock{}, nil).Once()

	feed, err := suite.service.ListCombinedTransactions(ctx, accountID, dto.ListCombinedTransactionsParams{Limit: 2, Offset: 1})

	suite.Require().NoError(err)
	suite.Require().Len(feed, 2)
	suite.Equal("c-2", feed[0].TransactionID)
	suite.Equal("c-1", feed[1].TransactionID)
}

func (suite *PortfolioServiceTestSuite) TestListCombinedTransactions_UnknownAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	feed, err := suite.service.ListCombinedTransactions(ctx, accountID, dto.ListCombinedTransactionsParams{Limit: 50})

	suite.Require().Error(err)
	suite.Nil(feed)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockCashRepo.AssertNotCalled(suite.T(), "ListCashTransactions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPortfolioServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PortfolioServiceTestSuite))
}
