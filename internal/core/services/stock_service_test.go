package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/smapp-dev/stock_manager_app/internal/apperrors"
	"github.com/smapp-dev/stock_manager_app/internal/core/domain"
	"github.com/smapp-dev/stock_manager_app/internal/core/services"
	"github.com/smapp-dev/stock_manager_app/internal/dto"
)

type StockServiceTestSuite struct {
	suite.Suite
	mockRepo *MockStockRepository
	service  *services.StockService
}

func (suite *StockServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockStockRepository)
	suite.service = services.NewStockService(suite.mockRepo)
}

func (suite *StockServiceTestSuite) TestCreateStock_NormalizesSymbol() {
	ctx := context.Background()
	req := dto.CreateStockRequest{Symbol: " aapl ", Name: "Apple Inc.", Market: domain.MarketNAS}

	suite.mockRepo.On("SaveStock", ctx, mock.MatchedBy(func(s domain.Stock) bool {
		return s.Symbol == "AAPL"
	})).Return(nil).Once()

	stock, err := suite.service.CreateStock(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("AAPL", stock.Symbol)
	suite.NotEmpty(stock.StockID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *StockServiceTestSuite) TestFindOrCreateStock_ExistingSymbol() {
	ctx := context.Background()
	existing := &domain.Stock{StockID: uuid.NewString(), Symbol: "005930", Name: "Samsung Electronics", Market: domain.MarketKRX}

	suite.mockRepo.On("FindStockBySymbol", ctx, "005930").Return(existing, nil).Once()

	stock, err := suite.service.FindOrCreateStock(ctx, dto.StockRef{Symbol: "005930", Name: "Samsung Electronics", Market: domain.MarketKRX})

	suite.Require().NoError(err)
	suite.Equal(existing, stock)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveStock", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *StockServiceTestSuite) TestFindOrCreateStock_RegistersOnFirstSight() {
	ctx := context.Background()

	suite.mockRepo.On("FindStockBySymbol", ctx, "TSLA").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveStock", ctx, mock.MatchedBy(func(s domain.Stock) bool {
		return s.Symbol == "TSLA" && s.Market == domain.MarketNAS
	})).Return(nil).Once()

	stock, err := suite.service.FindOrCreateStock(ctx, dto.StockRef{Symbol: "tsla", Name: "Tesla", Market: domain.MarketNAS})

	suite.Require().NoError(err)
	suite.Equal("TSLA", stock.Symbol)
	suite.NotEmpty(stock.StockID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *StockServiceTestSuite) TestFindOrCreateStock_LostInsertRaceFallsBack() {
	ctx := context.Background()
	winner := &domain.Stock{StockID: uuid.NewString(), Symbol: "TSLA", Name: "Tesla", Market: domain.MarketNAS}

	suite.mockRepo.On("FindStockBySymbol", ctx, "TSLA").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveStock", ctx, mock.AnythingOfType("domain.Stock")).Return(apperrors.ErrDuplicate).Once()
	suite.mockRepo.On("FindStockBySymbol", ctx, "TSLA").Return(winner, nil).Once()

	stock, err := suite.service.FindOrCreateStock(ctx, dto.StockRef{Symbol: "TSLA", Name: "Tesla", Market: domain.MarketNAS})

	suite.Require().NoError(err)
	suite.Equal(winner, stock)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *StockServiceTestSuite) TestUpdateStock_InvalidMarket() {
	ctx := context.Background()
	stockID := uuid.NewString()
	existing := &domain.Stock{StockID: stockID, Symbol: "AAPL", Market: domain.MarketNAS}
	badMarket := domain.MarketCode("MOON")

	suite.mockRepo.On("FindStockByID", ctx, stockID).Return(existing, nil).Once()

	stock, err := suite.service.UpdateStock(ctx, stockID, dto.UpdateStockRequest{Market: &badMarket})

	suite.Require().Error(err)
	suite.Nil(stock)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateStock", mock.Anything, mock.Anything)
}

func (suite *StockServiceTestSuite) TestDeleteStock_ConflictWhenTraded() {
	ctx := context.Background()
	stockID := uuid.NewString()

	suite.mockRepo.On("DeleteStock", ctx, stockID).Return(apperrors.ErrConflict).Once()

	err := suite.service.DeleteStock(ctx, stockID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestStockServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StockServiceTestSuite))
}
