package services_test

import (
	"context"
	"fmt"
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

type TradeServiceTestSuite struct {
	suite.Suite
	mockTradeRepo   *MockTradeRepository
	mockAccountRepo *MockAccountRepository
	mockStockSvc    *MockStockService
	service         *services.TradeService
}

func (suite *TradeServiceTestSuite) SetupTest() {
	suite.mockTradeRepo = new(MockTradeRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockStockSvc = new(MockStockService)
	suite.service = services.NewTradeService(suite.mockTradeRepo, suite.mockAccountRepo, suite.mockStockSvc)
}

func (suite *TradeServiceTestSuite) samsungRef() dto.StockRef {
	return dto.StockRef{Symbol: "005930", Name: "Samsung Electronics", Market: domain.MarketKRX}
}

func (suite *TradeServiceTestSuite) TestRecordTrade_BuyDebitsCash() {
	ctx := context.Background()
	accountID := uuid.NewString()
	stockID := uuid.NewString()
	req := dto.CreateStockTransactionRequest{
		AccountID:     accountID,
		Stock:         suite.samsungRef(),
		Type:          domain.Buy,
		Date:          time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
		Quantity:      decimal.NewFromInt(10),
		PricePerShare: decimal.NewFromInt(70000),
		Fee:           decimal.NewFromInt(350),
		Currency:      domain.KRW,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(&domain.Account{AccountID: accountID}, nil).Once()
	suite.mockStockSvc.On("FindOrCreateStock", ctx, req.Stock).Return(&domain.Stock{StockID: stockID, Symbol: "005930"}, nil).Once()
	// 10 * 70000 + 350 fee leaves the account.
	suite.mockTradeRepo.On("SaveTrade", ctx, mock.AnythingOfType("domain.StockTransaction"),
		balanceChangesFor(map[string]decimal.Decimal{accountID: decimal.NewFromInt(-700350)}),
	).Return(nil).Once()

	txn, err := suite.service.RecordTrade(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.NotEmpty(txn.TransactionID)
	suite.Equal(stockID, txn.StockID)
	suite.Equal(domain.Buy, txn.Type)
	suite.True(txn.Quantity.Equal(req.Quantity))
	suite.mockTradeRepo.AssertExpectations(suite.T())
	suite.mockStockSvc.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *TradeServiceTestSuite) TestRecordTrade_SellCreditsCashNetOfFee() {
	ctx := context.Background()
	accountID := uuid.NewString()
	stockID := uuid.NewString()
	req := dto.CreateStockTransactionRequest{
		AccountID:     accountID,
		Stock:         suite.samsungRef(),
		Type:          domain.Sell,
		Date:          time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC),
		Quantity:      decimal.NewFromInt(5),
		PricePerShare: decimal.NewFromInt(72000),
		Fee:           decimal.NewFromInt(180),
		Currency:      domain.KRW,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(&domain.Account{AccountID: accountID}, nil).Once()
	suite.mockStockSvc.On("FindOrCreateStock", ctx, req.Stock).Return(&domain.Stock{StockID: stockID, Symbol: "005930"}, nil).Once()
	// 5 * 72000 - 180 fee arrives on the account.
	suite.mockTradeRepo.On("SaveTrade", ctx, mock.AnythingOfType("domain.StockTransaction"),
		balanceChangesFor(map[string]decimal.Decimal{accountID: decimal.NewFromInt(359820)}),
	).Return(nil).Once()

	_, err := suite.service.RecordTrade(ctx, req)

	suite.Require().NoError(err)
	suite.mockTradeRepo.AssertExpectations(suite.T())
}

func (suite *TradeServiceTestSuite) TestRecordTrade_RejectsFractionalQuantity() {
	ctx := context.Background()
	req := dto.CreateStockTransactionRequest{
		AccountID:     uuid.NewString(),
		Stock:         suite.samsungRef(),
		Type:          domain.Buy,
		Date:          time.Now(),
		Quantity:      decimal.RequireFromString("1.5"),
		PricePerShare: decimal.NewFromInt(70000),
		Currency:      domain.KRW,
	}

	txn, err := suite.service.RecordTrade(ctx, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything)
	suite.mockTradeRepo.AssertNotCalled(suite.T(), "SaveTrade", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TradeServiceTestSuite) TestRecordTrade_RejectsNonPositivePrice() {
	ctx := context.Background()
	req := dto.CreateStockTransactionRequest{
		AccountID:     uuid.NewString(),
		Stock:         suite.samsungRef(),
		Type:          domain.Buy,
		Date:          time.Now(),
		Quantity:      decimal.NewFromInt(10),
		PricePerShare: decimal.Zero,
		Currency:      domain.KRW,
	}

	_, err := suite.service.RecordTrade(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TradeServiceTestSuite) TestRecordTrade_RejectsNegativeFee() {
	ctx := context.Background()
	req := dto.CreateStockTransactionRequest{
		AccountID:     uuid.NewString(),
		Stock:         suite.samsungRef(),
		Type:          domain.Buy,
		Date:          time.Now(),
		Quantity:      decimal.NewFromInt(10),
		PricePerShare: decimal.NewFromInt(70000),
		Fee:           decimal.NewFromInt(-1),
		Currency:      domain.KRW,
	}

	_, err := suite.service.RecordTrade(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TradeServiceTestSuite) TestRecordTrade_OversellRolledBack() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := dto.CreateStockTransactionRequest{
		AccountID:     accountID,
		Stock:         suite.samsungRef(),
		Type:          domain.Sell,
		Date:          time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Quantity:      decimal.NewFromInt(100),
		PricePerShare: decimal.NewFromInt(70000),
		Currency:      domain.KRW,
	}
	oversellErr := fmt.Errorf("%w: sell of 100 exceeds held 10", apperrors.ErrValidation)

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(&domain.Account{AccountID: accountID}, nil).Once()
	suite.mockStockSvc.On("FindOrCreateStock", ctx, req.Stock).Return(&domain.Stock{StockID: uuid.NewString()}, nil).Once()
	suite.mockTradeRepo.On("SaveTrade", ctx, mock.AnythingOfType("domain.StockTransaction"), mock.Anything).Return(oversellErr).Once()

	txn, err := suite.service.RecordTrade(ctx, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTradeRepo.AssertExpectations(suite.T())
}

func (suite *TradeServiceTestSuite) TestUpdateTrade_QuantityChange() {
	ctx := context.Background()
	accountID := uuid.NewString()
	stockID := uuid.NewString()
	transactionID := uuid.NewString()
	existing := &domain.StockTransaction{
		TransactionID: transactionID,
		AccountID:     accountID,
		StockID:       stockID,
		Type:          domain.Buy,
		Date:          time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Quantity:      decimal.NewFromInt(10),
		PricePerShare: decimal.NewFromInt(1000),
		Fee:           decimal.Zero,
		Currency:      domain.KRW,
	}
	newQuantity := decimal.NewFromInt(15)

	suite.mockTradeRepo.On("FindTradeByID", ctx, transactionID).Return(existing, nil).Once()
	// Old buy refunded (+10000), new buy charged (-15000).
	suite.mockTradeRepo.On("UpdateTrade", ctx, mock.AnythingOfType("domain.StockTransaction"),
		domain.PairKey{AccountID: accountID, StockID: stockID},
		balanceChangesFor(map[string]decimal.Decimal{accountID: decimal.NewFromInt(-5000)}),
	).Return(nil).Once()

	updated, err := suite.service.UpdateTrade(ctx, transactionID, dto.UpdateStockTransactionRequest{Quantity: &newQuantity})

	suite.Require().NoError(err)
	suite.True(updated.Quantity.Equal(newQuantity))
	suite.Equal(accountID, updated.AccountID)
	suite.mockTradeRepo.AssertExpectations(suite.T())
}

func (suite *TradeServiceTestSuite) TestUpdateTrade_MoveToAnotherAccount() {
	ctx := context.Background()
	oldAccountID := uuid.NewString()
	newAccountID := uuid.NewString()
	stockID := uuid.NewString()
	transactionID := uuid.NewString()
	existing := &domain.StockTransaction{
		TransactionID: transactionID,
		AccountID:     oldAccountID,
		StockID:       stockID,
		Type:          domain.Buy,
		Date:          time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Quantity:      decimal.NewFromInt(2),
		PricePerShare: decimal.NewFromInt(300),
		Fee:           decimal.Zero,
		Currency:      domain.KRW,
	}

	suite.mockTradeRepo.On("FindTradeByID", ctx, transactionID).Return(existing, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, newAccountID).Return(&domain.Account{AccountID: newAccountID}, nil).Once()
	// The old pair is handed over so both positions get recomputed.
	suite.mockTradeRepo.On("UpdateTrade", ctx,
		mock.MatchedBy(func(txn domain.StockTransaction) bool {
			return txn.AccountID == newAccountID && txn.StockID == stockID
		}),
		domain.PairKey{AccountID: oldAccountID, StockID: stockID},
		balanceChangesFor(map[string]decimal.Decimal{
			oldAccountID: decimal.NewFromInt(600),
			newAccountID: decimal.NewFromInt(-600),
		}),
	).Return(nil).Once()

	updated, err := suite.service.UpdateTrade(ctx, transactionID, dto.UpdateStockTransactionRequest{AccountID: &newAccountID})

	suite.Require().NoError(err)
	suite.Equal(newAccountID, updated.AccountID)
	suite.mockTradeRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *TradeServiceTestSuite) TestUpdateTrade_RejectsInvalidPatchedAmounts() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	existing := &domain.StockTransaction{
		TransactionID: transactionID,
		AccountID:     uuid.NewString(),
		StockID:       uuid.NewString(),
		Type:          domain.Buy,
		Quantity:      decimal.NewFromInt(10),
		PricePerShare: decimal.NewFromInt(1000),
		Currency:      domain.KRW,
	}
	badQuantity := decimal.NewFromInt(-3)

	suite.mockTradeRepo.On("FindTradeByID", ctx, transactionID).Return(existing, nil).Once()

	updated, err := suite.service.UpdateTrade(ctx, transactionID, dto.UpdateStockTransactionRequest{Quantity: &badQuantity})

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTradeRepo.AssertNotCalled(suite.T(), "UpdateTrade", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TradeServiceTestSuite) TestDeleteTrade_ReversesCashEffect() {
	ctx := context.Background()
	accountID := uuid.NewString()
	stockID := uuid.NewString()
	transactionID := uuid.NewString()
	existing := &domain.StockTransaction{
		TransactionID: transactionID,
		AccountID:     accountID,
		StockID:       stockID,
		Type:          domain.Sell,
		Date:          time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Quantity:      decimal.NewFromInt(4),
		PricePerShare: decimal.NewFromInt(500),
		Fee:           decimal.NewFromInt(20),
		Currency:      domain.KRW,
	}

	suite.mockTradeRepo.On("FindTradeByID", ctx, transactionID).Return(existing, nil).Once()
	// The sell credited 1980, deleting it takes the cash back.
	suite.mockTradeRepo.On("DeleteTrade", ctx, transactionID,
		domain.PairKey{AccountID: accountID, StockID: stockID},
		balanceChangesFor(map[string]decimal.Decimal{accountID: decimal.NewFromInt(-1980)}),
	).Return(nil).Once()

	err := suite.service.DeleteTrade(ctx, transactionID)

	suite.Require().NoError(err)
	suite.mockTradeRepo.AssertExpectations(suite.T())
}

func (suite *TradeServiceTestSuite) TestDeleteTrade_RejectedWhenLaterSellsDepend() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	existing := &domain.StockTransaction{
		TransactionID: transactionID,
		AccountID:     uuid.NewString(),
		StockID:       uuid.NewString(),
		Type:          domain.Buy,
		Quantity:      decimal.NewFromInt(10),
		PricePerShare: decimal.NewFromInt(1000),
		Currency:      domain.KRW,
	}
	replayErr := fmt.Errorf("%w: sell of 10 exceeds held 0", apperrors.ErrValidation)

	suite.mockTradeRepo.On("FindTradeByID", ctx, transactionID).Return(existing, nil).Once()
	suite.mockTradeRepo.On("DeleteTrade", ctx, transactionID, existing.Pair(), mock.Anything).Return(replayErr).Once()

	err := suite.service.DeleteTrade(ctx, transactionID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTradeRepo.AssertExpectations(suite.T())
}

func (suite *TradeServiceTestSuite) TestGetHoldingsByAccount_UnknownAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	holdings, err := suite.service.GetHoldingsByAccount(ctx, accountID)

	suite.Require().Error(err)
	suite.Nil(holdings)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTradeRepo.AssertNotCalled(suite.T(), "FindHoldingsByAccount", mock.Anything, mock.Anything)
}

func (suite *TradeServiceTestSuite) TestGetHoldingsByAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	expected := []domain.StockHolding{{
		HoldingID:   uuid.NewString(),
		AccountID:   accountID,
		StockID:     uuid.NewString(),
		Quantity:    decimal.NewFromInt(10),
		AverageCost: decimal.NewFromInt(70035),
		TotalCost:   decimal.NewFromInt(700350),
	}}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(&domain.Account{AccountID: accountID}, nil).Once()
	suite.mockTradeRepo.On("FindHoldingsByAccount", ctx, accountID).Return(expected, nil).Once()

	holdings, err := suite.service.GetHoldingsByAccount(ctx, accountID)

	suite.Require().NoError(err)
	suite.Equal(expected, holdings)
	suite.mockTradeRepo.AssertExpectations(suite.T())
}

func (suite *TradeServiceTestSuite) TestGetHolding_BySymbol() {
	ctx := context.Background()
	accountID := uuid.NewString()
	stockID := uuid.NewString()
	expected := &domain.StockHolding{
		HoldingID: uuid.NewString(),
		AccountID: accountID,
		StockID:   stockID,
		Quantity:  decimal.NewFromInt(10),
	}

	suite.mockStockSvc.On("GetStockBySymbol", ctx, "005930").Return(&domain.Stock{StockID: stockID, Symbol: "005930"}, nil).Once()
	suite.mockTradeRepo.On("FindHoldingByPair", ctx, domain.PairKey{AccountID: accountID, StockID: stockID}).Return(expected, nil).Once()

	holding, err := suite.service.GetHolding(ctx, accountID, "005930")

	suite.Require().NoError(err)
	suite.Equal(expected, holding)
	suite.mockTradeRepo.AssertExpectations(suite.T())
	suite.mockStockSvc.AssertExpectations(suite.T())
}

func (suite *TradeServiceTestSuite) TestGetHolding_FlatPositionNotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()
	stockID := uuid.NewString()

	suite.mockStockSvc.On("GetStockBySymbol", ctx, "005930").Return(&domain.Stock{StockID: stockID, Symbol: "005930"}, nil).Once()
	suite.mockTradeRepo.On("FindHoldingByPair", ctx, domain.PairKey{AccountID: accountID, StockID: stockID}).Return(nil, apperrors.ErrNotFound).Once()

	holding, err := suite.service.GetHolding(ctx, accountID, "005930")

	suite.Require().Error(err)
	suite.Nil(holding)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTradeRepo.AssertExpectations(suite.T())
}

func TestTradeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TradeServiceTestSuite))
}
