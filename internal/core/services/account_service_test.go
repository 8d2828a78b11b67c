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

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  *services.AccountService
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		OwnerName:      "Jiyoon",
		Broker:         "Kiwoom",
		AccountNumber:  "123-45-678901",
		AccountType:    domain.General,
		Currency:       domain.KRW,
		InitialBalance: decimal.NewFromInt(1000000),
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	created, err := suite.service.CreateAccount(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.AccountID)
	suite.Equal(req.OwnerName, created.OwnerName)
	suite.Equal(req.Broker, created.Broker)
	suite.Equal(req.AccountNumber, created.AccountNumber)
	suite.Equal(req.AccountType, created.AccountType)
	suite.Equal(req.Currency, created.Currency)
	suite.True(created.InitialBalance.Equal(req.InitialBalance))
	// Current balance starts at the opening balance.
	suite.True(created.CurrentBalance.Equal(req.InitialBalance))
	suite.WithinDuration(time.Now(), created.CreatedAt, time.Second)
	suite.WithinDuration(time.Now(), created.LastUpdatedAt, time.Second)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_SaveError() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		OwnerName:     "Jiyoon",
		Broker:        "Kiwoom",
		AccountNumber: "123-45-678901",
		AccountType:   domain.ISA,
		Currency:      domain.KRW,
	}
	saveErr := fmt.Errorf("db connection lost")

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(saveErr).Once()

	created, err := suite.service.CreateAccount(ctx, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, saveErr)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	expected := &domain.Account{AccountID: accountID, OwnerName: "Jiyoon"}

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(expected, nil).Once()

	account, err := suite.service.GetAccountByID(ctx, accountID)

	suite.Require().NoError(err)
	suite.Equal(expected, account)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.GetAccountByID(ctx, accountID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccounts_Success() {
	ctx := context.Background()
	expected := []domain.Account{
		{AccountID: uuid.NewString(), Broker: "Kiwoom"},
		{AccountID: uuid.NewString(), Broker: "Samsung"},
	}

	suite.mockRepo.On("ListAccounts", ctx, 20, 0).Return(expected, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, 20, 0)

	suite.Require().NoError(err)
	suite.Equal(expected, accounts)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccounts_EmptyNotNil() {
	ctx := context.Background()

	suite.mockRepo.On("ListAccounts", ctx, 20, 0).Return(nil, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, 20, 0)

	suite.Require().NoError(err)
	suite.NotNil(accounts)
	suite.Empty(accounts)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_PartialPatch() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{
		AccountID:     accountID,
		OwnerName:     "Jiyoon",
		Broker:        "Kiwoom",
		AccountNumber: "123-45-678901",
		AccountType:   domain.General,
		Currency:      domain.KRW,
	}
	newBroker := "Toss"

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Broker == newBroker && a.OwnerName == "Jiyoon"
	})).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, accountID, dto.UpdateAccountRequest{Broker: &newBroker})

	suite.Require().NoError(err)
	suite.Equal(newBroker, updated.Broker)
	// Untouched fields keep their values.
	suite.Equal("Jiyoon", updated.OwnerName)
	suite.Equal(domain.General, updated.AccountType)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_InvalidType() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{AccountID: accountID, AccountType: domain.General}
	badType := domain.AccountType("CHECKING")

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, accountID, dto.UpdateAccountRequest{AccountType: &badType})

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockRepo.On("DeleteAccount", ctx, accountID).Return(nil).Once()

	err := suite.service.DeleteAccount(ctx, accountID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_ConflictWhenReferenced() {
	ctx := context.Background()
	accountID := uuid.NewString()
	conflictErr := fmt.Errorf("%w: account has 3 transactions", apperrors.ErrConflict)

	suite.mockRepo.On("DeleteAccount", ctx, accountID).Return(conflictErr).Once()

	err := suite.service.DeleteAccount(ctx, accountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
