package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/smapp-dev/stock_manager_app/internal/apperrors"
	"github.com/smapp-dev/stock_manager_app/internal/core/domain"
	portsrepo "github.com/smapp-dev/stock_manager_app/internal/core/ports/repositories"
	"github.com/smapp-dev/stock_manager_app/internal/dto"
	"github.com/smapp-dev/stock_manager_app/internal/middleware"
	"github.com/smapp-dev/stock_manager_app/internal/utils/accounting"
)

type CashTransactionService struct {
	cashRepo    portsrepo.CashTransactionRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

func NewCashTransactionService(cashRepo portsrepo.CashTransactionRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) *CashTransactionService {
	return &CashTransactionService{
		cashRepo:    cashRepo,
		accountRepo: accountRepo,
	}
}

// CreateCashTransaction records a cash movement and applies its effect to the
// account balance in the same database transaction.
func (s *CashTransactionService) CreateCashTransaction(ctx context.Context, req dto.CreateCashTransactionRequest) (*domain.CashTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrValidation, req.Amount)
	}
	if _, err := s.accountRepo.FindAccountByID(ctx, req.AccountID); err != nil {
		return nil, err
	}

	now := time.Now()
	txn := domain.CashTransaction{
		TransactionID: uuid.NewString(),
		AccountID:     req.AccountID,
		Type:          req.Type,
		Date:          req.Date,
		Amount:        req.Amount,
		Currency:      req.Currency,
		ExchangeRate:  req.ExchangeRate,
		ExchangeFee:   req.ExchangeFee,
		Description:   req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	balanceChanges := accounting.BalanceChanges{}
	balanceChanges.Add(txn.AccountID, txn.BalanceEffect())

	if err := s.cashRepo.SaveCashTransaction(ctx, txn, balanceChanges); err != nil {
		logger.Error("Failed to save cash transaction", slog.String("error", err.Error()), slog.String("account_id", txn.AccountID))
		return nil, err
	}

	logger.Info("Cash transaction recorded", slog.String("transaction_id", txn.TransactionID), slog.String("type", string(txn.Type)))
	return &txn, nil
}

func (s *CashTransactionService) GetCashTransactionByID(ctx context.Context, transactionID string) (*domain.CashTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	txn, err := s.cashRepo.FindCashTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find cash transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	return txn, nil
}

// ListCashTransactions retrieves a filtered, paginated list of cash movements
// for one account, newest first.
func (s *CashTransactionService) ListCashTransactions(ctx context.Context, accountID string, params dto.ListCashTransactionsParams) ([]domain.CashTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	filter := portsrepo.CashTransactionFilter{
		AccountID: &accountID,
		Type:      params.Type,
	}
	if !params.StartDate.IsZero() {
		filter.StartDate = &params.StartDate
	}
	if !params.EndDate.IsZero() {
		filter.EndDate = &params.EndDate
	}

	txns, err := s.cashRepo.ListCashTransactions(ctx, filter, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list cash transactions", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list cash transactions: %w", err)
	}

	if txns == nil {
		return []domain.CashTransaction{}, nil
	}
	return txns, nil
}

// UpdateCashTransaction rewrites a cash movement. The balance effect of the
// old version is reversed and the new effect applied, both atomically with
// the row change, so moving a transaction between accounts settles both sides.
func (s *CashTransactionService) UpdateCashTransaction(ctx context.Context, transactionID string, req dto.UpdateCashTransactionRequest) (*domain.CashTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.cashRepo.FindCashTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	oldAccountID := existing.AccountID
	oldEffect := existing.BalanceEffect()

	updated := *existing
	if req.AccountID != nil {
		if _, err := s.accountRepo.FindAccountByID(ctx, *req.AccountID); err != nil {
			return nil, err
		}
		updated.AccountID = *req.AccountID
	}
	if req.Type != nil {
		if !req.Type.IsValid() {
			return nil, fmt.Errorf("%w: invalid cash transaction type %q", apperrors.ErrValidation, *req.Type)
		}
		updated.Type = *req.Type
	}
	if req.Date != nil {
		updated.Date = *req.Date
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrValidation, *req.Amount)
		}
		updated.Amount = *req.Amount
	}
	if req.Currency != nil {
		updated.Currency = *req.Currency
	}
	if req.ExchangeRate != nil {
		updated.ExchangeRate = req.ExchangeRate
	}
	if req.ExchangeFee != nil {
		updated.ExchangeFee = req.ExchangeFee
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	updated.LastUpdatedAt = time.Now()

	balanceChanges := accounting.BalanceChanges{}
	balanceChanges.Add(oldAccountID, oldEffect.Neg())
	balanceChanges.Add(updated.AccountID, updated.BalanceEffect())

	if err := s.cashRepo.UpdateCashTransaction(ctx, updated, balanceChanges); err != nil {
		logger.Error("Failed to update cash transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, err
	}

	logger.Info("Cash transaction updated", slog.String("transaction_id", transactionID))
	return &updated, nil
}

// DeleteCashTransaction removes a cash movement and reverses its balance effect.
func (s *CashTransactionService) DeleteCashTransaction(ctx context.Context, transactionID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.cashRepo.FindCashTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}

	balanceChanges := accounting.BalanceChanges{}
	balanceChanges.Add(existing.AccountID, existing.BalanceEffect().Neg())

	if err := s.cashRepo.DeleteCashTransaction(ctx, transactionID, balanceChanges); err != nil {
		logger.Error("Failed to delete cash transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return err
	}

	logger.Info("Cash transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}
