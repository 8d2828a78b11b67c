package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smapp-dev/stock_manager_app/internal/apperrors"
	"github.com/smapp-dev/stock_manager_app/internal/core/domain"
	portsrepo "github.com/smapp-dev/stock_manager_app/internal/core/ports/repositories"
	portssvc "github.com/smapp-dev/stock_manager_app/internal/core/ports/services"
	"github.com/smapp-dev/stock_manager_app/internal/dto"
	"github.com/smapp-dev/stock_manager_app/internal/middleware"
	"github.com/smapp-dev/stock_manager_app/internal/utils/accounting"
)

// TradeService coordinates trade mutations. Holdings are never patched in
// place: every mutation hands the repository a balance delta map and relies on
// it to replay the affected pair histories in the same database transaction.
type TradeService struct {
	tradeRepo   portsrepo.TradeRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	stockSvc    portssvc.StockSvcFacade
}

func NewTradeService(tradeRepo portsrepo.TradeRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, stockSvc portssvc.StockSvcFacade) *TradeService {
	return &TradeService{
		tradeRepo:   tradeRepo,
		accountRepo: accountRepo,
		stockSvc:    stockSvc,
	}
}

func validateTradeAmounts(quantity, pricePerShare, fee decimal.Decimal) error {
	if !quantity.IsPositive() || !quantity.IsInteger() {
		return fmt.Errorf("%w: quantity must be a positive whole number, got %s", apperrors.ErrValidation, quantity)
	}
	if !pricePerShare.IsPositive() {
		return fmt.Errorf("%w: price per share must be positive, got %s", apperrors.ErrValidation, pricePerShare)
	}
	if fee.IsNegative() {
		return fmt.Errorf("%w: fee must not be negative, got %s", apperrors.ErrValidation, fee)
	}
	return nil
}

// RecordTrade stores a buy or sell. Unknown symbols are registered on the fly.
// The repository replays the pair history inside the same transaction, so a
// back-dated sell that would oversell the position is rejected wholesale.
func (s *TradeService) RecordTrade(ctx context.Context, req dto.CreateStockTransactionRequest) (*domain.StockTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateTradeAmounts(req.Quantity, req.PricePerShare, req.Fee); err != nil {
		return nil, err
	}
	if _, err := s.accountRepo.FindAccountByID(ctx, req.AccountID); err != nil {
		return nil, err
	}
	stock, err := s.stockSvc.FindOrCreateStock(ctx, req.Stock)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	txn := domain.StockTransaction{
		TransactionID: uuid.NewString(),
		AccountID:     req.AccountID,
		StockID:       stock.StockID,
		Type:          req.Type,
		Date:          req.Date,
		Quantity:      req.Quantity,
		PricePerShare: req.PricePerShare,
		Fee:           req.Fee,
		Currency:      req.Currency,
		ExchangeRate:  req.ExchangeRate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	balanceChanges := accounting.BalanceChanges{}
	balanceChanges.Add(txn.AccountID, txn.BalanceEffect())

	if err := s.tradeRepo.SaveTrade(ctx, txn, balanceChanges); err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			logger.Error("Failed to save trade", slog.String("error", err.Error()), slog.String("account_id", txn.AccountID), slog.String("symbol", stock.Symbol))
		}
		return nil, err
	}

	logger.Info("Trade recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)),
		slog.String("symbol", stock.Symbol),
	)
	return &txn, nil
}

func (s *TradeService) GetTradeByID(ctx context.Context, transactionID string) (*domain.StockTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	txn, err := s.tradeRepo.FindTradeByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find trade", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	return txn, nil
}

// ListTrades retrieves a filtered, paginated list of trades for one account,
// newest first.
func (s *TradeService) ListTrades(ctx context.Context, accountID string, params dto.ListStockTransactionsParams) ([]domain.StockTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	filter := portsrepo.StockTransactionFilter{
		AccountID: &accountID,
		Type:      params.Type,
		Symbol:    params.Symbol,
	}
	if !params.StartDate.IsZero() {
		filter.StartDate = &params.StartDate
	}
	if !params.EndDate.IsZero() {
		filter.EndDate = &params.EndDate
	}

	txns, err := s.tradeRepo.ListTrades(ctx, filter, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list trades", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}

	if txns == nil {
		return []domain.StockTransaction{}, nil
	}
	return txns, nil
}

// UpdateTrade rewrites a trade. When the trade moves to another account or
// stock, the repository replays both the old and the new pair, and the cash
// effect is reversed on the old account before being applied to the new one.
func (s *TradeService) UpdateTrade(ctx context.Context, transactionID string, req dto.UpdateStockTransactionRequest) (*domain.StockTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.tradeRepo.FindTradeByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	oldPair := existing.Pair()
	oldAccountID := existing.AccountID
	oldEffect := existing.BalanceEffect()

	updated := *existing
	if req.AccountID != nil {
		if _, err := s.accountRepo.FindAccountByID(ctx, *req.AccountID); err != nil {
			return nil, err
		}
		updated.AccountID = *req.AccountID
	}
	if req.Stock != nil {
		stock, err := s.stockSvc.FindOrCreateStock(ctx, *req.Stock)
		if err != nil {
			return nil, err
		}
		updated.StockID = stock.StockID
	}
	if req.Type != nil {
		updated.Type = *req.Type
	}
	if req.Date != nil {
		updated.Date = *req.Date
	}
	if req.Quantity != nil {
		updated.Quantity = *req.Quantity
	}
	if req.PricePerShare != nil {
		updated.PricePerShare = *req.PricePerShare
	}
	if req.Fee != nil {
		updated.Fee = *req.Fee
	}
	if req.Currency != nil {
		updated.Currency = *req.Currency
	}
	if req.ExchangeRate != nil {
		updated.ExchangeRate = req.ExchangeRate
	}
	updated.LastUpdatedAt = time.Now()

	if err := validateTradeAmounts(updated.Quantity, updated.PricePerShare, updated.Fee); err != nil {
		return nil, err
	}

	balanceChanges := accounting.BalanceChanges{}
	balanceChanges.Add(oldAccountID, oldEffect.Neg())
	balanceChanges.Add(updated.AccountID, updated.BalanceEffect())

	if err := s.tradeRepo.UpdateTrade(ctx, updated, oldPair, balanceChanges); err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			logger.Error("Failed to update trade", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		}
		return nil, err
	}

	logger.Info("Trade updated", slog.String("transaction_id", transactionID))
	return &updated, nil
}

// DeleteTrade removes a trade, reverses its cash effect and replays the pair
// it belonged to. Deleting a past buy that later sells depend on is rejected.
func (s *TradeService) DeleteTrade(ctx context.Context, transactionID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.tradeRepo.FindTradeByID(ctx, transactionID)
	if err != nil {
		return err
	}

	balanceChanges := accounting.BalanceChanges{}
	balanceChanges.Add(existing.AccountID, existing.BalanceEffect().Neg())

	if err := s.tradeRepo.DeleteTrade(ctx, transactionID, existing.Pair(), balanceChanges); err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			logger.Error("Failed to delete trade", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		}
		return err
	}

	logger.Info("Trade deleted", slog.String("transaction_id", transactionID))
	return nil
}

// GetHoldingsByAccount retrieves the open positions of one account.
func (s *TradeService) GetHoldingsByAccount(ctx context.Context, accountID string) ([]domain.StockHolding, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	holdings, err := s.tradeRepo.FindHoldingsByAccount(ctx, accountID)
	if err != nil {
		logger.Error("Failed to list holdings", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}

	if holdings == nil {
		return []domain.StockHolding{}, nil
	}
	return holdings, nil
}

// GetHolding retrieves one account's position in a single stock by symbol.
func (s *TradeService) GetHolding(ctx context.Context, accountID string, symbol string) (*domain.StockHolding, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	stock, err := s.stockSvc.GetStockBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}

	holding, err := s.tradeRepo.FindHoldingByPair(ctx, domain.PairKey{AccountID: accountID, StockID: stock.StockID})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find holding", slog.String("error", err.Error()), slog.String("account_id", accountID), slog.String("symbol", symbol))
		}
		return nil, err
	}
	return holding, nil
}

// ListHoldings retrieves every open position across all accounts.
func (s *TradeService) ListHoldings(ctx context.Context) ([]domain.StockHolding, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	holdings, err := s.tradeRepo.ListHoldings(ctx)
	if err != nil {
		logger.Error("Failed to list all holdings", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}

	if holdings == nil {
		return []domain.StockHolding{}, nil
	}
	return holdings, nil
}
