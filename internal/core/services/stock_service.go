package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/smapp-dev/stock_manager_app/internal/apperrors"
	"github.com/smapp-dev/stock_manager_app/internal/core/domain"
	portsrepo "github.com/smapp-dev/stock_manager_app/internal/core/ports/repositories"
	"github.com/smapp-dev/stock_manager_app/internal/dto"
	"github.com/smapp-dev/stock_manager_app/internal/middleware"
)

type StockService struct {
	stockRepo portsrepo.StockRepositoryFacade
}

func NewStockService(repo portsrepo.StockRepositoryFacade) *StockService {
	return &StockService{stockRepo: repo}
}

func (s *StockService) CreateStock(ctx context.Context, req dto.CreateStockRequest) (*domain.Stock, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	stock := domain.Stock{
		StockID: uuid.NewString(),
		Symbol:  strings.ToUpper(strings.TrimSpace(req.Symbol)),
		Name:    req.Name,
		Market:  req.Market,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.stockRepo.SaveStock(ctx, stock); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save stock", slog.String("error", err.Error()), slog.String("symbol", stock.Symbol))
		}
		return nil, err
	}

	logger.Info("Stock registered", slog.String("stock_id", stock.StockID), slog.String("symbol", stock.Symbol))
	return &stock, nil
}

// FindOrCreateStock returns the stock for the symbol, registering it on first
// sight. A lost race on insert falls back to the winner's row.
func (s *StockService) FindOrCreateStock(ctx context.Context, ref dto.StockRef) (*domain.Stock, error) {
	symbol := strings.ToUpper(strings.TrimSpace(ref.Symbol))

	stock, err := s.stockRepo.FindStockBySymbol(ctx, symbol)
	if err == nil {
		return stock, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	created, err := s.CreateStock(ctx, dto.CreateStockRequest{
		Symbol: symbol,
		Name:   ref.Name,
		Market: ref.Market,
	})
	if err == nil {
		return created, nil
	}
	if errors.Is(err, apperrors.ErrDuplicate) {
		return s.stockRepo.FindStockBySymbol(ctx, symbol)
	}
	return nil, err
}

func (s *StockService) GetStockByID(ctx context.Context, stockID string) (*domain.Stock, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	stock, err := s.stockRepo.FindStockByID(ctx, stockID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find stock by ID", slog.String("error", err.Error()), slog.String("stock_id", stockID))
		}
		return nil, err
	}
	return stock, nil
}

func (s *StockService) GetStockBySymbol(ctx context.Context, symbol string) (*domain.Stock, error) {
	return s.stockRepo.FindStockBySymbol(ctx, strings.ToUpper(strings.TrimSpace(symbol)))
}

func (s *StockService) ListStocks(ctx context.Context, limit int, offset int) ([]domain.Stock, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	stocks, err := s.stockRepo.ListStocks(ctx, limit, offset)
	if err != nil {
		logger.Error("Failed to list stocks", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list stocks: %w", err)
	}
	if stocks == nil {
		return []domain.Stock{}, nil
	}
	return stocks, nil
}

func (s *StockService) UpdateStock(ctx context.Context, stockID string, req dto.UpdateStockRequest) (*domain.Stock, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	stock, err := s.stockRepo.FindStockByID(ctx, stockID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		stock.Name = *req.Name
	}
	if req.Market != nil {
		if !req.Market.IsValid() {
			return nil, fmt.Errorf("%w: invalid market code %q", apperrors.ErrValidation, *req.Market)
		}
		stock.Market = *req.Market
	}
	stock.LastUpdatedAt = time.Now()

	if err := s.stockRepo.UpdateStock(ctx, *stock); err != nil {
		logger.Error("Failed to update stock", slog.String("error", err.Error()), slog.String("stock_id", stockID))
		return nil, err
	}

	logger.Info("Stock updated", slog.String("stock_id", stockID))
	return stock, nil
}

// DeleteStock removes a stock from the reference data. Stocks that are still
// referenced by trades cannot be deleted; the repository reports a conflict.
func (s *StockService) DeleteStock(ctx context.Context, stockID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.stockRepo.DeleteStock(ctx, stockID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to delete stock", slog.String("error", err.Error()), slog.String("stock_id", stockID))
		}
		return err
	}

	logger.Info("Stock deleted", slog.String("stock_id", stockID))
	return nil
}
