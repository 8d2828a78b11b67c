package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/smapp-dev/stock_manager_app/internal/core/domain"
	portsrepo "github.com/smapp-dev/stock_manager_app/internal/core/ports/repositories"
	portssvc "github.com/smapp-dev/stock_manager_app/internal/core/ports/services"
	"github.com/smapp-dev/stock_manager_app/internal/dto"
	"github.com/smapp-dev/stock_manager_app/internal/middleware"
)

// profit/loss rate is reported as a percentage with two decimals.
const profitLossRateScale = 2

// PortfolioService aggregates accounts, holdings and live prices into a
// single KRW-denominated summary. Quote lookups go through the market data
// service; a failed lookup marks the holding instead of failing the summary.
type PortfolioService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	cashRepo    portsrepo.CashTransactionRepositoryFacade
	tradeRepo   portsrepo.TradeRepositoryFacade
	stockRepo   portsrepo.StockRepositoryFacade
	marketData  portssvc.MarketDataSvcFacade
	usdKrwRate  decimal.Decimal
}

func NewPortfolioService(
	accountRepo portsrepo.AccountRepositoryFacade,
	cashRepo portsrepo.CashTransactionRepositoryFacade,
	tradeRepo portsrepo.TradeRepositoryFacade,
	stockRepo portsrepo.StockRepositoryFacade,
	marketData portssvc.MarketDataSvcFacade,
	usdKrwRate decimal.Decimal,
) *PortfolioService {
	return &PortfolioService{
		accountRepo: accountRepo,
		cashRepo:    cashRepo,
		tradeRepo:   tradeRepo,
		stockRepo:   stockRepo,
		marketData:  marketData,
		usdKrwRate:  usdKrwRate,
	}
}

// toKRW converts an amount to KRW using the configured fallback rate.
func (s *PortfolioService) toKRW(amount decimal.Decimal, currency domain.Currency) decimal.Decimal {
	if currency == domain.USD {
		return amount.Mul(s.usdKrwRate)
	}
	return amount
}

// holdingCurrency infers the quote currency of a holding from its market.
// Korean listings settle in KRW, everything else is treated as USD.
func holdingCurrency(market domain.MarketCode) domain.Currency {
	if market == domain.MarketKRX {
		return domain.KRW
	}
	return domain.USD
}

// GetPortfolioSummary values every open position at its latest price and sums
// cash across all accounts, everything expressed in KRW.
func (s *PortfolioService) GetPortfolioSummary(ctx context.Context) (*domain.PortfolioSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.ListAccounts(ctx, 1000, 0)
	if err != nil {
		logger.Error("Failed to list accounts for summary", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to build portfolio summary: %w", err)
	}

	totalCash := decimal.Zero
	for i := range accounts {
		totalCash = totalCash.Add(s.toKRW(accounts[i].CurrentBalance, accounts[i].Currency))
	}

	holdings, err := s.tradeRepo.ListHoldings(ctx)
	if err != nil {
		logger.Error("Failed to list holdings for summary", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to build portfolio summary: %w", err)
	}

	stockIDs := make([]string, 0, len(holdings))
	seen := make(map[string]struct{}, len(holdings))
	for i := range holdings {
		if _, ok := seen[holdings[i].StockID]; !ok {
			seen[holdings[i].StockID] = struct{}{}
			stockIDs = append(stockIDs, holdings[i].StockID)
		}
	}
	stocks, err := s.stockRepo.FindStocksByIDs(ctx, stockIDs)
	if err != nil {
		logger.Error("Failed to load stocks for summary", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to build portfolio summary: %w", err)
	}

	totalStockValue := decimal.Zero
	valuations := make([]domain.HoldingValuation, 0, len(holdings))
	for i := range holdings {
		h := &holdings[i]
		stock, ok := stocks[h.StockID]
		if !ok {
			logger.Warn("Holding references unknown stock", slog.String("stock_id", h.StockID))
			continue
		}
		currency := holdingCurrency(stock.Market)

		v := domain.HoldingValuation{
			Symbol:      stock.Symbol,
			Name:        stock.Name,
			Market:      stock.Market,
			Quantity:    h.Quantity,
			AverageCost: h.AverageCost,
		}

		quote, err := s.marketData.GetPrice(ctx, stock.Symbol, stock.Market)
		if err != nil {
			logger.Warn("Price lookup failed, valuing holding at zero",
				slog.String("symbol", stock.Symbol), slog.String("error", err.Error()))
			v.PriceMissing = true
			valuations = append(valuations, v)
			continue
		}

		cost := s.toKRW(h.TotalCost, currency)
		value := s.toKRW(quote.Price.Mul(h.Quantity), currency)
		v.CurrentPrice = quote.Price
		v.CurrentValue = value
		v.ProfitLoss = value.Sub(cost)
		if cost.IsPositive() {
			v.ProfitLossRate = v.ProfitLoss.Div(cost).Mul(decimal.NewFromInt(100)).Round(profitLossRateScale)
		}

		totalStockValue = totalStockValue.Add(value)
		valuations = append(valuations, v)
	}

	sort.Slice(valuations, func(i, j int) bool {
		return valuations[i].CurrentValue.GreaterThan(valuations[j].CurrentValue)
	})

	return &domain.PortfolioSummary{
		TotalCash:           totalCash,
		TotalStockValue:     totalStockValue,
		TotalPortfolioValue: totalCash.Add(totalStockValue),
		Holdings:            valuations,
	}, nil
}

// ListCombinedTransactions merges the cash and trade history of one account
// into a single feed ordered by date descending.
func (s *PortfolioService) ListCombinedTransactions(ctx context.Context, accountID string, params dto.ListCombinedTransactionsParams) ([]dto.CombinedTransactionResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	// Fetch enough rows from both sources to cover the requested window
	// after merging.
	fetch := params.Limit + params.Offset

	cashFilter := portsrepo.CashTransactionFilter{AccountID: &accountID}
	tradeFilter := portsrepo.StockTransactionFilter{AccountID: &accountID}
	if !params.StartDate.IsZero() {
		cashFilter.StartDate = &params.StartDate
		tradeFilter.StartDate = &params.StartDate
	}
	if !params.EndDate.IsZero() {
		cashFilter.EndDate = &params.EndDate
		tradeFilter.EndDate = &params.EndDate
	}

	cashTxns, err := s.cashRepo.ListCashTransactions(ctx, cashFilter, fetch, 0)
	if err != nil {
		logger.Error("Failed to list cash transactions for feed", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	trades, err := s.tradeRepo.ListTrades(ctx, tradeFilter, fetch, 0)
	if err != nil {
		logger.Error("Failed to list trades for feed", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	stockIDs := make([]string, 0, len(trades))
	seen := make(map[string]struct{}, len(trades))
	for i := range trades {
		if _, ok := seen[trades[i].StockID]; !ok {
			seen[trades[i].StockID] = struct{}{}
			stockIDs = append(stockIDs, trades[i].StockID)
		}
	}
	stocks, err := s.stockRepo.FindStocksByIDs(ctx, stockIDs)
	if err != nil {
		logger.Error("Failed to load stocks for feed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	feed := make([]dto.CombinedTransactionResponse, 0, len(cashTxns)+len(trades))
	for i := range cashTxns {
		t := &cashTxns[i]
		feed = append(feed, dto.CombinedTransactionResponse{
			TransactionID: t.TransactionID,
			Kind:          "CASH",
			Type:          string(t.Type),
			Date:          t.Date,
			Amount:        t.Amount,
			Currency:      t.Currency,
			Description:   t.Description,
		})
	}
	for i := range trades {
		t := &trades[i]
		entry := dto.CombinedTransactionResponse{
			TransactionID: t.TransactionID,
			Kind:          "STOCK",
			Type:          string(t.Type),
			Date:          t.Date,
			Amount:        t.NetAmount(),
			Currency:      t.Currency,
			Quantity:      &t.Quantity,
			PricePerShare: &t.PricePerShare,
		}
		if stock, ok := stocks[t.StockID]; ok {
			entry.Symbol = stock.Symbol
			entry.StockName = stock.Name
		}
		feed = append(feed, entry)
	}

	sort.SliceStable(feed, func(i, j int) bool {
		if !feed[i].Date.Equal(feed[j].Date) {
			return feed[i].Date.After(feed[j].Date)
		}
		return feed[i].TransactionID > feed[j].TransactionID
	})

	if params.Offset >= len(feed) {
		return []dto.CombinedTransactionResponse{}, nil
	}
	end := params.Offset + params.Limit
	if end > len(feed) {
		end = len(feed)
	}
	return feed[params.Offset:end], nil
}
