package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// HoldingValuation is one holding enriched with a live price. CurrentPrice is
// zero when the price lookup failed; the recorded position is still valid.
type HoldingValuation struct {
	Symbol         string          `json:"symbol"`
	Name           string          `json:"name"`
	Market         MarketCode      `json:"market"`
	Quantity       decimal.Decimal `json:"quantity"`
	AverageCost    decimal.Decimal `json:"averageCost"`
	CurrentPrice   decimal.Decimal `json:"currentPrice"`
	CurrentValue   decimal.Decimal `json:"currentValue"`
	ProfitLoss     decimal.Decimal `json:"profitLoss"`
	ProfitLossRate decimal.Decimal `json:"profitLossRate"` // percent
	PriceMissing   bool            `json:"priceMissing"`
}

// PortfolioSummary aggregates cash across all accounts with the market value
// of every holding, expressed in KRW.
type PortfolioSummary struct {
	TotalCash           decimal.Decimal    `json:"totalCash"`
	TotalStockValue     decimal.Decimal    `json:"totalStockValue"`
	TotalPortfolioValue decimal.Decimal    `json:"totalPortfolioValue"`
	Holdings            []HoldingValuation `json:"holdings"`
}

// StockSearchResult is one hit from the external symbol search.
type StockSearchResult struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Market string `json:"market"`
}

// StockQuote is a point-in-time price for one symbol.
type StockQuote struct {
	Symbol   string          `json:"symbol"`
	Price    decimal.Decimal `json:"price"`
	Currency Currency        `json:"currency"`
	AsOf     time.Time       `json:"asOf"`
}
