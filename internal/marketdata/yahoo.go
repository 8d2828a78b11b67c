package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smapp-dev/stock_manager_app/internal/apperrors"
	"github.com/smapp-dev/stock_manager_app/internal/core/domain"
	portssvc "github.com/smapp-dev/stock_manager_app/internal/core/ports/services"
	"github.com/smapp-dev/stock_manager_app/internal/middleware"
)

const defaultBaseURL = "https://query2.finance.yahoo.com"

// ErrNoQuote is returned when the provider has no usable price for a symbol.
var ErrNoQuote = errors.New("marketdata: no quote")

// YahooClient resolves quotes and symbol searches against the Yahoo Finance
// v8 chart and v1 search endpoints. Quotes are cached for a short TTL.
type YahooClient struct {
	baseURL string
	cli     *http.Client
	ttl     time.Duration

	mu    sync.RWMutex
	cache map[string]cachedQuote
}

type cachedQuote struct {
	quote   domain.StockQuote
	market  domain.MarketCode
	fetched time.Time
}

func NewYahooClient(timeout, ttl time.Duration) *YahooClient {
	return &YahooClient{
		baseURL: defaultBaseURL,
		cli:     &http.Client{Timeout: timeout},
		ttl:     ttl,
		cache:   make(map[string]cachedQuote),
	}
}

var _ portssvc.MarketDataSvcFacade = (*YahooClient)(nil)

// yahooSymbol maps a symbol and its market code onto the suffix Yahoo uses.
func yahooSymbol(symbol string, market domain.MarketCode) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	switch market {
	case domain.MarketKRX:
		return symbol + ".KS"
	case domain.MarketHKS:
		return symbol + ".HK"
	case domain.MarketTSE:
		return symbol + ".T"
	case domain.MarketSHS, domain.MarketSHI:
		return symbol + ".SS"
	case domain.MarketSZS, domain.MarketSZI:
		return symbol + ".SZ"
	default:
		return symbol
	}
}

// quoteCurrency infers the quote currency from the market. Korean listings
// quote in KRW, everything else is treated as USD.
func quoteCurrency(market domain.MarketCode) domain.Currency {
	if market == domain.MarketKRX {
		return domain.KRW
	}
	return domain.USD
}

// GetPrice returns the latest price for a symbol, served from cache while the
// cached entry is younger than the TTL.
func (c *YahooClient) GetPrice(ctx context.Context, symbol string, market domain.MarketCode) (*domain.StockQuote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("%w: empty symbol", apperrors.ErrValidation)
	}

	// The same symbol can exist on several exchanges with different prices
	// and currencies, so cache entries are keyed per listing.
	key := yahooSymbol(symbol, market)

	c.mu.RLock()
	if entry, ok := c.cache[key]; ok && time.Since(entry.fetched) < c.ttl {
		c.mu.RUnlock()
		quote := entry.quote
		return &quote, nil
	}
	c.mu.RUnlock()

	quote, err := c.fetchQuote(ctx, symbol, market)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache[key] = cachedQuote{quote: *quote, market: market, fetched: time.Now()}
	c.mu.Unlock()

	return quote, nil
}

func (c *YahooClient) fetchQuote(ctx context.Context, symbol string, market domain.MarketCode) (*domain.StockQuote, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", c.baseURL, url.PathEscape(yahooSymbol(symbol, market)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build quote request: %w", err)
	}
	req.Header.Set("User-Agent", "stock-manager-app/1.0")

	resp, err := c.cli.Do(req)
	if err != nil {
		return nil, fmt.Errorf("quote request failed for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: symbol %s", ErrNoQuote, symbol)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote request for %s returned status %d", symbol, resp.StatusCode)
	}

	var raw struct {
		Chart struct {
			Result []struct {
				Meta struct {
					RegularMarketPrice float64 `json:"regularMarketPrice"`
					RegularMarketTime  int64   `json:"regularMarketTime"`
				} `json:"meta"`
				Timestamp  []int64 `json:"timestamp"`
				Indicators struct {
					Quote []struct {
						Close []float64 `json:"close"`
					} `json:"quote"`
				} `json:"indicators"`
			} `json:"result"`
		} `json:"chart"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode quote response for %s: %w", symbol, err)
	}
	if len(raw.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: symbol %s", ErrNoQuote, symbol)
	}

	r := raw.Chart.Result[0]
	price := r.Meta.RegularMarketPrice
	asOf := time.Unix(r.Meta.RegularMarketTime, 0)

	// Fall back to the last non-zero close when the meta block is missing.
	if (price <= 0 || r.Meta.RegularMarketTime == 0) && len(r.Timestamp) > 0 && len(r.Indicators.Quote) > 0 && len(r.Indicators.Quote[0].Close) == len(r.Timestamp) {
		for i := len(r.Timestamp) - 1; i >= 0; i-- {
			if cl := r.Indicators.Quote[0].Close[i]; cl > 0 {
				price = cl
				asOf = time.Unix(r.Timestamp[i], 0)
				break
			}
		}
	}

	if price <= 0 {
		return nil, fmt.Errorf("%w: symbol %s", ErrNoQuote, symbol)
	}
	if asOf.IsZero() || asOf.Unix() == 0 {
		asOf = time.Now()
	}

	return &domain.StockQuote{
		Symbol:   symbol,
		Price:    decimal.NewFromFloat(price),
		Currency: quoteCurrency(market),
		AsOf:     asOf,
	}, nil
}

// yahooExchangeMarkets maps Yahoo exchange codes onto our market codes.
var yahooExchangeMarkets = map[string]domain.MarketCode{
	"KSC": domain.MarketKRX,
	"KOE": domain.MarketKRX,
	"NYQ": domain.MarketNYS,
	"NMS": domain.MarketNAS,
	"NGM": domain.MarketNAS,
	"ASE": domain.MarketAMS,
	"HKG": domain.MarketHKS,
	"JPX": domain.MarketTSE,
	"SHH": domain.MarketSHS,
	"SHZ": domain.MarketSZS,
}

// SearchStocks searches the provider for symbols matching the query.
func (c *YahooClient) SearchStocks(ctx context.Context, query string) ([]domain.StockSearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty search query", apperrors.ErrValidation)
	}

	endpoint := fmt.Sprintf("%s/v1/finance/search?q=%s&quotesCount=10&newsCount=0", c.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("User-Agent", "stock-manager-app/1.0")

	resp, err := c.cli.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search request returned status %d", resp.StatusCode)
	}

	var raw struct {
		Quotes []struct {
			Symbol    string `json:"symbol"`
			ShortName string `json:"shortname"`
			LongName  string `json:"longname"`
			Exchange  string `json:"exchange"`
			QuoteType string `json:"quoteType"`
		} `json:"quotes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	results := make([]domain.StockSearchResult, 0, len(raw.Quotes))
	for _, q := range raw.Quotes {
		if q.QuoteType != "" && q.QuoteType != "EQUITY" && q.QuoteType != "ETF" {
			continue
		}
		// Hits on exchanges outside the supported market set are dropped.
		market, ok := yahooExchangeMarkets[q.Exchange]
		if !ok {
			continue
		}
		name := q.LongName
		if name == "" {
			name = q.ShortName
		}
		results = append(results, domain.StockSearchResult{
			Symbol: strings.TrimSuffix(strings.TrimSuffix(q.Symbol, ".KS"), ".KQ"),
			Name:   name,
			Market: string(market),
		})
	}
	return results, nil
}

// RefreshCache re-fetches the price for every cached symbol. Individual
// failures are logged and skipped so one delisted symbol cannot wedge the
// whole refresh.
func (c *YahooClient) RefreshCache(ctx context.Context) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	c.mu.RLock()
	entries := make(map[string]cachedQuote, len(c.cache))
	for key, entry := range c.cache {
		entries[key] = entry
	}
	c.mu.RUnlock()

	var failed int
	for key, entry := range entries {
		quote, err := c.fetchQuote(ctx, entry.quote.Symbol, entry.market)
		if err != nil {
			failed++
			logger.Warn("Cache refresh failed for symbol", slog.String("symbol", entry.quote.Symbol), slog.String("error", err.Error()))
			continue
		}
		c.mu.Lock()
		c.cache[key] = cachedQuote{quote: *quote, market: entry.market, fetched: time.Now()}
		c.mu.Unlock()
	}

	if failed > 0 {
		return fmt.Errorf("cache refresh failed for %d of %d symbols", failed, len(entries))
	}
	return nil
}

// ClearCache drops all cached prices.
func (c *YahooClient) ClearCache(_ context.Context) {
	c.mu.Lock()
	c.cache = make(map[string]cachedQuote)
	c.mu.Unlock()
}
