package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/smapp-dev/stock_manager_app/internal/core/domain"
	portssvc "github.com/smapp-dev/stock_manager_app/internal/core/ports/services"
	"github.com/smapp-dev/stock_manager_app/internal/dto"
	"github.com/smapp-dev/stock_manager_app/internal/middleware"
)

// marketDataHandler handles HTTP requests against the external quote provider.
type marketDataHandler struct {
	marketData portssvc.MarketDataSvcFacade
}

// registerMarketDataRoutes registers symbol search, quote and cache routes.
func registerMarketDataRoutes(rg *gin.RouterGroup, marketData portssvc.MarketDataSvcFacade) {
	h := &marketDataHandler{marketData: marketData}

	stocks := rg.Group("/stocks")
	{
		stocks.GET("/search", h.searchStocks)
		stocks.GET("/price/:symbol", h.getPrice)
		stocks.POST("/cache/refresh", h.refreshCache)
		stocks.DELETE("/cache", h.clearCache)
	}
}

// searchStocks godoc
// @Summary Search symbols
// @Description Searches the quote provider for symbols matching the query
// @Tags marketdata
// @Produce  json
// @Param   q query string true "Search query"
// @Success 200 {array} dto.StockSearchResponse
// @Failure 400 {object} map[string]string "Missing query"
// @Failure 500 {object} map[string]string "Search failed"
// @Router /stocks/search [get]
func (h *marketDataHandler) searchStocks(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}

	results, err := h.marketData.SearchStocks(c.Request.Context(), query)
	if err != nil {
		handleServiceError(c, err, "Search failed")
		return
	}

	resp := make([]dto.StockSearchResponse, 0, len(results))
	for _, r := range results {
		resp = append(resp, dto.StockSearchResponse{
			Symbol: r.Symbol,
			Name:   r.Name,
			Market: domain.MarketCode(r.Market),
		})
	}
	c.JSON(http.StatusOK, resp)
}

// getPrice godoc
// @Summary Get the current price of a symbol
// @Description Returns the latest price, cached for a short period
// @Tags marketdata
// @Produce  json
// @Param   symbol path string true "Ticker symbol"
// @Param   market query string false "Market code" default(KRX)
// @Success 200 {object} dto.StockPriceResponse
// @Failure 400 {object} map[string]string "Invalid market code"
// @Failure 500 {object} map[string]string "Price lookup failed"
// @Router /stocks/price/{symbol} [get]
func (h *marketDataHandler) getPrice(c *gin.Context) {
	symbol := c.Param("symbol")
	market := domain.MarketCode(c.DefaultQuery("market", string(domain.MarketKRX)))
	if !market.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid market code"})
		return
	}

	quote, err := h.marketData.GetPrice(c.Request.Context(), symbol, market)
	if err != nil {
		handleServiceError(c, err, "Price lookup failed")
		return
	}

	c.JSON(http.StatusOK, dto.StockPriceResponse{
		Symbol:   quote.Symbol,
		Price:    quote.Price,
		Currency: quote.Currency,
		AsOf:     quote.AsOf,
	})
}

// refreshCache godoc
// @Summary Refresh the price cache
// @Description Re-fetches the price for every cached symbol
// @Tags marketdata
// @Produce  json
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string "Refresh failed for some symbols"
// @Router /stocks/cache/refresh [post]
func (h *marketDataHandler) refreshCache(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.marketData.RefreshCache(c.Request.Context()); err != nil {
		logger.Warn("Price cache refresh incomplete")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	logger.Info("Price cache refreshed")
	c.JSON(http.StatusOK, gin.H{"status": "refreshed"})
}

// clearCache godoc
// @Summary Clear the price cache
// @Description Drops all cached prices
// @Tags marketdata
// @Produce  json
// @Success 200 {object} map[string]string
// @Router /stocks/cache [delete]
func (h *marketDataHandler) clearCache(c *gin.Context) {
	h.marketData.ClearCache(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}
