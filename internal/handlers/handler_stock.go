package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/smapp-dev/stock_manager_app/internal/core/ports/services"
	"github.com/smapp-dev/stock_manager_app/internal/dto"
	"github.com/smapp-dev/stock_manager_app/internal/middleware"
)

// stockHandler handles HTTP requests related to the stock master data.
type stockHandler struct {
	stockService portssvc.StockSvcFacade
}

// RegisterStockRoutes registers routes related to the stock master data.
func RegisterStockRoutes(rg *gin.RouterGroup, stockService portssvc.StockSvcFacade) {
	h := &stockHandler{stockService: stockService}

	stocks := rg.Group("/stocks")
	{
		stocks.POST("", h.createStock)
		stocks.GET("", h.listStocks)
		stocks.GET("/symbol/:symbol", h.getStockBySymbol)
		stocks.GET("/:id", h.getStock)
		stocks.PUT("/:id", h.updateStock)
		stocks.DELETE("/:id", h.deleteStock)
	}
}

// createStock godoc
// @Summary Register a stock
// @Description Registers a stock in the reference data; symbols are unique
// @Tags stocks
// @Accept  json
// @Produce  json
// @Param   stock body dto.CreateStockRequest true "Stock details"
// @Success 201 {object} dto.StockResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Symbol already registered"
// @Failure 500 {object} map[string]string "Failed to register stock"
// @Router /stocks [post]
func (h *stockHandler) createStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	stock, err := h.stockService.CreateStock(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err, "Failed to register stock")
		return
	}

	logger.Info("Stock registered", slog.String("stock_id", stock.StockID), slog.String("symbol", stock.Symbol))
	c.JSON(http.StatusCreated, dto.ToStockResponse(stock))
}

// listStocks godoc
// @Summary List stocks
// @Description Retrieves a paginated list of registered stocks ordered by symbol
// @Tags stocks
// @Produce  json
// @Param   limit query int false "Page size" default(100)
// @Param   offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListStocksResponse
// @Failure 500 {object} map[string]string "Failed to list stocks"
// @Router /stocks [get]
func (h *stockHandler) listStocks(c *gin.Context) {
	var params dto.ListStocksParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	stocks, err := h.stockService.ListStocks(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		handleServiceError(c, err, "Failed to list stocks")
		return
	}

	resp := dto.ListStocksResponse{Stocks: make([]dto.StockResponse, 0, len(stocks))}
	for i := range stocks {
		resp.Stocks = append(resp.Stocks, dto.ToStockResponse(&stocks[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// getStock godoc
// @Summary Get a stock by ID
// @Description Retrieves details for a specific stock
// @Tags stocks
// @Produce  json
// @Param   id path string true "Stock ID"
// @Success 200 {object} dto.StockResponse
// @Failure 404 {object} map[string]string "Stock not found"
// @Failure 500 {object} map[string]string "Failed to retrieve stock"
// @Router /stocks/{id} [get]
func (h *stockHandler) getStock(c *gin.Context) {
	stock, err := h.stockService.GetStockByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err, "Failed to retrieve stock")
		return
	}
	c.JSON(http.StatusOK, dto.ToStockResponse(stock))
}

// getStockBySymbol godoc
// @Summary Get a stock by symbol
// @Description Retrieves details for a specific stock by its ticker symbol
// @Tags stocks
// @Produce  json
// @Param   symbol path string true "Ticker symbol"
// @Success 200 {object} dto.StockResponse
// @Failure 404 {object} map[string]string "Stock not found"
// @Failure 500 {object} map[string]string "Failed to retrieve stock"
// @Router /stocks/symbol/{symbol} [get]
func (h *stockHandler) getStockBySymbol(c *gin.Context) {
	stock, err := h.stockService.GetStockBySymbol(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		handleServiceError(c, err, "Failed to retrieve stock")
		return
	}
	c.JSON(http.StatusOK, dto.ToStockResponse(stock))
}

// updateStock godoc
// @Summary Update a stock
// @Description Updates a stock's display name or market
// @Tags stocks
// @Accept  json
// @Produce  json
// @Param   id path string true "Stock ID"
// @Param   stock body dto.UpdateStockRequest true "Fields to update"
// @Success 200 {object} dto.StockResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Stock not found"
// @Failure 500 {object} map[string]string "Failed to update stock"
// @Router /stocks/{id} [put]
func (h *stockHandler) updateStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	stockID := c.Param("id")
	stock, err := h.stockService.UpdateStock(c.Request.Context(), stockID, req)
	if err != nil {
		handleServiceError(c, err, "Failed to update stock")
		return
	}

	logger.Info("Stock updated", slog.String("stock_id", stockID))
	c.JSON(http.StatusOK, dto.ToStockResponse(stock))
}

// deleteStock godoc
// @Summary Delete a stock
// @Description Removes a stock that no trade references
// @Tags stocks
// @Produce  json
// @Param   id path string true "Stock ID"
// @Success 204 "No content"
// @Failure 404 {object} map[string]string "Stock not found"
// @Failure 409 {object} map[string]string "Stock still referenced by trades"
// @Failure 500 {object} map[string]string "Failed to delete stock"
// @Router /stocks/{id} [delete]
func (h *stockHandler) deleteStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	stockID := c.Param("id")

	if err := h.stockService.DeleteStock(c.Request.Context(), stockID); err != nil {
		handleServiceError(c, err, "Failed to delete stock")
		return
	}

	logger.Info("Stock deleted", slog.String("stock_id", stockID))
	c.Status(http.StatusNoContent)
}
