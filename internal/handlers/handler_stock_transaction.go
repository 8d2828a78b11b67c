package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smapp-dev/stock_manager_app/internal/core/domain"
	portssvc "github.com/smapp-dev/stock_manager_app/internal/core/ports/services"
	"github.com/smapp-dev/stock_manager_app/internal/dto"
	"github.com/smapp-dev/stock_manager_app/internal/middleware"
)

// tradeHandler handles HTTP requests related to stock trades and holdings.
type tradeHandler struct {
	tradeService portssvc.TradeSvcFacade
	stockService portssvc.StockSvcFacade
}

// registerTradeRoutes registers routes related to trades and holdings.
func registerTradeRoutes(rg *gin.RouterGroup, tradeService portssvc.TradeSvcFacade, stockService portssvc.StockSvcFacade) {
	h := &tradeHandler{tradeService: tradeService, stockService: stockService}

	trades := rg.Group("/trades")
	{
		trades.POST("", h.recordTrade)
		trades.GET("/:id", h.getTrade)
		trades.PUT("/:id", h.updateTrade)
		trades.DELETE("/:id", h.deleteTrade)
	}

	rg.GET("/holdings", h.listHoldings)
}

// enrichTrades resolves stock details for a trade list, fetching each
// distinct stock once.
func enrichTrades(c *gin.Context, stockService portssvc.StockSvcFacade, txns []domain.StockTransaction) []dto.StockTransactionResponse {
	stocks := map[string]*domain.Stock{}
	out := make([]dto.StockTransactionResponse, 0, len(txns))
	for i := range txns {
		stock, ok := stocks[txns[i].StockID]
		if !ok {
			stock, _ = stockService.GetStockByID(c.Request.Context(), txns[i].StockID)
			stocks[txns[i].StockID] = stock
		}
		out = append(out, dto.ToStockTransactionResponse(&txns[i], stock))
	}
	return out
}

// recordTrade godoc
// @Summary Record a trade
// @Description Records a buy or sell, registers unknown symbols, refreshes the holding and adjusts the account balance atomically
// @Tags trades
// @Accept  json
// @Produce  json
// @Param   trade body dto.CreateStockTransactionRequest true "Trade details"
// @Success 201 {object} dto.StockTransactionResponse
// @Failure 400 {object} map[string]string "Invalid input, or the trade would oversell the position"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to record trade"
// @Router /trades [post]
func (h *tradeHandler) recordTrade(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateStockTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	txn, err := h.tradeService.RecordTrade(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err, "Failed to record trade")
		return
	}

	stock, _ := h.stockService.GetStockByID(c.Request.Context(), txn.StockID)
	logger.Info("Trade recorded", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToStockTransactionResponse(txn, stock))
}

// getTrade godoc
// @Summary Get a trade by ID
// @Description Retrieves details for a specific trade
// @Tags trades
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.StockTransactionResponse
// @Failure 404 {object} map[string]string "Trade not found"
// @Failure 500 {object} map[string]string "Failed to retrieve trade"
// @Router /trades/{id} [get]
func (h *tradeHandler) getTrade(c *gin.Context) {
	txn, err := h.tradeService.GetTradeByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err, "Failed to retrieve trade")
		return
	}

	stock, _ := h.stockService.GetStockByID(c.Request.Context(), txn.StockID)
	c.JSON(http.StatusOK, dto.ToStockTransactionResponse(txn, stock))
}

// updateTrade godoc
// @Summary Update a trade
// @Description Rewrites a trade; the affected positions are replayed and account balances adjusted atomically
// @Tags trades
// @Accept  json
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Param   trade body dto.UpdateStockTransactionRequest true "Fields to update"
// @Success 200 {object} dto.StockTransactionResponse
// @Failure 400 {object} map[string]string "Invalid input, or the change would oversell a position"
// @Failure 404 {object} map[string]string "Trade not found"
// @Failure 500 {object} map[string]string "Failed to update trade"
// @Router /trades/{id} [put]
func (h *tradeHandler) updateTrade(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateStockTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	transactionID := c.Param("id")
	txn, err := h.tradeService.UpdateTrade(c.Request.Context(), transactionID, req)
	if err != nil {
		handleServiceError(c, err, "Failed to update trade")
		return
	}

	stock, _ := h.stockService.GetStockByID(c.Request.Context(), txn.StockID)
	logger.Info("Trade updated", slog.String("transaction_id", transactionID))
	c.JSON(http.StatusOK, dto.ToStockTransactionResponse(txn, stock))
}

// deleteTrade godoc
// @Summary Delete a trade
// @Description Removes a trade; the position is replayed and the cash effect reversed atomically
// @Tags trades
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 204 "No content"
// @Failure 400 {object} map[string]string "Removing the trade would oversell the position"
// @Failure 404 {object} map[string]string "Trade not found"
// @Failure 500 {object} map[string]string "Failed to delete trade"
// @Router /trades/{id} [delete]
func (h *tradeHandler) deleteTrade(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	if err := h.tradeService.DeleteTrade(c.Request.Context(), transactionID); err != nil {
		handleServiceError(c, err, "Failed to delete trade")
		return
	}

	logger.Info("Trade deleted", slog.String("transaction_id", transactionID))
	c.Status(http.StatusNoContent)
}

// listHoldings godoc
// @Summary List all holdings
// @Description Retrieves every open position across all accounts
// @Tags holdings
// @Produce  json
// @Success 200 {object} dto.ListStockHoldingsResponse
// @Failure 500 {object} map[string]string "Failed to list holdings"
// @Router /holdings [get]
func (h *tradeHandler) listHoldings(c *gin.Context) {
	holdings, err := h.tradeService.ListHoldings(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Failed to list holdings")
		return
	}

	resp := dto.ListStockHoldingsResponse{Holdings: make([]dto.StockHoldingResponse, 0, len(holdings))}
	for i := range holdings {
		stock, err := h.stockService.GetStockByID(c.Request.Context(), holdings[i].StockID)
		if err != nil {
			stock = nil
		}
		resp.Holdings = append(resp.Holdings, dto.ToStockHoldingResponse(&holdings[i], stock))
	}
	c.JSON(http.StatusOK, resp)
}
