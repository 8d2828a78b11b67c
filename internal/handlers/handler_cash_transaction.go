package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/smapp-dev/stock_manager_app/internal/core/ports/services"
	"github.com/smapp-dev/stock_manager_app/internal/dto"
	"github.com/smapp-dev/stock_manager_app/internal/middleware"
)

// cashTransactionHandler handles HTTP requests related to cash movements.
type cashTransactionHandler struct {
	cashService portssvc.CashTransactionSvcFacade
}

// registerCashTransactionRoutes registers routes related to cash movements.
func registerCashTransactionRoutes(rg *gin.RouterGroup, cashService portssvc.CashTransactionSvcFacade) {
	h := &cashTransactionHandler{cashService: cashService}

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createCashTransaction)
		transactions.GET("/:id", h.getCashTransaction)
		transactions.PUT("/:id", h.updateCashTransaction)
		transactions.DELETE("/:id", h.deleteCashTransaction)
	}
}

// createCashTransaction godoc
// @Summary Record a cash movement
// @Description Records a deposit, withdrawal, dividend or interest and adjusts the account balance atomically
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateCashTransactionRequest true "Transaction details"
// @Success 201 {object} dto.CashTransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to record transaction"
// @Router /transactions [post]
func (h *cashTransactionHandler) createCashTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCashTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	txn, err := h.cashService.CreateCashTransaction(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err, "Failed to record transaction")
		return
	}

	logger.Info("Cash transaction recorded", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToCashTransactionResponse(txn))
}

// getCashTransaction godoc
// @Summary Get a cash movement by ID
// @Description Retrieves details for a specific cash movement
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.CashTransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to retrieve transaction"
// @Router /transactions/{id} [get]
func (h *cashTransactionHandler) getCashTransaction(c *gin.Context) {
	txn, err := h.cashService.GetCashTransactionByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToCashTransactionResponse(txn))
}

// updateCashTransaction godoc
// @Summary Update a cash movement
// @Description Rewrites a cash movement; the balance delta is applied atomically, settling both accounts when the movement changes account
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Param   transaction body dto.UpdateCashTransactionRequest true "Fields to update"
// @Success 200 {object} dto.CashTransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to update transaction"
// @Router /transactions/{id} [put]
func (h *cashTransactionHandler) updateCashTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateCashTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	transactionID := c.Param("id")
	txn, err := h.cashService.UpdateCashTransaction(c.Request.Context(), transactionID, req)
	if err != nil {
		handleServiceError(c, err, "Failed to update transaction")
		return
	}

	logger.Info("Cash transaction updated", slog.String("transaction_id", transactionID))
	c.JSON(http.StatusOK, dto.ToCashTransactionResponse(txn))
}

// deleteCashTransaction godoc
// @Summary Delete a cash movement
// @Description Removes a cash movement and reverses its balance effect atomically
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 204 "No content"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to delete transaction"
// @Router /transactions/{id} [delete]
func (h *cashTransactionHandler) deleteCashTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	if err := h.cashService.DeleteCashTransaction(c.Request.Context(), transactionID); err != nil {
		handleServiceError(c, err, "Failed to delete transaction")
		return
	}

	logger.Info("Cash transaction deleted", slog.String("transaction_id", transactionID))
	c.Status(http.StatusNoContent)
}
