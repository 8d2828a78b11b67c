package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/smapp-dev/stock_manager_app/internal/core/ports/services"
	"github.com/smapp-dev/stock_manager_app/internal/dto"
	"github.com/smapp-dev/stock_manager_app/internal/middleware"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService   portssvc.AccountSvcFacade
	cashService      portssvc.CashTransactionSvcFacade
	tradeService     portssvc.TradeSvcFacade
	stockService     portssvc.StockSvcFacade
	portfolioService portssvc.PortfolioSvcFacade
}

// RegisterAccountRoutes registers routes related to accounts.
func RegisterAccountRoutes(
	rg *gin.RouterGroup,
	accountService portssvc.AccountSvcFacade,
	cashService portssvc.CashTransactionSvcFacade,
	tradeService portssvc.TradeSvcFacade,
	stockService portssvc.StockSvcFacade,
	portfolioService portssvc.PortfolioSvcFacade,
) {
	h := &accountHandler{
		accountService:   accountService,
		cashService:      cashService,
		tradeService:     tradeService,
		stockService:     stockService,
		portfolioService: portfolioService,
	}

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:id", h.getAccount)
		accounts.PUT("/:id", h.updateAccount)
		accounts.DELETE("/:id", h.deleteAccount)
		accounts.GET("/:id/transactions", h.listAccountCashTransactions)
		accounts.GET("/:id/trades", h.listAccountTrades)
		accounts.GET("/:id/holdings", h.listAccountHoldings)
		accounts.GET("/:id/holdings/:symbol", h.getAccountHolding)
		accounts.GET("/:id/all-transactions", h.listAccountAllTransactions)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Registers a brokerage account with its opening balance
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err, "Failed to create account")
		return
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Retrieves a paginated list of all accounts
// @Tags accounts
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		handleServiceError(c, err, "Failed to list accounts")
		return
	}

	resp := dto.ListAccountsResponse{Accounts: make([]dto.AccountResponse, 0, len(accounts))}
	for i := range accounts {
		resp.Accounts = append(resp.Accounts, dto.ToAccountResponse(&accounts[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// getAccount godoc
// @Summary Get an account by ID
// @Description Retrieves details for a specific account
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	account, err := h.accountService.GetAccountByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// updateAccount godoc
// @Summary Update an account
// @Description Updates an account's owner, broker, number or type
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to update account"
// @Router /accounts/{id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	accountID := c.Param("id")
	account, err := h.accountService.UpdateAccount(c.Request.Context(), accountID, req)
	if err != nil {
		handleServiceError(c, err, "Failed to update account")
		return
	}

	logger.Info("Account updated", slog.String("account_id", accountID))
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deleteAccount godoc
// @Summary Delete an account
// @Description Removes an account that has no transactions
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 204 "No content"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Account still has transactions"
// @Failure 500 {object} map[string]string "Failed to delete account"
// @Router /accounts/{id} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	if err := h.accountService.DeleteAccount(c.Request.Context(), accountID); err != nil {
		handleServiceError(c, err, "Failed to delete account")
		return
	}

	logger.Info("Account deleted", slog.String("account_id", accountID))
	c.Status(http.StatusNoContent)
}

// listAccountCashTransactions godoc
// @Summary List cash transactions of an account
// @Description Retrieves a filtered, paginated list of cash movements, newest first
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   limit query int false "Page size" default(50)
// @Param   offset query int false "Page offset" default(0)
// @Param   startDate query string false "Start date (YYYY-MM-DD)"
// @Param   endDate query string false "End date (YYYY-MM-DD)"
// @Param   type query string false "Transaction type" Enums(DEPOSIT, WITHDRAWAL, DIVIDEND, INTEREST)
// @Success 200 {object} dto.ListCashTransactionsResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Router /accounts/{id}/transactions [get]
func (h *accountHandler) listAccountCashTransactions(c *gin.Context) {
	var params dto.ListCashTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	accountID := c.Param("id")
	if _, err := h.accountService.GetAccountByID(c.Request.Context(), accountID); err != nil {
		handleServiceError(c, err, "Failed to retrieve account")
		return
	}

	txns, err := h.cashService.ListCashTransactions(c.Request.Context(), accountID, params)
	if err != nil {
		handleServiceError(c, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ListCashTransactionsResponse{Transactions: dto.ToCashTransactionResponses(txns)})
}

// listAccountTrades godoc
// @Summary List trades of an account
// @Description Retrieves a filtered, paginated list of trades, newest first
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   limit query int false "Page size" default(50)
// @Param   offset query int false "Page offset" default(0)
// @Param   startDate query string false "Start date (YYYY-MM-DD)"
// @Param   endDate query string false "End date (YYYY-MM-DD)"
// @Param   type query string false "Trade type" Enums(BUY, SELL)
// @Param   symbol query string false "Ticker symbol"
// @Success 200 {object} dto.ListStockTransactionsResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to list trades"
// @Router /accounts/{id}/trades [get]
func (h *accountHandler) listAccountTrades(c *gin.Context) {
	var params dto.ListStockTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	accountID := c.Param("id")
	if _, err := h.accountService.GetAccountByID(c.Request.Context(), accountID); err != nil {
		handleServiceError(c, err, "Failed to retrieve account")
		return
	}

	txns, err := h.tradeService.ListTrades(c.Request.Context(), accountID, params)
	if err != nil {
		handleServiceError(c, err, "Failed to list trades")
		return
	}

	c.JSON(http.StatusOK, dto.ListStockTransactionsResponse{
		Transactions: enrichTrades(c, h.stockService, txns),
	})
}

// listAccountHoldings godoc
// @Summary List holdings of an account
// @Description Retrieves the open positions of one account with their average cost
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.ListStockHoldingsResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to list holdings"
// @Router /accounts/{id}/holdings [get]
func (h *accountHandler) listAccountHoldings(c *gin.Context) {
	accountID := c.Param("id")

	holdings, err := h.tradeService.GetHoldingsByAccount(c.Request.Context(), accountID)
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

// getAccountHolding godoc
// @Summary Get one holding of an account
// @Description Retrieves the account's position in a single stock by its symbol
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   symbol path string true "Ticker symbol"
// @Success 200 {object} dto.StockHoldingResponse
// @Failure 404 {object} map[string]string "Account, stock or holding not found"
// @Failure 500 {object} map[string]string "Failed to retrieve holding"
// @Router /accounts/{id}/holdings/{symbol} [get]
func (h *accountHandler) getAccountHolding(c *gin.Context) {
	accountID := c.Param("id")
	symbol := c.Param("symbol")

	holding, err := h.tradeService.GetHolding(c.Request.Context(), accountID, symbol)
	if err != nil {
		handleServiceError(c, err, "Failed to retrieve holding")
		return
	}

	stock, err := h.stockService.GetStockByID(c.Request.Context(), holding.StockID)
	if err != nil {
		stock = nil
	}
	c.JSON(http.StatusOK, dto.ToStockHoldingResponse(holding, stock))
}

// listAccountAllTransactions godoc
// @Summary List the combined transaction feed of an account
// @Description Merges cash movements and trades into one feed, newest first
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   limit query int false "Page size" default(50)
// @Param   offset query int false "Page offset" default(0)
// @Param   startDate query string false "Start date (YYYY-MM-DD)"
// @Param   endDate query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.ListCombinedTransactionsResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Router /accounts/{id}/all-transactions [get]
func (h *accountHandler) listAccountAllTransactions(c *gin.Context) {
	var params dto.ListCombinedTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	feed, err := h.portfolioService.ListCombinedTransactions(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		handleServiceError(c, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ListCombinedTransactionsResponse{Transactions: feed})
}
