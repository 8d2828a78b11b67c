package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/smapp-dev/stock_manager_app/internal/core/ports/services"
	"github.com/smapp-dev/stock_manager_app/internal/dto"
)

// portfolioHandler handles HTTP requests for aggregated reporting.
type portfolioHandler struct {
	portfolioService portssvc.PortfolioSvcFacade
}

// registerPortfolioRoutes registers the reporting routes.
func registerPortfolioRoutes(rg *gin.RouterGroup, portfolioService portssvc.PortfolioSvcFacade) {
	h := &portfolioHandler{portfolioService: portfolioService}

	portfolio := rg.Group("/portfolio")
	{
		portfolio.GET("/summary", h.getSummary)
	}
}

// getSummary godoc
// @Summary Get the portfolio summary
// @Description Values every holding at its latest price and sums cash across all accounts, expressed in KRW; holdings whose price lookup failed are flagged instead of failing the summary
// @Tags portfolio
// @Produce  json
// @Success 200 {object} dto.PortfolioSummaryResponse
// @Failure 500 {object} map[string]string "Failed to build summary"
// @Router /portfolio/summary [get]
func (h *portfolioHandler) getSummary(c *gin.Context) {
	summary, err := h.portfolioService.GetPortfolioSummary(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Failed to build summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToPortfolioSummaryResponse(summary))
}
