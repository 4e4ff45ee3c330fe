package handlers

import (
	"net/http"

	"github.com/anushv/investments/internal/models"
	"github.com/anushv/investments/internal/services"
	"github.com/gin-gonic/gin"
)

// PortfolioHandler handles the valuation report endpoint
type PortfolioHandler struct {
	valuationSvc *services.ValuationService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(valuationSvc *services.ValuationService) *PortfolioHandler {
	return &PortfolioHandler{valuationSvc: valuationSvc}
}

// Report handles GET /api/portfolio/report. It runs the full valuation pass:
// live prices are fetched (or served from cache), marks updated, aggregates
// computed, and today's snapshot recorded.
func (h *PortfolioHandler) Report(c *gin.Context) {
	report, err := h.valuationSvc.ComputePortfolioGains(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, report)
}
