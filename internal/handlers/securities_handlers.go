package handlers

import (
	"errors"
	"net/http"

	"github.com/anushv/investments/internal/ledger"
	"github.com/anushv/investments/internal/models"
	"github.com/anushv/investments/internal/services"
	"github.com/gin-gonic/gin"
)

// SecuritiesHandler handles securities listing endpoints
type SecuritiesHandler struct {
	securitiesSvc *services.SecuritiesService
}

// NewSecuritiesHandler creates a new SecuritiesHandler
func NewSecuritiesHandler(securitiesSvc *services.SecuritiesService) *SecuritiesHandler {
	return &SecuritiesHandler{securitiesSvc: securitiesSvc}
}

// List handles GET /api/securities?type=share|option
func (h *SecuritiesHandler) List(c *gin.Context) {
	secType := models.SecurityType(c.Query("type"))

	listings, err := h.securitiesSvc.ListOpen(c.Request.Context(), secType)
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidTransaction) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "bad_request",
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, listings)
}
