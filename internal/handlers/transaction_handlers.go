package handlers

import (
	"errors"
	"net/http"

	"github.com/anushv/investments/internal/ledger"
	"github.com/anushv/investments/internal/models"
	"github.com/anushv/investments/internal/services"
	"github.com/gin-gonic/gin"
)

// TransactionHandler handles transaction submission endpoints
type TransactionHandler struct {
	txnSvc *services.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(txnSvc *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{txnSvc: txnSvc}
}

// Create handles POST /api/transactions
func (h *TransactionHandler) Create(c *gin.Context) {
	var req models.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	txn, err := h.txnSvc.Record(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidTransaction) ||
			errors.Is(err, ledger.ErrNoOpenUnderlying) ||
			errors.Is(err, services.ErrObjectNotFound) {
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

	c.JSON(http.StatusCreated, txn)
}
