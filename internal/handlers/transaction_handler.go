package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/ferraith/portfolio/internal/errors"
	"github.com/ferraith/portfolio/internal/models"
	"github.com/ferraith/portfolio/internal/pagination"
	"github.com/ferraith/portfolio/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// RecordTransactionRequest represents the request payload for recording a
// trade event. Type defaults to buy when omitted.
type RecordTransactionRequest struct {
	SharePriceID string           `json:"share_price_id" binding:"required,uuid"`
	Type         string           `json:"type" binding:"omitempty,transaction_type"`
	Date         time.Time        `json:"date" binding:"required"`
	Volume       decimal.Decimal  `json:"volume" binding:"required"`
	ExchangeRate *decimal.Decimal `json:"exchange_rate,omitempty"`
}

// RecordTransaction handles recording a trade event against an investment.
func (h *TransactionHandler) RecordTransaction(c *gin.Context) {
	investmentID, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.RecordTransaction(
		investmentID, req.SharePriceID, models.TransactionType(req.Type),
		req.Date, req.Volume, req.ExchangeRate,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// GetTransaction handles retrieving a transaction.
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	id, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// ListInvestmentTransactions handles listing an investment's trade history,
// newest first.
func (h *TransactionHandler) ListInvestmentTransactions(c *gin.Context) {
	investmentID, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.transactionService.ListInvestmentTransactions(investmentID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
