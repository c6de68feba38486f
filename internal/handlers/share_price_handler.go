package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/ferraith/portfolio/internal/errors"
	"github.com/ferraith/portfolio/internal/pagination"
	"github.com/ferraith/portfolio/internal/services"
)

// SharePriceHandler handles price-ledger requests.
type SharePriceHandler struct {
	sharePriceService services.SharePriceServicer
}

// NewSharePriceHandler creates a new SharePriceHandler.
func NewSharePriceHandler(sharePriceService services.SharePriceServicer) *SharePriceHandler {
	return &SharePriceHandler{sharePriceService: sharePriceService}
}

// RecordPriceRequest represents the request payload for recording a price
// observation.
type RecordPriceRequest struct {
	Date     time.Time       `json:"date" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Currency string          `json:"currency" binding:"omitempty,iso4217"`
}

// listPricesQuery holds query parameters for listing an asset's price history.
type listPricesQuery struct {
	pagination.PageRequest
	From *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To   *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}

// latestPriceQuery holds query parameters for the as-of price lookup.
type latestPriceQuery struct {
	AsOf *time.Time `form:"as_of" time_format:"2006-01-02T15:04:05Z07:00"`
}

// RecordPrice handles appending a price observation for an asset.
func (h *SharePriceHandler) RecordPrice(c *gin.Context) {
	assetID, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecordPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	price, err := h.sharePriceService.RecordPrice(assetID, req.Date, req.Amount, req.Currency)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"share_price": price})
}

// ListAssetPrices handles listing an asset's price history, newest first.
func (h *SharePriceHandler) ListAssetPrices(c *gin.Context) {
	assetID, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query listPricesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.sharePriceService.ListAssetPrices(assetID, query.From, query.To, query.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// LatestPrice handles the as-of lookup: the most recent price entry with
// date <= as_of (defaulting to now).
func (h *SharePriceHandler) LatestPrice(c *gin.Context) {
	assetID, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query latestPriceQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	asOf := time.Now()
	if query.AsOf != nil {
		asOf = *query.AsOf
	}

	price, err := h.sharePriceService.LatestPriceAsOf(assetID, asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"share_price": price})
}

// GetSharePrice handles retrieving a single price entry.
func (h *SharePriceHandler) GetSharePrice(c *gin.Context) {
	id, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	price, err := h.sharePriceService.GetSharePriceByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"share_price": price})
}

// DeleteSharePrice handles deleting a price entry. Returns 409 while any
// transaction references the entry.
func (h *SharePriceHandler) DeleteSharePrice(c *gin.Context) {
	id, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.sharePriceService.DeleteSharePrice(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
