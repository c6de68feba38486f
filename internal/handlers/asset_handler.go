package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/ferraith/portfolio/internal/errors"
	"github.com/ferraith/portfolio/internal/models"
	"github.com/ferraith/portfolio/internal/pagination"
	"github.com/ferraith/portfolio/internal/services"
)

// AssetHandler handles asset-related requests.
type AssetHandler struct {
	assetService services.AssetServicer
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetService services.AssetServicer) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// CreateAssetRequest represents the request payload for creating an asset.
// Sector, TER, and fund links are kind-specific and rejected on the wrong kind.
type CreateAssetRequest struct {
	Kind   models.AssetKind `json:"kind" binding:"required,asset_kind"`
	Name   string           `json:"name" binding:"required,min=1,max=200"`
	ISIN   string           `json:"isin" binding:"required,isin"`
	Issuer string           `json:"issuer" binding:"required,min=1,max=200"`
	CUSIP  string           `json:"cusip" binding:"omitempty,cusip"`
	WKN    string           `json:"wkn" binding:"omitempty,wkn"`
	Valor  *int64           `json:"valor" binding:"omitempty,gt=0"`

	Sector  string           `json:"sector,omitempty" binding:"max=200"`
	TER     *decimal.Decimal `json:"ter,omitempty"`
	FundIDs []string         `json:"fund_ids,omitempty" binding:"omitempty,dive,uuid"`
}

// UpdateAssetRequest represents the request payload for updating an asset's
// descriptive fields. Identifier fields are immutable and not accepted here.
type UpdateAssetRequest struct {
	Name    *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Issuer  *string          `json:"issuer" binding:"omitempty,min=1,max=200"`
	Sector  *string          `json:"sector" binding:"omitempty,max=200"`
	TER     *decimal.Decimal `json:"ter,omitempty"`
	FundIDs *[]string        `json:"fund_ids" binding:"omitempty,dive,uuid"`
}

// listAssetsQuery holds query parameters for listing assets.
type listAssetsQuery struct {
	pagination.PageRequest
	Kind string `form:"kind" binding:"omitempty,asset_kind"`
}

// CreateAsset handles creating a new asset.
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	asset, err := h.assetService.CreateAsset(services.CreateAssetInput{
		Kind:    req.Kind,
		Name:    req.Name,
		ISIN:    req.ISIN,
		Issuer:  req.Issuer,
		CUSIP:   req.CUSIP,
		WKN:     req.WKN,
		Valor:   req.Valor,
		Sector:  req.Sector,
		TER:     req.TER,
		FundIDs: req.FundIDs,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"asset": asset})
}

// GetAsset handles retrieving an asset by ID.
func (h *AssetHandler) GetAsset(c *gin.Context) {
	id, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	asset, err := h.assetService.GetAssetByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// ListAssets handles listing assets, optionally filtered by kind.
func (h *AssetHandler) ListAssets(c *gin.Context) {
	var query listAssetsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var kind *models.AssetKind
	if query.Kind != "" {
		k := models.AssetKind(query.Kind)
		kind = &k
	}

	result, err := h.assetService.ListAssets(kind, query.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateAsset handles updating an asset's descriptive fields.
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	id, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	asset, err := h.assetService.UpdateAsset(id, services.UpdateAssetInput{
		Name:    req.Name,
		Issuer:  req.Issuer,
		Sector:  req.Sector,
		TER:     req.TER,
		FundIDs: req.FundIDs,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// DeleteAsset handles deleting an asset. Returns 409 while any investment
// references the asset.
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	id, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.assetService.DeleteAsset(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
