package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/ferraith/portfolio/internal/errors"
	"github.com/ferraith/portfolio/internal/models"
	"github.com/ferraith/portfolio/internal/money"
	"github.com/ferraith/portfolio/internal/pagination"
)

// sharePriceService handles the append-only price ledger. Entries are never
// updated in place; a wrong observation is corrected by recording a new one.
type sharePriceService struct {
	db *gorm.DB
}

// NewSharePriceService creates a new SharePriceServicer.
func NewSharePriceService(db *gorm.DB) SharePriceServicer {
	return &sharePriceService{db: db}
}

// RecordPrice appends a price observation for an asset.
func (s *sharePriceService) RecordPrice(assetID string, date time.Time, amount decimal.Decimal, currency string) (*models.SharePrice, error) {
	if date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Date is required")
	}
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Price must be positive")
	}
	if !fitsNumeric(amount, 6, 6) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Price exceeds the supported precision of six decimal places")
	}
	if currency != "" && !money.IsValidCurrency(currency) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Unknown currency code")
	}

	var asset models.Asset
	if err := s.db.First(&asset, "id = ?", assetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	price := &models.SharePrice{
		AssetID: asset.ID,
		Date:    date,
		Price:   money.New(amount, currency),
	}
	if err := s.db.Create(price).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return price, nil
}

// GetSharePriceByID returns a single price entry.
func (s *sharePriceService) GetSharePriceByID(id string) (*models.SharePrice, error) {
	var price models.SharePrice
	if err := s.db.First(&price, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSharePriceNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &price, nil
}

// ListAssetPrices returns paginated price history for an asset, newest
// first, optionally bounded by a date range.
func (s *sharePriceService) ListAssetPrices(assetID string, from, to *time.Time, page pagination.PageRequest) (*pagination.PageResponse[models.SharePrice], error) {
	var asset models.Asset
	if err := s.db.First(&asset, "id = ?", assetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	page.Defaults()

	base := s.db.Model(&models.SharePrice{}).Where("asset_id = ?", assetID)
	if from != nil {
		base = base.Where("date >= ?", *from)
	}
	if to != nil {
		base = base.Where("date <= ?", *to)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var prices []models.SharePrice
	if err := base.Order("date DESC").Scopes(pagination.Paginate(page)).Find(&prices).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(prices, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// LatestPriceAsOf returns the most recent price entry with date <= asOf.
// This is the read-path transaction recording depends on: picking the price
// that was in force at trade time.
func (s *sharePriceService) LatestPriceAsOf(assetID string, asOf time.Time) (*models.SharePrice, error) {
	var asset models.Asset
	if err := s.db.First(&asset, "id = ?", assetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var price models.SharePrice
	err := s.db.Where("asset_id = ? AND date <= ?", assetID, asOf).
		Order("date DESC").
		First(&price).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNoPriceAvailable
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &price, nil
}

// DeleteSharePrice removes a price entry. The delete is rejected while any
// transaction references the entry, preserving the pricing context of every
// recorded trade.
func (s *sharePriceService) DeleteSharePrice(id string) error {
	price, err := s.GetSharePriceByID(id)
	if err != nil {
		return err
	}

	var transactionCount int64
	if err := s.db.Model(&models.Transaction{}).Where("share_price_id = ?", price.ID).Count(&transactionCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if transactionCount > 0 {
		return apperrors.ErrSharePriceInUse
	}

	if err := s.db.Delete(price).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
