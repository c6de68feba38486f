package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/ferraith/portfolio/internal/errors"
	"github.com/ferraith/portfolio/internal/models"
	"github.com/ferraith/portfolio/internal/pagination"
)

// investmentService handles investment-related business logic.
type investmentService struct {
	db *gorm.DB
}

// NewInvestmentService creates a new InvestmentServicer.
func NewInvestmentService(db *gorm.DB) InvestmentServicer {
	return &investmentService{db: db}
}

// CreateInvestment links a portfolio to an asset. Both referents must exist.
func (s *investmentService) CreateInvestment(portfolioID, assetID string) (*models.Investment, error) {
	var portfolio models.Portfolio
	if err := s.db.First(&portfolio, "id = ?", portfolioID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPortfolioNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var asset models.Asset
	if err := s.db.First(&asset, "id = ?", assetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	investment := &models.Investment{
		PortfolioID: portfolio.ID,
		AssetID:     asset.ID,
	}
	if err := s.db.Create(investment).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	investment.Portfolio = portfolio
	investment.Asset = asset
	return investment, nil
}

// GetInvestmentByID returns an investment with its portfolio and asset resolved.
func (s *investmentService) GetInvestmentByID(id string) (*models.Investment, error) {
	var investment models.Investment
	if err := s.db.Preload("Portfolio").Preload("Asset").First(&investment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &investment, nil
}

// ListInvestments returns all investments with their portfolio and asset
// resolved. This is the read surface the UI lists holdings from.
func (s *investmentService) ListInvestments(page pagination.PageRequest) (*pagination.PageResponse[models.Investment], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.Investment{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var investments []models.Investment
	if err := s.db.Preload("Portfolio").Preload("Asset").
		Order("created_at ASC").
		Scopes(pagination.Paginate(page)).Find(&investments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(investments, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// ListPortfolioInvestments returns the investments owned by one portfolio.
func (s *investmentService) ListPortfolioInvestments(portfolioID string, page pagination.PageRequest) (*pagination.PageResponse[models.Investment], error) {
	var portfolio models.Portfolio
	if err := s.db.First(&portfolio, "id = ?", portfolioID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPortfolioNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	page.Defaults()

	base := s.db.Model(&models.Investment{}).Where("portfolio_id = ?", portfolioID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var investments []models.Investment
	if err := s.db.Preload("Asset").Where("portfolio_id = ?", portfolioID).
		Order("created_at ASC").
		Scopes(pagination.Paginate(page)).Find(&investments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(investments, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// DeleteInvestment removes an investment and cascades to its transaction
// history in a single unit of work. Unlike portfolios and assets, the
// cascade here is intentional: the investment exclusively owns its
// transactions and deleting it is a deliberate act.
func (s *investmentService) DeleteInvestment(id string) error {
	investment, err := s.GetInvestmentByID(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if txErr := tx.Where("investment_id = ?", investment.ID).Delete(&models.Transaction{}).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		if txErr := tx.Delete(investment).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		return nil
	})
}
