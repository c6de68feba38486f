package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/ferraith/portfolio/internal/errors"
	"github.com/ferraith/portfolio/internal/models"
	"github.com/ferraith/portfolio/internal/pagination"
)

// portfolioService handles portfolio-related business logic.
type portfolioService struct {
	db *gorm.DB
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(db *gorm.DB) PortfolioServicer {
	return &portfolioService{db: db}
}

// CreatePortfolio creates a new portfolio. An empty name defaults to "Untitled".
func (s *portfolioService) CreatePortfolio(name string) (*models.Portfolio, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = models.DefaultPortfolioName
	}

	portfolio := &models.Portfolio{Name: name}
	if err := s.db.Create(portfolio).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return portfolio, nil
}

// GetPortfolioByID returns a portfolio by its ID.
func (s *portfolioService) GetPortfolioByID(id string) (*models.Portfolio, error) {
	var portfolio models.Portfolio
	if err := s.db.First(&portfolio, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPortfolioNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &portfolio, nil
}

// ListPortfolios returns a paginated list of portfolios ordered by name.
func (s *portfolioService) ListPortfolios(page pagination.PageRequest) (*pagination.PageResponse[models.Portfolio], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Portfolio{})
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var portfolios []models.Portfolio
	if err := base.Order("name ASC").Scopes(pagination.Paginate(page)).Find(&portfolios).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(portfolios, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// RenamePortfolio changes a portfolio's name.
func (s *portfolioService) RenamePortfolio(id, name string) (*models.Portfolio, error) {
	portfolio, err := s.GetPortfolioByID(id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Name is required")
	}

	if err := s.db.Model(portfolio).Update("name", name).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return portfolio, nil
}

// DeletePortfolio deletes a portfolio. The delete is rejected while the
// portfolio still owns investments; removing those is a deliberate act that
// must happen first.
func (s *portfolioService) DeletePortfolio(id string) error {
	portfolio, err := s.GetPortfolioByID(id)
	if err != nil {
		return err
	}

	var investmentCount int64
	if err := s.db.Model(&models.Investment{}).Where("portfolio_id = ?", portfolio.ID).Count(&investmentCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if investmentCount > 0 {
		return apperrors.ErrPortfolioHasInvestments
	}

	if err := s.db.Delete(portfolio).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
