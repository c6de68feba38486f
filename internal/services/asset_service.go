package services

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/ferraith/portfolio/internal/errors"
	"github.com/ferraith/portfolio/internal/models"
	"github.com/ferraith/portfolio/internal/pagination"
)

// assetService handles asset-related business logic.
type assetService struct {
	db *gorm.DB
}

// NewAssetService creates a new AssetServicer.
func NewAssetService(db *gorm.DB) AssetServicer {
	return &assetService{db: db}
}

// CreateAsset creates a new asset of the given kind. Kind-specific fields
// must match the kind: sector is stock-only, TER is fund-only, and fund
// links are allowed on stocks and bonds only.
func (s *assetService) CreateAsset(input CreateAssetInput) (*models.Asset, error) {
	if !input.Kind.Valid() {
		return nil, apperrors.ErrInvalidAssetKind
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Name is required")
	}
	if strings.TrimSpace(input.Issuer) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Issuer is required")
	}
	if input.Valor != nil && *input.Valor <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Valor must be a positive number")
	}
	if err := validateKindFields(input.Kind, input.Sector, input.TER, input.FundIDs); err != nil {
		return nil, err
	}

	// ISIN is treated as domain-unique even though the schema does not
	// enforce it.
	if input.ISIN != "" {
		var count int64
		if err := s.db.Model(&models.Asset{}).Where("isin = ?", input.ISIN).Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return nil, apperrors.ErrDuplicateISIN
		}
	}

	funds, err := s.loadFunds(input.FundIDs)
	if err != nil {
		return nil, err
	}

	asset := &models.Asset{
		Kind:   input.Kind,
		Name:   input.Name,
		ISIN:   input.ISIN,
		Issuer: input.Issuer,
		CUSIP:  input.CUSIP,
		WKN:    input.WKN,
		Valor:  input.Valor,
		Sector: input.Sector,
		Funds:  funds,
	}
	if input.TER != nil {
		asset.TER.Decimal = *input.TER
		asset.TER.Valid = true
	}

	if err := s.db.Create(asset).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return asset, nil
}

// GetAssetByID returns an asset with its fund links resolved.
func (s *assetService) GetAssetByID(id string) (*models.Asset, error) {
	var asset models.Asset
	if err := s.db.Preload("Funds").First(&asset, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &asset, nil
}

// ListAssets returns a paginated list of assets ordered by name, optionally
// filtered by kind.
func (s *assetService) ListAssets(kind *models.AssetKind, page pagination.PageRequest) (*pagination.PageResponse[models.Asset], error) {
	if kind != nil && !kind.Valid() {
		return nil, apperrors.ErrInvalidAssetKind
	}

	page.Defaults()

	base := s.db.Model(&models.Asset{})
	if kind != nil {
		base = base.Where("kind = ?", *kind)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var assets []models.Asset
	if err := base.Order("name ASC").Scopes(pagination.Paginate(page)).Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(assets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdateAsset changes an asset's descriptive fields. Identifiers (ISIN,
// CUSIP, WKN, Valor) cannot be changed once the asset is recorded.
func (s *assetService) UpdateAsset(id string, input UpdateAssetInput) (*models.Asset, error) {
	asset, err := s.GetAssetByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Name is required")
		}
		updates["name"] = *input.Name
	}
	if input.Issuer != nil {
		if strings.TrimSpace(*input.Issuer) == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Issuer is required")
		}
		updates["issuer"] = *input.Issuer
	}
	if input.Sector != nil {
		if asset.Kind != models.AssetKindStock {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Sector applies to stocks only")
		}
		updates["sector"] = *input.Sector
	}
	if input.TER != nil {
		if asset.Kind != models.AssetKindFund {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "TER applies to funds only")
		}
		if err := validateTER(*input.TER); err != nil {
			return nil, err
		}
		updates["ter"] = *input.TER
	}

	var funds []models.Asset
	if input.FundIDs != nil {
		if asset.Kind == models.AssetKindFund {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Fund links apply to stocks and bonds only")
		}
		funds, err = s.loadFunds(*input.FundIDs)
		if err != nil {
			return nil, err
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if txErr := tx.Model(asset).Updates(updates).Error; txErr != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
			}
		}
		if input.FundIDs != nil {
			if txErr := tx.Model(asset).Association("Funds").Replace(funds); txErr != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetAssetByID(id)
}

// DeleteAsset deletes an asset and its share-price history. The delete is
// rejected while any investment references the asset; investments must
// outlive neither their portfolio nor their asset.
func (s *assetService) DeleteAsset(id string) error {
	asset, err := s.GetAssetByID(id)
	if err != nil {
		return err
	}

	var investmentCount int64
	if err := s.db.Model(&models.Investment{}).Where("asset_id = ?", asset.ID).Count(&investmentCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if investmentCount > 0 {
		return apperrors.ErrAssetHasInvestments
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		// Price history cascades with its asset. With no investments left
		// there are no transactions pinning any of these entries.
		if txErr := tx.Where("asset_id = ?", asset.ID).Delete(&models.SharePrice{}).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		// Drop fund links in both directions of the join table.
		if txErr := tx.Exec("DELETE FROM asset_funds WHERE asset_id = ? OR fund_id = ?", asset.ID, asset.ID).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		if txErr := tx.Delete(asset).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		return nil
	})
}

// loadFunds resolves fund IDs to assets, requiring each to exist and to be
// a fund.
func (s *assetService) loadFunds(fundIDs []string) ([]models.Asset, error) {
	if len(fundIDs) == 0 {
		return nil, nil
	}

	var funds []models.Asset
	if err := s.db.Where("id IN ?", fundIDs).Find(&funds).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(funds) != len(fundIDs) {
		return nil, apperrors.ErrAssetNotFound
	}
	for i := range funds {
		if !funds[i].IsFund() {
			return nil, apperrors.ErrNotAFund
		}
	}
	return funds, nil
}

// validateTER checks the total expense ratio against its numeric(3,2)
// column: non-negative, below 10, at most two fractional digits.
func validateTER(ter decimal.Decimal) error {
	if ter.IsNegative() || !fitsNumeric(ter, 1, 2) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "TER must be between 0 and 9.99 with at most two decimal places")
	}
	return nil
}

// validateKindFields rejects kind-specific fields set on the wrong kind.
func validateKindFields(kind models.AssetKind, sector string, ter *decimal.Decimal, fundIDs []string) error {
	if sector != "" && kind != models.AssetKindStock {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Sector applies to stocks only")
	}
	if ter != nil {
		if kind != models.AssetKindFund {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "TER applies to funds only")
		}
		if err := validateTER(*ter); err != nil {
			return err
		}
	}
	if len(fundIDs) > 0 && kind == models.AssetKindFund {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Fund links apply to stocks and bonds only")
	}
	return nil
}
