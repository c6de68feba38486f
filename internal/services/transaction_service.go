package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/ferraith/portfolio/internal/errors"
	"github.com/ferraith/portfolio/internal/models"
	"github.com/ferraith/portfolio/internal/pagination"
)

// transactionService records trade events. Recorded transactions are
// immutable; a wrong entry is corrected by recording an offsetting one so
// the audit history stays intact.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// RecordTransaction records a trade event against an investment, pinned to
// an existing share-price entry. The share price must belong to the same
// asset as the investment. An empty type defaults to buy.
func (s *transactionService) RecordTransaction(
	investmentID, sharePriceID string,
	txType models.TransactionType,
	date time.Time,
	volume decimal.Decimal,
	exchangeRate *decimal.Decimal,
) (*models.Transaction, error) {
	if txType == "" {
		txType = models.TransactionTypeBuy
	}
	if !txType.Valid() {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Date is required")
	}
	if volume.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Volume must be non-zero")
	}
	if !fitsNumeric(volume, 9, 6) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Volume exceeds the supported precision of six decimal places")
	}
	if exchangeRate != nil {
		if !exchangeRate.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Exchange rate must be positive")
		}
		if !fitsNumeric(*exchangeRate, 6, 6) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Exchange rate exceeds the supported precision of six decimal places")
		}
	}

	var investment models.Investment
	if err := s.db.First(&investment, "id = ?", investmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var sharePrice models.SharePrice
	if err := s.db.First(&sharePrice, "id = ?", sharePriceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSharePriceNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// A trade must be priced by an observation of the asset actually being
	// traded.
	if sharePrice.AssetID != investment.AssetID {
		return nil, apperrors.ErrPriceAssetMismatch
	}

	transaction := &models.Transaction{
		InvestmentID: investment.ID,
		SharePriceID: sharePrice.ID,
		Type:         txType,
		Date:         date,
		Volume:       volume,
	}
	if exchangeRate != nil {
		transaction.ExchangeRate.Decimal = *exchangeRate
		transaction.ExchangeRate.Valid = true
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// GetTransactionByID returns a transaction with its share price resolved.
func (s *transactionService) GetTransactionByID(id string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Preload("SharePrice").First(&transaction, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// ListInvestmentTransactions returns the trade history of an investment,
// newest first.
func (s *transactionService) ListInvestmentTransactions(investmentID string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	var investment models.Investment
	if err := s.db.First(&investment, "id = ?", investmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("investment_id = ?", investmentID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Order("date DESC").Scopes(pagination.Paginate(page)).Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}
