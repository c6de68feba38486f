package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ferraith/portfolio/internal/models"
	"github.com/ferraith/portfolio/internal/money"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// nextISIN produces a unique, well-formed ISIN per fixture.
func nextISIN() string {
	return fmt.Sprintf("US%09d1", nextID())
}

// CreateTestPortfolio creates a portfolio with a unique name.
func CreateTestPortfolio(t *testing.T, db *gorm.DB) *models.Portfolio {
	t.Helper()

	portfolio := &models.Portfolio{
		Name: fmt.Sprintf("Test Portfolio %d", nextID()),
	}
	if err := db.Create(portfolio).Error; err != nil {
		t.Fatalf("failed to create test portfolio: %v", err)
	}
	return portfolio
}

// CreateTestStock creates a stock asset with a unique ISIN.
func CreateTestStock(t *testing.T, db *gorm.DB) *models.Asset {
	t.Helper()

	n := nextID()
	asset := &models.Asset{
		Kind:   models.AssetKindStock,
		Name:   fmt.Sprintf("Test Stock %d", n),
		ISIN:   nextISIN(),
		Issuer: fmt.Sprintf("Test Issuer %d", n),
		Sector: "Technology",
	}
	if err := db.Create(asset).Error; err != nil {
		t.Fatalf("failed to create test stock: %v", err)
	}
	return asset
}

// CreateTestBond creates a bond asset with a unique ISIN.
func CreateTestBond(t *testing.T, db *gorm.DB) *models.Asset {
	t.Helper()

	n := nextID()
	asset := &models.Asset{
		Kind:   models.AssetKindBond,
		Name:   fmt.Sprintf("Test Bond %d", n),
		ISIN:   nextISIN(),
		Issuer: fmt.Sprintf("Test Issuer %d", n),
	}
	if err := db.Create(asset).Error; err != nil {
		t.Fatalf("failed to create test bond: %v", err)
	}
	return asset
}

// CreateTestFund creates a fund asset with a 0.25 total expense ratio.
func CreateTestFund(t *testing.T, db *gorm.DB) *models.Asset {
	t.Helper()

	n := nextID()
	asset := &models.Asset{
		Kind:   models.AssetKindFund,
		Name:   fmt.Sprintf("Test Fund %d", n),
		ISIN:   nextISIN(),
		Issuer: fmt.Sprintf("Test Issuer %d", n),
	}
	asset.TER.Decimal = decimal.RequireFromString("0.25")
	asset.TER.Valid = true
	if err := db.Create(asset).Error; err != nil {
		t.Fatalf("failed to create test fund: %v", err)
	}
	return asset
}

// CreateTestSharePrice records a USD price observation for the given asset.
func CreateTestSharePrice(t *testing.T, db *gorm.DB, assetID string, amount string, date time.Time) *models.SharePrice {
	t.Helper()

	price := &models.SharePrice{
		AssetID: assetID,
		Date:    date,
		Price:   money.New(decimal.RequireFromString(amount), "USD"),
	}
	if err := db.Create(price).Error; err != nil {
		t.Fatalf("failed to create test share price: %v", err)
	}
	return price
}

// CreateTestInvestment links a portfolio to an asset.
func CreateTestInvestment(t *testing.T, db *gorm.DB, portfolioID, assetID string) *models.Investment {
	t.Helper()

	investment := &models.Investment{
		PortfolioID: portfolioID,
		AssetID:     assetID,
	}
	if err := db.Create(investment).Error; err != nil {
		t.Fatalf("failed to create test investment: %v", err)
	}
	return investment
}

// CreateTestTransaction records a buy of the given volume against an
// investment, pinned to a share price entry.
func CreateTestTransaction(t *testing.T, db *gorm.DB, investmentID, sharePriceID string, volume string) *models.Transaction {
	t.Helper()

	transaction := &models.Transaction{
		InvestmentID: investmentID,
		SharePriceID: sharePriceID,
		Type:         models.TransactionTypeBuy,
		Date:         time.Now(),
		Volume:       decimal.RequireFromString(volume),
	}
	if err := db.Create(transaction).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return transaction
}
