package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ferraith/portfolio/internal/models"
	"github.com/ferraith/portfolio/internal/pagination"
	"github.com/ferraith/portfolio/internal/testutil"
)

func TestCreateAsset(t *testing.T) {
	t.Run("stock", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		valor := int64(1234567)
		asset, err := svc.CreateAsset(CreateAssetInput{
			Kind:   models.AssetKindStock,
			Name:   "Acme Corp",
			ISIN:   "US0000000001",
			Issuer: "Acme",
			CUSIP:  "037833100",
			WKN:    "A1B2C3",
			Valor:  &valor,
			Sector: "Tech",
		})
		testutil.AssertNoError(t, err)

		if asset.Kind != models.AssetKindStock {
			t.Errorf("expected stock kind, got %s", asset.Kind)
		}
		if asset.ISIN != "US0000000001" {
			t.Errorf("expected ISIN US0000000001, got %s", asset.ISIN)
		}
		if asset.Sector != "Tech" {
			t.Errorf("expected sector Tech, got %s", asset.Sector)
		}
	})

	t.Run("fund_with_ter", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		ter := decimal.RequireFromString("0.45")
		asset, err := svc.CreateAsset(CreateAssetInput{
			Kind:   models.AssetKindFund,
			Name:   "World Index Fund",
			ISIN:   "IE0000000001",
			Issuer: "Index Co",
			TER:    &ter,
		})
		testutil.AssertNoError(t, err)

		if !asset.TER.Valid {
			t.Fatal("expected TER to be set")
		}
		testutil.AssertDecimalEqual(t, "0.45", asset.TER.Decimal)
	})

	t.Run("stock_with_fund_links", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		fund := testutil.CreateTestFund(t, db)

		asset, err := svc.CreateAsset(CreateAssetInput{
			Kind:    models.AssetKindStock,
			Name:    "Linked Stock",
			ISIN:    "US0000000002",
			Issuer:  "Acme",
			FundIDs: []string{fund.ID},
		})
		testutil.AssertNoError(t, err)

		stored, err := svc.GetAssetByID(asset.ID)
		testutil.AssertNoError(t, err)
		if len(stored.Funds) != 1 || stored.Funds[0].ID != fund.ID {
			t.Errorf("expected one fund link to %s, got %v", fund.ID, stored.Funds)
		}
	})

	t.Run("invalid_kind", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		_, err := svc.CreateAsset(CreateAssetInput{
			Kind:   models.AssetKind("etf"),
			Name:   "Nope",
			ISIN:   "US0000000003",
			Issuer: "Acme",
		})
		testutil.AssertAppError(t, err, "INVALID_ASSET_KIND")
	})

	t.Run("sector_on_bond_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		_, err := svc.CreateAsset(CreateAssetInput{
			Kind:   models.AssetKindBond,
			Name:   "Gov Bond",
			ISIN:   "DE0000000001",
			Issuer: "Treasury",
			Sector: "Public",
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("ter_on_stock_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		ter := decimal.RequireFromString("0.10")
		_, err := svc.CreateAsset(CreateAssetInput{
			Kind:   models.AssetKindStock,
			Name:   "Acme Corp",
			ISIN:   "US0000000004",
			Issuer: "Acme",
			TER:    &ter,
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("ter_out_of_range_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		ter := decimal.RequireFromString("15.55")
		_, err := svc.CreateAsset(CreateAssetInput{
			Kind:   models.AssetKindFund,
			Name:   "Pricey Fund",
			ISIN:   "IE0000000002",
			Issuer: "Index Co",
			TER:    &ter,
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		var count int64
		testutil.AssertNoError(t, db.Model(&models.Asset{}).Count(&count).Error)
		if count != 0 {
			t.Errorf("expected nothing stored, got %d assets", count)
		}
	})

	t.Run("ter_negative_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		ter := decimal.RequireFromString("-0.25")
		_, err := svc.CreateAsset(CreateAssetInput{
			Kind:   models.AssetKindFund,
			Name:   "Rebate Fund",
			ISIN:   "IE0000000003",
			Issuer: "Index Co",
			TER:    &ter,
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("ter_third_decimal_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		ter := decimal.RequireFromString("0.255")
		_, err := svc.CreateAsset(CreateAssetInput{
			Kind:   models.AssetKindFund,
			Name:   "Precise Fund",
			ISIN:   "IE0000000004",
			Issuer: "Index Co",
			TER:    &ter,
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("ter_trailing_zeros_accepted", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		ter := decimal.RequireFromString("0.250000")
		asset, err := svc.CreateAsset(CreateAssetInput{
			Kind:   models.AssetKindFund,
			Name:   "Padded Fund",
			ISIN:   "IE0000000005",
			Issuer: "Index Co",
			TER:    &ter,
		})
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, "0.25", asset.TER.Decimal)
	})

	t.Run("fund_links_on_fund_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		fund := testutil.CreateTestFund(t, db)

		_, err := svc.CreateAsset(CreateAssetInput{
			Kind:    models.AssetKindFund,
			Name:    "Fund of Funds",
			ISIN:    "LU0000000001",
			Issuer:  "Index Co",
			FundIDs: []string{fund.ID},
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("fund_link_to_non_fund_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		stock := testutil.CreateTestStock(t, db)

		_, err := svc.CreateAsset(CreateAssetInput{
			Kind:    models.AssetKindBond,
			Name:    "Corp Bond",
			ISIN:    "DE0000000002",
			Issuer:  "Acme",
			FundIDs: []string{stock.ID},
		})
		testutil.AssertAppError(t, err, "NOT_A_FUND")
	})

	t.Run("duplicate_isin_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		input := CreateAssetInput{
			Kind:   models.AssetKindStock,
			Name:   "Acme Corp",
			ISIN:   "US0000000005",
			Issuer: "Acme",
		}
		_, err := svc.CreateAsset(input)
		testutil.AssertNoError(t, err)

		input.Name = "Acme Clone"
		_, err = svc.CreateAsset(input)
		testutil.AssertAppError(t, err, "DUPLICATE_ISIN")
	})

	t.Run("negative_valor_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		valor := int64(-1)
		_, err := svc.CreateAsset(CreateAssetInput{
			Kind:   models.AssetKindStock,
			Name:   "Acme Corp",
			ISIN:   "US0000000006",
			Issuer: "Acme",
			Valor:  &valor,
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestListAssets(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAssetService(db)

	testutil.CreateTestStock(t, db)
	testutil.CreateTestStock(t, db)
	testutil.CreateTestFund(t, db)

	all, err := svc.ListAssets(nil, pagination.PageRequest{})
	testutil.AssertNoError(t, err)
	if all.TotalItems != 3 {
		t.Errorf("expected 3 assets, got %d", all.TotalItems)
	}

	kind := models.AssetKindFund
	funds, err := svc.ListAssets(&kind, pagination.PageRequest{})
	testutil.AssertNoError(t, err)
	if funds.TotalItems != 1 {
		t.Errorf("expected 1 fund, got %d", funds.TotalItems)
	}
}

func TestUpdateAsset(t *testing.T) {
	t.Run("descriptive_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		stock := testutil.CreateTestStock(t, db)

		name := "Renamed Corp"
		sector := "Industrials"
		updated, err := svc.UpdateAsset(stock.ID, UpdateAssetInput{
			Name:   &name,
			Sector: &sector,
		})
		testutil.AssertNoError(t, err)

		if updated.Name != "Renamed Corp" {
			t.Errorf("expected renamed asset, got %s", updated.Name)
		}
		if updated.Sector != "Industrials" {
			t.Errorf("expected updated sector, got %s", updated.Sector)
		}
		// Identifiers stay fixed.
		if updated.ISIN != stock.ISIN {
			t.Errorf("expected ISIN %s unchanged, got %s", stock.ISIN, updated.ISIN)
		}
	})

	t.Run("replace_fund_links", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		stock := testutil.CreateTestStock(t, db)
		fundA := testutil.CreateTestFund(t, db)
		fundB := testutil.CreateTestFund(t, db)

		links := []string{fundA.ID}
		_, err := svc.UpdateAsset(stock.ID, UpdateAssetInput{FundIDs: &links})
		testutil.AssertNoError(t, err)

		links = []string{fundB.ID}
		updated, err := svc.UpdateAsset(stock.ID, UpdateAssetInput{FundIDs: &links})
		testutil.AssertNoError(t, err)

		if len(updated.Funds) != 1 || updated.Funds[0].ID != fundB.ID {
			t.Errorf("expected fund link replaced by %s, got %v", fundB.ID, updated.Funds)
		}
	})

	t.Run("sector_on_fund_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		fund := testutil.CreateTestFund(t, db)

		sector := "Tech"
		_, err := svc.UpdateAsset(fund.ID, UpdateAssetInput{Sector: &sector})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("ter_out_of_range_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		fund := testutil.CreateTestFund(t, db)

		ter := decimal.RequireFromString("15.55")
		_, err := svc.UpdateAsset(fund.ID, UpdateAssetInput{TER: &ter})
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		stored, err := svc.GetAssetByID(fund.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, "0.25", stored.TER.Decimal)
	})
}

func TestDeleteAsset(t *testing.T) {
	t.Run("rejected_with_investments", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		portfolio := testutil.CreateTestPortfolio(t, db)
		stock := testutil.CreateTestStock(t, db)
		testutil.CreateTestInvestment(t, db, portfolio.ID, stock.ID)

		err := svc.DeleteAsset(stock.ID)
		testutil.AssertAppError(t, err, "ASSET_HAS_INVESTMENTS")

		_, err = svc.GetAssetByID(stock.ID)
		testutil.AssertNoError(t, err)
	})

	t.Run("cascades_price_history", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		stock := testutil.CreateTestStock(t, db)
		testutil.CreateTestSharePrice(t, db, stock.ID, "100.000000", time.Now())
		testutil.CreateTestSharePrice(t, db, stock.ID, "101.500000", time.Now())

		testutil.AssertNoError(t, svc.DeleteAsset(stock.ID))

		var priceCount int64
		db.Model(&models.SharePrice{}).Where("asset_id = ?", stock.ID).Count(&priceCount)
		if priceCount != 0 {
			t.Errorf("expected price history to cascade, %d entries remain", priceCount)
		}
	})

	t.Run("clears_fund_links", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		stock := testutil.CreateTestStock(t, db)
		fund := testutil.CreateTestFund(t, db)

		links := []string{fund.ID}
		_, err := svc.UpdateAsset(stock.ID, UpdateAssetInput{FundIDs: &links})
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.DeleteAsset(fund.ID))

		stored, err := svc.GetAssetByID(stock.ID)
		testutil.AssertNoError(t, err)
		if len(stored.Funds) != 0 {
			t.Errorf("expected fund links cleared, got %v", stored.Funds)
		}
	})
}
