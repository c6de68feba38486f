package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ferraith/portfolio/internal/models"
	"github.com/ferraith/portfolio/internal/pagination"
)

// PortfolioServicer defines the contract for portfolio-related business logic.
type PortfolioServicer interface {
	CreatePortfolio(name string) (*models.Portfolio, error)
	GetPortfolioByID(id string) (*models.Portfolio, error)
	ListPortfolios(page pagination.PageRequest) (*pagination.PageResponse[models.Portfolio], error)
	RenamePortfolio(id, name string) (*models.Portfolio, error)
	DeletePortfolio(id string) error
}

// CreateAssetInput holds the fields for creating an asset. Kind-specific
// fields (Sector, TER, FundIDs) must match the declared kind.
type CreateAssetInput struct {
	Kind    models.AssetKind
	Name    string
	ISIN    string
	Issuer  string
	CUSIP   string
	WKN     string
	Valor   *int64
	Sector  string
	TER     *decimal.Decimal
	FundIDs []string
}

// UpdateAssetInput holds the descriptive fields that may change after
// creation. Identifier fields are deliberately absent: ISIN, CUSIP, WKN and
// Valor are fixed once an asset is recorded. Nil pointers leave the stored
// value untouched.
type UpdateAssetInput struct {
	Name    *string
	Issuer  *string
	Sector  *string
	TER     *decimal.Decimal
	FundIDs *[]string
}

// AssetServicer defines the contract for asset-related business logic.
type AssetServicer interface {
	CreateAsset(input CreateAssetInput) (*models.Asset, error)
	GetAssetByID(id string) (*models.Asset, error)
	ListAssets(kind *models.AssetKind, page pagination.PageRequest) (*pagination.PageResponse[models.Asset], error)
	UpdateAsset(id string, input UpdateAssetInput) (*models.Asset, error)
	DeleteAsset(id string) error
}

// SharePriceServicer defines the contract for the append-only price ledger.
// There is intentionally no update method: price entries are immutable, and
// corrections are recorded by appending a superseding entry.
type SharePriceServicer interface {
	RecordPrice(assetID string, date time.Time, amount decimal.Decimal, currency string) (*models.SharePrice, error)
	GetSharePriceByID(id string) (*models.SharePrice, error)
	ListAssetPrices(assetID string, from, to *time.Time, page pagination.PageRequest) (*pagination.PageResponse[models.SharePrice], error)
	LatestPriceAsOf(assetID string, asOf time.Time) (*models.SharePrice, error)
	DeleteSharePrice(id string) error
}

// InvestmentServicer defines the contract for investment-related business logic.
type InvestmentServicer interface {
	CreateInvestment(portfolioID, assetID string) (*models.Investment, error)
	GetInvestmentByID(id string) (*models.Investment, error)
	ListInvestments(page pagination.PageRequest) (*pagination.PageResponse[models.Investment], error)
	ListPortfolioInvestments(portfolioID string, page pagination.PageRequest) (*pagination.PageResponse[models.Investment], error)
	DeleteInvestment(id string) error
}

// TransactionServicer defines the contract for recording trade events.
// Transactions have no update or single-delete methods: they are immutable
// historical facts, removed only when their investment is deleted.
type TransactionServicer interface {
	RecordTransaction(investmentID, sharePriceID string, txType models.TransactionType, date time.Time, volume decimal.Decimal, exchangeRate *decimal.Decimal) (*models.Transaction, error)
	GetTransactionByID(id string) (*models.Transaction, error)
	ListInvestmentTransactions(investmentID string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
}
