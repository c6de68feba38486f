package models

import (
	"github.com/shopspring/decimal"
)

// AssetKind selects the concrete variant of an asset. The asset table holds
// all variants; kind-specific fields are only populated for the matching
// kind so storage and queries stay uniform across stocks, bonds, and funds.
type AssetKind string

const (
	AssetKindStock AssetKind = "stock"
	AssetKindBond  AssetKind = "bond"
	AssetKindFund  AssetKind = "fund"
)

// Valid reports whether k is one of the known asset kinds.
func (k AssetKind) Valid() bool {
	switch k {
	case AssetKindStock, AssetKindBond, AssetKindFund:
		return true
	}
	return false
}

// Asset represents a tradable financial instrument. The identifier fields
// (ISIN, CUSIP, WKN, Valor) are treated as immutable after creation; updates
// only touch descriptive fields.
type Asset struct {
	Base
	Kind   AssetKind `gorm:"not null" json:"kind"`
	Name   string    `gorm:"not null" json:"name"`
	ISIN   string    `gorm:"column:isin;type:varchar(12);not null;index" json:"isin"`
	Issuer string    `gorm:"not null" json:"issuer"`
	CUSIP  string    `gorm:"column:cusip;type:varchar(9)" json:"cusip,omitempty"`
	WKN    string    `gorm:"column:wkn;type:varchar(6)" json:"wkn,omitempty"`
	Valor  *int64    `json:"valor,omitempty"`

	// Stock only: industry sector, free text.
	Sector string `json:"sector,omitempty"`

	// Fund only: total expense ratio, one integer and two fractional digits.
	TER decimal.NullDecimal `gorm:"column:ter;type:numeric(3,2)" json:"ter,omitempty"`

	// Stocks and bonds can be held by funds.
	Funds []Asset `gorm:"many2many:asset_funds;joinForeignKey:AssetID;joinReferences:FundID" json:"funds,omitempty"`
}

// IsFund reports whether the asset is a fund variant.
func (a *Asset) IsFund() bool {
	return a.Kind == AssetKindFund
}
