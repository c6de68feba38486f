package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a trade event. It is a closed enumeration, not
// a workflow state: a transaction never transitions between types.
type TransactionType string

const (
	TransactionTypeBuy          TransactionType = "buy"
	TransactionTypeSale         TransactionType = "sale"
	TransactionTypeReinvestment TransactionType = "reinvestment"
	TransactionTypeRedemption   TransactionType = "redemption"
	TransactionTypeDepotFee     TransactionType = "depot_fee"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeBuy, TransactionTypeSale, TransactionTypeReinvestment,
		TransactionTypeRedemption, TransactionTypeDepotFee:
		return true
	}
	return false
}

// Transaction records a single trade event against an investment, pinned to
// the share price that was in force. Transactions are immutable historical
// facts: corrections are appended as offsetting transactions, never edits.
//
// Volume and exchange rate are fixed-point decimals; float64 would drift
// under repeated aggregation.
type Transaction struct {
	Base
	InvestmentID string          `gorm:"type:uuid;not null;index" json:"investment_id"`
	SharePriceID string          `gorm:"type:uuid;not null;index" json:"share_price_id"`
	Type         TransactionType `gorm:"not null;default:'buy'" json:"type"`
	Date         time.Time       `gorm:"not null" json:"date"`
	// ExchangeRate applies when the transaction currency differs from the
	// asset's home currency.
	ExchangeRate decimal.NullDecimal `gorm:"type:numeric(12,6)" json:"exchange_rate,omitempty"`
	// Volume is the number of shares/units moved, signed by convention of
	// the transaction type.
	Volume decimal.Decimal `gorm:"type:numeric(15,6);not null" json:"volume"`

	Investment Investment `gorm:"foreignKey:InvestmentID" json:"investment,omitempty"`
	SharePrice SharePrice `gorm:"foreignKey:SharePriceID" json:"share_price,omitempty"`
}
