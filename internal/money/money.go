// Package money provides the monetary value type used for share prices.
// Amounts are fixed-point decimals (never float64) so repeated aggregation
// cannot accumulate rounding drift. Prices carry six fractional digits
// because funds report NAV to more decimals than trade amounts use.
package money

import (
	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is a fixed-point monetary amount paired with an ISO 4217 currency
// code. It is embeddable as a GORM struct; the owning model controls the
// column prefix and numeric precision.
type Money struct {
	Amount   decimal.Decimal `gorm:"type:numeric(12,6);not null" json:"amount"`
	Currency string          `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
}

// New creates a Money value from a decimal amount and a currency code.
func New(amount decimal.Decimal, currency string) Money {
	if currency == "" {
		currency = "USD"
	}
	return Money{Amount: amount, Currency: currency}
}

// FromString parses a decimal string into a Money value.
func FromString(amount, currency string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, err
	}
	return New(d, currency), nil
}

// Equal reports whether two Money values have the same amount and currency.
// Amounts are compared as decimals, so 100.5 equals 100.500000.
func (m Money) Equal(n Money) bool {
	return m.Currency == n.Currency && m.Amount.Equal(n.Amount)
}

func (m Money) IsZero() bool     { return m.Amount.IsZero() }
func (m Money) IsPositive() bool { return m.Amount.IsPositive() }
func (m Money) IsNegative() bool { return m.Amount.IsNegative() }

// Mul scales the amount by a decimal factor (e.g. a share volume or an
// exchange rate), keeping the currency.
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{Amount: m.Amount.Mul(factor), Currency: m.Currency}
}

// Display renders the amount with the currency's conventional symbol and
// fraction, rounding for presentation only; the stored value keeps all six
// fractional digits.
func (m Money) Display() string {
	cur := gomoney.GetCurrency(m.Currency)
	if cur == nil {
		return m.Amount.String() + " " + m.Currency
	}
	minor := m.Amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return gomoney.New(minor, m.Currency).Display()
}

// String returns the exact stored amount and currency code.
func (m Money) String() string {
	return m.Amount.String() + " " + m.Currency
}

// IsValidCurrency reports whether code is a known ISO 4217 currency.
func IsValidCurrency(code string) bool {
	return gomoney.GetCurrency(code) != nil
}
