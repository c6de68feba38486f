package services

import "github.com/shopspring/decimal"

// fitsNumeric reports whether d fits a NUMERIC(intDigits+fracDigits, fracDigits)
// column: at most fracDigits fractional digits and fewer than intDigits
// integer digits. Values outside the declared precision must be rejected
// before the write; otherwise sqlite stores them silently and postgres
// surfaces the overflow as a storage error.
func fitsNumeric(d decimal.Decimal, intDigits, fracDigits int32) bool {
	if !d.Equal(d.Round(fracDigits)) {
		return false
	}
	return d.Abs().LessThan(decimal.New(1, intDigits))
}
