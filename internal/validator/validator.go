// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/ferraith/portfolio/internal/models"
	"github.com/ferraith/portfolio/internal/money"
)

// isinRegex matches the ISO 6166 shape: two-letter country prefix, nine
// alphanumeric characters, one check digit. The Luhn check digit itself is
// not verified; issuers occasionally publish codes that fail it.
var isinRegex = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{9}[0-9]$`)

// wknRegex matches the six-character German securities code.
var wknRegex = regexp.MustCompile(`^[A-Z0-9]{6}$`)

// cusipRegex matches the nine-character CUSIP code.
var cusipRegex = regexp.MustCompile(`^[A-Z0-9]{9}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("iso4217", validateISO4217)
		_ = v.RegisterValidation("asset_kind", validateAssetKind)
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("isin", validateISIN)
		_ = v.RegisterValidation("wkn", validateWKN)
		_ = v.RegisterValidation("cusip", validateCUSIP)
	}
}

func validateISO4217(fl validator.FieldLevel) bool {
	return money.IsValidCurrency(fl.Field().String())
}

func validateAssetKind(fl validator.FieldLevel) bool {
	return models.AssetKind(fl.Field().String()).Valid()
}

func validateTransactionType(fl validator.FieldLevel) bool {
	return models.TransactionType(fl.Field().String()).Valid()
}

func validateISIN(fl validator.FieldLevel) bool {
	return isinRegex.MatchString(fl.Field().String())
}

func validateWKN(fl validator.FieldLevel) bool {
	return wknRegex.MatchString(fl.Field().String())
}

func validateCUSIP(fl validator.FieldLevel) bool {
	return cusipRegex.MatchString(fl.Field().String())
}
