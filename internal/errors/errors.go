// Package errors provides the error types used across the portfolio service.
// All service-layer errors are surfaced as AppError values so handlers can
// translate them into consistent HTTP responses without leaking internal
// storage details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Portfolio errors.
var (
	ErrPortfolioNotFound       = &AppError{Code: "PORTFOLIO_NOT_FOUND", Message: "Portfolio not found", StatusCode: http.StatusNotFound}
	ErrPortfolioHasInvestments = &AppError{Code: "PORTFOLIO_HAS_INVESTMENTS", Message: "Portfolio still owns investments", StatusCode: http.StatusConflict}
)

// Asset errors.
var (
	ErrAssetNotFound       = &AppError{Code: "ASSET_NOT_FOUND", Message: "Asset not found", StatusCode: http.StatusNotFound}
	ErrAssetHasInvestments = &AppError{Code: "ASSET_HAS_INVESTMENTS", Message: "Asset is referenced by existing investments", StatusCode: http.StatusConflict}
	ErrDuplicateISIN       = &AppError{Code: "DUPLICATE_ISIN", Message: "An asset with this ISIN already exists", StatusCode: http.StatusConflict}
	ErrInvalidAssetKind    = &AppError{Code: "INVALID_ASSET_KIND", Message: "Unsupported asset kind", StatusCode: http.StatusBadRequest}
	ErrNotAFund            = &AppError{Code: "NOT_A_FUND", Message: "Linked asset is not a fund", StatusCode: http.StatusBadRequest}
)

// Share price errors.
var (
	ErrSharePriceNotFound = &AppError{Code: "SHARE_PRICE_NOT_FOUND", Message: "Share price not found", StatusCode: http.StatusNotFound}
	ErrSharePriceInUse    = &AppError{Code: "SHARE_PRICE_IN_USE", Message: "Share price is referenced by existing transactions", StatusCode: http.StatusConflict}
	ErrNoPriceAvailable   = &AppError{Code: "NO_PRICE_AVAILABLE", Message: "No price recorded for this asset at or before the given time", StatusCode: http.StatusNotFound}
)

// Investment errors.
var (
	ErrInvestmentNotFound = &AppError{Code: "INVESTMENT_NOT_FOUND", Message: "Investment not found", StatusCode: http.StatusNotFound}
)

// Transaction errors.
var (
	ErrTransactionNotFound    = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrInvalidTransactionType = &AppError{Code: "INVALID_TRANSACTION_TYPE", Message: "Unsupported transaction type", StatusCode: http.StatusBadRequest}
	ErrPriceAssetMismatch     = &AppError{Code: "PRICE_ASSET_MISMATCH", Message: "Share price belongs to a different asset than the investment", StatusCode: http.StatusBadRequest}
)
