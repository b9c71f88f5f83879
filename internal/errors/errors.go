// Package errors provides custom error types for the Budgetbook API.
// All service-layer errors should use AppError so handlers can produce
// consistent responses without leaking internal details to clients.
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

// Authentication errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Month errors.
var (
	ErrInvalidPeriod = &AppError{Code: "INVALID_PERIOD", Message: "Invalid month format, expected YYYY-MM", StatusCode: http.StatusBadRequest}
	ErrMonthNotFound = &AppError{Code: "MONTH_NOT_FOUND", Message: "Month not found", StatusCode: http.StatusNotFound}
)

// Budget item errors.
var (
	ErrItemNotFound = &AppError{Code: "ITEM_NOT_FOUND", Message: "Budget item not found", StatusCode: http.StatusNotFound}
	// ErrPastPeriod rejects value edits and terminations against months that
	// ended before the current one. The caller may retry with a later month.
	ErrPastPeriod = &AppError{Code: "PAST_PERIOD", Message: "Cannot modify a month that has already closed", StatusCode: http.StatusConflict}
)
