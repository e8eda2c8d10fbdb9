// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import "errors"

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "validation error", Fields: fields}
}

// Sentinel errors returned by services. Handlers translate them to HTTP
// statuses with errors.Is; anything else is treated as an infrastructure
// error and reported generically.
//
// Cross-tenant lookups always resolve to ErrNotFound, never to a distinct
// "forbidden" signal, so the API leaks no existence information.
var (
	ErrInvalid       = errors.New("invalid request")
	ErrNotFound      = errors.New("not found")
	ErrQuotaExceeded = errors.New("quota exceeded")
	// ErrConflict is reserved for future uniqueness violations.
	ErrConflict = errors.New("conflict")
)
