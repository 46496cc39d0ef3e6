package dto

import (
	"net/http"
	"strings"
)

// Error code constants for errors raised at the API layer.
// Domain errors keep their own codes and are classified by DomainErrorStatus.

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = "ERR_FORBIDDEN"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Rate limiting error codes
const (
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps API-layer error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:      http.StatusInternalServerError,
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeConflict:     http.StatusConflict,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
	ErrCodeRateLimited:  http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an API-layer error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainErrorStatus holds exact-match status codes for domain error codes
// that the suffix rules below would misclassify.
var domainErrorStatus = map[string]int{
	"UNAUTHORIZED":        http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_REVOKED":       http.StatusUnauthorized,
	"TOKEN_MAX_REFRESH":   http.StatusUnauthorized,
	"FORBIDDEN":           http.StatusForbidden,
	"ACCOUNT_SUSPENDED":   http.StatusForbidden,

	"INVALID_STATE":     http.StatusUnprocessableEntity,
	"POSTING_INACTIVE":  http.StatusUnprocessableEntity,
	"PROPOSAL_ACCEPTED": http.StatusUnprocessableEntity,
	"EMPTY_INVOICE":     http.StatusUnprocessableEntity,
	"CURRENCY_MISMATCH": http.StatusUnprocessableEntity,
	"FOLDER_NOT_EMPTY":  http.StatusUnprocessableEntity,
	"NOT_VERIFIED":      http.StatusUnprocessableEntity,

	"FILE_TOO_LARGE": http.StatusRequestEntityTooLarge,
	"RATE_LIMITED":   http.StatusTooManyRequests,
}

// DomainErrorStatus classifies a domain error code into an HTTP status.
// Codes are kept verbatim in responses; only the status is derived here.
func DomainErrorStatus(code string) int {
	if status, ok := domainErrorStatus[code]; ok {
		return status
	}

	switch {
	case code == "NOT_FOUND" || strings.HasSuffix(code, "_NOT_FOUND"):
		return http.StatusNotFound
	case code == "ALREADY_EXISTS" || strings.HasSuffix(code, "_TAKEN"),
		strings.Contains(code, "_ALREADY_"),
		code == "CONCURRENT_MODIFICATION" || code == "CONCURRENCY_CONFLICT",
		code == "TIMER_CONFLICT":
		return http.StatusConflict
	case strings.HasPrefix(code, "INVALID_"),
		code == "VALIDATION_ERROR" || code == "BAD_REQUEST":
		return http.StatusBadRequest
	case strings.HasSuffix(code, "_ERROR"):
		return http.StatusInternalServerError
	default:
		return http.StatusUnprocessableEntity
	}
}
