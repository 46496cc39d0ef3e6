package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeConflict, http.StatusConflict},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"SOMETHING_NOBODY_MAPPED", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestDomainErrorStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		// not-found family
		{"NOT_FOUND", http.StatusNotFound},
		{"MATTER_NOT_FOUND", http.StatusNotFound},
		{"INVOICE_NOT_FOUND", http.StatusNotFound},

		// conflicts
		{"ALREADY_EXISTS", http.StatusConflict},
		{"EMAIL_TAKEN", http.StatusConflict},
		{"TIMER_ALREADY_RUNNING", http.StatusConflict},
		{"LEAD_ALREADY_ACTIVE", http.StatusConflict},
		{"CONCURRENT_MODIFICATION", http.StatusConflict},

		// bad input
		{"INVALID_TITLE", http.StatusBadRequest},
		{"INVALID_AMOUNT", http.StatusBadRequest},
		{"BAD_REQUEST", http.StatusBadRequest},

		// auth
		{"INVALID_CREDENTIALS", http.StatusUnauthorized},
		{"TOKEN_EXPIRED", http.StatusUnauthorized},
		{"FORBIDDEN", http.StatusForbidden},
		{"ACCOUNT_SUSPENDED", http.StatusForbidden},

		// business rules
		{"INVALID_STATE", http.StatusUnprocessableEntity},
		{"POSTING_INACTIVE", http.StatusUnprocessableEntity},
		{"EMPTY_INVOICE", http.StatusUnprocessableEntity},
		{"FOLDER_NOT_EMPTY", http.StatusUnprocessableEntity},
		{"NOT_VERIFIED", http.StatusUnprocessableEntity},

		// infrastructure
		{"INTERNAL_ERROR", http.StatusInternalServerError},
		{"STORAGE_ERROR", http.StatusInternalServerError},
		{"PAYMENT_ERROR", http.StatusInternalServerError},

		// payload limits
		{"FILE_TOO_LARGE", http.StatusRequestEntityTooLarge},

		// unknown codes default to unprocessable entity
		{"SOMETHING_ELSE", http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, DomainErrorStatus(tt.code))
		})
	}
}

func TestNewSuccessResponse(t *testing.T) {
	resp := NewSuccessResponse(map[string]string{"key": "value"})

	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a", "b"}, 45, 2, 20)

	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(45), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 20, resp.Meta.PageSize)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "Resource not found", "req-123")

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "Resource not found", resp.Error.Message)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}

func TestNewValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{
		{Field: "email", Message: "Invalid email format"},
		{Field: "name", Message: "This field is required"},
	}

	resp := NewValidationErrorResponse("Validation failed", "req-456", details)

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Len(t, resp.Error.Details, 2)
	assert.Equal(t, "req-456", resp.Error.RequestID)
}

func TestListRequest_Normalize(t *testing.T) {
	r := ListRequest{}
	r.Normalize()

	assert.Equal(t, 1, r.Page)
	assert.Equal(t, 20, r.PageSize)

	r = ListRequest{Page: 3, PageSize: 50}
	r.Normalize()

	assert.Equal(t, 3, r.Page)
	assert.Equal(t, 50, r.PageSize)
}
