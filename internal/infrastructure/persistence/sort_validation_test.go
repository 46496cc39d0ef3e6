package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string returns DESC", "", "DESC"},
		{"ASC uppercase returns ASC", "ASC", "ASC"},
		{"asc lowercase returns ASC", "asc", "ASC"},
		{"DESC uppercase returns DESC", "DESC", "DESC"},
		{"invalid value returns DESC", "INVALID", "DESC"},
		{"sql injection attempt returns DESC", "ASC; DROP TABLE matters;--", "DESC"},
		{"whitespace only returns DESC", "   ", "DESC"},
		{"whitespace around ASC returns ASC", "  asc  ", "ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortOrder(tt.input))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	allowedFields := map[string]bool{
		"id":         true,
		"created_at": true,
		"number":     true,
	}

	tests := []struct {
		name         string
		input        string
		defaultField string
		expected     string
	}{
		{"empty string returns default", "", "created_at", "created_at"},
		{"valid field returns field", "number", "created_at", "number"},
		{"invalid field returns default", "invalid_field", "created_at", "created_at"},
		{"sql injection attempt returns default", "id; DROP TABLE matters;--", "created_at", "created_at"},
		{"case sensitive uppercase invalid", "NUMBER", "created_at", "created_at"},
		{"whitespace only returns default", "   ", "created_at", "created_at"},
		{"whitespace around valid field returns field", "  number  ", "created_at", "number"},
		{"field with quotes injection returns default", "number'--", "created_at", "created_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortField(tt.input, allowedFields, tt.defaultField))
		})
	}
}

func TestSortFieldAllowlists(t *testing.T) {
	allowlists := map[string]map[string]bool{
		"CommonSortFields":       CommonSortFields,
		"UserSortFields":         UserSortFields,
		"MatterSortFields":       MatterSortFields,
		"BillingItemSortFields":  BillingItemSortFields,
		"InvoiceSortFields":      InvoiceSortFields,
		"PostedMatterSortFields": PostedMatterSortFields,
		"LeadSortFields":         LeadSortFields,
		"DocumentSortFields":     DocumentSortFields,
		"TopicSortFields":        TopicSortFields,
		"NotificationSortFields": NotificationSortFields,
	}

	for name, allowlist := range allowlists {
		t.Run(name, func(t *testing.T) {
			assert.True(t, allowlist["id"], "every allowlist includes id")
			assert.True(t, allowlist["created_at"], "every allowlist includes created_at")
		})
	}
}
