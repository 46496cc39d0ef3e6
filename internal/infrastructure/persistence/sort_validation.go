package persistence

import (
	"strings"

	"gorm.io/gorm"

	"github.com/lawmatch/backend/internal/domain/shared"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against an allowlist.
// Returns the defaultField if the input is empty or not allowed. Sort
// fields come from query strings, so anything outside the allowlist is
// treated as the default rather than interpolated into SQL.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" || !allowedFields[trimmed] {
		return defaultField
	}
	return trimmed
}

// applyPageAndOrder applies validated ordering and pagination to a query
func applyPageAndOrder(query *gorm.DB, filter shared.Filter, allowedFields map[string]bool, defaultField string) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowedFields, defaultField)
	query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

// CommonSortFields contains fields common to most tables
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"email":         true,
	"last_name":     true,
	"kind":          true,
	"status":        true,
	"last_login_at": true,
}

// MatterSortFields contains allowed sort fields for matters
var MatterSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"number":     true,
	"title":      true,
	"status":     true,
	"opened_at":  true,
	"closed_at":  true,
}

// BillingItemSortFields contains allowed sort fields for billing items
var BillingItemSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"activity_date": true,
	"amount":        true,
	"hours":         true,
}

// InvoiceSortFields contains allowed sort fields for invoices
var InvoiceSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"number":       true,
	"status":       true,
	"total_amount": true,
	"due_date":     true,
	"sent_at":      true,
}

// PostedMatterSortFields contains allowed sort fields for marketplace postings
var PostedMatterSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"posted_at":      true,
	"budget":         true,
	"proposal_count": true,
	"practice_area":  true,
}

// LeadSortFields contains allowed sort fields for leads
var LeadSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"priority":   true,
	"status":     true,
}

// DocumentSortFields contains allowed sort fields for documents
var DocumentSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"file_name":  true,
	"size":       true,
}

// TopicSortFields contains allowed sort fields for forum topics
var TopicSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"last_activity_at": true,
	"post_count":       true,
	"title":            true,
}

// NotificationSortFields contains allowed sort fields for notifications
var NotificationSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"read":       true,
}
