package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lawmatch/backend/internal/domain/shared"
)

// BillingItemFilter defines filtering options for billing item queries
type BillingItemFilter struct {
	shared.Filter
	MatterID    *uuid.UUID
	CreatedByID *uuid.UUID
	Kind        *BillingItemKind
	Billable    *bool
	Uninvoiced  *bool
	From        *time.Time
	To          *time.Time
}

// MatterBillingSummary aggregates billing figures for one matter
type MatterBillingSummary struct {
	MatterID       uuid.UUID       `json:"matter_id"`
	TotalBilled    decimal.Decimal `json:"total_billed"`
	TotalHours     decimal.Decimal `json:"total_hours"`
	UnbilledAmount decimal.Decimal `json:"unbilled_amount"`
	Currency       string          `json:"currency"`
}

// BillingItemRepository defines the interface for billing item persistence
type BillingItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BillingItem, error)

	// FindAll finds billing items with filtering
	FindAll(ctx context.Context, filter BillingItemFilter) ([]BillingItem, error)

	// FindByInvoice returns the items attached to an invoice
	FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]BillingItem, error)

	// FindUnbilled returns billable, uninvoiced items for a matter in a period
	FindUnbilled(ctx context.Context, matterID uuid.UUID, from, to time.Time) ([]BillingItem, error)

	// Count counts billing items matching the filter
	Count(ctx context.Context, filter BillingItemFilter) (int64, error)

	// SummaryForMatter computes the billing summary via SQL aggregation
	SummaryForMatter(ctx context.Context, matterID uuid.UUID) (*MatterBillingSummary, error)

	Save(ctx context.Context, item *BillingItem) error
	SaveWithLock(ctx context.Context, item *BillingItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TimerRepository defines the interface for timer persistence
type TimerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Timer, error)

	// FindLiveByUser returns the user's running or paused timer, if any
	FindLiveByUser(ctx context.Context, userID uuid.UUID) (*Timer, error)

	// FindByUser returns the user's timers, newest first
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Timer, error)

	Save(ctx context.Context, timer *Timer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// InvoiceFilter defines filtering options for invoice queries.
// PartyID scopes to invoices where the user is mediator or client.
type InvoiceFilter struct {
	shared.Filter
	MatterID   *uuid.UUID
	MediatorID *uuid.UUID
	ClientID   *uuid.UUID
	PartyID    *uuid.UUID
	Status     *InvoiceStatus
}

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindByNumber finds an invoice by its INV- number
	FindByNumber(ctx context.Context, number string) (*Invoice, error)

	// FindByPaymentReference finds an invoice by payment processor reference
	FindByPaymentReference(ctx context.Context, reference string) (*Invoice, error)

	// FindAll finds invoices with filtering
	FindAll(ctx context.Context, filter InvoiceFilter) ([]Invoice, error)

	// FindOverdue returns open invoices whose due date has passed
	FindOverdue(ctx context.Context, asOf time.Time) ([]Invoice, error)

	// Count counts invoices matching the filter
	Count(ctx context.Context, filter InvoiceFilter) (int64, error)

	// NextNumber allocates the next sequential invoice number
	NextNumber(ctx context.Context) (string, error)

	Save(ctx context.Context, inv *Invoice) error
	SaveWithLock(ctx context.Context, inv *Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
}
