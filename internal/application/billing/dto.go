package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/lawmatch/backend/internal/domain/billing"
)

// CreateItemInput contains the input for creating a billing item
type CreateItemInput struct {
	ActorID      uuid.UUID
	MatterID     uuid.UUID
	Kind         billing.BillingItemKind
	Description  string
	ActivityDate time.Time
	// Time items
	Hours      string
	HourlyRate string
	// Expense and flat-fee items
	Amount   string
	Currency string
}

// UpdateItemInput contains the editable billing item fields
type UpdateItemInput struct {
	ActorID      uuid.UUID
	ItemID       uuid.UUID
	Description  string
	ActivityDate time.Time
	Hours        string
	HourlyRate   string
	Amount       string
	Currency     string
}

// ListItemsInput contains the billing item listing parameters
type ListItemsInput struct {
	ActorID    uuid.UUID
	MatterID   uuid.UUID
	Kind       *billing.BillingItemKind
	Uninvoiced *bool
	Page       int
	PageSize   int
}

// StartTimerInput contains the input for starting a work timer
type StartTimerInput struct {
	ActorID     uuid.UUID
	MatterID    uuid.UUID
	Description string
}

// StopTimerResult carries the stopped timer and the time item created from it
type StopTimerResult struct {
	Timer *billing.Timer
	Item  *billing.BillingItem
}

// CreateInvoiceInput contains the input for assembling a draft invoice
type CreateInvoiceInput struct {
	ActorID     uuid.UUID
	MatterID    uuid.UUID
	Title       string
	Note        string
	PeriodStart time.Time
	PeriodEnd   time.Time
	// AttachUnbilled pulls in every billable uninvoiced item in the period
	AttachUnbilled bool
}

// SendInvoiceInput contains the input for issuing an invoice
type SendInvoiceInput struct {
	ActorID   uuid.UUID
	InvoiceID uuid.UUID
	DueDate   time.Time
}

// VoidInvoiceInput contains the input for voiding an invoice
type VoidInvoiceInput struct {
	ActorID   uuid.UUID
	InvoiceID uuid.UUID
	Reason    string
}

// InvoiceItemInput references an item to attach to or detach from an invoice
type InvoiceItemInput struct {
	ActorID   uuid.UUID
	InvoiceID uuid.UUID
	ItemID    uuid.UUID
}

// ListInvoicesInput contains the invoice listing parameters
type ListInvoicesInput struct {
	ActorID  uuid.UUID
	MatterID *uuid.UUID
	Status   *billing.InvoiceStatus
	Page     int
	PageSize int
}

// PaymentIntent is the client-facing handle for paying an invoice
type PaymentIntent struct {
	Reference    string
	ClientSecret string
}
