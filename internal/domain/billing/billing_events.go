package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lawmatch/backend/internal/domain/shared"
)

// InvoiceSentEvent is raised when a draft invoice is issued to the client
type InvoiceSentEvent struct {
	shared.BaseDomainEvent
	InvoiceID   uuid.UUID       `json:"invoice_id"`
	Number      string          `json:"number"`
	MatterID    uuid.UUID       `json:"matter_id"`
	MediatorID  uuid.UUID       `json:"mediator_id"`
	ClientID    uuid.UUID       `json:"client_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Currency    string          `json:"currency"`
	DueDate     *time.Time      `json:"due_date"`
}

// EventType returns the event type name
func (e *InvoiceSentEvent) EventType() string {
	return "InvoiceSent"
}

// NewInvoiceSentEvent creates a new InvoiceSentEvent
func NewInvoiceSentEvent(inv *Invoice) *InvoiceSentEvent {
	return &InvoiceSentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("InvoiceSent", "Invoice", inv.ID),
		InvoiceID:       inv.ID,
		Number:          inv.Number,
		MatterID:        inv.MatterID,
		MediatorID:      inv.MediatorID,
		ClientID:        inv.ClientID,
		TotalAmount:     inv.TotalAmount,
		Currency:        inv.Currency,
		DueDate:         inv.DueDate,
	}
}

// InvoicePaidEvent is raised when payment is registered for an invoice
type InvoicePaidEvent struct {
	shared.BaseDomainEvent
	InvoiceID        uuid.UUID       `json:"invoice_id"`
	Number           string          `json:"number"`
	MatterID         uuid.UUID       `json:"matter_id"`
	MediatorID       uuid.UUID       `json:"mediator_id"`
	ClientID         uuid.UUID       `json:"client_id"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	Currency         string          `json:"currency"`
	PaymentReference string          `json:"payment_reference"`
	PaidAt           time.Time       `json:"paid_at"`
}

// EventType returns the event type name
func (e *InvoicePaidEvent) EventType() string {
	return "InvoicePaid"
}

// NewInvoicePaidEvent creates a new InvoicePaidEvent
func NewInvoicePaidEvent(inv *Invoice) *InvoicePaidEvent {
	paidAt := time.Now()
	if inv.PaidAt != nil {
		paidAt = *inv.PaidAt
	}
	return &InvoicePaidEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent("InvoicePaid", "Invoice", inv.ID),
		InvoiceID:        inv.ID,
		Number:           inv.Number,
		MatterID:         inv.MatterID,
		MediatorID:       inv.MediatorID,
		ClientID:         inv.ClientID,
		TotalAmount:      inv.TotalAmount,
		Currency:         inv.Currency,
		PaymentReference: inv.PaymentReference,
		PaidAt:           paidAt,
	}
}

// InvoiceVoidedEvent is raised when an invoice is voided
type InvoiceVoidedEvent struct {
	shared.BaseDomainEvent
	InvoiceID  uuid.UUID `json:"invoice_id"`
	Number     string    `json:"number"`
	MatterID   uuid.UUID `json:"matter_id"`
	MediatorID uuid.UUID `json:"mediator_id"`
	ClientID   uuid.UUID `json:"client_id"`
	Reason     string    `json:"reason"`
}

// EventType returns the event type name
func (e *InvoiceVoidedEvent) EventType() string {
	return "InvoiceVoided"
}

// NewInvoiceVoidedEvent creates a new InvoiceVoidedEvent
func NewInvoiceVoidedEvent(inv *Invoice) *InvoiceVoidedEvent {
	return &InvoiceVoidedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("InvoiceVoided", "Invoice", inv.ID),
		InvoiceID:       inv.ID,
		Number:          inv.Number,
		MatterID:        inv.MatterID,
		MediatorID:      inv.MediatorID,
		ClientID:        inv.ClientID,
		Reason:          inv.VoidReason,
	}
}

// InvoiceOverdueEvent is raised by the daily sweep when an open invoice
// passes its due date
type InvoiceOverdueEvent struct {
	shared.BaseDomainEvent
	InvoiceID   uuid.UUID       `json:"invoice_id"`
	Number      string          `json:"number"`
	MatterID    uuid.UUID       `json:"matter_id"`
	MediatorID  uuid.UUID       `json:"mediator_id"`
	ClientID    uuid.UUID       `json:"client_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Currency    string          `json:"currency"`
	DueDate     time.Time       `json:"due_date"`
}

// EventType returns the event type name
func (e *InvoiceOverdueEvent) EventType() string {
	return "InvoiceOverdue"
}

// NewInvoiceOverdueEvent creates a new InvoiceOverdueEvent
func NewInvoiceOverdueEvent(inv *Invoice) *InvoiceOverdueEvent {
	dueDate := time.Time{}
	if inv.DueDate != nil {
		dueDate = *inv.DueDate
	}
	return &InvoiceOverdueEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("InvoiceOverdue", "Invoice", inv.ID),
		InvoiceID:       inv.ID,
		Number:          inv.Number,
		MatterID:        inv.MatterID,
		MediatorID:      inv.MediatorID,
		ClientID:        inv.ClientID,
		TotalAmount:     inv.TotalAmount,
		Currency:        inv.Currency,
		DueDate:         dueDate,
	}
}

// TimerStoppedEvent is raised when a work timer is stopped
type TimerStoppedEvent struct {
	shared.BaseDomainEvent
	TimerID     uuid.UUID     `json:"timer_id"`
	UserID      uuid.UUID     `json:"user_id"`
	MatterID    uuid.UUID     `json:"matter_id"`
	Description string        `json:"description"`
	Elapsed     time.Duration `json:"elapsed"`
}

// EventType returns the event type name
func (e *TimerStoppedEvent) EventType() string {
	return "TimerStopped"
}

// NewTimerStoppedEvent creates a new TimerStoppedEvent
func NewTimerStoppedEvent(t *Timer) *TimerStoppedEvent {
	return &TimerStoppedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("TimerStopped", "Timer", t.ID),
		TimerID:         t.ID,
		UserID:          t.UserID,
		MatterID:        t.MatterID,
		Description:     t.Description,
		Elapsed:         t.Accumulated,
	}
}
