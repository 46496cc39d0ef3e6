package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lawmatch/backend/internal/domain/shared"
	"github.com/lawmatch/backend/internal/domain/shared/valueobject"
)

// InvoiceStatus represents the lifecycle status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft  InvoiceStatus = "DRAFT"  // Being assembled, items may change
	InvoiceStatusOpen   InvoiceStatus = "OPEN"   // Sent to the client, awaiting payment
	InvoiceStatusPaid   InvoiceStatus = "PAID"   // Terminal
	InvoiceStatusVoided InvoiceStatus = "VOIDED" // Terminal
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusOpen, InvoiceStatusPaid, InvoiceStatusVoided:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the invoice is in a terminal state
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusVoided
}

// CanVoid returns true if the invoice can still be voided
func (s InvoiceStatus) CanVoid() bool {
	return s == InvoiceStatusDraft || s == InvoiceStatusOpen
}

// Invoice represents an invoice aggregate root. An invoice collects
// billing items for one matter over a period, is sent to the client,
// and ends paid or voided. Paid invoices cannot be voided.
type Invoice struct {
	shared.BaseAggregateRoot
	Number           string          `json:"number"`
	MatterID         uuid.UUID       `json:"matter_id"`
	MediatorID       uuid.UUID       `json:"mediator_id"`
	ClientID         uuid.UUID       `json:"client_id"`
	Title            string          `json:"title"`
	Note             string          `json:"note"`
	PeriodStart      time.Time       `json:"period_start"`
	PeriodEnd        time.Time       `json:"period_end"`
	Status           InvoiceStatus   `json:"status"`
	Currency         string          `json:"currency"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	ItemCount        int             `json:"item_count"`
	DueDate          *time.Time      `json:"due_date"`
	SentAt           *time.Time      `json:"sent_at"`
	PaidAt           *time.Time      `json:"paid_at"`
	VoidedAt         *time.Time      `json:"voided_at"`
	PaymentReference string          `json:"payment_reference"`
	VoidReason       string          `json:"void_reason"`
}

// NewInvoice creates a new draft invoice for a matter billing period
func NewInvoice(
	number string,
	matterID, mediatorID, clientID uuid.UUID,
	title string,
	periodStart, periodEnd time.Time,
	currency valueobject.Currency,
) (*Invoice, error) {
	if number == "" || !strings.HasPrefix(number, "INV-") {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Invoice number must carry the INV- prefix")
	}
	if matterID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MATTER", "Matter ID cannot be empty")
	}
	if mediatorID == uuid.Nil || clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTIES", "Mediator and client IDs cannot be empty")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if periodEnd.Before(periodStart) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period end cannot be before period start")
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}

	return &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		MatterID:          matterID,
		MediatorID:        mediatorID,
		ClientID:          clientID,
		Title:             title,
		PeriodStart:       periodStart,
		PeriodEnd:         periodEnd,
		Status:            InvoiceStatusDraft,
		Currency:          string(currency),
		TotalAmount:       decimal.Zero,
	}, nil
}

// TotalMoney returns the invoice total as a Money value object
func (inv *Invoice) TotalMoney() valueobject.Money {
	m, err := valueobject.NewMoney(inv.TotalAmount, valueobject.Currency(inv.Currency))
	if err != nil {
		return valueobject.NewMoneyUSD(inv.TotalAmount)
	}
	return m
}

// AttachItem adds a billing item to a draft invoice, recomputing the
// total. The item must belong to the same matter and currency.
func (inv *Invoice) AttachItem(item *BillingItem) error {
	if inv.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot attach items to invoice in %s status", inv.Status))
	}
	if item.MatterID != inv.MatterID {
		return shared.NewDomainError("INVALID_ITEM", "Billing item belongs to a different matter")
	}
	if item.Currency != inv.Currency {
		return shared.NewDomainError("CURRENCY_MISMATCH", fmt.Sprintf("Item currency %s does not match invoice currency %s", item.Currency, inv.Currency))
	}
	if err := item.AttachToInvoice(inv.ID); err != nil {
		return err
	}

	inv.TotalAmount = inv.TotalAmount.Add(item.Amount)
	inv.ItemCount++
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
	return nil
}

// DetachItem removes a billing item from a draft invoice
func (inv *Invoice) DetachItem(item *BillingItem) error {
	if inv.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot detach items from invoice in %s status", inv.Status))
	}
	if item.InvoiceID == nil || *item.InvoiceID != inv.ID {
		return shared.NewDomainError("INVALID_ITEM", "Billing item is not attached to this invoice")
	}
	if err := item.DetachFromInvoice(); err != nil {
		return err
	}

	inv.TotalAmount = inv.TotalAmount.Sub(item.Amount)
	inv.ItemCount--
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
	return nil
}

// UpdateDetails edits title and note while the invoice is a draft
func (inv *Invoice) UpdateDetails(title, note string) error {
	if inv.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft invoices can be edited")
	}
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	inv.Title = title
	inv.Note = note
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
	return nil
}

// Send issues the draft invoice to the client. At least one item and a
// positive total are required.
func (inv *Invoice) Send(dueDate time.Time) error {
	if inv.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot send invoice in %s status", inv.Status))
	}
	if inv.ItemCount == 0 {
		return shared.NewDomainError("EMPTY_INVOICE", "Invoice must have at least one billing item")
	}
	if !inv.TotalAmount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Invoice total must be positive")
	}
	now := time.Now()
	if dueDate.Before(now) {
		return shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot be in the past")
	}

	inv.Status = InvoiceStatusOpen
	inv.SentAt = &now
	inv.DueDate = &dueDate
	inv.UpdatedAt = now
	inv.IncrementVersion()

	inv.AddDomainEvent(NewInvoiceSentEvent(inv))

	return nil
}

// RegisterPayment marks an open invoice as paid, recording the payment
// processor reference
func (inv *Invoice) RegisterPayment(reference string) error {
	if inv.Status != InvoiceStatusOpen {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot register payment for invoice in %s status", inv.Status))
	}
	if reference == "" {
		return shared.NewDomainError("INVALID_REFERENCE", "Payment reference is required")
	}

	now := time.Now()
	inv.Status = InvoiceStatusPaid
	inv.PaidAt = &now
	inv.PaymentReference = reference
	inv.UpdatedAt = now
	inv.IncrementVersion()

	inv.AddDomainEvent(NewInvoicePaidEvent(inv))

	return nil
}

// Void cancels a draft or open invoice. Paid invoices cannot be voided.
func (inv *Invoice) Void(reason string) error {
	if !inv.Status.CanVoid() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot void invoice in %s status", inv.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Void reason is required")
	}

	now := time.Now()
	inv.Status = InvoiceStatusVoided
	inv.VoidedAt = &now
	inv.VoidReason = reason
	inv.UpdatedAt = now
	inv.IncrementVersion()

	inv.AddDomainEvent(NewInvoiceVoidedEvent(inv))

	return nil
}

// IsOverdue reports whether an open invoice has passed its due date
func (inv *Invoice) IsOverdue(now time.Time) bool {
	return inv.Status == InvoiceStatusOpen && inv.DueDate != nil && now.After(*inv.DueDate)
}

var _ shared.AggregateRoot = (*Invoice)(nil)
