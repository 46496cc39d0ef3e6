package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lawmatch/backend/internal/domain/shared"
	"github.com/lawmatch/backend/internal/domain/shared/valueobject"
)

// BillingItemKind represents the kind of billable entry
type BillingItemKind string

const (
	BillingItemKindTime    BillingItemKind = "TIME"
	BillingItemKindExpense BillingItemKind = "EXPENSE"
	BillingItemKindFlatFee BillingItemKind = "FLAT_FEE"
)

// IsValid checks if the kind is a valid BillingItemKind
func (k BillingItemKind) IsValid() bool {
	switch k {
	case BillingItemKindTime, BillingItemKindExpense, BillingItemKindFlatFee:
		return true
	}
	return false
}

// String returns the string representation of BillingItemKind
func (k BillingItemKind) String() string {
	return string(k)
}

// BillingItem represents a single billable entry against a matter.
// Time items derive their amount from hours and hourly rate; expense and
// flat-fee items carry the amount directly. Items are mutable until they
// are attached to an invoice.
type BillingItem struct {
	shared.BaseAggregateRoot
	MatterID     uuid.UUID       `json:"matter_id"`
	CreatedByID  uuid.UUID       `json:"created_by_id"`
	Kind         BillingItemKind `json:"kind"`
	Description  string          `json:"description"`
	ActivityDate time.Time       `json:"activity_date"`
	Hours        decimal.Decimal `json:"hours"`
	HourlyRate   decimal.Decimal `json:"hourly_rate"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Billable     bool            `json:"billable"`
	InvoiceID    *uuid.UUID      `json:"invoice_id"`
}

// NewTimeItem creates a billing item for hours worked. The amount is
// derived as hours times rate.
func NewTimeItem(matterID, createdByID uuid.UUID, description string, activityDate time.Time, hours decimal.Decimal, rate valueobject.Money) (*BillingItem, error) {
	if matterID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MATTER", "Matter ID cannot be empty")
	}
	if createdByID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Creator ID cannot be empty")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if hours.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_HOURS", "Hours must be positive")
	}
	if rate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Hourly rate cannot be negative")
	}

	amount := rate.Multiply(hours).Round(2)

	return &BillingItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		MatterID:          matterID,
		CreatedByID:       createdByID,
		Kind:              BillingItemKindTime,
		Description:       description,
		ActivityDate:      activityDate,
		Hours:             hours,
		HourlyRate:        rate.Amount(),
		Amount:            amount.Amount(),
		Currency:          string(rate.Currency()),
		Billable:          true,
	}, nil
}

// NewExpenseItem creates a billing item for an out-of-pocket expense
func NewExpenseItem(matterID, createdByID uuid.UUID, description string, activityDate time.Time, amount valueobject.Money) (*BillingItem, error) {
	return newDirectAmountItem(matterID, createdByID, BillingItemKindExpense, description, activityDate, amount)
}

// NewFlatFeeItem creates a billing item for a fixed fee
func NewFlatFeeItem(matterID, createdByID uuid.UUID, description string, activityDate time.Time, amount valueobject.Money) (*BillingItem, error) {
	return newDirectAmountItem(matterID, createdByID, BillingItemKindFlatFee, description, activityDate, amount)
}

func newDirectAmountItem(matterID, createdByID uuid.UUID, kind BillingItemKind, description string, activityDate time.Time, amount valueobject.Money) (*BillingItem, error) {
	if matterID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MATTER", "Matter ID cannot be empty")
	}
	if createdByID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Creator ID cannot be empty")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}

	return &BillingItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		MatterID:          matterID,
		CreatedByID:       createdByID,
		Kind:              kind,
		Description:       description,
		ActivityDate:      activityDate,
		Amount:            amount.Amount(),
		Currency:          string(amount.Currency()),
		Billable:          true,
	}, nil
}

// AmountMoney returns the amount as a Money value object
func (b *BillingItem) AmountMoney() valueobject.Money {
	m, err := valueobject.NewMoney(b.Amount, valueobject.Currency(b.Currency))
	if err != nil {
		return valueobject.NewMoneyUSD(b.Amount)
	}
	return m
}

// IsInvoiced returns true once the item has been attached to an invoice
func (b *BillingItem) IsInvoiced() bool {
	return b.InvoiceID != nil
}

// UpdateTime updates hours and rate on a time item, recomputing the amount
func (b *BillingItem) UpdateTime(description string, activityDate time.Time, hours decimal.Decimal, rate valueobject.Money) error {
	if b.IsInvoiced() {
		return shared.NewDomainError("INVALID_STATE", "Cannot edit a billing item that has been invoiced")
	}
	if b.Kind != BillingItemKindTime {
		return shared.NewDomainError("INVALID_STATE", "Item is not a time entry")
	}
	if description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if hours.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_HOURS", "Hours must be positive")
	}

	b.Description = description
	b.ActivityDate = activityDate
	b.Hours = hours
	b.HourlyRate = rate.Amount()
	b.Amount = rate.Multiply(hours).Round(2).Amount()
	b.Currency = string(rate.Currency())
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// UpdateAmount updates an expense or flat-fee item
func (b *BillingItem) UpdateAmount(description string, activityDate time.Time, amount valueobject.Money) error {
	if b.IsInvoiced() {
		return shared.NewDomainError("INVALID_STATE", "Cannot edit a billing item that has been invoiced")
	}
	if b.Kind == BillingItemKindTime {
		return shared.NewDomainError("INVALID_STATE", "Use UpdateTime for time entries")
	}
	if description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}

	b.Description = description
	b.ActivityDate = activityDate
	b.Amount = amount.Amount()
	b.Currency = string(amount.Currency())
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// SetBillable toggles whether the item is chargeable to the client
func (b *BillingItem) SetBillable(billable bool) error {
	if b.IsInvoiced() {
		return shared.NewDomainError("INVALID_STATE", "Cannot edit a billing item that has been invoiced")
	}
	b.Billable = billable
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// AttachToInvoice marks the item as belonging to an invoice
func (b *BillingItem) AttachToInvoice(invoiceID uuid.UUID) error {
	if b.IsInvoiced() {
		return shared.NewDomainError("INVALID_STATE", "Billing item is already invoiced")
	}
	if !b.Billable {
		return shared.NewDomainError("INVALID_STATE", "Non-billable items cannot be invoiced")
	}
	b.InvoiceID = &invoiceID
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// DetachFromInvoice releases the item back to the unbilled pool
func (b *BillingItem) DetachFromInvoice() error {
	if !b.IsInvoiced() {
		return shared.NewDomainError("INVALID_STATE", "Billing item is not invoiced")
	}
	b.InvoiceID = nil
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

var _ shared.AggregateRoot = (*BillingItem)(nil)
