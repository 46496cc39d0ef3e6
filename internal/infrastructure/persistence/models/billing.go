package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lawmatch/backend/internal/domain/billing"
)

// BillingItemModel is the persistence model for billing items.
type BillingItemModel struct {
	AggregateModel
	MatterID     uuid.UUID               `gorm:"type:uuid;not null;index"`
	CreatedByID  uuid.UUID               `gorm:"type:uuid;not null;index"`
	Kind         billing.BillingItemKind `gorm:"type:varchar(20);not null"`
	Description  string                  `gorm:"type:text;not null"`
	ActivityDate time.Time               `gorm:"not null;index"`
	Hours        decimal.Decimal         `gorm:"type:decimal(8,2);not null;default:0"`
	HourlyRate   decimal.Decimal         `gorm:"type:decimal(12,2);not null;default:0"`
	Amount       decimal.Decimal         `gorm:"type:decimal(12,2);not null;default:0"`
	Currency     string                  `gorm:"type:varchar(3);not null;default:'USD'"`
	Billable     bool                    `gorm:"not null;default:true"`
	InvoiceID    *uuid.UUID              `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (BillingItemModel) TableName() string { return "billing_items" }

// ToDomain converts the persistence model to a domain BillingItem
func (m *BillingItemModel) ToDomain() *billing.BillingItem {
	return &billing.BillingItem{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		MatterID:          m.MatterID,
		CreatedByID:       m.CreatedByID,
		Kind:              m.Kind,
		Description:       m.Description,
		ActivityDate:      m.ActivityDate,
		Hours:             m.Hours,
		HourlyRate:        m.HourlyRate,
		Amount:            m.Amount,
		Currency:          m.Currency,
		Billable:          m.Billable,
		InvoiceID:         m.InvoiceID,
	}
}

// FromDomain populates the persistence model from a domain BillingItem
func (m *BillingItemModel) FromDomain(item *billing.BillingItem) {
	m.FromDomainAggregateRoot(item.BaseAggregateRoot)
	m.MatterID = item.MatterID
	m.CreatedByID = item.CreatedByID
	m.Kind = item.Kind
	m.Description = item.Description
	m.ActivityDate = item.ActivityDate
	m.Hours = item.Hours
	m.HourlyRate = item.HourlyRate
	m.Amount = item.Amount
	m.Currency = item.Currency
	m.Billable = item.Billable
	m.InvoiceID = item.InvoiceID
}

// TimerModel is the persistence model for timers.
type TimerModel struct {
	AggregateModel
	UserID      uuid.UUID           `gorm:"type:uuid;not null;index"`
	MatterID    uuid.UUID           `gorm:"type:uuid;not null;index"`
	Description string              `gorm:"type:text"`
	Status      billing.TimerStatus `gorm:"type:varchar(20);not null;index"`
	StartedAt   time.Time           `gorm:"not null"`
	ResumedAt   *time.Time
	Accumulated int64 `gorm:"not null;default:0"` // nanoseconds
	StoppedAt   *time.Time
}

// TableName returns the table name for GORM
func (TimerModel) TableName() string { return "timers" }

// ToDomain converts the persistence model to a domain Timer
func (m *TimerModel) ToDomain() *billing.Timer {
	return &billing.Timer{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		UserID:            m.UserID,
		MatterID:          m.MatterID,
		Description:       m.Description,
		Status:            m.Status,
		StartedAt:         m.StartedAt,
		ResumedAt:         m.ResumedAt,
		Accumulated:       time.Duration(m.Accumulated),
		StoppedAt:         m.StoppedAt,
	}
}

// FromDomain populates the persistence model from a domain Timer
func (m *TimerModel) FromDomain(t *billing.Timer) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.UserID = t.UserID
	m.MatterID = t.MatterID
	m.Description = t.Description
	m.Status = t.Status
	m.StartedAt = t.StartedAt
	m.ResumedAt = t.ResumedAt
	m.Accumulated = int64(t.Accumulated)
	m.StoppedAt = t.StoppedAt
}

// InvoiceModel is the persistence model for invoices.
type InvoiceModel struct {
	AggregateModel
	Number           string                `gorm:"type:varchar(20);not null;uniqueIndex"`
	MatterID         uuid.UUID             `gorm:"type:uuid;not null;index"`
	MediatorID       uuid.UUID             `gorm:"type:uuid;not null;index"`
	ClientID         uuid.UUID             `gorm:"type:uuid;not null;index"`
	Title            string                `gorm:"type:varchar(255)"`
	Note             string                `gorm:"type:text"`
	PeriodStart      time.Time             `gorm:"not null"`
	PeriodEnd        time.Time             `gorm:"not null"`
	Status           billing.InvoiceStatus `gorm:"type:varchar(20);not null;index"`
	Currency         string                `gorm:"type:varchar(3);not null;default:'USD'"`
	TotalAmount      decimal.Decimal       `gorm:"type:decimal(12,2);not null;default:0"`
	ItemCount        int                   `gorm:"not null;default:0"`
	DueDate          *time.Time            `gorm:"index"`
	SentAt           *time.Time
	PaidAt           *time.Time
	VoidedAt         *time.Time
	PaymentReference string `gorm:"type:varchar(255);index"`
	VoidReason       string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string { return "invoices" }

// ToDomain converts the persistence model to a domain Invoice
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	return &billing.Invoice{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Number:            m.Number,
		MatterID:          m.MatterID,
		MediatorID:        m.MediatorID,
		ClientID:          m.ClientID,
		Title:             m.Title,
		Note:              m.Note,
		PeriodStart:       m.PeriodStart,
		PeriodEnd:         m.PeriodEnd,
		Status:            m.Status,
		Currency:          m.Currency,
		TotalAmount:       m.TotalAmount,
		ItemCount:         m.ItemCount,
		DueDate:           m.DueDate,
		SentAt:            m.SentAt,
		PaidAt:            m.PaidAt,
		VoidedAt:          m.VoidedAt,
		PaymentReference:  m.PaymentReference,
		VoidReason:        m.VoidReason,
	}
}

// FromDomain populates the persistence model from a domain Invoice
func (m *InvoiceModel) FromDomain(inv *billing.Invoice) {
	m.FromDomainAggregateRoot(inv.BaseAggregateRoot)
	m.Number = inv.Number
	m.MatterID = inv.MatterID
	m.MediatorID = inv.MediatorID
	m.ClientID = inv.ClientID
	m.Title = inv.Title
	m.Note = inv.Note
	m.PeriodStart = inv.PeriodStart
	m.PeriodEnd = inv.PeriodEnd
	m.Status = inv.Status
	m.Currency = inv.Currency
	m.TotalAmount = inv.TotalAmount
	m.ItemCount = inv.ItemCount
	m.DueDate = inv.DueDate
	m.SentAt = inv.SentAt
	m.PaidAt = inv.PaidAt
	m.VoidedAt = inv.VoidedAt
	m.PaymentReference = inv.PaymentReference
	m.VoidReason = inv.VoidReason
}
