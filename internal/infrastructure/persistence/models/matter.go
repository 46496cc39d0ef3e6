package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lawmatch/backend/internal/domain/matter"
	"github.com/lawmatch/backend/internal/domain/shared"
)

// MatterModel is the persistence model for the Matter aggregate.
type MatterModel struct {
	AggregateModel
	Number      string              `gorm:"type:varchar(20);not null;uniqueIndex"`
	MediatorID  uuid.UUID           `gorm:"type:uuid;not null;index"`
	ClientID    uuid.UUID           `gorm:"type:uuid;not null;index"`
	Title       string              `gorm:"type:varchar(255);not null"`
	Description string              `gorm:"type:text"`
	RateType    matter.RateType     `gorm:"type:varchar(20);not null"`
	Rate        decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0"`
	Currency    string              `gorm:"type:varchar(3);not null;default:'USD'"`
	City        string              `gorm:"type:varchar(100)"`
	State       string              `gorm:"type:varchar(100)"`
	Country     string              `gorm:"type:varchar(100)"`
	Status      matter.MatterStatus `gorm:"type:varchar(20);not null;index"`
	SharedWith  shared.UUIDList     `gorm:"type:jsonb;not null;default:'[]'"`
	OpenedAt    *time.Time
	ClosedAt    *time.Time
	CloseReason string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (MatterModel) TableName() string { return "matters" }

// ToDomain converts the persistence model to a domain Matter
func (m *MatterModel) ToDomain() *matter.Matter {
	return &matter.Matter{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Number:            m.Number,
		MediatorID:        m.MediatorID,
		ClientID:          m.ClientID,
		Title:             m.Title,
		Description:       m.Description,
		RateType:          m.RateType,
		Rate:              m.Rate,
		Currency:          m.Currency,
		City:              m.City,
		State:             m.State,
		Country:           m.Country,
		Status:            m.Status,
		SharedWith:        m.SharedWith,
		OpenedAt:          m.OpenedAt,
		ClosedAt:          m.ClosedAt,
		CloseReason:       m.CloseReason,
	}
}

// FromDomain populates the persistence model from a domain Matter
func (m *MatterModel) FromDomain(mt *matter.Matter) {
	m.FromDomainAggregateRoot(mt.BaseAggregateRoot)
	m.Number = mt.Number
	m.MediatorID = mt.MediatorID
	m.ClientID = mt.ClientID
	m.Title = mt.Title
	m.Description = mt.Description
	m.RateType = mt.RateType
	m.Rate = mt.Rate
	m.Currency = mt.Currency
	m.City = mt.City
	m.State = mt.State
	m.Country = mt.Country
	m.Status = mt.Status
	m.SharedWith = mt.SharedWith
	m.OpenedAt = mt.OpenedAt
	m.ClosedAt = mt.ClosedAt
	m.CloseReason = mt.CloseReason
}

// ReferralModel is the persistence model for matter referrals.
type ReferralModel struct {
	BaseModel
	MatterID       uuid.UUID             `gorm:"type:uuid;not null;index"`
	FromMediatorID uuid.UUID             `gorm:"type:uuid;not null;index"`
	ToMediatorID   uuid.UUID             `gorm:"type:uuid;not null;index"`
	Message        string                `gorm:"type:text"`
	Status         matter.ReferralStatus `gorm:"type:varchar(20);not null;index"`
	ResolvedAt     *time.Time
}

// TableName returns the table name for GORM
func (ReferralModel) TableName() string { return "referrals" }

// ToDomain converts the persistence model to a domain Referral
func (m *ReferralModel) ToDomain() *matter.Referral {
	return &matter.Referral{
		BaseEntity:     m.BaseModel.ToDomain(),
		MatterID:       m.MatterID,
		FromMediatorID: m.FromMediatorID,
		ToMediatorID:   m.ToMediatorID,
		Message:        m.Message,
		Status:         m.Status,
		ResolvedAt:     m.ResolvedAt,
	}
}

// FromDomain populates the persistence model from a domain Referral
func (m *ReferralModel) FromDomain(r *matter.Referral) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.MatterID = r.MatterID
	m.FromMediatorID = r.FromMediatorID
	m.ToMediatorID = r.ToMediatorID
	m.Message = r.Message
	m.Status = r.Status
	m.ResolvedAt = r.ResolvedAt
}
