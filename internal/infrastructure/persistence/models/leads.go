package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/lawmatch/backend/internal/domain/leads"
)

// LeadModel is the persistence model for leads.
type LeadModel struct {
	AggregateModel
	MediatorID        uuid.UUID          `gorm:"type:uuid;not null;index"`
	ClientID          uuid.UUID          `gorm:"type:uuid;not null;index"`
	Source            leads.LeadSource   `gorm:"type:varchar(20);not null"`
	Priority          leads.LeadPriority `gorm:"type:varchar(20);not null;index"`
	Note              string             `gorm:"type:text"`
	Status            leads.LeadStatus   `gorm:"type:varchar(20);not null;index"`
	ConvertedMatterID *uuid.UUID         `gorm:"type:uuid"`
	ConvertedAt       *time.Time
	ClosedAt          *time.Time
}

// TableName returns the table name for GORM
func (LeadModel) TableName() string { return "leads" }

// ToDomain converts the persistence model to a domain Lead
func (m *LeadModel) ToDomain() *leads.Lead {
	return &leads.Lead{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		MediatorID:        m.MediatorID,
		ClientID:          m.ClientID,
		Source:            m.Source,
		Priority:          m.Priority,
		Note:              m.Note,
		Status:            m.Status,
		ConvertedMatterID: m.ConvertedMatterID,
		ConvertedAt:       m.ConvertedAt,
		ClosedAt:          m.ClosedAt,
	}
}

// FromDomain populates the persistence model from a domain Lead
func (m *LeadModel) FromDomain(l *leads.Lead) {
	m.FromDomainAggregateRoot(l.BaseAggregateRoot)
	m.MediatorID = l.MediatorID
	m.ClientID = l.ClientID
	m.Source = l.Source
	m.Priority = l.Priority
	m.Note = l.Note
	m.Status = l.Status
	m.ConvertedMatterID = l.ConvertedMatterID
	m.ConvertedAt = l.ConvertedAt
	m.ClosedAt = l.ClosedAt
}

// OpportunityModel is the persistence model for opportunities.
type OpportunityModel struct {
	BaseModel
	MediatorID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	ClientID     *uuid.UUID `gorm:"type:uuid;index"`
	ContactName  string     `gorm:"type:varchar(255);not null"`
	ContactEmail string     `gorm:"type:varchar(255)"`
	ContactPhone string     `gorm:"type:varchar(50)"`
	Note         string     `gorm:"type:text"`
	PromotedLead *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (OpportunityModel) TableName() string { return "opportunities" }

// ToDomain converts the persistence model to a domain Opportunity
func (m *OpportunityModel) ToDomain() *leads.Opportunity {
	return &leads.Opportunity{
		BaseEntity:   m.BaseModel.ToDomain(),
		MediatorID:   m.MediatorID,
		ClientID:     m.ClientID,
		ContactName:  m.ContactName,
		ContactEmail: m.ContactEmail,
		ContactPhone: m.ContactPhone,
		Note:         m.Note,
		PromotedLead: m.PromotedLead,
	}
}

// FromDomain populates the persistence model from a domain Opportunity
func (m *OpportunityModel) FromDomain(o *leads.Opportunity) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.MediatorID = o.MediatorID
	m.ClientID = o.ClientID
	m.ContactName = o.ContactName
	m.ContactEmail = o.ContactEmail
	m.ContactPhone = o.ContactPhone
	m.Note = o.Note
	m.PromotedLead = o.PromotedLead
}
