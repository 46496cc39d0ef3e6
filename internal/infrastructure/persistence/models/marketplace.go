package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lawmatch/backend/internal/domain/marketplace"
	"github.com/lawmatch/backend/internal/domain/matter"
)

// PostedMatterModel is the persistence model for marketplace postings.
type PostedMatterModel struct {
	AggregateModel
	ClientID      uuid.UUID                      `gorm:"type:uuid;not null;index"`
	Title         string                         `gorm:"type:varchar(255);not null"`
	Description   string                         `gorm:"type:text"`
	PracticeArea  string                         `gorm:"type:varchar(100);index"`
	RateType      matter.RateType                `gorm:"type:varchar(20);not null"`
	Budget        decimal.Decimal                `gorm:"type:decimal(12,2);not null;default:0"`
	Currency      string                         `gorm:"type:varchar(3);not null;default:'USD'"`
	Status        marketplace.PostedMatterStatus `gorm:"type:varchar(20);not null;index"`
	ProposalCount int                            `gorm:"not null;default:0"`
	PostedAt      time.Time                      `gorm:"not null;index"`
	DeactivatedAt *time.Time
}

// TableName returns the table name for GORM
func (PostedMatterModel) TableName() string { return "posted_matters" }

// ToDomain converts the persistence model to a domain PostedMatter
func (m *PostedMatterModel) ToDomain() *marketplace.PostedMatter {
	return &marketplace.PostedMatter{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ClientID:          m.ClientID,
		Title:             m.Title,
		Description:       m.Description,
		PracticeArea:      m.PracticeArea,
		RateType:          m.RateType,
		Budget:            m.Budget,
		Currency:          m.Currency,
		Status:            m.Status,
		ProposalCount:     m.ProposalCount,
		PostedAt:          m.PostedAt,
		DeactivatedAt:     m.DeactivatedAt,
	}
}

// FromDomain populates the persistence model from a domain PostedMatter
func (m *PostedMatterModel) FromDomain(p *marketplace.PostedMatter) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.ClientID = p.ClientID
	m.Title = p.Title
	m.Description = p.Description
	m.PracticeArea = p.PracticeArea
	m.RateType = p.RateType
	m.Budget = p.Budget
	m.Currency = p.Currency
	m.Status = p.Status
	m.ProposalCount = p.ProposalCount
	m.PostedAt = p.PostedAt
	m.DeactivatedAt = p.DeactivatedAt
}

// ProposalModel is the persistence model for proposals.
type ProposalModel struct {
	AggregateModel
	PostedMatterID uuid.UUID                  `gorm:"type:uuid;not null;index"`
	MediatorID     uuid.UUID                  `gorm:"type:uuid;not null;index"`
	RateType       matter.RateType            `gorm:"type:varchar(20);not null"`
	Rate           decimal.Decimal            `gorm:"type:decimal(12,2);not null;default:0"`
	Currency       string                     `gorm:"type:varchar(3);not null;default:'USD'"`
	Description    string                     `gorm:"type:text"`
	Status         marketplace.ProposalStatus `gorm:"type:varchar(20);not null;index"`
	AcceptedAt     *time.Time
	WithdrawnAt    *time.Time
	RevokedAt      *time.Time
}

// TableName returns the table name for GORM
func (ProposalModel) TableName() string { return "proposals" }

// ToDomain converts the persistence model to a domain Proposal
func (m *ProposalModel) ToDomain() *marketplace.Proposal {
	return &marketplace.Proposal{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		PostedMatterID:    m.PostedMatterID,
		MediatorID:        m.MediatorID,
		RateType:          m.RateType,
		Rate:              m.Rate,
		Currency:          m.Currency,
		Description:       m.Description,
		Status:            m.Status,
		AcceptedAt:        m.AcceptedAt,
		WithdrawnAt:       m.WithdrawnAt,
		RevokedAt:         m.RevokedAt,
	}
}

// FromDomain populates the persistence model from a domain Proposal
func (m *ProposalModel) FromDomain(p *marketplace.Proposal) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.PostedMatterID = p.PostedMatterID
	m.MediatorID = p.MediatorID
	m.RateType = p.RateType
	m.Rate = p.Rate
	m.Currency = p.Currency
	m.Description = p.Description
	m.Status = p.Status
	m.AcceptedAt = p.AcceptedAt
	m.WithdrawnAt = p.WithdrawnAt
	m.RevokedAt = p.RevokedAt
}
