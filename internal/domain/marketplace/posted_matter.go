package marketplace

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lawmatch/backend/internal/domain/matter"
	"github.com/lawmatch/backend/internal/domain/shared"
	"github.com/lawmatch/backend/internal/domain/shared/valueobject"
)

// PostedMatterStatus represents the visibility of a marketplace posting
type PostedMatterStatus string

const (
	PostedMatterStatusActive   PostedMatterStatus = "ACTIVE"
	PostedMatterStatusInactive PostedMatterStatus = "INACTIVE"
)

// IsValid checks if the status is a valid PostedMatterStatus
func (s PostedMatterStatus) IsValid() bool {
	return s == PostedMatterStatusActive || s == PostedMatterStatusInactive
}

// String returns the string representation of PostedMatterStatus
func (s PostedMatterStatus) String() string {
	return string(s)
}

// PostedMatter represents a client's public request for mediation.
// Mediators submit proposals against active postings; accepting a
// proposal deactivates the posting.
type PostedMatter struct {
	shared.BaseAggregateRoot
	ClientID      uuid.UUID          `json:"client_id"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	PracticeArea  string             `json:"practice_area"`
	RateType      matter.RateType    `json:"rate_type"`
	Budget        decimal.Decimal    `json:"budget"`
	Currency      string             `json:"currency"`
	Status        PostedMatterStatus `json:"status"`
	ProposalCount int                `json:"proposal_count"`
	PostedAt      time.Time          `json:"posted_at"`
	DeactivatedAt *time.Time         `json:"deactivated_at"`
}

// NewPostedMatter creates a new active posting
func NewPostedMatter(clientID uuid.UUID, title, description, practiceArea string, rateType matter.RateType, budget valueobject.Money) (*PostedMatter, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 200 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 200 characters")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if !rateType.IsValid() {
		return nil, shared.NewDomainError("INVALID_RATE_TYPE", "Rate type is not valid")
	}
	if budget.IsNegative() {
		return nil, shared.NewDomainError("INVALID_BUDGET", "Budget cannot be negative")
	}

	return &PostedMatter{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ClientID:          clientID,
		Title:             title,
		Description:       description,
		PracticeArea:      practiceArea,
		RateType:          rateType,
		Budget:            budget.Amount(),
		Currency:          string(budget.Currency()),
		Status:            PostedMatterStatusActive,
		PostedAt:          time.Now(),
	}, nil
}

// IsActive returns true while the posting accepts proposals
func (p *PostedMatter) IsActive() bool {
	return p.Status == PostedMatterStatusActive
}

// Deactivate hides the posting from the marketplace
func (p *PostedMatter) Deactivate() error {
	if p.Status != PostedMatterStatusActive {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot deactivate posting in %s status", p.Status))
	}

	now := time.Now()
	p.Status = PostedMatterStatusInactive
	p.DeactivatedAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()

	p.AddDomainEvent(NewPostedMatterDeactivatedEvent(p))

	return nil
}

// Reactivate republishes an inactive posting
func (p *PostedMatter) Reactivate() error {
	if p.Status != PostedMatterStatusInactive {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reactivate posting in %s status", p.Status))
	}

	p.Status = PostedMatterStatusActive
	p.DeactivatedAt = nil
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewPostedMatterReactivatedEvent(p))

	return nil
}

// UpdateDetails edits the posting while it is active
func (p *PostedMatter) UpdateDetails(title, description, practiceArea string, budget valueobject.Money) error {
	if p.Status != PostedMatterStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active postings can be edited")
	}
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if budget.IsNegative() {
		return shared.NewDomainError("INVALID_BUDGET", "Budget cannot be negative")
	}

	p.Title = title
	p.Description = description
	p.PracticeArea = practiceArea
	p.Budget = budget.Amount()
	p.Currency = string(budget.Currency())
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// RecordProposal bumps the proposal counter
func (p *PostedMatter) RecordProposal() {
	p.ProposalCount++
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// BudgetMoney returns the budget as a Money value object
func (p *PostedMatter) BudgetMoney() valueobject.Money {
	m, err := valueobject.NewMoney(p.Budget, valueobject.Currency(p.Currency))
	if err != nil {
		return valueobject.NewMoneyUSD(p.Budget)
	}
	return m
}

var _ shared.AggregateRoot = (*PostedMatter)(nil)
