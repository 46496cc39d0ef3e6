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

// ProposalStatus represents the state of a mediator's proposal
type ProposalStatus string

const (
	ProposalStatusPending   ProposalStatus = "PENDING"
	ProposalStatusAccepted  ProposalStatus = "ACCEPTED"
	ProposalStatusWithdrawn ProposalStatus = "WITHDRAWN" // Mediator pulled a pending proposal
	ProposalStatusRevoked   ProposalStatus = "REVOKED"   // Client cancelled an accepted proposal
)

// IsValid checks if the status is a valid ProposalStatus
func (s ProposalStatus) IsValid() bool {
	switch s {
	case ProposalStatusPending, ProposalStatusAccepted, ProposalStatusWithdrawn, ProposalStatusRevoked:
		return true
	}
	return false
}

// String returns the string representation of ProposalStatus
func (s ProposalStatus) String() string {
	return string(s)
}

// IsLive returns true while the proposal counts against the
// one-live-proposal-per-mediator rule
func (s ProposalStatus) IsLive() bool {
	return s == ProposalStatusPending || s == ProposalStatusAccepted
}

// Proposal represents a mediator's offer on a posted matter
type Proposal struct {
	shared.BaseAggregateRoot
	PostedMatterID uuid.UUID       `json:"posted_matter_id"`
	MediatorID     uuid.UUID       `json:"mediator_id"`
	RateType       matter.RateType `json:"rate_type"`
	Rate           decimal.Decimal `json:"rate"`
	Currency       string          `json:"currency"`
	Description    string          `json:"description"`
	Status         ProposalStatus  `json:"status"`
	AcceptedAt     *time.Time      `json:"accepted_at"`
	WithdrawnAt    *time.Time      `json:"withdrawn_at"`
	RevokedAt      *time.Time      `json:"revoked_at"`
}

// NewProposal creates a new pending proposal
func NewProposal(postedMatterID, mediatorID uuid.UUID, rateType matter.RateType, rate valueobject.Money, description string) (*Proposal, error) {
	if postedMatterID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_POSTING", "Posted matter ID cannot be empty")
	}
	if mediatorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MEDIATOR", "Mediator ID cannot be empty")
	}
	if !rateType.IsValid() {
		return nil, shared.NewDomainError("INVALID_RATE_TYPE", "Rate type is not valid")
	}
	if rate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Rate cannot be negative")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}

	p := &Proposal{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PostedMatterID:    postedMatterID,
		MediatorID:        mediatorID,
		RateType:          rateType,
		Rate:              rate.Amount(),
		Currency:          string(rate.Currency()),
		Description:       description,
		Status:            ProposalStatusPending,
	}

	p.AddDomainEvent(NewProposalSubmittedEvent(p))

	return p, nil
}

// RateMoney returns the proposed rate as a Money value object
func (p *Proposal) RateMoney() valueobject.Money {
	m, err := valueobject.NewMoney(p.Rate, valueobject.Currency(p.Currency))
	if err != nil {
		return valueobject.NewMoneyUSD(p.Rate)
	}
	return m
}

// Accept marks a pending proposal as accepted by the client
func (p *Proposal) Accept() error {
	if p.Status != ProposalStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot accept proposal in %s status", p.Status))
	}

	now := time.Now()
	p.Status = ProposalStatusAccepted
	p.AcceptedAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()

	p.AddDomainEvent(NewProposalAcceptedEvent(p))

	return nil
}

// Withdraw lets the mediator pull a pending proposal
func (p *Proposal) Withdraw() error {
	if p.Status != ProposalStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot withdraw proposal in %s status", p.Status))
	}

	now := time.Now()
	p.Status = ProposalStatusWithdrawn
	p.WithdrawnAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()

	p.AddDomainEvent(NewProposalWithdrawnEvent(p))

	return nil
}

// Revoke lets the client cancel an accepted proposal, putting the
// posting back on the market
func (p *Proposal) Revoke() error {
	if p.Status != ProposalStatusAccepted {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot revoke proposal in %s status", p.Status))
	}

	now := time.Now()
	p.Status = ProposalStatusRevoked
	p.RevokedAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()

	p.AddDomainEvent(NewProposalRevokedEvent(p))

	return nil
}

var _ shared.AggregateRoot = (*Proposal)(nil)
