package marketplace

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lawmatch/backend/internal/domain/shared"
)

// PostedMatterDeactivatedEvent is raised when a posting leaves the marketplace
type PostedMatterDeactivatedEvent struct {
	shared.BaseDomainEvent
	PostedMatterID uuid.UUID `json:"posted_matter_id"`
	ClientID       uuid.UUID `json:"client_id"`
	Title          string    `json:"title"`
}

// EventType returns the event type name
func (e *PostedMatterDeactivatedEvent) EventType() string {
	return "PostedMatterDeactivated"
}

// NewPostedMatterDeactivatedEvent creates a new PostedMatterDeactivatedEvent
func NewPostedMatterDeactivatedEvent(p *PostedMatter) *PostedMatterDeactivatedEvent {
	return &PostedMatterDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("PostedMatterDeactivated", "PostedMatter", p.ID),
		PostedMatterID:  p.ID,
		ClientID:        p.ClientID,
		Title:           p.Title,
	}
}

// PostedMatterReactivatedEvent is raised when a posting returns to the marketplace
type PostedMatterReactivatedEvent struct {
	shared.BaseDomainEvent
	PostedMatterID uuid.UUID `json:"posted_matter_id"`
	ClientID       uuid.UUID `json:"client_id"`
	Title          string    `json:"title"`
}

// EventType returns the event type name
func (e *PostedMatterReactivatedEvent) EventType() string {
	return "PostedMatterReactivated"
}

// NewPostedMatterReactivatedEvent creates a new PostedMatterReactivatedEvent
func NewPostedMatterReactivatedEvent(p *PostedMatter) *PostedMatterReactivatedEvent {
	return &PostedMatterReactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("PostedMatterReactivated", "PostedMatter", p.ID),
		PostedMatterID:  p.ID,
		ClientID:        p.ClientID,
		Title:           p.Title,
	}
}

// ProposalSubmittedEvent is raised when a mediator submits a proposal
type ProposalSubmittedEvent struct {
	shared.BaseDomainEvent
	ProposalID     uuid.UUID       `json:"proposal_id"`
	PostedMatterID uuid.UUID       `json:"posted_matter_id"`
	MediatorID     uuid.UUID       `json:"mediator_id"`
	Rate           decimal.Decimal `json:"rate"`
	Currency       string          `json:"currency"`
}

// EventType returns the event type name
func (e *ProposalSubmittedEvent) EventType() string {
	return "ProposalSubmitted"
}

// NewProposalSubmittedEvent creates a new ProposalSubmittedEvent
func NewProposalSubmittedEvent(p *Proposal) *ProposalSubmittedEvent {
	return &ProposalSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ProposalSubmitted", "Proposal", p.ID),
		ProposalID:      p.ID,
		PostedMatterID:  p.PostedMatterID,
		MediatorID:      p.MediatorID,
		Rate:            p.Rate,
		Currency:        p.Currency,
	}
}

// ProposalAcceptedEvent is raised when the client accepts a proposal
type ProposalAcceptedEvent struct {
	shared.BaseDomainEvent
	ProposalID     uuid.UUID `json:"proposal_id"`
	PostedMatterID uuid.UUID `json:"posted_matter_id"`
	MediatorID     uuid.UUID `json:"mediator_id"`
}

// EventType returns the event type name
func (e *ProposalAcceptedEvent) EventType() string {
	return "ProposalAccepted"
}

// NewProposalAcceptedEvent creates a new ProposalAcceptedEvent
func NewProposalAcceptedEvent(p *Proposal) *ProposalAcceptedEvent {
	return &ProposalAcceptedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ProposalAccepted", "Proposal", p.ID),
		ProposalID:      p.ID,
		PostedMatterID:  p.PostedMatterID,
		MediatorID:      p.MediatorID,
	}
}

// ProposalWithdrawnEvent is raised when a mediator withdraws a pending proposal
type ProposalWithdrawnEvent struct {
	shared.BaseDomainEvent
	ProposalID     uuid.UUID `json:"proposal_id"`
	PostedMatterID uuid.UUID `json:"posted_matter_id"`
	MediatorID     uuid.UUID `json:"mediator_id"`
}

// EventType returns the event type name
func (e *ProposalWithdrawnEvent) EventType() string {
	return "ProposalWithdrawn"
}

// NewProposalWithdrawnEvent creates a new ProposalWithdrawnEvent
func NewProposalWithdrawnEvent(p *Proposal) *ProposalWithdrawnEvent {
	return &ProposalWithdrawnEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ProposalWithdrawn", "Proposal", p.ID),
		ProposalID:      p.ID,
		PostedMatterID:  p.PostedMatterID,
		MediatorID:      p.MediatorID,
	}
}

// ProposalRevokedEvent is raised when the client revokes an accepted proposal
type ProposalRevokedEvent struct {
	shared.BaseDomainEvent
	ProposalID     uuid.UUID `json:"proposal_id"`
	PostedMatterID uuid.UUID `json:"posted_matter_id"`
	MediatorID     uuid.UUID `json:"mediator_id"`
}

// EventType returns the event type name
func (e *ProposalRevokedEvent) EventType() string {
	return "ProposalRevoked"
}

// NewProposalRevokedEvent creates a new ProposalRevokedEvent
func NewProposalRevokedEvent(p *Proposal) *ProposalRevokedEvent {
	return &ProposalRevokedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ProposalRevoked", "Proposal", p.ID),
		ProposalID:      p.ID,
		PostedMatterID:  p.PostedMatterID,
		MediatorID:      p.MediatorID,
	}
}
