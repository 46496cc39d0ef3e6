package marketplace

import (
	"context"

	"github.com/google/uuid"

	"github.com/lawmatch/backend/internal/domain/shared"
)

// PostedMatterFilter defines filtering options for posting queries
type PostedMatterFilter struct {
	shared.Filter
	ClientID     *uuid.UUID
	Status       *PostedMatterStatus
	PracticeArea *string
}

// PostedMatterRepository defines the interface for posting persistence
type PostedMatterRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PostedMatter, error)

	// FindAll finds postings with filtering
	FindAll(ctx context.Context, filter PostedMatterFilter) ([]PostedMatter, error)

	// Count counts postings matching the filter
	Count(ctx context.Context, filter PostedMatterFilter) (int64, error)

	Save(ctx context.Context, p *PostedMatter) error
	SaveWithLock(ctx context.Context, p *PostedMatter) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProposalFilter defines filtering options for proposal queries
type ProposalFilter struct {
	shared.Filter
	PostedMatterID *uuid.UUID
	MediatorID     *uuid.UUID
	Status         *ProposalStatus
}

// ProposalRepository defines the interface for proposal persistence
type ProposalRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Proposal, error)

	// FindAll finds proposals with filtering
	FindAll(ctx context.Context, filter ProposalFilter) ([]Proposal, error)

	// FindLiveByMediatorAndPosting returns the mediator's pending or
	// accepted proposal on a posting, if any
	FindLiveByMediatorAndPosting(ctx context.Context, mediatorID, postedMatterID uuid.UUID) (*Proposal, error)

	// FindAcceptedByPosting returns the accepted proposal on a posting, if any
	FindAcceptedByPosting(ctx context.Context, postedMatterID uuid.UUID) (*Proposal, error)

	// Count counts proposals matching the filter
	Count(ctx context.Context, filter ProposalFilter) (int64, error)

	Save(ctx context.Context, p *Proposal) error
	SaveWithLock(ctx context.Context, p *Proposal) error
}
