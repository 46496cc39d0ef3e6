package leads

import (
	"context"

	"github.com/google/uuid"

	"github.com/lawmatch/backend/internal/domain/shared"
)

// LeadFilter defines filtering options for lead queries
type LeadFilter struct {
	shared.Filter
	MediatorID *uuid.UUID
	ClientID   *uuid.UUID
	Status     *LeadStatus
	Priority   *LeadPriority
	Source     *LeadSource
}

// LeadRepository defines the interface for lead persistence
type LeadRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Lead, error)

	// FindAll finds leads with filtering
	FindAll(ctx context.Context, filter LeadFilter) ([]Lead, error)

	// FindActiveByParties returns the active lead between a mediator and
	// client, if any
	FindActiveByParties(ctx context.Context, mediatorID, clientID uuid.UUID) (*Lead, error)

	// Count counts leads matching the filter
	Count(ctx context.Context, filter LeadFilter) (int64, error)

	Save(ctx context.Context, lead *Lead) error
	SaveWithLock(ctx context.Context, lead *Lead) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// OpportunityRepository defines the interface for opportunity persistence
type OpportunityRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Opportunity, error)
	FindByMediator(ctx context.Context, mediatorID uuid.UUID, filter shared.Filter) ([]Opportunity, int64, error)
	Save(ctx context.Context, o *Opportunity) error
	Delete(ctx context.Context, id uuid.UUID) error
}
