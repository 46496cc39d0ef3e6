package matter

import (
	"context"

	"github.com/google/uuid"

	"github.com/lawmatch/backend/internal/domain/shared"
)

// MatterFilter defines filtering options for matter queries
type MatterFilter struct {
	shared.Filter
	MediatorID *uuid.UUID
	ClientID   *uuid.UUID
	Status     *MatterStatus
	RateType   *RateType
}

// MatterRepository defines the interface for matter persistence
type MatterRepository interface {
	// FindByID finds a matter by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Matter, error)

	// FindByNumber finds a matter by its MAT- number
	FindByNumber(ctx context.Context, number string) (*Matter, error)

	// FindAll finds matters with filtering
	FindAll(ctx context.Context, filter MatterFilter) ([]Matter, error)

	// FindForUser finds matters where the user is mediator, client, or shared
	FindForUser(ctx context.Context, userID uuid.UUID, filter MatterFilter) ([]Matter, error)

	// Count counts matters matching the filter
	Count(ctx context.Context, filter MatterFilter) (int64, error)

	// CountForUser counts matters visible to the user (mediator, client, or shared)
	CountForUser(ctx context.Context, userID uuid.UUID, filter MatterFilter) (int64, error)

	// NextNumber allocates the next sequential matter number
	NextNumber(ctx context.Context) (string, error)

	// Save creates or updates a matter
	Save(ctx context.Context, m *Matter) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, m *Matter) error

	// Delete removes a matter (drafts only, enforced by the service)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReferralRepository defines the interface for referral persistence
type ReferralRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Referral, error)

	// FindPendingByMatter returns the single pending referral for a matter, if any
	FindPendingByMatter(ctx context.Context, matterID uuid.UUID) (*Referral, error)

	// FindByMatter returns all referrals for a matter, newest first
	FindByMatter(ctx context.Context, matterID uuid.UUID) ([]Referral, error)

	// FindPendingForMediator returns pending referrals offered to a mediator
	FindPendingForMediator(ctx context.Context, mediatorID uuid.UUID, filter shared.Filter) ([]Referral, error)

	Save(ctx context.Context, r *Referral) error
}
