package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/lawmatch/backend/internal/domain/shared"
)

// UserFilter defines filtering options for user queries
type UserFilter struct {
	shared.Filter
	Kind               *UserKind
	Status             *UserStatus
	VerificationStatus *VerificationStatus
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email (lowercased)
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmail reports whether a user with the email exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// FindAll finds users with filtering
	FindAll(ctx context.Context, filter UserFilter) ([]User, error)

	// Count counts users matching the filter
	Count(ctx context.Context, filter UserFilter) (int64, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, user *User) error

	// Delete removes a user
	Delete(ctx context.Context, id uuid.UUID) error
}

// MediatorProfileRepository defines the interface for mediator profile persistence
type MediatorProfileRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*MediatorProfile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*MediatorProfile, error)
	// Search finds approved mediator profiles by practice area and jurisdiction
	Search(ctx context.Context, practiceArea, jurisdiction string, filter shared.Filter) ([]MediatorProfile, int64, error)
	Save(ctx context.Context, profile *MediatorProfile) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ClientProfileRepository defines the interface for client profile persistence
type ClientProfileRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ClientProfile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*ClientProfile, error)
	Save(ctx context.Context, profile *ClientProfile) error
	Delete(ctx context.Context, id uuid.UUID) error
}
