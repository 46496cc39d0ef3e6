package identity

import (
	"github.com/google/uuid"

	"github.com/lawmatch/backend/internal/domain/shared"
)

// UserRegisteredEvent is raised when a new user account is created
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID  `json:"user_id"`
	Email  string     `json:"email"`
	Kind   UserKind   `json:"kind"`
	Status UserStatus `json:"status"`
}

// EventType returns the event type name
func (e *UserRegisteredEvent) EventType() string {
	return "UserRegistered"
}

// NewUserRegisteredEvent creates a new UserRegisteredEvent
func NewUserRegisteredEvent(u *User) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("UserRegistered", "User", u.ID),
		UserID:          u.ID,
		Email:           u.Email,
		Kind:            u.Kind,
		Status:          u.Status,
	}
}

// UserVerificationDecidedEvent is raised when support approves or denies
// a professional verification
type UserVerificationDecidedEvent struct {
	shared.BaseDomainEvent
	UserID   uuid.UUID          `json:"user_id"`
	Email    string             `json:"email"`
	Kind     UserKind           `json:"kind"`
	Approved bool               `json:"approved"`
	Decision VerificationStatus `json:"decision"`
}

// EventType returns the event type name
func (e *UserVerificationDecidedEvent) EventType() string {
	return "UserVerificationDecided"
}

// NewUserVerificationDecidedEvent creates a new UserVerificationDecidedEvent
func NewUserVerificationDecidedEvent(u *User, approved bool) *UserVerificationDecidedEvent {
	return &UserVerificationDecidedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("UserVerificationDecided", "User", u.ID),
		UserID:          u.ID,
		Email:           u.Email,
		Kind:            u.Kind,
		Approved:        approved,
		Decision:        u.VerificationStatus,
	}
}

// UserSuspendedEvent is raised when an account is suspended
type UserSuspendedEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Reason string    `json:"reason"`
}

// EventType returns the event type name
func (e *UserSuspendedEvent) EventType() string {
	return "UserSuspended"
}

// NewUserSuspendedEvent creates a new UserSuspendedEvent
func NewUserSuspendedEvent(u *User) *UserSuspendedEvent {
	return &UserSuspendedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("UserSuspended", "User", u.ID),
		UserID:          u.ID,
		Email:           u.Email,
		Reason:          u.SuspendReason,
	}
}
