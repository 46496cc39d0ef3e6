package identity

import (
	"fmt"
	"strings"
	"time"

	"github.com/lawmatch/backend/internal/domain/shared"
)

// UserKind represents the kind of account a user holds
type UserKind string

const (
	UserKindMediator   UserKind = "MEDIATOR"
	UserKindClient     UserKind = "CLIENT"
	UserKindEnterprise UserKind = "ENTERPRISE"
	UserKindSupport    UserKind = "SUPPORT"
)

// IsValid checks if the kind is a valid UserKind
func (k UserKind) IsValid() bool {
	switch k {
	case UserKindMediator, UserKindClient, UserKindEnterprise, UserKindSupport:
		return true
	}
	return false
}

// String returns the string representation of UserKind
func (k UserKind) String() string {
	return string(k)
}

// RequiresVerification returns true for professional kinds that must be
// verified by support before going active
func (k UserKind) RequiresVerification() bool {
	return k == UserKindMediator || k == UserKindEnterprise
}

// UserStatus represents the lifecycle status of a user account
type UserStatus string

const (
	UserStatusPending   UserStatus = "PENDING"
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

// IsValid checks if the status is a valid UserStatus
func (s UserStatus) IsValid() bool {
	switch s {
	case UserStatusPending, UserStatusActive, UserStatusSuspended:
		return true
	}
	return false
}

// String returns the string representation of UserStatus
func (s UserStatus) String() string {
	return string(s)
}

// VerificationStatus represents the professional verification state
type VerificationStatus string

const (
	VerificationNotVerified VerificationStatus = "NOT_VERIFIED"
	VerificationApproved    VerificationStatus = "APPROVED"
	VerificationDenied      VerificationStatus = "DENIED"
)

// IsValid checks if the status is a valid VerificationStatus
func (s VerificationStatus) IsValid() bool {
	switch s {
	case VerificationNotVerified, VerificationApproved, VerificationDenied:
		return true
	}
	return false
}

// String returns the string representation of VerificationStatus
func (s VerificationStatus) String() string {
	return string(s)
}

// CanDecide returns true if a verification decision can still be made
func (s VerificationStatus) CanDecide() bool {
	return s == VerificationNotVerified || s == VerificationDenied
}

// User represents a user account aggregate root.
// Clients are active immediately after registration; mediators and
// enterprise accounts stay pending until support approves them.
type User struct {
	shared.BaseAggregateRoot
	Email              string             `json:"email"`
	PasswordHash       string             `json:"-"`
	FirstName          string             `json:"first_name"`
	LastName           string             `json:"last_name"`
	Phone              string             `json:"phone"`
	AvatarKey          string             `json:"avatar_key"`
	Kind               UserKind           `json:"kind"`
	Status             UserStatus         `json:"status"`
	VerificationStatus VerificationStatus `json:"verification_status"`
	VerifiedAt         *time.Time         `json:"verified_at"`
	SuspendedAt        *time.Time         `json:"suspended_at"`
	SuspendReason      string             `json:"suspend_reason"`
	LastLoginAt        *time.Time         `json:"last_login_at"`
}

// NewUser creates a new user account
func NewUser(email, passwordHash, firstName, lastName string, kind UserKind) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid email address is required")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}
	if firstName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "First name cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "User kind is not valid")
	}

	u := &User{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		Email:              email,
		PasswordHash:       passwordHash,
		FirstName:          firstName,
		LastName:           lastName,
		Kind:               kind,
		Status:             UserStatusActive,
		VerificationStatus: VerificationApproved,
	}
	if kind.RequiresVerification() {
		u.Status = UserStatusPending
		u.VerificationStatus = VerificationNotVerified
	}

	u.AddDomainEvent(NewUserRegisteredEvent(u))

	return u, nil
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// CanAuthenticate returns true if the account may log in.
// Pending professionals can sign in to finish onboarding; suspended
// accounts cannot.
func (u *User) CanAuthenticate() bool {
	return u.Status == UserStatusActive || u.Status == UserStatusPending
}

// IsActive returns true if the account is active
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// CanTakeWork returns true if the account may take on matters or submit
// proposals. Professional kinds must be approved by support first; a
// suspended account can never take work.
func (u *User) CanTakeWork() bool {
	if u.Status == UserStatusSuspended {
		return false
	}
	if u.Kind.RequiresVerification() {
		return u.VerificationStatus == VerificationApproved
	}
	return true
}

// RecordLogin stamps the last successful login
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

// ChangePassword replaces the stored password hash
func (u *User) ChangePassword(newHash string) error {
	if newHash == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}
	u.PasswordHash = newHash
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// UpdateProfile updates the user's basic profile fields
func (u *User) UpdateProfile(firstName, lastName, phone string) error {
	if firstName == "" {
		return shared.NewDomainError("INVALID_NAME", "First name cannot be empty")
	}
	u.FirstName = firstName
	u.LastName = lastName
	u.Phone = phone
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// SetAvatar sets the storage key of the user's avatar image
func (u *User) SetAvatar(key string) {
	u.AvatarKey = key
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// ApproveVerification approves a pending professional verification.
// The account goes active if it was waiting on the decision.
func (u *User) ApproveVerification() error {
	if !u.Kind.RequiresVerification() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("%s accounts do not require verification", u.Kind))
	}
	if !u.VerificationStatus.CanDecide() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot approve verification in %s status", u.VerificationStatus))
	}

	now := time.Now()
	u.VerificationStatus = VerificationApproved
	u.VerifiedAt = &now
	if u.Status == UserStatusPending {
		u.Status = UserStatusActive
	}
	u.UpdatedAt = now
	u.IncrementVersion()

	u.AddDomainEvent(NewUserVerificationDecidedEvent(u, true))

	return nil
}

// DenyVerification denies a pending professional verification
func (u *User) DenyVerification() error {
	if !u.Kind.RequiresVerification() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("%s accounts do not require verification", u.Kind))
	}
	if u.VerificationStatus != VerificationNotVerified {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot deny verification in %s status", u.VerificationStatus))
	}

	u.VerificationStatus = VerificationDenied
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserVerificationDecidedEvent(u, false))

	return nil
}

// Suspend suspends the account. Suspended users cannot authenticate.
func (u *User) Suspend(reason string) error {
	if u.Status == UserStatusSuspended {
		return shared.NewDomainError("INVALID_STATE", "User is already suspended")
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Suspension reason is required")
	}

	now := time.Now()
	u.Status = UserStatusSuspended
	u.SuspendedAt = &now
	u.SuspendReason = reason
	u.UpdatedAt = now
	u.IncrementVersion()

	u.AddDomainEvent(NewUserSuspendedEvent(u))

	return nil
}

// Reactivate lifts a suspension. Professionals whose verification is
// still undecided go back to pending rather than active.
func (u *User) Reactivate() error {
	if u.Status != UserStatusSuspended {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reactivate user in %s status", u.Status))
	}

	u.Status = UserStatusActive
	if u.Kind.RequiresVerification() && u.VerificationStatus != VerificationApproved {
		u.Status = UserStatusPending
	}
	u.SuspendedAt = nil
	u.SuspendReason = ""
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

var _ shared.AggregateRoot = (*User)(nil)
