package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/lawmatch/backend/internal/domain/identity"
)

// RegisterInput contains the input for account registration
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Kind      identity.UserKind
	// Client intake, used when Kind is CLIENT
	ClientKind       identity.ClientKind
	OrganizationName string
	HelpDescription  string
}

// RegisterResult contains the result of a successful registration
type RegisterResult struct {
	User   UserInfo
	Tokens TokenInfo
}

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	User   UserInfo
	Tokens TokenInfo
}

// TokenInfo carries an issued token pair
type TokenInfo struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// UserInfo contains basic user information returned to callers
type UserInfo struct {
	ID                 uuid.UUID
	Email              string
	FirstName          string
	LastName           string
	Phone              string
	AvatarKey          string
	Kind               identity.UserKind
	Status             identity.UserStatus
	VerificationStatus identity.VerificationStatus
}

// NewUserInfo maps a user aggregate to UserInfo
func NewUserInfo(u *identity.User) UserInfo {
	return UserInfo{
		ID:                 u.ID,
		Email:              u.Email,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		Phone:              u.Phone,
		AvatarKey:          u.AvatarKey,
		Kind:               u.Kind,
		Status:             u.Status,
		VerificationStatus: u.VerificationStatus,
	}
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// LogoutInput contains the input for user logout
type LogoutInput struct {
	UserID   uuid.UUID
	TokenJTI string
	TokenTTL time.Duration
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// UpdateProfileInput contains the input for basic profile updates
type UpdateProfileInput struct {
	UserID    uuid.UUID
	FirstName string
	LastName  string
	Phone     string
}

// UpdateMediatorProfileInput contains the professional profile fields
type UpdateMediatorProfileInput struct {
	UserID            uuid.UUID
	FirmName          string
	Biography         string
	YearsOfExperience int
	PracticeAreas     []string
	Jurisdictions     []string
	HourlyRate        string
	Currency          string
}

// UpdateClientProfileInput contains the client intake fields
type UpdateClientProfileInput struct {
	UserID           uuid.UUID
	Kind             identity.ClientKind
	OrganizationName string
	HelpDescription  string
}

// VerificationDecisionInput contains a support decision on a professional account
type VerificationDecisionInput struct {
	ActorID  uuid.UUID
	TargetID uuid.UUID
	Approve  bool
}

// SuspendUserInput contains the input for suspending an account
type SuspendUserInput struct {
	ActorID  uuid.UUID
	TargetID uuid.UUID
	Reason   string
}

// SearchMediatorsInput contains the mediator directory search parameters
type SearchMediatorsInput struct {
	PracticeArea string
	Jurisdiction string
	Page         int
	PageSize     int
}

// MediatorListing is one entry in the mediator directory
type MediatorListing struct {
	User    UserInfo
	Profile identity.MediatorProfile
}
