package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lawmatch/backend/internal/domain/identity"
	"github.com/lawmatch/backend/internal/domain/shared"
	"github.com/lawmatch/backend/internal/domain/shared/valueobject"
	"github.com/lawmatch/backend/internal/infrastructure/auth"
)

// UserService handles account administration and profile management
type UserService struct {
	userRepo       identity.UserRepository
	mediatorRepo   identity.MediatorProfileRepository
	clientRepo     identity.ClientProfileRepository
	tokenBlacklist auth.TokenBlacklist
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo identity.UserRepository,
	mediatorRepo identity.MediatorProfileRepository,
	clientRepo identity.ClientProfileRepository,
	tokenBlacklist auth.TokenBlacklist,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:       userRepo,
		mediatorRepo:   mediatorRepo,
		clientRepo:     clientRepo,
		tokenBlacklist: tokenBlacklist,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}
	info := NewUserInfo(user)
	return &info, nil
}

// ListUsers lists users with filtering. Support only.
func (s *UserService) ListUsers(ctx context.Context, actorID uuid.UUID, filter identity.UserFilter) (*shared.Paginated[UserInfo], error) {
	if err := s.requireSupport(ctx, actorID); err != nil {
		return nil, err
	}

	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list users")
	}
	total, err := s.userRepo.Count(ctx, filter)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to count users")
	}

	items := make([]UserInfo, 0, len(users))
	for i := range users {
		items = append(items, NewUserInfo(&users[i]))
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// UpdateProfile updates a user's basic profile fields
func (s *UserService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if err := user.UpdateProfile(input.FirstName, input.LastName, input.Phone); err != nil {
		return nil, err
	}

	if err := s.userRepo.SaveWithLock(ctx, user); err != nil {
		s.logger.Error("Failed to update profile", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update profile")
	}

	info := NewUserInfo(user)
	return &info, nil
}

// SetAvatar records the storage key of an uploaded avatar image
func (s *UserService) SetAvatar(ctx context.Context, userID uuid.UUID, storageKey string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	user.SetAvatar(storageKey)

	if err := s.userRepo.SaveWithLock(ctx, user); err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update avatar")
	}
	return nil
}

// GetMediatorProfile retrieves the professional profile for a user
func (s *UserService) GetMediatorProfile(ctx context.Context, userID uuid.UUID) (*identity.MediatorProfile, error) {
	profile, err := s.mediatorRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("PROFILE_NOT_FOUND", "Mediator profile not found")
	}
	return profile, nil
}

// UpdateMediatorProfile updates the professional profile fields
func (s *UserService) UpdateMediatorProfile(ctx context.Context, input UpdateMediatorProfileInput) (*identity.MediatorProfile, error) {
	profile, err := s.mediatorRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, shared.NewDomainError("PROFILE_NOT_FOUND", "Mediator profile not found")
	}

	if err := profile.Update(input.FirmName, input.Biography, input.YearsOfExperience, input.PracticeAreas, input.Jurisdictions); err != nil {
		return nil, err
	}

	if input.HourlyRate != "" {
		rateAmount, err := decimal.NewFromString(input.HourlyRate)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_RATE", "Hourly rate is not a valid amount")
		}
		currency := valueobject.Currency(input.Currency)
		if input.Currency == "" {
			currency = valueobject.DefaultCurrency
		}
		rate, err := valueobject.NewMoney(rateAmount, currency)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_RATE", err.Error())
		}
		if err := profile.SetHourlyRate(rate); err != nil {
			return nil, err
		}
	}

	if err := s.mediatorRepo.Save(ctx, profile); err != nil {
		s.logger.Error("Failed to save mediator profile", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update profile")
	}

	return profile, nil
}

// GetClientProfile retrieves the intake profile for a user
func (s *UserService) GetClientProfile(ctx context.Context, userID uuid.UUID) (*identity.ClientProfile, error) {
	profile, err := s.clientRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("PROFILE_NOT_FOUND", "Client profile not found")
	}
	return profile, nil
}

// UpdateClientProfile updates the client intake fields
func (s *UserService) UpdateClientProfile(ctx context.Context, input UpdateClientProfileInput) (*identity.ClientProfile, error) {
	profile, err := s.clientRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, shared.NewDomainError("PROFILE_NOT_FOUND", "Client profile not found")
	}

	if err := profile.Update(input.Kind, input.OrganizationName, input.HelpDescription); err != nil {
		return nil, err
	}

	if err := s.clientRepo.Save(ctx, profile); err != nil {
		s.logger.Error("Failed to save client profile", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update profile")
	}

	return profile, nil
}

// SearchMediators searches the public mediator directory
func (s *UserService) SearchMediators(ctx context.Context, input SearchMediatorsInput) (*shared.Paginated[MediatorListing], error) {
	filter := shared.DefaultFilter()
	if input.Page > 0 {
		filter.Page = input.Page
	}
	if input.PageSize > 0 {
		filter.PageSize = input.PageSize
	}

	profiles, total, err := s.mediatorRepo.Search(ctx, input.PracticeArea, input.Jurisdiction, filter)
	if err != nil {
		s.logger.Error("Failed to search mediators", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to search mediators")
	}

	listings := make([]MediatorListing, 0, len(profiles))
	for i := range profiles {
		user, err := s.userRepo.FindByID(ctx, profiles[i].UserID)
		if err != nil {
			s.logger.Warn("Profile without user skipped",
				zap.String("profile_id", profiles[i].ID.String()))
			continue
		}
		listings = append(listings, MediatorListing{
			User:    NewUserInfo(user),
			Profile: profiles[i],
		})
	}

	result := shared.NewPaginated(listings, total, filter.Page, filter.PageSize)
	return &result, nil
}

// DecideVerification applies a support decision on a professional account
func (s *UserService) DecideVerification(ctx context.Context, input VerificationDecisionInput) (*UserInfo, error) {
	if err := s.requireSupport(ctx, input.ActorID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, input.TargetID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if input.Approve {
		err = user.ApproveVerification()
	} else {
		err = user.DenyVerification()
	}
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SaveWithLock(ctx, user); err != nil {
		s.logger.Error("Failed to save verification decision", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save decision")
	}

	s.publishEvents(ctx, user)

	s.logger.Info("Verification decided",
		zap.String("user_id", user.ID.String()),
		zap.Bool("approved", input.Approve),
		zap.String("actor_id", input.ActorID.String()))

	info := NewUserInfo(user)
	return &info, nil
}

// SuspendUser suspends an account and revokes its sessions
func (s *UserService) SuspendUser(ctx context.Context, input SuspendUserInput) error {
	if err := s.requireSupport(ctx, input.ActorID); err != nil {
		return err
	}
	if input.ActorID == input.TargetID {
		return shared.NewDomainError("FORBIDDEN", "Cannot suspend your own account")
	}

	user, err := s.userRepo.FindByID(ctx, input.TargetID)
	if err != nil {
		return shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if err := user.Suspend(input.Reason); err != nil {
		return err
	}

	if err := s.userRepo.SaveWithLock(ctx, user); err != nil {
		s.logger.Error("Failed to suspend user", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to suspend user")
	}

	// Active tokens stop working immediately
	if err := s.tokenBlacklist.AddUserTokensToBlacklist(ctx, user.ID.String(), 30*24*time.Hour); err != nil {
		s.logger.Error("Failed to revoke sessions for suspended user", zap.Error(err))
	}

	s.publishEvents(ctx, user)

	s.logger.Info("User suspended",
		zap.String("user_id", user.ID.String()),
		zap.String("reason", input.Reason),
		zap.String("actor_id", input.ActorID.String()))

	return nil
}

// ReactivateUser lifts a suspension. Support only.
func (s *UserService) ReactivateUser(ctx context.Context, actorID, targetID uuid.UUID) error {
	if err := s.requireSupport(ctx, actorID); err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		return shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if err := user.Reactivate(); err != nil {
		return err
	}

	if err := s.userRepo.SaveWithLock(ctx, user); err != nil {
		s.logger.Error("Failed to reactivate user", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to reactivate user")
	}

	s.logger.Info("User reactivated", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *UserService) requireSupport(ctx context.Context, actorID uuid.UUID) error {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return shared.NewDomainError("FORBIDDEN", "Actor not found")
	}
	if actor.Kind != identity.UserKindSupport {
		return shared.NewDomainError("FORBIDDEN", "Support role required")
	}
	return nil
}

func (s *UserService) publishEvents(ctx context.Context, user *identity.User) {
	events := user.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish identity events", zap.Error(err))
	}
	user.ClearDomainEvents()
}
