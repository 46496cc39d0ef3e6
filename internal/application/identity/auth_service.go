package identity

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lawmatch/backend/internal/domain/identity"
	"github.com/lawmatch/backend/internal/domain/shared"
	"github.com/lawmatch/backend/internal/infrastructure/auth"
)

// AuthService handles registration and authentication
type AuthService struct {
	userRepo        identity.UserRepository
	mediatorRepo    identity.MediatorProfileRepository
	clientRepo      identity.ClientProfileRepository
	jwtService      *auth.JWTService
	passwordHasher  auth.PasswordHasher
	tokenBlacklist  auth.TokenBlacklist
	eventPublisher  shared.EventPublisher
	logger          *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	mediatorRepo identity.MediatorProfileRepository,
	clientRepo identity.ClientProfileRepository,
	jwtService *auth.JWTService,
	passwordHasher auth.PasswordHasher,
	tokenBlacklist auth.TokenBlacklist,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		mediatorRepo:   mediatorRepo,
		clientRepo:     clientRepo,
		jwtService:     jwtService,
		passwordHasher: passwordHasher,
		tokenBlacklist: tokenBlacklist,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// Register creates a new account. Clients get an empty intake profile and
// are active immediately; mediators and enterprise accounts get an empty
// professional profile and stay pending until support approves them.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	// Addresses are unique lowercased; normalize before any lookup
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	s.logger.Info("Registration attempt",
		zap.String("email", input.Email),
		zap.String("kind", input.Kind.String()))

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Error("Failed to check email uniqueness", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check email")
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
	}

	hash, err := s.passwordHasher.Hash(input.Password)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PASSWORD", err.Error())
	}

	user, err := identity.NewUser(input.Email, hash, input.FirstName, input.LastName, input.Kind)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create account")
	}

	if err := s.createInitialProfile(ctx, user, input); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, user)

	tokens, err := s.issueTokens(user)
	if err != nil {
		s.logger.Error("Failed to generate tokens after registration", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("kind", user.Kind.String()),
		zap.String("status", user.Status.String()))

	return &RegisterResult{User: NewUserInfo(user), Tokens: *tokens}, nil
}

func (s *AuthService) createInitialProfile(ctx context.Context, user *identity.User, input RegisterInput) error {
	if user.Kind.RequiresVerification() {
		profile, err := identity.NewMediatorProfile(user.ID)
		if err != nil {
			return err
		}
		if err := s.mediatorRepo.Save(ctx, profile); err != nil {
			s.logger.Error("Failed to save mediator profile", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to create profile")
		}
		return nil
	}

	if user.Kind == identity.UserKindClient {
		kind := input.ClientKind
		if kind == "" {
			kind = identity.ClientKindIndividual
		}
		profile, err := identity.NewClientProfile(user.ID, kind)
		if err != nil {
			return err
		}
		if input.OrganizationName != "" || input.HelpDescription != "" {
			if err := profile.Update(kind, input.OrganizationName, input.HelpDescription); err != nil {
				return err
			}
		}
		if err := s.clientRepo.Save(ctx, profile); err != nil {
			s.logger.Error("Failed to save client profile", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to create profile")
		}
	}

	return nil
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	s.logger.Info("Login attempt", zap.String("email", input.Email))

	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Warn("User not found during login", zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !s.passwordHasher.Verify(user.PasswordHash, input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !user.CanAuthenticate() {
		s.logger.Warn("Login attempt for suspended account", zap.String("email", input.Email))
		return nil, shared.NewDomainError("ACCOUNT_SUSPENDED", "Account has been suspended")
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	user.RecordLogin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		// Login still succeeds
		s.logger.Error("Failed to record login time", zap.Error(err))
	}

	s.logger.Info("User logged in",
		zap.String("email", input.Email),
		zap.String("user_id", user.ID.String()))

	return &LoginResult{User: NewUserInfo(user), Tokens: *tokens}, nil
}

// RefreshToken refreshes the access token using a valid refresh token
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*TokenInfo, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}

	blacklisted, err := s.tokenBlacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		s.logger.Error("Failed to check token blacklist", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to validate token")
	}
	if blacklisted {
		return nil, shared.NewDomainError("TOKEN_REVOKED", "Refresh token has been revoked")
	}

	invalidated, err := s.tokenBlacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.GetIssuedAtTime())
	if err != nil {
		s.logger.Error("Failed to check user token invalidation", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to validate token")
	}
	if invalidated {
		return nil, shared.NewDomainError("TOKEN_REVOKED", "Session has been revoked. Please log in again")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}
	if !user.CanAuthenticate() {
		return nil, shared.NewDomainError("ACCOUNT_SUSPENDED", "Account is no longer active")
	}

	pair, err := s.jwtService.RefreshTokenPair(input.RefreshToken)
	if err != nil {
		return nil, mapTokenError(err)
	}

	s.logger.Info("Token refreshed", zap.String("user_id", userID.String()))

	return &TokenInfo{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
	}, nil
}

// Logout revokes the presented token
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if input.TokenJTI != "" && input.TokenTTL > 0 {
		if err := s.tokenBlacklist.AddToBlacklist(ctx, input.TokenJTI, input.TokenTTL); err != nil {
			s.logger.Error("Failed to blacklist token on logout", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to log out")
		}
	}

	s.logger.Info("User logged out", zap.String("user_id", input.UserID.String()))
	return nil
}

// GetCurrentUser retrieves the authenticated user's account
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}
	info := NewUserInfo(user)
	return &info, nil
}

// ChangePassword changes a user's password and revokes existing sessions
func (s *AuthService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if !s.passwordHasher.Verify(user.PasswordHash, input.OldPassword) {
		return shared.NewDomainError("INVALID_CREDENTIALS", "Current password is incorrect")
	}

	hash, err := s.passwordHasher.Hash(input.NewPassword)
	if err != nil {
		return shared.NewDomainError("INVALID_PASSWORD", err.Error())
	}
	if err := user.ChangePassword(hash); err != nil {
		return err
	}

	if err := s.userRepo.SaveWithLock(ctx, user); err != nil {
		s.logger.Error("Failed to update password", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update password")
	}

	// Existing sessions must re-authenticate
	ttl := s.jwtService.GetRefreshTokenExpiration()
	if err := s.tokenBlacklist.AddUserTokensToBlacklist(ctx, user.ID.String(), ttl); err != nil {
		s.logger.Error("Failed to revoke sessions after password change", zap.Error(err))
	}

	s.logger.Info("User password changed", zap.String("user_id", input.UserID.String()))
	return nil
}

func (s *AuthService) issueTokens(user *identity.User) (*TokenInfo, error) {
	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Email:    user.Email,
		UserKind: user.Kind.String(),
	})
	if err != nil {
		return nil, err
	}
	return &TokenInfo{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
	}, nil
}

func (s *AuthService) publishEvents(ctx context.Context, user *identity.User) {
	events := user.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish identity events", zap.Error(err))
	}
	user.ClearDomainEvents()
}

func mapTokenError(err error) error {
	switch err {
	case auth.ErrExpiredToken:
		return shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
	case auth.ErrInvalidToken:
		return shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	case auth.ErrMaxRefreshExceeded:
		return shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
	default:
		return shared.NewDomainError("TOKEN_ERROR", "Failed to validate refresh token")
	}
}
