package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lawmatch/backend/internal/domain/identity"
	"github.com/lawmatch/backend/internal/domain/shared"
	"github.com/lawmatch/backend/internal/infrastructure/auth"
	"github.com/lawmatch/backend/internal/infrastructure/config"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter identity.UserFilter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context, filter identity.UserFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SaveWithLock(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMediatorProfileRepository is a mock implementation of MediatorProfileRepository
type MockMediatorProfileRepository struct {
	mock.Mock
}

func (m *MockMediatorProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.MediatorProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.MediatorProfile), args.Error(1)
}

func (m *MockMediatorProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*identity.MediatorProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.MediatorProfile), args.Error(1)
}

func (m *MockMediatorProfileRepository) Search(ctx context.Context, practiceArea, jurisdiction string, filter shared.Filter) ([]identity.MediatorProfile, int64, error) {
	args := m.Called(ctx, practiceArea, jurisdiction, filter)
	return args.Get(0).([]identity.MediatorProfile), args.Get(1).(int64), args.Error(2)
}

func (m *MockMediatorProfileRepository) Save(ctx context.Context, profile *identity.MediatorProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockMediatorProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockClientProfileRepository is a mock implementation of ClientProfileRepository
type MockClientProfileRepository struct {
	mock.Mock
}

func (m *MockClientProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.ClientProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.ClientProfile), args.Error(1)
}

func (m *MockClientProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*identity.ClientProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.ClientProfile), args.Error(1)
}

func (m *MockClientProfileRepository) Save(ctx context.Context, profile *identity.ClientProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockClientProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// fakeHasher avoids bcrypt cost in unit tests
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (fakeHasher) Verify(hash, password string) bool    { return hash == "hashed:"+password }

type authServiceMocks struct {
	userRepo     *MockUserRepository
	mediatorRepo *MockMediatorProfileRepository
	clientRepo   *MockClientProfileRepository
	publisher    *MockEventPublisher
}

func newAuthService(t *testing.T) (*AuthService, *authServiceMocks) {
	t.Helper()
	m := &authServiceMocks{
		userRepo:     new(MockUserRepository),
		mediatorRepo: new(MockMediatorProfileRepository),
		clientRepo:   new(MockClientProfileRepository),
		publisher:    new(MockEventPublisher),
	}
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "unit-test-secret-value-0123456789ab",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "lawmatch-test",
		MaxRefreshCount:        3,
	})
	svc := NewAuthService(
		m.userRepo, m.mediatorRepo, m.clientRepo,
		jwtService, fakeHasher{}, auth.NewInMemoryTokenBlacklist(),
		m.publisher, zap.NewNop(),
	)
	return svc, m
}

func TestAuthServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("client is active immediately", func(t *testing.T) {
		svc, m := newAuthService(t)
		m.userRepo.On("ExistsByEmail", ctx, "carol@example.com").Return(false, nil)
		m.userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)
		m.clientRepo.On("Save", ctx, mock.AnythingOfType("*identity.ClientProfile")).Return(nil)
		m.publisher.On("Publish", ctx, mock.Anything).Return(nil)

		result, err := svc.Register(ctx, RegisterInput{
			Email:     "Carol@Example.com",
			Password:  "long-enough-password",
			FirstName: "Carol",
			LastName:  "Diaz",
			Kind:      identity.UserKindClient,
		})
		require.NoError(t, err)
		assert.Equal(t, "carol@example.com", result.User.Email)
		assert.Equal(t, identity.UserStatusActive, result.User.Status)
		assert.NotEmpty(t, result.Tokens.AccessToken)
		m.clientRepo.AssertExpectations(t)
	})

	t.Run("mixed-case duplicate is caught against the lowercased address", func(t *testing.T) {
		svc, m := newAuthService(t)
		m.userRepo.On("ExistsByEmail", ctx, "carol@example.com").Return(true, nil)

		_, err := svc.Register(ctx, RegisterInput{
			Email:     "CAROL@example.com",
			Password:  "long-enough-password",
			FirstName: "Carol",
			LastName:  "Diaz",
			Kind:      identity.UserKindClient,
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EMAIL_TAKEN", domainErr.Code)
	})

	t.Run("mediator is pending with a professional profile", func(t *testing.T) {
		svc, m := newAuthService(t)
		m.userRepo.On("ExistsByEmail", ctx, "mike@example.com").Return(false, nil)
		m.userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)
		m.mediatorRepo.On("Save", ctx, mock.AnythingOfType("*identity.MediatorProfile")).Return(nil)
		m.publisher.On("Publish", ctx, mock.Anything).Return(nil)

		result, err := svc.Register(ctx, RegisterInput{
			Email:     "mike@example.com",
			Password:  "long-enough-password",
			FirstName: "Mike",
			LastName:  "Okafor",
			Kind:      identity.UserKindMediator,
		})
		require.NoError(t, err)
		assert.Equal(t, identity.UserStatusPending, result.User.Status)
		assert.Equal(t, identity.VerificationNotVerified, result.User.VerificationStatus)
		m.mediatorRepo.AssertExpectations(t)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		svc, m := newAuthService(t)
		m.userRepo.On("ExistsByEmail", ctx, "taken@example.com").Return(true, nil)

		_, err := svc.Register(ctx, RegisterInput{
			Email:     "taken@example.com",
			Password:  "long-enough-password",
			FirstName: "Dana",
			Kind:      identity.UserKindClient,
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EMAIL_TAKEN", domainErr.Code)
	})
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()

	newActiveClient := func(t *testing.T) *identity.User {
		t.Helper()
		user, err := identity.NewUser("carol@example.com", "hashed:secret-password", "Carol", "Diaz", identity.UserKindClient)
		require.NoError(t, err)
		user.ClearDomainEvents()
		return user
	}

	t.Run("successful login returns tokens", func(t *testing.T) {
		svc, m := newAuthService(t)
		user := newActiveClient(t)
		m.userRepo.On("FindByEmail", ctx, "carol@example.com").Return(user, nil)
		m.userRepo.On("Save", ctx, user).Return(nil)

		result, err := svc.Login(ctx, LoginInput{Email: "carol@example.com", Password: "secret-password"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.Tokens.AccessToken)
		assert.NotNil(t, user.LastLoginAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, m := newAuthService(t)
		m.userRepo.On("FindByEmail", ctx, "carol@example.com").Return(newActiveClient(t), nil)

		_, err := svc.Login(ctx, LoginInput{Email: "carol@example.com", Password: "nope"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("suspended account cannot login", func(t *testing.T) {
		svc, m := newAuthService(t)
		user := newActiveClient(t)
		require.NoError(t, user.Suspend("terms violation"))
		m.userRepo.On("FindByEmail", ctx, "carol@example.com").Return(user, nil)

		_, err := svc.Login(ctx, LoginInput{Email: "carol@example.com", Password: "secret-password"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ACCOUNT_SUSPENDED", domainErr.Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, m := newAuthService(t)
		m.userRepo.On("FindByEmail", ctx, "ghost@example.com").Return(nil, shared.ErrNotFound)

		_, err := svc.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "whatever"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})
}

func TestAuthServiceRefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a new pair for a valid refresh token", func(t *testing.T) {
		svc, m := newAuthService(t)
		user, err := identity.NewUser("carol@example.com", "hashed:pw-long-enough", "Carol", "Diaz", identity.UserKindClient)
		require.NoError(t, err)
		user.ClearDomainEvents()

		m.userRepo.On("FindByEmail", ctx, "carol@example.com").Return(user, nil)
		m.userRepo.On("Save", ctx, user).Return(nil)
		login, err := svc.Login(ctx, LoginInput{Email: "carol@example.com", Password: "pw-long-enough"})
		require.NoError(t, err)

		m.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		tokens, err := svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: login.Tokens.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEqual(t, login.Tokens.RefreshToken, tokens.RefreshToken)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		svc, _ := newAuthService(t)
		_, err := svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: "garbage"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
	})
}

func TestAuthServiceChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("changes hash and revokes sessions", func(t *testing.T) {
		svc, m := newAuthService(t)
		user, err := identity.NewUser("carol@example.com", "hashed:old-password-1", "Carol", "Diaz", identity.UserKindClient)
		require.NoError(t, err)

		m.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		m.userRepo.On("SaveWithLock", ctx, user).Return(nil)

		err = svc.ChangePassword(ctx, ChangePasswordInput{
			UserID:      user.ID,
			OldPassword: "old-password-1",
			NewPassword: "new-password-22",
		})
		require.NoError(t, err)
		assert.Equal(t, "hashed:new-password-22", user.PasswordHash)
	})

	t.Run("wrong old password", func(t *testing.T) {
		svc, m := newAuthService(t)
		user, err := identity.NewUser("carol@example.com", "hashed:old-password-1", "Carol", "Diaz", identity.UserKindClient)
		require.NoError(t, err)
		m.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		err = svc.ChangePassword(ctx, ChangePasswordInput{
			UserID:      user.ID,
			OldPassword: "not-the-old-one",
			NewPassword: "new-password-22",
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})
}
