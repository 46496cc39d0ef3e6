package matter

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"

	"github.com/lawmatch/backend/internal/domain/identity"
	"github.com/lawmatch/backend/internal/domain/matter"
	"github.com/lawmatch/backend/internal/domain/shared"
	"github.com/lawmatch/backend/internal/domain/shared/valueobject"
	"github.com/lawmatch/backend/internal/infrastructure/telemetry"
)

// MockMatterRepository is a mock implementation of MatterRepository
type MockMatterRepository struct {
	mock.Mock
}

func (m *MockMatterRepository) FindByID(ctx context.Context, id uuid.UUID) (*matter.Matter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*matter.Matter), args.Error(1)
}

func (m *MockMatterRepository) FindByNumber(ctx context.Context, number string) (*matter.Matter, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*matter.Matter), args.Error(1)
}

func (m *MockMatterRepository) FindAll(ctx context.Context, filter matter.MatterFilter) ([]matter.Matter, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]matter.Matter), args.Error(1)
}

func (m *MockMatterRepository) FindForUser(ctx context.Context, userID uuid.UUID, filter matter.MatterFilter) ([]matter.Matter, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]matter.Matter), args.Error(1)
}

func (m *MockMatterRepository) Count(ctx context.Context, filter matter.MatterFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMatterRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter matter.MatterFilter) (int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMatterRepository) NextNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockMatterRepository) Save(ctx context.Context, mt *matter.Matter) error {
	args := m.Called(ctx, mt)
	return args.Error(0)
}

func (m *MockMatterRepository) SaveWithLock(ctx context.Context, mt *matter.Matter) error {
	args := m.Called(ctx, mt)
	return args.Error(0)
}

func (m *MockMatterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReferralRepository is a mock implementation of ReferralRepository
type MockReferralRepository struct {
	mock.Mock
}

func (m *MockReferralRepository) FindByID(ctx context.Context, id uuid.UUID) (*matter.Referral, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*matter.Referral), args.Error(1)
}

func (m *MockReferralRepository) FindPendingByMatter(ctx context.Context, matterID uuid.UUID) (*matter.Referral, error) {
	args := m.Called(ctx, matterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*matter.Referral), args.Error(1)
}

func (m *MockReferralRepository) FindByMatter(ctx context.Context, matterID uuid.UUID) ([]matter.Referral, error) {
	args := m.Called(ctx, matterID)
	return args.Get(0).([]matter.Referral), args.Error(1)
}

func (m *MockReferralRepository) FindPendingForMediator(ctx context.Context, mediatorID uuid.UUID, filter shared.Filter) ([]matter.Referral, error) {
	args := m.Called(ctx, mediatorID, filter)
	return args.Get(0).([]matter.Referral), args.Error(1)
}

func (m *MockReferralRepository) Save(ctx context.Context, r *matter.Referral) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of identity.UserRepository
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

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func newService(t *testing.T) (*MatterService, *MockMatterRepository, *MockReferralRepository, *MockEventPublisher, *MockUserRepository) {
	t.Helper()
	matterRepo := new(MockMatterRepository)
	referralRepo := new(MockReferralRepository)
	userRepo := new(MockUserRepository)
	publisher := new(MockEventPublisher)
	svc := NewMatterService(matterRepo, referralRepo, userRepo, publisher, zap.NewNop())
	return svc, matterRepo, referralRepo, publisher, userRepo
}

func newVerifiedMediator(t *testing.T, id uuid.UUID) *identity.User {
	t.Helper()
	u, err := identity.NewUser("morgan@example.com", "hash", "Morgan", "Lee", identity.UserKindMediator)
	require.NoError(t, err)
	u.ID = id
	require.NoError(t, u.ApproveVerification())
	return u
}

func newOpenMatter(t *testing.T, mediatorID, clientID uuid.UUID) *matter.Matter {
	t.Helper()
	m, err := matter.NewMatter("MAT-2026-00042", mediatorID, clientID, "Lease dispute", "", matter.RateTypeHourly, valueobject.NewMoneyUSD(decimal.NewFromInt(300)))
	require.NoError(t, err)
	require.NoError(t, m.Open())
	m.ClearDomainEvents()
	return m
}

func TestCreateMatter(t *testing.T) {
	ctx := context.Background()
	mediatorID := uuid.New()
	clientID := uuid.New()

	t.Run("creates draft with allocated number", func(t *testing.T) {
		svc, matterRepo, _, publisher, userRepo := newService(t)
		userRepo.On("FindByID", ctx, mediatorID).Return(newVerifiedMediator(t, mediatorID), nil)
		matterRepo.On("NextNumber", ctx).Return("MAT-2026-00001", nil)
		matterRepo.On("Save", ctx, mock.AnythingOfType("*matter.Matter")).Return(nil)
		publisher.On("Publish", ctx, mock.Anything).Return(nil)

		m, err := svc.CreateMatter(ctx, CreateMatterInput{
			MediatorID: mediatorID,
			ClientID:   clientID,
			Title:      "Contract dispute",
			RateType:   matter.RateTypeHourly,
			Rate:       "250.00",
		})
		require.NoError(t, err)
		assert.Equal(t, "MAT-2026-00001", m.Number)
		assert.Equal(t, matter.MatterStatusDraft, m.Status)
		matterRepo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("records business metrics when configured", func(t *testing.T) {
		svc, matterRepo, _, publisher, userRepo := newService(t)
		bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
			Meter: noop.NewMeterProvider().Meter("test"),
		})
		require.NoError(t, err)
		svc.SetBusinessMetrics(bm)

		userRepo.On("FindByID", ctx, mediatorID).Return(newVerifiedMediator(t, mediatorID), nil)
		matterRepo.On("NextNumber", ctx).Return("MAT-2026-00002", nil)
		matterRepo.On("Save", ctx, mock.AnythingOfType("*matter.Matter")).Return(nil)
		publisher.On("Publish", ctx, mock.Anything).Return(nil)

		_, err = svc.CreateMatter(ctx, CreateMatterInput{
			MediatorID: mediatorID,
			ClientID:   clientID,
			Title:      "Contract dispute",
			RateType:   matter.RateTypeFixed,
			Rate:       "5000.00",
		})
		require.NoError(t, err)
		matterRepo.AssertExpectations(t)
	})

	t.Run("rejects invalid rate", func(t *testing.T) {
		svc, _, _, _, userRepo := newService(t)
		userRepo.On("FindByID", ctx, mediatorID).Return(newVerifiedMediator(t, mediatorID), nil)

		_, err := svc.CreateMatter(ctx, CreateMatterInput{
			MediatorID: mediatorID,
			ClientID:   clientID,
			Title:      "Contract dispute",
			RateType:   matter.RateTypeHourly,
			Rate:       "abc",
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_RATE", domainErr.Code)
	})

	t.Run("unverified mediator cannot take on matters", func(t *testing.T) {
		svc, matterRepo, _, _, userRepo := newService(t)
		pending, err := identity.NewUser("new@example.com", "hash", "Noa", "Kim", identity.UserKindMediator)
		require.NoError(t, err)
		pending.ID = mediatorID
		userRepo.On("FindByID", ctx, mediatorID).Return(pending, nil)

		_, err = svc.CreateMatter(ctx, CreateMatterInput{
			MediatorID: mediatorID,
			ClientID:   clientID,
			Title:      "Contract dispute",
			RateType:   matter.RateTypeHourly,
			Rate:       "250.00",
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_VERIFIED", domainErr.Code)
		matterRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestOpenAndCloseMatter(t *testing.T) {
	ctx := context.Background()
	mediatorID := uuid.New()
	clientID := uuid.New()

	t.Run("open draft", func(t *testing.T) {
		svc, matterRepo, _, publisher, _ := newService(t)
		m, err := matter.NewMatter("MAT-2026-00002", mediatorID, clientID, "Estate plan", "", matter.RateTypeFixed, valueobject.ZeroUSD())
		require.NoError(t, err)
		m.ClearDomainEvents()

		matterRepo.On("FindByID", ctx, m.ID).Return(m, nil)
		matterRepo.On("SaveWithLock", ctx, m).Return(nil)
		publisher.On("Publish", ctx, mock.Anything).Return(nil)

		opened, err := svc.OpenMatter(ctx, mediatorID, m.ID)
		require.NoError(t, err)
		assert.Equal(t, matter.MatterStatusOpen, opened.Status)
	})

	t.Run("only mediator can open", func(t *testing.T) {
		svc, matterRepo, _, _, _ := newService(t)
		m, err := matter.NewMatter("MAT-2026-00003", mediatorID, clientID, "Estate plan", "", matter.RateTypeFixed, valueobject.ZeroUSD())
		require.NoError(t, err)
		matterRepo.On("FindByID", ctx, m.ID).Return(m, nil)

		_, err = svc.OpenMatter(ctx, clientID, m.ID)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})

	t.Run("close requires reason", func(t *testing.T) {
		svc, matterRepo, _, _, _ := newService(t)
		m := newOpenMatter(t, mediatorID, clientID)
		matterRepo.On("FindByID", ctx, m.ID).Return(m, nil)

		_, err := svc.CloseMatter(ctx, CloseMatterInput{ActorID: mediatorID, MatterID: m.ID})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_REASON", domainErr.Code)
	})
}

func TestListMatters(t *testing.T) {
	ctx := context.Background()
	mediatorID := uuid.New()
	clientID := uuid.New()

	t.Run("total is scoped to the caller", func(t *testing.T) {
		svc, matterRepo, _, _, _ := newService(t)
		m := newOpenMatter(t, mediatorID, clientID)

		matterRepo.On("FindForUser", ctx, mediatorID, mock.AnythingOfType("matter.MatterFilter")).
			Return([]matter.Matter{*m}, nil)
		matterRepo.On("CountForUser", ctx, mediatorID, mock.AnythingOfType("matter.MatterFilter")).
			Return(int64(1), nil)

		result, err := svc.ListMatters(ctx, ListMattersInput{UserID: mediatorID})
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Total)
		require.Len(t, result.Items, 1)
		matterRepo.AssertNotCalled(t, "Count", mock.Anything, mock.Anything)
		matterRepo.AssertExpectations(t)
	})
}

func TestReferralFlow(t *testing.T) {
	ctx := context.Background()
	mediatorID := uuid.New()
	clientID := uuid.New()
	otherMediatorID := uuid.New()

	t.Run("send referral persists matter and referral", func(t *testing.T) {
		svc, matterRepo, referralRepo, publisher, _ := newService(t)
		m := newOpenMatter(t, mediatorID, clientID)

		matterRepo.On("FindByID", ctx, m.ID).Return(m, nil)
		matterRepo.On("SaveWithLock", ctx, m).Return(nil)
		referralRepo.On("Save", ctx, mock.AnythingOfType("*matter.Referral")).Return(nil)
		publisher.On("Publish", ctx, mock.Anything).Return(nil)

		referral, err := svc.SendReferral(ctx, SendReferralInput{
			ActorID:      mediatorID,
			MatterID:     m.ID,
			ToMediatorID: otherMediatorID,
			Message:      "Conflict of interest on my side",
		})
		require.NoError(t, err)
		assert.Equal(t, matter.MatterStatusReferral, m.Status)
		assert.Equal(t, matter.ReferralStatusPending, referral.Status)
		referralRepo.AssertExpectations(t)
	})

	t.Run("accept reassigns the matter", func(t *testing.T) {
		svc, matterRepo, referralRepo, publisher, _ := newService(t)
		m := newOpenMatter(t, mediatorID, clientID)
		referral, err := m.SendReferral(mediatorID, otherMediatorID, "")
		require.NoError(t, err)
		m.ClearDomainEvents()

		referralRepo.On("FindByID", ctx, referral.ID).Return(referral, nil)
		matterRepo.On("FindByID", ctx, m.ID).Return(m, nil)
		matterRepo.On("SaveWithLock", ctx, m).Return(nil)
		referralRepo.On("Save", ctx, referral).Return(nil)
		publisher.On("Publish", ctx, mock.Anything).Return(nil)

		resolved, err := svc.ResolveReferral(ctx, ResolveReferralInput{
			ActorID:    otherMediatorID,
			ReferralID: referral.ID,
			Accept:     true,
		})
		require.NoError(t, err)
		assert.Equal(t, otherMediatorID, resolved.MediatorID)
		assert.Equal(t, matter.MatterStatusOpen, resolved.Status)
	})

	t.Run("only the target mediator can resolve", func(t *testing.T) {
		svc, _, referralRepo, _, _ := newService(t)
		m := newOpenMatter(t, mediatorID, clientID)
		referral, err := m.SendReferral(mediatorID, otherMediatorID, "")
		require.NoError(t, err)

		referralRepo.On("FindByID", ctx, referral.ID).Return(referral, nil)

		_, err = svc.ResolveReferral(ctx, ResolveReferralInput{
			ActorID:    mediatorID,
			ReferralID: referral.ID,
			Accept:     true,
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})
}

func TestDeleteDraft(t *testing.T) {
	ctx := context.Background()
	mediatorID := uuid.New()
	clientID := uuid.New()

	t.Run("deletes a draft", func(t *testing.T) {
		svc, matterRepo, _, _, _ := newService(t)
		m, err := matter.NewMatter("MAT-2026-00009", mediatorID, clientID, "Draft only", "", matter.RateTypeFixed, valueobject.ZeroUSD())
		require.NoError(t, err)

		matterRepo.On("FindByID", ctx, m.ID).Return(m, nil)
		matterRepo.On("Delete", ctx, m.ID).Return(nil)

		require.NoError(t, svc.DeleteDraft(ctx, mediatorID, m.ID))
		matterRepo.AssertExpectations(t)
	})

	t.Run("refuses to delete an opened matter", func(t *testing.T) {
		svc, matterRepo, _, _, _ := newService(t)
		m := newOpenMatter(t, mediatorID, clientID)
		matterRepo.On("FindByID", ctx, m.ID).Return(m, nil)

		err := svc.DeleteDraft(ctx, mediatorID, m.ID)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}
