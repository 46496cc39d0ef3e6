package marketplace

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lawmatch/backend/internal/domain/identity"
	"github.com/lawmatch/backend/internal/domain/marketplace"
	"github.com/lawmatch/backend/internal/domain/matter"
	"github.com/lawmatch/backend/internal/domain/shared"
	"github.com/lawmatch/backend/internal/domain/shared/valueobject"
)

// MockPostedMatterRepository is a mock implementation of PostedMatterRepository
type MockPostedMatterRepository struct {
	mock.Mock
}

func (m *MockPostedMatterRepository) FindByID(ctx context.Context, id uuid.UUID) (*marketplace.PostedMatter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*marketplace.PostedMatter), args.Error(1)
}

func (m *MockPostedMatterRepository) FindAll(ctx context.Context, filter marketplace.PostedMatterFilter) ([]marketplace.PostedMatter, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]marketplace.PostedMatter), args.Error(1)
}

func (m *MockPostedMatterRepository) Count(ctx context.Context, filter marketplace.PostedMatterFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostedMatterRepository) Save(ctx context.Context, p *marketplace.PostedMatter) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPostedMatterRepository) SaveWithLock(ctx context.Context, p *marketplace.PostedMatter) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPostedMatterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProposalRepository is a mock implementation of ProposalRepository
type MockProposalRepository struct {
	mock.Mock
}

func (m *MockProposalRepository) FindByID(ctx context.Context, id uuid.UUID) (*marketplace.Proposal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*marketplace.Proposal), args.Error(1)
}

func (m *MockProposalRepository) FindAll(ctx context.Context, filter marketplace.ProposalFilter) ([]marketplace.Proposal, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]marketplace.Proposal), args.Error(1)
}

func (m *MockProposalRepository) FindLiveByMediatorAndPosting(ctx context.Context, mediatorID, postedMatterID uuid.UUID) (*marketplace.Proposal, error) {
	args := m.Called(ctx, mediatorID, postedMatterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*marketplace.Proposal), args.Error(1)
}

func (m *MockProposalRepository) FindAcceptedByPosting(ctx context.Context, postedMatterID uuid.UUID) (*marketplace.Proposal, error) {
	args := m.Called(ctx, postedMatterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*marketplace.Proposal), args.Error(1)
}

func (m *MockProposalRepository) Count(ctx context.Context, filter marketplace.ProposalFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProposalRepository) Save(ctx context.Context, p *marketplace.Proposal) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProposalRepository) SaveWithLock(ctx context.Context, p *marketplace.Proposal) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockMatterRepository is a mock implementation of matter.MatterRepository
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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]matter.Matter), args.Error(1)
}

func (m *MockMatterRepository) FindForUser(ctx context.Context, userID uuid.UUID, filter matter.MatterFilter) ([]matter.Matter, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// recordingTxScope counts Execute calls and delegates to a NoOp scope so
// the mocks underneath still see every repository call.
type recordingTxScope struct {
	inner TransactionScope
	calls int
}

func (s *recordingTxScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	s.calls++
	return s.inner.Execute(ctx, fn)
}

type serviceMocks struct {
	postingRepo  *MockPostedMatterRepository
	proposalRepo *MockProposalRepository
	matterRepo   *MockMatterRepository
	userRepo     *MockUserRepository
	txScope      *recordingTxScope
	publisher    *MockEventPublisher
}

func newService(t *testing.T) (*MarketplaceService, *serviceMocks) {
	t.Helper()
	m := &serviceMocks{
		postingRepo:  new(MockPostedMatterRepository),
		proposalRepo: new(MockProposalRepository),
		matterRepo:   new(MockMatterRepository),
		userRepo:     new(MockUserRepository),
		publisher:    new(MockEventPublisher),
	}
	m.txScope = &recordingTxScope{inner: NewNoOpTransactionScope(m.postingRepo, m.proposalRepo, m.matterRepo)}
	svc := NewMarketplaceService(m.postingRepo, m.proposalRepo, m.matterRepo, m.userRepo, m.txScope, m.publisher, zap.NewNop())
	return svc, m
}

func newVerifiedMediator(t *testing.T, id uuid.UUID) *identity.User {
	t.Helper()
	u, err := identity.NewUser("morgan@example.com", "hash", "Morgan", "Lee", identity.UserKindMediator)
	require.NoError(t, err)
	u.ID = id
	require.NoError(t, u.ApproveVerification())
	return u
}

func newActivePosting(t *testing.T, clientID uuid.UUID) *marketplace.PostedMatter {
	t.Helper()
	budget, err := valueobject.NewMoney(decimal.NewFromInt(5000), valueobject.USD)
	require.NoError(t, err)
	posting, err := marketplace.NewPostedMatter(clientID, "Commercial lease dispute", "Landlord and tenant disagree on renewal terms", "Commercial", matter.RateTypeFixed, budget)
	require.NoError(t, err)
	return posting
}

func newPendingProposal(t *testing.T, postingID, mediatorID uuid.UUID) *marketplace.Proposal {
	t.Helper()
	rate, err := valueobject.NewMoney(decimal.NewFromInt(4200), valueobject.USD)
	require.NoError(t, err)
	proposal, err := marketplace.NewProposal(postingID, mediatorID, matter.RateTypeFixed, rate, "Ten years of commercial lease mediation")
	require.NoError(t, err)
	proposal.ClearDomainEvents()
	return proposal
}

func TestCreatePosting(t *testing.T) {
	ctx := context.Background()
	clientID := uuid.New()

	t.Run("creates an active posting", func(t *testing.T) {
		svc, m := newService(t)
		m.postingRepo.On("Save", ctx, mock.AnythingOfType("*marketplace.PostedMatter")).Return(nil)

		posting, err := svc.CreatePosting(ctx, CreatePostingInput{
			ClientID:     clientID,
			Title:        "Commercial lease dispute",
			Description:  "Renewal terms in dispute",
			PracticeArea: "Commercial",
			RateType:     matter.RateTypeFixed,
			Budget:       "5000",
			Currency:     "USD",
		})
		require.NoError(t, err)
		assert.Equal(t, marketplace.PostedMatterStatusActive, posting.Status)
		assert.Equal(t, 0, posting.ProposalCount)
	})

	t.Run("rejects a malformed budget", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.CreatePosting(ctx, CreatePostingInput{
			ClientID:    clientID,
			Title:       "Lease dispute",
			Description: "Details",
			RateType:    matter.RateTypeFixed,
			Budget:      "five grand",
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_BUDGET", domainErr.Code)
	})
}

func TestSubmitProposal(t *testing.T) {
	ctx := context.Background()
	clientID := uuid.New()
	mediatorID := uuid.New()

	t.Run("submits and bumps the proposal count", func(t *testing.T) {
		svc, m := newService(t)
		posting := newActivePosting(t, clientID)

		m.userRepo.On("FindByID", ctx, mediatorID).Return(newVerifiedMediator(t, mediatorID), nil)
		m.postingRepo.On("FindByID", ctx, posting.ID).Return(posting, nil)
		m.proposalRepo.On("FindLiveByMediatorAndPosting", ctx, mediatorID, posting.ID).Return(nil, shared.ErrNotFound)
		m.proposalRepo.On("Save", ctx, mock.AnythingOfType("*marketplace.Proposal")).Return(nil)
		m.postingRepo.On("SaveWithLock", ctx, posting).Return(nil)
		m.publisher.On("Publish", ctx, mock.Anything).Return(nil)

		proposal, err := svc.SubmitProposal(ctx, SubmitProposalInput{
			MediatorID:  mediatorID,
			PostingID:   posting.ID,
			RateType:    matter.RateTypeFixed,
			Rate:        "4200",
			Currency:    "USD",
			Description: "Experienced in commercial leases",
		})
		require.NoError(t, err)
		assert.Equal(t, marketplace.ProposalStatusPending, proposal.Status)
		assert.Equal(t, 1, posting.ProposalCount)
	})

	t.Run("rejects a second live proposal from the same mediator", func(t *testing.T) {
		svc, m := newService(t)
		posting := newActivePosting(t, clientID)
		live := newPendingProposal(t, posting.ID, mediatorID)

		m.userRepo.On("FindByID", ctx, mediatorID).Return(newVerifiedMediator(t, mediatorID), nil)
		m.postingRepo.On("FindByID", ctx, posting.ID).Return(posting, nil)
		m.proposalRepo.On("FindLiveByMediatorAndPosting", ctx, mediatorID, posting.ID).Return(live, nil)

		_, err := svc.SubmitProposal(ctx, SubmitProposalInput{
			MediatorID:  mediatorID,
			PostingID:   posting.ID,
			RateType:    matter.RateTypeFixed,
			Rate:        "4200",
			Description: "Second attempt",
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PROPOSAL_ALREADY_LIVE", domainErr.Code)
	})

	t.Run("rejects proposals on an inactive posting", func(t *testing.T) {
		svc, m := newService(t)
		posting := newActivePosting(t, clientID)
		require.NoError(t, posting.Deactivate())

		m.userRepo.On("FindByID", ctx, mediatorID).Return(newVerifiedMediator(t, mediatorID), nil)
		m.postingRepo.On("FindByID", ctx, posting.ID).Return(posting, nil)

		_, err := svc.SubmitProposal(ctx, SubmitProposalInput{
			MediatorID:  mediatorID,
			PostingID:   posting.ID,
			RateType:    matter.RateTypeFixed,
			Rate:        "4200",
			Description: "Too late",
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "POSTING_INACTIVE", domainErr.Code)
	})

	t.Run("unverified mediator cannot submit proposals", func(t *testing.T) {
		svc, m := newService(t)
		posting := newActivePosting(t, clientID)
		pending, err := identity.NewUser("new@example.com", "hash", "Noa", "Kim", identity.UserKindMediator)
		require.NoError(t, err)
		pending.ID = mediatorID

		m.userRepo.On("FindByID", ctx, mediatorID).Return(pending, nil)

		_, err = svc.SubmitProposal(ctx, SubmitProposalInput{
			MediatorID:  mediatorID,
			PostingID:   posting.ID,
			RateType:    matter.RateTypeFixed,
			Rate:        "4200",
			Description: "Not yet verified",
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_VERIFIED", domainErr.Code)
		m.proposalRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestAcceptProposal(t *testing.T) {
	ctx := context.Background()
	clientID := uuid.New()
	mediatorID := uuid.New()

	t.Run("accept deactivates the posting and creates a draft matter", func(t *testing.T) {
		svc, m := newService(t)
		posting := newActivePosting(t, clientID)
		proposal := newPendingProposal(t, posting.ID, mediatorID)

		m.proposalRepo.On("FindByID", ctx, proposal.ID).Return(proposal, nil)
		m.postingRepo.On("FindByID", ctx, posting.ID).Return(posting, nil)
		m.matterRepo.On("NextNumber", ctx).Return("MAT-2026-00042", nil)
		m.proposalRepo.On("SaveWithLock", ctx, proposal).Return(nil)
		m.postingRepo.On("SaveWithLock", ctx, posting).Return(nil)
		m.matterRepo.On("Save", ctx, mock.AnythingOfType("*matter.Matter")).Return(nil)
		m.publisher.On("Publish", ctx, mock.Anything).Return(nil)

		result, err := svc.AcceptProposal(ctx, AcceptProposalInput{ActorID: clientID, ProposalID: proposal.ID})
		require.NoError(t, err)
		assert.Equal(t, marketplace.ProposalStatusAccepted, result.Proposal.Status)
		assert.Equal(t, marketplace.PostedMatterStatusInactive, posting.Status)

		require.NotNil(t, result.Matter)
		assert.Equal(t, "MAT-2026-00042", result.Matter.Number)
		assert.Equal(t, matter.MatterStatusDraft, result.Matter.Status)
		assert.Equal(t, mediatorID, result.Matter.MediatorID)
		assert.Equal(t, clientID, result.Matter.ClientID)
		assert.True(t, result.Matter.Rate.Equal(decimal.NewFromInt(4200)))
		assert.Equal(t, 1, m.txScope.calls)
	})

	t.Run("a conflicting save rolls the whole acceptance back", func(t *testing.T) {
		svc, m := newService(t)
		posting := newActivePosting(t, clientID)
		proposal := newPendingProposal(t, posting.ID, mediatorID)

		m.proposalRepo.On("FindByID", ctx, proposal.ID).Return(proposal, nil)
		m.postingRepo.On("FindByID", ctx, posting.ID).Return(posting, nil)
		m.matterRepo.On("NextNumber", ctx).Return("MAT-2026-00043", nil)
		m.proposalRepo.On("SaveWithLock", ctx, proposal).
			Return(shared.NewDomainError("CONCURRENT_MODIFICATION", "The record has been modified by another user"))

		_, err := svc.AcceptProposal(ctx, AcceptProposalInput{ActorID: clientID, ProposalID: proposal.ID})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CONCURRENT_MODIFICATION", domainErr.Code)
		assert.Equal(t, 1, m.txScope.calls)
		m.matterRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		m.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("only the posting's client can accept", func(t *testing.T) {
		svc, m := newService(t)
		posting := newActivePosting(t, clientID)
		proposal := newPendingProposal(t, posting.ID, mediatorID)

		m.proposalRepo.On("FindByID", ctx, proposal.ID).Return(proposal, nil)
		m.postingRepo.On("FindByID", ctx, posting.ID).Return(posting, nil)

		_, err := svc.AcceptProposal(ctx, AcceptProposalInput{ActorID: mediatorID, ProposalID: proposal.ID})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})
}

func TestRevokeProposal(t *testing.T) {
	ctx := context.Background()
	clientID := uuid.New()
	mediatorID := uuid.New()

	t.Run("revoke reactivates the posting", func(t *testing.T) {
		svc, m := newService(t)
		posting := newActivePosting(t, clientID)
		proposal := newPendingProposal(t, posting.ID, mediatorID)
		require.NoError(t, proposal.Accept())
		require.NoError(t, posting.Deactivate())
		proposal.ClearDomainEvents()
		posting.ClearDomainEvents()

		m.proposalRepo.On("FindByID", ctx, proposal.ID).Return(proposal, nil)
		m.postingRepo.On("FindByID", ctx, posting.ID).Return(posting, nil)
		m.proposalRepo.On("SaveWithLock", ctx, proposal).Return(nil)
		m.postingRepo.On("SaveWithLock", ctx, posting).Return(nil)
		m.publisher.On("Publish", ctx, mock.Anything).Return(nil)

		revoked, err := svc.RevokeProposal(ctx, clientID, proposal.ID)
		require.NoError(t, err)
		assert.Equal(t, marketplace.ProposalStatusRevoked, revoked.Status)
		assert.Equal(t, marketplace.PostedMatterStatusActive, posting.Status)
	})

	t.Run("pending proposals cannot be revoked", func(t *testing.T) {
		svc, m := newService(t)
		posting := newActivePosting(t, clientID)
		proposal := newPendingProposal(t, posting.ID, mediatorID)

		m.proposalRepo.On("FindByID", ctx, proposal.ID).Return(proposal, nil)
		m.postingRepo.On("FindByID", ctx, posting.ID).Return(posting, nil)

		_, err := svc.RevokeProposal(ctx, clientID, proposal.ID)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}

func TestWithdrawProposal(t *testing.T) {
	ctx := context.Background()
	clientID := uuid.New()
	mediatorID := uuid.New()

	t.Run("mediator withdraws a pending proposal", func(t *testing.T) {
		svc, m := newService(t)
		posting := newActivePosting(t, clientID)
		proposal := newPendingProposal(t, posting.ID, mediatorID)

		m.proposalRepo.On("FindByID", ctx, proposal.ID).Return(proposal, nil)
		m.proposalRepo.On("SaveWithLock", ctx, proposal).Return(nil)
		m.publisher.On("Publish", ctx, mock.Anything).Return(nil)

		withdrawn, err := svc.WithdrawProposal(ctx, mediatorID, proposal.ID)
		require.NoError(t, err)
		assert.Equal(t, marketplace.ProposalStatusWithdrawn, withdrawn.Status)
	})

	t.Run("another mediator cannot withdraw it", func(t *testing.T) {
		svc, m := newService(t)
		posting := newActivePosting(t, clientID)
		proposal := newPendingProposal(t, posting.ID, mediatorID)

		m.proposalRepo.On("FindByID", ctx, proposal.ID).Return(proposal, nil)

		_, err := svc.WithdrawProposal(ctx, uuid.New(), proposal.ID)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})
}

func TestReactivatePosting(t *testing.T) {
	ctx := context.Background()
	clientID := uuid.New()

	t.Run("blocked while a proposal is accepted", func(t *testing.T) {
		svc, m := newService(t)
		posting := newActivePosting(t, clientID)
		require.NoError(t, posting.Deactivate())
		accepted := newPendingProposal(t, posting.ID, uuid.New())
		require.NoError(t, accepted.Accept())

		m.postingRepo.On("FindByID", ctx, posting.ID).Return(posting, nil)
		m.proposalRepo.On("FindAcceptedByPosting", ctx, posting.ID).Return(accepted, nil)

		_, err := svc.ReactivatePosting(ctx, clientID, posting.ID)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PROPOSAL_ACCEPTED", domainErr.Code)
	})

	t.Run("reactivates when no proposal is accepted", func(t *testing.T) {
		svc, m := newService(t)
		posting := newActivePosting(t, clientID)
		require.NoError(t, posting.Deactivate())
		posting.ClearDomainEvents()

		m.postingRepo.On("FindByID", ctx, posting.ID).Return(posting, nil)
		m.proposalRepo.On("FindAcceptedByPosting", ctx, posting.ID).Return(nil, shared.ErrNotFound)
		m.postingRepo.On("SaveWithLock", ctx, posting).Return(nil)
		m.publisher.On("Publish", ctx, mock.Anything).Return(nil)

		reactivated, err := svc.ReactivatePosting(ctx, clientID, posting.ID)
		require.NoError(t, err)
		assert.Equal(t, marketplace.PostedMatterStatusActive, reactivated.Status)
	})
}
