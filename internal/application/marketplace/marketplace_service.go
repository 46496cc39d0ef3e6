package marketplace

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lawmatch/backend/internal/domain/identity"
	"github.com/lawmatch/backend/internal/domain/marketplace"
	"github.com/lawmatch/backend/internal/domain/matter"
	"github.com/lawmatch/backend/internal/domain/shared"
	"github.com/lawmatch/backend/internal/domain/shared/valueobject"
	"github.com/lawmatch/backend/internal/infrastructure/telemetry"
)

// MarketplaceService handles posted matters and the proposal flow.
// Accepting a proposal deactivates the posting and opens a draft matter
// between the client and the winning mediator.
type MarketplaceService struct {
	postingRepo     marketplace.PostedMatterRepository
	proposalRepo    marketplace.ProposalRepository
	matterRepo      matter.MatterRepository
	userRepo        identity.UserRepository
	txScope         TransactionScope
	eventPublisher  shared.EventPublisher
	businessMetrics *telemetry.BusinessMetrics
	logger          *zap.Logger
}

// NewMarketplaceService creates a new marketplace service
func NewMarketplaceService(
	postingRepo marketplace.PostedMatterRepository,
	proposalRepo marketplace.ProposalRepository,
	matterRepo matter.MatterRepository,
	userRepo identity.UserRepository,
	txScope TransactionScope,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
) *MarketplaceService {
	return &MarketplaceService{
		postingRepo:    postingRepo,
		proposalRepo:   proposalRepo,
		matterRepo:     matterRepo,
		userRepo:       userRepo,
		txScope:        txScope,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// SetBusinessMetrics enables business metrics recording. Optional; the
// service works without it.
func (s *MarketplaceService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// CreatePosting publishes a client's matter to the marketplace
func (s *MarketplaceService) CreatePosting(ctx context.Context, input CreatePostingInput) (*marketplace.PostedMatter, error) {
	budget, err := parseBudget(input.Budget, input.Currency)
	if err != nil {
		return nil, err
	}

	posting, err := marketplace.NewPostedMatter(input.ClientID, input.Title, input.Description, input.PracticeArea, input.RateType, budget)
	if err != nil {
		return nil, err
	}

	if err := s.postingRepo.Save(ctx, posting); err != nil {
		s.logger.Error("Failed to save posting", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create posting")
	}

	s.publishEvents(ctx, posting)

	s.logger.Info("Posting created",
		zap.String("posting_id", posting.ID.String()),
		zap.String("client_id", input.ClientID.String()),
		zap.String("practice_area", input.PracticeArea))

	return posting, nil
}

// GetPosting returns a single posting. Postings are public, so no
// access check is applied.
func (s *MarketplaceService) GetPosting(ctx context.Context, postingID uuid.UUID) (*marketplace.PostedMatter, error) {
	posting, err := s.postingRepo.FindByID(ctx, postingID)
	if err != nil {
		return nil, shared.NewDomainError("POSTING_NOT_FOUND", "Posting not found")
	}
	return posting, nil
}

// BrowsePostings lists active postings, optionally narrowed by practice area
func (s *MarketplaceService) BrowsePostings(ctx context.Context, input BrowsePostingsInput) ([]marketplace.PostedMatter, int64, error) {
	status := marketplace.PostedMatterStatusActive
	filter := marketplace.PostedMatterFilter{
		Filter: shared.Filter{Page: input.Page, PageSize: input.PageSize},
		Status: &status,
	}
	if input.PracticeArea != "" {
		filter.PracticeArea = &input.PracticeArea
	}

	postings, err := s.postingRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list postings")
	}
	total, err := s.postingRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to count postings")
	}
	return postings, total, nil
}

// ListMyPostings lists all of a client's postings regardless of status
func (s *MarketplaceService) ListMyPostings(ctx context.Context, clientID uuid.UUID, page, pageSize int) ([]marketplace.PostedMatter, int64, error) {
	filter := marketplace.PostedMatterFilter{
		Filter:   shared.Filter{Page: page, PageSize: pageSize},
		ClientID: &clientID,
	}

	postings, err := s.postingRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list postings")
	}
	total, err := s.postingRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to count postings")
	}
	return postings, total, nil
}

// UpdatePosting edits an active posting
func (s *MarketplaceService) UpdatePosting(ctx context.Context, input UpdatePostingInput) (*marketplace.PostedMatter, error) {
	posting, err := s.requirePostingOwner(ctx, input.ActorID, input.PostingID)
	if err != nil {
		return nil, err
	}

	budget, err := parseBudget(input.Budget, input.Currency)
	if err != nil {
		return nil, err
	}

	if err := posting.UpdateDetails(input.Title, input.Description, input.PracticeArea, budget); err != nil {
		return nil, err
	}

	if err := s.postingRepo.SaveWithLock(ctx, posting); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update posting")
	}
	return posting, nil
}

// DeactivatePosting pulls a posting off the marketplace
func (s *MarketplaceService) DeactivatePosting(ctx context.Context, actorID, postingID uuid.UUID) (*marketplace.PostedMatter, error) {
	posting, err := s.requirePostingOwner(ctx, actorID, postingID)
	if err != nil {
		return nil, err
	}

	if err := posting.Deactivate(); err != nil {
		return nil, err
	}

	if err := s.postingRepo.SaveWithLock(ctx, posting); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to deactivate posting")
	}

	s.publishEvents(ctx, posting)
	return posting, nil
}

// ReactivatePosting republishes an inactive posting. A posting with an
// accepted proposal must have it revoked first.
func (s *MarketplaceService) ReactivatePosting(ctx context.Context, actorID, postingID uuid.UUID) (*marketplace.PostedMatter, error) {
	posting, err := s.requirePostingOwner(ctx, actorID, postingID)
	if err != nil {
		return nil, err
	}

	if accepted, err := s.proposalRepo.FindAcceptedByPosting(ctx, postingID); err == nil && accepted != nil {
		return nil, shared.NewDomainError("PROPOSAL_ACCEPTED", "Revoke the accepted proposal before reactivating the posting")
	}

	if err := posting.Reactivate(); err != nil {
		return nil, err
	}

	if err := s.postingRepo.SaveWithLock(ctx, posting); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to reactivate posting")
	}

	s.publishEvents(ctx, posting)
	return posting, nil
}

// SubmitProposal records a mediator's offer on an active posting. A
// mediator holds at most one live proposal per posting.
func (s *MarketplaceService) SubmitProposal(ctx context.Context, input SubmitProposalInput) (*marketplace.Proposal, error) {
	mediator, err := s.userRepo.FindByID(ctx, input.MediatorID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "Mediator not found")
	}
	if !mediator.CanTakeWork() {
		return nil, shared.NewDomainError("NOT_VERIFIED", "Account must be verified before submitting proposals")
	}

	posting, err := s.postingRepo.FindByID(ctx, input.PostingID)
	if err != nil {
		return nil, shared.NewDomainError("POSTING_NOT_FOUND", "Posting not found")
	}
	if !posting.IsActive() {
		return nil, shared.NewDomainError("POSTING_INACTIVE", "Posting no longer accepts proposals")
	}
	if posting.ClientID == input.MediatorID {
		return nil, shared.NewDomainError("FORBIDDEN", "Cannot propose on your own posting")
	}

	if live, err := s.proposalRepo.FindLiveByMediatorAndPosting(ctx, input.MediatorID, input.PostingID); err == nil && live != nil {
		return nil, shared.NewDomainError("PROPOSAL_ALREADY_LIVE", "You already have a live proposal on this posting")
	}

	rate, err := parseRate(input.Rate, input.Currency)
	if err != nil {
		return nil, err
	}

	proposal, err := marketplace.NewProposal(input.PostingID, input.MediatorID, input.RateType, rate, input.Description)
	if err != nil {
		return nil, err
	}

	posting.RecordProposal()

	if err := s.proposalRepo.Save(ctx, proposal); err != nil {
		s.logger.Error("Failed to save proposal", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to submit proposal")
	}
	if err := s.postingRepo.SaveWithLock(ctx, posting); err != nil {
		s.logger.Error("Failed to update posting proposal count",
			zap.String("posting_id", posting.ID.String()),
			zap.Error(err))
	}

	s.publishEvents(ctx, proposal)

	if s.businessMetrics != nil {
		s.businessMetrics.RecordProposalSubmitted(ctx)
	}

	s.logger.Info("Proposal submitted",
		zap.String("proposal_id", proposal.ID.String()),
		zap.String("posting_id", input.PostingID.String()),
		zap.String("mediator_id", input.MediatorID.String()))

	return proposal, nil
}

// WithdrawProposal lets the mediator pull a pending proposal
func (s *MarketplaceService) WithdrawProposal(ctx context.Context, actorID, proposalID uuid.UUID) (*marketplace.Proposal, error) {
	proposal, err := s.proposalRepo.FindByID(ctx, proposalID)
	if err != nil {
		return nil, shared.NewDomainError("PROPOSAL_NOT_FOUND", "Proposal not found")
	}
	if proposal.MediatorID != actorID {
		return nil, shared.NewDomainError("FORBIDDEN", "Proposal belongs to another mediator")
	}

	if err := proposal.Withdraw(); err != nil {
		return nil, err
	}

	if err := s.proposalRepo.SaveWithLock(ctx, proposal); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to withdraw proposal")
	}

	s.publishEvents(ctx, proposal)
	return proposal, nil
}

// AcceptProposal accepts a proposal on the client's posting. The posting
// is deactivated and a draft matter is created between the client and
// the proposing mediator at the proposed rate.
func (s *MarketplaceService) AcceptProposal(ctx context.Context, input AcceptProposalInput) (*AcceptProposalResult, error) {
	proposal, err := s.proposalRepo.FindByID(ctx, input.ProposalID)
	if err != nil {
		return nil, shared.NewDomainError("PROPOSAL_NOT_FOUND", "Proposal not found")
	}

	posting, err := s.requirePostingOwner(ctx, input.ActorID, proposal.PostedMatterID)
	if err != nil {
		return nil, err
	}

	if err := proposal.Accept(); err != nil {
		return nil, err
	}
	if err := posting.Deactivate(); err != nil {
		return nil, err
	}

	number, err := s.matterRepo.NextNumber(ctx)
	if err != nil {
		s.logger.Error("Failed to allocate matter number", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to accept proposal")
	}

	m, err := matter.NewMatter(number, proposal.MediatorID, posting.ClientID, posting.Title, posting.Description, proposal.RateType, proposal.RateMoney())
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.ProposalRepo().SaveWithLock(ctx, proposal); err != nil {
			return err
		}
		if err := repos.PostingRepo().SaveWithLock(ctx, posting); err != nil {
			return err
		}
		return repos.MatterRepo().Save(ctx, m)
	})
	if err != nil {
		s.logger.Error("Failed to accept proposal",
			zap.String("proposal_id", proposal.ID.String()),
			zap.Error(err))
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to accept proposal")
	}

	s.publishEvents(ctx, proposal)
	s.publishEvents(ctx, posting)
	s.publishEvents(ctx, m)

	if s.businessMetrics != nil {
		s.businessMetrics.RecordProposalAccepted(ctx)
	}

	s.logger.Info("Proposal accepted",
		zap.String("proposal_id", proposal.ID.String()),
		zap.String("posting_id", posting.ID.String()),
		zap.String("matter_number", m.Number))

	return &AcceptProposalResult{Proposal: proposal, Matter: m}, nil
}

// RevokeProposal cancels an accepted proposal and puts the posting back
// on the market. The draft matter created on acceptance is left to the
// mediator to delete.
func (s *MarketplaceService) RevokeProposal(ctx context.Context, actorID, proposalID uuid.UUID) (*marketplace.Proposal, error) {
	proposal, err := s.proposalRepo.FindByID(ctx, proposalID)
	if err != nil {
		return nil, shared.NewDomainError("PROPOSAL_NOT_FOUND", "Proposal not found")
	}

	posting, err := s.requirePostingOwner(ctx, actorID, proposal.PostedMatterID)
	if err != nil {
		return nil, err
	}

	if err := proposal.Revoke(); err != nil {
		return nil, err
	}
	if err := posting.Reactivate(); err != nil {
		return nil, err
	}

	if err := s.proposalRepo.SaveWithLock(ctx, proposal); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke proposal")
	}
	if err := s.postingRepo.SaveWithLock(ctx, posting); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke proposal")
	}

	s.publishEvents(ctx, proposal)
	s.publishEvents(ctx, posting)

	s.logger.Info("Proposal revoked",
		zap.String("proposal_id", proposal.ID.String()),
		zap.String("posting_id", posting.ID.String()))

	return proposal, nil
}

// ListProposalsForPosting lists proposals on a posting, visible to the
// posting's client only
func (s *MarketplaceService) ListProposalsForPosting(ctx context.Context, input ListProposalsInput) ([]marketplace.Proposal, int64, error) {
	if _, err := s.requirePostingOwner(ctx, input.ActorID, input.PostingID); err != nil {
		return nil, 0, err
	}

	filter := marketplace.ProposalFilter{
		Filter:         shared.Filter{Page: input.Page, PageSize: input.PageSize},
		PostedMatterID: &input.PostingID,
	}

	proposals, err := s.proposalRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list proposals")
	}
	total, err := s.proposalRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to count proposals")
	}
	return proposals, total, nil
}

// ListMyProposals lists all proposals a mediator has submitted
func (s *MarketplaceService) ListMyProposals(ctx context.Context, mediatorID uuid.UUID, page, pageSize int) ([]marketplace.Proposal, int64, error) {
	filter := marketplace.ProposalFilter{
		Filter:     shared.Filter{Page: page, PageSize: pageSize},
		MediatorID: &mediatorID,
	}

	proposals, err := s.proposalRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list proposals")
	}
	total, err := s.proposalRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to count proposals")
	}
	return proposals, total, nil
}

func (s *MarketplaceService) requirePostingOwner(ctx context.Context, actorID, postingID uuid.UUID) (*marketplace.PostedMatter, error) {
	posting, err := s.postingRepo.FindByID(ctx, postingID)
	if err != nil {
		return nil, shared.NewDomainError("POSTING_NOT_FOUND", "Posting not found")
	}
	if posting.ClientID != actorID {
		return nil, shared.NewDomainError("FORBIDDEN", "Posting belongs to another client")
	}
	return posting, nil
}

func (s *MarketplaceService) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
	events := aggregate.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish marketplace events", zap.Error(err))
	}
	aggregate.ClearDomainEvents()
}

func parseBudget(amount, currency string) (valueobject.Money, error) {
	return parseMoneyValue(amount, currency, "INVALID_BUDGET", "Budget must be a valid decimal number")
}

func parseRate(amount, currency string) (valueobject.Money, error) {
	return parseMoneyValue(amount, currency, "INVALID_RATE", "Rate must be a valid decimal number")
}

func parseMoneyValue(amount, currency, code, message string) (valueobject.Money, error) {
	if amount == "" {
		return valueobject.ZeroUSD(), nil
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return valueobject.Money{}, shared.NewDomainError(code, message)
	}
	cur := valueobject.Currency(currency)
	if currency == "" {
		cur = valueobject.DefaultCurrency
	}
	money, err := valueobject.NewMoney(value, cur)
	if err != nil {
		return valueobject.NewMoneyUSD(value), nil
	}
	return money, nil
}
