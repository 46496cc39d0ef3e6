package matter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lawmatch/backend/internal/domain/identity"
	"github.com/lawmatch/backend/internal/domain/matter"
	"github.com/lawmatch/backend/internal/domain/shared"
	"github.com/lawmatch/backend/internal/domain/shared/valueobject"
	"github.com/lawmatch/backend/internal/infrastructure/telemetry"
)

// MatterService orchestrates the matter lifecycle and referral hand-offs
type MatterService struct {
	matterRepo      matter.MatterRepository
	referralRepo    matter.ReferralRepository
	userRepo        identity.UserRepository
	eventPublisher  shared.EventPublisher
	businessMetrics *telemetry.BusinessMetrics
	logger          *zap.Logger
}

// NewMatterService creates a new matter service
func NewMatterService(
	matterRepo matter.MatterRepository,
	referralRepo matter.ReferralRepository,
	userRepo identity.UserRepository,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
) *MatterService {
	return &MatterService{
		matterRepo:     matterRepo,
		referralRepo:   referralRepo,
		userRepo:       userRepo,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// SetBusinessMetrics enables business metrics recording. Optional; the
// service works without it.
func (s *MatterService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// CreateMatter creates a new draft matter
func (s *MatterService) CreateMatter(ctx context.Context, input CreateMatterInput) (*matter.Matter, error) {
	mediator, err := s.userRepo.FindByID(ctx, input.MediatorID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "Mediator not found")
	}
	if !mediator.CanTakeWork() {
		return nil, shared.NewDomainError("NOT_VERIFIED", "Account must be verified before taking on matters")
	}

	rate, err := parseRate(input.Rate, input.Currency)
	if err != nil {
		return nil, err
	}

	number, err := s.matterRepo.NextNumber(ctx)
	if err != nil {
		s.logger.Error("Failed to allocate matter number", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to allocate matter number")
	}

	m, err := matter.NewMatter(number, input.MediatorID, input.ClientID, input.Title, input.Description, input.RateType, rate)
	if err != nil {
		return nil, err
	}
	if input.City != "" || input.State != "" || input.Country != "" {
		m.SetLocation(input.City, input.State, input.Country)
	}

	if err := s.matterRepo.Save(ctx, m); err != nil {
		s.logger.Error("Failed to save matter", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create matter")
	}

	s.publishEvents(ctx, m)

	if s.businessMetrics != nil {
		s.businessMetrics.RecordMatterCreated(ctx, string(m.RateType))
	}

	s.logger.Info("Matter created",
		zap.String("matter_id", m.ID.String()),
		zap.String("number", m.Number),
		zap.String("mediator_id", m.MediatorID.String()))

	return m, nil
}

// GetMatter retrieves a matter the user has access to
func (s *MatterService) GetMatter(ctx context.Context, userID, matterID uuid.UUID) (*matter.Matter, error) {
	m, err := s.matterRepo.FindByID(ctx, matterID)
	if err != nil {
		return nil, shared.NewDomainError("MATTER_NOT_FOUND", "Matter not found")
	}
	if !m.IsAccessibleBy(userID) {
		return nil, shared.ErrForbidden
	}
	return m, nil
}

// ListMatters lists matters where the user is a party or was shared access
func (s *MatterService) ListMatters(ctx context.Context, input ListMattersInput) (*shared.Paginated[matter.Matter], error) {
	filter := matter.MatterFilter{Filter: shared.DefaultFilter()}
	if input.Page > 0 {
		filter.Page = input.Page
	}
	if input.PageSize > 0 {
		filter.PageSize = input.PageSize
	}
	filter.Status = input.Status

	matters, err := s.matterRepo.FindForUser(ctx, input.UserID, filter)
	if err != nil {
		s.logger.Error("Failed to list matters", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list matters")
	}
	total, err := s.matterRepo.CountForUser(ctx, input.UserID, filter)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to count matters")
	}

	result := shared.NewPaginated(matters, total, filter.Page, filter.PageSize)
	return &result, nil
}

// UpdateMatter updates details on a non-closed matter. Mediator only.
func (s *MatterService) UpdateMatter(ctx context.Context, input UpdateMatterInput) (*matter.Matter, error) {
	m, err := s.requireMediator(ctx, input.ActorID, input.MatterID)
	if err != nil {
		return nil, err
	}

	if err := m.UpdateDetails(input.Title, input.Description); err != nil {
		return nil, err
	}
	if input.City != "" || input.State != "" || input.Country != "" {
		m.SetLocation(input.City, input.State, input.Country)
	}

	if err := s.matterRepo.SaveWithLock(ctx, m); err != nil {
		s.logger.Error("Failed to update matter", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update matter")
	}

	return m, nil
}

// OpenMatter transitions a draft matter to open
func (s *MatterService) OpenMatter(ctx context.Context, actorID, matterID uuid.UUID) (*matter.Matter, error) {
	m, err := s.requireMediator(ctx, actorID, matterID)
	if err != nil {
		return nil, err
	}

	if err := m.Open(); err != nil {
		return nil, err
	}

	if err := s.matterRepo.SaveWithLock(ctx, m); err != nil {
		s.logger.Error("Failed to open matter", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to open matter")
	}

	s.publishEvents(ctx, m)

	s.logger.Info("Matter opened",
		zap.String("matter_id", m.ID.String()),
		zap.String("number", m.Number))

	return m, nil
}

// CloseMatter closes an open matter. Closed is terminal.
func (s *MatterService) CloseMatter(ctx context.Context, input CloseMatterInput) (*matter.Matter, error) {
	m, err := s.requireMediator(ctx, input.ActorID, input.MatterID)
	if err != nil {
		return nil, err
	}

	if err := m.Close(input.Reason); err != nil {
		return nil, err
	}

	if err := s.matterRepo.SaveWithLock(ctx, m); err != nil {
		s.logger.Error("Failed to close matter", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to close matter")
	}

	s.publishEvents(ctx, m)

	s.logger.Info("Matter closed",
		zap.String("matter_id", m.ID.String()),
		zap.String("reason", input.Reason))

	return m, nil
}

// DeleteDraft removes a matter that never left draft
func (s *MatterService) DeleteDraft(ctx context.Context, actorID, matterID uuid.UUID) error {
	m, err := s.requireMediator(ctx, actorID, matterID)
	if err != nil {
		return err
	}
	if m.Status != matter.MatterStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft matters can be deleted")
	}

	if err := s.matterRepo.Delete(ctx, matterID); err != nil {
		s.logger.Error("Failed to delete draft matter", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete matter")
	}

	return nil
}

// SendReferral starts a referral hand-off to another mediator
func (s *MatterService) SendReferral(ctx context.Context, input SendReferralInput) (*matter.Referral, error) {
	m, err := s.matterRepo.FindByID(ctx, input.MatterID)
	if err != nil {
		return nil, shared.NewDomainError("MATTER_NOT_FOUND", "Matter not found")
	}

	referral, err := m.SendReferral(input.ActorID, input.ToMediatorID, input.Message)
	if err != nil {
		return nil, err
	}

	if err := s.matterRepo.SaveWithLock(ctx, m); err != nil {
		s.logger.Error("Failed to save matter during referral", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to send referral")
	}
	if err := s.referralRepo.Save(ctx, referral); err != nil {
		s.logger.Error("Failed to save referral", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to send referral")
	}

	s.publishEvents(ctx, m)

	s.logger.Info("Referral sent",
		zap.String("matter_id", m.ID.String()),
		zap.String("referral_id", referral.ID.String()),
		zap.String("to_mediator_id", input.ToMediatorID.String()))

	return referral, nil
}

// ResolveReferral accepts or declines a pending referral. Only the target
// mediator may resolve it.
func (s *MatterService) ResolveReferral(ctx context.Context, input ResolveReferralInput) (*matter.Matter, error) {
	referral, err := s.referralRepo.FindByID(ctx, input.ReferralID)
	if err != nil {
		return nil, shared.NewDomainError("REFERRAL_NOT_FOUND", "Referral not found")
	}
	if referral.ToMediatorID != input.ActorID {
		return nil, shared.NewDomainError("FORBIDDEN", "Only the target mediator can resolve a referral")
	}

	m, err := s.matterRepo.FindByID(ctx, referral.MatterID)
	if err != nil {
		return nil, shared.NewDomainError("MATTER_NOT_FOUND", "Matter not found")
	}

	if input.Accept {
		err = m.AcceptReferral(referral)
	} else {
		err = m.DeclineReferral(referral)
	}
	if err != nil {
		return nil, err
	}

	if err := s.matterRepo.SaveWithLock(ctx, m); err != nil {
		s.logger.Error("Failed to save matter during referral resolution", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to resolve referral")
	}
	if err := s.referralRepo.Save(ctx, referral); err != nil {
		s.logger.Error("Failed to save resolved referral", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to resolve referral")
	}

	s.publishEvents(ctx, m)

	s.logger.Info("Referral resolved",
		zap.String("matter_id", m.ID.String()),
		zap.String("referral_id", referral.ID.String()),
		zap.Bool("accepted", input.Accept))

	return m, nil
}

// ListReferrals lists referrals for a matter the user has access to
func (s *MatterService) ListReferrals(ctx context.Context, userID, matterID uuid.UUID) ([]matter.Referral, error) {
	m, err := s.matterRepo.FindByID(ctx, matterID)
	if err != nil {
		return nil, shared.NewDomainError("MATTER_NOT_FOUND", "Matter not found")
	}
	if !m.IsAccessibleBy(userID) {
		return nil, shared.ErrForbidden
	}
	return s.referralRepo.FindByMatter(ctx, matterID)
}

// ListPendingReferrals lists referrals offered to the mediator
func (s *MatterService) ListPendingReferrals(ctx context.Context, mediatorID uuid.UUID) ([]matter.Referral, error) {
	return s.referralRepo.FindPendingForMediator(ctx, mediatorID, shared.DefaultFilter())
}

// ShareMatter grants another user read access to the matter
func (s *MatterService) ShareMatter(ctx context.Context, input ShareMatterInput) error {
	m, err := s.requireMediator(ctx, input.ActorID, input.MatterID)
	if err != nil {
		return err
	}

	if err := m.ShareWith(input.UserID); err != nil {
		return err
	}

	if err := s.matterRepo.SaveWithLock(ctx, m); err != nil {
		s.logger.Error("Failed to share matter", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to share matter")
	}

	s.publishEvents(ctx, m)
	return nil
}

// UnshareMatter revokes a previously granted share
func (s *MatterService) UnshareMatter(ctx context.Context, input ShareMatterInput) error {
	m, err := s.requireMediator(ctx, input.ActorID, input.MatterID)
	if err != nil {
		return err
	}

	if err := m.Unshare(input.UserID); err != nil {
		return err
	}

	if err := s.matterRepo.SaveWithLock(ctx, m); err != nil {
		s.logger.Error("Failed to unshare matter", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to unshare matter")
	}

	return nil
}

func (s *MatterService) requireMediator(ctx context.Context, actorID, matterID uuid.UUID) (*matter.Matter, error) {
	m, err := s.matterRepo.FindByID(ctx, matterID)
	if err != nil {
		return nil, shared.NewDomainError("MATTER_NOT_FOUND", "Matter not found")
	}
	if m.MediatorID != actorID {
		return nil, shared.NewDomainError("FORBIDDEN", "Only the matter's mediator can perform this action")
	}
	return m, nil
}

func (s *MatterService) publishEvents(ctx context.Context, m *matter.Matter) {
	events := m.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish matter events", zap.Error(err))
	}
	m.ClearDomainEvents()
}

func parseRate(rate, currency string) (valueobject.Money, error) {
	if rate == "" {
		return valueobject.ZeroUSD(), nil
	}
	amount, err := decimal.NewFromString(rate)
	if err != nil {
		return valueobject.Money{}, shared.NewDomainError("INVALID_RATE", "Rate is not a valid amount")
	}
	cur := valueobject.Currency(currency)
	if currency == "" {
		cur = valueobject.DefaultCurrency
	}
	money, err := valueobject.NewMoney(amount, cur)
	if err != nil {
		return valueobject.Money{}, shared.NewDomainError("INVALID_RATE", err.Error())
	}
	return money, nil
}
