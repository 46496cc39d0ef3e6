package leads

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lawmatch/backend/internal/domain/leads"
	"github.com/lawmatch/backend/internal/domain/matter"
	"github.com/lawmatch/backend/internal/domain/shared"
	"github.com/lawmatch/backend/internal/domain/shared/valueobject"
)

// LeadService manages a mediator's pipeline of leads and opportunities.
// Converting a lead creates a draft matter with the lead's client.
type LeadService struct {
	leadRepo        leads.LeadRepository
	opportunityRepo leads.OpportunityRepository
	matterRepo      matter.MatterRepository
	eventPublisher  shared.EventPublisher
	logger          *zap.Logger
}

// NewLeadService creates a new lead service
func NewLeadService(
	leadRepo leads.LeadRepository,
	opportunityRepo leads.OpportunityRepository,
	matterRepo matter.MatterRepository,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
) *LeadService {
	return &LeadService{
		leadRepo:        leadRepo,
		opportunityRepo: opportunityRepo,
		matterRepo:      matterRepo,
		eventPublisher:  eventPublisher,
		logger:          logger,
	}
}

// CreateLead records a lead. One active lead per mediator-client pair.
func (s *LeadService) CreateLead(ctx context.Context, input CreateLeadInput) (*leads.Lead, error) {
	if existing, err := s.leadRepo.FindActiveByParties(ctx, input.MediatorID, input.ClientID); err == nil && existing != nil {
		return nil, shared.NewDomainError("LEAD_ALREADY_ACTIVE", "An active lead with this client already exists")
	}

	lead, err := leads.NewLead(input.MediatorID, input.ClientID, input.Source, input.Priority, input.Note)
	if err != nil {
		return nil, err
	}

	if err := s.leadRepo.Save(ctx, lead); err != nil {
		s.logger.Error("Failed to save lead", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create lead")
	}

	s.logger.Info("Lead created",
		zap.String("lead_id", lead.ID.String()),
		zap.String("mediator_id", input.MediatorID.String()),
		zap.String("source", string(input.Source)))

	return lead, nil
}

// GetLead returns a single lead owned by the actor
func (s *LeadService) GetLead(ctx context.Context, actorID, leadID uuid.UUID) (*leads.Lead, error) {
	return s.requireLeadOwner(ctx, actorID, leadID)
}

// ListLeads lists the mediator's leads with optional status and
// priority filters
func (s *LeadService) ListLeads(ctx context.Context, input ListLeadsInput) ([]leads.Lead, int64, error) {
	filter := leads.LeadFilter{
		Filter:     shared.Filter{Page: input.Page, PageSize: input.PageSize},
		MediatorID: &input.MediatorID,
	}
	if input.Status != "" {
		status := leads.LeadStatus(input.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_STATUS", "Lead status is not valid")
		}
		filter.Status = &status
	}
	if input.Priority != "" {
		priority := leads.LeadPriority(input.Priority)
		if !priority.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_PRIORITY", "Lead priority is not valid")
		}
		filter.Priority = &priority
	}

	result, err := s.leadRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list leads")
	}
	total, err := s.leadRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to count leads")
	}
	return result, total, nil
}

// SetPriority reprioritizes an active lead
func (s *LeadService) SetPriority(ctx context.Context, actorID, leadID uuid.UUID, priority leads.LeadPriority) (*leads.Lead, error) {
	lead, err := s.requireLeadOwner(ctx, actorID, leadID)
	if err != nil {
		return nil, err
	}

	if err := lead.SetPriority(priority); err != nil {
		return nil, err
	}

	if err := s.leadRepo.SaveWithLock(ctx, lead); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update lead")
	}
	return lead, nil
}

// UpdateNote replaces the lead's working note
func (s *LeadService) UpdateNote(ctx context.Context, actorID, leadID uuid.UUID, note string) (*leads.Lead, error) {
	lead, err := s.requireLeadOwner(ctx, actorID, leadID)
	if err != nil {
		return nil, err
	}

	if err := lead.UpdateNote(note); err != nil {
		return nil, err
	}

	if err := s.leadRepo.SaveWithLock(ctx, lead); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update lead")
	}
	return lead, nil
}

// ConvertLead turns an active lead into a draft matter with the lead's
// client and marks the lead converted.
func (s *LeadService) ConvertLead(ctx context.Context, input ConvertLeadInput) (*ConvertLeadResult, error) {
	lead, err := s.requireLeadOwner(ctx, input.ActorID, input.LeadID)
	if err != nil {
		return nil, err
	}

	rate, err := parseRate(input.Rate, input.Currency)
	if err != nil {
		return nil, err
	}

	number, err := s.matterRepo.NextNumber(ctx)
	if err != nil {
		s.logger.Error("Failed to allocate matter number", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to convert lead")
	}

	m, err := matter.NewMatter(number, lead.MediatorID, lead.ClientID, input.Title, input.Description, input.RateType, rate)
	if err != nil {
		return nil, err
	}

	if err := lead.Convert(m.ID); err != nil {
		return nil, err
	}

	if err := s.matterRepo.Save(ctx, m); err != nil {
		s.logger.Error("Failed to save matter from lead", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create matter from lead")
	}
	if err := s.leadRepo.SaveWithLock(ctx, lead); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to convert lead")
	}

	s.publishEvents(ctx, m)

	s.logger.Info("Lead converted",
		zap.String("lead_id", lead.ID.String()),
		zap.String("matter_number", m.Number))

	return &ConvertLeadResult{Lead: lead, Matter: m}, nil
}

// CloseLead ends an active lead without conversion
func (s *LeadService) CloseLead(ctx context.Context, actorID, leadID uuid.UUID) (*leads.Lead, error) {
	lead, err := s.requireLeadOwner(ctx, actorID, leadID)
	if err != nil {
		return nil, err
	}

	if err := lead.Close(); err != nil {
		return nil, err
	}

	if err := s.leadRepo.SaveWithLock(ctx, lead); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to close lead")
	}
	return lead, nil
}

// CreateOpportunity records a contact that is not yet worth a lead
func (s *LeadService) CreateOpportunity(ctx context.Context, input CreateOpportunityInput) (*leads.Opportunity, error) {
	opp, err := leads.NewOpportunity(input.MediatorID, input.ContactName, input.ContactEmail, input.ContactPhone, input.Note)
	if err != nil {
		return nil, err
	}

	if err := s.opportunityRepo.Save(ctx, opp); err != nil {
		s.logger.Error("Failed to save opportunity", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create opportunity")
	}
	return opp, nil
}

// ListOpportunities lists the mediator's opportunities
func (s *LeadService) ListOpportunities(ctx context.Context, mediatorID uuid.UUID, page, pageSize int) ([]leads.Opportunity, int64, error) {
	result, total, err := s.opportunityRepo.FindByMediator(ctx, mediatorID, shared.Filter{Page: page, PageSize: pageSize})
	if err != nil {
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list opportunities")
	}
	return result, total, nil
}

// UpdateOpportunity edits the opportunity's contact details
func (s *LeadService) UpdateOpportunity(ctx context.Context, input UpdateOpportunityInput) (*leads.Opportunity, error) {
	opp, err := s.requireOpportunityOwner(ctx, input.ActorID, input.OpportunityID)
	if err != nil {
		return nil, err
	}

	if err := opp.Update(input.ContactName, input.ContactEmail, input.ContactPhone, input.Note); err != nil {
		return nil, err
	}

	if err := s.opportunityRepo.Save(ctx, opp); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update opportunity")
	}
	return opp, nil
}

// LinkOpportunityClient associates the opportunity with a registered
// client account
func (s *LeadService) LinkOpportunityClient(ctx context.Context, actorID, opportunityID, clientID uuid.UUID) (*leads.Opportunity, error) {
	opp, err := s.requireOpportunityOwner(ctx, actorID, opportunityID)
	if err != nil {
		return nil, err
	}

	if err := opp.LinkClient(clientID); err != nil {
		return nil, err
	}

	if err := s.opportunityRepo.Save(ctx, opp); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to link client")
	}
	return opp, nil
}

// PromoteOpportunity turns a client-linked opportunity into a direct lead
func (s *LeadService) PromoteOpportunity(ctx context.Context, input PromoteOpportunityInput) (*PromoteOpportunityResult, error) {
	opp, err := s.requireOpportunityOwner(ctx, input.ActorID, input.OpportunityID)
	if err != nil {
		return nil, err
	}
	if opp.ClientID == nil {
		return nil, shared.NewDomainError("INVALID_STATE", "Opportunity must be linked to a client before promotion")
	}

	note := input.Note
	if note == "" {
		note = opp.Note
	}

	lead, err := s.CreateLead(ctx, CreateLeadInput{
		MediatorID: opp.MediatorID,
		ClientID:   *opp.ClientID,
		Source:     leads.LeadSourceDirect,
		Priority:   input.Priority,
		Note:       note,
	})
	if err != nil {
		return nil, err
	}

	if err := opp.MarkPromoted(lead.ID); err != nil {
		return nil, err
	}
	if err := s.opportunityRepo.Save(ctx, opp); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to promote opportunity")
	}

	s.logger.Info("Opportunity promoted",
		zap.String("opportunity_id", opp.ID.String()),
		zap.String("lead_id", lead.ID.String()))

	return &PromoteOpportunityResult{Opportunity: opp, Lead: lead}, nil
}

// DeleteOpportunity removes an opportunity record
func (s *LeadService) DeleteOpportunity(ctx context.Context, actorID, opportunityID uuid.UUID) error {
	if _, err := s.requireOpportunityOwner(ctx, actorID, opportunityID); err != nil {
		return err
	}

	if err := s.opportunityRepo.Delete(ctx, opportunityID); err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete opportunity")
	}
	return nil
}

func (s *LeadService) requireLeadOwner(ctx context.Context, actorID, leadID uuid.UUID) (*leads.Lead, error) {
	lead, err := s.leadRepo.FindByID(ctx, leadID)
	if err != nil {
		return nil, shared.NewDomainError("LEAD_NOT_FOUND", "Lead not found")
	}
	if lead.MediatorID != actorID {
		return nil, shared.NewDomainError("FORBIDDEN", "Lead belongs to another mediator")
	}
	return lead, nil
}

func (s *LeadService) requireOpportunityOwner(ctx context.Context, actorID, opportunityID uuid.UUID) (*leads.Opportunity, error) {
	opp, err := s.opportunityRepo.FindByID(ctx, opportunityID)
	if err != nil {
		return nil, shared.NewDomainError("OPPORTUNITY_NOT_FOUND", "Opportunity not found")
	}
	if opp.MediatorID != actorID {
		return nil, shared.NewDomainError("FORBIDDEN", "Opportunity belongs to another mediator")
	}
	return opp, nil
}

func (s *LeadService) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
	events := aggregate.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish lead events", zap.Error(err))
	}
	aggregate.ClearDomainEvents()
}

func parseRate(amount, currency string) (valueobject.Money, error) {
	if amount == "" {
		return valueobject.ZeroUSD(), nil
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return valueobject.Money{}, shared.NewDomainError("INVALID_RATE", "Rate must be a valid decimal number")
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
