package leads

import (
	"github.com/google/uuid"

	"github.com/lawmatch/backend/internal/domain/leads"
	"github.com/lawmatch/backend/internal/domain/matter"
)

// CreateLeadInput contains the input for recording a lead
type CreateLeadInput struct {
	MediatorID uuid.UUID
	ClientID   uuid.UUID
	Source     leads.LeadSource
	Priority   leads.LeadPriority
	Note       string
}

// ListLeadsInput contains the lead listing parameters
type ListLeadsInput struct {
	MediatorID uuid.UUID
	Status     string
	Priority   string
	Page       int
	PageSize   int
}

// ConvertLeadInput contains the input for converting a lead into a matter
type ConvertLeadInput struct {
	ActorID     uuid.UUID
	LeadID      uuid.UUID
	Title       string
	Description string
	RateType    matter.RateType
	Rate        string
	Currency    string
}

// ConvertLeadResult carries the converted lead and the draft matter
type ConvertLeadResult struct {
	Lead   *leads.Lead
	Matter *matter.Matter
}

// CreateOpportunityInput contains the input for an opportunity record
type CreateOpportunityInput struct {
	MediatorID   uuid.UUID
	ContactName  string
	ContactEmail string
	ContactPhone string
	Note         string
}

// UpdateOpportunityInput contains the editable opportunity fields
type UpdateOpportunityInput struct {
	ActorID       uuid.UUID
	OpportunityID uuid.UUID
	ContactName   string
	ContactEmail  string
	ContactPhone  string
	Note          string
}

// PromoteOpportunityInput contains the input for promoting an
// opportunity into a lead
type PromoteOpportunityInput struct {
	ActorID       uuid.UUID
	OpportunityID uuid.UUID
	Priority      leads.LeadPriority
	Note          string
}

// PromoteOpportunityResult carries the promoted opportunity and new lead
type PromoteOpportunityResult struct {
	Opportunity *leads.Opportunity
	Lead        *leads.Lead
}
