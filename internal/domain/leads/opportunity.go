package leads

import (
	"github.com/google/uuid"

	"github.com/lawmatch/backend/internal/domain/shared"
)

// Opportunity is a lightweight contact record a mediator keeps on a
// prospective client before it warrants a full lead
type Opportunity struct {
	shared.BaseEntity
	MediatorID   uuid.UUID  `json:"mediator_id"`
	ClientID     *uuid.UUID `json:"client_id"`
	ContactName  string     `json:"contact_name"`
	ContactEmail string     `json:"contact_email"`
	ContactPhone string     `json:"contact_phone"`
	Note         string     `json:"note"`
	PromotedLead *uuid.UUID `json:"promoted_lead_id"`
}

// NewOpportunity creates a new opportunity record
func NewOpportunity(mediatorID uuid.UUID, contactName, contactEmail, contactPhone, note string) (*Opportunity, error) {
	if mediatorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MEDIATOR", "Mediator ID cannot be empty")
	}
	if contactName == "" {
		return nil, shared.NewDomainError("INVALID_CONTACT", "Contact name cannot be empty")
	}

	return &Opportunity{
		BaseEntity:   shared.NewBaseEntity(),
		MediatorID:   mediatorID,
		ContactName:  contactName,
		ContactEmail: contactEmail,
		ContactPhone: contactPhone,
		Note:         note,
	}, nil
}

// Update edits the contact details
func (o *Opportunity) Update(contactName, contactEmail, contactPhone, note string) error {
	if o.PromotedLead != nil {
		return shared.NewDomainError("INVALID_STATE", "Opportunity has already been promoted to a lead")
	}
	if contactName == "" {
		return shared.NewDomainError("INVALID_CONTACT", "Contact name cannot be empty")
	}
	o.ContactName = contactName
	o.ContactEmail = contactEmail
	o.ContactPhone = contactPhone
	o.Note = note
	o.Touch()
	return nil
}

// LinkClient associates the opportunity with a registered client account
func (o *Opportunity) LinkClient(clientID uuid.UUID) error {
	if clientID == uuid.Nil {
		return shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	o.ClientID = &clientID
	o.Touch()
	return nil
}

// MarkPromoted records the lead this opportunity was promoted into.
// Promotion requires a linked client account.
func (o *Opportunity) MarkPromoted(leadID uuid.UUID) error {
	if o.PromotedLead != nil {
		return shared.NewDomainError("INVALID_STATE", "Opportunity has already been promoted to a lead")
	}
	if o.ClientID == nil {
		return shared.NewDomainError("INVALID_STATE", "Opportunity must be linked to a client before promotion")
	}
	if leadID == uuid.Nil {
		return shared.NewDomainError("INVALID_LEAD", "Lead ID cannot be empty")
	}
	o.PromotedLead = &leadID
	o.Touch()
	return nil
}
