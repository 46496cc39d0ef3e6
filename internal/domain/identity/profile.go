package identity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lawmatch/backend/internal/domain/shared"
	"github.com/lawmatch/backend/internal/domain/shared/valueobject"
)

// ClientKind distinguishes individual clients from firms
type ClientKind string

const (
	ClientKindIndividual ClientKind = "INDIVIDUAL"
	ClientKindFirm       ClientKind = "FIRM"
)

// IsValid checks if the kind is a valid ClientKind
func (k ClientKind) IsValid() bool {
	return k == ClientKindIndividual || k == ClientKindFirm
}

// MediatorProfile holds the professional profile attached 1:1 to a
// mediator or enterprise user
type MediatorProfile struct {
	shared.BaseEntity
	UserID            uuid.UUID         `json:"user_id"`
	FirmName          string            `json:"firm_name"`
	Biography         string            `json:"biography"`
	YearsOfExperience int               `json:"years_of_experience"`
	PracticeAreas     shared.StringList `json:"practice_areas"`
	Jurisdictions     shared.StringList `json:"jurisdictions"`
	HourlyRate        decimal.Decimal   `json:"hourly_rate"`
	Currency          string            `json:"currency"`
	StripeCustomerID  string            `json:"stripe_customer_id"`
	StripeAccountID   string            `json:"stripe_account_id"`
}

// NewMediatorProfile creates a new mediator profile
func NewMediatorProfile(userID uuid.UUID) (*MediatorProfile, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	return &MediatorProfile{
		BaseEntity:    shared.NewBaseEntity(),
		UserID:        userID,
		PracticeAreas: shared.StringList{},
		Jurisdictions: shared.StringList{},
		Currency:      string(valueobject.DefaultCurrency),
	}, nil
}

// Update replaces the editable profile fields
func (p *MediatorProfile) Update(firmName, biography string, years int, practiceAreas, jurisdictions []string) error {
	if years < 0 {
		return shared.NewDomainError("INVALID_EXPERIENCE", "Years of experience cannot be negative")
	}
	p.FirmName = firmName
	p.Biography = biography
	p.YearsOfExperience = years
	p.PracticeAreas = practiceAreas
	p.Jurisdictions = jurisdictions
	p.Touch()
	return nil
}

// SetHourlyRate sets the default billing rate
func (p *MediatorProfile) SetHourlyRate(rate valueobject.Money) error {
	if rate.IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "Hourly rate cannot be negative")
	}
	p.HourlyRate = rate.Amount()
	p.Currency = string(rate.Currency())
	p.Touch()
	return nil
}

// HourlyRateMoney returns the hourly rate as a Money value object
func (p *MediatorProfile) HourlyRateMoney() valueobject.Money {
	m, err := valueobject.NewMoney(p.HourlyRate, valueobject.Currency(p.Currency))
	if err != nil {
		return valueobject.NewMoneyUSD(p.HourlyRate)
	}
	return m
}

// LinkStripe stores the Stripe references created during onboarding
func (p *MediatorProfile) LinkStripe(customerID, accountID string) {
	p.StripeCustomerID = customerID
	p.StripeAccountID = accountID
	p.Touch()
}

// ClientProfile holds the intake details attached 1:1 to a client user
type ClientProfile struct {
	shared.BaseEntity
	UserID           uuid.UUID  `json:"user_id"`
	Kind             ClientKind `json:"kind"`
	OrganizationName string     `json:"organization_name"`
	HelpDescription  string     `json:"help_description"`
}

// NewClientProfile creates a new client profile
func NewClientProfile(userID uuid.UUID, kind ClientKind) (*ClientProfile, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Client kind is not valid")
	}
	return &ClientProfile{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Kind:       kind,
	}, nil
}

// Update replaces the editable intake fields
func (p *ClientProfile) Update(kind ClientKind, organizationName, helpDescription string) error {
	if !kind.IsValid() {
		return shared.NewDomainError("INVALID_KIND", "Client kind is not valid")
	}
	if kind == ClientKindFirm && organizationName == "" {
		return shared.NewDomainError("INVALID_ORGANIZATION", "Organization name is required for firm clients")
	}
	p.Kind = kind
	p.OrganizationName = organizationName
	p.HelpDescription = helpDescription
	p.Touch()
	return nil
}
