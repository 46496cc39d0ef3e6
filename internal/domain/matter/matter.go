package matter

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lawmatch/backend/internal/domain/shared"
	"github.com/lawmatch/backend/internal/domain/shared/valueobject"
)

// MatterStatus represents the lifecycle status of a matter
type MatterStatus string

const (
	MatterStatusDraft    MatterStatus = "DRAFT"    // Created, not yet opened for work
	MatterStatusOpen     MatterStatus = "OPEN"     // Active engagement
	MatterStatusReferral MatterStatus = "REFERRAL" // Hand-off to another mediator pending
	MatterStatusClosed   MatterStatus = "CLOSED"   // Terminal
)

// IsValid checks if the status is a valid MatterStatus
func (s MatterStatus) IsValid() bool {
	switch s {
	case MatterStatusDraft, MatterStatusOpen, MatterStatusReferral, MatterStatusClosed:
		return true
	}
	return false
}

// String returns the string representation of MatterStatus
func (s MatterStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the matter is in a terminal state
func (s MatterStatus) IsTerminal() bool {
	return s == MatterStatusClosed
}

// RateType represents how an engagement is billed
type RateType string

const (
	RateTypeHourly      RateType = "HOURLY"
	RateTypeFixed       RateType = "FIXED"
	RateTypeContingency RateType = "CONTINGENCY"
	RateTypeAlternative RateType = "ALTERNATIVE"
)

// IsValid checks if the rate type is valid
func (r RateType) IsValid() bool {
	switch r {
	case RateTypeHourly, RateTypeFixed, RateTypeContingency, RateTypeAlternative:
		return true
	}
	return false
}

// String returns the string representation of RateType
func (r RateType) String() string {
	return string(r)
}

// Matter represents a mediation engagement aggregate root.
// A matter is created as a draft, opened when work begins, may pass
// through a referral hand-off to another mediator, and ends closed.
type Matter struct {
	shared.BaseAggregateRoot
	Number      string          `json:"number"`
	MediatorID  uuid.UUID       `json:"mediator_id"`
	ClientID    uuid.UUID       `json:"client_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	RateType    RateType        `json:"rate_type"`
	Rate        decimal.Decimal `json:"rate"`
	Currency    string          `json:"currency"`
	City        string          `json:"city"`
	State       string          `json:"state"`
	Country     string          `json:"country"`
	Status      MatterStatus    `json:"status"`
	SharedWith  shared.UUIDList `json:"shared_with"`
	OpenedAt    *time.Time      `json:"opened_at"`
	ClosedAt    *time.Time      `json:"closed_at"`
	CloseReason string          `json:"close_reason"`
}

// NewMatter creates a new matter in draft status
func NewMatter(
	number string,
	mediatorID, clientID uuid.UUID,
	title, description string,
	rateType RateType,
	rate valueobject.Money,
) (*Matter, error) {
	if number == "" || !strings.HasPrefix(number, "MAT-") {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Matter number must carry the MAT- prefix")
	}
	if mediatorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MEDIATOR", "Mediator ID cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if mediatorID == clientID {
		return nil, shared.NewDomainError("INVALID_PARTIES", "Mediator and client must be different users")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 200 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 200 characters")
	}
	if !rateType.IsValid() {
		return nil, shared.NewDomainError("INVALID_RATE_TYPE", "Rate type is not valid")
	}
	if rate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Rate cannot be negative")
	}

	m := &Matter{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		MediatorID:        mediatorID,
		ClientID:          clientID,
		Title:             title,
		Description:       description,
		RateType:          rateType,
		Rate:              rate.Amount(),
		Currency:          string(rate.Currency()),
		Status:            MatterStatusDraft,
		SharedWith:        shared.UUIDList{},
	}

	m.AddDomainEvent(NewMatterCreatedEvent(m))

	return m, nil
}

// RateMoney returns the rate as a Money value object
func (m *Matter) RateMoney() valueobject.Money {
	money, err := valueobject.NewMoney(m.Rate, valueobject.Currency(m.Currency))
	if err != nil {
		return valueobject.NewMoneyUSD(m.Rate)
	}
	return money
}

// SetLocation sets the matter's venue
func (m *Matter) SetLocation(city, state, country string) {
	m.City = city
	m.State = state
	m.Country = country
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// UpdateDetails updates title and description while the matter is not closed
func (m *Matter) UpdateDetails(title, description string) error {
	if m.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot update a closed matter")
	}
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	m.Title = title
	m.Description = description
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
	return nil
}

// Open transitions the matter from draft to open
func (m *Matter) Open() error {
	if m.Status != MatterStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot open matter in %s status", m.Status))
	}

	now := time.Now()
	m.Status = MatterStatusOpen
	m.OpenedAt = &now
	m.UpdatedAt = now
	m.IncrementVersion()

	m.AddDomainEvent(NewMatterOpenedEvent(m))

	return nil
}

// Close transitions the matter from open to closed. Closed is terminal.
func (m *Matter) Close(reason string) error {
	if m.Status != MatterStatusOpen {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot close matter in %s status", m.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Close reason is required")
	}

	now := time.Now()
	m.Status = MatterStatusClosed
	m.ClosedAt = &now
	m.CloseReason = reason
	m.UpdatedAt = now
	m.IncrementVersion()

	m.AddDomainEvent(NewMatterClosedEvent(m))

	return nil
}

// SendReferral moves the matter into the referral hand-off state and
// returns the pending Referral record. Only the current mediator may
// refer, and not to themselves.
func (m *Matter) SendReferral(fromMediatorID, toMediatorID uuid.UUID, message string) (*Referral, error) {
	if m.Status != MatterStatusOpen {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot refer matter in %s status", m.Status))
	}
	if fromMediatorID != m.MediatorID {
		return nil, shared.NewDomainError("FORBIDDEN", "Only the current mediator can send a referral")
	}
	if toMediatorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MEDIATOR", "Target mediator ID cannot be empty")
	}
	if toMediatorID == m.MediatorID {
		return nil, shared.NewDomainError("INVALID_MEDIATOR", "Cannot refer a matter to yourself")
	}

	referral, err := NewReferral(m.ID, fromMediatorID, toMediatorID, message)
	if err != nil {
		return nil, err
	}

	m.Status = MatterStatusReferral
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	m.AddDomainEvent(NewMatterReferralSentEvent(m, referral))

	return referral, nil
}

// AcceptReferral resolves the pending referral, reassigning the matter to
// the target mediator and returning it to open
func (m *Matter) AcceptReferral(referral *Referral) error {
	if m.Status != MatterStatusReferral {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot accept referral for matter in %s status", m.Status))
	}
	if referral.MatterID != m.ID {
		return shared.NewDomainError("INVALID_REFERRAL", "Referral does not belong to this matter")
	}
	if err := referral.Accept(); err != nil {
		return err
	}

	m.MediatorID = referral.ToMediatorID
	m.Status = MatterStatusOpen
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	m.AddDomainEvent(NewMatterReferralAcceptedEvent(m, referral))

	return nil
}

// DeclineReferral resolves the pending referral, keeping the current
// mediator and returning the matter to open
func (m *Matter) DeclineReferral(referral *Referral) error {
	if m.Status != MatterStatusReferral {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot decline referral for matter in %s status", m.Status))
	}
	if referral.MatterID != m.ID {
		return shared.NewDomainError("INVALID_REFERRAL", "Referral does not belong to this matter")
	}
	if err := referral.Decline(); err != nil {
		return err
	}

	m.Status = MatterStatusOpen
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	m.AddDomainEvent(NewMatterReferralDeclinedEvent(m, referral))

	return nil
}

// ShareWith grants another user read access to the matter
func (m *Matter) ShareWith(userID uuid.UUID) error {
	if m.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot share a closed matter")
	}
	if userID == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if userID == m.MediatorID || userID == m.ClientID {
		return shared.NewDomainError("INVALID_USER", "Matter parties already have access")
	}
	if m.SharedWith.Contains(userID) {
		return shared.NewDomainError("ALREADY_EXISTS", "Matter is already shared with this user")
	}

	m.SharedWith = append(m.SharedWith, userID)
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	m.AddDomainEvent(NewMatterSharedEvent(m, userID))

	return nil
}

// Unshare revokes a previously granted share
func (m *Matter) Unshare(userID uuid.UUID) error {
	if m.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify sharing on a closed matter")
	}
	if !m.SharedWith.Contains(userID) {
		return shared.NewDomainError("NOT_FOUND", "Matter is not shared with this user")
	}

	m.SharedWith = m.SharedWith.Remove(userID)
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	return nil
}

// IsAccessibleBy reports whether the user is a party to or was shared the matter
func (m *Matter) IsAccessibleBy(userID uuid.UUID) bool {
	return userID == m.MediatorID || userID == m.ClientID || m.SharedWith.Contains(userID)
}

var _ shared.AggregateRoot = (*Matter)(nil)
