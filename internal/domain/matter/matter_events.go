package matter

import (
	"time"

	"github.com/google/uuid"

	"github.com/lawmatch/backend/internal/domain/shared"
)

// MatterCreatedEvent is raised when a new matter is created
type MatterCreatedEvent struct {
	shared.BaseDomainEvent
	MatterID   uuid.UUID `json:"matter_id"`
	Number     string    `json:"number"`
	MediatorID uuid.UUID `json:"mediator_id"`
	ClientID   uuid.UUID `json:"client_id"`
	Title      string    `json:"title"`
}

// EventType returns the event type name
func (e *MatterCreatedEvent) EventType() string {
	return "MatterCreated"
}

// NewMatterCreatedEvent creates a new MatterCreatedEvent
func NewMatterCreatedEvent(m *Matter) *MatterCreatedEvent {
	return &MatterCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("MatterCreated", "Matter", m.ID),
		MatterID:        m.ID,
		Number:          m.Number,
		MediatorID:      m.MediatorID,
		ClientID:        m.ClientID,
		Title:           m.Title,
	}
}

// MatterOpenedEvent is raised when a matter moves from draft to open
type MatterOpenedEvent struct {
	shared.BaseDomainEvent
	MatterID   uuid.UUID `json:"matter_id"`
	Number     string    `json:"number"`
	MediatorID uuid.UUID `json:"mediator_id"`
	ClientID   uuid.UUID `json:"client_id"`
	OpenedAt   time.Time `json:"opened_at"`
}

// EventType returns the event type name
func (e *MatterOpenedEvent) EventType() string {
	return "MatterOpened"
}

// NewMatterOpenedEvent creates a new MatterOpenedEvent
func NewMatterOpenedEvent(m *Matter) *MatterOpenedEvent {
	openedAt := time.Now()
	if m.OpenedAt != nil {
		openedAt = *m.OpenedAt
	}
	return &MatterOpenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("MatterOpened", "Matter", m.ID),
		MatterID:        m.ID,
		Number:          m.Number,
		MediatorID:      m.MediatorID,
		ClientID:        m.ClientID,
		OpenedAt:        openedAt,
	}
}

// MatterClosedEvent is raised when a matter is closed
type MatterClosedEvent struct {
	shared.BaseDomainEvent
	MatterID   uuid.UUID `json:"matter_id"`
	Number     string    `json:"number"`
	MediatorID uuid.UUID `json:"mediator_id"`
	ClientID   uuid.UUID `json:"client_id"`
	Reason     string    `json:"reason"`
	ClosedAt   time.Time `json:"closed_at"`
}

// EventType returns the event type name
func (e *MatterClosedEvent) EventType() string {
	return "MatterClosed"
}

// NewMatterClosedEvent creates a new MatterClosedEvent
func NewMatterClosedEvent(m *Matter) *MatterClosedEvent {
	closedAt := time.Now()
	if m.ClosedAt != nil {
		closedAt = *m.ClosedAt
	}
	return &MatterClosedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("MatterClosed", "Matter", m.ID),
		MatterID:        m.ID,
		Number:          m.Number,
		MediatorID:      m.MediatorID,
		ClientID:        m.ClientID,
		Reason:          m.CloseReason,
		ClosedAt:        closedAt,
	}
}

// MatterReferralSentEvent is raised when a referral hand-off is offered
type MatterReferralSentEvent struct {
	shared.BaseDomainEvent
	MatterID       uuid.UUID `json:"matter_id"`
	Number         string    `json:"number"`
	ReferralID     uuid.UUID `json:"referral_id"`
	FromMediatorID uuid.UUID `json:"from_mediator_id"`
	ToMediatorID   uuid.UUID `json:"to_mediator_id"`
	Message        string    `json:"message"`
}

// EventType returns the event type name
func (e *MatterReferralSentEvent) EventType() string {
	return "MatterReferralSent"
}

// NewMatterReferralSentEvent creates a new MatterReferralSentEvent
func NewMatterReferralSentEvent(m *Matter, r *Referral) *MatterReferralSentEvent {
	return &MatterReferralSentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("MatterReferralSent", "Matter", m.ID),
		MatterID:        m.ID,
		Number:          m.Number,
		ReferralID:      r.ID,
		FromMediatorID:  r.FromMediatorID,
		ToMediatorID:    r.ToMediatorID,
		Message:         r.Message,
	}
}

// MatterReferralAcceptedEvent is raised when a referral is accepted and
// the matter is reassigned
type MatterReferralAcceptedEvent struct {
	shared.BaseDomainEvent
	MatterID       uuid.UUID `json:"matter_id"`
	Number         string    `json:"number"`
	ReferralID     uuid.UUID `json:"referral_id"`
	FromMediatorID uuid.UUID `json:"from_mediator_id"`
	ToMediatorID   uuid.UUID `json:"to_mediator_id"`
}

// EventType returns the event type name
func (e *MatterReferralAcceptedEvent) EventType() string {
	return "MatterReferralAccepted"
}

// NewMatterReferralAcceptedEvent creates a new MatterReferralAcceptedEvent
func NewMatterReferralAcceptedEvent(m *Matter, r *Referral) *MatterReferralAcceptedEvent {
	return &MatterReferralAcceptedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("MatterReferralAccepted", "Matter", m.ID),
		MatterID:        m.ID,
		Number:          m.Number,
		ReferralID:      r.ID,
		FromMediatorID:  r.FromMediatorID,
		ToMediatorID:    r.ToMediatorID,
	}
}

// MatterReferralDeclinedEvent is raised when a referral is declined
type MatterReferralDeclinedEvent struct {
	shared.BaseDomainEvent
	MatterID       uuid.UUID `json:"matter_id"`
	Number         string    `json:"number"`
	ReferralID     uuid.UUID `json:"referral_id"`
	FromMediatorID uuid.UUID `json:"from_mediator_id"`
	ToMediatorID   uuid.UUID `json:"to_mediator_id"`
}

// EventType returns the event type name
func (e *MatterReferralDeclinedEvent) EventType() string {
	return "MatterReferralDeclined"
}

// NewMatterReferralDeclinedEvent creates a new MatterReferralDeclinedEvent
func NewMatterReferralDeclinedEvent(m *Matter, r *Referral) *MatterReferralDeclinedEvent {
	return &MatterReferralDeclinedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("MatterReferralDeclined", "Matter", m.ID),
		MatterID:        m.ID,
		Number:          m.Number,
		ReferralID:      r.ID,
		FromMediatorID:  r.FromMediatorID,
		ToMediatorID:    r.ToMediatorID,
	}
}

// MatterSharedEvent is raised when a matter is shared with another user
type MatterSharedEvent struct {
	shared.BaseDomainEvent
	MatterID     uuid.UUID `json:"matter_id"`
	Number       string    `json:"number"`
	SharedWithID uuid.UUID `json:"shared_with_id"`
	MediatorID   uuid.UUID `json:"mediator_id"`
}

// EventType returns the event type name
func (e *MatterSharedEvent) EventType() string {
	return "MatterShared"
}

// NewMatterSharedEvent creates a new MatterSharedEvent
func NewMatterSharedEvent(m *Matter, sharedWithID uuid.UUID) *MatterSharedEvent {
	return &MatterSharedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("MatterShared", "Matter", m.ID),
		MatterID:        m.ID,
		Number:          m.Number,
		SharedWithID:    sharedWithID,
		MediatorID:      m.MediatorID,
	}
}
