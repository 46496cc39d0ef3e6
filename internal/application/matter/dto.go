package matter

import (
	"github.com/google/uuid"

	"github.com/lawmatch/backend/internal/domain/matter"
)

// CreateMatterInput contains the input for creating a draft matter
type CreateMatterInput struct {
	MediatorID  uuid.UUID
	ClientID    uuid.UUID
	Title       string
	Description string
	RateType    matter.RateType
	Rate        string
	Currency    string
	City        string
	State       string
	Country     string
}

// UpdateMatterInput contains the editable matter fields
type UpdateMatterInput struct {
	ActorID     uuid.UUID
	MatterID    uuid.UUID
	Title       string
	Description string
	City        string
	State       string
	Country     string
}

// CloseMatterInput contains the input for closing a matter
type CloseMatterInput struct {
	ActorID  uuid.UUID
	MatterID uuid.UUID
	Reason   string
}

// SendReferralInput contains the input for a referral hand-off
type SendReferralInput struct {
	ActorID      uuid.UUID
	MatterID     uuid.UUID
	ToMediatorID uuid.UUID
	Message      string
}

// ResolveReferralInput contains the input for accepting or declining a referral
type ResolveReferralInput struct {
	ActorID    uuid.UUID
	ReferralID uuid.UUID
	Accept     bool
}

// ShareMatterInput contains the input for sharing a matter with another user
type ShareMatterInput struct {
	ActorID  uuid.UUID
	MatterID uuid.UUID
	UserID   uuid.UUID
}

// ListMattersInput contains the matter listing parameters
type ListMattersInput struct {
	UserID   uuid.UUID
	Status   *matter.MatterStatus
	Page     int
	PageSize int
}
