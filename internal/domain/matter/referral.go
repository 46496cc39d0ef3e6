package matter

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lawmatch/backend/internal/domain/shared"
)

// ReferralStatus represents the state of a referral hand-off
type ReferralStatus string

const (
	ReferralStatusPending  ReferralStatus = "PENDING"
	ReferralStatusAccepted ReferralStatus = "ACCEPTED"
	ReferralStatusDeclined ReferralStatus = "DECLINED"
)

// IsValid checks if the status is a valid ReferralStatus
func (s ReferralStatus) IsValid() bool {
	switch s {
	case ReferralStatusPending, ReferralStatusAccepted, ReferralStatusDeclined:
		return true
	}
	return false
}

// String returns the string representation of ReferralStatus
func (s ReferralStatus) String() string {
	return string(s)
}

// IsResolved returns true once the referral has been accepted or declined
func (s ReferralStatus) IsResolved() bool {
	return s == ReferralStatusAccepted || s == ReferralStatusDeclined
}

// Referral records a matter hand-off offer from one mediator to another.
// A matter carries at most one pending referral at a time.
type Referral struct {
	shared.BaseEntity
	MatterID       uuid.UUID      `json:"matter_id"`
	FromMediatorID uuid.UUID      `json:"from_mediator_id"`
	ToMediatorID   uuid.UUID      `json:"to_mediator_id"`
	Message        string         `json:"message"`
	Status         ReferralStatus `json:"status"`
	ResolvedAt     *time.Time     `json:"resolved_at"`
}

// NewReferral creates a new pending referral
func NewReferral(matterID, fromMediatorID, toMediatorID uuid.UUID, message string) (*Referral, error) {
	if matterID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MATTER", "Matter ID cannot be empty")
	}
	if fromMediatorID == uuid.Nil || toMediatorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MEDIATOR", "Mediator IDs cannot be empty")
	}
	if fromMediatorID == toMediatorID {
		return nil, shared.NewDomainError("INVALID_MEDIATOR", "Cannot refer a matter to yourself")
	}

	return &Referral{
		BaseEntity:     shared.NewBaseEntity(),
		MatterID:       matterID,
		FromMediatorID: fromMediatorID,
		ToMediatorID:   toMediatorID,
		Message:        message,
		Status:         ReferralStatusPending,
	}, nil
}

// Accept marks the referral as accepted
func (r *Referral) Accept() error {
	if r.Status != ReferralStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot accept referral in %s status", r.Status))
	}
	now := time.Now()
	r.Status = ReferralStatusAccepted
	r.ResolvedAt = &now
	r.UpdatedAt = now
	return nil
}

// Decline marks the referral as declined
func (r *Referral) Decline() error {
	if r.Status != ReferralStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot decline referral in %s status", r.Status))
	}
	now := time.Now()
	r.Status = ReferralStatusDeclined
	r.ResolvedAt = &now
	r.UpdatedAt = now
	return nil
}
