package notification

import (
	"time"

	"github.com/google/uuid"

	"github.com/lawmatch/backend/internal/domain/shared"
)

// Kind identifies what a notification is about
type Kind string

const (
	KindMatterShared         Kind = "MATTER_SHARED"
	KindReferralSent         Kind = "REFERRAL_SENT"
	KindReferralAccepted     Kind = "REFERRAL_ACCEPTED"
	KindReferralDeclined     Kind = "REFERRAL_DECLINED"
	KindInvoiceSent          Kind = "INVOICE_SENT"
	KindInvoicePaid          Kind = "INVOICE_PAID"
	KindInvoiceOverdue       Kind = "INVOICE_OVERDUE"
	KindProposalSubmitted    Kind = "PROPOSAL_SUBMITTED"
	KindProposalAccepted     Kind = "PROPOSAL_ACCEPTED"
	KindProposalWithdrawn    Kind = "PROPOSAL_WITHDRAWN"
	KindProposalRevoked      Kind = "PROPOSAL_REVOKED"
	KindTopicReplied         Kind = "TOPIC_REPLIED"
	KindVerificationDecided  Kind = "VERIFICATION_DECIDED"
)

// IsValid checks if the kind is a valid notification Kind
func (k Kind) IsValid() bool {
	switch k {
	case KindMatterShared, KindReferralSent, KindReferralAccepted, KindReferralDeclined,
		KindInvoiceSent, KindInvoicePaid, KindInvoiceOverdue,
		KindProposalSubmitted, KindProposalAccepted, KindProposalWithdrawn, KindProposalRevoked,
		KindTopicReplied, KindVerificationDecided:
		return true
	}
	return false
}

// String returns the string representation of Kind
func (k Kind) String() string {
	return string(k)
}

// Notification represents a message addressed to one user
type Notification struct {
	shared.BaseAggregateRoot
	RecipientID uuid.UUID      `json:"recipient_id"`
	Kind        Kind           `json:"kind"`
	Title       string         `json:"title"`
	Body        string         `json:"body"`
	Payload     shared.JSONMap `json:"payload"`
	Read        bool           `json:"read"`
	ReadAt      *time.Time     `json:"read_at"`
}

// NewNotification creates a new unread notification
func NewNotification(recipientID uuid.UUID, kind Kind, title, body string, payload shared.JSONMap) (*Notification, error) {
	if recipientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RECIPIENT", "Recipient ID cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Notification kind is not valid")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if payload == nil {
		payload = shared.JSONMap{}
	}

	return &Notification{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		RecipientID:       recipientID,
		Kind:              kind,
		Title:             title,
		Body:              body,
		Payload:           payload,
	}, nil
}

// MarkRead marks the notification as read. Reading twice is a no-op.
func (n *Notification) MarkRead() {
	if n.Read {
		return
	}
	now := time.Now()
	n.Read = true
	n.ReadAt = &now
	n.UpdatedAt = now
	n.IncrementVersion()
}

var _ shared.AggregateRoot = (*Notification)(nil)
