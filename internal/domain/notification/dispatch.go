package notification

import (
	"time"

	"github.com/google/uuid"

	"github.com/lawmatch/backend/internal/domain/shared"
)

// Channel is a delivery channel for notifications
type Channel string

const (
	ChannelInApp Channel = "INAPP"
	ChannelEmail Channel = "EMAIL"
	ChannelPush  Channel = "PUSH"
)

// IsValid checks if the channel is a valid Channel
func (c Channel) IsValid() bool {
	switch c {
	case ChannelInApp, ChannelEmail, ChannelPush:
		return true
	}
	return false
}

// String returns the string representation of Channel
func (c Channel) String() string {
	return string(c)
}

// DispatchStatus represents the delivery state on one channel
type DispatchStatus string

const (
	DispatchStatusPending DispatchStatus = "PENDING"
	DispatchStatusSent    DispatchStatus = "SENT"
	DispatchStatusFailed  DispatchStatus = "FAILED"
)

// IsValid checks if the status is a valid DispatchStatus
func (s DispatchStatus) IsValid() bool {
	switch s {
	case DispatchStatusPending, DispatchStatusSent, DispatchStatusFailed:
		return true
	}
	return false
}

// Dispatch records one delivery attempt of a notification on a channel
type Dispatch struct {
	shared.BaseEntity
	NotificationID uuid.UUID      `json:"notification_id"`
	Channel        Channel        `json:"channel"`
	Status         DispatchStatus `json:"status"`
	SentAt         *time.Time     `json:"sent_at"`
	Error          string         `json:"error"`
}

// NewDispatch creates a pending dispatch record
func NewDispatch(notificationID uuid.UUID, channel Channel) (*Dispatch, error) {
	if notificationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_NOTIFICATION", "Notification ID cannot be empty")
	}
	if !channel.IsValid() {
		return nil, shared.NewDomainError("INVALID_CHANNEL", "Delivery channel is not valid")
	}
	return &Dispatch{
		BaseEntity:     shared.NewBaseEntity(),
		NotificationID: notificationID,
		Channel:        channel,
		Status:         DispatchStatusPending,
	}, nil
}

// MarkSent records a successful delivery
func (d *Dispatch) MarkSent() {
	now := time.Now()
	d.Status = DispatchStatusSent
	d.SentAt = &now
	d.Error = ""
	d.UpdatedAt = now
}

// MarkFailed records a failed delivery with the error text
func (d *Dispatch) MarkFailed(errText string) {
	d.Status = DispatchStatusFailed
	d.Error = errText
	d.UpdatedAt = time.Now()
}
