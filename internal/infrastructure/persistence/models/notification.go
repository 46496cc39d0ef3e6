package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/lawmatch/backend/internal/domain/notification"
	"github.com/lawmatch/backend/internal/domain/shared"
)

// NotificationModel is the persistence model for notifications.
type NotificationModel struct {
	AggregateModel
	RecipientID uuid.UUID         `gorm:"type:uuid;not null;index"`
	Kind        notification.Kind `gorm:"type:varchar(40);not null"`
	Title       string            `gorm:"type:varchar(255);not null"`
	Body        string            `gorm:"type:text"`
	Payload     shared.JSONMap    `gorm:"type:jsonb;not null;default:'{}'"`
	Read        bool              `gorm:"not null;default:false;index"`
	ReadAt      *time.Time
}

// TableName returns the table name for GORM
func (NotificationModel) TableName() string { return "notifications" }

// ToDomain converts the persistence model to a domain Notification
func (m *NotificationModel) ToDomain() *notification.Notification {
	return &notification.Notification{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		RecipientID:       m.RecipientID,
		Kind:              m.Kind,
		Title:             m.Title,
		Body:              m.Body,
		Payload:           m.Payload,
		Read:              m.Read,
		ReadAt:            m.ReadAt,
	}
}

// FromDomain populates the persistence model from a domain Notification
func (m *NotificationModel) FromDomain(n *notification.Notification) {
	m.FromDomainAggregateRoot(n.BaseAggregateRoot)
	m.RecipientID = n.RecipientID
	m.Kind = n.Kind
	m.Title = n.Title
	m.Body = n.Body
	m.Payload = n.Payload
	m.Read = n.Read
	m.ReadAt = n.ReadAt
}

// DispatchModel is the persistence model for notification dispatches.
type DispatchModel struct {
	BaseModel
	NotificationID uuid.UUID                   `gorm:"type:uuid;not null;index"`
	Channel        notification.Channel        `gorm:"type:varchar(20);not null"`
	Status         notification.DispatchStatus `gorm:"type:varchar(20);not null;index"`
	SentAt         *time.Time
	Error          string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (DispatchModel) TableName() string { return "notification_dispatches" }

// ToDomain converts the persistence model to a domain Dispatch
func (m *DispatchModel) ToDomain() *notification.Dispatch {
	return &notification.Dispatch{
		BaseEntity:     m.BaseModel.ToDomain(),
		NotificationID: m.NotificationID,
		Channel:        m.Channel,
		Status:         m.Status,
		SentAt:         m.SentAt,
		Error:          m.Error,
	}
}

// FromDomain populates the persistence model from a domain Dispatch
func (m *DispatchModel) FromDomain(d *notification.Dispatch) {
	m.FromDomainBaseEntity(d.BaseEntity)
	m.NotificationID = d.NotificationID
	m.Channel = d.Channel
	m.Status = d.Status
	m.SentAt = d.SentAt
	m.Error = d.Error
}
