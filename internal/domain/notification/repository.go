package notification

import (
	"context"

	"github.com/google/uuid"

	"github.com/lawmatch/backend/internal/domain/shared"
)

// NotificationFilter defines filtering options for notification queries
type NotificationFilter struct {
	shared.Filter
	RecipientID *uuid.UUID
	Kind        *Kind
	Unread      *bool
}

// NotificationRepository defines the interface for notification persistence
type NotificationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)

	// FindAll finds notifications with filtering
	FindAll(ctx context.Context, filter NotificationFilter) ([]Notification, error)

	// CountUnread counts unread notifications for a recipient
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error)

	// Count counts notifications matching the filter
	Count(ctx context.Context, filter NotificationFilter) (int64, error)

	// MarkAllRead marks every unread notification for the recipient as read
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) error

	Save(ctx context.Context, n *Notification) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DispatchRepository defines the interface for dispatch persistence
type DispatchRepository interface {
	FindByNotification(ctx context.Context, notificationID uuid.UUID) ([]Dispatch, error)
	Save(ctx context.Context, d *Dispatch) error
}
