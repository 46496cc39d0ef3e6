package notification

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lawmatch/backend/internal/domain/notification"
	"github.com/lawmatch/backend/internal/domain/shared"
)

// ListInput contains the notification listing parameters
type ListInput struct {
	RecipientID uuid.UUID
	UnreadOnly  bool
	Page        int
	PageSize    int
}

// NotificationService exposes a user's notification feed
type NotificationService struct {
	notificationRepo notification.NotificationRepository
	dispatchRepo     notification.DispatchRepository
	logger           *zap.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(
	notificationRepo notification.NotificationRepository,
	dispatchRepo notification.DispatchRepository,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		dispatchRepo:     dispatchRepo,
		logger:           logger,
	}
}

// List returns the recipient's notifications, newest first
func (s *NotificationService) List(ctx context.Context, input ListInput) ([]notification.Notification, int64, error) {
	filter := notification.NotificationFilter{
		Filter:      shared.Filter{Page: input.Page, PageSize: input.PageSize, OrderBy: "created_at", OrderDir: "desc"},
		RecipientID: &input.RecipientID,
	}
	if input.UnreadOnly {
		unread := true
		filter.Unread = &unread
	}

	items, err := s.notificationRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list notifications")
	}
	total, err := s.notificationRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to count notifications")
	}
	return items, total, nil
}

// CountUnread returns the recipient's unread badge count
func (s *NotificationService) CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	count, err := s.notificationRepo.CountUnread(ctx, recipientID)
	if err != nil {
		return 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to count unread notifications")
	}
	return count, nil
}

// MarkRead marks one notification as read. Reading twice is a no-op.
func (s *NotificationService) MarkRead(ctx context.Context, actorID, notificationID uuid.UUID) (*notification.Notification, error) {
	n, err := s.notificationRepo.FindByID(ctx, notificationID)
	if err != nil {
		return nil, shared.NewDomainError("NOTIFICATION_NOT_FOUND", "Notification not found")
	}
	if n.RecipientID != actorID {
		return nil, shared.NewDomainError("FORBIDDEN", "Notification belongs to another user")
	}

	if n.Read {
		return n, nil
	}

	n.MarkRead()
	if err := s.notificationRepo.Save(ctx, n); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to mark notification read")
	}
	return n, nil
}

// MarkAllRead clears the recipient's unread backlog
func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID uuid.UUID) error {
	if err := s.notificationRepo.MarkAllRead(ctx, recipientID); err != nil {
		s.logger.Error("Failed to mark all notifications read",
			zap.String("recipient_id", recipientID.String()),
			zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to mark notifications read")
	}
	return nil
}

// ListDispatches returns the delivery attempts for a notification
func (s *NotificationService) ListDispatches(ctx context.Context, actorID, notificationID uuid.UUID) ([]notification.Dispatch, error) {
	n, err := s.notificationRepo.FindByID(ctx, notificationID)
	if err != nil {
		return nil, shared.NewDomainError("NOTIFICATION_NOT_FOUND", "Notification not found")
	}
	if n.RecipientID != actorID {
		return nil, shared.NewDomainError("FORBIDDEN", "Notification belongs to another user")
	}

	dispatches, err := s.dispatchRepo.FindByNotification(ctx, notificationID)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list dispatches")
	}
	return dispatches, nil
}
