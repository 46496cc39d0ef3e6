package handler

import (
	"github.com/gin-gonic/gin"

	notificationapp "github.com/lawmatch/backend/internal/application/notification"
)

// NotificationHandler handles the user notification feed endpoints
type NotificationHandler struct {
	BaseHandler
	notificationService *notificationapp.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService *notificationapp.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List godoc
// @Summary      List the current user's notifications
// @Tags         notifications
// @Produce      json
// @Param        unread query bool false "Only unread notifications"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	recipientID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	page, pageSize := parsePagination(c)
	items, total, err := h.notificationService.List(c.Request.Context(), notificationapp.ListInput{
		RecipientID: recipientID,
		UnreadOnly:  c.Query("unread") == "true",
		Page:        page,
		PageSize:    pageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, page, pageSize)
}

// UnreadCount godoc
// @Summary      Count the current user's unread notifications
// @Tags         notifications
// @Produce      json
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	recipientID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	count, err := h.notificationService.CountUnread(c.Request.Context(), recipientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"unread": count})
}

// MarkRead godoc
// @Summary      Mark a notification as read
// @Tags         notifications
// @Produce      json
// @Param        id path string true "Notification ID" format(uuid)
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	notificationID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid notification ID format")
		return
	}

	n, err := h.notificationService.MarkRead(c.Request.Context(), actorID, notificationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, n)
}

// MarkAllRead godoc
// @Summary      Mark all of the current user's notifications as read
// @Tags         notifications
// @Success      204
// @Security     BearerAuth
// @Router       /notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	recipientID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.notificationService.MarkAllRead(c.Request.Context(), recipientID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListDispatches godoc
// @Summary      List per-channel delivery records for a notification
// @Tags         notifications
// @Produce      json
// @Param        id path string true "Notification ID" format(uuid)
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /notifications/{id}/dispatches [get]
func (h *NotificationHandler) ListDispatches(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	notificationID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid notification ID format")
		return
	}

	dispatches, err := h.notificationService.ListDispatches(c.Request.Context(), actorID, notificationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dispatches)
}
