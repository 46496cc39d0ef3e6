package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	billingapp "github.com/lawmatch/backend/internal/application/billing"
	"github.com/lawmatch/backend/internal/interfaces/http/middleware"
)

// TimerHandler handles work timer API endpoints
type TimerHandler struct {
	BaseHandler
	timerService *billingapp.TimerService
}

// NewTimerHandler creates a new TimerHandler
func NewTimerHandler(timerService *billingapp.TimerService) *TimerHandler {
	return &TimerHandler{timerService: timerService}
}

// StartTimerRequest represents a request to start a work timer
type StartTimerRequest struct {
	MatterID    string `json:"matter_id" binding:"required,uuid"`
	Description string `json:"description" binding:"omitempty,max=1000"`
}

// Start godoc
// @Summary      Start a work timer on a matter
// @Tags         timers
// @Accept       json
// @Produce      json
// @Param        request body StartTimerRequest true "Timer start request"
// @Success      201 {object} dto.Response
// @Failure      409 {object} dto.Response "A live timer already exists"
// @Security     BearerAuth
// @Router       /timers [post]
func (h *TimerHandler) Start(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req StartTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	matterID, err := uuid.Parse(req.MatterID)
	if err != nil {
		h.BadRequest(c, "Invalid matter ID format")
		return
	}

	timer, err := h.timerService.StartTimer(c.Request.Context(), billingapp.StartTimerInput{
		ActorID:     actorID,
		MatterID:    matterID,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, timer)
}

// Pause godoc
// @Summary      Pause a running timer
// @Tags         timers
// @Produce      json
// @Param        id path string true "Timer ID" format(uuid)
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /timers/{id}/pause [post]
func (h *TimerHandler) Pause(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	timerID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid timer ID format")
		return
	}

	timer, err := h.timerService.PauseTimer(c.Request.Context(), actorID, timerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, timer)
}

// Resume godoc
// @Summary      Resume a paused timer
// @Tags         timers
// @Produce      json
// @Param        id path string true "Timer ID" format(uuid)
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /timers/{id}/resume [post]
func (h *TimerHandler) Resume(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	timerID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid timer ID format")
		return
	}

	timer, err := h.timerService.ResumeTimer(c.Request.Context(), actorID, timerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, timer)
}

// Stop godoc
// @Summary      Stop a timer and convert it into a time billing item
// @Tags         timers
// @Produce      json
// @Param        id path string true "Timer ID" format(uuid)
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /timers/{id}/stop [post]
func (h *TimerHandler) Stop(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	timerID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid timer ID format")
		return
	}

	result, err := h.timerService.StopTimer(c.Request.Context(), actorID, timerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{
		"timer": result.Timer,
		"item":  result.Item,
	})
}

// Cancel godoc
// @Summary      Cancel a timer, discarding the tracked time
// @Tags         timers
// @Produce      json
// @Param        id path string true "Timer ID" format(uuid)
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /timers/{id}/cancel [post]
func (h *TimerHandler) Cancel(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	timerID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid timer ID format")
		return
	}

	timer, err := h.timerService.CancelTimer(c.Request.Context(), actorID, timerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, timer)
}

// Live godoc
// @Summary      Get the current user's live timer
// @Tags         timers
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response "No live timer"
// @Security     BearerAuth
// @Router       /timers/live [get]
func (h *TimerHandler) Live(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	timer, err := h.timerService.GetLiveTimer(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, timer)
}
