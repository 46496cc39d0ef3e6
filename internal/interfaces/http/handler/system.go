package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lawmatch/backend/internal/domain/identity"
	"github.com/lawmatch/backend/internal/infrastructure/persistence"
	"github.com/lawmatch/backend/internal/infrastructure/scheduler"
	"github.com/lawmatch/backend/internal/interfaces/http/middleware"
)

// SystemHandler handles health and operational endpoints
type SystemHandler struct {
	BaseHandler
	db        *persistence.Database
	scheduler *scheduler.BillingScheduler
	version   string
	startedAt time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *persistence.Database, sched *scheduler.BillingScheduler, version string) *SystemHandler {
	return &SystemHandler{
		db:        db,
		scheduler: sched,
		version:   version,
		startedAt: time.Now(),
	}
}

// Health godoc
// @Summary      Liveness probe
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, gin.H{
		"status":  "ok",
		"version": h.version,
		"uptime":  time.Since(h.startedAt).Round(time.Second).String(),
	})
}

// Ready godoc
// @Summary      Readiness probe, checks the database connection
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      503 {object} dto.Response
// @Router       /ready [get]
func (h *SystemHandler) Ready(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		h.Error(c, http.StatusServiceUnavailable, "DATABASE_UNAVAILABLE", "Database connection failed")
		return
	}

	stats, err := h.db.Stats()
	if err != nil {
		h.Error(c, http.StatusServiceUnavailable, "DATABASE_UNAVAILABLE", "Database connection failed")
		return
	}

	h.Success(c, gin.H{
		"status": "ready",
		"database": gin.H{
			"open_connections": stats.OpenConnections,
			"in_use":           stats.InUse,
			"idle":             stats.Idle,
		},
	})
}

// SchedulerStatus godoc
// @Summary      Billing scheduler diagnostics (support only)
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /system/scheduler [get]
func (h *SystemHandler) SchedulerStatus(c *gin.Context) {
	if !h.requireSupport(c) {
		return
	}
	h.Success(c, h.scheduler.Status())
}

// TriggerSweep godoc
// @Summary      Run the overdue invoice sweep now (support only)
// @Tags         system
// @Produce      json
// @Success      202 {object} dto.Response
// @Security     BearerAuth
// @Router       /system/scheduler/sweep [post]
func (h *SystemHandler) TriggerSweep(c *gin.Context) {
	if !h.requireSupport(c) {
		return
	}

	if err := h.scheduler.TriggerSweep(); err != nil {
		h.handleSchedulerError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"success": true, "data": gin.H{"triggered": "sweep"}})
}

// TriggerMonthlyRun godoc
// @Summary      Run the monthly draft generation now (support only)
// @Tags         system
// @Produce      json
// @Success      202 {object} dto.Response
// @Security     BearerAuth
// @Router       /system/scheduler/monthly [post]
func (h *SystemHandler) TriggerMonthlyRun(c *gin.Context) {
	if !h.requireSupport(c) {
		return
	}

	if err := h.scheduler.TriggerMonthlyRun(); err != nil {
		h.handleSchedulerError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"success": true, "data": gin.H{"triggered": "monthly"}})
}

func (h *SystemHandler) requireSupport(c *gin.Context) bool {
	kind := middleware.GetJWTUserKind(c)
	if kind == "" {
		h.Unauthorized(c, "Authentication required")
		return false
	}
	if kind != string(identity.UserKindSupport) {
		h.Forbidden(c, "Support role required")
		return false
	}
	return true
}

func (h *SystemHandler) handleSchedulerError(c *gin.Context, err error) {
	if errors.Is(err, scheduler.ErrSchedulerNotRunning) {
		h.Conflict(c, "Scheduler is not running")
		return
	}
	h.InternalError(c, "Failed to trigger scheduler job")
}
