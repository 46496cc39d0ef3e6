package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lawmatch/backend/internal/domain/shared"
)

// TimerStatus represents the state of a work timer
type TimerStatus string

const (
	TimerStatusRunning TimerStatus = "RUNNING"
	TimerStatusPaused  TimerStatus = "PAUSED"
	TimerStatusStopped TimerStatus = "STOPPED"
)

// IsValid checks if the status is a valid TimerStatus
func (s TimerStatus) IsValid() bool {
	switch s {
	case TimerStatusRunning, TimerStatusPaused, TimerStatusStopped:
		return true
	}
	return false
}

// String returns the string representation of TimerStatus
func (s TimerStatus) String() string {
	return string(s)
}

// IsLive returns true while the timer can still accumulate time
func (s TimerStatus) IsLive() bool {
	return s == TimerStatusRunning || s == TimerStatusPaused
}

// Timer tracks work in progress against a matter. Each user has at most
// one live timer; stopping it yields the elapsed duration that the
// service turns into a time billing item.
type Timer struct {
	shared.BaseAggregateRoot
	UserID      uuid.UUID     `json:"user_id"`
	MatterID    uuid.UUID     `json:"matter_id"`
	Description string        `json:"description"`
	Status      TimerStatus   `json:"status"`
	StartedAt   time.Time     `json:"started_at"`
	ResumedAt   *time.Time    `json:"resumed_at"`
	Accumulated time.Duration `json:"accumulated"`
	StoppedAt   *time.Time    `json:"stopped_at"`
}

// NewTimer starts a new running timer
func NewTimer(userID, matterID uuid.UUID, description string) (*Timer, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if matterID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MATTER", "Matter ID cannot be empty")
	}

	now := time.Now()
	return &Timer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		MatterID:          matterID,
		Description:       description,
		Status:            TimerStatusRunning,
		StartedAt:         now,
		ResumedAt:         &now,
	}, nil
}

// Pause freezes the timer, banking the elapsed segment
func (t *Timer) Pause() error {
	if t.Status != TimerStatusRunning {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot pause timer in %s status", t.Status))
	}

	now := time.Now()
	if t.ResumedAt != nil {
		t.Accumulated += now.Sub(*t.ResumedAt)
	}
	t.ResumedAt = nil
	t.Status = TimerStatusPaused
	t.UpdatedAt = now
	t.IncrementVersion()
	return nil
}

// Resume restarts a paused timer
func (t *Timer) Resume() error {
	if t.Status != TimerStatusPaused {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot resume timer in %s status", t.Status))
	}

	now := time.Now()
	t.ResumedAt = &now
	t.Status = TimerStatusRunning
	t.UpdatedAt = now
	t.IncrementVersion()
	return nil
}

// Stop ends the timer and returns the total elapsed duration
func (t *Timer) Stop() (time.Duration, error) {
	if !t.Status.IsLive() {
		return 0, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot stop timer in %s status", t.Status))
	}

	now := time.Now()
	if t.Status == TimerStatusRunning && t.ResumedAt != nil {
		t.Accumulated += now.Sub(*t.ResumedAt)
	}
	t.ResumedAt = nil
	t.Status = TimerStatusStopped
	t.StoppedAt = &now
	t.UpdatedAt = now
	t.IncrementVersion()

	t.AddDomainEvent(NewTimerStoppedEvent(t))

	return t.Accumulated, nil
}

// Cancel ends the timer and discards the tracked time. No event is
// raised; cancelled time is never billed.
func (t *Timer) Cancel() error {
	if !t.Status.IsLive() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel timer in %s status", t.Status))
	}

	now := time.Now()
	t.ResumedAt = nil
	t.Accumulated = 0
	t.Status = TimerStatusStopped
	t.StoppedAt = &now
	t.UpdatedAt = now
	t.IncrementVersion()
	return nil
}

// Elapsed returns the duration accumulated so far, including the
// currently running segment
func (t *Timer) Elapsed() time.Duration {
	elapsed := t.Accumulated
	if t.Status == TimerStatusRunning && t.ResumedAt != nil {
		elapsed += time.Since(*t.ResumedAt)
	}
	return elapsed
}

// BillableMinutes returns the elapsed time rounded up to the next whole
// minute, as billed to the client
func BillableMinutes(elapsed time.Duration) int64 {
	minutes := int64(elapsed / time.Minute)
	if elapsed%time.Minute > 0 {
		minutes++
	}
	return minutes
}

var _ shared.AggregateRoot = (*Timer)(nil)
