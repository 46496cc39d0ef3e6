package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lawmatch/backend/internal/domain/billing"
	"github.com/lawmatch/backend/internal/domain/matter"
	"github.com/lawmatch/backend/internal/domain/shared"
)

// TimerService manages work timers. Each user has at most one live timer;
// stopping it records a time billing item at the matter's hourly rate.
type TimerService struct {
	timerRepo      billing.TimerRepository
	itemRepo       billing.BillingItemRepository
	matterRepo     matter.MatterRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewTimerService creates a new timer service
func NewTimerService(
	timerRepo billing.TimerRepository,
	itemRepo billing.BillingItemRepository,
	matterRepo matter.MatterRepository,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
) *TimerService {
	return &TimerService{
		timerRepo:      timerRepo,
		itemRepo:       itemRepo,
		matterRepo:     matterRepo,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// StartTimer starts a timer against a matter. A second live timer for the
// same user is rejected.
func (s *TimerService) StartTimer(ctx context.Context, input StartTimerInput) (*billing.Timer, error) {
	m, err := s.matterRepo.FindByID(ctx, input.MatterID)
	if err != nil {
		return nil, shared.NewDomainError("MATTER_NOT_FOUND", "Matter not found")
	}
	if m.MediatorID != input.ActorID {
		return nil, shared.NewDomainError("FORBIDDEN", "Only the matter's mediator can track time")
	}
	if m.Status != matter.MatterStatusOpen {
		return nil, shared.NewDomainError("INVALID_STATE", "Time can only be tracked on open matters")
	}

	if live, err := s.timerRepo.FindLiveByUser(ctx, input.ActorID); err == nil && live != nil {
		return nil, shared.NewDomainError("TIMER_ALREADY_RUNNING", "A timer is already running. Stop it before starting a new one")
	}

	timer, err := billing.NewTimer(input.ActorID, input.MatterID, input.Description)
	if err != nil {
		return nil, err
	}

	if err := s.timerRepo.Save(ctx, timer); err != nil {
		s.logger.Error("Failed to save timer", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to start timer")
	}

	s.logger.Info("Timer started",
		zap.String("timer_id", timer.ID.String()),
		zap.String("matter_id", input.MatterID.String()),
		zap.String("user_id", input.ActorID.String()))

	return timer, nil
}

// PauseTimer pauses the running timer
func (s *TimerService) PauseTimer(ctx context.Context, actorID, timerID uuid.UUID) (*billing.Timer, error) {
	timer, err := s.requireTimerOwner(ctx, actorID, timerID)
	if err != nil {
		return nil, err
	}

	if err := timer.Pause(); err != nil {
		return nil, err
	}

	if err := s.timerRepo.Save(ctx, timer); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to pause timer")
	}
	return timer, nil
}

// ResumeTimer resumes a paused timer
func (s *TimerService) ResumeTimer(ctx context.Context, actorID, timerID uuid.UUID) (*billing.Timer, error) {
	timer, err := s.requireTimerOwner(ctx, actorID, timerID)
	if err != nil {
		return nil, err
	}

	if err := timer.Resume(); err != nil {
		return nil, err
	}

	if err := s.timerRepo.Save(ctx, timer); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to resume timer")
	}
	return timer, nil
}

// StopTimer ends the timer and converts the elapsed time into a time
// billing item. Elapsed time is billed in whole minutes, rounded up.
func (s *TimerService) StopTimer(ctx context.Context, actorID, timerID uuid.UUID) (*StopTimerResult, error) {
	timer, err := s.requireTimerOwner(ctx, actorID, timerID)
	if err != nil {
		return nil, err
	}

	m, err := s.matterRepo.FindByID(ctx, timer.MatterID)
	if err != nil {
		return nil, shared.NewDomainError("MATTER_NOT_FOUND", "Matter not found")
	}

	elapsed, err := timer.Stop()
	if err != nil {
		return nil, err
	}

	if err := s.timerRepo.Save(ctx, timer); err != nil {
		s.logger.Error("Failed to save stopped timer", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to stop timer")
	}

	minutes := billing.BillableMinutes(elapsed)
	hours := decimal.NewFromInt(minutes).Div(decimal.NewFromInt(60)).Round(2)

	description := timer.Description
	if description == "" {
		description = fmt.Sprintf("Tracked time on %s", m.Number)
	}

	item, err := billing.NewTimeItem(timer.MatterID, timer.UserID, description, time.Now(), hours, m.RateMoney())
	if err != nil {
		// Timer stays stopped; the caller can record the item manually
		s.logger.Warn("Stopped timer did not yield a billing item",
			zap.String("timer_id", timer.ID.String()),
			zap.Error(err))
		s.publishTimerEvents(ctx, timer)
		return &StopTimerResult{Timer: timer}, nil
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		s.logger.Error("Failed to save time item from timer", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to record tracked time")
	}

	s.publishTimerEvents(ctx, timer)

	s.logger.Info("Timer stopped",
		zap.String("timer_id", timer.ID.String()),
		zap.Duration("elapsed", elapsed),
		zap.Int64("billable_minutes", minutes),
		zap.String("item_id", item.ID.String()))

	return &StopTimerResult{Timer: timer, Item: item}, nil
}

// CancelTimer discards a live timer without billing the tracked time
func (s *TimerService) CancelTimer(ctx context.Context, actorID, timerID uuid.UUID) (*billing.Timer, error) {
	timer, err := s.requireTimerOwner(ctx, actorID, timerID)
	if err != nil {
		return nil, err
	}

	if err := timer.Cancel(); err != nil {
		return nil, err
	}

	if err := s.timerRepo.Save(ctx, timer); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to cancel timer")
	}

	s.logger.Info("Timer cancelled", zap.String("timer_id", timer.ID.String()))
	return timer, nil
}

// GetLiveTimer returns the user's running or paused timer
func (s *TimerService) GetLiveTimer(ctx context.Context, userID uuid.UUID) (*billing.Timer, error) {
	timer, err := s.timerRepo.FindLiveByUser(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("TIMER_NOT_FOUND", "No live timer")
	}
	return timer, nil
}

func (s *TimerService) requireTimerOwner(ctx context.Context, actorID, timerID uuid.UUID) (*billing.Timer, error) {
	timer, err := s.timerRepo.FindByID(ctx, timerID)
	if err != nil {
		return nil, shared.NewDomainError("TIMER_NOT_FOUND", "Timer not found")
	}
	if timer.UserID != actorID {
		return nil, shared.NewDomainError("FORBIDDEN", "Timer belongs to another user")
	}
	return timer, nil
}

func (s *TimerService) publishTimerEvents(ctx context.Context, timer *billing.Timer) {
	events := timer.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish timer events", zap.Error(err))
	}
	timer.ClearDomainEvents()
}
