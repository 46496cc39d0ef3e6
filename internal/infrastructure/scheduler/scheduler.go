// Package scheduler runs the periodic billing jobs: the daily overdue
// invoice sweep and the monthly draft generation.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lawmatch/backend/internal/infrastructure/config"
)

// ErrSchedulerNotRunning is returned when a manual trigger hits a stopped scheduler
var ErrSchedulerNotRunning = errors.New("scheduler is not running")

// InvoiceJobs is the slice of the invoice service the scheduler drives
type InvoiceJobs interface {
	SweepOverdue(ctx context.Context, asOf time.Time) (int, error)
	GenerateMonthlyDrafts(ctx context.Context, now time.Time) (int, error)
}

// BillingScheduler fires the billing jobs on a wall-clock schedule. It
// checks the clock on a short ticker rather than sleeping until the next
// run, so clock adjustments and restarts behave predictably.
type BillingScheduler struct {
	config config.SchedulerConfig
	jobs   InvoiceJobs
	logger *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool

	lastSweepAt   *time.Time
	lastMonthlyAt *time.Time
}

// NewBillingScheduler creates a new billing scheduler
func NewBillingScheduler(cfg config.SchedulerConfig, jobs InvoiceJobs, logger *zap.Logger) *BillingScheduler {
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = time.Minute
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 10 * time.Minute
	}
	return &BillingScheduler{
		config: cfg,
		jobs:   jobs,
		logger: logger,
	}
}

// Start starts the scheduler loop
func (s *BillingScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(ctx)

	s.logger.Info("Billing scheduler started",
		zap.Int("sweep_hour", s.config.SweepHour),
		zap.Int("sweep_minute", s.config.SweepMinute),
		zap.Int("monthly_run_day", s.config.MonthlyRunDay),
	)

	return nil
}

// Stop stops the scheduler and waits for an in-flight job to finish
func (s *BillingScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Billing scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Billing scheduler stop timed out")
		return ctx.Err()
	}
}

func (s *BillingScheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if s.shouldSweep(now) {
				s.runSweep(ctx, now)
			}
			if s.shouldRunMonthly(now) {
				s.runMonthly(ctx, now)
			}
		}
	}
}

// shouldSweep reports whether the daily sweep is due and has not already
// run this minute
func (s *BillingScheduler) shouldSweep(now time.Time) bool {
	if now.Hour() != s.config.SweepHour || now.Minute() != s.config.SweepMinute {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSweepAt == nil || !sameMinute(*s.lastSweepAt, now)
}

// shouldRunMonthly reports whether the monthly draft generation is due.
// It runs on the configured day of month at the sweep time.
func (s *BillingScheduler) shouldRunMonthly(now time.Time) bool {
	if now.Day() != s.config.MonthlyRunDay {
		return false
	}
	if now.Hour() != s.config.SweepHour || now.Minute() != s.config.SweepMinute {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastMonthlyAt == nil || !sameMinute(*s.lastMonthlyAt, now)
}

func (s *BillingScheduler) runSweep(ctx context.Context, now time.Time) {
	s.mu.Lock()
	s.lastSweepAt = &now
	s.mu.Unlock()

	jobCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()

	count, err := s.jobs.SweepOverdue(jobCtx, now)
	if err != nil {
		s.logger.Error("Overdue invoice sweep failed", zap.Error(err))
		return
	}
	s.logger.Info("Overdue invoice sweep finished", zap.Int("overdue_count", count))
}

func (s *BillingScheduler) runMonthly(ctx context.Context, now time.Time) {
	s.mu.Lock()
	s.lastMonthlyAt = &now
	s.mu.Unlock()

	jobCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()

	count, err := s.jobs.GenerateMonthlyDrafts(jobCtx, now)
	if err != nil {
		s.logger.Error("Monthly draft generation failed", zap.Error(err))
		return
	}
	s.logger.Info("Monthly draft generation finished", zap.Int("draft_count", count))
}

// TriggerSweep runs the overdue sweep immediately. Uses a background
// context so the job survives the triggering HTTP request.
func (s *BillingScheduler) TriggerSweep() error {
	s.mu.Lock()
	running := s.isRunning
	s.mu.Unlock()
	if !running {
		return ErrSchedulerNotRunning
	}

	go s.runSweep(context.Background(), time.Now())
	return nil
}

// TriggerMonthlyRun runs the monthly draft generation immediately
func (s *BillingScheduler) TriggerMonthlyRun() error {
	s.mu.Lock()
	running := s.isRunning
	s.mu.Unlock()
	if !running {
		return ErrSchedulerNotRunning
	}

	go s.runMonthly(context.Background(), time.Now())
	return nil
}

// Status returns the current scheduler state for diagnostics
func (s *BillingScheduler) Status() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]any{
		"enabled":         s.config.Enabled,
		"is_running":      s.isRunning,
		"sweep_hour":      s.config.SweepHour,
		"sweep_minute":    s.config.SweepMinute,
		"monthly_run_day": s.config.MonthlyRunDay,
		"last_sweep_at":   s.lastSweepAt,
		"last_monthly_at": s.lastMonthlyAt,
	}
}

func sameMinute(a, b time.Time) bool {
	return a.Truncate(time.Minute).Equal(b.Truncate(time.Minute))
}
