package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lawmatch/backend/internal/infrastructure/config"
)

type fakeInvoiceJobs struct {
	sweeps    atomic.Int64
	monthlies atomic.Int64
}

func (f *fakeInvoiceJobs) SweepOverdue(ctx context.Context, asOf time.Time) (int, error) {
	f.sweeps.Add(1)
	return 2, nil
}

func (f *fakeInvoiceJobs) GenerateMonthlyDrafts(ctx context.Context, now time.Time) (int, error) {
	f.monthlies.Add(1)
	return 1, nil
}

func newTestScheduler(jobs InvoiceJobs) *BillingScheduler {
	cfg := config.SchedulerConfig{
		Enabled:       true,
		SweepHour:     6,
		SweepMinute:   0,
		MonthlyRunDay: 1,
		CheckInterval: 10 * time.Millisecond,
		JobTimeout:    time.Second,
	}
	return NewBillingScheduler(cfg, jobs, zap.NewNop())
}

func TestBillingScheduler_ShouldSweep(t *testing.T) {
	s := newTestScheduler(&fakeInvoiceJobs{})

	t.Run("due at the configured minute", func(t *testing.T) {
		now := time.Date(2026, 8, 15, 6, 0, 30, 0, time.UTC)
		assert.True(t, s.shouldSweep(now))
	})

	t.Run("not due at other times", func(t *testing.T) {
		assert.False(t, s.shouldSweep(time.Date(2026, 8, 15, 6, 1, 0, 0, time.UTC)))
		assert.False(t, s.shouldSweep(time.Date(2026, 8, 15, 7, 0, 0, 0, time.UTC)))
	})

	t.Run("does not repeat within the same minute", func(t *testing.T) {
		s := newTestScheduler(&fakeInvoiceJobs{})
		now := time.Date(2026, 8, 15, 6, 0, 10, 0, time.UTC)

		require.True(t, s.shouldSweep(now))
		s.runSweep(context.Background(), now)

		assert.False(t, s.shouldSweep(now.Add(20*time.Second)))
	})
}

func TestBillingScheduler_ShouldRunMonthly(t *testing.T) {
	s := newTestScheduler(&fakeInvoiceJobs{})

	t.Run("due on the run day at sweep time", func(t *testing.T) {
		assert.True(t, s.shouldRunMonthly(time.Date(2026, 9, 1, 6, 0, 0, 0, time.UTC)))
	})

	t.Run("not due on other days", func(t *testing.T) {
		assert.False(t, s.shouldRunMonthly(time.Date(2026, 9, 2, 6, 0, 0, 0, time.UTC)))
		assert.False(t, s.shouldRunMonthly(time.Date(2026, 9, 1, 5, 59, 0, 0, time.UTC)))
	})
}

func TestBillingScheduler_StartStop(t *testing.T) {
	t.Run("start is idempotent and stop waits for the loop", func(t *testing.T) {
		jobs := &fakeInvoiceJobs{}
		s := newTestScheduler(jobs)

		require.NoError(t, s.Start(context.Background()))
		require.NoError(t, s.Start(context.Background()))

		status := s.Status()
		assert.Equal(t, true, status["is_running"])

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		assert.NoError(t, s.Stop(ctx))
		assert.Equal(t, false, s.Status()["is_running"])
	})

	t.Run("stop on a stopped scheduler is a no-op", func(t *testing.T) {
		s := newTestScheduler(&fakeInvoiceJobs{})
		assert.NoError(t, s.Stop(context.Background()))
	})
}

func TestBillingScheduler_ManualTriggers(t *testing.T) {
	t.Run("trigger runs the sweep", func(t *testing.T) {
		jobs := &fakeInvoiceJobs{}
		s := newTestScheduler(jobs)
		require.NoError(t, s.Start(context.Background()))
		defer func() { _ = s.Stop(context.Background()) }()

		require.NoError(t, s.TriggerSweep())

		assert.Eventually(t, func() bool {
			return jobs.sweeps.Load() == 1
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("trigger runs the monthly generation", func(t *testing.T) {
		jobs := &fakeInvoiceJobs{}
		s := newTestScheduler(jobs)
		require.NoError(t, s.Start(context.Background()))
		defer func() { _ = s.Stop(context.Background()) }()

		require.NoError(t, s.TriggerMonthlyRun())

		assert.Eventually(t, func() bool {
			return jobs.monthlies.Load() == 1
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("triggers fail when stopped", func(t *testing.T) {
		s := newTestScheduler(&fakeInvoiceJobs{})

		assert.ErrorIs(t, s.TriggerSweep(), ErrSchedulerNotRunning)
		assert.ErrorIs(t, s.TriggerMonthlyRun(), ErrSchedulerNotRunning)
	})
}
