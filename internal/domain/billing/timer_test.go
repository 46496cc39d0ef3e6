package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawmatch/backend/internal/domain/shared/valueobject"
)

func TestNewTimer(t *testing.T) {
	timer, err := NewTimer(uuid.New(), uuid.New(), "client call")
	require.NoError(t, err)
	assert.Equal(t, TimerStatusRunning, timer.Status)
	assert.NotNil(t, timer.ResumedAt)

	_, err = NewTimer(uuid.Nil, uuid.New(), "")
	assert.Error(t, err)
}

func TestTimerPauseResume(t *testing.T) {
	t.Run("pause banks elapsed time", func(t *testing.T) {
		timer, err := NewTimer(uuid.New(), uuid.New(), "")
		require.NoError(t, err)

		// simulate a segment that started earlier
		past := time.Now().Add(-10 * time.Minute)
		timer.ResumedAt = &past

		require.NoError(t, timer.Pause())
		assert.Equal(t, TimerStatusPaused, timer.Status)
		assert.Nil(t, timer.ResumedAt)
		assert.GreaterOrEqual(t, timer.Accumulated, 10*time.Minute)
	})

	t.Run("cannot pause twice", func(t *testing.T) {
		timer, _ := NewTimer(uuid.New(), uuid.New(), "")
		require.NoError(t, timer.Pause())
		assert.Error(t, timer.Pause())
	})

	t.Run("resume restarts the clock", func(t *testing.T) {
		timer, _ := NewTimer(uuid.New(), uuid.New(), "")
		require.NoError(t, timer.Pause())
		require.NoError(t, timer.Resume())
		assert.Equal(t, TimerStatusRunning, timer.Status)
		assert.NotNil(t, timer.ResumedAt)
	})

	t.Run("cannot resume a running timer", func(t *testing.T) {
		timer, _ := NewTimer(uuid.New(), uuid.New(), "")
		assert.Error(t, timer.Resume())
	})
}

func TestTimerStop(t *testing.T) {
	t.Run("stop returns total elapsed and raises event", func(t *testing.T) {
		timer, _ := NewTimer(uuid.New(), uuid.New(), "drafting agreement")
		past := time.Now().Add(-25 * time.Minute)
		timer.ResumedAt = &past

		elapsed, err := timer.Stop()
		require.NoError(t, err)
		assert.Equal(t, TimerStatusStopped, timer.Status)
		assert.GreaterOrEqual(t, elapsed, 25*time.Minute)
		assert.NotNil(t, timer.StoppedAt)
		require.Len(t, timer.GetDomainEvents(), 1)
		assert.Equal(t, "TimerStopped", timer.GetDomainEvents()[0].EventType())
	})

	t.Run("stop works from paused", func(t *testing.T) {
		timer, _ := NewTimer(uuid.New(), uuid.New(), "")
		timer.Accumulated = 40 * time.Minute
		require.NoError(t, timer.Pause())

		elapsed, err := timer.Stop()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, elapsed, 40*time.Minute)
	})

	t.Run("cannot stop twice", func(t *testing.T) {
		timer, _ := NewTimer(uuid.New(), uuid.New(), "")
		_, err := timer.Stop()
		require.NoError(t, err)
		_, err = timer.Stop()
		assert.Error(t, err)
	})
}

func TestTimerCancel(t *testing.T) {
	t.Run("cancel discards tracked time without an event", func(t *testing.T) {
		timer, _ := NewTimer(uuid.New(), uuid.New(), "")
		timer.Accumulated = 15 * time.Minute

		require.NoError(t, timer.Cancel())
		assert.Equal(t, TimerStatusStopped, timer.Status)
		assert.Equal(t, time.Duration(0), timer.Accumulated)
		assert.NotNil(t, timer.StoppedAt)
		assert.Empty(t, timer.GetDomainEvents())
	})

	t.Run("cannot cancel a stopped timer", func(t *testing.T) {
		timer, _ := NewTimer(uuid.New(), uuid.New(), "")
		_, err := timer.Stop()
		require.NoError(t, err)
		assert.Error(t, timer.Cancel())
	})
}

func TestBillableMinutes(t *testing.T) {
	assert.Equal(t, int64(0), BillableMinutes(0))
	assert.Equal(t, int64(1), BillableMinutes(30*time.Second))
	assert.Equal(t, int64(1), BillableMinutes(time.Minute))
	assert.Equal(t, int64(26), BillableMinutes(25*time.Minute+5*time.Second))
}

func TestBillingItems(t *testing.T) {
	matterID := uuid.New()
	userID := uuid.New()

	t.Run("time item derives amount", func(t *testing.T) {
		item, err := NewTimeItem(matterID, userID, "prep", time.Now(), decimal.NewFromFloat(1.5), valueobject.NewMoneyUSDFromFloat(300))
		require.NoError(t, err)
		assert.True(t, item.Amount.Equal(decimal.NewFromFloat(450)))
		assert.Equal(t, BillingItemKindTime, item.Kind)
		assert.True(t, item.Billable)
	})

	t.Run("time item rejects zero hours", func(t *testing.T) {
		_, err := NewTimeItem(matterID, userID, "prep", time.Now(), decimal.Zero, valueobject.NewMoneyUSDFromFloat(300))
		assert.Error(t, err)
	})

	t.Run("expense requires positive amount", func(t *testing.T) {
		_, err := NewExpenseItem(matterID, userID, "fee", time.Now(), valueobject.ZeroUSD())
		assert.Error(t, err)

		item, err := NewExpenseItem(matterID, userID, "filing fee", time.Now(), valueobject.NewMoneyUSDFromFloat(75))
		require.NoError(t, err)
		assert.Equal(t, BillingItemKindExpense, item.Kind)
	})

	t.Run("update recomputes time amount", func(t *testing.T) {
		item, err := NewTimeItem(matterID, userID, "prep", time.Now(), decimal.NewFromInt(1), valueobject.NewMoneyUSDFromFloat(300))
		require.NoError(t, err)
		require.NoError(t, item.UpdateTime("prep and follow-up", time.Now(), decimal.NewFromInt(2), valueobject.NewMoneyUSDFromFloat(350)))
		assert.True(t, item.Amount.Equal(decimal.NewFromInt(700)))
	})

	t.Run("invoiced item is frozen", func(t *testing.T) {
		item, err := NewFlatFeeItem(matterID, userID, "retainer", time.Now(), valueobject.NewMoneyUSDFromFloat(1000))
		require.NoError(t, err)
		require.NoError(t, item.AttachToInvoice(uuid.New()))

		assert.Error(t, item.UpdateAmount("retainer", time.Now(), valueobject.NewMoneyUSDFromFloat(900)))
		assert.Error(t, item.SetBillable(false))
		assert.Error(t, item.AttachToInvoice(uuid.New()))
	})
}
