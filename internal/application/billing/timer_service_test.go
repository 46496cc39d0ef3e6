package billing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lawmatch/backend/internal/domain/billing"
	"github.com/lawmatch/backend/internal/domain/shared"
)

type timerServiceMocks struct {
	timerRepo  *MockTimerRepository
	itemRepo   *MockBillingItemRepository
	matterRepo *MockMatterRepository
	publisher  *MockEventPublisher
}

func newTimerService(t *testing.T) (*TimerService, *timerServiceMocks) {
	t.Helper()
	m := &timerServiceMocks{
		timerRepo:  new(MockTimerRepository),
		itemRepo:   new(MockBillingItemRepository),
		matterRepo: new(MockMatterRepository),
		publisher:  new(MockEventPublisher),
	}
	svc := NewTimerService(m.timerRepo, m.itemRepo, m.matterRepo, m.publisher, zap.NewNop())
	return svc, m
}

func TestStartTimer(t *testing.T) {
	ctx := context.Background()
	mediatorID := uuid.New()
	clientID := uuid.New()

	t.Run("starts a running timer", func(t *testing.T) {
		svc, m := newTimerService(t)
		mt := newOpenMatter(t, mediatorID, clientID)

		m.matterRepo.On("FindByID", ctx, mt.ID).Return(mt, nil)
		m.timerRepo.On("FindLiveByUser", ctx, mediatorID).Return(nil, shared.ErrNotFound)
		m.timerRepo.On("Save", ctx, mock.AnythingOfType("*billing.Timer")).Return(nil)

		timer, err := svc.StartTimer(ctx, StartTimerInput{
			ActorID:     mediatorID,
			MatterID:    mt.ID,
			Description: "Drafting settlement terms",
		})
		require.NoError(t, err)
		assert.Equal(t, billing.TimerStatusRunning, timer.Status)
	})

	t.Run("rejects a second live timer", func(t *testing.T) {
		svc, m := newTimerService(t)
		mt := newOpenMatter(t, mediatorID, clientID)
		live, err := billing.NewTimer(mediatorID, mt.ID, "")
		require.NoError(t, err)

		m.matterRepo.On("FindByID", ctx, mt.ID).Return(mt, nil)
		m.timerRepo.On("FindLiveByUser", ctx, mediatorID).Return(live, nil)

		_, err = svc.StartTimer(ctx, StartTimerInput{ActorID: mediatorID, MatterID: mt.ID})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TIMER_ALREADY_RUNNING", domainErr.Code)
	})

	t.Run("only the mediator can track time", func(t *testing.T) {
		svc, m := newTimerService(t)
		mt := newOpenMatter(t, mediatorID, clientID)
		m.matterRepo.On("FindByID", ctx, mt.ID).Return(mt, nil)

		_, err := svc.StartTimer(ctx, StartTimerInput{ActorID: clientID, MatterID: mt.ID})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})
}

func TestStopTimer(t *testing.T) {
	ctx := context.Background()
	mediatorID := uuid.New()
	clientID := uuid.New()

	t.Run("stop creates a time item at the matter rate", func(t *testing.T) {
		svc, m := newTimerService(t)
		mt := newOpenMatter(t, mediatorID, clientID)
		timer, err := billing.NewTimer(mediatorID, mt.ID, "Session prep")
		require.NoError(t, err)

		m.timerRepo.On("FindByID", ctx, timer.ID).Return(timer, nil)
		m.matterRepo.On("FindByID", ctx, mt.ID).Return(mt, nil)
		m.timerRepo.On("Save", ctx, timer).Return(nil)
		m.itemRepo.On("Save", ctx, mock.AnythingOfType("*billing.BillingItem")).Return(nil)
		m.publisher.On("Publish", ctx, mock.Anything).Return(nil)

		result, err := svc.StopTimer(ctx, mediatorID, timer.ID)
		require.NoError(t, err)
		assert.Equal(t, billing.TimerStatusStopped, result.Timer.Status)
		require.NotNil(t, result.Item)
		assert.Equal(t, billing.BillingItemKindTime, result.Item.Kind)
		assert.Equal(t, "Session prep", result.Item.Description)
		// any elapsed time bills at least one minute
		assert.True(t, result.Item.Hours.IsPositive())
	})

	t.Run("another user cannot stop the timer", func(t *testing.T) {
		svc, m := newTimerService(t)
		mt := newOpenMatter(t, mediatorID, clientID)
		timer, err := billing.NewTimer(mediatorID, mt.ID, "")
		require.NoError(t, err)

		m.timerRepo.On("FindByID", ctx, timer.ID).Return(timer, nil)

		_, err = svc.StopTimer(ctx, clientID, timer.ID)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})

	t.Run("cancel discards the timer without billing", func(t *testing.T) {
		svc, m := newTimerService(t)
		mt := newOpenMatter(t, mediatorID, clientID)
		timer, err := billing.NewTimer(mediatorID, mt.ID, "")
		require.NoError(t, err)

		m.timerRepo.On("FindByID", ctx, timer.ID).Return(timer, nil)
		m.timerRepo.On("Save", ctx, timer).Return(nil)

		cancelled, err := svc.CancelTimer(ctx, mediatorID, timer.ID)
		require.NoError(t, err)
		assert.Equal(t, billing.TimerStatusStopped, cancelled.Status)
		m.itemRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("pause and resume round trip", func(t *testing.T) {
		svc, m := newTimerService(t)
		mt := newOpenMatter(t, mediatorID, clientID)
		timer, err := billing.NewTimer(mediatorID, mt.ID, "")
		require.NoError(t, err)

		m.timerRepo.On("FindByID", ctx, timer.ID).Return(timer, nil)
		m.timerRepo.On("Save", ctx, timer).Return(nil)

		paused, err := svc.PauseTimer(ctx, mediatorID, timer.ID)
		require.NoError(t, err)
		assert.Equal(t, billing.TimerStatusPaused, paused.Status)

		resumed, err := svc.ResumeTimer(ctx, mediatorID, timer.ID)
		require.NoError(t, err)
		assert.Equal(t, billing.TimerStatusRunning, resumed.Status)
	})
}
