package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lawmatch/backend/internal/domain/billing"
	"github.com/lawmatch/backend/internal/domain/shared"
	"github.com/lawmatch/backend/internal/infrastructure/persistence/models"
)

// GormTimerRepository implements billing.TimerRepository using GORM
type GormTimerRepository struct {
	db *gorm.DB
}

// NewGormTimerRepository creates a new GormTimerRepository
func NewGormTimerRepository(db *gorm.DB) *GormTimerRepository {
	return &GormTimerRepository{db: db}
}

// FindByID finds a timer by ID
func (r *GormTimerRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Timer, error) {
	var model models.TimerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindLiveByUser returns the user's running or paused timer, if any.
// A user has at most one live timer at a time.
func (r *GormTimerRepository) FindLiveByUser(ctx context.Context, userID uuid.UUID) (*billing.Timer, error) {
	var model models.TimerModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND status IN ?", userID,
			[]billing.TimerStatus{billing.TimerStatusRunning, billing.TimerStatusPaused}).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUser returns the user's timers, newest first
func (r *GormTimerRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]billing.Timer, error) {
	query := r.db.WithContext(ctx).
		Model(&models.TimerModel{}).
		Where("user_id = ?", userID)
	query = applyPageAndOrder(query, filter, CommonSortFields, "created_at")

	var timerModels []models.TimerModel
	if err := query.Find(&timerModels).Error; err != nil {
		return nil, err
	}

	timers := make([]billing.Timer, len(timerModels))
	for i, model := range timerModels {
		timers[i] = *model.ToDomain()
	}
	return timers, nil
}

// Save creates or updates a timer
func (r *GormTimerRepository) Save(ctx context.Context, timer *billing.Timer) error {
	model := &models.TimerModel{}
	model.FromDomain(timer)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a timer
func (r *GormTimerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.TimerModel{}, "id = ?", id).Error
}

var _ billing.TimerRepository = (*GormTimerRepository)(nil)
