package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lawmatch/backend/internal/domain/marketplace"
	"github.com/lawmatch/backend/internal/domain/shared"
	"github.com/lawmatch/backend/internal/infrastructure/persistence/models"
)

// GormPostedMatterRepository implements marketplace.PostedMatterRepository using GORM
type GormPostedMatterRepository struct {
	db *gorm.DB
}

// NewGormPostedMatterRepository creates a new GormPostedMatterRepository
func NewGormPostedMatterRepository(db *gorm.DB) *GormPostedMatterRepository {
	return &GormPostedMatterRepository{db: db}
}

// FindByID finds a posted matter by ID
func (r *GormPostedMatterRepository) FindByID(ctx context.Context, id uuid.UUID) (*marketplace.PostedMatter, error) {
	var model models.PostedMatterModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds posted matters with filtering
func (r *GormPostedMatterRepository) FindAll(ctx context.Context, filter marketplace.PostedMatterFilter) ([]marketplace.PostedMatter, error) {
	var postingModels []models.PostedMatterModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.PostedMatterModel{}), filter)
	query = applyPageAndOrder(query, filter.Filter, PostedMatterSortFields, "posted_at")

	if err := query.Find(&postingModels).Error; err != nil {
		return nil, err
	}

	postings := make([]marketplace.PostedMatter, len(postingModels))
	for i, model := range postingModels {
		postings[i] = *model.ToDomain()
	}
	return postings, nil
}

// Count counts posted matters matching the filter
func (r *GormPostedMatterRepository) Count(ctx context.Context, filter marketplace.PostedMatterFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.PostedMatterModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a posted matter
func (r *GormPostedMatterRepository) Save(ctx context.Context, posting *marketplace.PostedMatter) error {
	model := &models.PostedMatterModel{}
	model.FromDomain(posting)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormPostedMatterRepository) SaveWithLock(ctx context.Context, posting *marketplace.PostedMatter) error {
	expected := posting.Version
	posting.Version++
	posting.UpdatedAt = time.Now()

	model := &models.PostedMatterModel{}
	model.FromDomain(posting)
	if err := updateWithVersionCheck(ctx, r.db, model, posting.ID, expected); err != nil {
		posting.Version = expected
		return err
	}
	return nil
}

// Delete removes a posted matter
func (r *GormPostedMatterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.PostedMatterModel{}, "id = ?", id).Error
}

func (r *GormPostedMatterRepository) applyFilter(query *gorm.DB, filter marketplace.PostedMatterFilter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.PracticeArea != nil {
		query = query.Where("practice_area = ?", *filter.PracticeArea)
	}
	return query
}

var _ marketplace.PostedMatterRepository = (*GormPostedMatterRepository)(nil)
