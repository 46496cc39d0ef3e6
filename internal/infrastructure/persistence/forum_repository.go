package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lawmatch/backend/internal/domain/forum"
	"github.com/lawmatch/backend/internal/domain/shared"
	"github.com/lawmatch/backend/internal/infrastructure/persistence/models"
)

// GormTopicRepository implements forum.TopicRepository using GORM
type GormTopicRepository struct {
	db *gorm.DB
}

// NewGormTopicRepository creates a new GormTopicRepository
func NewGormTopicRepository(db *gorm.DB) *GormTopicRepository {
	return &GormTopicRepository{db: db}
}

// FindByID finds a topic by ID
func (r *GormTopicRepository) FindByID(ctx context.Context, id uuid.UUID) (*forum.Topic, error) {
	var model models.TopicModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds topics with filtering, most recently active first
func (r *GormTopicRepository) FindAll(ctx context.Context, filter forum.TopicFilter) ([]forum.Topic, error) {
	var topicModels []models.TopicModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.TopicModel{}), filter)
	query = applyPageAndOrder(query, filter.Filter, TopicSortFields, "last_activity_at")

	if err := query.Find(&topicModels).Error; err != nil {
		return nil, err
	}

	topics := make([]forum.Topic, len(topicModels))
	for i, model := range topicModels {
		topics[i] = *model.ToDomain()
	}
	return topics, nil
}

// Count counts topics matching the filter
func (r *GormTopicRepository) Count(ctx context.Context, filter forum.TopicFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.TopicModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a topic
func (r *GormTopicRepository) Save(ctx context.Context, topic *forum.Topic) error {
	model := &models.TopicModel{}
	model.FromDomain(topic)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormTopicRepository) SaveWithLock(ctx context.Context, topic *forum.Topic) error {
	expected := topic.Version
	topic.Version++
	topic.UpdatedAt = time.Now()

	model := &models.TopicModel{}
	model.FromDomain(topic)
	if err := updateWithVersionCheck(ctx, r.db, model, topic.ID, expected); err != nil {
		topic.Version = expected
		return err
	}
	return nil
}

// Delete removes a topic
func (r *GormTopicRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.TopicModel{}, "id = ?", id).Error
}

func (r *GormTopicRepository) applyFilter(query *gorm.DB, filter forum.TopicFilter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("title ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.PracticeArea != nil {
		query = query.Where("practice_area = ?", *filter.PracticeArea)
	}
	if filter.CreatedByID != nil {
		query = query.Where("created_by_id = ?", *filter.CreatedByID)
	}
	return query
}

var _ forum.TopicRepository = (*GormTopicRepository)(nil)

// GormPostRepository implements forum.PostRepository using GORM
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GormPostRepository
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// FindByID finds a post by ID
func (r *GormPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*forum.Post, error) {
	var model models.PostModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTopic returns a topic's posts oldest first with the total count
func (r *GormPostRepository) FindByTopic(ctx context.Context, topicID uuid.UUID, filter shared.Filter) ([]forum.Post, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.PostModel{}).
		Where("topic_id = ?", topicID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	paged := query.Order("created_at ASC")
	if filter.Page > 0 && filter.PageSize > 0 {
		paged = paged.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var postModels []models.PostModel
	if err := paged.Find(&postModels).Error; err != nil {
		return nil, 0, err
	}

	posts := make([]forum.Post, len(postModels))
	for i, model := range postModels {
		posts[i] = *model.ToDomain()
	}
	return posts, total, nil
}

// Save creates or updates a post
func (r *GormPostRepository) Save(ctx context.Context, post *forum.Post) error {
	model := &models.PostModel{}
	model.FromDomain(post)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a post
func (r *GormPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.PostModel{}, "id = ?", id).Error
}

var _ forum.PostRepository = (*GormPostRepository)(nil)

// GormTopicFollowRepository implements forum.TopicFollowRepository using GORM
type GormTopicFollowRepository struct {
	db *gorm.DB
}

// NewGormTopicFollowRepository creates a new GormTopicFollowRepository
func NewGormTopicFollowRepository(db *gorm.DB) *GormTopicFollowRepository {
	return &GormTopicFollowRepository{db: db}
}

// Find returns the follow record for a topic and user, if any
func (r *GormTopicFollowRepository) Find(ctx context.Context, topicID, userID uuid.UUID) (*forum.TopicFollow, error) {
	var model models.TopicFollowModel
	if err := r.db.WithContext(ctx).
		Where("topic_id = ? AND user_id = ?", topicID, userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindFollowerIDs returns the IDs of everyone following a topic
func (r *GormTopicFollowRepository) FindFollowerIDs(ctx context.Context, topicID uuid.UUID) ([]uuid.UUID, error) {
	var followerIDs []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.TopicFollowModel{}).
		Where("topic_id = ?", topicID).
		Pluck("user_id", &followerIDs).Error; err != nil {
		return nil, err
	}
	return followerIDs, nil
}

// Save creates a follow record
func (r *GormTopicFollowRepository) Save(ctx context.Context, follow *forum.TopicFollow) error {
	model := &models.TopicFollowModel{}
	model.FromDomain(follow)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a follow record
func (r *GormTopicFollowRepository) Delete(ctx context.Context, topicID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("topic_id = ? AND user_id = ?", topicID, userID).
		Delete(&models.TopicFollowModel{}).Error
}

var _ forum.TopicFollowRepository = (*GormTopicFollowRepository)(nil)
