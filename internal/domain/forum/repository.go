package forum

import (
	"context"

	"github.com/google/uuid"

	"github.com/lawmatch/backend/internal/domain/shared"
)

// TopicFilter defines filtering options for topic queries
type TopicFilter struct {
	shared.Filter
	PracticeArea *string
	CreatedByID  *uuid.UUID
}

// TopicRepository defines the interface for topic persistence
type TopicRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Topic, error)
	FindAll(ctx context.Context, filter TopicFilter) ([]Topic, error)
	Count(ctx context.Context, filter TopicFilter) (int64, error)
	Save(ctx context.Context, t *Topic) error
	SaveWithLock(ctx context.Context, t *Topic) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PostRepository defines the interface for post persistence
type PostRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Post, error)
	FindByTopic(ctx context.Context, topicID uuid.UUID, filter shared.Filter) ([]Post, int64, error)
	Save(ctx context.Context, p *Post) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TopicFollowRepository defines the interface for follow persistence
type TopicFollowRepository interface {
	Find(ctx context.Context, topicID, userID uuid.UUID) (*TopicFollow, error)
	FindFollowerIDs(ctx context.Context, topicID uuid.UUID) ([]uuid.UUID, error)
	Save(ctx context.Context, f *TopicFollow) error
	Delete(ctx context.Context, topicID, userID uuid.UUID) error
}
