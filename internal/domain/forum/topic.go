package forum

import (
	"time"

	"github.com/google/uuid"

	"github.com/lawmatch/backend/internal/domain/shared"
)

// Topic represents a discussion thread in the community forum
type Topic struct {
	shared.BaseAggregateRoot
	Title          string     `json:"title"`
	PracticeArea   string     `json:"practice_area"`
	CreatedByID    uuid.UUID  `json:"created_by_id"`
	PostCount      int        `json:"post_count"`
	LastActivityAt time.Time  `json:"last_activity_at"`
	LockedAt       *time.Time `json:"locked_at"`
}

// NewTopic creates a new topic
func NewTopic(createdByID uuid.UUID, title, practiceArea string) (*Topic, error) {
	if createdByID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Creator ID cannot be empty")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 200 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 200 characters")
	}

	return &Topic{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
		PracticeArea:      practiceArea,
		CreatedByID:       createdByID,
		LastActivityAt:    time.Now(),
	}, nil
}

// IsLocked returns true once the topic no longer accepts posts
func (t *Topic) IsLocked() bool {
	return t.LockedAt != nil
}

// Lock closes the topic for new posts
func (t *Topic) Lock() error {
	if t.IsLocked() {
		return shared.NewDomainError("INVALID_STATE", "Topic is already locked")
	}
	now := time.Now()
	t.LockedAt = &now
	t.UpdatedAt = now
	t.IncrementVersion()
	return nil
}

// RecordPost bumps the stats after a post lands and raises the reply
// event used for follower fan-out
func (t *Topic) RecordPost(post *Post) error {
	if t.IsLocked() {
		return shared.NewDomainError("INVALID_STATE", "Topic is locked")
	}
	now := time.Now()
	t.PostCount++
	t.LastActivityAt = now
	t.UpdatedAt = now
	t.IncrementVersion()

	t.AddDomainEvent(NewTopicRepliedEvent(t, post))

	return nil
}

var _ shared.AggregateRoot = (*Topic)(nil)

// Post represents a single message in a topic, written in markdown
type Post struct {
	shared.BaseEntity
	TopicID  uuid.UUID `json:"topic_id"`
	AuthorID uuid.UUID `json:"author_id"`
	Body     string    `json:"body"`
	EditedAt *time.Time `json:"edited_at"`
}

// NewPost creates a new post in a topic
func NewPost(topicID, authorID uuid.UUID, body string) (*Post, error) {
	if topicID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TOPIC", "Topic ID cannot be empty")
	}
	if authorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Author ID cannot be empty")
	}
	if body == "" {
		return nil, shared.NewDomainError("INVALID_BODY", "Post body cannot be empty")
	}
	if len(body) > 20000 {
		return nil, shared.NewDomainError("INVALID_BODY", "Post body cannot exceed 20000 characters")
	}

	return &Post{
		BaseEntity: shared.NewBaseEntity(),
		TopicID:    topicID,
		AuthorID:   authorID,
		Body:       body,
	}, nil
}

// Edit replaces the post body
func (p *Post) Edit(body string) error {
	if body == "" {
		return shared.NewDomainError("INVALID_BODY", "Post body cannot be empty")
	}
	now := time.Now()
	p.Body = body
	p.EditedAt = &now
	p.UpdatedAt = now
	return nil
}

// TopicFollow records a user following a topic for reply notifications
type TopicFollow struct {
	shared.BaseEntity
	TopicID uuid.UUID `json:"topic_id"`
	UserID  uuid.UUID `json:"user_id"`
}

// NewTopicFollow creates a new follow record
func NewTopicFollow(topicID, userID uuid.UUID) (*TopicFollow, error) {
	if topicID == uuid.Nil || userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Topic and user IDs cannot be empty")
	}
	return &TopicFollow{
		BaseEntity: shared.NewBaseEntity(),
		TopicID:    topicID,
		UserID:     userID,
	}, nil
}
