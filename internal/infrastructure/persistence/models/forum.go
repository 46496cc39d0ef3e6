package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/lawmatch/backend/internal/domain/forum"
)

// TopicModel is the persistence model for forum topics.
type TopicModel struct {
	AggregateModel
	Title          string    `gorm:"type:varchar(255);not null"`
	PracticeArea   string    `gorm:"type:varchar(100);index"`
	CreatedByID    uuid.UUID `gorm:"type:uuid;not null;index"`
	PostCount      int       `gorm:"not null;default:0"`
	LastActivityAt time.Time `gorm:"not null;index"`
	LockedAt       *time.Time
}

// TableName returns the table name for GORM
func (TopicModel) TableName() string { return "topics" }

// ToDomain converts the persistence model to a domain Topic
func (m *TopicModel) ToDomain() *forum.Topic {
	return &forum.Topic{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Title:             m.Title,
		PracticeArea:      m.PracticeArea,
		CreatedByID:       m.CreatedByID,
		PostCount:         m.PostCount,
		LastActivityAt:    m.LastActivityAt,
		LockedAt:          m.LockedAt,
	}
}

// FromDomain populates the persistence model from a domain Topic
func (m *TopicModel) FromDomain(t *forum.Topic) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.Title = t.Title
	m.PracticeArea = t.PracticeArea
	m.CreatedByID = t.CreatedByID
	m.PostCount = t.PostCount
	m.LastActivityAt = t.LastActivityAt
	m.LockedAt = t.LockedAt
}

// PostModel is the persistence model for forum posts.
type PostModel struct {
	BaseModel
	TopicID  uuid.UUID `gorm:"type:uuid;not null;index"`
	AuthorID uuid.UUID `gorm:"type:uuid;not null;index"`
	Body     string    `gorm:"type:text;not null"`
	EditedAt *time.Time
}

// TableName returns the table name for GORM
func (PostModel) TableName() string { return "posts" }

// ToDomain converts the persistence model to a domain Post
func (m *PostModel) ToDomain() *forum.Post {
	return &forum.Post{
		BaseEntity: m.BaseModel.ToDomain(),
		TopicID:    m.TopicID,
		AuthorID:   m.AuthorID,
		Body:       m.Body,
		EditedAt:   m.EditedAt,
	}
}

// FromDomain populates the persistence model from a domain Post
func (m *PostModel) FromDomain(p *forum.Post) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.TopicID = p.TopicID
	m.AuthorID = p.AuthorID
	m.Body = p.Body
	m.EditedAt = p.EditedAt
}

// TopicFollowModel is the persistence model for topic follows.
type TopicFollowModel struct {
	BaseModel
	TopicID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_topic_follower"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_topic_follower"`
}

// TableName returns the table name for GORM
func (TopicFollowModel) TableName() string { return "topic_follows" }

// ToDomain converts the persistence model to a domain TopicFollow
func (m *TopicFollowModel) ToDomain() *forum.TopicFollow {
	return &forum.TopicFollow{
		BaseEntity: m.BaseModel.ToDomain(),
		TopicID:    m.TopicID,
		UserID:     m.UserID,
	}
}

// FromDomain populates the persistence model from a domain TopicFollow
func (m *TopicFollowModel) FromDomain(f *forum.TopicFollow) {
	m.FromDomainBaseEntity(f.BaseEntity)
	m.TopicID = f.TopicID
	m.UserID = f.UserID
}
