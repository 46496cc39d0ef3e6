package forum

import (
	"github.com/google/uuid"

	"github.com/lawmatch/backend/internal/domain/shared"
)

// TopicRepliedEvent is raised when a post lands in a topic, fanning out
// to followers
type TopicRepliedEvent struct {
	shared.BaseDomainEvent
	TopicID    uuid.UUID `json:"topic_id"`
	TopicTitle string    `json:"topic_title"`
	PostID     uuid.UUID `json:"post_id"`
	AuthorID   uuid.UUID `json:"author_id"`
}

// EventType returns the event type name
func (e *TopicRepliedEvent) EventType() string {
	return "TopicReplied"
}

// NewTopicRepliedEvent creates a new TopicRepliedEvent
func NewTopicRepliedEvent(t *Topic, p *Post) *TopicRepliedEvent {
	return &TopicRepliedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("TopicReplied", "Topic", t.ID),
		TopicID:         t.ID,
		TopicTitle:      t.Title,
		PostID:          p.ID,
		AuthorID:        p.AuthorID,
	}
}
