package forum

import (
	"github.com/google/uuid"

	"github.com/lawmatch/backend/internal/domain/forum"
)

// CreateTopicInput contains the input for starting a topic with its
// opening post
type CreateTopicInput struct {
	AuthorID     uuid.UUID
	Title        string
	PracticeArea string
	Body         string
}

// CreateTopicResult carries the new topic and its opening post
type CreateTopicResult struct {
	Topic *forum.Topic
	Post  *forum.Post
}

// ReplyInput contains the input for posting a reply
type ReplyInput struct {
	AuthorID uuid.UUID
	TopicID  uuid.UUID
	Body     string
}

// EditPostInput contains the input for editing a post
type EditPostInput struct {
	ActorID uuid.UUID
	PostID  uuid.UUID
	Body    string
}

// ListTopicsInput contains the topic listing parameters
type ListTopicsInput struct {
	PracticeArea string
	Page         int
	PageSize     int
}
