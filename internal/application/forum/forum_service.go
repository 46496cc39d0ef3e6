package forum

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lawmatch/backend/internal/domain/forum"
	"github.com/lawmatch/backend/internal/domain/identity"
	"github.com/lawmatch/backend/internal/domain/shared"
)

// ForumService manages community topics, posts and follows. Replies
// raise events consumed by the notification fan-out.
type ForumService struct {
	topicRepo      forum.TopicRepository
	postRepo       forum.PostRepository
	followRepo     forum.TopicFollowRepository
	userRepo       identity.UserRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewForumService creates a new forum service
func NewForumService(
	topicRepo forum.TopicRepository,
	postRepo forum.PostRepository,
	followRepo forum.TopicFollowRepository,
	userRepo identity.UserRepository,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
) *ForumService {
	return &ForumService{
		topicRepo:      topicRepo,
		postRepo:       postRepo,
		followRepo:     followRepo,
		userRepo:       userRepo,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// CreateTopic starts a topic with its opening post. The author follows
// the topic automatically.
func (s *ForumService) CreateTopic(ctx context.Context, input CreateTopicInput) (*CreateTopicResult, error) {
	topic, err := forum.NewTopic(input.AuthorID, input.Title, input.PracticeArea)
	if err != nil {
		return nil, err
	}

	post, err := forum.NewPost(topic.ID, input.AuthorID, input.Body)
	if err != nil {
		return nil, err
	}

	if err := topic.RecordPost(post); err != nil {
		return nil, err
	}
	// the opening post does not notify anyone
	topic.ClearDomainEvents()

	if err := s.topicRepo.Save(ctx, topic); err != nil {
		s.logger.Error("Failed to save topic", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create topic")
	}
	if err := s.postRepo.Save(ctx, post); err != nil {
		s.logger.Error("Failed to save opening post", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create topic")
	}

	if follow, err := forum.NewTopicFollow(topic.ID, input.AuthorID); err == nil {
		if err := s.followRepo.Save(ctx, follow); err != nil {
			s.logger.Warn("Failed to auto-follow new topic",
				zap.String("topic_id", topic.ID.String()),
				zap.Error(err))
		}
	}

	s.logger.Info("Topic created",
		zap.String("topic_id", topic.ID.String()),
		zap.String("author_id", input.AuthorID.String()),
		zap.String("practice_area", input.PracticeArea))

	return &CreateTopicResult{Topic: topic, Post: post}, nil
}

// GetTopic returns a single topic
func (s *ForumService) GetTopic(ctx context.Context, topicID uuid.UUID) (*forum.Topic, error) {
	topic, err := s.topicRepo.FindByID(ctx, topicID)
	if err != nil {
		return nil, shared.NewDomainError("TOPIC_NOT_FOUND", "Topic not found")
	}
	return topic, nil
}

// ListTopics lists topics, optionally narrowed by practice area
func (s *ForumService) ListTopics(ctx context.Context, input ListTopicsInput) ([]forum.Topic, int64, error) {
	filter := forum.TopicFilter{
		Filter: shared.Filter{Page: input.Page, PageSize: input.PageSize, OrderBy: "last_activity_at", OrderDir: "desc"},
	}
	if input.PracticeArea != "" {
		filter.PracticeArea = &input.PracticeArea
	}

	topics, err := s.topicRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list topics")
	}
	total, err := s.topicRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to count topics")
	}
	return topics, total, nil
}

// Reply posts a reply in an unlocked topic and raises the reply event
// for follower fan-out
func (s *ForumService) Reply(ctx context.Context, input ReplyInput) (*forum.Post, error) {
	topic, err := s.topicRepo.FindByID(ctx, input.TopicID)
	if err != nil {
		return nil, shared.NewDomainError("TOPIC_NOT_FOUND", "Topic not found")
	}

	post, err := forum.NewPost(topic.ID, input.AuthorID, input.Body)
	if err != nil {
		return nil, err
	}

	if err := topic.RecordPost(post); err != nil {
		return nil, err
	}

	if err := s.postRepo.Save(ctx, post); err != nil {
		s.logger.Error("Failed to save post", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to post reply")
	}
	if err := s.topicRepo.SaveWithLock(ctx, topic); err != nil {
		s.logger.Error("Failed to update topic stats",
			zap.String("topic_id", topic.ID.String()),
			zap.Error(err))
	}

	s.publishEvents(ctx, topic)

	return post, nil
}

// ListPosts lists posts in a topic, oldest first
func (s *ForumService) ListPosts(ctx context.Context, topicID uuid.UUID, page, pageSize int) ([]forum.Post, int64, error) {
	posts, total, err := s.postRepo.FindByTopic(ctx, topicID, shared.Filter{Page: page, PageSize: pageSize, OrderBy: "created_at", OrderDir: "asc"})
	if err != nil {
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list posts")
	}
	return posts, total, nil
}

// EditPost lets the author revise their post
func (s *ForumService) EditPost(ctx context.Context, input EditPostInput) (*forum.Post, error) {
	post, err := s.postRepo.FindByID(ctx, input.PostID)
	if err != nil {
		return nil, shared.NewDomainError("POST_NOT_FOUND", "Post not found")
	}
	if post.AuthorID != input.ActorID {
		return nil, shared.NewDomainError("FORBIDDEN", "Post belongs to another user")
	}

	topic, err := s.topicRepo.FindByID(ctx, post.TopicID)
	if err != nil {
		return nil, shared.NewDomainError("TOPIC_NOT_FOUND", "Topic not found")
	}
	if topic.IsLocked() {
		return nil, shared.NewDomainError("INVALID_STATE", "Topic is locked")
	}

	if err := post.Edit(input.Body); err != nil {
		return nil, err
	}

	if err := s.postRepo.Save(ctx, post); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to edit post")
	}
	return post, nil
}

// LockTopic closes a topic for new posts. Only the topic's creator or a
// support user may lock it.
func (s *ForumService) LockTopic(ctx context.Context, actorID, topicID uuid.UUID) (*forum.Topic, error) {
	topic, err := s.topicRepo.FindByID(ctx, topicID)
	if err != nil {
		return nil, shared.NewDomainError("TOPIC_NOT_FOUND", "Topic not found")
	}

	if topic.CreatedByID != actorID {
		actor, err := s.userRepo.FindByID(ctx, actorID)
		if err != nil || actor.Kind != identity.UserKindSupport {
			return nil, shared.NewDomainError("FORBIDDEN", "Only the creator or support can lock a topic")
		}
	}

	if err := topic.Lock(); err != nil {
		return nil, err
	}

	if err := s.topicRepo.SaveWithLock(ctx, topic); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to lock topic")
	}

	s.logger.Info("Topic locked",
		zap.String("topic_id", topic.ID.String()),
		zap.String("actor_id", actorID.String()))

	return topic, nil
}

// FollowTopic subscribes the user to reply notifications. Following an
// already followed topic is a no-op.
func (s *ForumService) FollowTopic(ctx context.Context, userID, topicID uuid.UUID) error {
	if _, err := s.topicRepo.FindByID(ctx, topicID); err != nil {
		return shared.NewDomainError("TOPIC_NOT_FOUND", "Topic not found")
	}

	if existing, err := s.followRepo.Find(ctx, topicID, userID); err == nil && existing != nil {
		return nil
	}

	follow, err := forum.NewTopicFollow(topicID, userID)
	if err != nil {
		return err
	}

	if err := s.followRepo.Save(ctx, follow); err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to follow topic")
	}
	return nil
}

// UnfollowTopic removes the user's follow
func (s *ForumService) UnfollowTopic(ctx context.Context, userID, topicID uuid.UUID) error {
	if err := s.followRepo.Delete(ctx, topicID, userID); err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to unfollow topic")
	}
	return nil
}

func (s *ForumService) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
	events := aggregate.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish forum events", zap.Error(err))
	}
	aggregate.ClearDomainEvents()
}
