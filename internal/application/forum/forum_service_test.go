package forum

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lawmatch/backend/internal/domain/forum"
	"github.com/lawmatch/backend/internal/domain/identity"
	"github.com/lawmatch/backend/internal/domain/shared"
)

// MockTopicRepository is a mock implementation of TopicRepository
type MockTopicRepository struct {
	mock.Mock
}

func (m *MockTopicRepository) FindByID(ctx context.Context, id uuid.UUID) (*forum.Topic, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*forum.Topic), args.Error(1)
}

func (m *MockTopicRepository) FindAll(ctx context.Context, filter forum.TopicFilter) ([]forum.Topic, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]forum.Topic), args.Error(1)
}

func (m *MockTopicRepository) Count(ctx context.Context, filter forum.TopicFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTopicRepository) Save(ctx context.Context, t *forum.Topic) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTopicRepository) SaveWithLock(ctx context.Context, t *forum.Topic) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTopicRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPostRepository is a mock implementation of PostRepository
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*forum.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*forum.Post), args.Error(1)
}

func (m *MockPostRepository) FindByTopic(ctx context.Context, topicID uuid.UUID, filter shared.Filter) ([]forum.Post, int64, error) {
	args := m.Called(ctx, topicID, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]forum.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) Save(ctx context.Context, p *forum.Post) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTopicFollowRepository is a mock implementation of TopicFollowRepository
type MockTopicFollowRepository struct {
	mock.Mock
}

func (m *MockTopicFollowRepository) Find(ctx context.Context, topicID, userID uuid.UUID) (*forum.TopicFollow, error) {
	args := m.Called(ctx, topicID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*forum.TopicFollow), args.Error(1)
}

func (m *MockTopicFollowRepository) FindFollowerIDs(ctx context.Context, topicID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, topicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockTopicFollowRepository) Save(ctx context.Context, f *forum.TopicFollow) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockTopicFollowRepository) Delete(ctx context.Context, topicID, userID uuid.UUID) error {
	args := m.Called(ctx, topicID, userID)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter identity.UserFilter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context, filter identity.UserFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SaveWithLock(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

type serviceMocks struct {
	topicRepo  *MockTopicRepository
	postRepo   *MockPostRepository
	followRepo *MockTopicFollowRepository
	userRepo   *MockUserRepository
	publisher  *MockEventPublisher
}

func newService(t *testing.T) (*ForumService, *serviceMocks) {
	t.Helper()
	m := &serviceMocks{
		topicRepo:  new(MockTopicRepository),
		postRepo:   new(MockPostRepository),
		followRepo: new(MockTopicFollowRepository),
		userRepo:   new(MockUserRepository),
		publisher:  new(MockEventPublisher),
	}
	svc := NewForumService(m.topicRepo, m.postRepo, m.followRepo, m.userRepo, m.publisher, zap.NewNop())
	return svc, m
}

func TestCreateTopic(t *testing.T) {
	ctx := context.Background()
	authorID := uuid.New()

	t.Run("creates a topic with its opening post and auto-follow", func(t *testing.T) {
		svc, m := newService(t)
		m.topicRepo.On("Save", ctx, mock.AnythingOfType("*forum.Topic")).Return(nil)
		m.postRepo.On("Save", ctx, mock.AnythingOfType("*forum.Post")).Return(nil)
		m.followRepo.On("Save", ctx, mock.AnythingOfType("*forum.TopicFollow")).Return(nil)

		result, err := svc.CreateTopic(ctx, CreateTopicInput{
			AuthorID:     authorID,
			Title:        "Fee splitting in co-mediation",
			PracticeArea: "Family",
			Body:         "How do you structure fees when two mediators share a session?",
		})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Topic.PostCount)
		assert.Equal(t, result.Topic.ID, result.Post.TopicID)
		m.followRepo.AssertCalled(t, "Save", ctx, mock.AnythingOfType("*forum.TopicFollow"))
		m.publisher.AssertNotCalled(t, "Publish", ctx, mock.Anything)
	})

	t.Run("rejects an empty opening post", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.CreateTopic(ctx, CreateTopicInput{AuthorID: authorID, Title: "Empty"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_BODY", domainErr.Code)
	})
}

func TestReply(t *testing.T) {
	ctx := context.Background()
	authorID := uuid.New()
	replierID := uuid.New()

	t.Run("reply bumps stats and publishes the reply event", func(t *testing.T) {
		svc, m := newService(t)
		topic, err := forum.NewTopic(authorID, "Fee splitting", "Family")
		require.NoError(t, err)

		m.topicRepo.On("FindByID", ctx, topic.ID).Return(topic, nil)
		m.postRepo.On("Save", ctx, mock.AnythingOfType("*forum.Post")).Return(nil)
		m.topicRepo.On("SaveWithLock", ctx, topic).Return(nil)
		m.publisher.On("Publish", ctx, mock.Anything).Return(nil)

		post, err := svc.Reply(ctx, ReplyInput{
			AuthorID: replierID,
			TopicID:  topic.ID,
			Body:     "We split 60/40 based on preparation load.",
		})
		require.NoError(t, err)
		assert.Equal(t, replierID, post.AuthorID)
		assert.Equal(t, 1, topic.PostCount)
		m.publisher.AssertCalled(t, "Publish", ctx, mock.Anything)
	})

	t.Run("locked topics take no replies", func(t *testing.T) {
		svc, m := newService(t)
		topic, err := forum.NewTopic(authorID, "Fee splitting", "Family")
		require.NoError(t, err)
		require.NoError(t, topic.Lock())

		m.topicRepo.On("FindByID", ctx, topic.ID).Return(topic, nil)

		_, err = svc.Reply(ctx, ReplyInput{AuthorID: replierID, TopicID: topic.ID, Body: "Too late"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}

func TestEditPost(t *testing.T) {
	ctx := context.Background()
	authorID := uuid.New()

	t.Run("author edits their post", func(t *testing.T) {
		svc, m := newService(t)
		topic, err := forum.NewTopic(authorID, "Fee splitting", "Family")
		require.NoError(t, err)
		post, err := forum.NewPost(topic.ID, authorID, "Original")
		require.NoError(t, err)

		m.postRepo.On("FindByID", ctx, post.ID).Return(post, nil)
		m.topicRepo.On("FindByID", ctx, topic.ID).Return(topic, nil)
		m.postRepo.On("Save", ctx, post).Return(nil)

		edited, err := svc.EditPost(ctx, EditPostInput{ActorID: authorID, PostID: post.ID, Body: "Revised"})
		require.NoError(t, err)
		assert.Equal(t, "Revised", edited.Body)
		assert.NotNil(t, edited.EditedAt)
	})

	t.Run("another user cannot edit it", func(t *testing.T) {
		svc, m := newService(t)
		post, err := forum.NewPost(uuid.New(), authorID, "Original")
		require.NoError(t, err)

		m.postRepo.On("FindByID", ctx, post.ID).Return(post, nil)

		_, err = svc.EditPost(ctx, EditPostInput{ActorID: uuid.New(), PostID: post.ID, Body: "Hijack"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})
}

func TestLockTopic(t *testing.T) {
	ctx := context.Background()
	authorID := uuid.New()

	t.Run("support can lock any topic", func(t *testing.T) {
		svc, m := newService(t)
		topic, err := forum.NewTopic(authorID, "Fee splitting", "Family")
		require.NoError(t, err)
		support, err := identity.NewUser("support@lawmatch.test", "hash", "Sam", "Ops", identity.UserKindSupport)
		require.NoError(t, err)

		m.topicRepo.On("FindByID", ctx, topic.ID).Return(topic, nil)
		m.userRepo.On("FindByID", ctx, support.ID).Return(support, nil)
		m.topicRepo.On("SaveWithLock", ctx, topic).Return(nil)

		locked, err := svc.LockTopic(ctx, support.ID, topic.ID)
		require.NoError(t, err)
		assert.True(t, locked.IsLocked())
	})

	t.Run("an unrelated mediator cannot lock it", func(t *testing.T) {
		svc, m := newService(t)
		topic, err := forum.NewTopic(authorID, "Fee splitting", "Family")
		require.NoError(t, err)
		mediator, err := identity.NewUser("mediator@lawmatch.test", "hash", "Max", "Reed", identity.UserKindMediator)
		require.NoError(t, err)

		m.topicRepo.On("FindByID", ctx, topic.ID).Return(topic, nil)
		m.userRepo.On("FindByID", ctx, mediator.ID).Return(mediator, nil)

		_, err = svc.LockTopic(ctx, mediator.ID, topic.ID)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})
}

func TestFollowTopic(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("following twice is a no-op", func(t *testing.T) {
		svc, m := newService(t)
		topic, err := forum.NewTopic(uuid.New(), "Fee splitting", "Family")
		require.NoError(t, err)
		follow, err := forum.NewTopicFollow(topic.ID, userID)
		require.NoError(t, err)

		m.topicRepo.On("FindByID", ctx, topic.ID).Return(topic, nil)
		m.followRepo.On("Find", ctx, topic.ID, userID).Return(follow, nil)

		require.NoError(t, svc.FollowTopic(ctx, userID, topic.ID))
		m.followRepo.AssertNotCalled(t, "Save", ctx, mock.Anything)
	})
}
