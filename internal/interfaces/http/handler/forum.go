package handler

import (
	"github.com/gin-gonic/gin"

	forumapp "github.com/lawmatch/backend/internal/application/forum"
	"github.com/lawmatch/backend/internal/interfaces/http/middleware"
)

// ForumHandler handles community forum API endpoints
type ForumHandler struct {
	BaseHandler
	forumService *forumapp.ForumService
}

// NewForumHandler creates a new ForumHandler
func NewForumHandler(forumService *forumapp.ForumService) *ForumHandler {
	return &ForumHandler{forumService: forumService}
}

// CreateTopicRequest represents a request to start a topic
type CreateTopicRequest struct {
	Title        string `json:"title" binding:"required,min=1,max=200"`
	PracticeArea string `json:"practice_area" binding:"omitempty,max=100"`
	Body         string `json:"body" binding:"required,min=1,max=20000"`
}

// PostBodyRequest carries post content for replies and edits
type PostBodyRequest struct {
	Body string `json:"body" binding:"required,min=1,max=20000"`
}

// CreateTopic godoc
// @Summary      Start a topic with an opening post
// @Tags         forum
// @Accept       json
// @Produce      json
// @Param        request body CreateTopicRequest true "Topic"
// @Success      201 {object} dto.Response
// @Security     BearerAuth
// @Router       /forum/topics [post]
func (h *ForumHandler) CreateTopic(c *gin.Context) {
	authorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.forumService.CreateTopic(c.Request.Context(), forumapp.CreateTopicInput{
		AuthorID:     authorID,
		Title:        req.Title,
		PracticeArea: req.PracticeArea,
		Body:         req.Body,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, gin.H{
		"topic": result.Topic,
		"post":  result.Post,
	})
}

// GetTopic godoc
// @Summary      Get a topic by ID
// @Tags         forum
// @Produce      json
// @Param        id path string true "Topic ID" format(uuid)
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /forum/topics/{id} [get]
func (h *ForumHandler) GetTopic(c *gin.Context) {
	topicID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid topic ID format")
		return
	}

	topic, err := h.forumService.GetTopic(c.Request.Context(), topicID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, topic)
}

// ListTopics godoc
// @Summary      List topics, most recent activity first
// @Tags         forum
// @Produce      json
// @Param        practice_area query string false "Practice area filter"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /forum/topics [get]
func (h *ForumHandler) ListTopics(c *gin.Context) {
	page, pageSize := parsePagination(c)

	topics, total, err := h.forumService.ListTopics(c.Request.Context(), forumapp.ListTopicsInput{
		PracticeArea: c.Query("practice_area"),
		Page:         page,
		PageSize:     pageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, topics, total, page, pageSize)
}

// Reply godoc
// @Summary      Reply to a topic
// @Tags         forum
// @Accept       json
// @Produce      json
// @Param        id path string true "Topic ID" format(uuid)
// @Param        request body PostBodyRequest true "Reply body"
// @Success      201 {object} dto.Response
// @Security     BearerAuth
// @Router       /forum/topics/{id}/posts [post]
func (h *ForumHandler) Reply(c *gin.Context) {
	authorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	topicID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid topic ID format")
		return
	}

	var req PostBodyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	post, err := h.forumService.Reply(c.Request.Context(), forumapp.ReplyInput{
		AuthorID: authorID,
		TopicID:  topicID,
		Body:     req.Body,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, post)
}

// ListPosts godoc
// @Summary      List the posts in a topic, oldest first
// @Tags         forum
// @Produce      json
// @Param        id path string true "Topic ID" format(uuid)
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /forum/topics/{id}/posts [get]
func (h *ForumHandler) ListPosts(c *gin.Context) {
	topicID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid topic ID format")
		return
	}

	page, pageSize := parsePagination(c)
	posts, total, err := h.forumService.ListPosts(c.Request.Context(), topicID, page, pageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, posts, total, page, pageSize)
}

// EditPost godoc
// @Summary      Edit one's own post
// @Tags         forum
// @Accept       json
// @Produce      json
// @Param        id path string true "Post ID" format(uuid)
// @Param        request body PostBodyRequest true "New body"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /forum/posts/{id} [put]
func (h *ForumHandler) EditPost(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	postID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid post ID format")
		return
	}

	var req PostBodyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	post, err := h.forumService.EditPost(c.Request.Context(), forumapp.EditPostInput{
		ActorID: actorID,
		PostID:  postID,
		Body:    req.Body,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, post)
}

// LockTopic godoc
// @Summary      Lock a topic (author or support only)
// @Tags         forum
// @Produce      json
// @Param        id path string true "Topic ID" format(uuid)
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /forum/topics/{id}/lock [post]
func (h *ForumHandler) LockTopic(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	topicID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid topic ID format")
		return
	}

	topic, err := h.forumService.LockTopic(c.Request.Context(), actorID, topicID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, topic)
}

// Follow godoc
// @Summary      Follow a topic for reply notifications
// @Tags         forum
// @Param        id path string true "Topic ID" format(uuid)
// @Success      204
// @Security     BearerAuth
// @Router       /forum/topics/{id}/follow [post]
func (h *ForumHandler) Follow(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	topicID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid topic ID format")
		return
	}

	if err := h.forumService.FollowTopic(c.Request.Context(), userID, topicID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Unfollow godoc
// @Summary      Stop following a topic
// @Tags         forum
// @Param        id path string true "Topic ID" format(uuid)
// @Success      204
// @Security     BearerAuth
// @Router       /forum/topics/{id}/follow [delete]
func (h *ForumHandler) Unfollow(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	topicID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid topic ID format")
		return
	}

	if err := h.forumService.UnfollowTopic(c.Request.Context(), userID, topicID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
