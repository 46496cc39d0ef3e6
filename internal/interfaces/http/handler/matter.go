package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	matterapp "github.com/lawmatch/backend/internal/application/matter"
	"github.com/lawmatch/backend/internal/domain/matter"
	"github.com/lawmatch/backend/internal/interfaces/http/middleware"
)

// MatterHandler handles matter lifecycle API endpoints
type MatterHandler struct {
	BaseHandler
	matterService *matterapp.MatterService
}

// NewMatterHandler creates a new MatterHandler
func NewMatterHandler(matterService *matterapp.MatterService) *MatterHandler {
	return &MatterHandler{matterService: matterService}
}

// CreateMatterRequest represents a request to create a draft matter
type CreateMatterRequest struct {
	ClientID    string `json:"client_id" binding:"required,uuid"`
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"omitempty,max=5000"`
	RateType    string `json:"rate_type" binding:"required,oneof=HOURLY FIXED CONTINGENCY ALTERNATIVE"`
	Rate        string `json:"rate" binding:"required"`
	Currency    string `json:"currency" binding:"omitempty,len=3"`
	City        string `json:"city" binding:"omitempty,max=100"`
	State       string `json:"state" binding:"omitempty,max=100"`
	Country     string `json:"country" binding:"omitempty,max=100"`
}

// UpdateMatterRequest represents a request to update a matter's editable fields
type UpdateMatterRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"omitempty,max=5000"`
	City        string `json:"city" binding:"omitempty,max=100"`
	State       string `json:"state" binding:"omitempty,max=100"`
	Country     string `json:"country" binding:"omitempty,max=100"`
}

// CloseMatterRequest represents a request to close a matter
type CloseMatterRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// SendReferralRequest represents a request to refer a matter to another mediator
type SendReferralRequest struct {
	ToMediatorID string `json:"to_mediator_id" binding:"required,uuid"`
	Message      string `json:"message" binding:"omitempty,max=2000"`
}

// ResolveReferralRequest represents a referral decision
type ResolveReferralRequest struct {
	Accept bool `json:"accept"`
}

// Create godoc
// @Summary      Create a draft matter
// @Tags         matters
// @Accept       json
// @Produce      json
// @Param        request body CreateMatterRequest true "Matter creation request"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Security     BearerAuth
// @Router       /matters [post]
func (h *MatterHandler) Create(c *gin.Context) {
	mediatorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateMatterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	m, err := h.matterService.CreateMatter(c.Request.Context(), matterapp.CreateMatterInput{
		MediatorID:  mediatorID,
		ClientID:    clientID,
		Title:       req.Title,
		Description: req.Description,
		RateType:    matter.RateType(req.RateType),
		Rate:        req.Rate,
		Currency:    req.Currency,
		City:        req.City,
		State:       req.State,
		Country:     req.Country,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, m)
}

// Get godoc
// @Summary      Get a matter by ID
// @Tags         matters
// @Produce      json
// @Param        id path string true "Matter ID" format(uuid)
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /matters/{id} [get]
func (h *MatterHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	matterID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid matter ID format")
		return
	}

	m, err := h.matterService.GetMatter(c.Request.Context(), userID, matterID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, m)
}

// List godoc
// @Summary      List matters visible to the current user
// @Tags         matters
// @Produce      json
// @Param        status query string false "Matter status filter"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /matters [get]
func (h *MatterHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	page, pageSize := parsePagination(c)
	input := matterapp.ListMattersInput{
		UserID:   userID,
		Page:     page,
		PageSize: pageSize,
	}
	if v := c.Query("status"); v != "" {
		status := matter.MatterStatus(v)
		input.Status = &status
	}

	result, err := h.matterService.ListMatters(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update godoc
// @Summary      Update a matter's editable fields
// @Tags         matters
// @Accept       json
// @Produce      json
// @Param        id path string true "Matter ID" format(uuid)
// @Param        request body UpdateMatterRequest true "Matter update"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /matters/{id} [put]
func (h *MatterHandler) Update(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	matterID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid matter ID format")
		return
	}

	var req UpdateMatterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	m, err := h.matterService.UpdateMatter(c.Request.Context(), matterapp.UpdateMatterInput{
		ActorID:     actorID,
		MatterID:    matterID,
		Title:       req.Title,
		Description: req.Description,
		City:        req.City,
		State:       req.State,
		Country:     req.Country,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, m)
}

// Open godoc
// @Summary      Open a draft matter for active work
// @Tags         matters
// @Produce      json
// @Param        id path string true "Matter ID" format(uuid)
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /matters/{id}/open [post]
func (h *MatterHandler) Open(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	matterID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid matter ID format")
		return
	}

	m, err := h.matterService.OpenMatter(c.Request.Context(), actorID, matterID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, m)
}

// Close godoc
// @Summary      Close a matter
// @Tags         matters
// @Accept       json
// @Produce      json
// @Param        id path string true "Matter ID" format(uuid)
// @Param        request body CloseMatterRequest true "Close reason"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /matters/{id}/close [post]
func (h *MatterHandler) Close(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	matterID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid matter ID format")
		return
	}

	var req CloseMatterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	m, err := h.matterService.CloseMatter(c.Request.Context(), matterapp.CloseMatterInput{
		ActorID:  actorID,
		MatterID: matterID,
		Reason:   req.Reason,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, m)
}

// Delete godoc
// @Summary      Delete a draft matter
// @Tags         matters
// @Produce      json
// @Param        id path string true "Matter ID" format(uuid)
// @Success      204
// @Failure      422 {object} dto.Response "Matter is no longer a draft"
// @Security     BearerAuth
// @Router       /matters/{id} [delete]
func (h *MatterHandler) Delete(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	matterID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid matter ID format")
		return
	}

	if err := h.matterService.DeleteDraft(c.Request.Context(), actorID, matterID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ShareMatterRequest identifies the user gaining or losing access
type ShareMatterRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

// Share godoc
// @Summary      Share a matter with another user
// @Tags         matters
// @Accept       json
// @Produce      json
// @Param        id path string true "Matter ID" format(uuid)
// @Param        request body ShareMatterRequest true "User to share with"
// @Success      204
// @Security     BearerAuth
// @Router       /matters/{id}/share [post]
func (h *MatterHandler) Share(c *gin.Context) {
	h.resolveShare(c, h.matterService.ShareMatter)
}

// Unshare godoc
// @Summary      Revoke a user's access to a matter
// @Tags         matters
// @Accept       json
// @Produce      json
// @Param        id path string true "Matter ID" format(uuid)
// @Param        request body ShareMatterRequest true "User to unshare"
// @Success      204
// @Security     BearerAuth
// @Router       /matters/{id}/unshare [post]
func (h *MatterHandler) Unshare(c *gin.Context) {
	h.resolveShare(c, h.matterService.UnshareMatter)
}

func (h *MatterHandler) resolveShare(c *gin.Context, apply func(ctx context.Context, input matterapp.ShareMatterInput) error) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	matterID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid matter ID format")
		return
	}

	var req ShareMatterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		h.BadRequest(c, "Invalid user ID format")
		return
	}

	if err := apply(c.Request.Context(), matterapp.ShareMatterInput{
		ActorID:  actorID,
		MatterID: matterID,
		UserID:   userID,
	}); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// SendReferral godoc
// @Summary      Refer a matter to another mediator
// @Tags         matters
// @Accept       json
// @Produce      json
// @Param        id path string true "Matter ID" format(uuid)
// @Param        request body SendReferralRequest true "Referral request"
// @Success      201 {object} dto.Response
// @Security     BearerAuth
// @Router       /matters/{id}/referrals [post]
func (h *MatterHandler) SendReferral(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	matterID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid matter ID format")
		return
	}

	var req SendReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	toMediatorID, err := uuid.Parse(req.ToMediatorID)
	if err != nil {
		h.BadRequest(c, "Invalid mediator ID format")
		return
	}

	referral, err := h.matterService.SendReferral(c.Request.Context(), matterapp.SendReferralInput{
		ActorID:      actorID,
		MatterID:     matterID,
		ToMediatorID: toMediatorID,
		Message:      req.Message,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, referral)
}

// ListReferrals godoc
// @Summary      List referrals for a matter
// @Tags         matters
// @Produce      json
// @Param        id path string true "Matter ID" format(uuid)
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /matters/{id}/referrals [get]
func (h *MatterHandler) ListReferrals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	matterID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid matter ID format")
		return
	}

	referrals, err := h.matterService.ListReferrals(c.Request.Context(), userID, matterID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, referrals)
}

// ListPendingReferrals godoc
// @Summary      List referrals waiting on the current mediator
// @Tags         matters
// @Produce      json
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /referrals/pending [get]
func (h *MatterHandler) ListPendingReferrals(c *gin.Context) {
	mediatorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	referrals, err := h.matterService.ListPendingReferrals(c.Request.Context(), mediatorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, referrals)
}

// ResolveReferral godoc
// @Summary      Accept or decline a referral
// @Tags         matters
// @Accept       json
// @Produce      json
// @Param        id path string true "Referral ID" format(uuid)
// @Param        request body ResolveReferralRequest true "Decision"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /referrals/{id}/resolve [post]
func (h *MatterHandler) ResolveReferral(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	referralID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid referral ID format")
		return
	}

	var req ResolveReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	m, err := h.matterService.ResolveReferral(c.Request.Context(), matterapp.ResolveReferralInput{
		ActorID:    actorID,
		ReferralID: referralID,
		Accept:     req.Accept,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, m)
}
