package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	marketplaceapp "github.com/lawmatch/backend/internal/application/marketplace"
	"github.com/lawmatch/backend/internal/domain/marketplace"
	"github.com/lawmatch/backend/internal/domain/matter"
	"github.com/lawmatch/backend/internal/interfaces/http/middleware"
)

type postingOp func(ctx context.Context, actorID, postingID uuid.UUID) (*marketplace.PostedMatter, error)

type proposalOp func(ctx context.Context, actorID, proposalID uuid.UUID) (*marketplace.Proposal, error)

// MarketplaceHandler handles posted matter and proposal API endpoints
type MarketplaceHandler struct {
	BaseHandler
	marketplaceService *marketplaceapp.MarketplaceService
}

// NewMarketplaceHandler creates a new MarketplaceHandler
func NewMarketplaceHandler(marketplaceService *marketplaceapp.MarketplaceService) *MarketplaceHandler {
	return &MarketplaceHandler{marketplaceService: marketplaceService}
}

// CreatePostingRequest represents a request to post a matter to the marketplace
type CreatePostingRequest struct {
	Title        string `json:"title" binding:"required,min=1,max=200"`
	Description  string `json:"description" binding:"required,min=1,max=5000"`
	PracticeArea string `json:"practice_area" binding:"required,min=1,max=100"`
	RateType     string `json:"rate_type" binding:"required,oneof=HOURLY FIXED CONTINGENCY ALTERNATIVE"`
	Budget       string `json:"budget" binding:"omitempty"`
	Currency     string `json:"currency" binding:"omitempty,len=3"`
}

// UpdatePostingRequest represents the editable posting fields
type UpdatePostingRequest struct {
	Title        string `json:"title" binding:"required,min=1,max=200"`
	Description  string `json:"description" binding:"required,min=1,max=5000"`
	PracticeArea string `json:"practice_area" binding:"required,min=1,max=100"`
	Budget       string `json:"budget" binding:"omitempty"`
	Currency     string `json:"currency" binding:"omitempty,len=3"`
}

// SubmitProposalRequest represents a mediator's proposal on a posting
type SubmitProposalRequest struct {
	PostingID   string `json:"posting_id" binding:"required,uuid"`
	RateType    string `json:"rate_type" binding:"required,oneof=HOURLY FIXED CONTINGENCY ALTERNATIVE"`
	Rate        string `json:"rate" binding:"required"`
	Currency    string `json:"currency" binding:"required,len=3"`
	Description string `json:"description" binding:"omitempty,max=5000"`
}

// CreatePosting godoc
// @Summary      Post a matter to the marketplace
// @Tags         marketplace
// @Accept       json
// @Produce      json
// @Param        request body CreatePostingRequest true "Posting"
// @Success      201 {object} dto.Response
// @Security     BearerAuth
// @Router       /marketplace/postings [post]
func (h *MarketplaceHandler) CreatePosting(c *gin.Context) {
	clientID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreatePostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	posting, err := h.marketplaceService.CreatePosting(c.Request.Context(), marketplaceapp.CreatePostingInput{
		ClientID:     clientID,
		Title:        req.Title,
		Description:  req.Description,
		PracticeArea: req.PracticeArea,
		RateType:     matter.RateType(req.RateType),
		Budget:       req.Budget,
		Currency:     req.Currency,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, posting)
}

// GetPosting godoc
// @Summary      Get a marketplace posting by ID
// @Tags         marketplace
// @Produce      json
// @Param        id path string true "Posting ID" format(uuid)
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /marketplace/postings/{id} [get]
func (h *MarketplaceHandler) GetPosting(c *gin.Context) {
	postingID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid posting ID format")
		return
	}

	posting, err := h.marketplaceService.GetPosting(c.Request.Context(), postingID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, posting)
}

// BrowsePostings godoc
// @Summary      Browse active marketplace postings
// @Tags         marketplace
// @Produce      json
// @Param        practice_area query string false "Practice area filter"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /marketplace/postings [get]
func (h *MarketplaceHandler) BrowsePostings(c *gin.Context) {
	page, pageSize := parsePagination(c)

	postings, total, err := h.marketplaceService.BrowsePostings(c.Request.Context(), marketplaceapp.BrowsePostingsInput{
		PracticeArea: c.Query("practice_area"),
		Page:         page,
		PageSize:     pageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, postings, total, page, pageSize)
}

// ListMyPostings godoc
// @Summary      List the current client's postings
// @Tags         marketplace
// @Produce      json
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /marketplace/postings/mine [get]
func (h *MarketplaceHandler) ListMyPostings(c *gin.Context) {
	clientID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	page, pageSize := parsePagination(c)
	postings, total, err := h.marketplaceService.ListMyPostings(c.Request.Context(), clientID, page, pageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, postings, total, page, pageSize)
}

// UpdatePosting godoc
// @Summary      Update an active posting
// @Tags         marketplace
// @Accept       json
// @Produce      json
// @Param        id path string true "Posting ID" format(uuid)
// @Param        request body UpdatePostingRequest true "Posting update"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /marketplace/postings/{id} [put]
func (h *MarketplaceHandler) UpdatePosting(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	postingID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid posting ID format")
		return
	}

	var req UpdatePostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	posting, err := h.marketplaceService.UpdatePosting(c.Request.Context(), marketplaceapp.UpdatePostingInput{
		ActorID:      actorID,
		PostingID:    postingID,
		Title:        req.Title,
		Description:  req.Description,
		PracticeArea: req.PracticeArea,
		Budget:       req.Budget,
		Currency:     req.Currency,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, posting)
}

// DeactivatePosting godoc
// @Summary      Take a posting off the marketplace
// @Tags         marketplace
// @Produce      json
// @Param        id path string true "Posting ID" format(uuid)
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /marketplace/postings/{id}/deactivate [post]
func (h *MarketplaceHandler) DeactivatePosting(c *gin.Context) {
	h.postingTransition(c, h.marketplaceService.DeactivatePosting)
}

// ReactivatePosting godoc
// @Summary      Put a posting back on the marketplace
// @Tags         marketplace
// @Produce      json
// @Param        id path string true "Posting ID" format(uuid)
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /marketplace/postings/{id}/reactivate [post]
func (h *MarketplaceHandler) ReactivatePosting(c *gin.Context) {
	h.postingTransition(c, h.marketplaceService.ReactivatePosting)
}

func (h *MarketplaceHandler) postingTransition(c *gin.Context, op postingOp) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	postingID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid posting ID format")
		return
	}

	posting, err := op(c.Request.Context(), actorID, postingID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, posting)
}

// SubmitProposal godoc
// @Summary      Submit a proposal on a posting (mediator only)
// @Tags         marketplace
// @Accept       json
// @Produce      json
// @Param        request body SubmitProposalRequest true "Proposal"
// @Success      201 {object} dto.Response
// @Security     BearerAuth
// @Router       /marketplace/proposals [post]
func (h *MarketplaceHandler) SubmitProposal(c *gin.Context) {
	mediatorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req SubmitProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	postingID, err := uuid.Parse(req.PostingID)
	if err != nil {
		h.BadRequest(c, "Invalid posting ID format")
		return
	}

	proposal, err := h.marketplaceService.SubmitProposal(c.Request.Context(), marketplaceapp.SubmitProposalInput{
		MediatorID:  mediatorID,
		PostingID:   postingID,
		RateType:    matter.RateType(req.RateType),
		Rate:        req.Rate,
		Currency:    req.Currency,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, proposal)
}

// WithdrawProposal godoc
// @Summary      Withdraw a pending proposal (mediator only)
// @Tags         marketplace
// @Produce      json
// @Param        id path string true "Proposal ID" format(uuid)
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /marketplace/proposals/{id}/withdraw [post]
func (h *MarketplaceHandler) WithdrawProposal(c *gin.Context) {
	h.proposalTransition(c, h.marketplaceService.WithdrawProposal)
}

// RevokeProposal godoc
// @Summary      Revoke a pending proposal (posting owner only)
// @Tags         marketplace
// @Produce      json
// @Param        id path string true "Proposal ID" format(uuid)
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /marketplace/proposals/{id}/revoke [post]
func (h *MarketplaceHandler) RevokeProposal(c *gin.Context) {
	h.proposalTransition(c, h.marketplaceService.RevokeProposal)
}

func (h *MarketplaceHandler) proposalTransition(c *gin.Context, op proposalOp) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	proposalID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid proposal ID format")
		return
	}

	proposal, err := op(c.Request.Context(), actorID, proposalID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, proposal)
}

// AcceptProposal godoc
// @Summary      Accept a proposal and open a draft matter from it
// @Tags         marketplace
// @Produce      json
// @Param        id path string true "Proposal ID" format(uuid)
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /marketplace/proposals/{id}/accept [post]
func (h *MarketplaceHandler) AcceptProposal(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	proposalID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid proposal ID format")
		return
	}

	result, err := h.marketplaceService.AcceptProposal(c.Request.Context(), marketplaceapp.AcceptProposalInput{
		ActorID:    actorID,
		ProposalID: proposalID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{
		"proposal": result.Proposal,
		"matter":   result.Matter,
	})
}

// ListProposalsForPosting godoc
// @Summary      List proposals on a posting (posting owner only)
// @Tags         marketplace
// @Produce      json
// @Param        id path string true "Posting ID" format(uuid)
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /marketplace/postings/{id}/proposals [get]
func (h *MarketplaceHandler) ListProposalsForPosting(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	postingID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid posting ID format")
		return
	}

	page, pageSize := parsePagination(c)
	proposals, total, err := h.marketplaceService.ListProposalsForPosting(c.Request.Context(), marketplaceapp.ListProposalsInput{
		ActorID:   actorID,
		PostingID: postingID,
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, proposals, total, page, pageSize)
}

// ListMyProposals godoc
// @Summary      List the current mediator's proposals
// @Tags         marketplace
// @Produce      json
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /marketplace/proposals/mine [get]
func (h *MarketplaceHandler) ListMyProposals(c *gin.Context) {
	mediatorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	page, pageSize := parsePagination(c)
	proposals, total, err := h.marketplaceService.ListMyProposals(c.Request.Context(), mediatorID, page, pageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, proposals, total, page, pageSize)
}
