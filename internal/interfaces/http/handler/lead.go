package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	leadsapp "github.com/lawmatch/backend/internal/application/leads"
	"github.com/lawmatch/backend/internal/domain/leads"
	"github.com/lawmatch/backend/internal/domain/matter"
	"github.com/lawmatch/backend/internal/interfaces/http/middleware"
)

// LeadHandler handles lead and opportunity API endpoints
type LeadHandler struct {
	BaseHandler
	leadService *leadsapp.LeadService
}

// NewLeadHandler creates a new LeadHandler
func NewLeadHandler(leadService *leadsapp.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// CreateLeadRequest represents a request to record a lead
type CreateLeadRequest struct {
	ClientID string `json:"client_id" binding:"required,uuid"`
	Source   string `json:"source" binding:"required,oneof=POSTED_MATTER FORUM DIRECT"`
	Priority string `json:"priority" binding:"omitempty,oneof=HOT WARM COLD"`
	Note     string `json:"note" binding:"omitempty,max=2000"`
}

// SetLeadPriorityRequest changes a lead's priority
type SetLeadPriorityRequest struct {
	Priority string `json:"priority" binding:"required,oneof=HOT WARM COLD"`
}

// UpdateLeadNoteRequest replaces a lead's working note
type UpdateLeadNoteRequest struct {
	Note string `json:"note" binding:"max=2000"`
}

// ConvertLeadRequest represents a request to convert a lead into a draft matter
type ConvertLeadRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"omitempty,max=5000"`
	RateType    string `json:"rate_type" binding:"required,oneof=HOURLY FIXED CONTINGENCY ALTERNATIVE"`
	Rate        string `json:"rate" binding:"required"`
	Currency    string `json:"currency" binding:"required,len=3"`
}

// CreateOpportunityRequest represents a prospect without a platform account
type CreateOpportunityRequest struct {
	ContactName  string `json:"contact_name" binding:"required,min=1,max=200"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone string `json:"contact_phone" binding:"omitempty,max=50"`
	Note         string `json:"note" binding:"omitempty,max=2000"`
}

// UpdateOpportunityRequest represents the editable opportunity fields
type UpdateOpportunityRequest struct {
	ContactName  string `json:"contact_name" binding:"required,min=1,max=200"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone string `json:"contact_phone" binding:"omitempty,max=50"`
	Note         string `json:"note" binding:"omitempty,max=2000"`
}

// LinkOpportunityClientRequest links an opportunity to a registered client
type LinkOpportunityClientRequest struct {
	ClientID string `json:"client_id" binding:"required,uuid"`
}

// PromoteOpportunityRequest promotes an opportunity into a lead
type PromoteOpportunityRequest struct {
	Priority string `json:"priority" binding:"omitempty,oneof=HOT WARM COLD"`
	Note     string `json:"note" binding:"omitempty,max=2000"`
}

// CreateLead godoc
// @Summary      Record a lead (mediator only)
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        request body CreateLeadRequest true "Lead"
// @Success      201 {object} dto.Response
// @Security     BearerAuth
// @Router       /leads [post]
func (h *LeadHandler) CreateLead(c *gin.Context) {
	mediatorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	lead, err := h.leadService.CreateLead(c.Request.Context(), leadsapp.CreateLeadInput{
		MediatorID: mediatorID,
		ClientID:   clientID,
		Source:     leads.LeadSource(req.Source),
		Priority:   leads.LeadPriority(req.Priority),
		Note:       req.Note,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, lead)
}

// GetLead godoc
// @Summary      Get a lead by ID
// @Tags         leads
// @Produce      json
// @Param        id path string true "Lead ID" format(uuid)
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /leads/{id} [get]
func (h *LeadHandler) GetLead(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	leadID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid lead ID format")
		return
	}

	lead, err := h.leadService.GetLead(c.Request.Context(), actorID, leadID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, lead)
}

// ListLeads godoc
// @Summary      List the current mediator's leads
// @Tags         leads
// @Produce      json
// @Param        status query string false "Lead status filter"
// @Param        priority query string false "Lead priority filter"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /leads [get]
func (h *LeadHandler) ListLeads(c *gin.Context) {
	mediatorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	page, pageSize := parsePagination(c)
	items, total, err := h.leadService.ListLeads(c.Request.Context(), leadsapp.ListLeadsInput{
		MediatorID: mediatorID,
		Status:     c.Query("status"),
		Priority:   c.Query("priority"),
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, page, pageSize)
}

// SetPriority godoc
// @Summary      Change a lead's priority
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        id path string true "Lead ID" format(uuid)
// @Param        request body SetLeadPriorityRequest true "Priority"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /leads/{id}/priority [put]
func (h *LeadHandler) SetPriority(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	leadID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid lead ID format")
		return
	}

	var req SetLeadPriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	lead, err := h.leadService.SetPriority(c.Request.Context(), actorID, leadID, leads.LeadPriority(req.Priority))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, lead)
}

// UpdateNote godoc
// @Summary      Replace a lead's working note
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        id path string true "Lead ID" format(uuid)
// @Param        request body UpdateLeadNoteRequest true "Note"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /leads/{id}/note [put]
func (h *LeadHandler) UpdateNote(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	leadID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid lead ID format")
		return
	}

	var req UpdateLeadNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	lead, err := h.leadService.UpdateNote(c.Request.Context(), actorID, leadID, req.Note)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, lead)
}

// ConvertLead godoc
// @Summary      Convert a lead into a draft matter
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        id path string true "Lead ID" format(uuid)
// @Param        request body ConvertLeadRequest true "Matter details"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /leads/{id}/convert [post]
func (h *LeadHandler) ConvertLead(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	leadID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid lead ID format")
		return
	}

	var req ConvertLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.leadService.ConvertLead(c.Request.Context(), leadsapp.ConvertLeadInput{
		ActorID:     actorID,
		LeadID:      leadID,
		Title:       req.Title,
		Description: req.Description,
		RateType:    matter.RateType(req.RateType),
		Rate:        req.Rate,
		Currency:    req.Currency,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{
		"lead":   result.Lead,
		"matter": result.Matter,
	})
}

// CloseLead godoc
// @Summary      Close a lead without converting it
// @Tags         leads
// @Produce      json
// @Param        id path string true "Lead ID" format(uuid)
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /leads/{id}/close [post]
func (h *LeadHandler) CloseLead(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	leadID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid lead ID format")
		return
	}

	lead, err := h.leadService.CloseLead(c.Request.Context(), actorID, leadID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, lead)
}

// CreateOpportunity godoc
// @Summary      Record a prospect without a platform account
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        request body CreateOpportunityRequest true "Opportunity"
// @Success      201 {object} dto.Response
// @Security     BearerAuth
// @Router       /opportunities [post]
func (h *LeadHandler) CreateOpportunity(c *gin.Context) {
	mediatorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	opportunity, err := h.leadService.CreateOpportunity(c.Request.Context(), leadsapp.CreateOpportunityInput{
		MediatorID:   mediatorID,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Note:         req.Note,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, opportunity)
}

// ListOpportunities godoc
// @Summary      List the current mediator's opportunities
// @Tags         leads
// @Produce      json
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /opportunities [get]
func (h *LeadHandler) ListOpportunities(c *gin.Context) {
	mediatorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	page, pageSize := parsePagination(c)
	items, total, err := h.leadService.ListOpportunities(c.Request.Context(), mediatorID, page, pageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, page, pageSize)
}

// UpdateOpportunity godoc
// @Summary      Update an opportunity's contact details
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        id path string true "Opportunity ID" format(uuid)
// @Param        request body UpdateOpportunityRequest true "Opportunity update"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /opportunities/{id} [put]
func (h *LeadHandler) UpdateOpportunity(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	opportunityID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid opportunity ID format")
		return
	}

	var req UpdateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	opportunity, err := h.leadService.UpdateOpportunity(c.Request.Context(), leadsapp.UpdateOpportunityInput{
		ActorID:       actorID,
		OpportunityID: opportunityID,
		ContactName:   req.ContactName,
		ContactEmail:  req.ContactEmail,
		ContactPhone:  req.ContactPhone,
		Note:          req.Note,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, opportunity)
}

// LinkOpportunityClient godoc
// @Summary      Link an opportunity to a registered client
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        id path string true "Opportunity ID" format(uuid)
// @Param        request body LinkOpportunityClientRequest true "Client reference"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /opportunities/{id}/link-client [post]
func (h *LeadHandler) LinkOpportunityClient(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	opportunityID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid opportunity ID format")
		return
	}

	var req LinkOpportunityClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	opportunity, err := h.leadService.LinkOpportunityClient(c.Request.Context(), actorID, opportunityID, clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, opportunity)
}

// PromoteOpportunity godoc
// @Summary      Promote an opportunity into a lead
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        id path string true "Opportunity ID" format(uuid)
// @Param        request body PromoteOpportunityRequest true "Promotion details"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /opportunities/{id}/promote [post]
func (h *LeadHandler) PromoteOpportunity(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	opportunityID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid opportunity ID format")
		return
	}

	var req PromoteOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.leadService.PromoteOpportunity(c.Request.Context(), leadsapp.PromoteOpportunityInput{
		ActorID:       actorID,
		OpportunityID: opportunityID,
		Priority:      leads.LeadPriority(req.Priority),
		Note:          req.Note,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{
		"opportunity": result.Opportunity,
		"lead":        result.Lead,
	})
}

// DeleteOpportunity godoc
// @Summary      Delete an opportunity
// @Tags         leads
// @Param        id path string true "Opportunity ID" format(uuid)
// @Success      204
// @Security     BearerAuth
// @Router       /opportunities/{id} [delete]
func (h *LeadHandler) DeleteOpportunity(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	opportunityID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid opportunity ID format")
		return
	}

	if err := h.leadService.DeleteOpportunity(c.Request.Context(), actorID, opportunityID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
