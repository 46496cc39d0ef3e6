package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	billingapp "github.com/lawmatch/backend/internal/application/billing"
	"github.com/lawmatch/backend/internal/domain/billing"
	"github.com/lawmatch/backend/internal/interfaces/http/middleware"
)

// InvoiceHandler handles invoice API endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *billingapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *billingapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// CreateInvoiceRequest represents a request to assemble a draft invoice
type CreateInvoiceRequest struct {
	MatterID    string `json:"matter_id" binding:"required,uuid"`
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Note        string `json:"note" binding:"omitempty,max=2000"`
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
	// AttachUnbilled pulls in every billable uninvoiced item in the period
	AttachUnbilled bool `json:"attach_unbilled"`
}

// SendInvoiceRequest represents a request to issue an invoice
type SendInvoiceRequest struct {
	DueDate string `json:"due_date" binding:"required"`
}

// VoidInvoiceRequest represents a request to void an invoice
type VoidInvoiceRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// InvoiceItemRequest references a billing item
type InvoiceItemRequest struct {
	ItemID string `json:"item_id" binding:"required,uuid"`
}

// Create godoc
// @Summary      Assemble a draft invoice for a matter
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body CreateInvoiceRequest true "Invoice creation request"
// @Success      201 {object} dto.Response
// @Security     BearerAuth
// @Router       /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	matterID, err := uuid.Parse(req.MatterID)
	if err != nil {
		h.BadRequest(c, "Invalid matter ID format")
		return
	}

	periodStart, err := parseActivityDate(req.PeriodStart)
	if err != nil {
		h.BadRequest(c, "Invalid period start, expected YYYY-MM-DD")
		return
	}
	periodEnd, err := parseActivityDate(req.PeriodEnd)
	if err != nil {
		h.BadRequest(c, "Invalid period end, expected YYYY-MM-DD")
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), billingapp.CreateInvoiceInput{
		ActorID:        actorID,
		MatterID:       matterID,
		Title:          req.Title,
		Note:           req.Note,
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
		AttachUnbilled: req.AttachUnbilled,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, invoice)
}

// Get godoc
// @Summary      Get an invoice by ID
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /invoices/{id} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	invoiceID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), actorID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// List godoc
// @Summary      List invoices visible to the current user
// @Tags         invoices
// @Produce      json
// @Param        matter_id query string false "Matter ID" format(uuid)
// @Param        status query string false "Invoice status filter"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	page, pageSize := parsePagination(c)
	input := billingapp.ListInvoicesInput{
		ActorID:  actorID,
		Page:     page,
		PageSize: pageSize,
	}

	matterIDStr := c.Query("matter_id")
	matterID, err := parseOptionalUUID(&matterIDStr)
	if err != nil {
		h.BadRequest(c, "Invalid matter ID format")
		return
	}
	input.MatterID = matterID

	if v := c.Query("status"); v != "" {
		status := billing.InvoiceStatus(v)
		input.Status = &status
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListItems godoc
// @Summary      List the billing items attached to an invoice
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /invoices/{id}/items [get]
func (h *InvoiceHandler) ListItems(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	invoiceID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	items, err := h.invoiceService.ListInvoiceItems(c.Request.Context(), actorID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}

// AttachItem godoc
// @Summary      Attach a billing item to a draft invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Param        request body InvoiceItemRequest true "Item reference"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /invoices/{id}/items [post]
func (h *InvoiceHandler) AttachItem(c *gin.Context) {
	h.itemOp(c, h.invoiceService.AttachItem)
}

// DetachItem godoc
// @Summary      Detach a billing item from a draft invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Param        request body InvoiceItemRequest true "Item reference"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /invoices/{id}/items/detach [post]
func (h *InvoiceHandler) DetachItem(c *gin.Context) {
	h.itemOp(c, h.invoiceService.DetachItem)
}

// itemOp runs an attach or detach operation with shared request plumbing
func (h *InvoiceHandler) itemOp(c *gin.Context, op func(ctx context.Context, input billingapp.InvoiceItemInput) (*billing.Invoice, error)) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	invoiceID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	var req InvoiceItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	invoice, err := op(c.Request.Context(), billingapp.InvoiceItemInput{
		ActorID:   actorID,
		InvoiceID: invoiceID,
		ItemID:    itemID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// Send godoc
// @Summary      Issue a draft invoice to the client
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Param        request body SendInvoiceRequest true "Due date"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /invoices/{id}/send [post]
func (h *InvoiceHandler) Send(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	invoiceID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	var req SendInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	dueDate, err := parseActivityDate(req.DueDate)
	if err != nil {
		h.BadRequest(c, "Invalid due date, expected YYYY-MM-DD")
		return
	}

	invoice, err := h.invoiceService.SendInvoice(c.Request.Context(), billingapp.SendInvoiceInput{
		ActorID:   actorID,
		InvoiceID: invoiceID,
		DueDate:   dueDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// Void godoc
// @Summary      Void an invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Param        request body VoidInvoiceRequest true "Void reason"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /invoices/{id}/void [post]
func (h *InvoiceHandler) Void(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	invoiceID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	var req VoidInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	invoice, err := h.invoiceService.VoidInvoice(c.Request.Context(), billingapp.VoidInvoiceInput{
		ActorID:   actorID,
		InvoiceID: invoiceID,
		Reason:    req.Reason,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// CreatePaymentIntent godoc
// @Summary      Create a payment intent for an open invoice (client only)
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      201 {object} dto.Response
// @Security     BearerAuth
// @Router       /invoices/{id}/payment-intent [post]
func (h *InvoiceHandler) CreatePaymentIntent(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	invoiceID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	intent, err := h.invoiceService.CreatePaymentIntent(c.Request.Context(), actorID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, gin.H{
		"reference":     intent.Reference,
		"client_secret": intent.ClientSecret,
	})
}
