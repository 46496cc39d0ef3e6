package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	billingapp "github.com/lawmatch/backend/internal/application/billing"
	"github.com/lawmatch/backend/internal/domain/billing"
	"github.com/lawmatch/backend/internal/interfaces/http/middleware"
)

// BillingItemHandler handles billing item API endpoints
type BillingItemHandler struct {
	BaseHandler
	itemService *billingapp.ItemService
}

// NewBillingItemHandler creates a new BillingItemHandler
func NewBillingItemHandler(itemService *billingapp.ItemService) *BillingItemHandler {
	return &BillingItemHandler{itemService: itemService}
}

// CreateBillingItemRequest represents a request to record a billing item
type CreateBillingItemRequest struct {
	MatterID     string `json:"matter_id" binding:"required,uuid"`
	Kind         string `json:"kind" binding:"required,oneof=TIME EXPENSE FLAT_FEE"`
	Description  string `json:"description" binding:"required,min=1,max=1000"`
	ActivityDate string `json:"activity_date" binding:"required"`
	// Time items
	Hours      string `json:"hours" binding:"omitempty"`
	HourlyRate string `json:"hourly_rate" binding:"omitempty"`
	// Expense and flat-fee items
	Amount   string `json:"amount" binding:"omitempty"`
	Currency string `json:"currency" binding:"omitempty,len=3"`
}

// UpdateBillingItemRequest represents the editable billing item fields
type UpdateBillingItemRequest struct {
	Description  string `json:"description" binding:"required,min=1,max=1000"`
	ActivityDate string `json:"activity_date" binding:"required"`
	Hours        string `json:"hours" binding:"omitempty"`
	HourlyRate   string `json:"hourly_rate" binding:"omitempty"`
	Amount       string `json:"amount" binding:"omitempty"`
	Currency     string `json:"currency" binding:"omitempty,len=3"`
}

// SetBillableRequest toggles whether an item is chargeable
type SetBillableRequest struct {
	Billable bool `json:"billable"`
}

func parseActivityDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// Create godoc
// @Summary      Record a billing item on a matter
// @Tags         billing
// @Accept       json
// @Produce      json
// @Param        request body CreateBillingItemRequest true "Billing item"
// @Success      201 {object} dto.Response
// @Security     BearerAuth
// @Router       /billing/items [post]
func (h *BillingItemHandler) Create(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateBillingItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	matterID, err := parseOptionalUUID(&req.MatterID)
	if err != nil || matterID == nil {
		h.BadRequest(c, "Invalid matter ID format")
		return
	}

	activityDate, err := parseActivityDate(req.ActivityDate)
	if err != nil {
		h.BadRequest(c, "Invalid activity date, expected YYYY-MM-DD")
		return
	}

	item, err := h.itemService.CreateItem(c.Request.Context(), billingapp.CreateItemInput{
		ActorID:      actorID,
		MatterID:     *matterID,
		Kind:         billing.BillingItemKind(req.Kind),
		Description:  req.Description,
		ActivityDate: activityDate,
		Hours:        req.Hours,
		HourlyRate:   req.HourlyRate,
		Amount:       req.Amount,
		Currency:     req.Currency,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, item)
}

// Update godoc
// @Summary      Update an uninvoiced billing item
// @Tags         billing
// @Accept       json
// @Produce      json
// @Param        id path string true "Item ID" format(uuid)
// @Param        request body UpdateBillingItemRequest true "Item update"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /billing/items/{id} [put]
func (h *BillingItemHandler) Update(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	itemID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	var req UpdateBillingItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	activityDate, err := parseActivityDate(req.ActivityDate)
	if err != nil {
		h.BadRequest(c, "Invalid activity date, expected YYYY-MM-DD")
		return
	}

	item, err := h.itemService.UpdateItem(c.Request.Context(), billingapp.UpdateItemInput{
		ActorID:      actorID,
		ItemID:       itemID,
		Description:  req.Description,
		ActivityDate: activityDate,
		Hours:        req.Hours,
		HourlyRate:   req.HourlyRate,
		Amount:       req.Amount,
		Currency:     req.Currency,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// SetBillable godoc
// @Summary      Mark a billing item billable or non-billable
// @Tags         billing
// @Accept       json
// @Produce      json
// @Param        id path string true "Item ID" format(uuid)
// @Param        request body SetBillableRequest true "Billable flag"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /billing/items/{id}/billable [put]
func (h *BillingItemHandler) SetBillable(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	itemID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	var req SetBillableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	item, err := h.itemService.SetBillable(c.Request.Context(), actorID, itemID, req.Billable)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// Delete godoc
// @Summary      Delete an uninvoiced billing item
// @Tags         billing
// @Produce      json
// @Param        id path string true "Item ID" format(uuid)
// @Success      204
// @Failure      422 {object} dto.Response "Item is attached to an invoice"
// @Security     BearerAuth
// @Router       /billing/items/{id} [delete]
func (h *BillingItemHandler) Delete(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	itemID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	if err := h.itemService.DeleteItem(c.Request.Context(), actorID, itemID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// List godoc
// @Summary      List billing items for a matter
// @Tags         billing
// @Produce      json
// @Param        matter_id query string true "Matter ID" format(uuid)
// @Param        kind query string false "Item kind filter"
// @Param        uninvoiced query bool false "Only uninvoiced items"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /billing/items [get]
func (h *BillingItemHandler) List(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	matterIDStr := c.Query("matter_id")
	matterID, err := parseOptionalUUID(&matterIDStr)
	if err != nil || matterID == nil {
		h.BadRequest(c, "matter_id query parameter is required")
		return
	}

	page, pageSize := parsePagination(c)
	input := billingapp.ListItemsInput{
		ActorID:  actorID,
		MatterID: *matterID,
		Page:     page,
		PageSize: pageSize,
	}
	if v := c.Query("kind"); v != "" {
		kind := billing.BillingItemKind(v)
		input.Kind = &kind
	}
	if v := c.Query("uninvoiced"); v == "true" {
		uninvoiced := true
		input.Uninvoiced = &uninvoiced
	}

	result, err := h.itemService.ListItems(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// MatterSummary godoc
// @Summary      Get the billing summary for a matter
// @Tags         billing
// @Produce      json
// @Param        id path string true "Matter ID" format(uuid)
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /matters/{id}/billing-summary [get]
func (h *BillingItemHandler) MatterSummary(c *gin.Context) {
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

	summary, err := h.itemService.MatterSummary(c.Request.Context(), actorID, matterID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}
