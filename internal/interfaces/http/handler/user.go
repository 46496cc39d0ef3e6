package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/lawmatch/backend/internal/application/identity"
	"github.com/lawmatch/backend/internal/domain/identity"
	"github.com/lawmatch/backend/internal/domain/shared"
	"github.com/lawmatch/backend/internal/interfaces/http/dto"
	"github.com/lawmatch/backend/internal/interfaces/http/middleware"
)

// UserHandler handles user and profile API endpoints
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *identityapp.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateProfileRequest represents a basic profile update request
type UpdateProfileRequest struct {
	FirstName string `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string `json:"last_name" binding:"required,min=1,max=100"`
	Phone     string `json:"phone" binding:"omitempty,max=30"`
}

// UpdateMediatorProfileRequest represents a professional profile update request
type UpdateMediatorProfileRequest struct {
	FirmName          string   `json:"firm_name" binding:"omitempty,max=200"`
	Biography         string   `json:"biography" binding:"omitempty,max=5000"`
	YearsOfExperience int      `json:"years_of_experience" binding:"omitempty,min=0,max=80"`
	PracticeAreas     []string `json:"practice_areas" binding:"omitempty,max=20"`
	Jurisdictions     []string `json:"jurisdictions" binding:"omitempty,max=20"`
	HourlyRate        string   `json:"hourly_rate" binding:"omitempty"`
	Currency          string   `json:"currency" binding:"omitempty,len=3"`
}

// UpdateClientProfileRequest represents a client intake update request
type UpdateClientProfileRequest struct {
	Kind             string `json:"kind" binding:"required,oneof=INDIVIDUAL FIRM"`
	OrganizationName string `json:"organization_name" binding:"omitempty,max=200"`
	HelpDescription  string `json:"help_description" binding:"omitempty,max=2000"`
}

// VerificationDecisionRequest represents a support verification decision
type VerificationDecisionRequest struct {
	Approve bool `json:"approve"`
}

// SuspendUserRequest represents a suspension request
type SuspendUserRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// SetAvatarRequest carries the storage key of an uploaded avatar
type SetAvatarRequest struct {
	StorageKey string `json:"storage_key" binding:"required,max=500"`
}

// Get godoc
// @Summary      Get a user by ID
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID" format(uuid)
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid user ID format")
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// List godoc
// @Summary      List users (support only)
// @Tags         users
// @Produce      json
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	listReq.Normalize()

	filter := identity.UserFilter{
		Filter: shared.Filter{
			Page:     listReq.Page,
			PageSize: listReq.PageSize,
			OrderBy:  listReq.OrderBy,
			OrderDir: listReq.OrderDir,
			Search:   listReq.Search,
		},
	}
	if v := c.Query("kind"); v != "" {
		kind := identity.UserKind(v)
		filter.Kind = &kind
	}
	if v := c.Query("status"); v != "" {
		status := identity.UserStatus(v)
		filter.Status = &status
	}
	if v := c.Query("verification_status"); v != "" {
		vs := identity.VerificationStatus(v)
		filter.VerificationStatus = &vs
	}

	result, err := h.userService.ListUsers(c.Request.Context(), actorID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// UpdateProfile godoc
// @Summary      Update the current user's basic profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body UpdateProfileRequest true "Profile update"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /users/me/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), identityapp.UpdateProfileInput{
		UserID:    userID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// SetAvatar godoc
// @Summary      Set the current user's avatar
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body SetAvatarRequest true "Avatar storage key"
// @Success      204
// @Security     BearerAuth
// @Router       /users/me/avatar [put]
func (h *UserHandler) SetAvatar(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req SetAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if err := h.userService.SetAvatar(c.Request.Context(), userID, req.StorageKey); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// GetMediatorProfile godoc
// @Summary      Get a mediator's professional profile
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID" format(uuid)
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /users/{id}/mediator-profile [get]
func (h *UserHandler) GetMediatorProfile(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid user ID format")
		return
	}

	profile, err := h.userService.GetMediatorProfile(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}

// UpdateMediatorProfile godoc
// @Summary      Update the current mediator's professional profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body UpdateMediatorProfileRequest true "Profile update"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /users/me/mediator-profile [put]
func (h *UserHandler) UpdateMediatorProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req UpdateMediatorProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	profile, err := h.userService.UpdateMediatorProfile(c.Request.Context(), identityapp.UpdateMediatorProfileInput{
		UserID:            userID,
		FirmName:          req.FirmName,
		Biography:         req.Biography,
		YearsOfExperience: req.YearsOfExperience,
		PracticeAreas:     req.PracticeAreas,
		Jurisdictions:     req.Jurisdictions,
		HourlyRate:        req.HourlyRate,
		Currency:          req.Currency,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}

// GetClientProfile godoc
// @Summary      Get the current client's intake profile
// @Tags         users
// @Produce      json
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /users/me/client-profile [get]
func (h *UserHandler) GetClientProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	profile, err := h.userService.GetClientProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}

// UpdateClientProfile godoc
// @Summary      Update the current client's intake profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body UpdateClientProfileRequest true "Profile update"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /users/me/client-profile [put]
func (h *UserHandler) UpdateClientProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req UpdateClientProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	profile, err := h.userService.UpdateClientProfile(c.Request.Context(), identityapp.UpdateClientProfileInput{
		UserID:           userID,
		Kind:             identity.ClientKind(req.Kind),
		OrganizationName: req.OrganizationName,
		HelpDescription:  req.HelpDescription,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}

// SearchMediators godoc
// @Summary      Search the mediator directory
// @Tags         users
// @Produce      json
// @Param        practice_area query string false "Practice area"
// @Param        jurisdiction query string false "Jurisdiction"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /mediators [get]
func (h *UserHandler) SearchMediators(c *gin.Context) {
	page, pageSize := parsePagination(c)

	result, err := h.userService.SearchMediators(c.Request.Context(), identityapp.SearchMediatorsInput{
		PracticeArea: c.Query("practice_area"),
		Jurisdiction: c.Query("jurisdiction"),
		Page:         page,
		PageSize:     pageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// DecideVerification godoc
// @Summary      Approve or deny a professional account (support only)
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id path string true "User ID" format(uuid)
// @Param        request body VerificationDecisionRequest true "Decision"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /users/{id}/verification [post]
func (h *UserHandler) DecideVerification(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	targetID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid user ID format")
		return
	}

	var req VerificationDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	user, err := h.userService.DecideVerification(c.Request.Context(), identityapp.VerificationDecisionInput{
		ActorID:  actorID,
		TargetID: targetID,
		Approve:  req.Approve,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// Suspend godoc
// @Summary      Suspend a user account (support only)
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id path string true "User ID" format(uuid)
// @Param        request body SuspendUserRequest true "Suspension reason"
// @Success      204
// @Security     BearerAuth
// @Router       /users/{id}/suspend [post]
func (h *UserHandler) Suspend(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	targetID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid user ID format")
		return
	}

	var req SuspendUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if err := h.userService.SuspendUser(c.Request.Context(), identityapp.SuspendUserInput{
		ActorID:  actorID,
		TargetID: targetID,
		Reason:   req.Reason,
	}); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Reactivate godoc
// @Summary      Reactivate a suspended user account (support only)
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID" format(uuid)
// @Success      204
// @Security     BearerAuth
// @Router       /users/{id}/reactivate [post]
func (h *UserHandler) Reactivate(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	targetID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid user ID format")
		return
	}

	if err := h.userService.ReactivateUser(c.Request.Context(), actorID, targetID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
