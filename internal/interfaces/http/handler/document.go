package handler

import (
	"github.com/gin-gonic/gin"

	documentsapp "github.com/lawmatch/backend/internal/application/documents"
	"github.com/lawmatch/backend/internal/interfaces/http/middleware"
)

// DocumentHandler handles folder and document API endpoints
type DocumentHandler struct {
	BaseHandler
	documentService *documentsapp.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documentService *documentsapp.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// CreateFolderRequest represents a request to create a folder
type CreateFolderRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=200"`
	ParentID string `json:"parent_id" binding:"omitempty,uuid"`
	MatterID string `json:"matter_id" binding:"omitempty,uuid"`
}

// RenameRequest carries a new name for a folder or document
type RenameRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
}

// SetFolderSharedRequest toggles client visibility on a folder
type SetFolderSharedRequest struct {
	Shared bool `json:"shared"`
}

// MoveDocumentRequest moves a document to another folder, or to the
// root when folder_id is empty
type MoveDocumentRequest struct {
	FolderID string `json:"folder_id" binding:"omitempty,uuid"`
}

// CreateFolder godoc
// @Summary      Create a document folder
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        request body CreateFolderRequest true "Folder"
// @Success      201 {object} dto.Response
// @Security     BearerAuth
// @Router       /folders [post]
func (h *DocumentHandler) CreateFolder(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	parentID, err := parseOptionalUUID(&req.ParentID)
	if err != nil {
		h.BadRequest(c, "Invalid parent folder ID format")
		return
	}
	matterID, err := parseOptionalUUID(&req.MatterID)
	if err != nil {
		h.BadRequest(c, "Invalid matter ID format")
		return
	}

	folder, err := h.documentService.CreateFolder(c.Request.Context(), documentsapp.CreateFolderInput{
		OwnerID:  ownerID,
		ParentID: parentID,
		MatterID: matterID,
		Name:     req.Name,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, folder)
}

// ListFolders godoc
// @Summary      List folders under a parent, or the root folders
// @Tags         documents
// @Produce      json
// @Param        parent_id query string false "Parent folder ID" format(uuid)
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /folders [get]
func (h *DocumentHandler) ListFolders(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	parentIDStr := c.Query("parent_id")
	parentID, err := parseOptionalUUID(&parentIDStr)
	if err != nil {
		h.BadRequest(c, "Invalid parent folder ID format")
		return
	}

	folders, err := h.documentService.ListFolders(c.Request.Context(), ownerID, parentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, folders)
}

// RenameFolder godoc
// @Summary      Rename a folder
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id path string true "Folder ID" format(uuid)
// @Param        request body RenameRequest true "New name"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /folders/{id} [put]
func (h *DocumentHandler) RenameFolder(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	folderID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid folder ID format")
		return
	}

	var req RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	folder, err := h.documentService.RenameFolder(c.Request.Context(), actorID, folderID, req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, folder)
}

// SetFolderShared godoc
// @Summary      Toggle client visibility on a folder
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id path string true "Folder ID" format(uuid)
// @Param        request body SetFolderSharedRequest true "Shared flag"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /folders/{id}/shared [put]
func (h *DocumentHandler) SetFolderShared(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	folderID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid folder ID format")
		return
	}

	var req SetFolderSharedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	folder, err := h.documentService.SetFolderShared(c.Request.Context(), actorID, folderID, req.Shared)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, folder)
}

// DeleteFolder godoc
// @Summary      Delete an empty folder
// @Tags         documents
// @Param        id path string true "Folder ID" format(uuid)
// @Success      204
// @Security     BearerAuth
// @Router       /folders/{id} [delete]
func (h *DocumentHandler) DeleteFolder(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	folderID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid folder ID format")
		return
	}

	if err := h.documentService.DeleteFolder(c.Request.Context(), actorID, folderID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Upload godoc
// @Summary      Upload a document
// @Tags         documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "File to upload"
// @Param        folder_id formData string false "Destination folder ID" format(uuid)
// @Param        matter_id formData string false "Matter ID" format(uuid)
// @Success      201 {object} dto.Response
// @Security     BearerAuth
// @Router       /documents [post]
func (h *DocumentHandler) Upload(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "A file form field is required")
		return
	}

	folderIDStr := c.PostForm("folder_id")
	folderID, err := parseOptionalUUID(&folderIDStr)
	if err != nil {
		h.BadRequest(c, "Invalid folder ID format")
		return
	}
	matterIDStr := c.PostForm("matter_id")
	matterID, err := parseOptionalUUID(&matterIDStr)
	if err != nil {
		h.BadRequest(c, "Invalid matter ID format")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	doc, err := h.documentService.UploadDocument(c.Request.Context(), documentsapp.UploadDocumentInput{
		OwnerID:  ownerID,
		FolderID: folderID,
		MatterID: matterID,
		FileName: fileHeader.Filename,
		MimeType: fileHeader.Header.Get("Content-Type"),
		Size:     fileHeader.Size,
		Body:     file,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, doc)
}

// Download godoc
// @Summary      Get a short-lived download link for a document
// @Tags         documents
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /documents/{id}/download [get]
func (h *DocumentHandler) Download(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	documentID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	link, err := h.documentService.GetDownloadLink(c.Request.Context(), actorID, documentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{
		"url":        link.URL,
		"file_name":  link.FileName,
		"expires_in": link.ExpiresIn,
	})
}

// List godoc
// @Summary      List documents in a folder or for a matter
// @Tags         documents
// @Produce      json
// @Param        folder_id query string false "Folder ID" format(uuid)
// @Param        matter_id query string false "Matter ID" format(uuid)
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	folderIDStr := c.Query("folder_id")
	folderID, err := parseOptionalUUID(&folderIDStr)
	if err != nil {
		h.BadRequest(c, "Invalid folder ID format")
		return
	}
	matterIDStr := c.Query("matter_id")
	matterID, err := parseOptionalUUID(&matterIDStr)
	if err != nil {
		h.BadRequest(c, "Invalid matter ID format")
		return
	}

	page, pageSize := parsePagination(c)
	docs, total, err := h.documentService.ListDocuments(c.Request.Context(), documentsapp.ListDocumentsInput{
		OwnerID:  ownerID,
		FolderID: folderID,
		MatterID: matterID,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, docs, total, page, pageSize)
}

// Rename godoc
// @Summary      Rename a document
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Param        request body RenameRequest true "New file name"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /documents/{id} [put]
func (h *DocumentHandler) Rename(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	documentID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	var req RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	doc, err := h.documentService.RenameDocument(c.Request.Context(), actorID, documentID, req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, doc)
}

// Move godoc
// @Summary      Move a document to another folder
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Param        request body MoveDocumentRequest true "Destination"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /documents/{id}/move [post]
func (h *DocumentHandler) Move(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	documentID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	var req MoveDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	folderID, err := parseOptionalUUID(&req.FolderID)
	if err != nil {
		h.BadRequest(c, "Invalid folder ID format")
		return
	}

	doc, err := h.documentService.MoveDocument(c.Request.Context(), actorID, documentID, folderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, doc)
}

// Delete godoc
// @Summary      Delete a document
// @Tags         documents
// @Param        id path string true "Document ID" format(uuid)
// @Success      204
// @Security     BearerAuth
// @Router       /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	documentID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	if err := h.documentService.DeleteDocument(c.Request.Context(), actorID, documentID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
