package documents

import (
	"io"

	"github.com/google/uuid"
)

// CreateFolderInput contains the input for creating a folder
type CreateFolderInput struct {
	OwnerID  uuid.UUID
	ParentID *uuid.UUID
	MatterID *uuid.UUID
	Name     string
}

// UploadDocumentInput contains the input for uploading a file
type UploadDocumentInput struct {
	OwnerID  uuid.UUID
	FolderID *uuid.UUID
	MatterID *uuid.UUID
	FileName string
	MimeType string
	Size     int64
	Body     io.Reader
}

// ListDocumentsInput contains the document listing parameters
type ListDocumentsInput struct {
	OwnerID  uuid.UUID
	FolderID *uuid.UUID
	MatterID *uuid.UUID
	Page     int
	PageSize int
}

// DownloadLink is a short-lived presigned URL for a stored document
type DownloadLink struct {
	URL       string
	FileName  string
	ExpiresIn int64
}
