package documents

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/lawmatch/backend/internal/domain/shared"
)

// Document represents an uploaded file stored in object storage
type Document struct {
	shared.OwnedAggregateRoot
	FolderID   *uuid.UUID `json:"folder_id"`
	MatterID   *uuid.UUID `json:"matter_id"`
	FileName   string     `json:"file_name"`
	MimeType   string     `json:"mime_type"`
	Size       int64      `json:"size"`
	StorageKey string     `json:"storage_key"`
}

// NewDocument creates a new document record
func NewDocument(ownerID uuid.UUID, folderID, matterID *uuid.UUID, fileName, mimeType string, size int64, storageKey string) (*Document, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if fileName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "File name cannot be empty")
	}
	if size <= 0 {
		return nil, shared.NewDomainError("INVALID_SIZE", "File size must be positive")
	}
	if storageKey == "" {
		return nil, shared.NewDomainError("INVALID_KEY", "Storage key cannot be empty")
	}

	return &Document{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		FolderID:           folderID,
		MatterID:           matterID,
		FileName:           fileName,
		MimeType:           mimeType,
		Size:               size,
		StorageKey:         storageKey,
	}, nil
}

// Rename changes the display file name, keeping the stored object as-is
func (d *Document) Rename(fileName string) error {
	if fileName == "" {
		return shared.NewDomainError("INVALID_NAME", "File name cannot be empty")
	}
	d.FileName = fileName
	d.Touch()
	d.IncrementVersion()
	return nil
}

// MoveToFolder relocates the document within the owner's folder tree
func (d *Document) MoveToFolder(folderID *uuid.UUID) {
	d.FolderID = folderID
	d.Touch()
	d.IncrementVersion()
}

// DeduplicateName appends a " (n)" suffix before the extension until the
// name no longer collides. taken reports whether a candidate name is
// already used within the target folder.
func DeduplicateName(name string, taken func(string) bool) string {
	if !taken(name) {
		return name
	}
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s (%d)%s", base, n, ext)
		if !taken(candidate) {
			return candidate
		}
	}
}

var _ shared.AggregateRoot = (*Document)(nil)
