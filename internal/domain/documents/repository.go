package documents

import (
	"context"

	"github.com/google/uuid"

	"github.com/lawmatch/backend/internal/domain/shared"
)

// FolderRepository defines the interface for folder persistence
type FolderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Folder, error)

	// FindByOwnerAndParent lists folders directly under a parent
	// (nil parent means top level)
	FindByOwnerAndParent(ctx context.Context, ownerID uuid.UUID, parentID *uuid.UUID) ([]Folder, error)

	// ExistsByName reports whether a folder with the name exists under
	// the parent for the owner
	ExistsByName(ctx context.Context, ownerID uuid.UUID, parentID *uuid.UUID, name string) (bool, error)

	// FindByMatter lists folders attached to a matter
	FindByMatter(ctx context.Context, matterID uuid.UUID) ([]Folder, error)

	Save(ctx context.Context, f *Folder) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DocumentFilter defines filtering options for document queries
type DocumentFilter struct {
	shared.Filter
	OwnerID  *uuid.UUID
	FolderID *uuid.UUID
	MatterID *uuid.UUID
}

// DocumentRepository defines the interface for document persistence
type DocumentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Document, error)

	// FindAll finds documents with filtering
	FindAll(ctx context.Context, filter DocumentFilter) ([]Document, error)

	// ExistsByName reports whether a document with the file name exists
	// in the folder for the owner
	ExistsByName(ctx context.Context, ownerID uuid.UUID, folderID *uuid.UUID, fileName string) (bool, error)

	// Count counts documents matching the filter
	Count(ctx context.Context, filter DocumentFilter) (int64, error)

	Save(ctx context.Context, d *Document) error
	Delete(ctx context.Context, id uuid.UUID) error
}
