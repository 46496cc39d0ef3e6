package documents

import (
	"github.com/google/uuid"

	"github.com/lawmatch/backend/internal/domain/shared"
)

// Folder organizes a user's documents, optionally nested and optionally
// attached to a matter. Folder names are unique within (owner, parent).
type Folder struct {
	shared.OwnedAggregateRoot
	ParentID *uuid.UUID `json:"parent_id"`
	MatterID *uuid.UUID `json:"matter_id"`
	Name     string     `json:"name"`
	Shared   bool       `json:"shared"`
}

// NewFolder creates a new folder
func NewFolder(ownerID uuid.UUID, parentID, matterID *uuid.UUID, name string) (*Folder, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Folder name cannot be empty")
	}
	if len(name) > 255 {
		return nil, shared.NewDomainError("INVALID_NAME", "Folder name cannot exceed 255 characters")
	}

	return &Folder{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		ParentID:           parentID,
		MatterID:           matterID,
		Name:               name,
	}, nil
}

// Rename changes the folder name. Uniqueness within the parent is
// enforced by the service against the repository.
func (f *Folder) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Folder name cannot be empty")
	}
	f.Name = name
	f.Touch()
	f.IncrementVersion()
	return nil
}

// SetShared toggles visibility for matter collaborators
func (f *Folder) SetShared(sharedFlag bool) {
	f.Shared = sharedFlag
	f.Touch()
	f.IncrementVersion()
}

var _ shared.AggregateRoot = (*Folder)(nil)
