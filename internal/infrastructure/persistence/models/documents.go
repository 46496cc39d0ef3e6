package models

import (
	"github.com/google/uuid"

	"github.com/lawmatch/backend/internal/domain/documents"
)

// FolderModel is the persistence model for folders.
type FolderModel struct {
	OwnedAggregateModel
	ParentID *uuid.UUID `gorm:"type:uuid;index"`
	MatterID *uuid.UUID `gorm:"type:uuid;index"`
	Name     string     `gorm:"type:varchar(255);not null"`
	Shared   bool       `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (FolderModel) TableName() string { return "folders" }

// ToDomain converts the persistence model to a domain Folder
func (m *FolderModel) ToDomain() *documents.Folder {
	return &documents.Folder{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		ParentID:           m.ParentID,
		MatterID:           m.MatterID,
		Name:               m.Name,
		Shared:             m.Shared,
	}
}

// FromDomain populates the persistence model from a domain Folder
func (m *FolderModel) FromDomain(f *documents.Folder) {
	m.FromDomainOwnedAggregateRoot(f.OwnedAggregateRoot)
	m.ParentID = f.ParentID
	m.MatterID = f.MatterID
	m.Name = f.Name
	m.Shared = f.Shared
}

// DocumentModel is the persistence model for documents.
type DocumentModel struct {
	OwnedAggregateModel
	FolderID   *uuid.UUID `gorm:"type:uuid;index"`
	MatterID   *uuid.UUID `gorm:"type:uuid;index"`
	FileName   string     `gorm:"type:varchar(255);not null"`
	MimeType   string     `gorm:"type:varchar(100)"`
	Size       int64      `gorm:"not null;default:0"`
	StorageKey string     `gorm:"type:varchar(500);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (DocumentModel) TableName() string { return "documents" }

// ToDomain converts the persistence model to a domain Document
func (m *DocumentModel) ToDomain() *documents.Document {
	return &documents.Document{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		FolderID:           m.FolderID,
		MatterID:           m.MatterID,
		FileName:           m.FileName,
		MimeType:           m.MimeType,
		Size:               m.Size,
		StorageKey:         m.StorageKey,
	}
}

// FromDomain populates the persistence model from a domain Document
func (m *DocumentModel) FromDomain(d *documents.Document) {
	m.FromDomainOwnedAggregateRoot(d.OwnedAggregateRoot)
	m.FolderID = d.FolderID
	m.MatterID = d.MatterID
	m.FileName = d.FileName
	m.MimeType = d.MimeType
	m.Size = d.Size
	m.StorageKey = d.StorageKey
}
