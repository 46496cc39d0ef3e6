package documents

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lawmatch/backend/internal/domain/documents"
	"github.com/lawmatch/backend/internal/domain/shared"
)

// MaxUploadSize caps a single upload at 100 MiB
const MaxUploadSize = 100 << 20

// DownloadLinkTTL is how long a presigned download URL stays valid
const DownloadLinkTTL = 15 * time.Minute

// ObjectStorage abstracts the object store holding document payloads
type ObjectStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	PresignDownload(ctx context.Context, key, fileName string, expiry time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

// DocumentService manages folders and uploaded documents. File payloads
// live in object storage; metadata lives in the database.
type DocumentService struct {
	documentRepo documents.DocumentRepository
	folderRepo   documents.FolderRepository
	storage      ObjectStorage
	logger       *zap.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	documentRepo documents.DocumentRepository,
	folderRepo documents.FolderRepository,
	storage ObjectStorage,
	logger *zap.Logger,
) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		folderRepo:   folderRepo,
		storage:      storage,
		logger:       logger,
	}
}

// CreateFolder creates a folder. Names are unique within (owner, parent).
func (s *DocumentService) CreateFolder(ctx context.Context, input CreateFolderInput) (*documents.Folder, error) {
	if input.ParentID != nil {
		if _, err := s.requireFolderOwner(ctx, input.OwnerID, *input.ParentID); err != nil {
			return nil, err
		}
	}

	exists, err := s.folderRepo.ExistsByName(ctx, input.OwnerID, input.ParentID, input.Name)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check folder name")
	}
	if exists {
		return nil, shared.NewDomainError("NAME_TAKEN", "A folder with this name already exists here")
	}

	folder, err := documents.NewFolder(input.OwnerID, input.ParentID, input.MatterID, input.Name)
	if err != nil {
		return nil, err
	}

	if err := s.folderRepo.Save(ctx, folder); err != nil {
		s.logger.Error("Failed to save folder", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create folder")
	}
	return folder, nil
}

// ListFolders lists the owner's folders directly under a parent
func (s *DocumentService) ListFolders(ctx context.Context, ownerID uuid.UUID, parentID *uuid.UUID) ([]documents.Folder, error) {
	folders, err := s.folderRepo.FindByOwnerAndParent(ctx, ownerID, parentID)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list folders")
	}
	return folders, nil
}

// RenameFolder renames a folder, keeping names unique within the parent
func (s *DocumentService) RenameFolder(ctx context.Context, actorID, folderID uuid.UUID, name string) (*documents.Folder, error) {
	folder, err := s.requireFolderOwner(ctx, actorID, folderID)
	if err != nil {
		return nil, err
	}

	exists, err := s.folderRepo.ExistsByName(ctx, folder.OwnerID, folder.ParentID, name)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check folder name")
	}
	if exists && folder.Name != name {
		return nil, shared.NewDomainError("NAME_TAKEN", "A folder with this name already exists here")
	}

	if err := folder.Rename(name); err != nil {
		return nil, err
	}

	if err := s.folderRepo.Save(ctx, folder); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to rename folder")
	}
	return folder, nil
}

// SetFolderShared toggles the folder's visibility for matter collaborators
func (s *DocumentService) SetFolderShared(ctx context.Context, actorID, folderID uuid.UUID, sharedFlag bool) (*documents.Folder, error) {
	folder, err := s.requireFolderOwner(ctx, actorID, folderID)
	if err != nil {
		return nil, err
	}

	folder.SetShared(sharedFlag)

	if err := s.folderRepo.Save(ctx, folder); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update folder")
	}
	return folder, nil
}

// DeleteFolder removes an empty folder
func (s *DocumentService) DeleteFolder(ctx context.Context, actorID, folderID uuid.UUID) error {
	folder, err := s.requireFolderOwner(ctx, actorID, folderID)
	if err != nil {
		return err
	}

	children, err := s.folderRepo.FindByOwnerAndParent(ctx, folder.OwnerID, &folder.ID)
	if err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to check folder contents")
	}
	count, err := s.documentRepo.Count(ctx, documents.DocumentFilter{FolderID: &folder.ID})
	if err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to check folder contents")
	}
	if len(children) > 0 || count > 0 {
		return shared.NewDomainError("FOLDER_NOT_EMPTY", "Folder must be empty before it can be deleted")
	}

	if err := s.folderRepo.Delete(ctx, folderID); err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete folder")
	}
	return nil
}

// UploadDocument stores the payload in object storage and records the
// document. Colliding file names get a " (n)" suffix.
func (s *DocumentService) UploadDocument(ctx context.Context, input UploadDocumentInput) (*documents.Document, error) {
	if input.Size <= 0 {
		return nil, shared.NewDomainError("INVALID_SIZE", "File size must be positive")
	}
	if input.Size > MaxUploadSize {
		return nil, shared.NewDomainError("FILE_TOO_LARGE", "File exceeds the 100 MiB upload limit")
	}
	if input.FolderID != nil {
		if _, err := s.requireFolderOwner(ctx, input.OwnerID, *input.FolderID); err != nil {
			return nil, err
		}
	}

	fileName := documents.DeduplicateName(input.FileName, func(candidate string) bool {
		exists, err := s.documentRepo.ExistsByName(ctx, input.OwnerID, input.FolderID, candidate)
		if err != nil {
			s.logger.Warn("File name check failed", zap.String("name", candidate), zap.Error(err))
			return false
		}
		return exists
	})

	storageKey := fmt.Sprintf("documents/%s/%s", input.OwnerID, uuid.New())

	if err := s.storage.Upload(ctx, storageKey, input.Body, input.Size, input.MimeType); err != nil {
		s.logger.Error("Failed to upload document payload",
			zap.String("storage_key", storageKey),
			zap.Error(err))
		return nil, shared.NewDomainError("STORAGE_ERROR", "Failed to store file")
	}

	doc, err := documents.NewDocument(input.OwnerID, input.FolderID, input.MatterID, fileName, input.MimeType, input.Size, storageKey)
	if err != nil {
		return nil, err
	}

	if err := s.documentRepo.Save(ctx, doc); err != nil {
		s.logger.Error("Failed to save document record", zap.Error(err))
		// best effort: drop the orphaned object
		if delErr := s.storage.Delete(ctx, storageKey); delErr != nil {
			s.logger.Warn("Failed to remove orphaned object",
				zap.String("storage_key", storageKey),
				zap.Error(delErr))
		}
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to record document")
	}

	s.logger.Info("Document uploaded",
		zap.String("document_id", doc.ID.String()),
		zap.String("file_name", fileName),
		zap.Int64("size", input.Size))

	return doc, nil
}

// GetDownloadLink returns a presigned URL for the document payload
func (s *DocumentService) GetDownloadLink(ctx context.Context, actorID, documentID uuid.UUID) (*DownloadLink, error) {
	doc, err := s.requireDocumentOwner(ctx, actorID, documentID)
	if err != nil {
		return nil, err
	}

	url, err := s.storage.PresignDownload(ctx, doc.StorageKey, doc.FileName, DownloadLinkTTL)
	if err != nil {
		s.logger.Error("Failed to presign download",
			zap.String("document_id", documentID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("STORAGE_ERROR", "Failed to generate download link")
	}

	return &DownloadLink{
		URL:       url,
		FileName:  doc.FileName,
		ExpiresIn: int64(DownloadLinkTTL.Seconds()),
	}, nil
}

// ListDocuments lists the owner's documents in a folder or on a matter
func (s *DocumentService) ListDocuments(ctx context.Context, input ListDocumentsInput) ([]documents.Document, int64, error) {
	filter := documents.DocumentFilter{
		Filter:   shared.Filter{Page: input.Page, PageSize: input.PageSize},
		OwnerID:  &input.OwnerID,
		FolderID: input.FolderID,
		MatterID: input.MatterID,
	}

	docs, err := s.documentRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list documents")
	}
	total, err := s.documentRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to count documents")
	}
	return docs, total, nil
}

// RenameDocument changes the display name, deduplicating within the folder
func (s *DocumentService) RenameDocument(ctx context.Context, actorID, documentID uuid.UUID, fileName string) (*documents.Document, error) {
	doc, err := s.requireDocumentOwner(ctx, actorID, documentID)
	if err != nil {
		return nil, err
	}

	if fileName != doc.FileName {
		fileName = documents.DeduplicateName(fileName, func(candidate string) bool {
			exists, err := s.documentRepo.ExistsByName(ctx, doc.OwnerID, doc.FolderID, candidate)
			if err != nil {
				return false
			}
			return exists
		})
	}

	if err := doc.Rename(fileName); err != nil {
		return nil, err
	}

	if err := s.documentRepo.Save(ctx, doc); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to rename document")
	}
	return doc, nil
}

// MoveDocument relocates the document to another of the owner's folders
// (nil moves it to the top level)
func (s *DocumentService) MoveDocument(ctx context.Context, actorID, documentID uuid.UUID, folderID *uuid.UUID) (*documents.Document, error) {
	doc, err := s.requireDocumentOwner(ctx, actorID, documentID)
	if err != nil {
		return nil, err
	}
	if folderID != nil {
		if _, err := s.requireFolderOwner(ctx, actorID, *folderID); err != nil {
			return nil, err
		}
	}

	name := documents.DeduplicateName(doc.FileName, func(candidate string) bool {
		exists, err := s.documentRepo.ExistsByName(ctx, doc.OwnerID, folderID, candidate)
		if err != nil {
			return false
		}
		return exists
	})
	if name != doc.FileName {
		if err := doc.Rename(name); err != nil {
			return nil, err
		}
	}

	doc.MoveToFolder(folderID)

	if err := s.documentRepo.Save(ctx, doc); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to move document")
	}
	return doc, nil
}

// DeleteDocument removes the record and the stored payload
func (s *DocumentService) DeleteDocument(ctx context.Context, actorID, documentID uuid.UUID) error {
	doc, err := s.requireDocumentOwner(ctx, actorID, documentID)
	if err != nil {
		return err
	}

	if err := s.documentRepo.Delete(ctx, documentID); err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete document")
	}

	if err := s.storage.Delete(ctx, doc.StorageKey); err != nil {
		// record is gone; the orphaned object is logged for cleanup
		s.logger.Warn("Failed to delete stored object",
			zap.String("storage_key", doc.StorageKey),
			zap.Error(err))
	}
	return nil
}

func (s *DocumentService) requireFolderOwner(ctx context.Context, actorID, folderID uuid.UUID) (*documents.Folder, error) {
	folder, err := s.folderRepo.FindByID(ctx, folderID)
	if err != nil {
		return nil, shared.NewDomainError("FOLDER_NOT_FOUND", "Folder not found")
	}
	if folder.OwnerID != actorID {
		return nil, shared.NewDomainError("FORBIDDEN", "Folder belongs to another user")
	}
	return folder, nil
}

func (s *DocumentService) requireDocumentOwner(ctx context.Context, actorID, documentID uuid.UUID) (*documents.Document, error) {
	doc, err := s.documentRepo.FindByID(ctx, documentID)
	if err != nil {
		return nil, shared.NewDomainError("DOCUMENT_NOT_FOUND", "Document not found")
	}
	if doc.OwnerID != actorID {
		return nil, shared.NewDomainError("FORBIDDEN", "Document belongs to another user")
	}
	return doc, nil
}
