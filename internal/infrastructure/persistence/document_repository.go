package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lawmatch/backend/internal/domain/documents"
	"github.com/lawmatch/backend/internal/domain/shared"
	"github.com/lawmatch/backend/internal/infrastructure/persistence/models"
)

// GormDocumentRepository implements documents.DocumentRepository using GORM
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// FindByID finds a document by ID
func (r *GormDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*documents.Document, error) {
	var model models.DocumentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds documents with filtering
func (r *GormDocumentRepository) FindAll(ctx context.Context, filter documents.DocumentFilter) ([]documents.Document, error) {
	var documentModels []models.DocumentModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.DocumentModel{}), filter)
	query = applyPageAndOrder(query, filter.Filter, DocumentSortFields, "created_at")

	if err := query.Find(&documentModels).Error; err != nil {
		return nil, err
	}

	docs := make([]documents.Document, len(documentModels))
	for i, model := range documentModels {
		docs[i] = *model.ToDomain()
	}
	return docs, nil
}

// ExistsByName reports whether the owner already has a document with the file
// name in the folder
func (r *GormDocumentRepository) ExistsByName(ctx context.Context, ownerID uuid.UUID, folderID *uuid.UUID, fileName string) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&models.DocumentModel{}).
		Where("owner_id = ? AND file_name = ?", ownerID, fileName)
	if folderID == nil {
		query = query.Where("folder_id IS NULL")
	} else {
		query = query.Where("folder_id = ?", *folderID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count counts documents matching the filter
func (r *GormDocumentRepository) Count(ctx context.Context, filter documents.DocumentFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.DocumentModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a document
func (r *GormDocumentRepository) Save(ctx context.Context, doc *documents.Document) error {
	model := &models.DocumentModel{}
	model.FromDomain(doc)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a document record
func (r *GormDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.DocumentModel{}, "id = ?", id).Error
}

func (r *GormDocumentRepository) applyFilter(query *gorm.DB, filter documents.DocumentFilter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("file_name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.FolderID != nil {
		query = query.Where("folder_id = ?", *filter.FolderID)
	}
	if filter.MatterID != nil {
		query = query.Where("matter_id = ?", *filter.MatterID)
	}
	return query
}

var _ documents.DocumentRepository = (*GormDocumentRepository)(nil)
