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

// GormFolderRepository implements documents.FolderRepository using GORM
type GormFolderRepository struct {
	db *gorm.DB
}

// NewGormFolderRepository creates a new GormFolderRepository
func NewGormFolderRepository(db *gorm.DB) *GormFolderRepository {
	return &GormFolderRepository{db: db}
}

// FindByID finds a folder by ID
func (r *GormFolderRepository) FindByID(ctx context.Context, id uuid.UUID) (*documents.Folder, error) {
	var model models.FolderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOwnerAndParent lists an owner's folders under a parent.
// A nil parent means top-level folders.
func (r *GormFolderRepository) FindByOwnerAndParent(ctx context.Context, ownerID uuid.UUID, parentID *uuid.UUID) ([]documents.Folder, error) {
	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	query = scopeFolderParent(query, parentID)

	var folderModels []models.FolderModel
	if err := query.Order("name ASC").Find(&folderModels).Error; err != nil {
		return nil, err
	}
	return toDomainFolders(folderModels), nil
}

// ExistsByName reports whether the owner already has a folder with the name
// under the parent
func (r *GormFolderRepository) ExistsByName(ctx context.Context, ownerID uuid.UUID, parentID *uuid.UUID, name string) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&models.FolderModel{}).
		Where("owner_id = ? AND name = ?", ownerID, name)
	query = scopeFolderParent(query, parentID)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByMatter lists folders linked to a matter
func (r *GormFolderRepository) FindByMatter(ctx context.Context, matterID uuid.UUID) ([]documents.Folder, error) {
	var folderModels []models.FolderModel
	if err := r.db.WithContext(ctx).
		Where("matter_id = ?", matterID).
		Order("name ASC").
		Find(&folderModels).Error; err != nil {
		return nil, err
	}
	return toDomainFolders(folderModels), nil
}

// Save creates or updates a folder
func (r *GormFolderRepository) Save(ctx context.Context, folder *documents.Folder) error {
	model := &models.FolderModel{}
	model.FromDomain(folder)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a folder
func (r *GormFolderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.FolderModel{}, "id = ?", id).Error
}

func scopeFolderParent(query *gorm.DB, parentID *uuid.UUID) *gorm.DB {
	if parentID == nil {
		return query.Where("parent_id IS NULL")
	}
	return query.Where("parent_id = ?", *parentID)
}

func toDomainFolders(folderModels []models.FolderModel) []documents.Folder {
	folders := make([]documents.Folder, len(folderModels))
	for i, model := range folderModels {
		folders[i] = *model.ToDomain()
	}
	return folders
}

var _ documents.FolderRepository = (*GormFolderRepository)(nil)
