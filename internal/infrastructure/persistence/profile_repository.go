package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lawmatch/backend/internal/domain/identity"
	"github.com/lawmatch/backend/internal/domain/shared"
	"github.com/lawmatch/backend/internal/infrastructure/persistence/models"
)

// GormMediatorProfileRepository implements identity.MediatorProfileRepository using GORM
type GormMediatorProfileRepository struct {
	db *gorm.DB
}

// NewGormMediatorProfileRepository creates a new GormMediatorProfileRepository
func NewGormMediatorProfileRepository(db *gorm.DB) *GormMediatorProfileRepository {
	return &GormMediatorProfileRepository{db: db}
}

// FindByID finds a mediator profile by ID
func (r *GormMediatorProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.MediatorProfile, error) {
	var model models.MediatorProfileModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUserID finds a mediator profile by the owning user
func (r *GormMediatorProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*identity.MediatorProfile, error) {
	var model models.MediatorProfileModel
	if err := r.db.WithContext(ctx).First(&model, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Search finds approved mediator profiles by practice area and jurisdiction.
// Profiles only surface in the directory once the owning user passed
// verification, so the query joins through users.
func (r *GormMediatorProfileRepository) Search(ctx context.Context, practiceArea, jurisdiction string, filter shared.Filter) ([]identity.MediatorProfile, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.MediatorProfileModel{}).
		Joins("JOIN users ON users.id = mediator_profiles.user_id").
		Where("users.verification_status = ?", identity.VerificationApproved).
		Where("users.status = ?", identity.UserStatusActive)

	if practiceArea != "" {
		query = query.Where("mediator_profiles.practice_areas @> ?", `["`+practiceArea+`"]`)
	}
	if jurisdiction != "" {
		query = query.Where("mediator_profiles.jurisdictions @> ?", `["`+jurisdiction+`"]`)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("mediator_profiles.firm_name ILIKE ? OR users.first_name ILIKE ? OR users.last_name ILIKE ?",
			pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profileModels []models.MediatorProfileModel
	paged := query.Order("mediator_profiles.years_of_experience DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		paged = paged.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	if err := paged.Find(&profileModels).Error; err != nil {
		return nil, 0, err
	}

	profiles := make([]identity.MediatorProfile, len(profileModels))
	for i, model := range profileModels {
		profiles[i] = *model.ToDomain()
	}
	return profiles, total, nil
}

// Save creates or updates a mediator profile
func (r *GormMediatorProfileRepository) Save(ctx context.Context, profile *identity.MediatorProfile) error {
	model := &models.MediatorProfileModel{}
	model.FromDomain(profile)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a mediator profile
func (r *GormMediatorProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.MediatorProfileModel{}, "id = ?", id).Error
}

var _ identity.MediatorProfileRepository = (*GormMediatorProfileRepository)(nil)

// GormClientProfileRepository implements identity.ClientProfileRepository using GORM
type GormClientProfileRepository struct {
	db *gorm.DB
}

// NewGormClientProfileRepository creates a new GormClientProfileRepository
func NewGormClientProfileRepository(db *gorm.DB) *GormClientProfileRepository {
	return &GormClientProfileRepository{db: db}
}

// FindByID finds a client profile by ID
func (r *GormClientProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.ClientProfile, error) {
	var model models.ClientProfileModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUserID finds a client profile by the owning user
func (r *GormClientProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*identity.ClientProfile, error) {
	var model models.ClientProfileModel
	if err := r.db.WithContext(ctx).First(&model, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a client profile
func (r *GormClientProfileRepository) Save(ctx context.Context, profile *identity.ClientProfile) error {
	model := &models.ClientProfileModel{}
	model.FromDomain(profile)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a client profile
func (r *GormClientProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ClientProfileModel{}, "id = ?", id).Error
}

var _ identity.ClientProfileRepository = (*GormClientProfileRepository)(nil)
