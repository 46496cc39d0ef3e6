package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lawmatch/backend/internal/domain/matter"
	"github.com/lawmatch/backend/internal/domain/shared"
	"github.com/lawmatch/backend/internal/infrastructure/persistence/models"
)

// GormMatterRepository implements matter.MatterRepository using GORM
type GormMatterRepository struct {
	db *gorm.DB
}

// NewGormMatterRepository creates a new GormMatterRepository
func NewGormMatterRepository(db *gorm.DB) *GormMatterRepository {
	return &GormMatterRepository{db: db}
}

// FindByID finds a matter by ID
func (r *GormMatterRepository) FindByID(ctx context.Context, id uuid.UUID) (*matter.Matter, error) {
	var model models.MatterModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a matter by its MAT- number
func (r *GormMatterRepository) FindByNumber(ctx context.Context, number string) (*matter.Matter, error) {
	var model models.MatterModel
	if err := r.db.WithContext(ctx).First(&model, "number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds matters with filtering
func (r *GormMatterRepository) FindAll(ctx context.Context, filter matter.MatterFilter) ([]matter.Matter, error) {
	var matterModels []models.MatterModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.MatterModel{}), filter)
	query = applyPageAndOrder(query, filter.Filter, MatterSortFields, "created_at")

	if err := query.Find(&matterModels).Error; err != nil {
		return nil, err
	}
	return toDomainMatters(matterModels), nil
}

// FindForUser finds matters where the user is mediator, client, or shared.
// shared_with is a JSONB array of user IDs.
func (r *GormMatterRepository) FindForUser(ctx context.Context, userID uuid.UUID, filter matter.MatterFilter) ([]matter.Matter, error) {
	var matterModels []models.MatterModel
	query := r.scopeToUser(r.applyFilter(r.db.WithContext(ctx).Model(&models.MatterModel{}), filter), userID)
	query = applyPageAndOrder(query, filter.Filter, MatterSortFields, "created_at")

	if err := query.Find(&matterModels).Error; err != nil {
		return nil, err
	}
	return toDomainMatters(matterModels), nil
}

// Count counts matters matching the filter
func (r *GormMatterRepository) Count(ctx context.Context, filter matter.MatterFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.MatterModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountForUser counts matters visible to the user (mediator, client, or shared)
func (r *GormMatterRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter matter.MatterFilter) (int64, error) {
	var count int64
	query := r.scopeToUser(r.applyFilter(r.db.WithContext(ctx).Model(&models.MatterModel{}), filter), userID)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// NextNumber allocates the next sequential matter number
func (r *GormMatterRepository) NextNumber(ctx context.Context) (string, error) {
	return nextSequenceNumber(ctx, r.db, sequenceKindMatter, "MAT")
}

// Save creates or updates a matter
func (r *GormMatterRepository) Save(ctx context.Context, m *matter.Matter) error {
	model := &models.MatterModel{}
	model.FromDomain(m)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormMatterRepository) SaveWithLock(ctx context.Context, m *matter.Matter) error {
	expected := m.Version
	m.Version++
	m.UpdatedAt = time.Now()

	model := &models.MatterModel{}
	model.FromDomain(m)
	if err := updateWithVersionCheck(ctx, r.db, model, m.ID, expected); err != nil {
		m.Version = expected
		return err
	}
	return nil
}

// Delete removes a matter (drafts only, enforced by the service)
func (r *GormMatterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.MatterModel{}, "id = ?", id).Error
}

func (r *GormMatterRepository) scopeToUser(query *gorm.DB, userID uuid.UUID) *gorm.DB {
	return query.Where("mediator_id = ? OR client_id = ? OR shared_with @> ?",
		userID, userID, `["`+userID.String()+`"]`)
}

func (r *GormMatterRepository) applyFilter(query *gorm.DB, filter matter.MatterFilter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("number ILIKE ? OR title ILIKE ? OR description ILIKE ?",
			pattern, pattern, pattern)
	}
	if filter.MediatorID != nil {
		query = query.Where("mediator_id = ?", *filter.MediatorID)
	}
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.RateType != nil {
		query = query.Where("rate_type = ?", *filter.RateType)
	}
	return query
}

func toDomainMatters(matterModels []models.MatterModel) []matter.Matter {
	matters := make([]matter.Matter, len(matterModels))
	for i, model := range matterModels {
		matters[i] = *model.ToDomain()
	}
	return matters
}

var _ matter.MatterRepository = (*GormMatterRepository)(nil)

// GormReferralRepository implements matter.ReferralRepository using GORM
type GormReferralRepository struct {
	db *gorm.DB
}

// NewGormReferralRepository creates a new GormReferralRepository
func NewGormReferralRepository(db *gorm.DB) *GormReferralRepository {
	return &GormReferralRepository{db: db}
}

// FindByID finds a referral by ID
func (r *GormReferralRepository) FindByID(ctx context.Context, id uuid.UUID) (*matter.Referral, error) {
	var model models.ReferralModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindPendingByMatter returns the single pending referral for a matter, if any
func (r *GormReferralRepository) FindPendingByMatter(ctx context.Context, matterID uuid.UUID) (*matter.Referral, error) {
	var model models.ReferralModel
	if err := r.db.WithContext(ctx).
		Where("matter_id = ? AND status = ?", matterID, matter.ReferralStatusPending).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByMatter returns all referrals for a matter, newest first
func (r *GormReferralRepository) FindByMatter(ctx context.Context, matterID uuid.UUID) ([]matter.Referral, error) {
	var referralModels []models.ReferralModel
	if err := r.db.WithContext(ctx).
		Where("matter_id = ?", matterID).
		Order("created_at DESC").
		Find(&referralModels).Error; err != nil {
		return nil, err
	}

	referrals := make([]matter.Referral, len(referralModels))
	for i, model := range referralModels {
		referrals[i] = *model.ToDomain()
	}
	return referrals, nil
}

// FindPendingForMediator returns pending referrals offered to a mediator
func (r *GormReferralRepository) FindPendingForMediator(ctx context.Context, mediatorID uuid.UUID, filter shared.Filter) ([]matter.Referral, error) {
	query := r.db.WithContext(ctx).
		Model(&models.ReferralModel{}).
		Where("to_mediator_id = ? AND status = ?", mediatorID, matter.ReferralStatusPending)
	query = applyPageAndOrder(query, filter, CommonSortFields, "created_at")

	var referralModels []models.ReferralModel
	if err := query.Find(&referralModels).Error; err != nil {
		return nil, err
	}

	referrals := make([]matter.Referral, len(referralModels))
	for i, model := range referralModels {
		referrals[i] = *model.ToDomain()
	}
	return referrals, nil
}

// Save creates or updates a referral
func (r *GormReferralRepository) Save(ctx context.Context, ref *matter.Referral) error {
	model := &models.ReferralModel{}
	model.FromDomain(ref)
	return r.db.WithContext(ctx).Save(model).Error
}

var _ matter.ReferralRepository = (*GormReferralRepository)(nil)
