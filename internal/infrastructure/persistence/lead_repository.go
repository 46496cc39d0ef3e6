package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lawmatch/backend/internal/domain/leads"
	"github.com/lawmatch/backend/internal/domain/shared"
	"github.com/lawmatch/backend/internal/infrastructure/persistence/models"
)

// GormLeadRepository implements leads.LeadRepository using GORM
type GormLeadRepository struct {
	db *gorm.DB
}

// NewGormLeadRepository creates a new GormLeadRepository
func NewGormLeadRepository(db *gorm.DB) *GormLeadRepository {
	return &GormLeadRepository{db: db}
}

// FindByID finds a lead by ID
func (r *GormLeadRepository) FindByID(ctx context.Context, id uuid.UUID) (*leads.Lead, error) {
	var model models.LeadModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds leads with filtering
func (r *GormLeadRepository) FindAll(ctx context.Context, filter leads.LeadFilter) ([]leads.Lead, error) {
	var leadModels []models.LeadModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.LeadModel{}), filter)
	query = applyPageAndOrder(query, filter.Filter, LeadSortFields, "created_at")

	if err := query.Find(&leadModels).Error; err != nil {
		return nil, err
	}

	result := make([]leads.Lead, len(leadModels))
	for i, model := range leadModels {
		result[i] = *model.ToDomain()
	}
	return result, nil
}

// FindActiveByParties returns the active lead between a mediator and client, if any
func (r *GormLeadRepository) FindActiveByParties(ctx context.Context, mediatorID, clientID uuid.UUID) (*leads.Lead, error) {
	var model models.LeadModel
	if err := r.db.WithContext(ctx).
		Where("mediator_id = ? AND client_id = ? AND status = ?",
			mediatorID, clientID, leads.LeadStatusActive).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Count counts leads matching the filter
func (r *GormLeadRepository) Count(ctx context.Context, filter leads.LeadFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.LeadModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a lead
func (r *GormLeadRepository) Save(ctx context.Context, lead *leads.Lead) error {
	model := &models.LeadModel{}
	model.FromDomain(lead)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormLeadRepository) SaveWithLock(ctx context.Context, lead *leads.Lead) error {
	expected := lead.Version
	lead.Version++
	lead.UpdatedAt = time.Now()

	model := &models.LeadModel{}
	model.FromDomain(lead)
	if err := updateWithVersionCheck(ctx, r.db, model, lead.ID, expected); err != nil {
		lead.Version = expected
		return err
	}
	return nil
}

// Delete removes a lead
func (r *GormLeadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.LeadModel{}, "id = ?", id).Error
}

func (r *GormLeadRepository) applyFilter(query *gorm.DB, filter leads.LeadFilter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("note ILIKE ?", "%"+filter.Search+"%")
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
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.Source != nil {
		query = query.Where("source = ?", *filter.Source)
	}
	return query
}

var _ leads.LeadRepository = (*GormLeadRepository)(nil)

// GormOpportunityRepository implements leads.OpportunityRepository using GORM
type GormOpportunityRepository struct {
	db *gorm.DB
}

// NewGormOpportunityRepository creates a new GormOpportunityRepository
func NewGormOpportunityRepository(db *gorm.DB) *GormOpportunityRepository {
	return &GormOpportunityRepository{db: db}
}

// FindByID finds an opportunity by ID
func (r *GormOpportunityRepository) FindByID(ctx context.Context, id uuid.UUID) (*leads.Opportunity, error) {
	var model models.OpportunityModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByMediator returns a mediator's opportunities with the total count
func (r *GormOpportunityRepository) FindByMediator(ctx context.Context, mediatorID uuid.UUID, filter shared.Filter) ([]leads.Opportunity, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.OpportunityModel{}).
		Where("mediator_id = ?", mediatorID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var opportunityModels []models.OpportunityModel
	paged := applyPageAndOrder(query, filter, CommonSortFields, "created_at")
	if err := paged.Find(&opportunityModels).Error; err != nil {
		return nil, 0, err
	}

	opportunities := make([]leads.Opportunity, len(opportunityModels))
	for i, model := range opportunityModels {
		opportunities[i] = *model.ToDomain()
	}
	return opportunities, total, nil
}

// Save creates or updates an opportunity
func (r *GormOpportunityRepository) Save(ctx context.Context, opportunity *leads.Opportunity) error {
	model := &models.OpportunityModel{}
	model.FromDomain(opportunity)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes an opportunity
func (r *GormOpportunityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.OpportunityModel{}, "id = ?", id).Error
}

var _ leads.OpportunityRepository = (*GormOpportunityRepository)(nil)
