package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lawmatch/backend/internal/domain/marketplace"
	"github.com/lawmatch/backend/internal/domain/shared"
	"github.com/lawmatch/backend/internal/infrastructure/persistence/models"
)

// GormProposalRepository implements marketplace.ProposalRepository using GORM
type GormProposalRepository struct {
	db *gorm.DB
}

// NewGormProposalRepository creates a new GormProposalRepository
func NewGormProposalRepository(db *gorm.DB) *GormProposalRepository {
	return &GormProposalRepository{db: db}
}

// FindByID finds a proposal by ID
func (r *GormProposalRepository) FindByID(ctx context.Context, id uuid.UUID) (*marketplace.Proposal, error) {
	var model models.ProposalModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds proposals with filtering
func (r *GormProposalRepository) FindAll(ctx context.Context, filter marketplace.ProposalFilter) ([]marketplace.Proposal, error) {
	var proposalModels []models.ProposalModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ProposalModel{}), filter)
	query = applyPageAndOrder(query, filter.Filter, CommonSortFields, "created_at")

	if err := query.Find(&proposalModels).Error; err != nil {
		return nil, err
	}
	return toDomainProposals(proposalModels), nil
}

// FindLiveByMediatorAndPosting returns the mediator's pending or accepted
// proposal on a posting, if any. One live proposal per mediator per posting.
func (r *GormProposalRepository) FindLiveByMediatorAndPosting(ctx context.Context, mediatorID, postedMatterID uuid.UUID) (*marketplace.Proposal, error) {
	var model models.ProposalModel
	if err := r.db.WithContext(ctx).
		Where("mediator_id = ? AND posted_matter_id = ? AND status IN ?",
			mediatorID, postedMatterID,
			[]marketplace.ProposalStatus{marketplace.ProposalStatusPending, marketplace.ProposalStatusAccepted}).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAcceptedByPosting returns the accepted proposal on a posting, if any
func (r *GormProposalRepository) FindAcceptedByPosting(ctx context.Context, postedMatterID uuid.UUID) (*marketplace.Proposal, error) {
	var model models.ProposalModel
	if err := r.db.WithContext(ctx).
		Where("posted_matter_id = ? AND status = ?", postedMatterID, marketplace.ProposalStatusAccepted).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Count counts proposals matching the filter
func (r *GormProposalRepository) Count(ctx context.Context, filter marketplace.ProposalFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ProposalModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a proposal
func (r *GormProposalRepository) Save(ctx context.Context, proposal *marketplace.Proposal) error {
	model := &models.ProposalModel{}
	model.FromDomain(proposal)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormProposalRepository) SaveWithLock(ctx context.Context, proposal *marketplace.Proposal) error {
	expected := proposal.Version
	proposal.Version++
	proposal.UpdatedAt = time.Now()

	model := &models.ProposalModel{}
	model.FromDomain(proposal)
	if err := updateWithVersionCheck(ctx, r.db, model, proposal.ID, expected); err != nil {
		proposal.Version = expected
		return err
	}
	return nil
}

func (r *GormProposalRepository) applyFilter(query *gorm.DB, filter marketplace.ProposalFilter) *gorm.DB {
	if filter.PostedMatterID != nil {
		query = query.Where("posted_matter_id = ?", *filter.PostedMatterID)
	}
	if filter.MediatorID != nil {
		query = query.Where("mediator_id = ?", *filter.MediatorID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	return query
}

func toDomainProposals(proposalModels []models.ProposalModel) []marketplace.Proposal {
	proposals := make([]marketplace.Proposal, len(proposalModels))
	for i, model := range proposalModels {
		proposals[i] = *model.ToDomain()
	}
	return proposals
}

var _ marketplace.ProposalRepository = (*GormProposalRepository)(nil)
