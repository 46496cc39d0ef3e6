package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lawmatch/backend/internal/domain/billing"
	"github.com/lawmatch/backend/internal/domain/shared"
	"github.com/lawmatch/backend/internal/domain/shared/valueobject"
	"github.com/lawmatch/backend/internal/infrastructure/persistence/models"
)

// GormBillingItemRepository implements billing.BillingItemRepository using GORM
type GormBillingItemRepository struct {
	db *gorm.DB
}

// NewGormBillingItemRepository creates a new GormBillingItemRepository
func NewGormBillingItemRepository(db *gorm.DB) *GormBillingItemRepository {
	return &GormBillingItemRepository{db: db}
}

// FindByID finds a billing item by ID
func (r *GormBillingItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.BillingItem, error) {
	var model models.BillingItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds billing items with filtering
func (r *GormBillingItemRepository) FindAll(ctx context.Context, filter billing.BillingItemFilter) ([]billing.BillingItem, error) {
	var itemModels []models.BillingItemModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.BillingItemModel{}), filter)
	query = applyPageAndOrder(query, filter.Filter, BillingItemSortFields, "activity_date")

	if err := query.Find(&itemModels).Error; err != nil {
		return nil, err
	}
	return toDomainBillingItems(itemModels), nil
}

// FindByInvoice returns the items attached to an invoice
func (r *GormBillingItemRepository) FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]billing.BillingItem, error) {
	var itemModels []models.BillingItemModel
	if err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("activity_date ASC").
		Find(&itemModels).Error; err != nil {
		return nil, err
	}
	return toDomainBillingItems(itemModels), nil
}

// FindUnbilled returns billable, uninvoiced items for a matter in a period
func (r *GormBillingItemRepository) FindUnbilled(ctx context.Context, matterID uuid.UUID, from, to time.Time) ([]billing.BillingItem, error) {
	var itemModels []models.BillingItemModel
	if err := r.db.WithContext(ctx).
		Where("matter_id = ? AND billable = ? AND invoice_id IS NULL", matterID, true).
		Where("activity_date >= ? AND activity_date <= ?", from, to).
		Order("activity_date ASC").
		Find(&itemModels).Error; err != nil {
		return nil, err
	}
	return toDomainBillingItems(itemModels), nil
}

// Count counts billing items matching the filter
func (r *GormBillingItemRepository) Count(ctx context.Context, filter billing.BillingItemFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.BillingItemModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SummaryForMatter computes the billing summary via SQL aggregation
func (r *GormBillingItemRepository) SummaryForMatter(ctx context.Context, matterID uuid.UUID) (*billing.MatterBillingSummary, error) {
	var result struct {
		TotalBilled    decimal.Decimal
		TotalHours     decimal.Decimal
		UnbilledAmount decimal.Decimal
		Currency       string
	}

	err := r.db.WithContext(ctx).
		Model(&models.BillingItemModel{}).
		Select(`
			COALESCE(SUM(amount) FILTER (WHERE billable), 0)                         AS total_billed,
			COALESCE(SUM(hours), 0)                                                  AS total_hours,
			COALESCE(SUM(amount) FILTER (WHERE billable AND invoice_id IS NULL), 0)  AS unbilled_amount,
			COALESCE(MAX(currency), ?)                                               AS currency`,
			string(valueobject.DefaultCurrency)).
		Where("matter_id = ?", matterID).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return &billing.MatterBillingSummary{
		MatterID:       matterID,
		TotalBilled:    result.TotalBilled,
		TotalHours:     result.TotalHours,
		UnbilledAmount: result.UnbilledAmount,
		Currency:       result.Currency,
	}, nil
}

// Save creates or updates a billing item
func (r *GormBillingItemRepository) Save(ctx context.Context, item *billing.BillingItem) error {
	model := &models.BillingItemModel{}
	model.FromDomain(item)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormBillingItemRepository) SaveWithLock(ctx context.Context, item *billing.BillingItem) error {
	expected := item.Version
	item.Version++
	item.UpdatedAt = time.Now()

	model := &models.BillingItemModel{}
	model.FromDomain(item)
	if err := updateWithVersionCheck(ctx, r.db, model, item.ID, expected); err != nil {
		item.Version = expected
		return err
	}
	return nil
}

// Delete removes a billing item
func (r *GormBillingItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.BillingItemModel{}, "id = ?", id).Error
}

func (r *GormBillingItemRepository) applyFilter(query *gorm.DB, filter billing.BillingItemFilter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("description ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.MatterID != nil {
		query = query.Where("matter_id = ?", *filter.MatterID)
	}
	if filter.CreatedByID != nil {
		query = query.Where("created_by_id = ?", *filter.CreatedByID)
	}
	if filter.Kind != nil {
		query = query.Where("kind = ?", *filter.Kind)
	}
	if filter.Billable != nil {
		query = query.Where("billable = ?", *filter.Billable)
	}
	if filter.Uninvoiced != nil && *filter.Uninvoiced {
		query = query.Where("invoice_id IS NULL")
	}
	if filter.From != nil {
		query = query.Where("activity_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("activity_date <= ?", *filter.To)
	}
	return query
}

func toDomainBillingItems(itemModels []models.BillingItemModel) []billing.BillingItem {
	items := make([]billing.BillingItem, len(itemModels))
	for i, model := range itemModels {
		items[i] = *model.ToDomain()
	}
	return items
}

var _ billing.BillingItemRepository = (*GormBillingItemRepository)(nil)
