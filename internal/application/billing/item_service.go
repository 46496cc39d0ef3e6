package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lawmatch/backend/internal/domain/billing"
	"github.com/lawmatch/backend/internal/domain/matter"
	"github.com/lawmatch/backend/internal/domain/shared"
	"github.com/lawmatch/backend/internal/domain/shared/valueobject"
)

// ItemService manages billing items recorded against matters
type ItemService struct {
	itemRepo   billing.BillingItemRepository
	matterRepo matter.MatterRepository
	logger     *zap.Logger
}

// NewItemService creates a new billing item service
func NewItemService(
	itemRepo billing.BillingItemRepository,
	matterRepo matter.MatterRepository,
	logger *zap.Logger,
) *ItemService {
	return &ItemService{
		itemRepo:   itemRepo,
		matterRepo: matterRepo,
		logger:     logger,
	}
}

// CreateItem records a new billing item. Only the matter's mediator may bill.
func (s *ItemService) CreateItem(ctx context.Context, input CreateItemInput) (*billing.BillingItem, error) {
	if _, err := s.requireMediator(ctx, input.ActorID, input.MatterID); err != nil {
		return nil, err
	}

	var item *billing.BillingItem
	var err error

	switch input.Kind {
	case billing.BillingItemKindTime:
		hours, herr := parseDecimal(input.Hours, "INVALID_HOURS", "Hours is not a valid number")
		if herr != nil {
			return nil, herr
		}
		rate, rerr := parseMoney(input.HourlyRate, input.Currency, "INVALID_RATE")
		if rerr != nil {
			return nil, rerr
		}
		item, err = billing.NewTimeItem(input.MatterID, input.ActorID, input.Description, input.ActivityDate, hours, rate)
	case billing.BillingItemKindExpense:
		amount, aerr := parseMoney(input.Amount, input.Currency, "INVALID_AMOUNT")
		if aerr != nil {
			return nil, aerr
		}
		item, err = billing.NewExpenseItem(input.MatterID, input.ActorID, input.Description, input.ActivityDate, amount)
	case billing.BillingItemKindFlatFee:
		amount, aerr := parseMoney(input.Amount, input.Currency, "INVALID_AMOUNT")
		if aerr != nil {
			return nil, aerr
		}
		item, err = billing.NewFlatFeeItem(input.MatterID, input.ActorID, input.Description, input.ActivityDate, amount)
	default:
		return nil, shared.NewDomainError("INVALID_KIND", "Billing item kind is not valid")
	}
	if err != nil {
		return nil, err
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		s.logger.Error("Failed to save billing item", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create billing item")
	}

	s.logger.Info("Billing item created",
		zap.String("item_id", item.ID.String()),
		zap.String("matter_id", item.MatterID.String()),
		zap.String("kind", item.Kind.String()),
		zap.String("amount", item.Amount.String()))

	return item, nil
}

// UpdateItem edits an uninvoiced billing item
func (s *ItemService) UpdateItem(ctx context.Context, input UpdateItemInput) (*billing.BillingItem, error) {
	item, err := s.requireItemOwner(ctx, input.ActorID, input.ItemID)
	if err != nil {
		return nil, err
	}

	if item.Kind == billing.BillingItemKindTime {
		hours, herr := parseDecimal(input.Hours, "INVALID_HOURS", "Hours is not a valid number")
		if herr != nil {
			return nil, herr
		}
		rate, rerr := parseMoney(input.HourlyRate, input.Currency, "INVALID_RATE")
		if rerr != nil {
			return nil, rerr
		}
		err = item.UpdateTime(input.Description, input.ActivityDate, hours, rate)
	} else {
		amount, aerr := parseMoney(input.Amount, input.Currency, "INVALID_AMOUNT")
		if aerr != nil {
			return nil, aerr
		}
		err = item.UpdateAmount(input.Description, input.ActivityDate, amount)
	}
	if err != nil {
		return nil, err
	}

	if err := s.itemRepo.SaveWithLock(ctx, item); err != nil {
		s.logger.Error("Failed to update billing item", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update billing item")
	}

	return item, nil
}

// SetBillable toggles whether the item is chargeable to the client
func (s *ItemService) SetBillable(ctx context.Context, actorID, itemID uuid.UUID, billable bool) (*billing.BillingItem, error) {
	item, err := s.requireItemOwner(ctx, actorID, itemID)
	if err != nil {
		return nil, err
	}

	if err := item.SetBillable(billable); err != nil {
		return nil, err
	}

	if err := s.itemRepo.SaveWithLock(ctx, item); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update billing item")
	}
	return item, nil
}

// DeleteItem removes an uninvoiced billing item
func (s *ItemService) DeleteItem(ctx context.Context, actorID, itemID uuid.UUID) error {
	item, err := s.requireItemOwner(ctx, actorID, itemID)
	if err != nil {
		return err
	}
	if item.IsInvoiced() {
		return shared.NewDomainError("INVALID_STATE", "Cannot delete a billing item that has been invoiced")
	}

	if err := s.itemRepo.Delete(ctx, itemID); err != nil {
		s.logger.Error("Failed to delete billing item", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete billing item")
	}
	return nil
}

// ListItems lists billing items for a matter the actor has access to
func (s *ItemService) ListItems(ctx context.Context, input ListItemsInput) (*shared.Paginated[billing.BillingItem], error) {
	m, err := s.matterRepo.FindByID(ctx, input.MatterID)
	if err != nil {
		return nil, shared.NewDomainError("MATTER_NOT_FOUND", "Matter not found")
	}
	if !m.IsAccessibleBy(input.ActorID) {
		return nil, shared.ErrForbidden
	}

	filter := billing.BillingItemFilter{Filter: shared.DefaultFilter()}
	if input.Page > 0 {
		filter.Page = input.Page
	}
	if input.PageSize > 0 {
		filter.PageSize = input.PageSize
	}
	filter.MatterID = &input.MatterID
	filter.Kind = input.Kind
	filter.Uninvoiced = input.Uninvoiced

	items, err := s.itemRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list billing items", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list billing items")
	}
	total, err := s.itemRepo.Count(ctx, filter)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to count billing items")
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// MatterSummary returns aggregate billing figures for a matter
func (s *ItemService) MatterSummary(ctx context.Context, actorID, matterID uuid.UUID) (*billing.MatterBillingSummary, error) {
	m, err := s.matterRepo.FindByID(ctx, matterID)
	if err != nil {
		return nil, shared.NewDomainError("MATTER_NOT_FOUND", "Matter not found")
	}
	if !m.IsAccessibleBy(actorID) {
		return nil, shared.ErrForbidden
	}
	return s.itemRepo.SummaryForMatter(ctx, matterID)
}

func (s *ItemService) requireMediator(ctx context.Context, actorID, matterID uuid.UUID) (*matter.Matter, error) {
	m, err := s.matterRepo.FindByID(ctx, matterID)
	if err != nil {
		return nil, shared.NewDomainError("MATTER_NOT_FOUND", "Matter not found")
	}
	if m.MediatorID != actorID {
		return nil, shared.NewDomainError("FORBIDDEN", "Only the matter's mediator can manage billing")
	}
	return m, nil
}

func (s *ItemService) requireItemOwner(ctx context.Context, actorID, itemID uuid.UUID) (*billing.BillingItem, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Billing item not found")
	}
	if _, err := s.requireMediator(ctx, actorID, item.MatterID); err != nil {
		return nil, err
	}
	return item, nil
}

func parseDecimal(value, code, message string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, shared.NewDomainError(code, message)
	}
	return d, nil
}

func parseMoney(amount, currency, code string) (valueobject.Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return valueobject.Money{}, shared.NewDomainError(code, "Amount is not a valid number")
	}
	cur := valueobject.Currency(currency)
	if currency == "" {
		cur = valueobject.DefaultCurrency
	}
	money, err := valueobject.NewMoney(d, cur)
	if err != nil {
		return valueobject.Money{}, shared.NewDomainError(code, err.Error())
	}
	return money, nil
}
