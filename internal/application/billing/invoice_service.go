package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lawmatch/backend/internal/domain/billing"
	"github.com/lawmatch/backend/internal/domain/matter"
	"github.com/lawmatch/backend/internal/domain/shared"
	"github.com/lawmatch/backend/internal/domain/shared/valueobject"
	"github.com/lawmatch/backend/internal/infrastructure/telemetry"
)

// PaymentProcessor creates payment intents for open invoices. Implemented
// by the Stripe adapter in infrastructure.
type PaymentProcessor interface {
	CreatePaymentIntent(ctx context.Context, inv *billing.Invoice) (*PaymentIntent, error)
}

// InvoiceService assembles, issues, and settles invoices
type InvoiceService struct {
	invoiceRepo     billing.InvoiceRepository
	itemRepo        billing.BillingItemRepository
	matterRepo      matter.MatterRepository
	payments        PaymentProcessor
	eventPublisher  shared.EventPublisher
	businessMetrics *telemetry.BusinessMetrics
	logger          *zap.Logger
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo billing.InvoiceRepository,
	itemRepo billing.BillingItemRepository,
	matterRepo matter.MatterRepository,
	payments PaymentProcessor,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:    invoiceRepo,
		itemRepo:       itemRepo,
		matterRepo:     matterRepo,
		payments:       payments,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// SetBusinessMetrics sets the business metrics collector
func (s *InvoiceService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// CreateInvoice assembles a draft invoice for a matter billing period,
// optionally attaching every billable uninvoiced item in the period
func (s *InvoiceService) CreateInvoice(ctx context.Context, input CreateInvoiceInput) (*billing.Invoice, error) {
	m, err := s.matterRepo.FindByID(ctx, input.MatterID)
	if err != nil {
		return nil, shared.NewDomainError("MATTER_NOT_FOUND", "Matter not found")
	}
	if m.MediatorID != input.ActorID {
		return nil, shared.NewDomainError("FORBIDDEN", "Only the matter's mediator can create invoices")
	}

	number, err := s.invoiceRepo.NextNumber(ctx)
	if err != nil {
		s.logger.Error("Failed to allocate invoice number", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to allocate invoice number")
	}

	inv, err := billing.NewInvoice(number, m.ID, m.MediatorID, m.ClientID, input.Title, input.PeriodStart, input.PeriodEnd, valueobject.Currency(m.Currency))
	if err != nil {
		return nil, err
	}
	if input.Note != "" {
		if err := inv.UpdateDetails(input.Title, input.Note); err != nil {
			return nil, err
		}
	}

	var attached []*billing.BillingItem
	if input.AttachUnbilled {
		items, err := s.itemRepo.FindUnbilled(ctx, m.ID, input.PeriodStart, input.PeriodEnd)
		if err != nil {
			s.logger.Error("Failed to load unbilled items", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load unbilled items")
		}
		for i := range items {
			item := &items[i]
			if err := inv.AttachItem(item); err != nil {
				s.logger.Warn("Unbilled item skipped during invoice assembly",
					zap.String("item_id", item.ID.String()),
					zap.Error(err))
				continue
			}
			attached = append(attached, item)
		}
	}

	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		s.logger.Error("Failed to save invoice", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create invoice")
	}
	for _, item := range attached {
		if err := s.itemRepo.SaveWithLock(ctx, item); err != nil {
			s.logger.Error("Failed to save attached item",
				zap.String("item_id", item.ID.String()),
				zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to attach billing items")
		}
	}

	s.logger.Info("Invoice created",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("number", inv.Number),
		zap.Int("items", inv.ItemCount),
		zap.String("total", inv.TotalAmount.String()))

	return inv, nil
}

// GetInvoice retrieves an invoice visible to the actor
func (s *InvoiceService) GetInvoice(ctx context.Context, actorID, invoiceID uuid.UUID) (*billing.Invoice, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, shared.NewDomainError("INVOICE_NOT_FOUND", "Invoice not found")
	}
	if inv.MediatorID != actorID && inv.ClientID != actorID {
		return nil, shared.ErrForbidden
	}
	return inv, nil
}

// ListInvoices lists invoices where the actor is mediator or client
func (s *InvoiceService) ListInvoices(ctx context.Context, input ListInvoicesInput) (*shared.Paginated[billing.Invoice], error) {
	filter := billing.InvoiceFilter{Filter: shared.DefaultFilter()}
	if input.Page > 0 {
		filter.Page = input.Page
	}
	if input.PageSize > 0 {
		filter.PageSize = input.PageSize
	}
	filter.MatterID = input.MatterID
	filter.Status = input.Status
	// Scope to the actor on either side of the invoice
	filter.PartyID = &input.ActorID

	invoices, err := s.invoiceRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list invoices", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list invoices")
	}
	total, err := s.invoiceRepo.Count(ctx, filter)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to count invoices")
	}

	result := shared.NewPaginated(invoices, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListInvoiceItems returns the billing items attached to an invoice
func (s *InvoiceService) ListInvoiceItems(ctx context.Context, actorID, invoiceID uuid.UUID) ([]billing.BillingItem, error) {
	if _, err := s.GetInvoice(ctx, actorID, invoiceID); err != nil {
		return nil, err
	}
	return s.itemRepo.FindByInvoice(ctx, invoiceID)
}

// AttachItem adds a billing item to a draft invoice
func (s *InvoiceService) AttachItem(ctx context.Context, input InvoiceItemInput) (*billing.Invoice, error) {
	inv, err := s.requireMediatorInvoice(ctx, input.ActorID, input.InvoiceID)
	if err != nil {
		return nil, err
	}
	item, err := s.itemRepo.FindByID(ctx, input.ItemID)
	if err != nil {
		return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Billing item not found")
	}

	if err := inv.AttachItem(item); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, inv); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to attach item")
	}
	if err := s.itemRepo.SaveWithLock(ctx, item); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to attach item")
	}

	return inv, nil
}

// DetachItem removes a billing item from a draft invoice
func (s *InvoiceService) DetachItem(ctx context.Context, input InvoiceItemInput) (*billing.Invoice, error) {
	inv, err := s.requireMediatorInvoice(ctx, input.ActorID, input.InvoiceID)
	if err != nil {
		return nil, err
	}
	item, err := s.itemRepo.FindByID(ctx, input.ItemID)
	if err != nil {
		return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Billing item not found")
	}

	if err := inv.DetachItem(item); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, inv); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to detach item")
	}
	if err := s.itemRepo.SaveWithLock(ctx, item); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to detach item")
	}

	return inv, nil
}

// SendInvoice issues a draft invoice to the client
func (s *InvoiceService) SendInvoice(ctx context.Context, input SendInvoiceInput) (*billing.Invoice, error) {
	inv, err := s.requireMediatorInvoice(ctx, input.ActorID, input.InvoiceID)
	if err != nil {
		return nil, err
	}

	if err := inv.Send(input.DueDate); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, inv); err != nil {
		s.logger.Error("Failed to send invoice", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to send invoice")
	}

	s.publishEvents(ctx, inv)

	if s.businessMetrics != nil {
		s.businessMetrics.RecordInvoiceIssued(ctx, inv.TotalAmount)
	}

	s.logger.Info("Invoice sent",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("number", inv.Number),
		zap.Time("due_date", input.DueDate))

	return inv, nil
}

// VoidInvoice cancels a draft or open invoice and releases its items
func (s *InvoiceService) VoidInvoice(ctx context.Context, input VoidInvoiceInput) (*billing.Invoice, error) {
	inv, err := s.requireMediatorInvoice(ctx, input.ActorID, input.InvoiceID)
	if err != nil {
		return nil, err
	}

	if err := inv.Void(input.Reason); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, inv); err != nil {
		s.logger.Error("Failed to void invoice", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to void invoice")
	}

	// Attached items return to the unbilled pool
	items, err := s.itemRepo.FindByInvoice(ctx, inv.ID)
	if err != nil {
		s.logger.Error("Failed to load items of voided invoice", zap.Error(err))
	} else {
		for i := range items {
			item := &items[i]
			if err := item.DetachFromInvoice(); err != nil {
				continue
			}
			if err := s.itemRepo.SaveWithLock(ctx, item); err != nil {
				s.logger.Error("Failed to release item from voided invoice",
					zap.String("item_id", item.ID.String()),
					zap.Error(err))
			}
		}
	}

	s.publishEvents(ctx, inv)

	s.logger.Info("Invoice voided",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("reason", input.Reason))

	return inv, nil
}

// CreatePaymentIntent starts payment collection for an open invoice.
// Only the invoiced client may pay.
func (s *InvoiceService) CreatePaymentIntent(ctx context.Context, actorID, invoiceID uuid.UUID) (*PaymentIntent, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, shared.NewDomainError("INVOICE_NOT_FOUND", "Invoice not found")
	}
	if inv.ClientID != actorID {
		return nil, shared.NewDomainError("FORBIDDEN", "Only the invoiced client can pay this invoice")
	}
	if inv.Status != billing.InvoiceStatusOpen {
		return nil, shared.NewDomainError("INVALID_STATE", "Only open invoices can be paid")
	}

	intent, err := s.payments.CreatePaymentIntent(ctx, inv)
	if err != nil {
		s.logger.Error("Failed to create payment intent",
			zap.String("invoice_id", inv.ID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("PAYMENT_ERROR", "Failed to start payment")
	}

	return intent, nil
}

// RegisterPayment settles an open invoice from a payment processor
// confirmation. Safe to call more than once per reference.
func (s *InvoiceService) RegisterPayment(ctx context.Context, invoiceID uuid.UUID, reference string) error {
	inv, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return shared.NewDomainError("INVOICE_NOT_FOUND", "Invoice not found")
	}

	if inv.Status == billing.InvoiceStatusPaid && inv.PaymentReference == reference {
		// Duplicate webhook delivery
		return nil
	}

	if err := inv.RegisterPayment(reference); err != nil {
		return err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, inv); err != nil {
		s.logger.Error("Failed to register payment", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to register payment")
	}

	s.publishEvents(ctx, inv)

	if s.businessMetrics != nil {
		s.businessMetrics.RecordPayment(ctx, telemetry.PaymentStatusSuccess)
	}

	s.logger.Info("Invoice paid",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("number", inv.Number),
		zap.String("reference", reference))

	return nil
}

// SweepOverdue flags open invoices past their due date, raising an
// InvoiceOverdue event per hit. Run daily by the scheduler.
func (s *InvoiceService) SweepOverdue(ctx context.Context, asOf time.Time) (int, error) {
	overdue, err := s.invoiceRepo.FindOverdue(ctx, asOf)
	if err != nil {
		s.logger.Error("Overdue sweep failed", zap.Error(err))
		return 0, err
	}

	for i := range overdue {
		inv := &overdue[i]
		if err := s.eventPublisher.Publish(ctx, billing.NewInvoiceOverdueEvent(inv)); err != nil {
			s.logger.Error("Failed to publish overdue event",
				zap.String("invoice_id", inv.ID.String()),
				zap.Error(err))
		}
	}

	if s.businessMetrics != nil {
		s.businessMetrics.RecordOverdueInvoices(ctx, int64(len(overdue)))
	}

	if len(overdue) > 0 {
		s.logger.Info("Overdue sweep finished", zap.Int("count", len(overdue)))
	}

	return len(overdue), nil
}

// GenerateMonthlyDrafts assembles a draft invoice per open matter with
// unbilled items in the previous calendar month. Run monthly by the
// scheduler.
func (s *InvoiceService) GenerateMonthlyDrafts(ctx context.Context, now time.Time) (int, error) {
	periodEnd := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	periodStart := periodEnd.AddDate(0, -1, 0)

	status := matter.MatterStatusOpen
	filter := matter.MatterFilter{Filter: shared.DefaultFilter(), Status: &status}
	filter.PageSize = 500

	created := 0
	for page := 1; ; page++ {
		filter.Page = page
		matters, err := s.matterRepo.FindAll(ctx, filter)
		if err != nil {
			s.logger.Error("Monthly draft generation failed to list matters",
				zap.Int("page", page),
				zap.Error(err))
			return created, err
		}
		if len(matters) == 0 {
			break
		}

		for i := range matters {
			m := &matters[i]
			items, err := s.itemRepo.FindUnbilled(ctx, m.ID, periodStart, periodEnd)
			if err != nil {
				s.logger.Error("Failed to load unbilled items for monthly draft",
					zap.String("matter_id", m.ID.String()),
					zap.Error(err))
				continue
			}
			if len(items) == 0 {
				continue
			}

			title := fmt.Sprintf("Services for %s, %s", m.Title, periodStart.Format("January 2006"))
			_, err = s.CreateInvoice(ctx, CreateInvoiceInput{
				ActorID:        m.MediatorID,
				MatterID:       m.ID,
				Title:          title,
				PeriodStart:    periodStart,
				PeriodEnd:      periodEnd,
				AttachUnbilled: true,
			})
			if err != nil {
				s.logger.Error("Failed to create monthly draft",
					zap.String("matter_id", m.ID.String()),
					zap.Error(err))
				continue
			}
			created++
		}

		if len(matters) < filter.PageSize {
			break
		}
	}

	s.logger.Info("Monthly draft generation finished",
		zap.Int("created", created),
		zap.Time("period_start", periodStart),
		zap.Time("period_end", periodEnd))

	return created, nil
}

func (s *InvoiceService) requireMediatorInvoice(ctx context.Context, actorID, invoiceID uuid.UUID) (*billing.Invoice, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, shared.NewDomainError("INVOICE_NOT_FOUND", "Invoice not found")
	}
	if inv.MediatorID != actorID {
		return nil, shared.NewDomainError("FORBIDDEN", "Only the invoice's mediator can perform this action")
	}
	return inv, nil
}

func (s *InvoiceService) publishEvents(ctx context.Context, inv *billing.Invoice) {
	events := inv.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish invoice events", zap.Error(err))
	}
	inv.ClearDomainEvents()
}
