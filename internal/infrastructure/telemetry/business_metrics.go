package telemetry

import (
	"context"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics tracks marketplace and billing activity: matters
// opened, proposals flowing through postings, and invoice money
// movement. Amounts are recorded in cents.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	matterCreatedTotal     *Counter
	proposalSubmittedTotal *Counter
	proposalAcceptedTotal  *Counter
	invoiceIssuedTotal     *Counter
	invoiceAmountTotal     *Counter
	paymentTotal           *Counter

	overdueInvoices *Gauge
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter  metric.Meter
	Logger *zap.Logger
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:  cfg.Meter,
		logger: logger,
	}

	var err error

	bm.matterCreatedTotal, err = NewCounter(
		cfg.Meter,
		"lawmatch_matter_created_total",
		"Total number of matters created",
		"{matters}",
	)
	if err != nil {
		return nil, err
	}

	bm.proposalSubmittedTotal, err = NewCounter(
		cfg.Meter,
		"lawmatch_proposal_submitted_total",
		"Total number of proposals submitted on postings",
		"{proposals}",
	)
	if err != nil {
		return nil, err
	}

	bm.proposalAcceptedTotal, err = NewCounter(
		cfg.Meter,
		"lawmatch_proposal_accepted_total",
		"Total number of proposals accepted",
		"{proposals}",
	)
	if err != nil {
		return nil, err
	}

	bm.invoiceIssuedTotal, err = NewCounter(
		cfg.Meter,
		"lawmatch_invoice_issued_total",
		"Total number of invoices sent to clients",
		"{invoices}",
	)
	if err != nil {
		return nil, err
	}

	bm.invoiceAmountTotal, err = NewCounter(
		cfg.Meter,
		"lawmatch_invoice_amount_total",
		"Total invoiced amount in cents",
		"{cents}",
	)
	if err != nil {
		return nil, err
	}

	bm.paymentTotal, err = NewCounter(
		cfg.Meter,
		"lawmatch_payment_total",
		"Total number of payment confirmations processed",
		"{payments}",
	)
	if err != nil {
		return nil, err
	}

	bm.overdueInvoices, err = NewGauge(
		cfg.Meter,
		"lawmatch_invoice_overdue_count",
		"Number of open invoices past their due date at the last sweep",
		"{invoices}",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// RecordMatterCreated records a matter creation event.
func (bm *BusinessMetrics) RecordMatterCreated(ctx context.Context, rateType string) {
	bm.matterCreatedTotal.Inc(ctx, AttrRateType.String(rateType))
}

// RecordProposalSubmitted records a proposal landing on a posting.
func (bm *BusinessMetrics) RecordProposalSubmitted(ctx context.Context) {
	bm.proposalSubmittedTotal.Inc(ctx)
}

// RecordProposalAccepted records a client accepting a proposal.
func (bm *BusinessMetrics) RecordProposalAccepted(ctx context.Context) {
	bm.proposalAcceptedTotal.Inc(ctx)
}

// RecordInvoiceIssued records an invoice being sent, with its total.
func (bm *BusinessMetrics) RecordInvoiceIssued(ctx context.Context, amount decimal.Decimal) {
	bm.invoiceIssuedTotal.Inc(ctx)
	cents := amount.Mul(decimal.NewFromInt(100)).IntPart()
	bm.invoiceAmountTotal.Add(ctx, cents)
}

// PaymentStatus represents the outcome of a payment for metrics labeling.
type PaymentStatus string

const (
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// RecordPayment records a processed payment confirmation.
func (bm *BusinessMetrics) RecordPayment(ctx context.Context, status PaymentStatus) {
	bm.paymentTotal.Inc(ctx, AttrPaymentStatus.String(string(status)))
}

// RecordOverdueInvoices records the overdue invoice count observed by
// the scheduler's sweep.
func (bm *BusinessMetrics) RecordOverdueInvoices(ctx context.Context, count int64) {
	bm.overdueInvoices.Record(ctx, count)
}

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
