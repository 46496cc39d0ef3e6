package telemetry

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
)

func newTestBusinessMetrics(t *testing.T) *BusinessMetrics {
	t.Helper()
	meter := noop.NewMeterProvider().Meter("test")
	bm, err := NewBusinessMetrics(BusinessMetricsConfig{
		Meter:  meter,
		Logger: zap.NewNop(),
	})
	require.NoError(t, err)
	return bm
}

func TestNewBusinessMetrics(t *testing.T) {
	bm := newTestBusinessMetrics(t)
	require.NotNil(t, bm)
}

func TestNewBusinessMetrics_NilMeter(t *testing.T) {
	bm, err := NewBusinessMetrics(BusinessMetricsConfig{
		Meter:  nil,
		Logger: zap.NewNop(),
	})

	require.Error(t, err)
	assert.Nil(t, bm)
	assert.Equal(t, "NewBusinessMetrics: meter cannot be nil", err.Error())
}

func TestBusinessMetrics_RecordMatterCreated(t *testing.T) {
	bm := newTestBusinessMetrics(t)
	ctx := context.Background()

	// Should not panic
	bm.RecordMatterCreated(ctx, "HOURLY")
	bm.RecordMatterCreated(ctx, "FIXED")
}

func TestBusinessMetrics_RecordProposalFlow(t *testing.T) {
	bm := newTestBusinessMetrics(t)
	ctx := context.Background()

	// Should not panic
	bm.RecordProposalSubmitted(ctx)
	bm.RecordProposalAccepted(ctx)
}

func TestBusinessMetrics_RecordInvoiceIssued(t *testing.T) {
	bm := newTestBusinessMetrics(t)
	ctx := context.Background()

	// Records both the count and the amount in cents
	bm.RecordInvoiceIssued(ctx, decimal.NewFromFloat(199.99))
}

func TestBusinessMetrics_RecordPayment(t *testing.T) {
	bm := newTestBusinessMetrics(t)
	ctx := context.Background()

	// Should not panic
	bm.RecordPayment(ctx, PaymentStatusSuccess)
	bm.RecordPayment(ctx, PaymentStatusFailed)
}

func TestBusinessMetrics_RecordOverdueInvoices(t *testing.T) {
	bm := newTestBusinessMetrics(t)
	ctx := context.Background()

	// Should not panic
	bm.RecordOverdueInvoices(ctx, 100)
	bm.RecordOverdueInvoices(ctx, 0)
}
