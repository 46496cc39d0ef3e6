package payments

import (
	"context"
	"fmt"
	"sync/atomic"

	billingapp "github.com/lawmatch/backend/internal/application/billing"
	"github.com/lawmatch/backend/internal/domain/billing"
)

// Ensure StubProcessor implements the billing payment port
var _ billingapp.PaymentProcessor = (*StubProcessor)(nil)

// StubProcessor fakes payment intents for development environments where
// no Stripe key is configured
type StubProcessor struct {
	counter atomic.Int64
}

// NewStubProcessor creates a new stub processor
func NewStubProcessor() *StubProcessor {
	return &StubProcessor{}
}

// CreatePaymentIntent returns a deterministic fake intent
func (p *StubProcessor) CreatePaymentIntent(ctx context.Context, inv *billing.Invoice) (*billingapp.PaymentIntent, error) {
	n := p.counter.Add(1)
	reference := fmt.Sprintf("pi_stub_%s_%d", inv.Number, n)
	return &billingapp.PaymentIntent{
		Reference:    reference,
		ClientSecret: reference + "_secret",
	}, nil
}
