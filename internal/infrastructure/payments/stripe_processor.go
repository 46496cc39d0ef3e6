// Package payments provides the Stripe integration for invoice settlement.
package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"go.uber.org/zap"

	billingapp "github.com/lawmatch/backend/internal/application/billing"
	"github.com/lawmatch/backend/internal/domain/billing"
	infraconfig "github.com/lawmatch/backend/internal/infrastructure/config"
)

// Ensure StripeProcessor implements the billing payment port
var _ billingapp.PaymentProcessor = (*StripeProcessor)(nil)

var centsPerUnit = decimal.NewFromInt(100)

// StripeProcessor creates Stripe payment intents for open invoices
type StripeProcessor struct {
	config *infraconfig.StripeConfig
	logger *zap.Logger
}

// NewStripeProcessor creates a new Stripe processor and initializes the
// global Stripe client key
func NewStripeProcessor(cfg *infraconfig.StripeConfig, logger *zap.Logger) (*StripeProcessor, error) {
	if cfg == nil {
		return nil, errors.New("stripe configuration is required")
	}
	if cfg.SecretKey == "" {
		return nil, errors.New("stripe secret key is required")
	}

	stripe.Key = cfg.SecretKey

	return &StripeProcessor{
		config: cfg,
		logger: logger,
	}, nil
}

// CreatePaymentIntent creates a payment intent for the invoice total.
// Stripe wants the amount in the currency's smallest unit.
func (p *StripeProcessor) CreatePaymentIntent(ctx context.Context, inv *billing.Invoice) (*billingapp.PaymentIntent, error) {
	cents := inv.TotalAmount.Mul(centsPerUnit).Round(0).IntPart()
	if cents <= 0 {
		return nil, fmt.Errorf("stripe: invoice %s has a non-positive total", inv.Number)
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(cents),
		Currency: stripe.String(inv.Currency),
		Metadata: map[string]string{
			"invoice_id":     inv.ID.String(),
			"invoice_number": inv.Number,
			"matter_id":      inv.MatterID.String(),
		},
	}
	params.Context = ctx

	intent, err := paymentintent.New(params)
	if err != nil {
		p.logger.Error("Failed to create Stripe payment intent",
			zap.String("invoice_number", inv.Number),
			zap.Error(err))
		return nil, fmt.Errorf("stripe: failed to create payment intent: %w", err)
	}

	p.logger.Info("Created Stripe payment intent",
		zap.String("invoice_number", inv.Number),
		zap.String("payment_intent_id", intent.ID))

	return &billingapp.PaymentIntent{
		Reference:    intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}
