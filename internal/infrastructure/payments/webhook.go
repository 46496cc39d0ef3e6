package payments

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"
)

// EventPaymentSucceeded is the Stripe event type that settles invoices
const EventPaymentSucceeded = "payment_intent.succeeded"

// PaymentConfirmation is the outcome of a verified payment webhook
type PaymentConfirmation struct {
	InvoiceID uuid.UUID
	Reference string
}

// WebhookVerifier validates Stripe webhook payloads against the endpoint
// signing secret
type WebhookVerifier struct {
	secret string
}

// NewWebhookVerifier creates a verifier for the given signing secret
func NewWebhookVerifier(secret string) (*WebhookVerifier, error) {
	if secret == "" {
		return nil, errors.New("stripe webhook secret is required")
	}
	return &WebhookVerifier{secret: secret}, nil
}

// Verify checks the Stripe-Signature header and returns the parsed event
func (v *WebhookVerifier) Verify(payload []byte, signatureHeader string) (*stripe.Event, error) {
	event, err := webhook.ConstructEvent(payload, signatureHeader, v.secret)
	if err != nil {
		return nil, fmt.Errorf("stripe: webhook verification failed: %w", err)
	}
	return &event, nil
}

// ConfirmationFromEvent extracts the invoice settlement details from a
// payment_intent.succeeded event. The invoice ID travels in the intent
// metadata set by CreatePaymentIntent.
func ConfirmationFromEvent(event *stripe.Event) (*PaymentConfirmation, error) {
	if event.Type != EventPaymentSucceeded {
		return nil, fmt.Errorf("stripe: unexpected event type %s", event.Type)
	}

	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return nil, fmt.Errorf("stripe: failed to parse payment intent: %w", err)
	}

	rawID, ok := intent.Metadata["invoice_id"]
	if !ok || rawID == "" {
		return nil, errors.New("stripe: payment intent carries no invoice_id")
	}

	invoiceID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("stripe: invalid invoice_id in metadata: %w", err)
	}

	return &PaymentConfirmation{
		InvoiceID: invoiceID,
		Reference: intent.ID,
	}, nil
}
