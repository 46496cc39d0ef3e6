package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81"

	"github.com/lawmatch/backend/internal/domain/billing"
)

const testSigningSecret = "whsec_test_secret"

// signPayload builds a Stripe-Signature header the way Stripe does:
// t=<unix>,v1=HMAC-SHA256(secret, "<unix>.<payload>")
func signPayload(payload []byte, secret string, at time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", at.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func paymentSucceededPayload(t *testing.T, invoiceID uuid.UUID, intentID string) []byte {
	t.Helper()

	intent := map[string]interface{}{
		"id":       intentID,
		"object":   "payment_intent",
		"metadata": map[string]string{"invoice_id": invoiceID.String()},
	}
	raw, err := json.Marshal(intent)
	require.NoError(t, err)

	// ConstructEvent rejects payloads whose api_version the SDK doesn't know
	event := map[string]interface{}{
		"id":          "evt_test_1",
		"api_version": stripe.APIVersion,
		"type":        EventPaymentSucceeded,
		"data":        map[string]interface{}{"object": json.RawMessage(raw)},
	}
	payload, err := json.Marshal(event)
	require.NoError(t, err)
	return payload
}

func TestWebhookVerifier_Verify(t *testing.T) {
	t.Run("accepts a correctly signed payload", func(t *testing.T) {
		verifier, err := NewWebhookVerifier(testSigningSecret)
		require.NoError(t, err)

		payload := paymentSucceededPayload(t, uuid.New(), "pi_123")
		header := signPayload(payload, testSigningSecret, time.Now())

		event, err := verifier.Verify(payload, header)

		assert.NoError(t, err)
		require.NotNil(t, event)
		assert.Equal(t, EventPaymentSucceeded, string(event.Type))
	})

	t.Run("rejects a payload signed with the wrong secret", func(t *testing.T) {
		verifier, err := NewWebhookVerifier(testSigningSecret)
		require.NoError(t, err)

		payload := paymentSucceededPayload(t, uuid.New(), "pi_123")
		header := signPayload(payload, "whsec_wrong", time.Now())

		event, err := verifier.Verify(payload, header)

		assert.Error(t, err)
		assert.Nil(t, event)
	})

	t.Run("rejects a stale timestamp", func(t *testing.T) {
		verifier, err := NewWebhookVerifier(testSigningSecret)
		require.NoError(t, err)

		payload := paymentSucceededPayload(t, uuid.New(), "pi_123")
		header := signPayload(payload, testSigningSecret, time.Now().Add(-time.Hour))

		event, err := verifier.Verify(payload, header)

		assert.Error(t, err)
		assert.Nil(t, event)
	})

	t.Run("requires a signing secret", func(t *testing.T) {
		verifier, err := NewWebhookVerifier("")

		assert.Error(t, err)
		assert.Nil(t, verifier)
	})
}

func TestConfirmationFromEvent(t *testing.T) {
	t.Run("extracts invoice ID and intent reference", func(t *testing.T) {
		verifier, err := NewWebhookVerifier(testSigningSecret)
		require.NoError(t, err)

		invoiceID := uuid.New()
		payload := paymentSucceededPayload(t, invoiceID, "pi_456")
		header := signPayload(payload, testSigningSecret, time.Now())

		event, err := verifier.Verify(payload, header)
		require.NoError(t, err)

		confirmation, err := ConfirmationFromEvent(event)

		assert.NoError(t, err)
		require.NotNil(t, confirmation)
		assert.Equal(t, invoiceID, confirmation.InvoiceID)
		assert.Equal(t, "pi_456", confirmation.Reference)
	})

	t.Run("rejects events without invoice metadata", func(t *testing.T) {
		verifier, err := NewWebhookVerifier(testSigningSecret)
		require.NoError(t, err)

		intent := map[string]interface{}{"id": "pi_789", "object": "payment_intent"}
		raw, err := json.Marshal(intent)
		require.NoError(t, err)
		payload, err := json.Marshal(map[string]interface{}{
			"id":          "evt_test_2",
			"api_version": stripe.APIVersion,
			"type":        EventPaymentSucceeded,
			"data":        map[string]interface{}{"object": json.RawMessage(raw)},
		})
		require.NoError(t, err)

		header := signPayload(payload, testSigningSecret, time.Now())
		event, err := verifier.Verify(payload, header)
		require.NoError(t, err)

		confirmation, err := ConfirmationFromEvent(event)

		assert.Error(t, err)
		assert.Nil(t, confirmation)
	})
}

func TestStubProcessor_CreatePaymentIntent(t *testing.T) {
	t.Run("returns unique references per call", func(t *testing.T) {
		stub := NewStubProcessor()

		inv := &billing.Invoice{}
		inv.Number = "INV-2026-00001"

		first, err := stub.CreatePaymentIntent(context.Background(), inv)
		require.NoError(t, err)
		second, err := stub.CreatePaymentIntent(context.Background(), inv)
		require.NoError(t, err)

		assert.NotEqual(t, first.Reference, second.Reference)
		assert.Contains(t, first.Reference, "INV-2026-00001")
		assert.NotEmpty(t, first.ClientSecret)
	})
}
