package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	billingapp "github.com/lawmatch/backend/internal/application/billing"
	"github.com/lawmatch/backend/internal/infrastructure/payments"
)

// maxWebhookBody bounds the raw payload we are willing to buffer.
const maxWebhookBody = 1 << 20

// StripeWebhookHandler receives payment events from Stripe. It sits
// outside JWT auth; the signature header is the only credential.
type StripeWebhookHandler struct {
	BaseHandler
	verifier       *payments.WebhookVerifier
	invoiceService *billingapp.InvoiceService
	logger         *zap.Logger
}

// NewStripeWebhookHandler creates a new StripeWebhookHandler
func NewStripeWebhookHandler(verifier *payments.WebhookVerifier, invoiceService *billingapp.InvoiceService, logger *zap.Logger) *StripeWebhookHandler {
	return &StripeWebhookHandler{
		verifier:       verifier,
		invoiceService: invoiceService,
		logger:         logger,
	}
}

// Handle godoc
// @Summary      Stripe webhook endpoint
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        Stripe-Signature header string true "Stripe signature"
// @Success      200 {object} dto.Response
// @Router       /webhooks/stripe [post]
func (h *StripeWebhookHandler) Handle(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		h.BadRequest(c, "Failed to read request body")
		return
	}

	event, err := h.verifier.Verify(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		h.logger.Warn("stripe webhook signature verification failed", zap.Error(err))
		h.Error(c, http.StatusBadRequest, "INVALID_SIGNATURE", "Webhook signature verification failed")
		return
	}

	// Acknowledge events we do not act on so Stripe stops retrying them.
	if string(event.Type) != payments.EventPaymentSucceeded {
		h.logger.Debug("ignoring stripe event", zap.String("type", string(event.Type)))
		h.Success(c, gin.H{"received": true})
		return
	}

	confirmation, err := payments.ConfirmationFromEvent(event)
	if err != nil {
		h.logger.Warn("stripe event rejected", zap.String("event_id", event.ID), zap.Error(err))
		h.BadRequest(c, "Malformed payment event")
		return
	}

	if err := h.invoiceService.RegisterPayment(c.Request.Context(), confirmation.InvoiceID, confirmation.Reference); err != nil {
		h.logger.Error("failed to register payment",
			zap.String("invoice_id", confirmation.InvoiceID.String()),
			zap.String("reference", confirmation.Reference),
			zap.Error(err))
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"received": true})
}
