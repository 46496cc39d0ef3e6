package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lawmatch/backend/internal/domain/billing"
	"github.com/lawmatch/backend/internal/domain/forum"
	"github.com/lawmatch/backend/internal/domain/identity"
	"github.com/lawmatch/backend/internal/domain/marketplace"
	"github.com/lawmatch/backend/internal/domain/matter"
	"github.com/lawmatch/backend/internal/domain/notification"
	"github.com/lawmatch/backend/internal/domain/shared"
)

// FanoutHandler turns domain events into per-user notifications with a
// dispatch record per delivery channel. In-app delivery is the insert
// itself; email dispatches stay pending for the mail worker.
type FanoutHandler struct {
	notificationRepo notification.NotificationRepository
	dispatchRepo     notification.DispatchRepository
	followRepo       forum.TopicFollowRepository
	postingRepo      marketplace.PostedMatterRepository
	logger           *zap.Logger
}

// NewFanoutHandler creates a new fan-out handler
func NewFanoutHandler(
	notificationRepo notification.NotificationRepository,
	dispatchRepo notification.DispatchRepository,
	followRepo forum.TopicFollowRepository,
	postingRepo marketplace.PostedMatterRepository,
	logger *zap.Logger,
) *FanoutHandler {
	return &FanoutHandler{
		notificationRepo: notificationRepo,
		dispatchRepo:     dispatchRepo,
		followRepo:       followRepo,
		postingRepo:      postingRepo,
		logger:           logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *FanoutHandler) EventTypes() []string {
	return []string{
		"MatterShared",
		"MatterReferralSent",
		"MatterReferralAccepted",
		"MatterReferralDeclined",
		"InvoiceSent",
		"InvoicePaid",
		"InvoiceOverdue",
		"ProposalSubmitted",
		"ProposalAccepted",
		"ProposalWithdrawn",
		"ProposalRevoked",
		"TopicReplied",
		"UserVerificationDecided",
	}
}

// Handle processes a domain event
func (h *FanoutHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *matter.MatterSharedEvent:
		return h.deliver(ctx, e.SharedWithID, notification.KindMatterShared,
			"A matter was shared with you",
			fmt.Sprintf("Matter %s has been shared with you.", e.Number),
			shared.JSONMap{"matter_id": e.MatterID.String(), "number": e.Number})

	case *matter.MatterReferralSentEvent:
		return h.deliver(ctx, e.ToMediatorID, notification.KindReferralSent,
			"New referral received",
			fmt.Sprintf("You have been offered a referral on matter %s.", e.Number),
			shared.JSONMap{"matter_id": e.MatterID.String(), "referral_id": e.ReferralID.String()})

	case *matter.MatterReferralAcceptedEvent:
		return h.deliver(ctx, e.FromMediatorID, notification.KindReferralAccepted,
			"Referral accepted",
			fmt.Sprintf("Your referral on matter %s was accepted.", e.Number),
			shared.JSONMap{"matter_id": e.MatterID.String(), "referral_id": e.ReferralID.String()})

	case *matter.MatterReferralDeclinedEvent:
		return h.deliver(ctx, e.FromMediatorID, notification.KindReferralDeclined,
			"Referral declined",
			fmt.Sprintf("Your referral on matter %s was declined.", e.Number),
			shared.JSONMap{"matter_id": e.MatterID.String(), "referral_id": e.ReferralID.String()})

	case *billing.InvoiceSentEvent:
		return h.deliver(ctx, e.ClientID, notification.KindInvoiceSent,
			"New invoice",
			fmt.Sprintf("Invoice %s for %s %s is ready for payment.", e.Number, e.TotalAmount.StringFixed(2), e.Currency),
			shared.JSONMap{"invoice_id": e.InvoiceID.String(), "number": e.Number})

	case *billing.InvoicePaidEvent:
		return h.deliver(ctx, e.MediatorID, notification.KindInvoicePaid,
			"Invoice paid",
			fmt.Sprintf("Invoice %s was paid (%s %s).", e.Number, e.TotalAmount.StringFixed(2), e.Currency),
			shared.JSONMap{"invoice_id": e.InvoiceID.String(), "number": e.Number})

	case *billing.InvoiceOverdueEvent:
		payload := shared.JSONMap{"invoice_id": e.InvoiceID.String(), "number": e.Number}
		if err := h.deliver(ctx, e.ClientID, notification.KindInvoiceOverdue,
			"Invoice overdue",
			fmt.Sprintf("Invoice %s is past its due date.", e.Number), payload); err != nil {
			return err
		}
		return h.deliver(ctx, e.MediatorID, notification.KindInvoiceOverdue,
			"Invoice overdue",
			fmt.Sprintf("Your invoice %s to the client is past due.", e.Number), payload)

	case *marketplace.ProposalSubmittedEvent:
		clientID, err := h.postingClient(ctx, e.PostedMatterID)
		if err != nil {
			return err
		}
		return h.deliver(ctx, clientID, notification.KindProposalSubmitted,
			"New proposal on your posting",
			fmt.Sprintf("A mediator proposed %s %s on your posted matter.", e.Rate.StringFixed(2), e.Currency),
			shared.JSONMap{"proposal_id": e.ProposalID.String(), "posted_matter_id": e.PostedMatterID.String()})

	case *marketplace.ProposalAcceptedEvent:
		return h.deliver(ctx, e.MediatorID, notification.KindProposalAccepted,
			"Proposal accepted",
			"Your proposal was accepted. A draft matter has been created.",
			shared.JSONMap{"proposal_id": e.ProposalID.String(), "posted_matter_id": e.PostedMatterID.String()})

	case *marketplace.ProposalWithdrawnEvent:
		clientID, err := h.postingClient(ctx, e.PostedMatterID)
		if err != nil {
			return err
		}
		return h.deliver(ctx, clientID, notification.KindProposalWithdrawn,
			"Proposal withdrawn",
			"A mediator withdrew their proposal on your posted matter.",
			shared.JSONMap{"proposal_id": e.ProposalID.String(), "posted_matter_id": e.PostedMatterID.String()})

	case *marketplace.ProposalRevokedEvent:
		return h.deliver(ctx, e.MediatorID, notification.KindProposalRevoked,
			"Proposal revoked",
			"The client revoked your accepted proposal. The posting is back on the market.",
			shared.JSONMap{"proposal_id": e.ProposalID.String(), "posted_matter_id": e.PostedMatterID.String()})

	case *forum.TopicRepliedEvent:
		return h.fanOutToFollowers(ctx, e)

	case *identity.UserVerificationDecidedEvent:
		title := "Verification approved"
		body := "Your professional verification was approved. Welcome aboard."
		if !e.Approved {
			title = "Verification denied"
			body = "Your professional verification was denied. Contact support for details."
		}
		return h.deliver(ctx, e.UserID, notification.KindVerificationDecided, title, body,
			shared.JSONMap{"decision": string(e.Decision)})

	default:
		h.logger.Debug("Unhandled event type in notification fan-out",
			zap.String("event_type", event.EventType()))
		return nil
	}
}

// fanOutToFollowers notifies every follower of the topic except the
// post's author
func (h *FanoutHandler) fanOutToFollowers(ctx context.Context, e *forum.TopicRepliedEvent) error {
	followerIDs, err := h.followRepo.FindFollowerIDs(ctx, e.TopicID)
	if err != nil {
		h.logger.Error("Failed to load topic followers",
			zap.String("topic_id", e.TopicID.String()),
			zap.Error(err))
		return err
	}

	payload := shared.JSONMap{"topic_id": e.TopicID.String(), "post_id": e.PostID.String()}
	for _, followerID := range followerIDs {
		if followerID == e.AuthorID {
			continue
		}
		if err := h.deliver(ctx, followerID, notification.KindTopicReplied,
			"New reply in a followed topic",
			fmt.Sprintf("New reply in %q.", e.TopicTitle), payload); err != nil {
			h.logger.Error("Failed to notify follower",
				zap.String("follower_id", followerID.String()),
				zap.Error(err))
		}
	}
	return nil
}

func (h *FanoutHandler) postingClient(ctx context.Context, postingID uuid.UUID) (uuid.UUID, error) {
	posting, err := h.postingRepo.FindByID(ctx, postingID)
	if err != nil {
		h.logger.Error("Failed to load posting for fan-out",
			zap.String("posting_id", postingID.String()),
			zap.Error(err))
		return uuid.Nil, err
	}
	return posting.ClientID, nil
}

func (h *FanoutHandler) deliver(ctx context.Context, recipientID uuid.UUID, kind notification.Kind, title, body string, payload shared.JSONMap) error {
	n, err := notification.NewNotification(recipientID, kind, title, body, payload)
	if err != nil {
		return err
	}
	if err := h.notificationRepo.Save(ctx, n); err != nil {
		h.logger.Error("Failed to save notification",
			zap.String("recipient_id", recipientID.String()),
			zap.String("kind", kind.String()),
			zap.Error(err))
		return err
	}

	inApp, err := notification.NewDispatch(n.ID, notification.ChannelInApp)
	if err == nil {
		inApp.MarkSent()
		if err := h.dispatchRepo.Save(ctx, inApp); err != nil {
			h.logger.Warn("Failed to record in-app dispatch", zap.Error(err))
		}
	}

	email, err := notification.NewDispatch(n.ID, notification.ChannelEmail)
	if err == nil {
		if err := h.dispatchRepo.Save(ctx, email); err != nil {
			h.logger.Warn("Failed to record email dispatch", zap.Error(err))
		}
	}

	return nil
}

var _ shared.EventHandler = (*FanoutHandler)(nil)
