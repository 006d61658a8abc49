package web

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"

	"telegram-subscription-bot/internal/domain/model"
	"telegram-subscription-bot/internal/infra/logging"
	"telegram-subscription-bot/internal/infra/metrics"
)

// Stripe caps event payloads well under this; anything bigger is not ours.
const maxWebhookBody = 64 * 1024

// handleStripeWebhook is the reconciliation entry point. Signature
// failures are the only non-2xx path that matters: the provider retries
// on those. Everything after a valid signature is acknowledged, acted on
// or not, so the provider does not redeliver events we have chosen to drop.
func (s *Server) handleStripeWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logging.With(ctx, s.log)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		log.Warn().Err(err).Msg("webhook body read failed")
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	event, err := webhook.ConstructEvent(body, r.Header.Get("Stripe-Signature"), s.webhookSecret)
	if err != nil {
		metrics.IncWebhookSignatureFailure()
		log.Warn().Err(err).Msg("webhook signature verification failed")
		http.Error(w, "invalid signature", http.StatusBadRequest)
		return
	}

	eventType := string(event.Type)

	if s.deduper != nil {
		fresh, derr := s.deduper.MarkSeen(ctx, event.ID)
		if derr != nil {
			// Redis being down must not drop events; fall through.
			log.Warn().Err(derr).Str("event", event.ID).Msg("webhook dedupe unavailable")
		} else if !fresh {
			metrics.IncWebhookEvent(eventType, "duplicate")
			w.WriteHeader(http.StatusOK)
			return
		}
	}

	if err := s.events.Record(ctx, model.NewWebhookEvent(event.ID, eventType)); err != nil {
		log.Warn().Err(err).Str("event", event.ID).Msg("webhook audit insert failed")
	}

	var outcome string
	switch eventType {
	case "checkout.session.completed":
		outcome, err = s.applyCheckoutCompleted(r, event)
	case "customer.subscription.updated", "customer.subscription.deleted":
		outcome, err = s.applySubscriptionEvent(r, event)
	default:
		outcome = "ignored"
	}

	if err != nil {
		// Storage failed after a valid signature: release the dedupe
		// claim and ask the provider to redeliver.
		if s.deduper != nil {
			_ = s.deduper.Release(ctx, event.ID)
		}
		metrics.IncWebhookEvent(eventType, "error")
		log.Error().Err(err).Str("event", event.ID).Str("type", eventType).Msg("webhook handling failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	metrics.IncWebhookEvent(eventType, outcome)
	w.WriteHeader(http.StatusOK)
}

// applyCheckoutCompleted upserts the customer link and the subscription
// row. Malformed or partial sessions are logged and dropped, never
// retried: a session without our reference id will not grow one later.
func (s *Server) applyCheckoutCompleted(r *http.Request, event stripe.Event) (string, error) {
	ctx := r.Context()
	log := logging.With(ctx, s.log)

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		log.Warn().Err(err).Str("event", event.ID).Msg("malformed checkout session payload, dropping")
		return "dropped", nil
	}

	tgID, err := strconv.ParseInt(sess.ClientReferenceID, 10, 64)
	if err != nil || tgID <= 0 {
		log.Warn().Str("event", event.ID).Str("client_reference_id", sess.ClientReferenceID).
			Msg("checkout session without usable chat id, dropping")
		return "dropped", nil
	}
	if sess.Subscription == nil || sess.Subscription.ID == "" {
		log.Warn().Str("event", event.ID).Msg("checkout session without subscription, dropping")
		return "dropped", nil
	}

	var customerID string
	if sess.Customer != nil {
		customerID = sess.Customer.ID
	}

	if err := s.subUC.ActivateFromCheckout(ctx, tgID, customerID, sess.Subscription.ID); err != nil {
		return "", err
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyActivated(ctx, tgID); err != nil {
			log.Warn().Err(err).Int64("tg_id", tgID).Msg("activation notice failed")
		}
	}
	return "applied", nil
}

func (s *Server) applySubscriptionEvent(r *http.Request, event stripe.Event) (string, error) {
	ctx := r.Context()
	log := logging.With(ctx, s.log)

	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		log.Warn().Err(err).Str("event", event.ID).Msg("malformed subscription payload, dropping")
		return "dropped", nil
	}
	if sub.ID == "" {
		log.Warn().Str("event", event.ID).Msg("subscription payload without id, dropping")
		return "dropped", nil
	}

	status := model.SubscriptionStatus(sub.Status)
	if string(event.Type) == "customer.subscription.deleted" && status == "" {
		status = model.SubscriptionStatusCanceled
	}
	if status == "" {
		log.Warn().Str("event", event.ID).Str("subscription", sub.ID).Msg("subscription payload without status, dropping")
		return "dropped", nil
	}

	tgID, applied, err := s.subUC.ApplyStatus(ctx, sub.ID, status)
	if err != nil {
		return "", err
	}
	if !applied {
		return "ignored", nil
	}

	if s.notifier != nil && !status.IsActive() {
		if err := s.notifier.NotifyStatusChanged(ctx, tgID, status); err != nil {
			log.Warn().Err(err).Int64("tg_id", tgID).Msg("status notice failed")
		}
	}
	return "applied", nil
}
