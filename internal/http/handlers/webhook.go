package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/brightroom/studio-bookings/internal/checkout"
	"github.com/brightroom/studio-bookings/internal/fulfillment"
	"github.com/brightroom/studio-bookings/internal/http/response"
	"github.com/brightroom/studio-bookings/internal/payments"
	"github.com/brightroom/studio-bookings/pkg/events"
	"github.com/brightroom/studio-bookings/pkg/logger"
)

// Stripe signs at most 64KB of payload; anything larger is not ours.
const maxWebhookBody = 65536

// stripeWebhook handles asynchronous payment completion. Once the signature
// checks out the provider always gets a 200: retrying a signed event we
// failed to process downstream would re-run fulfillment, and Stripe retries
// aggressively on anything else.
func (h *Handlers) stripeWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		response.BadRequest(w, "failed to read payload")
		return
	}

	event, err := h.webhooks.Verify(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		logger.WarnContext(ctx, "Webhook rejected", "error", err)
		response.WriteError(w, http.StatusBadRequest, "invalid webhook signature", response.CodeBadSignature)
		return
	}

	if event.Type != payments.EventCheckoutCompleted {
		logger.DebugContext(ctx, "Ignoring webhook event", "type", event.Type)
		writeJSON(w, http.StatusOK, map[string]bool{"received": true})
		return
	}

	h.handlePaidSession(r, event)
	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}

func (h *Handlers) handlePaidSession(r *http.Request, event *payments.WebhookEvent) {
	ctx := r.Context()
	booking := checkout.ParseMetadata(event.Metadata)
	if booking.Email == "" && event.CustomerEmail != "" {
		booking.Email = event.CustomerEmail
	}

	logger.InfoContext(ctx, "Payment completed",
		"session_id", event.SessionID,
		"room", booking.Room,
		"date", booking.Date,
		"amount_cents", event.AmountCents,
	)

	h.publish(ctx, events.PaymentCompleted, events.PaymentCompletedEvent{
		SessionID:   event.SessionID,
		Email:       booking.Email,
		Name:        booking.Name,
		Room:        booking.Room,
		Date:        booking.Date,
		StartTime:   booking.StartTime,
		Hours:       booking.Hours,
		TotalCents:  booking.TotalCents,
		CompletedAt: h.now(),
	})

	err := h.relay.Forward(ctx, fulfillment.Payload{
		Event:     "booking.paid",
		SessionID: event.SessionID,
		PaidAt:    h.now(),
		Booking:   booking,
	})
	switch {
	case err == nil:
		h.publish(ctx, events.FulfillmentRelayed, events.FulfillmentRelayedEvent{
			SessionID: event.SessionID,
			RelayURL:  h.cfg.Fulfillment.RelayURL,
			RelayedAt: h.now(),
		})
	case errors.Is(err, fulfillment.ErrDisabled):
		logger.DebugContext(ctx, "Fulfillment relay disabled, skipping", "session_id", event.SessionID)
	default:
		logger.ErrorContext(ctx, "Fulfillment relay failed", "error", err, "session_id", event.SessionID)
		h.publish(ctx, events.FulfillmentFailed, events.FulfillmentFailedEvent{
			SessionID: event.SessionID,
			Reason:    err.Error(),
			FailedAt:  h.now(),
		})
	}

	if h.mailer != nil && booking.Email != "" {
		if err := h.mailer.SendBookingConfirmation(booking); err != nil {
			logger.WarnContext(ctx, "Confirmation email failed", "error", err, "session_id", event.SessionID)
		}
	}
}
