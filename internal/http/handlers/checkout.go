package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/brightroom/studio-bookings/internal/domain"
	"github.com/brightroom/studio-bookings/internal/holds"
	"github.com/brightroom/studio-bookings/internal/http/response"
	"github.com/brightroom/studio-bookings/internal/payments"
	"github.com/brightroom/studio-bookings/internal/pricing"
	"github.com/brightroom/studio-bookings/pkg/events"
	"github.com/brightroom/studio-bookings/pkg/logger"
)

// checkout prices the booking server-side and opens a payment session.
// The client's idea of the total is never trusted; the session is built
// from a fresh quote over the same normalization used by /quote.
func (h *Handlers) checkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}

	if violations := h.validator.ValidateCheckout(&req, h.now()); len(violations) > 0 {
		writeViolations(w, violations)
		return
	}

	norm := pricing.Normalize(&req, h.calc.Config())
	quote := h.calc.Quote(norm)
	items, metadata := h.projector.Project(quote, norm, &req)

	// A stale or mismatched hold fails before any session is opened.
	if req.HoldID != "" {
		err := h.holds.Verify(ctx, req.HoldID, norm.Room, norm.Date, norm.StartTime, norm.Hours)
		switch {
		case errors.Is(err, holds.ErrNotFound):
			response.Conflict(w, "hold has expired or does not exist")
			return
		case errors.Is(err, holds.ErrMismatch):
			response.Conflict(w, "hold does not match this booking")
			return
		case err != nil:
			logger.ErrorContext(ctx, "Hold verification failed", "error", err, "hold_id", req.HoldID)
			response.InternalError(w, "failed to verify hold")
			return
		}
	}

	sess, err := h.payments.CreateSession(ctx, items, metadata, req.ContactEmail())
	if err != nil {
		if errors.Is(err, payments.ErrNotConfigured) {
			logger.ErrorContext(ctx, "Checkout attempted without payment configuration")
			response.WriteError(w, http.StatusInternalServerError, "payments are not configured", response.CodeNotConfigured)
			return
		}
		logger.ErrorContext(ctx, "Payment session creation failed", "error", err)
		response.BadGateway(w, "payment provider error")
		return
	}

	// The hold is released only after the provider accepted the session.
	// A crash between the two leaves an expiring hold, not a lost slot.
	if req.HoldID != "" {
		if _, err := h.holds.Consume(ctx, req.HoldID, norm.Room, norm.Date, norm.StartTime, norm.Hours); err != nil {
			logger.WarnContext(ctx, "Hold consume failed after session creation", "error", err, "hold_id", req.HoldID)
		} else {
			h.publish(ctx, events.HoldConsumed, events.HoldConsumedEvent{
				HoldID:     req.HoldID,
				Room:       norm.Room,
				Date:       norm.Date,
				SessionID:  sess.ID,
				ConsumedAt: h.now(),
			})
		}
	}

	h.publish(ctx, events.CheckoutSessionCreated, events.CheckoutSessionCreatedEvent{
		SessionID:  sess.ID,
		Email:      req.ContactEmail(),
		Room:       norm.Room,
		Date:       norm.Date,
		StartTime:  norm.StartTime,
		Hours:      norm.Hours,
		TotalCents: quote.TotalCents(),
		CreatedAt:  h.now(),
	})

	writeJSON(w, http.StatusOK, map[string]string{
		"sessionId":   sess.ID,
		"checkoutUrl": sess.URL,
	})
}
