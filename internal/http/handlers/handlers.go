package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/brightroom/studio-bookings/internal/booking"
	"github.com/brightroom/studio-bookings/internal/checkout"
	"github.com/brightroom/studio-bookings/internal/fulfillment"
	"github.com/brightroom/studio-bookings/internal/http/response"
	"github.com/brightroom/studio-bookings/internal/holds"
	"github.com/brightroom/studio-bookings/internal/payments"
	"github.com/brightroom/studio-bookings/internal/platform/mailer"
	"github.com/brightroom/studio-bookings/internal/pricing"
	"github.com/brightroom/studio-bookings/pkg/config"
	"github.com/brightroom/studio-bookings/pkg/events"
	"github.com/brightroom/studio-bookings/pkg/logger"
)

// Deps wires the handler layer to the services it fronts. Interfaces where a
// test needs to substitute a fake, concrete types where it does not.
type Deps struct {
	Config     *config.Config
	Calculator *pricing.Calculator
	Validator  *booking.Validator
	Projector  *checkout.Projector
	Holds      *holds.Manager
	Payments   payments.CheckoutClient
	Webhooks   payments.WebhookVerifier
	Relay      fulfillment.Relay
	Mailer     mailer.Service
	Events     events.Publisher
}

type Handlers struct {
	cfg       *config.Config
	calc      *pricing.Calculator
	validator *booking.Validator
	projector *checkout.Projector
	holds     *holds.Manager
	payments  payments.CheckoutClient
	webhooks  payments.WebhookVerifier
	relay     fulfillment.Relay
	mailer    mailer.Service
	events    events.Publisher

	now func() time.Time
}

func New(d Deps) *Handlers {
	return &Handlers{
		cfg:       d.Config,
		calc:      d.Calculator,
		validator: d.Validator,
		projector: d.Projector,
		holds:     d.Holds,
		payments:  d.Payments,
		webhooks:  d.Webhooks,
		relay:     d.Relay,
		mailer:    d.Mailer,
		events:    d.Events,
		now:       time.Now,
	}
}

// WithClock overrides the handler clock. Tests only.
func (h *Handlers) WithClock(now func() time.Time) *Handlers {
	h.now = now
	return h
}

func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/env-check", h.envCheck)
	r.Post("/quote", h.quote)
	r.Post("/quote-debug", h.quoteDebug)
	r.Post("/checkout", h.checkout)
	r.Post("/stripe/webhook", h.stripeWebhook)

	r.Route("/public", func(pr chi.Router) {
		pr.Get("/services", h.services)
		pr.Get("/availability", h.availability)
		pr.Post("/hold", h.createHold)
		pr.Post("/hold/cancel", h.cancelHold)
	})

	return r
}

// publish sends a bus event, logging instead of failing the request when
// the bus is down. Events here are observability, not state.
func (h *Handlers) publish(ctx context.Context, subject string, data interface{}) {
	if h.events == nil {
		return
	}
	if err := h.events.Publish(ctx, subject, data); err != nil {
		logger.WarnContext(ctx, "Event publish failed", "subject", subject, "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// validationError is the 400 shape for business-rule failures: a summary
// plus the individual field violations.
type validationError struct {
	Error      string             `json:"error"`
	Code       string             `json:"code"`
	Violations booking.Violations `json:"violations"`
}

func writeViolations(w http.ResponseWriter, v booking.Violations) {
	writeJSON(w, http.StatusBadRequest, validationError{
		Error:      v.Error(),
		Code:       response.CodeValidation,
		Violations: v,
	})
}
