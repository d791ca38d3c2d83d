package payments

import (
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
)

// WebhookEvent is the provider-neutral view of a payment event the handler
// layer works with.
type WebhookEvent struct {
	Type          string
	SessionID     string
	AmountCents   int64
	CustomerEmail string
	Metadata      map[string]string
}

// EventCheckoutCompleted is the only event type the API acts on; everything
// else is acknowledged and ignored.
const EventCheckoutCompleted = "checkout.session.completed"

// WebhookVerifier authenticates an incoming webhook payload and decodes it.
type WebhookVerifier interface {
	Verify(payload []byte, signature string) (*WebhookEvent, error)
}

// StripeWebhookVerifier verifies Stripe-Signature headers against the
// endpoint's signing secret.
type StripeWebhookVerifier struct {
	secret string
}

func NewStripeWebhookVerifier(secret string) *StripeWebhookVerifier {
	return &StripeWebhookVerifier{secret: secret}
}

func (v *StripeWebhookVerifier) Verify(payload []byte, signature string) (*WebhookEvent, error) {
	if v.secret == "" {
		return nil, ErrNotConfigured
	}

	event, err := webhook.ConstructEvent(payload, signature, v.secret)
	if err != nil {
		return nil, fmt.Errorf("webhook signature verification failed: %w", err)
	}

	out := &WebhookEvent{Type: string(event.Type)}
	if out.Type != EventCheckoutCompleted {
		return out, nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode checkout session: %w", err)
	}

	out.SessionID = sess.ID
	out.AmountCents = sess.AmountTotal
	out.Metadata = sess.Metadata
	if sess.CustomerDetails != nil && sess.CustomerDetails.Email != "" {
		out.CustomerEmail = sess.CustomerDetails.Email
	} else {
		out.CustomerEmail = sess.CustomerEmail
	}
	return out, nil
}
