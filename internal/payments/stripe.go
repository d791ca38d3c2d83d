package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"

	"github.com/brightroom/studio-bookings/internal/checkout"
	"github.com/brightroom/studio-bookings/pkg/config"
)

// ErrNotConfigured means the payment provider cannot be used because the
// secret key or redirect URLs are missing. Surfaced as an operator error,
// never with configuration details attached.
var ErrNotConfigured = errors.New("payment provider is not configured")

// Session is the slice of a provider checkout session the API needs.
type Session struct {
	ID  string
	URL string
}

// CheckoutClient creates payment sessions from projected line items.
type CheckoutClient interface {
	CreateSession(ctx context.Context, items []checkout.LineItem, metadata map[string]string, customerEmail string) (*Session, error)
}

// StripeClient implements CheckoutClient against Stripe Checkout.
type StripeClient struct {
	cfg config.StripeConfig
}

func NewStripeClient(cfg config.StripeConfig) *StripeClient {
	if cfg.SecretKey != "" {
		stripe.Key = cfg.SecretKey
	}
	return &StripeClient{cfg: cfg}
}

func (c *StripeClient) CreateSession(ctx context.Context, items []checkout.LineItem, metadata map[string]string, customerEmail string) (*Session, error) {
	if c.cfg.SecretKey == "" || c.cfg.SuccessURL == "" || c.cfg.CancelURL == "" {
		return nil, ErrNotConfigured
	}

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(string(stripe.CurrencyUSD)),
				UnitAmount: stripe.Int64(item.UnitAmountCents),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Label),
				},
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(c.cfg.SuccessURL),
		CancelURL:  stripe.String(c.cfg.CancelURL),
		LineItems:  lineItems,
	}
	params.Context = ctx
	if customerEmail != "" {
		params.CustomerEmail = stripe.String(customerEmail)
	}
	for k, v := range metadata {
		if v != "" {
			params.AddMetadata(k, v)
		}
	}

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe session create failed: %w", err)
	}

	return &Session{ID: sess.ID, URL: sess.URL}, nil
}

// KeyMode classifies a secret key for the env-check endpoint without
// echoing any part of it.
func KeyMode(secretKey string) string {
	switch {
	case secretKey == "":
		return "none"
	case strings.HasPrefix(secretKey, "sk_live_") || strings.HasPrefix(secretKey, "rk_live_"):
		return "live"
	default:
		return "test"
	}
}
