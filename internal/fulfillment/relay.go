package fulfillment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/brightroom/studio-bookings/internal/checkout"
)

// ErrDisabled means no relay URL is configured; callers treat this as a
// soft skip, not a delivery failure.
var ErrDisabled = errors.New("fulfillment relay is not configured")

// Payload is the record forwarded downstream once a session is paid.
type Payload struct {
	Event     string                      `json:"event"`
	SessionID string                      `json:"session_id"`
	PaidAt    time.Time                   `json:"paid_at"`
	Booking   checkout.FulfillmentBooking `json:"booking"`
}

// Relay forwards paid bookings to the fulfillment system.
type Relay interface {
	Forward(ctx context.Context, p Payload) error
}

// HTTPRelay posts payloads as JSON to a webhook-style endpoint, typically
// an automation platform that creates the calendar event and CRM record.
type HTTPRelay struct {
	url    string
	client *http.Client
}

func NewHTTPRelay(url string, timeout time.Duration) *HTTPRelay {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPRelay{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (r *HTTPRelay) Forward(ctx context.Context, p Payload) error {
	if r.url == "" {
		return ErrDisabled
	}

	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal fulfillment payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("relay request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("relay returned status %d", resp.StatusCode)
	}
	return nil
}
