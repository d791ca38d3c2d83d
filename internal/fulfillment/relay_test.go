package fulfillment_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brightroom/studio-bookings/internal/checkout"
	"github.com/brightroom/studio-bookings/internal/fulfillment"
)

func TestHTTPRelay_ForwardsBookingJSON(t *testing.T) {
	var got fulfillment.Payload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected application/json, got %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	relay := fulfillment.NewHTTPRelay(server.URL, 5*time.Second)
	payload := fulfillment.Payload{
		Event:     "booking.paid",
		SessionID: "cs_test_123",
		PaidAt:    time.Now().UTC(),
		Booking: checkout.FulfillmentBooking{
			Name:       "Ada",
			Email:      "ada@example.com",
			Room:       "Studio A",
			Date:       "2025-06-10",
			StartTime:  "10:00",
			Hours:      2,
			Mode:       "ONE_CAMERA",
			TotalCents: 15000,
		},
	}

	if err := relay.Forward(context.Background(), payload); err != nil {
		t.Fatalf("forward failed: %v", err)
	}
	if got.SessionID != "cs_test_123" {
		t.Errorf("expected session id to survive the trip, got %q", got.SessionID)
	}
	if got.Booking.Name != "Ada" || got.Booking.TotalCents != 15000 {
		t.Errorf("booking fields mangled: %+v", got.Booking)
	}
}

func TestHTTPRelay_NonSuccessStatusIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	relay := fulfillment.NewHTTPRelay(server.URL, 5*time.Second)
	if err := relay.Forward(context.Background(), fulfillment.Payload{Event: "booking.paid"}); err == nil {
		t.Fatal("expected an error for a 502 response")
	}
}

func TestHTTPRelay_UnconfiguredIsDisabled(t *testing.T) {
	relay := fulfillment.NewHTTPRelay("", 5*time.Second)
	if err := relay.Forward(context.Background(), fulfillment.Payload{}); !errors.Is(err, fulfillment.ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}
