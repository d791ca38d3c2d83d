package booking_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/brightroom/studio-bookings/internal/booking"
	"github.com/brightroom/studio-bookings/internal/domain"
)

// A fixed Monday so lead-time and weekday rules are stable.
var monday = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

func request(t *testing.T, raw string) *domain.BookingRequest {
	t.Helper()

	var req domain.BookingRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		t.Fatalf("failed to decode request: %v", err)
	}
	return &req
}

func fieldOf(v booking.Violations) string {
	if len(v) == 0 {
		return ""
	}
	return v[0].Field
}

func TestValidate_Rules(t *testing.T) {
	v := booking.NewValidator(booking.DefaultRules())

	tests := []struct {
		name      string
		raw       string
		wantField string // "" means valid
	}{
		{"valid booking", `{"hours":2,"date":"2025-06-05","startTime":"10:00"}`, ""},
		{"last permitted start", `{"hours":2,"date":"2025-06-05","startTime":"19:00"}`, ""},
		{"saturday open", `{"hours":2,"date":"2025-06-07","startTime":"12:00"}`, ""},
		{"hours too low", `{"hours":0,"date":"2025-06-05","startTime":"10:00"}`, "hours"},
		{"hours too high", `{"hours":7,"date":"2025-06-05","startTime":"10:00"}`, "hours"},
		{"first time single hour", `{"hours":1,"isFirstTime":true,"date":"2025-06-05","startTime":"10:00"}`, "hours"},
		{"first time two hours ok", `{"hours":2,"isFirstTime":true,"date":"2025-06-05","startTime":"10:00"}`, ""},
		{"sunday closed", `{"hours":2,"date":"2025-06-08","startTime":"12:00"}`, "date"},
		{"insufficient lead time", `{"hours":2,"date":"2025-06-03","startTime":"12:00"}`, "date"},
		{"same day", `{"hours":2,"date":"2025-06-02","startTime":"12:00"}`, "date"},
		{"malformed date", `{"hours":2,"date":"06/05/2025","startTime":"12:00"}`, "date"},
		{"too early", `{"hours":2,"date":"2025-06-05","startTime":"08:30"}`, "startTime"},
		{"too late", `{"hours":2,"date":"2025-06-05","startTime":"20:00"}`, "startTime"},
		{"malformed time", `{"hours":2,"date":"2025-06-05","startTime":"noonish"}`, "startTime"},
		{"quote without schedule", `{"hours":2}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := v.Validate(request(t, tt.raw), monday)
			if tt.wantField == "" {
				if len(violations) != 0 {
					t.Fatalf("expected no violations, got %v", violations)
				}
				return
			}
			if fieldOf(violations) != tt.wantField {
				t.Fatalf("expected violation on %q, got %v", tt.wantField, violations)
			}
		})
	}
}

func TestValidateCheckout_RequiresScheduleAndContact(t *testing.T) {
	v := booking.NewValidator(booking.DefaultRules())

	violations := v.ValidateCheckout(request(t, `{"hours":2}`), monday)

	fields := make(map[string]bool)
	for _, viol := range violations {
		fields[viol.Field] = true
		if viol.Reason == "" {
			t.Fatalf("violation on %s has no user-facing reason", viol.Field)
		}
	}

	for _, want := range []string{"date", "startTime", "name", "email", "phone"} {
		if !fields[want] {
			t.Fatalf("expected a violation on %q, got %v", want, violations)
		}
	}
}

func TestValidateCheckout_AcceptsCompleteBooking(t *testing.T) {
	v := booking.NewValidator(booking.DefaultRules())

	raw := `{
		"hours": 2, "date": "2025-06-05", "startTime": "11:00",
		"name": "Ada James", "email": "ada@example.com", "phone": "+15551234567"
	}`
	if violations := v.ValidateCheckout(request(t, raw), monday); len(violations) != 0 {
		t.Fatalf("expected no violations, got %v", violations)
	}
}

func TestValidateCheckout_NestedCustomerSatisfiesContact(t *testing.T) {
	v := booking.NewValidator(booking.DefaultRules())

	raw := `{
		"hours": 2, "date": "2025-06-05", "startTime": "11:00",
		"customer": {"name": "Ada James", "email": "ada@example.com", "phone": "+15551234567"}
	}`
	if violations := v.ValidateCheckout(request(t, raw), monday); len(violations) != 0 {
		t.Fatalf("expected no violations, got %v", violations)
	}
}
