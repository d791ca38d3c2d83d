package checkout_test

import (
	"encoding/json"
	"testing"

	"github.com/brightroom/studio-bookings/internal/checkout"
	"github.com/brightroom/studio-bookings/internal/domain"
	"github.com/brightroom/studio-bookings/internal/pricing"
)

func project(t *testing.T, raw string) ([]checkout.LineItem, map[string]string, pricing.Quote) {
	t.Helper()

	var req domain.BookingRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		t.Fatalf("failed to decode request: %v", err)
	}

	cfg := pricing.DefaultConfig()
	b := pricing.Normalize(&req, cfg)
	q := pricing.NewCalculator(cfg).Quote(b)
	items, md := checkout.NewProjector(cfg).Project(q, b, &req)
	return items, md, q
}

func TestProject_LineItemsMatchQuoteTotal(t *testing.T) {
	requests := []string{
		`{"hours":2,"mode":"ONE_CAMERA","engineerChoice":"any","postProduction":0}`,
		`{"hours":3,"mode":"AUDIO_ONLY","engineerChoice":"none","teleprompter":true,"postProduction":1}`,
		`{"hours":6,"mode":"MUSIC","engineerChoice":"specific","extraCameras":3,"remoteGuest":true,"adClips5":true,"mediaSdOrUsb":true}`,
		`{"hours":1,"mode":"ONE_CAMERA","engineerChoice":"none","extraCameras":0,"postProduction":0}`,
	}

	for _, raw := range requests {
		items, _, q := project(t, raw)
		if got, want := checkout.SumCents(items), q.TotalCents(); got != want {
			t.Fatalf("line items sum to %d cents, quote total is %d for %s", got, want, raw)
		}
	}
}

func TestProject_OrderAndQuantities(t *testing.T) {
	items, _, _ := project(t, `{
		"hours": 3, "mode": "ONE_CAMERA", "engineerChoice": "any",
		"extraCameras": 2, "teleprompter": true, "postProduction": 2
	}`)

	wantLabels := []string{
		"1-Camera Video Session",
		"Audio Engineer",
		"Extra Camera",
		"Teleprompter",
		"Post-Production (2 camera feeds)",
	}
	if len(items) != len(wantLabels) {
		t.Fatalf("expected %d line items, got %d: %+v", len(wantLabels), len(items), items)
	}
	for i, label := range wantLabels {
		if items[i].Label != label {
			t.Fatalf("item %d: expected %q, got %q", i, label, items[i].Label)
		}
	}

	if items[0].Quantity != 3 || items[0].UnitAmountCents != 5500 {
		t.Fatalf("base session should be 3 x 5500, got %d x %d", items[0].Quantity, items[0].UnitAmountCents)
	}
	if items[1].Quantity != 3 || items[1].UnitAmountCents != 2000 {
		t.Fatalf("engineer should be 3 x 2000, got %d x %d", items[1].Quantity, items[1].UnitAmountCents)
	}
	if items[2].Quantity != 2 || items[2].UnitAmountCents != 2500 {
		t.Fatalf("extra cameras should be 2 x 2500, got %d x %d", items[2].Quantity, items[2].UnitAmountCents)
	}
	if items[4].Quantity != 1 || items[4].UnitAmountCents != 30000 {
		t.Fatalf("post-production should be 1 x 30000, got %d x %d", items[4].Quantity, items[4].UnitAmountCents)
	}
}

func TestProject_ZeroComponentsOmitted(t *testing.T) {
	items, _, _ := project(t, `{"hours":2,"mode":"AUDIO_ONLY","engineerChoice":"none","postProduction":0}`)

	if len(items) != 1 {
		t.Fatalf("expected only the base session line item, got %+v", items)
	}
}

func TestProject_MetadataRoundTrip(t *testing.T) {
	_, md, q := project(t, `{
		"hours": 2, "mode": "MUSIC", "engineerChoice": "any",
		"extraCameras": 1, "peopleOnCamera": 3, "teleprompter": true,
		"postProduction": 2, "isFirstTime": true,
		"name": "Ada James", "email": "ada@example.com", "phone": "+15551234567",
		"room": "Studio A", "date": "2025-06-05", "startTime": "11:00",
		"notes": "vinyl listening session", "couponCode": "SPRING", "holdId": "hold-123"
	}`)

	fb := checkout.ParseMetadata(md)

	if fb.Name != "Ada James" || fb.Email != "ada@example.com" || fb.Phone != "+15551234567" {
		t.Fatalf("contact fields lost in metadata: %+v", fb)
	}
	if fb.Room != "Studio A" || fb.Date != "2025-06-05" || fb.StartTime != "11:00" {
		t.Fatalf("schedule fields lost in metadata: %+v", fb)
	}
	if fb.Hours != 2 || fb.Mode != "MUSIC" || fb.ExtraCameras != 1 || fb.PeopleOnCamera != 3 {
		t.Fatalf("session fields lost in metadata: %+v", fb)
	}
	if !fb.Teleprompter || fb.RemoteGuest || !fb.IsFirstTime {
		t.Fatalf("flags lost in metadata: %+v", fb)
	}
	if fb.PostProduction != 2 {
		t.Fatalf("expected 2 edit cams in metadata, got %d", fb.PostProduction)
	}
	if fb.TotalCents != q.TotalCents() {
		t.Fatalf("expected total %d in metadata, got %d", q.TotalCents(), fb.TotalCents)
	}
	if fb.CouponCode != "SPRING" || fb.HoldID != "hold-123" {
		t.Fatalf("pass-through fields lost in metadata: %+v", fb)
	}
}

func TestProject_NestedCustomerPreferred(t *testing.T) {
	_, md, _ := project(t, `{
		"hours": 2, "name": "Old Name", "email": "old@example.com",
		"customer": {"name": "New Name", "email": "new@example.com", "phone": "+15550000000"}
	}`)

	if md["name"] != "New Name" || md["email"] != "new@example.com" {
		t.Fatalf("expected nested customer to win, got name=%q email=%q", md["name"], md["email"])
	}
}
