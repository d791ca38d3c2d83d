package holds_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brightroom/studio-bookings/internal/holds"
)

func TestCalendarSource_FetchesIntervalsForConfiguredRoom(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("date"); got != "2025-06-10" {
			t.Errorf("expected date param, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"start_minute":600,"end_minute":720}]`))
	}))
	defer server.Close()

	src := holds.NewCalendarSource(map[string]string{"Studio A": server.URL}, 5*time.Second)

	intervals, err := src.BusyIntervals(context.Background(), "Studio A", "2025-06-10")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(intervals) != 1 || intervals[0].StartMinute != 600 || intervals[0].EndMinute != 720 {
		t.Fatalf("unexpected intervals: %+v", intervals)
	}
}

func TestCalendarSource_RoomWithoutFeedIsNeverBusy(t *testing.T) {
	src := holds.NewCalendarSource(map[string]string{}, 5*time.Second)

	intervals, err := src.BusyIntervals(context.Background(), "Studio B", "2025-06-10")
	if err != nil || intervals != nil {
		t.Fatalf("expected no intervals and no error, got %v, %v", intervals, err)
	}
}

func TestCalendarSource_FeedErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	src := holds.NewCalendarSource(map[string]string{"Studio A": server.URL}, 5*time.Second)
	if _, err := src.BusyIntervals(context.Background(), "Studio A", "2025-06-10"); err == nil {
		t.Fatal("expected an error from a failing feed")
	}
}
