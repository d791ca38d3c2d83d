package holds

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// CalendarSource reports busy intervals from per-room calendar feeds,
// typically a thin bridge in front of the studio's shared calendar. Rooms
// without a configured feed report no external busy time.
type CalendarSource struct {
	feeds  map[string]string // room -> feed URL
	client *http.Client
}

func NewCalendarSource(feeds map[string]string, timeout time.Duration) *CalendarSource {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &CalendarSource{
		feeds:  feeds,
		client: &http.Client{Timeout: timeout},
	}
}

func (c *CalendarSource) BusyIntervals(ctx context.Context, room, date string) ([]Interval, error) {
	feed, ok := c.feeds[room]
	if !ok {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feed+"?date="+url.QueryEscape(date), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build calendar request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calendar request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("calendar feed returned status %d", resp.StatusCode)
	}

	var intervals []Interval
	if err := json.NewDecoder(resp.Body).Decode(&intervals); err != nil {
		return nil, fmt.Errorf("failed to decode calendar feed: %w", err)
	}
	return intervals, nil
}
