package holds

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrConflict means the requested slot overlaps an active hold or a
	// busy interval reported by the calendar.
	ErrConflict = errors.New("time slot is no longer available")
	// ErrNotFound means no active hold exists for the given ID.
	ErrNotFound = errors.New("hold not found")
	// ErrMismatch means the hold exists but its slot does not match the
	// booking being checked out.
	ErrMismatch = errors.New("hold does not match the requested booking")
)

// Hold is a short-lived reservation lock on a room/date/time slot.
type Hold struct {
	ID        string    `json:"id"`
	Room      string    `json:"room"`
	Date      string    `json:"date"`       // YYYY-MM-DD
	StartTime string    `json:"start_time"` // HH:MM
	Hours     int       `json:"hours"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h Hold) Expired(now time.Time) bool {
	return !now.Before(h.ExpiresAt)
}

// Interval is a busy span within a day, in minutes from midnight.
type Interval struct {
	StartMinute int `json:"start_minute"`
	EndMinute   int `json:"end_minute"`
}

func (a Interval) Overlaps(b Interval) bool {
	return a.StartMinute < b.EndMinute && b.StartMinute < a.EndMinute
}

func slotInterval(startTime string, hours int) (Interval, error) {
	parsed, err := time.Parse("15:04", strings.TrimSpace(startTime))
	if err != nil {
		return Interval{}, fmt.Errorf("invalid start time %q: %w", startTime, err)
	}
	start := parsed.Hour()*60 + parsed.Minute()
	return Interval{StartMinute: start, EndMinute: start + hours*60}, nil
}

// Interval returns the hold's occupied span within its day.
func (h Hold) Interval() (Interval, error) {
	return slotInterval(h.StartTime, h.Hours)
}

// BusySource reports externally known busy intervals for a room and date,
// e.g. from a calendar integration. The manager checks it in addition to
// its own holds.
type BusySource interface {
	BusyIntervals(ctx context.Context, room, date string) ([]Interval, error)
}

// NoBusySource is the default: no external calendar.
type NoBusySource struct{}

func (NoBusySource) BusyIntervals(context.Context, string, string) ([]Interval, error) {
	return nil, nil
}

// Store persists holds. Implementations: in-memory map for a single
// process, Redis for multi-instance deployments.
type Store interface {
	Put(ctx context.Context, h Hold) error
	Get(ctx context.Context, id string) (*Hold, error)
	Delete(ctx context.Context, id string) error
	// ListActive returns non-expired holds for a room and date. Expired
	// entries may be cleaned up lazily here.
	ListActive(ctx context.Context, room, date string, now time.Time) ([]Hold, error)
}

// Manager coordinates hold creation, cancellation and consumption.
// Creation is serialized per room+date so two concurrent requests for the
// same slot cannot both succeed in a single process; multi-process
// deployments need the Redis store.
type Manager struct {
	store Store
	busy  BusySource
	ttl   time.Duration

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewManager(store Store, busy BusySource, ttl time.Duration) *Manager {
	if busy == nil {
		busy = NoBusySource{}
	}
	return &Manager{
		store: store,
		busy:  busy,
		ttl:   ttl,
		locks: make(map[string]*sync.Mutex),
	}
}

func (m *Manager) slotLock(room, date string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := room + "|" + date
	if l, ok := m.locks[key]; ok {
		return l
	}
	l := &sync.Mutex{}
	m.locks[key] = l
	return l
}

// Create places a hold on a slot, rejecting overlaps with active holds and
// externally reported busy intervals.
func (m *Manager) Create(ctx context.Context, room, date, startTime string, hours int) (*Hold, error) {
	if hours < 1 {
		return nil, fmt.Errorf("invalid hold length: %d hours", hours)
	}
	requested, err := slotInterval(startTime, hours)
	if err != nil {
		return nil, err
	}

	lock := m.slotLock(room, date)
	lock.Lock()
	defer lock.Unlock()

	now := time.Now()

	active, err := m.store.ListActive(ctx, room, date, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list holds: %w", err)
	}
	for _, h := range active {
		iv, err := h.Interval()
		if err != nil {
			continue
		}
		if requested.Overlaps(iv) {
			return nil, ErrConflict
		}
	}

	busy, err := m.busy.BusyIntervals(ctx, room, date)
	if err != nil {
		return nil, fmt.Errorf("failed to check calendar: %w", err)
	}
	for _, iv := range busy {
		if requested.Overlaps(iv) {
			return nil, ErrConflict
		}
	}

	h := Hold{
		ID:        uuid.New().String(),
		Room:      room,
		Date:      date,
		StartTime: strings.TrimSpace(startTime),
		Hours:     hours,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.Put(ctx, h); err != nil {
		return nil, fmt.Errorf("failed to store hold: %w", err)
	}
	return &h, nil
}

// Cancel releases a hold explicitly.
func (m *Manager) Cancel(ctx context.Context, id string) (*Hold, error) {
	h, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get hold: %w", err)
	}
	if h == nil || h.Expired(time.Now()) {
		return nil, ErrNotFound
	}
	if err := m.store.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete hold: %w", err)
	}
	return h, nil
}

// Verify checks that a hold exists and matches the booking's slot without
// releasing it. Used before charging so a mismatch fails fast.
func (m *Manager) Verify(ctx context.Context, id, room, date, startTime string, hours int) error {
	h, err := m.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get hold: %w", err)
	}
	if h == nil || h.Expired(time.Now()) {
		return ErrNotFound
	}
	if h.Room != room || h.Date != date || h.StartTime != strings.TrimSpace(startTime) || h.Hours != hours {
		return ErrMismatch
	}
	return nil
}

// Consume releases a hold as part of checkout. The booking's slot must
// exactly match the hold; a mismatch is an error, not a pass-through.
func (m *Manager) Consume(ctx context.Context, id, room, date, startTime string, hours int) (*Hold, error) {
	h, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get hold: %w", err)
	}
	if h == nil || h.Expired(time.Now()) {
		return nil, ErrNotFound
	}
	if h.Room != room || h.Date != date || h.StartTime != strings.TrimSpace(startTime) || h.Hours != hours {
		return nil, ErrMismatch
	}
	if err := m.store.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete hold: %w", err)
	}
	return h, nil
}

// BusyIntervals merges active holds with externally reported busy spans,
// for the availability endpoint.
func (m *Manager) BusyIntervals(ctx context.Context, room, date string) ([]Interval, error) {
	active, err := m.store.ListActive(ctx, room, date, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to list holds: %w", err)
	}

	var out []Interval
	for _, h := range active {
		if iv, err := h.Interval(); err == nil {
			out = append(out, iv)
		}
	}

	busy, err := m.busy.BusyIntervals(ctx, room, date)
	if err != nil {
		return nil, fmt.Errorf("failed to check calendar: %w", err)
	}
	return append(out, busy...), nil
}
