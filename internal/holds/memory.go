package holds

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps holds in a process-local map. Suitable for a single
// instance; use the Redis store when running more than one.
type MemoryStore struct {
	mu    sync.RWMutex
	holds map[string]Hold
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{holds: make(map[string]Hold)}
}

func (s *MemoryStore) Put(_ context.Context, h Hold) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.holds[h.ID] = h
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Hold, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.holds[id]
	if !ok {
		return nil, nil
	}
	return &h, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.holds, id)
	return nil
}

func (s *MemoryStore) ListActive(_ context.Context, room, date string, now time.Time) ([]Hold, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Hold
	for id, h := range s.holds {
		if h.Expired(now) {
			delete(s.holds, id)
			continue
		}
		if h.Room == room && h.Date == date {
			out = append(out, h)
		}
	}
	return out, nil
}
