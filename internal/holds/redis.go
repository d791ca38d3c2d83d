package holds

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps holds in Redis so multiple API instances share the same
// hold state. Each hold lives under its own key with a TTL matching its
// expiry; a per room+date index set supports slot listing.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func holdKey(id string) string          { return "hold:" + id }
func indexKey(room, date string) string { return "holds:" + room + ":" + date }

func (s *RedisStore) Put(ctx context.Context, h Hold) error {
	payload, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("failed to marshal hold: %w", err)
	}

	ttl := time.Until(h.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("hold %s already expired", h.ID)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, holdKey(h.ID), payload, ttl)
	pipe.SAdd(ctx, indexKey(h.Room, h.Date), h.ID)
	// The index outlives individual holds; a day of slack covers any hold
	// TTL and keeps abandoned date keys from accumulating.
	pipe.Expire(ctx, indexKey(h.Room, h.Date), 24*time.Hour)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Hold, error) {
	raw, err := s.client.Get(ctx, holdKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var h Hold
	if err := json.Unmarshal(raw, &h); err != nil {
		return nil, fmt.Errorf("failed to unmarshal hold %s: %w", id, err)
	}
	return &h, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	h, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, holdKey(id))
	if h != nil {
		pipe.SRem(ctx, indexKey(h.Room, h.Date), id)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisStore) ListActive(ctx context.Context, room, date string, now time.Time) ([]Hold, error) {
	ids, err := s.client.SMembers(ctx, indexKey(room, date)).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var out []Hold
	var stale []interface{}
	for _, id := range ids {
		h, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if h == nil || h.Expired(now) {
			// Key already expired in Redis; drop the dangling index entry.
			stale = append(stale, id)
			continue
		}
		out = append(out, *h)
	}

	if len(stale) > 0 {
		s.client.SRem(ctx, indexKey(room, date), stale...)
	}
	return out, nil
}
