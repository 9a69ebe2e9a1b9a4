package prefs

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedStore layers a Redis read-through cache over another Store. Theme
// lookups happen on every page load, so hot keys stay in Redis; writes go to
// the inner store first and then refresh or drop the cache entry. Cache
// failures degrade to the inner store, never to an error.
type CachedStore struct {
	inner Store
	rdb   *redis.Client
	ttl   time.Duration
}

func NewCachedStore(inner Store, rdb *redis.Client, ttl time.Duration) *CachedStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedStore{inner: inner, rdb: rdb, ttl: ttl}
}

func cacheKey(actor, key string) string {
	return "prefs:" + actor + ":" + key
}

func (s *CachedStore) Get(ctx context.Context, actor, key string) (Value, error) {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, cacheKey(actor, key)).Bytes(); err == nil {
			var v Value
			if err := json.Unmarshal(raw, &v); err == nil {
				return v, nil
			}
		}
	}

	v, err := s.inner.Get(ctx, actor, key)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(v); err == nil {
			s.rdb.Set(ctx, cacheKey(actor, key), raw, s.ttl)
		}
	}
	return v, nil
}

func (s *CachedStore) List(ctx context.Context, actor string) (map[string]Value, error) {
	// Listing is rare (admin screens); skip the cache.
	return s.inner.List(ctx, actor)
}

func (s *CachedStore) Set(ctx context.Context, actor, key string, value Value) error {
	if err := s.inner.Set(ctx, actor, key, value); err != nil {
		return err
	}
	if s.rdb != nil {
		if raw, err := json.Marshal(value); err == nil {
			s.rdb.Set(ctx, cacheKey(actor, key), raw, s.ttl)
		}
	}
	return nil
}

func (s *CachedStore) Delete(ctx context.Context, actor, key string) error {
	if err := s.inner.Delete(ctx, actor, key); err != nil {
		return err
	}
	if s.rdb != nil {
		s.rdb.Del(ctx, cacheKey(actor, key))
	}
	return nil
}

func (s *CachedStore) Subscribe(fn func(actor, key string, value Value)) func() {
	return s.inner.Subscribe(fn)
}
