// Package prefs provides durable small-key-value user preference storage:
// theme choices, custom colors, dashboard layout toggles. Stores load on
// demand, write on change, and notify subscribers after successful writes.
package prefs

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Value is one preference payload. Values are JSON objects end to end.
type Value = map[string]any

var ErrNotFound = errors.New("preference not found")

// Store is the preference surface injected into the HTTP layer. Subscribe
// registers a callback fired after every successful Set or Delete (Delete
// passes a nil value); the returned func unregisters it.
type Store interface {
	Get(ctx context.Context, actor, key string) (Value, error)
	List(ctx context.Context, actor string) (map[string]Value, error)
	Set(ctx context.Context, actor, key string, value Value) error
	Delete(ctx context.Context, actor, key string) error
	Subscribe(fn func(actor, key string, value Value)) (unsubscribe func())
}

// broadcaster fans write notifications out to subscribers. Embedded by the
// concrete stores.
type broadcaster struct {
	mu   sync.RWMutex
	subs map[string]func(actor, key string, value Value)
}

func (b *broadcaster) Subscribe(fn func(actor, key string, value Value)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs == nil {
		b.subs = make(map[string]func(actor, key string, value Value))
	}
	token := uuid.NewString()
	b.subs[token] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, token)
	}
}

func (b *broadcaster) notify(actor, key string, value Value) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, fn := range b.subs {
		fn(actor, key, value)
	}
}

// MemoryStore keeps preferences in process memory. Used in tests and when
// the server runs without a database.
type MemoryStore struct {
	broadcaster
	mu   sync.RWMutex
	data map[string]map[string]Value // actor -> key -> value
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string]Value)}
}

func (s *MemoryStore) Get(_ context.Context, actor, key string) (Value, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[actor][key]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneValue(v), nil
}

func (s *MemoryStore) List(_ context.Context, actor string) (map[string]Value, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]Value, len(s.data[actor]))
	for k, v := range s.data[actor] {
		out[k] = cloneValue(v)
	}
	return out, nil
}

func (s *MemoryStore) Set(_ context.Context, actor, key string, value Value) error {
	s.mu.Lock()
	if s.data[actor] == nil {
		s.data[actor] = make(map[string]Value)
	}
	s.data[actor][key] = cloneValue(value)
	s.mu.Unlock()

	s.notify(actor, key, value)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, actor, key string) error {
	s.mu.Lock()
	_, ok := s.data[actor][key]
	if ok {
		delete(s.data[actor], key)
	}
	s.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	s.notify(actor, key, nil)
	return nil
}

// Keys returns the actor's preference keys sorted, mainly for tests.
func (s *MemoryStore) Keys(actor string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data[actor]))
	for k := range s.data[actor] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func cloneValue(v Value) Value {
	if v == nil {
		return nil
	}
	out := make(Value, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}
