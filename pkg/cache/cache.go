// Package cache provides small key/value stores with expiry used for
// per-user response caching.
package cache

import (
	"context"
	"sync"
	"time"

	errorvalues "github.com/limbo/lumin/internal/error_values"
)

type Store interface {
	// Get returns errorvalues.ErrCacheMiss when key is absent or expired
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type item struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore keeps values in process memory. Expiry is evaluated against the
// injected clock, so tests can move time forward.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]item
	now   func() time.Time
}

func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{
		items: make(map[string]item),
		now:   now,
	}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	it, ok := m.items[key]
	m.mu.RUnlock()
	if !ok {
		return nil, errorvalues.ErrCacheMiss
	}
	if !it.expiresAt.IsZero() && !m.now().Before(it.expiresAt) {
		m.mu.Lock()
		if cur, ok := m.items[key]; ok && cur.expiresAt.Equal(it.expiresAt) {
			delete(m.items, key)
		}
		m.mu.Unlock()
		return nil, errorvalues.ErrCacheMiss
	}
	return it.value, nil
}

// Set stores value under key. Zero ttl means the value never expires.
func (m *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	it := item{value: value}
	if ttl > 0 {
		it.expiresAt = m.now().Add(ttl)
	}
	m.mu.Lock()
	m.items[key] = it
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}

// Purge drops expired items and returns how many were removed.
func (m *MemoryStore) Purge() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for k, it := range m.items {
		if !it.expiresAt.IsZero() && !now.Before(it.expiresAt) {
			delete(m.items, k)
			removed++
		}
	}
	return removed
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
