package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache is a process local TTL set, used when no Redis is configured.
// Expired entries are dropped lazily on access and on every MarkProcessed.
type MemoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultEventTTL
	}

	return &MemoryCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]time.Time),
	}
}

func (m *MemoryCache) Seen(_ context.Context, eventID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := eventKey(eventID)

	expiresAt, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	if !m.now().Before(expiresAt) {
		delete(m.entries, key)
		return false, nil
	}

	return true, nil
}

func (m *MemoryCache) MarkProcessed(_ context.Context, eventID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for key, expiresAt := range m.entries {
		if !now.Before(expiresAt) {
			delete(m.entries, key)
		}
	}

	key := eventKey(eventID)
	if _, ok := m.entries[key]; !ok {
		m.entries[key] = now.Add(m.ttl)
	}

	return nil
}

func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.entries)
}
