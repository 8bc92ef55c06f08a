package cache

import (
	"sync"
	"time"
)

// TTLEntry is a value in a TTLMap together with its expiry.
type TTLEntry struct {
	Value     interface{}
	ExpiresAt time.Time
}

// TTLMap is a thread-safe in-process map with a TTL per entry. It is the
// local tier of the tiered cache: a best-effort accelerator, never
// authoritative.
type TTLMap struct {
	data map[string]*TTLEntry
	mu   sync.RWMutex
	ttl  time.Duration
}

// NewTTLMap creates a TTLMap with the given default TTL.
func NewTTLMap(ttl time.Duration) *TTLMap {
	return &TTLMap{
		data: make(map[string]*TTLEntry),
		ttl:  ttl,
	}
}

// Get retrieves a value if present and not expired. Expired entries are
// removed on read.
func (m *TTLMap) Get(key string) (interface{}, bool) {
	m.mu.RLock()
	entry, exists := m.data[key]
	if !exists {
		m.mu.RUnlock()
		return nil, false
	}
	expired := time.Now().After(entry.ExpiresAt)
	value := entry.Value
	m.mu.RUnlock()

	if expired {
		m.mu.Lock()
		if current, ok := m.data[key]; ok && time.Now().After(current.ExpiresAt) {
			delete(m.data, key)
		}
		m.mu.Unlock()
		return nil, false
	}

	return value, true
}

// Set stores a value with the map's default TTL.
func (m *TTLMap) Set(key string, value interface{}) {
	m.SetWithTTL(key, value, m.ttl)
}

// SetWithTTL stores a value with an explicit TTL, overriding the default.
func (m *TTLMap) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	if ttl <= 0 {
		ttl = m.ttl
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = &TTLEntry{
		Value:     value,
		ExpiresAt: time.Now().Add(ttl),
	}
}

// Delete removes a key.
func (m *TTLMap) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
}

// Clear removes all entries.
func (m *TTLMap) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]*TTLEntry)
}

// Keys returns a snapshot of the live (non-expired) keys.
func (m *TTLMap) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	now := time.Now()
	keys := make([]string, 0, len(m.data))
	for k, entry := range m.data {
		if now.Before(entry.ExpiresAt) {
			keys = append(keys, k)
		}
	}
	return keys
}

// Len returns the number of stored entries, expired or not.
func (m *TTLMap) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
