package cache

import (
	"strings"
	"sync"
	"time"
)

// MemoryStore is the in-process fallback behind the Redis backend: a
// mutex-guarded map with per-entry expiry metadata. Expired entries are
// evicted lazily on read and swept on write, so memory stays bounded even
// without a background goroutine.
type MemoryStore struct {
	mu         sync.Mutex
	entries    map[string]memoryEntry
	maxEntries int
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

func NewMemoryStore(maxEntries int) *MemoryStore {
	return &MemoryStore{
		entries:    make(map[string]memoryEntry),
		maxEntries: maxEntries,
	}
}

// Get returns the stored value, or (nil, false) when the key is absent or
// past its expiry. Expired entries are removed on the spot.
func (s *MemoryStore) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if !time.Now().Before(e.expiresAt) {
		delete(s.entries, key)
		return nil, false
	}
	return e.data, true
}

// Set stores data with expiry now+ttl. A non-positive ttl produces an
// entry that is already expired, indistinguishable from a miss.
func (s *MemoryStore) Set(key string, data []byte, ttl time.Duration) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked(now)
	if s.maxEntries > 0 && len(s.entries) >= s.maxEntries {
		if _, exists := s.entries[key]; !exists {
			s.evictSoonestLocked()
		}
	}
	s.entries[key] = memoryEntry{data: data, expiresAt: now.Add(ttl)}
}

// DeleteByPrefix removes all entries whose key starts with prefix and
// returns the count removed.
func (s *MemoryStore) DeleteByPrefix(prefix string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for k := range s.entries {
		if strings.HasPrefix(k, prefix) {
			delete(s.entries, k)
			removed++
		}
	}
	return removed
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep removes every expired entry and reports how many were dropped.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked(time.Now())
}

func (s *MemoryStore) sweepLocked(now time.Time) int {
	removed := 0
	for k, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, k)
			removed++
		}
	}
	return removed
}

// evictSoonestLocked drops the entry closest to expiry. Entries expire at
// creation time + ttl, so with a uniform ttl this evicts the oldest.
func (s *MemoryStore) evictSoonestLocked() {
	var victim string
	var victimAt time.Time
	for k, e := range s.entries {
		if victim == "" || e.expiresAt.Before(victimAt) {
			victim = k
			victimAt = e.expiresAt
		}
	}
	if victim != "" {
		delete(s.entries, victim)
	}
}
