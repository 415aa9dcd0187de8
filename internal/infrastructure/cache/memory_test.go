package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore(16)
	s.Set("k", []byte("value"), time.Minute)

	got, ok := s.Get("k")
	require.True(t, ok)
	require.Equal(t, []byte("value"), got)
}

func TestMemoryStoreMissOnUnknownKey(t *testing.T) {
	s := NewMemoryStore(16)
	_, ok := s.Get("absent")
	require.False(t, ok)
}

func TestMemoryStoreZeroTTLIsExpired(t *testing.T) {
	s := NewMemoryStore(16)
	s.Set("k", []byte("v"), 0)

	_, ok := s.Get("k")
	require.False(t, ok)
	require.Equal(t, 0, s.Len())
}

func TestMemoryStoreExpiryEvictsOnRead(t *testing.T) {
	s := NewMemoryStore(16)
	s.Set("k", []byte("v"), 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	_, ok := s.Get("k")
	require.False(t, ok)
	require.Equal(t, 0, s.Len())
}

func TestMemoryStoreDeleteByPrefix(t *testing.T) {
	s := NewMemoryStore(16)
	s.Set("match:alice:1", []byte("a"), time.Minute)
	s.Set("match:alice:2", []byte("b"), time.Minute)
	s.Set("match:bob:1", []byte("c"), time.Minute)

	removed := s.DeleteByPrefix("match:alice:")
	require.Equal(t, 2, removed)

	_, ok := s.Get("match:bob:1")
	require.True(t, ok)
	require.Equal(t, 1, s.Len())
}

func TestMemoryStoreSweep(t *testing.T) {
	s := NewMemoryStore(16)
	s.Set("stale", []byte("x"), -time.Second)
	s.Set("fresh", []byte("y"), time.Minute)

	removed := s.Sweep()
	require.Equal(t, 1, removed)
	require.Equal(t, 1, s.Len())
}

func TestMemoryStoreBoundedByMaxEntries(t *testing.T) {
	s := NewMemoryStore(4)
	for i := 0; i < 10; i++ {
		s.Set(fmt.Sprintf("k%d", i), []byte("v"), time.Minute)
	}
	require.LessOrEqual(t, s.Len(), 4)
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	s := NewMemoryStore(128)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d-%d", n, j)
				s.Set(key, []byte("v"), time.Minute)
				s.Get(key)
				s.DeleteByPrefix(fmt.Sprintf("k%d-", n))
			}
		}(i)
	}
	wg.Wait()
}
