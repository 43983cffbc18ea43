package memcache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

var ErrCounterStoreFull = errors.New("counter store is full")

// CounterStore counts hits per key in fixed windows. The first Increment of a
// window creates the key with an expiry of window; later calls only add to it.
type CounterStore interface {
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}

// LocalCounterStore keeps counters in process memory. Expired windows are evicted
// by the go-cache janitor, and at most maxKeys live windows are tracked.
type LocalCounterStore struct {
	mu      sync.Mutex
	items   *cache.Cache
	maxKeys int
}

func NewLocalCounterStore(cleanupInterval time.Duration, maxKeys int) *LocalCounterStore {
	return &LocalCounterStore{
		items:   cache.New(cache.NoExpiration, cleanupInterval),
		maxKeys: maxKeys,
	}
}

func (s *LocalCounterStore) Increment(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n, err := s.items.IncrementInt64(key, 1); err == nil {
		return n, nil
	}

	if s.maxKeys > 0 && s.items.ItemCount() >= s.maxKeys {
		s.items.DeleteExpired()
		if s.items.ItemCount() >= s.maxKeys {
			return 0, ErrCounterStoreFull
		}
	}
	s.items.Set(key, int64(1), window)
	return 1, nil
}
