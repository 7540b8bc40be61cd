package cache

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/singleflight"
)

type item struct {
	value any
	// deadline is zero when the store has no ttl.
	deadline time.Time
}

func (i item) expired(at time.Time) bool {
	return !i.deadline.IsZero() && !at.Before(i.deadline)
}

// Store is an in-process read-through cache shared by the repository
// decorators. Keys are namespaced ("player:", "team:", ...) and writers drop
// whole namespaces with Invalidate.
type Store struct {
	ttl   time.Duration
	clock func() time.Time

	mu    sync.RWMutex
	items map[string]item
	// epoch moves on every invalidation. Loads keyed under an older epoch
	// neither populate the map nor get joined by newer callers.
	epoch uint64

	loads singleflight.Group
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:   ttl,
		clock: time.Now,
		items: make(map[string]item),
	}
}

func (s *Store) Peek(key string) (any, bool) {
	now := s.clock()

	s.mu.RLock()
	it, ok := s.items[key]
	s.mu.RUnlock()

	switch {
	case !ok:
		return nil, false
	case it.expired(now):
		s.mu.Lock()
		if cur, still := s.items[key]; still && cur.expired(now) {
			delete(s.items, key)
		}
		s.mu.Unlock()
		return nil, false
	default:
		return it.value, true
	}
}

func (s *Store) Put(key string, value any) {
	s.putAt(key, value, s.currentEpoch())
}

// putAt stores value only if no invalidation happened since epoch.
func (s *Store) putAt(key string, value any, epoch uint64) bool {
	if key == "" {
		return false
	}
	it := item{value: value}
	if s.ttl > 0 {
		it.deadline = s.clock().Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return false
	}
	s.items[key] = it
	return true
}

// Invalidate drops every key under the given namespaces.
func (s *Store) Invalidate(_ context.Context, namespaces ...string) {
	s.mu.Lock()
	s.epoch++
	for key := range s.items {
		if hasAnyPrefix(key, namespaces) {
			delete(s.items, key)
		}
	}
	s.mu.Unlock()
}

func (s *Store) Len() int {
	s.mu.RLock()
	n := len(s.items)
	s.mu.RUnlock()
	return n
}

func (s *Store) currentEpoch() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

func hasAnyPrefix(key string, namespaces []string) bool {
	for _, ns := range namespaces {
		if ns != "" && strings.HasPrefix(key, ns) {
			return true
		}
	}
	return false
}

// Load returns the cached value for key or runs fetch once for all concurrent
// callers and caches its result. An empty key bypasses the cache.
func Load[T any](ctx context.Context, s *Store, key string, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	if fetch == nil {
		return zero, errors.New("cache: fetch func is nil")
	}
	if key == "" {
		return fetch(ctx)
	}

	raw, hit := s.Peek(key)
	if !hit {
		epoch := s.currentEpoch()
		flightKey := strconv.FormatUint(epoch, 10) + "|" + key
		var err error
		raw, err, _ = s.loads.Do(flightKey, func() (any, error) {
			value, err := fetch(ctx)
			if err != nil {
				return nil, err
			}
			s.putAt(key, value, epoch)
			return value, nil
		})
		if err != nil {
			return zero, err
		}
	}

	typed, ok := raw.(T)
	if !ok {
		return zero, errors.Newf("cache: entry %q holds %T", key, raw)
	}
	return typed, nil
}
