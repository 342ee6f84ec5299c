// Package cache implements the process-wide read cache for repository
// queries. Each cached result is addressed by a normalized composite key
// (entity kind plus disambiguating parameters) and holds the data together
// with its storage instant and a stale flag. Mutations publish events on a
// Bus; subscribed invalidation edges mark the dependent entries stale so the
// next read re-fetches from the database.
package cache

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cafein/api-go/metrics"
)

// Entity kinds of cached reads.
const (
	KindCafeList  = "cafes"
	KindCafe      = "cafe"
	KindDashboard = "dashboard-stats"
)

// Key is a normalized composite cache key.
type Key string

// NewKey builds a key from an entity kind and its parameters, e.g.
// NewKey("cafes", page, pageSize, search, withImages).
func NewKey(kind string, params ...any) Key {
	if len(params) == 0 {
		return Key(kind)
	}
	parts := make([]string, 0, len(params)+1)
	parts = append(parts, kind)
	for _, p := range params {
		parts = append(parts, fmt.Sprintf("%v", p))
	}
	return Key(strings.Join(parts, "|"))
}

// Kind returns the entity kind prefix of the key.
func (k Key) Kind() string {
	s := string(k)
	if i := strings.IndexByte(s, '|'); i >= 0 {
		return s[:i]
	}
	return s
}

type entry struct {
	data     any
	storedAt time.Time
	stale    bool
}

// Store holds cached query results. Entries are reused until an invalidation
// edge marks them stale or they outlive the TTL; the sweeper collects
// stale and expired entries.
type Store struct {
	mu      sync.RWMutex
	entries map[Key]entry
	ttl     time.Duration

	metrics *metrics.Metrics
	now     func() time.Time
}

// New creates a Store. ttl bounds how long an entry may be served without a
// re-fetch; m may be nil.
func New(ttl time.Duration, m *metrics.Metrics) *Store {
	return &Store{
		entries: make(map[Key]entry),
		ttl:     ttl,
		metrics: m,
		now:     time.Now,
	}
}

// Get returns the cached data for key. A stale or expired entry is a miss.
func (s *Store) Get(key Key) (any, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || e.stale || s.now().Sub(e.storedAt) > s.ttl {
		s.countMiss(key)
		return nil, false
	}
	s.countHit(key)
	return e.data, true
}

// Put stores data under key, replacing any previous entry.
func (s *Store) Put(key Key, data any) {
	s.mu.Lock()
	s.entries[key] = entry{data: data, storedAt: s.now()}
	s.mu.Unlock()
}

// Invalidate marks the entry for key stale. A missing key is a no-op.
func (s *Store) Invalidate(key Key) {
	s.mu.Lock()
	if e, ok := s.entries[key]; ok {
		e.stale = true
		s.entries[key] = e
	}
	s.mu.Unlock()
}

// InvalidateKind marks every entry of the given entity kind stale. Used for
// list caches, where any page or search variant may be affected by a write.
func (s *Store) InvalidateKind(kind string) {
	s.mu.Lock()
	for k, e := range s.entries {
		if k.Kind() == kind {
			e.stale = true
			s.entries[k] = e
		}
	}
	s.mu.Unlock()
}

// Len reports the number of entries currently held, stale included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Sweep removes stale and expired entries and returns how many were dropped.
func (s *Store) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := 0
	for k, e := range s.entries {
		if e.stale || now.Sub(e.storedAt) > s.ttl {
			delete(s.entries, k)
			dropped++
		}
	}
	return dropped
}

// SweepLoop runs Sweep every interval until stop is closed.
func (s *Store) SweepLoop(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-stop:
			return
		}
	}
}

func (s *Store) countHit(key Key) {
	if s.metrics != nil {
		s.metrics.CacheHits.WithLabelValues(key.Kind()).Inc()
	}
}

func (s *Store) countMiss(key Key) {
	if s.metrics != nil {
		s.metrics.CacheMisses.WithLabelValues(key.Kind()).Inc()
	}
}
