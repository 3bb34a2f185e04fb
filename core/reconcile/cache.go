package reconcile

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// cachedSearch is a fetched snapshot together with its freshness.
type cachedSearch struct {
	snapshot *Snapshot

	// Built is the timestamp when this entry was fetched.
	Built time.Time

	// TTL is the time-to-live for this entry.
	TTL time.Duration
}

// IsExpired returns true if this entry has expired based on its TTL.
func (c *cachedSearch) IsExpired() bool {
	if c.TTL == 0 {
		return true // No caching
	}
	return time.Since(c.Built) > c.TTL
}

// searchCache holds search snapshots keyed by endpoint. Concurrent loads of the
// same key are collapsed into one session call.
type searchCache struct {
	mu      sync.RWMutex
	entries map[string]*cachedSearch
	sf      singleflight.Group
	ttl     time.Duration
}

func newSearchCache(ttl time.Duration) *searchCache {
	return &searchCache{
		entries: make(map[string]*cachedSearch),
		ttl:     ttl,
	}
}

// getOrLoad returns the snapshot stored under key, or loads a new one if it
// doesn't exist or has expired.
func (s *searchCache) getOrLoad(ctx context.Context, key string, load func(context.Context) (*Snapshot, error)) (*Snapshot, error) {
	// Fast path: check if entry exists and is fresh
	s.mu.RLock()
	entry, exists := s.entries[key]
	s.mu.RUnlock()

	if exists && !entry.IsExpired() {
		return entry.snapshot, nil
	}

	result, err, _ := s.sf.Do(key, func() (interface{}, error) {
		// Double-check after acquiring singleflight lock
		s.mu.RLock()
		entry, exists := s.entries[key]
		s.mu.RUnlock()

		if exists && !entry.IsExpired() {
			return entry.snapshot, nil
		}

		// Waiters share this load, so one caller's cancellation must not fail the others.
		snapshot, err := load(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		if s.ttl > 0 {
			s.mu.Lock()
			s.entries[key] = &cachedSearch{snapshot: snapshot, Built: time.Now(), TTL: s.ttl}
			s.mu.Unlock()
		}

		return snapshot, nil
	})

	if err != nil {
		return nil, err
	}

	return result.(*Snapshot), nil
}

// invalidate removes the entry stored under key.
func (s *searchCache) invalidate(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}
