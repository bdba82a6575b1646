// Package memory implements kv.Store on top of an in-process map.
//
// Records honour their expiration on every read; an optional background loop
// purges expired records so memory does not grow with abandoned sessions.
// The clock is injectable, which makes TTL behaviour deterministic in tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dmitrymomot/kvsession/pkg/kv"
)

type entry struct {
	value     string
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// Store implements kv.Store using in-memory storage
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time

	cleanupInterval time.Duration
	ticker          *time.Ticker
	done            chan struct{}
	closeOnce       sync.Once
}

type Option func(*Store)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithCleanupInterval enables periodic removal of expired records (0 disables it).
func WithCleanupInterval(interval time.Duration) Option {
	return func(s *Store) {
		s.cleanupInterval = interval
	}
}

// New creates a new in-memory store
func New(opts ...Option) *Store {
	s := &Store{
		entries: make(map[string]entry),
		now:     time.Now,
		done:    make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.cleanupInterval > 0 {
		s.ticker = time.NewTicker(s.cleanupInterval)
		go s.cleanupLoop()
	}

	return s
}

func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return "", kv.ErrNotFound
	}

	if e.expired(s.now()) {
		s.mu.Lock()
		// Re-check: a concurrent Put may have refreshed the record.
		if cur, ok := s.entries[key]; ok && cur.expired(s.now()) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return "", kv.ErrNotFound
	}

	return e.value, nil
}

func (s *Store) Put(_ context.Context, key, value string, opts ...kv.PutOption) error {
	if key == "" {
		return kv.ErrEmptyKey
	}

	o := kv.ApplyPutOptions(opts...)
	e := entry{value: value}
	if o.ExpirationTTL > 0 {
		e.expiresAt = s.now().Add(o.ExpirationTTL)
	}

	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

// List returns live keys with the given prefix, sorted by name.
func (s *Store) List(_ context.Context, prefix string) ([]kv.Key, error) {
	now := s.now()

	s.mu.RLock()
	keys := make([]kv.Key, 0, len(s.entries))
	for name, e := range s.entries {
		if !strings.HasPrefix(name, prefix) || e.expired(now) {
			continue
		}
		keys = append(keys, kv.Key{Name: name, Expiration: e.expiresAt})
	}
	s.mu.RUnlock()

	sort.Slice(keys, func(i, j int) bool { return keys[i].Name < keys[j].Name })
	return keys, nil
}

// DeleteExpired removes all expired records
func (s *Store) DeleteExpired(_ context.Context) error {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, e := range s.entries {
		if e.expired(now) {
			delete(s.entries, key)
		}
	}
	return nil
}

// Len returns the number of stored records, including expired ones not yet purged.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close stops the cleanup goroutine
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		if s.ticker != nil {
			s.ticker.Stop()
		}
		close(s.done)
	})
	return nil
}

func (s *Store) cleanupLoop() {
	for {
		select {
		case <-s.ticker.C:
			_ = s.DeleteExpired(context.Background())
		case <-s.done:
			return
		}
	}
}
