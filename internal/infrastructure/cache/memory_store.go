package cache

import (
	"context"
	"sync"
	"time"
)

// MemorySessionStore is the single-process fallback used when Redis is not configured.
type MemorySessionStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Save also drops every expired entry, so tokens that are never presented
// again do not accumulate.
func (s *MemorySessionStore) Save(_ context.Context, key string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for existing, expiresAt := range s.entries {
		if !now.Before(expiresAt) {
			delete(s.entries, existing)
		}
	}
	s.entries[key] = now.Add(ttl)
	return nil
}

func (s *MemorySessionStore) Exists(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt, ok := s.entries[key]
	if !ok {
		return false, nil
	}
	if !s.now().Before(expiresAt) {
		delete(s.entries, key)
		return false, nil
	}
	return true, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.entries, key)
	}
	return nil
}

// MemoryAttemptLimiter keeps failure timestamps per key and prunes those outside the window.
type MemoryAttemptLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	limit    int
	window   time.Duration
	now      func() time.Time
}

func NewMemoryAttemptLimiter(limit int, window time.Duration) *MemoryAttemptLimiter {
	return &MemoryAttemptLimiter{
		attempts: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		now:      time.Now,
	}
}

func (l *MemoryAttemptLimiter) TooManyAttempts(_ context.Context, key string) (bool, error) {
	if l.limit <= 0 {
		return false, nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.pruneLocked(key)) >= l.limit, nil
}

func (l *MemoryAttemptLimiter) RecordFailure(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	pruned := l.pruneLocked(key)
	l.attempts[key] = append(pruned, l.now())
	return nil
}

func (l *MemoryAttemptLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, key)
	return nil
}

func (l *MemoryAttemptLimiter) pruneLocked(key string) []time.Time {
	values := l.attempts[key]
	if len(values) == 0 {
		return nil
	}

	threshold := l.now().Add(-l.window)
	pruned := make([]time.Time, 0, len(values))
	for _, value := range values {
		if value.After(threshold) {
			pruned = append(pruned, value)
		}
	}

	if len(pruned) == 0 {
		delete(l.attempts, key)
		return nil
	}

	l.attempts[key] = pruned
	return pruned
}
