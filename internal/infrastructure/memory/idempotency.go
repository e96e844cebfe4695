package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
)

type idempotencyEntry struct {
	record    domain.IdempotencyRecord
	expiresAt time.Time
}

// IdempotencyStore is the in-process counterpart of the Redis store.
type IdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]idempotencyEntry
	nowFn   func() time.Time
}

func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{
		entries: make(map[string]idempotencyEntry),
		nowFn:   time.Now,
	}
}

func (s *IdempotencyStore) Reserve(_ context.Context, key, requestHash string, ttl time.Duration) (*domain.IdempotencyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowFn()
	if e, ok := s.entries[key]; ok && now.Before(e.expiresAt) {
		if e.record.RequestHash != requestHash {
			return nil, fmt.Errorf("%w: key %s", domain.ErrIdempotencyConflict, key)
		}
		if e.record.StatusCode == 0 {
			return nil, fmt.Errorf("%w: key %s is still in progress", domain.ErrIdempotencyConflict, key)
		}
		rec := e.record
		return &rec, nil
	}
	s.entries[key] = idempotencyEntry{
		record:    domain.IdempotencyRecord{RequestHash: requestHash},
		expiresAt: now.Add(ttl),
	}
	return nil, nil
}

func (s *IdempotencyStore) Complete(_ context.Context, key string, record domain.IdempotencyRecord, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = idempotencyEntry{record: record, expiresAt: s.nowFn().Add(ttl)}
	return nil
}

func (s *IdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
