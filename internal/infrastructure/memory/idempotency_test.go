package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
)

func TestIdempotencyStore(t *testing.T) {
	s := NewIdempotencyStore()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.nowFn = func() time.Time { return now }
	ctx := context.Background()

	rec, err := s.Reserve(ctx, "k1", "h1", time.Hour)
	if err != nil || rec != nil {
		t.Fatalf("first reserve: %v %v", rec, err)
	}
	if _, err := s.Reserve(ctx, "k1", "h1", time.Hour); !errors.Is(err, domain.ErrIdempotencyConflict) {
		t.Fatalf("in flight: %v", err)
	}

	if err := s.Complete(ctx, "k1", domain.IdempotencyRecord{RequestHash: "h1", StatusCode: 201, Body: []byte(`{"ok":true}`)}, time.Hour); err != nil {
		t.Fatal(err)
	}
	rec, err = s.Reserve(ctx, "k1", "h1", time.Hour)
	if err != nil || rec == nil || rec.StatusCode != 201 {
		t.Fatalf("replay: %v %v", rec, err)
	}
	if _, err := s.Reserve(ctx, "k1", "other", time.Hour); !errors.Is(err, domain.ErrIdempotencyConflict) {
		t.Fatalf("different body: %v", err)
	}

	now = now.Add(2 * time.Hour)
	if rec, err := s.Reserve(ctx, "k1", "other", time.Hour); err != nil || rec != nil {
		t.Fatalf("after expiry: %v %v", rec, err)
	}

	if err := s.Release(ctx, "k1"); err != nil {
		t.Fatal(err)
	}
	if rec, err := s.Reserve(ctx, "k1", "h1", time.Hour); err != nil || rec != nil {
		t.Fatalf("after release: %v %v", rec, err)
	}
}
