package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

const idempotencyPrefix = "settlement:idempotency:"

// RedisIdempotencyStore keeps request fingerprints and their responses in Redis.
// A reserved key holds a record without status code until Complete is called.
type RedisIdempotencyStore struct {
	client *redis.Client
}

func NewRedisIdempotencyStore(client *redis.Client) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{client: client}
}

func (s *RedisIdempotencyStore) Reserve(ctx context.Context, key, requestHash string, ttl time.Duration) (*domain.IdempotencyRecord, error) {
	raw, err := json.Marshal(domain.IdempotencyRecord{RequestHash: requestHash})
	if err != nil {
		return nil, err
	}
	claimed, err := s.client.SetNX(ctx, idempotencyPrefix+key, raw, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: reserve idempotency key: %v", domain.ErrTransient, err)
	}
	if claimed {
		return nil, nil
	}

	stored, err := s.client.Get(ctx, idempotencyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// expired between SETNX and GET
			return s.Reserve(ctx, key, requestHash, ttl)
		}
		return nil, fmt.Errorf("%w: read idempotency key: %v", domain.ErrTransient, err)
	}
	var rec domain.IdempotencyRecord
	if err := json.Unmarshal(stored, &rec); err != nil {
		return nil, err
	}
	if rec.RequestHash != requestHash {
		return nil, fmt.Errorf("%w: key %s", domain.ErrIdempotencyConflict, key)
	}
	if rec.StatusCode == 0 {
		return nil, fmt.Errorf("%w: key %s is still in progress", domain.ErrIdempotencyConflict, key)
	}
	return &rec, nil
}

func (s *RedisIdempotencyStore) Complete(ctx context.Context, key string, record domain.IdempotencyRecord, ttl time.Duration) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, idempotencyPrefix+key, raw, ttl).Err()
}

func (s *RedisIdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, idempotencyPrefix+key).Err()
}
