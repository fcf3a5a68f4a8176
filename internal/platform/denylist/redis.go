package denylist

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connect opens a Redis client for the session deny-list and verifies it
// with a ping.
func Connect(addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return rdb, nil
}

const keyPrefix = "session_denylist:"

// Store records revoked session token ids. Entries expire on their own once
// the token they shadow would have expired anyway, so the list stays small.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Revoke marks a token id as revoked for the remainder of its lifetime.
// A non-positive TTL means the token is already expired and there is
// nothing to record.
func (s *Store) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" || ttl <= 0 {
		return nil
	}
	if err := s.rdb.Set(ctx, keyPrefix+tokenID, "revoked", ttl).Err(); err != nil {
		return fmt.Errorf("denylist.Revoke: %w", err)
	}
	return nil
}

// Contains reports whether the token id has been revoked.
func (s *Store) Contains(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, keyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("denylist.Contains: %w", err)
	}
	return n > 0, nil
}
