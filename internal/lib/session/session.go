// Package session stores signed-in sessions in Redis.
//
// A session is an opaque random token, handed to the browser in a cookie,
// mapped to the company id under the key "session:<token>". Every lookup
// pushes the expiry forward by the configured TTL.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// ErrNotFound is returned for unknown, expired or malformed tokens.
var ErrNotFound = errors.New("session not found")

type Store struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewStore(rdb redis.Cmdable, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// TTL is how long a session lives without being used.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

func key(token string) string {
	return keyPrefix + token
}

// Create starts a session for companyID and returns its token.
func (s *Store) Create(ctx context.Context, companyID int64) (string, error) {
	token := uuid.NewString()

	if err := s.rdb.Set(ctx, key(token), companyID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	return token, nil
}

// Lookup returns the company id for token and refreshes its expiry.
func (s *Store) Lookup(ctx context.Context, token string) (int64, error) {
	if uuid.Validate(token) != nil {
		return 0, ErrNotFound
	}

	value, err := s.rdb.GetEx(ctx, key(token), s.ttl).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("lookup session: %w", err)
	}

	companyID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, ErrNotFound
	}

	return companyID, nil
}

// Destroy ends a session. Destroying an unknown token is not an error.
func (s *Store) Destroy(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, key(token)).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}
