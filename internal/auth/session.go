package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

var ctx = context.Background()

// SessionStore persists refresh tokens per user/device and the token
// blacklist. The interface exists so handler and service tests can run
// against an in-memory implementation.
type SessionStore interface {
	SaveRefreshToken(userID uint64, device, token string, ttl time.Duration) error
	GetRefreshToken(userID uint64, device string) (string, error)
	DeleteRefreshToken(userID uint64, device string) error
	AddBlackList(token string, ttl time.Duration) error
	InBlackList(token string) (bool, error)
}

// RedisSessionStore backs SessionStore with Redis.
type RedisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb}
}

// SaveRefreshToken stores the refresh token for the specific user/device pair.
func (s *RedisSessionStore) SaveRefreshToken(userID uint64, device, token string, ttl time.Duration) error {
	key := fmt.Sprintf("wb:session:%d:%s", userID, device)
	return s.rdb.Set(ctx, key, token, ttl).Err()
}

// GetRefreshToken fetches the latest refresh token for a user/device.
func (s *RedisSessionStore) GetRefreshToken(userID uint64, device string) (string, error) {
	key := fmt.Sprintf("wb:session:%d:%s", userID, device)
	return s.rdb.Get(ctx, key).Result()
}

// DeleteRefreshToken removes the stored refresh token, used during logout.
func (s *RedisSessionStore) DeleteRefreshToken(userID uint64, device string) error {
	key := fmt.Sprintf("wb:session:%d:%s", userID, device)
	return s.rdb.Del(ctx, key).Err()
}

// AddBlackList blacklists a token for the remainder of its lifetime.
func (s *RedisSessionStore) AddBlackList(token string, ttl time.Duration) error {
	key := fmt.Sprintf("wb:black:%s", token)
	return s.rdb.Set(ctx, key, "1", ttl).Err()
}

// InBlackList reports whether a token has been invalidated previously.
func (s *RedisSessionStore) InBlackList(token string) (bool, error) {
	key := fmt.Sprintf("wb:black:%s", token)
	res, err := s.rdb.Exists(ctx, key).Result()
	return res == 1, err
}
