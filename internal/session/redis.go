package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisPrefix = "ccms:session:v1:"

// RedisStore keeps credentials in Redis with a sliding expiry refreshed on
// every write.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisStore builds a Redis-backed store. namespace separates dashboards
// sharing one Redis; ttl of 0 keeps keys without expiry.
func NewRedisStore(client *redis.Client, namespace string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, prefix: redisPrefix + namespace + ":"}
}

// Token returns the stored bearer token.
func (s *RedisStore) Token(ctx context.Context) (string, error) {
	v, err := s.get(ctx, TokenKey)
	return string(v), err
}

// SetToken stores the bearer token.
func (s *RedisStore) SetToken(ctx context.Context, token string) error {
	return s.set(ctx, TokenKey, []byte(token))
}

// User returns the cached user record.
func (s *RedisStore) User(ctx context.Context) ([]byte, error) {
	return s.get(ctx, UserKey)
}

// SetUser caches the user record.
func (s *RedisStore) SetUser(ctx context.Context, user []byte) error {
	return s.set(ctx, UserKey, user)
}

// Clear removes all credentials in one round trip.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.prefix+TokenKey, s.prefix+UserKey).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *RedisStore) get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session %s: %w", key, err)
	}
	return v, nil
}

func (s *RedisStore) set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("write session %s: %w", key, err)
	}
	return nil
}
