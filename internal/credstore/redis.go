package credstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SanOuhi99/RECT-v3-sub000/internal/common/config"
)

// RedisStore keeps scope credentials in Redis, for deployments where several
// kiosk clients share one session (e.g. a brokerage front desk).
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(cfg config.RedisConfig) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	return &RedisStore{client: rdb}
}

// NewRedisStoreFromClient wraps an existing client, used by tests.
func NewRedisStoreFromClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Ping tests the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("credstore: redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, scope string) (*Credentials, error) {
	token, err := s.client.Get(ctx, tokenKey(scope)).Result()
	if err == redis.Nil {
		return nil, ErrNoCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("credstore: redis get token: %w", err)
	}

	principal, err := s.client.Get(ctx, principalKey(scope)).Result()
	if err == redis.Nil {
		return nil, ErrNoCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("credstore: redis get principal: %w", err)
	}

	return validate(&Credentials{
		Token:     token,
		Principal: json.RawMessage(principal),
	})
}

func (s *RedisStore) Save(ctx context.Context, scope string, creds Credentials) error {
	if err := s.client.Set(ctx, tokenKey(scope), creds.Token, 0).Err(); err != nil {
		return fmt.Errorf("credstore: redis set token: %w", err)
	}
	if err := s.client.Set(ctx, principalKey(scope), string(creds.Principal), 0).Err(); err != nil {
		return fmt.Errorf("credstore: redis set principal: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, scope string) error {
	if err := s.client.Del(ctx, tokenKey(scope), principalKey(scope)).Err(); err != nil {
		return fmt.Errorf("credstore: redis del: %w", err)
	}
	return nil
}
