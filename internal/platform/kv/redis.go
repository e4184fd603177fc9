// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package kv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"
)

// Opinionated defaults for the Redis connection.
const (
	dialTimeout  = 3 * time.Second
	readTimeout  = 2 * time.Second
	writeTimeout = 2 * time.Second
	pingTimeout  = 2 * time.Second

	breakerFailureThreshold = 5
	breakerOpenTimeout      = 30 * time.Second
)

// NewRedisClient parses a Redis URL and returns a connected client.
//
// # Parameters
//   - ctx: Context for the initial ping.
//   - redisURL: Redis connection URL.
//   - logger: Structured logger for connection events.
func NewRedisClient(ctx context.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	options.PoolSize = 10
	options.MinIdleConns = 2
	options.DialTimeout = dialTimeout
	options.ReadTimeout = readTimeout
	options.WriteTimeout = writeTimeout

	client := redis.NewClient(options)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping failed: %w", err)
	}

	logger.Info("redis_client_connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
	)

	return client, nil
}

// RedisStore implements [Store] on top of go-redis. Every command passes
// through a circuit breaker so an unreachable server fails fast.
type RedisStore struct {
	client  *redis.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
}

// NewRedisStore wraps client with a circuit breaker.
func NewRedisStore(client *redis.Client, logger *slog.Logger) *RedisStore {
	settings := gobreaker.Settings{
		Name:    "kv_redis",
		Timeout: breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit_breaker_state_changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	}

	return &RedisStore{
		client:  client,
		breaker: gobreaker.NewCircuitBreaker[[]byte](settings),
	}
}

// Get implements [Store].
func (store *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	return store.execute(func() ([]byte, error) {
		value, err := store.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("redis_kv_get_failed: %w", err)
		}
		return value, nil
	})
}

// Set implements [Store].
func (store *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	_, err := store.execute(func() ([]byte, error) {
		if err := store.client.Set(ctx, key, value, ttl).Err(); err != nil {
			return nil, fmt.Errorf("redis_kv_set_failed: %w", err)
		}
		return nil, nil
	})
	return err
}

// Delete implements [Store].
func (store *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := store.execute(func() ([]byte, error) {
		if err := store.client.Del(ctx, keys...).Err(); err != nil {
			return nil, fmt.Errorf("redis_kv_delete_failed: %w", err)
		}
		return nil, nil
	})
	return err
}

// Take implements [Store] with GETDEL.
func (store *RedisStore) Take(ctx context.Context, key string) ([]byte, error) {
	return store.execute(func() ([]byte, error) {
		value, err := store.client.GetDel(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("redis_kv_take_failed: %w", err)
		}
		return value, nil
	})
}

// Rename implements [Store]. RENAME keeps the key's TTL.
func (store *RedisStore) Rename(ctx context.Context, from, to string) error {
	_, err := store.execute(func() ([]byte, error) {
		err := store.client.Rename(ctx, from, to).Err()
		if err != nil && strings.Contains(err.Error(), "no such key") {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("redis_kv_rename_failed: %w", err)
		}
		return nil, nil
	})
	return err
}

// Ping implements [Store].
func (store *RedisStore) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := store.client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}
	return nil
}

func (store *RedisStore) execute(command func() ([]byte, error)) ([]byte, error) {
	value, err := store.breaker.Execute(command)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return value, err
}
