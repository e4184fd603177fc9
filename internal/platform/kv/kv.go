// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

/*
Package kv provides the shared key-value store behind sessions, CSRF tokens
and rate limit records.

Two drivers exist:

  - [MemoryStore]: a bounded LRU for single-replica deployments and tests.
  - [RedisStore]: go-redis guarded by a circuit breaker, shared across replicas.

Both honour per-key TTLs. Values are opaque bytes; callers own the encoding.
*/
package kv

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a key is absent or expired.
	ErrNotFound = errors.New("kv: key not found")

	// ErrUnavailable is returned when the backing store is unreachable.
	ErrUnavailable = errors.New("kv: store unavailable")
)

// Store is the contract every driver implements.
type Store interface {
	// Get returns the value for key or [ErrNotFound].
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key. A non-positive ttl means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// Take atomically reads and deletes key.
	Take(ctx context.Context, key string) ([]byte, error)

	// Rename moves a value to a new key, keeping its remaining TTL.
	Rename(ctx context.Context, from, to string) error

	// Ping reports whether the store can serve requests.
	Ping(ctx context.Context) error
}
