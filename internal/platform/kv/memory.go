// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package kv

import (
	"context"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMemoryCapacity bounds the number of live keys held in memory.
const DefaultMemoryCapacity = 100_000

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func (entry memoryEntry) expired(now time.Time) bool {
	return !entry.expiresAt.IsZero() && !now.Before(entry.expiresAt)
}

// MemoryStore is an in-process [Store]. Least recently used keys are evicted
// once capacity is reached.
type MemoryStore struct {
	mu    sync.Mutex
	cache *lru.Cache[string, memoryEntry]
	now   func() time.Time
}

// NewMemoryStore creates a store holding at most capacity keys.
func NewMemoryStore(capacity int) (*MemoryStore, error) {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}

	cache, err := lru.New[string, memoryEntry](capacity)
	if err != nil {
		return nil, fmt.Errorf("kv: create memory cache: %w", err)
	}

	return &MemoryStore{cache: cache, now: time.Now}, nil
}

// WithClock replaces the time source used for expiry checks.
func (store *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	store.now = now
	return store
}

// Get implements [Store].
func (store *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	entry, err := store.live(key)
	if err != nil {
		return nil, err
	}
	return clone(entry.value), nil
}

// Set implements [Store].
func (store *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	entry := memoryEntry{value: clone(value)}
	if ttl > 0 {
		entry.expiresAt = store.now().Add(ttl)
	}
	store.cache.Add(key, entry)
	return nil
}

// Delete implements [Store].
func (store *MemoryStore) Delete(_ context.Context, keys ...string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, key := range keys {
		store.cache.Remove(key)
	}
	return nil
}

// Take implements [Store].
func (store *MemoryStore) Take(_ context.Context, key string) ([]byte, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	entry, err := store.live(key)
	if err != nil {
		return nil, err
	}
	store.cache.Remove(key)
	return entry.value, nil
}

// Rename implements [Store].
func (store *MemoryStore) Rename(_ context.Context, from, to string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	entry, err := store.live(from)
	if err != nil {
		return err
	}
	store.cache.Remove(from)
	store.cache.Add(to, entry)
	return nil
}

// Ping implements [Store]. The memory store is always available.
func (store *MemoryStore) Ping(context.Context) error {
	return nil
}

// Len returns the number of keys currently held, expired ones included.
func (store *MemoryStore) Len() int {
	return store.cache.Len()
}

// live must be called with the mutex held.
func (store *MemoryStore) live(key string) (memoryEntry, error) {
	entry, ok := store.cache.Get(key)
	if !ok {
		return memoryEntry{}, ErrNotFound
	}
	if entry.expired(store.now()) {
		store.cache.Remove(key)
		return memoryEntry{}, ErrNotFound
	}
	return entry, nil
}

func clone(value []byte) []byte {
	if value == nil {
		return nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out
}
