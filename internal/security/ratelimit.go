// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package security

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/condominio/condoadmin/internal/platform/constants"
	"github.com/condominio/condoadmin/internal/platform/kv"
	requestutil "github.com/condominio/condoadmin/internal/platform/request"
	"github.com/condominio/condoadmin/internal/platform/sec"
)

// # Rate Limit Model

// RateLimitRecord is the persisted counter of one (bucket, identifier) pair.
type RateLimitRecord struct {
	Count        int       `json:"count"`
	WindowStart  time.Time `json:"window_start"`
	LastRequest  time.Time `json:"last_request"`
	BlockedUntil time.Time `json:"blocked_until"`
}

func (record *RateLimitRecord) blocked(now time.Time) bool {
	return !record.BlockedUntil.IsZero() && record.BlockedUntil.After(now)
}

// RateLimitStatus describes an admitted request.
type RateLimitStatus struct {
	Bucket    string    `json:"bucket"`
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining_attempts"`
	ResetTime time.Time `json:"reset_time"`

	// FailOpen is set when the store failed and the request was let through.
	FailOpen bool `json:"fail_open,omitempty"`
}

// RateLimitStats is the administrative view of a record.
type RateLimitStats struct {
	Identifier   string     `json:"identifier"`
	Bucket       string     `json:"bucket"`
	Limit        int        `json:"limit"`
	Count        int        `json:"count"`
	Remaining    int        `json:"remaining_attempts"`
	WindowStart  *time.Time `json:"window_start,omitempty"`
	BlockedUntil *time.Time `json:"blocked_until,omitempty"`
	Blocked      bool       `json:"blocked"`
}

// # Rate Limiter

// RateLimiter enforces a sliding window with lockout per (bucket, identifier).
//
// Records are read, modified and written without a lock; concurrent bursts
// may be slightly under-counted.
type RateLimiter struct {
	store    kv.Store
	settings RateLimitSettings
	now      func() time.Time
	logger   *slog.Logger
	recorder Recorder
}

// NewRateLimiter creates a new RateLimiter.
func NewRateLimiter(store kv.Store, settings RateLimitSettings, now func() time.Time, logger *slog.Logger, recorder Recorder) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &RateLimiter{store: store, settings: settings, now: now, logger: logger, recorder: recorder}
}

// Enabled reports whether limits are enforced at all.
func (limiter *RateLimiter) Enabled() bool {
	return limiter.settings.Enabled
}

// ResolveBucket picks the bucket for a request: the first matching route
// prefix, else the requested bucket, else "general".
func (limiter *RateLimiter) ResolveBucket(route, requested string) string {
	if route != "" {
		for _, mapping := range limiter.settings.RouteBuckets {
			if strings.HasPrefix(route, mapping.Prefix) {
				return mapping.Bucket
			}
		}
	}
	if requested != "" {
		return requested
	}
	return BucketGeneral
}

// Config returns the thresholds of a bucket, falling back to "general".
func (limiter *RateLimiter) Config(bucket string) BucketConfig {
	if config, ok := limiter.settings.Buckets[bucket]; ok {
		return config
	}
	return limiter.settings.Buckets[BucketGeneral]
}

/*
Consume records one request for identifier in bucket.

Description: Storage failures are logged and the request is admitted
(fail-open). Rate limiting is a defense-in-depth measure, not a hard boundary.

Returns:
  - RateLimitStatus: Remaining attempts and window reset time
  - error: RATE_LIMITED with a retry hint
*/
func (limiter *RateLimiter) Consume(ctx context.Context, identifier, bucket string) (RateLimitStatus, error) {
	config := limiter.Config(bucket)
	now := limiter.now()
	key := rateLimitKey(bucket, identifier)

	record, err := limiter.load(ctx, key)
	if err != nil {
		return limiter.failOpen(ctx, bucket, config, now, err), nil
	}

	// 1. Active lockout
	if record.blocked(now) {
		return RateLimitStatus{}, errRateLimited(secondsUntil(now, record.BlockedUntil))
	}

	// 2. Expired window or finished lockout starts a fresh window
	if !record.BlockedUntil.IsZero() || now.Sub(record.WindowStart) > config.Window {
		record = RateLimitRecord{WindowStart: now}
	}

	// 3. Count
	record.Count++
	record.LastRequest = now

	if record.Count > config.MaxAttempts {
		record.BlockedUntil = now.Add(config.Lockout)
		if err := limiter.save(ctx, key, record, config); err != nil {
			limiter.warn(ctx, "rate_limit_store_failed", bucket, err)
		}
		limiter.logger.WarnContext(ctx, "rate_limit_lockout",
			slog.String("bucket", bucket),
			slog.Int("count", record.Count),
			slog.Duration("lockout", config.Lockout),
		)
		return RateLimitStatus{}, errRateLimited(int(config.Lockout / time.Second))
	}

	if err := limiter.save(ctx, key, record, config); err != nil {
		return limiter.failOpen(ctx, bucket, config, now, err), nil
	}

	return RateLimitStatus{
		Bucket:    bucket,
		Limit:     config.MaxAttempts,
		Remaining: config.MaxAttempts - record.Count,
		ResetTime: record.WindowStart.Add(config.Window),
	}, nil
}

// Reset removes the record so the identifier starts fresh.
func (limiter *RateLimiter) Reset(ctx context.Context, identifier, bucket string) error {
	return limiter.store.Delete(ctx, rateLimitKey(bucket, identifier))
}

// Stats returns the current counters without consuming an attempt.
func (limiter *RateLimiter) Stats(ctx context.Context, identifier, bucket string) (RateLimitStats, error) {
	config := limiter.Config(bucket)
	stats := RateLimitStats{
		Identifier: identifier,
		Bucket:     bucket,
		Limit:      config.MaxAttempts,
		Remaining:  config.MaxAttempts,
	}

	record, err := limiter.load(ctx, rateLimitKey(bucket, identifier))
	if err != nil {
		return stats, err
	}
	if record.WindowStart.IsZero() {
		return stats, nil
	}

	now := limiter.now()
	if now.Sub(record.WindowStart) <= config.Window || record.blocked(now) {
		stats.Count = record.Count
		stats.Remaining = max(config.MaxAttempts-record.Count, 0)
	}
	stats.WindowStart = &record.WindowStart
	if !record.BlockedUntil.IsZero() {
		stats.BlockedUntil = &record.BlockedUntil
		stats.Blocked = record.blocked(now)
	}

	return stats, nil
}

// load returns an empty record when none exists.
func (limiter *RateLimiter) load(ctx context.Context, key string) (RateLimitRecord, error) {
	var record RateLimitRecord

	raw, err := limiter.store.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return record, nil
	}
	if err != nil {
		return record, err
	}

	if err := json.Unmarshal(raw, &record); err != nil {
		return RateLimitRecord{}, err
	}
	return record, nil
}

func (limiter *RateLimiter) save(ctx context.Context, key string, record RateLimitRecord, config BucketConfig) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return limiter.store.Set(ctx, key, raw, max(config.Window, config.Lockout))
}

func (limiter *RateLimiter) failOpen(ctx context.Context, bucket string, config BucketConfig, now time.Time, cause error) RateLimitStatus {
	limiter.warn(ctx, "rate_limit_fail_open", bucket, cause)
	limiter.recorder.RecordFailOpen(bucket)

	return RateLimitStatus{
		Bucket:    bucket,
		Limit:     config.MaxAttempts,
		Remaining: config.MaxAttempts,
		ResetTime: now.Add(config.Window),
		FailOpen:  true,
	}
}

func (limiter *RateLimiter) warn(ctx context.Context, event, bucket string, cause error) {
	limiter.logger.WarnContext(ctx, event,
		slog.String("bucket", bucket),
		slog.Any("error", cause),
	)
}

// ClientIdentifier prefers the authenticated principal and falls back to
// the client IP.
func ClientIdentifier(principal *sec.Principal, request *http.Request) string {
	if principal != nil && principal.ID != "" {
		return principal.RateLimitIdentifier()
	}
	return requestutil.ClientIP(request)
}

func rateLimitKey(bucket, identifier string) string {
	return constants.KVPrefixRateLimit + sec.HashToken(bucket+":"+identifier)
}

// secondsUntil rounds up so a client never retries too early.
func secondsUntil(now, deadline time.Time) int {
	return int(math.Ceil(deadline.Sub(now).Seconds()))
}
