// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs for the flood guard.
  - Security: Header names, cookie and form field identifiers.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "condoadmin-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Flood Guard

const (
	// DefaultFloodGuardRPS is the requests per second allowed per IP before
	// the sliding-window limiter is even consulted.
	DefaultFloodGuardRPS = 50.0

	// DefaultFloodGuardBurst is the maximum burst allowed by the flood guard.
	DefaultFloodGuardBurst = 100

	// FloodGuardCleanupInterval is how often old IP entries are removed from memory.
	FloodGuardCleanupInterval = 1 * time.Minute

	// FloodGuardClientTTL is how long a client must be idle before its entry is deleted.
	FloodGuardClientTTL = 3 * time.Minute
)

// # HTTP Headers

const (
	HeaderXRequestID     = "X-Request-ID"
	HeaderXRealIP        = "X-Real-IP"
	HeaderXForwardedFor  = "X-Forwarded-For"
	HeaderOrigin         = "Origin"
	HeaderReferer        = "Referer"
	HeaderAuthorization  = "Authorization"
	HeaderRetryAfter     = "Retry-After"
	HeaderCSRFToken      = "X-CSRF-TOKEN"
	HeaderCSRFTokenAlt   = "X-Csrf-Token"
	HeaderContentType    = "Content-Type"
	HeaderRateLimitLimit = "X-RateLimit-Limit"
	HeaderRateLimitLeft  = "X-RateLimit-Remaining"
	HeaderRateLimitReset = "X-RateLimit-Reset"
	ContentTypeJSON      = "application/json"
	ContentTypeForm      = "application/x-www-form-urlencoded"
	ContentTypeMultipart = "multipart/form-data"
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in bearer tokens.
	AuthIssuer = "condoadmin"

	// BearerPrefix is the scheme prefix of the Authorization header.
	BearerPrefix = "Bearer "

	// CSRFFieldName is the form / JSON body field carrying the anti-forgery token.
	CSRFFieldName = "_token"

	// DefaultCSRFAction is the action key used when the caller names none.
	DefaultCSRFAction = "default"

	// DefaultDisplayName is used when the session or token carries no name.
	DefaultDisplayName = "Usuario"

	// MaxPayloadBytes bounds how much of a request body the security
	// pipeline buffers while looking for tokens and condominium ids.
	MaxPayloadBytes = 1 << 20
)

// # JSON Field Identifiers

const (
	FieldData       = "data"
	FieldMeta       = "meta"
	FieldSuccess    = "success"
	FieldError      = "error"
	FieldErrorCode  = "error_code"
	FieldCode       = "code"
	FieldDetails    = "details"
	FieldMessage    = "message"
	FieldStatus     = "status"
	FieldRetryAfter = "retry_after"
	FieldCSRFToken  = "csrf_token"
	FieldChecks     = "checks"
)

// # Key-Value Prefixes (Store Taxonomy)

const (
	KVPrefixSession   = "session:"
	KVPrefixCSRF      = "csrf:"
	KVPrefixRateLimit = "ratelimit:"

	// MemoryStoreCapacity bounds the in-process store (STORE_DRIVER=memory).
	MemoryStoreCapacity = 100_000
)
