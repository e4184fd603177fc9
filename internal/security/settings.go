// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package security

import (
	"net/http"
	"time"

	"github.com/condominio/condoadmin/internal/platform/sec"
)

// # Settings

// Settings is the immutable configuration of the security core. It is built
// once at startup and passed to every component constructor.
type Settings struct {
	Session      SessionSettings
	Token        TokenSettings
	CSRF         CSRFSettings
	RateLimiting RateLimitSettings
	Roles        RoleSettings
	Ownership    OwnershipSettings

	// PublicRoutes skip authentication entirely (prefix match).
	PublicRoutes []string
}

// SessionSettings controls server-side session expiry and rotation.
type SessionSettings struct {
	Lifetime           time.Duration
	RegenerateInterval time.Duration
	CookieName         string
	CookieSecure       bool
}

// TokenSettings controls bearer token verification.
type TokenSettings struct {
	Secret string
	TTL    time.Duration
}

// CSRFSettings controls the anti-forgery guard.
type CSRFSettings struct {
	Enabled          bool
	ExpireTime       time.Duration
	RegenerateOnUse  bool
	ValidateReferrer bool
	TokenBytes       int

	// ExcludedRoutes bypass the check (prefix match).
	ExcludedRoutes []string
}

// BucketConfig is the threshold of one rate limit bucket.
type BucketConfig struct {
	MaxAttempts int
	Window      time.Duration
	Lockout     time.Duration
}

// RouteBucket maps a route prefix to a bucket name.
type RouteBucket struct {
	Prefix string
	Bucket string
}

// RateLimitSettings controls the sliding-window limiter.
type RateLimitSettings struct {
	Enabled      bool
	Buckets      map[string]BucketConfig
	RouteBuckets []RouteBucket
}

// RouteRoles maps a route prefix to the roles allowed on it.
type RouteRoles struct {
	Prefix string
	Roles  []sec.Role
}

// RoleSettings holds per-route default role requirements.
type RoleSettings struct {
	RouteRoles []RouteRoles
}

// OwnershipSettings controls multi-tenant isolation.
type OwnershipSettings struct {
	// ProtectedPrefixes are the routes whose resources belong to a condominium.
	ProtectedPrefixes []string

	// Strict turns the unresolved-condominium fallback from "permit, scoped
	// to the principal's condominium" into a rejection.
	Strict bool
}

// # Bucket Names

const (
	BucketLogin   = "login"
	BucketAPI     = "api"
	BucketGeneral = "general"
)

// MutatingMethods are subject to CSRF verification.
var MutatingMethods = map[string]bool{
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// DefaultSettings returns the built-in configuration. Values read from the
// environment are layered on top by the config package.
func DefaultSettings() Settings {
	return Settings{
		Session: SessionSettings{
			Lifetime:           7200 * time.Second,
			RegenerateInterval: 300 * time.Second,
			CookieName:         "condo_session",
		},
		Token: TokenSettings{
			TTL: time.Hour,
		},
		CSRF: CSRFSettings{
			Enabled:         true,
			ExpireTime:      3600 * time.Second,
			RegenerateOnUse: true,
			TokenBytes:      32,
			ExcludedRoutes: []string{
				"/api/auth/login",
				"/api/auth/logout",
				"/api/webhooks",
			},
		},
		RateLimiting: RateLimitSettings{
			Enabled: true,
			Buckets: map[string]BucketConfig{
				BucketLogin:   {MaxAttempts: 5, Window: 900 * time.Second, Lockout: 1800 * time.Second},
				BucketAPI:     {MaxAttempts: 100, Window: 3600 * time.Second, Lockout: 3600 * time.Second},
				BucketGeneral: {MaxAttempts: 200, Window: 3600 * time.Second, Lockout: 1800 * time.Second},
			},
			RouteBuckets: []RouteBucket{
				{Prefix: "/api/auth/login", Bucket: BucketLogin},
				{Prefix: "/api/", Bucket: BucketAPI},
			},
		},
		Roles: RoleSettings{
			RouteRoles: []RouteRoles{
				{Prefix: "/api/security", Roles: []sec.Role{sec.RoleAdmin}},
				{Prefix: "/api/dispositivos", Roles: []sec.Role{sec.RoleAdmin}},
				{Prefix: "/api/empleados", Roles: []sec.Role{sec.RoleAdmin, sec.RoleResidente}},
			},
		},
		Ownership: OwnershipSettings{
			ProtectedPrefixes: []string{
				"/api/areas-comunes",
				"/api/blog",
				"/api/calles",
				"/api/casas",
				"/api/empleados",
				"/api/engomados",
				"/api/tags",
				"/api/dispositivos",
				"/api/persona-casa",
				"/api/condominios",
			},
		},
		PublicRoutes: []string{
			"/api/auth/login",
			"/health",
			"/ready",
			"/metrics",
		},
	}
}
