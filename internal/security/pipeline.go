// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package security

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/condominio/condoadmin/internal/platform/apperr"
	"github.com/condominio/condoadmin/internal/platform/kv"
	"github.com/condominio/condoadmin/internal/platform/sec"
)

// # Stage Names

const (
	StageAuthentication = "authentication"
	StageRateLimit      = "rate_limit"
	StageCSRF           = "csrf"
	StageRole           = "role"
	StageOwnership      = "ownership"
)

const (
	outcomePassed   = "passed"
	outcomeRejected = "rejected"
	outcomeSkipped  = "skipped"
)

// Request is everything the pipeline needs to know about an inbound call.
// The HTTP adapter fills it from the *http.Request; other callers (tests,
// background jobs) can build it directly.
type Request struct {
	Method string

	// Route is the request URI including the query string.
	Route string

	SessionID     string
	Authorization string

	CSRFToken  string
	CSRFAction string

	// Bucket is the requested rate limit bucket; route mappings win.
	Bucket   string
	ClientIP string

	RequiredRoles         []sec.Role
	ResourceCondominiumID *int64
	Payload               map[string]any

	// HTTP is used for referrer validation only. May be nil.
	HTTP *http.Request
}

// Result is the outcome of an authorized request.
type Result struct {
	Principal *sec.Principal

	// SessionID is the current session id, empty for token clients.
	SessionID string

	// CSRFScope binds anti-forgery tokens to this session or principal.
	CSRFScope string

	RateLimit     RateLimitStatus
	CondominiumID int64
}

// Map returns the principal as a plain object for handlers and templates.
func (result *Result) Map() map[string]any {
	if result == nil || result.Principal == nil {
		return map[string]any{}
	}
	return result.Principal.Map()
}

// # Pipeline

// Pipeline runs authentication, rate limiting, CSRF, role and ownership
// checks in that order.
type Pipeline struct {
	settings  Settings
	sessions  *SessionAuthenticator
	store     *KVSessionStore
	tokens    *TokenAuthenticator
	limiter   *RateLimiter
	csrf      *CSRFGuard
	roles     *RoleAuthorizer
	ownership *OwnershipAuthorizer
	logger    *slog.Logger
	recorder  Recorder
	now       func() time.Time
}

// NewPipeline builds every component over a shared key-value store.
//
// # Parameters
//   - settings: Immutable security configuration
//   - store: Backing store for sessions, CSRF tokens and rate limit records
//   - logger: Structured logger
//   - recorder: Metrics sink; nil disables metrics
//   - now: Clock; nil means time.Now
func NewPipeline(settings Settings, store kv.Store, logger *slog.Logger, recorder Recorder, now func() time.Time) (*Pipeline, error) {
	if now == nil {
		now = time.Now
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if settings.Token.Secret == "" {
		return nil, fmt.Errorf("security: token secret is required")
	}

	roles, err := NewRoleAuthorizer(settings.Roles)
	if err != nil {
		return nil, err
	}

	sessionStore := NewKVSessionStore(store, settings.Session.Lifetime)

	return &Pipeline{
		settings:  settings,
		sessions:  NewSessionAuthenticator(sessionStore, settings.Session, now),
		store:     sessionStore,
		tokens:    NewTokenAuthenticator(settings.Token.Secret, now),
		limiter:   NewRateLimiter(store, settings.RateLimiting, now, logger, recorder),
		csrf:      NewCSRFGuard(store, settings.CSRF, now),
		roles:     roles,
		ownership: NewOwnershipAuthorizer(settings.Ownership, logger),
		logger:    logger,
		recorder:  recorder,
		now:       now,
	}, nil
}

// # Component Accessors

// Settings returns the configuration the pipeline was built with.
func (pipeline *Pipeline) Settings() Settings {
	return pipeline.settings
}

// Sessions exposes the session store for login and logout.
func (pipeline *Pipeline) Sessions() *KVSessionStore {
	return pipeline.store
}

// Limiter exposes the rate limiter for administrative endpoints.
func (pipeline *Pipeline) Limiter() *RateLimiter {
	return pipeline.limiter
}

// CSRF exposes the anti-forgery guard for token endpoints.
func (pipeline *Pipeline) CSRF() *CSRFGuard {
	return pipeline.csrf
}

// Roles exposes the role authorizer.
func (pipeline *Pipeline) Roles() *RoleAuthorizer {
	return pipeline.roles
}

// Ownership exposes the ownership authorizer.
func (pipeline *Pipeline) Ownership() *OwnershipAuthorizer {
	return pipeline.ownership
}

// Now returns the pipeline clock.
func (pipeline *Pipeline) Now() time.Time { return pipeline.now() }

/*
Execute runs the five stages and stops at the first failure.

Description: Public routes are only rate limited. A CSRF failure carries a
freshly issued token in the error payload so the client can retry. Panics
inside a stage are recovered and reported as INTERNAL_ERROR.

Returns:
  - *Result: Principal, (possibly rotated) session id and limiter status
  - error: An [apperr.AppError] whose Code is a [Kind]
*/
func (pipeline *Pipeline) Execute(ctx context.Context, request Request) (result *Result, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			stackTrace := make([]byte, 4096)
			length := runtime.Stack(stackTrace, false)
			pipeline.logger.ErrorContext(ctx, "security_pipeline_panic",
				slog.Any("error", recovered),
				slog.String("stack", string(stackTrace[:length])),
			)
			result, err = nil, errInternal(fmt.Errorf("panic: %v", recovered))
		}
	}()

	path, _ := splitRoute(request.Route)
	result = &Result{}

	// 1. Authentication
	if matchesPrefix(path, pipeline.settings.PublicRoutes) {
		pipeline.recorder.RecordDecision(StageAuthentication, outcomeSkipped)
	} else {
		principal, session, authErr := pipeline.authenticate(ctx, request, pipeline.sessions.Verify)
		if authErr != nil {
			return nil, pipeline.reject(ctx, StageAuthentication, authErr)
		}
		result.Principal = principal
		result.CSRFScope = CSRFScope(session, principal)
		if session != nil {
			result.SessionID = session.ID
		}
		pipeline.recorder.RecordDecision(StageAuthentication, outcomePassed)
	}

	// 2. Rate limiting
	if pipeline.limiter.Enabled() {
		bucket := pipeline.limiter.ResolveBucket(path, request.Bucket)
		status, limitErr := pipeline.limiter.Consume(ctx, pipeline.identifier(result.Principal, request), bucket)
		if limitErr != nil {
			return nil, pipeline.reject(ctx, StageRateLimit, limitErr)
		}
		result.RateLimit = status
		pipeline.recorder.RecordDecision(StageRateLimit, outcomePassed)
	}

	if result.Principal == nil {
		return result, nil
	}

	// 3. Anti-forgery
	if pipeline.csrf.Applies(request.Method, path) {
		if csrfErr := pipeline.verifyCSRF(ctx, request, result); csrfErr != nil {
			return nil, pipeline.reject(ctx, StageCSRF, pipeline.withFreshToken(ctx, csrfErr, request, result))
		}
		pipeline.recorder.RecordDecision(StageCSRF, outcomePassed)
	}

	// 4. Roles
	if required := pipeline.roles.RequiredFor(path, request.RequiredRoles); len(required) > 0 {
		if roleErr := pipeline.roles.Authorize(result.Principal, required, path); roleErr != nil {
			return nil, pipeline.reject(ctx, StageRole, roleErr)
		}
		pipeline.recorder.RecordDecision(StageRole, outcomePassed)
	}

	// 5. Ownership
	condominiumID, ownershipErr := pipeline.ownership.Authorize(ctx, result.Principal, request.ResourceCondominiumID, request.Route, request.Payload)
	if ownershipErr != nil {
		return nil, pipeline.reject(ctx, StageOwnership, ownershipErr)
	}
	result.CondominiumID = condominiumID
	pipeline.recorder.RecordDecision(StageOwnership, outcomePassed)

	return result, nil
}

// sessionCheck is [SessionAuthenticator.Verify] or its read-only twin Inspect.
type sessionCheck func(ctx context.Context, sessionID string) (*sec.Principal, *Session, error)

// authenticate tries the session first, then the bearer token.
func (pipeline *Pipeline) authenticate(ctx context.Context, request Request, checkSession sessionCheck) (*sec.Principal, *Session, error) {
	var sessionErr error

	if request.SessionID != "" {
		principal, session, err := checkSession(ctx, request.SessionID)
		if err == nil {
			return principal, session, nil
		}
		sessionErr = err
	}

	if request.Authorization != "" {
		principal, err := pipeline.tokens.Verify(request.Authorization)
		if err != nil {
			return nil, nil, err
		}
		return principal, nil, nil
	}

	if sessionErr != nil {
		return nil, nil, sessionErr
	}

	return nil, nil, Fail(KindUnauthenticated, "Authentication required")
}

func (pipeline *Pipeline) identifier(principal *sec.Principal, request Request) string {
	if principal != nil && principal.ID != "" {
		return principal.RateLimitIdentifier()
	}
	if request.ClientIP != "" {
		return request.ClientIP
	}
	return "unknown"
}

func (pipeline *Pipeline) verifyCSRF(ctx context.Context, request Request, result *Result) error {
	if request.HTTP != nil {
		if err := pipeline.csrf.VerifyReferrer(request.HTTP); err != nil {
			return err
		}
	}

	return pipeline.csrf.Verify(ctx, result.CSRFScope, request.CSRFToken, request.CSRFAction)
}

// withFreshToken attaches a new token to a CSRF failure.
func (pipeline *Pipeline) withFreshToken(ctx context.Context, csrfErr error, request Request, result *Result) error {
	appError := apperr.As(csrfErr)
	if appError == nil || appError.HTTPStatus != apperr.StatusCSRFExpired {
		return csrfErr
	}

	token, err := pipeline.csrf.Issue(ctx, result.CSRFScope, request.CSRFAction)
	if err != nil {
		pipeline.logger.WarnContext(ctx, "csrf_reissue_failed", slog.Any("error", err))
		return csrfErr
	}

	return appError.WithData("csrf_token", token)
}

func (pipeline *Pipeline) reject(ctx context.Context, stage string, err error) error {
	pipeline.recorder.RecordDecision(stage, outcomeRejected)

	level := slog.LevelInfo
	if KindOf(err) == KindInternal {
		level = slog.LevelError
	}

	attributes := []any{
		slog.String("stage", stage),
		slog.String("kind", string(KindOf(err))),
	}
	if appError := apperr.As(err); appError != nil && appError.Cause != nil {
		attributes = append(attributes, slog.Any("cause", appError.Cause))
	}

	pipeline.logger.Log(ctx, level, "security_request_rejected", attributes...)
	return err
}
