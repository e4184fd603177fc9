// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package security

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/condominio/condoadmin/internal/platform/apperr"
	"github.com/condominio/condoadmin/internal/platform/ctxutil"
	requestutil "github.com/condominio/condoadmin/internal/platform/request"
	"github.com/condominio/condoadmin/internal/platform/respond"
	"github.com/condominio/condoadmin/internal/platform/sec"
	"github.com/condominio/condoadmin/pkg/query"
)

// Handler exposes the pipeline diagnostics to administrators.
type Handler struct {
	pipeline *Pipeline
}

// NewHandler constructs a new [Handler].
func NewHandler(pipeline *Pipeline) *Handler {
	return &Handler{pipeline: pipeline}
}

// RegisterRoutes mounts the diagnostics under an ADMIN-only guard.
//
// # Endpoints
//   - GET    /report                          : Soft check of a simulated request.
//   - GET    /rate-limits/{bucket}/{identifier} : Limiter state.
//   - DELETE /rate-limits/{bucket}/{identifier} : Clears the limiter state.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Use(handler.pipeline.Guard(RequireRoles(sec.RoleAdmin)))

	router.Get("/report", handler.report)
	router.Get("/rate-limits/{bucket}/{identifier}", handler.rateLimitStats)
	router.Delete("/rate-limits/{bucket}/{identifier}", handler.resetRateLimit)
}

/*
Report runs every stage against a simulated request and lists each outcome.

GET /api/security/report?method=POST&route=/api/casas/5&roles=ADMIN,RESIDENTE

Description: The caller's own credentials are evaluated. method and route
default to GET and this endpoint, roles to none.
*/
func (handler *Handler) report(writer http.ResponseWriter, request *http.Request) {
	parameters := request.URL.Query()
	target := request.Clone(request.Context())

	// 1. The guard may have rotated the session id behind the cookie
	if sessionID := ctxutil.GetSessionID(request.Context()); sessionID != "" {
		replaceCookie(target, handler.pipeline.settings.Session.CookieName, sessionID)
	}

	if method := strings.ToUpper(parameters.Get("method")); method != "" {
		target.Method = method
	}

	if route := parameters.Get("route"); route != "" {
		parsed, err := url.ParseRequestURI(route)
		if err != nil || !strings.HasPrefix(parsed.Path, "/") {
			respond.Error(writer, request, apperr.ValidationError("Invalid route", apperr.FieldError{
				Field: "route", Message: "Must be an absolute request path",
			}))
			return
		}
		target.URL = parsed
		target.RequestURI = route
	}

	var roles []sec.Role
	for _, name := range query.StringSlice(parameters.Get("roles")) {
		roles = append(roles, sec.ParseRole(name))
	}

	report, err := handler.pipeline.CheckHTTP(writer, target, RequireRoles(roles...))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, report)
}

// replaceCookie sets cookie name on target to value, keeping the other cookies.
func replaceCookie(target *http.Request, name, value string) {
	cookies := target.Cookies()
	target.Header.Del("Cookie")
	for _, cookie := range cookies {
		if cookie.Name != name {
			target.AddCookie(cookie)
		}
	}
	target.AddCookie(&http.Cookie{Name: name, Value: value})
}

func (handler *Handler) rateLimitStats(writer http.ResponseWriter, request *http.Request) {
	bucket, identifier, err := handler.limitTarget(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	stats, err := handler.pipeline.Limiter().Stats(request.Context(), identifier, bucket)
	if err != nil {
		respond.Error(writer, request, errInternal(err))
		return
	}

	respond.OK(writer, stats)
}

func (handler *Handler) resetRateLimit(writer http.ResponseWriter, request *http.Request) {
	bucket, identifier, err := handler.limitTarget(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.pipeline.Limiter().Reset(request.Context(), identifier, bucket); err != nil {
		respond.Error(writer, request, errInternal(err))
		return
	}

	ctxutil.GetLogger(request.Context()).InfoContext(request.Context(), "rate_limit_reset",
		slog.String("bucket", bucket),
		slog.String("identifier", identifier),
	)
	respond.NoContent(writer)
}

// limitTarget reads the bucket and identifier path parameters. Only
// configured buckets are addressable.
func (handler *Handler) limitTarget(request *http.Request) (string, string, error) {
	bucket := requestutil.Param(request, "bucket")
	identifier := requestutil.Param(request, "identifier")

	if _, ok := handler.pipeline.settings.RateLimiting.Buckets[bucket]; !ok {
		return "", "", apperr.NotFound("Rate limit bucket")
	}
	if identifier == "" {
		return "", "", apperr.ValidationError("Identifier is required", apperr.FieldError{
			Field: "identifier", Message: "Required",
		})
	}
	return bucket, identifier, nil
}
