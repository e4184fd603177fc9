// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package security

import (
	"context"

	"github.com/condominio/condoadmin/internal/platform/apperr"
	"github.com/condominio/condoadmin/internal/platform/sec"
)

// StageReport is the outcome of one stage in a soft check.
type StageReport struct {
	Stage   string `json:"stage"`
	Passed  bool   `json:"passed"`
	Skipped bool   `json:"skipped,omitempty"`
	Code    Kind   `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// Report is the composite result of [Pipeline.Check].
type Report struct {
	Authorized bool           `json:"authorized"`
	Principal  map[string]any `json:"principal,omitempty"`
	Stages     []StageReport  `json:"stages"`
}

func (report *Report) add(stage string, err error) {
	entry := StageReport{Stage: stage, Passed: err == nil}
	if appError := apperr.As(err); appError != nil {
		entry.Code = Kind(appError.Code)
		entry.Message = appError.Message
	}
	report.Stages = append(report.Stages, entry)
	if err != nil {
		report.Authorized = false
	}
}

func (report *Report) skip(stage string) {
	report.Stages = append(report.Stages, StageReport{Stage: stage, Passed: true, Skipped: true})
}

/*
Check evaluates every stage regardless of earlier failures.

Description: Nothing is written. The limiter is read, not incremented,
single-use CSRF tokens stay valid and the session is neither rotated nor
refreshed.
*/
func (pipeline *Pipeline) Check(ctx context.Context, request Request) Report {
	path, _ := splitRoute(request.Route)
	report := Report{Authorized: true}

	// 1. Authentication
	var principal *sec.Principal
	var scope string
	if matchesPrefix(path, pipeline.settings.PublicRoutes) {
		report.skip(StageAuthentication)
	} else {
		resolved, session, err := pipeline.authenticate(ctx, request, pipeline.sessions.Inspect)
		report.add(StageAuthentication, err)
		if err == nil {
			principal = resolved
			scope = CSRFScope(session, resolved)
			report.Principal = resolved.Map()
		}
	}

	// 2. Rate limiting
	if pipeline.limiter.Enabled() {
		bucket := pipeline.limiter.ResolveBucket(path, request.Bucket)
		report.add(StageRateLimit, pipeline.peekRateLimit(ctx, pipeline.identifier(principal, request), bucket))
	} else {
		report.skip(StageRateLimit)
	}

	// 3. Anti-forgery
	if pipeline.csrf.Applies(request.Method, path) {
		var err error
		if request.HTTP != nil {
			err = pipeline.csrf.VerifyReferrer(request.HTTP)
		}
		if err == nil {
			err = pipeline.csrf.Inspect(ctx, scope, request.CSRFToken, request.CSRFAction)
		}
		report.add(StageCSRF, err)
	} else {
		report.skip(StageCSRF)
	}

	// 4. Roles
	if required := pipeline.roles.RequiredFor(path, request.RequiredRoles); len(required) > 0 {
		report.add(StageRole, pipeline.roles.Authorize(principal, required, path))
	} else {
		report.skip(StageRole)
	}

	// 5. Ownership
	_, err := pipeline.ownership.Authorize(ctx, principal, request.ResourceCondominiumID, request.Route, request.Payload)
	report.add(StageOwnership, err)

	return report
}

// peekRateLimit predicts whether the next request would be admitted.
func (pipeline *Pipeline) peekRateLimit(ctx context.Context, identifier, bucket string) error {
	stats, err := pipeline.limiter.Stats(ctx, identifier, bucket)
	if err != nil {
		// Same fail-open policy as Consume.
		return nil
	}

	now := pipeline.now()
	if stats.Blocked && stats.BlockedUntil != nil {
		return errRateLimited(secondsUntil(now, *stats.BlockedUntil))
	}
	if stats.Remaining <= 0 && stats.Count > 0 {
		return errRateLimited(int(pipeline.limiter.Config(bucket).Lockout.Seconds()))
	}
	return nil
}
