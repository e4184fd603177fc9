// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package security

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/condominio/condoadmin/internal/platform/apperr"
	"github.com/condominio/condoadmin/internal/platform/sec"
)

// Kind identifies a security failure. It is the AppError Code.
type Kind string

// # Failure Taxonomy

const (
	// Authentication (401)
	KindNoSession        Kind = "NO_SESSION"
	KindSessionExpired   Kind = "SESSION_EXPIRED"
	KindNoToken          Kind = "NO_TOKEN"
	KindMalformedToken   Kind = "MALFORMED_TOKEN"
	KindInvalidSignature Kind = "INVALID_SIGNATURE"
	KindTokenExpired     Kind = "TOKEN_EXPIRED"
	KindUnauthenticated  Kind = "UNAUTHENTICATED"

	// Rate limiting (429)
	KindRateLimited Kind = "RATE_LIMITED"

	// Anti-forgery (419)
	KindCSRFNotFound        Kind = "CSRF_TOKEN_NOT_FOUND"
	KindCSRFExpired         Kind = "CSRF_TOKEN_EXPIRED"
	KindCSRFMismatch        Kind = "CSRF_TOKEN_MISMATCH"
	KindCSRFInvalidReferrer Kind = "CSRF_INVALID_REFERRER"

	// Authorization (403, or 401 for a missing principal)
	KindInvalidPrincipal      Kind = "INVALID_PRINCIPAL"
	KindInsufficientRole      Kind = "INSUFFICIENT_ROLE"
	KindNoCondominiumAssigned Kind = "NO_CONDOMINIUM_ASSIGNED"
	KindCrossCondominium      Kind = "CROSS_CONDOMINIUM_ACCESS"
	KindCondominiumUnresolved Kind = "NO_CONDOMINIUM_RESOLVED"

	KindInternal Kind = "INTERNAL_ERROR"
)

var kindStatus = map[Kind]int{
	KindNoSession:             http.StatusUnauthorized,
	KindSessionExpired:        http.StatusUnauthorized,
	KindNoToken:               http.StatusUnauthorized,
	KindMalformedToken:        http.StatusUnauthorized,
	KindInvalidSignature:      http.StatusUnauthorized,
	KindTokenExpired:          http.StatusUnauthorized,
	KindUnauthenticated:       http.StatusUnauthorized,
	KindRateLimited:           http.StatusTooManyRequests,
	KindCSRFNotFound:          apperr.StatusCSRFExpired,
	KindCSRFExpired:           apperr.StatusCSRFExpired,
	KindCSRFMismatch:          apperr.StatusCSRFExpired,
	KindCSRFInvalidReferrer:   apperr.StatusCSRFExpired,
	KindInvalidPrincipal:      http.StatusForbidden,
	KindInsufficientRole:      http.StatusForbidden,
	KindNoCondominiumAssigned: http.StatusForbidden,
	KindCrossCondominium:      http.StatusForbidden,
	KindCondominiumUnresolved: http.StatusForbidden,
	KindInternal:              http.StatusInternalServerError,
}

// Fail builds the AppError for a failure kind.
func Fail(kind Kind, message string) *apperr.AppError {
	status, ok := kindStatus[kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	return apperr.New(string(kind), message, status)
}

// KindOf extracts the failure kind from err. It returns "" for nil and
// errors that did not originate in this package.
func KindOf(err error) Kind {
	appError := apperr.As(err)
	if appError == nil {
		return ""
	}
	if _, known := kindStatus[Kind(appError.Code)]; !known {
		return ""
	}
	return Kind(appError.Code)
}

// # Specific Constructors

// errRateLimited carries the retry hint in both the header and the body.
func errRateLimited(retryAfterSeconds int) *apperr.AppError {
	failure := Fail(KindRateLimited, fmt.Sprintf("Too many requests. Try again in %d seconds.", retryAfterSeconds))
	failure.RetryAfter = retryAfterSeconds
	return failure
}

// errMissingPrincipal reflects a missing authentication context, hence 401.
func errMissingPrincipal() *apperr.AppError {
	failure := Fail(KindInvalidPrincipal, "Authentication required")
	failure.HTTPStatus = http.StatusUnauthorized
	return failure
}

func errInsufficientRole(role sec.Role, required []sec.Role) *apperr.AppError {
	names := make([]string, len(required))
	for index, candidate := range required {
		names[index] = candidate.String()
	}

	return Fail(KindInsufficientRole, "Insufficient permissions for this resource").
		WithData("user_role", role.String()).
		WithData("required_roles", names).
		WithCause(fmt.Errorf("role %s not in [%s]", role, strings.Join(names, ", ")))
}

func errInternal(cause error) *apperr.AppError {
	return Fail(KindInternal, "An unexpected error occurred").WithCause(cause)
}
