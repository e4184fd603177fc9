// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package security

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"

	"github.com/condominio/condoadmin/internal/platform/sec"
	"github.com/condominio/condoadmin/pkg/slice"
)

// condominiumFields are the payload and query names that carry a condominium id.
var condominiumFields = []string{"condominio_id", "id_condominio", "condominium_id", "condominioId"}

var condominiumPath = regexp.MustCompile(`/condominios/(\d+)`)

// Predicate is a SQL condition with its positional arguments.
type Predicate struct {
	Clause string
	Args   []any
}

// OwnershipAuthorizer confines non-admin principals to their condominium.
type OwnershipAuthorizer struct {
	settings OwnershipSettings
	logger   *slog.Logger
}

// NewOwnershipAuthorizer creates a new OwnershipAuthorizer.
func NewOwnershipAuthorizer(settings OwnershipSettings, logger *slog.Logger) *OwnershipAuthorizer {
	return &OwnershipAuthorizer{settings: settings, logger: logger}
}

// Protects reports whether the route addresses condominium-owned resources.
func (authorizer *OwnershipAuthorizer) Protects(route string) bool {
	return matchesPrefix(route, authorizer.settings.ProtectedPrefixes)
}

/*
Authorize checks that the principal may act on the condominium implicated
by the request.

Description: When resourceCondominiumID is nil the id is looked up in the
payload, then the /condominios/{id} path segment, then the query string.
If nothing is found the request is scoped to the principal's own
condominium, or rejected when the strict policy is enabled.

Parameters:
  - principal: The authenticated principal
  - resourceCondominiumID: Known owner of the target resource, if any
  - route: Request URI, query string included
  - payload: Decoded request body (may be nil)

Returns:
  - int64: The resolved condominium id (0 when unrestricted)
  - error: INVALID_PRINCIPAL, NO_CONDOMINIUM_ASSIGNED, CROSS_CONDOMINIUM_ACCESS
    or NO_CONDOMINIUM_RESOLVED
*/
func (authorizer *OwnershipAuthorizer) Authorize(ctx context.Context, principal *sec.Principal, resourceCondominiumID *int64, route string, payload map[string]any) (int64, error) {
	path, query := splitRoute(route)

	if !authorizer.Protects(path) {
		return 0, nil
	}

	if principal == nil {
		return 0, errMissingPrincipal()
	}
	if principal.Role == "" {
		return 0, Fail(KindInvalidPrincipal, "Principal has no role")
	}

	resolved, found := resolveCondominium(resourceCondominiumID, path, query, payload)

	if principal.IsAdmin() {
		return resolved, nil
	}

	if !principal.HasCondominium() {
		return 0, Fail(KindNoCondominiumAssigned, "No condominium assigned to this account")
	}

	if !found {
		if authorizer.settings.Strict {
			return 0, Fail(KindCondominiumUnresolved, "Target condominium could not be determined")
		}
		authorizer.logger.WarnContext(ctx, "ownership_condominium_unresolved",
			slog.String("route", path),
			slog.String("user_id", principal.ID),
			slog.Int64("scoped_to", principal.Condominium()),
		)
		return principal.Condominium(), nil
	}

	if resolved != principal.Condominium() {
		return 0, errCrossCondominium(principal, resolved)
	}

	return resolved, nil
}

// Owns checks a single known condominium id. Services call it with the
// owner of a stored record before mutating it.
func (authorizer *OwnershipAuthorizer) Owns(principal *sec.Principal, condominiumID int64) error {
	if principal == nil {
		return errMissingPrincipal()
	}
	if principal.IsAdmin() {
		return nil
	}
	if !principal.HasCondominium() {
		return Fail(KindNoCondominiumAssigned, "No condominium assigned to this account")
	}
	if condominiumID != principal.Condominium() {
		return errCrossCondominium(principal, condominiumID)
	}
	return nil
}

// VerifyMultiple passes only if every id belongs to the principal.
func (authorizer *OwnershipAuthorizer) VerifyMultiple(principal *sec.Principal, condominiumIDs []int64) error {
	for _, condominiumID := range condominiumIDs {
		if err := authorizer.Owns(principal, condominiumID); err != nil {
			return err
		}
	}
	return nil
}

// BuildFilterPredicate scopes a query to the principal's condominium.
// position is the placeholder index of the argument ($1, $2, ...).
func BuildFilterPredicate(principal *sec.Principal, column string, position int) Predicate {
	switch {
	case principal.IsAdmin():
		return Predicate{Clause: "1 = 1"}
	case !principal.HasCondominium():
		return Predicate{Clause: "1 = 0"}
	default:
		return Predicate{
			Clause: fmt.Sprintf("%s = $%d", column, position),
			Args:   []any{principal.Condominium()},
		}
	}
}

// FilterByOwnership keeps the items of the principal's condominium, in
// order. Admins get the full list.
func FilterByOwnership[T any](principal *sec.Principal, items []T, condominiumOf func(T) int64) []T {
	if principal.IsAdmin() {
		return items
	}
	if !principal.HasCondominium() {
		return []T{}
	}

	owned := slice.Filter(items, func(item T) bool {
		return condominiumOf(item) == principal.Condominium()
	})
	if owned == nil {
		return []T{}
	}
	return owned
}

// # Resolution

func resolveCondominium(explicit *int64, path string, query url.Values, payload map[string]any) (int64, bool) {
	if explicit != nil {
		return *explicit, true
	}

	for _, field := range condominiumFields {
		if raw, ok := payload[field]; ok {
			if id, ok := sec.ParseCondominiumID(raw); ok {
				return id, true
			}
		}
	}

	if match := condominiumPath.FindStringSubmatch(path); match != nil {
		if id, ok := sec.ParseCondominiumID(match[1]); ok {
			return id, true
		}
	}

	for _, field := range condominiumFields {
		if raw := query.Get(field); raw != "" {
			if id, ok := sec.ParseCondominiumID(raw); ok {
				return id, true
			}
		}
	}

	return 0, false
}

func splitRoute(route string) (string, url.Values) {
	parsed, err := url.ParseRequestURI(route)
	if err != nil {
		return route, url.Values{}
	}
	return parsed.Path, parsed.Query()
}

func errCrossCondominium(principal *sec.Principal, target int64) error {
	return Fail(KindCrossCondominium, "Access to another condominium is not allowed").
		WithCause(fmt.Errorf("user %s (condominium %d) targeted condominium %d", principal.ID, principal.Condominium(), target))
}
