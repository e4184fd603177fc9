// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

/*
Package condo holds what the per-entity admin services share.

Every record in the sub-packages (calles, casas, empleados, ...) belongs to
exactly one condominium. Services here never trust the request alone: the
pipeline has already matched the payload against the caller, and the
services re-check the owner of the stored record before reading or
mutating it.

# Layout

  - Actions: the vocabulary of the action x resource permission matrix.
  - ResolveOwner: the condominium a new record is written into.
  - Where: a WHERE clause builder that starts from the ownership predicate.
*/
package condo

import (
	"fmt"

	"github.com/condominio/condoadmin/internal/platform/apperr"
	"github.com/condominio/condoadmin/internal/platform/sec"
	"github.com/condominio/condoadmin/internal/platform/validate"
	"github.com/condominio/condoadmin/internal/security"
)

// # Actions

const (
	ActionRead   = "read"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// FieldCondominioID is the JSON name of the owner field on every entity.
const FieldCondominioID = "condominio_id"

// Permit turns a denied action into INSUFFICIENT_ROLE.
func Permit(authorizer security.Authorizer, principal *sec.Principal, action, resource string) error {
	if principal == nil {
		return apperr.Unauthorized("Authentication required")
	}
	if !authorizer.CanPerformAction(principal, action, resource) {
		return security.Fail(security.KindInsufficientRole,
			fmt.Sprintf("Role %s may not %s %s", principal.Role, action, resource))
	}
	return nil
}

/*
ResolveOwner picks the condominium a new record is written into.

Description: Administrators are not bound to a condominium and must name
one. Everyone else writes into their own; naming another one is a
cross-condominium attempt.

Returns:
  - int64: The owning condominium
  - error: VALIDATION_ERROR, NO_CONDOMINIUM_ASSIGNED or CROSS_CONDOMINIUM_ACCESS
*/
func ResolveOwner(authorizer security.Authorizer, principal *sec.Principal, requested int64) (int64, error) {
	if principal.IsAdmin() {
		if requested <= 0 {
			return 0, validate.RequiredError(FieldCondominioID, "Required for administrators")
		}
		return requested, nil
	}

	if requested == 0 {
		requested = principal.Condominium()
	}
	if err := authorizer.Owns(principal, requested); err != nil {
		return 0, err
	}
	return requested, nil
}

// Load fetches a stored record and checks that the caller owns it.
func Load[T any](authorizer security.Authorizer, principal *sec.Principal, fetch func() (T, error), condominiumOf func(T) int64) (T, error) {
	record, err := fetch()
	if err != nil {
		var zero T
		return zero, err
	}
	if err := authorizer.Owns(principal, condominiumOf(record)); err != nil {
		var zero T
		return zero, err
	}
	return record, nil
}

// InheritOwner returns the condominium of a parent record (the street of a
// house, the house of a sticker) after checking the caller owns it. A
// requested owner that disagrees with the parent fails on parentField.
func InheritOwner(authorizer security.Authorizer, principal *sec.Principal, requested, parentOwner int64, parentField string) (int64, error) {
	if err := authorizer.Owns(principal, parentOwner); err != nil {
		return 0, err
	}
	if requested != 0 && requested != parentOwner {
		return 0, apperr.ValidationError("Referenced record belongs to another condominium", apperr.FieldError{
			Field:   parentField,
			Message: "Must belong to the same condominium",
		})
	}
	return parentOwner, nil
}
