// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package security

import "github.com/condominio/condoadmin/internal/platform/sec"

// Authorizer is what domain services consult once a request is past the
// guard: record-level ownership, list scoping and per-resource permissions.
type Authorizer interface {
	Owns(principal *sec.Principal, condominiumID int64) error
	Predicate(principal *sec.Principal, column string, position int) Predicate
	CanPerformAction(principal *sec.Principal, action, resource string) bool
}

var _ Authorizer = (*Pipeline)(nil)

// Owns reports whether the principal may touch a record of condominiumID.
func (pipeline *Pipeline) Owns(principal *sec.Principal, condominiumID int64) error {
	return pipeline.ownership.Owns(principal, condominiumID)
}

// Predicate scopes a list query to the principal's condominium.
func (pipeline *Pipeline) Predicate(principal *sec.Principal, column string, position int) Predicate {
	return BuildFilterPredicate(principal, column, position)
}

// CanPerformAction checks the permission policy for one resource.
func (pipeline *Pipeline) CanPerformAction(principal *sec.Principal, action, resource string) bool {
	if principal == nil {
		return false
	}
	return pipeline.roles.CanPerformAction(principal, action, resource)
}
