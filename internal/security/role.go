// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package security

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/condominio/condoadmin/internal/platform/sec"
)

// # Permission Matrix

//go:embed permissions.conf
var permissionModel string

//go:embed permissions.csv
var permissionPolicy string

// Actions of the permission matrix.
const (
	ActionRead   = "read"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// RoleAuthorizer checks principals against required role sets and the
// action x resource permission matrix.
type RoleAuthorizer struct {
	settings RoleSettings
	enforcer *casbin.SyncedEnforcer
}

// NewRoleAuthorizer loads the embedded permission matrix.
func NewRoleAuthorizer(settings RoleSettings) (*RoleAuthorizer, error) {
	permissions, err := model.NewModelFromString(permissionModel)
	if err != nil {
		return nil, fmt.Errorf("security: load permission model: %w", err)
	}

	enforcer, err := casbin.NewSyncedEnforcer(permissions)
	if err != nil {
		return nil, fmt.Errorf("security: create enforcer: %w", err)
	}

	if err := loadPolicy(enforcer, permissionPolicy); err != nil {
		return nil, err
	}

	return &RoleAuthorizer{settings: settings, enforcer: enforcer}, nil
}

// loadPolicy parses "p, sub, obj, act" and "g, child, parent" lines.
func loadPolicy(enforcer *casbin.SyncedEnforcer, policy string) error {
	for _, line := range strings.Split(policy, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ",")
		for index := range parts {
			parts[index] = strings.TrimSpace(parts[index])
		}

		var err error
		switch {
		case parts[0] == "p" && len(parts) == 4:
			_, err = enforcer.AddPolicy(parts[1], parts[2], parts[3])
		case parts[0] == "g" && len(parts) == 3:
			_, err = enforcer.AddGroupingPolicy(parts[1], parts[2])
		default:
			err = fmt.Errorf("unrecognized rule %q", line)
		}
		if err != nil {
			return fmt.Errorf("security: load permission policy: %w", err)
		}
	}
	return nil
}

// RequiredFor returns the role set for a route. A configured route prefix
// overrides whatever the handler asked for.
func (authorizer *RoleAuthorizer) RequiredFor(route string, requested []sec.Role) []sec.Role {
	for _, mapping := range authorizer.settings.RouteRoles {
		if strings.HasPrefix(route, mapping.Prefix) {
			return mapping.Roles
		}
	}
	return requested
}

/*
Authorize checks the principal's role.

Description: ADMIN always passes. Otherwise the role must equal one of the
required roles or rank at least as high in the hierarchy
EMPLEADO < RESIDENTE < ADMIN.

Returns:
  - error: INVALID_PRINCIPAL or INSUFFICIENT_ROLE
*/
func (authorizer *RoleAuthorizer) Authorize(principal *sec.Principal, required []sec.Role, route string) error {
	if principal == nil {
		return errMissingPrincipal()
	}
	if !principal.Role.Valid() {
		return Fail(KindInvalidPrincipal, "Unrecognized role")
	}

	required = authorizer.RequiredFor(route, required)
	if len(required) == 0 || principal.IsAdmin() {
		return nil
	}

	for _, role := range required {
		if principal.Role == role || principal.Role.AtLeast(role) {
			return nil
		}
	}

	return errInsufficientRole(principal.Role, required)
}

// CanPerformAction consults the permission matrix. ADMIN is always allowed.
func (authorizer *RoleAuthorizer) CanPerformAction(principal *sec.Principal, action, resource string) bool {
	if principal == nil || !principal.Role.Valid() {
		return false
	}
	if principal.IsAdmin() {
		return true
	}

	allowed, err := authorizer.enforcer.Enforce(principal.Role.String(), resource, action)
	return err == nil && allowed
}

// IsAdmin reports whether the principal is a global administrator.
func IsAdmin(principal *sec.Principal) bool {
	return principal.IsAdmin()
}

// IsResident reports whether the principal is a resident.
func IsResident(principal *sec.Principal) bool {
	return principal != nil && principal.Role == sec.RoleResidente
}

// IsEmployee reports whether the principal is a staff member.
func IsEmployee(principal *sec.Principal) bool {
	return principal != nil && principal.Role == sec.RoleEmpleado
}
