// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package sec

import "strings"

// # User Roles

// Role represents the authorization level granted to an account.
type Role string

const (
	// Global administrator. Not bound to a condominium.
	RoleAdmin Role = "ADMIN"

	// Resident of a condominium.
	RoleResidente Role = "RESIDENTE"

	// Staff member working for a condominium.
	RoleEmpleado Role = "EMPLEADO"
)

// # Role Hierarchy

// Level maps a role to its position in the hierarchy. Unknown roles map to 0.
func (r Role) Level() int {
	switch r {
	case RoleAdmin:
		return 3
	case RoleResidente:
		return 2
	case RoleEmpleado:
		return 1
	default:
		return 0
	}
}

// Valid reports whether the role belongs to the fixed hierarchy.
func (r Role) Valid() bool {
	return r.Level() > 0
}

// AtLeast checks if the current role meets or exceeds the required target role.
func (r Role) AtLeast(target Role) bool {
	return r.Valid() && r.Level() >= target.Level()
}

// String returns the canonical upper-case name.
func (r Role) String() string {
	return string(r)
}

// ParseRole normalizes a stored or transmitted role name ("admin",
// "Residente", "EMPLEADO"). Unknown names return a role for which Valid is false.
func ParseRole(raw string) Role {
	return Role(strings.ToUpper(strings.TrimSpace(raw)))
}
