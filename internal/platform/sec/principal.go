// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package sec

import "strconv"

// Principal is the authenticated actor of the current request.
//
// It is rebuilt on every request from the session or the bearer token and
// is never persisted.
type Principal struct {
	ID            string `json:"id"`
	Role          Role   `json:"role"`
	CondominiumID *int64 `json:"condominium_id,omitempty"`
	DisplayName   string `json:"display_name"`
}

// IsAdmin reports whether the principal holds the global administrator role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// HasCondominium reports whether the principal is bound to a condominium.
func (p *Principal) HasCondominium() bool {
	return p != nil && p.CondominiumID != nil
}

// Condominium returns the bound condominium id, or 0 when absent.
func (p *Principal) Condominium() int64 {
	if p == nil || p.CondominiumID == nil {
		return 0
	}
	return *p.CondominiumID
}

// Map renders the principal as the plain object returned to callers of the
// security pipeline.
func (p *Principal) Map() map[string]any {
	out := map[string]any{
		"user_id":      p.ID,
		"user_type":    p.Role.String(),
		"rol":          p.Role.String(),
		"display_name": p.DisplayName,
	}
	if p.CondominiumID != nil {
		out["condominio_id"] = *p.CondominiumID
	}
	return out
}

// RateLimitIdentifier is the identity used for rate limiting authenticated callers.
func (p *Principal) RateLimitIdentifier() string {
	return "user_" + p.ID
}

// ParseCondominiumID converts the loosely typed value found in sessions,
// tokens and payloads into a condominium id. It accepts JSON numbers,
// integers and numeric strings.
func ParseCondominiumID(raw any) (int64, bool) {
	switch value := raw.(type) {
	case int:
		return int64(value), true
	case int32:
		return int64(value), true
	case int64:
		return value, true
	case float64:
		if value != float64(int64(value)) {
			return 0, false
		}
		return int64(value), true
	case string:
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
