// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

/*
Package convert reads loosely typed query string values.

Malformed input yields the caller's default instead of an error. Handlers that
must reject bad input use [strconv] directly.
*/
package convert

import "strconv"

// ToBool parses "true", "1", "false", "0" and friends. Anything else is false.
func ToBool(s string) bool {
	v, err := strconv.ParseBool(s)
	return err == nil && v
}

// ToIntD parses s as a base-10 int, returning def when s is empty or malformed.
func ToIntD(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
