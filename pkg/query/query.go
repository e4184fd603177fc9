// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

// Package query parses multi-valued query string parameters.
package query

import "strings"

// StringSlice splits a comma-separated value ("LECTOR, PLUMA") into trimmed,
// non-empty items. An empty value yields nil.
func StringSlice(val string) []string {
	var items []string
	for item := range strings.SplitSeq(val, ",") {
		if clean := strings.TrimSpace(item); clean != "" {
			items = append(items, clean)
		}
	}
	return items
}
