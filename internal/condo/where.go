// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package condo

import (
	"fmt"
	"strings"

	"github.com/condominio/condoadmin/internal/security"
)

// Where accumulates a WHERE clause with positional arguments. It always
// starts from an ownership predicate, so a list query cannot forget it.
type Where struct {
	conditions []string
	args       []any
}

// NewWhere starts from the ownership predicate. The predicate must use $1.
func NewWhere(scope security.Predicate) *Where {
	return &Where{
		conditions: []string{scope.Clause},
		args:       append([]any{}, scope.Args...),
	}
}

// And adds a condition. format holds one %s that becomes the placeholder of value.
func (where *Where) And(format string, value any) *Where {
	where.args = append(where.args, value)
	where.conditions = append(where.conditions, fmt.Sprintf(format, fmt.Sprintf("$%d", len(where.args))))
	return where
}

// AndIf adds the condition only when ok.
func (where *Where) AndIf(ok bool, format string, value any) *Where {
	if ok {
		return where.And(format, value)
	}
	return where
}

// String renders the conditions joined by AND.
func (where *Where) String() string {
	return strings.Join(where.conditions, " AND ")
}

// Args returns the arguments of the conditions.
func (where *Where) Args() []any {
	return where.args
}

// Page renders the LIMIT / OFFSET suffix and the full argument list for it.
func (where *Where) Page(limit, offset int) (string, []any) {
	position := len(where.args)
	suffix := fmt.Sprintf(" LIMIT $%d OFFSET $%d", position+1, position+2)

	args := make([]any, 0, position+2)
	args = append(args, where.args...)
	return suffix, append(args, limit, offset)
}
