// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package calle

import (
	"context"

	"github.com/condominio/condoadmin/internal/security"
)

type Repository interface {
	ListCalles(context context.Context, scope security.Predicate, f Filter, limit, offset int) ([]*Calle, int, error)
	GetCalle(context context.Context, id int64) (*Calle, error)
	CreateCalle(context context.Context, c *Calle) error
	UpdateCalle(context context.Context, c *Calle) error
	DeleteCalle(context context.Context, id int64) error
}
