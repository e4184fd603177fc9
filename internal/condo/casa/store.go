// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package casa

import (
	"context"

	"github.com/condominio/condoadmin/internal/security"
)

type Repository interface {
	ListCasas(context context.Context, scope security.Predicate, f Filter, limit, offset int) ([]*Casa, int, error)
	GetCasa(context context.Context, id int64) (*Casa, error)
	CreateCasa(context context.Context, c *Casa) error
	UpdateCasa(context context.Context, c *Casa) error
	DeleteCasa(context context.Context, id int64) error

	// CalleCondominio returns the condominium of a street.
	CalleCondominio(context context.Context, calleID int64) (int64, error)
}
