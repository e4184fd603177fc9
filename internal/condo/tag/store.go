// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package tag

import (
	"context"

	"github.com/condominio/condoadmin/internal/security"
)

type Repository interface {
	ListTags(context context.Context, scope security.Predicate, f Filter, limit, offset int) ([]*Tag, int, error)
	GetTag(context context.Context, id int64) (*Tag, error)
	GetTagByCodigo(context context.Context, condominioID int64, codigo string) (*Tag, error)
	CreateTag(context context.Context, t *Tag) error
	UpdateTag(context context.Context, t *Tag) error
	DeleteTag(context context.Context, id int64) error

	// CasaCondominio returns the condominium of a house.
	CasaCondominio(context context.Context, casaID int64) (int64, error)
}
