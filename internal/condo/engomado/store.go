// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package engomado

import (
	"context"

	"github.com/condominio/condoadmin/internal/security"
)

type Repository interface {
	ListEngomados(context context.Context, scope security.Predicate, f Filter, limit, offset int) ([]*Engomado, int, error)
	GetEngomado(context context.Context, id int64) (*Engomado, error)
	CreateEngomado(context context.Context, e *Engomado) error
	UpdateEngomado(context context.Context, e *Engomado) error
	DeleteEngomado(context context.Context, id int64) error

	// CasaCondominio returns the condominium of a house.
	CasaCondominio(context context.Context, casaID int64) (int64, error)
}
