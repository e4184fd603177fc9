// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package areacomun

import (
	"context"

	"github.com/condominio/condoadmin/internal/security"
)

type Repository interface {
	ListAreas(context context.Context, scope security.Predicate, f Filter, limit, offset int) ([]*AreaComun, int, error)
	GetArea(context context.Context, id int64) (*AreaComun, error)
	CreateArea(context context.Context, area *AreaComun) error
	UpdateArea(context context.Context, area *AreaComun) error
	DeleteArea(context context.Context, id int64) error
}
