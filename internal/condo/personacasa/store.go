// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package personacasa

import "context"

type Repository interface {
	ListByCasa(context context.Context, casaID int64) ([]*PersonaCasa, error)
	GetAssignment(context context.Context, id int64) (*PersonaCasa, error)
	CreateAssignment(context context.Context, assignment *PersonaCasa) error
	DeleteAssignment(context context.Context, id int64) error

	// CasaCondominio returns the condominium of a house.
	CasaCondominio(context context.Context, casaID int64) (int64, error)

	// UsuarioCondominio returns the condominium of a user, nil for global accounts.
	UsuarioCondominio(context context.Context, usuarioID int64) (*int64, error)
}
