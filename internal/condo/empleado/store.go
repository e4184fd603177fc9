// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package empleado

import (
	"context"

	"github.com/condominio/condoadmin/internal/security"
)

type Repository interface {
	ListEmpleados(context context.Context, scope security.Predicate, f Filter, limit, offset int) ([]*Empleado, int, error)
	GetEmpleado(context context.Context, id int64) (*Empleado, error)
	CreateEmpleado(context context.Context, e *Empleado) error
	UpdateEmpleado(context context.Context, e *Empleado) error
	DeleteEmpleado(context context.Context, id int64) error
}

// FieldCipher encrypts contact fields before they reach the repository.
type FieldCipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}
