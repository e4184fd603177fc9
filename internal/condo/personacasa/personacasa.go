// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

// Package personacasa links users to the houses they own, rent or live in.
package personacasa

import "time"

// Resource is the name of this entity in the permission matrix.
const Resource = "persona_casa"

// Relation values
const (
	RelacionPropietario = "PROPIETARIO"
	RelacionInquilino   = "INQUILINO"
	RelacionFamiliar    = "FAMILIAR"
)

// PersonaCasa is one assignment. Nombre and Email are read from the user
// record and ignored on input.
type PersonaCasa struct {
	ID           int64     `json:"id"`
	CondominioID int64     `json:"condominio_id"`
	CasaID       int64     `json:"casa_id"`
	UsuarioID    int64     `json:"usuario_id"`
	Relacion     string    `json:"relacion"`
	Nombre       string    `json:"nombre,omitempty"`
	Email        string    `json:"email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Global field names for validation
const (
	FieldCasaID    = "casa_id"
	FieldUsuarioID = "usuario_id"
	FieldRelacion  = "relacion"
)
