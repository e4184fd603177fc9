// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

// Package empleado manages the staff of a condominium (guards, cleaning,
// maintenance). Contact fields are encrypted at rest.
package empleado

import "time"

// Resource is the name of this entity in the permission matrix.
const Resource = "empleados"

// Empleado carries plaintext contact fields above the service and
// ciphertext below it.
type Empleado struct {
	ID           int64     `json:"id"`
	CondominioID int64     `json:"condominio_id"`
	Nombre       string    `json:"nombre"`
	Puesto       string    `json:"puesto"`
	Email        string    `json:"email"`
	Telefono     string    `json:"telefono"`
	Activo       bool      `json:"activo"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Filter struct {
	Query        string
	CondominioID int64
	Puesto       string
}

// Global field names for validation
const (
	FieldNombre   = "nombre"
	FieldPuesto   = "puesto"
	FieldEmail    = "email"
	FieldTelefono = "telefono"
)
