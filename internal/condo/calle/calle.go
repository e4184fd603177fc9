// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

// Package calle manages the streets of a condominium.
package calle

import "time"

// Resource is the name of this entity in the permission matrix.
const Resource = "calles"

// Calle is a street inside a condominium. Houses hang off it.
type Calle struct {
	ID           int64     `json:"id"`
	CondominioID int64     `json:"condominio_id"`
	Nombre       string    `json:"nombre"`
	Descripcion  *string   `json:"descripcion"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Filter holds the parameters for a paginated street search.
type Filter struct {
	Query        string
	CondominioID int64
}

// Global field names for validation
const (
	FieldNombre      = "nombre"
	FieldDescripcion = "descripcion"
)
