// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

// Package casa manages the houses of a condominium.
package casa

import "time"

// Resource is the name of this entity in the permission matrix.
const Resource = "casas"

// Casa is a house on a street. Its condominium always equals the street's.
type Casa struct {
	ID           int64     `json:"id"`
	CondominioID int64     `json:"condominio_id"`
	CalleID      int64     `json:"calle_id"`
	Numero       string    `json:"numero"`
	Interior     *string   `json:"interior"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Filter holds the parameters for a paginated house search.
type Filter struct {
	CalleID      int64
	CondominioID int64
}

// Global field names for validation
const (
	FieldCalleID  = "calle_id"
	FieldNumero   = "numero"
	FieldInterior = "interior"
)
