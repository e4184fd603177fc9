// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

// Package dispositivo manages the access hardware installed in a
// condominium: tag readers, gate barriers, cameras and panels.
// Only administrators reach it.
package dispositivo

import "time"

// Resource is the name of this entity in the permission matrix.
const Resource = "dispositivos"

// Device types
const (
	TipoLector = "LECTOR"
	TipoPluma  = "PLUMA"
	TipoCamara = "CAMARA"
	TipoPanel  = "PANEL"
)

var Tipos = []string{TipoLector, TipoPluma, TipoCamara, TipoPanel}

type Dispositivo struct {
	ID           int64     `json:"id"`
	CondominioID int64     `json:"condominio_id"`
	Nombre       string    `json:"nombre"`
	Tipo         string    `json:"tipo"`
	Ubicacion    *string   `json:"ubicacion"`
	Activo       bool      `json:"activo"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CondominiumOf is the owner accessor used for in-process filtering.
func CondominiumOf(d *Dispositivo) int64 {
	return d.CondominioID
}

type Filter struct {
	CondominioID int64
	Tipos        []string
	OnlyActive   bool
}

// Global field names for validation
const (
	FieldNombre    = "nombre"
	FieldTipo      = "tipo"
	FieldUbicacion = "ubicacion"
)
