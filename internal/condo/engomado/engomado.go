// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

// Package engomado manages the vehicle stickers issued to houses for gate access.
package engomado

import (
	"strings"
	"time"
)

// Resource is the name of this entity in the permission matrix.
const Resource = "engomados"

type Engomado struct {
	ID           int64     `json:"id"`
	CondominioID int64     `json:"condominio_id"`
	CasaID       int64     `json:"casa_id"`
	Placa        string    `json:"placa"`
	Marca        *string   `json:"marca"`
	Color        *string   `json:"color"`
	Activo       bool      `json:"activo"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Filter struct {
	CasaID       int64
	CondominioID int64
	Placa        string
}

// NormalizePlate uppercases a plate and drops spaces.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(plate), " ", ""))
}

// Global field names for validation
const (
	FieldCasaID = "casa_id"
	FieldPlaca  = "placa"
	FieldMarca  = "marca"
	FieldColor  = "color"
)
