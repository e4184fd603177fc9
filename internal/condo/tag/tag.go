// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

// Package tag manages the RFID access tags issued to houses.
package tag

import (
	"regexp"
	"strings"
	"time"
)

// Resource is the name of this entity in the permission matrix.
const Resource = "tags"

type Tag struct {
	ID           int64     `json:"id"`
	CondominioID int64     `json:"condominio_id"`
	CasaID       int64     `json:"casa_id"`
	Codigo       string    `json:"codigo"`
	Activo       bool      `json:"activo"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Filter struct {
	CasaID       int64
	CondominioID int64
	OnlyActive   bool
}

// codeRegex matches the printed serial of a tag after normalization.
var codeRegex = regexp.MustCompile(`^[A-F0-9]{8,32}$`)

// NormalizeCode uppercases a serial and drops separators readers insert.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.NewReplacer(" ", "", ":", "", "-", "").Replace(strings.TrimSpace(code)))
}

// Global field names for validation
const (
	FieldCasaID = "casa_id"
	FieldCodigo = "codigo"
)
