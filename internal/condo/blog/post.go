// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

// Package blog manages the notice board of a condominium. Posts target an
// audience and stay hidden from non-admins until published.
package blog

import (
	"time"

	"github.com/condominio/condoadmin/internal/platform/sec"
)

// Resource is the name of this entity in the permission matrix.
const Resource = "blog"

// Audience values
const (
	AudienceAll       = "TODOS"
	AudienceResidents = "RESIDENTES"
	AudienceStaff     = "EMPLEADOS"
)

type Post struct {
	ID           int64     `json:"id"`
	CondominioID int64     `json:"condominio_id"`
	AutorID      int64     `json:"autor_id"`
	Titulo       string    `json:"titulo"`
	Slug         string    `json:"slug"`
	Contenido    string    `json:"contenido"`
	Audiencia    string    `json:"audiencia"`
	Publicado    bool      `json:"publicado"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Filter holds the parameters for a paginated post search.
type Filter struct {
	Query        string
	CondominioID int64

	// Audiences and OnlyPublished are set by the service from the caller's role.
	Audiences     []string
	OnlyPublished bool
}

// AudiencesFor returns the audiences a role may read. Nil means all.
func AudiencesFor(role sec.Role) []string {
	switch role {
	case sec.RoleAdmin:
		return nil
	case sec.RoleResidente:
		return []string{AudienceAll, AudienceResidents}
	default:
		return []string{AudienceAll, AudienceStaff}
	}
}

// Global field names for validation
const (
	FieldTitulo    = "titulo"
	FieldSlug      = "slug"
	FieldContenido = "contenido"
	FieldAudiencia = "audiencia"
)
