// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

// Package areacomun manages shared amenities (pool, gym, event hall) and
// their opening hours.
package areacomun

import "time"

// Resource is the name of this entity in the permission matrix.
const Resource = "areas_comunes"

// ClockLayout is the wire format of opening and closing times.
const ClockLayout = "15:04"

type AreaComun struct {
	ID           int64     `json:"id"`
	CondominioID int64     `json:"condominio_id"`
	Nombre       string    `json:"nombre"`
	Descripcion  *string   `json:"descripcion"`
	Capacidad    int       `json:"capacidad"`
	HoraApertura string    `json:"hora_apertura"`
	HoraCierre   string    `json:"hora_cierre"`
	Activa       bool      `json:"activa"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// OpenAt reports whether the area is active and open at the wall-clock time of t.
func (area *AreaComun) OpenAt(t time.Time) bool {
	if !area.Activa {
		return false
	}
	opens, errOpen := time.Parse(ClockLayout, area.HoraApertura)
	closes, errClose := time.Parse(ClockLayout, area.HoraCierre)
	if errOpen != nil || errClose != nil {
		return false
	}

	minute := t.Hour()*60 + t.Minute()
	return minute >= opens.Hour()*60+opens.Minute() && minute < closes.Hour()*60+closes.Minute()
}

type Filter struct {
	Query        string
	CondominioID int64
	OnlyActive   bool
}

// Global field names for validation
const (
	FieldNombre       = "nombre"
	FieldDescripcion  = "descripcion"
	FieldCapacidad    = "capacidad"
	FieldHoraApertura = "hora_apertura"
	FieldHoraCierre   = "hora_cierre"
)

const (
	MaxCapacidad = 10000
)
