// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package dispositivo

import "context"

// Repository lists devices without an ownership predicate; the device
// inventory is small and the service filters it in process.
type Repository interface {
	ListDispositivos(context context.Context, f Filter) ([]*Dispositivo, error)
	GetDispositivo(context context.Context, id int64) (*Dispositivo, error)
	CreateDispositivo(context context.Context, d *Dispositivo) error
	UpdateDispositivo(context context.Context, d *Dispositivo) error
	DeleteDispositivo(context context.Context, id int64) error
}
