// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package dispositivo

import (
	"context"
	"log/slog"

	"github.com/condominio/condoadmin/internal/condo"
	"github.com/condominio/condoadmin/internal/platform/sec"
	"github.com/condominio/condoadmin/internal/platform/validate"
	"github.com/condominio/condoadmin/internal/security"
	"github.com/condominio/condoadmin/pkg/pointer"
)

type Service struct {
	repo       Repository
	authorizer security.Authorizer
	logger     *slog.Logger
}

func NewService(repo Repository, authorizer security.Authorizer, logger *slog.Logger) *Service {
	return &Service{repo: repo, authorizer: authorizer, logger: logger}
}

// ListDispositivos filters the inventory to the caller's condominium and
// pages it in memory.
func (service *Service) ListDispositivos(context context.Context, principal *sec.Principal, filter Filter, limit, offset int) ([]*Dispositivo, int, error) {
	if err := condo.Permit(service.authorizer, principal, condo.ActionRead, Resource); err != nil {
		return nil, 0, err
	}

	all, err := service.repo.ListDispositivos(context, filter)
	if err != nil {
		return nil, 0, err
	}

	owned := security.FilterByOwnership(principal, all, CondominiumOf)
	total := len(owned)

	if offset >= total {
		return []*Dispositivo{}, total, nil
	}
	end := min(offset+limit, total)
	return owned[offset:end], total, nil
}

func (service *Service) GetDispositivo(context context.Context, principal *sec.Principal, id int64) (*Dispositivo, error) {
	if err := condo.Permit(service.authorizer, principal, condo.ActionRead, Resource); err != nil {
		return nil, err
	}
	return service.load(context, principal, id)
}

func (service *Service) CreateDispositivo(context context.Context, principal *sec.Principal, d *Dispositivo) error {
	if err := condo.Permit(service.authorizer, principal, condo.ActionCreate, Resource); err != nil {
		return err
	}

	owner, err := condo.ResolveOwner(service.authorizer, principal, d.CondominioID)
	if err != nil {
		return err
	}
	d.CondominioID = owner

	if err := validateDispositivo(d); err != nil {
		return err
	}

	if err := service.repo.CreateDispositivo(context, d); err != nil {
		return err
	}

	service.logger.Info("dispositivo_created",
		slog.Int64("dispositivo_id", d.ID),
		slog.String("tipo", d.Tipo),
		slog.Int64("condominio_id", owner),
	)
	return nil
}

func (service *Service) UpdateDispositivo(context context.Context, principal *sec.Principal, id int64, d *Dispositivo) error {
	if err := condo.Permit(service.authorizer, principal, condo.ActionUpdate, Resource); err != nil {
		return err
	}

	existing, err := service.load(context, principal, id)
	if err != nil {
		return err
	}

	d.ID = id
	d.CondominioID = existing.CondominioID

	if err := validateDispositivo(d); err != nil {
		return err
	}

	if err := service.repo.UpdateDispositivo(context, d); err != nil {
		return err
	}

	service.logger.Info("dispositivo_updated", slog.Int64("dispositivo_id", id), slog.Bool("activo", d.Activo))
	return nil
}

func (service *Service) DeleteDispositivo(context context.Context, principal *sec.Principal, id int64) error {
	if err := condo.Permit(service.authorizer, principal, condo.ActionDelete, Resource); err != nil {
		return err
	}

	if _, err := service.load(context, principal, id); err != nil {
		return err
	}

	if err := service.repo.DeleteDispositivo(context, id); err != nil {
		return err
	}

	service.logger.Warn("dispositivo_deleted", slog.Int64("dispositivo_id", id))
	return nil
}

func (service *Service) load(context context.Context, principal *sec.Principal, id int64) (*Dispositivo, error) {
	return condo.Load(service.authorizer, principal,
		func() (*Dispositivo, error) { return service.repo.GetDispositivo(context, id) },
		CondominiumOf,
	)
}

func validateDispositivo(d *Dispositivo) error {
	validator := &validate.Validator{}
	return validator.
		Required(FieldNombre, d.Nombre).
		MaxLen(FieldNombre, d.Nombre, 100).
		OneOf(FieldTipo, d.Tipo, Tipos...).
		MaxLen(FieldUbicacion, pointer.Val(d.Ubicacion), 200).
		Err()
}
