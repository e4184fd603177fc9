// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package areacomun

import (
	"context"
	"log/slog"
	"time"

	"github.com/condominio/condoadmin/internal/condo"
	"github.com/condominio/condoadmin/internal/platform/database/schema"
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

func (service *Service) ListAreas(context context.Context, principal *sec.Principal, filter Filter, limit, offset int) ([]*AreaComun, int, error) {
	if err := condo.Permit(service.authorizer, principal, condo.ActionRead, Resource); err != nil {
		return nil, 0, err
	}

	scope := service.authorizer.Predicate(principal, schema.CondoAreaComun.CondominioID, 1)
	return service.repo.ListAreas(context, scope, filter, limit, offset)
}

func (service *Service) GetArea(context context.Context, principal *sec.Principal, id int64) (*AreaComun, error) {
	if err := condo.Permit(service.authorizer, principal, condo.ActionRead, Resource); err != nil {
		return nil, err
	}
	return service.load(context, principal, id)
}

func (service *Service) CreateArea(context context.Context, principal *sec.Principal, area *AreaComun) error {
	if err := condo.Permit(service.authorizer, principal, condo.ActionCreate, Resource); err != nil {
		return err
	}

	owner, err := condo.ResolveOwner(service.authorizer, principal, area.CondominioID)
	if err != nil {
		return err
	}
	area.CondominioID = owner

	if err := validateArea(area); err != nil {
		return err
	}

	if err := service.repo.CreateArea(context, area); err != nil {
		return err
	}

	service.logger.Info("area_comun_created", slog.Int64("area_id", area.ID), slog.Int64("condominio_id", owner))
	return nil
}

func (service *Service) UpdateArea(context context.Context, principal *sec.Principal, id int64, area *AreaComun) error {
	if err := condo.Permit(service.authorizer, principal, condo.ActionUpdate, Resource); err != nil {
		return err
	}

	existing, err := service.load(context, principal, id)
	if err != nil {
		return err
	}

	area.ID = id
	area.CondominioID = existing.CondominioID

	if err := validateArea(area); err != nil {
		return err
	}

	if err := service.repo.UpdateArea(context, area); err != nil {
		return err
	}

	service.logger.Info("area_comun_updated", slog.Int64("area_id", id))
	return nil
}

func (service *Service) DeleteArea(context context.Context, principal *sec.Principal, id int64) error {
	if err := condo.Permit(service.authorizer, principal, condo.ActionDelete, Resource); err != nil {
		return err
	}

	if _, err := service.load(context, principal, id); err != nil {
		return err
	}

	if err := service.repo.DeleteArea(context, id); err != nil {
		return err
	}

	service.logger.Warn("area_comun_deleted", slog.Int64("area_id", id))
	return nil
}

func (service *Service) load(context context.Context, principal *sec.Principal, id int64) (*AreaComun, error) {
	return condo.Load(service.authorizer, principal,
		func() (*AreaComun, error) { return service.repo.GetArea(context, id) },
		func(area *AreaComun) int64 { return area.CondominioID },
	)
}

func validateArea(area *AreaComun) error {
	validator := &validate.Validator{}
	validator.
		Required(FieldNombre, area.Nombre).
		MaxLen(FieldNombre, area.Nombre, 100).
		Range(FieldCapacidad, area.Capacidad, 1, MaxCapacidad).
		MaxLen(FieldDescripcion, pointer.Val(area.Descripcion), 500)

	opens, errOpen := time.Parse(ClockLayout, area.HoraApertura)
	closes, errClose := time.Parse(ClockLayout, area.HoraCierre)
	validator.
		Custom(FieldHoraApertura, errOpen != nil, "Must be a time in HH:MM format").
		Custom(FieldHoraCierre, errClose != nil, "Must be a time in HH:MM format")
	if errOpen == nil && errClose == nil {
		validator.Custom(FieldHoraCierre, !closes.After(opens), "Must be later than the opening time")
	}

	return validator.Err()
}
