// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package calle

import (
	"context"
	"log/slog"

	"github.com/condominio/condoadmin/internal/condo"
	"github.com/condominio/condoadmin/internal/platform/database/schema"
	"github.com/condominio/condoadmin/internal/platform/sec"
	"github.com/condominio/condoadmin/internal/platform/validate"
	"github.com/condominio/condoadmin/internal/security"
)

type Service struct {
	repo       Repository
	authorizer security.Authorizer
	logger     *slog.Logger
}

func NewService(repo Repository, authorizer security.Authorizer, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		authorizer: authorizer,
		logger:     logger,
	}
}

func (service *Service) ListCalles(context context.Context, principal *sec.Principal, filter Filter, limit, offset int) ([]*Calle, int, error) {
	if err := condo.Permit(service.authorizer, principal, condo.ActionRead, Resource); err != nil {
		return nil, 0, err
	}

	scope := service.authorizer.Predicate(principal, schema.CondoCalle.CondominioID, 1)
	return service.repo.ListCalles(context, scope, filter, limit, offset)
}

func (service *Service) GetCalle(context context.Context, principal *sec.Principal, id int64) (*Calle, error) {
	if err := condo.Permit(service.authorizer, principal, condo.ActionRead, Resource); err != nil {
		return nil, err
	}
	return service.load(context, principal, id)
}

func (service *Service) CreateCalle(context context.Context, principal *sec.Principal, calle *Calle) error {
	if err := condo.Permit(service.authorizer, principal, condo.ActionCreate, Resource); err != nil {
		return err
	}

	owner, err := condo.ResolveOwner(service.authorizer, principal, calle.CondominioID)
	if err != nil {
		return err
	}
	calle.CondominioID = owner

	if err := validateCalle(calle); err != nil {
		return err
	}

	if err := service.repo.CreateCalle(context, calle); err != nil {
		return err
	}

	service.logger.Info("calle_created", slog.Int64("calle_id", calle.ID), slog.Int64("condominio_id", owner))
	return nil
}

func (service *Service) UpdateCalle(context context.Context, principal *sec.Principal, id int64, calle *Calle) error {
	if err := condo.Permit(service.authorizer, principal, condo.ActionUpdate, Resource); err != nil {
		return err
	}

	existing, err := service.load(context, principal, id)
	if err != nil {
		return err
	}

	// A street never moves to another condominium.
	calle.ID = id
	calle.CondominioID = existing.CondominioID

	if err := validateCalle(calle); err != nil {
		return err
	}

	if err := service.repo.UpdateCalle(context, calle); err != nil {
		return err
	}

	service.logger.Info("calle_updated", slog.Int64("calle_id", id))
	return nil
}

func (service *Service) DeleteCalle(context context.Context, principal *sec.Principal, id int64) error {
	if err := condo.Permit(service.authorizer, principal, condo.ActionDelete, Resource); err != nil {
		return err
	}

	if _, err := service.load(context, principal, id); err != nil {
		return err
	}

	if err := service.repo.DeleteCalle(context, id); err != nil {
		return err
	}

	service.logger.Warn("calle_deleted", slog.Int64("calle_id", id))
	return nil
}

func (service *Service) load(context context.Context, principal *sec.Principal, id int64) (*Calle, error) {
	return condo.Load(service.authorizer, principal,
		func() (*Calle, error) { return service.repo.GetCalle(context, id) },
		func(c *Calle) int64 { return c.CondominioID },
	)
}

func validateCalle(calle *Calle) error {
	validator := &validate.Validator{}
	validator.Required(FieldNombre, calle.Nombre).MaxLen(FieldNombre, calle.Nombre, 150)
	if calle.Descripcion != nil {
		validator.MaxLen(FieldDescripcion, *calle.Descripcion, 1000)
	}
	return validator.Err()
}
