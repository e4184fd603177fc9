// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package casa

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
	return &Service{repo: repo, authorizer: authorizer, logger: logger}
}

func (service *Service) ListCasas(context context.Context, principal *sec.Principal, filter Filter, limit, offset int) ([]*Casa, int, error) {
	if err := condo.Permit(service.authorizer, principal, condo.ActionRead, Resource); err != nil {
		return nil, 0, err
	}

	scope := service.authorizer.Predicate(principal, schema.CondoCasa.CondominioID, 1)
	return service.repo.ListCasas(context, scope, filter, limit, offset)
}

func (service *Service) GetCasa(context context.Context, principal *sec.Principal, id int64) (*Casa, error) {
	if err := condo.Permit(service.authorizer, principal, condo.ActionRead, Resource); err != nil {
		return nil, err
	}
	return service.load(context, principal, id)
}

func (service *Service) CreateCasa(context context.Context, principal *sec.Principal, casa *Casa) error {
	if err := condo.Permit(service.authorizer, principal, condo.ActionCreate, Resource); err != nil {
		return err
	}

	if err := validateCasa(casa); err != nil {
		return err
	}

	// The owner follows the street.
	calleOwner, err := service.repo.CalleCondominio(context, casa.CalleID)
	if err != nil {
		return err
	}
	owner, err := condo.InheritOwner(service.authorizer, principal, casa.CondominioID, calleOwner, FieldCalleID)
	if err != nil {
		return err
	}
	casa.CondominioID = owner

	if err := service.repo.CreateCasa(context, casa); err != nil {
		return err
	}

	service.logger.Info("casa_created", slog.Int64("casa_id", casa.ID), slog.Int64("condominio_id", owner))
	return nil
}

func (service *Service) UpdateCasa(context context.Context, principal *sec.Principal, id int64, casa *Casa) error {
	if err := condo.Permit(service.authorizer, principal, condo.ActionUpdate, Resource); err != nil {
		return err
	}

	existing, err := service.load(context, principal, id)
	if err != nil {
		return err
	}

	casa.ID = id
	casa.CondominioID = existing.CondominioID
	if casa.CalleID == 0 {
		casa.CalleID = existing.CalleID
	}

	if err := validateCasa(casa); err != nil {
		return err
	}

	if casa.CalleID != existing.CalleID {
		calleOwner, err := service.repo.CalleCondominio(context, casa.CalleID)
		if err != nil {
			return err
		}
		if _, err := condo.InheritOwner(service.authorizer, principal, existing.CondominioID, calleOwner, FieldCalleID); err != nil {
			return err
		}
	}

	if err := service.repo.UpdateCasa(context, casa); err != nil {
		return err
	}

	service.logger.Info("casa_updated", slog.Int64("casa_id", id))
	return nil
}

func (service *Service) DeleteCasa(context context.Context, principal *sec.Principal, id int64) error {
	if err := condo.Permit(service.authorizer, principal, condo.ActionDelete, Resource); err != nil {
		return err
	}

	if _, err := service.load(context, principal, id); err != nil {
		return err
	}

	if err := service.repo.DeleteCasa(context, id); err != nil {
		return err
	}

	service.logger.Warn("casa_deleted", slog.Int64("casa_id", id))
	return nil
}

func (service *Service) load(context context.Context, principal *sec.Principal, id int64) (*Casa, error) {
	return condo.Load(service.authorizer, principal,
		func() (*Casa, error) { return service.repo.GetCasa(context, id) },
		func(c *Casa) int64 { return c.CondominioID },
	)
}

func validateCasa(casa *Casa) error {
	validator := &validate.Validator{}
	validator.
		Positive(FieldCalleID, casa.CalleID).
		Required(FieldNumero, casa.Numero).
		MaxLen(FieldNumero, casa.Numero, 20)
	if casa.Interior != nil {
		validator.MaxLen(FieldInterior, *casa.Interior, 20)
	}
	return validator.Err()
}
