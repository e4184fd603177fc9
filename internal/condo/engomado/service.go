// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package engomado

import (
	"context"
	"log/slog"

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

func (service *Service) ListEngomados(context context.Context, principal *sec.Principal, filter Filter, limit, offset int) ([]*Engomado, int, error) {
	if err := condo.Permit(service.authorizer, principal, condo.ActionRead, Resource); err != nil {
		return nil, 0, err
	}

	filter.Placa = NormalizePlate(filter.Placa)
	scope := service.authorizer.Predicate(principal, schema.CondoEngomado.CondominioID, 1)
	return service.repo.ListEngomados(context, scope, filter, limit, offset)
}

func (service *Service) GetEngomado(context context.Context, principal *sec.Principal, id int64) (*Engomado, error) {
	if err := condo.Permit(service.authorizer, principal, condo.ActionRead, Resource); err != nil {
		return nil, err
	}
	return service.load(context, principal, id)
}

func (service *Service) CreateEngomado(context context.Context, principal *sec.Principal, e *Engomado) error {
	if err := condo.Permit(service.authorizer, principal, condo.ActionCreate, Resource); err != nil {
		return err
	}

	e.Placa = NormalizePlate(e.Placa)
	if err := validateEngomado(e); err != nil {
		return err
	}

	owner, err := service.casaOwner(context, principal, e.CondominioID, e.CasaID)
	if err != nil {
		return err
	}
	e.CondominioID = owner

	if err := service.repo.CreateEngomado(context, e); err != nil {
		return err
	}

	service.logger.Info("engomado_created",
		slog.Int64("engomado_id", e.ID),
		slog.Int64("casa_id", e.CasaID),
		slog.String("placa", e.Placa),
	)
	return nil
}

func (service *Service) UpdateEngomado(context context.Context, principal *sec.Principal, id int64, e *Engomado) error {
	if err := condo.Permit(service.authorizer, principal, condo.ActionUpdate, Resource); err != nil {
		return err
	}

	existing, err := service.load(context, principal, id)
	if err != nil {
		return err
	}

	e.ID = id
	e.CondominioID = existing.CondominioID
	e.Placa = NormalizePlate(e.Placa)
	if e.CasaID == 0 {
		e.CasaID = existing.CasaID
	}

	if err := validateEngomado(e); err != nil {
		return err
	}

	if e.CasaID != existing.CasaID {
		if _, err := service.casaOwner(context, principal, existing.CondominioID, e.CasaID); err != nil {
			return err
		}
	}

	if err := service.repo.UpdateEngomado(context, e); err != nil {
		return err
	}

	if existing.Activo && !e.Activo {
		service.logger.Warn("engomado_revoked", slog.Int64("engomado_id", id), slog.String("placa", e.Placa))
	}
	return nil
}

func (service *Service) DeleteEngomado(context context.Context, principal *sec.Principal, id int64) error {
	if err := condo.Permit(service.authorizer, principal, condo.ActionDelete, Resource); err != nil {
		return err
	}

	if _, err := service.load(context, principal, id); err != nil {
		return err
	}

	if err := service.repo.DeleteEngomado(context, id); err != nil {
		return err
	}

	service.logger.Warn("engomado_deleted", slog.Int64("engomado_id", id))
	return nil
}

func (service *Service) load(context context.Context, principal *sec.Principal, id int64) (*Engomado, error) {
	return condo.Load(service.authorizer, principal,
		func() (*Engomado, error) { return service.repo.GetEngomado(context, id) },
		func(e *Engomado) int64 { return e.CondominioID },
	)
}

func (service *Service) casaOwner(context context.Context, principal *sec.Principal, requested, casaID int64) (int64, error) {
	parent, err := service.repo.CasaCondominio(context, casaID)
	if err != nil {
		return 0, err
	}
	return condo.InheritOwner(service.authorizer, principal, requested, parent, FieldCasaID)
}

func validateEngomado(e *Engomado) error {
	validator := &validate.Validator{}
	return validator.
		Positive(FieldCasaID, e.CasaID).
		Plate(FieldPlaca, e.Placa).
		MaxLen(FieldMarca, pointer.Val(e.Marca), 50).
		MaxLen(FieldColor, pointer.Val(e.Color), 30).
		Err()
}
