// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package personacasa

import (
	"context"
	"log/slog"

	"github.com/condominio/condoadmin/internal/condo"
	"github.com/condominio/condoadmin/internal/platform/apperr"
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

// ListByCasa returns the people assigned to a house.
func (service *Service) ListByCasa(context context.Context, principal *sec.Principal, casaID int64) ([]*PersonaCasa, error) {
	if err := condo.Permit(service.authorizer, principal, condo.ActionRead, Resource); err != nil {
		return nil, err
	}

	owner, err := service.repo.CasaCondominio(context, casaID)
	if err != nil {
		return nil, err
	}
	if err := service.authorizer.Owns(principal, owner); err != nil {
		return nil, err
	}

	return service.repo.ListByCasa(context, casaID)
}

/*
Assign links a user to a house.

Description: The house decides the condominium. A user bound to a
condominium can only be linked to houses of that condominium; global
accounts can be linked anywhere.
*/
func (service *Service) Assign(context context.Context, principal *sec.Principal, assignment *PersonaCasa) error {
	if err := condo.Permit(service.authorizer, principal, condo.ActionCreate, Resource); err != nil {
		return err
	}

	validator := &validate.Validator{}
	err := validator.
		Positive(FieldCasaID, assignment.CasaID).
		Positive(FieldUsuarioID, assignment.UsuarioID).
		OneOf(FieldRelacion, assignment.Relacion, RelacionPropietario, RelacionInquilino, RelacionFamiliar).
		Err()
	if err != nil {
		return err
	}

	parent, err := service.repo.CasaCondominio(context, assignment.CasaID)
	if err != nil {
		return err
	}
	owner, err := condo.InheritOwner(service.authorizer, principal, assignment.CondominioID, parent, FieldCasaID)
	if err != nil {
		return err
	}

	userCondominium, err := service.repo.UsuarioCondominio(context, assignment.UsuarioID)
	if err != nil {
		return err
	}
	if userCondominium != nil && *userCondominium != owner {
		return apperr.ValidationError("User belongs to another condominium", apperr.FieldError{
			Field:   FieldUsuarioID,
			Message: "Must belong to the same condominium as the house",
		})
	}

	assignment.CondominioID = owner
	assignment.Nombre, assignment.Email = "", ""
	if err := service.repo.CreateAssignment(context, assignment); err != nil {
		return err
	}

	service.logger.Info("persona_casa_assigned",
		slog.Int64("casa_id", assignment.CasaID),
		slog.Int64("usuario_id", assignment.UsuarioID),
		slog.String("relacion", assignment.Relacion),
	)
	return nil
}

// Unassign removes one link.
func (service *Service) Unassign(context context.Context, principal *sec.Principal, id int64) error {
	if err := condo.Permit(service.authorizer, principal, condo.ActionDelete, Resource); err != nil {
		return err
	}

	assignment, err := condo.Load(service.authorizer, principal,
		func() (*PersonaCasa, error) { return service.repo.GetAssignment(context, id) },
		func(a *PersonaCasa) int64 { return a.CondominioID },
	)
	if err != nil {
		return err
	}

	if err := service.repo.DeleteAssignment(context, id); err != nil {
		return err
	}

	service.logger.Warn("persona_casa_unassigned",
		slog.Int64("casa_id", assignment.CasaID),
		slog.Int64("usuario_id", assignment.UsuarioID),
	)
	return nil
}
