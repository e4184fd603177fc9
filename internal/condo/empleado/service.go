// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package empleado

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/condominio/condoadmin/internal/condo"
	"github.com/condominio/condoadmin/internal/platform/apperr"
	"github.com/condominio/condoadmin/internal/platform/database/schema"
	"github.com/condominio/condoadmin/internal/platform/sec"
	"github.com/condominio/condoadmin/internal/platform/validate"
	"github.com/condominio/condoadmin/internal/security"
)

type Service struct {
	repo       Repository
	cipher     FieldCipher
	authorizer security.Authorizer
	logger     *slog.Logger
}

func NewService(repo Repository, cipher FieldCipher, authorizer security.Authorizer, logger *slog.Logger) *Service {
	return &Service{repo: repo, cipher: cipher, authorizer: authorizer, logger: logger}
}

func (service *Service) ListEmpleados(context context.Context, principal *sec.Principal, filter Filter, limit, offset int) ([]*Empleado, int, error) {
	if err := condo.Permit(service.authorizer, principal, condo.ActionRead, Resource); err != nil {
		return nil, 0, err
	}

	scope := service.authorizer.Predicate(principal, schema.CondoEmpleado.CondominioID, 1)
	empleados, total, err := service.repo.ListEmpleados(context, scope, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	for _, e := range empleados {
		if err := service.open(e); err != nil {
			return nil, 0, err
		}
	}
	return empleados, total, nil
}

func (service *Service) GetEmpleado(context context.Context, principal *sec.Principal, id int64) (*Empleado, error) {
	if err := condo.Permit(service.authorizer, principal, condo.ActionRead, Resource); err != nil {
		return nil, err
	}

	e, err := service.load(context, principal, id)
	if err != nil {
		return nil, err
	}
	if err := service.open(e); err != nil {
		return nil, err
	}
	return e, nil
}

func (service *Service) CreateEmpleado(context context.Context, principal *sec.Principal, e *Empleado) error {
	if err := condo.Permit(service.authorizer, principal, condo.ActionCreate, Resource); err != nil {
		return err
	}

	owner, err := condo.ResolveOwner(service.authorizer, principal, e.CondominioID)
	if err != nil {
		return err
	}
	e.CondominioID = owner

	if err := validateEmpleado(e); err != nil {
		return err
	}

	sealed, err := service.seal(e)
	if err != nil {
		return err
	}
	if err := service.repo.CreateEmpleado(context, sealed); err != nil {
		return err
	}

	e.ID, e.CreatedAt, e.UpdatedAt = sealed.ID, sealed.CreatedAt, sealed.UpdatedAt
	service.logger.Info("empleado_created", slog.Int64("empleado_id", e.ID), slog.Int64("condominio_id", owner))
	return nil
}

func (service *Service) UpdateEmpleado(context context.Context, principal *sec.Principal, id int64, e *Empleado) error {
	if err := condo.Permit(service.authorizer, principal, condo.ActionUpdate, Resource); err != nil {
		return err
	}

	existing, err := service.load(context, principal, id)
	if err != nil {
		return err
	}

	e.ID = id
	e.CondominioID = existing.CondominioID

	if err := validateEmpleado(e); err != nil {
		return err
	}

	sealed, err := service.seal(e)
	if err != nil {
		return err
	}
	if err := service.repo.UpdateEmpleado(context, sealed); err != nil {
		return err
	}

	e.CreatedAt, e.UpdatedAt = sealed.CreatedAt, sealed.UpdatedAt
	service.logger.Info("empleado_updated", slog.Int64("empleado_id", id))
	return nil
}

func (service *Service) DeleteEmpleado(context context.Context, principal *sec.Principal, id int64) error {
	if err := condo.Permit(service.authorizer, principal, condo.ActionDelete, Resource); err != nil {
		return err
	}

	if _, err := service.load(context, principal, id); err != nil {
		return err
	}

	if err := service.repo.DeleteEmpleado(context, id); err != nil {
		return err
	}

	service.logger.Warn("empleado_deleted", slog.Int64("empleado_id", id))
	return nil
}

func (service *Service) load(context context.Context, principal *sec.Principal, id int64) (*Empleado, error) {
	return condo.Load(service.authorizer, principal,
		func() (*Empleado, error) { return service.repo.GetEmpleado(context, id) },
		func(e *Empleado) int64 { return e.CondominioID },
	)
}

// seal returns a copy of e with encrypted contact fields.
func (service *Service) seal(e *Empleado) (*Empleado, error) {
	sealed := *e

	var err error
	if sealed.Email, err = service.cipher.Encrypt(e.Email); err != nil {
		return nil, apperr.Internal(fmt.Errorf("empleado: encrypt email: %w", err))
	}
	if sealed.Telefono, err = service.cipher.Encrypt(e.Telefono); err != nil {
		return nil, apperr.Internal(fmt.Errorf("empleado: encrypt telefono: %w", err))
	}
	return &sealed, nil
}

// open decrypts the contact fields of e in place.
func (service *Service) open(e *Empleado) error {
	var err error
	if e.Email, err = service.cipher.Decrypt(e.Email); err != nil {
		return apperr.Internal(fmt.Errorf("empleado %d: decrypt email: %w", e.ID, err))
	}
	if e.Telefono, err = service.cipher.Decrypt(e.Telefono); err != nil {
		return apperr.Internal(fmt.Errorf("empleado %d: decrypt telefono: %w", e.ID, err))
	}
	return nil
}

func validateEmpleado(e *Empleado) error {
	validator := &validate.Validator{}
	return validator.
		Required(FieldNombre, e.Nombre).
		MaxLen(FieldNombre, e.Nombre, 150).
		Required(FieldPuesto, e.Puesto).
		MaxLen(FieldPuesto, e.Puesto, 80).
		OptionalEmail(FieldEmail, e.Email).
		Phone(FieldTelefono, e.Telefono).
		Err()
}
