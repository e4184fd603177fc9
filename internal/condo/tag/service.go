// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package tag

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

func (service *Service) ListTags(context context.Context, principal *sec.Principal, filter Filter, limit, offset int) ([]*Tag, int, error) {
	if err := condo.Permit(service.authorizer, principal, condo.ActionRead, Resource); err != nil {
		return nil, 0, err
	}

	scope := service.authorizer.Predicate(principal, schema.CondoTag.CondominioID, 1)
	return service.repo.ListTags(context, scope, filter, limit, offset)
}

func (service *Service) GetTag(context context.Context, principal *sec.Principal, id int64) (*Tag, error) {
	if err := condo.Permit(service.authorizer, principal, condo.ActionRead, Resource); err != nil {
		return nil, err
	}
	return service.load(context, principal, id)
}

// FindByCodigo resolves a scanned serial within a condominium. Gate staff
// use it to decide whether to open.
func (service *Service) FindByCodigo(context context.Context, principal *sec.Principal, condominioID int64, codigo string) (*Tag, error) {
	if err := condo.Permit(service.authorizer, principal, condo.ActionRead, Resource); err != nil {
		return nil, err
	}

	owner, err := condo.ResolveOwner(service.authorizer, principal, condominioID)
	if err != nil {
		return nil, err
	}
	return service.repo.GetTagByCodigo(context, owner, NormalizeCode(codigo))
}

func (service *Service) CreateTag(context context.Context, principal *sec.Principal, t *Tag) error {
	if err := condo.Permit(service.authorizer, principal, condo.ActionCreate, Resource); err != nil {
		return err
	}

	t.Codigo = NormalizeCode(t.Codigo)
	if err := validateTag(t); err != nil {
		return err
	}

	parent, err := service.repo.CasaCondominio(context, t.CasaID)
	if err != nil {
		return err
	}
	owner, err := condo.InheritOwner(service.authorizer, principal, t.CondominioID, parent, FieldCasaID)
	if err != nil {
		return err
	}
	t.CondominioID = owner

	if err := service.repo.CreateTag(context, t); err != nil {
		return err
	}

	service.logger.Info("tag_created", slog.Int64("tag_id", t.ID), slog.Int64("casa_id", t.CasaID))
	return nil
}

func (service *Service) UpdateTag(context context.Context, principal *sec.Principal, id int64, t *Tag) error {
	if err := condo.Permit(service.authorizer, principal, condo.ActionUpdate, Resource); err != nil {
		return err
	}

	existing, err := service.load(context, principal, id)
	if err != nil {
		return err
	}

	t.ID = id
	t.CondominioID = existing.CondominioID
	t.Codigo = NormalizeCode(t.Codigo)
	if t.CasaID == 0 {
		t.CasaID = existing.CasaID
	}

	if err := validateTag(t); err != nil {
		return err
	}

	if t.CasaID != existing.CasaID {
		parent, err := service.repo.CasaCondominio(context, t.CasaID)
		if err != nil {
			return err
		}
		if _, err := condo.InheritOwner(service.authorizer, principal, existing.CondominioID, parent, FieldCasaID); err != nil {
			return err
		}
	}

	if err := service.repo.UpdateTag(context, t); err != nil {
		return err
	}

	if existing.Activo && !t.Activo {
		service.logger.Warn("tag_revoked", slog.Int64("tag_id", id))
	}
	return nil
}

func (service *Service) DeleteTag(context context.Context, principal *sec.Principal, id int64) error {
	if err := condo.Permit(service.authorizer, principal, condo.ActionDelete, Resource); err != nil {
		return err
	}

	if _, err := service.load(context, principal, id); err != nil {
		return err
	}

	if err := service.repo.DeleteTag(context, id); err != nil {
		return err
	}

	service.logger.Warn("tag_deleted", slog.Int64("tag_id", id))
	return nil
}

func (service *Service) load(context context.Context, principal *sec.Principal, id int64) (*Tag, error) {
	return condo.Load(service.authorizer, principal,
		func() (*Tag, error) { return service.repo.GetTag(context, id) },
		func(t *Tag) int64 { return t.CondominioID },
	)
}

func validateTag(t *Tag) error {
	validator := &validate.Validator{}
	return validator.
		Positive(FieldCasaID, t.CasaID).
		Custom(FieldCodigo, !codeRegex.MatchString(t.Codigo), "Must be 8 to 32 hexadecimal characters").
		Err()
}
