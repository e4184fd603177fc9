// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package condo_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condominio/condoadmin/internal/condo"
	"github.com/condominio/condoadmin/internal/condo/condotest"
	"github.com/condominio/condoadmin/internal/platform/apperr"
	"github.com/condominio/condoadmin/internal/platform/sec"
	"github.com/condominio/condoadmin/internal/security"
)

func newAuthorizer(t *testing.T) security.Authorizer {
	return condotest.NewEnv(t).Pipeline
}

func principal(role sec.Role, condominium int64) *sec.Principal {
	return condotest.Principal("5", role, condominium)
}

/*
TestResolveOwner covers admins, residents and foreign condominiums.
*/
func TestResolveOwner(t *testing.T) {
	authorizer := newAuthorizer(t)

	tests := []struct {
		name      string
		principal *sec.Principal
		requested int64
		want      int64
		kind      security.Kind
		status    int
	}{
		{"admin_names_condominium", principal(sec.RoleAdmin, 0), 8, 8, "", 0},
		{"admin_without_condominium", principal(sec.RoleAdmin, 0), 0, 0, "", 400},
		{"resident_defaults_to_own", principal(sec.RoleResidente, 3), 0, 3, "", 0},
		{"resident_names_own", principal(sec.RoleResidente, 3), 3, 3, "", 0},
		{"resident_names_foreign", principal(sec.RoleResidente, 3), 4, 0, security.KindCrossCondominium, 403},
		{"employee_unassigned", principal(sec.RoleEmpleado, 0), 0, 0, security.KindNoCondominiumAssigned, 403},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := condo.ResolveOwner(authorizer, tt.principal, tt.requested)
			if tt.status == 0 {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.status, apperr.As(err).HTTPStatus)
			if tt.kind != "" {
				assert.Equal(t, tt.kind, security.KindOf(err))
			}
		})
	}
}

/*
TestInheritOwner takes the owner from the parent record.
*/
func TestInheritOwner(t *testing.T) {
	authorizer := newAuthorizer(t)

	owner, err := condo.InheritOwner(authorizer, principal(sec.RoleResidente, 3), 0, 3, "casa_id")
	require.NoError(t, err)
	assert.Equal(t, int64(3), owner)

	owner, err = condo.InheritOwner(authorizer, principal(sec.RoleAdmin, 0), 0, 9, "casa_id")
	require.NoError(t, err)
	assert.Equal(t, int64(9), owner)

	_, err = condo.InheritOwner(authorizer, principal(sec.RoleResidente, 3), 0, 4, "casa_id")
	assert.Equal(t, security.KindCrossCondominium, security.KindOf(err))

	_, err = condo.InheritOwner(authorizer, principal(sec.RoleAdmin, 0), 8, 9, "casa_id")
	require.Error(t, err)
	assert.Equal(t, "casa_id", apperr.As(err).Details[0].Field)
}

/*
TestPermit consults the action matrix.
*/
func TestPermit(t *testing.T) {
	authorizer := newAuthorizer(t)

	assert.NoError(t, condo.Permit(authorizer, principal(sec.RoleEmpleado, 3), condo.ActionRead, "casas"))
	assert.NoError(t, condo.Permit(authorizer, principal(sec.RoleResidente, 3), condo.ActionDelete, "casas"))
	assert.NoError(t, condo.Permit(authorizer, principal(sec.RoleAdmin, 0), condo.ActionDelete, "dispositivos"))

	err := condo.Permit(authorizer, principal(sec.RoleEmpleado, 3), condo.ActionCreate, "casas")
	assert.Equal(t, security.KindInsufficientRole, security.KindOf(err))

	err = condo.Permit(authorizer, nil, condo.ActionRead, "casas")
	assert.Equal(t, 401, apperr.As(err).HTTPStatus)
}

/*
TestLoad rejects records of another condominium after fetching them.
*/
func TestLoad(t *testing.T) {
	authorizer := newAuthorizer(t)
	type record struct{ owner int64 }

	got, err := condo.Load(authorizer, principal(sec.RoleResidente, 3),
		func() (record, error) { return record{owner: 3}, nil },
		func(r record) int64 { return r.owner })
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.owner)

	_, err = condo.Load(authorizer, principal(sec.RoleResidente, 3),
		func() (record, error) { return record{owner: 9}, nil },
		func(r record) int64 { return r.owner })
	assert.Equal(t, security.KindCrossCondominium, security.KindOf(err))

	missing := apperr.NotFound("Casa")
	_, err = condo.Load(authorizer, principal(sec.RoleResidente, 3),
		func() (record, error) { return record{}, missing },
		func(r record) int64 { return r.owner })
	assert.True(t, errors.Is(err, missing))
}

/*
TestWhere numbers placeholders after the ownership predicate.
*/
func TestWhere(t *testing.T) {
	scoped := security.BuildFilterPredicate(principal(sec.RoleResidente, 3), "condominioid", 1)

	where := condo.NewWhere(scoped).
		And("nombre ILIKE %s", "%roble%").
		AndIf(false, "calleid = %s", int64(4)).
		AndIf(true, "activo = %s", true)

	assert.Equal(t, "condominioid = $1 AND nombre ILIKE $2 AND activo = $3", where.String())
	assert.Equal(t, []any{int64(3), "%roble%", true}, where.Args())

	suffix, args := where.Page(20, 40)
	assert.Equal(t, " LIMIT $4 OFFSET $5", suffix)
	assert.Equal(t, []any{int64(3), "%roble%", true, 20, 40}, args)
	assert.Len(t, where.Args(), 3)

	admin := condo.NewWhere(security.BuildFilterPredicate(principal(sec.RoleAdmin, 0), "condominioid", 1)).
		And("casaid = %s", int64(9))
	assert.Equal(t, "1 = 1 AND casaid = $1", admin.String())
}
