// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package areacomun_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condominio/condoadmin/internal/condo/areacomun"
	"github.com/condominio/condoadmin/internal/condo/condotest"
	"github.com/condominio/condoadmin/internal/platform/apperr"
	"github.com/condominio/condoadmin/internal/platform/sec"
	"github.com/condominio/condoadmin/internal/security"
)

type fakeRepository struct {
	nextID int64
	areas  map[int64]*areacomun.AreaComun
}

func (repository *fakeRepository) ListAreas(_ context.Context, scope security.Predicate, f areacomun.Filter, _, _ int) ([]*areacomun.AreaComun, int, error) {
	out := make([]*areacomun.AreaComun, 0)
	for _, area := range repository.areas {
		if len(scope.Args) == 1 && area.CondominioID != scope.Args[0].(int64) {
			continue
		}
		if f.OnlyActive && !area.Activa {
			continue
		}
		out = append(out, area)
	}
	return out, len(out), nil
}

func (repository *fakeRepository) GetArea(_ context.Context, id int64) (*areacomun.AreaComun, error) {
	area, ok := repository.areas[id]
	if !ok {
		return nil, apperr.NotFound("Area comun")
	}
	copied := *area
	return &copied, nil
}

func (repository *fakeRepository) CreateArea(_ context.Context, area *areacomun.AreaComun) error {
	repository.nextID++
	area.ID = repository.nextID
	stored := *area
	repository.areas[area.ID] = &stored
	return nil
}

func (repository *fakeRepository) UpdateArea(_ context.Context, area *areacomun.AreaComun) error {
	stored := *area
	repository.areas[area.ID] = &stored
	return nil
}

func (repository *fakeRepository) DeleteArea(_ context.Context, id int64) error {
	delete(repository.areas, id)
	return nil
}

/*
TestService_ValidatesHours rejects malformed and inverted schedules.
*/
func TestService_ValidatesHours(t *testing.T) {
	env := condotest.NewEnv(t)
	service := areacomun.NewService(&fakeRepository{areas: map[int64]*areacomun.AreaComun{}}, env.Pipeline, condotest.Logger())
	resident := condotest.Principal("7", sec.RoleResidente, 3)

	tests := []struct {
		name   string
		opens  string
		closes string
		field  string
	}{
		{"malformed_opening", "7am", "22:00", areacomun.FieldHoraApertura},
		{"malformed_closing", "07:00", "25:00", areacomun.FieldHoraCierre},
		{"inverted", "22:00", "07:00", areacomun.FieldHoraCierre},
		{"equal", "09:00", "09:00", areacomun.FieldHoraCierre},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.CreateArea(context.Background(), resident, &areacomun.AreaComun{
				Nombre: "Alberca", Capacidad: 30, HoraApertura: tt.opens, HoraCierre: tt.closes,
			})
			require.Error(t, err)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			require.Len(t, appErr.Details, 1)
			assert.Equal(t, tt.field, appErr.Details[0].Field)
		})
	}

	area := &areacomun.AreaComun{Nombre: "Gimnasio", Capacidad: 12, HoraApertura: "06:00", HoraCierre: "23:00", Activa: true}
	require.NoError(t, service.CreateArea(context.Background(), resident, area))
	assert.Equal(t, int64(3), area.CondominioID)
}

/*
TestAreaComun_OpenAt checks the opening window against wall-clock time.
*/
func TestAreaComun_OpenAt(t *testing.T) {
	area := &areacomun.AreaComun{HoraApertura: "08:00", HoraCierre: "20:30", Activa: true}
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.False(t, area.OpenAt(day.Add(7*time.Hour+59*time.Minute)))
	assert.True(t, area.OpenAt(day.Add(8*time.Hour)))
	assert.True(t, area.OpenAt(day.Add(20*time.Hour+29*time.Minute)))
	assert.False(t, area.OpenAt(day.Add(20*time.Hour+30*time.Minute)))

	area.Activa = false
	assert.False(t, area.OpenAt(day.Add(12*time.Hour)))
}

/*
TestHandler_CreateDefaultsToActive stores a new area as active unless told otherwise.
*/
func TestHandler_CreateDefaultsToActive(t *testing.T) {
	env := condotest.NewEnv(t)
	repository := &fakeRepository{areas: map[int64]*areacomun.AreaComun{}}
	handler := areacomun.NewHandler(areacomun.NewService(repository, env.Pipeline, condotest.Logger()), env.Pipeline.Guard)

	router := chi.NewRouter()
	router.Route("/api/areas-comunes", handler.RegisterRoutes)

	resident := env.Login(t, condotest.Principal("7", sec.RoleResidente, 3))
	recorder := resident.Do(t, router, http.MethodPost, "/api/areas-comunes", map[string]any{
		"nombre": "Salon de eventos", "capacidad": 80, "hora_apertura": "10:00", "hora_cierre": "23:00",
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	assert.Equal(t, true, condotest.Decode(t, recorder)["data"].(map[string]any)["activa"])

	recorder = resident.Do(t, router, http.MethodPost, "/api/areas-comunes", map[string]any{
		"nombre": "Asadores", "capacidad": 20, "hora_apertura": "10:00", "hora_cierre": "18:00", "activa": false,
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	recorder = resident.Do(t, router, http.MethodGet, "/api/areas-comunes?activa=true", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Len(t, condotest.Decode(t, recorder)["data"], 1)
}
