// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package dispositivo

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/condominio/condoadmin/internal/platform/request"
	"github.com/condominio/condoadmin/internal/platform/respond"
	"github.com/condominio/condoadmin/internal/platform/sec"
	"github.com/condominio/condoadmin/internal/security"
	"github.com/condominio/condoadmin/pkg/convert"
	"github.com/condominio/condoadmin/pkg/pagination"
	"github.com/condominio/condoadmin/pkg/query"
	"github.com/condominio/condoadmin/pkg/slice"
)

type Handler struct {
	service *Service
	guard   security.GuardFunc
}

func NewHandler(service *Service, guard security.GuardFunc) *Handler {
	return &Handler{service: service, guard: guard}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(handler.guard(security.RequireRoles(sec.RoleAdmin)))

		adminRoute.Get("/", handler.listDispositivos)
		adminRoute.Get("/{id}", handler.getDispositivo)
		adminRoute.Post("/", handler.createDispositivo)
		adminRoute.Put("/{id}", handler.updateDispositivo)
		adminRoute.Delete("/{id}", handler.deleteDispositivo)
	})
}

func (handler *Handler) listDispositivos(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		CondominioID: requestutil.QueryInt64(request, "condominio_id"),
		Tipos:        slice.Map(query.StringSlice(request.URL.Query().Get(FieldTipo)), strings.ToUpper),
		OnlyActive:   convert.ToBool(request.URL.Query().Get("activo")),
	}

	dispositivos, total, err := handler.service.ListDispositivos(request.Context(), requestutil.Principal(request), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, dispositivos, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getDispositivo(writer http.ResponseWriter, request *http.Request) {
	dispositivoID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	dispositivo, err := handler.service.GetDispositivo(request.Context(), requestutil.Principal(request), dispositivoID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, dispositivo)
}

func (handler *Handler) createDispositivo(writer http.ResponseWriter, request *http.Request) {
	input := Dispositivo{Activo: true}
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateDispositivo(request.Context(), requestutil.Principal(request), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateDispositivo(writer http.ResponseWriter, request *http.Request) {
	dispositivoID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Dispositivo
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateDispositivo(request.Context(), requestutil.Principal(request), dispositivoID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteDispositivo(writer http.ResponseWriter, request *http.Request) {
	dispositivoID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteDispositivo(request.Context(), requestutil.Principal(request), dispositivoID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
