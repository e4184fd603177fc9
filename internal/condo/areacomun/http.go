// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package areacomun

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/condominio/condoadmin/internal/platform/request"
	"github.com/condominio/condoadmin/internal/platform/respond"
	"github.com/condominio/condoadmin/internal/platform/sec"
	"github.com/condominio/condoadmin/internal/security"
	"github.com/condominio/condoadmin/pkg/convert"
	"github.com/condominio/condoadmin/pkg/pagination"
)

type Handler struct {
	service *Service
	guard   security.GuardFunc
}

func NewHandler(service *Service, guard security.GuardFunc) *Handler {
	return &Handler{service: service, guard: guard}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Staff and above
	router.Group(func(readRoute chi.Router) {
		readRoute.Use(handler.guard(security.RequireRoles(sec.RoleEmpleado)))

		readRoute.Get("/", handler.listAreas)
		readRoute.Get("/{id}", handler.getArea)
	})

	// Residents' committee and admins
	router.Group(func(writeRoute chi.Router) {
		writeRoute.Use(handler.guard(security.RequireRoles(sec.RoleAdmin, sec.RoleResidente)))

		writeRoute.Post("/", handler.createArea)
		writeRoute.Put("/{id}", handler.updateArea)
		writeRoute.Delete("/{id}", handler.deleteArea)
	})
}

func (handler *Handler) listAreas(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Query:        request.URL.Query().Get("q"),
		CondominioID: requestutil.QueryInt64(request, "condominio_id"),
		OnlyActive:   convert.ToBool(request.URL.Query().Get("activa")),
	}

	areas, total, err := handler.service.ListAreas(request.Context(), requestutil.Principal(request), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, areas, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getArea(writer http.ResponseWriter, request *http.Request) {
	areaID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	area, err := handler.service.GetArea(request.Context(), requestutil.Principal(request), areaID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, area)
}

func (handler *Handler) createArea(writer http.ResponseWriter, request *http.Request) {
	input := AreaComun{Activa: true}
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateArea(request.Context(), requestutil.Principal(request), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateArea(writer http.ResponseWriter, request *http.Request) {
	areaID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input AreaComun
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateArea(request.Context(), requestutil.Principal(request), areaID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteArea(writer http.ResponseWriter, request *http.Request) {
	areaID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteArea(request.Context(), requestutil.Principal(request), areaID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
