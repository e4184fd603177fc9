// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package empleado

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/condominio/condoadmin/internal/platform/request"
	"github.com/condominio/condoadmin/internal/platform/respond"
	"github.com/condominio/condoadmin/internal/platform/sec"
	"github.com/condominio/condoadmin/internal/security"
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
	// The route defaults narrow both groups to admins and residents.
	router.Group(func(readRoute chi.Router) {
		readRoute.Use(handler.guard(security.RequireRoles(sec.RoleEmpleado)))

		readRoute.Get("/", handler.listEmpleados)
		readRoute.Get("/{id}", handler.getEmpleado)
	})

	// Residents' committee and admins
	router.Group(func(writeRoute chi.Router) {
		writeRoute.Use(handler.guard(security.RequireRoles(sec.RoleAdmin, sec.RoleResidente)))

		writeRoute.Post("/", handler.createEmpleado)
		writeRoute.Put("/{id}", handler.updateEmpleado)
		writeRoute.Delete("/{id}", handler.deleteEmpleado)
	})
}

func (handler *Handler) listEmpleados(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Query:        request.URL.Query().Get("q"),
		CondominioID: requestutil.QueryInt64(request, "condominio_id"),
		Puesto:       request.URL.Query().Get(FieldPuesto),
	}

	empleados, total, err := handler.service.ListEmpleados(request.Context(), requestutil.Principal(request), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, empleados, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getEmpleado(writer http.ResponseWriter, request *http.Request) {
	empleadoID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	empleado, err := handler.service.GetEmpleado(request.Context(), requestutil.Principal(request), empleadoID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, empleado)
}

func (handler *Handler) createEmpleado(writer http.ResponseWriter, request *http.Request) {
	input := Empleado{Activo: true}
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateEmpleado(request.Context(), requestutil.Principal(request), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateEmpleado(writer http.ResponseWriter, request *http.Request) {
	empleadoID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Empleado
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateEmpleado(request.Context(), requestutil.Principal(request), empleadoID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteEmpleado(writer http.ResponseWriter, request *http.Request) {
	empleadoID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteEmpleado(request.Context(), requestutil.Principal(request), empleadoID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
