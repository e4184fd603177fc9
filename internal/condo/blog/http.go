// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package blog

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
	// Staff and above
	router.Group(func(readRoute chi.Router) {
		readRoute.Use(handler.guard(security.RequireRoles(sec.RoleEmpleado)))

		readRoute.Get("/", handler.listPosts)
		readRoute.Get("/{id}", handler.getPost)
	})

	// Residents' committee and admins
	router.Group(func(writeRoute chi.Router) {
		writeRoute.Use(handler.guard(security.RequireRoles(sec.RoleAdmin, sec.RoleResidente)))

		writeRoute.Post("/", handler.createPost)
		writeRoute.Put("/{id}", handler.updatePost)
		writeRoute.Delete("/{id}", handler.deletePost)
	})
}

func (handler *Handler) listPosts(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Query:        request.URL.Query().Get("q"),
		CondominioID: requestutil.QueryInt64(request, "condominio_id"),
	}

	posts, total, err := handler.service.ListPosts(request.Context(), requestutil.Principal(request), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getPost(writer http.ResponseWriter, request *http.Request) {
	postID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.service.GetPost(request.Context(), requestutil.Principal(request), postID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, post)
}

func (handler *Handler) createPost(writer http.ResponseWriter, request *http.Request) {
	var input Post
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreatePost(request.Context(), requestutil.Principal(request), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updatePost(writer http.ResponseWriter, request *http.Request) {
	postID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Post
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdatePost(request.Context(), requestutil.Principal(request), postID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deletePost(writer http.ResponseWriter, request *http.Request) {
	postID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeletePost(request.Context(), requestutil.Principal(request), postID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
