// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

// Package pagination parses page/limit query parameters for list endpoints
// and builds the "meta" block of paginated responses.
package pagination

import (
	"net/http"

	"github.com/condominio/condoadmin/pkg/convert"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
	DefaultPage  = 1
)

// Params is a 1-indexed page window.
type Params struct {
	Page  int
	Limit int
}

// Offset is the number of rows skipped before this page.
func (p Params) Offset() int {
	return (max(p.Page, 1) - 1) * p.Limit
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta derives TotalPages from total and limit.
func NewMeta(page, limit, total int) Meta {
	meta := Meta{Page: page, Limit: limit, Total: total}
	if limit > 0 {
		meta.TotalPages = (total + limit - 1) / limit
	}
	return meta
}

// FromRequest reads "page" and "limit". A page below 1 becomes [DefaultPage];
// a limit below 1 becomes [DefaultLimit] and one above [MaxLimit] is capped.
func FromRequest(request *http.Request) Params {
	values := request.URL.Query()

	params := Params{
		Page:  convert.ToIntD(values.Get("page"), DefaultPage),
		Limit: convert.ToIntD(values.Get("limit"), DefaultLimit),
	}

	if params.Page < 1 {
		params.Page = DefaultPage
	}

	switch {
	case params.Limit < 1:
		params.Limit = DefaultLimit
	case params.Limit > MaxLimit:
		params.Limit = MaxLimit
	}

	return params
}
