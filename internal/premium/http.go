// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package premium

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/tankobon/internal/platform/request"
	"github.com/taibuivan/tankobon/internal/platform/respond"
)

// Handler serves the plan catalogue.
type Handler struct{}

// NewHandler constructs a [Handler].
func NewHandler() *Handler {
	return &Handler{}
}

// Routes returns the plans router, mounted at /api/v1/plans.
//
// # Endpoints
//   - GET /       : Every plan, display order.
//   - GET /{slug} : One plan.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.list)
	router.Get("/{slug}", handler.get)
	return router
}

type planView struct {
	Plan
	PriceLabel string `json:"price_label"`
}

func view(plan Plan) planView {
	return planView{Plan: plan, PriceLabel: FormatPrice(plan.PriceCents)}
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	all := Plans()
	views := make([]planView, 0, len(all))
	for _, plan := range all {
		views = append(views, view(plan))
	}
	respond.OK(writer, views)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	plan, err := Lookup(requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view(plan))
}
