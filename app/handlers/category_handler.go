package handlers

import (
	"net/http"
	"strings"

	"github.com/Rakhulsr/go-motoshop/app/helpers"
	"github.com/Rakhulsr/go-motoshop/app/services"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type CategoryHandler struct {
	render      *render.Render
	categorySvc *services.CategoryService
}

func NewCategoryHandler(render *render.Render, categorySvc *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		render:      render,
		categorySvc: categorySvc,
	}
}

// List serves GET /api/categories?type=PRODUCT&shape=tree|flat. Only active
// categories are listed; inactive ones are visible through the admin API.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	categoryType := strings.ToUpper(strings.TrimSpace(query.Get("type")))
	nested := query.Get("shape") != "flat"

	categories, err := h.categorySvc.ListByType(r.Context(), categoryType, true, nested)
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	category, err := h.categorySvc.GetBySlug(r.Context(), strings.ToUpper(vars["type"]), vars["slug"])
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, category)
}
