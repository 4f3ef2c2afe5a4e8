package admin

import (
	"log"
	"net/http"
	"strings"

	"github.com/Rakhulsr/go-motoshop/app/helpers"
	"github.com/Rakhulsr/go-motoshop/app/services"
	"github.com/gorilla/mux"
)

func (h *AdminHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	categories, err := h.categorySvc.ListByType(r.Context(), strings.ToUpper(query.Get("type")), false, query.Get("shape") == "tree")
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, categories)
}

func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in services.CategoryInput
	if err := helpers.DecodeJSON(r, &in); err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}

	category, err := h.categorySvc.Create(r.Context(), in)
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}

	log.Printf("AdminHandler.CreateCategory: category %s (%s/%s) created", category.ID, category.Type, category.Slug)
	_ = h.render.JSON(w, http.StatusCreated, category)
}

func (h *AdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var in services.CategoryInput
	if err := helpers.DecodeJSON(r, &in); err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}

	category, err := h.categorySvc.Update(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, category)
}

func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.categorySvc.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
