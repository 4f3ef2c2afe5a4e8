package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-motoshop/app/helpers"
	"github.com/Rakhulsr/go-motoshop/app/services"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

// ContentHandler serves the public workshop service and news pages.
type ContentHandler struct {
	render     *render.Render
	catalogSvc *services.CatalogService
}

func NewContentHandler(render *render.Render, catalogSvc *services.CatalogService) *ContentHandler {
	return &ContentHandler{
		render:     render,
		catalogSvc: catalogSvc,
	}
}

func (h *ContentHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	params := listParams(r)
	items, total, err := h.catalogSvc.ListServices(r.Context(), params, true)
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, helpers.ListResponse{
		Data: items,
		Meta: helpers.NewPageMeta(params.Page, params.PerPage, total),
	})
}

func (h *ContentHandler) GetService(w http.ResponseWriter, r *http.Request) {
	item, err := h.catalogSvc.GetService(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, item)
}

func (h *ContentHandler) ListNews(w http.ResponseWriter, r *http.Request) {
	params := listParams(r)
	posts, total, err := h.catalogSvc.ListNews(r.Context(), params, true)
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, helpers.ListResponse{
		Data: posts,
		Meta: helpers.NewPageMeta(params.Page, params.PerPage, total),
	})
}

func (h *ContentHandler) GetNews(w http.ResponseWriter, r *http.Request) {
	post, err := h.catalogSvc.GetNews(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, post)
}
