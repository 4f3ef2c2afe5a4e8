package admin

import (
	"net/http"

	"github.com/Rakhulsr/go-motoshop/app/helpers"
	"github.com/Rakhulsr/go-motoshop/app/services"
	"github.com/gorilla/mux"
)

func (h *AdminHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	params := listParams(r)
	items, total, err := h.catalogSvc.ListServices(r.Context(), params, false)
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, helpers.ListResponse{
		Data: items,
		Meta: helpers.NewPageMeta(params.Page, params.PerPage, total),
	})
}

func (h *AdminHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var in services.ServiceInput
	if err := helpers.DecodeJSON(r, &in); err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}

	item, err := h.catalogSvc.CreateService(r.Context(), in)
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, item)
}

func (h *AdminHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	var in services.ServiceInput
	if err := helpers.DecodeJSON(r, &in); err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}

	item, err := h.catalogSvc.UpdateService(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, item)
}

func (h *AdminHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogSvc.DeleteService(r.Context(), mux.Vars(r)["id"]); err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) ListNews(w http.ResponseWriter, r *http.Request) {
	params := listParams(r)
	posts, total, err := h.catalogSvc.ListNews(r.Context(), params, false)
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, helpers.ListResponse{
		Data: posts,
		Meta: helpers.NewPageMeta(params.Page, params.PerPage, total),
	})
}

func (h *AdminHandler) CreateNews(w http.ResponseWriter, r *http.Request) {
	var in services.NewsInput
	if err := helpers.DecodeJSON(r, &in); err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}

	post, err := h.catalogSvc.CreateNews(r.Context(), in)
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, post)
}

func (h *AdminHandler) UpdateNews(w http.ResponseWriter, r *http.Request) {
	var in services.NewsInput
	if err := helpers.DecodeJSON(r, &in); err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}

	post, err := h.catalogSvc.UpdateNews(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, post)
}

func (h *AdminHandler) DeleteNews(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogSvc.DeleteNews(r.Context(), mux.Vars(r)["id"]); err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
