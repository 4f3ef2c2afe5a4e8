package admin

import (
	"net/http"

	"github.com/Rakhulsr/go-motoshop/app/helpers"
	"github.com/Rakhulsr/go-motoshop/app/services"
	"github.com/gorilla/mux"
)

func listParams(r *http.Request) services.ListParams {
	return services.ListParams{
		Search:  r.URL.Query().Get("q"),
		Page:    helpers.QueryInt(r, "page", 1),
		PerPage: helpers.QueryInt(r, "perPage", 20),
	}
}

func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params := listParams(r)
	products, total, err := h.catalogSvc.ListAllProducts(r.Context(), params)
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, helpers.ListResponse{
		Data: products,
		Meta: helpers.NewPageMeta(params.Page, params.PerPage, total),
	})
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	if err := helpers.DecodeJSON(r, &in); err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}

	product, err := h.catalogSvc.CreateProduct(r.Context(), in)
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, product)
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	if err := helpers.DecodeJSON(r, &in); err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}

	product, err := h.catalogSvc.UpdateProduct(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, product)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogSvc.DeleteProduct(r.Context(), mux.Vars(r)["id"]); err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
