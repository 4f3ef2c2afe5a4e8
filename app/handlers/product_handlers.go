package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-motoshop/app/helpers"
	"github.com/Rakhulsr/go-motoshop/app/models"
	"github.com/Rakhulsr/go-motoshop/app/services"
	"github.com/Rakhulsr/go-motoshop/app/utils/calc"
	"github.com/Rakhulsr/go-motoshop/app/utils/format"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type ProductHandler struct {
	render     *render.Render
	catalogSvc *services.CatalogService
}

func NewProductHandler(render *render.Render, catalogSvc *services.CatalogService) *ProductHandler {
	return &ProductHandler{
		render:     render,
		catalogSvc: catalogSvc,
	}
}

// ProductResponse adds the storefront's derived price fields to a product.
type ProductResponse struct {
	*models.Product
	EffectivePrice     float64 `json:"effectivePrice"`
	FormattedPrice     string  `json:"formattedPrice"`
	DiscountPercent    int64   `json:"discountPercent"`
	FormattedBasePrice string  `json:"formattedBasePrice"`
	PrimaryImage       string  `json:"primaryImage"`
}

func newProductResponse(p *models.Product) ProductResponse {
	effective := p.EffectivePrice()
	return ProductResponse{
		Product:            p,
		EffectivePrice:     effective.InexactFloat64(),
		FormattedPrice:     format.FormatVND(effective),
		DiscountPercent:    calc.DiscountPercent(p.Price, effective).IntPart(),
		FormattedBasePrice: format.FormatVND(p.Price),
		PrimaryImage:       p.PrimaryImage(),
	}
}

func listParams(r *http.Request) services.ListParams {
	query := r.URL.Query()
	return services.ListParams{
		CategorySlug: query.Get("category"),
		Search:       query.Get("q"),
		Page:         helpers.QueryInt(r, "page", 1),
		PerPage:      helpers.QueryInt(r, "perPage", 12),
	}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	params := listParams(r)
	products, total, err := h.catalogSvc.ListProducts(r.Context(), params)
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}

	data := make([]ProductResponse, 0, len(products))
	for i := range products {
		data = append(data, newProductResponse(&products[i]))
	}
	_ = h.render.JSON(w, http.StatusOK, helpers.ListResponse{
		Data: data,
		Meta: helpers.NewPageMeta(params.Page, params.PerPage, total),
	})
}

func (h *ProductHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalogSvc.GetProduct(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, newProductResponse(product))
}
