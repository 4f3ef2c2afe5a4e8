package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-motoshop/app/helpers"
	"github.com/Rakhulsr/go-motoshop/app/models"
	"github.com/Rakhulsr/go-motoshop/app/services"
	"github.com/Rakhulsr/go-motoshop/app/utils/apperror"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

type HomeHandler struct {
	render      *render.Render
	db          *gorm.DB
	categorySvc *services.CategoryService
	catalogSvc  *services.CatalogService
}

func NewHomeHandler(r *render.Render, db *gorm.DB, categorySvc *services.CategoryService, catalogSvc *services.CatalogService) *HomeHandler {
	return &HomeHandler{
		render:      r,
		db:          db,
		categorySvc: categorySvc,
		catalogSvc:  catalogSvc,
	}
}

// Home bundles what the storefront landing page needs in one call.
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	categories, err := h.categorySvc.ListByType(ctx, models.CategoryTypeProduct, true, true)
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}

	products, _, err := h.catalogSvc.ListProducts(ctx, services.ListParams{Page: 1, PerPage: 8})
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}
	featured := make([]ProductResponse, 0, len(products))
	for i := range products {
		featured = append(featured, newProductResponse(&products[i]))
	}

	workshop, _, err := h.catalogSvc.ListServices(ctx, services.ListParams{Page: 1, PerPage: 6}, true)
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}

	news, _, err := h.catalogSvc.ListNews(ctx, services.ListParams{Page: 1, PerPage: 3}, true)
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
		"featured":   featured,
		"services":   workshop,
		"news":       news,
	})
}

func (h *HomeHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	database := "ok"
	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(r.Context()) != nil {
		status = http.StatusServiceUnavailable
		database = "unavailable"
	}
	_ = h.render.JSON(w, status, map[string]string{"status": http.StatusText(status), "database": database})
}

func (h *HomeHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	helpers.RespondError(h.render, w, r, apperror.NewNotFound("Không tìm thấy đường dẫn yêu cầu."))
}
