package admin

import (
	"log"
	"net/http"

	"github.com/Rakhulsr/go-motoshop/app/helpers"
	"github.com/Rakhulsr/go-motoshop/app/models"
	"github.com/Rakhulsr/go-motoshop/app/repositories"
	"github.com/Rakhulsr/go-motoshop/app/services"
	"github.com/gorilla/csrf"
	"github.com/unrolled/render"
)

type AdminHandler struct {
	render      *render.Render
	userRepo    repositories.UserRepositoryImpl
	categorySvc *services.CategoryService
	catalogSvc  *services.CatalogService
	orderSvc    *services.OrderService
}

func NewAdminHandler(
	render *render.Render,
	userRepo repositories.UserRepositoryImpl,
	categorySvc *services.CategoryService,
	catalogSvc *services.CatalogService,
	orderSvc *services.OrderService,
) *AdminHandler {
	return &AdminHandler{
		render:      render,
		userRepo:    userRepo,
		categorySvc: categorySvc,
		catalogSvc:  catalogSvc,
		orderSvc:    orderSvc,
	}
}

type DashboardStats struct {
	TotalUsers    int64          `json:"totalUsers"`
	TotalProducts int64          `json:"totalProducts"`
	TotalOrders   int64          `json:"totalOrders"`
	RecentOrders  []models.Order `json:"recentOrders"`
	CurrentAdmin  *models.User   `json:"currentAdmin,omitempty"`
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stats := DashboardStats{}

	var err error
	if stats.TotalUsers, err = h.userRepo.Count(ctx); err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}
	if stats.TotalProducts, err = h.catalogSvc.CountProducts(ctx); err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}
	if stats.TotalOrders, err = h.orderSvc.Count(ctx); err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}

	recent, _, err := h.orderSvc.List(ctx, "", 1, 5)
	if err != nil {
		log.Printf("AdminHandler.Dashboard: failed to load recent orders: %v", err)
		recent = []models.Order{}
	}
	stats.RecentOrders = recent

	if user, ok := r.Context().Value(helpers.ContextKeyUser).(*models.User); ok {
		stats.CurrentAdmin = user
	}

	_ = h.render.JSON(w, http.StatusOK, stats)
}

// CSRFToken hands the admin UI the token it must echo in X-CSRF-Token on
// every state-changing admin request.
func (h *AdminHandler) CSRFToken(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-CSRF-Token", csrf.Token(r))
	_ = h.render.JSON(w, http.StatusOK, map[string]string{"csrfToken": csrf.Token(r)})
}
