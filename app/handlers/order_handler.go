package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-motoshop/app/helpers"
	"github.com/Rakhulsr/go-motoshop/app/models"
	"github.com/Rakhulsr/go-motoshop/app/services"
	"github.com/unrolled/render"
)

type OrderHandler struct {
	render   *render.Render
	orderSvc *services.OrderService
}

func NewOrderHandler(render *render.Render, orderSvc *services.OrderService) *OrderHandler {
	return &OrderHandler{
		render:   render,
		orderSvc: orderSvc,
	}
}

// ListMine returns the orders placed by the logged-in user or, for guests,
// by the current cart session.
func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	owner := services.ResolveCartOwner(r)
	if owner.IsZero() {
		_ = h.render.JSON(w, http.StatusOK, []models.Order{})
		return
	}

	orders, err := h.orderSvc.ListForOwner(r.Context(), owner)
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, orders)
}
