package admin

import (
	"log"
	"net/http"

	"github.com/Rakhulsr/go-motoshop/app/helpers"
	"github.com/gorilla/mux"
)

type orderStatusRequest struct {
	Status string `json:"status"`
}

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	page := helpers.QueryInt(r, "page", 1)
	perPage := helpers.QueryInt(r, "perPage", 20)

	orders, total, err := h.orderSvc.List(r.Context(), r.URL.Query().Get("status"), page, perPage)
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, helpers.ListResponse{
		Data: orders,
		Meta: helpers.NewPageMeta(page, perPage, total),
	})
}

func (h *AdminHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderSvc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, order)
}

func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req orderStatusRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}

	orderID := mux.Vars(r)["id"]
	order, err := h.orderSvc.UpdateStatus(r.Context(), orderID, req.Status)
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}

	log.Printf("AdminHandler.UpdateOrderStatus: order %s set to %s", order.OrderCode, order.Status)
	_ = h.render.JSON(w, http.StatusOK, order)
}
