package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-motoshop/app/helpers"
	"github.com/Rakhulsr/go-motoshop/app/services"
	"github.com/unrolled/render"
)

type CheckoutHandler struct {
	render       *render.Render
	cartSvc      *services.CartService
	checkoutSvc  *services.CheckoutService
	cookieSecure bool
}

func NewCheckoutHandler(render *render.Render, cartSvc *services.CartService, checkoutSvc *services.CheckoutService, cookieSecure bool) *CheckoutHandler {
	return &CheckoutHandler{
		render:       render,
		cartSvc:      cartSvc,
		checkoutSvc:  checkoutSvc,
		cookieSecure: cookieSecure,
	}
}

func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var in services.CheckoutInput
	if err := helpers.DecodeJSON(r, &in); err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}

	owner, err := resolveCartOwner(w, r, h.cartSvc, h.cookieSecure)
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}

	order, err := h.checkoutSvc.Submit(r.Context(), owner, in)
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, order)
}
