package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/Rakhulsr/go-motoshop/app/helpers"
	"github.com/Rakhulsr/go-motoshop/app/models"
	"github.com/Rakhulsr/go-motoshop/app/services"
	"github.com/Rakhulsr/go-motoshop/app/utils/apperror"
	"github.com/Rakhulsr/go-motoshop/app/utils/sessions"
	"github.com/unrolled/render"
)

type CartHandler struct {
	render       *render.Render
	cartSvc      *services.CartService
	cookieSecure bool
}

func NewCartHandler(render *render.Render, cartSvc *services.CartService, cookieSecure bool) *CartHandler {
	return &CartHandler{
		render:       render,
		cartSvc:      cartSvc,
		cookieSecure: cookieSecure,
	}
}

// resolveCartOwner returns the request's cart owner. A logged-in caller still
// holding a guest cookie gets the guest cart merged into the user cart and
// the cookie cleared first.
func resolveCartOwner(w http.ResponseWriter, r *http.Request, cartSvc *services.CartService, cookieSecure bool) (models.CartOwner, error) {
	owner := services.ResolveCartOwner(r)
	if !owner.HasGuestSession() {
		return owner, nil
	}

	if _, err := cartSvc.MergeGuestCart(r.Context(), owner.UserID, owner.SessionID); err != nil {
		return owner, err
	}
	sessions.ClearCartSessionID(w, cookieSecure)
	owner.SessionID = ""
	return owner, nil
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	owner, err := resolveCartOwner(w, r, h.cartSvc, h.cookieSecure)
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}

	cart, err := h.cartSvc.GetCart(r.Context(), owner)
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, cart)
}

func (h *CartHandler) GetCartCount(w http.ResponseWriter, r *http.Request) {
	owner, err := resolveCartOwner(w, r, h.cartSvc, h.cookieSecure)
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}

	count, err := h.cartSvc.Count(r.Context(), owner)
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]int{"count": count})
}

// AddItem mints a guest token for callers without any identity. The cookie is
// only written once the item has been stored.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var in services.AddItemInput
	if err := helpers.DecodeJSON(r, &in); err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}

	owner, err := resolveCartOwner(w, r, h.cartSvc, h.cookieSecure)
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}

	minted := false
	if owner.IsZero() {
		owner.SessionID = sessions.NewCartSessionID()
		minted = true
	}

	cart, err := h.cartSvc.AddItem(r.Context(), owner, in)
	if err != nil {
		if apperror.Is(err, apperror.Conflict) {
			helpers.RespondErrorWithStatus(h.render, w, r, err, http.StatusBadRequest)
			return
		}
		helpers.RespondError(h.render, w, r, err)
		return
	}

	if minted {
		sessions.SetCartSessionID(w, owner.SessionID, h.cookieSecure)
		log.Printf("CartHandler.AddItem: new guest cart session issued")
	}
	_ = h.render.JSON(w, http.StatusOK, cart)
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var in services.UpdateItemInput
	if err := helpers.DecodeJSON(r, &in); err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}

	owner, err := resolveCartOwner(w, r, h.cartSvc, h.cookieSecure)
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}

	cart, err := h.cartSvc.UpdateItem(r.Context(), owner, in)
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, cart)
}

// DeleteItem removes one line (?productId=) or the whole cart (?clear=true).
func (h *CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	productID := strings.TrimSpace(query.Get("productId"))
	clearAll := query.Get("clear") == "true"

	if productID == "" && !clearAll {
		helpers.RespondError(h.render, w, r, apperror.NewInvalidFields("Thiếu sản phẩm cần xóa.", map[string]string{
			"productId": "Vui lòng chọn sản phẩm hoặc dùng clear=true để xóa toàn bộ giỏ hàng.",
		}))
		return
	}

	owner, err := resolveCartOwner(w, r, h.cartSvc, h.cookieSecure)
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}

	var cart *services.CartView
	if clearAll {
		cart, err = h.cartSvc.Clear(r.Context(), owner)
	} else {
		cart, err = h.cartSvc.RemoveItem(r.Context(), owner, productID)
	}
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, cart)
}
