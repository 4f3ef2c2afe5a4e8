package handlers

import (
	"log"
	"net/http"

	"github.com/Rakhulsr/go-motoshop/app/helpers"
	"github.com/Rakhulsr/go-motoshop/app/services"
	"github.com/Rakhulsr/go-motoshop/app/utils/sessions"
	"github.com/unrolled/render"
)

type AuthHandler struct {
	render       *render.Render
	authSvc      *services.AuthService
	cartSvc      *services.CartService
	sessionStore sessions.SessionStore
	cookieSecure bool
}

func NewAuthHandler(render *render.Render, authSvc *services.AuthService, cartSvc *services.CartService, sessionStore sessions.SessionStore, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		render:       render,
		authSvc:      authSvc,
		cartSvc:      cartSvc,
		sessionStore: sessionStore,
		cookieSecure: cookieSecure,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if err := helpers.DecodeJSON(r, &in); err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}

	user, err := h.authSvc.Register(r.Context(), in)
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}

	log.Printf("AuthHandler.Register: user %s (%s) registered", user.ID, user.Email)
	_ = h.render.JSON(w, http.StatusCreated, user)
}

// Login starts the session and folds any guest cart into the user's cart.
// A failed merge is logged and does not fail the login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if err := helpers.DecodeJSON(r, &in); err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}

	user, err := h.authSvc.Login(r.Context(), in)
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}

	if err := h.sessionStore.SetUserID(w, r, user.ID); err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}

	if guestSession := sessions.GetCartSessionID(r); guestSession != "" {
		if _, err := h.cartSvc.MergeGuestCart(r.Context(), user.ID, guestSession); err != nil {
			log.Printf("AuthHandler.Login: failed to merge guest cart for user %s: %v", user.ID, err)
		} else {
			sessions.ClearCartSessionID(w, h.cookieSecure)
		}
	}

	_ = h.render.JSON(w, http.StatusOK, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionStore.ClearSession(w, r); err != nil {
		log.Printf("AuthHandler.Logout: failed to clear session: %v", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.authSvc.GetUser(r.Context(), helpers.UserIDFromContext(r))
	if err != nil {
		helpers.RespondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, user)
}
