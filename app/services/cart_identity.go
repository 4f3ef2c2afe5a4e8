package services

import (
	"net/http"

	"github.com/Rakhulsr/go-motoshop/app/helpers"
	"github.com/Rakhulsr/go-motoshop/app/models"
	"github.com/Rakhulsr/go-motoshop/app/utils/sessions"
)

// ResolveCartOwner reads the caller's cart identity from the request. The
// authenticated user id set by the auth middleware wins over the guest
// cookie; both are returned so a pending guest cart can be merged.
func ResolveCartOwner(r *http.Request) models.CartOwner {
	return models.CartOwner{
		UserID:    helpers.UserIDFromContext(r),
		SessionID: sessions.GetCartSessionID(r),
	}
}
