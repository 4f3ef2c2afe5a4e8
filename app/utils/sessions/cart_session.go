package sessions

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	CartCookieName   = "cart_session_id"
	CartCookieMaxAge = 30 * 24 * time.Hour
)

func NewCartSessionID() string {
	return uuid.New().String()
}

func GetCartSessionID(r *http.Request) string {
	cookie, err := r.Cookie(CartCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func SetCartSessionID(w http.ResponseWriter, sessionID string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CartCookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(CartCookieMaxAge / time.Second),
		Expires:  time.Now().Add(CartCookieMaxAge),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearCartSessionID(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CartCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
