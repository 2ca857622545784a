package handlers

import (
	"net/http"

	"github.com/google/uuid"
)

const sessionCookieName = "gameshop_session"

// sessionID resolves the cart session for a request. API clients may pass an
// explicit X-Session-ID header; browsers fall back to a long-lived cookie,
// minted here on first contact.
func sessionID(w http.ResponseWriter, r *http.Request) string {

	if id := r.Header.Get("X-Session-ID"); id != "" {
		return id
	}

	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.NewString()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   60 * 60 * 24 * 30,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return id
}
