package server

import (
	"net/http"
	"time"

	"github.com/gymstack/gymstack/auth"
)

// setTokenCookie writes the session cookie: httpOnly, site-wide, lax, and
// secure whenever the request or the environment calls for it.
func (s *Server) setTokenCookie(w http.ResponseWriter, r *http.Request, value string, maxAge int) {
	isSecure := s.config.IsProduction() || getScheme(r) == "https"

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

// clearTokenCookie destroys the session cookie by overwriting it with an
// empty value and an expiry in the past.
func (s *Server) clearTokenCookie(w http.ResponseWriter, r *http.Request) {
	isSecure := s.config.IsProduction() || getScheme(r) == "https"

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}
