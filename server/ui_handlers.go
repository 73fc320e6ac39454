package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gymstack/gymstack/principals"
	"github.com/gymstack/gymstack/token"
	"github.com/rs/zerolog/log"
)

// UIPageData is a minimal template model for UI pages
type UIPageData struct {
	AppName     string
	From        string
	CallbackURL string
	DisplayName string
	Role        principals.Role
}

func (s *Server) LoginPageHandler() http.HandlerFunc {
	// Parse the template once at startup
	tmpl, err := ParseTemplate("login.html")
	if err != nil {
		panic("Failed to parse login template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := UIPageData{
			AppName:     s.config.GetAppName(),
			From:        r.URL.Query().Get("from"),
			CallbackURL: r.URL.Query().Get("callbackUrl"),
		}
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("failed to render login page")
			http.Error(w, "Failed to render template", http.StatusInternalServerError)
		}
	}
}

func (s *Server) RegisterPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("register.html")
	if err != nil {
		panic("Failed to parse register template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := UIPageData{AppName: s.config.GetAppName()}
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("failed to render register page")
			http.Error(w, "Failed to render template", http.StatusInternalServerError)
		}
	}
}

// DashboardHandler renders the per-role dashboard shell. The gate has
// already confirmed the caller's role matches the area, so a mismatch here
// means the request skipped the gate and is rejected outright.
func (s *Server) DashboardHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("dashboard.html")
	if err != nil {
		panic("Failed to parse dashboard template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(ContextKeyClaims).(*token.Claims)
		if !ok || claims == nil {
			respondError(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		role, err := principals.ParseRole(chi.URLParam(r, "role"))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		if claims.Role != role {
			http.Redirect(w, r, claims.Role.DashboardPath(), http.StatusSeeOther)
			return
		}

		data := UIPageData{
			AppName:     s.config.GetAppName(),
			DisplayName: claims.DisplayName,
			Role:        claims.Role,
		}
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("failed to render dashboard page")
			http.Error(w, "Failed to render template", http.StatusInternalServerError)
		}
	}
}

func (s *Server) HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
