package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/gymstack/gymstack/auth"
	"github.com/gymstack/gymstack/internal/metrics"
	"github.com/gymstack/gymstack/principals"
	"github.com/gymstack/gymstack/token"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyClaims stores the authenticated caller's token claims
const ContextKeyClaims ContextKey = "claims"

// roleAreas maps each role to the path prefixes reserved for it. A path
// under any reserved prefix is off limits to every other role.
var roleAreas = map[principals.Role][]string{
	principals.RoleGymOwner:   {"/dashboard/gym-owner", "/api/gym-owner"},
	principals.RoleTrainer:    {"/dashboard/trainer", "/api/trainer"},
	principals.RoleMember:     {"/dashboard/member", "/api/member"},
	principals.RoleSuperAdmin: {"/dashboard/super-admin", "/api/super-admin"},
}

// publicPaths are reachable without a token.
var publicPaths = map[string]bool{
	RouteLogin:    true,
	RouteRegister: true,
}

// gateExclusions bypass the gate entirely: framework assets, infrastructure
// endpoints, and the dedicated auth API sub-path. Nothing here may ever be
// blocked by authentication.
var gateExclusions = []string{
	RouteStatic + "/",
	RouteHealthz,
	RouteMetrics,
	"/api/auth/",
	"/favicon.ico",
}

// protectedPrefixes require a valid token; any path outside them (and
// outside the public set) is unprotected and passes through.
var protectedPrefixes = []string{
	RouteDashboard,
	"/api",
}

// AccessGate classifies every request path as public, protected, or
// role-restricted and blocks or redirects before any handler runs.
func (s *Server) AccessGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if isExcluded(path) {
			next.ServeHTTP(w, r)
			return
		}

		if publicPaths[path] {
			if path == RouteLogin {
				// Never let a cached authenticated page be served from
				// here after logout.
				setNoCacheHeaders(w)
			}
			metrics.GateDecisions.WithLabelValues("allow").Inc()
			next.ServeHTTP(w, r)
			return
		}

		if !isProtected(path) {
			next.ServeHTTP(w, r)
			return
		}

		// REQUIRE_AUTH
		cookie, err := r.Cookie(auth.CookieName)
		if err != nil || cookie.Value == "" {
			metrics.GateDecisions.WithLabelValues(ReasonSessionExpired).Inc()
			s.redirectToLogin(w, r, ReasonSessionExpired)
			return
		}

		result := s.auth.Authenticate(r)
		if !result.IsAuthenticated {
			metrics.GateDecisions.WithLabelValues(ReasonInvalidToken).Inc()
			s.redirectToLogin(w, r, ReasonInvalidToken)
			return
		}

		// CHECK_ROLE
		if !s.roleMayEnter(result.Claims, path) {
			metrics.GateDecisions.WithLabelValues("role_redirect").Inc()
			http.Redirect(w, r, result.Claims.Role.DashboardPath(), http.StatusSeeOther)
			return
		}

		// Allowed. No intermediary or shared browser cache may replay a
		// privileged response to an unauthenticated request.
		setNoStoreHeaders(w)
		metrics.GateDecisions.WithLabelValues("allow").Inc()

		ctx := context.WithValue(r.Context(), ContextKeyClaims, result.Claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// roleMayEnter decides whether the caller's role may enter the path. The
// operator exception mirrors the credential check: a super-admin token with
// the distinguished email enters the super-admin area regardless of whether
// a store record exists.
func (s *Server) roleMayEnter(claims *token.Claims, path string) bool {
	owner, restricted := restrictedAreaOwner(path)
	if !restricted {
		return true
	}
	if owner == principals.RoleSuperAdmin {
		return claims.Role == principals.RoleSuperAdmin &&
			principals.NormalizeEmail(claims.Email) == principals.NormalizeEmail(s.config.GetSuperAdminEmail())
	}
	return claims.Role == owner
}

// restrictedAreaOwner reports which role, if any, the path's area belongs to.
func restrictedAreaOwner(path string) (principals.Role, bool) {
	for role, prefixes := range roleAreas {
		for _, prefix := range prefixes {
			if path == prefix || strings.HasPrefix(path, prefix+"/") {
				return role, true
			}
		}
	}
	return "", false
}

func isExcluded(path string) bool {
	for _, prefix := range gateExclusions {
		if path == prefix || strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func isProtected(path string) bool {
	for _, prefix := range protectedPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

// redirectToLogin sends the caller to the login page carrying the original
// path and a reason code so the client can render an appropriate message.
func (s *Server) redirectToLogin(w http.ResponseWriter, r *http.Request, reason string) {
	query := url.Values{}
	query.Set("callbackUrl", r.URL.Path)
	query.Set("from", reason)
	http.Redirect(w, r, RouteLogin+"?"+query.Encode(), http.StatusSeeOther)
}

// setNoCacheHeaders marks a response as revalidate-always (login page).
func setNoCacheHeaders(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
}

// setNoStoreHeaders forbids caching entirely (privileged responses).
func setNoStoreHeaders(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
