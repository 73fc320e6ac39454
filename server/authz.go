package server

import (
	"net/http"

	apperrors "github.com/gymstack/gymstack/internal/errors"
	"github.com/gymstack/gymstack/principals"
	"github.com/gymstack/gymstack/token"
)

// Authorize is the single ownership predicate applied by every resource
// handler: super-admin may act on anything; an allowed role may act only on
// records whose owning id equals the caller's id.
func Authorize(claims *token.Claims, ownerID string, allowed ...principals.Role) error {
	if claims == nil {
		return apperrors.ErrNotAuthenticated
	}
	if claims.Role == principals.RoleSuperAdmin {
		return nil
	}
	for _, role := range allowed {
		if claims.Role == role && claims.ID == ownerID {
			return nil
		}
	}
	return apperrors.ErrForbidden
}

// requireClaims re-derives the authenticated principal for a handler. The
// gate has already vetted the path, but handlers never trust that: each one
// goes through the authenticator choke point itself.
func (s *Server) requireClaims(w http.ResponseWriter, r *http.Request) (*token.Claims, bool) {
	result := s.auth.Authenticate(r)
	if !result.IsAuthenticated {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return nil, false
	}
	return result.Claims, true
}
