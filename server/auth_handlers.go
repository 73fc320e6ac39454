package server

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gymstack/gymstack/internal/metrics"
	"github.com/gymstack/gymstack/principals"
	"github.com/gymstack/gymstack/token"
	"github.com/rs/zerolog/log"
)

// userResponse is the client-facing shape of an authenticated principal.
type userResponse struct {
	ID          string          `json:"id"`
	Email       string          `json:"email"`
	DisplayName string          `json:"displayName"`
	Role        principals.Role `json:"role"`
}

func userFromPrincipal(p *principals.Principal) userResponse {
	return userResponse{
		ID:          p.ID,
		Email:       p.Email,
		DisplayName: p.Name,
		Role:        p.Role,
	}
}

func userFromClaims(c *token.Claims) userResponse {
	return userResponse{
		ID:          c.ID,
		Email:       c.Email,
		DisplayName: c.DisplayName,
		Role:        c.Role,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginHandler verifies credentials, sets the session cookie, and returns
// the principal with its assigned role. Every failure is the same generic
// invalid-credentials response; the caller never learns which part was
// wrong.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.loginLimiter.allow(clientIP(r)) {
			metrics.LoginAttempts.WithLabelValues("rate_limited").Inc()
			respondError(w, http.StatusTooManyRequests, "too many login attempts")
			return
		}

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		principal, err := s.auth.VerifyCredentials(req.Email, req.Password)
		if err != nil {
			metrics.LoginAttempts.WithLabelValues("failure").Inc()
			respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		rawToken, ttl, err := s.auth.IssueToken(principal)
		if err != nil {
			log.Err(err).Msg("failed to issue token at login")
			respondError(w, http.StatusInternalServerError, "internal error")
			return
		}

		metrics.LoginAttempts.WithLabelValues("success").Inc()
		s.setTokenCookie(w, r, rawToken, int(ttl.Seconds()))
		respondJSON(w, http.StatusOK, map[string]any{
			"user": userFromPrincipal(principal),
			"role": principal.Role,
		})
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	GymName  string `json:"gymName"`
}

// RegisterHandler creates a new gym-owner account and logs it in. Trainers
// and members are provisioned by their gym owner, never self-registered.
func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		email := principals.NormalizeEmail(req.Email)
		if email == "" || req.GymName == "" {
			respondError(w, http.StatusBadRequest, "email and gymName are required")
			return
		}
		if err := principals.ValidatePasswordStrength(req.Password); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if _, err := s.repos.Directory.FindByEmail(email); err == nil {
			respondError(w, http.StatusConflict, "email already registered")
			return
		}

		passwordHash, err := principals.HashPassword(req.Password)
		if err != nil {
			log.Err(err).Msg("failed to hash password at registration")
			respondError(w, http.StatusInternalServerError, "internal error")
			return
		}

		ownerID := uuid.New().String()
		owner := &principals.Principal{
			ID:           ownerID,
			Email:        email,
			Name:         req.GymName,
			Role:         principals.RoleGymOwner,
			GymID:        ownerID, // a gym owner's gym is keyed by its own id
			Status:       principals.StatusActive,
			PasswordHash: passwordHash,
		}

		store, err := s.repos.Directory.ForRole(principals.RoleGymOwner)
		if err != nil {
			respondRepoError(w, err)
			return
		}
		if err := store.Upsert(owner); err != nil {
			respondRepoError(w, err)
			return
		}

		rawToken, ttl, err := s.auth.IssueToken(owner.WithoutPassword())
		if err != nil {
			log.Err(err).Msg("failed to issue token at registration")
			respondError(w, http.StatusInternalServerError, "internal error")
			return
		}

		s.setTokenCookie(w, r, rawToken, int(ttl.Seconds()))
		respondJSON(w, http.StatusCreated, map[string]any{
			"user": userFromPrincipal(owner.WithoutPassword()),
			"role": owner.Role,
		})
	}
}

// LogoutHandler clears the session cookie. It succeeds whether or not a
// session exists; there is no server-side state to tear down, so logout is
// cookie clearing and nothing else.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setNoStoreHeaders(w)
		s.clearTokenCookie(w, r)
		respondJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// RefreshHandler re-issues the caller's token with a fresh expiry. It
// extends sessions only: an unauthenticated caller gets 401, never a token.
func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawToken, ttl, err := s.auth.Refresh(r)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		setNoStoreHeaders(w)
		s.setTokenCookie(w, r, rawToken, int(ttl.Seconds()))
		respondJSON(w, http.StatusOK, map[string]any{
			"expiresIn": int(ttl.Seconds()),
		})
	}
}

// MeHandler returns the decoded claims reshaped into the client-facing user
// object.
func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := s.requireClaims(w, r)
		if !ok {
			return
		}
		setNoStoreHeaders(w)
		respondJSON(w, http.StatusOK, map[string]any{
			"user": userFromClaims(claims),
		})
	}
}
