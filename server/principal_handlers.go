package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	apperrors "github.com/gymstack/gymstack/internal/errors"
	"github.com/gymstack/gymstack/principals"
	"github.com/rs/zerolog/log"
)

type provisionRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	GymID    string `json:"gymId"`
}

type statusRequest struct {
	Status principals.Status `json:"status"`
}

// CreatePrincipalHandler provisions a trainer or member account under a gym.
// Self-registration is owners only; staff and members always arrive through
// this endpoint with the owner (or the operator) acting on their behalf.
func (s *Server) CreatePrincipalHandler(role principals.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := s.requireClaims(w, r)
		if !ok {
			return
		}

		var req provisionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		email := principals.NormalizeEmail(req.Email)
		if email == "" || req.Name == "" {
			respondError(w, http.StatusBadRequest, "email and name are required")
			return
		}
		if req.GymID == "" {
			req.GymID = claims.ID
		}
		if err := Authorize(claims, req.GymID, principals.RoleGymOwner); err != nil {
			respondRepoError(w, err)
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
			log.Err(err).Msg("failed to hash password at provisioning")
			respondError(w, http.StatusInternalServerError, "internal error")
			return
		}

		p := &principals.Principal{
			Email:        email,
			Name:         req.Name,
			Role:         role,
			GymID:        req.GymID,
			Status:       principals.StatusActive,
			PasswordHash: passwordHash,
		}

		store, err := s.repos.Directory.ForRole(role)
		if err != nil {
			respondRepoError(w, err)
			return
		}
		if err := store.Upsert(p); err != nil {
			respondRepoError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{
			"user": userFromPrincipal(p.WithoutPassword()),
		})
	}
}

func (s *Server) GetPrincipalHandler(role principals.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := s.requireClaims(w, r)
		if !ok {
			return
		}

		store, err := s.repos.Directory.ForRole(role)
		if err != nil {
			respondRepoError(w, err)
			return
		}
		p, err := store.GetByID(chi.URLParam(r, "id"))
		if err != nil {
			respondRepoError(w, err)
			return
		}
		// Principals may read themselves; otherwise the owning gym decides.
		if claims.ID != p.ID {
			if err := Authorize(claims, p.GymID, principals.RoleGymOwner); err != nil {
				respondRepoError(w, err)
				return
			}
		}
		respondJSON(w, http.StatusOK, p.WithoutPassword())
	}
}

func (s *Server) ListPrincipalsHandler(role principals.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := s.requireClaims(w, r)
		if !ok {
			return
		}

		gymID := r.URL.Query().Get("gymId")
		if gymID == "" {
			gymID = claims.ID
		}
		if err := Authorize(claims, gymID, principals.RoleGymOwner); err != nil {
			respondRepoError(w, err)
			return
		}

		store, err := s.repos.Directory.ForRole(role)
		if err != nil {
			respondRepoError(w, err)
			return
		}
		all, err := store.List(0, 0)
		if err != nil {
			respondRepoError(w, err)
			return
		}

		scoped := make([]*principals.Principal, 0, len(all))
		for _, p := range all {
			if p.GymID == gymID {
				scoped = append(scoped, p.WithoutPassword())
			}
		}
		respondJSON(w, http.StatusOK, map[string]any{"principals": scoped})
	}
}

func (s *Server) UpdatePrincipalHandler(role principals.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := s.requireClaims(w, r)
		if !ok {
			return
		}

		store, err := s.repos.Directory.ForRole(role)
		if err != nil {
			respondRepoError(w, err)
			return
		}
		p, err := store.GetByID(chi.URLParam(r, "id"))
		if err != nil {
			respondRepoError(w, err)
			return
		}
		if err := Authorize(claims, p.GymID, principals.RoleGymOwner); err != nil {
			respondRepoError(w, err)
			return
		}

		var req provisionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Name != "" {
			p.Name = req.Name
		}
		if req.Email != "" {
			email := principals.NormalizeEmail(req.Email)
			if email != p.Email {
				if _, err := s.repos.Directory.FindByEmail(email); err == nil {
					respondError(w, http.StatusConflict, "email already registered")
					return
				}
				p.Email = email
			}
		}
		if req.Password != "" {
			if err := principals.ValidatePasswordStrength(req.Password); err != nil {
				respondError(w, http.StatusBadRequest, err.Error())
				return
			}
			hash, err := principals.HashPassword(req.Password)
			if err != nil {
				log.Err(err).Msg("failed to hash password at update")
				respondError(w, http.StatusInternalServerError, "internal error")
				return
			}
			p.PasswordHash = hash
		}

		if err := store.Upsert(p); err != nil {
			respondRepoError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"user": userFromPrincipal(p.WithoutPassword()),
		})
	}
}

func (s *Server) DeletePrincipalHandler(role principals.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := s.requireClaims(w, r)
		if !ok {
			return
		}

		store, err := s.repos.Directory.ForRole(role)
		if err != nil {
			respondRepoError(w, err)
			return
		}
		p, err := store.GetByID(chi.URLParam(r, "id"))
		if err != nil {
			respondRepoError(w, err)
			return
		}
		if err := Authorize(claims, p.GymID, principals.RoleGymOwner); err != nil {
			respondRepoError(w, err)
			return
		}

		if err := store.Delete(p.ID); err != nil {
			respondRepoError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// UpdatePrincipalStatusHandler suspends or reactivates an account. The role
// comes from the path, so the lookup goes straight to the right store
// instead of probing.
func (s *Server) UpdatePrincipalStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := s.requireClaims(w, r)
		if !ok {
			return
		}

		role, err := principals.ParseRole(chi.URLParam(r, "role"))
		if err != nil {
			respondRepoError(w, apperrors.ErrUnknownRole)
			return
		}

		p, err := s.repos.Directory.FindByID(role, chi.URLParam(r, "id"))
		if err != nil {
			respondRepoError(w, err)
			return
		}
		if err := Authorize(claims, p.GymID, principals.RoleGymOwner); err != nil {
			respondRepoError(w, err)
			return
		}

		var req statusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Status != principals.StatusActive && req.Status != principals.StatusSuspended {
			respondError(w, http.StatusBadRequest, "status must be active or suspended")
			return
		}

		if err := s.repos.Directory.SetStatus(role, p.ID, req.Status); err != nil {
			respondRepoError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"id":     p.ID,
			"status": req.Status,
		})
	}
}
