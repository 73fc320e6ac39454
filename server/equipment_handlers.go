package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/gymstack/gymstack/equipment"
	"github.com/gymstack/gymstack/principals"
)

type equipmentRequest struct {
	GymID       string           `json:"gymId"`
	Name        string           `json:"name"`
	Category    string           `json:"category"`
	Status      equipment.Status `json:"status"`
	PurchasedAt time.Time        `json:"purchasedAt"`
}

// CreateEquipmentHandler registers a machine under a gym. Only the owning
// gym (or the operator) may add to its inventory.
func (s *Server) CreateEquipmentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := s.requireClaims(w, r)
		if !ok {
			return
		}

		var req equipmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.GymID == "" {
			req.GymID = claims.ID
		}
		if req.Name == "" {
			respondError(w, http.StatusBadRequest, "name is required")
			return
		}

		if err := Authorize(claims, req.GymID, principals.RoleGymOwner); err != nil {
			respondRepoError(w, err)
			return
		}

		item := &equipment.Equipment{
			GymID:       req.GymID,
			Name:        req.Name,
			Category:    req.Category,
			Status:      req.Status,
			PurchasedAt: req.PurchasedAt,
		}
		if item.Status == "" {
			item.Status = equipment.StatusOperational
		}

		if err := s.repos.Equipment.Upsert(item); err != nil {
			respondRepoError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, item)
	}
}

func (s *Server) GetEquipmentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := s.requireClaims(w, r)
		if !ok {
			return
		}

		// Existence before ownership: a missing record is 404 even for a
		// caller who would otherwise be forbidden.
		item, err := s.repos.Equipment.Get(chi.URLParam(r, "id"))
		if err != nil {
			respondRepoError(w, err)
			return
		}
		if err := Authorize(claims, item.GymID, principals.RoleGymOwner); err != nil {
			respondRepoError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, item)
	}
}

func (s *Server) ListEquipmentHandler() http.HandlerFunc {
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

		items, err := s.repos.Equipment.ListByGym(gymID)
		if err != nil {
			respondRepoError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"equipment": items})
	}
}

func (s *Server) UpdateEquipmentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := s.requireClaims(w, r)
		if !ok {
			return
		}

		item, err := s.repos.Equipment.Get(chi.URLParam(r, "id"))
		if err != nil {
			respondRepoError(w, err)
			return
		}
		if err := Authorize(claims, item.GymID, principals.RoleGymOwner); err != nil {
			respondRepoError(w, err)
			return
		}

		var req equipmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Name != "" {
			item.Name = req.Name
		}
		if req.Category != "" {
			item.Category = req.Category
		}
		if req.Status != "" {
			item.Status = req.Status
		}
		if !req.PurchasedAt.IsZero() {
			item.PurchasedAt = req.PurchasedAt
		}

		if err := s.repos.Equipment.Upsert(item); err != nil {
			respondRepoError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, item)
	}
}

func (s *Server) DeleteEquipmentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := s.requireClaims(w, r)
		if !ok {
			return
		}

		item, err := s.repos.Equipment.Get(chi.URLParam(r, "id"))
		if err != nil {
			respondRepoError(w, err)
			return
		}
		if err := Authorize(claims, item.GymID, principals.RoleGymOwner); err != nil {
			respondRepoError(w, err)
			return
		}

		if err := s.repos.Equipment.Delete(item.ID); err != nil {
			respondRepoError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
