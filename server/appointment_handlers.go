package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/gymstack/gymstack/appointments"
	apperrors "github.com/gymstack/gymstack/internal/errors"
	"github.com/gymstack/gymstack/principals"
	"github.com/gymstack/gymstack/token"
)

type appointmentRequest struct {
	GymID     string              `json:"gymId"`
	TrainerID string              `json:"trainerId"`
	MemberID  string              `json:"memberId"`
	StartsAt  time.Time           `json:"startsAt"`
	EndsAt    time.Time           `json:"endsAt"`
	Notes     string              `json:"notes"`
	Status    appointments.Status `json:"status"`
}

// authorizeAppointment applies the ownership rules for a single booking.
// Writes are limited to the assigned trainer and the owning gym; reads also
// admit the booked member. Super-admin passes through Authorize as always.
func authorizeAppointment(claims *token.Claims, a *appointments.Appointment, write bool) error {
	if err := Authorize(claims, a.TrainerID, principals.RoleTrainer); err == nil {
		return nil
	}
	if err := Authorize(claims, a.GymID, principals.RoleGymOwner); err == nil {
		return nil
	}
	if !write {
		if err := Authorize(claims, a.MemberID, principals.RoleMember); err == nil {
			return nil
		}
	}
	return apperrors.ErrForbidden
}

func (s *Server) CreateAppointmentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := s.requireClaims(w, r)
		if !ok {
			return
		}

		var req appointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if claims.Role == principals.RoleTrainer && req.TrainerID == "" {
			req.TrainerID = claims.ID
		}
		if claims.Role == principals.RoleGymOwner && req.GymID == "" {
			req.GymID = claims.ID
		}
		if req.GymID == "" || req.TrainerID == "" || req.MemberID == "" {
			respondError(w, http.StatusBadRequest, "gymId, trainerId and memberId are required")
			return
		}
		if req.StartsAt.IsZero() || req.EndsAt.IsZero() || !req.EndsAt.After(req.StartsAt) {
			respondError(w, http.StatusBadRequest, "invalid time range")
			return
		}

		appt := &appointments.Appointment{
			GymID:     req.GymID,
			TrainerID: req.TrainerID,
			MemberID:  req.MemberID,
			StartsAt:  req.StartsAt,
			EndsAt:    req.EndsAt,
			Notes:     req.Notes,
			Status:    appointments.StatusScheduled,
		}
		if err := authorizeAppointment(claims, appt, true); err != nil {
			respondRepoError(w, err)
			return
		}

		if err := s.repos.Appointments.Upsert(appt); err != nil {
			respondRepoError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, appt)
	}
}

func (s *Server) GetAppointmentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := s.requireClaims(w, r)
		if !ok {
			return
		}

		appt, err := s.repos.Appointments.Get(chi.URLParam(r, "id"))
		if err != nil {
			respondRepoError(w, err)
			return
		}
		if err := authorizeAppointment(claims, appt, false); err != nil {
			respondRepoError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, appt)
	}
}

// ListAppointmentsHandler scopes the listing to the caller's role: trainers
// and members see their own bookings, a gym owner sees the whole gym, and
// the operator picks a gym with the gymId query parameter.
func (s *Server) ListAppointmentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := s.requireClaims(w, r)
		if !ok {
			return
		}

		var (
			items []*appointments.Appointment
			err   error
		)
		switch claims.Role {
		case principals.RoleTrainer:
			items, err = s.repos.Appointments.ListByTrainer(claims.ID)
		case principals.RoleMember:
			items, err = s.repos.Appointments.ListByMember(claims.ID)
		case principals.RoleGymOwner:
			items, err = s.repos.Appointments.ListByGym(claims.ID)
		case principals.RoleSuperAdmin:
			gymID := r.URL.Query().Get("gymId")
			if gymID == "" {
				respondError(w, http.StatusBadRequest, "gymId is required")
				return
			}
			items, err = s.repos.Appointments.ListByGym(gymID)
		default:
			respondRepoError(w, apperrors.ErrForbidden)
			return
		}
		if err != nil {
			respondRepoError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"appointments": items})
	}
}

func (s *Server) UpdateAppointmentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := s.requireClaims(w, r)
		if !ok {
			return
		}

		appt, err := s.repos.Appointments.Get(chi.URLParam(r, "id"))
		if err != nil {
			respondRepoError(w, err)
			return
		}
		if err := authorizeAppointment(claims, appt, true); err != nil {
			respondRepoError(w, err)
			return
		}

		var req appointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if !req.StartsAt.IsZero() {
			appt.StartsAt = req.StartsAt
		}
		if !req.EndsAt.IsZero() {
			appt.EndsAt = req.EndsAt
		}
		if !appt.EndsAt.After(appt.StartsAt) {
			respondError(w, http.StatusBadRequest, "invalid time range")
			return
		}
		if req.Notes != "" {
			appt.Notes = req.Notes
		}
		if req.Status != "" {
			appt.Status = req.Status
		}

		if err := s.repos.Appointments.Upsert(appt); err != nil {
			respondRepoError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, appt)
	}
}

func (s *Server) DeleteAppointmentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := s.requireClaims(w, r)
		if !ok {
			return
		}

		appt, err := s.repos.Appointments.Get(chi.URLParam(r, "id"))
		if err != nil {
			respondRepoError(w, err)
			return
		}
		if err := authorizeAppointment(claims, appt, true); err != nil {
			respondRepoError(w, err)
			return
		}

		if err := s.repos.Appointments.Delete(appt.ID); err != nil {
			respondRepoError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
