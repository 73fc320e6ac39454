package server

import (
	"net/http"

	"github.com/goccy/go-json"
	apperrors "github.com/gymstack/gymstack/internal/errors"
	"github.com/rs/zerolog/log"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Err(err).Msg("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondRepoError maps store and authorization errors onto HTTP statuses.
// Existence is resolved before ownership everywhere, so not-found never
// masquerades as forbidden.
func respondRepoError(w http.ResponseWriter, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case apperrors.Is(err, apperrors.ErrForbidden):
		respondError(w, http.StatusForbidden, "forbidden")
	case apperrors.Is(err, apperrors.ErrNotAuthenticated):
		respondError(w, http.StatusUnauthorized, "not authenticated")
	case apperrors.Is(err, apperrors.ErrUnknownRole):
		respondError(w, http.StatusBadRequest, "unknown role")
	default:
		log.Err(err).Msg("request failed")
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
