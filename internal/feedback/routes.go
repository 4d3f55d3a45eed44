package feedback

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vibe-coding/vibedocs/internal/catalog"
)

// RegisterRoutes mounts the vote endpoints next to the catalog FAQ routes.
func RegisterRoutes(r chi.Router, s *Service) {
	r.Get("/api/faqs/{id}/vote", func(w http.ResponseWriter, r *http.Request) {
		t, err := s.Tally(chi.URLParam(r, "id"))
		respond(w, t, err)
	})
	r.Post("/api/faqs/{id}/vote", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Vote Vote `json:"vote"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		t, err := s.Cast(r.Context(), chi.URLParam(r, "id"), req.Vote)
		respond(w, t, err)
	})
	r.Delete("/api/faqs/{id}/vote", func(w http.ResponseWriter, r *http.Request) {
		t, err := s.Clear(r.Context(), chi.URLParam(r, "id"))
		respond(w, t, err)
	})
}

func respond(w http.ResponseWriter, t Tally, err error) {
	switch {
	case errors.Is(err, ErrSignInRequired):
		writeError(w, http.StatusUnauthorized, err)
	case errors.Is(err, ErrInvalidVote):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, catalog.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case err != nil:
		writeError(w, http.StatusInternalServerError, err)
	default:
		writeJSON(w, http.StatusOK, t)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
