package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vibe-coding/vibedocs/internal/providers"
)

// RegisterRoutes mounts the session API and the websocket channel.
func RegisterRoutes(r chi.Router, m *Manager) {
	r.Route("/api/chat/sessions", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, m.List())
		})
		r.Post("/", handleCreate(m))
		r.Get("/{id}", withSession(m, func(w http.ResponseWriter, r *http.Request, s *Session) {
			writeJSON(w, http.StatusOK, s.State())
		}))
		r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
			m.Delete(chi.URLParam(r, "id"))
			w.WriteHeader(http.StatusNoContent)
		})
		r.Put("/{id}/persona", withSession(m, handleSelect(func(s *Session, id string) bool { return s.SelectPersona(id) })))
		r.Put("/{id}/provider", withSession(m, handleSelect(func(s *Session, id string) bool { return s.SelectProvider(id) })))
		r.Post("/{id}/reset", withSession(m, func(w http.ResponseWriter, r *http.Request, s *Session) {
			s.Reset()
			writeJSON(w, http.StatusOK, s.State())
		}))
		r.Post("/{id}/messages", withSession(m, handleSend))
	})

	r.Get("/ws/chat", handleWebSocket(m))
}

type sessionHandler func(w http.ResponseWriter, r *http.Request, s *Session)

func withSession(m *Manager, next sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := m.Get(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusNotFound, err)
			return
		}
		next(w, r, s)
	}
}

func handleCreate(m *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Persona  string `json:"persona"`
			Provider string `json:"provider"`
		}
		if r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
		}
		s := m.Create(req.Persona, req.Provider)
		writeJSON(w, http.StatusCreated, s.State())
	}
}

// handleSelect applies a persona or provider switch. Unknown ids leave the
// session as it was.
func handleSelect(apply func(s *Session, id string) bool) sessionHandler {
	return func(w http.ResponseWriter, r *http.Request, s *Session) {
		var req struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		apply(s, req.ID)
		writeJSON(w, http.StatusOK, s.State())
	}
}

func handleSend(w http.ResponseWriter, r *http.Request, s *Session) {
	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	reply, err := s.Send(r.Context(), req.Content)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrEmptyPrompt):
		return http.StatusBadRequest
	case errors.Is(err, ErrBusy), errors.Is(err, ErrSuperseded), errors.Is(err, providers.ErrNotConnected):
		return http.StatusConflict
	case errors.Is(err, providers.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
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
