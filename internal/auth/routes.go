package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// RegisterRoutes mounts the mock auth endpoints under /api/auth.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", func(w http.ResponseWriter, r *http.Request) {
			var c credentials
			if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			u, err := svc.Login(r.Context(), c.Email, c.Password)
			respond(w, u, err)
		})
		r.Post("/signup", func(w http.ResponseWriter, r *http.Request) {
			var c credentials
			if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			u, err := svc.Signup(r.Context(), c.Email, c.Password, c.Name)
			respond(w, u, err)
		})
		r.Post("/logout", func(w http.ResponseWriter, r *http.Request) {
			if err := svc.Logout(r.Context()); err != nil {
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})
		r.Get("/me", func(w http.ResponseWriter, r *http.Request) {
			u, ok := svc.Current()
			if !ok {
				writeError(w, http.StatusUnauthorized, ErrNotSignedIn.Error())
				return
			}
			writeJSON(w, http.StatusOK, u)
		})
		r.Patch("/me", func(w http.ResponseWriter, r *http.Request) {
			var patch ProfilePatch
			if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			u, err := svc.UpdateProfile(r.Context(), patch)
			respond(w, u, err)
		})
	})
}

func respond(w http.ResponseWriter, u User, err error) {
	switch {
	case errors.Is(err, ErrEmailRequired):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotSignedIn):
		writeError(w, http.StatusUnauthorized, err.Error())
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, u)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
