package docs

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vibe-coding/vibedocs/internal/catalog"
	"github.com/vibe-coding/vibedocs/internal/search"
)

// RegisterRoutes mounts search, saved-snippet, persona and dashboard
// endpoints on the given router.
func RegisterRoutes(r chi.Router, c *Container) {
	r.Get("/api/dashboard", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, c.Dashboard())
	})

	r.Get("/api/search", handleSearch(c))
	r.Get("/api/search/results", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, searchResponse{
			Query:   c.Query(),
			Results: FilterResults(c.Results(), filterFromQuery(r)),
		})
	})
	r.Get("/api/search/recent", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, c.RecentSearches())
	})
	r.Delete("/api/search/recent", func(w http.ResponseWriter, r *http.Request) {
		if err := c.ClearRecentSearches(r.Context()); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	r.Get("/api/saved", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, c.SavedSnippets())
	})
	r.Post("/api/saved", handleSave(c))
	r.Delete("/api/saved/{id}", func(w http.ResponseWriter, r *http.Request) {
		if err := c.RemoveSavedSnippet(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	r.Post("/api/personas/{id}/ask", handleAsk(c))
}

type searchResponse struct {
	Query   string          `json:"query"`
	Results []search.Result `json:"results"`
}

func filterFromQuery(r *http.Request) Filter {
	q := r.URL.Query()
	return Filter{
		Type:       ResultType(q.Get("type")),
		Difficulty: catalog.Difficulty(q.Get("difficulty")),
		Category:   q.Get("category"),
	}
}

func handleSearch(c *Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results, err := c.Search(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, searchResponse{
			Query:   c.Query(),
			Results: FilterResults(results, filterFromQuery(r)),
		})
	}
}

func handleSave(c *Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		saved, err := c.SaveSnippet(r.Context(), req.ID)
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusCreated, saved)
	}
}

func handleAsk(c *Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query string `json:"query"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		answer, err := c.PersonaResponse(r.Context(), chi.URLParam(r, "id"), req.Query)
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"response": answer})
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
