package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the read-only catalog endpoints on the given router.
func RegisterRoutes(r chi.Router, c *Catalog) {
	r.Get("/api/snippets", handleListSnippets(c))
	r.Get("/api/snippets/{id}", handleGet(func(id string) (any, error) { return c.Snippet(id) }))
	r.Get("/api/tutorials", handleListTutorials(c))
	r.Get("/api/tutorials/{id}", handleGet(func(id string) (any, error) { return c.Tutorial(id) }))
	r.Get("/api/faqs", handleListFAQs(c))
	r.Get("/api/glossary", handleListGlossary(c))
	r.Get("/api/personas", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, c.Personas)
	})
	r.Get("/api/personas/{id}", handleGet(func(id string) (any, error) { return c.Persona(id) }))
	r.Get("/api/categories/{kind}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, c.Categories(chi.URLParam(r, "kind")))
	})
}

func handleListSnippets(c *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		writeJSON(w, http.StatusOK, c.ListSnippets(ListOptions{
			Category: q.Get("category"),
			Sort:     SortOrder(q.Get("sort")),
		}))
	}
}

func handleListTutorials(c *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		writeJSON(w, http.StatusOK, c.ListTutorials(ListOptions{
			Category: q.Get("category"),
			Sort:     SortOrder(q.Get("sort")),
		}))
	}
}

func handleListFAQs(c *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		writeJSON(w, http.StatusOK, c.ListFAQs(FAQOptions{
			Query:    q.Get("q"),
			Category: q.Get("category"),
			Sort:     SortOrder(q.Get("sort")),
		}))
	}
}

func handleListGlossary(c *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		writeJSON(w, http.StatusOK, c.ListGlossary(GlossaryOptions{
			Query:    q.Get("q"),
			Category: q.Get("category"),
			Letter:   q.Get("letter"),
		}))
	}
}

func handleGet(lookup func(id string) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := lookup(chi.URLParam(r, "id"))
		if errors.Is(err, ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
