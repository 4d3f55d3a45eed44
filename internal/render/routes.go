package render

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vibe-coding/vibedocs/internal/catalog"
)

// RegisterRoutes mounts HTML fragment endpoints under /api and standalone
// pages under /view.
func RegisterRoutes(r chi.Router, rn *Renderer, c *catalog.Catalog) {
	snippet := func(id string) (string, string, error) {
		s, err := c.Snippet(id)
		if err != nil {
			return "", "", err
		}
		html, err := rn.Snippet(s)
		return s.Title, html, err
	}
	tutorial := func(id string) (string, string, error) {
		t, err := c.Tutorial(id)
		if err != nil {
			return "", "", err
		}
		html, err := rn.Tutorial(t)
		return t.Title, html, err
	}

	r.Get("/api/snippets/{id}/html", handleFragment(snippet))
	r.Get("/api/tutorials/{id}/html", handleFragment(tutorial))
	r.Get("/view/snippets/{id}", handlePage(rn, snippet))
	r.Get("/view/tutorials/{id}", handlePage(rn, tutorial))
}

type renderFunc func(id string) (title, html string, err error)

func handleFragment(render renderFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, html, err := render(chi.URLParam(r, "id"))
		if err != nil {
			writeErr(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(html))
	}
}

func handlePage(rn *Renderer, render renderFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		title, html, err := render(chi.URLParam(r, "id"))
		if err != nil {
			writeErr(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := rn.Page(w, title, html); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

func writeErr(w http.ResponseWriter, err error) {
	if errors.Is(err, catalog.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
