package docs

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/vibe-coding/vibedocs/internal/storage"
)

func newRouter(t *testing.T) (*chi.Mux, *Container) {
	t.Helper()
	c := newContainer(t, storage.NewMemoryStore())
	r := chi.NewRouter()
	RegisterRoutes(r, c)
	return r, c
}

func TestSearchEndpoint(t *testing.T) {
	r, c := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=react&type=tutorials", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp searchResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Query != "react" {
		t.Errorf("query = %q, want react", resp.Query)
	}
	if len(resp.Results) == 0 {
		t.Fatal("expected tutorial results")
	}
	for _, res := range resp.Results {
		if res.Kind != "tutorial" {
			t.Errorf("unexpected kind %q in filtered results", res.Kind)
		}
	}
	if got := c.RecentSearches(); len(got) != 1 || got[0] != "react" {
		t.Errorf("recent = %v, want [react]", got)
	}
}

func TestSavedEndpoints(t *testing.T) {
	r, c := newRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/saved", strings.NewReader(`{"id":"3"}`)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("save status = %d, want 201", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/saved", strings.NewReader(`{"id":"nope"}`)))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown snippet status = %d, want 404", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/saved/3", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", rec.Code)
	}
	if c.IsSaved("3") {
		t.Error("snippet 3 still saved after delete")
	}
}

func TestAskPersonaEndpoint(t *testing.T) {
	r, _ := newRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/personas/python-guru/ask", strings.NewReader(`{"query":"loops"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	json.NewDecoder(rec.Body).Decode(&body)
	want := `For "loops" in Python, I recommend using list comprehensions and the standard library.`
	if body["response"] != want {
		t.Errorf("response = %q, want %q", body["response"], want)
	}
}
