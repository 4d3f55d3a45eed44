package providers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vibe-coding/vibedocs/internal/llm"
)

// View is the API representation of a descriptor. The API key itself is
// never echoed back.
type View struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	Endpoint      string      `json:"endpoint"`
	TestEndpoint  string      `json:"test_endpoint,omitempty"`
	HasAPIKey     bool        `json:"has_api_key"`
	Models        []string    `json:"models"`
	SelectedModel string      `json:"selected_model"`
	Connected     bool        `json:"connected"`
	Configurable  bool        `json:"configurable"`
	Logo          string      `json:"logo"`
	Backend       BackendKind `json:"backend"`
	Active        bool        `json:"active"`
}

// NewView builds the API representation of d.
func NewView(d Descriptor, activeID string) View {
	models := d.Models
	if models == nil {
		models = []string{}
	}
	return View{
		ID:            d.ID,
		Name:          d.Name,
		Description:   d.Description,
		Endpoint:      d.Endpoint,
		TestEndpoint:  d.TestEndpoint,
		HasAPIKey:     d.APIKey != "",
		Models:        models,
		SelectedModel: d.SelectedModel,
		Connected:     d.Connected,
		Configurable:  d.Configurable,
		Logo:          d.Logo,
		Backend:       d.Backend.Kind(),
		Active:        d.ID == activeID,
	}
}

// RegisterRoutes mounts provider endpoints under /api/providers.
func RegisterRoutes(r chi.Router, reg *Registry) {
	r.Route("/api/providers", func(r chi.Router) {
		r.Get("/", handleList(reg))
		r.Get("/active", handleActive(reg))
		r.Put("/active", handleSelect(reg))
		r.Get("/config", handleConfigTarget(reg))
		r.Delete("/config", handleCloseConfig(reg))
		r.Get("/{id}", handleGet(reg))
		r.Patch("/{id}", handleUpdate(reg))
		r.Post("/{id}/config", handleOpenConfig(reg))
		r.Post("/{id}/test", handleTest(reg))
		r.Post("/{id}/messages", handleSend(reg))
	})
}

func handleList(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		active := reg.Active().ID
		list := reg.List()
		views := make([]View, len(list))
		for i, d := range list {
			views[i] = NewView(d, active)
		}
		writeJSON(w, http.StatusOK, views)
	}
}

func handleActive(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d := reg.Active()
		writeJSON(w, http.StatusOK, NewView(d, d.ID))
	}
}

func handleSelect(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		reg.Select(body.ID)
		d := reg.Active()
		writeJSON(w, http.StatusOK, NewView(d, d.ID))
	}
}

func handleGet(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, ok := reg.Get(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, ErrNotFound.Error())
			return
		}
		writeJSON(w, http.StatusOK, NewView(d, reg.Active().ID))
	}
}

func handleUpdate(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch Patch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		id := chi.URLParam(r, "id")
		if err := reg.Update(r.Context(), id, patch); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		d, ok := reg.Get(id)
		if !ok {
			writeError(w, http.StatusNotFound, ErrNotFound.Error())
			return
		}
		writeJSON(w, http.StatusOK, NewView(d, reg.Active().ID))
	}
}

func handleOpenConfig(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !reg.OpenConfig(chi.URLParam(r, "id")) {
			writeError(w, http.StatusNotFound, ErrNotFound.Error())
			return
		}
		d, _ := reg.ConfigTarget()
		writeJSON(w, http.StatusOK, NewView(d, reg.Active().ID))
	}
}

func handleConfigTarget(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, ok := reg.ConfigTarget()
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, NewView(d, reg.Active().ID))
	}
}

func handleCloseConfig(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reg.CloseConfig()
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleTest(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := reg.TestConnection(r.Context(), chi.URLParam(r, "id"))
		switch {
		case errors.Is(err, ErrNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrMissingCredential):
			writeJSON(w, http.StatusUnprocessableEntity, res)
		case errors.Is(err, ErrConnectionFailed):
			writeJSON(w, http.StatusBadGateway, res)
		case err != nil:
			writeError(w, http.StatusInternalServerError, err.Error())
		default:
			writeJSON(w, http.StatusOK, res)
		}
	}
}

type sendRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	History []llm.Message `json:"history"`
}

func handleSend(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		reply, err := reg.SendMessage(r.Context(), chi.URLParam(r, "id"), req.Model, req.Prompt, req.History)
		switch {
		case errors.Is(err, ErrNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrNotConnected):
			writeError(w, http.StatusConflict, err.Error())
		case err != nil:
			writeError(w, http.StatusBadGateway, err.Error())
		default:
			writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
		}
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
