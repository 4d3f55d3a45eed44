package providers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/vibe-coding/vibedocs/internal/llm"
	"github.com/vibe-coding/vibedocs/internal/storage"
)

var (
	ErrNotFound          = errors.New("provider not found")
	ErrMissingCredential = errors.New("API key is required")
	ErrConnectionFailed  = errors.New("connection failed")
	ErrNotConnected      = errors.New("provider not connected")
)

// NoResponse is returned in place of an empty reply from the local model.
const NoResponse = "No response from model"

// Options configures a Registry.
type Options struct {
	// Client is used for calls to the local backend. Nil means http.DefaultClient.
	Client         *http.Client
	BuiltinDelay   time.Duration
	SimulatedDelay time.Duration
	Logger         *slog.Logger
}

// TestResult is the outcome of a connection test.
type TestResult struct {
	Connected bool     `json:"connected"`
	Message   string   `json:"message"`
	Notice    string   `json:"notice,omitempty"`
	Models    []string `json:"models,omitempty"`
}

// Registry holds the provider descriptors, the active selection and the
// provider currently open for configuration. Every mutation of the
// descriptor list is written to storage before the call returns.
type Registry struct {
	mu          sync.RWMutex
	store       storage.Store
	descriptors []Descriptor
	active      string
	target      *Descriptor
	opts        Options
	log         *slog.Logger
}

// New seeds the registry from defaults and overlays the persisted state.
// A corrupt stored value is logged and replaced by the defaults.
func New(ctx context.Context, store storage.Store, defaults []Descriptor, opts Options) (*Registry, error) {
	if opts.Client == nil {
		opts.Client = http.DefaultClient
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	r := &Registry{
		store:  store,
		active: BuiltinID,
		opts:   opts,
		log:    log,
	}

	var stored []record
	found, err := storage.LoadJSON(ctx, store, storage.KeyProviders, &stored)
	if errors.Is(err, storage.ErrCorrupt) {
		log.Warn("discarding stored providers", "error", err)
		found, stored = false, nil
	} else if err != nil {
		return nil, fmt.Errorf("loading providers: %w", err)
	}

	r.descriptors = merge(defaults, stored)

	if found {
		for _, d := range r.descriptors {
			if d.Connected && d.ID != BuiltinID {
				r.active = d.ID
				break
			}
		}
	}

	if err := r.persist(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) persist(ctx context.Context) error {
	if err := storage.SaveJSON(ctx, r.store, storage.KeyProviders, toRecords(r.descriptors)); err != nil {
		return fmt.Errorf("saving providers: %w", err)
	}
	return nil
}

func (r *Registry) indexOf(id string) int {
	for i, d := range r.descriptors {
		if d.ID == id {
			return i
		}
	}
	return -1
}

// List returns copies of all descriptors in fixed order, built-in last.
func (r *Registry) List() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Descriptor, len(r.descriptors))
	for i, d := range r.descriptors {
		out[i] = d.clone()
	}
	return out
}

// Get returns a copy of the descriptor with the given id.
func (r *Registry) Get(id string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		return r.descriptors[i].clone(), true
	}
	return Descriptor{}, false
}

// Active returns the currently selected provider.
func (r *Registry) Active() Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.descriptors[r.indexOf(r.active)].clone()
}

// Select makes id the active provider. Unknown ids are ignored and
// reported as false.
func (r *Registry) Select(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexOf(id) < 0 {
		return false
	}
	r.active = id
	return true
}

// OpenConfig snapshots the descriptor as the configuration target. Unknown
// ids are ignored.
func (r *Registry) OpenConfig(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return false
	}
	d := r.descriptors[i].clone()
	r.target = &d
	return true
}

// CloseConfig clears the configuration target.
func (r *Registry) CloseConfig() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.target = nil
}

// ConfigTarget returns the snapshot taken by OpenConfig, if any.
func (r *Registry) ConfigTarget() (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.target == nil {
		return Descriptor{}, false
	}
	return r.target.clone(), true
}

// Update merges patch into the descriptor with the given id. Unknown ids
// are a no-op. The built-in provider stays connected whatever the patch says.
func (r *Registry) Update(ctx context.Context, id string, patch Patch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil
	}
	patch.apply(&r.descriptors[i])
	enforceBuiltin(r.descriptors)
	return r.persist(ctx)
}

// TestConnection checks whether the provider is usable and records the
// outcome. Only the local backend performs a network call; simulated
// backends are marked connected as soon as they have an API key.
func (r *Registry) TestConnection(ctx context.Context, id string) (TestResult, error) {
	d, ok := r.Get(id)
	if !ok {
		return TestResult{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	switch b := d.Backend.(type) {
	case BuiltinBackend:
		return TestResult{Connected: true, Message: d.Name + " is built in"}, nil

	case LocalBackend:
		client := llm.NewOllamaProvider(d.Endpoint, d.TestEndpoint, d.SelectedModel, r.opts.Client)
		models, err := client.ListModels(ctx)
		if err != nil {
			r.log.Warn("provider connection failed", "provider", id, "error", err)
			connected := false
			if perr := r.Update(ctx, id, Patch{Connected: &connected}); perr != nil {
				return TestResult{}, perr
			}
			return TestResult{Connected: false, Message: fmt.Sprintf("Failed to connect to %s: %v", d.Name, err)},
				fmt.Errorf("%w: %s: %w", ErrConnectionFailed, d.Name, err)
		}

		selected := ""
		if len(models) > 0 {
			selected = models[0]
		}
		connected := true
		if err := r.Update(ctx, id, Patch{Models: &models, SelectedModel: &selected, Connected: &connected}); err != nil {
			return TestResult{}, err
		}
		r.log.Info("provider connected", "provider", id, "models", len(models))
		return TestResult{Connected: true, Message: fmt.Sprintf("Connected to %s successfully!", d.Name), Models: models}, nil

	case SimulatedBackend:
		connected := d.APIKey != ""
		if err := r.Update(ctx, id, Patch{Connected: &connected}); err != nil {
			return TestResult{}, err
		}
		if !connected {
			return TestResult{Connected: false, Message: fmt.Sprintf("Failed to connect to %s: %v", d.Name, ErrMissingCredential)},
				fmt.Errorf("%s: %w", d.Name, ErrMissingCredential)
		}
		r.log.Info("provider connection simulated", "provider", id, "label", b.Label)
		return TestResult{
			Connected: true,
			Message:   fmt.Sprintf("Connected to %s successfully!", d.Name),
			Notice:    "Note: For production use, a proper backend proxy is required",
		}, nil
	}

	return TestResult{}, fmt.Errorf("provider %s has no backend", id)
}

// SendMessage asks the provider to answer prompt given the earlier
// conversation. A non-empty model overrides the provider's selected model.
func (r *Registry) SendMessage(ctx context.Context, id, model, prompt string, history []llm.Message) (string, error) {
	d, ok := r.Get(id)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if model == "" {
		model = d.SelectedModel
	}

	if _, ok := d.Backend.(BuiltinBackend); ok {
		if err := llm.Wait(ctx, r.opts.BuiltinDelay); err != nil {
			return "", err
		}
		return fmt.Sprintf("Vibe AI response to \"%s\": This is a simulated response from the built-in AI model.", prompt), nil
	}

	if !d.Connected {
		return "", fmt.Errorf("%s: %w", d.Name, ErrNotConnected)
	}

	switch b := d.Backend.(type) {
	case LocalBackend:
		messages := make([]llm.Message, 0, len(history)+1)
		messages = append(messages, history...)
		messages = append(messages, llm.Message{Role: llm.RoleUser, Content: prompt})

		client := llm.NewOllamaProvider(d.Endpoint, d.TestEndpoint, model, r.opts.Client)
		resp, err := client.Complete(ctx, llm.CompletionRequest{Model: model, Messages: messages})
		if err != nil {
			return "", fmt.Errorf("sending to %s: %w", d.Name, err)
		}
		if resp.Content == "" {
			return NoResponse, nil
		}
		return resp.Content, nil

	case SimulatedBackend:
		if err := llm.Wait(ctx, r.opts.SimulatedDelay); err != nil {
			return "", err
		}
		return simulatedReply(b, model, prompt), nil
	}

	return "", fmt.Errorf("provider %s has no backend", id)
}

func simulatedReply(b SimulatedBackend, model, prompt string) string {
	if b.Label == "" {
		return fmt.Sprintf("AI response to: \"%s\"\n\nThis is a simulated response. To get actual AI responses, implement a backend proxy for the selected provider.", prompt)
	}
	return fmt.Sprintf("%s (%s) response to: \"%s\"\n\n%s", b.Label, model, prompt, b.Note)
}
