package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/vibe-coding/vibedocs/internal/auth"
	"github.com/vibe-coding/vibedocs/internal/catalog"
	"github.com/vibe-coding/vibedocs/internal/chat"
	"github.com/vibe-coding/vibedocs/internal/config"
	"github.com/vibe-coding/vibedocs/internal/db"
	"github.com/vibe-coding/vibedocs/internal/docs"
	"github.com/vibe-coding/vibedocs/internal/feedback"
	"github.com/vibe-coding/vibedocs/internal/providers"
	"github.com/vibe-coding/vibedocs/internal/render"
	"github.com/vibe-coding/vibedocs/internal/search"
	"github.com/vibe-coding/vibedocs/internal/storage"
)

// localTimeout bounds calls to the local Ollama daemon.
const localTimeout = 2 * time.Minute

// app holds every state container built from the configuration.
type app struct {
	cfg       *config.Config
	db        *db.DB
	store     storage.Store
	catalog   *catalog.Catalog
	index     *search.Index
	docs      *docs.Container
	auth      *auth.Service
	providers *providers.Registry
	feedback  *feedback.Service
	chats     *chat.Manager
	renderer  *render.Renderer
}

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `vibedocs init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// openApp loads the config and builds the state containers over the
// configured store.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg}

	switch cfg.Storage {
	case config.StorageMemory:
		a.store = storage.NewMemoryStore()
	default:
		a.db, err = db.Open(cfg.DatabasePath())
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		a.store = storage.NewSQLiteStore(a.db)
	}

	if err := a.build(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) build(ctx context.Context) error {
	var err error
	a.catalog, err = catalog.Load(a.cfg.CatalogPaths)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	a.index, err = search.New(ctx, a.catalog, search.Options{
		Fuzziness: a.cfg.Search.Fuzziness,
		CacheSize: a.cfg.Search.CacheSize,
	})
	if err != nil {
		return fmt.Errorf("building search index: %w", err)
	}

	a.docs, err = docs.New(ctx, a.store, a.catalog, a.index, docs.Options{
		PersonaDelay: a.cfg.Delays.PersonaDelay(),
	})
	if err != nil {
		return fmt.Errorf("loading documentation state: %w", err)
	}

	a.auth, err = auth.New(ctx, a.store)
	if err != nil {
		return fmt.Errorf("loading user: %w", err)
	}

	a.providers, err = providers.New(ctx, a.store, providers.Defaults(a.cfg.OllamaURL), providers.Options{
		Client:         &http.Client{Timeout: localTimeout},
		BuiltinDelay:   a.cfg.Delays.BuiltinDelay(),
		SimulatedDelay: a.cfg.Delays.SimulatedDelay(),
		Logger:         slog.Default(),
	})
	if err != nil {
		return fmt.Errorf("loading providers: %w", err)
	}

	a.feedback, err = feedback.New(ctx, a.store, a.catalog, a.auth)
	if err != nil {
		return fmt.Errorf("loading FAQ votes: %w", err)
	}

	a.chats = chat.NewManager(a.providers, a.catalog)

	a.renderer, err = render.New("")
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	return nil
}

// Close releases the index and the database.
func (a *app) Close() {
	if a.index != nil {
		a.index.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}
