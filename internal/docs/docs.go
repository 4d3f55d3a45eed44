// Package docs is the documentation state container: the current search,
// the recent-search history, saved snippets and canned persona answers.
package docs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/vibe-coding/vibedocs/internal/catalog"
	"github.com/vibe-coding/vibedocs/internal/llm"
	"github.com/vibe-coding/vibedocs/internal/search"
	"github.com/vibe-coding/vibedocs/internal/storage"
)

// MaxRecentSearches bounds the recent-search history.
const MaxRecentSearches = 10

// SavedSnippet is a bookmarked snippet.
type SavedSnippet struct {
	catalog.Snippet
	SavedAt time.Time `json:"savedAt"`
}

// Options configures a Container.
type Options struct {
	PersonaDelay time.Duration
}

// Container holds per-user documentation state. Saved snippets and recent
// searches are persisted on every change.
type Container struct {
	mu      sync.RWMutex
	store   storage.Store
	catalog *catalog.Catalog
	index   *search.Index
	opts    Options
	now     func() time.Time

	query   string
	results []search.Result
	saved   []SavedSnippet
	recent  []string
}

// New restores saved snippets and recent searches from store. Corrupt
// values are logged and start empty.
func New(ctx context.Context, store storage.Store, cat *catalog.Catalog, idx *search.Index, opts Options) (*Container, error) {
	c := &Container{
		store:   store,
		catalog: cat,
		index:   idx,
		opts:    opts,
		now:     time.Now,
		results: []search.Result{},
		saved:   []SavedSnippet{},
		recent:  []string{},
	}

	if err := load(ctx, store, storage.KeySavedSnippets, &c.saved); err != nil {
		return nil, err
	}
	if err := load(ctx, store, storage.KeyRecentSearches, &c.recent); err != nil {
		return nil, err
	}
	c.recent = normalizeRecent(c.recent)
	return c, nil
}

func load[T any](ctx context.Context, store storage.Store, key string, dst *[]T) error {
	var v []T
	found, err := storage.LoadJSON(ctx, store, key, &v)
	if errors.Is(err, storage.ErrCorrupt) {
		slog.Warn("discarding stored value", "key", key, "error", err)
		return nil
	}
	if err != nil {
		return err
	}
	if found && v != nil {
		*dst = v
	}
	return nil
}

// Search runs text against the index and makes the outcome the current
// result set. Non-blank queries are recorded in the recent-search history.
func (c *Container) Search(ctx context.Context, text string) ([]search.Result, error) {
	text = strings.TrimSpace(text)
	if text != "" {
		if err := c.recordRecent(ctx, text); err != nil {
			return nil, err
		}
	}

	results, err := c.index.Search(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", text, err)
	}

	c.mu.Lock()
	c.query = text
	c.results = results
	c.mu.Unlock()
	return slices.Clone(results), nil
}

func (c *Container) recordRecent(ctx context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := pushRecent(c.recent, text)
	if err := storage.SaveJSON(ctx, c.store, storage.KeyRecentSearches, next); err != nil {
		return fmt.Errorf("saving recent searches: %w", err)
	}
	c.recent = next
	return nil
}

// pushRecent moves text to the front of list, dropping duplicates and
// anything past MaxRecentSearches.
func pushRecent(list []string, text string) []string {
	next := make([]string, 0, MaxRecentSearches)
	next = append(next, text)
	for _, s := range list {
		if s != text && len(next) < MaxRecentSearches {
			next = append(next, s)
		}
	}
	return next
}

// normalizeRecent repairs a stored history that breaks the size or
// uniqueness bound.
func normalizeRecent(list []string) []string {
	out := make([]string, 0, min(len(list), MaxRecentSearches))
	seen := make(map[string]bool, len(list))
	for _, s := range list {
		if s == "" || seen[s] || len(out) == MaxRecentSearches {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// Query is the text of the last search.
func (c *Container) Query() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.query
}

// Results is the current result set.
func (c *Container) Results() []search.Result {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.results)
}

// RecentSearches returns the history, most recent first.
func (c *Container) RecentSearches() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.recent)
}

// ClearRecentSearches empties the history.
func (c *Container) ClearRecentSearches(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := storage.SaveJSON(ctx, c.store, storage.KeyRecentSearches, []string{}); err != nil {
		return fmt.Errorf("saving recent searches: %w", err)
	}
	c.recent = []string{}
	return nil
}

// SaveSnippet bookmarks the snippet with the given id. Saving an already
// saved snippet keeps the original entry.
func (c *Container) SaveSnippet(ctx context.Context, id string) (SavedSnippet, error) {
	s, err := c.catalog.Snippet(id)
	if err != nil {
		return SavedSnippet{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, saved := range c.saved {
		if saved.ID == id {
			return saved, nil
		}
	}

	entry := SavedSnippet{Snippet: s, SavedAt: c.now().UTC()}
	next := append(slices.Clone(c.saved), entry)
	if err := storage.SaveJSON(ctx, c.store, storage.KeySavedSnippets, next); err != nil {
		return SavedSnippet{}, fmt.Errorf("saving snippets: %w", err)
	}
	c.saved = next
	return entry, nil
}

// RemoveSavedSnippet drops the bookmark, if present.
func (c *Container) RemoveSavedSnippet(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := slices.DeleteFunc(slices.Clone(c.saved), func(s SavedSnippet) bool { return s.ID == id })
	if len(next) == len(c.saved) {
		return nil
	}
	if err := storage.SaveJSON(ctx, c.store, storage.KeySavedSnippets, next); err != nil {
		return fmt.Errorf("saving snippets: %w", err)
	}
	c.saved = next
	return nil
}

// SavedSnippets returns the bookmarks in the order they were saved.
func (c *Container) SavedSnippets() []SavedSnippet {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.saved)
}

// IsSaved reports whether the snippet is bookmarked.
func (c *Container) IsSaved(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.ContainsFunc(c.saved, func(s SavedSnippet) bool { return s.ID == id })
}

var personaAnswers = map[string]string{
	"javascript-expert": `Here's a JavaScript solution for "%s": Consider using modern ES6+ features and async/await patterns.`,
	"python-guru":       `For "%s" in Python, I recommend using list comprehensions and the standard library.`,
	"react-specialist":  `React approach for "%s": Use hooks and functional components for better performance.`,
	"backend-architect": `Backend solution for "%s": Focus on scalability, security, and proper error handling.`,
}

// PersonaResponse returns the canned answer of the persona after the
// configured delay. Unknown personas get a generic answer.
func (c *Container) PersonaResponse(ctx context.Context, personaID, query string) (string, error) {
	if err := llm.Wait(ctx, c.opts.PersonaDelay); err != nil {
		return "", err
	}
	if tmpl, ok := personaAnswers[personaID]; ok {
		return fmt.Sprintf(tmpl, query), nil
	}
	return fmt.Sprintf(`AI response for "%s" from %s`, query, personaID), nil
}

// Dashboard summarizes the portal for the landing page.
type Dashboard struct {
	Snippets       int               `json:"snippets"`
	Tutorials      int               `json:"tutorials"`
	FAQs           int               `json:"faqs"`
	GlossaryTerms  int               `json:"glossary_terms"`
	Personas       int               `json:"personas"`
	SavedSnippets  int               `json:"saved_snippets"`
	RecentSearches []string          `json:"recent_searches"`
	Popular        []catalog.Snippet `json:"popular_snippets"`
}

// maxPopular is the number of snippets featured on the dashboard.
const maxPopular = 3

// Dashboard returns content counts plus the user's own activity.
func (c *Container) Dashboard() Dashboard {
	popular := c.catalog.ListSnippets(catalog.ListOptions{Sort: catalog.SortPopular})
	if len(popular) > maxPopular {
		popular = popular[:maxPopular]
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return Dashboard{
		Snippets:       len(c.catalog.Snippets),
		Tutorials:      len(c.catalog.Tutorials),
		FAQs:           len(c.catalog.FAQs),
		GlossaryTerms:  len(c.catalog.Glossary),
		Personas:       len(c.catalog.Personas),
		SavedSnippets:  len(c.saved),
		RecentSearches: slices.Clone(c.recent),
		Popular:        popular,
	}
}
