package docs

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibe-coding/vibedocs/internal/catalog"
	"github.com/vibe-coding/vibedocs/internal/search"
	"github.com/vibe-coding/vibedocs/internal/storage"
)

func newContainer(t *testing.T, store storage.Store) *Container {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	idx, err := search.New(context.Background(), cat, search.Options{Fuzziness: 1, CacheSize: 16})
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })

	c, err := New(context.Background(), store, cat, idx, Options{})
	require.NoError(t, err)
	return c
}

func TestSearchRecordsRecent(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	c := newContainer(t, store)

	results, err := c.Search(ctx, "  react ")
	require.NoError(t, err)
	assert.NotEmpty(t, results)
	assert.Equal(t, "react", c.Query())
	assert.Equal(t, results, c.Results())

	_, err = c.Search(ctx, "python")
	require.NoError(t, err)
	_, err = c.Search(ctx, "react")
	require.NoError(t, err)
	assert.Equal(t, []string{"react", "python"}, c.RecentSearches())

	var stored []string
	found, err := storage.LoadJSON(ctx, store, storage.KeyRecentSearches, &stored)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"react", "python"}, stored)
}

func TestSearchBlankQuery(t *testing.T) {
	ctx := context.Background()
	c := newContainer(t, storage.NewMemoryStore())

	_, err := c.Search(ctx, "react")
	require.NoError(t, err)

	results, err := c.Search(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Empty(t, c.Results())
	assert.Equal(t, "", c.Query())
	assert.Equal(t, []string{"react"}, c.RecentSearches())
}

func TestRecentSearchesBounded(t *testing.T) {
	ctx := context.Background()
	c := newContainer(t, storage.NewMemoryStore())

	for i := range 12 {
		_, err := c.Search(ctx, fmt.Sprintf("query%d", i))
		require.NoError(t, err)
	}
	recent := c.RecentSearches()
	require.Len(t, recent, MaxRecentSearches)
	assert.Equal(t, "query11", recent[0])
	assert.Equal(t, "query2", recent[MaxRecentSearches-1])

	require.NoError(t, c.ClearRecentSearches(ctx))
	assert.Empty(t, c.RecentSearches())
}

func TestRestoreState(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, storage.SaveJSON(ctx, store, storage.KeyRecentSearches,
		[]string{"a", "b", "a", "c", "d", "e", "f", "g", "h", "i", "j", "k"}))

	c := newContainer(t, store)
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}, c.RecentSearches())
}

func TestRestoreCorruptState(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, storage.KeySavedSnippets, []byte("{broken")))

	c := newContainer(t, store)
	assert.Empty(t, c.SavedSnippets())
}

func TestSavedSnippets(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	c := newContainer(t, store)
	c.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }

	first, err := c.SaveSnippet(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "Python List Comprehension", first.Title)

	// Saving twice keeps the original entry.
	c.now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }
	again, err := c.SaveSnippet(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, first.SavedAt, again.SavedAt)

	_, err = c.SaveSnippet(ctx, "5")
	require.NoError(t, err)
	require.Len(t, c.SavedSnippets(), 2)
	assert.True(t, c.IsSaved("5"))

	_, err = c.SaveSnippet(ctx, "404")
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	// A new container sees the persisted bookmarks.
	reloaded := newContainer(t, store)
	saved := reloaded.SavedSnippets()
	require.Len(t, saved, 2)
	assert.Equal(t, "2", saved[0].ID)
	assert.Equal(t, first.SavedAt, saved[0].SavedAt)

	require.NoError(t, c.RemoveSavedSnippet(ctx, "2"))
	require.NoError(t, c.RemoveSavedSnippet(ctx, "2"))
	assert.False(t, c.IsSaved("2"))
	assert.Len(t, c.SavedSnippets(), 1)
}

func TestPersonaResponse(t *testing.T) {
	ctx := context.Background()
	c := newContainer(t, storage.NewMemoryStore())

	tests := []struct {
		persona string
		want    string
	}{
		{"python-guru", `For "sorting" in Python, I recommend using list comprehensions and the standard library.`},
		{"javascript-expert", `Here's a JavaScript solution for "sorting": Consider using modern ES6+ features and async/await patterns.`},
		{"react-specialist", `React approach for "sorting": Use hooks and functional components for better performance.`},
		{"backend-architect", `Backend solution for "sorting": Focus on scalability, security, and proper error handling.`},
		{"rust-wizard", `AI response for "sorting" from rust-wizard`},
	}
	for _, tt := range tests {
		got, err := c.PersonaResponse(ctx, tt.persona, "sorting")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.persona)
	}
}

func TestPersonaResponseCancelled(t *testing.T) {
	c := newContainer(t, storage.NewMemoryStore())
	c.opts.PersonaDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.PersonaResponse(ctx, "python-guru", "x")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	c := newContainer(t, storage.NewMemoryStore())
	_, err := c.SaveSnippet(ctx, "1")
	require.NoError(t, err)
	_, err = c.Search(ctx, "hooks")
	require.NoError(t, err)

	d := c.Dashboard()
	assert.Equal(t, 5, d.Snippets)
	assert.Equal(t, 3, d.Tutorials)
	assert.Equal(t, 5, d.FAQs)
	assert.Equal(t, 5, d.GlossaryTerms)
	assert.Equal(t, 4, d.Personas)
	assert.Equal(t, 1, d.SavedSnippets)
	assert.Equal(t, []string{"hooks"}, d.RecentSearches)
	require.Len(t, d.Popular, 3)
	assert.Equal(t, "5", d.Popular[0].ID)
}

func TestFilterResults(t *testing.T) {
	results := []search.Result{
		{Kind: search.KindSnippet, ID: "1", Snippet: &catalog.Snippet{Category: "React", Difficulty: catalog.Beginner}},
		{Kind: search.KindTutorial, ID: "1", Tutorial: &catalog.Tutorial{Category: "React", Difficulty: catalog.Beginner}},
		{Kind: search.KindTutorial, ID: "3", Tutorial: &catalog.Tutorial{Category: "Python", Difficulty: catalog.Intermediate}},
		{Kind: search.KindFAQ, ID: "2", FAQ: &catalog.FAQ{Category: "Features"}},
	}

	ids := func(rs []search.Result) []string {
		out := []string{}
		for _, r := range rs {
			out = append(out, string(r.Kind)+":"+r.ID)
		}
		return out
	}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"zero value", Filter{}, []string{"snippet:1", "tutorial:1", "tutorial:3", "faq:2"}},
		{"all", Filter{Type: TypeAll, Difficulty: catalog.All, Category: catalog.All}, []string{"snippet:1", "tutorial:1", "tutorial:3", "faq:2"}},
		{"tutorials", Filter{Type: TypeTutorials}, []string{"tutorial:1", "tutorial:3"}},
		{"faqs", Filter{Type: TypeFAQs}, []string{"faq:2"}},
		{"difficulty drops faqs", Filter{Difficulty: catalog.Beginner}, []string{"snippet:1", "tutorial:1"}},
		{"category", Filter{Category: "Python"}, []string{"tutorial:3"}},
		{"combined", Filter{Type: TypeSnippets, Category: "Python"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterResults(results, tt.filter)))
		})
	}
}
