package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibe-coding/vibedocs/internal/catalog"
)

func newIndex(t *testing.T, opts Options) *Index {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	ix, err := New(context.Background(), c, opts)
	require.NoError(t, err)
	t.Cleanup(func() { ix.Close() })
	return ix
}

func keys(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = docKey(r.Kind, r.ID)
	}
	return out
}

func TestIndexSize(t *testing.T) {
	ix := newIndex(t, Options{Fuzziness: 1})
	assert.Equal(t, 13, ix.Len())
}

func TestSearchExact(t *testing.T) {
	ix := newIndex(t, Options{Fuzziness: 1})

	results, err := ix.Search(context.Background(), "react")
	require.NoError(t, err)
	require.NotEmpty(t, results)

	got := keys(results)
	assert.Contains(t, got, "snippet:1")
	assert.Contains(t, got, "tutorial:1")

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score, "results must be in descending score order")
	}
}

func TestSearchTypo(t *testing.T) {
	ix := newIndex(t, Options{Fuzziness: 1})

	results, err := ix.Search(context.Background(), "reakt")
	require.NoError(t, err)
	assert.Contains(t, keys(results), "snippet:1")
}

func TestSearchPrefix(t *testing.T) {
	ix := newIndex(t, Options{Fuzziness: 1})

	results, err := ix.Search(context.Background(), "pand")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "tutorial:3", keys(results)[0])
	assert.Equal(t, "Python Data Analysis with Pandas", results[0].Title())
	assert.Equal(t, "Python", results[0].Category())
	assert.Equal(t, catalog.Intermediate, results[0].Difficulty())
}

func TestSearchFAQ(t *testing.T) {
	ix := newIndex(t, Options{Fuzziness: 1})

	results, err := ix.Search(context.Background(), "mobile")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "faq:5", keys(results)[0])
	assert.Equal(t, KindFAQ, results[0].Kind)
	assert.Empty(t, string(results[0].Difficulty()))
}

func TestSearchBlank(t *testing.T) {
	ix := newIndex(t, Options{Fuzziness: 1})

	for _, q := range []string{"", "   ", "\t\n", "!!"} {
		results, err := ix.Search(context.Background(), q)
		require.NoError(t, err)
		assert.Empty(t, results, "query %q", q)
	}
}

func TestSearchNoMatch(t *testing.T) {
	ix := newIndex(t, Options{Fuzziness: 1})

	results, err := ix.Search(context.Background(), "zzzqqqxx")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchDeterministic(t *testing.T) {
	ix := newIndex(t, Options{Fuzziness: 1})

	first, err := ix.Search(context.Background(), "api backend")
	require.NoError(t, err)
	second, err := ix.Search(context.Background(), "api backend")
	require.NoError(t, err)
	assert.Equal(t, keys(first), keys(second))
}

func TestSearchCache(t *testing.T) {
	ix := newIndex(t, Options{Fuzziness: 1, CacheSize: 4})

	first, err := ix.Search(context.Background(), "Python")
	require.NoError(t, err)
	require.NotEmpty(t, first)
	assert.Equal(t, 1, ix.cache.Len())

	// Normalized queries share one entry.
	second, err := ix.Search(context.Background(), "  python ")
	require.NoError(t, err)
	assert.Equal(t, 1, ix.cache.Len())
	assert.Equal(t, keys(first), keys(second))

	// Mutating a returned slice does not leak into the cache.
	second[0].ID = "mutated"
	third, err := ix.Search(context.Background(), "python")
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", third[0].ID)
}

func TestSearchCancelled(t *testing.T) {
	ix := newIndex(t, Options{Fuzziness: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ix.Search(ctx, "react")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"async", "await"}, tokenize("Async/Await"))
	assert.Equal(t, []string{"list", "comprehension"}, tokenize(" list-comprehension "))
	assert.Empty(t, tokenize("  "))
}
