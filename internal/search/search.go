// Package search is the fuzzy index over snippets, tutorials and FAQs.
package search

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/vibe-coding/vibedocs/internal/catalog"
)

// Kind identifies the content type of a result.
type Kind string

const (
	KindSnippet  Kind = "snippet"
	KindTutorial Kind = "tutorial"
	KindFAQ      Kind = "faq"
)

// indexedFields are the document fields queries run against.
var indexedFields = []string{"title", "description", "tags", "content", "question", "answer"}

// minPrefixLen is the shortest token that also matches as a word prefix.
const minPrefixLen = 3

// minFuzzyLen is the shortest token that tolerates typos.
const minFuzzyLen = 4

// Result is one scored match. Exactly one of Snippet, Tutorial and FAQ is set.
type Result struct {
	Kind     Kind              `json:"kind"`
	ID       string            `json:"id"`
	Score    float64           `json:"score"`
	Snippet  *catalog.Snippet  `json:"snippet,omitempty"`
	Tutorial *catalog.Tutorial `json:"tutorial,omitempty"`
	FAQ      *catalog.FAQ      `json:"faq,omitempty"`
}

// Title is the display heading of the matched item.
func (r Result) Title() string {
	switch {
	case r.Snippet != nil:
		return r.Snippet.Title
	case r.Tutorial != nil:
		return r.Tutorial.Title
	case r.FAQ != nil:
		return r.FAQ.Question
	}
	return ""
}

// Category of the matched item.
func (r Result) Category() string {
	switch {
	case r.Snippet != nil:
		return r.Snippet.Category
	case r.Tutorial != nil:
		return r.Tutorial.Category
	case r.FAQ != nil:
		return r.FAQ.Category
	}
	return ""
}

// Difficulty of the matched item. FAQs have none.
func (r Result) Difficulty() catalog.Difficulty {
	switch {
	case r.Snippet != nil:
		return r.Snippet.Difficulty
	case r.Tutorial != nil:
		return r.Tutorial.Difficulty
	}
	return ""
}

// Options tunes matching and caching.
type Options struct {
	// Fuzziness is the edit distance tolerated per query token.
	Fuzziness int
	// CacheSize bounds the number of cached queries. Zero disables caching.
	CacheSize int
}

// Index is built once and is safe for concurrent use.
type Index struct {
	index bleve.Index
	docs  map[string]Result
	size  int
	opts  Options
	cache *lru.Cache[string, []Result]
}

// New builds an in-memory index over the catalog's snippets, tutorials and FAQs.
func New(ctx context.Context, c *catalog.Catalog, opts Options) (*Index, error) {
	idx, err := bleve.NewMemOnly(buildMapping())
	if err != nil {
		return nil, fmt.Errorf("creating bleve index: %w", err)
	}

	docs := make(map[string]Result)
	batch := idx.NewBatch()
	add := func(key string, r Result, doc map[string]any) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		docs[key] = r
		if err := batch.Index(key, doc); err != nil {
			return fmt.Errorf("indexing %s: %w", key, err)
		}
		return nil
	}

	for i := range c.Snippets {
		s := &c.Snippets[i]
		err := add(docKey(KindSnippet, s.ID), Result{Kind: KindSnippet, ID: s.ID, Snippet: s}, map[string]any{
			"title":       s.Title,
			"description": s.Description,
			"tags":        s.Tags,
		})
		if err != nil {
			idx.Close()
			return nil, err
		}
	}
	for i := range c.Tutorials {
		t := &c.Tutorials[i]
		err := add(docKey(KindTutorial, t.ID), Result{Kind: KindTutorial, ID: t.ID, Tutorial: t}, map[string]any{
			"title":       t.Title,
			"description": t.Description,
			"tags":        t.Tags,
			"content":     t.Content,
		})
		if err != nil {
			idx.Close()
			return nil, err
		}
	}
	for i := range c.FAQs {
		f := &c.FAQs[i]
		err := add(docKey(KindFAQ, f.ID), Result{Kind: KindFAQ, ID: f.ID, FAQ: f}, map[string]any{
			"tags":     f.Tags,
			"question": f.Question,
			"answer":   f.Answer,
		})
		if err != nil {
			idx.Close()
			return nil, err
		}
	}

	if err := idx.Batch(batch); err != nil {
		idx.Close()
		return nil, fmt.Errorf("executing index batch: %w", err)
	}

	ix := &Index{index: idx, docs: docs, size: len(docs), opts: opts}
	if opts.CacheSize > 0 {
		ix.cache, err = lru.New[string, []Result](opts.CacheSize)
		if err != nil {
			idx.Close()
			return nil, fmt.Errorf("creating query cache: %w", err)
		}
	}
	return ix, nil
}

func docKey(kind Kind, id string) string {
	return string(kind) + ":" + id
}

func buildMapping() *mapping.IndexMappingImpl {
	indexMapping := bleve.NewIndexMapping()

	docMapping := bleve.NewDocumentMapping()
	for _, field := range indexedFields {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = "standard"
		fm.Store = false
		fm.Index = true
		docMapping.AddFieldMappingsAt(field, fm)
	}

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// Search returns approximate matches for text in descending score order,
// ties broken by document key. Blank text yields no results.
func (ix *Index) Search(ctx context.Context, text string) ([]Result, error) {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return []Result{}, nil
	}

	key := strings.Join(tokens, " ")
	if ix.cache != nil {
		if hit, ok := ix.cache.Get(key); ok {
			return slices.Clone(hit), nil
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := bleve.NewSearchRequestOptions(ix.buildQuery(tokens), ix.size, 0, false)
	req.SortBy([]string{"-_score", "_id"})

	res, err := ix.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("bleve search failed: %w", err)
	}

	results := make([]Result, 0, len(res.Hits))
	for _, hit := range res.Hits {
		r, ok := ix.docs[hit.ID]
		if !ok {
			continue
		}
		r.Score = hit.Score
		results = append(results, r)
	}

	if ix.cache != nil {
		ix.cache.Add(key, results)
	}
	return slices.Clone(results), nil
}

// buildQuery ORs, for every token and field, a typo-tolerant term match and
// a prefix match for partial words.
func (ix *Index) buildQuery(tokens []string) query.Query {
	var queries []query.Query
	for _, tok := range tokens {
		for _, field := range indexedFields {
			mq := bleve.NewMatchQuery(tok)
			mq.SetField(field)
			if len([]rune(tok)) >= minFuzzyLen {
				mq.SetFuzziness(ix.opts.Fuzziness)
			}
			queries = append(queries, mq)

			if len([]rune(tok)) >= minPrefixLen {
				pq := bleve.NewPrefixQuery(tok)
				pq.SetField(field)
				queries = append(queries, pq)
			}
		}
	}
	return bleve.NewDisjunctionQuery(queries...)
}

// tokenize lowercases text and splits it into letter/digit runs.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Len is the number of indexed documents.
func (ix *Index) Len() int { return ix.size }

// Close releases the index.
func (ix *Index) Close() error {
	return ix.index.Close()
}
