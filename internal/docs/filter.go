package docs

import (
	"github.com/vibe-coding/vibedocs/internal/catalog"
	"github.com/vibe-coding/vibedocs/internal/search"
)

// ResultType narrows a result set to one content kind.
type ResultType string

const (
	TypeAll       ResultType = "all"
	TypeSnippets  ResultType = "snippets"
	TypeTutorials ResultType = "tutorials"
	TypeFAQs      ResultType = "faqs"
)

// Filter mirrors the search page filters. Empty fields and "all" match
// everything. A difficulty filter excludes FAQs, which have none.
type Filter struct {
	Type       ResultType
	Difficulty catalog.Difficulty
	Category   string
}

func (f Filter) match(r search.Result) bool {
	switch f.Type {
	case TypeSnippets:
		if r.Kind != search.KindSnippet {
			return false
		}
	case TypeTutorials:
		if r.Kind != search.KindTutorial {
			return false
		}
	case TypeFAQs:
		if r.Kind != search.KindFAQ {
			return false
		}
	}
	if !wildcard(string(f.Difficulty)) && r.Difficulty() != f.Difficulty {
		return false
	}
	if !wildcard(f.Category) && r.Category() != f.Category {
		return false
	}
	return true
}

func wildcard(v string) bool {
	return v == "" || v == catalog.All
}

// FilterResults keeps the results that match f, preserving order.
func FilterResults(results []search.Result, f Filter) []search.Result {
	out := make([]search.Result, 0, len(results))
	for _, r := range results {
		if f.match(r) {
			out = append(out, r)
		}
	}
	return out
}
