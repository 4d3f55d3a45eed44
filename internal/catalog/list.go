package catalog

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// All is the category and letter wildcard accepted by the list filters,
// alongside the empty string.
const All = "all"

// SortOrder names a list ordering.
type SortOrder string

const (
	SortRecent     SortOrder = "recent"
	SortPopular    SortOrder = "popular"
	SortDifficulty SortOrder = "difficulty"
	SortHelpful    SortOrder = "helpful"
	SortViews      SortOrder = "views"
)

// ListOptions filters and orders snippet and tutorial listings.
type ListOptions struct {
	Category string
	Sort     SortOrder
}

func matchesCategory(want, got string) bool {
	return want == "" || want == All || want == got
}

// ListSnippets returns the snippets in the given category, ordered by
// opts.Sort. The default order is most recent first.
func (c *Catalog) ListSnippets(opts ListOptions) []Snippet {
	out := make([]Snippet, 0, len(c.Snippets))
	for _, s := range c.Snippets {
		if matchesCategory(opts.Category, s.Category) {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		switch opts.Sort {
		case SortPopular:
			return out[i].Likes > out[j].Likes
		case SortDifficulty:
			return out[i].Difficulty.Rank() < out[j].Difficulty.Rank()
		default:
			return out[i].CreatedAt > out[j].CreatedAt
		}
	})
	return out
}

// ListTutorials is ListSnippets for tutorials.
func (c *Catalog) ListTutorials(opts ListOptions) []Tutorial {
	out := make([]Tutorial, 0, len(c.Tutorials))
	for _, t := range c.Tutorials {
		if matchesCategory(opts.Category, t.Category) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		switch opts.Sort {
		case SortPopular:
			return out[i].Likes > out[j].Likes
		case SortDifficulty:
			return out[i].Difficulty.Rank() < out[j].Difficulty.Rank()
		default:
			return out[i].CreatedAt > out[j].CreatedAt
		}
	})
	return out
}

// FAQOptions filters and orders the FAQ listing. Query is a
// case-insensitive substring of the question or answer.
type FAQOptions struct {
	Query    string
	Category string
	Sort     SortOrder
}

// ListFAQs returns matching FAQs, most helpful first unless opts.Sort is
// SortViews.
func (c *Catalog) ListFAQs(opts FAQOptions) []FAQ {
	q := strings.ToLower(opts.Query)
	out := make([]FAQ, 0, len(c.FAQs))
	for _, f := range c.FAQs {
		if !matchesCategory(opts.Category, f.Category) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(f.Question), q) && !strings.Contains(strings.ToLower(f.Answer), q) {
			continue
		}
		out = append(out, f)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if opts.Sort == SortViews {
			return out[i].Views > out[j].Views
		}
		return out[i].Helpful > out[j].Helpful
	})
	return out
}

// GlossaryOptions filters the glossary. Letter matches the first letter of
// the term, case-insensitively.
type GlossaryOptions struct {
	Query    string
	Category string
	Letter   string
}

// ListGlossary returns matching terms in alphabetical order.
func (c *Catalog) ListGlossary(opts GlossaryOptions) []Term {
	q := strings.ToLower(opts.Query)
	letter := strings.ToLower(opts.Letter)
	out := make([]Term, 0, len(c.Glossary))
	for _, t := range c.Glossary {
		if !matchesCategory(opts.Category, t.Category) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(t.Term), q) && !strings.Contains(strings.ToLower(t.Definition), q) {
			continue
		}
		if letter != "" && letter != All && firstLetter(t.Term) != letter {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Term) < strings.ToLower(out[j].Term)
	})
	return out
}

func firstLetter(s string) string {
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToLower(r))
}

// Categories lists the distinct categories of one content kind in first
// appearance order. Kind is one of snippets, tutorials, faqs or glossary.
func (c *Catalog) Categories(kind string) []string {
	var cats []string
	switch kind {
	case "snippets":
		for _, s := range c.Snippets {
			cats = append(cats, s.Category)
		}
	case "tutorials":
		for _, t := range c.Tutorials {
			cats = append(cats, t.Category)
		}
	case "faqs":
		for _, f := range c.FAQs {
			cats = append(cats, f.Category)
		}
	case "glossary":
		for _, t := range c.Glossary {
			cats = append(cats, t.Category)
		}
	}

	seen := make(map[string]bool)
	out := make([]string, 0, len(cats))
	for _, cat := range cats {
		if !seen[cat] {
			seen[cat] = true
			out = append(out, cat)
		}
	}
	return out
}
