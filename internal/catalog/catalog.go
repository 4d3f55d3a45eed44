// Package catalog holds the read-only learning content: code snippets,
// tutorials, FAQs, glossary terms and AI personas. The built-in dataset is
// embedded; extra YAML files with the same layout can be layered on top.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var builtin []byte

// ErrNotFound is returned when an id does not exist in the catalog.
var ErrNotFound = errors.New("catalog: not found")

// Catalog is the full content set. It is never mutated after Load.
type Catalog struct {
	Snippets  []Snippet  `yaml:"snippets" json:"snippets"`
	Tutorials []Tutorial `yaml:"tutorials" json:"tutorials"`
	FAQs      []FAQ      `yaml:"faqs" json:"faqs"`
	Glossary  []Term     `yaml:"glossary" json:"glossary"`
	Personas  []Persona  `yaml:"personas" json:"personas"`
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Load(nil)
}

// Load parses the embedded catalog and appends the content of every YAML
// file matched by patterns. Duplicate ids within a content kind are an error.
func Load(patterns []string) (*Catalog, error) {
	c, err := parse(builtin)
	if err != nil {
		return nil, fmt.Errorf("parsing embedded catalog: %w", err)
	}

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("expanding catalog pattern %q: %w", pattern, err)
		}
		sort.Strings(matches)
		for _, path := range matches {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("reading catalog %s: %w", path, err)
			}
			extra, err := parse(data)
			if err != nil {
				return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
			}
			c.merge(extra)
		}
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) merge(o *Catalog) {
	c.Snippets = append(c.Snippets, o.Snippets...)
	c.Tutorials = append(c.Tutorials, o.Tutorials...)
	c.FAQs = append(c.FAQs, o.FAQs...)
	c.Glossary = append(c.Glossary, o.Glossary...)
	c.Personas = append(c.Personas, o.Personas...)
}

func (c *Catalog) validate() error {
	if err := uniqueIDs("snippet", c.Snippets, func(s Snippet) string { return s.ID }); err != nil {
		return err
	}
	if err := uniqueIDs("tutorial", c.Tutorials, func(t Tutorial) string { return t.ID }); err != nil {
		return err
	}
	if err := uniqueIDs("faq", c.FAQs, func(f FAQ) string { return f.ID }); err != nil {
		return err
	}
	if err := uniqueIDs("glossary", c.Glossary, func(t Term) string { return t.ID }); err != nil {
		return err
	}
	return uniqueIDs("persona", c.Personas, func(p Persona) string { return p.ID })
}

func uniqueIDs[T any](kind string, items []T, id func(T) string) error {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		key := id(item)
		if key == "" {
			return fmt.Errorf("%s entry without id", kind)
		}
		if seen[key] {
			return fmt.Errorf("duplicate %s id %q", kind, key)
		}
		seen[key] = true
	}
	return nil
}

// Snippet looks up a snippet by id.
func (c *Catalog) Snippet(id string) (Snippet, error) {
	for _, s := range c.Snippets {
		if s.ID == id {
			return s, nil
		}
	}
	return Snippet{}, fmt.Errorf("snippet %q: %w", id, ErrNotFound)
}

// Tutorial looks up a tutorial by id.
func (c *Catalog) Tutorial(id string) (Tutorial, error) {
	for _, t := range c.Tutorials {
		if t.ID == id {
			return t, nil
		}
	}
	return Tutorial{}, fmt.Errorf("tutorial %q: %w", id, ErrNotFound)
}

// FAQ looks up an FAQ by id.
func (c *Catalog) FAQ(id string) (FAQ, error) {
	for _, f := range c.FAQs {
		if f.ID == id {
			return f, nil
		}
	}
	return FAQ{}, fmt.Errorf("faq %q: %w", id, ErrNotFound)
}

// Persona looks up a persona by id.
func (c *Catalog) Persona(id string) (Persona, error) {
	for _, p := range c.Personas {
		if p.ID == id {
			return p, nil
		}
	}
	return Persona{}, fmt.Errorf("persona %q: %w", id, ErrNotFound)
}
