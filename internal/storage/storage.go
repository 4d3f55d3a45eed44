// Package storage is the string-keyed JSON blob store that stands in for
// browser local storage. Each state container owns one key, reads it once at
// start-up and rewrites it in full on every mutation.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Keys owned by the state containers.
const (
	KeyUser           = "vibe-coding-user"
	KeySavedSnippets  = "vibe-coding-saved-snippets"
	KeyRecentSearches = "vibe-coding-recent-searches"
	KeyProviders      = "vibe-coding-ai-providers"
	KeyFAQVotes       = "vibe-coding-faq-votes"
)

var (
	// ErrNotFound is returned by Get when the key has never been written.
	ErrNotFound = errors.New("storage: key not found")
	// ErrCorrupt is returned by LoadJSON when the stored value does not decode.
	ErrCorrupt = errors.New("storage: corrupt value")
)

// Store is a flat key/value store of raw JSON documents.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// LoadJSON decodes the value stored under key into v. It reports false with
// a nil error when the key is absent.
func LoadJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	data, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("%w: decoding %s: %v", ErrCorrupt, key, err)
	}
	return true, nil
}

// SaveJSON encodes v and writes it under key, replacing any previous value.
func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := s.Set(ctx, key, data); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}
