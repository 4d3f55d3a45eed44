package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (VIBEDOCS_*). Nested keys use a double
// underscore: VIBEDOCS_SERVER__PORT -> server.port.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider("VIBEDOCS_", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// envKey maps VIBEDOCS_RATE_LIMIT__RPM to rate_limit.rpm.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, "VIBEDOCS_"))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validStorage = map[StorageKind]bool{
	StorageSQLite: true,
	StorageMemory: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if !validStorage[c.Storage] {
		return fmt.Errorf("invalid storage %q: must be one of sqlite, memory", c.Storage)
	}
	if c.Storage == StorageSQLite && c.DataDir == "" {
		return fmt.Errorf("data_dir is required for sqlite storage")
	}

	if c.OllamaURL == "" {
		return fmt.Errorf("ollama_url is required")
	}
	u, err := url.Parse(c.OllamaURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid ollama_url %q", c.OllamaURL)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}

	if c.Delays.BuiltinMS < 0 || c.Delays.SimulatedMS < 0 || c.Delays.PersonaMS < 0 {
		return fmt.Errorf("delays must be non-negative")
	}

	if c.Search.Fuzziness < 0 || c.Search.Fuzziness > 2 {
		return fmt.Errorf("search.fuzziness must be 0, 1 or 2")
	}
	if c.Search.CacheSize < 0 {
		return fmt.Errorf("search.cache_size must be non-negative")
	}

	if c.RateLimit.RPM < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("rate_limit values must be non-negative")
	}

	return nil
}
