package config

// StorageKind selects the backing store for persisted state.
type StorageKind string

const (
	StorageSQLite StorageKind = "sqlite"
	StorageMemory StorageKind = "memory"
)

// Config is the top-level vibedocs configuration, corresponding to .vibedocs.yml.
type Config struct {
	DataDir      string          `yaml:"data_dir" koanf:"data_dir"`
	Storage      StorageKind     `yaml:"storage" koanf:"storage"`
	OllamaURL    string          `yaml:"ollama_url" koanf:"ollama_url"`
	Server       ServerConfig    `yaml:"server" koanf:"server"`
	Delays       DelayConfig     `yaml:"delays" koanf:"delays"`
	Search       SearchConfig    `yaml:"search" koanf:"search"`
	RateLimit    RateLimitConfig `yaml:"rate_limit" koanf:"rate_limit"`
	CatalogPaths []string        `yaml:"catalog_paths" koanf:"catalog_paths"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// DelayConfig holds the artificial latencies, in milliseconds, applied to
// built-in, simulated and persona replies.
type DelayConfig struct {
	BuiltinMS   int `yaml:"builtin_ms" koanf:"builtin_ms"`
	SimulatedMS int `yaml:"simulated_ms" koanf:"simulated_ms"`
	PersonaMS   int `yaml:"persona_ms" koanf:"persona_ms"`
}

// SearchConfig tunes the fuzzy index.
type SearchConfig struct {
	Fuzziness int `yaml:"fuzziness" koanf:"fuzziness"`
	CacheSize int `yaml:"cache_size" koanf:"cache_size"`
}

// RateLimitConfig bounds API requests per client IP. RPM 0 disables it.
type RateLimitConfig struct {
	RPM   int `yaml:"rpm" koanf:"rpm"`
	Burst int `yaml:"burst" koanf:"burst"`
}
