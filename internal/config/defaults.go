package config

import (
	"path/filepath"
	"time"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = ".vibedocs.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DataDir:   ".vibedocs",
		Storage:   StorageSQLite,
		OllamaURL: "http://localhost:11434",
		Server: ServerConfig{
			Port:            8080,
			AllowAllOrigins: true,
		},
		Delays: DelayConfig{
			BuiltinMS:   1000,
			SimulatedMS: 1500,
			PersonaMS:   1000,
		},
		Search: SearchConfig{
			Fuzziness: 1,
			CacheSize: 128,
		},
		RateLimit: RateLimitConfig{
			RPM:   600,
			Burst: 60,
		},
	}
}

// DatabasePath returns the SQLite file inside the data directory.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "vibedocs.db")
}

// BuiltinDelay is the latency of the built-in assistant.
func (d DelayConfig) BuiltinDelay() time.Duration {
	return time.Duration(d.BuiltinMS) * time.Millisecond
}

// SimulatedDelay is the latency of simulated hosted providers.
func (d DelayConfig) SimulatedDelay() time.Duration {
	return time.Duration(d.SimulatedMS) * time.Millisecond
}

// PersonaDelay is the latency of canned persona answers.
func (d DelayConfig) PersonaDelay() time.Duration {
	return time.Duration(d.PersonaMS) * time.Millisecond
}
