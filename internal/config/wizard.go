package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and saves the result
// to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to vibedocs! Let's configure your workspace.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Storage backend.
	storagePrompt := promptui.Select{
		Label: "Where should saved snippets, searches and providers be kept",
		Items: []string{
			"sqlite - persisted under the data directory",
			"memory - forgotten on exit",
		},
	}
	storageIdx, _, err := storagePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("storage selection: %w", err)
	}
	cfg.Storage = []StorageKind{StorageSQLite, StorageMemory}[storageIdx]

	// 2. Data directory.
	if cfg.Storage == StorageSQLite {
		dataPrompt := promptui.Prompt{
			Label:   "Data directory",
			Default: cfg.DataDir,
		}
		cfg.DataDir, err = dataPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("data dir: %w", err)
		}
	}

	// 3. Ollama.
	ollamaPrompt := promptui.Prompt{
		Label:   "Ollama base URL",
		Default: cfg.OllamaURL,
	}
	cfg.OllamaURL, err = ollamaPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("ollama url: %w", err)
	}
	cfg.OllamaURL = strings.TrimRight(cfg.OllamaURL, "/")

	// 4. HTTP port.
	portPrompt := promptui.Prompt{
		Label:   "HTTP server port",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			if _, err := strconv.Atoi(s); err != nil {
				return fmt.Errorf("port must be a number")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	// 5. Extra catalog files.
	catalogPrompt := promptui.Prompt{
		Label:   "Extra catalog globs (comma-separated, leave blank for none)",
		Default: "",
	}
	catalogStr, err := catalogPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("catalog paths: %w", err)
	}
	cfg.CatalogPaths = splitAndTrim(catalogStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and drops empty entries.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
