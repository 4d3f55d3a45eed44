package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vibe-coding/vibedocs/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "vibedocs",
	Short: "Vibe-Coding Docs: snippets, tutorials, FAQs and AI chat",
	Long: `vibedocs serves the Vibe-Coding learning portal: a catalog of code
snippets, tutorials, FAQs and glossary terms with fuzzy search, saved
snippets, AI personas and a registry of chat providers including a local
Ollama daemon.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// setupLogging installs a text slog handler on stderr. Stdout stays free
// for command output and the MCP protocol.
func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
