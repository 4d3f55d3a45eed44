package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/vibe-coding/vibedocs/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing documentation search, snippets, personas and providers as tools.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "vibedocs MCP server started on stdio (documents=%d)\n", a.index.Len())

		srv := mcpserver.NewServer(a.docs, a.catalog, a.providers)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
