package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/vibe-coding/vibedocs/internal/catalog"
	"github.com/vibe-coding/vibedocs/internal/docs"
	"github.com/vibe-coding/vibedocs/internal/providers"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the documentation portal as tools.
type Server struct {
	docs      *docs.Container
	catalog   *catalog.Catalog
	providers *providers.Registry
	mcp       *server.MCPServer
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(d *docs.Container, c *catalog.Catalog, p *providers.Registry) *Server {
	s := &Server{
		docs:      d,
		catalog:   c,
		providers: p,
	}

	s.mcp = server.NewMCPServer(
		"vibedocs",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchDocsTool, s.handleSearchDocs)
	s.mcp.AddTool(getSnippetTool, s.handleGetSnippet)
	s.mcp.AddTool(getTutorialTool, s.handleGetTutorial)
	s.mcp.AddTool(askPersonaTool, s.handleAskPersona)
	s.mcp.AddTool(listProvidersTool, s.handleListProviders)
	s.mcp.AddTool(sendMessageTool, s.handleSendMessage)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
