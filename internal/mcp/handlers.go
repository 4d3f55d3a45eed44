package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/vibe-coding/vibedocs/internal/catalog"
	"github.com/vibe-coding/vibedocs/internal/docs"
	"github.com/vibe-coding/vibedocs/internal/render"
	"github.com/vibe-coding/vibedocs/internal/search"
)

// handleSearchDocs runs a fuzzy search and formats the matches.
func (s *Server) handleSearchDocs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}

	results, err := s.docs.Search(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	results = docs.FilterResults(results, docs.Filter{
		Type:       docs.ResultType(request.GetString("type_filter", "")),
		Difficulty: catalog.Difficulty(request.GetString("difficulty", "")),
	})
	if len(results) > limit {
		results = results[:limit]
	}

	if len(results) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No results found for %q.", query)), nil
	}
	return mcp.NewToolResultText(formatSearchResults(results)), nil
}

// handleGetSnippet returns the markdown of one snippet.
func (s *Server) handleGetSnippet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}
	snippet, err := s.catalog.Snippet(id)
	if errors.Is(err, catalog.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("No snippet with id %q.", id)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(render.SnippetMarkdown(snippet)), nil
}

// handleGetTutorial returns the markdown of one tutorial.
func (s *Server) handleGetTutorial(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}
	tutorial, err := s.catalog.Tutorial(id)
	if errors.Is(err, catalog.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("No tutorial with id %q.", id)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(render.TutorialMarkdown(tutorial)), nil
}

// handleAskPersona returns the persona's canned answer.
func (s *Server) handleAskPersona(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	personaID, err := request.RequireString("persona_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: persona_id"), nil
	}
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	answer, err := s.docs.PersonaResponse(ctx, personaID, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("persona failed: %v", err)), nil
	}
	return mcp.NewToolResultText(answer), nil
}

// handleListProviders describes every provider, active one first marked.
func (s *Server) handleListProviders(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	active := s.providers.Active().ID

	var sb strings.Builder
	for _, d := range s.providers.List() {
		marker := " "
		if d.ID == active {
			marker = "*"
		}
		state := "disconnected"
		if d.Connected {
			state = "connected"
		}
		fmt.Fprintf(&sb, "%s %s (%s) - %s, %s\n", marker, d.Name, d.ID, state, d.Backend.Kind())
		if len(d.Models) > 0 {
			fmt.Fprintf(&sb, "    models: %s (selected: %s)\n", strings.Join(d.Models, ", "), d.SelectedModel)
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleSendMessage dispatches one prompt through the provider registry.
func (s *Server) handleSendMessage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := request.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: message"), nil
	}
	providerID := request.GetString("provider_id", "")
	if providerID == "" {
		providerID = s.providers.Active().ID
	}

	reply, err := s.providers.SendMessage(ctx, providerID, request.GetString("model", ""), message, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("send failed: %v", err)), nil
	}
	return mcp.NewToolResultText(reply), nil
}

// formatSearchResults converts search results into a text format suited to
// AI agent consumption.
func formatSearchResults(results []search.Result) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d result(s):\n", len(results)))

	for i, r := range results {
		sb.WriteString(fmt.Sprintf("\n--- Result %d ---\n", i+1))
		sb.WriteString(fmt.Sprintf("%s %s: %s\n", r.Kind, r.ID, r.Title()))
		if c := r.Category(); c != "" {
			sb.WriteString(fmt.Sprintf("Category: %s\n", c))
		}
		if d := r.Difficulty(); d != "" {
			sb.WriteString(fmt.Sprintf("Difficulty: %s\n", d))
		}
		sb.WriteString(fmt.Sprintf("Score: %.3f\n", r.Score))

		switch {
		case r.Snippet != nil:
			sb.WriteString("\n" + r.Snippet.Description + "\n")
		case r.Tutorial != nil:
			sb.WriteString("\n" + r.Tutorial.Description + "\n")
		case r.FAQ != nil:
			sb.WriteString("\n" + r.FAQ.Answer + "\n")
		}
	}

	return sb.String()
}
