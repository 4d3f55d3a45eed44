package mcp

import "github.com/mark3labs/mcp-go/mcp"

// searchDocsTool defines the search_docs MCP tool.
var searchDocsTool = mcp.NewTool("search_docs",
	mcp.WithDescription("Fuzzy search over code snippets, tutorials and FAQs. Tolerates typos and partial words."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Search text"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 10)"),
	),
	mcp.WithString("type_filter",
		mcp.Description("Restrict results to one content type"),
		mcp.Enum("snippets", "tutorials", "faqs"),
	),
	mcp.WithString("difficulty",
		mcp.Description("Restrict results to one difficulty"),
		mcp.Enum("Beginner", "Intermediate", "Advanced"),
	),
)

// getSnippetTool defines the get_snippet MCP tool.
var getSnippetTool = mcp.NewTool("get_snippet",
	mcp.WithDescription("Get a code snippet as markdown, including its code block."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Snippet identifier"),
	),
)

// getTutorialTool defines the get_tutorial MCP tool.
var getTutorialTool = mcp.NewTool("get_tutorial",
	mcp.WithDescription("Get a tutorial as markdown with its ordered steps."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Tutorial identifier"),
	),
)

// askPersonaTool defines the ask_persona MCP tool.
var askPersonaTool = mcp.NewTool("ask_persona",
	mcp.WithDescription("Ask one of the AI personas (javascript-expert, python-guru, react-specialist, backend-architect) a question."),
	mcp.WithString("persona_id",
		mcp.Required(),
		mcp.Description("Persona identifier"),
	),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Question for the persona"),
	),
)

// listProvidersTool defines the list_providers MCP tool.
var listProvidersTool = mcp.NewTool("list_providers",
	mcp.WithDescription("List the configured AI chat providers with their connection state and models."),
)

// sendMessageTool defines the send_message MCP tool.
var sendMessageTool = mcp.NewTool("send_message",
	mcp.WithDescription("Send a single prompt to an AI provider and return its reply."),
	mcp.WithString("message",
		mcp.Required(),
		mcp.Description("Prompt text"),
	),
	mcp.WithString("provider_id",
		mcp.Description("Provider identifier (default: the active provider)"),
	),
	mcp.WithString("model",
		mcp.Description("Model override"),
	),
)
