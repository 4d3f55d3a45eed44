package providers

import "strings"

// DefaultOllamaURL is the base URL of a local Ollama daemon.
const DefaultOllamaURL = "http://localhost:11434"

// Defaults returns the hard-coded provider list, built-in last. The Ollama
// endpoints are derived from ollamaURL.
func Defaults(ollamaURL string) []Descriptor {
	if ollamaURL == "" {
		ollamaURL = DefaultOllamaURL
	}
	ollamaURL = strings.TrimRight(ollamaURL, "/")

	return []Descriptor{
		{
			ID:           "ollama",
			Name:         "Ollama",
			Description:  "Local AI with Ollama",
			Endpoint:     ollamaURL + "/api/chat",
			TestEndpoint: ollamaURL + "/api/tags",
			Models:       []string{},
			Configurable: true,
			Logo:         "🦙",
			Backend:      LocalBackend{},
		},
		{
			ID:            "openai",
			Name:          "OpenAI",
			Description:   "OpenAI API (ChatGPT)",
			Endpoint:      "https://api.openai.com/v1/chat/completions",
			TestEndpoint:  "https://api.openai.com/v1/models",
			Models:        []string{"gpt-4o", "gpt-4o-mini", "gpt-4-turbo", "gpt-4", "gpt-3.5-turbo"},
			SelectedModel: "gpt-4o-mini",
			Configurable:  true,
			Logo:          "🤖",
			Backend: SimulatedBackend{
				Label: "OpenAI",
				Note:  "Here's a simulated response based on your query. In a production environment, this would be sent through a secure backend proxy to the OpenAI API.",
			},
		},
		{
			ID:           "anthropic",
			Name:         "Anthropic",
			Description:  "Anthropic Claude API",
			Endpoint:     "https://api.anthropic.com/v1/messages",
			TestEndpoint: "https://api.anthropic.com/v1/models",
			Models: []string{
				"claude-3-5-sonnet-20241022",
				"claude-3-5-haiku-20241022",
				"claude-3-opus-20240229",
				"claude-3-sonnet-20240229",
				"claude-3-haiku-20240307",
			},
			SelectedModel: "claude-3-5-sonnet-20241022",
			Configurable:  true,
			Logo:          "🧠",
			Backend: SimulatedBackend{
				Label: "Claude",
				Note:  "This is a simulated Claude response. In a production environment, your query would be processed by Anthropic's API through a secure backend channel.",
			},
		},
		{
			ID:            "gemini",
			Name:          "Google Gemini",
			Description:   "Google Gemini AI",
			Endpoint:      "https://generativelanguage.googleapis.com/v1beta/models",
			TestEndpoint:  "https://generativelanguage.googleapis.com/v1beta/models",
			Models:        []string{"gemini-1.5-pro", "gemini-1.5-flash", "gemini-1.0-pro"},
			SelectedModel: "gemini-1.5-flash",
			Configurable:  true,
			Logo:          "💎",
			Backend: SimulatedBackend{
				Label: "Gemini",
				Note:  "Here's a simulated Gemini response. For actual integration, you would need to implement a backend proxy or use Google's client libraries.",
			},
		},
		{
			ID:           "groq",
			Name:         "Groq",
			Description:  "Groq Lightning Fast AI",
			Endpoint:     "https://api.groq.com/openai/v1/chat/completions",
			TestEndpoint: "https://api.groq.com/openai/v1/models",
			Models: []string{
				"llama-3.1-70b-versatile",
				"llama-3.1-8b-instant",
				"llama-3.2-90b-text-preview",
				"llama-3.2-11b-text-preview",
				"mixtral-8x7b-32768",
				"gemma2-9b-it",
			},
			SelectedModel: "llama-3.1-70b-versatile",
			Configurable:  true,
			Logo:          "⚡",
			Backend: SimulatedBackend{
				Label: "Groq",
				Note:  "This is a simulated high-speed response from Groq. In production, this would be processed through their API with proper authentication.",
			},
		},
		{
			ID:            "xai",
			Name:          "xAI (Grok)",
			Description:   "xAI Grok Models",
			Endpoint:      "https://api.x.ai/v1/chat/completions",
			TestEndpoint:  "https://api.x.ai/v1/models",
			Models:        []string{"grok-beta", "grok-vision-beta"},
			SelectedModel: "grok-beta",
			Configurable:  true,
			Logo:          "🚀",
			Backend: SimulatedBackend{
				Label: "Grok",
				Note:  "Here's what Grok would say (simulated). For real implementation, a backend proxy would be required to handle API authentication and requests.",
			},
		},
		{
			ID:            BuiltinID,
			Name:          "Vibe AI",
			Description:   "Built-in Vibe Coding AI",
			Models:        []string{"vibe-coding-assistant"},
			SelectedModel: "vibe-coding-assistant",
			Connected:     true,
			Configurable:  false,
			Logo:          "✨",
			Backend:       BuiltinBackend{},
		},
	}
}
