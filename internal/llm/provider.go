// Package llm holds the chat message model shared by the provider registry
// and the conversation sessions, plus the HTTP client for a local Ollama
// daemon.
package llm

import (
	"context"
	"time"
)

// Role identifies who wrote a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a conversation as sent to a backend.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is a full conversation to answer. An empty Model means
// the client's default.
type CompletionRequest struct {
	Model    string
	Messages []Message
}

// CompletionResponse is the backend's reply.
type CompletionResponse struct {
	Content      string
	Model        string
	FinishReason string
}

// Provider is a chat backend reachable over the network.
type Provider interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	Name() string
}

var _ Provider = (*OllamaProvider)(nil)

// Wait blocks for d or until ctx is done. Canned and simulated replies use
// it in place of network latency.
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
