package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// StatusError is returned when the Ollama daemon answers with a non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ollama returned status %d: %s", e.Code, e.Body)
}

// OllamaProvider implements Provider using direct HTTP calls to a local
// Ollama daemon.
type OllamaProvider struct {
	chatURL string
	tagsURL string
	model   string
	client  *http.Client
}

// NewOllamaProvider creates a provider that posts chats to chatURL and lists
// models from tagsURL. A nil client means http.DefaultClient.
func NewOllamaProvider(chatURL, tagsURL, model string, client *http.Client) *OllamaProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &OllamaProvider{
		chatURL: chatURL,
		tagsURL: tagsURL,
		model:   model,
		client:  client,
	}
}

func (p *OllamaProvider) Name() string {
	return "ollama"
}

type ollamaChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type ollamaChatResponse struct {
	Message    Message `json:"message"`
	Model      string  `json:"model"`
	Done       bool    `json:"done"`
	DoneReason string  `json:"done_reason"`
}

type ollamaTagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

func (p *OllamaProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}

	messages := req.Messages
	if messages == nil {
		messages = []Message{}
	}

	body, err := json.Marshal(ollamaChatRequest{
		Model:    model,
		Messages: messages,
		Stream:   false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ollama request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.chatURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	respBody, err := p.do(httpReq)
	if err != nil {
		return nil, err
	}

	var ollamaResp ollamaChatResponse
	if err := json.Unmarshal(respBody, &ollamaResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ollama response: %w", err)
	}

	return &CompletionResponse{
		Content:      ollamaResp.Message.Content,
		Model:        ollamaResp.Model,
		FinishReason: ollamaResp.DoneReason,
	}, nil
}

// ListModels returns the names of the locally installed models.
func (p *OllamaProvider) ListModels(ctx context.Context) ([]string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.tagsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	respBody, err := p.do(httpReq)
	if err != nil {
		return nil, err
	}

	var tags ollamaTagsResponse
	if err := json.Unmarshal(respBody, &tags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ollama tags: %w", err)
	}
	if tags.Models == nil {
		return nil, fmt.Errorf("ollama tags response has no models field")
	}

	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

func (p *OllamaProvider) do(httpReq *http.Request) ([]byte, error) {
	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ollama request failed: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read ollama response: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, &StatusError{Code: httpResp.StatusCode, Body: string(respBody)}
	}
	return respBody, nil
}
