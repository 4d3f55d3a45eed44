// Package chat holds persona conversations routed through the provider
// registry.
package chat

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vibe-coding/vibedocs/internal/catalog"
	"github.com/vibe-coding/vibedocs/internal/llm"
	"github.com/vibe-coding/vibedocs/internal/providers"
)

var (
	ErrEmptyPrompt = errors.New("prompt is empty")
	ErrBusy        = errors.New("a message is already being sent")
	// ErrSuperseded is returned by Send when the persona or provider
	// changed while the reply was pending. The reply is dropped.
	ErrSuperseded = errors.New("conversation changed while waiting for a reply")
)

// Registry is the part of the provider registry a session needs.
type Registry interface {
	Get(id string) (providers.Descriptor, bool)
	Active() providers.Descriptor
	Select(id string) bool
	SendMessage(ctx context.Context, id, model, prompt string, history []llm.Message) (string, error)
}

// Personas looks up persona presets.
type Personas interface {
	Persona(id string) (catalog.Persona, error)
}

// Message is one entry of a conversation.
type Message struct {
	ID        string    `json:"id"`
	Role      llm.Role  `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// State is a point-in-time copy of a session.
type State struct {
	ID         string    `json:"id"`
	PersonaID  string    `json:"persona_id,omitempty"`
	ProviderID string    `json:"provider_id"`
	Messages   []Message `json:"messages"`
	Pending    bool      `json:"pending"`
}

// Session is a conversation with an optional persona over one provider.
// Switching persona or provider clears the messages.
type Session struct {
	id       string
	registry Registry
	personas Personas
	now      func() time.Time

	mu       sync.Mutex
	persona  *catalog.Persona
	provider string
	messages []Message
	epoch    uint64
	pending  bool
}

func newSession(registry Registry, personas Personas, providerID string) *Session {
	return &Session{
		id:       uuid.NewString(),
		registry: registry,
		personas: personas,
		now:      time.Now,
		provider: providerID,
		messages: []Message{},
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// State returns a copy of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := State{
		ID:         s.id,
		ProviderID: s.provider,
		Messages:   slices.Clone(s.messages),
		Pending:    s.pending,
	}
	if s.persona != nil {
		st.PersonaID = s.persona.ID
	}
	return st
}

// clearLocked drops the conversation and invalidates pending replies.
func (s *Session) clearLocked() {
	s.messages = []Message{}
	s.epoch++
}

// SelectPersona switches the persona and clears the conversation. Unknown
// ids are ignored and reported as false.
func (s *Session) SelectPersona(id string) bool {
	p, err := s.personas.Persona(id)
	if err != nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persona = &p
	s.clearLocked()
	return true
}

// SelectProvider switches the provider, makes it the registry's active
// provider and clears the conversation. Unknown ids are ignored.
func (s *Session) SelectProvider(id string) bool {
	if !s.registry.Select(id) {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.provider = id
	s.clearLocked()
	return true
}

// Reset clears the conversation.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

func (s *Session) message(role llm.Role, content string) Message {
	return Message{ID: uuid.NewString(), Role: role, Content: content, CreatedAt: s.now().UTC()}
}

// Send appends prompt to the conversation, waits for the provider and
// appends its reply. Only one send may be pending at a time.
func (s *Session) Send(ctx context.Context, prompt string) (Message, error) {
	if strings.TrimSpace(prompt) == "" {
		return Message{}, ErrEmptyPrompt
	}

	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return Message{}, ErrBusy
	}
	history := s.historyLocked()
	s.messages = append(s.messages, s.message(llm.RoleUser, prompt))
	s.pending = true
	epoch := s.epoch
	provider := s.provider
	s.mu.Unlock()

	reply, err := s.registry.SendMessage(ctx, provider, "", prompt, history)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = false
	if s.epoch != epoch {
		return Message{}, ErrSuperseded
	}
	if err != nil {
		return Message{}, fmt.Errorf("sending message: %w", err)
	}
	m := s.message(llm.RoleAssistant, reply)
	s.messages = append(s.messages, m)
	return m, nil
}

// historyLocked renders the persona and the earlier messages for the
// provider.
func (s *Session) historyLocked() []llm.Message {
	out := make([]llm.Message, 0, len(s.messages)+1)
	if s.persona != nil {
		out = append(out, llm.Message{Role: llm.RoleSystem, Content: personaPrompt(*s.persona)})
	}
	for _, m := range s.messages {
		out = append(out, llm.Message{Role: m.Role, Content: m.Content})
	}
	return out
}

func personaPrompt(p catalog.Persona) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s. %s.", p.Name, p.Description)
	if len(p.Specialties) > 0 {
		fmt.Fprintf(&b, " Specialties: %s.", strings.Join(p.Specialties, ", "))
	}
	if p.ResponseStyle != "" {
		fmt.Fprintf(&b, " Response style: %s.", p.ResponseStyle)
	}
	return b.String()
}
