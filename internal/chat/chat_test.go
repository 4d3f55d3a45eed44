package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vibe-coding/vibedocs/internal/catalog"
	"github.com/vibe-coding/vibedocs/internal/llm"
	"github.com/vibe-coding/vibedocs/internal/providers"
)

// fakeRegistry answers "echo: <prompt>". When gate is set, SendMessage
// signals started and waits for gate before replying.
type fakeRegistry struct {
	mu       sync.Mutex
	active   string
	known    map[string]bool
	err      error
	gate     chan struct{}
	started  chan struct{}
	lastID   string
	lastHist []llm.Message
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		active: providers.BuiltinID,
		known:  map[string]bool{providers.BuiltinID: true, "ollama": true, "openai": true},
	}
}

func (f *fakeRegistry) Get(id string) (providers.Descriptor, bool) {
	if !f.known[id] {
		return providers.Descriptor{}, false
	}
	return providers.Descriptor{ID: id}, true
}

func (f *fakeRegistry) Active() providers.Descriptor {
	f.mu.Lock()
	defer f.mu.Unlock()
	return providers.Descriptor{ID: f.active}
}

func (f *fakeRegistry) Select(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.known[id] {
		return false
	}
	f.active = id
	return true
}

func (f *fakeRegistry) SendMessage(ctx context.Context, id, model, prompt string, history []llm.Message) (string, error) {
	f.mu.Lock()
	f.lastID = id
	f.lastHist = history
	gate, started, err := f.gate, f.started, f.err
	f.mu.Unlock()

	if gate != nil {
		started <- struct{}{}
		select {
		case <-gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("echo: %s", prompt), nil
}

func newManager(t *testing.T) (*Manager, *fakeRegistry) {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default() error: %v", err)
	}
	reg := newFakeRegistry()
	return NewManager(reg, cat), reg
}

func TestSendAppendsMessages(t *testing.T) {
	m, reg := newManager(t)
	s := m.Create("", "")

	reply, err := s.Send(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	if reply.Content != "echo: hello" || reply.Role != llm.RoleAssistant || reply.ID == "" {
		t.Errorf("reply = %+v", reply)
	}
	if reg.lastID != providers.BuiltinID {
		t.Errorf("sent to %q, want the active provider", reg.lastID)
	}

	if _, err := s.Send(context.Background(), "again"); err != nil {
		t.Fatal(err)
	}
	st := s.State()
	if len(st.Messages) != 4 {
		t.Fatalf("got %d messages, want 4", len(st.Messages))
	}
	if st.Messages[2].Role != llm.RoleUser || st.Messages[2].Content != "again" {
		t.Errorf("third message = %+v", st.Messages[2])
	}
	// The history handed to the provider excludes the new prompt.
	if len(reg.lastHist) != 2 {
		t.Errorf("history length = %d, want 2", len(reg.lastHist))
	}
}

func TestSendEmptyPrompt(t *testing.T) {
	m, _ := newManager(t)
	s := m.Create("", "")
	if _, err := s.Send(context.Background(), "   "); !errors.Is(err, ErrEmptyPrompt) {
		t.Errorf("Send() error = %v, want ErrEmptyPrompt", err)
	}
	if len(s.State().Messages) != 0 {
		t.Error("empty prompt must not be recorded")
	}
}

func TestPersonaSystemMessage(t *testing.T) {
	m, reg := newManager(t)
	s := m.Create("python-guru", "")
	if st := s.State(); st.PersonaID != "python-guru" {
		t.Fatalf("PersonaID = %q", st.PersonaID)
	}

	if _, err := s.Send(context.Background(), "sort a list"); err != nil {
		t.Fatal(err)
	}
	if len(reg.lastHist) != 1 || reg.lastHist[0].Role != llm.RoleSystem {
		t.Fatalf("history = %+v, want a single system message", reg.lastHist)
	}
	sys := reg.lastHist[0].Content
	for _, want := range []string{"Python Guru", "Python, Data Science, Machine Learning, Automation"} {
		if !strings.Contains(sys, want) {
			t.Errorf("system message %q missing %q", sys, want)
		}
	}
}

func TestSelectUnknownIsNoop(t *testing.T) {
	m, reg := newManager(t)
	s := m.Create("react-specialist", "")
	if _, err := s.Send(context.Background(), "hi"); err != nil {
		t.Fatal(err)
	}

	if s.SelectPersona("nobody") {
		t.Error("SelectPersona(unknown) = true")
	}
	if s.SelectProvider("nowhere") {
		t.Error("SelectProvider(unknown) = true")
	}
	st := s.State()
	if st.PersonaID != "react-specialist" || len(st.Messages) != 2 {
		t.Errorf("state changed after unknown selects: %+v", st)
	}
	if reg.Active().ID != providers.BuiltinID {
		t.Errorf("active = %q", reg.Active().ID)
	}
}

func TestSelectProviderClears(t *testing.T) {
	m, reg := newManager(t)
	s := m.Create("", "")
	if _, err := s.Send(context.Background(), "hi"); err != nil {
		t.Fatal(err)
	}

	if !s.SelectProvider("ollama") {
		t.Fatal("SelectProvider(ollama) = false")
	}
	st := s.State()
	if st.ProviderID != "ollama" || len(st.Messages) != 0 {
		t.Errorf("state = %+v", st)
	}
	if reg.Active().ID != "ollama" {
		t.Errorf("registry active = %q, want ollama", reg.Active().ID)
	}
}

func TestSwitchWhilePendingDiscardsReply(t *testing.T) {
	m, reg := newManager(t)
	reg.gate = make(chan struct{})
	reg.started = make(chan struct{}, 1)
	s := m.Create("javascript-expert", "")

	errc := make(chan error, 1)
	go func() {
		_, err := s.Send(context.Background(), "slow question")
		errc <- err
	}()
	<-reg.started

	if !s.State().Pending {
		t.Error("Pending = false while a reply is outstanding")
	}
	if _, err := s.Send(context.Background(), "second"); !errors.Is(err, ErrBusy) {
		t.Errorf("concurrent Send() error = %v, want ErrBusy", err)
	}

	if !s.SelectPersona("python-guru") {
		t.Fatal("SelectPersona(python-guru) = false")
	}
	close(reg.gate)

	select {
	case err := <-errc:
		if !errors.Is(err, ErrSuperseded) {
			t.Errorf("Send() error = %v, want ErrSuperseded", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Send() did not return")
	}

	st := s.State()
	if len(st.Messages) != 0 || st.Pending {
		t.Errorf("state after discarded reply = %+v", st)
	}
}

func TestSendProviderError(t *testing.T) {
	m, reg := newManager(t)
	reg.err = fmt.Errorf("Ollama: %w", providers.ErrNotConnected)
	s := m.Create("", "")

	_, err := s.Send(context.Background(), "hi")
	if !errors.Is(err, providers.ErrNotConnected) {
		t.Fatalf("Send() error = %v", err)
	}
	st := s.State()
	if len(st.Messages) != 1 || st.Pending {
		t.Errorf("state = %+v, want only the user message", st)
	}
}

func TestManager(t *testing.T) {
	m, _ := newManager(t)
	a := m.Create("", "")
	b := m.Create("", "openai")

	if got, err := m.Get(a.ID()); err != nil || got != a {
		t.Errorf("Get(a) = %v, %v", got, err)
	}
	if b.State().ProviderID != "openai" {
		t.Errorf("b provider = %q", b.State().ProviderID)
	}
	if len(m.List()) != 2 {
		t.Errorf("List() = %v", m.List())
	}

	m.Delete(a.ID())
	if _, err := m.Get(a.ID()); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get(deleted) error = %v", err)
	}
}
