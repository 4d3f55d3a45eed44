package chat

import (
	"errors"
	"sort"
	"sync"
)

// ErrSessionNotFound is returned for unknown session ids.
var ErrSessionNotFound = errors.New("chat session not found")

// Manager owns the live sessions.
type Manager struct {
	registry Registry
	personas Personas

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates an empty Manager.
func NewManager(registry Registry, personas Personas) *Manager {
	return &Manager{
		registry: registry,
		personas: personas,
		sessions: make(map[string]*Session),
	}
}

// Create starts a session on the active provider. Non-empty persona and
// provider ids are applied the same way SelectPersona and SelectProvider
// apply them.
func (m *Manager) Create(personaID, providerID string) *Session {
	s := newSession(m.registry, m.personas, m.registry.Active().ID)
	if providerID != "" {
		s.SelectProvider(providerID)
	}
	if personaID != "" {
		s.SelectPersona(personaID)
	}

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()
	return s
}

// Get returns the session with the given id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete forgets the session. Unknown ids are ignored.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// List returns the ids of all sessions in sorted order.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
