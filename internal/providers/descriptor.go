// Package providers is the registry of AI chat providers: the built-in
// assistant, a local Ollama daemon and a set of simulated hosted services.
package providers

import "slices"

// BuiltinID is the identifier of the always-available built-in assistant.
const BuiltinID = "vibe"

// BackendKind names a Backend variant.
type BackendKind string

const (
	KindBuiltin   BackendKind = "builtin"
	KindLocal     BackendKind = "local"
	KindSimulated BackendKind = "simulated"
)

// Backend says how messages to a provider are answered. The set of
// variants is closed.
type Backend interface {
	Kind() BackendKind
	sealed()
}

// BuiltinBackend answers with a canned reply after a short delay.
type BuiltinBackend struct{}

// LocalBackend talks to an Ollama daemon at the descriptor's endpoints.
// It is the only variant that performs network calls.
type LocalBackend struct{}

// SimulatedBackend answers with a templated reply and never touches the
// network. Label names the service in the reply; Note is appended to it.
type SimulatedBackend struct {
	Label string
	Note  string
}

func (BuiltinBackend) Kind() BackendKind   { return KindBuiltin }
func (LocalBackend) Kind() BackendKind     { return KindLocal }
func (SimulatedBackend) Kind() BackendKind { return KindSimulated }

func (BuiltinBackend) sealed()   {}
func (LocalBackend) sealed()     {}
func (SimulatedBackend) sealed() {}

// Descriptor is one configured provider.
type Descriptor struct {
	ID            string
	Name          string
	Description   string
	Endpoint      string
	TestEndpoint  string
	APIKey        string
	Models        []string
	SelectedModel string
	Connected     bool
	Configurable  bool
	Logo          string
	Backend       Backend
}

func (d Descriptor) clone() Descriptor {
	d.Models = slices.Clone(d.Models)
	return d
}

// discoversModels reports whether the model list is filled in at runtime
// rather than fixed by the defaults.
func (d Descriptor) discoversModels() bool {
	_, ok := d.Backend.(LocalBackend)
	return ok
}

// enforceBuiltin keeps the built-in provider connected and read-only.
func enforceBuiltin(descriptors []Descriptor) {
	for i := range descriptors {
		if _, ok := descriptors[i].Backend.(BuiltinBackend); ok {
			descriptors[i].Connected = true
			descriptors[i].Configurable = false
		}
	}
}
