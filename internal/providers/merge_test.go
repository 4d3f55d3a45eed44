package providers

import (
	"reflect"
	"testing"
)

func ptr[T any](v T) *T { return &v }

func find(t *testing.T, list []Descriptor, id string) Descriptor {
	t.Helper()
	for _, d := range list {
		if d.ID == id {
			return d
		}
	}
	t.Fatalf("descriptor %q not found", id)
	return Descriptor{}
}

func TestMergeNoStoredState(t *testing.T) {
	defaults := Defaults("")
	got := merge(defaults, nil)
	if !reflect.DeepEqual(got, defaults) {
		t.Errorf("merge with nothing stored must equal defaults")
	}
	if got[len(got)-1].ID != BuiltinID {
		t.Errorf("built-in must be last, got %q", got[len(got)-1].ID)
	}
}

func TestMergeFields(t *testing.T) {
	defaults := Defaults("")

	tests := []struct {
		name   string
		rec    record
		id     string
		check  func(d Descriptor) bool
		reason string
	}{
		{
			name:   "endpoint",
			rec:    record{ID: "ollama", Endpoint: ptr("http://gpu-box:11434/api/chat")},
			id:     "ollama",
			check:  func(d Descriptor) bool { return d.Endpoint == "http://gpu-box:11434/api/chat" },
			reason: "stored endpoint wins",
		},
		{
			name:   "api key",
			rec:    record{ID: "openai", APIKey: ptr("sk-test")},
			id:     "openai",
			check:  func(d Descriptor) bool { return d.APIKey == "sk-test" },
			reason: "stored credential wins",
		},
		{
			name:   "selected model",
			rec:    record{ID: "groq", SelectedModel: ptr("gemma2-9b-it")},
			id:     "groq",
			check:  func(d Descriptor) bool { return d.SelectedModel == "gemma2-9b-it" },
			reason: "stored selection wins",
		},
		{
			name:   "connected",
			rec:    record{ID: "xai", Connected: ptr(true)},
			id:     "xai",
			check:  func(d Descriptor) bool { return d.Connected },
			reason: "stored connected flag wins",
		},
		{
			name:   "discovered models",
			rec:    record{ID: "ollama", Models: &[]string{"llama3"}},
			id:     "ollama",
			check:  func(d Descriptor) bool { return reflect.DeepEqual(d.Models, []string{"llama3"}) },
			reason: "runtime model list comes from storage",
		},
		{
			name: "static models",
			rec:  record{ID: "openai", Models: &[]string{"gpt-2"}},
			id:   "openai",
			check: func(d Descriptor) bool {
				return reflect.DeepEqual(d.Models, find(t, defaults, "openai").Models)
			},
			reason: "static model list always comes from defaults",
		},
		{
			name: "partial record",
			rec:  record{ID: "anthropic", APIKey: ptr("k")},
			id:   "anthropic",
			check: func(d Descriptor) bool {
				def := find(t, defaults, "anthropic")
				return d.Name == def.Name && d.Logo == def.Logo && d.SelectedModel == def.SelectedModel &&
					d.Endpoint == def.Endpoint && d.Backend == def.Backend && d.Configurable
			},
			reason: "missing fields keep their defaults",
		},
		{
			name: "built-in ignores storage",
			rec:  record{ID: BuiltinID, Connected: ptr(false), SelectedModel: ptr("other")},
			id:   BuiltinID,
			check: func(d Descriptor) bool {
				return d.Connected && !d.Configurable && d.SelectedModel == "vibe-coding-assistant"
			},
			reason: "built-in stays connected and unchanged",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := merge(defaults, []record{tt.rec})
			if !tt.check(find(t, got, tt.id)) {
				t.Errorf("%s: got %+v", tt.reason, find(t, got, tt.id))
			}
		})
	}
}

func TestMergeDropsUnknownIDs(t *testing.T) {
	defaults := Defaults("")
	got := merge(defaults, []record{{ID: "mistral", APIKey: ptr("x")}})
	if len(got) != len(defaults) {
		t.Fatalf("len = %d, want %d", len(got), len(defaults))
	}
	for _, d := range got {
		if d.ID == "mistral" {
			t.Error("unknown record must be dropped")
		}
	}
}

func TestMergeDoesNotAliasDefaults(t *testing.T) {
	defaults := Defaults("")
	got := merge(defaults, nil)
	got[1].Models[0] = "changed"
	if defaults[1].Models[0] == "changed" {
		t.Error("merge must copy model slices")
	}
}

func TestRecordRoundTrip(t *testing.T) {
	defaults := Defaults("")
	d := find(t, defaults, "ollama")
	d.Models = []string{"a", "b"}
	d.SelectedModel = "b"
	d.Connected = true

	got := find(t, merge(defaults, []record{toRecord(d)}), "ollama")
	if !reflect.DeepEqual(got, d) {
		t.Errorf("round trip: got %+v, want %+v", got, d)
	}
}

func TestPatchApply(t *testing.T) {
	d := find(t, Defaults(""), "gemini")
	Patch{APIKey: ptr("key"), SelectedModel: ptr("gemini-1.5-pro")}.apply(&d)
	if d.APIKey != "key" || d.SelectedModel != "gemini-1.5-pro" {
		t.Errorf("patch not applied: %+v", d)
	}
	if d.Endpoint != "https://generativelanguage.googleapis.com/v1beta/models" {
		t.Errorf("unpatched field changed: %q", d.Endpoint)
	}
}

func TestDefaultsOllamaURL(t *testing.T) {
	d := find(t, Defaults("http://127.0.0.1:9999/"), "ollama")
	if d.Endpoint != "http://127.0.0.1:9999/api/chat" || d.TestEndpoint != "http://127.0.0.1:9999/api/tags" {
		t.Errorf("endpoints = %q, %q", d.Endpoint, d.TestEndpoint)
	}

	builtins := 0
	for _, d := range Defaults("") {
		if !d.Configurable && d.Connected {
			builtins++
		}
	}
	if builtins != 1 {
		t.Errorf("expected exactly one built-in provider, got %d", builtins)
	}
}
