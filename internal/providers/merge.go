package providers

import "slices"

// record is the persisted form of a descriptor. Only user-owned fields are
// kept; nil means "not stored".
type record struct {
	ID            string    `json:"id"`
	Endpoint      *string   `json:"endpoint,omitempty"`
	APIKey        *string   `json:"apiKey,omitempty"`
	Models        *[]string `json:"models,omitempty"`
	SelectedModel *string   `json:"selectedModel,omitempty"`
	Connected     *bool     `json:"connected,omitempty"`
}

func toRecord(d Descriptor) record {
	models := slices.Clone(d.Models)
	if models == nil {
		models = []string{}
	}
	return record{
		ID:            d.ID,
		Endpoint:      &d.Endpoint,
		APIKey:        &d.APIKey,
		Models:        &models,
		SelectedModel: &d.SelectedModel,
		Connected:     &d.Connected,
	}
}

func toRecords(descriptors []Descriptor) []record {
	out := make([]record, len(descriptors))
	for i, d := range descriptors {
		out[i] = toRecord(d)
	}
	return out
}

// merge overlays stored records onto the defaults. Structural fields always
// come from the defaults; the model list is taken from storage only for
// providers that discover models at runtime. Records with unknown ids are
// dropped and the built-in provider ignores storage altogether.
func merge(defaults []Descriptor, stored []record) []Descriptor {
	byID := make(map[string]record, len(stored))
	for _, r := range stored {
		byID[r.ID] = r
	}

	out := make([]Descriptor, len(defaults))
	for i, def := range defaults {
		d := def.clone()
		r, ok := byID[d.ID]
		if ok && d.Configurable {
			if r.Endpoint != nil {
				d.Endpoint = *r.Endpoint
			}
			if r.APIKey != nil {
				d.APIKey = *r.APIKey
			}
			if r.SelectedModel != nil {
				d.SelectedModel = *r.SelectedModel
			}
			if r.Connected != nil {
				d.Connected = *r.Connected
			}
			if r.Models != nil && d.discoversModels() {
				d.Models = slices.Clone(*r.Models)
			}
		}
		out[i] = d
	}

	enforceBuiltin(out)
	return out
}

// Patch is a partial update of a descriptor's user-owned fields.
type Patch struct {
	Endpoint      *string   `json:"endpoint,omitempty"`
	APIKey        *string   `json:"api_key,omitempty"`
	SelectedModel *string   `json:"selected_model,omitempty"`
	Models        *[]string `json:"models,omitempty"`
	Connected     *bool     `json:"connected,omitempty"`
}

func (p Patch) apply(d *Descriptor) {
	if p.Endpoint != nil {
		d.Endpoint = *p.Endpoint
	}
	if p.APIKey != nil {
		d.APIKey = *p.APIKey
	}
	if p.SelectedModel != nil {
		d.SelectedModel = *p.SelectedModel
	}
	if p.Models != nil {
		d.Models = slices.Clone(*p.Models)
	}
	if p.Connected != nil {
		d.Connected = *p.Connected
	}
}
