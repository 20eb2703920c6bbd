package domain

import "encoding/json"

// SettingsKey is the single slot name the settings blob is stored under.
const SettingsKey = "infinite-library.settings"

// DefaultModelSlug is used when no model has ever been chosen.
const DefaultModelSlug = "openrouter/auto"

// Settings is the reader's configuration. The api key is held for the
// reader's own tooling; it is persisted as plain text on the local machine
// and never transmitted by this service.
type Settings struct {
	ModelSlug string `json:"model_slug"`
	APIKey    string `json:"api_key"`

	// Extra keeps keys written by other builds so they survive a load and
	// save cycle through this one.
	Extra map[string]json.RawMessage `json:"-"`
}

func (s Settings) Clone() Settings {
	out := s
	if s.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(s.Extra))
		for k, v := range s.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

func (s Settings) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Extra)+2)
	for k, v := range s.Extra {
		out[k] = v
	}
	out["model_slug"] = s.ModelSlug
	out["api_key"] = s.APIKey
	return json.Marshal(out)
}

// UnmarshalJSON applies only the keys present in data and leaves the rest
// of the receiver alone. Decoding a blob over a defaults value is
// therefore a merge where stored keys win, including stored empty strings.
func (s *Settings) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["model_slug"]; ok {
		if err := json.Unmarshal(v, &s.ModelSlug); err != nil {
			return err
		}
		delete(raw, "model_slug")
	}
	if v, ok := raw["api_key"]; ok {
		if err := json.Unmarshal(v, &s.APIKey); err != nil {
			return err
		}
		delete(raw, "api_key")
	}
	if len(raw) > 0 {
		if s.Extra == nil {
			s.Extra = make(map[string]json.RawMessage, len(raw))
		}
		for k, v := range raw {
			s.Extra[k] = v
		}
	}
	return nil
}

// MergeSettings decodes data over a copy of def: keys present in data
// override, keys absent keep their default. The error path leaves nothing
// half-applied.
func MergeSettings(def Settings, data []byte) (Settings, error) {
	merged := def.Clone()
	if err := json.Unmarshal(data, &merged); err != nil {
		return Settings{}, err
	}
	return merged, nil
}
