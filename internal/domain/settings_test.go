package domain

import (
	"encoding/json"
	"testing"
)

func TestMergeSettings(t *testing.T) {
	def := Settings{ModelSlug: "openrouter/auto", APIKey: "default-key"}

	tests := []struct {
		name     string
		stored   string
		wantSlug string
		wantKey  string
	}{
		{"empty object keeps defaults", `{}`, "openrouter/auto", "default-key"},
		{"stored slug wins", `{"model_slug":"anthropic/claude"}`, "anthropic/claude", "default-key"},
		{"stored empty string wins over default", `{"model_slug":""}`, "", "default-key"},
		{"stored key wins", `{"api_key":"sk-stored"}`, "openrouter/auto", "sk-stored"},
		{"both stored", `{"model_slug":"m","api_key":"k"}`, "m", "k"},
		{"null blob keeps defaults", `null`, "openrouter/auto", "default-key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MergeSettings(def, []byte(tt.stored))
			if err != nil {
				t.Fatalf("MergeSettings() error = %v", err)
			}
			if got.ModelSlug != tt.wantSlug {
				t.Errorf("ModelSlug = %q, want %q", got.ModelSlug, tt.wantSlug)
			}
			if got.APIKey != tt.wantKey {
				t.Errorf("APIKey = %q, want %q", got.APIKey, tt.wantKey)
			}
		})
	}
}

func TestMergeSettings_InvalidBlob(t *testing.T) {
	def := Settings{ModelSlug: "openrouter/auto"}

	invalid := []string{`{bad`, `[1,2]`, `"a string"`, `{"model_slug":42}`}
	for _, blob := range invalid {
		if _, err := MergeSettings(def, []byte(blob)); err == nil {
			t.Errorf("MergeSettings(%q) expected error, got nil", blob)
		}
	}
}

func TestSettings_UnknownKeysSurviveRoundTrip(t *testing.T) {
	blob := `{"model_slug":"m","api_key":"k","theme":"dusk","font_scale":1.25}`

	var s Settings
	if err := json.Unmarshal([]byte(blob), &s); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if s.ModelSlug != "m" || s.APIKey != "k" {
		t.Fatalf("typed fields = (%q, %q), want (m, k)", s.ModelSlug, s.APIKey)
	}
	if string(s.Extra["theme"]) != `"dusk"` {
		t.Errorf("Extra[theme] = %s, want %q", s.Extra["theme"], `"dusk"`)
	}

	out, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var round map[string]json.RawMessage
	if err := json.Unmarshal(out, &round); err != nil {
		t.Fatalf("Unmarshal(round) error = %v", err)
	}
	for _, key := range []string{"model_slug", "api_key", "theme", "font_scale"} {
		if _, ok := round[key]; !ok {
			t.Errorf("round-tripped blob missing key %q", key)
		}
	}
	if string(round["font_scale"]) != "1.25" {
		t.Errorf("font_scale = %s, want 1.25", round["font_scale"])
	}
}

func TestSettings_MarshalAlwaysIncludesTypedKeys(t *testing.T) {
	out, err := json.Marshal(Settings{})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if string(m["model_slug"]) != `""` {
		t.Errorf("model_slug = %s, want empty string", m["model_slug"])
	}
	if string(m["api_key"]) != `""` {
		t.Errorf("api_key = %s, want empty string", m["api_key"])
	}
}

func TestSettings_Clone(t *testing.T) {
	orig := Settings{
		ModelSlug: "m",
		Extra:     map[string]json.RawMessage{"theme": json.RawMessage(`"dusk"`)},
	}

	clone := orig.Clone()
	clone.Extra["theme"] = json.RawMessage(`"dawn"`)

	if string(orig.Extra["theme"]) != `"dusk"` {
		t.Errorf("mutating the clone changed the original: %s", orig.Extra["theme"])
	}
}
