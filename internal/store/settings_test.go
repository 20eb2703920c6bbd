package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/driftline/infinite-library/internal/domain"
	"go.uber.org/zap"
)

type failingStorage struct {
	loadErr  error
	storeErr error
}

func (f *failingStorage) Load() ([]byte, bool, error) { return nil, false, f.loadErr }
func (f *failingStorage) Store(data []byte) error     { return f.storeErr }

func testDefaults() domain.Settings {
	return domain.Settings{ModelSlug: domain.DefaultModelSlug}
}

func TestSettingsStore_RoundTrip(t *testing.T) {
	s := NewSettingsStore(NewMemStorage(), testDefaults(), zap.NewNop())

	in := domain.Settings{ModelSlug: "anthropic/claude", APIKey: "sk-local"}
	if err := s.Save(in); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	out := s.Load()
	if out.ModelSlug != in.ModelSlug || out.APIKey != in.APIKey {
		t.Errorf("Load() = %+v, want %+v", out, in)
	}
}

func TestSettingsStore_LoadMissingSlot(t *testing.T) {
	s := NewSettingsStore(NewMemStorage(), testDefaults(), zap.NewNop())

	out := s.Load()
	if out.ModelSlug != domain.DefaultModelSlug || out.APIKey != "" {
		t.Errorf("Load() = %+v, want bare defaults", out)
	}
}

func TestSettingsStore_LoadCorruptBlob(t *testing.T) {
	mem := NewMemStorage()
	if err := mem.Store([]byte(`{not json`)); err != nil {
		t.Fatalf("seeding slot: %v", err)
	}

	s := NewSettingsStore(mem, testDefaults(), zap.NewNop())
	out := s.Load()
	if out.ModelSlug != domain.DefaultModelSlug {
		t.Errorf("Load() = %+v, want defaults after corrupt blob", out)
	}
}

func TestSettingsStore_LoadStorageError(t *testing.T) {
	broken := &failingStorage{loadErr: errors.New("disk gone")}

	s := NewSettingsStore(broken, testDefaults(), zap.NewNop())
	out := s.Load()
	if out.ModelSlug != domain.DefaultModelSlug {
		t.Errorf("Load() = %+v, want defaults after storage error", out)
	}
}

func TestSettingsStore_UnknownKeysSurviveSaveCycle(t *testing.T) {
	mem := NewMemStorage()
	if err := mem.Store([]byte(`{"model_slug":"m","theme":"dusk"}`)); err != nil {
		t.Fatalf("seeding slot: %v", err)
	}

	s := NewSettingsStore(mem, testDefaults(), zap.NewNop())
	loaded := s.Load()
	if string(loaded.Extra["theme"]) != `"dusk"` {
		t.Fatalf("Extra[theme] = %s, want dusk", loaded.Extra["theme"])
	}

	loaded.APIKey = "sk-new"
	if err := s.Save(loaded); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	raw, ok, err := mem.Load()
	if err != nil || !ok {
		t.Fatalf("slot read back: ok=%v err=%v", ok, err)
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("slot is not JSON: %v", err)
	}
	if string(m["theme"]) != `"dusk"` {
		t.Errorf("theme lost across a save cycle: %s", m["theme"])
	}
}

func TestSettingsStore_SubscribersNotifiedInOrder(t *testing.T) {
	s := NewSettingsStore(NewMemStorage(), testDefaults(), zap.NewNop())

	var order []int
	s.Subscribe(func(domain.Settings) { order = append(order, 1) })
	s.Subscribe(func(domain.Settings) { order = append(order, 2) })

	var seen domain.Settings
	s.Subscribe(func(v domain.Settings) {
		order = append(order, 3)
		seen = v
	})

	if err := s.Save(domain.Settings{ModelSlug: "m1"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("notification order = %v, want [1 2 3]", order)
	}
	if seen.ModelSlug != "m1" {
		t.Errorf("subscriber saw %+v, want the saved value", seen)
	}
}

func TestSettingsStore_Unsubscribe(t *testing.T) {
	s := NewSettingsStore(NewMemStorage(), testDefaults(), zap.NewNop())

	var got []string
	s.Subscribe(func(domain.Settings) { got = append(got, "a") })
	cancel := s.Subscribe(func(domain.Settings) { got = append(got, "b") })
	s.Subscribe(func(domain.Settings) { got = append(got, "c") })

	cancel()
	cancel() // second call is a no-op

	if err := s.Save(domain.Settings{ModelSlug: "m"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("notified = %v, want [a c]", got)
	}
}

func TestSettingsStore_SaveFailureSkipsNotify(t *testing.T) {
	broken := &failingStorage{storeErr: errors.New("disk full")}
	s := NewSettingsStore(broken, testDefaults(), zap.NewNop())

	fired := false
	s.Subscribe(func(domain.Settings) { fired = true })

	if err := s.Save(domain.Settings{ModelSlug: "m"}); err == nil {
		t.Fatal("Save() expected error, got nil")
	}
	if fired {
		t.Error("subscriber fired for a value that never reached storage")
	}
}

func TestFileStorage(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileStorage(dir)

	if _, ok, err := fs.Load(); err != nil || ok {
		t.Fatalf("Load() on empty dir = ok=%v err=%v, want miss", ok, err)
	}

	if err := fs.Store([]byte(`{"model_slug":"m"}`)); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if err := fs.Store([]byte(`{"model_slug":"m2"}`)); err != nil {
		t.Fatalf("Store() again error = %v", err)
	}

	data, ok, err := fs.Load()
	if err != nil || !ok {
		t.Fatalf("Load() = ok=%v err=%v", ok, err)
	}
	if string(data) != `{"model_slug":"m2"}` {
		t.Errorf("Load() = %s, want the second write", data)
	}

	if filepath.Dir(fs.Path()) != dir {
		t.Errorf("Path() = %q, want a file under %q", fs.Path(), dir)
	}

	// the slot carries a secret, it must not be group or world readable
	info, err := os.Stat(fs.Path())
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("slot permissions = %o, want 600", perm)
	}
}
