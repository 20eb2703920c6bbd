package store

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/driftline/infinite-library/internal/domain"
)

// Storage is a single-slot byte store. The archive persists exactly one
// value, the settings blob, so the interface is deliberately narrow: Load
// reports ok=false when the slot has never been written.
type Storage interface {
	Load() (data []byte, ok bool, err error)
	Store(data []byte) error
}

var (
	_ Storage = (*FileStorage)(nil)
	_ Storage = (*MemStorage)(nil)
)

// FileStorage keeps the slot in a JSON file under dir. Writes go through
// a temp file and a rename, so a crash mid-write leaves the previous blob
// intact.
type FileStorage struct {
	path string
}

func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{path: filepath.Join(dir, domain.SettingsKey+".json")}
}

func (f *FileStorage) Path() string { return f.path }

func (f *FileStorage) Load() ([]byte, bool, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (f *FileStorage) Store(data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".settings-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	// owner-only, the blob carries the reader's api key
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}

// MemStorage keeps the slot in memory. Tests and ephemeral runs use it.
type MemStorage struct {
	mu   sync.Mutex
	data []byte
	set  bool
}

func NewMemStorage() *MemStorage { return &MemStorage{} }

func (m *MemStorage) Load() ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return nil, false, nil
	}
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out, true, nil
}

func (m *MemStorage) Store(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append(m.data[:0:0], data...)
	m.set = true
	return nil
}
