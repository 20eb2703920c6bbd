package store

import (
	"encoding/json"
	"sync"

	"github.com/driftline/infinite-library/internal/domain"
	"go.uber.org/zap"
)

// SettingsStore persists one Settings value and fans each write out to
// subscribers. A save is persist-then-notify as a unit under one mutex,
// so every subscriber observes writes in the order they landed.
// Subscriber callbacks must not call back into the store.
type SettingsStore struct {
	storage  Storage
	defaults domain.Settings
	logger   *zap.Logger

	mu     sync.Mutex
	subs   []subscriber
	nextID int
}

type subscriber struct {
	id int
	fn func(domain.Settings)
}

func NewSettingsStore(storage Storage, defaults domain.Settings, logger *zap.Logger) *SettingsStore {
	return &SettingsStore{storage: storage, defaults: defaults, logger: logger}
}

// Load returns the persisted settings merged over the defaults: stored
// keys win, absent keys fall back. A missing, unreadable, or corrupt slot
// is not the caller's problem; Load warns and hands back the defaults.
func (s *SettingsStore) Load() domain.Settings {
	data, ok, err := s.storage.Load()
	if err != nil {
		s.logger.Warn("settings slot unreadable, using defaults", zap.Error(err))
		return s.defaults.Clone()
	}
	if !ok {
		return s.defaults.Clone()
	}

	merged, err := domain.MergeSettings(s.defaults, data)
	if err != nil {
		s.logger.Warn("settings blob corrupt, using defaults", zap.Error(err))
		return s.defaults.Clone()
	}
	return merged
}

// Save replaces the persisted value wholesale and synchronously notifies
// every subscriber in registration order. When the persist fails nothing
// is notified; subscribers only ever see values that reached storage.
func (s *SettingsStore) Save(value domain.Settings) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Store(data); err != nil {
		return err
	}
	for _, sub := range s.subs {
		sub.fn(value)
	}
	return nil
}

// Subscribe registers fn for every future save. The returned func removes
// exactly this registration and is safe to call more than once.
func (s *SettingsStore) Subscribe(fn func(domain.Settings)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}
