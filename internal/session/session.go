package session

import (
	"errors"
	"time"

	"github.com/driftline/infinite-library/internal/browse"
	"github.com/driftline/infinite-library/internal/corpus"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

var ErrNotFound = errors.New("session not found")

// Session pairs a reading surface with its view state. Surfaces never
// share sessions; two tabs browsing the same archive hold two ids.
type Session struct {
	ID    string       `json:"id"`
	State browse.State `json:"state"`
}

// ViewChanges is a partial update to a session's view. Nil fields leave
// the current value alone, so a surface sends only what changed.
type ViewChanges struct {
	SearchTerm    *string `json:"search_term,omitempty"`
	FactionFilter *string `json:"faction_filter,omitempty"`
	ShowCanonOnly *bool   `json:"show_canon_only,omitempty"`
}

// Service owns every live surface's view state. Writes refresh the ttl,
// so idle surfaces age out while active ones persist. Two concurrent
// writes to one session are last-writer-wins at the granularity of a
// whole call.
type Service struct {
	corpus *corpus.Corpus
	cache  *gocache.Cache
	logger *zap.Logger
}

func NewService(c *corpus.Corpus, ttl time.Duration, logger *zap.Logger) *Service {
	return &Service{
		corpus: c,
		cache:  gocache.New(ttl, 10*time.Minute),
		logger: logger,
	}
}

func (s *Service) Create() Session {
	sess := Session{ID: uuid.NewString(), State: browse.NewState(s.corpus)}
	s.cache.Set(sess.ID, sess, gocache.DefaultExpiration)
	s.logger.Debug("session created", zap.String("session_id", sess.ID))
	return sess
}

func (s *Service) Get(id string) (Session, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return Session{}, ErrNotFound
	}
	return v.(Session), nil
}

// ApplyView applies the non-nil changes in order and stores the
// reconciled result.
func (s *Service) ApplyView(id string, changes ViewChanges) (Session, error) {
	sess, err := s.Get(id)
	if err != nil {
		return Session{}, err
	}

	st := sess.State
	if changes.SearchTerm != nil {
		st = browse.SetSearch(s.corpus, st, *changes.SearchTerm)
	}
	if changes.FactionFilter != nil {
		st = browse.SetFaction(s.corpus, st, *changes.FactionFilter)
	}
	if changes.ShowCanonOnly != nil {
		st = browse.SetCanonOnly(s.corpus, st, *changes.ShowCanonOnly)
	}

	sess.State = st
	s.cache.Set(sess.ID, sess, gocache.DefaultExpiration)
	return sess, nil
}

// Select makes a document the session's active one, subject to the same
// reconciliation as every other transition.
func (s *Service) Select(id, documentID string) (Session, error) {
	sess, err := s.Get(id)
	if err != nil {
		return Session{}, err
	}

	sess.State = browse.Select(s.corpus, sess.State, documentID)
	s.cache.Set(sess.ID, sess, gocache.DefaultExpiration)
	return sess, nil
}

func (s *Service) Delete(id string) {
	s.cache.Delete(id)
}

// Count reports live sessions, expired ones included until the next
// purge sweep.
func (s *Service) Count() int {
	return s.cache.ItemCount()
}
