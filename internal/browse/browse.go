package browse

import (
	"sort"
	"strings"

	"github.com/driftline/infinite-library/internal/corpus"
	"github.com/driftline/infinite-library/internal/domain"
)

// FactionAll is the sentinel filter value that matches every faction.
const FactionAll = "all"

// State is one reading surface's view of the archive. Values are
// immutable: every transition returns the next state and leaves its input
// untouched, so two surfaces sharing a corpus can never see each other's
// filters.
type State struct {
	ActiveDocumentID string `json:"active_document_id"`
	SearchTerm       string `json:"search_term"`
	FactionFilter    string `json:"faction_filter"`
	ShowCanonOnly    bool   `json:"show_canon_only"`
}

// NewState is the view every surface starts from: no search, every
// faction, apocrypha included, and the most recent document active.
func NewState(c *corpus.Corpus) State {
	return reconcile(c, State{FactionFilter: FactionAll})
}

// VisibleDocuments derives the ordered subset of the corpus a state shows:
// every filter must pass, newest first. It is pure. The corpus and state
// are only read and the result is a fresh slice, so calling it twice with
// the same inputs yields the same answer.
func VisibleDocuments(c *corpus.Corpus, s State) []domain.Document {
	term := strings.ToLower(strings.TrimSpace(s.SearchTerm))

	visible := make([]domain.Document, 0, len(c.Documents()))
	for _, d := range c.Documents() {
		if s.FactionFilter != FactionAll && s.FactionFilter != "" && d.FactionTag != s.FactionFilter {
			continue
		}
		if s.ShowCanonOnly && d.CanonWeight < domain.CanonThreshold {
			continue
		}
		if term != "" && !strings.Contains(haystack(c, d), term) {
			continue
		}
		visible = append(visible, d)
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Timestamp.After(visible[j].Timestamp)
	})
	return visible
}

// haystack is the searchable text of a document: title, body, and author
// name joined by single spaces, lowercased, so a term may span a field
// boundary. An unresolved author contributes an empty string, not the
// display fallback.
func haystack(c *corpus.Corpus, d domain.Document) string {
	author := ""
	if a, ok := c.AgentByID(d.AuthorID); ok {
		author = a.Name
	}
	return strings.ToLower(strings.Join([]string{d.Title, d.Text, author}, " "))
}

// SetSearch returns the state with the term applied and the active
// document reconciled against the narrowed set.
func SetSearch(c *corpus.Corpus, s State, term string) State {
	s.SearchTerm = term
	return reconcile(c, s)
}

func SetFaction(c *corpus.Corpus, s State, faction string) State {
	s.FactionFilter = faction
	return reconcile(c, s)
}

func SetCanonOnly(c *corpus.Corpus, s State, canonOnly bool) State {
	s.ShowCanonOnly = canonOnly
	return reconcile(c, s)
}

// Select makes a document active. An id outside the current visible set
// falls through to the reconciliation rule rather than erroring; dangling
// ids degrade, they do not fault.
func Select(c *corpus.Corpus, s State, documentID string) State {
	s.ActiveDocumentID = documentID
	return reconcile(c, s)
}

// FactionOptions lists the filter values a surface may offer: the
// sentinel followed by each faction observed in the corpus.
func FactionOptions(c *corpus.Corpus) []string {
	return append([]string{FactionAll}, c.Factions()...)
}

// reconcile enforces the active-document rule: when the active id is not
// in the visible set, the first visible document becomes active, or none
// when the set is empty.
func reconcile(c *corpus.Corpus, s State) State {
	visible := VisibleDocuments(c, s)
	if s.ActiveDocumentID != "" && containsID(visible, s.ActiveDocumentID) {
		return s
	}
	if len(visible) == 0 {
		s.ActiveDocumentID = ""
		return s
	}
	s.ActiveDocumentID = visible[0].ID
	return s
}

func containsID(docs []domain.Document, id string) bool {
	for _, d := range docs {
		if d.ID == id {
			return true
		}
	}
	return false
}
