package domain

import "time"

type Document struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Text        string    `json:"text"`
	AuthorID    string    `json:"author_id"`
	Timestamp   time.Time `json:"timestamp"`
	Embedding   []float32 `json:"-"`
	References  []string  `json:"references"`
	FactionTag  string    `json:"faction_tag"`
	CanonWeight float64   `json:"canon_weight"`
}

type CanonStatus string

const (
	CanonStatusCanon     CanonStatus = "canon"
	CanonStatusDisputed  CanonStatus = "disputed"
	CanonStatusApocrypha CanonStatus = "apocrypha"
)

// CanonThreshold is the weight at which a fragment counts as canon, both
// for the status badge and for the canon-only view.
const CanonThreshold = 0.7

func ClassifyCanon(weight float64) CanonStatus {
	switch {
	case weight >= CanonThreshold:
		return CanonStatusCanon
	case weight >= 0.5:
		return CanonStatusDisputed
	default:
		return CanonStatusApocrypha
	}
}

func ValidCanonStatus(s string) bool {
	switch CanonStatus(s) {
	case CanonStatusCanon, CanonStatusDisputed, CanonStatusApocrypha:
		return true
	}
	return false
}

func AllCanonStatuses() []CanonStatus {
	return []CanonStatus{CanonStatusCanon, CanonStatusDisputed, CanonStatusApocrypha}
}

// Labels shown when a soft reference points at nothing. References are
// never validated at load time, so both can surface anywhere an id is
// resolved for display.
const (
	UnknownAuthorName    = "Unknown author"
	UnknownFragmentTitle = "Unknown fragment"
)
