package corpus

import (
	"time"

	"github.com/driftline/infinite-library/internal/domain"
)

// Default returns the archive every deployment serves: five founding
// fragments and three chroniclers. The seed is compiled in, so a bad id
// here is a build defect and panics rather than returning an error every
// caller would have to invent a response to.
func Default() *Corpus {
	c, err := New(seedDocuments(), seedAgents())
	if err != nil {
		panic(err)
	}
	return c
}

func seedAgents() []domain.Agent {
	return []domain.Agent{
		{
			ID:           "a_veyra",
			Name:         "Archivist Veyra",
			BeliefVector: []float32{0.82, 0.31, 0.54, 0.11},
			StyleVector:  []float32{0.40, 0.77, 0.23, 0.65},
			Memories:     []string{"d_tidal_vow", "d_silted_reckoning", "d_moon_ledger"},
			Faction:      "Tidal Covenant",
			Credibility:  88,
		},
		{
			ID:           "a_orrin",
			Name:         "Chronicler Orrin",
			BeliefVector: []float32{0.15, 0.92, 0.47, 0.38},
			StyleVector:  []float32{0.71, 0.12, 0.88, 0.09},
			Memories:     []string{"d_origin_sky", "d_aurora_accord"},
			Faction:      "Skyward Synod",
			Credibility:  74,
		},
		{
			ID:           "a_lethe",
			Name:         "Sister Lethe",
			BeliefVector: []float32{0.66, 0.05, 0.91, 0.72},
			StyleVector:  []float32{0.28, 0.59, 0.44, 0.81},
			Memories:     []string{"d_ember_heresy", "d_origin_sky"},
			Faction:      "Emberfall Choir",
			Credibility:  61,
		},
	}
}

func seedDocuments() []domain.Document {
	return []domain.Document{
		{
			ID:    "d_origin_sky",
			Title: "The Vault of First Light",
			Text: "Before the shelves there was only the vault of the sky, and the " +
				"first light that fell through it was catalogued by no one. The Synod " +
				"teaches that every fragment since is a shadow of that uncatalogued " +
				"light. Readers who doubt this are invited to look up.",
			AuthorID:    "a_orrin",
			Timestamp:   time.Date(2024, time.July, 4, 6, 15, 0, 0, time.UTC),
			Embedding:   []float32{0.12, 0.88, 0.44, 0.05, 0.71, 0.33, 0.59, 0.27},
			References:  []string{"d_aurora_accord"},
			FactionTag:  "Skyward Synod",
			CanonWeight: 0.94,
		},
		{
			ID:    "d_aurora_accord",
			Title: "The Aurora Accord",
			Text: "Signed under a green sky, the accord bound the high shelves to " +
				"the low. Each signatory faction agreed that no fragment would be " +
				"burned for doctrine again, and each broke that promise within a " +
				"decade.",
			AuthorID:    "a_orrin",
			Timestamp:   time.Date(2024, time.March, 21, 19, 40, 0, 0, time.UTC),
			Embedding:   []float32{0.21, 0.79, 0.50, 0.14, 0.66, 0.41, 0.48, 0.35},
			References:  []string{"d_origin_sky", "d_lost_antiphon"},
			FactionTag:  "Skyward Synod",
			CanonWeight: 0.81,
		},
		{
			ID:    "d_tidal_vow",
			Title: "The Tidal Vow",
			Text: "Sworn beneath the drowned arch at low tide, the covenant's " +
				"founding oath names the sea as the only honest archivist. What the " +
				"water takes it returns changed, and the Covenant holds that " +
				"fragments are no different.",
			AuthorID:    "a_veyra",
			Timestamp:   time.Date(2023, time.December, 9, 23, 5, 0, 0, time.UTC),
			Embedding:   []float32{0.83, 0.16, 0.29, 0.74, 0.22, 0.61, 0.09, 0.52},
			References:  []string{"d_silted_reckoning"},
			FactionTag:  "Tidal Covenant",
			CanonWeight: 0.55,
		},
		{
			ID:    "d_silted_reckoning",
			Title: "The Silted Reckoning",
			Text: "When the estuary drained, the ledgers beneath it surfaced face " +
				"down. The reckoning that followed stripped three archivists of " +
				"their titles and restored none of the drowned pages. Veyra alone " +
				"recorded the names.",
			AuthorID:    "a_veyra",
			Timestamp:   time.Date(2024, time.November, 2, 9, 30, 0, 0, time.UTC),
			Embedding:   []float32{0.77, 0.24, 0.18, 0.69, 0.31, 0.55, 0.12, 0.60},
			References:  []string{"d_tidal_vow"},
			FactionTag:  "Tidal Covenant",
			CanonWeight: 0.42,
		},
		{
			ID:    "d_ember_heresy",
			Title: "The Ember Heresy",
			Text: "The heresy was not the fire but the claim that smoke carries " +
				"meaning. Choir novices still read the gray columns above the burn " +
				"sites, and the archive keeps their transcriptions beside the ashes " +
				"it can neither verify nor discard.",
			AuthorID:    "a_maren",
			Timestamp:   time.Date(2024, time.September, 17, 14, 0, 0, 0, time.UTC),
			Embedding:   []float32{0.45, 0.38, 0.91, 0.07, 0.53, 0.20, 0.84, 0.11},
			References:  []string{"d_choir_testament"},
			FactionTag:  "Emberfall Choir",
			CanonWeight: 0.33,
		},
	}
}
