package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/driftline/infinite-library/internal/browse"
	"github.com/driftline/infinite-library/internal/corpus"
	"github.com/driftline/infinite-library/internal/domain"
	"github.com/go-chi/chi/v5"
)

type DocumentHandler struct {
	corpus *corpus.Corpus
}

func NewDocumentHandler(c *corpus.Corpus) *DocumentHandler {
	return &DocumentHandler{corpus: c}
}

type documentSummary struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Excerpt     string             `json:"excerpt"`
	AuthorName  string             `json:"author_name"`
	FactionTag  string             `json:"faction_tag"`
	Timestamp   time.Time          `json:"timestamp"`
	CanonWeight float64            `json:"canon_weight"`
	CanonStatus domain.CanonStatus `json:"canon_status"`
}

type referenceLink struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Resolved bool   `json:"resolved"`
}

type documentDetail struct {
	documentSummary
	Text       string          `json:"text"`
	References []referenceLink `json:"references"`
}

type listQuery struct {
	Q         string `json:"q"`
	Faction   string `json:"faction"`
	CanonOnly bool   `json:"canon_only"`
}

type listDocumentsResponse struct {
	Query     listQuery         `json:"query"`
	Documents []documentSummary `json:"documents"`
	Count     int               `json:"count"`
	Total     int               `json:"total"`
}

// List applies the same filter pipeline sessions use, but statelessly:
// the query parameters form a throwaway view.
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	faction := r.URL.Query().Get("faction")
	if faction == "" {
		faction = browse.FactionAll
	}

	canonOnly := false
	if raw := r.URL.Query().Get("canon_only"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid canon_only")
			return
		}
		canonOnly = v
	}

	state := browse.State{SearchTerm: q, FactionFilter: faction, ShowCanonOnly: canonOnly}
	visible := browse.VisibleDocuments(h.corpus, state)

	resp := listDocumentsResponse{
		Query:     listQuery{Q: q, Faction: faction, CanonOnly: canonOnly},
		Documents: make([]documentSummary, 0, len(visible)),
		Count:     len(visible),
		Total:     len(h.corpus.Documents()),
	}
	for _, d := range visible {
		resp.Documents = append(resp.Documents, summarize(h.corpus, d))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *DocumentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	d, ok := h.corpus.DocumentByID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "document not found")
		return
	}

	writeJSON(w, http.StatusOK, detail(h.corpus, d))
}

type factionsResponse struct {
	Factions []string `json:"factions"`
}

// Factions lists the filter options a surface can offer, the match-all
// sentinel first.
func (h *DocumentHandler) Factions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, factionsResponse{Factions: browse.FactionOptions(h.corpus)})
}

const excerptLimit = 140

func summarize(c *corpus.Corpus, d domain.Document) documentSummary {
	return documentSummary{
		ID:          d.ID,
		Title:       d.Title,
		Excerpt:     excerpt(d.Text),
		AuthorName:  c.AuthorName(d.AuthorID),
		FactionTag:  d.FactionTag,
		Timestamp:   d.Timestamp,
		CanonWeight: d.CanonWeight,
		CanonStatus: domain.ClassifyCanon(d.CanonWeight),
	}
}

// detail resolves references one level deep for display. Unresolved ids
// keep their id and the fallback title; cycles are harmless because the
// links carry no further expansion.
func detail(c *corpus.Corpus, d domain.Document) documentDetail {
	refs := make([]referenceLink, 0, len(d.References))
	for _, id := range d.References {
		link := referenceLink{ID: id, Title: domain.UnknownFragmentTitle}
		if ref, ok := c.DocumentByID(id); ok {
			link.Title = ref.Title
			link.Resolved = true
		}
		refs = append(refs, link)
	}

	return documentDetail{
		documentSummary: summarize(c, d),
		Text:            d.Text,
		References:      refs,
	}
}

func excerpt(text string) string {
	if len(text) <= excerptLimit {
		return text
	}
	cut := strings.LastIndex(text[:excerptLimit], " ")
	if cut <= 0 {
		cut = excerptLimit
	}
	return text[:cut] + "..."
}
