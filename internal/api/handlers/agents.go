package handlers

import (
	"net/http"

	"github.com/driftline/infinite-library/internal/corpus"
	"github.com/driftline/infinite-library/internal/domain"
	"github.com/go-chi/chi/v5"
)

type AgentHandler struct {
	corpus *corpus.Corpus
}

func NewAgentHandler(c *corpus.Corpus) *AgentHandler {
	return &AgentHandler{corpus: c}
}

type agentSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Faction     string  `json:"faction"`
	Credibility float64 `json:"credibility"`
}

type agentDetail struct {
	agentSummary
	BeliefVector []float32       `json:"belief_vector"`
	StyleVector  []float32       `json:"style_vector"`
	Memories     []referenceLink `json:"memories"`
}

type listAgentsResponse struct {
	Agents []agentSummary `json:"agents"`
	Count  int            `json:"count"`
}

func (h *AgentHandler) List(w http.ResponseWriter, r *http.Request) {
	agents := h.corpus.Agents()

	resp := listAgentsResponse{
		Agents: make([]agentSummary, 0, len(agents)),
		Count:  len(agents),
	}
	for _, a := range agents {
		resp.Agents = append(resp.Agents, agentSummary{
			ID:          a.ID,
			Name:        a.Name,
			Faction:     a.Faction,
			Credibility: a.Credibility,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetByID resolves the agent's remembered fragments one level deep, the
// same way document references resolve. A memory of a fragment that no
// longer exists stays listed under the fallback title.
func (h *AgentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	a, ok := h.corpus.AgentByID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "agent not found")
		return
	}

	memories := make([]referenceLink, 0, len(a.Memories))
	for _, id := range a.Memories {
		link := referenceLink{ID: id, Title: domain.UnknownFragmentTitle}
		if d, found := h.corpus.DocumentByID(id); found {
			link.Title = d.Title
			link.Resolved = true
		}
		memories = append(memories, link)
	}

	writeJSON(w, http.StatusOK, agentDetail{
		agentSummary: agentSummary{
			ID:          a.ID,
			Name:        a.Name,
			Faction:     a.Faction,
			Credibility: a.Credibility,
		},
		BeliefVector: a.BeliefVector,
		StyleVector:  a.StyleVector,
		Memories:     memories,
	})
}
