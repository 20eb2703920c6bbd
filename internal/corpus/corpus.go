package corpus

import (
	"fmt"

	"github.com/driftline/infinite-library/internal/domain"
)

// Corpus is the full contents of the archive: every fragment and every
// chronicler, fixed at startup. Lookups never mutate it, so one instance
// serves all readers concurrently.
type Corpus struct {
	documents []domain.Document
	agents    []domain.Agent

	docIndex   map[string]int
	agentIndex map[string]int
}

// New builds a corpus from seed slices. Ids must be unique per kind.
// Author ids and references are not validated here; dangling ones degrade
// at display time instead of failing the load.
func New(documents []domain.Document, agents []domain.Agent) (*Corpus, error) {
	c := &Corpus{
		documents:  documents,
		agents:     agents,
		docIndex:   make(map[string]int, len(documents)),
		agentIndex: make(map[string]int, len(agents)),
	}
	for i, d := range documents {
		if _, ok := c.docIndex[d.ID]; ok {
			return nil, fmt.Errorf("duplicate document id %q", d.ID)
		}
		c.docIndex[d.ID] = i
	}
	for i, a := range agents {
		if _, ok := c.agentIndex[a.ID]; ok {
			return nil, fmt.Errorf("duplicate agent id %q", a.ID)
		}
		c.agentIndex[a.ID] = i
	}
	return c, nil
}

func (c *Corpus) Documents() []domain.Document { return c.documents }

func (c *Corpus) Agents() []domain.Agent { return c.agents }

func (c *Corpus) DocumentByID(id string) (domain.Document, bool) {
	i, ok := c.docIndex[id]
	if !ok {
		return domain.Document{}, false
	}
	return c.documents[i], true
}

func (c *Corpus) AgentByID(id string) (domain.Agent, bool) {
	i, ok := c.agentIndex[id]
	if !ok {
		return domain.Agent{}, false
	}
	return c.agents[i], true
}

// AuthorName resolves an author id for display, falling back to the
// unknown-author label when the id points at no agent.
func (c *Corpus) AuthorName(id string) string {
	if a, ok := c.AgentByID(id); ok {
		return a.Name
	}
	return domain.UnknownAuthorName
}

// Factions lists the distinct faction tags observed on documents, in
// first-appearance order.
func (c *Corpus) Factions() []string {
	seen := make(map[string]bool, len(c.documents))
	var out []string
	for _, d := range c.documents {
		if d.FactionTag == "" || seen[d.FactionTag] {
			continue
		}
		seen[d.FactionTag] = true
		out = append(out, d.FactionTag)
	}
	return out
}
