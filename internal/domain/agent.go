package domain

type Agent struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	BeliefVector []float32 `json:"belief_vector"`
	StyleVector  []float32 `json:"style_vector"`
	Memories     []string  `json:"memories"`
	Faction      string    `json:"faction"`
	Credibility  float64   `json:"credibility"`
}
