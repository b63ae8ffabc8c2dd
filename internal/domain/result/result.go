// Package result holds the raw executor output and the assembled response.
package result

import "time"

// RawHit is a single document hit from one backend sub-query. Fields is the
// flat stored-field map; lexical hits carry the BM25 score, vector hits the
// cosine similarity.
type RawHit struct {
	ID     string
	Score  float64
	Fields map[string]string
}

// Raw is the executor output for one compiled plan: the lexical and vector
// rankings, highlight fragments keyed by hit id and field, the suggestion
// groups in backend order, and the measured backend round-trip time.
type Raw struct {
	Lexical       []RawHit
	KNN           []RawHit
	Highlights    map[string]map[string]string
	SuggestGroups [][]string
	Took          time.Duration
}

// Hit is one assembled, ranked result: the identifier, the fused relevance
// score, every stored text field flattened into Fields, and the stored
// embedding decoded back to its vector form.
type Hit struct {
	ID        string
	Score     float64
	Fields    map[string]string
	Embedding []float32
}

// Highlight markup tags inserted by the backend. A field value containing
// OpenTag carries a fragment; anything else means the field did not match.
const (
	HighlightOpenTag  = "<em>"
	HighlightCloseTag = "</em>"
)

// FieldHighlights maps each highlighted field to its first fragment. A nil
// entry is the explicit no-highlight marker (serialized as JSON null), so
// consumers can rely on field presence.
type FieldHighlights struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// SearchResult is the normalized response: ranked hits, deduplicated
// suggestions, per-hit highlights, and the backend elapsed time. It is
// constructed fresh per request and never mutated after return.
type SearchResult struct {
	Hits        []Hit
	Suggestions []string
	Highlights  map[string]FieldHighlights
	TookMS      int64
}
