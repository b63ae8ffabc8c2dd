package chi

import (
	"strconv"

	"github.com/wynnteo/coursearch/internal/domain/result"
	healthuc "github.com/wynnteo/coursearch/internal/usecase/health"
)

// healthResponse is the wire shape of a health reply.
type healthResponse struct {
	Status string                          `json:"status"`
	Checks map[string]healthuc.CheckResult `json:"checks"`
}

// searchResponse is the wire shape of a search reply.
type searchResponse struct {
	Results     []map[string]any          `json:"results"`
	Total       int                       `json:"total"`
	Suggestions []string                  `json:"suggestions"`
	Highlighted map[string]highlightEntry `json:"highlighted"`
	TookMS      int64                     `json:"took_ms"`
}

// highlightEntry carries highlighted fragments per field. A null field
// means the query matched the document but not that field.
type highlightEntry struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func searchResultToResponse(res *result.SearchResult) searchResponse {
	hits := make([]map[string]any, 0, len(res.Hits))
	for _, h := range res.Hits {
		hits = append(hits, hitToMap(h))
	}

	suggestions := res.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}

	// Always serialized, {} when nothing was highlighted.
	highlighted := make(map[string]highlightEntry, len(res.Highlights))
	for id, fh := range res.Highlights {
		highlighted[id] = highlightEntry{Name: fh.Name, Description: fh.Description}
	}

	return searchResponse{
		Results:     hits,
		Total:       len(hits),
		Suggestions: suggestions,
		Highlighted: highlighted,
		TookMS:      res.TookMS,
	}
}

// hitToMap flattens a hit into a JSON object: stored fields plus id and
// score, with numeric and boolean fields restored to their native types.
func hitToMap(h result.Hit) map[string]any {
	m := make(map[string]any, len(h.Fields)+3)
	for k, v := range h.Fields {
		switch k {
		case "category_id", "sub_category_id":
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				m[k] = n
				continue
			}
			m[k] = v
		case "is_valid":
			m[k] = v == "true"
		default:
			m[k] = v
		}
	}
	m["id"] = h.ID
	m["score"] = h.Score
	if len(h.Embedding) > 0 {
		m["embedding"] = h.Embedding
	}
	return m
}
