package search

import (
	"encoding/binary"
	"math"
	"strings"

	"github.com/wynnteo/coursearch/internal/domain"
	"github.com/wynnteo/coursearch/internal/domain/query"
	"github.com/wynnteo/coursearch/internal/domain/result"
)

// assemble turns a raw backend response into the final search result:
// fused hits, per-hit highlights and deduplicated suggestions.
func (s *Service) assemble(plan query.Plan, raw *result.Raw) *result.SearchResult {
	return &result.SearchResult{
		Hits:        s.fuse(raw.Lexical, raw.KNN, plan.Limit()),
		Suggestions: dedupSuggestions(raw.SuggestGroups),
		Highlights:  extractHighlights(raw.Highlights),
		TookMS:      raw.Took.Milliseconds(),
	}
}

// buildHit converts a fused entry into a Hit, decoding the stored
// embedding out of the field map.
func buildHit(id string, score float64, fields map[string]string) result.Hit {
	var embedding []float32
	if blob, ok := fields[domain.VectorField]; ok {
		embedding = bytesToVector([]byte(blob))
		out := make(map[string]string, len(fields)-1)
		for k, v := range fields {
			if k != domain.VectorField {
				out[k] = v
			}
		}
		fields = out
	}
	return result.Hit{ID: id, Score: score, Fields: fields, Embedding: embedding}
}

// dedupSuggestions flattens suggestion groups into a single list,
// dropping case-insensitive duplicates. The first spelling wins and
// group order is preserved.
func dedupSuggestions(groups [][]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, group := range groups {
		for _, s := range group {
			key := strings.ToLower(s)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

// extractHighlights keeps only the hits the backend actually highlighted.
// Per field, markup without a highlight tag means the term did not match
// that field and the fragment is omitted.
func extractHighlights(raw map[string]map[string]string) map[string]result.FieldHighlights {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]result.FieldHighlights, len(raw))
	for id, fields := range raw {
		var fh result.FieldHighlights
		if markup, ok := fields["name"]; ok && strings.Contains(markup, result.HighlightOpenTag) {
			v := markup
			fh.Name = &v
		}
		if markup, ok := fields["description"]; ok && strings.Contains(markup, result.HighlightOpenTag) {
			v := markup
			fh.Description = &v
		}
		out[id] = fh
	}
	return out
}

// bytesToVector decodes a little-endian float32 byte blob.
func bytesToVector(b []byte) []float32 {
	if len(b) == 0 || len(b)%4 != 0 {
		return nil
	}
	vec := make([]float32, len(b)/4)
	for i := range vec {
		bits := binary.LittleEndian.Uint32(b[i*4:])
		vec[i] = math.Float32frombits(bits)
	}
	return vec
}
