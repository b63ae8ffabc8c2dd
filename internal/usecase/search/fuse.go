package search

import (
	"sort"

	"github.com/wynnteo/coursearch/internal/domain/result"
)

// rrfK is the Reciprocal Rank Fusion constant (standard value from Cormack et al. 2009).
const rrfK = 60

// fuseAdditive merges lexical and KNN results by summing scores.
// score(d) = bm25(d) + similarity(d) + 1, with bm25 = 0 for vector-only
// matches. Every vector-matched document carries the +1 shift so cosine
// scores stay positive. Field maps are merged; the lexical copy wins on
// conflicts.
func fuseAdditive(lexical, knn []result.RawHit, limit int) []result.Hit {
	type scored struct {
		fields map[string]string
		score  float64
	}

	merged := make(map[string]*scored)
	order := make([]string, 0, len(lexical)+len(knn))

	for _, h := range lexical {
		merged[h.ID] = &scored{fields: h.Fields, score: h.Score}
		order = append(order, h.ID)
	}

	for _, h := range knn {
		if existing, ok := merged[h.ID]; ok {
			existing.score += h.Score + 1
			for k, v := range h.Fields {
				if _, present := existing.fields[k]; !present {
					existing.fields[k] = v
				}
			}
		} else {
			merged[h.ID] = &scored{fields: h.Fields, score: h.Score + 1}
			order = append(order, h.ID)
		}
	}

	hits := make([]result.Hit, 0, len(order))
	for _, id := range order {
		hits = append(hits, buildHit(id, merged[id].score, merged[id].fields))
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}

// fuseRRF merges lexical and KNN results via Reciprocal Rank Fusion.
// score(d) = sum of 1/(k + rank_i(d)) for each ranking where d appears.
func fuseRRF(lexical, knn []result.RawHit, limit int) []result.Hit {
	type scored struct {
		fields map[string]string
		score  float64
	}

	merged := make(map[string]*scored)
	order := make([]string, 0, len(lexical)+len(knn))

	for rank, h := range lexical {
		merged[h.ID] = &scored{fields: h.Fields, score: 1.0 / float64(rrfK+rank+1)}
		order = append(order, h.ID)
	}

	for rank, h := range knn {
		s := 1.0 / float64(rrfK+rank+1)
		if existing, ok := merged[h.ID]; ok {
			existing.score += s
			for k, v := range h.Fields {
				if _, present := existing.fields[k]; !present {
					existing.fields[k] = v
				}
			}
		} else {
			merged[h.ID] = &scored{fields: h.Fields, score: s}
			order = append(order, h.ID)
		}
	}

	hits := make([]result.Hit, 0, len(order))
	for _, id := range order {
		hits = append(hits, buildHit(id, merged[id].score, merged[id].fields))
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}
