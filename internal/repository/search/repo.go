// Package search implements the plan executor against the search backend.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wynnteo/coursearch/internal/db"
	"github.com/wynnteo/coursearch/internal/domain"
	"github.com/wynnteo/coursearch/internal/domain/query"
	"github.com/wynnteo/coursearch/internal/domain/result"
)

// documentReturnFields is every stored field a hit carries, embedding
// included: hits flatten the full document.
var documentReturnFields = []string{
	"name", "description", "instructor", "name_suggest",
	"category_id", "sub_category_id", "language", "source", "level",
	"is_valid", "modified_at", "embedding",
}

// summarizeTokenDivisor approximates a character budget as a SUMMARIZE
// token count (RediSearch measures fragments in tokens, not characters).
const summarizeTokenDivisor = 6

// store is the consumer interface for plan execution (ISP).
type store interface {
	SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchHighlight(ctx context.Context, q *db.HighlightQuery) (map[string]map[string]string, error)
	SugGet(ctx context.Context, q *db.SuggestQuery) ([]string, error)
}

// Repo executes compiled plans with a hard deadline. One attempt per
// request; retry policy belongs to callers' transport, not here.
type Repo struct {
	store   store
	timeout time.Duration
}

// New creates a plan executor.
func New(s store, timeout time.Duration) *Repo {
	return &Repo{store: s, timeout: timeout}
}

// Execute translates the plan into backend queries, runs them under one
// deadline, and returns the raw rankings, highlights, and suggestions.
// All faults come back classified; backend internals never leak upward.
func (r *Repo) Execute(ctx context.Context, plan query.Plan) (*result.Raw, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	terms := fuzzyTerms(plan.Lexical())
	fields := weightedFields(plan.Lexical())
	filters := tagFilters(plan.Filters())

	start := time.Now()
	raw := &result.Raw{}

	lexical, err := r.store.SearchText(ctx, &db.TextQuery{
		IndexName:    domain.CourseIndexName,
		MatchAll:     plan.Lexical().MatchAll(),
		Terms:        terms,
		Fields:       fields,
		Filters:      filters,
		ReturnFields: documentReturnFields,
		Limit:        plan.Limit(),
	})
	if err != nil {
		return nil, classify("lexical search", err)
	}
	raw.Lexical = toRawHits(lexical)

	if plan.Vector().Enabled() {
		knn, err := r.store.SearchKNN(ctx, &db.KNNQuery{
			IndexName:    domain.CourseIndexName,
			VectorField:  domain.VectorField,
			Vector:       plan.Vector().Embedding(),
			K:            plan.Limit(),
			Filters:      filters,
			ReturnFields: documentReturnFields,
		})
		if err != nil {
			return nil, classify("vector search", err)
		}
		raw.KNN = toRawHits(knn)
	}

	if !plan.Lexical().MatchAll() {
		highlights, err := r.store.SearchHighlight(ctx, &db.HighlightQuery{
			IndexName:       domain.CourseIndexName,
			Terms:           terms,
			Fields:          fields,
			Filters:         filters,
			HighlightFields: plan.Highlight().Fields(),
			SummarizeField:  "description",
			SummarizeLen:    plan.Highlight().FragmentSize() / summarizeTokenDivisor,
			OpenTag:         result.HighlightOpenTag,
			CloseTag:        result.HighlightCloseTag,
			Limit:           plan.Limit(),
		})
		if err != nil {
			return nil, classify("highlight search", err)
		}
		raw.Highlights = keyHighlightsByID(highlights)
	}

	if sug := plan.Suggest(); sug != nil {
		group, err := r.store.SugGet(ctx, &db.SuggestQuery{
			Dictionary: domain.SuggestDictionary,
			Prefix:     sug.Prefix(),
			Fuzzy:      sug.FuzzyDistance() > 0,
			Max:        sug.Max(),
		})
		if err != nil {
			return nil, classify("suggest", err)
		}
		if len(group) > 0 {
			raw.SuggestGroups = append(raw.SuggestGroups, group)
		}
	}

	raw.Took = time.Since(start)
	return raw, nil
}

// fuzzyTerms splits the query into terms with length-scaled edit distance.
func fuzzyTerms(lex query.Lexical) []db.FuzzyTerm {
	words := strings.Fields(lex.Query())
	terms := make([]db.FuzzyTerm, 0, len(words))
	for _, w := range words {
		terms = append(terms, db.FuzzyTerm{Term: w, Distance: query.EditDistance(w)})
	}
	return terms
}

func weightedFields(lex query.Lexical) []db.WeightedField {
	fields := make([]db.WeightedField, 0, len(lex.Fields()))
	for _, f := range lex.Fields() {
		fields = append(fields, db.WeightedField{Name: f.Name, Weight: f.Weight})
	}
	return fields
}

func tagFilters(filters []query.Filter) []db.TagFilter {
	out := make([]db.TagFilter, 0, len(filters))
	for _, f := range filters {
		out = append(out, db.TagFilter{Field: f.Field(), Value: f.Value()})
	}
	return out
}

func toRawHits(sr *db.SearchResult) []result.RawHit {
	if sr == nil || len(sr.Entries) == 0 {
		return nil
	}
	hits := make([]result.RawHit, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		hits = append(hits, result.RawHit{
			ID:     domain.CourseIDFromKey(entry.Key),
			Score:  entry.Score,
			Fields: entry.Fields,
		})
	}
	return hits
}

func keyHighlightsByID(m map[string]map[string]string) map[string]map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]map[string]string, len(m))
	for key, fields := range m {
		out[domain.CourseIDFromKey(key)] = fields
	}
	return out
}

// classify maps store faults onto the search error taxonomy. The
// underlying detail stays in the message for server-side diagnostics; the
// sentinel is what crosses the boundary.
func classify(op string, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %v: %w", op, err, domain.ErrBackendTimeout)
	case errors.Is(err, db.ErrQueryRejected):
		return fmt.Errorf("%s: %v: %w", op, err, domain.ErrBackendQuery)
	default:
		return fmt.Errorf("%s: %v: %w", op, err, domain.ErrBackendUnavailable)
	}
}
