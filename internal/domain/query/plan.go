// Package query defines the backend-agnostic compiled query plan.
//
// A plan combines a lexical clause and a vector clause under "at least one
// of" semantics: a document matching either clause qualifies, and both
// contribute to its score. Filters narrow the candidate set without scoring.
package query

import "strings"

// Defaults for the compiled plan.
const (
	// DefaultLimit is the fixed result cap.
	DefaultLimit = 20
	// DefaultFragmentSize caps the description highlight fragment (characters).
	DefaultFragmentSize = 150
	// SuggestMinQueryLen is the minimum trimmed query length for suggestions.
	SuggestMinQueryLen = 3
	// DefaultMaxSuggestions bounds the completion lookup.
	DefaultMaxSuggestions = 5
	// SuggestFuzzyDistance is the edit-distance tolerance for suggestions.
	SuggestFuzzyDistance = 1
)

// WeightedField is a searchable field with its relevance boost.
type WeightedField struct {
	Name   string
	Weight float64
}

// lexicalFields is the fixed weighted field list: name dominates,
// description next, instructor lowest.
var lexicalFields = []WeightedField{
	{Name: "name", Weight: 3.0},
	{Name: "description", Weight: 2.0},
	{Name: "instructor", Weight: 1.5},
}

// EditDistance returns the fuzziness tolerance for a single term, scaled
// with term length: short terms must match near-exactly, longer terms
// tolerate a larger edit distance.
func EditDistance(term string) int {
	switch n := len([]rune(term)); {
	case n < 3:
		return 0
	case n <= 5:
		return 1
	default:
		return 2
	}
}

// Lexical is the free-text relevance clause. An empty query degrades to
// match-all with no scoring preference beyond relevance defaults.
type Lexical struct {
	query  string
	fields []WeightedField
}

// Query returns the trimmed query text.
func (l Lexical) Query() string { return l.query }

// Fields returns the weighted field list.
func (l Lexical) Fields() []WeightedField { return l.fields }

// MatchAll reports whether the clause matches everything (empty query).
func (l Lexical) MatchAll() bool { return l.query == "" }

// Vector is the semantic similarity clause. Disabled means an explicit
// no-op: it matches nothing and adds nothing to any score.
type Vector struct {
	embedding []float32
}

// Enabled reports whether the clause carries a query embedding.
func (v Vector) Enabled() bool { return len(v.embedding) > 0 }

// Embedding returns the query embedding (nil when disabled).
func (v Vector) Embedding() []float32 { return v.embedding }

// Filter is a single field/value equality predicate.
type Filter struct {
	field string
	value string
}

// Field returns the index field name.
func (f Filter) Field() string { return f.field }

// Value returns the required value.
func (f Filter) Value() string { return f.value }

// Filters holds the raw filter values as supplied by the caller.
// Empty values emit no clause.
type Filters struct {
	Category    string
	SubCategory string
	Language    string
	Source      string
	Level       string
}

// Highlight configures snippet extraction: the name field returns the whole
// field when matched, the description returns one fragment capped at
// FragmentSize characters.
type Highlight struct {
	fragmentSize int
}

// FragmentSize returns the description fragment character budget.
func (h Highlight) FragmentSize() int { return h.fragmentSize }

// Fields returns the highlighted field names.
func (h Highlight) Fields() []string { return []string{"name", "description"} }

// Suggest configures the prefix completion lookup.
type Suggest struct {
	prefix        string
	fuzzyDistance int
	max           int
}

// Prefix returns the completion prefix (the trimmed query).
func (s Suggest) Prefix() string { return s.prefix }

// FuzzyDistance returns the edit-distance tolerance.
func (s Suggest) FuzzyDistance() int { return s.fuzzyDistance }

// Max returns the maximum number of suggestions to fetch.
func (s Suggest) Max() int { return s.max }

// Plan is the compiled, backend-agnostic search request.
type Plan struct {
	lexical   Lexical
	vector    Vector
	filters   []Filter
	highlight Highlight
	suggest   *Suggest
	limit     int
}

// Lexical returns the lexical clause.
func (p Plan) Lexical() Lexical { return p.lexical }

// Vector returns the vector clause.
func (p Plan) Vector() Vector { return p.vector }

// Filters returns the compiled equality clauses, in fixed key order.
func (p Plan) Filters() []Filter { return p.filters }

// Highlight returns the highlight settings (always present).
func (p Plan) Highlight() Highlight { return p.highlight }

// Suggest returns the suggestion settings, or nil when the query is too short.
func (p Plan) Suggest() *Suggest { return p.suggest }

// Limit returns the result cap.
func (p Plan) Limit() int { return p.limit }

// Options tunes compilation; zero values fall back to defaults.
type Options struct {
	Limit          int
	FragmentSize   int
	MaxSuggestions int
}

// Compile builds a Plan from the raw query text, the query embedding (nil
// when unavailable or not computed), and the filter set. Compile is total:
// every (text, embedding, filters) combination yields a valid plan. The
// vector clause is forced to the no-op when the trimmed text is empty;
// callers never embed empty text.
func Compile(text string, embedding []float32, f Filters, opts Options) Plan {
	trimmed := strings.TrimSpace(text)

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	fragmentSize := opts.FragmentSize
	if fragmentSize <= 0 {
		fragmentSize = DefaultFragmentSize
	}
	maxSuggestions := opts.MaxSuggestions
	if maxSuggestions <= 0 {
		maxSuggestions = DefaultMaxSuggestions
	}

	p := Plan{
		lexical:   Lexical{query: trimmed, fields: lexicalFields},
		highlight: Highlight{fragmentSize: fragmentSize},
		filters:   compileFilters(f),
		limit:     limit,
	}

	if trimmed != "" {
		p.vector = Vector{embedding: embedding}
	}

	if len([]rune(trimmed)) >= SuggestMinQueryLen {
		p.suggest = &Suggest{
			prefix:        trimmed,
			fuzzyDistance: SuggestFuzzyDistance,
			max:           maxSuggestions,
		}
	}

	return p
}

// compileFilters emits one equality clause per non-empty filter value.
// Absent values never become "equals empty string" clauses.
func compileFilters(f Filters) []Filter {
	keys := []struct {
		field string
		value string
	}{
		{"category_id", f.Category},
		{"sub_category_id", f.SubCategory},
		{"language", f.Language},
		{"source", f.Source},
		{"level", f.Level},
	}

	var out []Filter
	for _, k := range keys {
		if k.value == "" {
			continue
		}
		out = append(out, Filter{field: k.field, value: k.value})
	}
	return out
}
