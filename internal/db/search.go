package db

// WeightedField is a text field with its relevance boost.
type WeightedField struct {
	Name   string
	Weight float64
}

// FuzzyTerm is a single query term with its edit-distance tolerance.
type FuzzyTerm struct {
	Term     string
	Distance int
}

// TagFilter is a field/value equality predicate on a TAG field.
type TagFilter struct {
	Field string
	Value string
}

// TextQuery is the input for a weighted fuzzy text search. MatchAll selects
// everything subject to the filters instead of scoring by terms.
type TextQuery struct {
	IndexName    string
	MatchAll     bool
	Terms        []FuzzyTerm
	Fields       []WeightedField
	Filters      []TagFilter
	ReturnFields []string
	Limit        int
}

// KNNQuery is the input for vector similarity search.
type KNNQuery struct {
	IndexName    string
	VectorField  string
	Vector       []float32
	K            int
	Filters      []TagFilter
	ReturnFields []string
}

// HighlightQuery re-runs a text query to extract marked-up fragments.
// HighlightFields get whole-field markup; SummarizeField is reduced to a
// single fragment of roughly SummarizeLen tokens.
type HighlightQuery struct {
	IndexName       string
	Terms           []FuzzyTerm
	Fields          []WeightedField
	Filters         []TagFilter
	HighlightFields []string
	SummarizeField  string
	SummarizeLen    int
	OpenTag         string
	CloseTag        string
	Limit           int
}

// SuggestQuery is the input for a completion dictionary lookup.
type SuggestQuery struct {
	Dictionary string
	Prefix     string
	Fuzzy      bool
	Max        int
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}

// Index field types.
type IndexFieldType string

const (
	IndexFieldText   IndexFieldType = "text"
	IndexFieldTag    IndexFieldType = "tag"
	IndexFieldVector IndexFieldType = "vector"
)

// Vector index algorithms and distance metrics.
type (
	VectorAlgo     string
	VectorDistance string
)

const (
	VectorFlat     VectorAlgo     = "FLAT"
	VectorHNSW     VectorAlgo     = "HNSW"
	DistanceCosine VectorDistance = "COSINE"
)

// IndexField describes one field in an index schema. Vector fields must
// declare an explicit positive dimensionality; there is no inference.
type IndexField struct {
	Name           string
	Type           IndexFieldType
	TextWeight     float64
	VectorAlgo     VectorAlgo
	VectorDim      int
	VectorDistance VectorDistance
}

// IndexDefinition describes an FT index over hash keys with a prefix.
type IndexDefinition struct {
	Name     string
	Prefixes []string
	Fields   []IndexField
}
