package search

import (
	"testing"

	"github.com/wynnteo/coursearch/internal/domain/result"
)

func TestDedupSuggestions(t *testing.T) {
	groups := [][]string{
		{"Machine Learning", "machine learning", "Machine Learning 101"},
		{"MACHINE LEARNING", "Deep Learning"},
	}

	got := dedupSuggestions(groups)
	want := []string{"Machine Learning", "Machine Learning 101", "Deep Learning"}

	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("suggestion %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDedupSuggestions_Empty(t *testing.T) {
	if got := dedupSuggestions(nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestExtractHighlights(t *testing.T) {
	raw := map[string]map[string]string{
		"1": {"name": "<em>SQL</em> Basics", "description": "plain text"},
		"2": {"description": "learn <em>sql</em> fast"},
	}

	got := extractHighlights(raw)

	h1 := got["1"]
	if h1.Name == nil || *h1.Name != "<em>SQL</em> Basics" {
		t.Errorf("hit 1 name: %v", h1.Name)
	}
	// Markup without the highlight tag means the field did not match.
	if h1.Description != nil {
		t.Errorf("hit 1 description must be nil, got %q", *h1.Description)
	}

	h2 := got["2"]
	if h2.Name != nil {
		t.Errorf("hit 2 name must be nil")
	}
	if h2.Description == nil || *h2.Description != "learn <em>sql</em> fast" {
		t.Errorf("hit 2 description: %v", h2.Description)
	}
}

func TestExtractHighlights_Empty(t *testing.T) {
	if got := extractHighlights(nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestBuildHit_DecodesEmbedding(t *testing.T) {
	blob := string([]byte{0x00, 0x00, 0x80, 0x3F, 0x00, 0x00, 0x00, 0xC0}) // [1.0, -2.0]
	fields := map[string]string{
		"name":      "Go Course",
		"embedding": blob,
	}

	hit := buildHit("5", 1.5, fields)

	if hit.ID != "5" || hit.Score != 1.5 {
		t.Errorf("hit identity: %+v", hit)
	}
	if len(hit.Embedding) != 2 || hit.Embedding[0] != 1.0 || hit.Embedding[1] != -2.0 {
		t.Errorf("embedding: %v", hit.Embedding)
	}
	if _, ok := hit.Fields["embedding"]; ok {
		t.Error("raw embedding blob must not stay in the field map")
	}
	if hit.Fields["name"] != "Go Course" {
		t.Errorf("name field: %q", hit.Fields["name"])
	}
}

func TestBuildHit_NoEmbedding(t *testing.T) {
	hit := buildHit("5", 1.0, map[string]string{"name": "x"})
	if hit.Embedding != nil {
		t.Errorf("expected nil embedding, got %v", hit.Embedding)
	}
}

func TestBytesToVector_Invalid(t *testing.T) {
	if v := bytesToVector([]byte{0x01, 0x02, 0x03}); v != nil {
		t.Errorf("truncated blob must decode to nil, got %v", v)
	}
	if v := bytesToVector(nil); v != nil {
		t.Errorf("empty blob must decode to nil, got %v", v)
	}
}

func TestAssemble(t *testing.T) {
	svc := New(nil, nil, "additive", queryOptions())
	raw := &result.Raw{
		Lexical: []result.RawHit{rawHit("1", 2.0)},
		KNN:     []result.RawHit{rawHit("2", 0.8)},
		Highlights: map[string]map[string]string{
			"1": {"name": "<em>x</em>"},
		},
		SuggestGroups: [][]string{{"one", "One", "two"}},
		Took:          1500000, // 1.5ms
	}

	res := svc.assemble(compiledPlan(), raw)

	if len(res.Hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(res.Hits))
	}
	if res.TookMS != 1 {
		t.Errorf("took: got %d ms", res.TookMS)
	}
	if len(res.Suggestions) != 2 {
		t.Errorf("suggestions: %v", res.Suggestions)
	}
	if res.Highlights["1"].Name == nil {
		t.Error("expected highlight for hit 1")
	}
}
