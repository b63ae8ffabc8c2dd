package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wynnteo/coursearch/internal/db"
	"github.com/wynnteo/coursearch/internal/domain"
	"github.com/wynnteo/coursearch/internal/domain/query"
)

type mockStore struct {
	searchTextFn      func(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
	searchKNNFn       func(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	searchHighlightFn func(ctx context.Context, q *db.HighlightQuery) (map[string]map[string]string, error)
	sugGetFn          func(ctx context.Context, q *db.SuggestQuery) ([]string, error)
}

func (m *mockStore) SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error) {
	return m.searchTextFn(ctx, q)
}

func (m *mockStore) SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	return m.searchKNNFn(ctx, q)
}

func (m *mockStore) SearchHighlight(ctx context.Context, q *db.HighlightQuery) (map[string]map[string]string, error) {
	return m.searchHighlightFn(ctx, q)
}

func (m *mockStore) SugGet(ctx context.Context, q *db.SuggestQuery) ([]string, error) {
	return m.sugGetFn(ctx, q)
}

// happyStore returns a store where every sub-query succeeds with one hit.
func happyStore() *mockStore {
	return &mockStore{
		searchTextFn: func(_ context.Context, _ *db.TextQuery) (*db.SearchResult, error) {
			return &db.SearchResult{Total: 1, Entries: []db.SearchEntry{
				{Key: domain.CourseKey("11"), Score: 2.5, Fields: map[string]string{"name": "SQL Basics"}},
			}}, nil
		},
		searchKNNFn: func(_ context.Context, _ *db.KNNQuery) (*db.SearchResult, error) {
			return &db.SearchResult{Total: 1, Entries: []db.SearchEntry{
				{Key: domain.CourseKey("12"), Score: 0.93, Fields: map[string]string{"name": "Databases"}},
			}}, nil
		},
		searchHighlightFn: func(_ context.Context, _ *db.HighlightQuery) (map[string]map[string]string, error) {
			return map[string]map[string]string{
				domain.CourseKey("11"): {"name": "<em>SQL</em> Basics"},
			}, nil
		},
		sugGetFn: func(_ context.Context, _ *db.SuggestQuery) ([]string, error) {
			return []string{"SQL Basics"}, nil
		},
	}
}

func TestExecute_FullPlan(t *testing.T) {
	ms := happyStore()
	repo := New(ms, time.Second)

	plan := query.Compile("sql", []float32{0.1, 0.2}, query.Filters{}, query.Options{})
	raw, err := repo.Execute(context.Background(), plan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(raw.Lexical) != 1 || raw.Lexical[0].ID != "11" {
		t.Errorf("lexical hits: %+v", raw.Lexical)
	}
	if raw.Lexical[0].Score != 2.5 {
		t.Errorf("lexical score: got %v", raw.Lexical[0].Score)
	}
	if len(raw.KNN) != 1 || raw.KNN[0].ID != "12" {
		t.Errorf("knn hits: %+v", raw.KNN)
	}
	if raw.Highlights["11"]["name"] != "<em>SQL</em> Basics" {
		t.Errorf("highlights: %+v", raw.Highlights)
	}
	if len(raw.SuggestGroups) != 1 || raw.SuggestGroups[0][0] != "SQL Basics" {
		t.Errorf("suggestions: %+v", raw.SuggestGroups)
	}
	if raw.Took < 0 {
		t.Errorf("took must be non-negative, got %v", raw.Took)
	}
}

func TestExecute_LexicalOnlySkipsKNN(t *testing.T) {
	ms := happyStore()
	knnCalled := false
	ms.searchKNNFn = func(_ context.Context, _ *db.KNNQuery) (*db.SearchResult, error) {
		knnCalled = true
		return &db.SearchResult{}, nil
	}

	// No embedding: the vector clause is a no-op.
	plan := query.Compile("sql", nil, query.Filters{}, query.Options{})
	if _, err := New(ms, time.Second).Execute(context.Background(), plan); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if knnCalled {
		t.Fatal("KNN must not run without a query embedding")
	}
}

func TestExecute_MatchAllSkipsHighlightAndSuggest(t *testing.T) {
	ms := happyStore()
	highlightCalled, suggestCalled := false, false
	ms.searchHighlightFn = func(_ context.Context, _ *db.HighlightQuery) (map[string]map[string]string, error) {
		highlightCalled = true
		return nil, nil
	}
	ms.sugGetFn = func(_ context.Context, _ *db.SuggestQuery) ([]string, error) {
		suggestCalled = true
		return nil, nil
	}

	plan := query.Compile("", nil, query.Filters{Level: "Beginner"}, query.Options{})
	if _, err := New(ms, time.Second).Execute(context.Background(), plan); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if highlightCalled {
		t.Error("highlight pass must not run for a match-all query")
	}
	if suggestCalled {
		t.Error("suggest lookup must not run for an empty query")
	}
}

func TestExecute_TermTranslation(t *testing.T) {
	ms := happyStore()
	var gotQuery *db.TextQuery
	ms.searchTextFn = func(_ context.Context, q *db.TextQuery) (*db.SearchResult, error) {
		gotQuery = q
		return &db.SearchResult{}, nil
	}

	plan := query.Compile("go databases", nil, query.Filters{Language: "English"}, query.Options{})
	if _, err := New(ms, time.Second).Execute(context.Background(), plan); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(gotQuery.Terms) != 2 {
		t.Fatalf("expected 2 terms, got %d", len(gotQuery.Terms))
	}
	if gotQuery.Terms[0].Term != "go" || gotQuery.Terms[0].Distance != 0 {
		t.Errorf("term 0: %+v", gotQuery.Terms[0])
	}
	if gotQuery.Terms[1].Term != "databases" || gotQuery.Terms[1].Distance != 2 {
		t.Errorf("term 1: %+v", gotQuery.Terms[1])
	}
	if len(gotQuery.Filters) != 1 || gotQuery.Filters[0].Field != "language" {
		t.Errorf("filters: %+v", gotQuery.Filters)
	}
	if len(gotQuery.Fields) != 3 || gotQuery.Fields[0].Name != "name" || gotQuery.Fields[0].Weight != 3.0 {
		t.Errorf("weighted fields: %+v", gotQuery.Fields)
	}
}

func TestExecute_ClassifiesTimeout(t *testing.T) {
	ms := happyStore()
	ms.searchTextFn = func(_ context.Context, _ *db.TextQuery) (*db.SearchResult, error) {
		return nil, context.DeadlineExceeded
	}

	plan := query.Compile("sql", nil, query.Filters{}, query.Options{})
	_, err := New(ms, time.Second).Execute(context.Background(), plan)
	if !errors.Is(err, domain.ErrBackendTimeout) {
		t.Fatalf("expected ErrBackendTimeout, got %v", err)
	}
}

func TestExecute_ClassifiesQueryRejection(t *testing.T) {
	ms := happyStore()
	ms.searchTextFn = func(_ context.Context, _ *db.TextQuery) (*db.SearchResult, error) {
		return nil, &db.Error{Op: db.OpSearch, Err: db.ErrQueryRejected}
	}

	plan := query.Compile("sql", nil, query.Filters{}, query.Options{})
	_, err := New(ms, time.Second).Execute(context.Background(), plan)
	if !errors.Is(err, domain.ErrBackendQuery) {
		t.Fatalf("expected ErrBackendQuery, got %v", err)
	}
}

func TestExecute_ClassifiesUnavailable(t *testing.T) {
	ms := happyStore()
	ms.searchTextFn = func(_ context.Context, _ *db.TextQuery) (*db.SearchResult, error) {
		return nil, errors.New("connection refused")
	}

	plan := query.Compile("sql", nil, query.Filters{}, query.Options{})
	_, err := New(ms, time.Second).Execute(context.Background(), plan)
	if !errors.Is(err, domain.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
}
