// Package index implements the index writer over the search backend.
package index

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/wynnteo/coursearch/internal/db"
	"github.com/wynnteo/coursearch/internal/domain"
	domdoc "github.com/wynnteo/coursearch/internal/domain/document"
)

// store is the consumer interface for the index writer (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SugAdd(ctx context.Context, dict, term string, score float64) error
}

// Repo implements usecase/indexing.IndexWriter.
type Repo struct {
	store      store
	vectorDims int
}

// New creates an index writer. vectorDims fixes the vector field
// dimensionality declared at index creation.
func New(s store, vectorDims int) *Repo {
	return &Repo{store: s, vectorDims: vectorDims}
}

// EnsureIndex creates the course index if it does not already exist. Text
// field weights mirror the lexical clause (name > description > instructor);
// the vector field is declared explicitly with its fixed dimensionality.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	def := &db.IndexDefinition{
		Name:     domain.CourseIndexName,
		Prefixes: []string{domain.CourseKeyPrefix},
		Fields: []db.IndexField{
			{Name: "name", Type: db.IndexFieldText, TextWeight: 3.0},
			{Name: "description", Type: db.IndexFieldText, TextWeight: 2.0},
			{Name: "instructor", Type: db.IndexFieldText, TextWeight: 1.5},
			{Name: "category_id", Type: db.IndexFieldTag},
			{Name: "sub_category_id", Type: db.IndexFieldTag},
			{Name: "language", Type: db.IndexFieldTag},
			{Name: "source", Type: db.IndexFieldTag},
			{Name: "level", Type: db.IndexFieldTag},
			{Name: "is_valid", Type: db.IndexFieldTag},
			{
				Name:           domain.VectorField,
				Type:           db.IndexFieldVector,
				VectorAlgo:     db.VectorFlat,
				VectorDim:      r.vectorDims,
				VectorDistance: db.DistanceCosine,
			},
		},
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create index %s: %w", domain.CourseIndexName, err)
	}
	return nil
}

// Upsert writes a document under its identifier. Writing the same
// identifier again overwrites the previous values, never duplicates, and
// refreshes the name in the completion dictionary.
func (r *Repo) Upsert(ctx context.Context, doc domdoc.Document) error {
	key := domain.CourseKey(doc.ID())

	if err := r.store.HSet(ctx, key, buildHashFields(doc)); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}

	if err := r.store.SugAdd(ctx, domain.SuggestDictionary, doc.NameSuggest(), 1); err != nil {
		return fmt.Errorf("sugadd %q: %w", doc.NameSuggest(), err)
	}

	return nil
}

// ModifiedAt returns the stored modified_at value for a course, or the
// empty string when no document exists for the identifier.
func (r *Repo) ModifiedAt(ctx context.Context, id int64) (string, error) {
	key := domain.CourseKey(strconv.FormatInt(id, 10))

	fields, err := r.store.HGetAll(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("hgetall %s: %w", key, err)
	}
	return fields["modified_at"], nil
}

// Remove deletes a course document from the backend. Reports false when
// no document existed for the identifier. The completion dictionary is
// left alone: multiple courses can share a name.
func (r *Repo) Remove(ctx context.Context, id int64) (bool, error) {
	key := domain.CourseKey(strconv.FormatInt(id, 10))

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("exists %s: %w", key, err)
	}
	if !exists {
		return false, nil
	}

	if err := r.store.Del(ctx, key); err != nil {
		return false, fmt.Errorf("del %s: %w", key, err)
	}
	return true, nil
}
