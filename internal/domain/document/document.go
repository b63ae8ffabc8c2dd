// Package document defines the canonical index document and its builder.
package document

import (
	"fmt"
	"strconv"
	"time"

	"github.com/wynnteo/coursearch/internal/domain"
	"github.com/wynnteo/coursearch/internal/domain/course"
)

// Document is the unit persisted to the search backend. Every field is
// always present: blank source attributes are stored as empty strings so
// the backend schema stays identical across documents.
type Document struct {
	id            string
	name          string
	description   string
	instructor    string
	nameSuggest   string
	categoryID    string
	subCategoryID string
	language      string
	source        string
	level         string
	isValid       bool
	modifiedAt    string
	embedding     []float32
}

// Build maps a catalog record plus its embedding into a Document.
// The mapping is pure: no defaults come from anywhere but the record itself.
// A zero identifier yields ErrDocumentBuild; an embedding whose length does
// not match dims yields ErrVectorDimMismatch.
func Build(c course.Course, embedding []float32, dims int) (Document, error) {
	if c.ID <= 0 {
		return Document{}, fmt.Errorf("course has no identifier: %w", domain.ErrDocumentBuild)
	}
	if err := domain.ValidateDimensions(embedding, dims); err != nil {
		return Document{}, fmt.Errorf("course %d: %w", c.ID, err)
	}

	return Document{
		id:            strconv.FormatInt(c.ID, 10),
		name:          c.Name,
		description:   c.Description,
		instructor:    c.Instructor,
		nameSuggest:   c.Name,
		categoryID:    strconv.FormatInt(c.CategoryID, 10),
		subCategoryID: strconv.FormatInt(c.SubCategoryID, 10),
		language:      c.Language,
		source:        c.Source,
		level:         c.Level,
		isValid:       c.IsValid,
		modifiedAt:    c.ModifiedAt.UTC().Format(time.RFC3339),
		embedding:     embedding,
	}, nil
}

// Reconstruct rebuilds a Document from stored fields (repository use).
func Reconstruct(
	id, name, description, instructor, nameSuggest string,
	categoryID, subCategoryID, language, source, level string,
	isValid bool, modifiedAt string, embedding []float32,
) Document {
	return Document{
		id:            id,
		name:          name,
		description:   description,
		instructor:    instructor,
		nameSuggest:   nameSuggest,
		categoryID:    categoryID,
		subCategoryID: subCategoryID,
		language:      language,
		source:        source,
		level:         level,
		isValid:       isValid,
		modifiedAt:    modifiedAt,
		embedding:     embedding,
	}
}

// ID returns the document identifier (the course identifier).
func (d Document) ID() string { return d.id }

// Name returns the course name.
func (d Document) Name() string { return d.name }

// Description returns the course description.
func (d Document) Description() string { return d.description }

// Instructor returns the instructor name ("" when the source had none).
func (d Document) Instructor() string { return d.instructor }

// NameSuggest returns the completion-suggestion input derived from the name.
func (d Document) NameSuggest() string { return d.nameSuggest }

// CategoryID returns the category identifier as stored.
func (d Document) CategoryID() string { return d.categoryID }

// SubCategoryID returns the sub-category identifier as stored.
func (d Document) SubCategoryID() string { return d.subCategoryID }

// Language returns the course language.
func (d Document) Language() string { return d.language }

// Source returns the source tag.
func (d Document) Source() string { return d.source }

// Level returns the course level ("" when the source had none).
func (d Document) Level() string { return d.level }

// IsValid reports the validity flag.
func (d Document) IsValid() bool { return d.isValid }

// ModifiedAt returns the last-modified timestamp in RFC 3339 form.
func (d Document) ModifiedAt() string { return d.modifiedAt }

// Embedding returns the stored embedding vector.
func (d Document) Embedding() []float32 { return d.embedding }
