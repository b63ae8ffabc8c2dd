package document

import (
	"errors"
	"testing"
	"time"

	"github.com/wynnteo/coursearch/internal/domain"
	"github.com/wynnteo/coursearch/internal/domain/course"
)

func testCourse() course.Course {
	return course.Course{
		ID:            42,
		Name:          "Machine Learning Basics",
		Description:   "An introduction to supervised learning.",
		CategoryID:    3,
		SubCategoryID: 7,
		Language:      "English",
		Source:        "udemy",
		Instructor:    "Ada Lovelace",
		Level:         "Beginner",
		IsValid:       true,
		ModifiedAt:    time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC),
	}
}

func TestBuild(t *testing.T) {
	emb := []float32{0.1, 0.2, 0.3}

	doc, err := Build(testCourse(), emb, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.ID() != "42" {
		t.Errorf("id: got %q, want %q", doc.ID(), "42")
	}
	if doc.Name() != "Machine Learning Basics" {
		t.Errorf("name: got %q", doc.Name())
	}
	if doc.NameSuggest() != doc.Name() {
		t.Errorf("name_suggest must mirror the name, got %q", doc.NameSuggest())
	}
	if doc.CategoryID() != "3" || doc.SubCategoryID() != "7" {
		t.Errorf("category ids: got %s/%s", doc.CategoryID(), doc.SubCategoryID())
	}
	if !doc.IsValid() {
		t.Error("expected is_valid true")
	}
	if doc.ModifiedAt() != "2024-05-01T12:30:00Z" {
		t.Errorf("modified_at: got %q", doc.ModifiedAt())
	}
	if len(doc.Embedding()) != 3 {
		t.Errorf("embedding: got %d dims", len(doc.Embedding()))
	}
}

func TestBuild_NormalizesTimezone(t *testing.T) {
	c := testCourse()
	loc := time.FixedZone("UTC+8", 8*3600)
	c.ModifiedAt = time.Date(2024, 5, 1, 20, 30, 0, 0, loc)

	doc, err := Build(c, []float32{0.1}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ModifiedAt() != "2024-05-01T12:30:00Z" {
		t.Errorf("modified_at must be UTC, got %q", doc.ModifiedAt())
	}
}

func TestBuild_BlankAttributesStayEmpty(t *testing.T) {
	c := testCourse()
	c.Instructor = ""
	c.Level = ""

	doc, err := Build(c, []float32{0.1}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Instructor() != "" || doc.Level() != "" {
		t.Errorf("blank attributes must stay empty, got %q/%q", doc.Instructor(), doc.Level())
	}
}

func TestBuild_MissingID(t *testing.T) {
	c := testCourse()
	c.ID = 0

	_, err := Build(c, []float32{0.1}, 1)
	if !errors.Is(err, domain.ErrDocumentBuild) {
		t.Fatalf("expected ErrDocumentBuild, got %v", err)
	}
}

func TestBuild_DimensionMismatch(t *testing.T) {
	_, err := Build(testCourse(), []float32{0.1, 0.2}, 3)
	if !errors.Is(err, domain.ErrVectorDimMismatch) {
		t.Fatalf("expected ErrVectorDimMismatch, got %v", err)
	}
}
