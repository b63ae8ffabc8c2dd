// Package indexing implements the catalog-to-index pipeline: read courses,
// embed them and write searchable documents to the backend.
package indexing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/wynnteo/coursearch/internal/domain"
	"github.com/wynnteo/coursearch/internal/domain/course"
	"github.com/wynnteo/coursearch/internal/domain/document"
	"github.com/wynnteo/coursearch/internal/logger"
	"github.com/wynnteo/coursearch/internal/metrics"
)

// CatalogReader loads the full course catalog.
type CatalogReader interface {
	List(ctx context.Context) ([]course.Course, error)
}

// IndexWriter prepares the index and persists documents.
type IndexWriter interface {
	EnsureIndex(ctx context.Context) error
	Upsert(ctx context.Context, doc document.Document) error
	ModifiedAt(ctx context.Context, id int64) (string, error)
}

// Failure records a single course that could not be indexed.
type Failure struct {
	CourseID int64
	Err      error
}

// Report summarizes one indexing run.
type Report struct {
	Total    int
	Indexed  int
	Skipped  int
	Failed   int
	Failures []Failure
}

// Service runs the indexing pipeline with a bounded worker pool.
type Service struct {
	catalog    CatalogReader
	index      IndexWriter
	embedder   domain.Embedder
	vectorDims int
	workers    int
	force      bool
}

// New creates the indexing service. workers bounds concurrent embedding
// calls. force re-embeds courses whose stored document is already current.
func New(catalog CatalogReader, index IndexWriter, embedder domain.Embedder, vectorDims, workers int, force bool) *Service {
	return &Service{
		catalog:    catalog,
		index:      index,
		embedder:   embedder,
		vectorDims: vectorDims,
		workers:    workers,
		force:      force,
	}
}

// Run indexes the whole catalog. Per-course failures are collected in the
// report and do not stop the run; catalog or index setup errors are fatal.
func (s *Service) Run(ctx context.Context) (*Report, error) {
	log := logger.FromContext(ctx)

	if err := s.index.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("ensure index: %w", err)
	}

	courses, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		skipped  int
		failures []Failure
	)

	for _, c := range courses {
		c := c
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			skip, err := s.indexOne(ctx, c)
			if err != nil {
				log.Warn("course indexing failed",
					zap.Int64("course_id", c.ID),
					zap.Error(err))
				metrics.IndexDocumentsTotal.WithLabelValues("failed").Inc()
				mu.Lock()
				failures = append(failures, Failure{CourseID: c.ID, Err: err})
				mu.Unlock()
				return
			}
			if skip {
				metrics.IndexDocumentsTotal.WithLabelValues("skipped").Inc()
				mu.Lock()
				skipped++
				mu.Unlock()
				return
			}
			metrics.IndexDocumentsTotal.WithLabelValues("indexed").Inc()
		}); err != nil {
			wg.Done()
			mu.Lock()
			failures = append(failures, Failure{CourseID: c.ID, Err: err})
			mu.Unlock()
		}
	}
	wg.Wait()

	report := &Report{
		Total:    len(courses),
		Indexed:  len(courses) - len(failures) - skipped,
		Skipped:  skipped,
		Failed:   len(failures),
		Failures: failures,
	}
	log.Info("indexing run finished",
		zap.Int("total", report.Total),
		zap.Int("indexed", report.Indexed),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed))
	return report, nil
}

// indexOne embeds a single course and writes its document. A course whose
// stored document already carries the catalog's modified_at is skipped
// unless force is set, saving the embedding call.
func (s *Service) indexOne(ctx context.Context, c course.Course) (bool, error) {
	if !s.force {
		stored, err := s.index.ModifiedAt(ctx, c.ID)
		if err != nil {
			return false, fmt.Errorf("read document %d: %w", c.ID, err)
		}
		if stored != "" && stored == c.ModifiedAt.UTC().Format(time.RFC3339) {
			return true, nil
		}
	}

	res, err := s.embedder.Embed(ctx, c.Name+"\n"+c.Description)
	if err != nil {
		return false, fmt.Errorf("embed course %d: %w", c.ID, err)
	}

	doc, err := document.Build(c, res.Embedding, s.vectorDims)
	if err != nil {
		return false, fmt.Errorf("build document %d: %w", c.ID, err)
	}

	if err := s.index.Upsert(ctx, doc); err != nil {
		return false, fmt.Errorf("upsert document %d: %w", c.ID, err)
	}
	return false, nil
}
