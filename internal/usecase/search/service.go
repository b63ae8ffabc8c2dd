// Package search compiles course searches into backend query plans and
// assembles the raw responses into ranked, deduplicated results.
package search

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/wynnteo/coursearch/internal/domain"
	"github.com/wynnteo/coursearch/internal/domain/query"
	"github.com/wynnteo/coursearch/internal/domain/result"
	"github.com/wynnteo/coursearch/internal/logger"
	"github.com/wynnteo/coursearch/internal/metrics"
)

// Executor runs a compiled query plan against the search backend.
type Executor interface {
	Execute(ctx context.Context, plan query.Plan) (*result.Raw, error)
}

// Fuser merges lexical and vector hit lists into a single ranking.
type Fuser func(lexical, knn []result.RawHit, limit int) []result.Hit

// Service orchestrates search: embed, compile, execute, assemble.
type Service struct {
	executor Executor
	embedder domain.Embedder
	fuse     Fuser
	opts     query.Options
}

// New creates a search service. strategy selects the fusion function:
// "rrf" for reciprocal rank fusion, anything else for additive fusion.
func New(executor Executor, embedder domain.Embedder, strategy string, opts query.Options) *Service {
	fuse := fuseAdditive
	if strategy == "rrf" {
		fuse = fuseRRF
	}
	return &Service{
		executor: executor,
		embedder: embedder,
		fuse:     fuse,
		opts:     opts,
	}
}

// Search runs a hybrid search for the given free text and filters.
//
// When the embedding provider is unavailable the search degrades to
// lexical-only instead of failing. Backend errors are returned as-is
// for the transport layer to classify.
func (s *Service) Search(ctx context.Context, text string, filters query.Filters) (*result.SearchResult, error) {
	log := logger.FromContext(ctx)
	trimmed := strings.TrimSpace(text)

	outcome := "ok"

	var embedding []float32
	if trimmed != "" {
		res, err := s.embedder.Embed(ctx, trimmed)
		switch {
		case err == nil:
			embedding = res.Embedding
		case errors.Is(err, domain.ErrEmbeddingUnavailable):
			// Lexical-only degradation. The query still runs.
			log.Warn("embedding unavailable, degrading to lexical search", zap.Error(err))
			outcome = "degraded"
		default:
			metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
			return nil, err
		}
	}

	plan := query.Compile(text, embedding, filters, s.opts)

	raw, err := s.executor.Execute(ctx, plan)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.SearchRequestsTotal.WithLabelValues(outcome).Inc()
	metrics.SearchBackendDuration.Observe(raw.Took.Seconds())

	return s.assemble(plan, raw), nil
}
