package domain

import (
	"context"
	"fmt"
)

// EmbeddingResult holds a computed embedding and provider token usage.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// Embedder vectorizes text into fixed-dimension embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// HealthChecker is implemented by embedders that can check their provider.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// ValidateDimensions checks an embedding against the configured
// dimensionality. A mismatch is a hard error, never truncated or padded.
func ValidateDimensions(vec []float32, dims int) error {
	if len(vec) != dims {
		return fmt.Errorf("got %d dimensions, want %d: %w", len(vec), dims, ErrVectorDimMismatch)
	}
	return nil
}
