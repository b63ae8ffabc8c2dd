package domain

import "errors"

var (
	// ErrEmbeddingUnavailable signals that the embedding provider is
	// unreachable or returned an error. Search degrades to lexical-only;
	// indexing fails the single document.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
	// ErrBackendTimeout signals that the search backend exceeded the deadline.
	ErrBackendTimeout = errors.New("search backend timeout")
	// ErrBackendQuery signals that the backend rejected the query.
	ErrBackendQuery = errors.New("search backend rejected query")
	// ErrBackendUnavailable signals a transport failure to the backend.
	ErrBackendUnavailable = errors.New("search backend unavailable")
	// ErrDocumentBuild signals a malformed source record.
	ErrDocumentBuild = errors.New("document build failed")
	// ErrVectorDimMismatch signals a vector dimension mismatch.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
)
