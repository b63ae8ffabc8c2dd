package chi

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/wynnteo/coursearch/internal/db"
	"github.com/wynnteo/coursearch/internal/domain"
	"github.com/wynnteo/coursearch/internal/metrics"
)

var responseCachePrefix = domain.KeyPrefix + "resp_cache:"

// responseCache is the consumer interface for the search response cache (ISP).
type responseCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// cacheMiddleware serves repeated GET requests from the key-value store.
// Only 200 responses are cached; the request URI is the cache key.
func cacheMiddleware(cache responseCache, ttl time.Duration, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := cacheKey(r.RequestURI)
			if body, err := cache.Get(r.Context(), key); err == nil {
				metrics.ResponseCacheTotal.WithLabelValues("hit").Inc()
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Cache", "HIT")
				_, _ = w.Write(body)
				return
			} else if !errors.Is(err, db.ErrKeyNotFound) {
				logger.Warn("response cache read failed", zap.Error(err))
			}
			metrics.ResponseCacheTotal.WithLabelValues("miss").Inc()

			rec := &recordingWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			if rec.status == http.StatusOK && rec.buf.Len() > 0 {
				if err := cache.SetWithTTL(r.Context(), key, rec.buf.Bytes(), ttl); err != nil {
					logger.Warn("response cache write failed", zap.Error(err))
				}
			}
		})
	}
}

func cacheKey(uri string) string {
	h := sha256.Sum256([]byte(uri))
	return responseCachePrefix + hex.EncodeToString(h[:])
}

// recordingWriter tees the response body for caching.
type recordingWriter struct {
	http.ResponseWriter
	buf    bytes.Buffer
	status int
}

func (w *recordingWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b) //nolint:wrapcheck // delegating to underlying ResponseWriter
}
