// Package chi exposes the HTTP API: course search, the search page,
// health and metrics endpoints.
package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/wynnteo/coursearch/internal/domain/query"
	"github.com/wynnteo/coursearch/internal/domain/result"
	logpkg "github.com/wynnteo/coursearch/internal/logger"
	healthuc "github.com/wynnteo/coursearch/internal/usecase/health"
)

// Searcher runs a hybrid course search.
type Searcher interface {
	Search(ctx context.Context, text string, filters query.Filters) (*result.SearchResult, error)
}

// Options holds transport-level settings.
type Options struct {
	RateLimitRPS   float64
	RateLimitBurst int
	CacheTTL       time.Duration
}

// Server handles HTTP requests.
type Server struct {
	search Searcher
	health *healthuc.Service
	cache  responseCache
	opts   Options
	logger *zap.Logger
}

// NewServer creates an HTTP API server. cache may be nil to disable
// response caching.
func NewServer(search Searcher, health *healthuc.Service, cache responseCache, opts Options, logger *zap.Logger) *Server {
	return &Server{
		search: search,
		health: health,
		cache:  cache,
		opts:   opts,
		logger: logger,
	}
}

// Router assembles the chi router with all routes and route-local middleware.
// Global middleware (recovery, request id, logging) is attached by the caller.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/", s.handlePage)
	r.Get("/healthz", s.handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		if s.opts.RateLimitRPS > 0 {
			api.Use(rateLimitMiddleware(s.opts.RateLimitRPS, s.opts.RateLimitBurst))
		}
		if s.cache != nil && s.opts.CacheTTL > 0 {
			api.Use(cacheMiddleware(s.cache, s.opts.CacheTTL, s.logger))
		}
		api.Get("/search", s.handleSearch)
	})

	return r
}

// handleHealthz reports per-component health.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: report.Checks,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// JSONRecoverer is a recovery middleware that returns JSON instead of a
// plain text stacktrace.
func JSONRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					writeError(w, http.StatusInternalServerError, "internal error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// WideEventMiddleware emits a canonical log line per request and
// propagates X-Request-ID.
func WideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
