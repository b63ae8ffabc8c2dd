package chi

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/wynnteo/coursearch/internal/domain"
	"github.com/wynnteo/coursearch/internal/domain/query"
	logpkg "github.com/wynnteo/coursearch/internal/logger"
)

// handleSearch handles GET /api/v1/search.
//
// Query parameters: q (free text), category, subcategory, lang, source,
// level. All are optional; an empty q returns the filtered catalog.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filters := query.Filters{
		Category:    q.Get("category"),
		SubCategory: q.Get("subcategory"),
		Language:    q.Get("lang"),
		Source:      q.Get("source"),
		Level:       q.Get("level"),
	}

	res, err := s.search.Search(r.Context(), q.Get("q"), filters)
	if err != nil {
		s.handleSearchError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResultToResponse(res))
}

// handleSearchError maps backend failures to a generic 503. Error detail
// stays in the logs; clients get a stable message.
func (s *Server) handleSearchError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context())

	switch {
	case errors.Is(err, domain.ErrBackendTimeout),
		errors.Is(err, domain.ErrBackendQuery),
		errors.Is(err, domain.ErrBackendUnavailable):
		log.Error("search backend failure", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "search temporarily unavailable")
	default:
		log.Error("search failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
