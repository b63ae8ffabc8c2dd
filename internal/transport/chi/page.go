package chi

import (
	"embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

//go:embed templates/search.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/search.html"))

// handlePage serves the course search page.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, nil); err != nil {
		s.logger.Error("render search page", zap.Error(err))
	}
}
