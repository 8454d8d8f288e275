package ask

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers answer pipeline routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/ask", h.Ask)
		r.Get("/logs/export", h.ExportLogs)
	})
}
