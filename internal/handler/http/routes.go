package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/register", h.register)
		r.Post("/api/login", h.login)
		r.Get("/api/auth/google", h.googleStart)
		r.Get("/api/auth/google/callback", h.googleCallback)
		r.Get("/api/health", h.health)
	})

	// routes protected by bearer token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/api/scripts", h.listScripts)
		r.Post("/api/scripts", h.upsertScript)
		r.Delete("/api/scripts/{id}", h.deleteScript)
		r.Post("/api/scripts/sync", h.bulkSync)
	})

	return router
}
