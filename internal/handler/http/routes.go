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

	// routes without authentication
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
		r.Post("/api/user/logout", h.logout)
	})

	// owner-scoped routes behind the access guard
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/memos", h.createMemo)
		r.Get("/api/memos", h.listMemos)
		r.Put("/api/memos/{id}", h.updateMemo)
		r.Delete("/api/memos/{id}", h.deleteMemo)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
