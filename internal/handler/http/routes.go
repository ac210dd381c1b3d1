// SPDX-License-Identifier: Apache-2.0

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

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
	})

	// routes requiring a bearer token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/response", h.getResponses)
		r.Post("/api/response", h.createResponse)
		r.Get("/api/applet/{appletId}", h.getApplet)
	})

	return router
}
