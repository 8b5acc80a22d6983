// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	validateRoute  = "/validate"
	passwordsRoute = "/passwords"
	generateRoute  = "/generate"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(withCORS, h.withTraceID, h.withLogging, middleware.Recoverer)

	router.Post(validateRoute, h.validate)
	router.Post(passwordsRoute, h.passwords)
	router.Post(generateRoute, h.generate)

	for _, route := range []string{validateRoute, passwordsRoute, generateRoute} {
		router.Options(route, preflight)
	}

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
