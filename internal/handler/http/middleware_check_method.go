// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod returns an [http.HandlerFunc] that is intended to be
// registered as the router's MethodNotAllowed handler via
// [chi.Mux.MethodNotAllowed].
//
// It answers 405 Method Not Allowed with an Allow header listing the methods
// registered for the matched route. The lookup compares each route pattern
// against the raw request path; parameterised segments are not expanded.
// A path without a registered route gets 404.
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		idx := slices.IndexFunc(router.Routes(), func(route chi.Route) bool {
			return route.Pattern == r.URL.Path
		})
		if idx < 0 {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		methods := make([]string, 0, 2)
		for method := range router.Routes()[idx].Handlers {
			methods = append(methods, method)
		}
		slices.Sort(methods)

		w.Header().Set("Allow", strings.Join(methods, ", "))
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
