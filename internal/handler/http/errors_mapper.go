// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/cyferkey/internal/service"
)

// errorStatuses is checked in order; the first sentinel err wraps wins.
var errorStatuses = []struct {
	err    error
	status int
}{
	{ErrMalformedBody, http.StatusBadRequest},
	{service.ErrMalformedRequest, http.StatusBadRequest},
	{service.ErrIdentityMismatch, http.StatusNotFound},
	{service.ErrRecordNotFound, http.StatusBadRequest},
}

// statusFromError maps a sync error to the status the extension expects on
// route. A failed identity check is 400 on /validate and 404 elsewhere.
func statusFromError(route string, err error) int {
	if route == validateRoute && errors.Is(err, service.ErrIdentityMismatch) {
		return http.StatusBadRequest
	}

	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}
