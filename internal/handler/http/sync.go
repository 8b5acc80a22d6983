// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"io"
	"net/http"

	"github.com/MKhiriev/cyferkey/internal/logger"
	"github.com/MKhiriev/cyferkey/internal/units"
	"github.com/MKhiriev/cyferkey/models"
)

func (h *Handler) validate(w http.ResponseWriter, r *http.Request) {
	body, err := h.readBody(w, r)
	if err == nil {
		err = h.services.SyncService.Validate(r.Context(), body)
	}
	h.respond(w, r, validateRoute, "", nil, err)
}

func (h *Handler) passwords(w http.ResponseWriter, r *http.Request) {
	body, err := h.readBody(w, r)
	if err != nil {
		h.respond(w, r, passwordsRoute, "", nil, err)
		return
	}

	key, payload, err := h.services.SyncService.Passwords(r.Context(), body)
	h.respond(w, r, passwordsRoute, key, payload, err)
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	body, err := h.readBody(w, r)
	if err != nil {
		h.respond(w, r, generateRoute, "", nil, err)
		return
	}

	key, payload, err := h.services.SyncService.Generate(r.Context(), body)
	h.respond(w, r, generateRoute, key, payload, err)
}

// readBody reads at most maxBodyBytes and decodes them into code units.
func (h *Handler) readBody(w http.ResponseWriter, r *http.Request) (units.Text, error) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}

	text, err := units.Unmarshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}
	return text, nil
}

// respond records the request in the activity log and writes the status.
// The payload is written only on success; error details never reach the
// client.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, route, key string, payload units.Text, err error) {
	log := logger.FromRequest(r)

	status := http.StatusOK
	if err != nil {
		status = statusFromError(route, err)
		log.Debug().
			Err(err).
			Str("route", route).
			Int("status", status).
			Msg("sync request refused")
	}

	activity := models.Activity{
		Route:      route,
		Key:        key,
		Status:     status,
		RemoteAddr: r.RemoteAddr,
		TraceID:    w.Header().Get(traceIDHeader),
	}
	if recordErr := h.services.ActivityService.Record(r.Context(), activity); recordErr != nil {
		log.Err(recordErr).
			Str("route", route).
			Msg("error recording sync activity")
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(status)
	if status != http.StatusOK || len(payload) == 0 {
		return
	}

	if _, err = w.Write(units.Marshal(payload)); err != nil {
		log.Err(err).Str("route", route).Msg("error writing response")
	}
}
