// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Activity is one request handled by the sync service, kept for the status
// screen.
type Activity struct {
	// ID is a random identifier assigned when the row is stored.
	ID string
	// Route is the request path, e.g. "/validate".
	Route string
	// Key is the lookup key the request addressed. Empty for /validate and
	// for requests that could not be decoded.
	Key string
	// Status is the HTTP status code written to the client.
	Status int
	// RemoteAddr is the client address as seen by the listener.
	RemoteAddr string
	// TraceID ties the row to the request log line.
	TraceID string
	// CreatedAt is when the request was handled.
	CreatedAt time.Time
}
