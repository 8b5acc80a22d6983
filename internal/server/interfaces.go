// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server defines the lifecycle contract of the sync server.
type Server interface {
	// Listen binds the configured address.
	Listen() error

	// Addr returns the bound address, or the configured one before Listen.
	Addr() string

	// RunServer serves requests and blocks until ctx is cancelled or the
	// listener fails. It calls Listen first when needed.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the server.
	Shutdown()
}
