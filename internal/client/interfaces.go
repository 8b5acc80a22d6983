// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/cyferkey/internal/service"
	"github.com/MKhiriev/cyferkey/internal/session"
	"github.com/MKhiriev/cyferkey/models"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run(ctx context.Context) error
}

// UI is the interactive front end driven by [App]. *tui.TUI implements it.
type UI interface {
	// LoginFlow returns the credentials the user entered and whether they
	// asked for a new vault.
	LoginFlow(ctx context.Context) (creds models.Credentials, signup bool, err error)

	// MainLoop blocks until the user quits or ctx is cancelled.
	MainLoop(ctx context.Context, services *service.Services, sess *session.Session, syncStatus string) error
}
