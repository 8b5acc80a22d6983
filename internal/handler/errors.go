// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

var (
	// errNoHandlersAreCreated is returned by NewHandlers when the server
	// configuration has no address, so no transport handler is initialized.
	errNoHandlersAreCreated = errors.New("no handlers are created")

	// errNoServicesProvided is returned when the sync or activity service is
	// missing.
	errNoServicesProvided = errors.New("sync and activity services are required")
)
