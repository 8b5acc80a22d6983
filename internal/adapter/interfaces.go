// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client half of the sync protocol.
//
// [SyncClient] speaks to a running vault the way the browser extension does:
// it transforms requests with the master key, posts them, and reverses the
// transform on the responses. Status codes are mapped to the sentinel errors
// in errors.go by mapHTTPError so callers can use [errors.Is].
package adapter

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/sync_client_mock.go -package=mock

// SyncClient calls the three sync routes of one vault.
type SyncClient interface {
	// Validate proves the identity. It returns [ErrBadRequest] when the
	// vault rejects it.
	Validate(ctx context.Context) error

	// Passwords returns every secret stored under key. An absent key is
	// [ErrBadRequest], a foreign identity is [ErrNotFound].
	Passwords(ctx context.Context, key string) ([]string, error)

	// Generate asks the vault to create and store a secret under key and
	// returns it.
	Generate(ctx context.Context, key string) (string, error)
}
