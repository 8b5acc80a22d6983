// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"

	"github.com/MKhiriev/cyferkey/internal/store"
	"github.com/MKhiriev/cyferkey/internal/validators"
)

var (
	ErrUserQuit = errors.New("user quit")

	ErrAccountNotFound = errors.New("that user doesn't exist")
	ErrAccountExists   = errors.New("that user already exists")
)

// humanizeError turns the errors a form can produce into one line for the
// status area. Wrapping context is dropped for the errors users can fix.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	for _, known := range []error{
		validators.ErrInvalidKey,
		validators.ErrNoSecrets,
		validators.ErrEmptySecret,
		validators.ErrEmptyIdentity,
		validators.ErrInvalidIdentity,
		validators.ErrEmptyMasterKey,
		store.ErrSecretTooLong,
		ErrAccountNotFound,
		ErrAccountExists,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}

	return err.Error()
}
