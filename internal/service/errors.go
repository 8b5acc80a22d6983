// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrIdentityMismatch = errors.New("identity does not match the session")
	ErrRecordNotFound   = errors.New("no record under the requested key")
	ErrMalformedRequest = errors.New("malformed sync request")

	ErrInvalidGeneratedLength = errors.New("generated secret length must be positive")
)
