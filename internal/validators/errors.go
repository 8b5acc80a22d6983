// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidKey      = errors.New("key must be letters, digits or dots")
	ErrNoSecrets       = errors.New("at least one secret is required")
	ErrEmptySecret     = errors.New("secret must not be empty")
	ErrEmptyIdentity   = errors.New("please enter a username")
	ErrInvalidIdentity = errors.New("username cannot contain path separators")
	ErrEmptyMasterKey  = errors.New("please enter a password")
)
