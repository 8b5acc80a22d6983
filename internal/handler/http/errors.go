// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// ErrMalformedBody is returned when a request body is too large or is not
// valid units codec output.
var ErrMalformedBody = errors.New("malformed request body")
