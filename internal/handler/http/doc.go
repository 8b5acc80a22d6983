// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the loopback sync endpoint used by the browser
// extension.
//
// Three POST routes are served: /validate, /passwords and /generate. Bodies
// are cipher-transformed text encoded with the units codec. Every response
// carries permissive CORS headers, OPTIONS requests are answered with 204,
// and other methods get 405. Request tracing, access logging and panic
// recovery are handled by middleware before requests reach the service
// layer.
package http
