// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the loopback sync endpoint.
//
// The listener is bound by Listen so that a busy port is reported before the
// terminal UI takes over the screen. RunServer then serves until its context
// is cancelled and shuts down gracefully.
package server
