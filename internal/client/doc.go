// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the vault application runtime.
//
// It wires the login flow, the vault, the sync listener, and background
// workers into a single process lifecycle, and writes the vault one last
// time when the UI exits.
package client
