// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command cyferctl talks to a running cyferkey vault over its loopback sync
// channel, the way a browser extension would.
package main

import (
	"os"

	"github.com/MKhiriev/cyferkey/internal/adapter"
)

func main() {
	if err := newRootCmd(adapter.NewHTTPSyncClient).Execute(); err != nil {
		os.Exit(1)
	}
}
