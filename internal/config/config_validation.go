// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.GeneratedLength <= 0 {
		return fmt.Errorf("%w: generated length must be positive", ErrInvalidAppConfigs)
	}

	if cfg.Storage.DataDir == "" || cfg.Storage.ActivityDSN == "" {
		return ErrInvalidStorageConfigs
	}

	if !isLoopback(cfg.Server.Address) {
		return fmt.Errorf("%w: %q is not a loopback address", ErrInvalidServerConfigs, cfg.Server.Address)
	}
	if cfg.Server.MaxBodyBytes <= 0 || cfg.Server.ShutdownTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Storage.ActivityEnabled() && (cfg.Workers.PruneInterval <= 0 || cfg.Workers.ActivityRetention <= 0) {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func isLoopback(address string) bool {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return false
	}
	if host == "localhost" {
		return true
	}

	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
