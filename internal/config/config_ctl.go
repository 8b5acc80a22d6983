// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// CtlConfig holds the settings of the cyferctl companion CLI. Every field
// can be overridden by a command-line flag after loading.
type CtlConfig struct {
	// Address is the sync server address.
	// Env: CYFERCTL_ADDRESS
	Address string `env:"ADDRESS" envDefault:"127.0.0.1:6700"`

	// Identity is the account whose vault the CLI talks to.
	// Env: CYFERCTL_IDENTITY
	Identity string `env:"IDENTITY"`

	// Key is the master key used to transform requests and responses.
	// Env: CYFERCTL_KEY
	Key string `env:"KEY"`

	// RequestTimeout bounds every request.
	// Env: CYFERCTL_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"5s"`
}

// GetCtlConfig loads [CtlConfig] from CYFERCTL_* environment variables.
// Validation is left to [CtlConfig.Validate] so flags can fill gaps first.
func GetCtlConfig() (*CtlConfig, error) {
	cfg := &CtlConfig{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "CYFERCTL_"}); err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	return cfg, nil
}

// Validate reports whether the CLI has everything it needs to connect.
func (cfg *CtlConfig) Validate() error {
	switch {
	case cfg.Address == "":
		return fmt.Errorf("%w: address is required", ErrInvalidCtlConfigs)
	case cfg.Identity == "":
		return fmt.Errorf("%w: identity is required", ErrInvalidCtlConfigs)
	case cfg.Key == "":
		return fmt.Errorf("%w: key is required", ErrInvalidCtlConfigs)
	case cfg.RequestTimeout <= 0:
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalidCtlConfigs)
	}

	return nil
}
