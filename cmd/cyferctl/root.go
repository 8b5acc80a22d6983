// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"fmt"
	"time"

	"github.com/MKhiriev/cyferkey/internal/adapter"
	"github.com/MKhiriev/cyferkey/internal/config"
	"github.com/MKhiriev/cyferkey/internal/logger"
	"github.com/spf13/cobra"
)

// clientFactory builds the sync client once the configuration is final.
type clientFactory func(cfg config.CtlConfig, logger *logger.Logger) (adapter.SyncClient, error)

type rootFlags struct {
	address  string
	identity string
	key      string
	timeout  time.Duration
	verbose  bool
}

func newRootCmd(newClient clientFactory) *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "cyferctl",
		Short: "Query a running cyferkey vault",
		Long: `Query a running cyferkey vault over its loopback sync channel.

Every flag can also be set with a CYFERCTL_* environment variable:
  CYFERCTL_ADDRESS, CYFERCTL_IDENTITY, CYFERCTL_KEY, CYFERCTL_REQUEST_TIMEOUT`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.address, "addr", "a", "", "sync server address (host:port)")
	pf.StringVarP(&flags.identity, "identity", "u", "", "vault account name")
	pf.StringVarP(&flags.key, "key", "k", "", "vault master key")
	pf.DurationVarP(&flags.timeout, "timeout", "t", 0, "request timeout")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "log requests")

	connect := func(cmd *cobra.Command) (adapter.SyncClient, error) {
		cfg, err := flags.config(cmd)
		if err != nil {
			return nil, err
		}

		log := logger.Nop()
		if flags.verbose {
			log = logger.NewLogger("cyferctl").WithLevel("debug")
		}
		return newClient(*cfg, log)
	}

	root.AddCommand(
		newValidateCmd(connect),
		newPasswordsCmd(connect),
		newGenerateCmd(connect),
	)

	return root
}

// config loads the environment and lets explicitly set flags win.
func (f *rootFlags) config(cmd *cobra.Command) (*config.CtlConfig, error) {
	cfg, err := config.GetCtlConfig()
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("addr") {
		cfg.Address = f.address
	}
	if changed("identity") {
		cfg.Identity = f.identity
	}
	if changed("key") {
		cfg.Key = f.key
	}
	if changed("timeout") {
		cfg.RequestTimeout = f.timeout
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w (see cyferctl --help)", err)
	}
	return cfg, nil
}
