// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"fmt"

	"github.com/MKhiriev/cyferkey/internal/adapter"
	"github.com/spf13/cobra"
)

type connectFunc func(cmd *cobra.Command) (adapter.SyncClient, error)

func newValidateCmd(connect connectFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that the identity and key match the running vault",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := connect(cmd)
			if err != nil {
				return err
			}
			if err := client.Validate(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}

func newPasswordsCmd(connect connectFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "passwords <key>",
		Short: "Print every password stored for a website",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := connect(cmd)
			if err != nil {
				return err
			}
			secrets, err := client.Passwords(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			for _, s := range secrets {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}
}

func newGenerateCmd(connect connectFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "generate <key>",
		Short: "Generate and store a new password for a website",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := connect(cmd)
			if err != nil {
				return err
			}
			secret, err := client.Generate(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), secret)
			return nil
		},
	}
}
