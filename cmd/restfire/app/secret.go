// SPDX-FileCopyrightText: Copyright 2025 Restfire Authors
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSecretCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Inspect available secrets",
		Long:  "The secret command lists the secrets the configured provider exposes. Values are never printed.",
	}

	cmd.AddCommand(newSecretListCmd())

	return cmd
}

func newSecretListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the names of available secrets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			provider, err := secretsProvider()
			if err != nil {
				return err
			}
			descriptions, err := provider.ListSecrets(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(descriptions) == 0 {
				fmt.Fprintln(out, "No secrets found")
				return nil
			}
			for _, d := range descriptions {
				fmt.Fprintln(out, d.Key)
			}
			return nil
		},
	}
}
