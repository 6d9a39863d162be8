// SPDX-FileCopyrightText: Copyright 2025 Restfire Authors
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/restfire/restfire/pkg/variables"
)

func newEnvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Inspect workspace environments",
	}

	cmd.AddCommand(newEnvListCmd())
	cmd.AddCommand(newEnvShowCmd())

	return cmd
}

func newEnvListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the environments in the workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := workspaceRepository(cmd)
			if err != nil {
				return err
			}
			names, err := repo.List(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintln(out, "No environments found")
				return nil
			}
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
}

func newEnvShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show the variables of an environment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := workspaceRepository(cmd)
			if err != nil {
				return err
			}
			env, err := repo.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printVariables(cmd, env.Variables)
			return nil
		},
	}
}

func printVariables(cmd *cobra.Command, vars variables.Map) {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	out := cmd.OutOrStdout()
	for _, name := range names {
		v := vars[name]
		value := v.Value
		if v.Secret {
			value = maskedValue
		}
		state := ""
		if !v.Enabled {
			state = " (disabled)"
		}
		fmt.Fprintf(out, "%s = %s%s\n", name, value, state)
	}
}
