// SPDX-FileCopyrightText: Copyright 2025 Restfire Authors
// SPDX-License-Identifier: Apache-2.0

// Package app provides the entry point for the restfire command-line application.
package app

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/restfire/restfire/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:               "restfire",
	DisableAutoGenTag: true,
	Short:             "Restfire is a fast API testing client for the terminal",
	Long: `Restfire is a fast API testing client for the terminal.

Requests are defined in YAML collections with {{variable}} templates.
Variables resolve from secrets, the selected environment, the collection,
and workspace globals, in that order, with built-in $ generators for
dynamic values like UUIDs and timestamps. OAuth2 tokens are obtained and
cached automatically.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.Initialize()
	},
	Run: func(cmd *cobra.Command, _ []string) {
		// If no subcommand is provided, print help
		if err := cmd.Help(); err != nil {
			logger.Errorf("Error displaying help: %v", err)
		}
	},
}

// NewRootCmd creates a new root command for the restfire CLI.
func NewRootCmd() *cobra.Command {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode")
	rootCmd.PersistentFlags().String("workspace", ".", "Workspace directory containing globals.yaml and environments/")
	if err := viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		logger.Errorf("Error binding debug flag: %v", err)
	}

	rootCmd.AddCommand(newSendCmd())
	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newEnvCmd())
	rootCmd.AddCommand(newSecretCmd())

	return rootCmd
}
