// SPDX-FileCopyrightText: Copyright 2025 Restfire Authors
// SPDX-License-Identifier: Apache-2.0

// Package main is the entry point for the restfire CLI.
package main

import (
	"os"

	"github.com/restfire/restfire/cmd/restfire/app"
)

func main() {
	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
