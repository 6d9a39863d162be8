// SPDX-FileCopyrightText: Copyright 2025 Restfire Authors
// SPDX-License-Identifier: Apache-2.0

// Package environment loads named variable environments and assembles the
// resolution context for a request pass.
package environment

import (
	"context"
	"errors"

	"github.com/restfire/restfire/pkg/variables"
)

// Environment is a named set of variables, e.g. "development" or "production".
type Environment struct {
	Name      string        `yaml:"name"`
	Variables variables.Map `yaml:"variables"`
}

// ErrNotFound is returned when a named environment does not exist in the
// workspace.
var ErrNotFound = errors.New("environment not found")

// Repository loads environments from a workspace. Implementations live at
// the persistence layer; the resolution engine only consumes this interface.
type Repository interface {
	// Load returns the named environment, or an error wrapping ErrNotFound.
	Load(ctx context.Context, name string) (*Environment, error)

	// List returns the names of all available environments, sorted.
	List(ctx context.Context) ([]string, error)

	// LoadGlobals returns the workspace-level global variables. A missing
	// globals file is an empty map, not an error.
	LoadGlobals(ctx context.Context) (variables.Map, error)
}
