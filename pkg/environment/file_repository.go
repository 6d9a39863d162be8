// SPDX-FileCopyrightText: Copyright 2025 Restfire Authors
// SPDX-License-Identifier: Apache-2.0

package environment

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/restfire/restfire/pkg/variables"
)

const (
	environmentsDir = "environments"
	globalsFile     = "globals.yaml"
)

// FileRepository reads environments from YAML files under
// <workspace>/environments/<name>.yaml and globals from
// <workspace>/globals.yaml.
type FileRepository struct {
	workspace string
}

// NewFileRepository creates a repository over the given workspace directory.
func NewFileRepository(workspace string) *FileRepository {
	return &FileRepository{workspace: workspace}
}

// Load reads the named environment file.
func (r *FileRepository) Load(_ context.Context, name string) (*Environment, error) {
	if name == "" {
		return nil, fmt.Errorf("environment name cannot be empty")
	}

	path := filepath.Join(r.workspace, environmentsDir, name+".yaml")
	data, err := os.ReadFile(path) // #nosec G304 - path is derived from the user's own workspace
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to read environment %s: %w", name, err)
	}

	var env Environment
	if err := yaml.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to parse environment %s: %w", name, err)
	}
	if env.Name == "" {
		env.Name = name
	}
	if env.Variables == nil {
		env.Variables = variables.Map{}
	}
	return &env, nil
}

// List enumerates the environment files in the workspace, sorted by name.
func (r *FileRepository) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(r.workspace, environmentsDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list environments: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names, nil
}

// LoadGlobals reads the workspace globals file; a missing file yields an
// empty map.
func (r *FileRepository) LoadGlobals(_ context.Context) (variables.Map, error) {
	data, err := os.ReadFile(filepath.Join(r.workspace, globalsFile)) // #nosec G304
	if err != nil {
		if os.IsNotExist(err) {
			return variables.Map{}, nil
		}
		return nil, fmt.Errorf("failed to read globals: %w", err)
	}

	var globals struct {
		Variables variables.Map `yaml:"variables"`
	}
	if err := yaml.Unmarshal(data, &globals); err != nil {
		return nil, fmt.Errorf("failed to parse globals: %w", err)
	}
	if globals.Variables == nil {
		globals.Variables = variables.Map{}
	}
	return globals.Variables, nil
}
