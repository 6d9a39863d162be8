// SPDX-FileCopyrightText: Copyright 2025 Restfire Authors
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/restfire/restfire/pkg/collection"
	"github.com/restfire/restfire/pkg/environment"
	"github.com/restfire/restfire/pkg/resolver"
	"github.com/restfire/restfire/pkg/secrets"
)

// maskedValue replaces secret values in human-readable output.
const maskedValue = "********"

func workspaceRepository(cmd *cobra.Command) (*environment.FileRepository, error) {
	workspace, err := cmd.Flags().GetString("workspace")
	if err != nil {
		return nil, err
	}
	return environment.NewFileRepository(workspace), nil
}

func secretsProvider() (secrets.Provider, error) {
	provider, err := secrets.CreateProvider(secrets.ProviderTypeFromEnv())
	if err != nil {
		return nil, fmt.Errorf("failed to create secrets provider: %w", err)
	}
	return provider, nil
}

// buildResolver assembles the variable resolution pipeline for one command
// invocation: workspace globals, the selected environment with its secrets,
// and the collection's own variables.
func buildResolver(
	ctx context.Context,
	cmd *cobra.Command,
	coll *collection.Collection,
	envName string,
) (*resolver.Resolver, error) {
	repo, err := workspaceRepository(cmd)
	if err != nil {
		return nil, err
	}
	provider, err := secretsProvider()
	if err != nil {
		return nil, err
	}

	varsCtx, err := environment.NewContextBuilder(repo, provider).
		WithCollection(coll.Variables).
		Build(ctx, envName)
	if err != nil {
		return nil, err
	}

	return resolver.New(varsCtx), nil
}
