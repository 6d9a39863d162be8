// SPDX-FileCopyrightText: Copyright 2025 Restfire Authors
// SPDX-License-Identifier: Apache-2.0

package environment

import (
	"context"
	"errors"
	"fmt"

	"github.com/restfire/restfire/pkg/logger"
	"github.com/restfire/restfire/pkg/secrets"
	"github.com/restfire/restfire/pkg/variables"
)

// ContextBuilder assembles an immutable variables.Context snapshot for one
// resolution pass from a repository, an optional collection scope, and a
// secrets provider.
type ContextBuilder struct {
	repo            Repository
	secretsProvider secrets.Provider
	collection      variables.Map
}

// NewContextBuilder creates a builder over the repository and secrets
// provider. A nil secrets provider means the secrets scope stays empty.
func NewContextBuilder(repo Repository, secretsProvider secrets.Provider) *ContextBuilder {
	return &ContextBuilder{repo: repo, secretsProvider: secretsProvider}
}

// WithCollection sets the collection-level variables included in built
// contexts.
func (b *ContextBuilder) WithCollection(collection variables.Map) *ContextBuilder {
	b.collection = collection
	return b
}

// Build snapshots all four scopes into a context. envName may be empty,
// leaving the environment and secrets scopes empty. A secrets provider
// failure is degraded to an empty secrets scope with a warning; resolution
// proceeds without secrets rather than failing the pass.
func (b *ContextBuilder) Build(ctx context.Context, envName string) (variables.Context, error) {
	globals, err := b.repo.LoadGlobals(ctx)
	if err != nil {
		return variables.Context{}, fmt.Errorf("failed to load globals: %w", err)
	}

	vctx := variables.NewContext().
		WithGlobals(globals).
		WithCollection(b.collection)

	if envName == "" {
		return vctx, nil
	}

	env, err := b.repo.Load(ctx, envName)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return variables.Context{}, err
		}
		return variables.Context{}, fmt.Errorf("failed to load environment %s: %w", envName, err)
	}
	vctx = vctx.WithEnvironment(env.Name, env.Variables)

	if b.secretsProvider != nil {
		values, err := secrets.LoadAll(ctx, b.secretsProvider)
		if err != nil {
			logger.Warnf("Failed to load secrets, continuing without them: %v", err)
			values = map[string]string{}
		}
		vctx = vctx.WithSecrets(values)
	}

	return vctx, nil
}
