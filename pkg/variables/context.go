// SPDX-FileCopyrightText: Copyright 2025 Restfire Authors
// SPDX-License-Identifier: Apache-2.0

package variables

import "sort"

// Context is an immutable snapshot of the four non-builtin variable scopes
// used for one resolution pass. The secrets map is implicitly scoped to the
// environment named by environmentName; callers must rebuild the context if
// the active environment changes.
type Context struct {
	globals         Map
	collection      Map
	environment     Map
	environmentName string
	secrets         map[string]string
}

// NewContext returns an empty resolution context. Scopes are populated with
// the With* builders, each of which wholly replaces one scope.
func NewContext() Context {
	return Context{}
}

// WithGlobals replaces the globals scope.
func (c Context) WithGlobals(globals Map) Context {
	c.globals = globals
	return c
}

// WithCollection replaces the collection scope.
func (c Context) WithCollection(collection Map) Context {
	c.collection = collection
	return c
}

// WithEnvironment replaces the environment scope and records the
// environment's display name.
func (c Context) WithEnvironment(name string, environment Map) Context {
	c.environmentName = name
	c.environment = environment
	return c
}

// WithSecrets replaces the secrets scope. Secrets are a flat name-to-value
// mapping for the current environment; they have no enabled flag.
func (c Context) WithSecrets(secrets map[string]string) Context {
	c.secrets = secrets
	return c
}

// EnvironmentName returns the display name of the active environment,
// or "" when no environment is active.
func (c Context) EnvironmentName() string {
	return c.environmentName
}

// Resolve looks up a variable by name across all scopes in precedence
// order: secrets, then environment, then collection, then globals.
// A variable disabled in a scope is treated as absent in that scope only
// and lookup falls through to the next scope.
func (c Context) Resolve(name string) (ResolvedVariable, bool) {
	if value, ok := c.secrets[name]; ok {
		return ResolvedVariable{Name: name, Value: value, Scope: ScopeSecret, Secret: true}, true
	}
	if v, ok := c.environment[name]; ok && v.Enabled {
		return ResolvedVariable{Name: name, Value: v.Value, Scope: ScopeEnvironment, Secret: v.Secret}, true
	}
	if v, ok := c.collection[name]; ok && v.Enabled {
		return ResolvedVariable{Name: name, Value: v.Value, Scope: ScopeCollection, Secret: v.Secret}, true
	}
	if v, ok := c.globals[name]; ok && v.Enabled {
		return ResolvedVariable{Name: name, Value: v.Value, Scope: ScopeGlobal, Secret: v.Secret}, true
	}
	return ResolvedVariable{}, false
}

// ResolveValue is a convenience over Resolve that discards the scope.
func (c Context) ResolveValue(name string) (string, bool) {
	rv, ok := c.Resolve(name)
	if !ok {
		return "", false
	}
	return rv.Value, true
}

// AllVariableNames returns the union of the names in all four scopes,
// sorted and deduplicated. Disabled variables are included; this is meant
// for UI enumeration and completion, not for resolution.
func (c Context) AllVariableNames() []string {
	seen := make(map[string]struct{})
	for name := range c.secrets {
		seen[name] = struct{}{}
	}
	for name := range c.environment {
		seen[name] = struct{}{}
	}
	for name := range c.collection {
		seen[name] = struct{}{}
	}
	for name := range c.globals {
		seen[name] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
