// SPDX-FileCopyrightText: Copyright 2025 Restfire Authors
// SPDX-License-Identifier: Apache-2.0

// Package variables contains the value types and the scoped resolution
// context used during request variable substitution.
package variables

// Variable is a single named value in one of the variable scopes.
// A disabled variable is excluded from resolution but remains stored,
// so toggling it back on restores the previous value.
type Variable struct {
	Value   string `yaml:"value"`
	Enabled bool   `yaml:"enabled"`
	Secret  bool   `yaml:"secret,omitempty"`
}

// Map is a flat name-to-variable mapping for one scope.
// Lookup is by name only; insertion order has no effect on resolution.
type Map map[string]Variable

// NewVariable returns an enabled, non-secret variable with the given value.
func NewVariable(value string) Variable {
	return Variable{Value: value, Enabled: true}
}

// Scope identifies where a variable value was found during resolution.
// It determines precedence: secrets win over environment, environment over
// collection, collection over globals. Builtins bypass scope lookup entirely.
type Scope int

const (
	// ScopeBuiltIn marks a value produced by a builtin generator.
	ScopeBuiltIn Scope = iota
	// ScopeSecret marks a value from the active environment's secrets.
	ScopeSecret
	// ScopeEnvironment marks a value from the active environment.
	ScopeEnvironment
	// ScopeCollection marks a value from collection-level variables.
	ScopeCollection
	// ScopeGlobal marks a value from workspace globals.
	ScopeGlobal
)

// String returns the display name of the scope.
func (s Scope) String() string {
	switch s {
	case ScopeBuiltIn:
		return "builtin"
	case ScopeSecret:
		return "secret"
	case ScopeEnvironment:
		return "environment"
	case ScopeCollection:
		return "collection"
	case ScopeGlobal:
		return "global"
	default:
		return "unknown"
	}
}

// ResolvedVariable records a successful lookup: the name, the value it
// resolved to, and the scope that supplied it. It is never constructed
// for a miss.
type ResolvedVariable struct {
	Name  string
	Value string
	Scope Scope
	// Secret is set when the value came from the secrets scope or from a
	// variable flagged secret; display layers mask such values.
	Secret bool
}
