// SPDX-FileCopyrightText: Copyright 2025 Restfire Authors
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"strings"

	"github.com/restfire/restfire/pkg/variables"
	"github.com/restfire/restfire/pkg/variables/builtin"
)

// Result reports the outcome of resolving one input string.
type Result struct {
	// Resolved is the input with every resolvable reference substituted.
	// Unresolved references are left verbatim as {{name}}.
	Resolved string

	// ResolvedVariables lists each successful lookup in reference order.
	ResolvedVariables []variables.ResolvedVariable

	// Unresolved lists the names that could not be resolved, in reference
	// order. A name appearing twice unresolved is listed twice.
	Unresolved []string

	// IsComplete is true iff Unresolved is empty.
	IsComplete bool
}

// Resolver substitutes {{variable}} references in strings using a scoped
// resolution context plus a session cache for builtin values, so that
// repeated references to the same builtin within one pass yield one value.
//
// A Resolver is not safe for concurrent use: each logical resolution pass
// (ideally each in-flight request) should own its own instance constructed
// from a snapshot of the context.
type Resolver struct {
	ctx          variables.Context
	builtinCache map[string]string
}

// New returns a Resolver over the given context with an empty builtin cache.
func New(ctx variables.Context) *Resolver {
	return &Resolver{
		ctx:          ctx,
		builtinCache: make(map[string]string),
	}
}

// Context returns the resolution context this resolver reads from.
func (r *Resolver) Context() variables.Context {
	return r.ctx
}

// Resolve substitutes every resolvable reference in the input. Builtin
// values are served from the session cache, generating and caching on first
// use, so the same builtin name resolves identically throughout one pass.
func (r *Resolver) Resolve(input string) Result {
	return r.substitute(input, r.resolveVariable)
}

// Preview performs the same substitution as Resolve but generates a fresh
// value for every builtin occurrence, without reading or writing the session
// cache. It is intended for non-committing UI previews; two occurrences of
// the same builtin in one Preview call produce different values.
func (r *Resolver) Preview(input string) Result {
	return r.substitute(input, r.previewVariable)
}

// ClearBuiltinCache drops all cached builtin values. Call it before starting
// a new logical resolution pass so dynamic values like $timestamp regenerate.
func (r *Resolver) ClearBuiltinCache() {
	r.builtinCache = make(map[string]string)
}

// FindUnresolved returns the names in the input that would not resolve,
// deduplicated, in first-occurrence order. It has no caching side effects.
func (r *Resolver) FindUnresolved(input string) []string {
	var unresolved []string
	seen := make(map[string]struct{})
	for _, ref := range ParseReferences(input) {
		if _, ok := seen[ref.Name]; ok {
			continue
		}
		if !r.wouldResolve(ref) {
			unresolved = append(unresolved, ref.Name)
		}
		seen[ref.Name] = struct{}{}
	}
	return unresolved
}

// ExtractVariableNames returns every referenced name in the input,
// deduplicated, in first-occurrence order, without resolving anything.
func ExtractVariableNames(input string) []string {
	var names []string
	seen := make(map[string]struct{})
	for _, ref := range ParseReferences(input) {
		if _, ok := seen[ref.Name]; ok {
			continue
		}
		names = append(names, ref.Name)
		seen[ref.Name] = struct{}{}
	}
	return names
}

// substitute walks the parsed references left to right, splicing resolved
// values between the untouched spans of the input.
func (r *Resolver) substitute(input string, lookup func(string) (variables.ResolvedVariable, bool)) Result {
	refs := ParseReferences(input)
	if len(refs) == 0 {
		return Result{Resolved: input, IsComplete: true}
	}

	var out strings.Builder
	out.Grow(len(input))

	result := Result{}
	last := 0
	for _, ref := range refs {
		out.WriteString(input[last:ref.Start])

		if rv, ok := lookup(ref.Name); ok {
			out.WriteString(rv.Value)
			result.ResolvedVariables = append(result.ResolvedVariables, rv)
		} else {
			// Leave the original marker intact so the caller can see
			// exactly what is missing.
			out.WriteString(input[ref.Start:ref.End])
			result.Unresolved = append(result.Unresolved, ref.Name)
		}
		last = ref.End
	}
	out.WriteString(input[last:])

	result.Resolved = out.String()
	result.IsComplete = len(result.Unresolved) == 0
	return result
}

// resolveVariable looks up a single name. Builtin names consult the session
// cache first and fall back to the generator; an unrecognized $-name is a
// miss rather than a scope lookup. All other names delegate to the context.
func (r *Resolver) resolveVariable(name string) (variables.ResolvedVariable, bool) {
	if builtin.IsBuiltin(name) {
		if value, ok := r.builtinCache[name]; ok {
			return variables.ResolvedVariable{Name: name, Value: value, Scope: variables.ScopeBuiltIn}, true
		}
		value, ok := builtin.Generate(name)
		if !ok {
			return variables.ResolvedVariable{}, false
		}
		r.builtinCache[name] = value
		return variables.ResolvedVariable{Name: name, Value: value, Scope: variables.ScopeBuiltIn}, true
	}
	return r.ctx.Resolve(name)
}

// previewVariable resolves builtins with a fresh value per occurrence and
// never touches the session cache.
func (r *Resolver) previewVariable(name string) (variables.ResolvedVariable, bool) {
	if builtin.IsBuiltin(name) {
		value, ok := builtin.Generate(name)
		if !ok {
			return variables.ResolvedVariable{}, false
		}
		return variables.ResolvedVariable{Name: name, Value: value, Scope: variables.ScopeBuiltIn}, true
	}
	return r.ctx.Resolve(name)
}

// wouldResolve reports whether a reference would resolve, without
// generating or caching builtin values.
func (r *Resolver) wouldResolve(ref Reference) bool {
	if ref.Builtin {
		return builtin.Known(ref.Name)
	}
	_, ok := r.ctx.Resolve(ref.Name)
	return ok
}
