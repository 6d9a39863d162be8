// SPDX-FileCopyrightText: Copyright 2025 Restfire Authors
// SPDX-License-Identifier: Apache-2.0

package request

import (
	"sort"

	"github.com/restfire/restfire/pkg/auth"
	"github.com/restfire/restfire/pkg/resolver"
)

// ResolveResult is the outcome of resolving every field of a request.
type ResolveResult struct {
	// Request is the fully substituted request, ready for auth resolution
	// and execution.
	Request

	// URLResult is the detailed resolution of the URL field, kept separate
	// because callers typically display it.
	URLResult resolver.Result

	// Unresolved is the union of unresolved names across all fields,
	// deduplicated and sorted.
	Unresolved []string

	// IsComplete is true iff no field had an unresolved reference.
	IsComplete bool
}

// ResolveRequest substitutes variables in every resolvable field of the
// request: URL, header keys and values, query keys and values, body
// content, and the string-bearing auth variants. The resolver's builtin
// cache is cleared first, so every builtin referenced anywhere in the
// request (auth fields included) shares one generated value for this pass.
// No network I/O happens here; the auth config is prepared for the auth
// resolver, not resolved to a wire-level header.
func ResolveRequest(r *resolver.Resolver, req Request) ResolveResult {
	r.ClearBuiltinCache()

	result := ResolveResult{Request: req}
	var unresolved []string

	collect := func(input string) string {
		res := r.Resolve(input)
		unresolved = append(unresolved, res.Unresolved...)
		return res.Resolved
	}

	result.URLResult = r.Resolve(req.URL)
	unresolved = append(unresolved, result.URLResult.Unresolved...)
	result.Request.URL = result.URLResult.Resolved

	result.Request.Headers = resolveParams(req.Headers, collect)
	result.Request.QueryParams = resolveParams(req.QueryParams, collect)

	if req.Body.Content != "" {
		result.Request.Body = Body{
			Kind:    req.Body.Kind,
			Content: collect(req.Body.Content),
		}
	}

	result.Request.Auth = resolveAuthConfig(req.Auth, collect)

	result.Unresolved = dedupeSorted(unresolved)
	result.IsComplete = len(result.Unresolved) == 0
	return result
}

// resolveParams substitutes key and value of every param independently,
// preserving the enabled flag unchanged.
func resolveParams(params []Param, collect func(string) string) []Param {
	if params == nil {
		return nil
	}
	resolved := make([]Param, len(params))
	for i, p := range params {
		resolved[i] = Param{
			Key:     collect(p.Key),
			Value:   collect(p.Value),
			Enabled: p.Enabled,
		}
	}
	return resolved
}

// resolveAuthConfig substitutes the string-bearing auth variants. OAuth2
// configuration deliberately passes through untouched: those fields are
// treated as static, unlike Bearer/Basic/ApiKey.
func resolveAuthConfig(cfg auth.Config, collect func(string) string) auth.Config {
	switch c := cfg.(type) {
	case auth.APIKey:
		c.Key = collect(c.Key)
		c.Name = collect(c.Name)
		return c
	case auth.Bearer:
		c.Token = collect(c.Token)
		return c
	case auth.Basic:
		c.Username = collect(c.Username)
		c.Password = collect(c.Password)
		return c
	default:
		return cfg
	}
}

func dedupeSorted(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(names))
	unique := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		unique = append(unique, name)
	}
	sort.Strings(unique)
	return unique
}
