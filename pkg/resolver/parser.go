// SPDX-FileCopyrightText: Copyright 2025 Restfire Authors
// SPDX-License-Identifier: Apache-2.0

// Package resolver implements {{variable}} reference parsing and
// substitution against a scoped resolution context.
package resolver

import (
	"strings"

	"github.com/restfire/restfire/pkg/variables/builtin"
)

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// Reference is one {{name}} occurrence in an input string. Start and End
// are the byte offsets of the full marker including both delimiters, so
// input[Start:End] reproduces the original text exactly. References are
// transient parse artifacts and are never persisted.
type Reference struct {
	Name    string
	Start   int
	End     int
	Builtin bool
}

// ParseReferences scans the input for {{name}} markers and returns them in
// left-to-right order of their opening delimiter, non-overlapping.
// Unterminated markers and markers with empty or brace-containing names are
// treated as literal text rather than reported. Names are trimmed of
// surrounding whitespace; a name starting with $ is tagged builtin.
func ParseReferences(input string) []Reference {
	var refs []Reference

	i := 0
	for {
		start := strings.Index(input[i:], openDelim)
		if start < 0 {
			break
		}
		start += i

		end := strings.Index(input[start+len(openDelim):], closeDelim)
		if end < 0 {
			// Unterminated marker; the rest of the input is literal text.
			break
		}
		end += start + len(openDelim)

		name := strings.TrimSpace(input[start+len(openDelim) : end])
		if name == "" || strings.ContainsAny(name, "{}") {
			// Not a usable name. Step past one byte so nested openers like
			// "{{{{id}}" still find the inner reference.
			i = start + 1
			continue
		}

		refs = append(refs, Reference{
			Name:    name,
			Start:   start,
			End:     end + len(closeDelim),
			Builtin: builtin.IsBuiltin(name),
		})
		i = end + len(closeDelim)
	}

	return refs
}
