// SPDX-FileCopyrightText: Copyright 2025 Restfire Authors
// SPDX-License-Identifier: Apache-2.0

package auth

// Resolution is the closed result set of resolving a Config into a concrete
// request mutation. Implementations are NoResolution, Header, QueryParam,
// Pending and Failed.
type Resolution interface {
	isResolution()
}

// NoResolution means the request needs no authentication applied.
type NoResolution struct{}

// Header injects a header with the given name and value.
type Header struct {
	Name  string
	Value string
}

// QueryParam injects a query parameter with the given name and value.
type QueryParam struct {
	Name  string
	Value string
}

// Pending means user interaction is required before the request can
// proceed, e.g. the browser redirect of an authorization-code flow.
// The caller is expected to initiate the out-of-band step.
type Pending struct {
	Message string
}

// Failed carries the authentication error. Network and protocol failures
// always surface through this variant rather than as panics.
type Failed struct {
	Err *Error
}

func (NoResolution) isResolution() {}
func (Header) isResolution()       {}
func (QueryParam) isResolution()   {}
func (Pending) isResolution()      {}
func (Failed) isResolution()       {}
