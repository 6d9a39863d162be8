// SPDX-FileCopyrightText: Copyright 2025 Restfire Authors
// SPDX-License-Identifier: Apache-2.0

// Package request defines the templated request model and the orchestrator
// that resolves every variable-bearing field before execution.
package request

import (
	"github.com/restfire/restfire/pkg/auth"
)

// BodyKind declares how a request body should be interpreted and which
// Content-Type it implies.
type BodyKind string

const (
	// BodyNone means the request carries no body.
	BodyNone BodyKind = "none"
	// BodyText is a plain text body.
	BodyText BodyKind = "text"
	// BodyJSON is a JSON body.
	BodyJSON BodyKind = "json"
	// BodyXML is an XML body.
	BodyXML BodyKind = "xml"
	// BodyForm is a form-urlencoded body.
	BodyForm BodyKind = "form"
)

// ContentType returns the Content-Type header value implied by the kind,
// or "" when none applies.
func (k BodyKind) ContentType() string {
	switch k {
	case BodyJSON:
		return "application/json"
	case BodyXML:
		return "application/xml"
	case BodyForm:
		return "application/x-www-form-urlencoded"
	case BodyText:
		return "text/plain"
	default:
		return ""
	}
}

// Param is one header or query parameter. A disabled param is kept in the
// definition but skipped at execution time.
type Param struct {
	Key     string
	Value   string
	Enabled bool
}

// Body is the request body with its declared kind.
type Body struct {
	Kind    BodyKind
	Content string
}

// Request is a templated request definition: any string field may contain
// {{variable}} references until it passes through ResolveRequest.
type Request struct {
	Name        string
	Method      string
	URL         string
	Headers     []Param
	QueryParams []Param
	Body        Body
	Auth        auth.Config
}
