// SPDX-FileCopyrightText: Copyright 2025 Restfire Authors
// SPDX-License-Identifier: Apache-2.0

// Package auth defines the authentication configuration and resolution
// types shared between the request orchestrator and the OAuth2 provider.
package auth

// Config is the closed set of authentication declarations a request can
// carry. Implementations are NoAuth, APIKey, Bearer, Basic,
// OAuth2ClientCredentials and OAuth2AuthorizationCode; consumption sites
// switch exhaustively over these.
type Config interface {
	isConfig()
}

// KeyLocation says where an API key is injected.
type KeyLocation string

const (
	// KeyLocationHeader injects the API key as a request header.
	KeyLocationHeader KeyLocation = "header"
	// KeyLocationQuery injects the API key as a query parameter.
	KeyLocationQuery KeyLocation = "query"
)

// NoAuth is the absence of authentication.
type NoAuth struct{}

// APIKey sends a static key under a caller-chosen header or query name.
// Key and Name participate in variable substitution.
type APIKey struct {
	Key      string
	Name     string
	Location KeyLocation
}

// Bearer sends a pre-obtained token in the Authorization header.
// Prefix defaults to "Bearer" when empty. Token participates in variable
// substitution.
type Bearer struct {
	Token  string
	Prefix string
}

// Basic sends RFC 7617 basic credentials. Username and Password
// participate in variable substitution.
type Basic struct {
	Username string
	Password string
}

// OAuth2ClientCredentials configures an RFC 6749 section 4.4 grant.
// Fields are assumed pre-resolved: the orchestrator does not apply
// variable substitution to OAuth2 configuration.
type OAuth2ClientCredentials struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scope        string
	ExtraParams  map[string]string
}

// OAuth2AuthorizationCode configures an RFC 6749 section 4.1 grant.
// The interactive authorization step is out of band; the provider reports
// Pending rather than driving a browser itself.
type OAuth2AuthorizationCode struct {
	AuthURL      string
	TokenURL     string
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scope        string
	ExtraParams  map[string]string
}

func (NoAuth) isConfig()                  {}
func (APIKey) isConfig()                  {}
func (Bearer) isConfig()                  {}
func (Basic) isConfig()                   {}
func (OAuth2ClientCredentials) isConfig() {}
func (OAuth2AuthorizationCode) isConfig() {}
