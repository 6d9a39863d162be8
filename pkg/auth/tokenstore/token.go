// SPDX-FileCopyrightText: Copyright 2025 Restfire Authors
// SPDX-License-Identifier: Apache-2.0

// Package tokenstore caches OAuth2 tokens per auth-config cache key and
// answers expiry and refresh-window queries over them.
package tokenstore

import (
	"time"

	"golang.org/x/oauth2"
)

// Token is a cached OAuth2 token. It embeds oauth2.Token for the wire
// fields (access token, type, refresh token, expiry) and adds the parsed
// scope list and the time the exchange succeeded. Tokens are replaced
// wholesale on refresh, never mutated; a zero Expiry means the token
// never expires. Tokens live only in process memory.
type Token struct {
	oauth2.Token

	Scopes     []string
	ObtainedAt time.Time
}

// AuthorizationHeader returns the value for the Authorization header,
// defaulting the token type to "Bearer" when the server omitted it.
func (t *Token) AuthorizationHeader() string {
	tokenType := t.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}
	return tokenType + " " + t.AccessToken
}

// expired reports whether the token is past its expiry at the given time.
// Tokens without an expiry never expire.
func (t *Token) expired(now time.Time) bool {
	if t.Expiry.IsZero() {
		return false
	}
	return !now.Before(t.Expiry)
}

// withinBuffer reports whether the token is expired or expires within the
// refresh buffer from now.
func (t *Token) withinBuffer(now time.Time, buffer time.Duration) bool {
	if t.Expiry.IsZero() {
		return false
	}
	return !now.Add(buffer).Before(t.Expiry)
}
