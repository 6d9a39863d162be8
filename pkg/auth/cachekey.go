// SPDX-FileCopyrightText: Copyright 2025 Restfire Authors
// SPDX-License-Identifier: Apache-2.0

package auth

import "fmt"

// CacheKey derives the token-store key for an OAuth2 config. It is a pure
// function of flow kind, endpoint URL, client ID and scope; the client
// secret is deliberately excluded, so two configs that differ only in
// secret share one cached token. Non-OAuth2 configs have no key.
func CacheKey(cfg Config) string {
	switch c := cfg.(type) {
	case OAuth2ClientCredentials:
		return fmt.Sprintf("cc:%s:%s:%s", c.TokenURL, c.ClientID, c.Scope)
	case OAuth2AuthorizationCode:
		return fmt.Sprintf("ac:%s:%s:%s", c.AuthURL, c.ClientID, c.Scope)
	default:
		return ""
	}
}
