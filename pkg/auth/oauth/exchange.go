// SPDX-FileCopyrightText: Copyright 2025 Restfire Authors
// SPDX-License-Identifier: Apache-2.0

package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/restfire/restfire/pkg/auth"
	"github.com/restfire/restfire/pkg/auth/tokenstore"
	"github.com/restfire/restfire/pkg/logger"
)

const (
	// defaultHTTPTimeout is the timeout for token endpoint requests
	defaultHTTPTimeout = 30 * time.Second

	// maxResponseBodySize is the maximum size for reading response bodies (1 MB)
	maxResponseBodySize = 1 << 20
)

// defaultHTTPClient is the default HTTP client used for token requests.
var defaultHTTPClient = &http.Client{
	Timeout: defaultHTTPTimeout,
}

// oAuthError represents an OAuth 2.0 error response as defined in RFC 6749 Section 5.2.
type oAuthError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// message returns the most descriptive text the error response carries.
func (e *oAuthError) message() string {
	if e.ErrorDescription != "" {
		return fmt.Sprintf("%s: %s", e.Error, e.ErrorDescription)
	}
	return e.Error
}

// parseOAuthError attempts to parse an OAuth error response from the given body.
func parseOAuthError(body []byte) *oAuthError {
	var oauthErr oAuthError
	if err := json.Unmarshal(body, &oauthErr); err != nil {
		return nil
	}
	if oauthErr.Error == "" {
		return nil
	}
	return &oauthErr
}

// tokenResponse is used to decode the token endpoint response per RFC 6749 Section 5.1.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	Scope        string `json:"scope"`
}

// exchangeToken POSTs the form to the token endpoint and parses the
// response into a cached token. All failures come back as *auth.Error;
// nothing here panics on network or protocol problems.
func (p *Provider) exchangeToken(ctx context.Context, tokenURL string, form url.Values) (*tokenstore.Token, *auth.Error) {
	encoded := form.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(encoded))
	if err != nil {
		return nil, auth.NewInvalidConfigurationError(
			fmt.Sprintf("failed to create token request for %s", tokenURL), err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Content-Length", strconv.Itoa(len(encoded)))
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, auth.NewNetworkError(
			fmt.Sprintf("token request to %s failed", tokenURL), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, auth.NewNetworkError("failed to read token response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, tokenEndpointError(resp.StatusCode, body)
	}

	return p.parseTokenResponse(body)
}

// tokenEndpointError turns a non-2xx token endpoint response into an
// authorization failure, preferring the RFC 6749 error body when present.
func tokenEndpointError(statusCode int, body []byte) *auth.Error {
	if oauthErr := parseOAuthError(body); oauthErr != nil {
		logger.Debugf("Token endpoint returned OAuth error %q (status %d)", oauthErr.Error, statusCode)
		return auth.NewOAuth2AuthorizationFailedError(oauthErr.message(), nil)
	}

	logger.Debugf("Token endpoint returned status %d", statusCode)
	return auth.NewOAuth2AuthorizationFailedError(
		fmt.Sprintf("token request failed with status %d: %s", statusCode, strings.TrimSpace(string(body))), nil)
}

// parseTokenResponse decodes a successful token endpoint response.
func (p *Provider) parseTokenResponse(body []byte) (*tokenstore.Token, *auth.Error) {
	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, auth.NewOAuth2AuthorizationFailedError("failed to parse token response", err)
	}
	if tr.AccessToken == "" {
		return nil, auth.NewOAuth2AuthorizationFailedError("server returned empty access_token", nil)
	}

	now := p.now()
	token := &tokenstore.Token{
		Token: oauth2.Token{
			AccessToken:  tr.AccessToken,
			TokenType:    tr.TokenType,
			RefreshToken: tr.RefreshToken,
		},
		Scopes:     strings.Fields(tr.Scope),
		ObtainedAt: now,
	}
	if tr.ExpiresIn > 0 {
		token.Expiry = now.Add(time.Duration(tr.ExpiresIn) * time.Second)
	}
	return token, nil
}
