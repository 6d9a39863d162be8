// SPDX-FileCopyrightText: Copyright 2025 Restfire Authors
// SPDX-License-Identifier: Apache-2.0

// Package oauth resolves authentication declarations into concrete header
// or query-parameter injections. For OAuth2 grants it consults the token
// store and performs RFC 6749 token exchanges on miss or expiry.
package oauth

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/url"
	"time"

	"github.com/restfire/restfire/pkg/auth"
	"github.com/restfire/restfire/pkg/auth/tokenstore"
	"github.com/restfire/restfire/pkg/logger"
)

// authorizationHeader is the header name all token-based resolutions use.
const authorizationHeader = "Authorization"

// Provider resolves auth configs. It shares one token store across
// resolution passes; the store is only touched before and after a network
// exchange, never across one, so two concurrent resolutions for the same
// cache key may both exchange and the second store wins. That race is
// accepted: each caller still ends up with a usable token.
type Provider struct {
	store  *tokenstore.Store
	client *http.Client

	// now is replaceable in tests.
	now func() time.Time
}

// Option configures a Provider.
type Option func(*Provider)

// WithHTTPClient overrides the HTTP client used for token exchanges.
// Cancellation and timeouts are the client's responsibility.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Provider) {
		p.client = client
	}
}

// NewProvider creates a Provider over the given token store.
func NewProvider(store *tokenstore.Store, opts ...Option) *Provider {
	p := &Provider{
		store:  store,
		client: defaultHTTPClient,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Resolve converts an auth config into a request mutation. It may perform
// network I/O for OAuth2 grants; failures are reported through the Failed
// variant rather than panics or returned errors.
func (p *Provider) Resolve(ctx context.Context, cfg auth.Config) auth.Resolution {
	switch c := cfg.(type) {
	case nil, auth.NoAuth:
		return auth.NoResolution{}

	case auth.Bearer:
		prefix := c.Prefix
		if prefix == "" {
			prefix = "Bearer"
		}
		return auth.Header{Name: authorizationHeader, Value: prefix + " " + c.Token}

	case auth.Basic:
		credentials := base64.StdEncoding.EncodeToString([]byte(c.Username + ":" + c.Password))
		return auth.Header{Name: authorizationHeader, Value: "Basic " + credentials}

	case auth.APIKey:
		if c.Location == auth.KeyLocationQuery {
			return auth.QueryParam{Name: c.Name, Value: c.Key}
		}
		return auth.Header{Name: c.Name, Value: c.Key}

	case auth.OAuth2ClientCredentials:
		return p.resolveClientCredentials(ctx, c)

	case auth.OAuth2AuthorizationCode:
		// The browser redirect and callback capture happen out of band;
		// signal the caller to initiate them instead of blocking here.
		return auth.Pending{
			Message: "authorization required: complete the browser sign-in for " + c.AuthURL,
		}

	default:
		return auth.Failed{Err: auth.NewInvalidConfigurationError("unsupported auth configuration", nil)}
	}
}

// resolveClientCredentials serves a client-credentials grant from the cache
// when possible and exchanges otherwise.
func (p *Provider) resolveClientCredentials(ctx context.Context, cfg auth.OAuth2ClientCredentials) auth.Resolution {
	if cfg.TokenURL == "" {
		return auth.Failed{Err: auth.NewInvalidConfigurationError("token URL is required", nil)}
	}
	if cfg.ClientID == "" {
		return auth.Failed{Err: auth.NewInvalidConfigurationError("client ID is required", nil)}
	}

	key := auth.CacheKey(cfg)
	if token, ok := p.store.GetValid(key); ok {
		logger.Debugw("Using cached OAuth2 token", "cache_key", key)
		return auth.Header{Name: authorizationHeader, Value: token.AuthorizationHeader()}
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", cfg.ClientID)
	form.Set("client_secret", cfg.ClientSecret)
	if cfg.Scope != "" {
		form.Set("scope", cfg.Scope)
	}
	for name, value := range cfg.ExtraParams {
		form.Set(name, value)
	}

	token, authErr := p.exchangeToken(ctx, cfg.TokenURL, form)
	if authErr != nil {
		return auth.Failed{Err: authErr}
	}

	p.store.Set(key, token)
	logger.Debugw("Obtained OAuth2 token via client credentials",
		"token_url", cfg.TokenURL, "client_id", cfg.ClientID, "scopes", token.Scopes)
	return auth.Header{Name: authorizationHeader, Value: token.AuthorizationHeader()}
}

// RefreshToken exchanges a refresh token for a fresh access token against
// the config's token endpoint, stores the result under the config's cache
// key, and returns it. A failed exchange is reported as a refresh failure.
func (p *Provider) RefreshToken(ctx context.Context, cfg auth.Config, refreshToken string) (*tokenstore.Token, error) {
	tokenURL, clientID, clientSecret, scope := refreshParameters(cfg)
	if tokenURL == "" {
		return nil, auth.NewInvalidConfigurationError("auth configuration has no token URL to refresh against", nil)
	}
	if refreshToken == "" {
		return nil, auth.NewRefreshFailedError("no refresh token available", nil)
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	form.Set("client_id", clientID)
	form.Set("client_secret", clientSecret)
	if scope != "" {
		form.Set("scope", scope)
	}

	token, authErr := p.exchangeToken(ctx, tokenURL, form)
	if authErr != nil {
		return nil, auth.NewRefreshFailedError("token refresh failed", authErr)
	}

	// A rotated-out refresh token would strand us; keep the old one when
	// the server returns none.
	if token.RefreshToken == "" {
		token.RefreshToken = refreshToken
	}

	p.store.Set(auth.CacheKey(cfg), token)
	logger.Debugw("Refreshed OAuth2 token", "token_url", tokenURL, "client_id", clientID)
	return token, nil
}

// RevokeToken is a no-op success: revocation endpoints are provider
// specific and not implemented.
func (p *Provider) RevokeToken(_ context.Context, _ auth.Config, _ string) error {
	return nil
}

// CachedToken returns the raw cached token for the config, without expiry
// filtering.
func (p *Provider) CachedToken(cfg auth.Config) (*tokenstore.Token, bool) {
	return p.store.Get(auth.CacheKey(cfg))
}

// ClearCachedToken evicts the cached token for the config, if any.
func (p *Provider) ClearCachedToken(cfg auth.Config) {
	p.store.Remove(auth.CacheKey(cfg))
}

// refreshParameters extracts the endpoint and client credentials a refresh
// exchange needs from the OAuth2 config variants.
func refreshParameters(cfg auth.Config) (tokenURL, clientID, clientSecret, scope string) {
	switch c := cfg.(type) {
	case auth.OAuth2ClientCredentials:
		return c.TokenURL, c.ClientID, c.ClientSecret, c.Scope
	case auth.OAuth2AuthorizationCode:
		return c.TokenURL, c.ClientID, c.ClientSecret, c.Scope
	default:
		return "", "", "", ""
	}
}
