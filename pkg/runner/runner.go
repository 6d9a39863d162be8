// SPDX-FileCopyrightText: Copyright 2025 Restfire Authors
// SPDX-License-Identifier: Apache-2.0

// Package runner executes resolved requests: it applies the authentication
// resolution, sends the request, and collects the response.
package runner

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/restfire/restfire/pkg/auth"
	"github.com/restfire/restfire/pkg/logger"
	"github.com/restfire/restfire/pkg/request"
)

// maxResponseBodySize caps how much of a response body is read into memory.
const maxResponseBodySize = 10 * 1024 * 1024

// AuthProvider resolves an authentication configuration into something
// applicable to a request.
type AuthProvider interface {
	Resolve(ctx context.Context, cfg auth.Config) auth.Resolution
}

// Response is the outcome of one executed request.
type Response struct {
	StatusCode int
	Status     string
	Headers    http.Header
	Body       []byte
	Duration   time.Duration
	Attempts   int
}

// Runner executes resolved requests.
type Runner struct {
	client     *http.Client
	provider   AuthProvider
	maxRetries int
	retryDelay time.Duration
}

// Option configures a Runner.
type Option func(*Runner)

// WithRetries sets how many times a failed request is retried. Only network
// errors and 5xx responses are retried.
func WithRetries(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.maxRetries = n
		}
	}
}

// WithRetryDelay sets the initial delay between retries.
func WithRetryDelay(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.retryDelay = d
		}
	}
}

// New creates a Runner using the given HTTP client and auth provider.
func New(client *http.Client, provider AuthProvider, opts ...Option) *Runner {
	r := &Runner{
		client:     client,
		provider:   provider,
		retryDelay: time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes a resolved request. Unresolved variables do not block
// execution; they are logged and the text is sent verbatim.
func (r *Runner) Run(ctx context.Context, res request.ResolveResult) (*Response, error) {
	if !res.IsComplete {
		logger.Warnf("Sending request %q with unresolved variables: %s",
			res.Name, strings.Join(res.Unresolved, ", "))
	}

	req, err := r.buildRequest(ctx, res)
	if err != nil {
		return nil, err
	}

	return r.execute(ctx, req)
}

func (r *Runner) buildRequest(ctx context.Context, res request.ResolveResult) (*http.Request, error) {
	var body io.Reader
	if res.Body.Kind != request.BodyNone && res.Body.Content != "" {
		body = strings.NewReader(res.Body.Content)
	}

	req, err := http.NewRequestWithContext(ctx, res.Method, res.URL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request %q: %w", res.Name, err)
	}

	if contentType := res.Body.Kind.ContentType(); contentType != "" && body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	for _, h := range res.Headers {
		if h.Enabled {
			req.Header.Set(h.Key, h.Value)
		}
	}

	query := req.URL.Query()
	for _, p := range res.QueryParams {
		if p.Enabled {
			query.Set(p.Key, p.Value)
		}
	}

	switch resolution := r.provider.Resolve(ctx, res.Auth).(type) {
	case nil, auth.NoResolution:
	case auth.Header:
		req.Header.Set(resolution.Name, resolution.Value)
	case auth.QueryParam:
		query.Set(resolution.Name, resolution.Value)
	case auth.Pending:
		return nil, fmt.Errorf("request %q requires interactive authentication: %s",
			res.Name, resolution.Message)
	case auth.Failed:
		return nil, fmt.Errorf("authentication failed for request %q: %w", res.Name, resolution.Err)
	default:
		return nil, fmt.Errorf("unsupported auth resolution %T for request %q", resolution, res.Name)
	}

	req.URL.RawQuery = query.Encode()
	return req, nil
}

func (r *Runner) execute(ctx context.Context, req *http.Request) (*Response, error) {
	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = r.retryDelay
	expBackoff.MaxInterval = 60 * r.retryDelay
	expBackoff.Reset()

	attempts := 0
	start := time.Now()

	operation := func() (*Response, error) {
		attempts++
		resp, err := r.attempt(req)
		if err != nil {
			logger.Warnf("Request %s %s failed (attempt %d/%d): %v",
				req.Method, req.URL, attempts, r.maxRetries+1, err)
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError && attempts <= r.maxRetries {
			return nil, fmt.Errorf("server returned %s", resp.Status)
		}
		return resp, nil
	}

	resp, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(expBackoff),
		backoff.WithMaxTries(uint(r.maxRetries+1)), // #nosec G115 -- includes the initial attempt
		backoff.WithNotify(func(_ error, duration time.Duration) {
			logger.Debugf("Retrying %s %s after %v", req.Method, req.URL, duration)
		}),
	)
	if err != nil {
		return nil, err
	}

	resp.Duration = time.Since(start)
	resp.Attempts = attempts
	return resp, nil
}

func (r *Runner) attempt(req *http.Request) (*Response, error) {
	// Bodies built from strings are replayable across retries.
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		req.Body = body
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Headers:    resp.Header.Clone(),
		Body:       body,
	}, nil
}
