// SPDX-FileCopyrightText: Copyright 2025 Restfire Authors
// SPDX-License-Identifier: Apache-2.0

package networking

import (
	"errors"
	"fmt"
)

// HTTPError reports a non-success HTTP response as an error. It is used by
// callers that treat 4xx/5xx statuses as failures (e.g. send --fail).
type HTTPError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// Message describes the failure, typically the status text or a short
	// preview of the response body.
	Message string

	// URL is the requested URL.
	URL string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d from %s: %s", e.StatusCode, e.URL, e.Message)
}

// NewHTTPError creates an HTTPError.
func NewHTTPError(statusCode int, url, message string) error {
	return &HTTPError{
		StatusCode: statusCode,
		URL:        url,
		Message:    message,
	}
}

// IsHTTPError reports whether err is an HTTPError with the given status
// code; statusCode 0 matches any HTTPError.
func IsHTTPError(err error, statusCode int) bool {
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		return false
	}
	return statusCode == 0 || httpErr.StatusCode == statusCode
}
