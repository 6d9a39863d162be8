// SPDX-FileCopyrightText: Copyright 2025 Restfire Authors
// SPDX-License-Identifier: Apache-2.0

package auth

import "fmt"

// Error types
const (
	// ErrTokenExpiredNoRefresh is returned when a cached token has expired
	// and carries no refresh token
	ErrTokenExpiredNoRefresh = "token_expired_no_refresh"

	// ErrRefreshFailed is returned when a refresh-token exchange fails
	ErrRefreshFailed = "refresh_failed"

	// ErrOAuth2AuthorizationFailed is returned when the authorization server
	// rejects a token request
	ErrOAuth2AuthorizationFailed = "oauth2_authorization_failed"

	// ErrInvalidConfiguration is returned when an auth config is missing
	// required fields
	ErrInvalidConfiguration = "invalid_configuration"

	// ErrUserCancelled is returned when the user aborts an interactive flow
	ErrUserCancelled = "user_cancelled"

	// ErrCallbackServer is returned when the local callback capture fails
	ErrCallbackServer = "callback_server"

	// ErrNetwork is returned when the token endpoint cannot be reached
	ErrNetwork = "network"
)

// Error represents an authentication error
type Error struct {
	// Type is the error type
	Type string

	// Message is the error message
	Message string

	// Cause is the underlying error
	Cause error
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new error
func NewError(errorType, message string, cause error) *Error {
	return &Error{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// NewTokenExpiredNoRefreshError creates a new token expired error
func NewTokenExpiredNoRefreshError(message string, cause error) *Error {
	return NewError(ErrTokenExpiredNoRefresh, message, cause)
}

// NewRefreshFailedError creates a new refresh failed error
func NewRefreshFailedError(message string, cause error) *Error {
	return NewError(ErrRefreshFailed, message, cause)
}

// NewOAuth2AuthorizationFailedError creates a new authorization failed error
func NewOAuth2AuthorizationFailedError(message string, cause error) *Error {
	return NewError(ErrOAuth2AuthorizationFailed, message, cause)
}

// NewInvalidConfigurationError creates a new invalid configuration error
func NewInvalidConfigurationError(message string, cause error) *Error {
	return NewError(ErrInvalidConfiguration, message, cause)
}

// NewUserCancelledError creates a new user cancelled error
func NewUserCancelledError(message string, cause error) *Error {
	return NewError(ErrUserCancelled, message, cause)
}

// NewCallbackServerError creates a new callback server error
func NewCallbackServerError(message string, cause error) *Error {
	return NewError(ErrCallbackServer, message, cause)
}

// NewNetworkError creates a new network error
func NewNetworkError(message string, cause error) *Error {
	return NewError(ErrNetwork, message, cause)
}

// IsTokenExpiredNoRefresh checks if the error is a token expired error
func IsTokenExpiredNoRefresh(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Type == ErrTokenExpiredNoRefresh
}

// IsRefreshFailed checks if the error is a refresh failed error
func IsRefreshFailed(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Type == ErrRefreshFailed
}

// IsOAuth2AuthorizationFailed checks if the error is an authorization failed error
func IsOAuth2AuthorizationFailed(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Type == ErrOAuth2AuthorizationFailed
}

// IsInvalidConfiguration checks if the error is an invalid configuration error
func IsInvalidConfiguration(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Type == ErrInvalidConfiguration
}

// IsUserCancelled checks if the error is a user cancelled error
func IsUserCancelled(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Type == ErrUserCancelled
}

// IsCallbackServer checks if the error is a callback server error
func IsCallbackServer(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Type == ErrCallbackServer
}

// IsNetwork checks if the error is a network error
func IsNetwork(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Type == ErrNetwork
}
