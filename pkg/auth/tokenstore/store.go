// SPDX-FileCopyrightText: Copyright 2025 Restfire Authors
// SPDX-License-Identifier: Apache-2.0

package tokenstore

import (
	"sort"
	"sync"
	"time"
)

// DefaultRefreshBuffer is how long before expiry a token is considered to
// need a refresh.
const DefaultRefreshBuffer = 60 * time.Second

// State classifies a cached token for display purposes.
type State int

const (
	// StateNotAuthenticated means no token is cached under the key.
	StateNotAuthenticated State = iota
	// StateValid means the token is usable and outside the refresh window.
	StateValid
	// StateExpiring means the token is usable but inside the refresh window.
	StateExpiring
	// StateExpired means the token is past its expiry.
	StateExpired
)

// String returns the display name of the state.
func (s State) String() string {
	switch s {
	case StateNotAuthenticated:
		return "not authenticated"
	case StateValid:
		return "valid"
	case StateExpiring:
		return "expiring"
	case StateExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Status is the derived display state of a cached token. Remaining is the
// time until expiry and is meaningful for StateValid and StateExpiring
// (zero when the token never expires); CanRefresh is meaningful for
// StateExpiring and StateExpired.
type Status struct {
	State      State
	Remaining  time.Duration
	CanRefresh bool
}

// Store is a concurrency-safe cache from auth-config cache key to token.
// It is the only structure shared across concurrent resolution passes;
// readers and writers are serialized by a read-write lock. The store is
// never locked across a network call, so two concurrent exchanges for the
// same key may both run and the second Set wins.
type Store struct {
	mu            sync.RWMutex
	tokens        map[string]*Token
	refreshBuffer time.Duration

	// now is replaceable in tests.
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithRefreshBuffer overrides the window before expiry in which a token is
// reported as needing refresh.
func WithRefreshBuffer(d time.Duration) Option {
	return func(s *Store) {
		s.refreshBuffer = d
	}
}

// New creates an empty token store with the default refresh buffer.
func New(opts ...Option) *Store {
	s := &Store{
		tokens:        make(map[string]*Token),
		refreshBuffer: DefaultRefreshBuffer,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Set stores a token under the key, replacing any previous entry.
func (s *Store) Set(key string, token *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[key] = token
}

// Get returns the token under the key without any expiry filtering.
func (s *Store) Get(key string) (*Token, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	token, ok := s.tokens[key]
	return token, ok
}

// GetValid returns the token under the key only if it has not expired.
// Tokens without an expiry are always valid.
func (s *Store) GetValid(key string) (*Token, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	token, ok := s.tokens[key]
	if !ok || token.expired(s.now()) {
		return nil, false
	}
	return token, true
}

// NeedsRefresh reports whether the token under the key exists, is within
// the refresh buffer of expiry (or already expired), and carries a refresh
// token to do so with.
func (s *Store) NeedsRefresh(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	token, ok := s.tokens[key]
	if !ok {
		return false
	}
	return token.RefreshToken != "" && token.withinBuffer(s.now(), s.refreshBuffer)
}

// Status derives the display state of the token under the key, using the
// same refresh buffer as NeedsRefresh.
func (s *Store) Status(key string) Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	token, ok := s.tokens[key]
	if !ok {
		return Status{State: StateNotAuthenticated}
	}

	now := s.now()
	canRefresh := token.RefreshToken != ""

	if token.expired(now) {
		return Status{State: StateExpired, CanRefresh: canRefresh}
	}

	var remaining time.Duration
	if !token.Expiry.IsZero() {
		remaining = token.Expiry.Sub(now)
	}

	if token.withinBuffer(now, s.refreshBuffer) {
		return Status{State: StateExpiring, Remaining: remaining, CanRefresh: canRefresh}
	}
	return Status{State: StateValid, Remaining: remaining}
}

// Remove drops the token under the key, if any.
func (s *Store) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, key)
}

// Clear drops all cached tokens.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = make(map[string]*Token)
}

// Keys returns all cache keys, sorted.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.tokens))
	for key := range s.tokens {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Count returns the number of cached tokens.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tokens)
}
