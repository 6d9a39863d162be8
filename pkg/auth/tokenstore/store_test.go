// SPDX-FileCopyrightText: Copyright 2025 Restfire Authors
// SPDX-License-Identifier: Apache-2.0

package tokenstore

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestStore(opts ...Option) *Store {
	s := New(opts...)
	s.now = func() time.Time { return testNow }
	return s
}

func makeToken(expiry time.Time, refreshToken string) *Token {
	return &Token{
		Token: oauth2.Token{
			AccessToken:  "access-token",
			TokenType:    "Bearer",
			RefreshToken: refreshToken,
			Expiry:       expiry,
		},
		Scopes:     []string{"read", "write"},
		ObtainedAt: testNow.Add(-time.Minute),
	}
}

func TestStore_SetGet(t *testing.T) {
	t.Parallel()

	s := newTestStore()
	token := makeToken(testNow.Add(time.Hour), "")

	s.Set("key", token)

	got, ok := s.Get("key")
	require.True(t, ok)
	assert.Same(t, token, got)

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestStore_Set_Replaces(t *testing.T) {
	t.Parallel()

	s := newTestStore()
	s.Set("key", makeToken(testNow.Add(time.Hour), ""))

	replacement := makeToken(testNow.Add(2*time.Hour), "refresh")
	s.Set("key", replacement)

	got, ok := s.Get("key")
	require.True(t, ok)
	assert.Same(t, replacement, got)
	assert.Equal(t, 1, s.Count())
}

func TestStore_GetValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		expiry time.Time
		want   bool
	}{
		{"unexpired token is valid", testNow.Add(time.Hour), true},
		{"expired token is filtered", testNow.Add(-time.Second), false},
		{"expiry exactly now is filtered", testNow, false},
		{"no expiry is always valid", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newTestStore()
			s.Set("key", makeToken(tt.expiry, ""))

			_, ok := s.GetValid("key")
			assert.Equal(t, tt.want, ok)

			// Get never filters.
			_, ok = s.Get("key")
			assert.True(t, ok)
		})
	}
}

func TestStore_NeedsRefresh(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		expiry       time.Time
		refreshToken string
		want         bool
	}{
		{"missing token", time.Time{}, "", false},
		{"fresh token with refresh", testNow.Add(time.Hour), "rt", false},
		{"inside buffer with refresh", testNow.Add(30 * time.Second), "rt", true},
		{"inside buffer without refresh", testNow.Add(30 * time.Second), "", false},
		{"expired with refresh", testNow.Add(-time.Minute), "rt", true},
		{"expired without refresh", testNow.Add(-time.Minute), "", false},
		{"no expiry with refresh", time.Time{}, "rt", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newTestStore()
			if tt.name != "missing token" {
				s.Set("key", makeToken(tt.expiry, tt.refreshToken))
			}
			assert.Equal(t, tt.want, s.NeedsRefresh("key"))
		})
	}
}

func TestStore_Status(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		expiry         time.Time
		refreshToken   string
		wantState      State
		wantCanRefresh bool
		wantRemaining  time.Duration
	}{
		{
			name:      "missing token",
			wantState: StateNotAuthenticated,
		},
		{
			name:          "valid outside the buffer",
			expiry:        testNow.Add(time.Hour),
			wantState:     StateValid,
			wantRemaining: time.Hour,
		},
		{
			name:      "valid with no expiry",
			wantState: StateValid,
			expiry:    time.Time{},
		},
		{
			name:           "expiring inside the buffer",
			expiry:         testNow.Add(30 * time.Second),
			refreshToken:   "rt",
			wantState:      StateExpiring,
			wantCanRefresh: true,
			wantRemaining:  30 * time.Second,
		},
		{
			name:      "expiring without refresh token",
			expiry:    testNow.Add(30 * time.Second),
			wantState: StateExpiring,
			// CanRefresh false: nothing to refresh with.
			wantRemaining: 30 * time.Second,
		},
		{
			name:           "expired with refresh token",
			expiry:         testNow.Add(-time.Minute),
			refreshToken:   "rt",
			wantState:      StateExpired,
			wantCanRefresh: true,
		},
		{
			name:      "expired exactly at now",
			expiry:    testNow,
			wantState: StateExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newTestStore()
			if tt.wantState != StateNotAuthenticated {
				s.Set("key", makeToken(tt.expiry, tt.refreshToken))
			}

			status := s.Status("key")
			assert.Equal(t, tt.wantState, status.State)
			assert.Equal(t, tt.wantCanRefresh, status.CanRefresh)
			assert.Equal(t, tt.wantRemaining, status.Remaining)
		})
	}
}

func TestStore_CustomRefreshBuffer(t *testing.T) {
	t.Parallel()

	s := newTestStore(WithRefreshBuffer(5 * time.Minute))
	s.Set("key", makeToken(testNow.Add(4*time.Minute), "rt"))

	assert.True(t, s.NeedsRefresh("key"))
	assert.Equal(t, StateExpiring, s.Status("key").State)
}

func TestStore_RemoveClearKeysCount(t *testing.T) {
	t.Parallel()

	s := newTestStore()
	s.Set("b", makeToken(testNow.Add(time.Hour), ""))
	s.Set("a", makeToken(testNow.Add(time.Hour), ""))
	s.Set("c", makeToken(testNow.Add(time.Hour), ""))

	assert.Equal(t, []string{"a", "b", "c"}, s.Keys())
	assert.Equal(t, 3, s.Count())

	s.Remove("b")
	assert.Equal(t, []string{"a", "c"}, s.Keys())

	// Removing an absent key is a no-op.
	s.Remove("missing")
	assert.Equal(t, 2, s.Count())

	s.Clear()
	assert.Empty(t, s.Keys())
	assert.Equal(t, 0, s.Count())
}

func TestStore_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", n%4)
			for j := 0; j < 100; j++ {
				s.Set(key, makeToken(time.Now().Add(time.Hour), "rt"))
				s.Get(key)
				s.GetValid(key)
				s.NeedsRefresh(key)
				s.Status(key)
				s.Keys()
				s.Count()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 4, s.Count())
}

func TestToken_AuthorizationHeader(t *testing.T) {
	t.Parallel()

	token := &Token{Token: oauth2.Token{AccessToken: "abc", TokenType: "Bearer"}}
	assert.Equal(t, "Bearer abc", token.AuthorizationHeader())

	// Missing token type defaults to Bearer.
	token = &Token{Token: oauth2.Token{AccessToken: "abc"}}
	assert.Equal(t, "Bearer abc", token.AuthorizationHeader())

	token = &Token{Token: oauth2.Token{AccessToken: "abc", TokenType: "DPoP"}}
	assert.Equal(t, "DPoP abc", token.AuthorizationHeader())
}
