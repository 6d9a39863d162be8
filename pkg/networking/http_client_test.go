// SPDX-FileCopyrightText: Copyright 2025 Restfire Authors
// SPDX-License-Identifier: Apache-2.0

package networking

import (
	"crypto/tls"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDefaults(t *testing.T) {
	t.Parallel()

	client, err := NewHTTPClientBuilder().Build()
	require.NoError(t, err)

	assert.Equal(t, HTTPTimeout, client.Timeout)

	transport, ok := client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, uint16(tls.VersionTLS12), transport.TLSClientConfig.MinVersion)
	assert.False(t, transport.TLSClientConfig.InsecureSkipVerify)
}

func TestBuildWithTimeout(t *testing.T) {
	t.Parallel()

	client, err := NewHTTPClientBuilder().WithTimeout(5 * time.Second).Build()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, client.Timeout)

	client, err = NewHTTPClientBuilder().WithTimeout(0).Build()
	require.NoError(t, err)
	assert.Zero(t, client.Timeout)
}

func TestBuildWithCABundle(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := NewHTTPClientBuilder().
			WithCABundle(filepath.Join(t.TempDir(), "nope.pem")).
			Build()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read CA certificate bundle")
	})

	t.Run("invalid pem", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "garbage.pem")
		require.NoError(t, os.WriteFile(path, []byte("not a certificate"), 0600))

		_, err := NewHTTPClientBuilder().WithCABundle(path).Build()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse CA certificate bundle")
	})

	t.Run("valid pem", func(t *testing.T) {
		t.Parallel()

		// Borrow the cert generated by httptest's TLS server.
		srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		path := filepath.Join(t.TempDir(), "ca.pem")
		require.NoError(t, os.WriteFile(path, certToPEM(t, srv), 0600))

		client, err := NewHTTPClientBuilder().WithCABundle(path).Build()
		require.NoError(t, err)

		transport, ok := client.Transport.(*http.Transport)
		require.True(t, ok)
		assert.NotNil(t, transport.TLSClientConfig.RootCAs)
	})
}

func TestBuildWithInsecureSkipVerify(t *testing.T) {
	t.Parallel()

	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client, err := NewHTTPClientBuilder().WithInsecureSkipVerify(true).Build()
	require.NoError(t, err)

	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func certToPEM(t *testing.T, srv *httptest.Server) []byte {
	t.Helper()
	cert := srv.Certificate()
	require.NotNil(t, cert)
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: cert.Raw})
}

func TestHTTPError(t *testing.T) {
	t.Parallel()

	err := NewHTTPError(http.StatusNotFound, "https://example.com/pets", "not found")
	assert.Equal(t, "HTTP 404 for URL https://example.com/pets: not found", err.Error())

	assert.True(t, IsHTTPError(err, http.StatusNotFound))
	assert.True(t, IsHTTPError(err, 0))
	assert.False(t, IsHTTPError(err, http.StatusBadGateway))
	assert.False(t, IsHTTPError(os.ErrNotExist, 0))
}
