// SPDX-FileCopyrightText: Copyright 2025 Restfire Authors
// SPDX-License-Identifier: Apache-2.0

package collection_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restfire/restfire/pkg/auth"
	"github.com/restfire/restfire/pkg/collection"
	"github.com/restfire/restfire/pkg/request"
)

const sampleCollection = `name: petstore
variables:
  base_path:
    value: /api/v2
    enabled: true
  legacy_path:
    value: /api/v1
    enabled: false
requests:
  - name: list-pets
    method: GET
    url: "{{base_url}}{{base_path}}/pets"
    headers:
      - name: Accept
        value: application/json
      - name: X-Debug
        value: "1"
        disabled: true
    params:
      - name: limit
        value: "20"
    auth:
      type: bearer
      token: "{{api_token}}"
  - name: create-pet
    method: POST
    url: "{{base_url}}{{base_path}}/pets"
    body:
      kind: json
      content: '{"name": "{{pet_name}}"}'
    auth:
      type: oauth2_client_credentials
      token_url: "https://idp.example.com/token"
      client_id: restfire-cli
      client_secret: "{{oauth_secret}}"
      scope: "pets:write"
  - name: ping
    url: "{{base_url}}/ping"
`

func writeCollection(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "collection.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	c, err := collection.Load(writeCollection(t, sampleCollection))
	require.NoError(t, err)

	assert.Equal(t, "petstore", c.Name)
	assert.Equal(t, []string{"list-pets", "create-pet", "ping"}, c.RequestNames())

	v, ok := c.Variables["base_path"]
	require.True(t, ok)
	assert.Equal(t, "/api/v2", v.Value)
	assert.True(t, v.Enabled)

	legacy, ok := c.Variables["legacy_path"]
	require.True(t, ok)
	assert.False(t, legacy.Enabled)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	_, err := collection.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read collection")

	_, err = collection.Load(writeCollection(t, "requests: {not: [valid"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse collection")
}

func TestRequestConversion(t *testing.T) {
	t.Parallel()

	c, err := collection.Load(writeCollection(t, sampleCollection))
	require.NoError(t, err)

	t.Run("headers and params", func(t *testing.T) {
		t.Parallel()

		req, err := c.Request("list-pets")
		require.NoError(t, err)

		assert.Equal(t, "GET", req.Method)
		assert.Equal(t, "{{base_url}}{{base_path}}/pets", req.URL)
		require.Len(t, req.Headers, 2)
		assert.Equal(t, request.Param{Key: "Accept", Value: "application/json", Enabled: true}, req.Headers[0])
		assert.Equal(t, request.Param{Key: "X-Debug", Value: "1", Enabled: false}, req.Headers[1])
		require.Len(t, req.QueryParams, 1)
		assert.Equal(t, request.Param{Key: "limit", Value: "20", Enabled: true}, req.QueryParams[0])
		assert.Equal(t, auth.Bearer{Token: "{{api_token}}"}, req.Auth)
	})

	t.Run("body and oauth2", func(t *testing.T) {
		t.Parallel()

		req, err := c.Request("create-pet")
		require.NoError(t, err)

		assert.Equal(t, request.BodyJSON, req.Body.Kind)
		assert.Equal(t, `{"name": "{{pet_name}}"}`, req.Body.Content)

		cfg, ok := req.Auth.(auth.OAuth2ClientCredentials)
		require.True(t, ok)
		assert.Equal(t, "https://idp.example.com/token", cfg.TokenURL)
		assert.Equal(t, "restfire-cli", cfg.ClientID)
		assert.Equal(t, "pets:write", cfg.Scope)
	})

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		req, err := c.Request("ping")
		require.NoError(t, err)

		assert.Equal(t, "GET", req.Method)
		assert.Equal(t, request.BodyNone, req.Body.Kind)
		assert.Equal(t, auth.NoAuth{}, req.Auth)
	})

	t.Run("unknown request", func(t *testing.T) {
		t.Parallel()

		_, err := c.Request("nope")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `request "nope" not found`)
	})
}

func TestAuthBlockErrors(t *testing.T) {
	t.Parallel()

	c, err := collection.Load(writeCollection(t, `name: bad
requests:
  - name: bad-auth
    method: GET
    url: https://example.com
    auth:
      type: negotiate
  - name: bad-location
    method: GET
    url: https://example.com
    auth:
      type: apikey
      key: k
      name: X-Key
      location: cookie
  - name: bad-body
    method: POST
    url: https://example.com
    body:
      kind: protobuf
      content: ""
`))
	require.NoError(t, err)

	_, err = c.Request("bad-auth")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown auth type "negotiate"`)

	_, err = c.Request("bad-location")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown api key location "cookie"`)

	_, err = c.Request("bad-body")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown body kind "protobuf"`)
}

func TestAPIKeyLocations(t *testing.T) {
	t.Parallel()

	c, err := collection.Load(writeCollection(t, `name: keys
requests:
  - name: header-key
    url: https://example.com
    auth:
      type: apikey
      key: "{{key}}"
      name: X-API-Key
  - name: query-key
    url: https://example.com
    auth:
      type: apikey
      key: "{{key}}"
      name: api_key
      location: query
`))
	require.NoError(t, err)

	req, err := c.Request("header-key")
	require.NoError(t, err)
	assert.Equal(t, auth.APIKey{Key: "{{key}}", Name: "X-API-Key", Location: auth.KeyLocationHeader}, req.Auth)

	req, err = c.Request("query-key")
	require.NoError(t, err)
	assert.Equal(t, auth.APIKey{Key: "{{key}}", Name: "api_key", Location: auth.KeyLocationQuery}, req.Auth)
}
