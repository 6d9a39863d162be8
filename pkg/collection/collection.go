// SPDX-FileCopyrightText: Copyright 2025 Restfire Authors
// SPDX-License-Identifier: Apache-2.0

// Package collection parses restfire's YAML collection format and converts
// request definitions into the internal request model.
package collection

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/restfire/restfire/pkg/auth"
	"github.com/restfire/restfire/pkg/request"
	"github.com/restfire/restfire/pkg/variables"
)

// Collection is one collection file: shared variables plus named request
// definitions.
type Collection struct {
	Name      string        `yaml:"name"`
	Variables variables.Map `yaml:"variables,omitempty"`
	Requests  []Definition  `yaml:"requests"`
}

// Definition is one request in collection file form. Headers and params
// use a disabled flag (so the common case needs no flag at all), while the
// internal model tracks enabled.
type Definition struct {
	Name    string     `yaml:"name"`
	Method  string     `yaml:"method"`
	URL     string     `yaml:"url"`
	Headers []KV       `yaml:"headers,omitempty"`
	Params  []KV       `yaml:"params,omitempty"`
	Body    *BodyBlock `yaml:"body,omitempty"`
	Auth    *AuthBlock `yaml:"auth,omitempty"`
}

// KV is a header or query parameter entry.
type KV struct {
	Name     string `yaml:"name"`
	Value    string `yaml:"value"`
	Disabled bool   `yaml:"disabled,omitempty"`
}

// BodyBlock is the request body with its declared kind.
type BodyBlock struct {
	Kind    string `yaml:"kind"` // text, json, xml, form
	Content string `yaml:"content"`
}

// AuthBlock is the authentication declaration in file form; Type selects
// which of the remaining fields apply.
type AuthBlock struct {
	Type string `yaml:"type"` // none, apikey, bearer, basic, oauth2_client_credentials, oauth2_authorization_code

	// apikey
	Key      string `yaml:"key,omitempty"`
	Name     string `yaml:"name,omitempty"`
	Location string `yaml:"location,omitempty"` // header (default) or query

	// bearer
	Token  string `yaml:"token,omitempty"`
	Prefix string `yaml:"prefix,omitempty"`

	// basic
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`

	// oauth2
	AuthURL      string            `yaml:"auth_url,omitempty"`
	TokenURL     string            `yaml:"token_url,omitempty"`
	ClientID     string            `yaml:"client_id,omitempty"`
	ClientSecret string            `yaml:"client_secret,omitempty"`
	RedirectURI  string            `yaml:"redirect_uri,omitempty"`
	Scope        string            `yaml:"scope,omitempty"`
	ExtraParams  map[string]string `yaml:"extra_params,omitempty"`
}

// Load reads and parses a collection file.
func Load(path string) (*Collection, error) {
	data, err := os.ReadFile(path) // #nosec G304 - the collection path comes from the user
	if err != nil {
		return nil, fmt.Errorf("failed to read collection %s: %w", path, err)
	}

	var c Collection
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse collection %s: %w", path, err)
	}
	if c.Variables == nil {
		c.Variables = variables.Map{}
	}
	return &c, nil
}

// Request finds the named definition and converts it to the internal model.
func (c *Collection) Request(name string) (request.Request, error) {
	for i := range c.Requests {
		if c.Requests[i].Name == name {
			return c.Requests[i].toRequest()
		}
	}
	return request.Request{}, fmt.Errorf("request %q not found in collection %q", name, c.Name)
}

// RequestNames lists the definitions in file order.
func (c *Collection) RequestNames() []string {
	names := make([]string, len(c.Requests))
	for i := range c.Requests {
		names[i] = c.Requests[i].Name
	}
	return names
}

func (d *Definition) toRequest() (request.Request, error) {
	req := request.Request{
		Name:        d.Name,
		Method:      d.Method,
		URL:         d.URL,
		Headers:     toParams(d.Headers),
		QueryParams: toParams(d.Params),
		Body:        request.Body{Kind: request.BodyNone},
		Auth:        auth.NoAuth{},
	}
	if req.Method == "" {
		req.Method = "GET"
	}

	if d.Body != nil {
		kind, err := bodyKind(d.Body.Kind)
		if err != nil {
			return request.Request{}, fmt.Errorf("request %q: %w", d.Name, err)
		}
		req.Body = request.Body{Kind: kind, Content: d.Body.Content}
	}

	if d.Auth != nil {
		cfg, err := d.Auth.toConfig()
		if err != nil {
			return request.Request{}, fmt.Errorf("request %q: %w", d.Name, err)
		}
		req.Auth = cfg
	}

	return req, nil
}

func toParams(kvs []KV) []request.Param {
	if kvs == nil {
		return nil
	}
	params := make([]request.Param, len(kvs))
	for i, kv := range kvs {
		params[i] = request.Param{Key: kv.Name, Value: kv.Value, Enabled: !kv.Disabled}
	}
	return params
}

func bodyKind(kind string) (request.BodyKind, error) {
	switch kind {
	case "", "text":
		return request.BodyText, nil
	case "json":
		return request.BodyJSON, nil
	case "xml":
		return request.BodyXML, nil
	case "form":
		return request.BodyForm, nil
	case "none":
		return request.BodyNone, nil
	default:
		return "", fmt.Errorf("unknown body kind %q", kind)
	}
}

func (a *AuthBlock) toConfig() (auth.Config, error) {
	switch a.Type {
	case "", "none":
		return auth.NoAuth{}, nil

	case "apikey":
		location := auth.KeyLocationHeader
		switch a.Location {
		case "", "header":
		case "query":
			location = auth.KeyLocationQuery
		default:
			return nil, fmt.Errorf("unknown api key location %q", a.Location)
		}
		return auth.APIKey{Key: a.Key, Name: a.Name, Location: location}, nil

	case "bearer":
		return auth.Bearer{Token: a.Token, Prefix: a.Prefix}, nil

	case "basic":
		return auth.Basic{Username: a.Username, Password: a.Password}, nil

	case "oauth2_client_credentials":
		return auth.OAuth2ClientCredentials{
			TokenURL:     a.TokenURL,
			ClientID:     a.ClientID,
			ClientSecret: a.ClientSecret,
			Scope:        a.Scope,
			ExtraParams:  a.ExtraParams,
		}, nil

	case "oauth2_authorization_code":
		return auth.OAuth2AuthorizationCode{
			AuthURL:      a.AuthURL,
			TokenURL:     a.TokenURL,
			ClientID:     a.ClientID,
			ClientSecret: a.ClientSecret,
			RedirectURI:  a.RedirectURI,
			Scope:        a.Scope,
			ExtraParams:  a.ExtraParams,
		}, nil

	default:
		return nil, fmt.Errorf("unknown auth type %q", a.Type)
	}
}
