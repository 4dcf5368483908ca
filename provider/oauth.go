// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sdkHttp "github.com/hashicorp/capauth/sdk/http"
	"github.com/hashicorp/capauth/sdk/strutils"
	"golang.org/x/oauth2"
)

// ProfileFunc maps a provider's userinfo document to a User.
type ProfileFunc func(raw map[string]interface{}) (*User, error)

// OAuth is the descriptor for an oauth2 identity provider. It only carries
// what the auth middleware needs to run the authorization code flow: client
// credentials, endpoints, scopes and how to read the provider's profile. No
// part of the flow is performed here.
//
// OAuth is not validated on construction: missing client credentials will
// surface when the middleware first uses the descriptor.
type OAuth struct {
	id           string
	name         string
	clientID     string
	clientSecret ClientSecret
	endpoint     oauth2.Endpoint
	userInfoURL  string
	scopes       []string
	providerCA   string
	profile      ProfileFunc
}

// ensure that OAuth implements the Provider interface
var _ Provider = (*OAuth)(nil)

func newOAuth(id, name, clientID string, clientSecret ClientSecret, endpoint oauth2.Endpoint, userInfoURL string, defaultScopes []string, profile ProfileFunc, opt ...Option) *OAuth {
	opts := getOAuthOpts(opt...)
	o := &OAuth{
		id:           id,
		name:         name,
		clientID:     clientID,
		clientSecret: clientSecret,
		endpoint:     endpoint,
		userInfoURL:  userInfoURL,
		scopes:       strutils.RemoveDuplicatesStable(append(append([]string{}, defaultScopes...), opts.withScopes...), false),
		providerCA:   opts.withProviderCA,
		profile:      profile,
	}
	if opts.withName != "" {
		o.name = opts.withName
	}
	if opts.withUserInfoURL != "" {
		o.userInfoURL = opts.withUserInfoURL
	}
	return o
}

func (o *OAuth) ID() string   { return o.id }      // ID implements the Provider.ID() interface function
func (o *OAuth) Name() string { return o.name }    // Name implements the Provider.Name() interface function
func (o *OAuth) Type() Type   { return TypeOAuth } // Type implements the Provider.Type() interface function

// ClientID returns the oauth client id.
func (o *OAuth) ClientID() string { return o.clientID }

// ClientSecret returns the oauth client secret.
func (o *OAuth) ClientSecret() ClientSecret { return o.clientSecret }

// Endpoint returns the provider's authorization and token endpoints.
func (o *OAuth) Endpoint() oauth2.Endpoint { return o.endpoint }

// UserInfoURL returns the endpoint the middleware fetches the profile from.
func (o *OAuth) UserInfoURL() string { return o.userInfoURL }

// ProviderCA returns the optional CA cert used when talking to the provider.
func (o *OAuth) ProviderCA() string { return o.providerCA }

// Scopes returns a copy of the scopes requested from the provider.
func (o *OAuth) Scopes() []string {
	return append([]string{}, o.scopes...)
}

// OAuth2Config renders the descriptor as an oauth2.Config for the
// redirectURL (the middleware's callback route for this provider).
func (o *OAuth) OAuth2Config(redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     o.clientID,
		ClientSecret: string(o.clientSecret),
		Endpoint:     o.endpoint,
		RedirectURL:  redirectURL,
		Scopes:       o.Scopes(),
	}
}

// HTTPClient creates the http client the middleware should use for requests
// to this provider. It honors WithProviderCA.
func (o *OAuth) HTTPClient() (*http.Client, error) {
	const op = "OAuth.HTTPClient"
	client, err := sdkHttp.NewClient(o.providerCA)
	if err != nil {
		if errors.Is(err, sdkHttp.ErrInvalidCertificatePem) {
			return nil, fmt.Errorf("%s: could not parse CA PEM value: %w", op, ErrInvalidCACert)
		}
		return nil, fmt.Errorf("%s: could not get an http client: %w", op, err)
	}
	return client, nil
}

// HTTPClientContext returns a new Context that carries the provided HTTP
// client, using the same context key as golang.org/x/oauth2.
func HTTPClientContext(ctx context.Context, client *http.Client) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, client)
}

// Profile maps the provider's userinfo document to a User.
func (o *OAuth) Profile(raw map[string]interface{}) (*User, error) {
	const op = "OAuth.Profile"
	if raw == nil {
		return nil, fmt.Errorf("%s: %s profile is nil: %w", op, o.id, ErrNilParameter)
	}
	if o.profile == nil {
		return nil, fmt.Errorf("%s: %s has no profile mapping: %w", op, o.id, ErrInvalidParameter)
	}
	u, err := o.profile(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, o.id, err)
	}
	return u, nil
}

type oauthAuthorization struct {
	URL    string            `json:"url"`
	Params map[string]string `json:"params,omitempty"`
}

// MarshalJSON renders the descriptor in the shape the auth middleware
// expects. The client secret is redacted.
func (o *OAuth) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID            string             `json:"id"`
		Name          string             `json:"name"`
		Type          Type               `json:"type"`
		ClientID      string             `json:"clientId"`
		ClientSecret  ClientSecret       `json:"clientSecret"`
		Authorization oauthAuthorization `json:"authorization"`
		Token         string             `json:"token"`
		UserInfo      string             `json:"userinfo"`
	}{
		ID:           o.id,
		Name:         o.name,
		Type:         o.Type(),
		ClientID:     o.clientID,
		ClientSecret: o.clientSecret,
		Authorization: oauthAuthorization{
			URL:    o.endpoint.AuthURL,
			Params: map[string]string{"scope": strings.Join(o.scopes, " ")},
		},
		Token:    o.endpoint.TokenURL,
		UserInfo: o.userInfoURL,
	})
}

// stringClaim returns raw[key] if it is a non-empty string.
func stringClaim(raw map[string]interface{}, key string) string {
	if s, ok := raw[key].(string); ok {
		return s
	}
	return ""
}

// idClaim returns raw[key] as a string. Profile ids are numbers for some
// providers (GitHub) and strings for others (Discord).
func idClaim(raw map[string]interface{}, key string) (string, error) {
	switch v := raw[key].(type) {
	case string:
		if v == "" {
			return "", fmt.Errorf("%q claim is empty: %w", key, ErrInvalidProfile)
		}
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case json.Number:
		return v.String(), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case nil:
		return "", fmt.Errorf("%q claim is missing: %w", key, ErrInvalidProfile)
	default:
		return "", fmt.Errorf("%q claim has unsupported type %T: %w", key, v, ErrInvalidProfile)
	}
}
