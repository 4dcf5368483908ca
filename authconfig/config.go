// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package authconfig

import (
	"encoding/json"
	"fmt"

	"github.com/hashicorp/capauth/provider"
	"github.com/hashicorp/go-multierror"
)

// Config is the auth middleware's configuration: the passthrough options,
// the secret and the ordered list of provider descriptors.
type Config struct {
	// Options are the passthrough middleware settings from
	// RuntimeConfig.AuthJS. Options.Secret is superseded by Secret.
	Options Options

	// Secret is the value the middleware signs and encrypts with.
	Secret provider.ClientSecret

	// Providers in the order they're offered to users.
	Providers []provider.Provider
}

// Assemble builds the Config from the runtime config: the passthrough
// options, then the explicit secret, then the Credentials, GitHub and Discord
// descriptors in that order. The secret always comes from rc.Auth.Secret, even
// when the passthrough options carry one.
//
// Assemble doesn't validate the secret or client credentials; the middleware
// fails on first use if they're missing. Call Validate to check them up
// front.
//
// Supported options: WithLogger, WithCredentialsOptions, WithGitHubOptions,
// WithDiscordOptions
func Assemble(rc *RuntimeConfig, v provider.Verifier, opt ...Option) (*Config, error) {
	const op = "authconfig.Assemble"
	switch {
	case rc == nil:
		return nil, fmt.Errorf("%s: runtime config is nil: %w", op, ErrNilParameter)
	case isNil(v):
		return nil, fmt.Errorf("%s: verifier is nil: %w", op, ErrNilParameter)
	}
	opts := getAssembleOpts(opt...)

	creds, err := provider.NewCredentials(v, opts.withCredentialsOptions...)
	if err != nil {
		return nil, fmt.Errorf("%s: unable to create credentials provider: %w", op, err)
	}
	c := &Config{
		Options: rc.AuthJS.clone(),
		Secret:  rc.Auth.Secret,
		Providers: []provider.Provider{
			creds,
			provider.NewGitHub(rc.Auth.GitHub.ClientID, rc.Auth.GitHub.ClientSecret, opts.withGitHubOptions...),
			provider.NewDiscord(rc.Auth.Discord.ClientID, rc.Auth.Discord.ClientSecret, opts.withDiscordOptions...),
		},
	}
	opts.withLogger.Debug("assembled auth config", "providers", c.ProviderIDs(), "base_path", c.Options.BasePath)
	return c, nil
}

// ProviderIDs returns the ids of the providers, in order.
func (c *Config) ProviderIDs() []string {
	ids := make([]string, 0, len(c.Providers))
	for _, p := range c.Providers {
		if isNil(p) {
			continue
		}
		ids = append(ids, p.ID())
	}
	return ids
}

// Provider returns the first provider with the id.
func (c *Config) Provider(id string) (provider.Provider, bool) {
	for _, p := range c.Providers {
		if !isNil(p) && p.ID() == id {
			return p, true
		}
	}
	return nil, false
}

// oauthClient is satisfied by the oauth descriptors
type oauthClient interface {
	ClientID() string
	ClientSecret() provider.ClientSecret
}

// Validate reports every problem that would make the middleware fail on
// first use: a missing secret, oauth providers without client credentials and
// duplicate provider ids.
func (c *Config) Validate() error {
	const op = "authconfig.(Config).Validate"
	if c == nil {
		return fmt.Errorf("%s: config is nil: %w", op, ErrNilParameter)
	}
	var result *multierror.Error
	if c.Secret == "" {
		result = multierror.Append(result, fmt.Errorf("%s: secret is empty: %w", op, ErrMissingValue))
	}
	if len(c.Providers) == 0 {
		result = multierror.Append(result, fmt.Errorf("%s: no providers: %w", op, ErrMissingValue))
	}
	seen := make(map[string]bool, len(c.Providers))
	for i, p := range c.Providers {
		if isNil(p) {
			result = multierror.Append(result, fmt.Errorf("%s: provider %d is nil: %w", op, i, ErrNilParameter))
			continue
		}
		if seen[p.ID()] {
			result = multierror.Append(result, fmt.Errorf("%s: %q: %w", op, p.ID(), ErrDuplicateID))
		}
		seen[p.ID()] = true

		oc, ok := p.(oauthClient)
		if !ok {
			continue
		}
		if oc.ClientID() == "" {
			result = multierror.Append(result, fmt.Errorf("%s: %s client id is empty: %w", op, p.ID(), ErrMissingValue))
		}
		if oc.ClientSecret() == "" {
			result = multierror.Append(result, fmt.Errorf("%s: %s client secret is empty: %w", op, p.ID(), ErrMissingValue))
		}
	}
	return result.ErrorOrNil()
}

// MarshalJSON renders the config in the shape the middleware expects: the
// passthrough options, the secret and the providers. Secrets are redacted so
// the output is only suitable for inspection.
func (c *Config) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(c.Options.Extra)+5)
	for k, v := range c.Options.Extra {
		m[k] = v
	}
	if c.Options.BasePath != "" {
		m["basePath"] = c.Options.BasePath
	}
	if c.Options.TrustHost {
		m["trustHost"] = true
	}
	if c.Options.Debug {
		m["debug"] = true
	}
	m["secret"] = c.Secret
	m["providers"] = c.Providers
	return json.Marshal(m)
}

// clone returns a deep copy of the options so an assembled Config doesn't
// share maps with its runtime config.
func (o Options) clone() Options {
	cp := o
	if o.Extra != nil {
		cp.Extra = cloneValue(o.Extra).(map[string]interface{})
	}
	return cp
}

// cloneValue deep copies maps and slices. Maps with non-string keys, which
// yaml produces for mappings like {1: x}, are copied into string keyed maps
// so the result can always be rendered as JSON.
func cloneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		cp := make(map[string]interface{}, len(t))
		for k, e := range t {
			cp[k] = cloneValue(e)
		}
		return cp
	case map[interface{}]interface{}:
		cp := make(map[string]interface{}, len(t))
		for k, e := range t {
			cp[fmt.Sprint(k)] = cloneValue(e)
		}
		return cp
	case []interface{}:
		cp := make([]interface{}, len(t))
		for i, e := range t {
			cp[i] = cloneValue(e)
		}
		return cp
	default:
		return v
	}
}
