// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package authconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/capauth/provider"
	"gopkg.in/yaml.v3"
)

// ClientCredentials are an oauth client's id and secret.
type ClientCredentials struct {
	ClientID     string                `yaml:"clientId"`
	ClientSecret provider.ClientSecret `yaml:"clientSecret"`
}

// AuthSettings are the application's own auth settings.
type AuthSettings struct {
	// Secret is used by the auth middleware to sign and encrypt its session
	// cookies and tokens.
	Secret provider.ClientSecret `yaml:"secret"`

	GitHub  ClientCredentials `yaml:"github"`
	Discord ClientCredentials `yaml:"discord"`
}

// Options is the block of auth middleware settings which is passed through
// to the assembled Config unchanged.
type Options struct {
	// BasePath is the path the middleware mounts its routes under.
	BasePath string `yaml:"basePath,omitempty"`

	TrustHost bool `yaml:"trustHost,omitempty"`
	Debug     bool `yaml:"debug,omitempty"`

	// Secret is the middleware's default secret. AuthSettings.Secret always
	// takes precedence in an assembled Config.
	Secret provider.ClientSecret `yaml:"secret,omitempty"`

	// Extra holds any other middleware settings.
	Extra map[string]interface{} `yaml:",inline"`
}

// RuntimeConfig is the process wide configuration the auth Config is
// assembled from. It's loaded once at startup and read-only afterwards.
type RuntimeConfig struct {
	Auth   AuthSettings `yaml:"auth"`
	AuthJS Options      `yaml:"authJs"`
}

// envVar describes one environment override of the runtime config. The
// names follow the runtime config path, e.g. auth.github.clientId is
// {prefix}_AUTH_GITHUB_CLIENT_ID.
type envVar struct {
	suffix string
	set    func(rc *RuntimeConfig, v string) error
}

var envVars = []envVar{
	{"AUTH_SECRET", func(rc *RuntimeConfig, v string) error { rc.Auth.Secret = provider.ClientSecret(v); return nil }},
	{"AUTH_GITHUB_CLIENT_ID", func(rc *RuntimeConfig, v string) error { rc.Auth.GitHub.ClientID = v; return nil }},
	{"AUTH_GITHUB_CLIENT_SECRET", func(rc *RuntimeConfig, v string) error {
		rc.Auth.GitHub.ClientSecret = provider.ClientSecret(v)
		return nil
	}},
	{"AUTH_DISCORD_CLIENT_ID", func(rc *RuntimeConfig, v string) error { rc.Auth.Discord.ClientID = v; return nil }},
	{"AUTH_DISCORD_CLIENT_SECRET", func(rc *RuntimeConfig, v string) error {
		rc.Auth.Discord.ClientSecret = provider.ClientSecret(v)
		return nil
	}},
	{"AUTH_JS_BASE_PATH", func(rc *RuntimeConfig, v string) error { rc.AuthJS.BasePath = v; return nil }},
	{"AUTH_JS_SECRET", func(rc *RuntimeConfig, v string) error { rc.AuthJS.Secret = provider.ClientSecret(v); return nil }},
	{"AUTH_JS_TRUST_HOST", func(rc *RuntimeConfig, v string) (err error) { rc.AuthJS.TrustHost, err = parseBool(v); return }},
	{"AUTH_JS_DEBUG", func(rc *RuntimeConfig, v string) (err error) { rc.AuthJS.Debug, err = parseBool(v); return }},
}

// parseBool parses a boolean override. An empty value is false.
func parseBool(v string) (bool, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%q is not a boolean: %w", v, ErrInvalidParameter)
	}
	return b, nil
}

// EnvNames returns the names of the environment variables which override the
// runtime config for the prefix.
func EnvNames(prefix string) []string {
	names := make([]string, 0, len(envVars))
	for _, ev := range envVars {
		names = append(names, prefix+"_"+ev.suffix)
	}
	return names
}

// LoadRuntimeConfig loads the runtime config. If a config file is provided
// it's read first, then environment variables are applied on top of it. An
// environment variable which is set (even to an empty string) wins over the
// file. No values are validated; see Config.Validate.
//
// Supported options: WithConfigFile, WithEnvPrefix, WithLookupEnv, WithLogger
func LoadRuntimeConfig(opt ...Option) (*RuntimeConfig, error) {
	const op = "authconfig.LoadRuntimeConfig"
	opts := getLoadOpts(opt...)
	rc := &RuntimeConfig{}

	if opts.withConfigFile != "" {
		raw, err := os.ReadFile(opts.withConfigFile)
		if err != nil {
			return nil, fmt.Errorf("%s: unable to read config file: %w", op, err)
		}
		if err := decodeRuntimeConfig(raw, rc); err != nil {
			return nil, fmt.Errorf("%s: %s: %w", op, opts.withConfigFile, err)
		}
		opts.withLogger.Debug("loaded runtime config file", "path", opts.withConfigFile)
	}

	if opts.withEnvPrefix != "" {
		for _, ev := range envVars {
			name := opts.withEnvPrefix + "_" + ev.suffix
			v, ok := opts.withLookupEnv(name)
			if !ok {
				continue
			}
			if err := ev.set(rc, v); err != nil {
				return nil, fmt.Errorf("%s: %s: %w", op, name, err)
			}
			opts.withLogger.Trace("applied environment override", "name", name)
		}
	}
	return rc, nil
}

func decodeRuntimeConfig(raw []byte, rc *RuntimeConfig) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(rc); err != nil {
		if errors.Is(err, io.EOF) {
			// an empty file is an empty config
			return nil
		}
		return fmt.Errorf("%w: %s", ErrInvalidFile, err)
	}
	if rc.AuthJS.Extra != nil {
		rc.AuthJS.Extra = cloneValue(rc.AuthJS.Extra).(map[string]interface{})
	}
	return nil
}
