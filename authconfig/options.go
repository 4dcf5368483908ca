// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package authconfig

import (
	"os"

	"github.com/hashicorp/capauth/provider"
	"github.com/hashicorp/go-hclog"
)

// Option defines a common functional options type which can be used in a
// variadic parameter pattern.
type Option func(interface{})

// ApplyOpts takes a pointer to the options struct as a set of default options
// and applies the slice of opts as overrides.
func ApplyOpts(opts interface{}, opt ...Option) {
	for _, o := range opt {
		if o == nil { // ignore any nil Options
			continue
		}
		o(opts)
	}
}

// LookupEnvFunc has the signature of os.LookupEnv
type LookupEnvFunc func(key string) (string, bool)

// DefaultEnvPrefix is the prefix of the environment variables which override
// the runtime config.
const DefaultEnvPrefix = "NUXT"

type loadOptions struct {
	withConfigFile string
	withEnvPrefix  string
	withLookupEnv  LookupEnvFunc
	withLogger     hclog.Logger
}

func loadDefaults() loadOptions {
	return loadOptions{
		withEnvPrefix: DefaultEnvPrefix,
		withLookupEnv: os.LookupEnv,
		withLogger:    hclog.NewNullLogger(),
	}
}

func getLoadOpts(opt ...Option) loadOptions {
	opts := loadDefaults()
	ApplyOpts(&opts, opt...)
	return opts
}

type assembleOptions struct {
	withLogger             hclog.Logger
	withCredentialsOptions []provider.Option
	withGitHubOptions      []provider.Option
	withDiscordOptions     []provider.Option
}

func assembleDefaults() assembleOptions {
	return assembleOptions{
		withLogger: hclog.NewNullLogger(),
	}
}

func getAssembleOpts(opt ...Option) assembleOptions {
	opts := assembleDefaults()
	ApplyOpts(&opts, opt...)
	return opts
}

// WithLogger provides an optional logger. Supported by LoadRuntimeConfig and
// Assemble.
func WithLogger(l hclog.Logger) Option {
	return func(o interface{}) {
		if l == nil {
			return
		}
		switch v := o.(type) {
		case *loadOptions:
			v.withLogger = l
		case *assembleOptions:
			v.withLogger = l
		}
	}
}

// WithConfigFile provides an optional YAML file the runtime config is read
// from before environment overrides are applied.
func WithConfigFile(path string) Option {
	return func(o interface{}) {
		if o, ok := o.(*loadOptions); ok {
			o.withConfigFile = path
		}
	}
}

// WithEnvPrefix overrides DefaultEnvPrefix. An empty prefix disables
// environment overrides.
func WithEnvPrefix(prefix string) Option {
	return func(o interface{}) {
		if o, ok := o.(*loadOptions); ok {
			o.withEnvPrefix = prefix
		}
	}
}

// WithLookupEnv overrides os.LookupEnv, which is mostly useful for tests.
func WithLookupEnv(fn LookupEnvFunc) Option {
	return func(o interface{}) {
		if o, ok := o.(*loadOptions); ok && fn != nil {
			o.withLookupEnv = fn
		}
	}
}

// WithCredentialsOptions passes options to provider.NewCredentials
func WithCredentialsOptions(opt ...provider.Option) Option {
	return func(o interface{}) {
		if o, ok := o.(*assembleOptions); ok {
			o.withCredentialsOptions = opt
		}
	}
}

// WithGitHubOptions passes options to provider.NewGitHub
func WithGitHubOptions(opt ...provider.Option) Option {
	return func(o interface{}) {
		if o, ok := o.(*assembleOptions); ok {
			o.withGitHubOptions = opt
		}
	}
}

// WithDiscordOptions passes options to provider.NewDiscord
func WithDiscordOptions(opt ...provider.Option) Option {
	return func(o interface{}) {
		if o, ok := o.(*assembleOptions); ok {
			o.withDiscordOptions = opt
		}
	}
}
