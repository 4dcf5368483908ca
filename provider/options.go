// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package provider

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

// oauthOptions is the set of available options for the oauth descriptors
type oauthOptions struct {
	withScopes      []string
	withProviderCA  string
	withName        string
	withUserInfoURL string
}

func oauthDefaults() oauthOptions {
	return oauthOptions{}
}

func getOAuthOpts(opt ...Option) oauthOptions {
	opts := oauthDefaults()
	ApplyOpts(&opts, opt...)
	return opts
}

// credentialsOptions is the set of available options for the credentials
// descriptor
type credentialsOptions struct {
	withName   string
	withFields map[string]Field
}

func credentialsDefaults() credentialsOptions {
	return credentialsOptions{}
}

func getCredentialsOpts(opt ...Option) credentialsOptions {
	opts := credentialsDefaults()
	ApplyOpts(&opts, opt...)
	return opts
}

// bcryptOptions is the set of available options for the BcryptVerifier and
// HashPassword
type bcryptOptions struct {
	withCost int
}

func bcryptDefaults() bcryptOptions {
	return bcryptOptions{
		withCost: DefaultBcryptCost,
	}
}

func getBcryptOpts(opt ...Option) bcryptOptions {
	opts := bcryptDefaults()
	ApplyOpts(&opts, opt...)
	return opts
}

// WithScopes provides optional scopes which are requested in addition to the
// descriptor's default scopes. Duplicates are removed.
func WithScopes(scopes ...string) Option {
	return func(o interface{}) {
		if o, ok := o.(*oauthOptions); ok {
			o.withScopes = scopes
		}
	}
}

// WithProviderCA provides an optional CA cert (PEM) to use when sending
// requests to the provider.
func WithProviderCA(cert string) Option {
	return func(o interface{}) {
		if o, ok := o.(*oauthOptions); ok {
			o.withProviderCA = cert
		}
	}
}

// WithUserInfoURL overrides the descriptor's userinfo endpoint, which is
// useful for GitHub Enterprise or a test server.
func WithUserInfoURL(u string) Option {
	return func(o interface{}) {
		if o, ok := o.(*oauthOptions); ok {
			o.withUserInfoURL = u
		}
	}
}

// WithName overrides the display name of a descriptor. Supported by both
// the oauth and credentials descriptors.
func WithName(name string) Option {
	return func(o interface{}) {
		switch v := o.(type) {
		case *oauthOptions:
			v.withName = name
		case *credentialsOptions:
			v.withName = name
		}
	}
}

// WithFields replaces the credentials descriptor's form fields.
func WithFields(fields map[string]Field) Option {
	return func(o interface{}) {
		if o, ok := o.(*credentialsOptions); ok {
			o.withFields = fields
		}
	}
}

// WithCost provides an optional bcrypt cost for HashPassword.
func WithCost(cost int) Option {
	return func(o interface{}) {
		if o, ok := o.(*bcryptOptions); ok {
			o.withCost = cost
		}
	}
}
