// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/hashicorp/capauth/sdk/strutils"
)

const (
	// CredentialsID is the ID of the credentials descriptor.
	CredentialsID = "credentials"

	// CredentialsName is the default name of the credentials descriptor.
	CredentialsName = "Credentials"

	// PasswordField is the form field the credentials descriptor reads the
	// submitted password from.
	PasswordField = "password"
)

// supportedFieldTypes are the html input types a credentials Field may use.
var supportedFieldTypes = []string{"text", "password", "email", "tel", "number"}

// Field describes one input of the credentials sign-in form.
type Field struct {
	Label string `json:"label"`
	Type  string `json:"type"`
}

// Verifier checks a submitted password. Verify returns the identity the
// password belongs to, or nil (and a nil error) when no user matches. An error
// is only returned when the check itself could not be completed.
type Verifier interface {
	Verify(ctx context.Context, password string) (*User, error)
}

// VerifierFunc adapts an ordinary function to a Verifier.
type VerifierFunc func(ctx context.Context, password string) (*User, error)

// Verify implements the Verifier interface.
func (f VerifierFunc) Verify(ctx context.Context, password string) (*User, error) {
	return f(ctx, password)
}

// Credentials is the descriptor for a password based sign-in. The check
// itself is delegated to its Verifier, so the demo verifier can be swapped for
// real credential storage without touching callers.
type Credentials struct {
	name     string
	fields   map[string]Field
	verifier Verifier
}

// ensure that Credentials implements the Provider interface
var _ Provider = (*Credentials)(nil)

// DefaultCredentialsFields returns the default form: a single password input.
func DefaultCredentialsFields() map[string]Field {
	return map[string]Field{
		PasswordField: {Label: "Password", Type: "password"},
	}
}

// NewCredentials creates a credentials descriptor backed by the verifier.
// Supported options: WithName, WithFields
func NewCredentials(v Verifier, opt ...Option) (*Credentials, error) {
	const op = "provider.NewCredentials"
	if v == nil {
		return nil, fmt.Errorf("%s: verifier is nil: %w", op, ErrInvalidParameter)
	}
	opts := getCredentialsOpts(opt...)
	c := &Credentials{
		name:     CredentialsName,
		fields:   DefaultCredentialsFields(),
		verifier: v,
	}
	if opts.withName != "" {
		c.name = opts.withName
	}
	if opts.withFields != nil {
		if len(opts.withFields) == 0 {
			return nil, fmt.Errorf("%s: fields are empty: %w", op, ErrInvalidParameter)
		}
		c.fields = make(map[string]Field, len(opts.withFields))
		for k, f := range opts.withFields {
			if !strutils.StrListContains(supportedFieldTypes, f.Type) {
				return nil, fmt.Errorf("%s: field %q has type %q: %w", op, k, f.Type, ErrUnsupportedFieldType)
			}
			c.fields[k] = f
		}
		if _, ok := c.fields[PasswordField]; !ok {
			return nil, fmt.Errorf("%s: fields are missing %q: %w", op, PasswordField, ErrInvalidParameter)
		}
	}
	return c, nil
}

func (c *Credentials) ID() string   { return CredentialsID }   // ID implements the Provider.ID() interface function
func (c *Credentials) Name() string { return c.name }          // Name implements the Provider.Name() interface function
func (c *Credentials) Type() Type   { return TypeCredentials } // Type implements the Provider.Type() interface function

// Fields returns a copy of the sign-in form fields.
func (c *Credentials) Fields() map[string]Field {
	cp := make(map[string]Field, len(c.fields))
	for k, v := range c.fields {
		cp[k] = v
	}
	return cp
}

// FieldNames returns the form field names in sorted order.
func (c *Credentials) FieldNames() []string {
	names := make([]string, 0, len(c.fields))
	for k := range c.fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Authorize is called by the auth middleware with the submitted form
// values. It returns the user for a matching password and nil when there is
// no such user.
func (c *Credentials) Authorize(ctx context.Context, credentials map[string]string) (*User, error) {
	const op = "Credentials.Authorize"
	u, err := c.verifier.Verify(ctx, credentials[PasswordField])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// MarshalJSON renders the descriptor in the shape the auth middleware
// expects. The verifier is not serializable and is omitted.
func (c *Credentials) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID          string           `json:"id"`
		Name        string           `json:"name"`
		Type        Type             `json:"type"`
		Credentials map[string]Field `json:"credentials"`
	}{
		ID:          c.ID(),
		Name:        c.name,
		Type:        c.Type(),
		Credentials: c.fields,
	})
}

// DemoPassword is the only password StaticVerifier accepts.
const DemoPassword = "password"

// DemoUser returns the fixed identity StaticVerifier signs in.
func DemoUser() *User {
	return &User{
		ID:    "1",
		Name:  "Fill Murray",
		Email: "bill@fillmurray.com",
		Image: "https://source.boringavatars.com/marble/120",
	}
}

// StaticVerifier is a development stub which accepts the literal password
// "password" and nothing else. It must not be used in production.
type StaticVerifier struct{}

// ensure that StaticVerifier implements the Verifier interface
var _ Verifier = StaticVerifier{}

// Verify implements the Verifier interface. It never returns an error.
func (StaticVerifier) Verify(_ context.Context, password string) (*User, error) {
	if password != DemoPassword {
		return nil, nil
	}
	return DemoUser(), nil
}
