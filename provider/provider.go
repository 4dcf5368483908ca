// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package provider

// Type is the kind of authentication a Provider descriptor represents.
type Type string

const (
	TypeCredentials Type = "credentials"
	TypeOAuth       Type = "oauth"
)

// Provider is a declarative descriptor that tells an auth middleware how to
// authenticate a user with one method. Descriptors are immutable once
// constructed.
type Provider interface {
	// ID is the provider's stable identifier (e.g. "github"), used by the
	// middleware to build its sign-in and callback routes.
	ID() string

	// Name is the human readable name of the provider.
	Name() string

	// Type is the provider's kind.
	Type() Type
}

// User is the identity record an authentication method resolves to.
type User struct {
	// ID is a stable identifier for the user within the provider.
	ID string `json:"id"`

	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`

	// Image is a URL to the user's avatar.
	Image string `json:"image,omitempty"`
}

// Clone returns a copy of the user, or nil if the user is nil.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	cp := *u
	return &cp
}
