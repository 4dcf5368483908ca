// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the cost HashPassword uses when WithCost isn't
// provided.
const DefaultBcryptCost = bcrypt.DefaultCost

// MaxBcryptPasswordLength is the longest password bcrypt hashes in full; it
// ignores any bytes past it.
const MaxBcryptPasswordLength = 72

// BcryptVerifier is a Verifier which signs in one configured user when the
// submitted password matches a bcrypt hash. It is the drop-in replacement for
// StaticVerifier when the demo password must not be used.
type BcryptVerifier struct {
	hash []byte
	user *User
}

// ensure that BcryptVerifier implements the Verifier interface
var _ Verifier = (*BcryptVerifier)(nil)

// NewBcryptVerifier creates a verifier for the bcrypt hash which resolves to
// the user on success.
func NewBcryptVerifier(hash string, u *User) (*BcryptVerifier, error) {
	const op = "provider.NewBcryptVerifier"
	switch {
	case hash == "":
		return nil, fmt.Errorf("%s: hash is empty: %w", op, ErrInvalidParameter)
	case u == nil:
		return nil, fmt.Errorf("%s: user is nil: %w", op, ErrNilParameter)
	case u.ID == "":
		return nil, fmt.Errorf("%s: user id is empty: %w", op, ErrInvalidParameter)
	}
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", op, ErrInvalidPasswordHash, err)
	}
	return &BcryptVerifier{
		hash: []byte(hash),
		user: u.Clone(),
	}, nil
}

// Verify implements the Verifier interface. A password which doesn't match
// the hash, or is too long for bcrypt to compare in full, resolves to no user.
func (v *BcryptVerifier) Verify(ctx context.Context, password string) (*User, error) {
	const op = "BcryptVerifier.Verify"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if password == "" || len(password) > MaxBcryptPasswordLength {
		return nil, nil
	}
	err := bcrypt.CompareHashAndPassword(v.hash, []byte(password))
	switch {
	case err == nil:
		return v.user.Clone(), nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return nil, nil
	default:
		return nil, fmt.Errorf("%s: unable to compare password: %w", op, err)
	}
}

// HashPassword returns a bcrypt hash of the password suitable for
// NewBcryptVerifier. Passwords longer than MaxBcryptPasswordLength bytes are
// rejected. Supported options: WithCost
func HashPassword(password string, opt ...Option) (string, error) {
	const op = "provider.HashPassword"
	switch {
	case password == "":
		return "", fmt.Errorf("%s: password is empty: %w", op, ErrInvalidParameter)
	case len(password) > MaxBcryptPasswordLength:
		return "", fmt.Errorf("%s: password is longer than %d bytes: %w", op, MaxBcryptPasswordLength, ErrInvalidParameter)
	}
	opts := getBcryptOpts(opt...)
	if opts.withCost < bcrypt.MinCost || opts.withCost > bcrypt.MaxCost {
		return "", fmt.Errorf("%s: cost %d is outside [%d, %d]: %w", op, opts.withCost, bcrypt.MinCost, bcrypt.MaxCost, ErrInvalidParameter)
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), opts.withCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %s", op, ErrPasswordHashFailed, err)
	}
	return string(h), nil
}
