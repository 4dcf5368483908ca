// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package secret

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/hashicorp/go-uuid"
)

// DefaultLength is the number of random bytes New uses when asked for the
// default secret length.
const DefaultLength = 32

var ErrInvalidParameter = errors.New("invalid parameter")

// New generates a hex encoded secret of length random bytes, suitable for
// signing and encrypting the auth middleware's session cookies.
func New(length int) (string, error) {
	const op = "secret.New"
	if length <= 0 {
		return "", fmt.Errorf("%s: length %d not greater than zero: %w", op, length, ErrInvalidParameter)
	}
	b, err := uuid.GenerateRandomBytes(length)
	if err != nil {
		return "", fmt.Errorf("%s: unable to generate secret: %w", op, err)
	}
	return hex.EncodeToString(b), nil
}
