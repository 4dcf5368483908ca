// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package authconfig

import "errors"

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrNilParameter     = errors.New("nil parameter")
	ErrMissingValue     = errors.New("missing value")
	ErrDuplicateID      = errors.New("duplicate provider id")
	ErrInvalidFile      = errors.New("invalid config file")
)
