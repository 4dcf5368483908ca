// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package provider

import "errors"

var (
	ErrInvalidParameter     = errors.New("invalid parameter")
	ErrNilParameter         = errors.New("nil parameter")
	ErrInvalidCACert        = errors.New("invalid CA certificate")
	ErrInvalidProfile       = errors.New("invalid profile")
	ErrInvalidPasswordHash  = errors.New("invalid password hash")
	ErrPasswordHashFailed   = errors.New("password hash failed")
	ErrUnsupportedFieldType = errors.New("unsupported field type")
)
