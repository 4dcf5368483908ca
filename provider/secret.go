// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package provider

import "encoding/json"

// ClientSecret is an oauth client secret (or any other secret value) which
// redacts itself when printed or marshaled to json.
type ClientSecret string

// RedactedClientSecret is the redacted string or json for a client secret
const RedactedClientSecret = "[REDACTED: client secret]"

// String will redact the client secret
func (t ClientSecret) String() string {
	return RedactedClientSecret
}

// MarshalJSON will redact the client secret
func (t ClientSecret) MarshalJSON() ([]byte, error) {
	return json.Marshal(RedactedClientSecret)
}
