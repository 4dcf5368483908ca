// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package capauth_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hashicorp/capauth/authconfig"
	"github.com/hashicorp/capauth/provider"
)

func Example_authconfig() {
	ctx := context.Background()

	// Load the runtime config from a file, applying any NUXT_AUTH_* environment
	// overrides.
	rc, err := authconfig.LoadRuntimeConfig(authconfig.WithConfigFile("runtime.yaml"))
	if err != nil {
		// handle error
	}

	// Assemble the auth config using the demo credentials verifier.
	c, err := authconfig.Assemble(rc, provider.StaticVerifier{})
	if err != nil {
		// handle error
	}
	if err := c.Validate(); err != nil {
		// handle error
	}

	// Authorize a credentials sign-in attempt.
	p, _ := c.Provider(provider.CredentialsID)
	u, err := p.(*provider.Credentials).Authorize(ctx, map[string]string{provider.PasswordField: "password"})
	if err != nil {
		// handle error
	}
	fmt.Println("signed in:", u.Name)

	// Serve the assembled config, secrets redacted.
	http.HandleFunc("/auth/config", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewEncoder(w).Encode(c); err != nil {
			// handle error
		}
	})
}
