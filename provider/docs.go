// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

/*
provider is a package of declarative descriptors for the authentication methods
an application offers its users: a password based Credentials provider and
oauth2 identity providers (GitHub and Discord).

A descriptor tells an auth middleware how to authenticate via one method. The
middleware owns the rest: the authorization code flow, token exchange and
refresh, session cookies and CSRF protection. Descriptors only carry client
credentials, endpoints, scopes and the mapping from a provider's profile to a
User.

The password check of the Credentials provider is delegated to a Verifier.
StaticVerifier is a development stub which accepts the literal password
"password"; BcryptVerifier checks against a bcrypt hash:

	hash, _ := provider.HashPassword("correct horse battery staple")
	v, _ := provider.NewBcryptVerifier(hash, &provider.User{ID: "1", Email: "admin@example.com"})
	creds, _ := provider.NewCredentials(v)
	u, _ := creds.Authorize(ctx, map[string]string{"password": submitted})
	if u == nil {
		// no such user
	}

Client secrets are typed as ClientSecret which redacts itself when printed or
marshaled to JSON.
*/
package provider
