// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

/*
authconfig is a package for assembling the configuration of an application's
auth middleware from its runtime config.

The runtime config holds the middleware's secret, client credentials for the
GitHub and Discord oauth apps and a block of middleware options which is passed
through unchanged. LoadRuntimeConfig reads it once at startup from an optional
YAML file and environment variables:

	auth:
	  secret: ...                  # NUXT_AUTH_SECRET
	  github:
	    clientId: ...              # NUXT_AUTH_GITHUB_CLIENT_ID
	    clientSecret: ...          # NUXT_AUTH_GITHUB_CLIENT_SECRET
	  discord:
	    clientId: ...              # NUXT_AUTH_DISCORD_CLIENT_ID
	    clientSecret: ...          # NUXT_AUTH_DISCORD_CLIENT_SECRET
	authJs:
	  basePath: /api/auth          # NUXT_AUTH_JS_BASE_PATH
	  trustHost: true              # NUXT_AUTH_JS_TRUST_HOST

Assemble merges the passthrough options, the secret and the Credentials,
GitHub and Discord descriptors (in that order) into a Config. The password
check of the Credentials provider is injected as a provider.Verifier.

Assemble performs no validation; a missing secret or client credential
surfaces when the middleware first uses it. Config.Validate reports all of
them at once for callers that want to fail fast.
*/
package authconfig
