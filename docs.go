// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// capauth provides the authentication configuration for a web application
// which signs users in with a username/password form, GitHub or Discord.
//
// The provider package describes each sign-in method (credentials, GitHub and
// Discord), and the authconfig package loads the runtime configuration
// (YAML file plus environment overrides) and assembles it into the config
// handed to the auth middleware.
package capauth
