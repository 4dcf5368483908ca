// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"golang.org/x/oauth2/github"
)

const (
	GitHubID          = "github"
	GitHubName        = "GitHub"
	GitHubUserInfoURL = "https://api.github.com/user"
)

// GitHubDefaultScopes are always requested from GitHub.
var GitHubDefaultScopes = []string{"read:user", "user:email"}

// GitHub is the descriptor for GitHub's oauth app flow.
type GitHub struct {
	*OAuth
}

// NewGitHub creates a GitHub descriptor for the oauth app's client
// credentials.
// Supported options: WithScopes, WithProviderCA, WithUserInfoURL, WithName
func NewGitHub(clientID string, clientSecret ClientSecret, opt ...Option) *GitHub {
	return &GitHub{
		OAuth: newOAuth(GitHubID, GitHubName, clientID, clientSecret, github.Endpoint, GitHubUserInfoURL, GitHubDefaultScopes, gitHubProfile, opt...),
	}
}

// gitHubProfile maps https://api.github.com/user. The display name falls back
// to the login for users who haven't set one.
func gitHubProfile(raw map[string]interface{}) (*User, error) {
	id, err := idClaim(raw, "id")
	if err != nil {
		return nil, err
	}
	name := stringClaim(raw, "name")
	if name == "" {
		name = stringClaim(raw, "login")
	}
	return &User{
		ID:    id,
		Name:  name,
		Email: stringClaim(raw, "email"),
		Image: stringClaim(raw, "avatar_url"),
	}, nil
}
