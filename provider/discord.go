// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/oauth2"
)

const (
	DiscordID          = "discord"
	DiscordName        = "Discord"
	DiscordUserInfoURL = "https://discord.com/api/users/@me"

	discordCDN = "https://cdn.discordapp.com"
)

// DiscordEndpoint is Discord's oauth2 endpoint.
var DiscordEndpoint = oauth2.Endpoint{
	AuthURL:   "https://discord.com/api/oauth2/authorize",
	TokenURL:  "https://discord.com/api/oauth2/token",
	AuthStyle: oauth2.AuthStyleInParams,
}

// DiscordDefaultScopes are always requested from Discord.
var DiscordDefaultScopes = []string{"identify", "email"}

// Discord is the descriptor for Discord's oauth2 flow.
type Discord struct {
	*OAuth
}

// NewDiscord creates a Discord descriptor for the application's client
// credentials.
// Supported options: WithScopes, WithProviderCA, WithUserInfoURL, WithName
func NewDiscord(clientID string, clientSecret ClientSecret, opt ...Option) *Discord {
	return &Discord{
		OAuth: newOAuth(DiscordID, DiscordName, clientID, clientSecret, DiscordEndpoint, DiscordUserInfoURL, DiscordDefaultScopes, discordProfile, opt...),
	}
}

// discordProfile maps https://discord.com/api/users/@me. The display name
// falls back to the username when global_name isn't set.
func discordProfile(raw map[string]interface{}) (*User, error) {
	id, err := idClaim(raw, "id")
	if err != nil {
		return nil, err
	}
	name := stringClaim(raw, "global_name")
	if name == "" {
		name = stringClaim(raw, "username")
	}
	image, err := discordAvatarURL(id, stringClaim(raw, "avatar"), stringClaim(raw, "discriminator"))
	if err != nil {
		return nil, err
	}
	return &User{
		ID:    id,
		Name:  name,
		Email: stringClaim(raw, "email"),
		Image: image,
	}, nil
}

// discordAvatarURL returns the user's avatar, or one of Discord's default
// avatars when the user has none. Users migrated to unique usernames have a
// "0" discriminator and their default avatar is derived from the id.
func discordAvatarURL(id, avatar, discriminator string) (string, error) {
	if avatar != "" {
		format := "png"
		if strings.HasPrefix(avatar, "a_") {
			format = "gif"
		}
		return fmt.Sprintf("%s/avatars/%s/%s.%s", discordCDN, id, avatar, format), nil
	}
	var n uint64
	switch discriminator {
	case "", "0":
		snowflake, err := strconv.ParseUint(id, 10, 64)
		if err != nil {
			return "", fmt.Errorf("id %q is not a snowflake: %w", id, ErrInvalidProfile)
		}
		n = (snowflake >> 22) % 6
	default:
		d, err := strconv.ParseUint(discriminator, 10, 64)
		if err != nil {
			return "", fmt.Errorf("discriminator %q is not a number: %w", discriminator, ErrInvalidProfile)
		}
		n = d % 5
	}
	return fmt.Sprintf("%s/embed/avatars/%d.png", discordCDN, n), nil
}
