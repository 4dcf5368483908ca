// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package authconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/capauth/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEnv returns a LookupEnvFunc backed by the map
func testEnv(env map[string]string) LookupEnvFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoadRuntimeConfig(t *testing.T) {
	t.Parallel()
	emptyFile := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(emptyFile, nil, 0o600))
	intKeysFile := filepath.Join(t.TempDir(), "int-keys.yaml")
	require.NoError(t, os.WriteFile(intKeysFile, []byte("authJs:\n  session:\n    1: x\n    maxAge: 60\n"), 0o600))
	badFile := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(badFile, []byte("auth: [not, a, map"), 0o600))

	fromFile := &RuntimeConfig{
		Auth: AuthSettings{
			Secret:  "file-secret",
			GitHub:  ClientCredentials{ClientID: "file-gh-id", ClientSecret: "file-gh-secret"},
			Discord: ClientCredentials{ClientID: "file-dc-id", ClientSecret: "file-dc-secret"},
		},
		AuthJS: Options{
			BasePath:  "/api/auth",
			TrustHost: true,
			Secret:    "authjs-default-secret",
			Extra: map[string]interface{}{
				"session": map[string]interface{}{"strategy": "jwt"},
				"pages":   map[string]interface{}{"signIn": "/login"},
			},
		},
	}

	tests := []struct {
		name      string
		opt       []Option
		want      *RuntimeConfig
		wantErr   bool
		wantIsErr error
	}{
		{
			name: "nothing-set",
			opt:  []Option{WithLookupEnv(testEnv(nil))},
			want: &RuntimeConfig{},
		},
		{
			name: "file-only",
			opt:  []Option{WithConfigFile("testdata/runtime.yaml"), WithLookupEnv(testEnv(nil))},
			want: fromFile,
		},
		{
			name: "env-only",
			opt: []Option{WithLookupEnv(testEnv(map[string]string{
				"NUXT_AUTH_SECRET":                "env-secret",
				"NUXT_AUTH_GITHUB_CLIENT_ID":      "env-gh-id",
				"NUXT_AUTH_GITHUB_CLIENT_SECRET":  "env-gh-secret",
				"NUXT_AUTH_DISCORD_CLIENT_ID":     "env-dc-id",
				"NUXT_AUTH_DISCORD_CLIENT_SECRET": "env-dc-secret",
				"NUXT_AUTH_JS_BASE_PATH":          "/auth",
				"NUXT_AUTH_JS_TRUST_HOST":         "true",
				"NUXT_AUTH_JS_DEBUG":              "1",
				"NUXT_AUTH_JS_SECRET":             "env-default",
				"UNRELATED":                       "ignored",
			}))},
			want: &RuntimeConfig{
				Auth: AuthSettings{
					Secret:  "env-secret",
					GitHub:  ClientCredentials{ClientID: "env-gh-id", ClientSecret: "env-gh-secret"},
					Discord: ClientCredentials{ClientID: "env-dc-id", ClientSecret: "env-dc-secret"},
				},
				AuthJS: Options{BasePath: "/auth", TrustHost: true, Debug: true, Secret: "env-default"},
			},
		},
		{
			name: "env-overrides-file",
			opt: []Option{
				WithConfigFile("testdata/runtime.yaml"),
				WithLookupEnv(testEnv(map[string]string{
					"NUXT_AUTH_SECRET":           "env-secret",
					"NUXT_AUTH_DISCORD_CLIENT_ID": "",
				})),
			},
			want: func() *RuntimeConfig {
				rc := *fromFile
				rc.Auth.Secret = "env-secret"
				rc.Auth.Discord.ClientID = ""
				return &rc
			}(),
		},
		{
			name: "empty-bool-is-false",
			opt: []Option{
				WithConfigFile("testdata/runtime.yaml"),
				WithLookupEnv(testEnv(map[string]string{
					"NUXT_AUTH_JS_TRUST_HOST": "",
					"NUXT_AUTH_JS_DEBUG":      " ",
				})),
			},
			want: func() *RuntimeConfig {
				rc := *fromFile
				rc.AuthJS.TrustHost = false
				return &rc
			}(),
		},
		{
			name: "non-string-keys",
			opt:  []Option{WithConfigFile(intKeysFile), WithLookupEnv(testEnv(nil))},
			want: &RuntimeConfig{AuthJS: Options{Extra: map[string]interface{}{
				"session": map[string]interface{}{"1": "x", "maxAge": 60},
			}}},
		},
		{
			name: "custom-prefix",
			opt: []Option{
				WithEnvPrefix("APP"),
				WithLookupEnv(testEnv(map[string]string{
					"APP_AUTH_SECRET":  "app-secret",
					"NUXT_AUTH_SECRET": "nuxt-secret",
				})),
			},
			want: &RuntimeConfig{Auth: AuthSettings{Secret: "app-secret"}},
		},
		{
			name: "no-prefix-disables-env",
			opt: []Option{
				WithEnvPrefix(""),
				WithLookupEnv(testEnv(map[string]string{"NUXT_AUTH_SECRET": "nuxt-secret"})),
			},
			want: &RuntimeConfig{},
		},
		{
			name: "empty-file",
			opt:  []Option{WithConfigFile(emptyFile), WithLookupEnv(testEnv(nil))},
			want: &RuntimeConfig{},
		},
		{
			name:    "missing-file",
			opt:     []Option{WithConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))},
			wantErr: true,
		},
		{
			name:      "bad-yaml",
			opt:       []Option{WithConfigFile(badFile)},
			wantErr:   true,
			wantIsErr: ErrInvalidFile,
		},
		{
			name:      "bad-bool",
			opt:       []Option{WithLookupEnv(testEnv(map[string]string{"NUXT_AUTH_JS_TRUST_HOST": "yes please"}))},
			wantErr:   true,
			wantIsErr: ErrInvalidParameter,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert, require := assert.New(t), require.New(t)
			got, err := LoadRuntimeConfig(tt.opt...)
			if tt.wantErr {
				require.Error(err)
				if tt.wantIsErr != nil {
					assert.ErrorIs(err, tt.wantIsErr)
				}
				assert.Nil(got)
				return
			}
			require.NoError(err)
			assert.Equal(tt.want, got)
		})
	}
}

func TestLoadRuntimeConfig_Assemble(t *testing.T) {
	t.Parallel()
	assert, require := assert.New(t), require.New(t)
	rc, err := LoadRuntimeConfig(
		WithConfigFile("testdata/runtime.yaml"),
		WithLookupEnv(testEnv(map[string]string{"NUXT_AUTH_GITHUB_CLIENT_ID": "env-gh-id"})),
	)
	require.NoError(err)
	c, err := Assemble(rc, provider.StaticVerifier{})
	require.NoError(err)
	require.NoError(c.Validate())

	assert.Equal(provider.ClientSecret("file-secret"), c.Secret)
	p, ok := c.Provider(provider.GitHubID)
	require.True(ok)
	assert.Equal("env-gh-id", p.(*provider.GitHub).ClientID())
}

func TestLoadRuntimeConfig_NonStringKeysMarshal(t *testing.T) {
	t.Parallel()
	assert, require := assert.New(t), require.New(t)
	f := filepath.Join(t.TempDir(), "runtime.yaml")
	require.NoError(os.WriteFile(f, []byte("auth:\n  secret: s\nauthJs:\n  session:\n    1: x\n"), 0o600))
	rc, err := LoadRuntimeConfig(WithConfigFile(f), WithLookupEnv(testEnv(nil)))
	require.NoError(err)
	c, err := Assemble(rc, provider.StaticVerifier{})
	require.NoError(err)
	got, err := json.Marshal(c)
	require.NoError(err)
	assert.Contains(string(got), `"session":{"1":"x"}`)
}

func TestEnvNames(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	got := EnvNames(DefaultEnvPrefix)
	assert.Equal([]string{
		"NUXT_AUTH_SECRET",
		"NUXT_AUTH_GITHUB_CLIENT_ID",
		"NUXT_AUTH_GITHUB_CLIENT_SECRET",
		"NUXT_AUTH_DISCORD_CLIENT_ID",
		"NUXT_AUTH_DISCORD_CLIENT_SECRET",
		"NUXT_AUTH_JS_BASE_PATH",
		"NUXT_AUTH_JS_SECRET",
		"NUXT_AUTH_JS_TRUST_HOST",
		"NUXT_AUTH_JS_DEBUG",
	}, got)
}
