// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/capauth/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testConfig = `
auth:
  secret: cli-secret
  github:
    clientId: cli-gh-id
    clientSecret: cli-gh-secret
  discord:
    clientId: cli-dc-id
    clientSecret: cli-dc-secret
authJs:
  basePath: /api/auth
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "runtime.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

// the tests disable environment overrides with a prefix no one sets, so they
// aren't affected by the environment they run in.
const testPrefix = "CAPAUTH_CLI_TEST"

func TestRun_Show(t *testing.T) {
	assert, require := assert.New(t), require.New(t)
	var stdout, stderr bytes.Buffer
	code := run([]string{"show", "-config", writeConfig(t, testConfig), "-env-prefix", testPrefix}, &stdout, &stderr)
	require.Equalf(0, code, "stderr: %s", stderr.String())

	out := stdout.String()
	for _, s := range []string{"cli-secret", "cli-gh-secret", "cli-dc-secret"} {
		assert.NotContains(out, s)
	}
	var m map[string]interface{}
	require.NoError(json.Unmarshal(stdout.Bytes(), &m))
	assert.Equal("/api/auth", m["basePath"])
	assert.Len(m["providers"], 3)
}

func TestRun_Check(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert := assert.New(t)
		var stdout, stderr bytes.Buffer
		code := run([]string{"check", "-config", writeConfig(t, testConfig), "-env-prefix", testPrefix}, &stdout, &stderr)
		assert.Equalf(0, code, "stderr: %s", stderr.String())
		assert.Contains(stdout.String(), "[credentials github discord]")
	})
	t.Run("missing-values", func(t *testing.T) {
		assert := assert.New(t)
		var stdout, stderr bytes.Buffer
		code := run([]string{"check", "-config", writeConfig(t, "auth:\n  secret: s\n"), "-env-prefix", testPrefix}, &stdout, &stderr)
		assert.Equal(1, code)
		assert.Contains(stderr.String(), "4 problem(s)")
		assert.Contains(stderr.String(), "github client id is empty")
		assert.Contains(stderr.String(), "discord client secret is empty")
	})
	t.Run("missing-file", func(t *testing.T) {
		assert := assert.New(t)
		var stdout, stderr bytes.Buffer
		code := run([]string{"check", "-config", filepath.Join(t.TempDir(), "nope.yaml")}, &stdout, &stderr)
		assert.Equal(1, code)
		assert.Contains(stderr.String(), "An error occurred assembling the auth config")
	})
}

func TestRun_GenSecret(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		assert := assert.New(t)
		var stdout, stderr bytes.Buffer
		assert.Equal(0, run([]string{"gensecret"}, &stdout, &stderr))
		assert.Len(strings.TrimSpace(stdout.String()), 64)
	})
	t.Run("length", func(t *testing.T) {
		assert := assert.New(t)
		var stdout, stderr bytes.Buffer
		assert.Equal(0, run([]string{"gensecret", "-length", "8"}, &stdout, &stderr))
		assert.Len(strings.TrimSpace(stdout.String()), 16)
	})
	t.Run("invalid-length", func(t *testing.T) {
		assert := assert.New(t)
		var stdout, stderr bytes.Buffer
		assert.Equal(1, run([]string{"gensecret", "-length", "0"}, &stdout, &stderr))
		assert.Empty(stdout.String())
	})
}

func TestRun_Hash(t *testing.T) {
	assert, require := assert.New(t), require.New(t)
	var stdout, stderr bytes.Buffer
	code := run([]string{"hash", "-password", "s3cret", "-cost", "4"}, &stdout, &stderr)
	require.Equalf(0, code, "stderr: %s", stderr.String())
	h := strings.TrimSpace(stdout.String())
	assert.NoError(bcrypt.CompareHashAndPassword([]byte(h), []byte("s3cret")))

	v, err := provider.NewBcryptVerifier(h, &provider.User{ID: "1"})
	require.NoError(err)
	assert.NotNil(v)
}

func TestRun_Usage(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{name: "no-args", wantCode: 2},
		{name: "unknown", args: []string{"serve"}, wantCode: 2},
		{name: "help", args: []string{"help"}, wantCode: 0},
		{name: "bad-flag", args: []string{"show", "-nope"}, wantCode: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, tt.wantCode, run(tt.args, &stdout, &stderr))
		})
	}
}
