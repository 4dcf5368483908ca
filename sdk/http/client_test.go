// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Parallel()
	t.Run("system-ca", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		c, err := NewClient("")
		require.NoError(err)
		tr, ok := c.Transport.(*http.Transport)
		require.True(ok)
		assert.Nil(tr.TLSClientConfig)
	})
	t.Run("invalid-pem", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		c, err := NewClient("not a pem")
		require.Error(err)
		assert.ErrorIs(err, ErrInvalidCertificatePem)
		assert.Nil(c)
	})
	t.Run("custom-ca", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		c, err := NewClient(testCertPEM(t, srv))
		require.NoError(err)
		resp, err := c.Get(srv.URL)
		require.NoError(err)
		defer resp.Body.Close()
		assert.Equal(http.StatusNoContent, resp.StatusCode)
	})
}
