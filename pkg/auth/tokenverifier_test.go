/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/fedigo/pkg/auth"
)

func testConfig() auth.Config {
	return auth.Config{
		AuthTokensDef: []*auth.TokenDef{
			{
				EndpointExpression: "/actors/.+/outbox",
				ReadTokens:         []string{"admin", "read"},
				WriteTokens:        []string{"admin"},
			},
			{
				EndpointExpression: "/actors/.+/inbox",
				WriteTokens:        []string{"admin"},
			},
		},
		AuthTokens: map[string]string{
			"read":  "READ_TOKEN",
			"admin": "ADMIN_TOKEN",
		},
	}
}

func TestTokenVerifier_Verify(t *testing.T) {
	t.Run("open access for an unmatched endpoint", func(t *testing.T) {
		v := auth.NewTokenVerifier(testConfig(), "/.well-known/webfinger", http.MethodGet)

		req := httptest.NewRequest(http.MethodGet, "/.well-known/webfinger", nil)
		require.True(t, v.Verify(req))
	})

	t.Run("GET with no token is unauthorized", func(t *testing.T) {
		v := auth.NewTokenVerifier(testConfig(), "/actors/alice/outbox", http.MethodGet)

		req := httptest.NewRequest(http.MethodGet, "/actors/alice/outbox", nil)
		require.False(t, v.Verify(req))
	})

	t.Run("GET with a read token is authorized", func(t *testing.T) {
		v := auth.NewTokenVerifier(testConfig(), "/actors/alice/outbox", http.MethodGet)

		req := httptest.NewRequest(http.MethodGet, "/actors/alice/outbox", nil)
		req.Header.Set("Authorization", "Bearer READ_TOKEN")
		require.True(t, v.Verify(req))
	})

	t.Run("POST with a read-only token is unauthorized", func(t *testing.T) {
		v := auth.NewTokenVerifier(testConfig(), "/actors/alice/inbox", http.MethodPost)

		req := httptest.NewRequest(http.MethodPost, "/actors/alice/inbox", nil)
		req.Header.Set("Authorization", "Bearer READ_TOKEN")
		require.False(t, v.Verify(req))
	})

	t.Run("POST with the admin token is authorized", func(t *testing.T) {
		v := auth.NewTokenVerifier(testConfig(), "/actors/alice/inbox", http.MethodPost)

		req := httptest.NewRequest(http.MethodPost, "/actors/alice/inbox", nil)
		req.Header.Set("Authorization", "Bearer ADMIN_TOKEN")
		require.True(t, v.Verify(req))
	})

	t.Run("unknown tokenID panics at construction", func(t *testing.T) {
		cfg := auth.Config{
			AuthTokensDef: []*auth.TokenDef{
				{EndpointExpression: "/actors/.+/outbox", ReadTokens: []string{"missing"}},
			},
		}

		require.Panics(t, func() {
			auth.NewTokenVerifier(cfg, "/actors/alice/outbox", http.MethodGet)
		})
	})
}

func TestTokenVerifier_Authorize(t *testing.T) {
	v := auth.NewTokenVerifier(testConfig(), "/actors/alice/outbox", http.MethodGet)

	t.Run("ok maps to zero status", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/actors/alice/outbox", nil)
		req.Header.Set("Authorization", "Bearer READ_TOKEN")

		status, ok := v.Authorize(req)
		require.True(t, ok)
		require.Zero(t, status)
	})

	t.Run("rejected maps to 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/actors/alice/outbox", nil)

		status, ok := v.Authorize(req)
		require.False(t, ok)
		require.Equal(t, http.StatusUnauthorized, status)
	})
}
