/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package httpsig

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSigner_GET(t *testing.T) {
	s := NewSigner(DefaultGetSignerConfig())

	privKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, "https://domain1.com/inbox", nil)
	require.NoError(t, err)

	require.NoError(t, s.SignRequest(privKey, "https://domain1.com/actor#main-key", req, nil))

	require.NotEmpty(t, req.Header.Get(dateHeader))
	require.NotEmpty(t, req.Header.Get("Signature"))
	require.Empty(t, req.Header.Get("Digest"))
}

func TestSigner_POST(t *testing.T) {
	s := NewSigner(DefaultPostSignerConfig())

	privKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	body := []byte(`{"type":"Create"}`)

	req, err := http.NewRequest(http.MethodPost, "https://domain1.com/inbox", bytes.NewReader(body))
	require.NoError(t, err)

	require.NoError(t, s.SignRequest(privKey, "https://domain1.com/actor#main-key", req, body))

	require.NotEmpty(t, req.Header.Get("Digest"))
	require.Contains(t, req.Header.Get("Signature"), "headers=")
}
