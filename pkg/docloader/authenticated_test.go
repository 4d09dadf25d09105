/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package docloader

import (
	"crypto"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeSigner struct {
	signed bool
	keyID  string
}

func (s *fakeSigner) SignRequest(_ crypto.PrivateKey, pubKeyID string, r *http.Request, _ []byte) error {
	s.signed = true
	s.keyID = pubKeyID
	r.Header.Set("Signature", `keyId="`+pubKeyID+`"`)

	return nil
}

func TestNewAuthenticated_SignsRequest(t *testing.T) {
	var gotSignature string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSignature = r.Header.Get("Signature")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	signer := &fakeSigner{}

	loader := NewAuthenticated(signer, nil, "https://example.com/actor#main-key", WithPrivateNetworkAllowed())

	_, err := loader.LoadDocument(server.URL)
	require.NoError(t, err)
	require.True(t, signer.signed)
	require.Contains(t, gotSignature, "example.com/actor#main-key")
}
