/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ldsig

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"

	"github.com/piprate/json-gold/ld"
	"github.com/stretchr/testify/require"
)

func marshalPublicKeyPem(t *testing.T, pub *rsa.PublicKey) []byte {
	t.Helper()

	der, err := x509.MarshalPKIXPublicKey(pub)
	require.NoError(t, err)

	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
}

func testDoc() map[string]interface{} {
	return map[string]interface{}{
		"@context": map[string]interface{}{
			"title": "https://example.com/vocab#title",
		},
		"@id":   "https://example.com/objects/1",
		"title": "hello federation",
	}
}

func TestSigner_SignAndVerify(t *testing.T) {
	privKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	loader := ld.NewDefaultDocumentLoader(nil)

	signer := NewSigner(loader)

	doc := testDoc()

	sig, err := signer.Sign(doc, privKey, "https://example.com/actor#main-key")
	require.NoError(t, err)
	require.Equal(t, SignatureType, sig.Type)
	require.NotEmpty(t, sig.SignatureValue)

	pubKeyPem := marshalPublicKeyPem(t, &privKey.PublicKey)

	require.NoError(t, Verify(doc, sig, pubKeyPem, loader))
}

func TestVerify_TamperedDocumentFailsVerification(t *testing.T) {
	privKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	loader := ld.NewDefaultDocumentLoader(nil)
	signer := NewSigner(loader)

	doc := testDoc()

	sig, err := signer.Sign(doc, privKey, "https://example.com/actor#main-key")
	require.NoError(t, err)

	doc["title"] = "tampered"

	pubKeyPem := marshalPublicKeyPem(t, &privKey.PublicKey)

	require.Error(t, Verify(doc, sig, pubKeyPem, loader))
}

func TestVerify_WrongSignatureType(t *testing.T) {
	sig := &Signature{Type: "Ed25519Signature2020"}

	err := Verify(testDoc(), sig, nil, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported linked data signature type")
}
