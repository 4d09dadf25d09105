/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package fedcontext

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/piprate/json-gold/ld"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/fedigo/pkg/activitypub/vocab"
	"github.com/trustbloc/fedigo/pkg/httpsig"
)

// fakeLoader serves a single, fixed in-memory document regardless of the
// requested URL, so key-owner resolution in tests doesn't need real HTTP.
type fakeLoader struct {
	doc interface{}
}

func (f *fakeLoader) LoadDocument(u string) (*ld.RemoteDocument, error) {
	return &ld.RemoteDocument{DocumentURL: u, Document: f.doc}, nil
}

func newSignedRequest(t *testing.T, privKey *rsa.PrivateKey, keyID string) *http.Request {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, "https://example.com/actors/alice/inbox", nil)
	require.NoError(t, err)

	req.Header.Set("Date", "Thu, 01 Jan 2026 00:00:00 GMT")
	req.Header.Set("Host", req.URL.Host)

	signer := httpsig.NewSigner(httpsig.DefaultGetSignerConfig())
	require.NoError(t, signer.SignRequest(privKey, keyID, req, nil))

	return req
}

func TestRequestContext_GetActor(t *testing.T) {
	c := newTestContext(t)

	called := 0

	c.cfg.ActorDispatcher = func(_ context.Context, identifier string) (*vocab.ActorType, error) {
		called++

		return vocab.NewPerson(c.GetActorURI(identifier)), nil
	}

	req, err := http.NewRequest(http.MethodGet, c.GetActorURI("alice").String(), nil)
	require.NoError(t, err)

	rc := NewRequestContext(c, req)

	actor, err := rc.GetActor(context.Background())
	require.NoError(t, err)
	require.Equal(t, c.GetActorURI("alice").String(), actor.ID().String())

	// Second call is memoized: the dispatcher does not run again.
	_, err = rc.GetActor(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, called)
}

func TestRequestContext_GetActor_NoDispatcher(t *testing.T) {
	c := newTestContext(t)

	req, err := http.NewRequest(http.MethodGet, c.GetActorURI("alice").String(), nil)
	require.NoError(t, err)

	rc := NewRequestContext(c, req)

	_, err = rc.GetActor(context.Background())
	require.Error(t, err)
}

func TestRequestContext_GetObject(t *testing.T) {
	c := newTestContext(t)

	c.cfg.ObjectDispatcher = func(_ context.Context, class string, values map[string]string) (*vocab.ObjectType, error) {
		require.Equal(t, "note", class)
		require.Equal(t, "123", values["id"])

		return vocab.NewObject(vocab.WithID(c.GetObjectURI("note", "id", "123"))), nil
	}

	req, err := http.NewRequest(http.MethodGet, c.GetObjectURI("note", "id", "123").String(), nil)
	require.NoError(t, err)

	rc := NewRequestContext(c, req)

	obj, err := rc.GetObject(context.Background())
	require.NoError(t, err)
	require.Equal(t, c.GetObjectURI("note", "id", "123").String(), obj.ID().String())
}

func TestRequestContext_GetSignedKey_NoSignatureHeader(t *testing.T) {
	c := newTestContext(t)

	req, err := http.NewRequest(http.MethodGet, c.GetInboxURI("alice").String(), nil)
	require.NoError(t, err)

	rc := NewRequestContext(c, req)

	key, err := rc.GetSignedKey(context.Background())
	require.NoError(t, err)
	require.Nil(t, key)

	owner, err := rc.GetSignedKeyOwner(context.Background())
	require.NoError(t, err)
	require.Nil(t, owner)
}

func TestRequestContext_GetSignedKey_ResolvesOwnerAndKey(t *testing.T) {
	privKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	ownerURL, err := url.Parse("https://remote.example/actors/bob")
	require.NoError(t, err)

	keyID := ownerURL.String() + "#main-key"

	pubKeyPEM, err := encodeRSAPublicKeyPEM(&privKey.PublicKey)
	require.NoError(t, err)

	owner := vocab.NewPerson(ownerURL, vocab.WithPublicKey(vocab.NewPublicKey(
		vocab.WithID(mustParseURL(keyID)),
		vocab.WithOwner(ownerURL),
		vocab.WithPublicKeyPem(pubKeyPEM),
	)))

	ownerBytes, err := json.Marshal(owner)
	require.NoError(t, err)

	var ownerDoc interface{}
	require.NoError(t, json.Unmarshal(ownerBytes, &ownerDoc))

	base, err := url.Parse("https://example.com")
	require.NoError(t, err)

	c := New(&Config{
		BaseURL:               base,
		Router:                newTestRouter(t),
		DocumentLoaderFactory: func() ld.DocumentLoader { return &fakeLoader{doc: ownerDoc} },
	})

	req := newSignedRequest(t, privKey, keyID)

	rc := NewRequestContext(c, req)

	key, err := rc.GetSignedKey(context.Background())
	require.NoError(t, err)
	require.NotNil(t, key)
	require.NotNil(t, key.CryptographicKey)
	require.Equal(t, keyID, key.CryptographicKey.ID)
	require.Equal(t, ownerURL.String(), key.OwnerID.String())

	gotOwner, err := rc.GetSignedKeyOwner(context.Background())
	require.NoError(t, err)
	require.Equal(t, ownerURL.String(), gotOwner.ID().String())
}

// Sanity check that the HTTP round trip a real inbox dispatch exercises
// (request constructed by httptest, not by hand) still carries the
// Signature header the way GetSignedKey expects to find it.
func TestRequestContext_GetSignedKey_ViaHTTPServer(t *testing.T) {
	privKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	keyID := "https://remote.example/actors/bob#main-key"

	var gotHeader string

	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("Signature")
	}))
	defer server.Close()

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	req.Header.Set("Date", "Thu, 01 Jan 2026 00:00:00 GMT")
	req.Header.Set("Host", req.URL.Host)

	signer := httpsig.NewSigner(httpsig.DefaultGetSignerConfig())
	require.NoError(t, signer.SignRequest(privKey, keyID, req, nil))

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Contains(t, gotHeader, keyID)
}
