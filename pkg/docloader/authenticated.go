/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package docloader

import (
	"crypto"
	"fmt"
	"net/http"

	"github.com/piprate/json-gold/ld"
)

// requestSigner signs an HTTP GET request in place, the same contract the
// teacher's activitypub/client/transport.Signer exposes, so the adapted
// pkg/httpsig.Signer can be used here unchanged.
type requestSigner interface {
	SignRequest(pKey crypto.PrivateKey, pubKeyID string, r *http.Request, body []byte) error
}

// signingRoundTripper is an httpClient that signs every outgoing request
// before delegating to the wrapped *http.Client, so HTTPLoader's GET/Accept
// header handling is reused unchanged for the authenticated case.
type signingRoundTripper struct {
	client      httpClient
	signer      requestSigner
	privateKey  crypto.PrivateKey
	publicKeyID string
}

func (t *signingRoundTripper) Do(req *http.Request) (*http.Response, error) {
	if err := t.signer.SignRequest(t.privateKey, t.publicKeyID, req, nil); err != nil {
		return nil, fmt.Errorf("sign document fetch request: %w", err)
	}

	return t.client.Do(req)
}

// NewAuthenticated returns an HTTPLoader that HTTP-signs every outbound GET
// with the given actor key pair, for fetching documents from servers
// running in authorized-fetch ("secure mode") that reject anonymous GETs.
func NewAuthenticated(
	signer requestSigner, privateKey crypto.PrivateKey, publicKeyID string, opts ...Option,
) *HTTPLoader {
	l := New(opts...)

	l.client = &signingRoundTripper{
		client:      l.client,
		signer:      signer,
		privateKey:  privateKey,
		publicKeyID: publicKeyID,
	}

	return l
}

var _ ld.DocumentLoader = (*HTTPLoader)(nil)
