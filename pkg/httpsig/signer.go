/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package httpsig adapts the HTTP Signatures (draft-cavage) signer and
// verifier to the federation engine's key-pair and document-loader
// abstractions, operating on crypto.PrivateKey directly rather than a
// KMS-bound signature interface.
package httpsig

import (
	"crypto"
	"fmt"
	"net/http"
	"time"

	"github.com/go-fed/httpsig"

	"github.com/trustbloc/fedigo/internal/pkg/log"
)

var logger = log.New("httpsig")

const (
	dateHeader        = "Date"
	defaultExpiration = 60 * time.Second
)

// SignerConfig contains the configuration for signing HTTP requests. Only
// RSASSA-PKCS1-v1.5 SHA-256 is supported for signing, matching the rest of
// the fediverse's interop expectations for outbound requests (incoming
// requests signed with anything else are simply rejected by the Verifier,
// below, rather than accepted and silently downgraded).
type SignerConfig struct {
	Headers    []string
	Expiration time.Duration
}

// DefaultGetSignerConfig returns the default configuration for signing HTTP GET requests.
func DefaultGetSignerConfig() SignerConfig {
	return SignerConfig{Headers: []string{"(request-target)", "Date", "Host"}}
}

// DefaultPostSignerConfig returns the default configuration for signing HTTP POST requests.
func DefaultPostSignerConfig() SignerConfig {
	return SignerConfig{Headers: []string{"(request-target)", "Date", "Host", "Digest"}}
}

// Signer signs HTTP requests with RSASSA-PKCS1-v1.5 SHA-256, computing a
// SHA-256 body digest when a body is present.
type Signer struct {
	SignerConfig
}

// NewSigner returns a new signer.
func NewSigner(cfg SignerConfig) *Signer {
	s := &Signer{SignerConfig: cfg}

	if s.Expiration == 0 {
		s.Expiration = defaultExpiration
	}

	return s
}

// SignRequest signs an HTTP request in place, adding the Date, Digest
// (when body is non-empty), and Signature headers. "Digest" is added to the
// signed headers whenever body is non-empty, even if it is not among the
// configured header names; requests with no body carry no Digest header.
func (s *Signer) SignRequest(pKey crypto.PrivateKey, pubKeyID string, req *http.Request, body []byte) error {
	logger.Debugf("Signing request for %s. Public key ID [%s]", req.RequestURI, pubKeyID)

	headers := s.Headers
	if !hasDigestHeader(headers) && len(body) > 0 {
		headers = append(append([]string{}, headers...), "Digest")
	}

	signer, _, err := httpsig.NewSigner(
		[]httpsig.Algorithm{httpsig.RSA_SHA256}, httpsig.DigestSha256, headers,
		httpsig.Signature, int64(s.Expiration.Seconds()))
	if err != nil {
		return fmt.Errorf("new signer: %w", err)
	}

	req.Header.Set(dateHeader, date())

	if err := signer.SignRequest(pKey, pubKeyID, req, body); err != nil {
		return fmt.Errorf("sign request: %w", err)
	}

	return nil
}

func hasDigestHeader(headers []string) bool {
	for _, h := range headers {
		if h == "Digest" {
			return true
		}
	}

	return false
}

func date() string {
	return fmt.Sprintf("%s GMT", time.Now().UTC().Format("Mon, 02 Jan 2006 15:04:05"))
}
