/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package httpsig

import (
	"crypto/rsa"
	"crypto/sha1" //nolint:gosec // gated behind Config.AllowLegacySHA1Digest, off by default.
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-fed/httpsig"

	orberrors "github.com/trustbloc/fedigo/pkg/ferrors"
)

const (
	digestHeaderName    = "Digest"
	signatureHeaderName = "Signature"
	requestTargetPseudo = "(request-target)"
	defaultVerifyWindow = time.Hour
)

// ResolvedKey is the public key returned by a successful VerifyRequest.
type ResolvedKey struct {
	// KeyID is the signature's keyId, typically an actor's "#main-key" IRI.
	KeyID string
	// Owner is the IRI of the actor that owns the key, as reported by the KeyFetcher.
	Owner string
	// PublicKey is the parsed public key.
	PublicKey *rsa.PublicKey
}

// KeyFetcher resolves the PEM-encoded public key and owner actor IRI for a
// signature's keyId. Implementations typically fetch the key's owning
// actor document through the federation engine's (possibly cached,
// possibly authenticated) document loader.
type KeyFetcher interface {
	FetchKey(keyID string) (pemBytes []byte, ownerIRI string, err error)
}

// Config contains the configuration for verifying HTTP requests.
type Config struct {
	// Window is how far the Date header may drift from now before verification
	// fails. Zero selects the default (1 hour); use DisableWindow to turn the
	// check off entirely.
	Window time.Duration
	// DisableWindow disables the Date freshness check.
	DisableWindow bool
	// AllowLegacySHA1Digest accepts a SHA-1 digest in the Digest header as an
	// alternative to SHA-256, for interop with legacy Mastodon-family senders.
	// Off by default; new deployments should leave this false.
	AllowLegacySHA1Digest bool
}

// DefaultConfig returns the default verifier configuration: a one-hour date
// window, SHA-1 digest interop disabled.
func DefaultConfig() Config {
	return Config{Window: defaultVerifyWindow}
}

// Verifier verifies HTTP Signatures (draft-cavage) on incoming requests.
type Verifier struct {
	Config
	fetcher KeyFetcher
}

// NewVerifier returns a new Verifier.
func NewVerifier(cfg Config, fetcher KeyFetcher) *Verifier {
	if cfg.Window <= 0 && !cfg.DisableWindow {
		cfg.Window = defaultVerifyWindow
	}

	return &Verifier{Config: cfg, fetcher: fetcher}
}

// VerifyRequest verifies the HTTP signature on req (whose body, if any, has
// already been read into body) and returns the resolved key on success.
// Any failure — missing header, stale date, digest mismatch, unresolvable
// key, bad signature — is returned as a *orberrors.SignatureError.
func (v *Verifier) VerifyRequest(req *http.Request, body []byte) (*ResolvedKey, error) {
	sigHeader := req.Header.Get(signatureHeaderName)
	if sigHeader == "" {
		return nil, orberrors.NewSignatureError("missing Signature header", nil)
	}

	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		if req.Header.Get(digestHeaderName) == "" {
			return nil, orberrors.NewSignatureError("missing Digest header on "+req.Method+" request", nil)
		}
	}

	if req.Header.Get(digestHeaderName) != "" {
		if err := v.verifyDigest(req, body); err != nil {
			return nil, orberrors.NewSignatureError("digest verification failed", err)
		}
	}

	if !v.DisableWindow {
		if err := v.verifyDateWindow(req); err != nil {
			return nil, orberrors.NewSignatureError("date outside acceptable window", err)
		}
	}

	if !strings.Contains(sigHeader, requestTargetPseudo) || !strings.Contains(strings.ToLower(sigHeader), "date") {
		return nil, orberrors.NewSignatureError(
			"signature must cover (request-target) and date headers", nil)
	}

	verifier, err := httpsig.NewVerifier(req)
	if err != nil {
		return nil, orberrors.NewSignatureError("parse signature", err)
	}

	pemBytes, owner, err := v.fetcher.FetchKey(verifier.KeyId())
	if err != nil {
		return nil, orberrors.NewSignatureError("fetch signing key", err)
	}

	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, orberrors.NewSignatureError("invalid public key PEM for keyId "+verifier.KeyId(), nil)
	}

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, orberrors.NewSignatureError("parse public key", err)
	}

	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, orberrors.NewSignatureError("public key is not RSA", nil)
	}

	if err := verifier.Verify(rsaPub, httpsig.RSA_SHA256); err != nil {
		return nil, orberrors.NewSignatureError("signature verification failed", err)
	}

	return &ResolvedKey{KeyID: verifier.KeyId(), Owner: owner, PublicKey: rsaPub}, nil
}

func (v *Verifier) verifyDigest(req *http.Request, body []byte) error {
	for _, part := range strings.Split(req.Header.Get(digestHeaderName), ",") {
		algo, encoded, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}

		var sum []byte

		switch strings.ToUpper(algo) {
		case "SHA-256":
			h := sha256.Sum256(body)
			sum = h[:]
		case "SHA-1":
			if !v.AllowLegacySHA1Digest {
				continue
			}

			h := sha1.Sum(body) //nolint:gosec
			sum = h[:]
		default:
			continue
		}

		want := base64.StdEncoding.EncodeToString(sum)
		if want != encoded {
			return fmt.Errorf("digest mismatch for algorithm %s", algo)
		}

		return nil
	}

	return fmt.Errorf("no supported digest algorithm found in Digest header %q", req.Header.Get(digestHeaderName))
}

func (v *Verifier) verifyDateWindow(req *http.Request) error {
	dateStr := req.Header.Get("Date")
	if dateStr == "" {
		return fmt.Errorf("missing Date header")
	}

	t, err := http.ParseTime(dateStr)
	if err != nil {
		return fmt.Errorf("parse Date header %q: %w", dateStr, err)
	}

	diff := time.Since(t)
	if diff < 0 {
		diff = -diff
	}

	if diff > v.Window {
		return fmt.Errorf("date %s is outside the %s window", dateStr, v.Window)
	}

	return nil
}
