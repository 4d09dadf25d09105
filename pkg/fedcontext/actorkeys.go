/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package fedcontext

import (
	"context"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"net/url"

	"github.com/trustbloc/fedigo/internal/pkg/log"
	"github.com/trustbloc/fedigo/pkg/activitypub/vocab"
	"github.com/trustbloc/fedigo/pkg/proof"
)

const mainKeyID = "#main-key"

// ActorKeyPair is one actor key pair, numbered and synthesized into its wire
// forms: the first pair registered for an actor is
// "#main-key", subsequent ones "#key-2", "#key-3", ….
type ActorKeyPair struct {
	RawKeyPair

	// KeyID is the full verification-method IRI, e.g. "https://actor#main-key".
	KeyID string

	// CryptographicKey is the AS vocab publicKey form, set only for RSA pairs
	// (needed to sign/verify HTTP Signatures and Linked Data Signatures).
	CryptographicKey *vocab.PublicKeyType

	// Multikey is the Data Integrity verification-method form, set only for
	// Ed25519 pairs (needed to produce/verify Object Integrity Proofs).
	Multikey *vocab.MultikeyType
}

// GetActorKeyPairs calls the configured KeyPairsDispatcher for identifier,
// then assigns key identifiers and synthesizes the CryptographicKey/Multikey
// wire forms, with owner/controller set to actorID.
func (c *Context) GetActorKeyPairs(ctx context.Context, actorID *url.URL, identifier string) ([]*ActorKeyPair, error) {
	if c.cfg.KeyPairsDispatcher == nil {
		return nil, nil
	}

	raw, err := c.cfg.KeyPairsDispatcher(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("dispatch key pairs for %q: %w", identifier, err)
	}

	pairs := make([]*ActorKeyPair, len(raw))

	for i, kp := range raw {
		keyID := mainKeyID
		if i > 0 {
			keyID = fmt.Sprintf("#key-%d", i+1)
		}

		fullKeyID := actorID.String() + keyID

		pair := &ActorKeyPair{RawKeyPair: kp, KeyID: fullKeyID}

		switch pub := kp.PublicKey.(type) {
		case *rsa.PublicKey:
			pem, err := encodeRSAPublicKeyPEM(pub)
			if err != nil {
				logger.Warn("Unable to encode RSA public key; HTTP Signatures disabled for this key",
					log.WithKeyID(fullKeyID), log.WithError(err))

				continue
			}

			pair.CryptographicKey = &vocab.PublicKeyType{
				ID:           fullKeyID,
				Owner:        actorID.String(),
				PublicKeyPem: pem,
			}
		case ed25519.PublicKey:
			multibase, err := proof.EncodeMultikey(pub)
			if err != nil {
				logger.Warn("Unable to encode Ed25519 public key; Object Integrity Proofs disabled for this key",
					log.WithKeyID(fullKeyID), log.WithError(err))

				continue
			}

			pair.Multikey = vocab.NewMultikey(mustParseURL(fullKeyID), actorID, multibase)
		default:
			logger.Warn("Unsupported public key type; skipping", log.WithKeyID(fullKeyID))
		}

		pairs[i] = pair
	}

	if !hasRSAKey(pairs) {
		logger.Warn("No RSA key pair available: HTTP Signature / Linked Data Signature signing disabled",
			log.WithActorID(identifier))
	}

	if !hasEd25519Key(pairs) {
		logger.Warn("No Ed25519 key pair available: Object Integrity Proof signing disabled",
			log.WithActorID(identifier))
	}

	return pairs, nil
}

func hasRSAKey(pairs []*ActorKeyPair) bool {
	for _, p := range pairs {
		if p != nil && p.CryptographicKey != nil {
			return true
		}
	}

	return false
}

func hasEd25519Key(pairs []*ActorKeyPair) bool {
	for _, p := range pairs {
		if p != nil && p.Multikey != nil {
			return true
		}
	}

	return false
}

func encodeRSAPublicKeyPEM(pub *rsa.PublicKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", fmt.Errorf("marshal public key: %w", err)
	}

	block := &pem.Block{Type: "PUBLIC KEY", Bytes: der}

	return string(pem.EncodeToMemory(block)), nil
}

func mustParseURL(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		panic(err)
	}

	return u
}
