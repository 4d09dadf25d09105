/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package ldsig implements Linked Data Signatures (RsaSignature2017), the
// legacy Mastodon-compatible signature format attached to an activity's
// "signature" property, as distinct from the draft-cavage HTTP Signatures
// in pkg/httpsig and the Data Integrity proofs in pkg/proof.
package ldsig

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"time"

	"github.com/piprate/json-gold/ld"

	"github.com/trustbloc/fedigo/internal/pkg/log"
	orberrors "github.com/trustbloc/fedigo/pkg/ferrors"
)

var logger = log.New("ldsig")

// SignatureType is the only type this package produces or verifies.
const SignatureType = "RsaSignature2017"

const dateTimeLayout = "2006-01-02T15:04:05Z"

// Signature is the "signature" property attached to a signed JSON-LD document.
type Signature struct {
	Type           string `json:"type"`
	Creator        string `json:"creator"`
	Created        string `json:"created"`
	SignatureValue string `json:"signatureValue"`
}

// Signer produces RsaSignature2017 Linked Data Signatures.
type Signer struct {
	loader ld.DocumentLoader
}

// NewSigner returns a new Signer using loader to resolve JSON-LD contexts
// during canonicalization.
func NewSigner(loader ld.DocumentLoader) *Signer {
	return &Signer{loader: loader}
}

// Sign canonicalizes doc (which must not yet carry a "signature" property),
// computes the RsaSignature2017 over it using privateKey, and returns the
// Signature to attach as doc's "signature" property.
func (s *Signer) Sign(doc map[string]interface{}, privateKey *rsa.PrivateKey, creator string) (*Signature, error) {
	sig := &Signature{
		Type:    SignatureType,
		Creator: creator,
		Created: time.Now().UTC().Format(dateTimeLayout),
	}

	digest, err := s.digest(doc, sig)
	if err != nil {
		return nil, fmt.Errorf("compute digest: %w", err)
	}

	signature, err := rsa.SignPKCS1v15(rand.Reader, privateKey, crypto.SHA256, digest)
	if err != nil {
		return nil, fmt.Errorf("sign digest: %w", err)
	}

	sig.SignatureValue = base64.StdEncoding.EncodeToString(signature)

	return sig, nil
}

// Verify verifies the RsaSignature2017 attached to doc (doc must still carry
// its original "signature" property; Verify removes it internally to
// recompute the same digest the signer computed over the detached
// document).
func Verify(doc map[string]interface{}, sig *Signature, publicKeyPem []byte, loader ld.DocumentLoader) error {
	if sig.Type != SignatureType {
		return orberrors.NewSignatureError("unsupported linked data signature type "+sig.Type, nil)
	}

	block, _ := pem.Decode(publicKeyPem)
	if block == nil {
		return orberrors.NewSignatureError("invalid public key PEM", nil)
	}

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return orberrors.NewSignatureError("parse public key", err)
	}

	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return orberrors.NewSignatureError("public key is not RSA", nil)
	}

	signature, err := base64.StdEncoding.DecodeString(sig.SignatureValue)
	if err != nil {
		return orberrors.NewSignatureError("decode signatureValue", err)
	}

	s := &Signer{loader: loader}

	digest, err := s.digest(detach(doc), sig)
	if err != nil {
		return orberrors.NewSignatureError("compute digest", err)
	}

	if err := rsa.VerifyPKCS1v15(rsaPub, crypto.SHA256, digest, signature); err != nil {
		return orberrors.NewSignatureError("verify signature", err)
	}

	logger.Debug("Verified Linked Data Signature", log.WithKeyID(sig.Creator))

	return nil
}

// digest reproduces the reference algorithm: canonicalize the document
// (without its signature property), canonicalize the signature options
// (creator/created only, per the RsaSignature2017 spec), hash each
// with SHA-256, and concatenate the two hashes before a final SHA-256 —
// the same "hash of canonicalized options + hash of canonicalized document"
// construction the Linked Data Signatures 1.0 spec defines.
func (s *Signer) digest(doc map[string]interface{}, sig *Signature) ([]byte, error) {
	docHash, err := s.normalizedHash(detach(doc))
	if err != nil {
		return nil, fmt.Errorf("normalize document: %w", err)
	}

	// The signature-options context is embedded inline (rather than fetched as
	// "https://w3id.org/security/v1") so digest computation never depends on
	// network/loader availability for this fixed, well-known vocabulary.
	optionsDoc := map[string]interface{}{
		"@context": map[string]interface{}{
			"creator": map[string]interface{}{"@id": "https://w3id.org/security#creator", "@type": "@id"},
			"created": map[string]interface{}{"@id": "http://purl.org/dc/terms/created", "@type": "http://www.w3.org/2001/XMLSchema#dateTime"},
		},
		"creator": sig.Creator,
		"created": sig.Created,
	}

	optionsHash, err := s.normalizedHash(optionsDoc)
	if err != nil {
		return nil, fmt.Errorf("normalize signature options: %w", err)
	}

	combined := sha256.Sum256(append(append([]byte{}, optionsHash...), docHash...))

	return combined[:], nil
}

func (s *Signer) normalizedHash(doc map[string]interface{}) ([]byte, error) {
	proc := ld.NewJsonLdProcessor()

	options := ld.NewJsonLdOptions("")
	options.DocumentLoader = s.loader
	options.Format = "application/n-quads"
	options.Algorithm = "URDNA2015"

	normalized, err := proc.Normalize(doc, options)
	if err != nil {
		return nil, fmt.Errorf("URDNA2015 normalize: %w", err)
	}

	nquads, ok := normalized.(string)
	if !ok {
		return nil, fmt.Errorf("unexpected normalize result type %T", normalized)
	}

	hash := sha256.Sum256([]byte(nquads))

	return hash[:], nil
}

func detach(doc map[string]interface{}) map[string]interface{} {
	detached := make(map[string]interface{}, len(doc))

	for k, v := range doc {
		if k == "signature" {
			continue
		}

		detached[k] = v
	}

	return detached
}
