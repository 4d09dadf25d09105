/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package proof implements Object Integrity Proofs: W3C Data Integrity
// "proof" properties using the eddsa-jcs-2022 cryptosuite (JCS-canonicalize,
// SHA-256, Ed25519-sign), as distinct from the HTTP Signatures in
// pkg/httpsig and the legacy Linked Data Signatures in pkg/ldsig.
package proof

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/trustbloc/fedigo/internal/pkg/log"
	orberrors "github.com/trustbloc/fedigo/pkg/ferrors"
)

var logger = log.New("proof")

// ProofType is the Data Integrity proof type this package produces.
const ProofType = "DataIntegrityProof"

// CryptoSuite is the only cryptosuite this package supports.
const CryptoSuite = "eddsa-jcs-2022"

const dateTimeLayout = "2006-01-02T15:04:05Z"

// Proof is the "proof" property attached to a signed JSON-LD object.
type Proof struct {
	Type               string `json:"type"`
	Cryptosuite        string `json:"cryptosuite"`
	Created            string `json:"created"`
	VerificationMethod string `json:"verificationMethod"`
	ProofPurpose       string `json:"proofPurpose"`
	ProofValue         string `json:"proofValue"`
}

// Sign produces a Data Integrity proof over doc (which must not yet carry a
// "proof" property) using the eddsa-jcs-2022 cryptosuite: the proof
// configuration (everything but proofValue) and the document are each
// JCS-canonicalized and SHA-256-hashed; the concatenation of the two
// hashes is what gets Ed25519-signed.
func Sign(doc map[string]interface{}, privateKey ed25519.PrivateKey, verificationMethod string) (*Proof, error) {
	p := &Proof{
		Type:               ProofType,
		Cryptosuite:        CryptoSuite,
		Created:            time.Now().UTC().Format(dateTimeLayout),
		VerificationMethod: verificationMethod,
		ProofPurpose:       "assertionMethod",
	}

	digest, err := hashForSigning(doc, p)
	if err != nil {
		return nil, fmt.Errorf("compute digest: %w", err)
	}

	sig := ed25519.Sign(privateKey, digest)

	p.ProofValue = base64.RawURLEncoding.EncodeToString(sig)

	return p, nil
}

// Verify verifies the Data Integrity proof on doc using the given Ed25519
// public key (typically resolved from the proof's verificationMethod
// Multikey by the caller; see DecodeMultikey).
func Verify(doc map[string]interface{}, p *Proof, publicKey ed25519.PublicKey) error {
	if p.Type != ProofType {
		return orberrors.NewSignatureError("unsupported proof type "+p.Type, nil)
	}

	if p.Cryptosuite != CryptoSuite {
		return orberrors.NewSignatureError("unsupported cryptosuite "+p.Cryptosuite, nil)
	}

	sig, err := base64.RawURLEncoding.DecodeString(p.ProofValue)
	if err != nil {
		return orberrors.NewSignatureError("decode proofValue", err)
	}

	digest, err := hashForSigning(doc, p)
	if err != nil {
		return orberrors.NewSignatureError("compute digest", err)
	}

	if !ed25519.Verify(publicKey, digest, sig) {
		return orberrors.NewSignatureError("proof verification failed", nil)
	}

	logger.Debug("Verified Object Integrity Proof", log.WithKeyID(p.VerificationMethod))

	return nil
}

// hashForSigning computes SHA256(canonicalize(proofConfig)) ||
// SHA256(canonicalize(doc)), the message eddsa-jcs-2022 signs.
func hashForSigning(doc map[string]interface{}, p *Proof) ([]byte, error) {
	proofConfig := map[string]interface{}{
		"type":               p.Type,
		"cryptosuite":        p.Cryptosuite,
		"created":            p.Created,
		"verificationMethod": p.VerificationMethod,
		"proofPurpose":       p.ProofPurpose,
	}

	proofCanonical, err := CanonicalizeJCS(proofConfig)
	if err != nil {
		return nil, fmt.Errorf("canonicalize proof config: %w", err)
	}

	docWithoutProof := make(map[string]interface{}, len(doc))

	for k, v := range doc {
		if k == "proof" {
			continue
		}

		docWithoutProof[k] = v
	}

	docCanonical, err := CanonicalizeJCS(docWithoutProof)
	if err != nil {
		return nil, fmt.Errorf("canonicalize document: %w", err)
	}

	proofHash := sha256.Sum256(proofCanonical)
	docHash := sha256.Sum256(docCanonical)

	return append(proofHash[:], docHash[:]...), nil
}
