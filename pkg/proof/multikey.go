/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package proof

import (
	"crypto/ed25519"
	"fmt"

	"github.com/multiformats/go-multibase"
)

// ed25519PubMulticodec is the multicodec varint prefix for an Ed25519
// public key (0xed01), per the multicodec table.
var ed25519PubMulticodec = []byte{0xed, 0x01}

// EncodeMultikey encodes pub as a Multikey: the multicodec-prefixed raw key
// bytes, multibase-encoded as base58-btc (the "z..." form used throughout
// Data Integrity verificationMethod values).
func EncodeMultikey(pub ed25519.PublicKey) (string, error) {
	prefixed := make([]byte, 0, len(ed25519PubMulticodec)+len(pub))
	prefixed = append(prefixed, ed25519PubMulticodec...)
	prefixed = append(prefixed, pub...)

	encoded, err := multibase.Encode(multibase.Base58BTC, prefixed)
	if err != nil {
		return "", fmt.Errorf("multibase encode: %w", err)
	}

	return encoded, nil
}

// DecodeMultikey decodes a Multikey string back into an Ed25519 public key.
func DecodeMultikey(s string) (ed25519.PublicKey, error) {
	_, data, err := multibase.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("multibase decode: %w", err)
	}

	if len(data) != len(ed25519PubMulticodec)+ed25519.PublicKeySize {
		return nil, fmt.Errorf("unexpected multikey length %d", len(data))
	}

	if data[0] != ed25519PubMulticodec[0] || data[1] != ed25519PubMulticodec[1] {
		return nil, fmt.Errorf("unsupported multicodec prefix %x%x", data[0], data[1])
	}

	return ed25519.PublicKey(data[len(ed25519PubMulticodec):]), nil
}
