/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package fedcontext

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func TestGetActorKeyPairs_NumbersAndSynthesizesWireForms(t *testing.T) {
	c := newTestContext(t)

	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	edPub, edPriv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	c.cfg.KeyPairsDispatcher = func(_ context.Context, identifier string) ([]RawKeyPair, error) {
		require.Equal(t, "alice", identifier)

		return []RawKeyPair{
			{PublicKey: &rsaKey.PublicKey, PrivateKey: rsaKey},
			{PublicKey: edPub, PrivateKey: edPriv},
		}, nil
	}

	actorURI := c.GetActorURI("alice")

	pairs, err := c.GetActorKeyPairs(context.Background(), actorURI, "alice")
	require.NoError(t, err)
	require.Len(t, pairs, 2)

	require.Equal(t, actorURI.String()+"#main-key", pairs[0].KeyID)
	require.NotNil(t, pairs[0].CryptographicKey)
	require.Equal(t, actorURI.String(), pairs[0].CryptographicKey.Owner)
	require.Nil(t, pairs[0].Multikey)

	require.Equal(t, actorURI.String()+"#key-2", pairs[1].KeyID)
	require.Nil(t, pairs[1].CryptographicKey)
	require.NotNil(t, pairs[1].Multikey)
	require.Equal(t, actorURI.String(), pairs[1].Multikey.Controller.String())
}

func TestGetActorKeyPairs_NoDispatcher(t *testing.T) {
	c := newTestContext(t)

	pairs, err := c.GetActorKeyPairs(context.Background(), c.GetActorURI("alice"), "alice")
	require.NoError(t, err)
	require.Nil(t, pairs)
}

func TestGetActorKeyPairs_DispatcherError(t *testing.T) {
	c := newTestContext(t)

	c.cfg.KeyPairsDispatcher = func(_ context.Context, _ string) ([]RawKeyPair, error) {
		return nil, errBoom
	}

	_, err := c.GetActorKeyPairs(context.Background(), c.GetActorURI("alice"), "alice")
	require.Error(t, err)
}
