/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemStore_SetGetDelete(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	_, err := s.Get(ctx, "actor1", "inbox")
	require.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, s.Set(ctx, []byte("hello"), 0, "actor1", "inbox"))

	value, err := s.Get(ctx, "actor1", "inbox")
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), value)

	// A different key tuple is a different entry.
	_, err = s.Get(ctx, "actor1", "outbox")
	require.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, s.Delete(ctx, "actor1", "inbox"))

	_, err = s.Get(ctx, "actor1", "inbox")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestMemStore_Overwrite(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, []byte("v1"), 0, "k"))
	require.NoError(t, s.Set(ctx, []byte("v2"), 0, "k"))

	value, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("v2"), value)
}

func TestMemStore_TTLExpiry(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, []byte("ephemeral"), 10*time.Millisecond, "k"))

	value, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("ephemeral"), value)

	time.Sleep(30 * time.Millisecond)

	_, err = s.Get(ctx, "k")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestMemStore_DeleteMissingIsNoop(t *testing.T) {
	s := NewMemStore()

	require.NoError(t, s.Delete(context.Background(), "does", "not", "exist"))
}

func TestJoinKey(t *testing.T) {
	require.Equal(t, "a\x1fb\x1fc", JoinKey("a", "b", "c"))
	require.Equal(t, "solo", JoinKey("solo"))
}
