/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package store defines the generic key-value store abstraction used by the
// federation engine to persist actor keys, inbox idempotence markers, and
// cached documents, plus an in-memory reference implementation for tests and
// single-instance deployments.
package store

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrNotFound is returned when a key does not exist in the store (or has expired).
var ErrNotFound = errors.New("store: key not found")

// KvStore is a minimal get/set/delete key-value abstraction with optional
// per-entry TTL, grounded on hyperledger/aries-framework-go's
// storage.Store/storage.Provider shape (Get/Put/Delete/Query) but trimmed to
// the three operations the federation engine actually needs: looking up a
// cached value, storing one (optionally with an expiry), and removing one.
// Keys are ordered tuples (e.g. {"idempotence", origin, activityID}) joined
// with a separator that cannot appear in any individual component, so two
// different tuples never collide on the underlying flat key.
type KvStore interface {
	// Get returns the value previously stored under key, or ErrNotFound if it doesn't
	// exist or has expired.
	Get(ctx context.Context, key ...string) ([]byte, error)

	// Set stores value under key. If ttl is non-zero, the entry expires (and Get on it
	// returns ErrNotFound) after ttl elapses.
	Set(ctx context.Context, value []byte, ttl time.Duration, key ...string) error

	// Delete removes the value stored under key, if any. Deleting a non-existent key
	// is not an error.
	Delete(ctx context.Context, key ...string) error
}

const keySeparator = "\x1f" // ASCII unit separator: won't appear in IRIs or identifiers.

// JoinKey joins an ordered tuple of key components into the flat key used internally.
// Exported so implementations built directly against an aries storage.Store (which only
// understands flat string keys) can share the same tuple encoding.
func JoinKey(parts ...string) string {
	return strings.Join(parts, keySeparator)
}
