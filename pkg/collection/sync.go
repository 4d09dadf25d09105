/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package collection builds OrderedCollection/OrderedCollectionPage responses
// for registered collection dispatchers, and computes the
// Collection-Synchronization digest used for Mastodon-compatible partial
// delivery reconciliation.
package collection

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
)

// SyncHeaderValue is the value of the outbound Collection-Synchronization
// header: collectionId identifies the full followers (or other) collection,
// actorIDs is the set of actors delivery was actually attempted to (a subset
// when excludeBaseUris trimmed recipients), and partialURL is the partial
// collection endpoint a remote server can dereference to reconcile.
func SyncHeaderValue(collectionID *url.URL, actorIDs []*url.URL, partialURL *url.URL) string {
	return `collectionId="` + collectionID.String() +
		`", digest="` + Digest(actorIDs) +
		`", url="` + partialURL.String() + `"`
}

// Digest computes the hex SHA-256 digest of the sorted, deduplicated list of
// actor id strings, the reconciliation fingerprint a Collection-Synchronization
// header's "digest" parameter carries.
func Digest(actorIDs []*url.URL) string {
	ids := make([]string, 0, len(actorIDs))
	seen := make(map[string]struct{}, len(actorIDs))

	for _, id := range actorIDs {
		s := id.String()
		if _, ok := seen[s]; ok {
			continue
		}

		seen[s] = struct{}{}

		ids = append(ids, s)
	}

	sort.Strings(ids)

	h := sha256.New()

	for _, id := range ids {
		h.Write([]byte(id))
	}

	return hex.EncodeToString(h.Sum(nil))
}
