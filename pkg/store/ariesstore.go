/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hyperledger/aries-framework-go/spi/storage"
)

const expiryTagName = "expireAt"

type storedEntry struct {
	Value    []byte `json:"value"`
	ExpireAt int64  `json:"expireAt,omitempty"` // Unix timestamp; 0 means no expiry.
}

// AriesStore adapts any aries-framework-go storage.Store into a KvStore, so a KvStore
// can be backed by any of the storage.Provider implementations in that ecosystem
// (CouchDB, MongoDB, in-memory) rather than only the bundled MemStore. Entries with a
// TTL are tagged with their expiry timestamp following the same tag-based expiry
// convention as the reference expiry.Service, which a deployment can register this
// store with to reclaim storage for entries that have already logically expired.
type AriesStore struct {
	store storage.Store
}

// NewAriesStore returns a new AriesStore wrapping the given aries storage.Store.
func NewAriesStore(s storage.Store) *AriesStore {
	return &AriesStore{store: s}
}

// Get implements KvStore.
func (s *AriesStore) Get(_ context.Context, key ...string) ([]byte, error) {
	raw, err := s.store.Get(JoinKey(key...))
	if err != nil {
		if errors.Is(err, storage.ErrDataNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("get: %w", err)
	}

	var e storedEntry

	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("unmarshal stored entry: %w", err)
	}

	if e.ExpireAt != 0 && time.Now().Unix() >= e.ExpireAt {
		return nil, ErrNotFound
	}

	return e.Value, nil
}

// Set implements KvStore.
func (s *AriesStore) Set(_ context.Context, value []byte, ttl time.Duration, key ...string) error {
	e := storedEntry{Value: value}

	var tags []storage.Tag

	if ttl > 0 {
		e.ExpireAt = time.Now().Add(ttl).Unix()
		tags = append(tags, storage.Tag{Name: expiryTagName, Value: fmt.Sprintf("%d", e.ExpireAt)})
	}

	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal stored entry: %w", err)
	}

	if err := s.store.Put(JoinKey(key...), raw, tags...); err != nil {
		return fmt.Errorf("put: %w", err)
	}

	return nil
}

// Delete implements KvStore.
func (s *AriesStore) Delete(_ context.Context, key ...string) error {
	if err := s.store.Delete(JoinKey(key...)); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// ExpiryTagName is the aries storage.Tag name under which TTL-bearing entries record
// their Unix expiry timestamp, for registration with the expiry package's Service.
func ExpiryTagName() string {
	return expiryTagName
}
