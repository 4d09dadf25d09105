/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package store

import (
	"context"
	"sync"
	"time"
)

// MemStore is an in-memory KvStore reference implementation. It is suitable for tests
// and single-instance deployments; a clustered deployment should instead back KvStore
// with a shared aries-framework-go storage.Provider (e.g. CouchDB, MongoDB).
type MemStore struct {
	mutex sync.RWMutex
	data  map[string]entry
}

type entry struct {
	value    []byte
	expireAt time.Time // zero value means no expiry.
}

// NewMemStore returns a new, empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string]entry)}
}

// Get implements KvStore.
func (m *MemStore) Get(_ context.Context, key ...string) ([]byte, error) {
	k := JoinKey(key...)

	m.mutex.RLock()
	e, ok := m.data[k]
	m.mutex.RUnlock()

	if !ok || isExpired(e) {
		return nil, ErrNotFound
	}

	return e.value, nil
}

// Set implements KvStore.
func (m *MemStore) Set(_ context.Context, value []byte, ttl time.Duration, key ...string) error {
	k := JoinKey(key...)

	e := entry{value: value}
	if ttl > 0 {
		e.expireAt = time.Now().Add(ttl)
	}

	m.mutex.Lock()
	m.data[k] = e
	m.mutex.Unlock()

	return nil
}

// Delete implements KvStore.
func (m *MemStore) Delete(_ context.Context, key ...string) error {
	k := JoinKey(key...)

	m.mutex.Lock()
	delete(m.data, k)
	m.mutex.Unlock()

	return nil
}

func isExpired(e entry) bool {
	return !e.expireAt.IsZero() && time.Now().After(e.expireAt)
}
