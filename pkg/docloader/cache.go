/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package docloader

import (
	"fmt"
	"time"

	"github.com/bluele/gcache"
	"github.com/piprate/json-gold/ld"

	"github.com/trustbloc/fedigo/internal/pkg/log"
)

const defaultCacheLifetime = 24 * time.Hour

// DefaultCacheableContexts is the whitelist of well-known, effectively
// immutable JSON-LD context documents that are safe to cache for a day:
// the Activity Streams 2.0 context, its companion security vocabulary, and
// the W3C Data Integrity context used by Object Integrity Proofs.
var DefaultCacheableContexts = []string{
	"https://www.w3.org/ns/activitystreams",
	"https://w3id.org/security/v1",
	"https://w3id.org/security/data-integrity/v1",
}

// CachingLoader wraps a ld.DocumentLoader and caches documents whose URL is
// in an explicit whitelist (typically the handful of well-known JSON-LD
// contexts every activity references); any other URL passes straight
// through to the wrapped loader uncached. A load-on-miss, TTL-bound cache
// (gcache.LoaderFunc style), narrowed to a fixed TTL rather
// than a per-entry CacheLifetime since context documents don't carry one.
type CachingLoader struct {
	loader    ld.DocumentLoader
	cacheable map[string]struct{}
	cache     gcache.Cache
}

// NewCachingLoader returns a CachingLoader wrapping loader, caching only the
// given whitelist of URLs for lifetime (the zero value selects
// DefaultCacheableContexts and a one-day lifetime).
func NewCachingLoader(loader ld.DocumentLoader, cacheable []string, lifetime time.Duration) *CachingLoader {
	if cacheable == nil {
		cacheable = DefaultCacheableContexts
	}

	if lifetime <= 0 {
		lifetime = defaultCacheLifetime
	}

	set := make(map[string]struct{}, len(cacheable))
	for _, u := range cacheable {
		set[u] = struct{}{}
	}

	c := &CachingLoader{loader: loader, cacheable: set}

	c.cache = gcache.New(len(cacheable)+1).Expiration(lifetime).
		LoaderFunc(func(key interface{}) (interface{}, error) {
			u, ok := key.(string)
			if !ok {
				return nil, fmt.Errorf("cache key must be a string")
			}

			doc, err := c.loader.LoadDocument(u)
			if err != nil {
				return nil, err
			}

			logger.Debug("Cached JSON-LD context document", log.WithURL(u))

			return doc, nil
		}).Build()

	return c
}

// LoadDocument implements ld.DocumentLoader.
func (c *CachingLoader) LoadDocument(u string) (*ld.RemoteDocument, error) {
	if _, ok := c.cacheable[u]; !ok {
		return c.loader.LoadDocument(u)
	}

	v, err := c.cache.Get(u)
	if err != nil {
		return nil, err
	}

	doc, ok := v.(*ld.RemoteDocument)
	if !ok {
		return nil, fmt.Errorf("unexpected cached value type for %s", u)
	}

	return doc, nil
}
