/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package policy implements a cached, store-backed domain blocklist: the
// administrative "refuse to federate with this host" control most
// ActivityPub deployments need, decorating an httpsig.KeyFetcher so blocked
// origins are rejected before a single remote byte is fetched.
package policy

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/bluele/gcache"

	"github.com/trustbloc/fedigo/internal/pkg/log"
	orberrors "github.com/trustbloc/fedigo/pkg/ferrors"
	"github.com/trustbloc/fedigo/pkg/httpsig"
	"github.com/trustbloc/fedigo/pkg/store"
)

var logger = log.New("policy")

const (
	defaultCacheSize       = 500
	defaultCacheExpiration = 30 * time.Second

	blockedKeyPrefix = "blockedDomain"
)

// DomainPolicy is a cached read path over a store.KvStore of blocked
// origins (host[:port] authority strings). Administrative Block/Unblock
// calls go straight to the store; IsBlocked consults a small ARC cache
// first so the hot path (checking every inbound actor/key fetch) doesn't
// round-trip the store on every request.
type DomainPolicy struct {
	store store.KvStore

	cache       gcache.Cache
	cacheExpiry time.Duration
	cacheSize   int
}

// Option configures a DomainPolicy.
type Option func(*DomainPolicy)

// WithCacheLifetime overrides how long a blocked/not-blocked verdict is
// cached before the store is consulted again.
func WithCacheLifetime(expiry time.Duration) Option {
	return func(p *DomainPolicy) { p.cacheExpiry = expiry }
}

// WithCacheSize overrides the number of distinct origins cached.
func WithCacheSize(size int) Option {
	return func(p *DomainPolicy) { p.cacheSize = size }
}

// New returns a DomainPolicy backed by kv.
func New(kv store.KvStore, opts ...Option) *DomainPolicy {
	p := &DomainPolicy{
		store:       kv,
		cacheExpiry: defaultCacheExpiration,
		cacheSize:   defaultCacheSize,
	}

	for _, opt := range opts {
		opt(p)
	}

	p.cache = gcache.New(p.cacheSize).ARC().
		Expiration(p.cacheExpiry).
		LoaderFunc(func(key interface{}) (interface{}, error) {
			return p.lookup(key.(string))
		}).Build()

	return p
}

// IsBlocked reports whether origin (a host[:port] authority) is currently
// blocked.
func (p *DomainPolicy) IsBlocked(_ context.Context, origin string) (bool, error) {
	v, err := p.cache.Get(origin)
	if err != nil {
		return false, fmt.Errorf("checking domain policy for %q: %w", origin, err)
	}

	blocked, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("unexpected cache value type %T for %q", v, origin)
	}

	return blocked, nil
}

func (p *DomainPolicy) lookup(origin string) (bool, error) {
	_, err := p.store.Get(context.Background(), blockedKeyPrefix, origin)
	if err == nil {
		return true, nil
	}

	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}

	return false, orberrors.NewTransient(err)
}

// Block marks origin as blocked and drops any cached verdict for it, so the
// next IsBlocked call sees the block.
func (p *DomainPolicy) Block(ctx context.Context, origin string) error {
	logger.Infof("blocking domain %s", origin)

	if err := p.store.Set(ctx, []byte{1}, 0, blockedKeyPrefix, origin); err != nil {
		return fmt.Errorf("block domain %q: %w", origin, err)
	}

	p.cache.Remove(origin)

	return nil
}

// Unblock removes origin from the blocklist.
func (p *DomainPolicy) Unblock(ctx context.Context, origin string) error {
	logger.Infof("unblocking domain %s", origin)

	if err := p.store.Delete(ctx, blockedKeyPrefix, origin); err != nil {
		return fmt.Errorf("unblock domain %q: %w", origin, err)
	}

	p.cache.Remove(origin)

	return nil
}

// WrapKeyFetcher decorates inner so FetchKey refuses keys whose IRI host is
// blocked, without ever calling inner for that host.
func (p *DomainPolicy) WrapKeyFetcher(inner httpsig.KeyFetcher) httpsig.KeyFetcher {
	return &blockingKeyFetcher{policy: p, inner: inner}
}

type blockingKeyFetcher struct {
	policy *DomainPolicy
	inner  httpsig.KeyFetcher
}

func (f *blockingKeyFetcher) FetchKey(keyID string) ([]byte, string, error) {
	u, err := url.Parse(keyID)
	if err != nil {
		return nil, "", orberrors.NewValidationError("parse key id: " + err.Error())
	}

	blocked, err := f.policy.IsBlocked(context.Background(), u.Host)
	if err != nil {
		return nil, "", err
	}

	if blocked {
		return nil, "", orberrors.NewValidationError("origin is blocked: " + u.Host)
	}

	return f.inner.FetchKey(keyID)
}
