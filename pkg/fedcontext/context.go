/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package fedcontext

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/piprate/json-gold/ld"

	"github.com/trustbloc/fedigo/internal/pkg/log"
	"github.com/trustbloc/fedigo/pkg/docloader"
	"github.com/trustbloc/fedigo/pkg/httpsig"
)

// Canonical route names, fixed by the wire contract.
const (
	RouteActor        = "actor"
	RouteInbox        = "inbox"
	RouteSharedInbox  = "sharedInbox"
	RouteOutbox       = "outbox"
	RouteFollowing    = "following"
	RouteFollowers    = "followers"
	RouteLiked        = "liked"
	RouteFeatured     = "featured"
	RouteFeaturedTags = "featuredTags"
	RouteNodeInfo     = "nodeInfo"
	RouteNodeInfoJRD  = "nodeInfoJrd"
	RouteWebFinger    = "webfinger"
)

// objectRoutePrefix names an object route registered for a given vocabulary
// class ID, e.g. "object:Note".
const objectRoutePrefix = "object:"

// ObjectRouteName returns the route name under which an object dispatcher for
// the given vocabulary type id (e.g. "Note") is registered.
func ObjectRouteName(typeID string) string {
	return objectRoutePrefix + typeID
}

// Context builds URIs for a host's registered endpoints, resolves actor key
// pairs, and sends/routes activities. It holds no per-request state; see
// RequestContext for the subtype derived from an incoming request.
type Context struct {
	cfg *Config
}

// New returns a Context wrapping cfg. cfg.BaseURL and cfg.Router must be set.
func New(cfg *Config) *Context {
	return &Context{cfg: cfg}
}

// Config returns the underlying federation configuration.
func (c *Context) Config() *Config {
	return c.cfg
}

func (c *Context) build(route string, pairs ...string) *url.URL {
	path, err := c.cfg.Router.Build(route, pairs...)
	if err != nil {
		logger.Debug("Unable to build URI for route (not registered?)", log.WithType(route), log.WithError(err))

		return nil
	}

	u, err := url.Parse(path)
	if err != nil {
		logger.Warn("Router produced an unparseable URI", log.WithType(route), log.WithError(err))

		return nil
	}

	return c.cfg.BaseURL.ResolveReference(u)
}

// GetActorURI returns the actor URI for identifier, or nil if no actor route
// is registered.
func (c *Context) GetActorURI(identifier string) *url.URL {
	return c.build(RouteActor, "identifier", identifier)
}

// GetInboxURI returns identifier's personal inbox URI, or the shared inbox
// URI if identifier is empty and a shared-inbox route is registered.
func (c *Context) GetInboxURI(identifier string) *url.URL {
	if identifier == "" {
		return c.build(RouteSharedInbox)
	}

	return c.build(RouteInbox, "identifier", identifier)
}

// GetOutboxURI returns identifier's outbox URI.
func (c *Context) GetOutboxURI(identifier string) *url.URL {
	return c.build(RouteOutbox, "identifier", identifier)
}

// GetFollowingURI returns identifier's following-collection URI.
func (c *Context) GetFollowingURI(identifier string) *url.URL {
	return c.build(RouteFollowing, "identifier", identifier)
}

// GetFollowersURI returns identifier's followers-collection URI.
func (c *Context) GetFollowersURI(identifier string) *url.URL {
	return c.build(RouteFollowers, "identifier", identifier)
}

// GetLikedURI returns identifier's liked-collection URI.
func (c *Context) GetLikedURI(identifier string) *url.URL {
	return c.build(RouteLiked, "identifier", identifier)
}

// GetFeaturedURI returns identifier's featured-collection URI.
func (c *Context) GetFeaturedURI(identifier string) *url.URL {
	return c.build(RouteFeatured, "identifier", identifier)
}

// GetFeaturedTagsURI returns identifier's featured-tags-collection URI.
func (c *Context) GetFeaturedTagsURI(identifier string) *url.URL {
	return c.build(RouteFeaturedTags, "identifier", identifier)
}

// GetObjectURI returns the URI for an object of the given vocabulary class,
// substituting values (alternating name/value pairs) into its route template.
func (c *Context) GetObjectURI(class string, values ...string) *url.URL {
	return c.build(ObjectRouteName(class), values...)
}

// GetNodeInfoURI returns the NodeInfo discovery document URI.
func (c *Context) GetNodeInfoURI() *url.URL {
	return c.build(RouteNodeInfo)
}

// ParsedURI is the discriminated result of ParseURI: Type names which kind of
// resource uri refers to ("actor", "inbox", "object:<typeId>", …), Identifier
// holds the actor-scoped {identifier} variable when present, and Values holds
// every path variable the matched route declared.
type ParsedURI struct {
	Type       string
	Identifier string
	Values     map[string]string
}

// ParseURI matches uri against the registered routes and reports which
// resource it names, or ok=false if it matches none of them.
func (c *Context) ParseURI(uri *url.URL) (parsed *ParsedURI, ok bool) {
	req := &http.Request{Method: http.MethodGet, URL: uri, Host: uri.Host}

	match, matched := c.cfg.Router.Match(req)
	if !matched {
		return nil, false
	}

	return &ParsedURI{
		Type:       match.Name,
		Identifier: match.Vars["identifier"],
		Values:     match.Vars,
	}, true
}

// GetDocumentLoader returns a document loader appropriate for fetching
// documents as identity: authenticated with identity's RSA actor key, signing
// every outbound GET, if identity has one, or the plain loader otherwise.
func (c *Context) GetDocumentLoader(ctx context.Context, identity string) (ld.DocumentLoader, error) {
	actorURI := c.GetActorURI(identity)
	if actorURI == nil {
		return c.cfg.documentLoader(), nil
	}

	pairs, err := c.GetActorKeyPairs(ctx, actorURI, identity)
	if err != nil {
		return nil, fmt.Errorf("get actor key pairs for %q: %w", identity, err)
	}

	for _, p := range pairs {
		if p == nil || p.CryptographicKey == nil {
			continue
		}

		signer := httpsig.NewSigner(httpsig.DefaultGetSignerConfig())

		return docloader.NewAuthenticated(signer, p.PrivateKey, p.KeyID,
			docloader.WithHTTPClient(c.cfg.httpClient())), nil
	}

	return c.cfg.documentLoader(), nil
}
