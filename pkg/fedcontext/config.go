/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package fedcontext implements the federation Context: URI building for the
// routes a host registers, actor key-pair retrieval and synthesis, outbound
// activity signing/delivery, and manual (no-HTTP-round-trip) inbox routing.
// Recipient/inbox resolution and remote actor/reference fetch follow the
// same shape throughout: a caller-supplied dispatcher model generalized
// away from any single fixed pipeline.
package fedcontext

import (
	"context"
	"crypto"
	"net/http"
	"net/url"
	"time"

	"github.com/piprate/json-gold/ld"

	"github.com/trustbloc/fedigo/internal/pkg/log"
	"github.com/trustbloc/fedigo/pkg/activitypub/vocab"
	"github.com/trustbloc/fedigo/pkg/docloader"
	"github.com/trustbloc/fedigo/pkg/queue"
	"github.com/trustbloc/fedigo/pkg/retry"
	"github.com/trustbloc/fedigo/pkg/router"
	"github.com/trustbloc/fedigo/pkg/store"
)

var logger = log.New("fedcontext")

// RawKeyPair is an actor's public/private key as returned by a
// KeyPairsDispatcher, before the Context assigns it a #main-key/#key-N
// identifier and synthesizes its wire forms.
type RawKeyPair struct {
	PublicKey  crypto.PublicKey
	PrivateKey crypto.PrivateKey
}

// KeyPairsDispatcher returns the raw key pairs available for the actor with
// the given identifier. The first pair becomes the actor's #main-key;
// implementations should return RSA pairs (for HTTP Signatures) before or
// alongside Ed25519 pairs (for Object Integrity Proofs) in whatever order
// the deployment wants #main-key to be.
type KeyPairsDispatcher func(ctx context.Context, identifier string) ([]RawKeyPair, error)

// InboxDispatcher delivers activity to recipientIdentifier's inbox without an
// HTTP round trip, running the same verification-free portion of the inbox
// pipeline (idempotence, listener dispatch, retry) that a POST would.
// Registered by the federation engine so that Context.RouteActivity can
// reach it without pkg/fedcontext importing pkg/federation.
type InboxDispatcher func(ctx context.Context, recipientIdentifier string, activity []byte) error

// FollowersPage is one page of an actor's followers collection, as returned
// by a FollowersDispatcher.
type FollowersPage struct {
	Items      []*url.URL
	NextCursor string
}

// FollowersDispatcher returns one page of the given actor's followers,
// starting at cursor (empty for the first page). Context.SendActivity pages
// through it when the literal recipient "followers" is used.
type FollowersDispatcher func(ctx context.Context, actorIdentifier string, cursor string) (*FollowersPage, error)

// ActorFetcher resolves remote actors and collections of recipient IRIs,
// (GetActor/GetReferences).
type ActorFetcher interface {
	// GetActor fetches and parses the actor at iri.
	GetActor(ctx context.Context, iri *url.URL) (Actor, error)
	// GetReferences reads up to max IRIs from the collection (or single actor) at iri.
	GetReferences(ctx context.Context, iri *url.URL, max int) ([]*url.URL, error)
}

// ActorDispatcher builds the actor representation registered for identifier,
// or returns an error satisfying orberrors.IsTransient/a not-found sentinel if
// no such actor exists. Registered by the federation engine so that
// RequestContext.GetActor can resolve the actor tied to an incoming request's
// route without pkg/fedcontext importing pkg/federation.
type ActorDispatcher func(ctx context.Context, identifier string) (*vocab.ActorType, error)

// ObjectDispatcher builds the object representation for a registered object
// route, given the route's class name (the string passed to
// Context.GetObjectURI) and its path variables (e.g. identifier, id).
// Registered by the federation engine so that RequestContext.GetObject can
// resolve the object tied to an incoming request's route.
type ObjectDispatcher func(ctx context.Context, class string, values map[string]string) (*vocab.ObjectType, error)

// Actor is the subset of vocab.ActorType that recipient/inbox resolution
// needs. Defined as an interface so an ActorFetcher isn't forced to depend on
// vocab.ActorType's concrete shape; see HTTPActorFetcher for an adapter over
// the real type.
type Actor interface {
	ID() *url.URL
	Inbox() *url.URL
	SharedInbox() *url.URL
}

// KvKeyPrefixes holds the configurable KV key prefixes.
type KvKeyPrefixes struct {
	ActivityIdempotence []string
	RemoteDocument      []string
	PublicKey           []string
}

// DefaultKvKeyPrefixes returns the default key prefixes.
func DefaultKvKeyPrefixes() KvKeyPrefixes {
	return KvKeyPrefixes{
		ActivityIdempotence: []string{"_fedify", "activityIdempotence"},
		RemoteDocument:      []string{"_fedify", "remoteDocument"},
		PublicKey:           []string{"_fedify", "publicKey"},
	}
}

// Config is the federation configuration: process-wide, built once and
// shared by every Context/RequestContext/InboxContext derived from it.
type Config struct {
	BaseURL *url.URL
	Router  *router.Router
	Store   store.KvStore

	// OutboxQueue is consulted by SendActivity: nil means every delivery is sent
	// immediately inline; set means deliveries are enqueued unless Options.Immediate.
	OutboxQueue queue.MessageQueue

	KeyPairsDispatcher  KeyPairsDispatcher
	FollowersDispatcher FollowersDispatcher
	InboxDispatcher     InboxDispatcher
	ActorFetcher        ActorFetcher

	// ActorDispatcher and ObjectDispatcher back RequestContext.GetActor and
	// RequestContext.GetObject. Both are optional: a RequestContext used
	// outside of a registered actor/object route simply has nothing to
	// resolve, and Get* returns an error saying so.
	ActorDispatcher  ActorDispatcher
	ObjectDispatcher ObjectDispatcher

	// DocumentLoaderFactory returns the plain (unauthenticated) document loader.
	// Defaults to docloader.New() if nil.
	DocumentLoaderFactory func() ld.DocumentLoader

	InboxRetryPolicy  retry.Policy
	OutboxRetryPolicy retry.Policy

	// SignatureWindow bounds how stale an incoming HTTP Signature's Date header
	// may be. Zero uses the 1-hour default; a negative value disables the check.
	SignatureWindow time.Duration

	// AllowLegacySHA1Digest accepts a SHA-1 Digest header on an inbound request
	// instead of requiring sha-256/sha-512. Default false; see
	// httpsig.Config.AllowLegacySHA1Digest for the interop rationale.
	AllowLegacySHA1Digest bool

	UserAgent string

	KvKeyPrefixes KvKeyPrefixes

	// HTTPClient delivers outbound HTTP requests (document fetch, outbox POST).
	// Defaults to http.DefaultClient if nil.
	HTTPClient *http.Client

	MaxRecipients int
}

func (c *Config) documentLoader() ld.DocumentLoader {
	if c.DocumentLoaderFactory != nil {
		return c.DocumentLoaderFactory()
	}

	return docloader.New(docloader.WithHTTPClient(c.httpClient()))
}

func (c *Config) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}

	return http.DefaultClient
}

func (c *Config) maxRecipients() int {
	if c.MaxRecipients <= 0 {
		return defaultMaxRecipients
	}

	return c.MaxRecipients
}

const defaultMaxRecipients = 1000
