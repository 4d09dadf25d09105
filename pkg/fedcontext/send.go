/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package fedcontext

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/trustbloc/fedigo/internal/pkg/log"
	"github.com/trustbloc/fedigo/pkg/activitypub/vocab"
	"github.com/trustbloc/fedigo/pkg/collection"
	orberrors "github.com/trustbloc/fedigo/pkg/ferrors"
	"github.com/trustbloc/fedigo/pkg/httpsig"
	"github.com/trustbloc/fedigo/pkg/ldsig"
	"github.com/trustbloc/fedigo/pkg/proof"
	"github.com/trustbloc/fedigo/pkg/queue"
)

const defaultResolveConcurrency = 10

// Recipients is the target of SendActivity: either an explicit IRI list, or
// Followers=true to expand via the registered FollowersDispatcher (the
// literal "followers" recipient).
type Recipients struct {
	IRIs      []*url.URL
	Followers bool
}

// SendOptions configure SendActivity/RouteActivity; see SendOption.
type SendOptions struct {
	Immediate         bool
	PreferSharedInbox bool
	ExcludeBaseURIs   []string
	Headers           http.Header
}

// SendOption sets a SendOptions field.
type SendOption func(*SendOptions)

// WithImmediate sends every resolved inbox delivery inline instead of
// enqueueing it on the outbox queue, even when one is configured.
func WithImmediate() SendOption {
	return func(o *SendOptions) { o.Immediate = true }
}

// WithPreferSharedInbox delivers to a recipient's sharedInbox, when the
// recipient's actor advertises one, instead of its personal inbox.
func WithPreferSharedInbox() SendOption {
	return func(o *SendOptions) { o.PreferSharedInbox = true }
}

// WithExcludeBaseURIs excludes any resolved inbox whose origin (scheme://host[:port])
// matches one of the given base URIs, e.g. to avoid delivering back to the origin
// an activity was received from.
func WithExcludeBaseURIs(uris ...string) SendOption {
	return func(o *SendOptions) { o.ExcludeBaseURIs = uris }
}

// WithHeader adds an extra header to every outbound inbox POST, e.g. a
// caller-supplied Collection-Synchronization value.
func WithHeader(key, value string) SendOption {
	return func(o *SendOptions) {
		if o.Headers == nil {
			o.Headers = http.Header{}
		}

		o.Headers.Add(key, value)
	}
}

func newSendOptions(opts ...SendOption) *SendOptions {
	o := &SendOptions{}
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// OutboxMessage is the queue payload for one inbox delivery: everything the
// worker needs to sign and send without calling back into the Context,
// mirroring the outbox message shape ("keys", "activity", "inbox", …).
type OutboxMessage struct {
	ID               string            `json:"id"`
	KeyID            string            `json:"keyId"`
	PrivateKeyPKCS8  []byte            `json:"privateKeyPkcs8"`
	Activity         []byte            `json:"activity"`
	ActivityID       string            `json:"activityId,omitempty"`
	ActivityType     string            `json:"activityType,omitempty"`
	Inbox            string            `json:"inbox"`
	SharedInbox      bool              `json:"sharedInbox"`
	Started          time.Time         `json:"started"`
	Attempt          int               `json:"attempt"`
	Headers          map[string]string `json:"headers,omitempty"`
}

// SendActivity resolves the sender's key pairs,
// assigns an id to activity if absent, attaches Object Integrity Proofs and a
// Linked Data Signature, resolves recipients to a deduplicated inbox set, and
// either sends each delivery immediately or enqueues it on the outbox queue.
func (c *Context) SendActivity(
	ctx context.Context, senderIdentifier string, recipients Recipients,
	activity *vocab.ActivityType, opts ...SendOption,
) error {
	options := newSendOptions(opts...)

	senderURI := c.GetActorURI(senderIdentifier)
	if senderURI == nil {
		return orberrors.NewValidationError("no actor route registered; cannot resolve sender " + senderIdentifier)
	}

	keyPairs, err := c.GetActorKeyPairs(ctx, senderURI, senderIdentifier)
	if err != nil {
		return fmt.Errorf("get sender key pairs: %w", err)
	}

	if len(keyPairs) == 0 {
		return orberrors.NewValidationError("no key pairs available for sender " + senderIdentifier)
	}

	if activity.ID() == nil {
		id, parseErr := url.Parse("urn:uuid:" + uuid.New().String())
		if parseErr != nil {
			return fmt.Errorf("generate activity id: %w", parseErr)
		}

		logger.Warn("Activity had no id; generated one", log.WithActivityID(id))

		activity.SetID(id)
	}

	signedBytes, signingKey, err := c.signActivity(activity, keyPairs)
	if err != nil {
		return fmt.Errorf("sign activity: %w", err)
	}

	targets, collectionID, err := c.resolveRecipients(ctx, senderIdentifier, recipients)
	if err != nil {
		return fmt.Errorf("resolve recipients: %w", err)
	}

	inboxes := c.resolveInboxSet(ctx, targets, options)

	if recipients.Followers && collectionID != nil {
		options = withCollectionSyncHeader(options, collectionID, targets)
	}

	activityType := ""
	if activity.Type() != nil {
		activityType = activity.Type().String()
	}

	for _, inbox := range inboxes {
		msg := &OutboxMessage{
			ID:           uuid.New().String(),
			KeyID:        signingKey.KeyID,
			Activity:     signedBytes,
			ActivityID:   activity.ID().String(),
			ActivityType: activityType,
			Inbox:        inbox.url.String(),
			SharedInbox:  inbox.shared,
			Started:      time.Now().UTC(),
			Headers:      headerMap(options.Headers),
		}

		if pkcs8, encErr := x509.MarshalPKCS8PrivateKey(signingKey.PrivateKey); encErr == nil {
			msg.PrivateKeyPKCS8 = pkcs8
		} else {
			logger.Warn("Unable to encode sender private key for queued delivery", log.WithError(encErr))
		}

		if err := c.dispatchOutboxMessage(ctx, msg, options.Immediate); err != nil {
			logger.Warn("Unable to dispatch outbox message",
				log.WithActivityID(activity.ID()), log.WithURL(inbox.url), log.WithError(err))
		}
	}

	return nil
}

func withCollectionSyncHeader(options *SendOptions, collectionID *url.URL, actorIDs []*url.URL) *SendOptions {
	clone := *options

	syncValue := collection.SyncHeaderValue(collectionID, actorIDs, collectionID)

	clone.Headers = options.Headers.Clone()
	if clone.Headers == nil {
		clone.Headers = http.Header{}
	}

	clone.Headers.Set("Collection-Synchronization", syncValue)

	return &clone
}

func headerMap(h http.Header) map[string]string {
	if len(h) == 0 {
		return nil
	}

	m := make(map[string]string, len(h))

	for k := range h {
		m[k] = h.Get(k)
	}

	return m
}

func (c *Context) dispatchOutboxMessage(ctx context.Context, msg *OutboxMessage, immediate bool) error {
	if immediate || c.cfg.OutboxQueue == nil {
		return c.DeliverOutboxMessage(ctx, msg)
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal outbox message: %w", err)
	}

	return c.cfg.OutboxQueue.Enqueue(ctx, &queue.Message{ID: msg.ID, Payload: payload})
}

// DeliverOutboxMessage POSTs the activity carried by msg to msg.Inbox,
// HTTP-signing the request when the sender key is RSA; with any other key
// type the request is sent without an HTTP Signature. It is
// exported so a queue worker (built outside this package to avoid pulling the
// queue-consumption loop into Context) can invoke it per dequeued message.
func (c *Context) DeliverOutboxMessage(ctx context.Context, msg *OutboxMessage) error {
	privateKey, err := x509.ParsePKCS8PrivateKey(msg.PrivateKeyPKCS8)
	if err != nil {
		return orberrors.NewSignatureError("parse sender private key", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, msg.Inbox, bytes.NewReader(msg.Activity))
	if err != nil {
		return fmt.Errorf("build inbox request: %w", err)
	}

	req.Header.Set("Content-Type", "application/activity+json")

	for k, v := range msg.Headers {
		req.Header.Set(k, v)
	}

	if _, isRSA := privateKey.(*rsa.PrivateKey); isRSA {
		signer := httpsig.NewSigner(httpsig.DefaultPostSignerConfig())
		if err := signer.SignRequest(privateKey, msg.KeyID, req, msg.Activity); err != nil {
			return orberrors.NewSignatureError("sign outbound inbox request", err)
		}
	} else {
		logger.Warn("No RSA key available; inbox request sent without an HTTP Signature", log.WithKeyID(msg.KeyID))
	}

	resp, err := c.cfg.httpClient().Do(req)
	if err != nil {
		return orberrors.NewTransient(fmt.Errorf("post activity to %s: %w", msg.Inbox, err))
	}

	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		err := fmt.Errorf("inbox %s responded %s", msg.Inbox, resp.Status)
		if resp.StatusCode >= http.StatusInternalServerError {
			return orberrors.NewTransient(err)
		}

		return err
	}

	return nil
}

// RouteActivity is the manual-ingress counterpart to SendActivity: it
// hands activity directly to the registered InboxDispatcher for
// recipientIdentifier without an HTTP round trip, for same-process delivery.
func (c *Context) RouteActivity(
	ctx context.Context, recipientIdentifier string, activity *vocab.ActivityType, _ ...SendOption,
) error {
	if c.cfg.InboxDispatcher == nil {
		return orberrors.NewValidationError("no InboxDispatcher registered")
	}

	payload, err := json.Marshal(activity)
	if err != nil {
		return fmt.Errorf("marshal activity: %w", err)
	}

	return c.cfg.InboxDispatcher(ctx, recipientIdentifier, payload)
}

// signActivity attaches an Object Integrity Proof for each Ed25519 key pair
// and, if any RSA key pair is present, a Linked Data Signature using the
// first one. It returns the signed, compact
// JSON-LD bytes and the RSA key pair used for the LD signature/HTTP
// signature (the first one with a CryptographicKey). If no key pair has a
// CryptographicKey, the bytes carry no Linked Data Signature and the first
// key pair is returned.
func (c *Context) signActivity(
	activity *vocab.ActivityType, keyPairs []*ActorKeyPair,
) ([]byte, *ActorKeyPair, error) {
	raw, err := json.Marshal(activity)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal activity: %w", err)
	}

	doc := map[string]interface{}{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("decode activity to document: %w", err)
	}

	haveEd25519 := false

	for _, kp := range keyPairs {
		if kp == nil || kp.Multikey == nil {
			continue
		}

		haveEd25519 = true

		edPriv, ok := kp.PrivateKey.(ed25519.PrivateKey)
		if !ok {
			logger.Warn("Ed25519 Multikey's key pair did not hold an ed25519.PrivateKey", log.WithKeyID(kp.KeyID))

			continue
		}

		p, err := proof.Sign(stripProof(doc), edPriv, kp.KeyID)
		if err != nil {
			logger.Warn("Unable to produce Object Integrity Proof", log.WithKeyID(kp.KeyID), log.WithError(err))

			continue
		}

		doc["proof"] = p
	}

	if !haveEd25519 {
		logger.Warn("No Ed25519 key available; activity sent without an Object Integrity Proof")
	}

	var signingKey *ActorKeyPair

	for _, kp := range keyPairs {
		if kp != nil && kp.CryptographicKey != nil {
			signingKey = kp

			break
		}
	}

	if signingKey == nil {
		logger.Warn("No RSA key available; activity sent without a Linked Data Signature")

		out, err := json.Marshal(doc)

		return out, keyPairs[0], err
	}

	rsaPriv, ok := signingKey.PrivateKey.(*rsa.PrivateKey)
	if !ok {
		return nil, nil, orberrors.NewValidationError("sender's RSA key pair did not hold an *rsa.PrivateKey")
	}

	signer := ldsig.NewSigner(c.cfg.documentLoader())

	sig, err := signer.Sign(stripSignature(doc), rsaPriv, signingKey.KeyID)
	if err != nil {
		logger.Warn("Unable to produce Linked Data Signature", log.WithKeyID(signingKey.KeyID), log.WithError(err))
	} else {
		doc["signature"] = sig
	}

	out, err := json.Marshal(doc)

	return out, signingKey, err
}

func stripProof(doc map[string]interface{}) map[string]interface{} {
	return withoutKey(doc, "proof")
}

func stripSignature(doc map[string]interface{}) map[string]interface{} {
	return withoutKey(doc, "signature")
}

func withoutKey(doc map[string]interface{}, key string) map[string]interface{} {
	out := make(map[string]interface{}, len(doc))

	for k, v := range doc {
		if k == key {
			continue
		}

		out[k] = v
	}

	return out
}

type inboxTarget struct {
	url    *url.URL
	shared bool
}

// resolveRecipients expands recipients.Followers (if set) by paging through
// the registered FollowersDispatcher, or returns recipients.IRIs unchanged.
// The second return value is the followers collection URI, used as the
// Collection-Synchronization "collectionId" when Followers was expanded.
func (c *Context) resolveRecipients(
	ctx context.Context, senderIdentifier string, recipients Recipients,
) ([]*url.URL, *url.URL, error) {
	if !recipients.Followers {
		return recipients.IRIs, nil, nil
	}

	if c.cfg.FollowersDispatcher == nil {
		return nil, nil, orberrors.NewValidationError("recipients is \"followers\" but no FollowersDispatcher is registered")
	}

	var iris []*url.URL

	cursor := ""

	for {
		page, err := c.cfg.FollowersDispatcher(ctx, senderIdentifier, cursor)
		if err != nil {
			return nil, nil, fmt.Errorf("dispatch followers page: %w", err)
		}

		iris = append(iris, page.Items...)

		if page.NextCursor == "" || len(iris) >= c.cfg.maxRecipients() {
			break
		}

		cursor = page.NextCursor
	}

	return iris, c.GetFollowersURI(senderIdentifier), nil
}

// resolveInboxSet resolves each recipient IRI to an inbox URL (bounded
// concurrency, using a resolveIRIs/resolveActorIRIs/resolveInboxes
// channel+WaitGroup pattern),
// dedupes by inbox URL preferring sharedInbox when requested, and drops
// inboxes whose origin is in options.ExcludeBaseURIs.
func (c *Context) resolveInboxSet(ctx context.Context, recipientIRIs []*url.URL, options *SendOptions) []inboxTarget {
	actors := c.resolveConcurrently(recipientIRIs, func(iri *url.URL) ([]*url.URL, error) {
		return c.resolveActorIRIs(ctx, iri)
	})

	seen := make(map[string]struct{}, len(actors))
	targets := make([]inboxTarget, 0, len(actors))

	for _, actorIRI := range deduplicateURLs(actors) {
		actor, err := c.cfg.ActorFetcher.GetActor(ctx, actorIRI)
		if err != nil {
			logger.Warn("Unable to resolve actor for delivery", log.WithActorIRI(actorIRI), log.WithError(err))

			continue
		}

		inboxURL := actor.Inbox()
		shared := false

		if options.PreferSharedInbox && actor.SharedInbox() != nil {
			inboxURL = actor.SharedInbox()
			shared = true
		}

		if inboxURL == nil || isExcluded(inboxURL, options.ExcludeBaseURIs) {
			continue
		}

		key := inboxURL.String()
		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}

		targets = append(targets, inboxTarget{url: inboxURL, shared: shared})
	}

	return targets
}

func (c *Context) resolveActorIRIs(ctx context.Context, iri *url.URL) ([]*url.URL, error) {
	if iri.String() == vocab.PublicIRI.String() {
		return nil, nil
	}

	if c.cfg.ActorFetcher == nil {
		return nil, orberrors.NewValidationError("no ActorFetcher registered")
	}

	return c.cfg.ActorFetcher.GetReferences(ctx, iri, c.cfg.maxRecipients())
}

// resolveConcurrently runs resolve over iris with bounded concurrency,
// using a buffered channel as a bounded worker pool.
func (c *Context) resolveConcurrently(iris []*url.URL, resolve func(*url.URL) ([]*url.URL, error)) []*url.URL {
	var wg sync.WaitGroup

	var mutex sync.Mutex

	var results []*url.URL

	wg.Add(len(iris))

	work := make(chan *url.URL, defaultResolveConcurrency)

	go func() {
		for _, iri := range iris {
			work <- iri
		}

		close(work)
	}()

	for i := 0; i < defaultResolveConcurrency; i++ {
		go func() {
			for iri := range work {
				r, err := resolve(iri)
				if err != nil {
					logger.Warn("Unable to resolve recipient", log.WithURL(iri), log.WithError(err))
				} else {
					mutex.Lock()
					results = append(results, r...)
					mutex.Unlock()
				}

				wg.Done()
			}
		}()
	}

	wg.Wait()

	return results
}

func deduplicateURLs(iris []*url.URL) []*url.URL {
	seen := make(map[string]struct{}, len(iris))
	out := make([]*url.URL, 0, len(iris))

	for _, iri := range iris {
		key := iri.String()
		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}

		out = append(out, iri)
	}

	return out
}

func isExcluded(u *url.URL, excludeBaseURIs []string) bool {
	origin := u.Scheme + "://" + u.Host

	for _, base := range excludeBaseURIs {
		if strings.EqualFold(strings.TrimSuffix(base, "/"), origin) {
			return true
		}
	}

	return false
}
