/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package fedcontext

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/go-fed/httpsig"

	"github.com/trustbloc/fedigo/pkg/activitypub/vocab"
	orberrors "github.com/trustbloc/fedigo/pkg/ferrors"
)

// SignedKey is the verification method that signed an inbound request, as
// resolved by RequestContext.GetSignedKey. At most one of CryptographicKey
// (RSA, HTTP Signatures) or Multikey (Ed25519, Object Integrity Proofs) is
// set, matching whichever kind the request's "keyId" named.
type SignedKey struct {
	CryptographicKey *vocab.PublicKeyType
	Multikey         *vocab.MultikeyType
	OwnerID          *url.URL
}

// RequestContext is a Context scoped to a single incoming request. It adds
// the request's matched-route actor/object and the key that signed it, each
// resolved at most once and cached for the life of the request.
type RequestContext struct {
	*Context

	request *http.Request

	mu                   sync.Mutex
	actorLoaded          bool
	actor                *vocab.ActorType
	actorErr             error
	objectLoaded         bool
	object               *vocab.ObjectType
	objectErr            error
	signedKeyLoaded      bool
	signedKey            *SignedKey
	signedKeyErr         error
	signedKeyOwnerLoaded bool
	signedKeyOwner       *vocab.ActorType
	signedKeyOwnerErr    error
}

// NewRequestContext returns a RequestContext for req, derived from ctx.
func NewRequestContext(ctx *Context, req *http.Request) *RequestContext {
	return &RequestContext{Context: ctx, request: req}
}

// Request returns the original incoming HTTP request.
func (r *RequestContext) Request() *http.Request {
	return r.request
}

// GetActor resolves the actor tied to the request's matched route (its
// "identifier" path variable) via Config.ActorDispatcher. The result is
// memoized: later calls return the first call's outcome without dispatching
// again.
func (r *RequestContext) GetActor(ctx context.Context) (*vocab.ActorType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.actorLoaded {
		return r.actor, r.actorErr
	}

	r.actorLoaded = true

	if r.cfg.ActorDispatcher == nil {
		r.actorErr = fmt.Errorf("no actor dispatcher registered")

		return nil, r.actorErr
	}

	parsed, ok := r.ParseURI(r.request.URL)
	if !ok || parsed.Identifier == "" {
		r.actorErr = fmt.Errorf("request does not match a registered actor route")

		return nil, r.actorErr
	}

	r.actor, r.actorErr = r.cfg.ActorDispatcher(ctx, parsed.Identifier)

	return r.actor, r.actorErr
}

// GetObject resolves the object tied to the request's matched object route
// via Config.ObjectDispatcher. Memoized like GetActor.
func (r *RequestContext) GetObject(ctx context.Context) (*vocab.ObjectType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.objectLoaded {
		return r.object, r.objectErr
	}

	r.objectLoaded = true

	if r.cfg.ObjectDispatcher == nil {
		r.objectErr = fmt.Errorf("no object dispatcher registered")

		return nil, r.objectErr
	}

	parsed, ok := r.ParseURI(r.request.URL)
	if !ok || !strings.HasPrefix(parsed.Type, objectRoutePrefix) {
		r.objectErr = fmt.Errorf("request does not match a registered object route")

		return nil, r.objectErr
	}

	class := strings.TrimPrefix(parsed.Type, objectRoutePrefix)

	r.object, r.objectErr = r.cfg.ObjectDispatcher(ctx, class, parsed.Values)

	return r.object, r.objectErr
}

// GetSignedKey resolves the verification method that signed the request,
// read from its HTTP Signature "keyId" parameter. By the time handler code
// runs, the inbox pipeline has already verified the signature against this
// same key, so this is a lookup of the already-trusted key rather than a
// fresh verification. Returns (nil, nil) if the request carries no
// Signature header.
func (r *RequestContext) GetSignedKey(ctx context.Context) (*SignedKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.getSignedKeyLocked(ctx)
}

func (r *RequestContext) getSignedKeyLocked(ctx context.Context) (*SignedKey, error) {
	if r.signedKeyLoaded {
		return r.signedKey, r.signedKeyErr
	}

	r.signedKeyLoaded = true
	r.signedKey, r.signedKeyErr = r.resolveSignedKey(ctx)

	return r.signedKey, r.signedKeyErr
}

func (r *RequestContext) resolveSignedKey(ctx context.Context) (*SignedKey, error) {
	if r.request.Header.Get("Signature") == "" {
		return nil, nil //nolint:nilnil
	}

	verifier, err := httpsig.NewVerifier(r.request)
	if err != nil {
		return nil, fmt.Errorf("parse signature header: %w", err)
	}

	keyID := verifier.KeyId()
	if keyID == "" {
		return nil, fmt.Errorf("signature header carries no keyId")
	}

	keyIRI, err := url.Parse(keyID)
	if err != nil {
		return nil, fmt.Errorf("parse keyId %q: %w", keyID, err)
	}

	return r.ResolveVerificationMethod(ctx, keyIRI)
}

// ResolveVerificationMethod loads the actor owning keyIRI (keyIRI stripped of
// its fragment) and returns whichever of its public key or assertion-method
// entries matches keyIRI exactly: CryptographicKey for an RSA
// "publicKey"-style id (HTTP Signatures), Multikey for an assertionMethod id
// (Object Integrity Proofs). Shared by resolveSignedKey and by the
// federation engine's proof verification, both of which key verification
// methods by IRI rather than by a fixed field name.
func (c *Context) ResolveVerificationMethod(ctx context.Context, keyIRI *url.URL) (*SignedKey, error) {
	keyID := keyIRI.String()

	ownerIRI := *keyIRI
	ownerIRI.Fragment = ""
	ownerIRI.RawFragment = ""

	owner, err := c.loadActorDocument(ctx, &ownerIRI)
	if err != nil {
		return nil, fmt.Errorf("load owner of key %q: %w", keyID, err)
	}

	if pubKey := owner.PublicKey(); pubKey != nil && pubKey.ID == keyID {
		return &SignedKey{CryptographicKey: pubKey, OwnerID: &ownerIRI}, nil
	}

	for _, m := range owner.AssertionMethod() {
		if m.ID != nil && m.ID.String() == keyID {
			return &SignedKey{Multikey: m, OwnerID: &ownerIRI}, nil
		}
	}

	return nil, orberrors.NewValidationError(fmt.Sprintf("key %q not found on owner %q", keyID, ownerIRI.String()))
}

// GetSignedKeyOwner resolves the actor that owns the key GetSignedKey
// returns. Returns (nil, nil) if the request carries no Signature header.
func (r *RequestContext) GetSignedKeyOwner(ctx context.Context) (*vocab.ActorType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.signedKeyOwnerLoaded {
		return r.signedKeyOwner, r.signedKeyOwnerErr
	}

	r.signedKeyOwnerLoaded = true

	key, err := r.getSignedKeyLocked(ctx)
	if err != nil || key == nil {
		r.signedKeyOwnerErr = err

		return nil, err
	}

	r.signedKeyOwner, r.signedKeyOwnerErr = r.loadActorDocument(ctx, key.OwnerID)

	return r.signedKeyOwner, r.signedKeyOwnerErr
}

// loadActorDocument fetches and parses the actor document at iri using the
// plain (unauthenticated) document loader, the same way HTTPActorFetcher
// does for remote actor/collection lookups.
func (c *Context) loadActorDocument(_ context.Context, iri *url.URL) (*vocab.ActorType, error) {
	doc, err := c.cfg.documentLoader().LoadDocument(iri.String())
	if err != nil {
		return nil, fmt.Errorf("load actor document: %w", err)
	}

	bytes, err := json.Marshal(doc.Document)
	if err != nil {
		return nil, fmt.Errorf("marshal actor document: %w", err)
	}

	actor := &vocab.ActorType{}
	if err := json.Unmarshal(bytes, actor); err != nil {
		return nil, fmt.Errorf("unmarshal actor: %w", err)
	}

	return actor, nil
}
