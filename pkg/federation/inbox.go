/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package federation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/trustbloc/fedigo/internal/pkg/log"
	"github.com/trustbloc/fedigo/pkg/activitypub/vocab"
	"github.com/trustbloc/fedigo/pkg/fedcontext"
	orberrors "github.com/trustbloc/fedigo/pkg/ferrors"
	"github.com/trustbloc/fedigo/pkg/httpsig"
	"github.com/trustbloc/fedigo/pkg/proof"
	"github.com/trustbloc/fedigo/pkg/queue"
	"github.com/trustbloc/fedigo/pkg/retry"
	"github.com/trustbloc/fedigo/pkg/store"
)

// idempotenceTTL bounds how long a processed activity's id is remembered,
// so a redelivered copy within the window is recognized and skipped
// instead of being re-dispatched to listeners.
const idempotenceTTL = 24 * time.Hour

// handleInboxPost is the shared handler for every personal inbox and the
// shared inbox route.
func (e *Engine) handleInboxPost(w http.ResponseWriter, req *http.Request) {
	reqID := requestID(req)
	ctx := req.Context()

	body, err := io.ReadAll(req.Body)
	if err != nil {
		logger.Debug("Read inbox request body", log.WithMessageID(reqID), log.WithError(err))
		w.WriteHeader(http.StatusBadRequest)

		return
	}

	activity := &vocab.ActivityType{}
	if err := json.Unmarshal(body, activity); err != nil {
		logger.Debug("Unmarshal inbox activity", log.WithMessageID(reqID), log.WithError(err))
		w.WriteHeader(http.StatusBadRequest)

		return
	}

	if err := e.verifyInbound(req, body, activity); err != nil {
		logger.Info("Inbox verification failed", log.WithMessageID(reqID), log.WithError(err))
		w.WriteHeader(http.StatusUnauthorized)

		return
	}

	if activity.ID() == nil {
		logger.Debug("Inbox activity has no id; dispatching without idempotence tracking",
			log.WithMessageID(reqID))

		if _, err := e.listeners.Dispatch(ctx, activity); err != nil {
			logger.Warn("Dispatch unidentified inbox activity", log.WithMessageID(reqID), log.WithError(err))
		}

		w.WriteHeader(http.StatusAccepted)

		return
	}

	seen, err := e.idempotenceSeen(ctx, activity.ID().String())
	if err != nil {
		logger.Warn("Check idempotence record", log.WithMessageID(reqID), log.WithError(err))
		w.WriteHeader(http.StatusInternalServerError)

		return
	}

	if seen {
		logger.Debug("Duplicate inbox activity, skipping",
			log.WithMessageID(reqID), log.WithActivityID(activity.ID()))
		w.WriteHeader(http.StatusAccepted)

		return
	}

	if e.inboxQueue != nil {
		if err := e.inboxQueue.Enqueue(ctx, &queue.Message{ID: activity.ID().String(), Payload: body}); err != nil {
			logger.Warn("Enqueue inbox activity", log.WithMessageID(reqID), log.WithError(err))
			w.WriteHeader(http.StatusInternalServerError)

			return
		}

		w.WriteHeader(http.StatusAccepted)

		return
	}

	if err := e.processInbound(ctx, activity); err != nil {
		logger.Warn("Process inbox activity inline", log.WithMessageID(reqID), log.WithError(err))
		w.WriteHeader(http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusAccepted)
}

// dispatchLocalInbox implements fedcontext.InboxDispatcher: the
// verification-free portion of the inbox pipeline run for manual,
// no-HTTP-round-trip delivery to a local recipient via Context.RouteActivity.
func (e *Engine) dispatchLocalInbox(ctx context.Context, _ string, activityBytes []byte) error {
	activity := &vocab.ActivityType{}
	if err := json.Unmarshal(activityBytes, activity); err != nil {
		return fmt.Errorf("unmarshal locally routed activity: %w", err)
	}

	if activity.ID() == nil {
		_, err := e.listeners.Dispatch(ctx, activity)

		return err
	}

	seen, err := e.idempotenceSeen(ctx, activity.ID().String())
	if err != nil {
		return fmt.Errorf("check idempotence record: %w", err)
	}

	if seen {
		return nil
	}

	return e.processInbound(ctx, activity)
}

// processInbound dispatches activity to the listener set and, once
// dispatch completes without error, records its id so a redelivered copy
// is recognized. handled=false (no listener registered for the type) is
// treated the same as success: there is nothing to retry.
func (e *Engine) processInbound(ctx context.Context, activity *vocab.ActivityType) error {
	handled, err := e.listeners.Dispatch(ctx, activity)
	if err != nil {
		return err
	}

	if !handled {
		logger.Debug("No listener registered for inbox activity", log.WithActivityID(activity.ID()))
	}

	if activity.ID() != nil {
		if err := e.markIdempotent(ctx, activity.ID().String()); err != nil {
			logger.Warn("Record idempotence", log.WithError(err))
		}
	}

	return nil
}

func (e *Engine) idempotenceKey(activityID string) []string {
	prefixes := e.ctx.Config().KvKeyPrefixes.ActivityIdempotence

	key := make([]string, 0, len(prefixes)+1)
	key = append(key, prefixes...)
	key = append(key, activityID)

	return key
}

func (e *Engine) idempotenceSeen(ctx context.Context, activityID string) (bool, error) {
	kv := e.ctx.Config().Store
	if kv == nil {
		return false, nil
	}

	_, err := kv.Get(ctx, e.idempotenceKey(activityID)...)
	if err == nil {
		return true, nil
	}

	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}

	return false, err
}

func (e *Engine) markIdempotent(ctx context.Context, activityID string) error {
	kv := e.ctx.Config().Store
	if kv == nil {
		return nil
	}

	return kv.Set(ctx, []byte{1}, idempotenceTTL, e.idempotenceKey(activityID)...)
}

// inboxRetryPolicy returns the configured inbox retry policy, or the
// package default if none was configured.
func (e *Engine) inboxRetryPolicy() retry.Policy {
	if p := e.ctx.Config().InboxRetryPolicy; p != nil {
		return p
	}

	return retry.NewExponentialPolicy(retry.DefaultConfig())
}

// RunInboxWorker drains the configured inbox queue, running the same
// dispatch-and-idempotence logic as an inline POST for each queued
// activity. A failure is returned to the queue's Listen, which decides
// whether the message is redelivered (the AMQP queue Nacks it for broker
// redelivery; MemQueue logs the error and drops it). Config().InboxRetryPolicy
// is consulted with the message's redelivery attempt count only to decide
// when to stop: once it gives up, the message is dropped (acked). The delay
// it computes is not used. Blocks until ctx is done or the queue's Listen
// call returns.
func (e *Engine) RunInboxWorker(ctx context.Context) error {
	if e.inboxQueue == nil {
		return fmt.Errorf("no inbox queue configured")
	}

	return e.inboxQueue.Listen(ctx, func(ctx context.Context, msg *queue.Message) error {
		activity := &vocab.ActivityType{}
		if err := json.Unmarshal(msg.Payload, activity); err != nil {
			logger.Warn("Unmarshal queued inbox activity, discarding",
				log.WithMessageID(msg.ID), log.WithError(err))

			return nil
		}

		err := e.processInbound(ctx, activity)
		if err == nil {
			return nil
		}

		if _, ok := e.inboxRetryPolicy().NextDelay(retry.Context{Attempts: msg.Attempt}); !ok {
			logger.Warn("Giving up on inbox activity after exhausting retries",
				log.WithMessageID(msg.ID), log.WithError(err))

			return nil
		}

		return err
	})
}

// keyFetcher adapts Engine's verification-method resolution to
// pkg/httpsig.KeyFetcher, resolving a signature's keyId to a PEM-encoded
// RSA public key and owner IRI.
type keyFetcher struct {
	ctx *fedcontext.Context
}

func (f *keyFetcher) FetchKey(keyID string) ([]byte, string, error) {
	keyIRI, err := url.Parse(keyID)
	if err != nil {
		return nil, "", fmt.Errorf("parse keyId %q: %w", keyID, err)
	}

	key, err := f.ctx.ResolveVerificationMethod(context.Background(), keyIRI)
	if err != nil {
		return nil, "", err
	}

	if key.CryptographicKey == nil {
		return nil, "", fmt.Errorf("key %q is not an RSA HTTP Signature key", keyID)
	}

	return []byte(key.CryptographicKey.PublicKeyPem), key.CryptographicKey.Owner, nil
}

// verifyInbound authenticates an inbound activity, preferring its Object
// Integrity Proof (if present) over an HTTP Signature: a proof travels with
// the activity and survives relaying through a shared inbox, while an HTTP
// Signature only authenticates the immediate sender.
func (e *Engine) verifyInbound(req *http.Request, body []byte, activity *vocab.ActivityType) error {
	if _, hasProof := activity.Value("proof"); hasProof {
		return e.verifyProof(req.Context(), body, activity)
	}

	return e.verifySignature(req, body, activity)
}

func (e *Engine) verifyProof(ctx context.Context, body []byte, activity *vocab.ActivityType) error {
	var doc map[string]interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return orberrors.NewSignatureError("unmarshal document for proof verification", err)
	}

	rawProof, ok := doc["proof"]
	if !ok {
		return orberrors.NewSignatureError("missing proof", nil)
	}

	proofBytes, err := json.Marshal(rawProof)
	if err != nil {
		return orberrors.NewSignatureError("marshal proof", err)
	}

	p := &proof.Proof{}
	if err := json.Unmarshal(proofBytes, p); err != nil {
		return orberrors.NewSignatureError("unmarshal proof", err)
	}

	methodIRI, err := url.Parse(p.VerificationMethod)
	if err != nil {
		return orberrors.NewSignatureError("parse verificationMethod", err)
	}

	key, err := e.ctx.ResolveVerificationMethod(ctx, methodIRI)
	if err != nil {
		return orberrors.NewSignatureError("resolve verificationMethod", err)
	}

	if key.Multikey == nil {
		return orberrors.NewSignatureError("verificationMethod is not a Multikey", nil)
	}

	if activity.Actor() != nil && key.OwnerID != nil && activity.Actor().String() != key.OwnerID.String() {
		return orberrors.NewSignatureError("proof signer does not match activity actor", nil)
	}

	pubKey, err := proof.DecodeMultikey(key.Multikey.PublicKeyMultibase)
	if err != nil {
		return orberrors.NewSignatureError("decode multikey", err)
	}

	return proof.Verify(doc, p, pubKey)
}

func (e *Engine) verifySignature(req *http.Request, body []byte, activity *vocab.ActivityType) error {
	cfg := httpsig.DefaultConfig()
	if w := e.ctx.Config().SignatureWindow; w != 0 {
		if w < 0 {
			cfg.DisableWindow = true
		} else {
			cfg.Window = w
		}
	}

	cfg.AllowLegacySHA1Digest = e.ctx.Config().AllowLegacySHA1Digest

	var fetcher httpsig.KeyFetcher = &keyFetcher{ctx: e.ctx}
	if e.wrapKeyFetcher != nil {
		fetcher = e.wrapKeyFetcher(fetcher)
	}

	verifier := httpsig.NewVerifier(cfg, fetcher)

	resolved, err := verifier.VerifyRequest(req, body)
	if err != nil {
		return err
	}

	if activity.Actor() != nil && activity.Actor().String() != resolved.Owner {
		return orberrors.NewSignatureError("signer does not own the activity's actor", nil)
	}

	return nil
}
