/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package federation

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/trustbloc/fedigo/internal/pkg/log"
	"github.com/trustbloc/fedigo/pkg/fedcontext"
	orberrors "github.com/trustbloc/fedigo/pkg/ferrors"
)

// activityContentType is the media type every successful GET response and
// every outbound delivery carries, per the ActivityPub wire contract.
const activityContentType = "application/activity+json"

// requestID returns a correlation id for logging an inbound request: the
// first of a few common proxy-assigned headers, or a freshly generated
// UUID if the request carries none.
func requestID(req *http.Request) string {
	for _, h := range []string{"X-Request-Id", "X-Correlation-Id", "Traceparent"} {
		if v := req.Header.Get(h); v != "" {
			return v
		}
	}

	return uuid.New().String()
}

// handleGetActor resolves and writes the actor tied to the matched route.
func (e *Engine) handleGetActor(w http.ResponseWriter, req *http.Request) {
	if !e.checkAuthorize(w, req) {
		return
	}

	reqID := requestID(req)
	reqCtx := fedcontext.NewRequestContext(e.ctx, req)

	actor, err := reqCtx.GetActor(req.Context())
	if err != nil {
		logger.Debug("Resolve actor", log.WithMessageID(reqID), log.WithError(err))
		writeGetError(w, err)

		return
	}

	writeActivityJSON(w, http.StatusOK, actor)
}

// handleGetObject resolves and writes the object tied to the matched route.
func (e *Engine) handleGetObject(w http.ResponseWriter, req *http.Request) {
	if !e.checkAuthorize(w, req) {
		return
	}

	reqID := requestID(req)
	reqCtx := fedcontext.NewRequestContext(e.ctx, req)

	obj, err := reqCtx.GetObject(req.Context())
	if err != nil {
		logger.Debug("Resolve object", log.WithMessageID(reqID), log.WithError(err))
		writeGetError(w, err)

		return
	}

	writeActivityJSON(w, http.StatusOK, obj)
}

// writeActivityJSON marshals v as an ActivityStreams document and writes it
// with the federation wire content type.
func writeActivityJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.Warn("Marshal response body", log.WithError(err))
		w.WriteHeader(http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", activityContentType)
	w.Header().Set("Vary", "Accept")
	w.WriteHeader(status)

	if _, err := w.Write(body); err != nil {
		logger.Warn("Write response body", log.WithError(err))
	}
}

// writeGetError maps a dispatch error to the HTTP status a GET handler
// responds with.
func writeGetError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, orberrors.ErrContentNotFound):
		w.WriteHeader(http.StatusNotFound)
	case orberrors.IsBadRequest(err):
		w.WriteHeader(http.StatusBadRequest)
	case isValidationError(err):
		w.WriteHeader(http.StatusBadRequest)
	case orberrors.IsTransient(err):
		w.WriteHeader(http.StatusServiceUnavailable)
	default:
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func isValidationError(err error) bool {
	var validationErr *orberrors.ValidationError

	return errors.As(err, &validationErr)
}
