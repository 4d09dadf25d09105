/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package webfinger builds WebFinger (RFC 7033) JRD responses for
// "acct:user@host" resource queries, translating a registered actor
// lookup into the wire format RFC 7033 defines.
package webfinger

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/trustbloc/fedigo/internal/pkg/log"
)

var logger = log.New("webfinger")

// ActivityJSONType is the media type advertised on the "self" link back to
// the actor's JSON-LD representation.
const ActivityJSONType = "application/activity+json"

// JRD is a JSON Resource Descriptor, the WebFinger response body.
type JRD struct {
	Subject string   `json:"subject"`
	Aliases []string `json:"aliases,omitempty"`
	Links   []Link   `json:"links"`
}

// Link is one JRD link entry.
type Link struct {
	Rel      string `json:"rel"`
	Type     string `json:"type,omitempty"`
	Href     string `json:"href,omitempty"`
	Template string `json:"template,omitempty"`
}

// ActorLookup resolves a WebFinger "acct:user@host" username to the actor's
// canonical IRI. A false second return means the user is unknown.
type ActorLookup func(username string) (actorIRI *url.URL, ok bool)

// Handler serves the "webfinger" route (/.well-known/webfinger) using
// lookup to resolve the requested account to an actor IRI.
func Handler(lookup ActorLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		resource := req.URL.Query().Get("resource")

		username, ok := parseAcct(resource)
		if !ok {
			logger.Debug("Malformed or missing WebFinger resource parameter", log.WithValue(resource))
			w.WriteHeader(http.StatusBadRequest)

			return
		}

		actorIRI, ok := lookup(username)
		if !ok {
			w.WriteHeader(http.StatusNotFound)

			return
		}

		jrd := &JRD{
			Subject: resource,
			Links: []Link{
				{
					Rel:  "self",
					Type: ActivityJSONType,
					Href: actorIRI.String(),
				},
			},
		}

		body, err := json.Marshal(jrd)
		if err != nil {
			logger.Error("Marshal WebFinger JRD", log.WithError(err))
			w.WriteHeader(http.StatusInternalServerError)

			return
		}

		w.Header().Set("Content-Type", "application/jrd+json")
		w.WriteHeader(http.StatusOK)

		if _, err := w.Write(body); err != nil {
			log.WriteResponseBodyError(logger, err)
		}
	}
}

// parseAcct extracts the username from a "resource=acct:user@host" value.
func parseAcct(resource string) (string, bool) {
	const prefix = "acct:"

	if !strings.HasPrefix(resource, prefix) {
		return "", false
	}

	acct := strings.TrimPrefix(resource, prefix)

	username, _, ok := strings.Cut(acct, "@")
	if !ok || username == "" {
		return "", false
	}

	return username, true
}

// BuildResourceParam returns the "acct:user@host" resource identifier for
// username at host, the form a client passes as the "resource" query
// parameter.
func BuildResourceParam(username, host string) string {
	return fmt.Sprintf("acct:%s@%s", username, host)
}
