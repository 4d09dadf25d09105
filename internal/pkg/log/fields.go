/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package log (this file) defines the structured zap.Field constructors used
// across the tree. See logger.go for the Log type itself.
package log

import (
	"fmt"

	"go.uber.org/zap"
)

// WithActorIRI sets the actor IRI field.
func WithActorIRI(iri fmt.Stringer) zap.Field {
	return zap.Stringer("actorIRI", iri)
}

// WithActivityID sets the activity ID field.
func WithActivityID(id fmt.Stringer) zap.Field {
	return zap.Stringer("activityID", id)
}

// WithActivityType sets the activity type field.
func WithActivityType(activityType string) zap.Field {
	return zap.String("activityType", activityType)
}

// WithObjectIRI sets the object IRI field.
func WithObjectIRI(iri fmt.Stringer) zap.Field {
	return zap.Stringer("objectIRI", iri)
}

// WithTargetIRI sets the target IRI field.
func WithTargetIRI(iri fmt.Stringer) zap.Field {
	return zap.Stringer("targetIRI", iri)
}

// WithServiceIRI sets the service (actor) IRI field.
func WithServiceIRI(iri fmt.Stringer) zap.Field {
	return zap.Stringer("serviceIRI", iri)
}

// WithServiceEndpoint sets the registered route name field.
func WithServiceEndpoint(endpoint string) zap.Field {
	return zap.String("serviceEndpoint", endpoint)
}

// WithServiceName sets the service name field.
func WithServiceName(name string) zap.Field {
	return zap.String("serviceName", name)
}

// WithKeyID sets the public/proof key ID field.
func WithKeyID(keyID string) zap.Field {
	return zap.String("keyID", keyID)
}

// WithURI sets a generic URI field.
func WithURI(uri fmt.Stringer) zap.Field {
	return zap.Stringer("uri", uri)
}

// WithMessageID sets the queue message ID field.
func WithMessageID(id string) zap.Field {
	return zap.String("messageID", id)
}

// WithRequestBody sets the raw request body field.
func WithRequestBody(body []byte) zap.Field {
	return zap.ByteString("requestBody", body)
}

// WithRequestURL sets the request URL field.
func WithRequestURL(url fmt.Stringer) zap.Field {
	return zap.Stringer("requestURL", url)
}

// WithReferenceType sets the collection reference type field (inbox, outbox, followers, ...).
func WithReferenceType(refType fmt.Stringer) zap.Field {
	return zap.Stringer("referenceType", refType)
}

// WithCacheRefreshInterval sets the cache refresh-interval field.
func WithCacheRefreshInterval(d fmt.Stringer) zap.Field {
	return zap.Stringer("cacheRefreshInterval", d)
}

// WithCacheRefreshAttempts sets the number of cache-load attempts field.
func WithCacheRefreshAttempts(n int) zap.Field {
	return zap.Int("cacheRefreshAttempts", n)
}

// WithKey sets a generic cache/store key field.
func WithKey(key string) zap.Field {
	return zap.String("key", key)
}

// WithSize sets a size/count field.
func WithSize(n int) zap.Field {
	return zap.Int("size", n)
}

// WithTotal sets a total-count field.
func WithTotal(n int) zap.Field {
	return zap.Int("total", n)
}

// WithIndex sets an index field.
func WithIndex(i int) zap.Field {
	return zap.Int("index", i)
}

// WithData sets a generic opaque-data field.
func WithData(data []byte) zap.Field {
	return zap.ByteString("data", data)
}

// WithValue sets a generic value field.
func WithValue(value interface{}) zap.Field {
	return zap.Any("value", value)
}

// WithLogSpec sets the per-module log-level spec field.
func WithLogSpec(spec string) zap.Field {
	return zap.String("logSpec", spec)
}

// WithAuthToken sets a single auth token field (value is not logged).
func WithAuthToken(present bool) zap.Field {
	return zap.Bool("authTokenPresent", present)
}

// WithAuthTokens sets the number-of-required-tokens field.
func WithAuthTokens(n int) zap.Field {
	return zap.Int("authTokenCount", n)
}

// WithAnchorURI sets a generic anchor-style collection-entry URI field.
func WithAnchorURI(iri fmt.Stringer) zap.Field {
	return zap.Stringer("anchorURI", iri)
}

// WithAnchorEventURI sets the anchor-event URI field.
func WithAnchorEventURI(iri fmt.Stringer) zap.Field {
	return zap.Stringer("anchorEventURI", iri)
}

// WithTracingProvider sets the tracing provider name field.
func WithTracingProvider(name string) zap.Field {
	return zap.String("tracingProvider", name)
}

// WithError sets the error field.
func WithError(err error) zap.Field {
	return zap.Error(err)
}

// WithActorID sets the actor identifier field.
func WithActorID(id string) zap.Field {
	return zap.String("actorID", id)
}

// WithKeyIRI sets the key IRI field.
func WithKeyIRI(iri fmt.Stringer) zap.Field {
	return zap.Stringer("keyIRI", iri)
}

// WithStoreName sets the name of the store being operated on.
func WithStoreName(name string) zap.Field {
	return zap.String("store", name)
}

// WithTarget sets a generic target field.
func WithTarget(target fmt.Stringer) zap.Field {
	return zap.Stringer("target", target)
}

// WithType sets a generic Go/JSON type-name field.
func WithType(t string) zap.Field {
	return zap.String("type", t)
}

// WithURL sets a generic *url.URL-valued field.
func WithURL(url fmt.Stringer) zap.Field {
	return zap.Stringer("url", url)
}

// WithTopic sets the pub/sub topic field.
func WithTopic(topic string) zap.Field {
	return zap.String("topic", topic)
}

// WithDuration sets a duration field.
func WithDuration(d fmt.Stringer) zap.Field {
	return zap.Stringer("duration", d)
}

// WithHTTPStatus sets the HTTP status code field.
func WithHTTPStatus(status int) zap.Field {
	return zap.Int("httpStatus", status)
}

// WithCacheExpiration sets a cache expiration/TTL field.
func WithCacheExpiration(d fmt.Stringer) zap.Field {
	return zap.Stringer("cacheExpiration", d)
}

// WithCurrentIRI sets the current-page IRI field (collection paging).
func WithCurrentIRI(iri fmt.Stringer) zap.Field {
	return zap.Stringer("currentIRI", iri)
}

// WithNextIRI sets the next-page IRI field (collection paging).
func WithNextIRI(iri fmt.Stringer) zap.Field {
	return zap.Stringer("nextIRI", iri)
}

// WithMetadata sets a generic string-keyed metadata map field.
func WithMetadata(md map[string]string) zap.Field {
	return zap.Any("metadata", md)
}

// WithProperty sets a generic property-name field.
func WithProperty(name string) zap.Field {
	return zap.String("property", name)
}

// WithAcceptListType sets the accept-list type field (followers/following).
func WithAcceptListType(t fmt.Stringer) zap.Field {
	return zap.Stringer("acceptListType", t)
}

// WithSizeUint sets a size/count field using an unsigned integer.
func WithSizeUint(n uint64) zap.Field {
	return zap.Uint64("size", n)
}

// WithResponse sets a generic response-body field.
func WithResponse(body []byte) zap.Field {
	return zap.ByteString("response", body)
}

// WithParameter sets a generic parameter-name field.
func WithParameter(name string) zap.Field {
	return zap.String("parameter", name)
}
