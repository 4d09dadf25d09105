/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package federation

import (
	"context"
	"net/http"

	"github.com/trustbloc/fedigo/internal/pkg/log"
	"github.com/trustbloc/fedigo/pkg/collection"
	"github.com/trustbloc/fedigo/pkg/fedcontext"
)

// CollectionDispatcher returns one page of the named paged collection for
// identifier, starting at cursor (empty for the collection's default
// dispatch: either the unpaged form or the first page, depending on
// whether the route was registered with WithFirstCursor).
type CollectionDispatcher func(ctx context.Context, identifier, cursor string) (*collection.Page, error)

// collectionRoute holds one registered collection route's dispatcher and
// cursor/filter configuration.
type collectionRoute struct {
	dispatcher  CollectionDispatcher
	firstCursor string
	lastCursor  string
	filter      collection.Filter
}

// CollectionOption configures a registered collection route.
type CollectionOption func(*collectionRoute)

// WithFirstCursor marks the collection as paged, starting at the given
// cursor value when no "cursor" query parameter is present (the response
// then carries the paged OrderedCollection head instead of the unpaged
// form with inline items).
func WithFirstCursor(cursor string) CollectionOption {
	return func(r *collectionRoute) { r.firstCursor = cursor }
}

// WithLastCursor sets the cursor a page's "next" link omits once reached,
// marking it the final page.
func WithLastCursor(cursor string) CollectionOption {
	return func(r *collectionRoute) { r.lastCursor = cursor }
}

// WithCollectionFilter restricts which items returned by the dispatcher
// appear in the response, evaluated against the request's query
// parameters (e.g. a followers endpoint's "base-url" filter).
func WithCollectionFilter(filter collection.Filter) CollectionOption {
	return func(r *collectionRoute) { r.filter = filter }
}

// registerCollection registers a collection route under name, resolved via
// dispatcher.
func (e *Engine) registerCollection(
	name, template string, dispatcher CollectionDispatcher, opts ...CollectionOption,
) error {
	template = normalizeIdentifierVar(name, template)

	if err := requireVars(name, template, "identifier"); err != nil {
		return err
	}

	route := &collectionRoute{dispatcher: dispatcher}

	for _, opt := range opts {
		opt(route)
	}

	e.collections[name] = route

	return e.router.Add(name, template, e.handlerForCollection(name), http.MethodGet)
}

// RegisterFollowing registers an actor's following collection.
func (e *Engine) RegisterFollowing(template string, dispatcher CollectionDispatcher, opts ...CollectionOption) error {
	return e.registerCollection(fedcontext.RouteFollowing, template, dispatcher, opts...)
}

// RegisterFollowers registers an actor's followers collection.
func (e *Engine) RegisterFollowers(template string, dispatcher CollectionDispatcher, opts ...CollectionOption) error {
	return e.registerCollection(fedcontext.RouteFollowers, template, dispatcher, opts...)
}

// RegisterLiked registers an actor's liked collection.
func (e *Engine) RegisterLiked(template string, dispatcher CollectionDispatcher, opts ...CollectionOption) error {
	return e.registerCollection(fedcontext.RouteLiked, template, dispatcher, opts...)
}

// RegisterFeatured registers an actor's featured (pinned) collection.
func (e *Engine) RegisterFeatured(template string, dispatcher CollectionDispatcher, opts ...CollectionOption) error {
	return e.registerCollection(fedcontext.RouteFeatured, template, dispatcher, opts...)
}

// RegisterFeaturedTags registers an actor's featured-tags collection.
func (e *Engine) RegisterFeaturedTags(
	template string, dispatcher CollectionDispatcher, opts ...CollectionOption,
) error {
	return e.registerCollection(fedcontext.RouteFeaturedTags, template, dispatcher, opts...)
}

// RegisterOutbox registers the GET side of an actor's outbox: the
// collection of activities the actor has published, as viewed by federated
// peers. Client-to-server publishing (POSTing a new activity to one's own
// outbox) is not part of this engine; SendActivity/RouteActivity already
// cover server-to-server delivery of activities a host produces through
// its own application logic.
func (e *Engine) RegisterOutbox(template string, dispatcher CollectionDispatcher, opts ...CollectionOption) error {
	return e.registerCollection(fedcontext.RouteOutbox, template, dispatcher, opts...)
}

func (e *Engine) handlerForCollection(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if !e.checkAuthorize(w, req) {
			return
		}

		route := e.collections[name]

		match, ok := e.router.Match(req)
		if !ok {
			w.WriteHeader(http.StatusNotFound)

			return
		}

		identifier := match.Vars["identifier"]
		cursor := req.URL.Query().Get("cursor")

		firstCursor := route.firstCursor
		if cursor == "" {
			cursor = firstCursor
		}

		page, err := route.dispatcher(req.Context(), identifier, cursor)
		if err != nil {
			logger.Debug("Dispatch collection", log.WithType(name), log.WithError(err))
			writeGetError(w, err)

			return
		}

		body, err := collection.BuildResponse(req.URL, page, firstCursor, route.lastCursor, route.filter)
		if err != nil {
			logger.Warn("Build collection response", log.WithType(name), log.WithError(err))
			w.WriteHeader(http.StatusInternalServerError)

			return
		}

		writeActivityJSON(w, http.StatusOK, body)
	}
}
