/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package router implements the URI-template router used to register and
// dispatch federation endpoints, and to build IRIs for those same endpoints
// so a handler can hand another actor a link back to itself.
package router

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/mux"

	"github.com/trustbloc/fedigo/pkg/ferrors"
)

// Match is the result of matching an incoming request to a registered route.
type Match struct {
	// Name is the route name that was registered with Add.
	Name string
	// Vars contains the path template variables extracted from the request, e.g. {"id": "abc"}.
	Vars map[string]string
}

// Router registers named URI templates (of the form "/actors/{id}/inbox"),
// matches incoming requests against them, and builds concrete URIs for a
// named route given variable values. It wraps a gorilla/mux.Router, the only
// router in the stack that exposes reverse URL building via mux.Route.URL.
type Router struct {
	mux *mux.Router

	mutex   sync.RWMutex
	routes  map[string]*mux.Route
	handler map[string]http.Handler
}

// New returns a new, empty Router.
func New() *Router {
	return &Router{
		mux:     mux.NewRouter(),
		routes:  make(map[string]*mux.Route),
		handler: make(map[string]http.Handler),
	}
}

// Add registers a named route for the given path template and HTTP method(s).
// The template must start with "/" and its {name} path variables must be unique
// within the template. Registering the same route name twice is an error.
func (r *Router) Add(name, pathTemplate string, h http.HandlerFunc, methods ...string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.routes[name]; exists {
		return ferrors.NewRouterError(name, fmt.Errorf("route already registered"))
	}

	if !strings.HasPrefix(pathTemplate, "/") {
		return ferrors.NewRouterError(name, fmt.Errorf("path template must start with '/': %s", pathTemplate))
	}

	route := r.mux.NewRoute().Name(name).Path(pathTemplate).Handler(h)

	if len(methods) > 0 {
		route = route.Methods(methods...)
	}

	if err := route.GetError(); err != nil {
		return ferrors.NewRouterError(name, err)
	}

	r.routes[name] = route
	r.handler[name] = h

	return nil
}

// ServeHTTP dispatches to the handler of the first registered route, in
// registration order, that matches the request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Match reports which registered route (if any) matches the given request, along with
// the path variables extracted from it.
func (r *Router) Match(req *http.Request) (*Match, bool) {
	var match mux.RouteMatch

	if !r.mux.Match(req, &match) || match.Route == nil {
		return nil, false
	}

	return &Match{Name: match.Route.GetName(), Vars: match.Vars}, true
}

// Build returns the concrete URI for the named route, substituting the given
// variable values (as alternating name/value pairs, matching mux's convention)
// into the route's path template. Build(Match(req).Name, ...) round-trips back
// to an equivalent path for any request that previously matched.
func (r *Router) Build(name string, pairs ...string) (string, error) {
	r.mutex.RLock()
	route, ok := r.routes[name]
	r.mutex.RUnlock()

	if !ok {
		return "", ferrors.NewRouterError(name, fmt.Errorf("no such route"))
	}

	u, err := route.URL(pairs...)
	if err != nil {
		return "", ferrors.NewRouterError(name, err)
	}

	return u.String(), nil
}
