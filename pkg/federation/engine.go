/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package federation wires a fedcontext.Context, a router.Router, and a
// listener.Set into a running ActivityPub endpoint set: actor, inbox,
// shared inbox, object, and collection routes, the inbox/outbox delivery
// pipelines, and NodeInfo/WebFinger discovery. The router in the Context's
// Config is the http.Handler a host mounts; Engine only registers routes on it and
// never serves a request of its own.
package federation

import (
	"fmt"
	"net/http"
	"regexp"

	"github.com/trustbloc/fedigo/internal/pkg/log"
	"github.com/trustbloc/fedigo/pkg/fedcontext"
	"github.com/trustbloc/fedigo/pkg/httpsig"
	"github.com/trustbloc/fedigo/pkg/listener"
	"github.com/trustbloc/fedigo/pkg/queue"
	"github.com/trustbloc/fedigo/pkg/router"
)

var logger = log.New("federation")

// routeVarPattern matches a "{name}" path template variable.
var routeVarPattern = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// handleVarPattern matches the literal "{handle}" variable some deployments
// prefer over "{identifier}".
var handleVarPattern = regexp.MustCompile(`\{handle\}`)

// AuthorizeFunc decides whether an incoming request may proceed to its
// matched route's dispatch: ok=true lets the request through, and ok=false
// short-circuits it with statusCode (e.g. 401, 403). Checked before the
// actor, object and collection GET dispatches; NodeInfo and WebFinger are
// not checked, and inbox POSTs run their own signature/proof verification
// instead.
type AuthorizeFunc func(req *http.Request) (statusCode int, ok bool)

// Engine is the ActivityPub federation endpoint set built from a
// fedcontext.Context: route registration, request dispatch, and the
// inbox/outbox delivery workers.
type Engine struct {
	ctx       *fedcontext.Context
	router    *router.Router
	listeners *listener.Set

	authorize      AuthorizeFunc
	inboxQueue     queue.MessageQueue
	wrapKeyFetcher func(httpsig.KeyFetcher) httpsig.KeyFetcher

	collections map[string]*collectionRoute
}

// Option configures an Engine.
type Option func(*Engine)

// WithAuthorize installs a check run before each actor, object and
// collection GET dispatch, for deployments that gate reads behind bearer tokens or signed
// requests (e.g. authorized-fetch). Unset means every matched GET proceeds.
func WithAuthorize(fn AuthorizeFunc) Option {
	return func(e *Engine) { e.authorize = fn }
}

// WithKeyFetcherDecorator wraps the httpsig.KeyFetcher used to verify
// inbound HTTP Signatures, for deployments that want to reject a key fetch
// before it reaches the network (e.g. a domain blocklist). Unset means
// Engine's own key-resolution fetcher runs unwrapped.
func WithKeyFetcherDecorator(wrap func(httpsig.KeyFetcher) httpsig.KeyFetcher) Option {
	return func(e *Engine) { e.wrapKeyFetcher = wrap }
}

// WithInboxQueue enables asynchronous inbox processing: a POST to an inbox
// route is enqueued and acknowledged 202 immediately, and RunInboxWorker
// drains the queue on whatever goroutine the caller runs it on. Unset means
// every inbox delivery is dispatched inline within the HTTP request.
func WithInboxQueue(q queue.MessageQueue) Option {
	return func(e *Engine) { e.inboxQueue = q }
}

// New returns an Engine that registers endpoints on ctx.Config().Router and
// dispatches inbound activities through listeners. ctx.Config().Store
// backs inbox idempotence; Config().InboxRetryPolicy/OutboxRetryPolicy
// decide when each pipeline's worker stops retrying a failed message.
func New(ctx *fedcontext.Context, listeners *listener.Set, opts ...Option) *Engine {
	e := &Engine{
		ctx:         ctx,
		router:      ctx.Config().Router,
		listeners:   listeners,
		collections: make(map[string]*collectionRoute),
	}

	for _, opt := range opts {
		opt(e)
	}

	ctx.Config().InboxDispatcher = e.dispatchLocalInbox

	return e
}

// routeVars returns the path variable names in a route template, in the
// order they appear.
func routeVars(template string) []string {
	matches := routeVarPattern.FindAllStringSubmatch(template, -1)

	vars := make([]string, 0, len(matches))
	for _, m := range matches {
		vars = append(vars, m[1])
	}

	return vars
}

// normalizeIdentifierVar rewrites a template's lone "{handle}" variable to
// "{identifier}", the name every fedcontext route-building helper and
// RequestContext.ParseURI assumes. This lets a caller spell the path
// segment "{handle}" (a common wire convention) while still getting
// fedcontext's identifier-keyed plumbing underneath.
func normalizeIdentifierVar(name, template string) string {
	if !handleVarPattern.MatchString(template) {
		return template
	}

	logger.Debug("Rewriting {handle} path variable to {identifier}", log.WithType(name))

	return handleVarPattern.ReplaceAllString(template, "{identifier}")
}

// requireVars fails registration if template's variable set isn't exactly
// want, so a misregistered route surfaces immediately rather than as a
// runtime dispatch mismatch.
func requireVars(name, template string, want ...string) error {
	got := routeVars(template)

	if len(got) != len(want) {
		return fmt.Errorf("route %q: template %q must declare exactly %v, got %v", name, template, want, got)
	}

	for i, v := range want {
		if got[i] != v {
			return fmt.Errorf("route %q: template %q must declare %v in order, got %v", name, template, want, got)
		}
	}

	return nil
}

// RegisterActor registers the actor profile document route, served by
// resolving Config().ActorDispatcher for the matched "{identifier}".
func (e *Engine) RegisterActor(template string) error {
	template = normalizeIdentifierVar(fedcontext.RouteActor, template)

	if err := requireVars(fedcontext.RouteActor, template, "identifier"); err != nil {
		return err
	}

	return e.router.Add(fedcontext.RouteActor, template, e.handleGetActor, http.MethodGet)
}

// RegisterInbox registers an actor's personal inbox route. Every POST runs
// the inbox pipeline (signature/proof verification, idempotence, listener
// dispatch, optional enqueue).
func (e *Engine) RegisterInbox(template string) error {
	template = normalizeIdentifierVar(fedcontext.RouteInbox, template)

	if err := requireVars(fedcontext.RouteInbox, template, "identifier"); err != nil {
		return err
	}

	return e.router.Add(fedcontext.RouteInbox, template, e.handleInboxPost, http.MethodPost)
}

// RegisterSharedInbox registers the server-wide shared inbox route (no
// "{identifier}" variable: one endpoint for every local actor), running the
// same inbox pipeline as a personal inbox.
func (e *Engine) RegisterSharedInbox(template string) error {
	if err := requireVars(fedcontext.RouteSharedInbox, template); err != nil {
		return err
	}

	return e.router.Add(fedcontext.RouteSharedInbox, template, e.handleInboxPost, http.MethodPost)
}

// RegisterObject registers a route for objects of the given vocabulary
// class (e.g. "Note"), resolved via Config().ObjectDispatcher. The
// template must carry exactly the variables named in valueVars, matching
// ObjectDispatcher's "values" parameter.
func (e *Engine) RegisterObject(class, template string, valueVars ...string) error {
	name := fedcontext.ObjectRouteName(class)

	if err := requireVars(name, template, valueVars...); err != nil {
		return err
	}

	return e.router.Add(name, template, e.handleGetObject, http.MethodGet)
}

// RegisterNodeInfo registers the versioned NodeInfo document route at
// template, serving h (typically built with pkg/nodeinfo.Handler).
func (e *Engine) RegisterNodeInfo(template string, h http.HandlerFunc) error {
	if err := requireVars(fedcontext.RouteNodeInfo, template); err != nil {
		return err
	}

	return e.router.Add(fedcontext.RouteNodeInfo, template, h, http.MethodGet)
}

// RegisterNodeInfoJRD registers the "/.well-known/nodeinfo" discovery
// document route, serving h (typically built with
// pkg/nodeinfo.DiscoveryHandler).
func (e *Engine) RegisterNodeInfoJRD(template string, h http.HandlerFunc) error {
	if err := requireVars(fedcontext.RouteNodeInfoJRD, template); err != nil {
		return err
	}

	return e.router.Add(fedcontext.RouteNodeInfoJRD, template, h, http.MethodGet)
}

// RegisterWebFinger registers the "/.well-known/webfinger" route, serving h
// (typically built with pkg/webfinger.Handler).
func (e *Engine) RegisterWebFinger(template string, h http.HandlerFunc) error {
	if err := requireVars(fedcontext.RouteWebFinger, template); err != nil {
		return err
	}

	return e.router.Add(fedcontext.RouteWebFinger, template, h, http.MethodGet)
}

// checkAuthorize runs the configured AuthorizeFunc, if any, writing a
// short-circuit status and reporting false if the request should not
// proceed.
func (e *Engine) checkAuthorize(w http.ResponseWriter, req *http.Request) bool {
	if e.authorize == nil {
		return true
	}

	status, ok := e.authorize(req)
	if !ok {
		w.WriteHeader(status)

		return false
	}

	return true
}
