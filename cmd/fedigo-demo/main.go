/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Command fedigo-demo wires one actor and one federation listener together
// into a runnable ActivityPub endpoint: it is a demonstration of the
// pkg/federation engine's wiring, not itself a federation-middleware
// component.
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"regexp"
	"syscall"
	"time"

	"github.com/piprate/json-gold/ld"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/trustbloc/fedigo/internal/pkg/log"
	"github.com/trustbloc/fedigo/pkg/activitypub/vocab"
	"github.com/trustbloc/fedigo/pkg/auth"
	"github.com/trustbloc/fedigo/pkg/collection"
	"github.com/trustbloc/fedigo/pkg/config"
	"github.com/trustbloc/fedigo/pkg/docloader"
	"github.com/trustbloc/fedigo/pkg/fedcontext"
	"github.com/trustbloc/fedigo/pkg/federation"
	orberrors "github.com/trustbloc/fedigo/pkg/ferrors"
	"github.com/trustbloc/fedigo/pkg/httpserver"
	"github.com/trustbloc/fedigo/pkg/listener"
	"github.com/trustbloc/fedigo/pkg/nodeinfo"
	"github.com/trustbloc/fedigo/pkg/policy"
	"github.com/trustbloc/fedigo/pkg/queue"
	"github.com/trustbloc/fedigo/pkg/retry"
	"github.com/trustbloc/fedigo/pkg/router"
	"github.com/trustbloc/fedigo/pkg/store"
	"github.com/trustbloc/fedigo/pkg/webfinger"
)

var logger = log.New("fedigo-demo")

func main() {
	cmd := newStartCmd()

	if err := cmd.Execute(); err != nil {
		logger.Errorf("%s", err)
		os.Exit(1)
	}
}

func newStartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the fedigo demo federation server",
		Long:  "Starts a single-actor ActivityPub server demonstrating pkg/federation's route registration, inbox/outbox pipelines, and discovery endpoints.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, err := config.Resolve(cmd)
			if err != nil {
				return err
			}

			level, err := log.ParseLevel(params.LogLevel)
			if err != nil {
				return fmt.Errorf("parse log level: %w", err)
			}

			log.SetDefaultLevel(level)

			return run(params)
		},
	}

	config.AddFlags(cmd)

	return cmd
}

func run(params *config.Params) error {
	handler, err := buildHandler(params)
	if err != nil {
		return err
	}

	srv := httpserver.New(params.HostURL, "", "", handler)

	if err := srv.Start(); err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	logger.Infof("listening on %s", params.HostURL)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return srv.Stop(ctx)
}

// buildHandler assembles the federation engine for a single demo actor and
// returns the CORS-wrapped http.Handler a host mounts, grounded on the
// teacher's rs/cors-wrapped mux.Router in pkg/httpserver.
func buildHandler(params *config.Params) (http.Handler, error) {
	baseURL, err := parseBaseURL(params.BaseURL)
	if err != nil {
		return nil, err
	}

	actorKeys, err := newDemoKeyPair()
	if err != nil {
		return nil, fmt.Errorf("generate demo actor keys: %w", err)
	}

	kvStore := store.NewMemStore()
	outboxQueue := queue.NewMemQueue(queue.DefaultConfig())
	domainPolicy := policy.New(kvStore)

	retryPolicy := retry.NewExponentialPolicy(retry.Config{
		InitialDelay: params.RetryInitialDelay,
		Factor:       2.0,
		MaxDelay:     retry.DefaultConfig().MaxDelay,
		MaxAttempts:  params.RetryMaxAttempts,
	})

	loader := docloader.New()

	cfg := &fedcontext.Config{
		BaseURL:     baseURL,
		Router:      router.New(),
		Store:       kvStore,
		OutboxQueue: outboxQueue,

		KeyPairsDispatcher: func(_ context.Context, identifier string) ([]fedcontext.RawKeyPair, error) {
			if identifier != params.ActorHandle {
				return nil, orberrors.ErrContentNotFound
			}

			return actorKeys, nil
		},

		ActorFetcher: fedcontext.NewHTTPActorFetcher(loader),
		DocumentLoaderFactory: func() ld.DocumentLoader {
			return loader
		},

		InboxRetryPolicy:  retryPolicy,
		OutboxRetryPolicy: retryPolicy,

		SignatureWindow:       params.SignatureWindow,
		AllowLegacySHA1Digest: params.AllowLegacySHA1Digest,
	}

	fedCtx := fedcontext.New(cfg)

	cfg.ActorDispatcher = func(ctx context.Context, identifier string) (*vocab.ActorType, error) {
		if identifier != params.ActorHandle {
			return nil, orberrors.ErrContentNotFound
		}

		return demoActor(ctx, fedCtx, identifier)
	}

	opts := []federation.Option{federation.WithKeyFetcherDecorator(domainPolicy.WrapKeyFetcher)}

	if authorize := outboxAuthorizer(params.OutboxAdminToken); authorize != nil {
		opts = append(opts, federation.WithAuthorize(authorize))
	}

	engine := federation.New(fedCtx, demoListeners(), opts...)

	if err := registerRoutes(engine, fedCtx, params.ActorHandle); err != nil {
		return nil, err
	}

	go func() {
		if err := engine.RunOutboxWorker(context.Background()); err != nil {
			logger.Errorf("outbox worker stopped: %s", err)
		}
	}()

	return cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}).Handler(fedCtx.Config().Router), nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}

	return u, nil
}

// newDemoKeyPair generates the single demo actor's RSA (HTTP Signatures)
// and Ed25519 (Object Integrity Proofs) key pairs in memory. A real
// deployment would load these from a KMS or secret store instead.
func newDemoKeyPair() ([]fedcontext.RawKeyPair, error) {
	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, err
	}

	edPub, edPriv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}

	return []fedcontext.RawKeyPair{
		{PublicKey: &rsaKey.PublicKey, PrivateKey: rsaKey},
		{PublicKey: edPub, PrivateKey: edPriv},
	}, nil
}

// demoActor builds the actor profile document for identifier, including its
// synthesized key-pair wire forms.
func demoActor(ctx context.Context, fedCtx *fedcontext.Context, identifier string) (*vocab.ActorType, error) {
	actorID := fedCtx.GetActorURI(identifier)

	keyPairs, err := fedCtx.GetActorKeyPairs(ctx, actorID, identifier)
	if err != nil {
		return nil, err
	}

	opts := []vocab.Opt{
		vocab.WithPreferredUsername(identifier),
		vocab.WithInbox(fedCtx.GetInboxURI(identifier)),
		vocab.WithOutbox(fedCtx.GetOutboxURI(identifier)),
		vocab.WithFollowers(fedCtx.GetFollowersURI(identifier)),
		vocab.WithFollowing(fedCtx.GetFollowingURI(identifier)),
	}

	for _, kp := range keyPairs {
		if kp.CryptographicKey != nil {
			opts = append(opts, vocab.WithPublicKey(kp.CryptographicKey))
		}

		if kp.Multikey != nil {
			opts = append(opts, vocab.WithAssertionMethod(kp.Multikey))
		}
	}

	return vocab.NewPerson(actorID, opts...), nil
}

// demoListeners logs every inbound Create and every inbound Follow, the
// minimal behavior needed to show the inbox pipeline dispatch actually
// running. No Accept is sent in reply to a Follow.
func demoListeners() *listener.Set {
	listeners := listener.NewSet()

	_ = listeners.Register(vocab.TypeCreate, func(_ context.Context, activity *vocab.ActivityType) error {
		logger.Infof("received Create %s from %s", activity.ID(), activity.Actor())

		return nil
	})

	_ = listeners.Register(vocab.TypeFollow, func(_ context.Context, activity *vocab.ActivityType) error {
		logger.Infof("received Follow %s from %s", activity.ID(), activity.Actor())

		return nil
	})

	return listeners
}

// outboxPathPattern matches the registerRoutes outbox template
// "/actors/{identifier}/outbox" against a request's literal path.
var outboxPathPattern = regexp.MustCompile(`^/actors/[^/]+/outbox$`)

// outboxAuthorizer returns a federation.AuthorizeFunc that requires
// "Bearer <adminToken>" on the outbox route and leaves every other
// registered GET route open, or nil if adminToken is empty.
func outboxAuthorizer(adminToken string) federation.AuthorizeFunc {
	if adminToken == "" {
		return nil
	}

	verifier := auth.NewTokenVerifier(auth.Config{
		AuthTokensDef: []*auth.TokenDef{
			{EndpointExpression: "outbox", ReadTokens: []string{"admin"}},
		},
		AuthTokens: map[string]string{"admin": adminToken},
	}, "outbox", http.MethodGet)

	return func(req *http.Request) (int, bool) {
		if !outboxPathPattern.MatchString(req.URL.Path) {
			return 0, true
		}

		return verifier.Authorize(req)
	}
}

func registerRoutes(engine *federation.Engine, fedCtx *fedcontext.Context, actorHandle string) error {
	if err := engine.RegisterActor("/actors/{identifier}"); err != nil {
		return err
	}

	if err := engine.RegisterInbox("/actors/{identifier}/inbox"); err != nil {
		return err
	}

	if err := engine.RegisterSharedInbox("/inbox"); err != nil {
		return err
	}

	emptyPage := func(context.Context, string, string) (*collection.Page, error) {
		return &collection.Page{}, nil
	}

	if err := engine.RegisterOutbox("/actors/{identifier}/outbox", emptyPage); err != nil {
		return err
	}

	if err := engine.RegisterFollowers("/actors/{identifier}/followers", emptyPage); err != nil {
		return err
	}

	if err := engine.RegisterFollowing("/actors/{identifier}/following", emptyPage); err != nil {
		return err
	}

	nodeInfoCfg := nodeinfo.Config{
		SoftwareName:    "fedigo-demo",
		SoftwareVersion: "0.1.0",
		UsageFunc: func() nodeinfo.UsageCounts {
			return nodeinfo.UsageCounts{Users: 1}
		},
	}

	if err := engine.RegisterNodeInfo("/nodeinfo/2.1", nodeinfo.Handler(nodeinfo.V2_1, nodeInfoCfg)); err != nil {
		return err
	}

	nodeInfoURL := fedCtx.GetNodeInfoURI().String()

	if err := engine.RegisterNodeInfoJRD("/.well-known/nodeinfo", nodeinfo.DiscoveryHandler(nodeinfo.V2_1, nodeInfoURL)); err != nil {
		return err
	}

	lookup := func(username string) (*url.URL, bool) {
		if username != actorHandle {
			return nil, false
		}

		return fedCtx.GetActorURI(username), true
	}

	return engine.RegisterWebFinger("/.well-known/webfinger", webfinger.Handler(lookup))
}
