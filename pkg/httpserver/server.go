/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package httpserver runs a federation.Engine's handler behind a
// TLS-capable, atomically start/stop-able HTTP listener, adding a
// "/healthcheck" endpoint no federation route otherwise serves.
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"

	"github.com/trustbloc/fedigo/internal/pkg/log"
)

var logger = log.New("httpserver")

const healthCheckEndpoint = "/healthcheck"

// Server wraps an http.Server with an idempotent Start/Stop lifecycle and a
// built-in health check route in front of the handler it was built with.
type Server struct {
	httpServer *http.Server
	started    uint32
	certFile   string
	keyFile    string
}

// New returns a Server listening on addr, serving handler (typically a
// federation.Engine's CORS-wrapped router) behind its own "/healthcheck"
// route. certFile/keyFile enable TLS; either left empty serves plaintext
// HTTP.
func New(addr, certFile, keyFile string, handler http.Handler) *Server {
	router := mux.NewRouter()
	router.HandleFunc(healthCheckEndpoint, healthCheckHandler).Methods(http.MethodGet)
	router.PathPrefix("/").Handler(handler)

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		certFile: certFile,
		keyFile:  keyFile,
	}
}

// Start starts the HTTP server on a separate goroutine. Returns an error if
// the server is already running.
func (s *Server) Start() error {
	if !atomic.CompareAndSwapUint32(&s.started, 0, 1) {
		return errors.New("server already started")
	}

	go func() {
		logger.Infof("listening for requests on %s", s.httpServer.Addr)

		var err error
		if s.keyFile != "" && s.certFile != "" {
			err = s.httpServer.ListenAndServeTLS(s.certFile, s.keyFile)
		} else {
			err = s.httpServer.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("server on %s stopped: %s", s.httpServer.Addr, err)
		}

		atomic.StoreUint32(&s.started, 0)
	}()

	return nil
}

// Stop gracefully shuts down the HTTP server. Returns an error if the server
// isn't running.
func (s *Server) Stop(ctx context.Context) error {
	if !atomic.CompareAndSwapUint32(&s.started, 1, 0) {
		return errors.New("cannot stop HTTP server since it hasn't been started")
	}

	return s.httpServer.Shutdown(ctx)
}

type healthCheckResp struct {
	Status      string    `json:"status"`
	CurrentTime time.Time `json:"currentTime"`
}

func healthCheckHandler(rw http.ResponseWriter, _ *http.Request) {
	rw.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(rw).Encode(&healthCheckResp{Status: "success", CurrentTime: time.Now()}); err != nil {
		logger.Errorf("healthcheck response failure: %s", err)
	}
}
