/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package lifecycle

import (
	"errors"
	"sync/atomic"

	"github.com/trustbloc/fedigo/internal/pkg/log"
)

var logger = log.New("lifecycle")

// State is the state of a Lifecycle.
type State = uint32

const (
	// StateNotStarted is the state of a service before Start is called.
	StateNotStarted State = iota
	// StateStarting is the state of a service while its start function is running.
	StateStarting
	// StateStarted is the state of a service once it has been successfully started.
	StateStarted
	// StateStopped is the state of a service once Stop has completed.
	StateStopped
)

// ErrNotStarted is returned by an operation that requires a service to be
// in the StateStarted state.
var ErrNotStarted = errors.New("service not started")

// Lifecycle implements the lifecycle of a service, i.e. Start and Stop.
type Lifecycle struct {
	name  string
	state uint32
	start func()
	stop  func()
}

// Opt sets an optional Lifecycle start/stop function.
type Opt func(*Lifecycle)

// WithStart sets the function that's invoked when the service is started.
func WithStart(start func()) Opt {
	return func(l *Lifecycle) {
		l.start = start
	}
}

// WithStop sets the function that's invoked when the service is stopped.
func WithStop(stop func()) Opt {
	return func(l *Lifecycle) {
		l.stop = stop
	}
}

// New returns a new Lifecycle. Start/Stop are no-ops unless WithStart/WithStop
// are given.
func New(name string, opts ...Opt) *Lifecycle {
	l := &Lifecycle{name: name}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Start starts the service.
func (h *Lifecycle) Start() {
	if !atomic.CompareAndSwapUint32(&h.state, StateNotStarted, StateStarting) {
		logger.Debugf("[%s] Service already started", h.name)

		return
	}

	logger.Debugf("[%s] Starting service ...", h.name)

	if h.start != nil {
		h.start()
	}

	logger.Debugf("[%s] ... service started", h.name)

	atomic.StoreUint32(&h.state, StateStarted)
}

// Stop stops the service.
func (h *Lifecycle) Stop() {
	if !atomic.CompareAndSwapUint32(&h.state, StateStarted, StateStopped) {
		logger.Debugf("[%s] Service already stopped", h.name)

		return
	}

	logger.Debugf("[%s] Stopping service ...", h.name)

	if h.stop != nil {
		h.stop()
	}

	logger.Debugf("[%s] ... service stopped", h.name)
}

// State returns the state of the service.
func (h *Lifecycle) State() State {
	return atomic.LoadUint32(&h.state)
}
