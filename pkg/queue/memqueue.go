/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package queue

import (
	"context"
	"sync"
	"time"

	"github.com/trustbloc/fedigo/internal/pkg/log"
)

var logger = log.New("queue")

const (
	defaultBufferSize   = 100
	defaultPollInterval = 50 * time.Millisecond
)

// Config holds the configuration for an in-memory MemQueue.
type Config struct {
	// BufferSize is the capacity of the channel holding messages that are ready
	// for immediate delivery.
	BufferSize int

	// PollInterval is how often the delayed-message list is scanned for
	// messages whose delay has elapsed.
	PollInterval time.Duration
}

// DefaultConfig returns the default MemQueue configuration.
func DefaultConfig() Config {
	return Config{
		BufferSize:   defaultBufferSize,
		PollInterval: defaultPollInterval,
	}
}

type delayedMessage struct {
	msg     *Message
	readyAt time.Time
}

// MemQueue is an in-process MessageQueue backed by a buffered Go channel,
// following the single-node, Go-channel-based pub/sub shape used for tests
// and single-instance deployments. Messages
// enqueued with no delay are placed on the ready channel immediately;
// delayed messages are held in a slice and moved to the ready channel by a
// polling goroutine once their delay elapses, following the same
// timer/poll shape as a typical redelivery backoff scheduler.
type MemQueue struct {
	Config

	ready chan *Message

	mutex   sync.Mutex
	delayed []*delayedMessage

	closeOnce sync.Once
	closed    chan struct{}
}

// NewMemQueue returns a new in-memory MessageQueue.
func NewMemQueue(cfg Config) *MemQueue {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = defaultBufferSize
	}

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}

	q := &MemQueue{
		Config: cfg,
		ready:  make(chan *Message, cfg.BufferSize),
		closed: make(chan struct{}),
	}

	go q.pollDelayed()

	return q
}

// Close stops the polling goroutine. Listen returns once the context passed to
// it is cancelled regardless of Close; Close is only needed to stop the
// delayed-message poller if the queue is discarded without ever calling Listen.
func (q *MemQueue) Close() {
	q.closeOnce.Do(func() {
		close(q.closed)
	})
}

// Enqueue implements MessageQueue.
func (q *MemQueue) Enqueue(ctx context.Context, msg *Message, opts ...EnqueueOption) error {
	var o EnqueueOptions

	for _, opt := range opts {
		opt(&o)
	}

	if o.Delay <= 0 {
		return q.send(ctx, msg)
	}

	q.mutex.Lock()
	q.delayed = append(q.delayed, &delayedMessage{msg: msg, readyAt: time.Now().Add(o.Delay)})
	q.mutex.Unlock()

	logger.Debugf("Enqueued message [%s] for delayed delivery in %s", msg.ID, o.Delay)

	return nil
}

func (q *MemQueue) send(ctx context.Context, msg *Message) error {
	select {
	case q.ready <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-q.closed:
		return nil
	}
}

// Listen implements MessageQueue.
func (q *MemQueue) Listen(ctx context.Context, handler Handler) error {
	for {
		select {
		case msg := <-q.ready:
			if err := handler(ctx, msg); err != nil {
				logger.Warnf("Handler returned an error for message [%s]: %s", msg.ID, err)
			}
		case <-ctx.Done():
			return nil
		}
	}
}

func (q *MemQueue) pollDelayed() {
	ticker := time.NewTicker(q.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			q.promoteDue()
		case <-q.closed:
			return
		}
	}
}

func (q *MemQueue) promoteDue() {
	now := time.Now()

	q.mutex.Lock()

	var remaining []*delayedMessage

	var due []*Message

	for _, d := range q.delayed {
		if now.Before(d.readyAt) {
			remaining = append(remaining, d)
		} else {
			due = append(due, d.msg)
		}
	}

	q.delayed = remaining

	q.mutex.Unlock()

	for _, msg := range due {
		select {
		case q.ready <- msg:
		case <-q.closed:
			return
		}
	}
}
