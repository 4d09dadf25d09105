/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package queue

import (
	"context"
	"sync"
)

// Parallel wraps a MessageQueue so that Listen consumes messages one at a
// time from the underlying queue but dispatches up to Concurrency handler
// invocations concurrently, blocking the outer consume loop once
// Concurrency invocations are in flight. Enqueue is passed straight
// through. A buffered channel used as a counting semaphore bounds
// concurrent delivery.
type Parallel struct {
	MessageQueue

	concurrency int
}

// NewParallel returns a MessageQueue decorator that fans out handler
// invocations up to concurrency at a time. A concurrency of 1 or less
// behaves like the wrapped queue's own Listen (fully sequential).
func NewParallel(mq MessageQueue, concurrency int) *Parallel {
	if concurrency < 1 {
		concurrency = 1
	}

	return &Parallel{MessageQueue: mq, concurrency: concurrency}
}

// Listen implements MessageQueue.
func (p *Parallel) Listen(ctx context.Context, handler Handler) error {
	sem := make(chan struct{}, p.concurrency)

	var wg sync.WaitGroup

	err := p.MessageQueue.Listen(ctx, func(ctx context.Context, msg *Message) error {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			return ctx.Err()
		}

		wg.Add(1)

		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			if err := handler(ctx, msg); err != nil {
				logger.Warnf("Handler returned an error for message [%s]: %s", msg.ID, err)
			}
		}()

		return nil
	})

	wg.Wait()

	return err
}
