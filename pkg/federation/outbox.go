/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package federation

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/trustbloc/fedigo/internal/pkg/log"
	"github.com/trustbloc/fedigo/pkg/fedcontext"
	"github.com/trustbloc/fedigo/pkg/queue"
	"github.com/trustbloc/fedigo/pkg/retry"
)

// outboxRetryPolicy returns the configured outbox retry policy, or the
// package default if none was configured.
func (e *Engine) outboxRetryPolicy() retry.Policy {
	if p := e.ctx.Config().OutboxRetryPolicy; p != nil {
		return p
	}

	return retry.NewExponentialPolicy(retry.DefaultConfig())
}

// RunOutboxWorker drains Config().OutboxQueue, delivering each queued
// message over HTTP via Context.DeliverOutboxMessage. A delivery failure
// is returned to the queue's Listen, which decides whether the message is
// redelivered (the AMQP queue Nacks it for broker redelivery; MemQueue logs
// the error and drops it). Config().OutboxRetryPolicy is consulted with the
// message's redelivery attempt count only to decide when to stop: once it
// gives up, the message is dropped (acked). The delay it computes is not
// used. Blocks until ctx is done or the queue's Listen call returns.
func (e *Engine) RunOutboxWorker(ctx context.Context) error {
	q := e.ctx.Config().OutboxQueue
	if q == nil {
		return fmt.Errorf("no outbox queue configured")
	}

	return q.Listen(ctx, func(ctx context.Context, msg *queue.Message) error {
		outboxMsg := &fedcontext.OutboxMessage{}
		if err := json.Unmarshal(msg.Payload, outboxMsg); err != nil {
			logger.Warn("Unmarshal queued outbox message, discarding",
				log.WithMessageID(msg.ID), log.WithError(err))

			return nil
		}

		err := e.ctx.DeliverOutboxMessage(ctx, outboxMsg)
		if err == nil {
			return nil
		}

		if _, ok := e.outboxRetryPolicy().NextDelay(retry.Context{Attempts: msg.Attempt}); !ok {
			logger.Warn("Giving up on outbox message after exhausting retries",
				log.WithMessageID(msg.ID), log.WithError(err))

			return nil
		}

		return err
	})
}
