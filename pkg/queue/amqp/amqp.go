/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package amqp adapts pkg/pubsub/amqp's topic-based publisher/subscriber to
// the queue.MessageQueue contract used by the federation engine's inbox and
// outbox pipelines.
package amqp

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/trustbloc/fedigo/internal/pkg/log"
	pubsubamqp "github.com/trustbloc/fedigo/pkg/pubsub/amqp"
	"github.com/trustbloc/fedigo/pkg/queue"
)

var logger = log.New("queue")

// pubSub is the slice of *pubsubamqp.PubSub's API this adapter needs,
// narrowed so tests can substitute a fake instead of a live broker.
type pubSub interface {
	Publish(topic string, messages ...*message.Message) error
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
}

// Queue adapts one topic of an AMQP publisher/subscriber into a
// queue.MessageQueue. Delivery is at-least-once: a message is only Acked
// once the handler passed to Listen returns nil, so a crash between handler
// completion and Ack causes AMQP to redeliver it.
type Queue struct {
	ps    pubSub
	topic string
}

// New returns a Queue that publishes to and consumes from the given topic of
// ps. Callers typically pass a single *pubsubamqp.PubSub shared across
// several topics (e.g. one Queue for outbox delivery, another for inbox
// processing), since the underlying connection, channel pool, and
// redelivery/dead-letter wiring are shared per PubSub, not per topic.
func New(ps *pubsubamqp.PubSub, topic string) *Queue {
	return &Queue{ps: ps, topic: topic}
}

// Enqueue implements queue.MessageQueue. A WithDelay option is carried as a
// per-message AMQP expiration (TTL): the topic's queue dead-letters expired
// messages to the redelivery exchange, which republishes them to their
// origin queue on first expiry — see pkg/pubsub/amqp's redelivery queue.
func (q *Queue) Enqueue(_ context.Context, msg *queue.Message, opts ...queue.EnqueueOption) error {
	var options queue.EnqueueOptions

	for _, opt := range opts {
		opt(&options)
	}

	wmMsg := message.NewMessage(msg.ID, msg.Payload)

	if options.Delay > 0 {
		wmMsg.Metadata.Set(pubsubamqp.ExpirationMetadataKey, options.Delay.String())
	}

	if err := q.ps.Publish(q.topic, wmMsg); err != nil {
		return fmt.Errorf("publish message [%s] to topic [%s]: %w", msg.ID, q.topic, err)
	}

	return nil
}

// Listen implements queue.MessageQueue.
func (q *Queue) Listen(ctx context.Context, handler queue.Handler) error {
	msgChan, err := q.ps.Subscribe(ctx, q.topic)
	if err != nil {
		return fmt.Errorf("subscribe to topic [%s]: %w", q.topic, err)
	}

	for {
		select {
		case wmMsg, ok := <-msgChan:
			if !ok {
				return nil
			}

			q.handle(ctx, wmMsg, handler)
		case <-ctx.Done():
			return nil
		}
	}
}

func (q *Queue) handle(ctx context.Context, wmMsg *message.Message, handler queue.Handler) {
	msg := &queue.Message{
		ID:      wmMsg.UUID,
		Payload: wmMsg.Payload,
		Attempt: redeliveryAttempts(wmMsg),
	}

	if err := handler(ctx, msg); err != nil {
		logger.Warnf("Handler returned an error for message [%s] on topic [%s]: %s", msg.ID, q.topic, err)
		wmMsg.Nack()

		return
	}

	wmMsg.Ack()
}

func redeliveryAttempts(wmMsg *message.Message) int {
	value, ok := wmMsg.Metadata[pubsubamqp.RedeliveryCountMetadataKey]
	if !ok {
		return 0
	}

	attempts, err := strconv.Atoi(value)
	if err != nil {
		logger.Warnf("Message [%s] has a non-integer redelivery count metadata value [%s]", wmMsg.UUID, value)

		return 0
	}

	return attempts
}
