/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package amqp

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/require"

	pubsubamqp "github.com/trustbloc/fedigo/pkg/pubsub/amqp"
	"github.com/trustbloc/fedigo/pkg/queue"
)

type fakePubSub struct {
	mutex      sync.Mutex
	published  []*message.Message
	topic      string
	subscribed string
	ch         chan *message.Message
}

func newFakePubSub() *fakePubSub {
	return &fakePubSub{ch: make(chan *message.Message, 10)}
}

func (f *fakePubSub) Publish(topic string, messages ...*message.Message) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.topic = topic
	f.published = append(f.published, messages...)

	return nil
}

func (f *fakePubSub) Subscribe(_ context.Context, topic string) (<-chan *message.Message, error) {
	f.subscribed = topic

	return f.ch, nil
}

func (f *fakePubSub) lastPublished() *message.Message {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if len(f.published) == 0 {
		return nil
	}

	return f.published[len(f.published)-1]
}

func TestQueue_Enqueue(t *testing.T) {
	t.Run("No delay", func(t *testing.T) {
		ps := newFakePubSub()
		q := &Queue{ps: ps, topic: "outbox"}

		err := q.Enqueue(context.Background(), &queue.Message{ID: "msg1", Payload: []byte("payload")})
		require.NoError(t, err)

		published := ps.lastPublished()
		require.NotNil(t, published)
		require.Equal(t, "outbox", ps.topic)
		require.Equal(t, "msg1", published.UUID)
		require.Equal(t, []byte("payload"), published.Payload)
		require.Empty(t, published.Metadata[pubsubamqp.ExpirationMetadataKey])
	})

	t.Run("With delay", func(t *testing.T) {
		ps := newFakePubSub()
		q := &Queue{ps: ps, topic: "outbox"}

		err := q.Enqueue(context.Background(), &queue.Message{ID: "msg1", Payload: []byte("payload")},
			queue.WithDelay(5*time.Second))
		require.NoError(t, err)

		published := ps.lastPublished()
		require.NotNil(t, published)
		require.Equal(t, (5 * time.Second).String(), published.Metadata[pubsubamqp.ExpirationMetadataKey])
	})

	t.Run("Publish error", func(t *testing.T) {
		q := &Queue{ps: &errorPubSub{err: errors.New("injected")}, topic: "outbox"}

		err := q.Enqueue(context.Background(), &queue.Message{ID: "msg1", Payload: []byte("payload")})
		require.Error(t, err)
	})
}

func TestQueue_Listen(t *testing.T) {
	t.Run("Acks on handler success", func(t *testing.T) {
		ps := newFakePubSub()
		q := New(nil, "inbox")
		q.ps = ps

		wmMsg := message.NewMessage("msg1", []byte("payload"))
		ps.ch <- wmMsg

		ctx, cancel := context.WithCancel(context.Background())

		var handled *queue.Message

		done := make(chan error, 1)

		go func() {
			done <- q.Listen(ctx, func(_ context.Context, msg *queue.Message) error {
				handled = msg
				cancel()

				return nil
			})
		}()

		select {
		case <-wmMsg.Acked():
		case <-wmMsg.Nacked():
			t.Fatal("message was nacked, expected ack")
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for ack")
		}

		require.NoError(t, <-done)
		require.Equal(t, "inbox", ps.subscribed)
		require.NotNil(t, handled)
		require.Equal(t, "msg1", handled.ID)
		require.Equal(t, 0, handled.Attempt)
	})

	t.Run("Nacks on handler error and carries redelivery attempt", func(t *testing.T) {
		ps := newFakePubSub()
		q := &Queue{ps: ps, topic: "inbox"}

		wmMsg := message.NewMessage("msg1", []byte("payload"))
		wmMsg.Metadata.Set(pubsubamqp.RedeliveryCountMetadataKey, "2")
		ps.ch <- wmMsg

		ctx, cancel := context.WithCancel(context.Background())

		var handled *queue.Message

		done := make(chan error, 1)

		go func() {
			done <- q.Listen(ctx, func(_ context.Context, msg *queue.Message) error {
				handled = msg
				cancel()

				return errors.New("handler failed")
			})
		}()

		select {
		case <-wmMsg.Nacked():
		case <-wmMsg.Acked():
			t.Fatal("message was acked, expected nack")
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for nack")
		}

		require.NoError(t, <-done)
		require.NotNil(t, handled)
		require.Equal(t, 2, handled.Attempt)
	})

	t.Run("Returns when context is cancelled", func(t *testing.T) {
		ps := newFakePubSub()
		q := &Queue{ps: ps, topic: "inbox"}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		require.NoError(t, q.Listen(ctx, func(_ context.Context, _ *queue.Message) error {
			return nil
		}))
	})

	t.Run("Subscribe error", func(t *testing.T) {
		q := &Queue{ps: &errorPubSub{err: errors.New("injected")}, topic: "inbox"}

		err := q.Listen(context.Background(), func(_ context.Context, _ *queue.Message) error {
			return nil
		})
		require.Error(t, err)
	})
}

type errorPubSub struct {
	err error
}

func (e *errorPubSub) Publish(string, ...*message.Message) error {
	return e.err
}

func (e *errorPubSub) Subscribe(context.Context, string) (<-chan *message.Message, error) {
	return nil, e.err
}
