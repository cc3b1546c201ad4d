package eventbus

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Marshaler encodes event payloads as JSON messages.
var Marshaler = cqrs.JSONMarshaler{}

// EventBus is the publish/subscribe surface used by the match module.
type EventBus interface {
	Publish(topic string, messages ...*message.Message) error
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
	Close() error
}

// PubSub is an in-process EventBus. Each subscriber receives every message
// published on its topic after it subscribed, in publish order. Publish
// returns once every subscriber has acked, so subscribers must not call
// back into the publisher.
type PubSub struct {
	channel *gochannel.GoChannel
	logger  *slog.Logger
}

// NewPubSub creates an in-process PubSub. buffer is the per-subscriber
// output channel size.
func NewPubSub(logger *slog.Logger, buffer int64) *PubSub {
	if logger == nil {
		logger = slog.Default()
	}
	ch := gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer:            buffer,
			BlockPublishUntilSubscriberAck: true,
		},
		watermill.NewSlogLogger(logger),
	)
	return &PubSub{channel: ch, logger: logger}
}

// Publish publishes messages to the specified topic.
func (ps *PubSub) Publish(topic string, messages ...*message.Message) error {
	for _, msg := range messages {
		if msg.UUID == "" {
			msg.UUID = watermill.NewUUID()
		}
		ps.logger.Debug("Publishing message",
			slog.String("topic", topic),
			slog.String("message_id", msg.UUID),
		)
	}
	if err := ps.channel.Publish(topic, messages...); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

func (ps *PubSub) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	msgs, err := ps.channel.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}
	return msgs, nil
}

func (ps *PubSub) Close() error {
	if err := ps.channel.Close(); err != nil {
		return fmt.Errorf("failed to close pubsub: %w", err)
	}
	return nil
}

// NewMessage marshals payload into a message and copies metadata onto it.
func NewMessage(payload any, metadata map[string]string) (*message.Message, error) {
	msg, err := Marshaler.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	for k, v := range metadata {
		msg.Metadata.Set(k, v)
	}
	return msg, nil
}

// Decode unmarshals a message payload into v.
func Decode(msg *message.Message, v any) error {
	if err := Marshaler.Unmarshal(msg, v); err != nil {
		return fmt.Errorf("failed to unmarshal message %s: %w", msg.UUID, err)
	}
	return nil
}
