package nats

import (
	"context"
	"fmt"

	"github.com/abgdnv/crickstore/pkg/messaging"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Publisher sends events to JetStream. Payload errors are wrapped with messaging.ErrInvalidEvent
// so callers can tell a bad event from an unreachable broker.
type Publisher struct {
	js jetstream.JetStream
}

func NewNatsPublisher(js jetstream.JetStream) *Publisher {
	return &Publisher{js: js}
}

func (p *Publisher) Publish(ctx context.Context, event messaging.Event) error {
	data, err := event.Payload()
	if err != nil {
		return fmt.Errorf("%w: %s: %w", messaging.ErrInvalidEvent, event.Subject(), err)
	}
	msg := nats.NewMsg(event.Subject())
	msg.Data = data
	msg.Header.Set("Content-Type", "application/json")
	if _, err = p.js.PublishMsg(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", event.Subject(), err)
	}
	return nil
}
