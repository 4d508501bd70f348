// Package messaging defines the events the shop emits and the publishers that carry them.
package messaging

import (
	"context"
	"errors"
)

// ErrInvalidEvent marks events that cannot be encoded. They are never retried and do not trip the breaker.
var ErrInvalidEvent = errors.New("invalid event")

// Event is a message bound for a single subject.
type Event interface {
	Subject() string
	// Payload encodes the event body. Errors here are the caller's fault, not the broker's.
	Payload() ([]byte, error)
}

// Publisher delivers events to a broker. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher drops every event. Sales are recorded without a broker when NATS is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
