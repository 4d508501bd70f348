package messaging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abgdnv/crickstore/pkg/config"
	"github.com/cenkalti/backoff/v5"
	"github.com/sony/gobreaker/v2"
)

// ResilientPublisher wraps a Publisher with a per-attempt timeout, retries with exponential
// backoff and a circuit breaker around the retried call.
type ResilientPublisher struct {
	next    Publisher
	cfg     config.ResilienceConfig
	breaker *gobreaker.CircuitBreaker[struct{}]
}

// NewResilientPublisher creates a ResilientPublisher named name for logs and breaker state.
func NewResilientPublisher(name string, next Publisher, cfg config.ResilienceConfig, logger *slog.Logger) *ResilientPublisher {
	st := gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Timeout:     cfg.CircuitBreaker.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			total := counts.TotalSuccesses + counts.TotalFailures
			return counts.ConsecutiveFailures > cfg.CircuitBreaker.ConsecutiveFailures ||
				(total > cfg.CircuitBreaker.ConsecutiveFailures &&
					float64(counts.TotalFailures)/float64(total)*100 > float64(cfg.CircuitBreaker.ErrorRatePercent))
		},
		IsSuccessful: func(err error) bool {
			// only broker failures count against the breaker
			return err == nil || errors.Is(err, ErrInvalidEvent) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	}
	return &ResilientPublisher{
		next:    next,
		cfg:     cfg,
		breaker: gobreaker.NewCircuitBreaker[struct{}](st),
	}
}

// Publish sends event through the wrapped publisher. When the breaker is open it fails fast
// with gobreaker.ErrOpenState.
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	_, err := p.breaker.Execute(func() (struct{}, error) {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = p.cfg.Retry.InitialBackoff
		return backoff.Retry(ctx, func() (struct{}, error) {
			return struct{}{}, p.attempt(ctx, event)
		}, backoff.WithBackOff(b), backoff.WithMaxTries(p.cfg.Retry.MaxAttempts))
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Subject(), err)
	}
	return nil
}

func (p *ResilientPublisher) attempt(ctx context.Context, event Event) error {
	if _, err := event.Payload(); err != nil {
		return backoff.Permanent(fmt.Errorf("%w: %w", ErrInvalidEvent, err))
	}
	callCtx, cancel := context.WithTimeout(ctx, p.cfg.AttemptTimeout)
	defer cancel()
	return p.next.Publish(callCtx, event)
}
