package messaging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/abgdnv/crickstore/pkg/config"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedPublisher returns the queued errors in order, then nil.
// Not thread-safe, should be used in sequential tests only.
type scriptedPublisher struct {
	calls  int
	errs   []error
	always error
	block  bool
}

func (p *scriptedPublisher) Publish(ctx context.Context, _ Event) error {
	p.calls++
	if p.block {
		<-ctx.Done()
		return ctx.Err()
	}
	if p.always != nil {
		return p.always
	}
	if len(p.errs) > 0 {
		err := p.errs[0]
		p.errs = p.errs[1:]
		return err
	}
	return nil
}

type stubEvent struct {
	err error
}

func (stubEvent) Subject() string {
	return SalesRecordedSubject
}

func (e stubEvent) Payload() ([]byte, error) {
	return []byte(`{}`), e.err
}

func testResilience() config.ResilienceConfig {
	return config.ResilienceConfig{
		AttemptTimeout: time.Second,
		Retry:          config.RetryConfig{MaxAttempts: 3, InitialBackoff: time.Millisecond},
		CircuitBreaker: config.CircuitBreakerConfig{ConsecutiveFailures: 5, ErrorRatePercent: 100, OpenTimeout: time.Minute},
	}
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestResilientPublisher_Retries(t *testing.T) {
	errBroker := errors.New("no responders available")
	testCases := []struct {
		name          string
		next          *scriptedPublisher
		event         stubEvent
		expectedCalls int
		expectedErr   error
	}{
		{
			name:          "first attempt succeeds",
			next:          &scriptedPublisher{},
			expectedCalls: 1,
		},
		{
			name:          "succeeds after transient failures",
			next:          &scriptedPublisher{errs: []error{errBroker, errBroker}},
			expectedCalls: 3,
		},
		{
			name:          "gives up after max attempts",
			next:          &scriptedPublisher{always: errBroker},
			expectedCalls: 3,
			expectedErr:   errBroker,
		},
		{
			name:          "invalid event is not sent",
			next:          &scriptedPublisher{},
			event:         stubEvent{err: errors.New("unsupported value")},
			expectedCalls: 0,
			expectedErr:   ErrInvalidEvent,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			publisher := NewResilientPublisher("test", tc.next, testResilience(), discard)

			// when
			err := publisher.Publish(context.Background(), tc.event)

			// then
			assert.Equal(t, tc.expectedCalls, tc.next.calls)
			if tc.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.expectedErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResilientPublisher_AttemptTimeout(t *testing.T) {
	// given
	cfg := testResilience()
	cfg.AttemptTimeout = 10 * time.Millisecond
	cfg.Retry.MaxAttempts = 1
	next := &scriptedPublisher{block: true}
	publisher := NewResilientPublisher("test", next, cfg, discard)

	// when
	err := publisher.Publish(context.Background(), stubEvent{})

	// then
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, next.calls)
}

func TestResilientPublisher_BreakerOpens(t *testing.T) {
	// given
	cfg := testResilience()
	cfg.Retry.MaxAttempts = 1
	cfg.CircuitBreaker.ConsecutiveFailures = 2
	next := &scriptedPublisher{always: errors.New("connection refused")}
	publisher := NewResilientPublisher("test", next, cfg, discard)

	// when the broker keeps failing
	for range 3 {
		require.Error(t, publisher.Publish(context.Background(), stubEvent{}))
	}
	err := publisher.Publish(context.Background(), stubEvent{})

	// then the breaker fails fast without calling the broker
	require.Error(t, err)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 3, next.calls)
}

func TestResilientPublisher_InvalidEventsDoNotTrip(t *testing.T) {
	// given
	cfg := testResilience()
	cfg.CircuitBreaker.ConsecutiveFailures = 1
	next := &scriptedPublisher{}
	publisher := NewResilientPublisher("test", next, cfg, discard)

	// when
	for range 5 {
		require.ErrorIs(t, publisher.Publish(context.Background(), stubEvent{err: errors.New("bad")}), ErrInvalidEvent)
	}

	// then
	assert.NoError(t, publisher.Publish(context.Background(), stubEvent{}))
	assert.Equal(t, 1, next.calls)
}
