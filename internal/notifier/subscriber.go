package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/abgdnv/crickstore/pkg/config"
	"github.com/abgdnv/crickstore/pkg/messaging/events"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"golang.org/x/sync/errgroup"
)

// Subscribe creates or updates the durable pull consumer on stream.
func Subscribe(ctx context.Context, js jetstream.JetStream, stream string, cfg config.ConsumerConfig) (jetstream.Consumer, error) {
	consumer, err := js.CreateOrUpdateConsumer(ctx, stream, jetstream.ConsumerConfig{
		FilterSubject: cfg.Subject,
		Durable:       cfg.Durable,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       cfg.AckWait,
		MaxDeliver:    cfg.MaxDeliver,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer %s on %s: %w", cfg.Durable, stream, err)
	}
	return consumer, nil
}

// Run drains consumer with cfg.Workers workers until ctx is done.
func Run(ctx context.Context, consumer jetstream.Consumer, cfg config.ConsumerConfig, n *Notifier, logger *slog.Logger) error {
	g, gCtx := errgroup.WithContext(ctx)
	for range cfg.Workers {
		g.Go(func() error {
			return runWorker(gCtx, consumer, cfg, n, logger)
		})
	}
	return g.Wait()
}

// runWorker fetches batches from the consumer and handles every message.
func runWorker(ctx context.Context, consumer jetstream.Consumer, cfg config.ConsumerConfig, n *Notifier, logger *slog.Logger) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		batch, err := consumer.Fetch(cfg.Batch, jetstream.FetchMaxWait(cfg.FetchWait))
		if err != nil {
			if errors.Is(err, nats.ErrTimeout) {
				continue
			}
			logger.ErrorContext(ctx, "Failed to fetch messages", "error", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(cfg.RetryAfter):
			}
			continue
		}
		for msg := range batch.Messages() {
			handleMessage(ctx, msg, n, logger)
		}
	}
}

// handleMessage acks handled events, naks the ones whose alert could not be delivered
// and terminates payloads that will never decode.
func handleMessage(ctx context.Context, msg jetstream.Msg, n *Notifier, logger *slog.Logger) {
	if msg == nil {
		logger.ErrorContext(ctx, "Received nil message")
		return
	}
	var event events.SaleRecordedEvent
	if err := json.Unmarshal(msg.Data(), &event); err != nil {
		logger.ErrorContext(ctx, "Failed to unmarshal message", "error", err, "subject", msg.Subject())
		if err := msg.Term(); err != nil {
			logger.ErrorContext(ctx, "Failed to terminate message", "error", err)
		}
		return
	}

	logger.InfoContext(ctx, "Received sale recorded event",
		slog.String("subject", msg.Subject()),
		slog.String("sale_id", event.SaleID.String()),
		slog.String("product_id", event.ProductID.String()),
		slog.Int("stock_left", int(event.StockLeft)),
		slog.String("recorded_at", event.RecordedAt.Format(time.RFC3339)))

	if _, err := n.Handle(ctx, event); err != nil {
		logger.ErrorContext(ctx, "Failed to handle sale event", "error", err)
		if err := msg.Nak(); err != nil {
			logger.ErrorContext(ctx, "Failed to nack message", "error", err)
		}
		return
	}
	if err := msg.Ack(); err != nil {
		logger.ErrorContext(ctx, "Failed to ack message", "error", err)
	}
}
