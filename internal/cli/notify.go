package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abgdnv/crickstore/internal/config"
	"github.com/abgdnv/crickstore/internal/notifier"
	"github.com/abgdnv/crickstore/pkg/bootstrap"
	"github.com/abgdnv/crickstore/pkg/messaging"
	"github.com/abgdnv/crickstore/pkg/nats"
	"github.com/abgdnv/crickstore/pkg/probes"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newNotifyCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "notify",
		Short: "Raise low stock alerts from sale events",
		Long: `Consume SaleRecorded events from the NATS stream and log a low stock alert
whenever a sale leaves a product below shop.lowStockThreshold. Requires nats.enabled.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if !cfg.Nats.Enabled {
				return errors.New("notify requires nats.enabled")
			}
			return runNotifier(cmd.Context(), cfg)
		},
	}
}

func runNotifier(ctx context.Context, cfg *config.Config) error {
	logger := bootstrap.NewLogger(cfg.Log)
	slog.SetDefault(logger)

	nc, err := nats.NewClient("crickstore-notifier", cfg.Nats, logger)
	if err != nil {
		return err
	}
	defer nc.Close()
	js, err := nats.NewJetStreamContext(nc)
	if err != nil {
		return err
	}
	streamCtx, cancel := context.WithTimeout(ctx, cfg.Nats.Timeout)
	err = nats.EnsureStream(streamCtx, js, cfg.Nats.Stream, messaging.SalesSubjects)
	cancel()
	if err != nil {
		return err
	}

	consumer, err := notifier.Subscribe(ctx, js, cfg.Nats.Stream, cfg.Notifier)
	if err != nil {
		return err
	}
	if err := probes.MarkReady(cfg.Probes.ReadinessFile); err != nil {
		return err
	}
	defer probes.Clear(logger, cfg.Probes.ReadinessFile)

	n := notifier.New(cfg.Shop.LowStockThreshold, notifier.LogSink{Logger: logger})
	logger.InfoContext(ctx, "Low stock notifier started", "stream", cfg.Nats.Stream, "workers", cfg.Notifier.Workers)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return notifier.Run(gCtx, consumer, cfg.Notifier, n, logger)
	})
	if cfg.Probes.LivenessFile != "" {
		g.Go(func() error {
			return probes.KeepAlive(gCtx, cfg.Probes.LivenessFile, cfg.Probes.LivenessInterval, logger)
		})
	}
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("notifier failed: %w", err)
	}
	logger.InfoContext(ctx, "Low stock notifier stopped gracefully")
	return nil
}
