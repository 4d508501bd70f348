package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"

	"github.com/abgdnv/crickstore/internal/app"
	"github.com/abgdnv/crickstore/internal/config"
	"github.com/abgdnv/crickstore/pkg/bootstrap"
	"github.com/abgdnv/crickstore/pkg/messaging"
	"github.com/abgdnv/crickstore/pkg/nats"
	"github.com/abgdnv/crickstore/pkg/server"
	"github.com/abgdnv/crickstore/pkg/telemetry"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the shop over HTTP",
		Long: `Start the HTTP API which provides:
- inventory and sales endpoints under /api/v1
- the header metrics at /api/v1/metrics
- Prometheus metrics and an optional pprof server`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			log.Printf("Configuration loaded: %v", cfg)
			return run(cmd.Context(), cfg)
		},
	}
}

// run wires the dependencies and runs the HTTP and pprof servers until ctx is cancelled.
func run(ctx context.Context, cfg *config.Config) error {
	logger := bootstrap.NewLogger(cfg.Log)
	slog.SetDefault(logger)

	if cfg.Telemetry.Traces.Enabled {
		tp, err := telemetry.NewTracerProvider(ctx, config.AppName, cfg.Telemetry)
		if err != nil {
			return fmt.Errorf("failed to create tracer provider: %w", err)
		}
		defer shutdownWithTimeout(logger, "tracer provider", cfg.Shutdown.Timeout, tp.Shutdown)
	}

	var metricsHandler http.Handler
	if cfg.Telemetry.Metrics.Enabled {
		mp, handler, err := telemetry.NewMeterProvider(config.AppName)
		if err != nil {
			return fmt.Errorf("failed to create meter provider: %w", err)
		}
		defer shutdownWithTimeout(logger, "meter provider", cfg.Shutdown.Timeout, mp.Shutdown)
		metricsHandler = handler
	}

	var publisher messaging.Publisher = messaging.NopPublisher{}
	if cfg.Nats.Enabled {
		nc, err := nats.NewClient("crickstore-serve", cfg.Nats, logger)
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
		publisher = messaging.NewResilientPublisher("nats-sales", nats.NewNatsPublisher(js), cfg.Nats.Resilience, logger)
		logger.Info("Publishing sale events to NATS", "url", cfg.Nats.Url, "stream", cfg.Nats.Stream)
	}

	deps, err := app.SetupDependencies(ctx, cfg, publisher, logger)
	if err != nil {
		return err
	}
	deps.MetricsHandler = metricsHandler
	deps.MetricsPath = cfg.Telemetry.Metrics.Path

	httpServer := app.SetupHttpServer(deps, cfg)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gCtx, "http", httpServer, cfg.Shutdown.Timeout, logger)
	})
	if cfg.PProf.Enabled {
		pprofServer := server.NewPprofServer(cfg.PProf.Addr)
		g.Go(func() error {
			return server.Run(gCtx, "pprof", pprofServer, cfg.Shutdown.Timeout, logger)
		})
	}
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("errgroup encountered an error: %w", err)
	}
	logger.Info("application stopped gracefully")
	return nil
}
