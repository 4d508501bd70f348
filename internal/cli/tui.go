package cli

import (
	"fmt"
	"log/slog"

	"github.com/abgdnv/crickstore/internal/app"
	"github.com/abgdnv/crickstore/internal/config"
	"github.com/abgdnv/crickstore/internal/tui"
	"github.com/abgdnv/crickstore/pkg/bootstrap"
	"github.com/abgdnv/crickstore/pkg/logger"
	"github.com/abgdnv/crickstore/pkg/messaging"
	"github.com/spf13/cobra"
)

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the shop in the terminal",
		Long: `Start the interactive shell with the inventory and sales history tabs.

Logs go to the file set by tui.logFile so they do not draw over the screen.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			logFile, err := bootstrap.OpenLogFile(cfg.TUI.LogFile)
			if err != nil {
				return err
			}
			defer logFile.Close()
			log := bootstrap.NewLoggerTo(logFile, cfg.Log)
			slog.SetDefault(log)
			ctx := logger.WithAttrs(cmd.Context(), slog.String("ui", "tui"))
			log.InfoContext(ctx, "Configuration loaded", "config", cfg.String())

			deps, err := app.SetupDependencies(ctx, cfg, messaging.NopPublisher{}, log)
			if err != nil {
				return fmt.Errorf("failed to setup dependencies: %w", err)
			}

			err = tui.Run(ctx, tui.Options{
				Products:  deps.ProductService,
				Sales:     deps.SaleService,
				Metrics:   deps.Metrics,
				Form:      deps.NewFormState(),
				Formatter: deps.Formatter,
				Logger:    log,
			})
			if err != nil {
				log.ErrorContext(ctx, "Terminal UI stopped", "error", err)
				return fmt.Errorf("terminal UI failed: %w", err)
			}
			log.InfoContext(ctx, "Terminal UI closed")
			return nil
		},
	}
}
