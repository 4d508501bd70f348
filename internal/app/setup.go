// Package app contains the application setup shared by the HTTP server and the terminal UI.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/abgdnv/crickstore/internal/config"
	"github.com/abgdnv/crickstore/internal/form"
	"github.com/abgdnv/crickstore/internal/service"
	"github.com/abgdnv/crickstore/internal/store"
	"github.com/abgdnv/crickstore/internal/transport/rest"
	"github.com/abgdnv/crickstore/pkg/messaging"
	"github.com/abgdnv/crickstore/pkg/money"
	"github.com/abgdnv/crickstore/pkg/server"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Dependencies struct {
	ProductService service.ProductService
	SaleService    service.SaleService
	Metrics        *service.Metrics
	Formatter      money.Formatter
	Logger         *slog.Logger

	// MetricsHandler serves the Prometheus registry; nil when metrics export is disabled.
	MetricsHandler http.Handler
	MetricsPath    string
}

// SetupDependencies creates the in-memory stores, seeds them when configured and builds the services on top.
func SetupDependencies(ctx context.Context, cfg *config.Config, publisher messaging.Publisher, logger *slog.Logger) (*Dependencies, error) {
	products := store.NewInMemoryProductStore()
	sales := store.NewInMemorySaleStore()
	if cfg.Shop.Seed {
		if err := store.Seed(ctx, products, sales); err != nil {
			return nil, fmt.Errorf("failed to seed stores: %w", err)
		}
		logger.InfoContext(ctx, "Stores seeded", "products", len(store.SeedProducts()), "sales", len(store.SeedSales()))
	}

	formatter := money.NewFormatter(cfg.Shop.CurrencySymbol)
	return &Dependencies{
		ProductService: service.NewProductService(products, cfg.Shop.LowStockThreshold),
		SaleService:    service.NewSaleService(products, sales, publisher, nil),
		Metrics:        service.NewMetrics(products, sales, formatter, cfg.Shop.LowStockThreshold),
		Formatter:      formatter,
		Logger:         logger,
	}, nil
}

// NewFormState creates the form state used by the terminal UI.
func (d *Dependencies) NewFormState() *form.State {
	return form.New(d.ProductService, d.SaleService)
}

// SetupHttpHandler initializes the router and routes of the shop API.
// Used by tests to exercise the full middleware chain.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return otelhttp.NewHandler(mux, "crickstore-http")
}

// wireRoutes sets up the HTTP routes of the shop API.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	handler := rest.NewHandler(deps.ProductService, deps.SaleService, deps.Metrics, deps.Logger)
	handler.RegisterRoutes(mux)
	if deps.MetricsHandler != nil {
		mux.Method(http.MethodGet, deps.MetricsPath, deps.MetricsHandler)
	}
}

// SetupHttpServer creates and configures the HTTP server of the shop API.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {

	handler := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, handler)
}
