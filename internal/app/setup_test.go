package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abgdnv/crickstore/internal/config"
	"github.com/abgdnv/crickstore/internal/service"
	"github.com/abgdnv/crickstore/pkg/messaging"
	"github.com/abgdnv/crickstore/pkg/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, seed bool) *config.Config {
	t.Helper()
	t.Chdir(t.TempDir())
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Shop.Seed = seed
	return cfg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func Test_SetupDependencies_Seeded(t *testing.T) {
	// given
	cfg := testConfig(t, true)
	// when
	deps, err := SetupDependencies(context.Background(), cfg, messaging.NopPublisher{}, discardLogger())
	// then
	require.NoError(t, err)
	products, err := deps.ProductService.FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 4)
	summary, err := deps.Metrics.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "₹650", summary.TotalRevenueDisplay)
}

func Test_SetupDependencies_Empty(t *testing.T) {
	// given
	cfg := testConfig(t, false)
	// when
	deps, err := SetupDependencies(context.Background(), cfg, nil, discardLogger())
	// then
	require.NoError(t, err)
	sales, err := deps.SaleService.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sales)
	assert.NotNil(t, deps.NewFormState())
}

func Test_SetupHttpHandler(t *testing.T) {
	// given
	cfg := testConfig(t, true)
	deps, err := SetupDependencies(context.Background(), cfg, nil, discardLogger())
	require.NoError(t, err)
	deps.MetricsPath = "/metrics"
	deps.MetricsHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("sales_recorded_total 0\n"))
	})
	handler := SetupHttpHandler(deps)

	testCases := []struct {
		name         string
		path         string
		expectedCode int
	}{
		{name: "Health", path: "/healthz", expectedCode: http.StatusOK},
		{name: "Products", path: "/api/v1/products", expectedCode: http.StatusOK},
		{name: "Sales", path: "/api/v1/sales", expectedCode: http.StatusOK},
		{name: "Shop metrics", path: "/api/v1/metrics", expectedCode: http.StatusOK},
		{name: "Prometheus", path: "/metrics", expectedCode: http.StatusOK},
		{name: "Unknown", path: "/api/v1/customers", expectedCode: http.StatusNotFound},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.path, nil))
			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.NotEmpty(t, rr.Header().Get(web.RequestIDHeader))
		})
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))
	var products []service.ProductDto
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &products))
	assert.Len(t, products, 4)
}

func Test_SetupHttpServer(t *testing.T) {
	// given
	cfg := testConfig(t, false)
	deps, err := SetupDependencies(context.Background(), cfg, nil, discardLogger())
	require.NoError(t, err)
	// when
	srv := SetupHttpServer(deps, cfg)
	// then
	assert.Equal(t, ":8080", srv.Addr)
	assert.Equal(t, cfg.HTTPServer.Timeout.Read, srv.ReadTimeout)
	assert.Equal(t, cfg.HTTPServer.MaxHeaderBytes, srv.MaxHeaderBytes)
}
