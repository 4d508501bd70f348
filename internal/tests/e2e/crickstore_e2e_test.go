// Package e2e provides end-to-end tests for the CrickStore HTTP API.
// The suite runs the real application handler, middleware chain included, in an `httptest.Server`
// on top of freshly seeded in-memory stores. It uses `testify/suite` for lifecycle management
// (`SetupSuite`, `TearDownSuite`, `SetupTest`).
//
// Key features of the test suite:
//   - Every test starts from the seeded inventory and sales history.
//   - Sales are recorded over HTTP and checked against inventory and header metrics.
//   - Concurrent sales against a small stock never oversell.
package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/abgdnv/crickstore/internal/app"
	"github.com/abgdnv/crickstore/internal/config"
	"github.com/abgdnv/crickstore/internal/service"
	"github.com/abgdnv/crickstore/pkg/messaging"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// skipE2ETests is the environment variable that can be set to skip E2E tests.
const skipE2ETests = "CRICKSTORE_SKIP_E2E_TESTS"

const (
	productURL = "/api/v1/products"
	saleURL    = "/api/v1/sales"
	metricsURL = "/api/v1/metrics"
)

// CrickStoreE2ESuite is a test suite for end-to-end tests of the shop API.
type CrickStoreE2ESuite struct {
	suite.Suite
	server     *httptest.Server
	httpClient *http.Client
	appCfg     *config.Config
	logger     *slog.Logger
	ctx        context.Context
}

// testConfig creates a seeded shop configuration with telemetry and messaging off.
func testConfig() *config.Config {
	var cfg config.Config
	cfg.Shop.CurrencySymbol = "₹"
	cfg.Shop.LowStockThreshold = 5
	cfg.Shop.Seed = true
	return &cfg
}

// SetupSuite creates the suite context, logger and configuration.
func (s *CrickStoreE2ESuite) SetupSuite() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	s.appCfg = testConfig()
}

// SetupTest starts a server over fresh stores so every test sees the seeded shop.
func (s *CrickStoreE2ESuite) SetupTest() {
	if s.server != nil {
		s.server.Close()
	}
	deps, err := app.SetupDependencies(s.ctx, s.appCfg, messaging.NopPublisher{}, s.logger)
	require.NoError(s.T(), err, "Failed to setup dependencies for E2E")

	s.server = httptest.NewServer(app.SetupHttpHandler(deps))
	s.httpClient = s.server.Client()
}

// TearDownSuite closes the last test server.
func (s *CrickStoreE2ESuite) TearDownSuite() {
	if s.server != nil {
		s.server.Close()
	}
}

func TestCrickStoreE2E(t *testing.T) {
	if os.Getenv(skipE2ETests) == "1" {
		t.Skip("Skipping E2E tests based on " + skipE2ETests + " env var")
	}
	suite.Run(t, new(CrickStoreE2ESuite))
}

// --------------------------------------------------------------------------
// ---------- Payload structures and Helper methods for E2E tests -----------
// --------------------------------------------------------------------------

type salePayload struct {
	Customer       string    `json:"customer"`
	ProductID      uuid.UUID `json:"product_id"`
	Quantity       int32     `json:"quantity"`
	PaymentStatus  string    `json:"payment_status,omitempty"`
	ShippingStatus string    `json:"shipping_status,omitempty"`
}

type statusPayload struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// productBySKU fetches the inventory and returns the product with the given SKU.
func (s *CrickStoreE2ESuite) productBySKU(sku string) service.ProductDto {
	s.T().Helper()
	var products []service.ProductDto
	status := s.doAndDecode(http.MethodGet, productURL, nil, &products)
	require.Equal(s.T(), http.StatusOK, status)
	for _, p := range products {
		if p.SKU == sku {
			return p
		}
	}
	s.T().Fatalf("product with SKU %s not found", sku)
	return service.ProductDto{}
}

func (s *CrickStoreE2ESuite) sales() []service.SaleDto {
	s.T().Helper()
	var sales []service.SaleDto
	status := s.doAndDecode(http.MethodGet, saleURL, nil, &sales)
	require.Equal(s.T(), http.StatusOK, status)
	return sales
}

func (s *CrickStoreE2ESuite) metrics() service.MetricsDto {
	s.T().Helper()
	var summary service.MetricsDto
	status := s.doAndDecode(http.MethodGet, metricsURL, nil, &summary)
	require.Equal(s.T(), http.StatusOK, status)
	return summary
}

// doAndDecode makes a request and decodes a 2xx response body into out.
// Returns the HTTP status code.
func (s *CrickStoreE2ESuite) doAndDecode(method, path string, payload, out any) int {
	s.T().Helper()
	bodyBytes, statusCode := s.doRequest(method, path, payload)
	if out != nil && statusCode >= 200 && statusCode < 300 {
		require.NoError(s.T(), json.Unmarshal(bodyBytes, out), "Failed to decode response")
	}
	return statusCode
}

// doRequest makes an HTTP request to the test server.
// Returns the response body as a byte slice and the HTTP status code.
func (s *CrickStoreE2ESuite) doRequest(method, path string, payload any) ([]byte, int) {
	s.T().Helper()
	var body io.Reader
	if payload != nil {
		payloadBytes, err := json.Marshal(payload)
		require.NoError(s.T(), err)
		body = bytes.NewBuffer(payloadBytes)
	}

	req, err := http.NewRequestWithContext(s.ctx, method, s.server.URL+path, body)
	require.NoError(s.T(), err, "Failed to create HTTP request")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err, "HTTP request failed")
	defer func() {
		err := resp.Body.Close()
		require.NoError(s.T(), err, "Failed to close response body")
	}()

	bodyBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err, "Failed to read response body")
	return bodyBytes, resp.StatusCode
}

// --------------------------------------------------------------
// ---------------------- E2E test methods ----------------------
// --------------------------------------------------------------

func (s *CrickStoreE2ESuite) TestSeededShop_E2E() {
	// when
	summary := s.metrics()

	// then
	s.True(decimal.NewFromInt(650).Equal(summary.TotalRevenue))
	s.Equal("₹650", summary.TotalRevenueDisplay)
	s.Equal(int64(13), summary.TotalItemsSold)
	s.Equal(4, summary.Products)
	s.Equal(2, summary.Sales)
}

func (s *CrickStoreE2ESuite) TestRecordSale_E2E() {
	testCases := []struct {
		name          string
		sku           string
		quantity      int32
		expectedCode  int
		expectedStock int32
		expectedSales int
	}{
		{
			name:          "Record Sale - Match Balls",
			sku:           "BAL-RD-005",
			quantity:      12,
			expectedCode:  http.StatusCreated,
			expectedStock: 138,
			expectedSales: 3,
		},
		{
			name:          "Record Sale - Whole Stock",
			sku:           "GLV-KP-022",
			quantity:      8,
			expectedCode:  http.StatusCreated,
			expectedStock: 0,
			expectedSales: 3,
		},
		{
			name:          "Record Sale - Insufficient Stock",
			sku:           "GLV-KP-022",
			quantity:      9,
			expectedCode:  http.StatusConflict,
			expectedStock: 8,
			expectedSales: 2,
		},
		{
			name:          "Record Sale - Zero Quantity",
			sku:           "PAD-BT-101",
			quantity:      0,
			expectedCode:  http.StatusBadRequest,
			expectedStock: 20,
			expectedSales: 2,
		},
	}
	for _, tc := range testCases {
		s.T().Run(tc.name, func(t *testing.T) {
			s.SetupTest()
			// given
			product := s.productBySKU(tc.sku)

			// when
			var sale service.SaleDto
			statusCode := s.doAndDecode(http.MethodPost, saleURL, salePayload{
				Customer:  "Local Club XI",
				ProductID: product.ID,
				Quantity:  tc.quantity,
			}, &sale)

			// then
			require.Equal(t, tc.expectedCode, statusCode)
			require.Equal(t, tc.expectedStock, s.productBySKU(tc.sku).Stock)
			require.Len(t, s.sales(), tc.expectedSales)
			if statusCode == http.StatusCreated {
				require.Equal(t, product.Name, sale.Product)
				require.True(t, product.Price.Mul(decimal.NewFromInt32(tc.quantity)).Equal(sale.Total))
				require.Equal(t, "Pending", sale.PaymentStatus)
				require.Equal(t, "Pending", sale.ShippingStatus)
			}
		})
	}
}

func (s *CrickStoreE2ESuite) TestRecordSale_UpdatesMetrics_E2E() {
	// given
	ball := s.productBySKU("BAL-RD-005")

	// when
	statusCode := s.doAndDecode(http.MethodPost, saleURL, salePayload{Customer: "Local Club XI", ProductID: ball.ID, Quantity: 12}, nil)

	// then
	s.Require().Equal(http.StatusCreated, statusCode)
	summary := s.metrics()
	s.True(decimal.NewFromInt(950).Equal(summary.TotalRevenue))
	s.Equal("₹950", summary.TotalRevenueDisplay)
	s.Equal(int64(25), summary.TotalItemsSold)
	s.Equal(3, summary.Sales)
}

func (s *CrickStoreE2ESuite) TestConcurrentSales_NeverOversell_E2E() {
	// given
	gloves := s.productBySKU("GLV-KP-022")
	payload, err := json.Marshal(salePayload{Customer: "Rush Hour", ProductID: gloves.ID, Quantity: 1})
	s.Require().NoError(err)

	// when
	codes := make(chan int, 20)
	var wg sync.WaitGroup
	for range 20 {
		wg.Go(func() {
			resp, err := s.httpClient.Post(s.server.URL+saleURL, "application/json", bytes.NewReader(payload))
			if err != nil {
				codes <- 0
				return
			}
			_ = resp.Body.Close()
			codes <- resp.StatusCode
		})
	}
	wg.Wait()
	close(codes)

	// then
	counts := map[int]int{}
	for code := range codes {
		counts[code]++
	}
	s.Equal(8, counts[http.StatusCreated])
	s.Equal(12, counts[http.StatusConflict])
	s.Equal(int32(0), s.productBySKU("GLV-KP-022").Stock)
	s.Len(s.sales(), 10)
}

func (s *CrickStoreE2ESuite) TestProductLifecycle_E2E() {
	// given
	var created service.ProductDto
	statusCode := s.doAndDecode(http.MethodPost, productURL, service.ProductCreateDto{
		Name:     "Helmet",
		Category: "Protection",
		Price:    decimal.NewFromInt(60),
		Stock:    10,
		SKU:      "HLM-001",
	}, &created)
	s.Require().Equal(http.StatusCreated, statusCode)

	// when
	created.Price = decimal.NewFromInt(55)
	var updated service.ProductDto
	statusCode = s.doAndDecode(http.MethodPut, productURL+"/"+created.ID.String(), created, &updated)

	// then
	s.Require().Equal(http.StatusOK, statusCode)
	s.Equal(created.ID, updated.ID)
	s.True(decimal.NewFromInt(55).Equal(updated.Price))
	s.Equal(int32(10), s.productBySKU("HLM-001").Stock)

	var products []service.ProductDto
	s.Require().Equal(http.StatusOK, s.doAndDecode(http.MethodGet, productURL, nil, &products))
	s.Len(products, 5)
}

func (s *CrickStoreE2ESuite) TestUpdateSaleStatus_E2E() {
	testCases := []struct {
		name         string
		payload      statusPayload
		expectedCode int
	}{
		{name: "Payment To Refunded", payload: statusPayload{Field: "paymentStatus", Value: "Refunded"}, expectedCode: http.StatusOK},
		{name: "Shipping To Delivered", payload: statusPayload{Field: "shippingStatus", Value: "Delivered"}, expectedCode: http.StatusOK},
		{name: "Unknown Value", payload: statusPayload{Field: "shippingStatus", Value: "Lost"}, expectedCode: http.StatusBadRequest},
		{name: "Unknown Field", payload: statusPayload{Field: "customer", Value: "Paid"}, expectedCode: http.StatusBadRequest},
	}
	for _, tc := range testCases {
		s.T().Run(tc.name, func(t *testing.T) {
			s.SetupTest()
			// given
			before := s.sales()[0]

			// when
			var updated service.SaleDto
			statusCode := s.doAndDecode(http.MethodPatch, saleURL+"/"+before.ID.String()+"/status", tc.payload, &updated)

			// then
			require.Equal(t, tc.expectedCode, statusCode)
			after := s.sales()[0]
			switch {
			case statusCode != http.StatusOK:
				require.Equal(t, before, after)
			case tc.payload.Field == "paymentStatus":
				require.Equal(t, tc.payload.Value, after.PaymentStatus)
				require.Equal(t, before.ShippingStatus, after.ShippingStatus)
			default:
				require.Equal(t, tc.payload.Value, after.ShippingStatus)
				require.Equal(t, before.PaymentStatus, after.PaymentStatus)
			}
		})
	}
}

func (s *CrickStoreE2ESuite) TestNotFound_E2E() {
	missing := uuid.New().String()

	_, code := s.doRequest(http.MethodGet, productURL+"/"+missing, nil)
	s.Equal(http.StatusNotFound, code)

	_, code = s.doRequest(http.MethodGet, saleURL+"/"+missing, nil)
	s.Equal(http.StatusNotFound, code)

	_, code = s.doRequest(http.MethodPost, saleURL, salePayload{Customer: "Ghost", ProductID: uuid.New(), Quantity: 1})
	s.Equal(http.StatusNotFound, code)
}
