package telemetry

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func Test_NewMeterProvider_ServesCounters(t *testing.T) {
	// given
	mp, handler, err := NewMeterProvider("crickstore-test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	counter, err := otel.Meter("test").Int64Counter("sales_recorded")
	require.NoError(t, err)
	counter.Add(context.Background(), 3)
	// when
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	// then
	require.Equal(t, http.StatusOK, rr.Code)
	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "sales_recorded_total")
	assert.Contains(t, string(body), "go_goroutines")
}

func Test_sampler(t *testing.T) {
	testCases := []struct {
		ratio  float64
		expect string
	}{
		{ratio: 1, expect: "root:AlwaysOnSampler"},
		{ratio: 0.25, expect: "root:TraceIDRatioBased{0.25}"},
		{ratio: 0, expect: "root:TraceIDRatioBased{0}"},
	}
	for _, tc := range testCases {
		assert.Contains(t, sampler(tc.ratio).Description(), tc.expect)
	}
}
