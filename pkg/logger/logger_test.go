package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(NewContextHandler(slog.NewJSONHandler(buf, nil)))
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	return record
}

func TestContextHandler_AddsContextValues(t *testing.T) {
	traceID := trace.TraceID{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10}
	spanID := trace.SpanID{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})

	tests := []struct {
		name     string
		ctx      context.Context
		expected map[string]string
		absent   []string
	}{
		{
			name:   "plain context",
			ctx:    context.Background(),
			absent: []string{"trace_id", "span_id", "request_id", "ui"},
		},
		{
			name: "active span",
			ctx:  trace.ContextWithSpanContext(context.Background(), spanCtx),
			expected: map[string]string{
				"trace_id": traceID.String(),
				"span_id":  spanID.String(),
			},
			absent: []string{"request_id"},
		},
		{
			name:     "request id",
			ctx:      context.WithValue(context.Background(), middleware.RequestIDKey, "req-42"),
			expected: map[string]string{"request_id": "req-42"},
			absent:   []string{"trace_id"},
		},
		{
			name:     "attached attributes",
			ctx:      WithAttrs(WithAttrs(context.Background(), slog.String("ui", "tui")), slog.String("tab", "sales")),
			expected: map[string]string{"ui": "tui", "tab": "sales"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// given
			var buf bytes.Buffer
			log := newTestLogger(&buf)

			// when
			log.InfoContext(tt.ctx, "hello")

			// then
			record := decode(t, &buf)
			assert.Equal(t, "hello", record["msg"])
			for k, v := range tt.expected {
				assert.Equal(t, v, record[k], k)
			}
			for _, k := range tt.absent {
				assert.NotContains(t, record, k)
			}
		})
	}
}

func TestWithAttrs_DoesNotLeakIntoParent(t *testing.T) {
	// given
	parent := WithAttrs(context.Background(), slog.String("ui", "tui"))

	// when
	child := WithAttrs(parent, slog.String("tab", "inventory"))

	// then
	assert.Len(t, attrsFrom(parent), 1)
	assert.Len(t, attrsFrom(child), 2)
}

func TestContextHandler_KeepsGroupsAndAttrs(t *testing.T) {
	// given
	var buf bytes.Buffer
	log := newTestLogger(&buf).With("service", "crickstore").WithGroup("sale")

	// when
	log.InfoContext(context.Background(), "recorded", "quantity", 12)

	// then
	record := decode(t, &buf)
	assert.Equal(t, "crickstore", record["service"])
	sale, ok := record["sale"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 12, sale["quantity"], 0)
}
