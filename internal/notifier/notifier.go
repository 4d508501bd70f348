// Package notifier consumes sale events and raises an alert whenever a sale leaves a product low on stock.
package notifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abgdnv/crickstore/internal/service"
	"github.com/abgdnv/crickstore/pkg/messaging/events"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/abgdnv/crickstore/internal/notifier"

// Alert describes a product that dropped below the low stock threshold.
type Alert struct {
	ProductID uuid.UUID
	SaleID    uuid.UUID
	StockLeft int32
	Threshold int32
}

// Sink delivers alerts.
type Sink interface {
	Notify(ctx context.Context, alert Alert) error
}

// LogSink writes alerts as warnings.
type LogSink struct {
	Logger *slog.Logger
}

func (s LogSink) Notify(ctx context.Context, alert Alert) error {
	s.Logger.WarnContext(ctx, "Low stock alert",
		"product_id", alert.ProductID,
		"sale_id", alert.SaleID,
		"stock_left", alert.StockLeft,
		"threshold", alert.Threshold)
	return nil
}

// Notifier decides which sale events raise an alert.
type Notifier struct {
	threshold int32
	sink      Sink
	alerts    metric.Int64Counter
}

// New creates a Notifier. A threshold <= 0 falls back to service.DefaultLowStockThreshold.
func New(threshold int32, sink Sink) *Notifier {
	if threshold <= 0 {
		threshold = service.DefaultLowStockThreshold
	}
	alerts, err := otel.Meter(instrumentationName).Int64Counter("low_stock_alerts",
		metric.WithDescription("Number of low stock alerts raised from sale events"))
	if err != nil {
		panic(fmt.Sprintf("failed to create low_stock_alerts counter: %v", err))
	}
	return &Notifier{threshold: threshold, sink: sink, alerts: alerts}
}

// Handle raises an alert when the sale left the product below the threshold.
// It reports whether an alert was delivered.
func (n *Notifier) Handle(ctx context.Context, event events.SaleRecordedEvent) (bool, error) {
	if !service.IsLowStock(event.StockLeft, n.threshold) {
		return false, nil
	}
	alert := Alert{
		ProductID: event.ProductID,
		SaleID:    event.SaleID,
		StockLeft: event.StockLeft,
		Threshold: n.threshold,
	}
	if err := n.sink.Notify(ctx, alert); err != nil {
		return false, fmt.Errorf("failed to deliver low stock alert for product %s: %w", event.ProductID, err)
	}
	n.alerts.Add(ctx, 1)
	return true, nil
}
