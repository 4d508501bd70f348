package events

import (
	"encoding/json"
	"time"

	"github.com/abgdnv/crickstore/pkg/messaging"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleRecordedEvent is published after a sale has been recorded and stock decremented.
type SaleRecordedEvent struct {
	SaleID     uuid.UUID       `json:"sale_id"`
	ProductID  uuid.UUID       `json:"product_id"`
	Customer   string          `json:"customer"`
	Quantity   int32           `json:"quantity"`
	Total      decimal.Decimal `json:"total"`
	StockLeft  int32           `json:"stock_left"`
	RecordedAt time.Time       `json:"recorded_at"`
}

func (e SaleRecordedEvent) Subject() string {
	return messaging.SalesRecordedSubject
}

func (e SaleRecordedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}
