package service

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductCreateDto represents the data transfer object for creating a new product.
type ProductCreateDto struct {
	Name     string          `json:"name"     validate:"required,max=100"`
	Category string          `json:"category" validate:"required,oneof=Bats Balls Protection Clothing Accessories"`
	Price    decimal.Decimal `json:"price"    validate:"min=0"`
	Stock    int32           `json:"stock"    validate:"min=0"`
	SKU      string          `json:"sku"      validate:"required,max=50"`
}

// ProductDto represents the data transfer object for a product.
// LowStock is read-only and derived from the configured threshold.
type ProductDto struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"      validate:"required,max=100"`
	Category string          `json:"category"  validate:"required,oneof=Bats Balls Protection Clothing Accessories"`
	Price    decimal.Decimal `json:"price"     validate:"min=0"`
	Stock    int32           `json:"stock"     validate:"min=0"`
	SKU      string          `json:"sku"       validate:"required,max=50"`
	LowStock bool            `json:"low_stock"`
}

// SaleCreateDto represents the data transfer object for recording a sale.
// Empty statuses default to Pending.
type SaleCreateDto struct {
	Customer       string    `json:"customer"        validate:"required,max=100"`
	ProductID      uuid.UUID `json:"product_id"      validate:"required"`
	Quantity       int32     `json:"quantity"        validate:"required,min=1"`
	PaymentStatus  string    `json:"payment_status"  validate:"required,oneof=Paid Pending Refunded"`
	ShippingStatus string    `json:"shipping_status" validate:"required,oneof=Pending Ready Shipped Delivered"`
}

// SaleDto represents the data transfer object for a recorded sale.
type SaleDto struct {
	ID             uuid.UUID       `json:"id"`
	Customer       string          `json:"customer"`
	Product        string          `json:"product"`
	Quantity       int32           `json:"quantity"`
	Total          decimal.Decimal `json:"total"`
	PaymentStatus  string          `json:"payment_status"`
	ShippingStatus string          `json:"shipping_status"`
	Date           string          `json:"date"`
}

// SaleStatusUpdateDto represents a change of one status field of a sale.
type SaleStatusUpdateDto struct {
	Field string `json:"field" validate:"required,oneof=paymentStatus shippingStatus"`
	Value string `json:"value" validate:"required"`
}

// MetricsDto represents the header metrics derived from the sales history.
type MetricsDto struct {
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	TotalRevenueDisplay string          `json:"total_revenue_display"`
	TotalItemsSold      int64           `json:"total_items_sold"`
	Products            int             `json:"products"`
	LowStockProducts    int             `json:"low_stock_products"`
	Sales               int             `json:"sales"`
}
