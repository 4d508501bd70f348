package store

import (
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category is a product category of the shop catalog.
type Category string

const (
	CategoryBats        Category = "Bats"
	CategoryBalls       Category = "Balls"
	CategoryProtection  Category = "Protection"
	CategoryClothing    Category = "Clothing"
	CategoryAccessories Category = "Accessories"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryBats, CategoryBalls, CategoryProtection, CategoryClothing, CategoryAccessories}

// PaymentStatus is the payment state of a sale.
type PaymentStatus string

const (
	PaymentPaid     PaymentStatus = "Paid"
	PaymentPending  PaymentStatus = "Pending"
	PaymentRefunded PaymentStatus = "Refunded"
)

// PaymentStatuses lists every payment status in display order.
var PaymentStatuses = []PaymentStatus{PaymentPaid, PaymentPending, PaymentRefunded}

// ShippingStatus is the shipping state of a sale.
type ShippingStatus string

const (
	ShippingPending   ShippingStatus = "Pending"
	ShippingReady     ShippingStatus = "Ready"
	ShippingShipped   ShippingStatus = "Shipped"
	ShippingDelivered ShippingStatus = "Delivered"
)

// ShippingStatuses lists every shipping status in display order.
var ShippingStatuses = []ShippingStatus{ShippingPending, ShippingReady, ShippingShipped, ShippingDelivered}

// SaleField names a sale field that can be changed after the sale is recorded.
type SaleField string

const (
	FieldPaymentStatus  SaleField = "paymentStatus"
	FieldShippingStatus SaleField = "shippingStatus"
)

// ValidStatus reports whether value is allowed for the given status field.
func ValidStatus(field SaleField, value string) bool {
	switch field {
	case FieldPaymentStatus:
		return slices.Contains(PaymentStatuses, PaymentStatus(value))
	case FieldShippingStatus:
		return slices.Contains(ShippingStatuses, ShippingStatus(value))
	default:
		return false
	}
}

// Product represents a product entity in the store.
type Product struct {
	ID       uuid.UUID
	Name     string
	Category Category
	Price    decimal.Decimal
	Stock    int32
	SKU      string
}

// Sale represents a recorded sale. Product and Total are snapshots taken when the
// sale was recorded and are never recomputed.
type Sale struct {
	ID             uuid.UUID
	Customer       string
	Product        string
	Quantity       int32
	Total          decimal.Decimal
	PaymentStatus  PaymentStatus
	ShippingStatus ShippingStatus
	Date           string
}
