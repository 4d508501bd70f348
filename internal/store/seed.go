package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// SeedProducts returns the initial shop inventory.
func SeedProducts() []Product {
	return []Product{
		{Name: "English Willow Bat (Grade A)", Category: CategoryBats, Price: decimal.NewFromInt(350), Stock: 12, SKU: "BAT-EW-001"},
		{Name: "Leather Match Ball (Red)", Category: CategoryBalls, Price: decimal.NewFromInt(25), Stock: 150, SKU: "BAL-RD-005"},
		{Name: "Pro Keeper Gloves", Category: CategoryProtection, Price: decimal.NewFromInt(55), Stock: 8, SKU: "GLV-KP-022"},
		{Name: "Batting Pads (Lightweight)", Category: CategoryProtection, Price: decimal.NewFromInt(80), Stock: 20, SKU: "PAD-BT-101"},
	}
}

// SeedSales returns the initial sales history, most recent first.
func SeedSales() []Sale {
	return []Sale{
		{Customer: "Rahul D.", Product: "English Willow Bat (Grade A)", Quantity: 1, Total: decimal.NewFromInt(350), PaymentStatus: PaymentPaid, ShippingStatus: ShippingShipped, Date: "2023-10-25"},
		{Customer: "Local Club XI", Product: "Leather Match Ball (Red)", Quantity: 12, Total: decimal.NewFromInt(300), PaymentStatus: PaymentPending, ShippingStatus: ShippingReady, Date: "2023-10-26"},
	}
}

// Seed fills empty stores with the initial inventory and sales history.
// Seeded sales do not touch stock; they represent history that is already fulfilled.
func Seed(ctx context.Context, products ProductStore, sales SaleStore) error {
	for _, p := range SeedProducts() {
		if _, err := products.Create(ctx, p); err != nil {
			return fmt.Errorf("failed to seed product %q: %w", p.Name, err)
		}
	}
	history := SeedSales()
	// Create puts every sale in front, so walk the history backwards to keep its order.
	for i := len(history) - 1; i >= 0; i-- {
		if _, err := sales.Create(ctx, history[i]); err != nil {
			return fmt.Errorf("failed to seed sale for %q: %w", history[i].Customer, err)
		}
	}
	return nil
}
