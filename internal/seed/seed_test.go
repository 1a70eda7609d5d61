package seed

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/shop-insights/internal/repo"
)

func TestRun_PopulatesEmptyStore(t *testing.T) {
	orders := repo.NewInMemoryOrderRepository()
	inventory := repo.NewInMemoryInventoryRepository()
	ctx := context.Background()

	opts := Options{
		Shop:   "seed-test.myshopify.com",
		Orders: 50,
		Now:    func() time.Time { return time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC) },
		Rand:   rand.New(rand.NewSource(1)),
	}
	if err := Run(ctx, orders, inventory, opts, zap.NewNop()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	orderCount, _ := orders.Count(ctx)
	if orderCount != 50 {
		t.Errorf("expected 50 orders, got %d", orderCount)
	}
	productCount, _ := inventory.CountProducts(ctx)
	if productCount != len(catalog) {
		t.Errorf("expected %d products, got %d", len(catalog), productCount)
	}

	// Every seeded order belongs to the shop and has 1 to 5 line items with
	// positive quantities.
	seeded, err := orders.OrdersSince(ctx, opts.Shop, opts.Now().AddDate(0, 0, -31))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seeded) != 50 {
		t.Fatalf("expected all 50 orders inside the window, got %d", len(seeded))
	}
	for _, o := range seeded {
		if len(o.LineItems) < 1 || len(o.LineItems) > 5 {
			t.Errorf("order %s has %d line items, expected 1-5", o.ID, len(o.LineItems))
		}
		for _, li := range o.LineItems {
			if li.Quantity < 1 || li.Quantity > 10 {
				t.Errorf("order %s line item quantity %d out of range", o.ID, li.Quantity)
			}
			if li.ProductTitle == "" {
				t.Errorf("order %s line item missing denormalized title", o.ID)
			}
		}
	}
}

func TestRun_SkipsWhenDataPresent(t *testing.T) {
	orders := repo.NewInMemoryOrderRepository()
	inventory := repo.NewInMemoryInventoryRepository()
	ctx := context.Background()

	opts := Options{
		Shop:   "seed-test.myshopify.com",
		Orders: 10,
		Rand:   rand.New(rand.NewSource(1)),
	}
	if err := Run(ctx, orders, inventory, opts, zap.NewNop()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Run(ctx, orders, inventory, opts, zap.NewNop()); err != nil {
		t.Fatalf("unexpected error on second run: %v", err)
	}

	orderCount, _ := orders.Count(ctx)
	if orderCount != 10 {
		t.Errorf("second run must not add orders, got %d", orderCount)
	}
	productCount, _ := inventory.CountProducts(ctx)
	if productCount != len(catalog) {
		t.Errorf("second run must not add products, got %d", productCount)
	}
}

func TestRun_StockLevelsInRange(t *testing.T) {
	orders := repo.NewInMemoryOrderRepository()
	inventory := repo.NewInMemoryInventoryRepository()
	ctx := context.Background()

	opts := Options{
		Shop:   "seed-test.myshopify.com",
		Orders: 1,
		Rand:   rand.New(rand.NewSource(7)),
	}
	if err := Run(ctx, orders, inventory, opts, zap.NewNop()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, c := range catalog {
		levels, err := inventory.LevelsForProduct(ctx, c.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(levels) != 1 {
			t.Fatalf("expected one level for %s, got %d", c.ID, len(levels))
		}
		if levels[0].Available < 10 || levels[0].Available > 100 {
			t.Errorf("product %s stock %d outside 10-100", c.ID, levels[0].Available)
		}
	}
}
