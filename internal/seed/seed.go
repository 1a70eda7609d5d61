// Package seed fills an empty data store with a mock catalog and order
// history so the dashboard has something to show before a real import runs.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/shop-insights/internal/models"
	"github.com/rogerio-castellano/shop-insights/internal/repo"
)

var catalog = []struct {
	ID    string
	Title string
}{
	{"8920988975395", "T-Shirt"},
	{"8922165477667", "Hoodie"},
	{"8920989204771", "Mug"},
	{"8920989106467", "Hat"},
	{"8920988877091", "Backpack"},
	{"8920988909859", "Sneakers"},
	{"8920989237539", "Socks"},
	{"8920989172003", "Jacket"},
	{"8920989073699", "Scarf"},
	{"8920988942627", "Gloves"},
}

type Options struct {
	Shop       string
	Orders     int              // number of mock orders, default 500
	WindowDays int              // orders spread over the trailing window, default 30
	Now        func() time.Time // defaults to time.Now
	Rand       *rand.Rand       // defaults to a time-seeded source
}

// Run populates mock data unless orders or products already exist. It is safe
// to call on every startup.
func Run(ctx context.Context, orders repo.OrderRepository, inventory repo.InventoryRepository, opts Options, log *zap.Logger) error {
	if opts.Orders <= 0 {
		opts.Orders = 500
	}
	if opts.WindowDays <= 0 {
		opts.WindowDays = 30
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(opts.Now().UnixNano()))
	}

	orderCount, err := orders.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed: counting orders: %w", err)
	}
	productCount, err := inventory.CountProducts(ctx)
	if err != nil {
		return fmt.Errorf("seed: counting products: %w", err)
	}
	if orderCount > 0 && productCount > 0 {
		log.Info("seed skipped, data already present",
			zap.Int("orders", orderCount), zap.Int("products", productCount))
		return nil
	}

	if productCount == 0 {
		if err := seedInventory(ctx, inventory, opts); err != nil {
			return err
		}
	}
	if orderCount == 0 {
		if err := seedOrders(ctx, orders, opts); err != nil {
			return err
		}
	}

	log.Info("mock data populated",
		zap.String("shop", opts.Shop),
		zap.Int("products", len(catalog)),
		zap.Int("orders", opts.Orders))
	return nil
}

func seedInventory(ctx context.Context, inventory repo.InventoryRepository, opts Options) error {
	for i, c := range catalog {
		n := i + 1
		p := models.Product{
			ID:    c.ID,
			Title: c.Title,
			Variants: []models.Variant{{
				ID:              fmt.Sprintf("var_%d", n),
				ProductID:       c.ID,
				Title:           c.Title + " - Default",
				InventoryItemID: fmt.Sprintf("inv_item_%d", n),
			}},
		}
		items := []models.InventoryItem{{
			ID:        fmt.Sprintf("inv_item_%d", n),
			VariantID: fmt.Sprintf("var_%d", n),
			Tracked:   true,
		}}
		levels := []models.InventoryLevel{{
			InventoryItemID: fmt.Sprintf("inv_item_%d", n),
			LocationID:      "default_location_1",
			Available:       10 + opts.Rand.Intn(91),
			UpdatedAt:       opts.Now(),
		}}
		if err := inventory.CreateProduct(ctx, p, items, levels); err != nil {
			return fmt.Errorf("seed: product %s: %w", c.ID, err)
		}
	}
	return nil
}

func seedOrders(ctx context.Context, orders repo.OrderRepository, opts Options) error {
	for i := 0; i < opts.Orders; i++ {
		createdAt := opts.Now().AddDate(0, 0, -opts.Rand.Intn(opts.WindowDays+1))
		order := models.Order{
			ID:        fmt.Sprintf("mock_order_%d", i+1),
			Shop:      opts.Shop,
			CreatedAt: createdAt,
		}

		// 1 to 5 distinct products per order.
		perm := opts.Rand.Perm(len(catalog))
		for _, pi := range perm[:1+opts.Rand.Intn(5)] {
			order.LineItems = append(order.LineItems, models.LineItem{
				ProductID:    catalog[pi].ID,
				ProductTitle: catalog[pi].Title,
				Quantity:     1 + opts.Rand.Intn(10),
			})
		}

		if err := orders.Create(ctx, order); err != nil {
			return fmt.Errorf("seed: order %s: %w", order.ID, err)
		}
	}
	return nil
}
