package dashboard

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/shop-insights/internal/models"
	"github.com/rogerio-castellano/shop-insights/internal/repo"
)

const testShop = "quickstart-test.myshopify.com"

var testNow = time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)

func newTestService() (*Service, *repo.InMemoryOrderRepository, *repo.InMemoryInventoryRepository) {
	orders := repo.NewInMemoryOrderRepository()
	inventory := repo.NewInMemoryInventoryRepository()
	svc := NewService(orders, inventory, zap.NewNop())
	svc.now = func() time.Time { return testNow }
	return svc, orders, inventory
}

func addOrder(t *testing.T, orders *repo.InMemoryOrderRepository, id string, createdAt time.Time, items ...models.LineItem) {
	t.Helper()
	err := orders.Create(context.Background(), models.Order{
		ID:        id,
		Shop:      testShop,
		CreatedAt: createdAt,
		LineItems: items,
	})
	if err != nil {
		t.Fatalf("creating order %s: %v", id, err)
	}
}

func addProduct(t *testing.T, inventory *repo.InMemoryInventoryRepository, productID, title string, available int) {
	t.Helper()
	err := inventory.CreateProduct(context.Background(),
		models.Product{
			ID:    productID,
			Title: title,
			Variants: []models.Variant{{
				ID:              "var_" + productID,
				ProductID:       productID,
				Title:           title + " - Default",
				InventoryItemID: "item_" + productID,
			}},
		},
		[]models.InventoryItem{{ID: "item_" + productID, VariantID: "var_" + productID, Tracked: true}},
		[]models.InventoryLevel{{
			InventoryItemID: "item_" + productID,
			LocationID:      "default_location_1",
			Available:       available,
			UpdatedAt:       testNow,
		}},
	)
	if err != nil {
		t.Fatalf("creating product %s: %v", productID, err)
	}
}
