package repo

import (
	"context"

	"github.com/rogerio-castellano/shop-insights/internal/models"
)

// LowStockRow pairs an inventory level below the threshold with the variant it
// backs. When malformed data lets one inventory item join to several variants,
// implementations resolve the lowest variant id so the pick is deterministic.
type LowStockRow struct {
	VariantID    string `json:"variant_id"`
	VariantTitle string `json:"variant_title"`
	Available    int    `json:"available"`
}

// InventoryRepository exposes the inventory-side read queries the dashboard
// needs, plus seed-only writes.
type InventoryRepository interface {
	// ProductByID returns the product with its variants, or ErrProductNotFound.
	ProductByID(ctx context.Context, id string) (models.Product, error)
	// LevelsForProduct returns every inventory level reachable from the
	// product through variants and inventory items.
	LevelsForProduct(ctx context.Context, productID string) ([]models.InventoryLevel, error)
	// LevelsBelow returns every inventory level with available < threshold,
	// joined to its variant.
	LevelsBelow(ctx context.Context, threshold int) ([]LowStockRow, error)

	CreateProduct(ctx context.Context, p models.Product, items []models.InventoryItem, levels []models.InventoryLevel) error
	CountProducts(ctx context.Context) (int, error)
}
