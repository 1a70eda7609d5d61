package models

import "time"

// Product is a storefront product with its sellable variants.
type Product struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Variants []Variant `json:"variants"`
}

// Variant is a specific sellable configuration of a product (e.g. "Red, Large").
// Each variant is backed by exactly one inventory item.
type Variant struct {
	ID              string `json:"id"`
	ProductID       string `json:"product_id"`
	Title           string `json:"title"`
	SKU             string `json:"sku,omitempty"`
	InventoryItemID string `json:"inventory_item_id"`
}

// InventoryItem is the trackable unit backing a variant's stock. Tracked is
// carried through from the platform but nothing branches on it yet; whether an
// untracked item should be excluded from stock totals is pending product-owner
// clarification.
type InventoryItem struct {
	ID        string `json:"id"`
	VariantID string `json:"variant_id"`
	Tracked   bool   `json:"tracked"`
}

// InventoryLevel is the available quantity for an inventory item at a location.
type InventoryLevel struct {
	ID              int       `json:"id"`
	InventoryItemID string    `json:"inventory_item_id"`
	LocationID      string    `json:"location_id"`
	Available       int       `json:"available"`
	UpdatedAt       time.Time `json:"updated_at"`
}
