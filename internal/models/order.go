package models

import "time"

// Order represents a sales order imported from the merchant's storefront.
// Orders are written by the import/seeding process and read-only everywhere
// else.
type Order struct {
	ID        string     `json:"id"`
	Shop      string     `json:"shop"`
	CreatedAt time.Time  `json:"created_at"`
	LineItems []LineItem `json:"line_items"`
}

// LineItem is one product-quantity entry within an order. ProductTitle is
// denormalized on purpose: it keeps historical orders displayable even after
// the product record is deleted upstream.
type LineItem struct {
	ID           int    `json:"id"`
	OrderID      string `json:"order_id"`
	ProductID    string `json:"product_id"`
	ProductTitle string `json:"product_title"`
	Quantity     int    `json:"quantity"`
}
