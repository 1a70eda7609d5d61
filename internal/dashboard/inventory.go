package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/rogerio-castellano/shop-insights/internal/repo"
)

// InventoryTotal is the stock position of one product across all its
// variants. Known is false when no product id was supplied or the id matched
// nothing; a product that exists but holds no stock reports Known with
// Available 0.
type InventoryTotal struct {
	ProductID string `json:"product_id"`
	Title     string `json:"title,omitempty"`
	Available int    `json:"available"`
	Known     bool   `json:"known"`
}

// TotalInventory sums available stock over every inventory level reachable
// from the product through its variants. A missing or empty product id is the
// "no inventory data" case, not an error.
func (s *Service) TotalInventory(ctx context.Context, productID string) (InventoryTotal, error) {
	if productID == "" {
		return InventoryTotal{}, nil
	}

	p, err := s.inventory.ProductByID(ctx, productID)
	if errors.Is(err, repo.ErrProductNotFound) {
		return InventoryTotal{ProductID: productID}, nil
	}
	if err != nil {
		return InventoryTotal{}, fmt.Errorf("total inventory for product %s: %w", productID, err)
	}

	levels, err := s.inventory.LevelsForProduct(ctx, productID)
	if err != nil {
		return InventoryTotal{}, fmt.Errorf("total inventory for product %s: %w", productID, err)
	}

	total := InventoryTotal{ProductID: p.ID, Title: p.Title, Known: true}
	for _, l := range levels {
		total.Available += l.Available
	}
	return total, nil
}

// LowStock lists every inventory level below the threshold with its variant.
// No qualifying levels means an empty list, never a sentinel.
func (s *Service) LowStock(ctx context.Context, threshold int) ([]repo.LowStockRow, error) {
	if threshold <= 0 {
		return nil, fmt.Errorf("low stock: threshold %d: %w", threshold, ErrInvalidInput)
	}

	rows, err := s.inventory.LevelsBelow(ctx, threshold)
	if err != nil {
		return nil, fmt.Errorf("low stock below %d: %w", threshold, err)
	}
	if rows == nil {
		rows = []repo.LowStockRow{}
	}
	return rows, nil
}
