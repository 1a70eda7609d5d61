package repo

import (
	"context"
	"sort"

	"github.com/rogerio-castellano/shop-insights/internal/models"
)

// InMemoryInventoryRepository is an in-memory implementation of
// InventoryRepository used by tests and database-free development.
type InMemoryInventoryRepository struct {
	products []models.Product
	items    []models.InventoryItem
	levels   []models.InventoryLevel
	nextID   int
}

func NewInMemoryInventoryRepository() *InMemoryInventoryRepository {
	return &InMemoryInventoryRepository{nextID: 1}
}

func (r *InMemoryInventoryRepository) ProductByID(_ context.Context, id string) (models.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryInventoryRepository) LevelsForProduct(_ context.Context, productID string) ([]models.InventoryLevel, error) {
	itemIDs := map[string]bool{}
	for _, p := range r.products {
		if p.ID != productID {
			continue
		}
		for _, v := range p.Variants {
			itemIDs[v.InventoryItemID] = true
		}
	}

	var out []models.InventoryLevel
	for _, l := range r.levels {
		if itemIDs[l.InventoryItemID] {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *InMemoryInventoryRepository) LevelsBelow(_ context.Context, threshold int) ([]LowStockRow, error) {
	var out []LowStockRow
	for _, l := range r.levels {
		if l.Available >= threshold {
			continue
		}
		if v, ok := r.variantForItem(l.InventoryItemID); ok {
			out = append(out, LowStockRow{VariantID: v.ID, VariantTitle: v.Title, Available: l.Available})
		}
	}
	return out, nil
}

// variantForItem resolves the variant backing an inventory item, lowest
// variant id first, mirroring the DISTINCT ON order of the Postgres query.
func (r *InMemoryInventoryRepository) variantForItem(itemID string) (models.Variant, bool) {
	var matches []models.Variant
	for _, p := range r.products {
		for _, v := range p.Variants {
			if v.InventoryItemID == itemID {
				matches = append(matches, v)
			}
		}
	}
	if len(matches) == 0 {
		return models.Variant{}, false
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches[0], true
}

func (r *InMemoryInventoryRepository) CreateProduct(_ context.Context, p models.Product, items []models.InventoryItem, levels []models.InventoryLevel) error {
	r.products = append(r.products, p)
	r.items = append(r.items, items...)
	for _, l := range levels {
		l.ID = r.nextID
		r.nextID++
		r.levels = append(r.levels, l)
	}
	return nil
}

func (r *InMemoryInventoryRepository) CountProducts(_ context.Context) (int, error) {
	return len(r.products), nil
}

func (r *InMemoryInventoryRepository) Clear() {
	r.products = nil
	r.items = nil
	r.levels = nil
	r.nextID = 1
}
