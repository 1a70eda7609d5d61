package repo

import (
	"context"
	"sort"
	"time"

	"github.com/rogerio-castellano/shop-insights/internal/models"
)

// InMemoryOrderRepository is an in-memory implementation of OrderRepository
// used by tests and database-free development.
type InMemoryOrderRepository struct {
	orders []models.Order
	nextID int
}

func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{nextID: 1}
}

func (r *InMemoryOrderRepository) OrdersSince(_ context.Context, shop string, since time.Time) ([]models.Order, error) {
	var out []models.Order
	for _, o := range r.orders {
		if o.Shop == shop && !o.CreatedAt.Before(since) {
			out = append(out, o)
		}
	}
	// Same ordering contract as the Postgres query.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *InMemoryOrderRepository) Create(_ context.Context, order models.Order) error {
	for i := range order.LineItems {
		order.LineItems[i].ID = r.nextID
		order.LineItems[i].OrderID = order.ID
		r.nextID++
	}
	r.orders = append(r.orders, order)
	return nil
}

func (r *InMemoryOrderRepository) Count(_ context.Context) (int, error) {
	return len(r.orders), nil
}

func (r *InMemoryOrderRepository) Clear() {
	r.orders = nil
	r.nextID = 1
}
