package repo

import (
	"context"
	"time"

	"github.com/rogerio-castellano/shop-insights/internal/models"
)

// OrderRepository exposes the order-side read queries the dashboard needs.
// Create and Count exist only for the seeding/import process; the dashboard
// never writes.
type OrderRepository interface {
	// OrdersSince returns every order for the shop created at or after the
	// given instant, line items included, ordered by creation time.
	OrdersSince(ctx context.Context, shop string, since time.Time) ([]models.Order, error)
	Create(ctx context.Context, order models.Order) error
	Count(ctx context.Context) (int, error)
}
