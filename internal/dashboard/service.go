// Package dashboard computes the sales, inventory and forecast figures behind
// the merchant dashboard. All operations are read-only and safe for
// concurrent use across shops.
package dashboard

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/shop-insights/internal/repo"
)

var (
	// ErrNoOrders signals an empty sales window. It is an expected state,
	// not a failure: callers branch on it to render "no data" instead of a
	// zeroed report.
	ErrNoOrders = errors.New("no orders in window")

	// ErrInvalidInput is returned before any query runs when a window,
	// period or identifier argument is unusable.
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	orders    repo.OrderRepository
	inventory repo.InventoryRepository
	log       *zap.Logger
	now       func() time.Time
}

func NewService(orders repo.OrderRepository, inventory repo.InventoryRepository, log *zap.Logger) *Service {
	return &Service{
		orders:    orders,
		inventory: inventory,
		log:       log,
		now:       time.Now,
	}
}
