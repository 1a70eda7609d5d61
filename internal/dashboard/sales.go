package dashboard

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// topProductLimit caps the ranking; the dashboard shows at most five products.
const topProductLimit = 5

// ProductSales is one entry in the top-products ranking. Title is the
// denormalized line-item title, so it stays usable after product deletion.
type ProductSales struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Quantity  float64 `json:"quantity"`
}

// SalesReport carries the aggregated order data for one shop and window.
// DailySales keys are UTC calendar dates (YYYY-MM-DD) in no particular order;
// callers sort before display. TopProducts is sorted descending by quantity,
// ties in first-encountered order, at most five entries.
type SalesReport struct {
	Shop        string             `json:"shop"`
	WindowDays  int                `json:"window_days"`
	DailySales  map[string]float64 `json:"daily_sales"`
	TopProducts []ProductSales     `json:"top_products"`
}

// SalesSummary folds every order for the shop created within the trailing
// window into a per-day sales series and a top-products ranking. An empty
// window yields ErrNoOrders; orders without line items contribute nothing,
// not even an empty date bucket.
func (s *Service) SalesSummary(ctx context.Context, shop string, windowDays int) (*SalesReport, error) {
	if shop == "" {
		return nil, fmt.Errorf("sales summary: missing shop: %w", ErrInvalidInput)
	}
	if windowDays <= 0 {
		return nil, fmt.Errorf("sales summary for shop %s: window %d days: %w", shop, windowDays, ErrInvalidInput)
	}

	since := s.now().AddDate(0, 0, -windowDays)
	orders, err := s.orders.OrdersSince(ctx, shop, since)
	if err != nil {
		return nil, fmt.Errorf("sales summary for shop %s: %w", shop, err)
	}
	if len(orders) == 0 {
		return nil, fmt.Errorf("sales summary for shop %s: %w", shop, ErrNoOrders)
	}

	daily := make(map[string]float64)
	totals := make(map[string]*ProductSales)
	var encounterOrder []string

	for _, o := range orders {
		if len(o.LineItems) == 0 {
			continue
		}
		date := o.CreatedAt.UTC().Format("2006-01-02")
		for _, li := range o.LineItems {
			daily[date] += float64(li.Quantity)

			t, ok := totals[li.ProductID]
			if !ok {
				t = &ProductSales{ProductID: li.ProductID, Title: li.ProductTitle}
				totals[li.ProductID] = t
				encounterOrder = append(encounterOrder, li.ProductID)
			}
			t.Quantity += float64(li.Quantity)
		}
	}

	top := make([]ProductSales, 0, len(encounterOrder))
	for _, id := range encounterOrder {
		top = append(top, *totals[id])
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].Quantity > top[j].Quantity })
	if len(top) > topProductLimit {
		top = top[:topProductLimit]
	}

	s.log.Debug("sales summary computed",
		zap.String("shop", shop),
		zap.Int("window_days", windowDays),
		zap.Int("days_with_sales", len(daily)),
		zap.Int("ranked_products", len(top)))

	return &SalesReport{
		Shop:        shop,
		WindowDays:  windowDays,
		DailySales:  daily,
		TopProducts: top,
	}, nil
}
