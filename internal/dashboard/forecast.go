package dashboard

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// defaultForecastPeriodDays is the trailing window used to estimate sales
// velocity for forecasts.
const defaultForecastPeriodDays = 30

// ErrUnknownProduct is returned by Forecast when the product id matches no
// record, so callers can render "no data" rather than a failure.
var ErrUnknownProduct = errors.New("unknown product")

// StockForecast projects how long a product's current stock lasts at its
// recent sales velocity. DaysRemaining is +Inf when the product has not sold
// in the period; such a product is never flagged for restock, whatever its
// stock level.
type StockForecast struct {
	ProductID     string  `json:"product_id"`
	Title         string  `json:"title"`
	CurrentStock  int     `json:"current_stock"`
	AvgDailySales float64 `json:"avg_daily_sales"`
	DaysRemaining float64 `json:"days_remaining"`
	DaysOfCover   int     `json:"days_of_cover"`
	LeadTimeDays  int     `json:"lead_time_days"`
	Restock       bool    `json:"restock"`
}

// AverageDailySales sums the quantities of the product's line items on the
// shop's orders over the trailing period and divides by the period length.
// No matching line items yields exactly 0. A non-positive period is rejected
// up front, so the division is always by at least one day.
func (s *Service) AverageDailySales(ctx context.Context, productID, shop string, periodDays int) (float64, error) {
	if productID == "" || shop == "" {
		return 0, fmt.Errorf("average daily sales: missing product or shop: %w", ErrInvalidInput)
	}
	if periodDays <= 0 {
		return 0, fmt.Errorf("average daily sales for product %s, shop %s: period %d days: %w", productID, shop, periodDays, ErrInvalidInput)
	}

	since := s.now().AddDate(0, 0, -periodDays)
	orders, err := s.orders.OrdersSince(ctx, shop, since)
	if err != nil {
		return 0, fmt.Errorf("average daily sales for product %s, shop %s: %w", productID, shop, err)
	}

	var total float64
	for _, o := range orders {
		for _, li := range o.LineItems {
			if li.ProductID == productID {
				total += float64(li.Quantity)
			}
		}
	}
	if total == 0 {
		return 0, nil
	}
	return total / float64(periodDays), nil
}

// Forecast computes the days-remaining model: current stock across the whole
// product divided by average daily sales over the default period. Restock is
// recommended when the stock depletes inside the cover-plus-lead horizon.
func (s *Service) Forecast(ctx context.Context, productID, shop string, daysOfCover, leadTime int) (*StockForecast, error) {
	if daysOfCover < 0 || leadTime < 0 {
		return nil, fmt.Errorf("forecast for product %s: negative cover or lead time: %w", productID, ErrInvalidInput)
	}

	avg, err := s.AverageDailySales(ctx, productID, shop, defaultForecastPeriodDays)
	if err != nil {
		return nil, fmt.Errorf("forecast for product %s, shop %s: %w", productID, shop, err)
	}

	stock, err := s.TotalInventory(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("forecast for product %s, shop %s: %w", productID, shop, err)
	}
	if !stock.Known {
		return nil, fmt.Errorf("forecast for product %s: %w", productID, ErrUnknownProduct)
	}

	days := math.Inf(1)
	if avg > 0 {
		days = float64(stock.Available) / avg
	}

	return &StockForecast{
		ProductID:     stock.ProductID,
		Title:         stock.Title,
		CurrentStock:  stock.Available,
		AvgDailySales: avg,
		DaysRemaining: days,
		DaysOfCover:   daysOfCover,
		LeadTimeDays:  leadTime,
		Restock:       days < float64(daysOfCover+leadTime),
	}, nil
}
