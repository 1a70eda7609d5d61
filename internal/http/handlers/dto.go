package handlers

import (
	"math"
	"sort"

	"github.com/rogerio-castellano/shop-insights/internal/dashboard"
	"github.com/rogerio-castellano/shop-insights/internal/repo"
)

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type DailySale struct {
	Date     string  `json:"date"`
	Quantity float64 `json:"quantity"`
}

// InventoryResponse mirrors dashboard.InventoryTotal for the API.
type InventoryResponse struct {
	ProductID string `json:"product_id,omitempty"`
	Title     string `json:"title,omitempty"`
	Available int    `json:"available"`
	Known     bool   `json:"known"`
}

// ForecastResponse flattens a StockForecast for JSON. DaysRemaining is null
// when the product has zero sales velocity and its stock never depletes.
type ForecastResponse struct {
	ProductID     string   `json:"product_id"`
	Title         string   `json:"title"`
	CurrentStock  int      `json:"current_stock"`
	AvgDailySales float64  `json:"avg_daily_sales"`
	DaysRemaining *float64 `json:"days_remaining"`
	DaysOfCover   int      `json:"days_of_cover"`
	LeadTimeDays  int      `json:"lead_time_days"`
	Restock       bool     `json:"restock"`
}

// DashboardResponse is the full dashboard payload.
type DashboardResponse struct {
	Shop        string                   `json:"shop"`
	WindowDays  int                      `json:"window_days"`
	HasSales    bool                     `json:"has_sales"`
	DailySales  []DailySale              `json:"daily_sales"`
	TopProducts []dashboard.ProductSales `json:"top_products"`
	Inventory   *InventoryResponse       `json:"top_product_inventory,omitempty"`
	LowStock    []repo.LowStockRow       `json:"low_stock"`
	Forecast    *ForecastResponse        `json:"forecast,omitempty"`
}

// sortedDailySales flattens the date map into a date-ascending series for
// display.
func sortedDailySales(daily map[string]float64) []DailySale {
	out := make([]DailySale, 0, len(daily))
	for date, qty := range daily {
		out = append(out, DailySale{Date: date, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func toInventoryResponse(t dashboard.InventoryTotal) *InventoryResponse {
	return &InventoryResponse{
		ProductID: t.ProductID,
		Title:     t.Title,
		Available: t.Available,
		Known:     t.Known,
	}
}

func toForecastResponse(f *dashboard.StockForecast) *ForecastResponse {
	resp := &ForecastResponse{
		ProductID:     f.ProductID,
		Title:         f.Title,
		CurrentStock:  f.CurrentStock,
		AvgDailySales: f.AvgDailySales,
		DaysOfCover:   f.DaysOfCover,
		LeadTimeDays:  f.LeadTimeDays,
		Restock:       f.Restock,
	}
	if !math.IsInf(f.DaysRemaining, 1) {
		days := f.DaysRemaining
		resp.DaysRemaining = &days
	}
	return resp
}
