package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/rogerio-castellano/shop-insights/internal/dashboard"
	"github.com/rogerio-castellano/shop-insights/internal/repo"
)

// DashboardDataHandler returns the complete dashboard payload: daily sales,
// top products, top-product inventory, low-stock alerts and the depletion
// forecast.
func DashboardDataHandler(w http.ResponseWriter, r *http.Request) {
	shop := GetShop(r)

	window, err := queryInt(r, "window", defaults.SalesWindowDays)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := buildDashboard(r, shop, window)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			log.Error("dashboard computation failed",
				zap.String("shop", shop),
				zap.String("request_id", GetRequestID(r)),
				zap.Error(err))
			writeError(w, r, status, "failed to compute dashboard")
			return
		}
		writeError(w, r, status, "invalid dashboard parameters")
		return
	}

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		log.Error("failed to write dashboard response", zap.Error(err))
	}
}

// ProductInventoryHandler reports total available stock for one product
// across all its variants.
func ProductInventoryHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	total, err := dashboardSvc.TotalInventory(r.Context(), id)
	if err != nil {
		log.Error("inventory lookup failed",
			zap.String("product_id", id),
			zap.String("request_id", GetRequestID(r)),
			zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "failed to fetch inventory")
		return
	}

	if err := writeJSON(w, http.StatusOK, toInventoryResponse(total)); err != nil {
		log.Error("failed to write inventory response", zap.Error(err))
	}
}

// ProductForecastHandler projects days of stock remaining for one product.
func ProductForecastHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	shop := GetShop(r)

	cover, err := queryInt(r, "cover", defaults.DaysOfCover)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	lead, err := queryInt(r, "lead", defaults.LeadTimeDays)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	forecast, err := dashboardSvc.Forecast(r.Context(), id, shop, cover, lead)
	switch {
	case errors.Is(err, dashboard.ErrUnknownProduct):
		writeError(w, r, http.StatusNotFound, "unknown product")
		return
	case errors.Is(err, dashboard.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, "invalid forecast parameters")
		return
	case err != nil:
		log.Error("forecast failed",
			zap.String("product_id", id),
			zap.String("shop", shop),
			zap.String("request_id", GetRequestID(r)),
			zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "failed to compute forecast")
		return
	}

	if err := writeJSON(w, http.StatusOK, toForecastResponse(forecast)); err != nil {
		log.Error("failed to write forecast response", zap.Error(err))
	}
}

// LowStockHandler lists inventory levels below the threshold.
func LowStockHandler(w http.ResponseWriter, r *http.Request) {
	threshold, err := queryInt(r, "threshold", defaults.LowStockThreshold)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := dashboardSvc.LowStock(r.Context(), threshold)
	switch {
	case errors.Is(err, dashboard.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, "threshold must be positive")
		return
	case err != nil:
		log.Error("low stock query failed",
			zap.Int("threshold", threshold),
			zap.String("request_id", GetRequestID(r)),
			zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "failed to fetch low stock")
		return
	}

	if err := writeJSON(w, http.StatusOK, rows); err != nil {
		log.Error("failed to write low stock response", zap.Error(err))
	}
}

// buildDashboard assembles the full payload shared by the JSON endpoint and
// the HTML page.
func buildDashboard(r *http.Request, shop string, windowDays int) (*DashboardResponse, error) {
	ctx := r.Context()

	resp := &DashboardResponse{
		Shop:       shop,
		WindowDays: windowDays,
		DailySales: []DailySale{},
		LowStock:   []repo.LowStockRow{},
	}

	report, err := dashboardSvc.SalesSummary(ctx, shop, windowDays)
	if errors.Is(err, dashboard.ErrNoOrders) {
		return resp, nil
	}
	if err != nil {
		return nil, err
	}

	resp.HasSales = true
	resp.DailySales = sortedDailySales(report.DailySales)
	resp.TopProducts = report.TopProducts

	var topID string
	if len(report.TopProducts) > 0 {
		topID = report.TopProducts[0].ProductID
	}

	inv, err := dashboardSvc.TotalInventory(ctx, topID)
	if err != nil {
		return nil, err
	}
	resp.Inventory = toInventoryResponse(inv)

	low, err := dashboardSvc.LowStock(ctx, defaults.LowStockThreshold)
	if err != nil {
		return nil, err
	}
	resp.LowStock = low

	if topID != "" {
		forecast, err := dashboardSvc.Forecast(ctx, topID, shop, defaults.DaysOfCover, defaults.LeadTimeDays)
		if err != nil && !errors.Is(err, dashboard.ErrUnknownProduct) {
			return nil, err
		}
		if forecast != nil {
			resp.Forecast = toForecastResponse(forecast)
		}
	}
	return resp, nil
}

func statusFor(err error) int {
	if errors.Is(err, dashboard.ErrInvalidInput) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return n, nil
}
