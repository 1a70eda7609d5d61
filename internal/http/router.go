package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rogerio-castellano/shop-insights/internal/http/handlers"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger)
	r.Use(Instrument)

	r.Get("/healthz", handlers.HealthHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/", handlers.HomeHandler)
	r.Group(func(r chi.Router) {
		r.Use(RateLimit)
		r.Get("/install", handlers.InstallHandler)
		r.Get("/auth/callback", handlers.CallbackHandler)
	})

	r.Group(func(r chi.Router) {
		r.Use(ShopAuth)
		r.Get("/dashboard", handlers.DashboardPageHandler)
		r.Get("/api/dashboard", handlers.DashboardDataHandler)
		r.Get("/api/products/{id}/inventory", handlers.ProductInventoryHandler)
		r.Get("/api/products/{id}/forecast", handlers.ProductForecastHandler)
		r.Get("/api/inventory/low-stock", handlers.LowStockHandler)
	})

	return r
}
