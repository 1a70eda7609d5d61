package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

var dashboardTmpl = template.Must(
	template.New("dashboard.html").
		Funcs(template.FuncMap{
			"deref": func(f *float64) float64 {
				if f == nil {
					return 0
				}
				return *f
			},
		}).
		ParseFS(templateFS, "templates/dashboard.html"))

// DashboardPageHandler renders the server-side HTML view over the same data
// as the JSON endpoint.
func DashboardPageHandler(w http.ResponseWriter, r *http.Request) {
	shop := GetShop(r)

	window, err := queryInt(r, "window", defaults.SalesWindowDays)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	data, err := buildDashboard(r, shop, window)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			log.Error("dashboard page failed",
				zap.String("shop", shop),
				zap.String("request_id", GetRequestID(r)),
				zap.Error(err))
		}
		writeError(w, r, status, "failed to render dashboard")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(w, data); err != nil {
		log.Error("failed to render dashboard template", zap.Error(err))
	}
}
