package handlers

import (
	"go.uber.org/zap"

	"github.com/rogerio-castellano/shop-insights/internal/auth"
	"github.com/rogerio-castellano/shop-insights/internal/dashboard"
)

// Defaults are the tunable dashboard parameters handlers fall back to when a
// request does not override them.
type Defaults struct {
	SalesWindowDays   int
	LowStockThreshold int
	DaysOfCover       int
	LeadTimeDays      int
	DefaultShop       string
}

var (
	dashboardSvc *dashboard.Service
	sessionStore auth.SessionStore
	oauthClient  *auth.OAuthClient
	cookieSigner *auth.CookieSigner
	defaults     Defaults
	log          = zap.NewNop()
)

func SetDashboardService(s *dashboard.Service) {
	dashboardSvc = s
}

func SetSessionStore(s auth.SessionStore) {
	sessionStore = s
}

func SetOAuthClient(c *auth.OAuthClient) {
	oauthClient = c
}

func SetCookieSigner(c *auth.CookieSigner) {
	cookieSigner = c
}

func SetDefaults(d Defaults) {
	defaults = d
}

func SetLogger(l *zap.Logger) {
	log = l
}
