package http

import (
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rogerio-castellano/shop-insights/internal/auth"
	"github.com/rogerio-castellano/shop-insights/internal/http/handlers"
	rl "github.com/rogerio-castellano/shop-insights/internal/http/rate_limiter"
)

var (
	logger       = zap.NewNop()
	cookieSigner *auth.CookieSigner
	sessions     auth.SessionStore
	oauthLimiter *rl.PerIP
)

func SetLogger(l *zap.Logger) {
	logger = l
}

func SetAuth(signer *auth.CookieSigner, store auth.SessionStore) {
	cookieSigner = signer
	sessions = store
}

func SetRateLimiter(p *rl.PerIP) {
	oauthLimiter = p
}

// RequestID tags every request with a diagnostic id, echoed in the
// X-Request-ID header and in error payloads.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		ctx := handlers.ContextWithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", handlers.GetRequestID(r)),
			zap.Duration("duration", time.Since(start)))
	})
}

// ShopAuth admits only requests carrying a valid session cookie for a shop
// that still has a stored platform session.
func ShopAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(handlers.SessionCookie)
		if err != nil {
			http.Error(w, "not authenticated, install the app first", http.StatusUnauthorized)
			return
		}

		shop, err := cookieSigner.Shop(cookie.Value)
		if err != nil {
			http.Error(w, "invalid session", http.StatusUnauthorized)
			return
		}

		if _, err := sessions.Get(r.Context(), shop); err != nil {
			http.Error(w, "not authenticated, install the app first", http.StatusUnauthorized)
			return
		}

		ctx := handlers.ContextWithShop(r.Context(), shop)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RateLimit applies the per-IP limiter; used on the OAuth endpoints.
func RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if oauthLimiter != nil {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			if !oauthLimiter.Allow(ip) {
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

