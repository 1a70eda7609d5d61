package handlers

import (
	"context"
	"net/http"
)

// SessionCookie carries the signed shop token issued after the OAuth
// handshake completes.
const SessionCookie = "shop_session"

type contextKey string

const (
	shopKey      = contextKey("shop")
	requestIDKey = contextKey("request_id")
)

func ContextWithShop(ctx context.Context, shop string) context.Context {
	return context.WithValue(ctx, shopKey, shop)
}

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetShop returns the authenticated shop set by the session middleware.
func GetShop(r *http.Request) string {
	if val, ok := r.Context().Value(shopKey).(string); ok {
		return val
	}
	return ""
}

func GetRequestID(r *http.Request) string {
	if val, ok := r.Context().Value(requestIDKey).(string); ok {
		return val
	}
	return ""
}
