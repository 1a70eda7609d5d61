package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rogerio-castellano/shop-insights/internal/auth"
)

const stateCookie = "oauth_state"

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}); err != nil {
		log.Error("failed to write health response", zap.Error(err))
	}
}

// HomeHandler routes a visitor to the dashboard when already authenticated,
// otherwise into the install flow.
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if shop, err := cookieSigner.Shop(cookie.Value); err == nil {
			if _, err := sessionStore.Get(r.Context(), shop); err == nil {
				http.Redirect(w, r, "/dashboard", http.StatusFound)
				return
			}
		}
	}

	shop := auth.NormalizeShop(r.URL.Query().Get("shop"))
	if shop != "" {
		if _, err := sessionStore.Get(r.Context(), shop); err == nil {
			issueSessionCookie(w, shop)
			http.Redirect(w, r, "/dashboard", http.StatusFound)
			return
		}
		http.Redirect(w, r, "/install?shop="+shop, http.StatusFound)
		return
	}

	// No shop requested: fall back to any already-installed shop.
	if shops, err := sessionStore.Shops(r.Context()); err == nil && len(shops) > 0 {
		issueSessionCookie(w, shops[0])
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}

	if defaults.DefaultShop != "" {
		http.Redirect(w, r, "/install?shop="+defaults.DefaultShop, http.StatusFound)
		return
	}
	writeError(w, r, http.StatusBadRequest, "missing shop parameter, open /?shop=your-shop.myshopify.com")
}

// InstallHandler starts the OAuth handshake: an already-installed shop goes
// straight to the dashboard, everyone else to the platform's permission
// screen.
func InstallHandler(w http.ResponseWriter, r *http.Request) {
	shop := auth.NormalizeShop(r.URL.Query().Get("shop"))
	if shop == "" {
		writeError(w, r, http.StatusBadRequest, "missing shop parameter")
		return
	}

	if _, err := sessionStore.Get(r.Context(), shop); err == nil {
		issueSessionCookie(w, shop)
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	} else if !errors.Is(err, auth.ErrSessionNotFound) {
		log.Error("session lookup failed", zap.String("shop", shop), zap.String("request_id", GetRequestID(r)), zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "failed to start installation")
		return
	}

	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Minute),
		HttpOnly: true,
	})
	http.Redirect(w, r, oauthClient.AuthorizeURL(shop, state), http.StatusFound)
}

// CallbackHandler finishes the handshake: verifies the callback, exchanges
// the code for an access token, persists the session and hands the browser a
// signed dashboard cookie.
func CallbackHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	shop := auth.NormalizeShop(q.Get("shop"))
	code := q.Get("code")
	if shop == "" || code == "" {
		writeError(w, r, http.StatusBadRequest, "missing shop or code parameter")
		return
	}

	// An unsigned callback is rejected outright, not waved through.
	if !oauthClient.VerifyCallback(q) {
		writeError(w, r, http.StatusBadRequest, "invalid callback signature")
		return
	}

	if state := q.Get("state"); state != "" {
		cookie, err := r.Cookie(stateCookie)
		if err != nil || cookie.Value != state {
			writeError(w, r, http.StatusBadRequest, "state mismatch")
			return
		}
	}

	token, err := oauthClient.ExchangeCode(r.Context(), shop, code)
	if err != nil {
		log.Error("token exchange failed", zap.String("shop", shop), zap.String("request_id", GetRequestID(r)), zap.Error(err))
		writeError(w, r, http.StatusBadGateway, "token exchange failed")
		return
	}

	if extra := oauthClient.UnexpectedScopes(token.Scopes); len(extra) > 0 {
		log.Warn("unexpected scopes granted", zap.String("shop", shop), zap.Strings("scopes", extra))
	}

	sess := auth.Session{
		Shop:        shop,
		AccessToken: token.Token,
		Scopes:      token.Scopes,
		CreatedAt:   time.Now(),
	}
	if err := sessionStore.Set(r.Context(), shop, sess); err != nil {
		log.Error("failed to store session", zap.String("shop", shop), zap.String("request_id", GetRequestID(r)), zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "failed to store session")
		return
	}

	issueSessionCookie(w, shop)
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

func issueSessionCookie(w http.ResponseWriter, shop string) {
	token, err := cookieSigner.Sign(shop)
	if err != nil {
		log.Error("failed to sign session cookie", zap.String("shop", shop), zap.Error(err))
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
}
