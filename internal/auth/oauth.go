package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

// OAuthClient drives the platform's OAuth handshake for merchant installs:
// authorize-URL construction, callback HMAC verification and the code-for-token
// exchange.
type OAuthClient struct {
	apiKey      string
	apiSecret   string
	apiVersion  string
	scopes      []string
	redirectURI string
	httpClient  *http.Client
}

func NewOAuthClient(apiKey, apiSecret, apiVersion, redirectURI string, scopes []string) *OAuthClient {
	return &OAuthClient{
		apiKey:      apiKey,
		apiSecret:   apiSecret,
		apiVersion:  apiVersion,
		scopes:      scopes,
		redirectURI: redirectURI,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// AccessToken is the result of a completed code exchange.
type AccessToken struct {
	Token  string
	Scopes []string
}

// NormalizeShop strips scheme and trailing slashes from a shop parameter so
// "https://x.myshopify.com/" and "x.myshopify.com" key the same session.
func NormalizeShop(raw string) string {
	shop := strings.TrimPrefix(raw, "https://")
	shop = strings.TrimPrefix(shop, "http://")
	return strings.TrimRight(shop, "/")
}

// AuthorizeURL builds the merchant-facing permission URL. state is a nonce
// echoed back on the callback.
func (c *OAuthClient) AuthorizeURL(shop, state string) string {
	q := url.Values{}
	q.Set("client_id", c.apiKey)
	q.Set("scope", strings.Join(c.scopes, ","))
	q.Set("redirect_uri", c.redirectURI)
	q.Set("state", state)
	return fmt.Sprintf("https://%s/admin/oauth/authorize?%s", shop, q.Encode())
}

// VerifyCallback checks the hex HMAC-SHA256 signature the platform attaches
// to callback query strings: every parameter except hmac, sorted by key,
// signed with the app secret.
func (c *OAuthClient) VerifyCallback(query url.Values) bool {
	provided := query.Get("hmac")
	if provided == "" {
		return false
	}

	keys := make([]string, 0, len(query))
	for k := range query {
		if k == "hmac" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+query.Get(k))
	}

	mac := hmac.New(sha256.New, []byte(c.apiSecret))
	mac.Write([]byte(strings.Join(pairs, "&")))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(provided))
}

// ExchangeCode trades the authorization code for a permanent access token at
// the shop's token endpoint.
func (c *OAuthClient) ExchangeCode(ctx context.Context, shop, code string) (AccessToken, error) {
	form := url.Values{}
	form.Set("client_id", c.apiKey)
	form.Set("client_secret", c.apiSecret)
	form.Set("code", code)

	tokenURL := fmt.Sprintf("https://%s/admin/oauth/access_token", shop)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return AccessToken{}, fmt.Errorf("token exchange for shop %s: %w", shop, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return AccessToken{}, fmt.Errorf("token exchange for shop %s: %w", shop, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return AccessToken{}, fmt.Errorf("token exchange for shop %s: unexpected status %d", shop, resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
		Scope       string `json:"scope"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return AccessToken{}, fmt.Errorf("token exchange for shop %s: decoding response: %w", shop, err)
	}
	if body.AccessToken == "" {
		return AccessToken{}, fmt.Errorf("token exchange for shop %s: no access token returned", shop)
	}

	var scopes []string
	if body.Scope != "" {
		scopes = strings.Split(body.Scope, ",")
	}
	return AccessToken{Token: body.AccessToken, Scopes: scopes}, nil
}

// UnexpectedScopes returns granted scopes outside the requested set. The
// handshake still succeeds; callers log the difference.
func (c *OAuthClient) UnexpectedScopes(granted []string) []string {
	requested := make(map[string]bool, len(c.scopes))
	for _, s := range c.scopes {
		requested[s] = true
	}

	var extra []string
	for _, s := range granted {
		if !requested[s] {
			extra = append(extra, s)
		}
	}
	return extra
}
