package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieSigner issues and validates the signed browser cookie that ties a
// dashboard session to an authenticated shop.
type CookieSigner struct {
	secret []byte
	ttl    time.Duration
}

func NewCookieSigner(secret string, ttl time.Duration) *CookieSigner {
	return &CookieSigner{secret: []byte(secret), ttl: ttl}
}

func (c *CookieSigner) Sign(shop string) (string, error) {
	claims := jwt.MapClaims{
		"sub": shop,
		"exp": time.Now().Add(c.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Shop returns the shop domain carried by a valid token.
func (c *CookieSigner) Shop(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid session token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid session token claims")
	}
	shop, _ := claims["sub"].(string)
	if shop == "" {
		return "", fmt.Errorf("session token missing shop")
	}
	return shop, nil
}
