package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestInMemorySessionStore(t *testing.T) {
	store := NewInMemorySessionStore()
	ctx := context.Background()

	if _, err := store.Get(ctx, "unknown.myshopify.com"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}

	sess := Session{
		Shop:        "my-shop.myshopify.com",
		AccessToken: "token",
		Scopes:      []string{"read_orders"},
		CreatedAt:   time.Now(),
	}
	if err := store.Set(ctx, sess.Shop, sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Get(ctx, sess.Shop)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.AccessToken != "token" {
		t.Errorf("expected stored token, got %q", got.AccessToken)
	}

	shops, err := store.Shops(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(shops) != 1 || shops[0] != sess.Shop {
		t.Errorf("expected [%s], got %v", sess.Shop, shops)
	}

	if err := store.Delete(ctx, sess.Shop); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Get(ctx, sess.Shop); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after delete, got %v", err)
	}
}

func TestCookieSigner_RoundTrip(t *testing.T) {
	signer := NewCookieSigner("test-secret", time.Hour)

	token, err := signer.Sign("my-shop.myshopify.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	shop, err := signer.Shop(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shop != "my-shop.myshopify.com" {
		t.Errorf("expected shop round trip, got %q", shop)
	}
}

func TestCookieSigner_RejectsForgedToken(t *testing.T) {
	signer := NewCookieSigner("test-secret", time.Hour)
	other := NewCookieSigner("other-secret", time.Hour)

	token, err := other.Sign("my-shop.myshopify.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := signer.Shop(token); err == nil {
		t.Errorf("expected token signed with other secret to be rejected")
	}
}

func TestCookieSigner_RejectsExpiredToken(t *testing.T) {
	signer := NewCookieSigner("test-secret", -time.Minute)

	token, err := signer.Sign("my-shop.myshopify.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := signer.Shop(token); err == nil {
		t.Errorf("expected expired token to be rejected")
	}
}
