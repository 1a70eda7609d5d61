package repo

import (
	"context"
	"testing"
	"time"

	"github.com/rogerio-castellano/shop-insights/internal/models"
)

func TestInMemoryOrdersSince_OrderedByCreationTime(t *testing.T) {
	r := NewInMemoryOrderRepository()
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	// Inserted newest first; results must still come back oldest first.
	for _, o := range []models.Order{
		{ID: "order_c", Shop: "s.myshopify.com", CreatedAt: base.AddDate(0, 0, 2)},
		{ID: "order_a", Shop: "s.myshopify.com", CreatedAt: base},
		{ID: "order_b", Shop: "s.myshopify.com", CreatedAt: base.AddDate(0, 0, 1)},
	} {
		if err := r.Create(ctx, o); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	got, err := r.OrdersSince(ctx, "s.myshopify.com", base.AddDate(0, 0, -1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"order_a", "order_b", "order_c"}
	if len(got) != len(want) {
		t.Fatalf("expected %d orders, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestInMemoryOrdersSince_TiesBreakOnID(t *testing.T) {
	r := NewInMemoryOrderRepository()
	ctx := context.Background()
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	for _, id := range []string{"order_2", "order_1"} {
		if err := r.Create(ctx, models.Order{ID: id, Shop: "s.myshopify.com", CreatedAt: at}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	got, err := r.OrdersSince(ctx, "s.myshopify.com", at)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "order_1" || got[1].ID != "order_2" {
		t.Errorf("expected id order for equal timestamps, got %+v", got)
	}
}
