package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rogerio-castellano/shop-insights/internal/models"
)

func TestSalesSummary_EmptyWindowIsSentinel(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.SalesSummary(context.Background(), testShop, 60)
	if !errors.Is(err, ErrNoOrders) {
		t.Fatalf("expected ErrNoOrders, got %v", err)
	}
}

func TestSalesSummary_InvalidInput(t *testing.T) {
	svc, _, _ := newTestService()

	tests := []struct {
		name   string
		shop   string
		window int
	}{
		{"empty shop", "", 30},
		{"zero window", testShop, 0},
		{"negative window", testShop, -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SalesSummary(context.Background(), tt.shop, tt.window)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestSalesSummary_SingleOrder(t *testing.T) {
	svc, orders, _ := newTestService()
	yesterday := testNow.AddDate(0, 0, -1)
	addOrder(t, orders, "order_1", yesterday,
		models.LineItem{ProductID: "prod_p", ProductTitle: "T-Shirt", Quantity: 2})

	report, err := svc.SalesSummary(context.Background(), testShop, 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.DailySales) != 1 {
		t.Fatalf("expected exactly one date bucket, got %d", len(report.DailySales))
	}
	date := yesterday.UTC().Format("2006-01-02")
	if got := report.DailySales[date]; got != 2 {
		t.Errorf("expected 2 units on %s, got %v", date, got)
	}

	if len(report.TopProducts) != 1 {
		t.Fatalf("expected one top product, got %d", len(report.TopProducts))
	}
	top := report.TopProducts[0]
	if top.ProductID != "prod_p" || top.Quantity != 2 {
		t.Errorf("expected (prod_p, 2), got (%s, %v)", top.ProductID, top.Quantity)
	}
	if top.Title != "T-Shirt" {
		t.Errorf("expected denormalized title T-Shirt, got %q", top.Title)
	}
}

func TestSalesSummary_OrderWithoutLineItemsSkipped(t *testing.T) {
	svc, orders, _ := newTestService()
	addOrder(t, orders, "empty_order", testNow.AddDate(0, 0, -2))
	addOrder(t, orders, "real_order", testNow.AddDate(0, 0, -1),
		models.LineItem{ProductID: "prod_a", ProductTitle: "Mug", Quantity: 3})

	report, err := svc.SalesSummary(context.Background(), testShop, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.DailySales) != 1 {
		t.Errorf("empty order must not create a date bucket, got %d buckets", len(report.DailySales))
	}
}

func TestSalesSummary_DateBucketSumsAllLineItems(t *testing.T) {
	svc, orders, _ := newTestService()
	day := testNow.AddDate(0, 0, -3)
	addOrder(t, orders, "order_1", day,
		models.LineItem{ProductID: "prod_a", ProductTitle: "Mug", Quantity: 3},
		models.LineItem{ProductID: "prod_b", ProductTitle: "Hat", Quantity: 4})
	addOrder(t, orders, "order_2", day.Add(2*time.Hour),
		models.LineItem{ProductID: "prod_a", ProductTitle: "Mug", Quantity: 1})

	report, err := svc.SalesSummary(context.Background(), testShop, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	date := day.UTC().Format("2006-01-02")
	if got := report.DailySales[date]; got != 8 {
		t.Errorf("expected 8 units on %s, got %v", date, got)
	}
}

func TestSalesSummary_WindowExcludesOldOrders(t *testing.T) {
	svc, orders, _ := newTestService()
	addOrder(t, orders, "recent", testNow.AddDate(0, 0, -5),
		models.LineItem{ProductID: "prod_a", ProductTitle: "Mug", Quantity: 1})
	addOrder(t, orders, "ancient", testNow.AddDate(0, 0, -90),
		models.LineItem{ProductID: "prod_b", ProductTitle: "Hat", Quantity: 9})

	report, err := svc.SalesSummary(context.Background(), testShop, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.TopProducts) != 1 || report.TopProducts[0].ProductID != "prod_a" {
		t.Errorf("expected only prod_a in window, got %+v", report.TopProducts)
	}
}

func TestSalesSummary_TopFiveStableOrder(t *testing.T) {
	svc, orders, _ := newTestService()
	day := testNow.AddDate(0, 0, -1)

	// prod_1..prod_6 sell 10, 7, 7, 5, 3, 1 units in encounter order; the
	// two 7s must keep their relative order and prod_6 must be cut.
	quantities := []int{10, 7, 7, 5, 3, 1}
	for i, q := range quantities {
		id := string(rune('a' + i))
		addOrder(t, orders, "order_"+id, day,
			models.LineItem{ProductID: "prod_" + id, ProductTitle: "P" + id, Quantity: q})
	}

	report, err := svc.SalesSummary(context.Background(), testShop, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.TopProducts) != 5 {
		t.Fatalf("expected 5 top products, got %d", len(report.TopProducts))
	}

	wantOrder := []string{"prod_a", "prod_b", "prod_c", "prod_d", "prod_e"}
	for i, want := range wantOrder {
		if report.TopProducts[i].ProductID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, report.TopProducts[i].ProductID)
		}
	}
	for i := 1; i < len(report.TopProducts); i++ {
		if report.TopProducts[i].Quantity > report.TopProducts[i-1].Quantity {
			t.Errorf("top products not sorted descending at position %d", i)
		}
	}
}
