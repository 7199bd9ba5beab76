package test

import (
	"fmt"
	"math"
	"net/http"
	"testing"

	"github.com/LexLPS/eve-shop/core/order"
	"github.com/LexLPS/eve-shop/core/product"
)

func TestCheckout(t *testing.T) {
	env, err := NewTestEnv(t, "order_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	p1 := product.Product{
		ID:    "UHJvZHVjdDox",
		Slug:  "eve-ocean-deep-calm",
		Name:  "Eve Ocean: Deep Calm",
		Price: product.Money{Amount: 39.99, Currency: "EUR"},
	}
	p2 := product.Product{
		ID:    "UHJvZHVjdDoy",
		Slug:  "eve-city-night-walk",
		Name:  "Eve City: Night Walk",
		Price: product.Money{Amount: 29.99, Currency: "EUR"},
	}
	env.Saleor.SetProducts(p1, p2)

	env.Login(t)
	defer env.Logout(t)

	// Checkout with an empty cart is rejected.
	if status := env.do(t, http.MethodPost, "/checkout", "", nil); status != http.StatusUnprocessableEntity {
		t.Fatalf("empty checkout: expected 422, got %d", status)
	}

	add := func(slug string, qty int) {
		body := fmt.Sprintf(`{"slug":%q,"quantity":%d}`, slug, qty)
		if status := env.do(t, http.MethodPut, "/cart/items", body, nil); status != http.StatusOK {
			t.Fatalf("adding %s: status code %d", slug, status)
		}
	}
	add(p1.Slug, 2)
	add(p2.Slug, 1)

	var ord order.Order
	if status := env.do(t, http.MethodPost, "/checkout", "", &ord); status != http.StatusCreated {
		t.Fatalf("checkout: status code %d", status)
	}

	wantTotal := 2*p1.Price.Amount + p2.Price.Amount
	if math.Abs(ord.TotalAmount-wantTotal) > 0.001 {
		t.Fatalf("expected total %.2f, got %.2f", wantTotal, ord.TotalAmount)
	}
	if ord.Currency != "EUR" {
		t.Fatalf("expected currency EUR, got %s", ord.Currency)
	}
	if ord.Status != order.Created {
		t.Fatalf("expected status %q, got %q", order.Created, ord.Status)
	}
	if ord.RemoteID == "" {
		t.Fatal("order must carry a remote identifier")
	}

	// Checkout flushes the cart.
	var cv cartView
	if status := env.do(t, http.MethodGet, "/cart", "", &cv); status != http.StatusOK {
		t.Fatalf("showing cart: status code %d", status)
	}
	if len(cv.Items) != 0 {
		t.Fatalf("cart must be empty after checkout, has %d items", len(cv.Items))
	}

	var history []order.Order
	if status := env.do(t, http.MethodGet, "/orders", "", &history); status != http.StatusOK {
		t.Fatalf("listing orders: status code %d", status)
	}
	if len(history) != 1 {
		t.Fatalf("expected one order in history, got %d", len(history))
	}
	if history[0].ID != ord.ID {
		t.Fatalf("expected order %s in history, got %s", ord.ID, history[0].ID)
	}
}
