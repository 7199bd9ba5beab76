package test

import (
	"fmt"
	"math"
	"net/http"
	"testing"

	"github.com/LexLPS/eve-shop/core/cart"
	"github.com/LexLPS/eve-shop/core/product"
	"github.com/google/go-cmp/cmp"
)

type cartView struct {
	Items []cart.Item   `json:"items"`
	Total product.Money `json:"total"`
}

func TestCart(t *testing.T) {
	env, err := NewTestEnv(t, "cart_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	p := product.Product{
		ID:          "UHJvZHVjdDox",
		Slug:        "eve-ocean-deep-calm",
		Name:        "Eve Ocean: Deep Calm",
		Description: "Underwater relaxation.",
		Price:       product.Money{Amount: 39.99, Currency: "EUR"},
	}
	env.Saleor.SetProducts(p)

	env.Login(t)
	defer env.Logout(t)

	var cv cartView
	if status := env.do(t, http.MethodGet, "/cart", "", &cv); status != http.StatusOK {
		t.Fatalf("showing cart: status code %d", status)
	}
	if len(cv.Items) != 0 {
		t.Fatalf("new cart must be empty, has %d items", len(cv.Items))
	}

	addBody := fmt.Sprintf(`{"slug":%q,"quantity":1}`, p.Slug)

	cv = cartView{}
	if status := env.do(t, http.MethodPut, "/cart/items", addBody, &cv); status != http.StatusOK {
		t.Fatalf("adding item: status code %d", status)
	}
	if len(cv.Items) != 1 || cv.Items[0].Quantity != 1 {
		t.Fatalf("expected one item with quantity 1, got %+v", cv.Items)
	}

	// Adding the same product again merges into the existing line item.
	cv = cartView{}
	if status := env.do(t, http.MethodPut, "/cart/items", addBody, &cv); status != http.StatusOK {
		t.Fatalf("re-adding item: status code %d", status)
	}
	want := []cart.Item{{
		ProductID: p.ID,
		Slug:      p.Slug,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  2,
	}}
	if diff := cmp.Diff(want, cv.Items); diff != "" {
		t.Fatalf("unexpected items (-want +got):\n%s", diff)
	}
	if math.Abs(cv.Total.Amount-79.98) > 0.001 || cv.Total.Currency != "EUR" {
		t.Fatalf("unexpected total %+v", cv.Total)
	}

	// An unresolvable product is swallowed: 204 and the cart unchanged.
	badBody := `{"slug":"no-such-slug","quantity":1}`
	if status := env.do(t, http.MethodPut, "/cart/items", badBody, nil); status != http.StatusNoContent {
		t.Fatalf("adding unknown product: expected 204, got %d", status)
	}

	cv = cartView{}
	if status := env.do(t, http.MethodGet, "/cart", "", &cv); status != http.StatusOK {
		t.Fatalf("showing cart: status code %d", status)
	}
	if diff := cmp.Diff(want, cv.Items); diff != "" {
		t.Fatalf("cart changed after swallowed add (-want +got):\n%s", diff)
	}

	// Removing a product that is not in the cart is a no-op.
	if status := env.do(t, http.MethodDelete, "/cart/items/unknown-id", "", &cv); status != http.StatusOK {
		t.Fatalf("removing unknown item: status code %d", status)
	}
	if diff := cmp.Diff(want, cv.Items); diff != "" {
		t.Fatalf("cart changed after no-op removal (-want +got):\n%s", diff)
	}

	cv = cartView{}
	if status := env.do(t, http.MethodDelete, "/cart/items/"+p.ID, "", &cv); status != http.StatusOK {
		t.Fatalf("removing item: status code %d", status)
	}
	if len(cv.Items) != 0 {
		t.Fatalf("cart must be empty after removal, has %d items", len(cv.Items))
	}

	if status := env.do(t, http.MethodPut, "/cart/items", addBody, nil); status != http.StatusOK {
		t.Fatalf("re-adding item: status code %d", status)
	}
	if status := env.do(t, http.MethodDelete, "/cart", "", nil); status != http.StatusNoContent {
		t.Fatalf("clearing cart: status code %d", status)
	}

	cv = cartView{}
	if status := env.do(t, http.MethodGet, "/cart", "", &cv); status != http.StatusOK {
		t.Fatalf("showing cart: status code %d", status)
	}
	if len(cv.Items) != 0 {
		t.Fatalf("cart must be empty after clear, has %d items", len(cv.Items))
	}
}

func TestCartRequiresAuth(t *testing.T) {
	env, err := NewTestEnv(t, "cart_auth_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	if status := env.do(t, http.MethodGet, "/cart", "", nil); status != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthenticated cart access, got %d", status)
	}
}
