package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/LexLPS/eve-shop/core/product"
)

// Storer is the cart document store as the service consumes it.
type Storer interface {
	Get(ctx context.Context, userID string) (*Cart, error)
	SetItems(ctx context.Context, userID string, items []Item) (Cart, error)
}

// Service implements the cart mutations. All operations are keyed by the
// user and idempotent with respect to retries at the document level.
type Service struct {
	store Storer
}

func NewService(store Storer) *Service {
	return &Service{store: store}
}

// GetOrCreate returns the user's cart, lazily creating an empty one on
// first access.
func (s *Service) GetOrCreate(ctx context.Context, userID string) (Cart, error) {
	c, err := s.store.Get(ctx, userID)
	if err == nil {
		return *c, nil
	}
	if !errors.Is(err, ErrCartNotFound) {
		return Cart{}, err
	}

	created, err := s.store.SetItems(ctx, userID, []Item{})
	if err != nil {
		return Cart{}, fmt.Errorf("creating cart: %w", err)
	}
	return created, nil
}

// AddItem merges the product into the cart: an existing line item for the
// same product ID gets its quantity incremented, otherwise a new line
// item is appended with a price snapshot.
func (s *Service) AddItem(ctx context.Context, userID string, p product.Product, quantity int) (Cart, error) {
	if quantity < 1 {
		quantity = 1
	}

	c, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return Cart{}, err
	}

	items := c.Items
	merged := false
	for i := range items {
		if items[i].ProductID == p.ID {
			items[i].Quantity += quantity
			merged = true
			break
		}
	}

	if !merged {
		items = append(items, Item{
			ProductID:    p.ID,
			Slug:         p.Slug,
			Name:         p.Name,
			Price:        p.Price.OrDefault(),
			Quantity:     quantity,
			ThumbnailURL: p.ThumbnailURL,
		})
	}

	return s.store.SetItems(ctx, userID, items)
}

// RemoveItem drops the line item for the given product ID. Removing a
// product that is not in the cart leaves it unchanged.
func (s *Service) RemoveItem(ctx context.Context, userID string, productID string) (Cart, error) {
	c, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return Cart{}, err
	}

	items := make([]Item, 0, len(c.Items))
	for _, it := range c.Items {
		if it.ProductID != productID {
			items = append(items, it)
		}
	}

	return s.store.SetItems(ctx, userID, items)
}

func (s *Service) Clear(ctx context.Context, userID string) error {
	_, err := s.store.SetItems(ctx, userID, []Item{})
	return err
}
