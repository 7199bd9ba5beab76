package cart

import (
	"time"

	"github.com/LexLPS/eve-shop/core/product"
)

type Cart struct {
	UserID    string    `json:"-" bson:"user_id"`
	Items     []Item    `json:"items" bson:"items"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// Item snapshots the product at add-time: later catalogue updates do not
// re-price items already in a cart.
type Item struct {
	ProductID    string        `json:"productId" bson:"product_id"`
	Slug         string        `json:"slug" bson:"slug"`
	Name         string        `json:"name" bson:"name"`
	Price        product.Money `json:"price" bson:"price"`
	Quantity     int           `json:"quantity" bson:"quantity"`
	ThumbnailURL string        `json:"thumbnailUrl,omitempty" bson:"thumbnail_url,omitempty"`
}

type ItemNew struct {
	Slug     string `json:"slug" validate:"required"`
	Quantity int    `json:"quantity" validate:"omitempty,gte=1"`
}

// Total sums amount*quantity over the items. The currency is taken from
// the last item iterated, assuming single-currency carts.
func Total(c Cart) product.Money {
	total := product.Money{Currency: product.DefaultCurrency}
	for _, it := range c.Items {
		total.Amount += it.Price.Amount * float64(it.Quantity)
		total.Currency = it.Price.Currency
	}
	return total
}
