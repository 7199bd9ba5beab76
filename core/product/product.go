package product

// DefaultCurrency is assumed whenever the remote catalogue delivers a
// product without usable pricing data.
const DefaultCurrency = "EUR"

type Money struct {
	Amount   float64 `json:"amount" bson:"amount"`
	Currency string  `json:"currency" bson:"currency"`
}

// OrDefault normalizes a price snapshot taken from a malformed or absent
// pricing structure to amount 0 in the default currency.
func (m Money) OrDefault() Money {
	if m.Currency == "" {
		m.Currency = DefaultCurrency
	}
	return m
}

type Product struct {
	ID           string `json:"id" bson:"id"`
	Slug         string `json:"slug" bson:"slug"`
	Name         string `json:"name" bson:"name"`
	Description  string `json:"description" bson:"description"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty" bson:"thumbnail_url,omitempty"`
	Price        Money  `json:"price" bson:"price"`
}

// Fallback returns the static experiences shown when both the cache and
// the remote catalogue fail to produce a listing.
func Fallback() []Product {
	return []Product{
		{
			ID:          "fallback-horizon",
			Slug:        "eve-horizon-nature-escape",
			Name:        "Eve Horizon: Nature Escape",
			Description: "A calming VR journey through forests, lakes and mountain air.",
			Price:       Money{Amount: 49.99, Currency: DefaultCurrency},
		},
		{
			ID:          "fallback-home",
			Slug:        "eve-home-family-moments",
			Name:        "Eve Home: Family Moments",
			Description: "Relive familiar places and shared moments in immersive VR.",
			Price:       Money{Amount: 59.99, Currency: DefaultCurrency},
		},
	}
}
