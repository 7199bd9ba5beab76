// Package saleor issues GraphQL queries against the headless commerce API
// and maps its edge/node response shapes into local product records.
package saleor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/LexLPS/eve-shop/core/product"
	"github.com/go-resty/resty/v2"
)

// ErrNotConfigured is returned when the GraphQL endpoint is unset.
var ErrNotConfigured = errors.New("saleor endpoint not configured")

// ClientError wraps transport and schema failures: unreachable endpoint,
// non-JSON responses, malformed bodies and errors embedded in the GraphQL
// payload.
type ClientError struct {
	Err error
}

func (e *ClientError) Error() string { return "saleor: " + e.Err.Error() }

func (e *ClientError) Unwrap() error { return e.Err }

const productFields = `
	id
	name
	slug
	description
	thumbnail {
		url
	}
	pricing {
		priceRange {
			start { gross { amount currency } }
			stop  { gross { amount currency } }
		}
	}`

const productsQuery = `
query Products($first: Int!, $channel: String!) {
	products(first: $first, channel: $channel) {
		edges {
			node {` + productFields + `
			}
		}
	}
}`

const productBySlugQuery = `
query ProductBySlug($slug: String!, $channel: String!) {
	product(slug: $slug, channel: $channel) {` + productFields + `
	}
}`

type Client struct {
	url     string
	channel string
	http    *resty.Client
}

func NewClient(url string, channel string, timeout time.Duration) *Client {
	return &Client{
		url:     url,
		channel: channel,
		http:    resty.New().SetTimeout(timeout),
	}
}

// FetchProducts lists up to count products from the remote catalogue,
// flattening the edge/node pagination shape.
func (c *Client) FetchProducts(ctx context.Context, count int) ([]product.Product, error) {
	vars := map[string]any{"first": count, "channel": c.channel}

	var out struct {
		Products struct {
			Edges []struct {
				Node node `json:"node"`
			} `json:"edges"`
		} `json:"products"`
	}
	if err := c.query(ctx, productsQuery, vars, &out); err != nil {
		return nil, err
	}

	products := make([]product.Product, 0, len(out.Products.Edges))
	for _, edge := range out.Products.Edges {
		products = append(products, edge.Node.product())
	}
	return products, nil
}

// FetchBySlug resolves a single product. A nil product with a nil error
// means the slug does not exist remotely, which is not a failure.
func (c *Client) FetchBySlug(ctx context.Context, slug string) (*product.Product, error) {
	vars := map[string]any{"slug": slug, "channel": c.channel}

	var out struct {
		Product *node `json:"product"`
	}
	if err := c.query(ctx, productBySlugQuery, vars, &out); err != nil {
		return nil, err
	}

	if out.Product == nil {
		return nil, nil
	}

	p := out.Product.product()
	return &p, nil
}

func (c *Client) query(ctx context.Context, query string, vars map[string]any, out any) error {
	if c.url == "" {
		return ErrNotConfigured
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{"query": query, "variables": vars}).
		Post(c.url)
	if err != nil {
		return &ClientError{Err: fmt.Errorf("posting query: %w", err)}
	}

	if resp.IsError() {
		return &ClientError{Err: fmt.Errorf("unexpected status %s", resp.Status())}
	}

	if ct := resp.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		return &ClientError{Err: fmt.Errorf("unexpected content type %q", ct)}
	}

	var body struct {
		Data   json.RawMessage `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return &ClientError{Err: fmt.Errorf("decoding response: %w", err)}
	}

	if len(body.Errors) > 0 {
		return &ClientError{Err: fmt.Errorf("graphql error: %s", body.Errors[0].Message)}
	}

	if err := json.Unmarshal(body.Data, out); err != nil {
		return &ClientError{Err: fmt.Errorf("decoding data: %w", err)}
	}
	return nil
}

type node struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Thumbnail   *struct {
		URL string `json:"url"`
	} `json:"thumbnail"`
	Pricing *struct {
		PriceRange *struct {
			Start *struct {
				Gross *gross `json:"gross"`
			} `json:"start"`
			Stop *struct {
				Gross *gross `json:"gross"`
			} `json:"stop"`
		} `json:"priceRange"`
	} `json:"pricing"`
}

type gross struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

func (n node) product() product.Product {
	p := product.Product{
		ID:          n.ID,
		Slug:        n.Slug,
		Name:        n.Name,
		Description: n.Description,
		Price:       n.price().OrDefault(),
	}

	if n.Thumbnail != nil {
		p.ThumbnailURL = n.Thumbnail.URL
	}
	return p
}

// price extracts the first gross amount of the price range. Any missing
// level of the nested pricing structure yields the zero Money, which
// OrDefault turns into 0 EUR.
func (n node) price() product.Money {
	if n.Pricing == nil || n.Pricing.PriceRange == nil || n.Pricing.PriceRange.Start == nil || n.Pricing.PriceRange.Start.Gross == nil {
		return product.Money{}
	}

	g := n.Pricing.PriceRange.Start.Gross
	return product.Money{Amount: g.Amount, Currency: g.Currency}
}
