package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// listLimit caps how many cached products a catalogue listing reads.
const listLimit = 50

var (
	// ErrNotFound reports a slug absent from both the cache and the
	// remote catalogue. It is a normal outcome, not a failure.
	ErrNotFound = errors.New("product not found")

	// ErrUnavailable reports a remote catalogue failure during a detail
	// lookup. Handlers collapse it into a not-found response, but the
	// distinction stays visible to callers that want it.
	ErrUnavailable = errors.New("catalogue unavailable")
)

// Store is the product cache as the retrieval flow consumes it.
type Store interface {
	Get(ctx context.Context, slug string) (*Product, error)
	List(ctx context.Context, limit int64) ([]Product, error)
	Upsert(ctx context.Context, p Product) error
}

// Catalogue is the remote product source. A (nil, nil) return from
// FetchBySlug means the slug does not exist remotely.
type Catalogue interface {
	FetchProducts(ctx context.Context, count int) ([]Product, error)
	FetchBySlug(ctx context.Context, slug string) (*Product, error)
}

// Listing is the outcome of a catalogue listing. When both the cache and
// the remote catalogue failed to produce products, Fallback is set and
// Products holds the static fallback records, with Reason describing the
// remote failure for display.
type Listing struct {
	Products []Product `json:"products"`
	Fallback bool      `json:"fallback,omitempty"`
	Reason   string    `json:"reason,omitempty"`
}

// Service orchestrates cache-then-remote-then-fallback product retrieval.
type Service struct {
	cache  Store
	remote Catalogue
	log    logrus.FieldLogger
}

func NewService(cache Store, remote Catalogue, log logrus.FieldLogger) *Service {
	return &Service{cache: cache, remote: remote, log: log}
}

// List returns the catalogue. The cache is authoritative once populated:
// no freshness check is made against the remote catalogue. On a remote
// failure with an empty cache the fixed fallback products are returned;
// an empty remote result without an error stays an empty listing.
func (s *Service) List(ctx context.Context, count int) Listing {
	cached, err := s.cache.List(ctx, listLimit)
	if err != nil {
		s.log.WithField("message", err).Warn("listing products from cache")
	}
	if len(cached) > 0 {
		return Listing{Products: cached}
	}

	products, err := s.remote.FetchProducts(ctx, count)
	if err != nil {
		s.log.WithField("message", err).Error("fetching products from remote catalogue")
		return Listing{
			Products: Fallback(),
			Fallback: true,
			Reason:   err.Error(),
		}
	}

	for _, p := range products {
		if err := s.cache.Upsert(ctx, p); err != nil {
			s.log.WithField("message", err).Warn("caching product")
		}
	}

	return Listing{Products: products}
}

// Fetch resolves a single product by slug through the cache, falling
// back to the remote catalogue on a miss.
func (s *Service) Fetch(ctx context.Context, slug string) (Product, error) {
	p, err := s.cache.Get(ctx, slug)
	if err == nil {
		return *p, nil
	}
	if !errors.Is(err, ErrNotCached) {
		s.log.WithField("message", err).Warn("reading product from cache")
	}

	p, err = s.remote.FetchBySlug(ctx, slug)
	if err != nil {
		return Product{}, fmt.Errorf("%w: fetching product[%s]: %v", ErrUnavailable, slug, err)
	}
	if p == nil {
		return Product{}, fmt.Errorf("product[%s]: %w", slug, ErrNotFound)
	}

	if err := s.cache.Upsert(ctx, *p); err != nil {
		s.log.WithField("message", err).Warn("caching product")
	}

	return *p, nil
}
