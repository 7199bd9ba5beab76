package product

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	byID    map[string]Product
	listErr error
	getErr  error
}

func newFakeStore(products ...Product) *fakeStore {
	s := &fakeStore{byID: make(map[string]Product)}
	for _, p := range products {
		s.byID[p.ID] = p
	}
	return s
}

func (s *fakeStore) Get(_ context.Context, slug string) (*Product, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	for _, p := range s.byID {
		if p.Slug == slug {
			p := p
			return &p, nil
		}
	}
	return nil, ErrNotCached
}

func (s *fakeStore) List(_ context.Context, limit int64) ([]Product, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	products := make([]Product, 0, len(s.byID))
	for _, p := range s.byID {
		if int64(len(products)) == limit {
			break
		}
		products = append(products, p)
	}
	return products, nil
}

func (s *fakeStore) Upsert(_ context.Context, p Product) error {
	s.byID[p.ID] = p
	return nil
}

type fakeCatalogue struct {
	products []Product
	bySlug   *Product
	err      error
	calls    int
}

func (c *fakeCatalogue) FetchProducts(context.Context, int) ([]Product, error) {
	c.calls++
	return c.products, c.err
}

func (c *fakeCatalogue) FetchBySlug(context.Context, string) (*Product, error) {
	c.calls++
	return c.bySlug, c.err
}

func testProduct(n int) Product {
	return Product{
		ID:    fmt.Sprintf("prod-%d", n),
		Slug:  fmt.Sprintf("eve-test-%d", n),
		Name:  fmt.Sprintf("Eve Test %d", n),
		Price: Money{Amount: float64(n) * 10, Currency: "EUR"},
	}
}

func newTestService(store Store, remote Catalogue) *Service {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewService(store, remote, log)
}

func TestList_CacheAuthoritative(t *testing.T) {
	cached := testProduct(1)
	remote := &fakeCatalogue{products: []Product{testProduct(2)}}

	sut := newTestService(newFakeStore(cached), remote)
	listing := sut.List(context.Background(), 20)

	require.Len(t, listing.Products, 1)
	assert.Equal(t, cached, listing.Products[0])
	assert.False(t, listing.Fallback)
	assert.Zero(t, remote.calls, "remote must not be called on a cache hit")
}

func TestList_PopulatesCacheOnMiss(t *testing.T) {
	p1, p2 := testProduct(1), testProduct(2)
	store := newFakeStore()
	remote := &fakeCatalogue{products: []Product{p1, p2}}

	sut := newTestService(store, remote)
	listing := sut.List(context.Background(), 20)

	require.Len(t, listing.Products, 2)
	assert.False(t, listing.Fallback)

	// Every fetched product must be retrievable from the cache both by
	// identifier and by slug, unchanged.
	assert.Equal(t, p1, store.byID[p1.ID])
	got, err := store.Get(context.Background(), p2.Slug)
	require.NoError(t, err)
	assert.Equal(t, p2, *got)
}

func TestList_FallbackOnRemoteFailure(t *testing.T) {
	remote := &fakeCatalogue{err: errors.New("connection refused")}

	sut := newTestService(newFakeStore(), remote)
	listing := sut.List(context.Background(), 20)

	require.Len(t, listing.Products, 2)
	assert.True(t, listing.Fallback)
	assert.Contains(t, listing.Reason, "connection refused")

	assert.Equal(t, "eve-horizon-nature-escape", listing.Products[0].Slug)
	assert.Equal(t, Money{Amount: 49.99, Currency: "EUR"}, listing.Products[0].Price)
	assert.Equal(t, "eve-home-family-moments", listing.Products[1].Slug)
	assert.Equal(t, Money{Amount: 59.99, Currency: "EUR"}, listing.Products[1].Price)
}

func TestList_EmptyRemoteIsNotFallback(t *testing.T) {
	remote := &fakeCatalogue{products: []Product{}}

	sut := newTestService(newFakeStore(), remote)
	listing := sut.List(context.Background(), 20)

	assert.Empty(t, listing.Products)
	assert.False(t, listing.Fallback)
}

func TestList_CacheErrorFallsThroughToRemote(t *testing.T) {
	p := testProduct(1)
	store := newFakeStore()
	store.listErr = errors.New("mongo down")
	remote := &fakeCatalogue{products: []Product{p}}

	sut := newTestService(store, remote)
	listing := sut.List(context.Background(), 20)

	require.Len(t, listing.Products, 1)
	assert.Equal(t, p, listing.Products[0])
}

func TestFetch_CacheHit(t *testing.T) {
	cached := testProduct(1)
	remote := &fakeCatalogue{}

	sut := newTestService(newFakeStore(cached), remote)
	got, err := sut.Fetch(context.Background(), cached.Slug)

	require.NoError(t, err)
	assert.Equal(t, cached, got)
	assert.Zero(t, remote.calls)
}

func TestFetch_MissGoesRemoteAndCaches(t *testing.T) {
	p := testProduct(1)
	store := newFakeStore()
	remote := &fakeCatalogue{bySlug: &p}

	sut := newTestService(store, remote)
	got, err := sut.Fetch(context.Background(), p.Slug)

	require.NoError(t, err)
	assert.Equal(t, p, got)
	assert.Equal(t, p, store.byID[p.ID])
}

func TestFetch_AbsentIsNotFound(t *testing.T) {
	sut := newTestService(newFakeStore(), &fakeCatalogue{})

	_, err := sut.Fetch(context.Background(), "no-such-slug")
	require.ErrorIs(t, err, ErrNotFound)
	assert.False(t, errors.Is(err, ErrUnavailable))
}

func TestFetch_RemoteErrorIsUnavailable(t *testing.T) {
	remote := &fakeCatalogue{err: errors.New("connection refused")}

	sut := newTestService(newFakeStore(), remote)
	_, err := sut.Fetch(context.Background(), "eve-test-1")

	require.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, errors.Is(err, ErrNotFound))
}
