package catalog_test

import (
	"context"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service/catalog"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type fakeProductRepo struct {
	arrivals []entity.Product
	bySlug   map[string]*entity.Product
	err      error
}

func (f *fakeProductRepo) GetBySlug(_ context.Context, slug string) (*entity.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.bySlug[slug], nil
}

func (f *fakeProductRepo) ListNewArrivals(_ context.Context, limit int) ([]entity.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit > len(f.arrivals) {
		limit = len(f.arrivals)
	}
	return f.arrivals[:limit], nil
}

type fakeSalesRepo struct {
	topSellers []entity.TopSeller
	gotSince   time.Time
	gotLimit   int
}

func (f *fakeSalesRepo) TopSellers(_ context.Context, since time.Time, limit int) ([]entity.TopSeller, error) {
	f.gotSince = since
	f.gotLimit = limit
	return f.topSellers, nil
}

type fakeReviewRepo struct {
	summaries map[int64]entity.RatingSummary
}

func (f *fakeReviewRepo) Summary(_ context.Context, productID int64) (*entity.RatingSummary, error) {
	summary := f.summaries[productID]
	summary.ProductID = productID
	return &summary, nil
}

func (f *fakeReviewRepo) SummariesByProducts(_ context.Context, productIDs []int64) (map[int64]entity.RatingSummary, error) {
	result := make(map[int64]entity.RatingSummary, len(productIDs))
	for _, id := range productIDs {
		if summary, ok := f.summaries[id]; ok {
			result[id] = summary
		}
	}
	return result, nil
}

type fakeListCache struct {
	entries map[string][]byte
	sets    int
	hits    int
}

func newFakeListCache() *fakeListCache {
	return &fakeListCache{entries: map[string][]byte{}}
}

func (f *fakeListCache) Get(_ context.Context, key string, dest any) (bool, error) {
	b, ok := f.entries[key]
	if !ok {
		return false, nil
	}
	f.hits++
	return true, json.Unmarshal(b, dest)
}

func (f *fakeListCache) Set(_ context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.entries[key] = b
	f.sets++
	return nil
}

func product(id int64, slug string, createdAt time.Time) entity.Product {
	return entity.Product{
		ID:         id,
		Slug:       slug,
		Name:       slug,
		PriceCents: id * 100,
		Stock:      3,
		CreatedAt:  createdAt,
	}
}

func TestNewArrivals(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	now := time.Now()
	productRepo := &fakeProductRepo{
		arrivals: []entity.Product{
			product(3, "newest", now),
			product(2, "newer", now.Add(-time.Hour)),
			product(1, "oldest", now.Add(-2*time.Hour)),
		},
	}
	reviewRepo := &fakeReviewRepo{
		summaries: map[int64]entity.RatingSummary{
			3: {ProductID: 3, Average: 4.5, Count: 2},
		},
	}

	svc := catalog.NewService(productRepo, &fakeSalesRepo{}, reviewRepo)

	cards, err := svc.NewArrivals(ctx, 2)
	rq.NoError(err)
	rq.Len(cards, 2)
	rq.Equal("newest", cards[0].Product.Slug)
	rq.Equal("newer", cards[1].Product.Slug)
	rq.Equal(4.5, cards[0].Summary.Average)
	rq.Equal(2, cards[0].Summary.Count)
	rq.Zero(cards[1].Summary.Count)
}

func TestNewArrivalsUsesCache(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	productRepo := &fakeProductRepo{
		arrivals: []entity.Product{product(1, "one", time.Now())},
	}
	listCache := newFakeListCache()

	svc := catalog.NewService(productRepo, &fakeSalesRepo{}, &fakeReviewRepo{}).
		WithListCache(listCache)

	_, err := svc.NewArrivals(ctx, 1)
	rq.NoError(err)
	rq.Equal(1, listCache.sets)
	rq.Zero(listCache.hits)

	cards, err := svc.NewArrivals(ctx, 1)
	rq.NoError(err)
	rq.Equal(1, listCache.hits)
	rq.Len(cards, 1)
	rq.Equal("one", cards[0].Product.Slug)
}

func TestTopSellers(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	salesRepo := &fakeSalesRepo{
		topSellers: []entity.TopSeller{
			{Product: product(7, "bestseller", time.Now()), UnitsSold: 40},
			{Product: product(8, "runner-up", time.Now()), UnitsSold: 12},
		},
	}

	svc := catalog.NewService(&fakeProductRepo{}, salesRepo, &fakeReviewRepo{}).
		WithWindow(7 * 24 * time.Hour)

	cards, err := svc.TopSellers(ctx, 10)
	rq.NoError(err)
	rq.Len(cards, 2)
	rq.Equal("bestseller", cards[0].Product.Slug)
	rq.Equal(40, cards[0].UnitsSold)
	rq.Equal(12, cards[1].UnitsSold)

	// The window cutoff is about a week back.
	rq.WithinDuration(time.Now().Add(-7*24*time.Hour), salesRepo.gotSince, time.Minute)
}

func TestTopSellersLimitClamped(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	salesRepo := &fakeSalesRepo{}
	svc := catalog.NewService(&fakeProductRepo{}, salesRepo, &fakeReviewRepo{})

	_, err := svc.TopSellers(ctx, 10_000)
	rq.NoError(err)
	rq.Equal(48, salesRepo.gotLimit)

	_, err = svc.TopSellers(ctx, 0)
	rq.NoError(err)
	rq.Equal(12, salesRepo.gotLimit)
}

func TestRefreshTopSellersOverwritesCache(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	salesRepo := &fakeSalesRepo{
		topSellers: []entity.TopSeller{
			{Product: product(7, "bestseller", time.Now()), UnitsSold: 40},
		},
	}
	listCache := newFakeListCache()

	svc := catalog.NewService(&fakeProductRepo{}, salesRepo, &fakeReviewRepo{}).
		WithListCache(listCache)

	rq.NoError(svc.RefreshTopSellers(ctx, 10))
	rq.Equal(1, listCache.sets)

	// Page load right after the refresh hits the cache.
	cards, err := svc.TopSellers(ctx, 10)
	rq.NoError(err)
	rq.Equal(1, listCache.hits)
	rq.Len(cards, 1)
}

func TestProductDetail(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	p := product(5, "hoodie", time.Now())
	productRepo := &fakeProductRepo{
		bySlug: map[string]*entity.Product{"hoodie": &p},
	}
	reviewRepo := &fakeReviewRepo{
		summaries: map[int64]entity.RatingSummary{
			5: {Average: 3.5, Count: 11},
		},
	}

	svc := catalog.NewService(productRepo, &fakeSalesRepo{}, reviewRepo)

	got, summary, err := svc.ProductDetail(ctx, "hoodie")
	rq.NoError(err)
	rq.Equal("hoodie", got.Slug)
	rq.Equal(3.5, summary.Average)
	rq.Equal(11, summary.Count)
}
