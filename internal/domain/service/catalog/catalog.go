package catalog

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/domain/entity"
	"storefront/pkg/contextx"
	"storefront/pkg/logx"
)

const (
	defaultPageLimit  = 12
	maxPageLimit      = 48
	topSellersWindow  = 7 * 24 * time.Hour
	topSellersCacheNS = "catalog:top-sellers"
	arrivalsCacheNS   = "catalog:new-arrivals"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type ProductRepository interface {
	GetBySlug(ctx context.Context, slug string) (*entity.Product, error)
	ListNewArrivals(ctx context.Context, limit int) ([]entity.Product, error)
}

type SalesRepository interface {
	TopSellers(ctx context.Context, since time.Time, limit int) ([]entity.TopSeller, error)
}

type ReviewRepository interface {
	Summary(ctx context.Context, productID int64) (*entity.RatingSummary, error)
	SummariesByProducts(ctx context.Context, productIDs []int64) (map[int64]entity.RatingSummary, error)
}

// ListCache caches rendered card lists between page loads. Misses are
// reported as (found=false, nil error).
type ListCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

// Card is one product tile of a storefront page: the product plus the rating
// aggregate the star strip is rendered from.
type Card struct {
	Product   entity.Product       `json:"product"`
	Summary   entity.RatingSummary `json:"summary"`
	UnitsSold int                  `json:"units_sold,omitempty"`
}

type Service struct {
	productRepo ProductRepository
	salesRepo   SalesRepository
	reviewRepo  ReviewRepository
	listCache   ListCache
	window      time.Duration
}

func NewService(
	productRepo ProductRepository,
	salesRepo SalesRepository,
	reviewRepo ReviewRepository,
) *Service {
	return &Service{
		productRepo: productRepo,
		salesRepo:   salesRepo,
		reviewRepo:  reviewRepo,
		window:      topSellersWindow,
	}
}

func (s *Service) WithListCache(cache ListCache) *Service {
	s.listCache = cache
	return s
}

func (s *Service) WithWindow(window time.Duration) *Service {
	if window > 0 {
		s.window = window
	}
	return s
}

// NewArrivals returns the newest products, most recent first.
func (s *Service) NewArrivals(ctx context.Context, limit int) ([]Card, error) {
	limit = clampLimit(limit)

	cacheKey := fmt.Sprintf("%s:%d", arrivalsCacheNS, limit)
	if cards, ok := s.cachedCards(ctx, cacheKey); ok {
		return cards, nil
	}

	products, err := s.productRepo.ListNewArrivals(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("productRepo.ListNewArrivals: %w", err)
	}

	cards, err := s.cardsForProducts(ctx, products)
	if err != nil {
		return nil, err
	}

	s.storeCards(ctx, cacheKey, cards)

	return cards, nil
}

// TopSellers ranks products by units sold over the trailing week.
func (s *Service) TopSellers(ctx context.Context, limit int) ([]Card, error) {
	limit = clampLimit(limit)

	cacheKey := fmt.Sprintf("%s:%d", topSellersCacheNS, limit)
	if cards, ok := s.cachedCards(ctx, cacheKey); ok {
		return cards, nil
	}

	cards, err := s.RankTopSellers(ctx, limit)
	if err != nil {
		return nil, err
	}

	s.storeCards(ctx, cacheKey, cards)

	return cards, nil
}

// RankTopSellers computes the ranking without consulting the cache. The
// background refresher uses it to repopulate the cache.
func (s *Service) RankTopSellers(ctx context.Context, limit int) ([]Card, error) {
	since := time.Now().Add(-s.window)

	topSellers, err := s.salesRepo.TopSellers(ctx, since, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("salesRepo.TopSellers: %w", err)
	}

	products := make([]entity.Product, 0, len(topSellers))
	for _, ts := range topSellers {
		products = append(products, ts.Product)
	}

	cards, err := s.cardsForProducts(ctx, products)
	if err != nil {
		return nil, err
	}

	for i, ts := range topSellers {
		cards[i].UnitsSold = ts.UnitsSold
	}

	return cards, nil
}

// RefreshTopSellers recomputes the ranking and overwrites the cached page.
func (s *Service) RefreshTopSellers(ctx context.Context, limit int) error {
	limit = clampLimit(limit)

	cards, err := s.RankTopSellers(ctx, limit)
	if err != nil {
		return err
	}

	s.storeCards(ctx, fmt.Sprintf("%s:%d", topSellersCacheNS, limit), cards)

	return nil
}

// ProductDetail loads one product with its live rating aggregate.
func (s *Service) ProductDetail(ctx context.Context, slug string) (*entity.Product, *entity.RatingSummary, error) {
	product, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, fmt.Errorf("productRepo.GetBySlug: %w", err)
	}

	summary, err := s.reviewRepo.Summary(ctx, product.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("reviewRepo.Summary: %w", err)
	}

	return product, summary, nil
}

func (s *Service) cardsForProducts(ctx context.Context, products []entity.Product) ([]Card, error) {
	ids := make([]int64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}

	summaries, err := s.reviewRepo.SummariesByProducts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("reviewRepo.SummariesByProducts: %w", err)
	}

	cards := make([]Card, 0, len(products))
	for _, p := range products {
		cards = append(cards, Card{
			Product: p,
			Summary: summaries[p.ID],
		})
	}
	return cards, nil
}

func (s *Service) cachedCards(ctx context.Context, key string) ([]Card, bool) {
	if s.listCache == nil {
		return nil, false
	}

	var cards []Card

	found, err := s.listCache.Get(ctx, key, &cards)
	if err != nil {
		logger(ctx).Error("listCache.Get", "key", key, logx.Error(err))
		return nil, false
	}

	return cards, found
}

func (s *Service) storeCards(ctx context.Context, key string, cards []Card) {
	if s.listCache == nil {
		return
	}

	if err := s.listCache.Set(ctx, key, cards); err != nil {
		logger(ctx).Error("listCache.Set", "key", key, logx.Error(err))
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultPageLimit
	}
	if limit > maxPageLimit {
		return maxPageLimit
	}
	return limit
}
