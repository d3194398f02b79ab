package review

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"

	"storefront/internal/domain"
	"storefront/internal/domain/entity"
	"storefront/pkg/contextx"
	"storefront/pkg/errcodes"
	"storefront/pkg/logx"
)

const (
	summaryCacheTTL = 5 * time.Minute
	defaultLimit    = 10
	maxLimit        = 50

	minScore = 0.5
	maxScore = 5
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type Repository interface {
	Upsert(ctx context.Context, review *entity.Review) error
	ListByProduct(ctx context.Context, productID int64, limit, offset int) ([]entity.Review, []string, error)
	Summary(ctx context.Context, productID int64) (*entity.RatingSummary, error)
}

// TaskEnqueuer schedules the background recompute of the denormalized
// per-product summary row.
type TaskEnqueuer interface {
	EnqueueRefreshSummary(ctx context.Context, productID int64) error
}

type Service struct {
	repo         Repository
	enqueuer     TaskEnqueuer
	summaryCache *cache.Cache
}

func NewService(repo Repository, enqueuer TaskEnqueuer) *Service {
	return &Service{
		repo:         repo,
		enqueuer:     enqueuer,
		summaryCache: cache.New(summaryCacheTTL, 2*summaryCacheTTL),
	}
}

// Submit stores the customer's review. Scores move in half-star steps, the
// same granularity the renderer displays.
func (s *Service) Submit(ctx context.Context, productID, customerID int64, score float64, title, body string) (*entity.Review, error) {
	if err := validateScore(score); err != nil {
		return nil, err
	}

	review := &entity.Review{
		ProductID:  productID,
		CustomerID: customerID,
		Score:      score,
		Title:      title,
		Body:       body,
	}

	if err := s.repo.Upsert(ctx, review); err != nil {
		return nil, fmt.Errorf("repo.Upsert: %w", err)
	}

	s.summaryCache.Delete(summaryCacheKey(productID))

	if err := s.enqueuer.EnqueueRefreshSummary(ctx, productID); err != nil {
		// The live Summary query stays correct; only the denormalized row lags.
		logger(ctx).Error("enqueuer.EnqueueRefreshSummary", "product_id", productID, logx.Error(err))
	}

	return review, nil
}

// ListByProduct returns a page of reviews (newest first) with author names.
func (s *Service) ListByProduct(ctx context.Context, productID int64, limit, offset int) ([]entity.Review, []string, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}

	reviews, authors, err := s.repo.ListByProduct(ctx, productID, limit, offset)
	if err != nil {
		return nil, nil, fmt.Errorf("repo.ListByProduct: %w", err)
	}

	return reviews, authors, nil
}

// ProductSummary returns the product aggregate, served from a short-lived
// in-process cache.
func (s *Service) ProductSummary(ctx context.Context, productID int64) (*entity.RatingSummary, error) {
	key := summaryCacheKey(productID)

	if cached, found := s.summaryCache.Get(key); found {
		if summary, ok := cached.(*entity.RatingSummary); ok {
			return summary, nil
		}
	}

	summary, err := s.repo.Summary(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("repo.Summary: %w", err)
	}

	s.summaryCache.Set(key, summary, cache.DefaultExpiration)

	return summary, nil
}

func validateScore(score float64) error {
	if math.IsNaN(score) || score < minScore || score > maxScore {
		return domain.NewError(errcodes.InvalidReviewScore, "score must be between 0.5 and 5")
	}

	if score*2 != math.Trunc(score*2) {
		return domain.NewError(errcodes.InvalidReviewScore, "score must move in half-star steps")
	}

	return nil
}

func summaryCacheKey(productID int64) string {
	return strconv.FormatInt(productID, 10)
}
