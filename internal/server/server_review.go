package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"git.appkode.ru/pub/go/failure"
	"github.com/go-chi/chi/v5"

	"storefront/internal/domain/entity"
	"storefront/pkg/contextx"
	"storefront/pkg/errcodes"
	"storefront/pkg/httpx/reply"
	"storefront/pkg/httpx/req"
	"storefront/pkg/rest"
)

type reviewService interface {
	Submit(ctx context.Context, productID, customerID int64, score float64, title, body string) (*entity.Review, error)
	ListByProduct(ctx context.Context, productID int64, limit, offset int) ([]entity.Review, []string, error)
	ProductSummary(ctx context.Context, productID int64) (*entity.RatingSummary, error)
}

type productResolver interface {
	GetBySlug(ctx context.Context, slug string) (*entity.Product, error)
}

type customerGetter interface {
	GetByID(ctx context.Context, id int64) (*entity.Customer, error)
}

type ReviewServer struct {
	reviewService   reviewService
	productResolver productResolver
	customers       customerGetter
}

func NewReviewServer(
	reviewService reviewService,
	productResolver productResolver,
	customers customerGetter,
) ReviewServer {
	return ReviewServer{
		reviewService:   reviewService,
		productResolver: productResolver,
		customers:       customers,
	}
}

func (s ReviewServer) getV1ProductReviews(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	product, err := s.productResolver.GetBySlug(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		return fmt.Errorf("productResolver.GetBySlug: %w", err)
	}

	limit := queryInt(r, "limit", 0)
	offset := queryInt(r, "offset", 0)
	starSize := queryInt(r, "starSize", cardStarSize)

	reviews, authors, err := s.reviewService.ListByProduct(ctx, product.ID, limit, offset)
	if err != nil {
		return fmt.Errorf("reviewService.ListByProduct: %w", err)
	}

	summary, err := s.reviewService.ProductSummary(ctx, product.ID)
	if err != nil {
		return fmt.Errorf("reviewService.ProductSummary: %w", err)
	}

	page := rest.ReviewPage{
		Reviews: make([]rest.Review, 0, len(reviews)),
		Summary: newRESTSummary(*summary),
		Limit:   limit,
		Offset:  offset,
	}
	for i, review := range reviews {
		page.Reviews = append(page.Reviews, newRESTReview(review, authors[i], starSize))
	}

	reply.JSON(ctx, w, http.StatusOK, page)

	return nil
}

func (s ReviewServer) postV1ProductReview(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	customerID, err := customerIDFromContext(ctx)
	if err != nil {
		return err
	}

	product, err := s.productResolver.GetBySlug(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		return fmt.Errorf("productResolver.GetBySlug: %w", err)
	}

	var request rest.SubmitReviewRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	review, err := s.reviewService.Submit(ctx, product.ID, customerID, request.Score, request.Title, request.Body)
	if err != nil {
		return fmt.Errorf("reviewService.Submit: %w", err)
	}

	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return fmt.Errorf("customers.GetByID: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTReview(*review, customer.Name, cardStarSize))

	return nil
}

func customerIDFromContext(ctx context.Context) (int64, error) {
	userID, err := contextx.UserIDFromContext(ctx)
	if err != nil {
		return 0, failure.NewUnauthorizedErrorFromError(
			fmt.Errorf("contextx.UserIDFromContext: %w", err),
			failure.WithCode(errcodes.AccessTokenInvalid),
		)
	}

	customerID, err := strconv.ParseInt(userID.String(), 10, 64)
	if err != nil {
		return 0, failure.NewUnauthorizedErrorFromError(
			fmt.Errorf("strconv.ParseInt: %w", err),
			failure.WithCode(errcodes.AccessTokenInvalid),
		)
	}

	return customerID, nil
}
